package builders

import (
	"github.com/Nikk8744/F-T-T-sub000/models"
)

// NotificationBuilder assembles a notification step by step
type NotificationBuilder struct {
	notification *models.Notification
}

// NewNotificationBuilder creates a builder for an unread notification
func NewNotificationBuilder() *NotificationBuilder {
	return &NotificationBuilder{
		notification: &models.Notification{},
	}
}

// ForUser sets the recipient
func (b *NotificationBuilder) ForUser(userID uint) *NotificationBuilder {
	b.notification.UserID = userID
	return b
}

// WithType sets the notification kind
func (b *NotificationBuilder) WithType(kind string) *NotificationBuilder {
	b.notification.Type = kind
	return b
}

// WithContent sets title and message
func (b *NotificationBuilder) WithContent(title, message string) *NotificationBuilder {
	b.notification.Title = title
	b.notification.Message = message
	return b
}

// AboutEntity sets the referenced task, project or user
func (b *NotificationBuilder) AboutEntity(entityType string, entityID uint) *NotificationBuilder {
	b.notification.EntityType = entityType
	b.notification.EntityID = entityID
	return b
}

// InitiatedBy records who triggered it. System alerts leave it nil.
func (b *NotificationBuilder) InitiatedBy(userID uint) *NotificationBuilder {
	b.notification.InitiatorID = &userID
	return b
}

// Build returns a fresh copy so the builder can be reused per recipient
func (b *NotificationBuilder) Build() *models.Notification {
	n := *b.notification
	n.IsRead = false
	if b.notification.InitiatorID != nil {
		id := *b.notification.InitiatorID
		n.InitiatorID = &id
	}
	return &n
}
