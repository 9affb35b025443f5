package commands

import (
	"context"

	"github.com/Nikk8744/F-T-T-sub000/models"

	"gorm.io/gorm"
)

// NotificationCommand is one write against the notifications table
type NotificationCommand interface {
	Execute(ctx context.Context) (int64, error)
}

// CreateNotificationCommand inserts a notification
type CreateNotificationCommand struct {
	notification *models.Notification
	db           *gorm.DB
}

func NewCreateNotificationCommand(n *models.Notification, db *gorm.DB) *CreateNotificationCommand {
	return &CreateNotificationCommand{
		notification: n,
		db:           db,
	}
}

func (c *CreateNotificationCommand) Execute(ctx context.Context) (int64, error) {
	res := c.db.WithContext(ctx).Omit("User").Create(c.notification)
	return res.RowsAffected, res.Error
}

// MarkReadCommand flips is_read for the user's notifications. A zero id marks all of them.
type MarkReadCommand struct {
	userID         uint
	notificationID uint
	db             *gorm.DB
}

func NewMarkReadCommand(userID, notificationID uint, db *gorm.DB) *MarkReadCommand {
	return &MarkReadCommand{
		userID:         userID,
		notificationID: notificationID,
		db:             db,
	}
}

func (c *MarkReadCommand) Execute(ctx context.Context) (int64, error) {
	tx := c.db.WithContext(ctx).Model(&models.Notification{}).Where("user_id = ?", c.userID)
	if c.notificationID != 0 {
		tx = tx.Where("id = ?", c.notificationID)
	} else {
		tx = tx.Where("is_read = ?", false)
	}
	res := tx.Update("is_read", true)
	return res.RowsAffected, res.Error
}

// DeleteNotificationCommand removes one of the user's notifications
type DeleteNotificationCommand struct {
	userID         uint
	notificationID uint
	db             *gorm.DB
}

func NewDeleteNotificationCommand(userID, notificationID uint, db *gorm.DB) *DeleteNotificationCommand {
	return &DeleteNotificationCommand{
		userID:         userID,
		notificationID: notificationID,
		db:             db,
	}
}

func (c *DeleteNotificationCommand) Execute(ctx context.Context) (int64, error) {
	res := c.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", c.notificationID, c.userID).
		Delete(&models.Notification{})
	return res.RowsAffected, res.Error
}
