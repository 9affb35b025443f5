package dto

import "time"

type ListNotificationsQuery struct {
	PageQuery
	Unread bool `form:"unread"`
}

type EntityNotificationsParams struct {
	EntityType string `uri:"type" validate:"required,oneof=Task Project User"`
	EntityID   uint   `uri:"id" validate:"required"`
}

type NotificationResponse struct {
	ID          uint      `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	EntityType  string    `json:"entityType"`
	EntityID    uint      `json:"entityId"`
	InitiatorID *uint     `json:"initiatorId"`
	IsRead      bool      `json:"isRead"`
	CreatedAt   time.Time `json:"createdAt"`
}

type UnreadCountResponse struct {
	Unread int64 `json:"unread"`
}

type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}
