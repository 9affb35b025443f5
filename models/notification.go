package models

import "time"

// Notification is one alert delivered to one user. Only IsRead changes after creation.
type Notification struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	UserID      uint      `json:"userId" gorm:"not null;index"`
	Type        string    `json:"type" gorm:"type:varchar(32);not null"`
	Title       string    `json:"title" gorm:"not null"`
	Message     string    `json:"message" gorm:"type:text;not null"`
	EntityType  string    `json:"entityType" gorm:"type:varchar(16);not null;index:idx_notifications_entity"`
	EntityID    uint      `json:"entityId" gorm:"not null;index:idx_notifications_entity"`
	InitiatorID *uint     `json:"initiatorId"`
	IsRead      bool      `json:"isRead" gorm:"default:false;not null"`
	CreatedAt   time.Time `json:"createdAt" gorm:"autoCreateTime"`
	User        *User     `json:"user,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignKey:UserID;references:ID"`
}
