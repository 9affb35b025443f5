package models

import "time"

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
	Name      string    `gorm:"default:New User" json:"name"`
	Email     string    `gorm:"unique;not null" json:"email"`
	Role      int       `gorm:"default:0" json:"role"`
}
