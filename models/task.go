package models

import (
	"time"

	"gorm.io/gorm"
)

type Task struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
	Subject     string     `gorm:"not null" json:"subject"`
	Description string     `gorm:"type:text" json:"description"`
	DueDate     *time.Time `gorm:"index" json:"dueDate"`
	Status      string     `gorm:"default:Pending;index" json:"status"`
	OwnerID     uint       `gorm:"not null;index" json:"ownerId"`
	Owner       *User      `json:"owner,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignKey:OwnerID;references:ID"`
	ProjectID   *uint      `gorm:"index" json:"projectId,omitempty"`
	Project     *Project   `json:"project,omitempty" gorm:"constraint:OnDelete:SET NULL"`
	Assignees   []User     `json:"assignees,omitempty" gorm:"many2many:task_assignments;constraint:OnDelete:CASCADE"`
}

// BeforeSave keeps deadlines in UTC so range queries compare instants
func (t *Task) BeforeSave(*gorm.DB) error {
	t.DueDate = utcPtr(t.DueDate)
	return nil
}
