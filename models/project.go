package models

import (
	"time"

	"gorm.io/gorm"
)

type Project struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
	Name        string     `gorm:"not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `gorm:"index" json:"endDate"`
	Status      string     `gorm:"default:Pending;index" json:"status"`
	OwnerID     uint       `gorm:"not null;index" json:"ownerId"`
	Owner       *User      `json:"owner,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignKey:OwnerID;references:ID"`
	Members     []User     `json:"members,omitempty" gorm:"many2many:projectmembers;constraint:OnDelete:CASCADE"`
}

// BeforeSave keeps deadlines in UTC so range queries compare instants
func (p *Project) BeforeSave(*gorm.DB) error {
	p.EndDate = utcPtr(p.EndDate)
	p.StartDate = utcPtr(p.StartDate)
	return nil
}
