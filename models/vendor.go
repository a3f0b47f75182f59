package models

import "time"

// Vendor is the AP counterparty: medical centers, airlines, visa agents and
// the like that candidate costs are paid to.
type Vendor struct {
	ID        int       `gorm:"primary_key" json:"id"`
	Name      string    `gorm:"size:200;not null" json:"name" binding:"required"`
	Type      string    `gorm:"size:20;default:OTHER" json:"type"`
	Country   string    `gorm:"size:100" json:"country"`
	Contact   string    `gorm:"size:200" json:"contact"`
	Phone     string    `gorm:"size:50" json:"phone"`
	IsActive  *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
