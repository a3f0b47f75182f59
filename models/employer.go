package models

import "time"

// Employer is the AR counterparty: the overseas company candidates are deployed to.
type Employer struct {
	ID            int       `gorm:"primary_key" json:"id"`
	Code          string    `gorm:"size:50;not null;unique" json:"code" binding:"required"`
	Name          string    `gorm:"size:200;not null" json:"name" binding:"required"`
	Country       string    `gorm:"size:100" json:"country"`
	ContactPerson string    `gorm:"size:200" json:"contact_person"`
	Phone         string    `gorm:"size:50" json:"phone"`
	IsActive      *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
