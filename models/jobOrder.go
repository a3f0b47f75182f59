package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JobOrder is a recruitment assignment from an employer: N positions to fill
// at an agreed fee per candidate.
type JobOrder struct {
	ID            int             `gorm:"primary_key" json:"id"`
	CompanyId     int             `gorm:"index;not null" json:"company_id"`
	BranchId      int             `gorm:"index" json:"branch_id"`
	EmployerId    int             `gorm:"index;not null" json:"employer_id"`
	PositionTitle string          `gorm:"size:200;not null" json:"position_title" binding:"required"`
	NumPositions  int             `gorm:"not null" json:"num_positions"`
	AgreedFee     decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"agreed_fee"`
	Currency      string          `gorm:"size:3;default:USD" json:"currency"`
	Notes         string          `gorm:"type:text" json:"notes"`
	IsActive      *bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
