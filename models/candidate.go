package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Candidate belongs to a company through its job order; there is no
// company_id column here, so company scoping goes through a job_orders join.
type Candidate struct {
	ID             int            `gorm:"primary_key" json:"id"`
	JobOrderId     int            `gorm:"index;not null" json:"job_order_id"`
	FullName       string         `gorm:"size:200;not null" json:"full_name" binding:"required"`
	PassportNumber string         `gorm:"size:50;not null" json:"passport_number" binding:"required"`
	Nationality    string         `gorm:"size:100" json:"nationality"`
	CurrentStage   CandidateStage `gorm:"size:20;not null;default:SOURCING" json:"current_stage"`
	DeployedDate   *time.Time     `json:"deployed_date"`
	Remarks        string         `gorm:"type:text" json:"remarks"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

// CandidateCost tracks a processing cost for one candidate. BillId stays null
// until the cost has been pulled onto a vendor bill; accountants work the
// null set down.
type CandidateCost struct {
	ID           int             `gorm:"primary_key" json:"id"`
	CandidateId  int             `gorm:"index;not null" json:"candidate_id"`
	CostType     CostType        `gorm:"size:20;not null" json:"cost_type"`
	VendorId     *int            `gorm:"index" json:"vendor_id"`
	Amount       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Currency     string          `gorm:"size:3" json:"currency"`
	Reimbursable bool            `gorm:"not null;default:true" json:"reimbursable"`
	Description  string          `gorm:"type:text" json:"description"`
	Date         time.Time       `json:"date"`
	BillId       *int            `gorm:"index" json:"bill_id"`
	CreatedAt    time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
