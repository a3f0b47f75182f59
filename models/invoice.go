package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is the AR document raised against an employer.
type Invoice struct {
	ID            int             `gorm:"primary_key" json:"id"`
	CompanyId     int             `gorm:"index;not null" json:"company_id"`
	EmployerId    int             `gorm:"index;not null" json:"employer_id"`
	JobOrderId    *int            `gorm:"index" json:"job_order_id"`
	CandidateId   *int            `gorm:"index" json:"candidate_id"`
	InvoiceNumber string          `gorm:"size:50;not null;unique" json:"invoice_number"`
	InvoiceDate   time.Time       `gorm:"not null" json:"invoice_date"`
	DueDate       time.Time       `gorm:"not null" json:"due_date"`
	Currency      string          `gorm:"size:3" json:"currency"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"total_amount"`
	TaxAmount     decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"tax_amount"`
	AmountPaid    decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"amount_paid"`
	Status        InvoiceStatus   `gorm:"size:20;not null;default:DRAFT" json:"status"`
	PostedAt      *time.Time      `json:"posted_at"`
	PaidAt        *time.Time      `json:"paid_at"`
	Notes         string          `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
