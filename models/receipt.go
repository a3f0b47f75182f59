package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Receipt records cash received from an employer, optionally applied to an invoice.
type Receipt struct {
	ID              int             `gorm:"primary_key" json:"id"`
	CompanyId       int             `gorm:"index;not null" json:"company_id"`
	EmployerId      int             `gorm:"index;not null" json:"employer_id"`
	InvoiceId       *int            `gorm:"index" json:"invoice_id"`
	ReceiptNumber   string          `gorm:"size:50;not null;unique" json:"receipt_number"`
	ReceiptDate     time.Time       `gorm:"not null" json:"receipt_date"`
	Amount          decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	Currency        string          `gorm:"size:3" json:"currency"`
	PaymentMethod   string          `gorm:"size:50" json:"payment_method"`
	ReferenceNumber string          `gorm:"size:100" json:"reference_number"`
	Notes           string          `gorm:"type:text" json:"notes"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
