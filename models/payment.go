package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment records cash paid out to a vendor, optionally applied to a bill.
type Payment struct {
	ID              int             `gorm:"primary_key" json:"id"`
	CompanyId       int             `gorm:"index;not null" json:"company_id"`
	VendorId        int             `gorm:"index;not null" json:"vendor_id"`
	BillId          *int            `gorm:"index" json:"bill_id"`
	PaymentNumber   string          `gorm:"size:50;not null;unique" json:"payment_number"`
	PaymentDate     time.Time       `gorm:"not null" json:"payment_date"`
	Amount          decimal.Decimal `gorm:"type:decimal(14,2);not null" json:"amount"`
	Currency        string          `gorm:"size:3" json:"currency"`
	PaymentMethod   string          `gorm:"size:50" json:"payment_method"`
	ReferenceNumber string          `gorm:"size:100" json:"reference_number"`
	Notes           string          `gorm:"type:text" json:"notes"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
