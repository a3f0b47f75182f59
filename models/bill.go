package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bill is the AP document owed to a vendor.
type Bill struct {
	ID          int             `gorm:"primary_key" json:"id"`
	CompanyId   int             `gorm:"index;not null" json:"company_id"`
	VendorId    int             `gorm:"index;not null" json:"vendor_id"`
	BillNumber  string          `gorm:"size:50;not null;unique" json:"bill_number"`
	BillDate    time.Time       `gorm:"not null" json:"bill_date"`
	DueDate     time.Time       `gorm:"not null" json:"due_date"`
	Currency    string          `gorm:"size:3" json:"currency"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"total_amount"`
	TaxAmount   decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"tax_amount"`
	AmountPaid  decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"amount_paid"`
	Status      BillStatus      `gorm:"size:20;not null;default:DRAFT" json:"status"`
	PostedAt    *time.Time      `json:"posted_at"`
	PaidAt      *time.Time      `json:"paid_at"`
	Notes       string          `gorm:"type:text" json:"notes"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}
