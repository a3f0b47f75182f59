package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mahadgroup/erp_backend/config"
	"bitbucket.org/mahadgroup/erp_backend/utils"
	"gorm.io/gorm"
)

// Company represents one country operation of the group.
type Company struct {
	ID            int       `gorm:"primary_key" json:"id"`
	Name          string    `gorm:"size:200;not null" json:"name" binding:"required"`
	ShortName     string    `gorm:"size:50" json:"short_name"`
	Code          string    `gorm:"size:10;not null;unique" json:"code" binding:"required"`
	Country       string    `gorm:"size:2;not null" json:"country"`
	BaseCurrency  string    `gorm:"size:3;not null;default:USD" json:"base_currency"`
	TaxName       string    `gorm:"size:50;default:VAT" json:"tax_name"`
	InvoicePrefix string    `gorm:"size:10;default:INV" json:"invoice_prefix"`
	IsActive      *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

var countryNames = map[string]string{
	"IN": "India",
	"KE": "Kenya",
	"AE": "UAE",
	"QA": "Qatar",
	"PH": "Philippines",
}

// CountryName returns the display name for the company's country code.
func (c Company) CountryName() string {
	if name, ok := countryNames[c.Country]; ok {
		return name
	}
	return c.Country
}

func GetCompanyById(ctx context.Context, id int) (*Company, error) {
	db := config.GetDB()
	var company Company
	if err := db.WithContext(ctx).Where("id = ?", id).First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrorRecordNotFound
		}
		return nil, err
	}
	return &company, nil
}

// GetActiveCompanies returns every active company; callers are group-wide
// views (HQ admin, auditor) that bypass the company guard.
func GetActiveCompanies(ctx context.Context) ([]Company, error) {
	db := config.GetDB()
	var companies []Company
	if err := db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("code").
		Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}
