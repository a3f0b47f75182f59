package models

import (
	"context"
	"time"

	"bitbucket.org/mahadgroup/erp_backend/config"
)

type Branch struct {
	ID             int       `gorm:"primary_key" json:"id"`
	CompanyId      int       `gorm:"index;not null" json:"company_id"`
	Name           string    `gorm:"index;size:200;not null" json:"name" binding:"required"`
	Code           string    `gorm:"size:20;not null" json:"code"`
	City           string    `gorm:"size:100" json:"city"`
	Phone          string    `gorm:"size:50" json:"phone"`
	IsHeadquarters bool      `gorm:"not null;default:false" json:"is_headquarters"`
	IsActive       *bool     `gorm:"not null;default:true" json:"is_active"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func GetBranchById(ctx context.Context, id int) (*Branch, error) {
	db := config.GetDB()
	var branch Branch
	if err := db.WithContext(ctx).Where("id = ?", id).First(&branch).Error; err != nil {
		return nil, err
	}
	return &branch, nil
}

func GetActiveBranches(ctx context.Context, companyId int) ([]Branch, error) {
	db := config.GetDB()
	var branches []Branch
	if err := db.WithContext(ctx).
		Where("company_id = ? AND is_active = ?", companyId, true).
		Order("code").
		Find(&branches).Error; err != nil {
		return nil, err
	}
	return branches, nil
}
