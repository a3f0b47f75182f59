// seed-admin creates or updates the group HQ admin user.
//
// Usage (from backend directory):
//   DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... go run ./cmd/seed-admin
//
// Override the defaults with SEED_ADMIN_EMAIL / SEED_ADMIN_PASSWORD.
package main

import (
	"context"
	"fmt"
	"os"

	"bitbucket.org/mahadgroup/erp_backend/config"
	"bitbucket.org/mahadgroup/erp_backend/models"
	"bitbucket.org/mahadgroup/erp_backend/utils"
	"gorm.io/gorm"
)

const (
	defaultAdminEmail    = "admin@mahadgroup.com"
	defaultAdminPassword = "Mah@dAdmin"
	adminFirstName       = "Group"
	adminLastName        = "Admin"
)

func main() {
	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}

	email := os.Getenv("SEED_ADMIN_EMAIL")
	if email == "" {
		email = defaultAdminEmail
	}
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = defaultAdminPassword
	}

	// HQ admins are not company scoped; bypass the guard for the lookup.
	ctx = utils.SetIsAdminInContext(ctx, true)
	ctx = utils.SetSkipCompanyScopeInContext(ctx, true)

	if err := models.MigrateAll(); err != nil {
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to hash password: %v\n", err)
		os.Exit(1)
	}

	var existing models.User
	err = db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).First(&existing).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			fmt.Fprintf(os.Stderr, "failed to lookup user: %v\n", err)
			os.Exit(1)
		}
		u := models.User{
			Email:     email,
			FirstName: adminFirstName,
			LastName:  adminLastName,
			Password:  string(hashed),
			Role:      models.UserRoleHQAdmin,
			IsActive:  utils.NewTrue(),
		}
		if err := db.WithContext(ctx).Create(&u).Error; err != nil {
			fmt.Fprintf(os.Stderr, "failed to create admin user: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Created HQ admin user: email=%q\n", email)
		return
	}

	if err := db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Updates(map[string]any{
		"password":   string(hashed),
		"first_name": adminFirstName,
		"last_name":  adminLastName,
		"is_active":  utils.NewTrue(),
		"role":       models.UserRoleHQAdmin,
	}).Error; err != nil {
		fmt.Fprintf(os.Stderr, "failed to update admin user: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Updated HQ admin user: email=%q\n", email)
}
