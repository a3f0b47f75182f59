package models

import "bitbucket.org/mahadgroup/erp_backend/config"

// MigrateAll runs gorm AutoMigrate for every table. Used by the seed
// commands and integration tests; production schemas are managed the same
// way at deploy time.
func MigrateAll() error {
	db := config.GetDB()
	return db.AutoMigrate(
		&Company{},
		&Branch{},
		&Employer{},
		&Vendor{},
		&JobOrder{},
		&Candidate{},
		&CandidateCost{},
		&Invoice{},
		&Bill{},
		&Receipt{},
		&Payment{},
		&User{},
		&LoginHistory{},
	)
}
