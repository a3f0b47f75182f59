// seed-demo loads a small demo dataset: two companies with branches,
// employers, vendors, job orders, candidates across every pipeline stage and
// a spread of financial documents, plus one user per role.
//
// Usage (from backend directory):
//   DB_USER=... DB_PASSWORD=... DB_HOST=... DB_PORT=... DB_NAME=... go run ./cmd/seed-demo
//
// The seed is idempotent-ish: it refuses to run when companies already exist
// unless SEED_DEMO_FORCE=true.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"bitbucket.org/mahadgroup/erp_backend/config"
	"bitbucket.org/mahadgroup/erp_backend/models"
	"bitbucket.org/mahadgroup/erp_backend/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const demoPassword = "Mah@dDemo1"

func main() {
	ctx := context.Background()
	config.ConnectDatabaseWithRetry()
	db := config.GetDB()
	if db == nil {
		fmt.Fprintln(os.Stderr, "database not initialized (config.GetDB returned nil). Set DB_* env vars.")
		os.Exit(1)
	}

	ctx = utils.SetIsAdminInContext(ctx, true)
	ctx = utils.SetSkipCompanyScopeInContext(ctx, true)

	if err := models.MigrateAll(); err != nil {
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}

	var companyCount int64
	if err := db.WithContext(ctx).Model(&models.Company{}).Count(&companyCount).Error; err != nil {
		fmt.Fprintf(os.Stderr, "failed to count companies: %v\n", err)
		os.Exit(1)
	}
	if companyCount > 0 && !strings.EqualFold(os.Getenv("SEED_DEMO_FORCE"), "true") {
		fmt.Fprintln(os.Stderr, "companies already exist; set SEED_DEMO_FORCE=true to seed anyway")
		os.Exit(2)
	}

	if err := seed(ctx, db); err != nil {
		fmt.Fprintf(os.Stderr, "seed failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Demo data seeded. All demo users share password", demoPassword)
}

func seed(ctx context.Context, db *gorm.DB) error {
	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	india := models.Company{
		Name: "Mahad Manpower India Pvt Ltd", ShortName: "Mahad India",
		Code: "MIN", Country: "IN", BaseCurrency: "INR", TaxName: "GST",
		InvoicePrefix: "MIN", IsActive: utils.NewTrue(),
	}
	kenya := models.Company{
		Name: "Mahad Manpower Kenya Ltd", ShortName: "Mahad Kenya",
		Code: "MKE", Country: "KE", BaseCurrency: "KES",
		InvoicePrefix: "MKE", IsActive: utils.NewTrue(),
	}
	for _, c := range []*models.Company{&india, &kenya} {
		if err := db.WithContext(ctx).Create(c).Error; err != nil {
			return err
		}
	}

	mumbai := models.Branch{CompanyId: india.ID, Name: "Mumbai HQ", Code: "BOM", City: "Mumbai", IsHeadquarters: true, IsActive: utils.NewTrue()}
	kochi := models.Branch{CompanyId: india.ID, Name: "Kochi", Code: "COK", City: "Kochi", IsActive: utils.NewTrue()}
	nairobi := models.Branch{CompanyId: kenya.ID, Name: "Nairobi HQ", Code: "NBO", City: "Nairobi", IsHeadquarters: true, IsActive: utils.NewTrue()}
	for _, b := range []*models.Branch{&mumbai, &kochi, &nairobi} {
		if err := db.WithContext(ctx).Create(b).Error; err != nil {
			return err
		}
	}

	alfuttaim := models.Employer{Code: "EMP-AF", Name: "Al Futtaim Facilities", Country: "UAE", IsActive: utils.NewTrue()}
	qbuild := models.Employer{Code: "EMP-QB", Name: "Qatar Build Co", Country: "Qatar", IsActive: utils.NewTrue()}
	for _, e := range []*models.Employer{&alfuttaim, &qbuild} {
		if err := db.WithContext(ctx).Create(e).Error; err != nil {
			return err
		}
	}

	medcenter := models.Vendor{Name: "City Medical Center", Type: "MEDICAL", Country: "India", IsActive: utils.NewTrue()}
	visaagent := models.Vendor{Name: "Gulf Visa Services", Type: "VISA", Country: "UAE", IsActive: utils.NewTrue()}
	for _, v := range []*models.Vendor{&medcenter, &visaagent} {
		if err := db.WithContext(ctx).Create(v).Error; err != nil {
			return err
		}
	}

	electricians := models.JobOrder{
		CompanyId: india.ID, BranchId: mumbai.ID, EmployerId: alfuttaim.ID,
		PositionTitle: "Electrician", NumPositions: 20,
		AgreedFee: decimal.NewFromInt(1200), Currency: "USD", IsActive: utils.NewTrue(),
	}
	welders := models.JobOrder{
		CompanyId: india.ID, BranchId: kochi.ID, EmployerId: qbuild.ID,
		PositionTitle: "Welder", NumPositions: 15,
		AgreedFee: decimal.NewFromInt(1500), Currency: "USD", IsActive: utils.NewTrue(),
	}
	drivers := models.JobOrder{
		CompanyId: kenya.ID, BranchId: nairobi.ID, EmployerId: alfuttaim.ID,
		PositionTitle: "Heavy Driver", NumPositions: 10,
		AgreedFee: decimal.NewFromInt(1000), Currency: "USD", IsActive: utils.NewTrue(),
	}
	for _, jo := range []*models.JobOrder{&electricians, &welders, &drivers} {
		if err := db.WithContext(ctx).Create(jo).Error; err != nil {
			return err
		}
	}

	deployed := today.AddDate(0, 0, -10)
	candidates := []models.Candidate{
		{JobOrderId: electricians.ID, FullName: "Arun Nair", PassportNumber: "P1000001", Nationality: "Indian", CurrentStage: models.CandidateStageSourcing},
		{JobOrderId: electricians.ID, FullName: "Suresh Kumar", PassportNumber: "P1000002", Nationality: "Indian", CurrentStage: models.CandidateStageScreening},
		{JobOrderId: electricians.ID, FullName: "Ravi Menon", PassportNumber: "P1000003", Nationality: "Indian", CurrentStage: models.CandidateStageDocumentation},
		{JobOrderId: electricians.ID, FullName: "Vijay Pillai", PassportNumber: "P1000004", Nationality: "Indian", CurrentStage: models.CandidateStageVisa},
		{JobOrderId: welders.ID, FullName: "Anil Thomas", PassportNumber: "P1000005", Nationality: "Indian", CurrentStage: models.CandidateStageMedical},
		{JobOrderId: welders.ID, FullName: "Joseph Mathew", PassportNumber: "P1000006", Nationality: "Indian", CurrentStage: models.CandidateStageTicket},
		{JobOrderId: welders.ID, FullName: "Rahul Das", PassportNumber: "P1000007", Nationality: "Indian", CurrentStage: models.CandidateStageDeployed, DeployedDate: &deployed},
		{JobOrderId: drivers.ID, FullName: "David Mwangi", PassportNumber: "K2000001", Nationality: "Kenyan", CurrentStage: models.CandidateStageDeployed, DeployedDate: &deployed},
		{JobOrderId: drivers.ID, FullName: "Peter Otieno", PassportNumber: "K2000002", Nationality: "Kenyan", CurrentStage: models.CandidateStageInvoiced},
	}
	for i := range candidates {
		if err := db.WithContext(ctx).Create(&candidates[i]).Error; err != nil {
			return err
		}
	}

	costs := []models.CandidateCost{
		{CandidateId: candidates[4].ID, CostType: models.CostTypeMedical, VendorId: &medcenter.ID, Amount: decimal.NewFromInt(80), Currency: "USD", Date: today.AddDate(0, 0, -5)},
		{CandidateId: candidates[3].ID, CostType: models.CostTypeVisa, VendorId: &visaagent.ID, Amount: decimal.NewFromInt(250), Currency: "USD", Date: today.AddDate(0, 0, -3)},
	}
	for i := range costs {
		if err := db.WithContext(ctx).Create(&costs[i]).Error; err != nil {
			return err
		}
	}

	invoices := []models.Invoice{
		{CompanyId: india.ID, EmployerId: qbuild.ID, InvoiceNumber: "MIN-0001", InvoiceDate: today.AddDate(0, -2, 0), DueDate: today.AddDate(0, 0, -45), Currency: "USD", TotalAmount: decimal.NewFromInt(1500), Status: models.InvoiceStatusSent},
		{CompanyId: india.ID, EmployerId: alfuttaim.ID, InvoiceNumber: "MIN-0002", InvoiceDate: today.AddDate(0, 0, -20), DueDate: today.AddDate(0, 0, 10), Currency: "USD", TotalAmount: decimal.NewFromInt(2400), Status: models.InvoiceStatusPosted},
		{CompanyId: india.ID, EmployerId: alfuttaim.ID, InvoiceNumber: "MIN-0003", InvoiceDate: today, DueDate: today.AddDate(0, 0, 30), Currency: "USD", TotalAmount: decimal.NewFromInt(1200), Status: models.InvoiceStatusPosted},
		{CompanyId: india.ID, EmployerId: qbuild.ID, InvoiceNumber: "MIN-0004", InvoiceDate: today.AddDate(0, 0, -2), DueDate: today.AddDate(0, 0, 28), Currency: "USD", TotalAmount: decimal.NewFromInt(900), Status: models.InvoiceStatusDraft},
		{CompanyId: kenya.ID, EmployerId: alfuttaim.ID, InvoiceNumber: "MKE-0001", InvoiceDate: today.AddDate(0, -1, 0), DueDate: today.AddDate(0, 0, -5), Currency: "USD", TotalAmount: decimal.NewFromInt(1000), Status: models.InvoiceStatusPaid},
	}
	for i := range invoices {
		if err := db.WithContext(ctx).Create(&invoices[i]).Error; err != nil {
			return err
		}
	}

	bills := []models.Bill{
		{CompanyId: india.ID, VendorId: medcenter.ID, BillNumber: "BILL-0001", BillDate: today.AddDate(0, 0, -15), DueDate: today.AddDate(0, 0, 5), Currency: "USD", TotalAmount: decimal.NewFromInt(400), Status: models.BillStatusPosted},
		{CompanyId: india.ID, VendorId: visaagent.ID, BillNumber: "BILL-0002", BillDate: today.AddDate(0, 0, -3), DueDate: today, Currency: "USD", TotalAmount: decimal.NewFromInt(250), Status: models.BillStatusPosted},
		{CompanyId: india.ID, VendorId: visaagent.ID, BillNumber: "BILL-0003", BillDate: today.AddDate(0, 0, -1), DueDate: today.AddDate(0, 0, 14), Currency: "USD", TotalAmount: decimal.NewFromInt(300), Status: models.BillStatusDraft},
	}
	for i := range bills {
		if err := db.WithContext(ctx).Create(&bills[i]).Error; err != nil {
			return err
		}
	}

	receipts := []models.Receipt{
		{CompanyId: kenya.ID, EmployerId: alfuttaim.ID, InvoiceId: &invoices[4].ID, ReceiptNumber: "RCT-0001", ReceiptDate: today.AddDate(0, 0, -4), Amount: decimal.NewFromInt(1000), Currency: "USD", PaymentMethod: "BANK"},
		{CompanyId: india.ID, EmployerId: qbuild.ID, ReceiptNumber: "RCT-0002", ReceiptDate: today.AddDate(0, 0, -1), Amount: decimal.NewFromInt(500), Currency: "USD", PaymentMethod: "BANK"},
	}
	for i := range receipts {
		if err := db.WithContext(ctx).Create(&receipts[i]).Error; err != nil {
			return err
		}
	}

	payments := []models.Payment{
		{CompanyId: india.ID, VendorId: medcenter.ID, BillId: &bills[0].ID, PaymentNumber: "PAY-0001", PaymentDate: today.AddDate(0, 0, -2), Amount: decimal.NewFromInt(200), Currency: "USD", PaymentMethod: "BANK"},
	}
	for i := range payments {
		if err := db.WithContext(ctx).Create(&payments[i]).Error; err != nil {
			return err
		}
	}

	users := []models.NewUser{
		{Email: "hq@mahadgroup.com", FirstName: "Haris", LastName: "Mahad", Password: demoPassword, Role: models.UserRoleHQAdmin},
		{Email: "cm.india@mahadgroup.com", FirstName: "Meera", LastName: "Iyer", Password: demoPassword, Role: models.UserRoleCountryManager, CompanyId: &india.ID},
		{Email: "fin.india@mahadgroup.com", FirstName: "Farhan", LastName: "Shaikh", Password: demoPassword, Role: models.UserRoleFinanceManager, CompanyId: &india.ID},
		{Email: "acc.india@mahadgroup.com", FirstName: "Anita", LastName: "Rao", Password: demoPassword, Role: models.UserRoleAccountant, CompanyId: &india.ID},
		{Email: "branch.kochi@mahadgroup.com", FirstName: "Biju", LastName: "Varghese", Password: demoPassword, Role: models.UserRoleBranchUser, CompanyId: &india.ID, BranchId: &kochi.ID},
		{Email: "audit@mahadgroup.com", FirstName: "Amina", LastName: "Yusuf", Password: demoPassword, Role: models.UserRoleAuditor},
	}
	for i := range users {
		if _, err := models.CreateUser(ctx, &users[i]); err != nil {
			return fmt.Errorf("create user %s: %w", users[i].Email, err)
		}
	}

	return nil
}
