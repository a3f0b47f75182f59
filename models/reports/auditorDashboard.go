package reports

import (
	"context"
	"os"
	"strconv"
	"strings"
	"time"

	"bitbucket.org/mahadgroup/erp_backend/config"
	"bitbucket.org/mahadgroup/erp_backend/models"
	"bitbucket.org/mahadgroup/erp_backend/utils"
	"github.com/shopspring/decimal"
)

// AuditorDashboard is read-only oversight across every company: activity
// volume, stale drafts and the recent login trail.
type AuditorDashboard struct {
	Role              models.UserRole       `json:"role"`
	SystemOverview    SystemOverview        `json:"system_overview"`
	TransactionVolume TransactionVolume     `json:"transaction_volume"`
	Compliance        ComplianceStats       `json:"compliance"`
	CompanySummaries  []AuditCompanySummary `json:"company_summaries"`
	RecentLogins      []LoginEntry          `json:"recent_logins"`
}

func (d *AuditorDashboard) DashboardRole() models.UserRole { return d.Role }

type SystemOverview struct {
	ActiveCompanies int64 `json:"active_companies"`
	TotalUsers      int64 `json:"total_users"`
	ActiveJobOrders int64 `json:"active_job_orders"`
	TotalCandidates int64 `json:"total_candidates"`
	TotalInvoices   int64 `json:"total_invoices"`
	TotalBills      int64 `json:"total_bills"`
}

type TransactionVolume struct {
	InvoicesMtd int64 `json:"invoices_mtd"`
	BillsMtd    int64 `json:"bills_mtd"`
	ReceiptsMtd int64 `json:"receipts_mtd"`
	PaymentsMtd int64 `json:"payments_mtd"`
}

type ComplianceStats struct {
	UnpostedInvoices int64 `json:"unposted_invoices"`
	UnpostedBills    int64 `json:"unposted_bills"`
}

type AuditCompanySummary struct {
	Id             int    `json:"id"`
	Name           string `json:"name"`
	Code           string `json:"code"`
	CandidateCount int64  `json:"candidate_count"`
	InvoiceCount   int64  `json:"invoice_count"`
	InvoiceTotal   Money  `json:"invoice_total"`
	BillCount      int64  `json:"bill_count"`
	BillTotal      Money  `json:"bill_total"`
}

type LoginEntry struct {
	Email     string    `json:"email"`
	IpAddress string    `json:"ip_address"`
	Timestamp time.Time `json:"timestamp"`
}

// draftGraceDays reads AUDIT_DRAFT_GRACE_DAYS. With the default of 0 every
// draft counts as unposted immediately.
func draftGraceDays() int {
	if v := strings.TrimSpace(os.Getenv("AUDIT_DRAFT_GRACE_DAYS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			return n
		}
	}
	return 0
}

func GetAuditorDashboard(ctx context.Context, asOf time.Time) (*AuditorDashboard, error) {
	return withReportCache(ctx, "auditor_dashboard", cacheKeyParts(Scope{}, asOf), func(ctx context.Context) (*AuditorDashboard, error) {
		return computeAuditorDashboard(ctx, asOf)
	})
}

func computeAuditorDashboard(ctx context.Context, asOf time.Time) (*AuditorDashboard, error) {
	ctx = utils.SetSkipCompanyScopeInContext(ctx, true)
	db := config.GetDB()
	monthStart := utils.StartOfMonth(asOf)
	draftCutoff := asOf.AddDate(0, 0, -draftGraceDays())

	var activeCompanies int64
	if err := db.WithContext(ctx).Model(&models.Company{}).
		Where("is_active = ?", true).Count(&activeCompanies).Error; err != nil {
		return nil, err
	}

	var totalUsers int64
	if err := db.WithContext(ctx).Model(&models.User{}).
		Where("is_active = ?", true).Count(&totalUsers).Error; err != nil {
		return nil, err
	}

	var activeJobOrders int64
	if err := db.WithContext(ctx).Model(&models.JobOrder{}).
		Where("is_active = ?", true).Count(&activeJobOrders).Error; err != nil {
		return nil, err
	}

	var totalCandidates int64
	if err := db.WithContext(ctx).Model(&models.Candidate{}).Count(&totalCandidates).Error; err != nil {
		return nil, err
	}

	var totalInvoices int64
	if err := db.WithContext(ctx).Model(&models.Invoice{}).Count(&totalInvoices).Error; err != nil {
		return nil, err
	}

	var totalBills int64
	if err := db.WithContext(ctx).Model(&models.Bill{}).Count(&totalBills).Error; err != nil {
		return nil, err
	}

	volume, err := getTransactionVolume(ctx, monthStart, utils.WindowEnd(asOf))
	if err != nil {
		return nil, err
	}

	var unpostedInvoices int64
	if err := db.WithContext(ctx).Model(&models.Invoice{}).
		Where("status = ? AND created_at < ?", models.InvoiceStatusDraft, draftCutoff).
		Count(&unpostedInvoices).Error; err != nil {
		return nil, err
	}

	var unpostedBills int64
	if err := db.WithContext(ctx).Model(&models.Bill{}).
		Where("status = ? AND created_at < ?", models.BillStatusDraft, draftCutoff).
		Count(&unpostedBills).Error; err != nil {
		return nil, err
	}

	summaries, err := getAuditCompanySummaries(ctx)
	if err != nil {
		return nil, err
	}

	logins, err := getRecentSuccessfulLogins(ctx, 20)
	if err != nil {
		return nil, err
	}

	return &AuditorDashboard{
		Role: models.UserRoleAuditor,
		SystemOverview: SystemOverview{
			ActiveCompanies: activeCompanies,
			TotalUsers:      totalUsers,
			ActiveJobOrders: activeJobOrders,
			TotalCandidates: totalCandidates,
			TotalInvoices:   totalInvoices,
			TotalBills:      totalBills,
		},
		TransactionVolume: volume,
		Compliance: ComplianceStats{
			UnpostedInvoices: unpostedInvoices,
			UnpostedBills:    unpostedBills,
		},
		CompanySummaries: summaries,
		RecentLogins:     logins,
	}, nil
}

func getTransactionVolume(ctx context.Context, monthStart, windowEnd time.Time) (TransactionVolume, error) {
	invoicesMtd, err := countQuery(ctx,
		`SELECT COUNT(*) AS total FROM invoices WHERE created_at >= ? AND created_at < ?`, monthStart, windowEnd)
	if err != nil {
		return TransactionVolume{}, err
	}
	billsMtd, err := countQuery(ctx,
		`SELECT COUNT(*) AS total FROM bills WHERE created_at >= ? AND created_at < ?`, monthStart, windowEnd)
	if err != nil {
		return TransactionVolume{}, err
	}
	receiptsMtd, err := countQuery(ctx,
		`SELECT COUNT(*) AS total FROM receipts WHERE receipt_date >= ? AND receipt_date < ?`, monthStart, windowEnd)
	if err != nil {
		return TransactionVolume{}, err
	}
	paymentsMtd, err := countQuery(ctx,
		`SELECT COUNT(*) AS total FROM payments WHERE payment_date >= ? AND payment_date < ?`, monthStart, windowEnd)
	if err != nil {
		return TransactionVolume{}, err
	}
	return TransactionVolume{
		InvoicesMtd: invoicesMtd,
		BillsMtd:    billsMtd,
		ReceiptsMtd: receiptsMtd,
		PaymentsMtd: paymentsMtd,
	}, nil
}

type auditCompanyRow struct {
	CompanyId    int
	InvoiceCount int64
	InvoiceTotal decimal.Decimal
	BillCount    int64
	BillTotal    decimal.Decimal
}

// getAuditCompanySummaries builds per-company counts and document totals out
// of grouped queries instead of querying company by company.
func getAuditCompanySummaries(ctx context.Context) ([]AuditCompanySummary, error) {
	db := config.GetDB()
	companies, err := models.GetActiveCompanies(ctx)
	if err != nil {
		return nil, err
	}

	// Candidates reach their company through the job order.
	var candidateRows []companyCountRow
	if err := db.WithContext(ctx).Raw(`
		SELECT jo.company_id AS company_id, COUNT(*) AS total
		FROM candidates c
		JOIN job_orders jo ON jo.id = c.job_order_id
		GROUP BY jo.company_id`).Scan(&candidateRows).Error; err != nil {
		return nil, err
	}

	var invoiceRows []auditCompanyRow
	if err := db.WithContext(ctx).Raw(`
		SELECT company_id, COUNT(*) AS invoice_count,
			COALESCE(SUM(total_amount), 0) AS invoice_total
		FROM invoices
		GROUP BY company_id`).Scan(&invoiceRows).Error; err != nil {
		return nil, err
	}

	var billRows []auditCompanyRow
	if err := db.WithContext(ctx).Raw(`
		SELECT company_id, COUNT(*) AS bill_count,
			COALESCE(SUM(total_amount), 0) AS bill_total
		FROM bills
		GROUP BY company_id`).Scan(&billRows).Error; err != nil {
		return nil, err
	}

	candidatesByCompany := make(map[int]int64, len(candidateRows))
	for _, row := range candidateRows {
		candidatesByCompany[row.CompanyId] = row.Total
	}
	invoicesByCompany := make(map[int]auditCompanyRow, len(invoiceRows))
	for _, row := range invoiceRows {
		invoicesByCompany[row.CompanyId] = row
	}
	billsByCompany := make(map[int]auditCompanyRow, len(billRows))
	for _, row := range billRows {
		billsByCompany[row.CompanyId] = row
	}

	summaries := make([]AuditCompanySummary, 0, len(companies))
	for _, company := range companies {
		inv := invoicesByCompany[company.ID]
		bill := billsByCompany[company.ID]
		summaries = append(summaries, AuditCompanySummary{
			Id:             company.ID,
			Name:           company.Name,
			Code:           company.Code,
			CandidateCount: candidatesByCompany[company.ID],
			InvoiceCount:   inv.InvoiceCount,
			InvoiceTotal:   NewMoney(inv.InvoiceTotal),
			BillCount:      bill.BillCount,
			BillTotal:      NewMoney(bill.BillTotal),
		})
	}
	return summaries, nil
}

func getRecentSuccessfulLogins(ctx context.Context, limit int) ([]LoginEntry, error) {
	db := config.GetDB()
	var histories []models.LoginHistory
	if err := db.WithContext(ctx).
		Where("status = ?", models.LoginStatusSuccess).
		Order("timestamp DESC").
		Limit(limit).
		Find(&histories).Error; err != nil {
		return nil, err
	}

	entries := make([]LoginEntry, 0, len(histories))
	for _, h := range histories {
		entries = append(entries, LoginEntry{
			Email:     h.EmailAttempted,
			IpAddress: h.IpAddress,
			Timestamp: h.Timestamp,
		})
	}
	return entries, nil
}
