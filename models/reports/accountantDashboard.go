package reports

import (
	"context"
	"time"

	"bitbucket.org/mahadgroup/erp_backend/config"
	"bitbucket.org/mahadgroup/erp_backend/models"
	"bitbucket.org/mahadgroup/erp_backend/utils"
	"github.com/shopspring/decimal"
)

// AccountantDashboard is a work queue: what has to move today and what is
// still sitting in draft.
type AccountantDashboard struct {
	Role           models.UserRole `json:"role"`
	Company        CompanyInfo     `json:"company"`
	TodayTasks     TodayTasks      `json:"today_tasks"`
	QuickStats     QuickStats      `json:"quick_stats"`
	RecentInvoices []InvoiceEntry  `json:"recent_invoices"`
	RecentBills    []BillEntry     `json:"recent_bills"`
}

func (d *AccountantDashboard) DashboardRole() models.UserRole { return d.Role }

type TodayTasks struct {
	InvoicesToSend      int64 `json:"invoices_to_send"`
	BillsToProcess      int64 `json:"bills_to_process"`
	PaymentsDueToday    int64 `json:"payments_due_today"`
	UnprocessedCosts    int64 `json:"unprocessed_costs"`
	UnprocessedCostsAmt Money `json:"unprocessed_costs_amount"`
}

type QuickStats struct {
	DraftInvoices int64 `json:"draft_invoices"`
	DraftBills    int64 `json:"draft_bills"`
	OpenInvoices  int64 `json:"open_invoices"`
	OpenBills     int64 `json:"open_bills"`
}

type InvoiceEntry struct {
	Id            int       `json:"id"`
	InvoiceNumber string    `json:"invoice_number"`
	Employer      string    `json:"employer"`
	Amount        Money     `json:"amount"`
	Status        string    `json:"status"`
	DueDate       time.Time `json:"due_date"`
}

type BillEntry struct {
	Id         int       `json:"id"`
	BillNumber string    `json:"bill_number"`
	Vendor     string    `json:"vendor"`
	Amount     Money     `json:"amount"`
	Status     string    `json:"status"`
	DueDate    time.Time `json:"due_date"`
}

func GetAccountantDashboard(ctx context.Context, scope Scope, asOf time.Time) (*AccountantDashboard, error) {
	return withReportCache(ctx, "accountant_dashboard", cacheKeyParts(scope, asOf), func(ctx context.Context) (*AccountantDashboard, error) {
		return computeAccountantDashboard(ctx, scope, asOf)
	})
}

func computeAccountantDashboard(ctx context.Context, scope Scope, asOf time.Time) (*AccountantDashboard, error) {
	db := config.GetDB()
	companyId := scope.CompanyId
	today := utils.TruncateToDay(asOf)
	tomorrow := today.AddDate(0, 0, 1)

	company, err := models.GetCompanyById(ctx, companyId)
	if err != nil {
		return nil, err
	}

	var invoicesToSend int64
	if err := db.WithContext(ctx).Model(&models.Invoice{}).
		Where("company_id = ? AND status = ? AND invoice_date >= ? AND invoice_date < ?",
			companyId, models.InvoiceStatusPosted, today, tomorrow).
		Count(&invoicesToSend).Error; err != nil {
		return nil, err
	}

	var billsToProcess int64
	if err := db.WithContext(ctx).Model(&models.Bill{}).
		Where("company_id = ? AND status = ?", companyId, models.BillStatusDraft).
		Count(&billsToProcess).Error; err != nil {
		return nil, err
	}

	var paymentsDueToday int64
	if err := db.WithContext(ctx).Model(&models.Bill{}).
		Where("company_id = ? AND status IN ? AND due_date >= ? AND due_date < ?",
			companyId, models.BillOutstandingStatuses, today, tomorrow).
		Count(&paymentsDueToday).Error; err != nil {
		return nil, err
	}

	// Candidate costs scope through the candidate's job order; the table has
	// no company_id of its own.
	unprocessedCosts, unprocessedAmount, err := getUnprocessedCosts(ctx, companyId)
	if err != nil {
		return nil, err
	}

	var draftInvoices int64
	if err := db.WithContext(ctx).Model(&models.Invoice{}).
		Where("company_id = ? AND status = ?", companyId, models.InvoiceStatusDraft).
		Count(&draftInvoices).Error; err != nil {
		return nil, err
	}

	var openInvoices int64
	if err := db.WithContext(ctx).Model(&models.Invoice{}).
		Where("company_id = ? AND status IN ?", companyId, models.InvoiceOutstandingStatuses).
		Count(&openInvoices).Error; err != nil {
		return nil, err
	}

	var openBills int64
	if err := db.WithContext(ctx).Model(&models.Bill{}).
		Where("company_id = ? AND status IN ?", companyId, models.BillOutstandingStatuses).
		Count(&openBills).Error; err != nil {
		return nil, err
	}

	recentInvoices, err := getRecentInvoices(ctx, companyId, 10)
	if err != nil {
		return nil, err
	}

	recentBills, err := getRecentBills(ctx, companyId, 10)
	if err != nil {
		return nil, err
	}

	return &AccountantDashboard{
		Role: models.UserRoleAccountant,
		Company: CompanyInfo{
			Id:   company.ID,
			Name: company.Name,
			Code: company.Code,
		},
		TodayTasks: TodayTasks{
			InvoicesToSend:      invoicesToSend,
			BillsToProcess:      billsToProcess,
			PaymentsDueToday:    paymentsDueToday,
			UnprocessedCosts:    unprocessedCosts,
			UnprocessedCostsAmt: NewMoney(unprocessedAmount),
		},
		QuickStats: QuickStats{
			DraftInvoices: draftInvoices,
			DraftBills:    billsToProcess,
			OpenInvoices:  openInvoices,
			OpenBills:     openBills,
		},
		RecentInvoices: recentInvoices,
		RecentBills:    recentBills,
	}, nil
}

func getUnprocessedCosts(ctx context.Context, companyId int) (int64, decimal.Decimal, error) {
	db := config.GetDB()
	var row struct {
		Cnt   int64
		Total decimal.Decimal
	}
	query := `
		SELECT COUNT(*) AS cnt, COALESCE(SUM(cc.amount), 0) AS total
		FROM candidate_costs cc
		JOIN candidates c ON c.id = cc.candidate_id
		JOIN job_orders jo ON jo.id = c.job_order_id
		WHERE jo.company_id = ? AND cc.bill_id IS NULL`
	if err := db.WithContext(ctx).Raw(query, companyId).Scan(&row).Error; err != nil {
		return 0, decimal.Zero, err
	}
	return row.Cnt, row.Total, nil
}

type invoiceListRow struct {
	Id            int
	InvoiceNumber string
	EmployerName  string
	TotalAmount   decimal.Decimal
	Status        string
	DueDate       time.Time
}

func getRecentInvoices(ctx context.Context, companyId int, limit int) ([]InvoiceEntry, error) {
	db := config.GetDB()
	var rows []invoiceListRow
	query := `
		SELECT i.id AS id, i.invoice_number, e.name AS employer_name,
			i.total_amount, i.status, i.due_date
		FROM invoices i
		JOIN employers e ON e.id = i.employer_id
		WHERE i.company_id = ?
		ORDER BY i.created_at DESC
		LIMIT ?`
	if err := db.WithContext(ctx).Raw(query, companyId, limit).Scan(&rows).Error; err != nil {
		return nil, err
	}

	entries := make([]InvoiceEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, InvoiceEntry{
			Id:            row.Id,
			InvoiceNumber: row.InvoiceNumber,
			Employer:      row.EmployerName,
			Amount:        NewMoney(row.TotalAmount),
			Status:        row.Status,
			DueDate:       row.DueDate,
		})
	}
	return entries, nil
}

type billListRow struct {
	Id          int
	BillNumber  string
	VendorName  string
	TotalAmount decimal.Decimal
	Status      string
	DueDate     time.Time
}

func getRecentBills(ctx context.Context, companyId int, limit int) ([]BillEntry, error) {
	db := config.GetDB()
	var rows []billListRow
	query := `
		SELECT b.id AS id, b.bill_number, v.name AS vendor_name,
			b.total_amount, b.status, b.due_date
		FROM bills b
		JOIN vendors v ON v.id = b.vendor_id
		WHERE b.company_id = ?
		ORDER BY b.created_at DESC
		LIMIT ?`
	if err := db.WithContext(ctx).Raw(query, companyId, limit).Scan(&rows).Error; err != nil {
		return nil, err
	}

	entries := make([]BillEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, BillEntry{
			Id:         row.Id,
			BillNumber: row.BillNumber,
			Vendor:     row.VendorName,
			Amount:     NewMoney(row.TotalAmount),
			Status:     row.Status,
			DueDate:    row.DueDate,
		})
	}
	return entries, nil
}
