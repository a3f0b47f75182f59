package reports

import (
	"context"
	"time"

	"bitbucket.org/mahadgroup/erp_backend/config"
	"bitbucket.org/mahadgroup/erp_backend/models"
	"bitbucket.org/mahadgroup/erp_backend/utils"
	"github.com/shopspring/decimal"
)

// FinanceManagerDashboard focuses on AR/AP health and month-to-date cash flow.
type FinanceManagerDashboard struct {
	Role           models.UserRole `json:"role"`
	Company        CompanyInfo     `json:"company"`
	ArSummary      ARSummary       `json:"ar_summary"`
	ApSummary      APSummary       `json:"ap_summary"`
	CashFlow       CashFlow        `json:"cash_flow"`
	PendingActions PendingActions  `json:"pending_actions"`
	RecentReceipts []ReceiptEntry  `json:"recent_receipts"`
	RecentPayments []PaymentEntry  `json:"recent_payments"`
}

func (d *FinanceManagerDashboard) DashboardRole() models.UserRole { return d.Role }

type ARSummary struct {
	Total   Money        `json:"total"`
	Overdue Money        `json:"overdue"`
	Current Money        `json:"current"`
	Aging   AgingBuckets `json:"aging"`
}

type APSummary struct {
	Total   Money `json:"total"`
	Overdue Money `json:"overdue"`
	Current Money `json:"current"`
}

type CashFlow struct {
	ReceiptsMtd Money `json:"receipts_mtd"`
	PaymentsMtd Money `json:"payments_mtd"`
	NetCashFlow Money `json:"net_cash_flow"`
}

type PendingActions struct {
	InvoicesToPost  int64 `json:"invoices_to_post"`
	BillsToPost     int64 `json:"bills_to_post"`
	PaymentsDueSoon int64 `json:"payments_due_soon"`
}

type ReceiptEntry struct {
	Id            int       `json:"id"`
	ReceiptNumber string    `json:"receipt_number"`
	Employer      string    `json:"employer"`
	Amount        Money     `json:"amount"`
	Date          time.Time `json:"date"`
}

type PaymentEntry struct {
	Id            int       `json:"id"`
	PaymentNumber string    `json:"payment_number"`
	Vendor        string    `json:"vendor"`
	Amount        Money     `json:"amount"`
	Date          time.Time `json:"date"`
}

func GetFinanceManagerDashboard(ctx context.Context, scope Scope, asOf time.Time) (*FinanceManagerDashboard, error) {
	return withReportCache(ctx, "finance_manager_dashboard", cacheKeyParts(scope, asOf), func(ctx context.Context) (*FinanceManagerDashboard, error) {
		return computeFinanceManagerDashboard(ctx, scope, asOf)
	})
}

func computeFinanceManagerDashboard(ctx context.Context, scope Scope, asOf time.Time) (*FinanceManagerDashboard, error) {
	db := config.GetDB()
	companyId := scope.CompanyId
	monthStart := utils.StartOfMonth(asOf)
	today := utils.TruncateToDay(asOf)
	windowEnd := utils.WindowEnd(asOf)

	company, err := models.GetCompanyById(ctx, companyId)
	if err != nil {
		return nil, err
	}

	// One row fetch covers total, overdue and every aging bucket; the split
	// happens in bucketAging so the sums reconcile by construction.
	arRows, err := getARAgingRows(ctx, companyId)
	if err != nil {
		return nil, err
	}
	arAging := bucketAging(arRows, asOf)
	arTotal := arAging.Total()
	arCurrent := arAging.Current
	arOverdue := arTotal.Sub(arCurrent)

	apTotal, err := sumQuery(ctx, `
		SELECT COALESCE(SUM(total_amount), 0) AS total
		FROM bills
		WHERE company_id = ? AND status IN ?`,
		companyId, models.BillOutstandingStatuses)
	if err != nil {
		return nil, err
	}

	apOverdue, err := sumQuery(ctx, `
		SELECT COALESCE(SUM(total_amount), 0) AS total
		FROM bills
		WHERE company_id = ? AND status IN ? AND due_date < ?`,
		companyId, models.BillOutstandingStatuses, today)
	if err != nil {
		return nil, err
	}

	receiptsMtd, err := sumQuery(ctx, `
		SELECT COALESCE(SUM(amount), 0) AS total
		FROM receipts
		WHERE company_id = ? AND receipt_date >= ? AND receipt_date < ?`,
		companyId, monthStart, windowEnd)
	if err != nil {
		return nil, err
	}

	paymentsMtd, err := sumQuery(ctx, `
		SELECT COALESCE(SUM(amount), 0) AS total
		FROM payments
		WHERE company_id = ? AND payment_date >= ? AND payment_date < ?`,
		companyId, monthStart, windowEnd)
	if err != nil {
		return nil, err
	}

	var invoicesToPost int64
	if err := db.WithContext(ctx).Model(&models.Invoice{}).
		Where("company_id = ? AND status = ?", companyId, models.InvoiceStatusDraft).
		Count(&invoicesToPost).Error; err != nil {
		return nil, err
	}

	var billsToPost int64
	if err := db.WithContext(ctx).Model(&models.Bill{}).
		Where("company_id = ? AND status = ?", companyId, models.BillStatusDraft).
		Count(&billsToPost).Error; err != nil {
		return nil, err
	}

	var paymentsDueSoon int64
	if err := db.WithContext(ctx).Model(&models.Bill{}).
		Where("company_id = ? AND status IN ? AND due_date <= ?",
			companyId, models.BillOutstandingStatuses, today.AddDate(0, 0, 7)).
		Count(&paymentsDueSoon).Error; err != nil {
		return nil, err
	}

	recentReceipts, err := getRecentReceipts(ctx, companyId, 5)
	if err != nil {
		return nil, err
	}

	recentPayments, err := getRecentPayments(ctx, companyId, 5)
	if err != nil {
		return nil, err
	}

	return &FinanceManagerDashboard{
		Role: models.UserRoleFinanceManager,
		Company: CompanyInfo{
			Id:   company.ID,
			Name: company.Name,
			Code: company.Code,
		},
		ArSummary: ARSummary{
			Total:   arTotal,
			Overdue: arOverdue,
			Current: arCurrent,
			Aging:   arAging,
		},
		ApSummary: APSummary{
			Total:   NewMoney(apTotal),
			Overdue: NewMoney(apOverdue),
			Current: NewMoney(apTotal.Sub(apOverdue)),
		},
		CashFlow: CashFlow{
			ReceiptsMtd: NewMoney(receiptsMtd),
			PaymentsMtd: NewMoney(paymentsMtd),
			NetCashFlow: NewMoney(receiptsMtd.Sub(paymentsMtd)),
		},
		PendingActions: PendingActions{
			InvoicesToPost:  invoicesToPost,
			BillsToPost:     billsToPost,
			PaymentsDueSoon: paymentsDueSoon,
		},
		RecentReceipts: recentReceipts,
		RecentPayments: recentPayments,
	}, nil
}

type receiptRow struct {
	Id            int
	ReceiptNumber string
	EmployerName  string
	Amount        decimal.Decimal
	ReceiptDate   time.Time
}

func getRecentReceipts(ctx context.Context, companyId int, limit int) ([]ReceiptEntry, error) {
	db := config.GetDB()
	var rows []receiptRow
	query := `
		SELECT r.id AS id, r.receipt_number, e.name AS employer_name,
			r.amount, r.receipt_date
		FROM receipts r
		JOIN employers e ON e.id = r.employer_id
		WHERE r.company_id = ?
		ORDER BY r.receipt_date DESC
		LIMIT ?`
	if err := db.WithContext(ctx).Raw(query, companyId, limit).Scan(&rows).Error; err != nil {
		return nil, err
	}

	entries := make([]ReceiptEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, ReceiptEntry{
			Id:            row.Id,
			ReceiptNumber: row.ReceiptNumber,
			Employer:      row.EmployerName,
			Amount:        NewMoney(row.Amount),
			Date:          row.ReceiptDate,
		})
	}
	return entries, nil
}

type paymentRow struct {
	Id            int
	PaymentNumber string
	VendorName    string
	Amount        decimal.Decimal
	PaymentDate   time.Time
}

func getRecentPayments(ctx context.Context, companyId int, limit int) ([]PaymentEntry, error) {
	db := config.GetDB()
	var rows []paymentRow
	query := `
		SELECT p.id AS id, p.payment_number, v.name AS vendor_name,
			p.amount, p.payment_date
		FROM payments p
		JOIN vendors v ON v.id = p.vendor_id
		WHERE p.company_id = ?
		ORDER BY p.payment_date DESC
		LIMIT ?`
	if err := db.WithContext(ctx).Raw(query, companyId, limit).Scan(&rows).Error; err != nil {
		return nil, err
	}

	entries := make([]PaymentEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, PaymentEntry{
			Id:            row.Id,
			PaymentNumber: row.PaymentNumber,
			Vendor:        row.VendorName,
			Amount:        NewMoney(row.Amount),
			Date:          row.PaymentDate,
		})
	}
	return entries, nil
}
