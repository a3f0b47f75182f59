package reports

import (
	"context"
	"fmt"
	"time"

	"bitbucket.org/mahadgroup/erp_backend/config"
	"bitbucket.org/mahadgroup/erp_backend/models"
	"bitbucket.org/mahadgroup/erp_backend/utils"
	"github.com/shopspring/decimal"
)

// HQAdminDashboard is the consolidated group-wide view.
type HQAdminDashboard struct {
	Role             models.UserRole  `json:"role"`
	Summary          HQAdminSummary   `json:"summary"`
	Financial        HQAdminFinancial `json:"financial"`
	Companies        []HQCompanyStats `json:"companies"`
	RecentActivities []ActivityEntry  `json:"recent_activities"`
}

func (d *HQAdminDashboard) DashboardRole() models.UserRole { return d.Role }

type HQAdminSummary struct {
	TotalCompanies     int64  `json:"total_companies"`
	TotalJobOrders     int64  `json:"total_job_orders"`
	TotalCandidates    int64  `json:"total_candidates"`
	DeployedCandidates int64  `json:"deployed_candidates"`
	DeploymentRate     string `json:"deployment_rate"`
}

type HQAdminFinancial struct {
	RevenueYtd       Money            `json:"revenue_ytd"`
	TotalAr          Money            `json:"total_ar"`
	TotalAp          Money            `json:"total_ap"`
	RevenueByCountry []CountryRevenue `json:"revenue_by_country"`
}

type CountryRevenue struct {
	Country  string `json:"country"`
	Code     string `json:"code"`
	Revenue  Money  `json:"revenue"`
	Currency string `json:"currency"`
}

type HQCompanyStats struct {
	Id                 int    `json:"id"`
	Name               string `json:"name"`
	Code               string `json:"code"`
	Country            string `json:"country"`
	ActiveJobOrders    int64  `json:"active_job_orders"`
	CandidatesDeployed int64  `json:"candidates_deployed"`
	RevenueYtd         Money  `json:"revenue_ytd"`
}

type ActivityEntry struct {
	Type        string    `json:"type"`
	Id          int       `json:"id"`
	Description string    `json:"description"`
	Company     string    `json:"company"`
	Amount      Money     `json:"amount"`
	Currency    string    `json:"currency"`
	Date        time.Time `json:"date"`
}

type companyCountRow struct {
	CompanyId int
	Total     int64
}

type companySumRow struct {
	CompanyId int
	Total     decimal.Decimal
}

func GetHQAdminDashboard(ctx context.Context, asOf time.Time) (*HQAdminDashboard, error) {
	return withReportCache(ctx, "hq_admin_dashboard", cacheKeyParts(Scope{}, asOf), func(ctx context.Context) (*HQAdminDashboard, error) {
		return computeHQAdminDashboard(ctx, asOf)
	})
}

func computeHQAdminDashboard(ctx context.Context, asOf time.Time) (*HQAdminDashboard, error) {
	// Group-wide view: bypass the company guard for model queries.
	ctx = utils.SetSkipCompanyScopeInContext(ctx, true)

	db := config.GetDB()
	yearStart := utils.StartOfYear(asOf)
	monthStart := utils.StartOfMonth(asOf)
	windowEnd := utils.WindowEnd(asOf)

	companies, err := models.GetActiveCompanies(ctx)
	if err != nil {
		return nil, err
	}

	var totalJobOrders int64
	if err := db.WithContext(ctx).Model(&models.JobOrder{}).
		Where("is_active = ?", true).Count(&totalJobOrders).Error; err != nil {
		return nil, err
	}

	var totalCandidates int64
	if err := db.WithContext(ctx).Model(&models.Candidate{}).Count(&totalCandidates).Error; err != nil {
		return nil, err
	}

	var deployedCandidates int64
	if err := db.WithContext(ctx).Model(&models.Candidate{}).
		Where("current_stage = ?", models.CandidateStageDeployed).
		Count(&deployedCandidates).Error; err != nil {
		return nil, err
	}

	totalRevenueYtd, err := sumQuery(ctx, `
		SELECT COALESCE(SUM(total_amount), 0) AS total
		FROM invoices
		WHERE invoice_date >= ? AND invoice_date < ? AND status IN ?`,
		yearStart, windowEnd, models.InvoiceRevenueStatuses)
	if err != nil {
		return nil, err
	}

	totalAr, err := sumQuery(ctx, `
		SELECT COALESCE(SUM(total_amount), 0) AS total
		FROM invoices
		WHERE status IN ?`,
		models.InvoiceOutstandingStatuses)
	if err != nil {
		return nil, err
	}

	totalAp, err := sumQuery(ctx, `
		SELECT COALESCE(SUM(total_amount), 0) AS total
		FROM bills
		WHERE status IN ?`,
		models.BillOutstandingStatuses)
	if err != nil {
		return nil, err
	}

	// Per-company stats in three grouped queries instead of a query per company.
	var jobOrderRows []companyCountRow
	if err := db.WithContext(ctx).Raw(`
		SELECT company_id, COUNT(*) AS total
		FROM job_orders
		WHERE is_active = ?
		GROUP BY company_id`, true).Scan(&jobOrderRows).Error; err != nil {
		return nil, err
	}

	var deployedRows []companyCountRow
	if err := db.WithContext(ctx).Raw(`
		SELECT jo.company_id AS company_id, COUNT(*) AS total
		FROM candidates c
		JOIN job_orders jo ON jo.id = c.job_order_id
		WHERE c.current_stage = ?
		GROUP BY jo.company_id`, models.CandidateStageDeployed).Scan(&deployedRows).Error; err != nil {
		return nil, err
	}

	var revenueYtdRows []companySumRow
	if err := db.WithContext(ctx).Raw(`
		SELECT company_id, COALESCE(SUM(total_amount), 0) AS total
		FROM invoices
		WHERE invoice_date >= ? AND invoice_date < ? AND status IN ?
		GROUP BY company_id`,
		yearStart, windowEnd, models.InvoiceRevenueStatuses).Scan(&revenueYtdRows).Error; err != nil {
		return nil, err
	}

	var revenueMtdRows []companySumRow
	if err := db.WithContext(ctx).Raw(`
		SELECT company_id, COALESCE(SUM(total_amount), 0) AS total
		FROM invoices
		WHERE invoice_date >= ? AND invoice_date < ? AND status IN ?
		GROUP BY company_id`,
		monthStart, windowEnd, models.InvoiceRevenueStatuses).Scan(&revenueMtdRows).Error; err != nil {
		return nil, err
	}

	jobOrdersByCompany := make(map[int]int64, len(jobOrderRows))
	for _, row := range jobOrderRows {
		jobOrdersByCompany[row.CompanyId] = row.Total
	}
	deployedByCompany := make(map[int]int64, len(deployedRows))
	for _, row := range deployedRows {
		deployedByCompany[row.CompanyId] = row.Total
	}
	revenueYtdByCompany := make(map[int]decimal.Decimal, len(revenueYtdRows))
	for _, row := range revenueYtdRows {
		revenueYtdByCompany[row.CompanyId] = row.Total
	}
	revenueMtdByCompany := make(map[int]decimal.Decimal, len(revenueMtdRows))
	for _, row := range revenueMtdRows {
		revenueMtdByCompany[row.CompanyId] = row.Total
	}

	companiesData := make([]HQCompanyStats, 0, len(companies))
	revenueByCountry := make([]CountryRevenue, 0, len(companies))
	for _, company := range companies {
		companiesData = append(companiesData, HQCompanyStats{
			Id:                 company.ID,
			Name:               company.Name,
			Code:               company.Code,
			Country:            company.CountryName(),
			ActiveJobOrders:    jobOrdersByCompany[company.ID],
			CandidatesDeployed: deployedByCompany[company.ID],
			RevenueYtd:         NewMoney(revenueYtdByCompany[company.ID]),
		})
		revenueByCountry = append(revenueByCountry, CountryRevenue{
			Country:  company.CountryName(),
			Code:     company.Code,
			Revenue:  NewMoney(revenueMtdByCompany[company.ID]),
			Currency: company.BaseCurrency,
		})
	}

	recentActivities, err := getRecentInvoiceActivity(ctx, 10)
	if err != nil {
		return nil, err
	}

	return &HQAdminDashboard{
		Role: models.UserRoleHQAdmin,
		Summary: HQAdminSummary{
			TotalCompanies:     int64(len(companies)),
			TotalJobOrders:     totalJobOrders,
			TotalCandidates:    totalCandidates,
			DeployedCandidates: deployedCandidates,
			DeploymentRate:     formatRate(deployedCandidates, totalCandidates),
		},
		Financial: HQAdminFinancial{
			RevenueYtd:       NewMoney(totalRevenueYtd),
			TotalAr:          NewMoney(totalAr),
			TotalAp:          NewMoney(totalAp),
			RevenueByCountry: revenueByCountry,
		},
		Companies:        companiesData,
		RecentActivities: recentActivities,
	}, nil
}

type invoiceActivityRow struct {
	Id            int
	InvoiceNumber string
	EmployerName  string
	CompanyCode   string
	TotalAmount   decimal.Decimal
	Currency      string
	CreatedAt     time.Time
}

func getRecentInvoiceActivity(ctx context.Context, limit int) ([]ActivityEntry, error) {
	db := config.GetDB()
	var rows []invoiceActivityRow
	query := `
		SELECT i.id AS id, i.invoice_number, e.name AS employer_name,
			co.code AS company_code, i.total_amount, i.currency, i.created_at
		FROM invoices i
		JOIN employers e ON e.id = i.employer_id
		JOIN companies co ON co.id = i.company_id
		ORDER BY i.created_at DESC
		LIMIT ?`
	if err := db.WithContext(ctx).Raw(query, limit).Scan(&rows).Error; err != nil {
		return nil, err
	}

	activities := make([]ActivityEntry, 0, len(rows))
	for _, row := range rows {
		activities = append(activities, ActivityEntry{
			Type:        "invoice",
			Id:          row.Id,
			Description: fmt.Sprintf("Invoice %s created for %s", row.InvoiceNumber, row.EmployerName),
			Company:     row.CompanyCode,
			Amount:      NewMoney(row.TotalAmount),
			Currency:    row.Currency,
			Date:        row.CreatedAt,
		})
	}
	return activities, nil
}
