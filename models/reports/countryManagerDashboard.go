package reports

import (
	"context"
	"time"

	"bitbucket.org/mahadgroup/erp_backend/config"
	"bitbucket.org/mahadgroup/erp_backend/models"
	"bitbucket.org/mahadgroup/erp_backend/utils"
)

// CountryManagerDashboard covers one company's operations end to end.
type CountryManagerDashboard struct {
	Role              models.UserRole         `json:"role"`
	Company           CompanyInfo             `json:"company"`
	Summary           CountryManagerSummary   `json:"summary"`
	Financial         CountryManagerFinancial `json:"financial"`
	CandidatePipeline Pipeline                `json:"candidate_pipeline"`
	TopEmployers      []TopEmployer           `json:"top_employers"`
	PendingApprovals  PendingApprovals        `json:"pending_approvals"`
	Branches          []BranchStats           `json:"branches"`
}

func (d *CountryManagerDashboard) DashboardRole() models.UserRole { return d.Role }

type CompanyInfo struct {
	Id      int    `json:"id"`
	Name    string `json:"name"`
	Code    string `json:"code"`
	Country string `json:"country,omitempty"`
}

type CountryManagerSummary struct {
	TotalBranches      int64 `json:"total_branches"`
	ActiveJobOrders    int64 `json:"active_job_orders"`
	TotalCandidates    int64 `json:"total_candidates"`
	DeployedCandidates int64 `json:"deployed_candidates"`
}

type CountryManagerFinancial struct {
	RevenueMtd    Money  `json:"revenue_mtd"`
	RevenueYtd    Money  `json:"revenue_ytd"`
	ArOutstanding Money  `json:"ar_outstanding"`
	ApOutstanding Money  `json:"ap_outstanding"`
	Currency      string `json:"currency"`
}

type TopEmployer struct {
	EmployerId     int    `json:"employer_id"`
	EmployerName   string `json:"employer_name"`
	JobCount       int64  `json:"job_count"`
	CandidateCount int64  `json:"candidate_count"`
}

type PendingApprovals struct {
	Invoices int64 `json:"invoices"`
	Bills    int64 `json:"bills"`
}

type BranchStats struct {
	Id             int    `json:"id"`
	Name           string `json:"name"`
	Code           string `json:"code"`
	City           string `json:"city"`
	IsHeadquarters bool   `json:"is_headquarters"`
	Candidates     int64  `json:"candidates"`
}

func GetCountryManagerDashboard(ctx context.Context, scope Scope, asOf time.Time) (*CountryManagerDashboard, error) {
	return withReportCache(ctx, "country_manager_dashboard", cacheKeyParts(scope, asOf), func(ctx context.Context) (*CountryManagerDashboard, error) {
		return computeCountryManagerDashboard(ctx, scope, asOf)
	})
}

func computeCountryManagerDashboard(ctx context.Context, scope Scope, asOf time.Time) (*CountryManagerDashboard, error) {
	db := config.GetDB()
	companyId := scope.CompanyId
	monthStart := utils.StartOfMonth(asOf)
	yearStart := utils.StartOfYear(asOf)
	windowEnd := utils.WindowEnd(asOf)

	company, err := models.GetCompanyById(ctx, companyId)
	if err != nil {
		return nil, err
	}

	branches, err := models.GetActiveBranches(ctx, companyId)
	if err != nil {
		return nil, err
	}

	var activeJobOrders int64
	if err := db.WithContext(ctx).Model(&models.JobOrder{}).
		Where("company_id = ? AND is_active = ?", companyId, true).
		Count(&activeJobOrders).Error; err != nil {
		return nil, err
	}

	pipeline, err := getCandidatePipeline(ctx, companyId)
	if err != nil {
		return nil, err
	}

	revenueMtd, err := sumQuery(ctx, `
		SELECT COALESCE(SUM(total_amount), 0) AS total
		FROM invoices
		WHERE company_id = ? AND invoice_date >= ? AND invoice_date < ? AND status IN ?`,
		companyId, monthStart, windowEnd, models.InvoiceRevenueStatuses)
	if err != nil {
		return nil, err
	}

	revenueYtd, err := sumQuery(ctx, `
		SELECT COALESCE(SUM(total_amount), 0) AS total
		FROM invoices
		WHERE company_id = ? AND invoice_date >= ? AND invoice_date < ? AND status IN ?`,
		companyId, yearStart, windowEnd, models.InvoiceRevenueStatuses)
	if err != nil {
		return nil, err
	}

	arOutstanding, err := sumQuery(ctx, `
		SELECT COALESCE(SUM(total_amount), 0) AS total
		FROM invoices
		WHERE company_id = ? AND status IN ?`,
		companyId, models.InvoiceOutstandingStatuses)
	if err != nil {
		return nil, err
	}

	apOutstanding, err := sumQuery(ctx, `
		SELECT COALESCE(SUM(total_amount), 0) AS total
		FROM bills
		WHERE company_id = ? AND status IN ?`,
		companyId, models.BillOutstandingStatuses)
	if err != nil {
		return nil, err
	}

	topEmployers, err := getTopEmployers(ctx, companyId, 5)
	if err != nil {
		return nil, err
	}

	var pendingInvoices int64
	if err := db.WithContext(ctx).Model(&models.Invoice{}).
		Where("company_id = ? AND status = ?", companyId, models.InvoiceStatusDraft).
		Count(&pendingInvoices).Error; err != nil {
		return nil, err
	}

	var pendingBills int64
	if err := db.WithContext(ctx).Model(&models.Bill{}).
		Where("company_id = ? AND status = ?", companyId, models.BillStatusDraft).
		Count(&pendingBills).Error; err != nil {
		return nil, err
	}

	branchStats, err := getBranchStats(ctx, companyId, branches)
	if err != nil {
		return nil, err
	}

	return &CountryManagerDashboard{
		Role: models.UserRoleCountryManager,
		Company: CompanyInfo{
			Id:      company.ID,
			Name:    company.Name,
			Code:    company.Code,
			Country: company.CountryName(),
		},
		Summary: CountryManagerSummary{
			TotalBranches:      int64(len(branches)),
			ActiveJobOrders:    activeJobOrders,
			TotalCandidates:    pipeline.TotalCandidates(),
			DeployedCandidates: pipeline.CountFor(models.CandidateStageDeployed),
		},
		Financial: CountryManagerFinancial{
			RevenueMtd:    NewMoney(revenueMtd),
			RevenueYtd:    NewMoney(revenueYtd),
			ArOutstanding: NewMoney(arOutstanding),
			ApOutstanding: NewMoney(apOutstanding),
			Currency:      company.BaseCurrency,
		},
		CandidatePipeline: pipeline,
		TopEmployers:      topEmployers,
		PendingApprovals: PendingApprovals{
			Invoices: pendingInvoices,
			Bills:    pendingBills,
		},
		Branches: branchStats,
	}, nil
}

// getTopEmployers ranks a company's employers by active job-order volume.
func getTopEmployers(ctx context.Context, companyId int, limit int) ([]TopEmployer, error) {
	db := config.GetDB()
	var rows []TopEmployer
	query := `
		SELECT e.id AS employer_id, e.name AS employer_name,
			COUNT(DISTINCT jo.id) AS job_count,
			COUNT(c.id) AS candidate_count
		FROM job_orders jo
		JOIN employers e ON e.id = jo.employer_id
		LEFT JOIN candidates c ON c.job_order_id = jo.id
		WHERE jo.company_id = ? AND jo.is_active = ?
		GROUP BY e.id, e.name
		ORDER BY job_count DESC, candidate_count DESC
		LIMIT ?`
	if err := db.WithContext(ctx).Raw(query, companyId, true, limit).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []TopEmployer{}
	}
	return rows, nil
}

type branchCandidateRow struct {
	BranchId int
	Total    int64
}

func getBranchStats(ctx context.Context, companyId int, branches []models.Branch) ([]BranchStats, error) {
	db := config.GetDB()
	var rows []branchCandidateRow
	query := `
		SELECT jo.branch_id AS branch_id, COUNT(c.id) AS total
		FROM candidates c
		JOIN job_orders jo ON jo.id = c.job_order_id
		WHERE jo.company_id = ?
		GROUP BY jo.branch_id`
	if err := db.WithContext(ctx).Raw(query, companyId).Scan(&rows).Error; err != nil {
		return nil, err
	}

	candidatesByBranch := make(map[int]int64, len(rows))
	for _, row := range rows {
		candidatesByBranch[row.BranchId] = row.Total
	}

	stats := make([]BranchStats, 0, len(branches))
	for _, branch := range branches {
		stats = append(stats, BranchStats{
			Id:             branch.ID,
			Name:           branch.Name,
			Code:           branch.Code,
			City:           branch.City,
			IsHeadquarters: branch.IsHeadquarters,
			Candidates:     candidatesByBranch[branch.ID],
		})
	}
	return stats, nil
}
