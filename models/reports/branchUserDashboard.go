package reports

import (
	"context"
	"time"

	"bitbucket.org/mahadgroup/erp_backend/config"
	"bitbucket.org/mahadgroup/erp_backend/models"
	"bitbucket.org/mahadgroup/erp_backend/utils"
)

// BranchUserDashboard is operational: the branch's pipeline, the candidates
// stuck waiting on paperwork, and the job orders still open.
type BranchUserDashboard struct {
	Role              models.UserRole  `json:"role"`
	Company           CompanyInfo      `json:"company"`
	Summary           BranchSummary    `json:"summary"`
	CandidatePipeline Pipeline         `json:"candidate_pipeline"`
	ActionRequired    ActionRequired   `json:"action_required"`
	ActiveJobOrders   []JobOrderEntry  `json:"active_job_orders"`
	RecentCandidates  []CandidateEntry `json:"recent_candidates"`
}

func (d *BranchUserDashboard) DashboardRole() models.UserRole { return d.Role }

type BranchSummary struct {
	ActiveJobOrders   int64 `json:"active_job_orders"`
	TotalCandidates   int64 `json:"total_candidates"`
	DeployedThisMonth int64 `json:"deployed_this_month"`
}

type ActionRequired struct {
	NeedsDocumentation int64 `json:"needs_documentation"`
	NeedsVisa          int64 `json:"needs_visa"`
	NeedsMedical       int64 `json:"needs_medical"`
}

type JobOrderEntry struct {
	Id            int    `json:"id"`
	PositionTitle string `json:"position_title"`
	Employer      string `json:"employer"`
	NumPositions  int    `json:"num_positions"`
	Filled        int64  `json:"filled"`
}

type CandidateEntry struct {
	Id           int    `json:"id"`
	FullName     string `json:"full_name"`
	CurrentStage string `json:"current_stage"`
	Position     string `json:"position"`
}

func GetBranchUserDashboard(ctx context.Context, scope Scope, asOf time.Time) (*BranchUserDashboard, error) {
	return withReportCache(ctx, "branch_user_dashboard", cacheKeyParts(scope, asOf), func(ctx context.Context) (*BranchUserDashboard, error) {
		return computeBranchUserDashboard(ctx, scope, asOf)
	})
}

func computeBranchUserDashboard(ctx context.Context, scope Scope, asOf time.Time) (*BranchUserDashboard, error) {
	db := config.GetDB()
	companyId := scope.CompanyId
	branchId := scope.BranchId
	monthStart := utils.StartOfMonth(asOf)

	company, err := models.GetCompanyById(ctx, companyId)
	if err != nil {
		return nil, err
	}

	// Users without a branch assignment see the whole company.
	branchFilter := "jo.company_id = ?"
	branchArgs := []interface{}{companyId}
	if branchId > 0 {
		branchFilter = "jo.company_id = ? AND jo.branch_id = ?"
		branchArgs = append(branchArgs, branchId)
	}

	var pipeline Pipeline
	if branchId > 0 {
		pipeline, err = getBranchCandidatePipeline(ctx, companyId, branchId)
	} else {
		pipeline, err = getCandidatePipeline(ctx, companyId)
	}
	if err != nil {
		return nil, err
	}

	jobOrderQuery := db.WithContext(ctx).Model(&models.JobOrder{}).
		Where("company_id = ? AND is_active = ?", companyId, true)
	if branchId > 0 {
		jobOrderQuery = jobOrderQuery.Where("branch_id = ?", branchId)
	}
	var activeJobOrders int64
	if err := jobOrderQuery.Count(&activeJobOrders).Error; err != nil {
		return nil, err
	}

	deployedThisMonth, err := countQuery(ctx, `
		SELECT COUNT(*) AS total
		FROM candidates c
		JOIN job_orders jo ON jo.id = c.job_order_id
		WHERE `+branchFilter+` AND c.current_stage = ? AND c.deployed_date >= ? AND c.deployed_date < ?`,
		append(append([]interface{}{}, branchArgs...), models.CandidateStageDeployed, monthStart, utils.WindowEnd(asOf))...)
	if err != nil {
		return nil, err
	}

	actionRequired, err := getActionRequired(ctx, branchFilter, branchArgs)
	if err != nil {
		return nil, err
	}

	jobOrders, err := getActiveJobOrders(ctx, branchFilter, branchArgs)
	if err != nil {
		return nil, err
	}

	recentCandidates, err := getRecentCandidates(ctx, branchFilter, branchArgs, 10)
	if err != nil {
		return nil, err
	}

	return &BranchUserDashboard{
		Role: models.UserRoleBranchUser,
		Company: CompanyInfo{
			Id:   company.ID,
			Name: company.Name,
			Code: company.Code,
		},
		Summary: BranchSummary{
			ActiveJobOrders:   activeJobOrders,
			TotalCandidates:   pipeline.TotalCandidates(),
			DeployedThisMonth: deployedThisMonth,
		},
		CandidatePipeline: pipeline,
		ActionRequired:    actionRequired,
		ActiveJobOrders:   jobOrders,
		RecentCandidates:  recentCandidates,
	}, nil
}

func getActionRequired(ctx context.Context, branchFilter string, branchArgs []interface{}) (ActionRequired, error) {
	db := config.GetDB()
	var rows []stageCountRow
	query := `
		SELECT c.current_stage AS stage, COUNT(*) AS total
		FROM candidates c
		JOIN job_orders jo ON jo.id = c.job_order_id
		WHERE ` + branchFilter + ` AND c.current_stage IN ?
		GROUP BY c.current_stage`
	stages := []string{
		string(models.CandidateStageDocumentation),
		string(models.CandidateStageVisa),
		string(models.CandidateStageMedical),
	}
	args := append(append([]interface{}{}, branchArgs...), stages)
	if err := db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return ActionRequired{}, err
	}

	var out ActionRequired
	for _, row := range rows {
		switch row.Stage {
		case models.CandidateStageDocumentation:
			out.NeedsDocumentation = row.Total
		case models.CandidateStageVisa:
			out.NeedsVisa = row.Total
		case models.CandidateStageMedical:
			out.NeedsMedical = row.Total
		}
	}
	return out, nil
}

type jobOrderListRow struct {
	Id            int
	PositionTitle string
	EmployerName  string
	NumPositions  int
	Filled        int64
}

// getActiveJobOrders lists open job orders with how many positions each has
// filled, deployed and invoiced candidates counting as filled.
func getActiveJobOrders(ctx context.Context, branchFilter string, branchArgs []interface{}) ([]JobOrderEntry, error) {
	db := config.GetDB()
	var rows []jobOrderListRow
	query := `
		SELECT jo.id AS id, jo.position_title, e.name AS employer_name,
			jo.num_positions,
			COALESCE(SUM(CASE WHEN c.current_stage IN ? THEN 1 ELSE 0 END), 0) AS filled
		FROM job_orders jo
		JOIN employers e ON e.id = jo.employer_id
		LEFT JOIN candidates c ON c.job_order_id = jo.id
		WHERE ` + branchFilter + ` AND jo.is_active = 1
		GROUP BY jo.id, jo.position_title, e.name, jo.num_positions
		ORDER BY jo.created_at DESC`
	filledStages := []string{
		string(models.CandidateStageDeployed),
		string(models.CandidateStageInvoiced),
	}
	args := append([]interface{}{filledStages}, branchArgs...)
	if err := db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	entries := make([]JobOrderEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, JobOrderEntry{
			Id:            row.Id,
			PositionTitle: row.PositionTitle,
			Employer:      row.EmployerName,
			NumPositions:  row.NumPositions,
			Filled:        row.Filled,
		})
	}
	return entries, nil
}

type candidateListRow struct {
	Id            int
	FullName      string
	CurrentStage  models.CandidateStage
	PositionTitle string
}

func getRecentCandidates(ctx context.Context, branchFilter string, branchArgs []interface{}, limit int) ([]CandidateEntry, error) {
	db := config.GetDB()
	var rows []candidateListRow
	query := `
		SELECT c.id AS id, c.full_name, c.current_stage, jo.position_title
		FROM candidates c
		JOIN job_orders jo ON jo.id = c.job_order_id
		WHERE ` + branchFilter + `
		ORDER BY c.created_at DESC
		LIMIT ?`
	args := append(append([]interface{}{}, branchArgs...), limit)
	if err := db.WithContext(ctx).Raw(query, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	entries := make([]CandidateEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, CandidateEntry{
			Id:           row.Id,
			FullName:     row.FullName,
			CurrentStage: row.CurrentStage.DisplayName(),
			Position:     row.PositionTitle,
		})
	}
	return entries, nil
}
