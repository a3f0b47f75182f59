package reports

import (
	"context"

	"bitbucket.org/mahadgroup/erp_backend/config"
	"bitbucket.org/mahadgroup/erp_backend/models"
)

// StageBucket is one candidate pipeline entry: display name plus count.
type StageBucket struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

// Pipeline maps every stage code to its bucket. All 8 stage keys are always
// present; an empty scope yields zero counts, not absent keys.
type Pipeline map[models.CandidateStage]StageBucket

func (p Pipeline) TotalCandidates() int64 {
	var total int64
	for _, bucket := range p {
		total += bucket.Count
	}
	return total
}

func (p Pipeline) CountFor(stage models.CandidateStage) int64 {
	return p[stage].Count
}

func emptyPipeline() Pipeline {
	p := make(Pipeline, len(models.AllCandidateStages))
	for _, stage := range models.AllCandidateStages {
		p[stage] = StageBucket{Name: stage.DisplayName(), Count: 0}
	}
	return p
}

type stageCountRow struct {
	Stage models.CandidateStage
	Total int64
}

// getCandidatePipeline counts candidates per stage for one company in a
// single grouped query. Candidates hang off job orders, so the company
// predicate goes through the join (the company guard does not see raw SQL).
func getCandidatePipeline(ctx context.Context, companyId int) (Pipeline, error) {
	db := config.GetDB()
	var rows []stageCountRow
	query := `
		SELECT c.current_stage AS stage, COUNT(*) AS total
		FROM candidates c
		JOIN job_orders jo ON jo.id = c.job_order_id
		WHERE jo.company_id = ?
		GROUP BY c.current_stage`
	if err := db.WithContext(ctx).Raw(query, companyId).Scan(&rows).Error; err != nil {
		return nil, err
	}

	pipeline := emptyPipeline()
	for _, row := range rows {
		pipeline[row.Stage] = StageBucket{Name: row.Stage.DisplayName(), Count: row.Total}
	}
	return pipeline, nil
}

// getBranchCandidatePipeline narrows the pipeline to one branch's job orders.
func getBranchCandidatePipeline(ctx context.Context, companyId, branchId int) (Pipeline, error) {
	db := config.GetDB()
	var rows []stageCountRow
	query := `
		SELECT c.current_stage AS stage, COUNT(*) AS total
		FROM candidates c
		JOIN job_orders jo ON jo.id = c.job_order_id
		WHERE jo.company_id = ? AND jo.branch_id = ?
		GROUP BY c.current_stage`
	if err := db.WithContext(ctx).Raw(query, companyId, branchId).Scan(&rows).Error; err != nil {
		return nil, err
	}

	pipeline := emptyPipeline()
	for _, row := range rows {
		pipeline[row.Stage] = StageBucket{Name: row.Stage.DisplayName(), Count: row.Total}
	}
	return pipeline, nil
}
