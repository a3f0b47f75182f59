package reports

import (
	"testing"

	"bitbucket.org/mahadgroup/erp_backend/models"
)

func TestEmptyPipeline_HasAllStageKeys(t *testing.T) {
	p := emptyPipeline()
	if len(p) != len(models.AllCandidateStages) {
		t.Fatalf("pipeline has %d keys, want %d", len(p), len(models.AllCandidateStages))
	}
	for _, stage := range models.AllCandidateStages {
		bucket, ok := p[stage]
		if !ok {
			t.Errorf("stage %s missing from empty pipeline", stage)
			continue
		}
		if bucket.Count != 0 {
			t.Errorf("stage %s count = %d, want 0", stage, bucket.Count)
		}
		if bucket.Name == "" {
			t.Errorf("stage %s has empty display name", stage)
		}
	}
	if p.TotalCandidates() != 0 {
		t.Errorf("empty pipeline total = %d, want 0", p.TotalCandidates())
	}
}

func TestPipeline_TotalSumsCounts(t *testing.T) {
	p := emptyPipeline()
	p[models.CandidateStageSourcing] = StageBucket{Name: "Sourcing", Count: 3}
	p[models.CandidateStageDeployed] = StageBucket{Name: "Deployed", Count: 5}

	if got := p.TotalCandidates(); got != 8 {
		t.Errorf("total = %d, want 8", got)
	}
	if got := p.CountFor(models.CandidateStageDeployed); got != 5 {
		t.Errorf("deployed count = %d, want 5", got)
	}
	if got := p.CountFor(models.CandidateStageVisa); got != 0 {
		t.Errorf("visa count = %d, want 0", got)
	}
}
