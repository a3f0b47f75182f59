package reports

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestAuditorDashboard_SystemOverviewKeys(t *testing.T) {
	payload, err := json.Marshal(&AuditorDashboard{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	keys := []string{
		"active_companies",
		"total_users",
		"active_job_orders",
		"total_candidates",
		"total_invoices",
		"total_bills",
	}
	for _, key := range keys {
		if !strings.Contains(string(payload), `"`+key+`"`) {
			t.Errorf("auditor payload missing %q: %s", key, payload)
		}
	}
}

func TestAuditCompanySummary_CarriesCandidateCount(t *testing.T) {
	payload, err := json.Marshal(AuditCompanySummary{})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(payload), `"candidate_count"`) {
		t.Errorf("company summary missing candidate_count: %s", payload)
	}
}
