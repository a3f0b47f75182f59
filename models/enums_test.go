package models

import "testing"

func TestParseUserRole(t *testing.T) {
	valid := []string{"HQ_ADMIN", "COUNTRY_MANAGER", "FINANCE_MANAGER", "ACCOUNTANT", "BRANCH_USER", "AUDITOR"}
	for _, s := range valid {
		role, err := ParseUserRole(s)
		if err != nil {
			t.Errorf("ParseUserRole(%q) error: %v", s, err)
		}
		if string(role) != s {
			t.Errorf("ParseUserRole(%q) = %q", s, role)
		}
	}

	invalid := []string{"", "MANAGER_X", "hq_admin", "ADMIN"}
	for _, s := range invalid {
		if _, err := ParseUserRole(s); err == nil {
			t.Errorf("ParseUserRole(%q) expected error", s)
		}
	}
}

func TestUserRoleSlugRoundTrip(t *testing.T) {
	roles := []UserRole{
		UserRoleHQAdmin, UserRoleCountryManager, UserRoleFinanceManager,
		UserRoleAccountant, UserRoleBranchUser, UserRoleAuditor,
	}
	for _, role := range roles {
		slug := role.Slug()
		if slug == "" {
			t.Errorf("role %s has empty slug", role)
			continue
		}
		back, err := UserRoleFromSlug(slug)
		if err != nil {
			t.Errorf("UserRoleFromSlug(%q) error: %v", slug, err)
		}
		if back != role {
			t.Errorf("slug round trip: %s -> %s -> %s", role, slug, back)
		}
	}

	if _, err := UserRoleFromSlug("super-admin"); err == nil {
		t.Error("UserRoleFromSlug(super-admin) expected error")
	}
}

func TestIsCompanyScoped(t *testing.T) {
	unscoped := []UserRole{UserRoleHQAdmin, UserRoleAuditor}
	for _, role := range unscoped {
		if role.IsCompanyScoped() {
			t.Errorf("%s should not be company scoped", role)
		}
	}
	scoped := []UserRole{UserRoleCountryManager, UserRoleFinanceManager, UserRoleAccountant, UserRoleBranchUser}
	for _, role := range scoped {
		if !role.IsCompanyScoped() {
			t.Errorf("%s should be company scoped", role)
		}
	}
}

func TestAllCandidateStages_CompleteAndOrdered(t *testing.T) {
	if len(AllCandidateStages) != 8 {
		t.Fatalf("expected 8 stages, got %d", len(AllCandidateStages))
	}
	if AllCandidateStages[0] != CandidateStageSourcing {
		t.Errorf("first stage = %s, want SOURCING", AllCandidateStages[0])
	}
	if AllCandidateStages[len(AllCandidateStages)-1] != CandidateStageInvoiced {
		t.Errorf("last stage = %s, want INVOICED", AllCandidateStages[len(AllCandidateStages)-1])
	}
	seen := make(map[CandidateStage]bool)
	for _, s := range AllCandidateStages {
		if seen[s] {
			t.Errorf("stage %s listed twice", s)
		}
		seen[s] = true
		if s.DisplayName() == "" {
			t.Errorf("stage %s has empty display name", s)
		}
	}
}

func TestOutstandingStatusSets(t *testing.T) {
	for _, s := range InvoiceOutstandingStatuses {
		if s == string(InvoiceStatusPaid) || s == string(InvoiceStatusDraft) {
			t.Errorf("outstanding invoice statuses must exclude %s", s)
		}
	}
	for _, s := range BillOutstandingStatuses {
		if s != string(BillStatusPosted) {
			t.Errorf("outstanding bill statuses = %v, want POSTED only", BillOutstandingStatuses)
		}
	}
}
