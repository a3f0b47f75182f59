package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	"bitbucket.org/mahadgroup/erp_backend/models"
)

func TestFormatRate(t *testing.T) {
	cases := []struct {
		part     int64
		total    int64
		expected string
	}{
		{0, 0, "0.0%"},
		{5, 0, "0.0%"},
		{0, 10, "0.0%"},
		{1, 3, "33.3%"},
		{10, 10, "100.0%"},
		{7, 20, "35.0%"},
	}
	for _, tc := range cases {
		if got := formatRate(tc.part, tc.total); got != tc.expected {
			t.Errorf("formatRate(%d, %d) = %q, want %q", tc.part, tc.total, got, tc.expected)
		}
	}
}

func TestComputeDashboard_UnknownRole(t *testing.T) {
	_, err := ComputeDashboard(context.Background(), models.UserRole("MANAGER_X"), Scope{CompanyId: 1}, time.Now())
	if !errors.Is(err, ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}
}

func TestComputeDashboard_EmptyRole(t *testing.T) {
	_, err := ComputeDashboard(context.Background(), models.UserRole(""), Scope{CompanyId: 1}, time.Now())
	if !errors.Is(err, ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}
}

func TestComputeDashboard_ScopeMissing(t *testing.T) {
	scopedRoles := []models.UserRole{
		models.UserRoleCountryManager,
		models.UserRoleFinanceManager,
		models.UserRoleAccountant,
		models.UserRoleBranchUser,
	}
	for _, role := range scopedRoles {
		_, err := ComputeDashboard(context.Background(), role, Scope{}, time.Now())
		if !errors.Is(err, ErrScopeMissing) {
			t.Errorf("role %s with no company: expected ErrScopeMissing, got %v", role, err)
		}
	}
}

func TestCacheKeyParts(t *testing.T) {
	asOf := day("2024-03-15")
	parts := cacheKeyParts(Scope{CompanyId: 7, BranchId: 3}, asOf)
	want := []string{"7", "3", "2024-03-15"}
	if len(parts) != len(want) {
		t.Fatalf("cacheKeyParts returned %d parts, want %d", len(parts), len(want))
	}
	for i := range want {
		if parts[i] != want[i] {
			t.Errorf("parts[%d] = %q, want %q", i, parts[i], want[i])
		}
	}
}
