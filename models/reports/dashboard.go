package reports

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"bitbucket.org/mahadgroup/erp_backend/config"
	"bitbucket.org/mahadgroup/erp_backend/models"
	_ "github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
)

// Dashboard is the role-shaped snapshot returned by ComputeDashboard.
// Every concrete type carries a `role` field echoing the resolved role.
type Dashboard interface {
	DashboardRole() models.UserRole
}

// Scope restricts a computation to one company (and optionally one branch).
// CompanyId 0 means all companies, which only group-wide roles may use.
type Scope struct {
	CompanyId int
	BranchId  int
}

var (
	// ErrUnknownRole rejects role values outside the recognized enum.
	ErrUnknownRole = errors.New("unknown role")
	// ErrScopeMissing rejects company-scoped roles with no assigned company.
	ErrScopeMissing = errors.New("no company assigned to user")
)

// ComputeDashboard dispatches to the role's computation. Validation runs
// before any query: an unknown role or a missing company scope never
// reaches the database and never yields an empty dashboard.
func ComputeDashboard(ctx context.Context, role models.UserRole, scope Scope, asOf time.Time) (Dashboard, error) {
	if _, err := models.ParseUserRole(string(role)); err != nil {
		return nil, ErrUnknownRole
	}
	if role.IsCompanyScoped() && scope.CompanyId <= 0 {
		return nil, ErrScopeMissing
	}

	switch role {
	case models.UserRoleHQAdmin:
		return GetHQAdminDashboard(ctx, asOf)
	case models.UserRoleCountryManager:
		return GetCountryManagerDashboard(ctx, scope, asOf)
	case models.UserRoleFinanceManager:
		return GetFinanceManagerDashboard(ctx, scope, asOf)
	case models.UserRoleAccountant:
		return GetAccountantDashboard(ctx, scope, asOf)
	case models.UserRoleBranchUser:
		return GetBranchUserDashboard(ctx, scope, asOf)
	case models.UserRoleAuditor:
		return GetAuditorDashboard(ctx, asOf)
	}
	return nil, ErrUnknownRole
}

// formatRate renders part/total as a percentage with one decimal place and
// a trailing %. Returns "0.0%" when total is zero.
func formatRate(part, total int64) string {
	if total <= 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(part)/float64(total)*100)
}

func cacheKeyParts(scope Scope, asOf time.Time) []string {
	return []string{
		strconv.Itoa(scope.CompanyId),
		strconv.Itoa(scope.BranchId),
		asOf.Format("2006-01-02"),
	}
}

type sumRow struct {
	Total decimal.Decimal
}

// sumQuery runs a single-row aggregate query that selects COALESCE(SUM(...), 0) AS total.
func sumQuery(ctx context.Context, query string, args ...interface{}) (decimal.Decimal, error) {
	db := config.GetDB()
	var row sumRow
	if err := db.WithContext(ctx).Raw(query, args...).Scan(&row).Error; err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

type countRow struct {
	Total int64
}

// countQuery runs a single-row COUNT(*) AS total query.
func countQuery(ctx context.Context, query string, args ...interface{}) (int64, error) {
	db := config.GetDB()
	var row countRow
	if err := db.WithContext(ctx).Raw(query, args...).Scan(&row).Error; err != nil {
		return 0, err
	}
	return row.Total, nil
}
