package models

import "errors"

type UserRole string

const (
	UserRoleHQAdmin        UserRole = "HQ_ADMIN"
	UserRoleCountryManager UserRole = "COUNTRY_MANAGER"
	UserRoleFinanceManager UserRole = "FINANCE_MANAGER"
	UserRoleAccountant     UserRole = "ACCOUNTANT"
	UserRoleBranchUser     UserRole = "BRANCH_USER"
	UserRoleAuditor        UserRole = "AUDITOR"
)

var ErrInvalidUserRole = errors.New("invalid user role")

func ParseUserRole(s string) (UserRole, error) {
	switch UserRole(s) {
	case UserRoleHQAdmin, UserRoleCountryManager, UserRoleFinanceManager,
		UserRoleAccountant, UserRoleBranchUser, UserRoleAuditor:
		return UserRole(s), nil
	}
	return "", ErrInvalidUserRole
}

// Slug is the URL form of the role, e.g. HQ_ADMIN -> hq-admin.
func (r UserRole) Slug() string {
	switch r {
	case UserRoleHQAdmin:
		return "hq-admin"
	case UserRoleCountryManager:
		return "country-manager"
	case UserRoleFinanceManager:
		return "finance-manager"
	case UserRoleAccountant:
		return "accountant"
	case UserRoleBranchUser:
		return "branch-user"
	case UserRoleAuditor:
		return "auditor"
	}
	return ""
}

func UserRoleFromSlug(slug string) (UserRole, error) {
	switch slug {
	case "hq-admin":
		return UserRoleHQAdmin, nil
	case "country-manager":
		return UserRoleCountryManager, nil
	case "finance-manager":
		return UserRoleFinanceManager, nil
	case "accountant":
		return UserRoleAccountant, nil
	case "branch-user":
		return UserRoleBranchUser, nil
	case "auditor":
		return UserRoleAuditor, nil
	}
	return "", ErrInvalidUserRole
}

// IsCompanyScoped reports whether the role's view is restricted to one company.
// HQ admins and auditors see all companies.
func (r UserRole) IsCompanyScoped() bool {
	switch r {
	case UserRoleHQAdmin, UserRoleAuditor:
		return false
	}
	return true
}

type CandidateStage string

const (
	CandidateStageSourcing      CandidateStage = "SOURCING"
	CandidateStageScreening     CandidateStage = "SCREENING"
	CandidateStageDocumentation CandidateStage = "DOCUMENTATION"
	CandidateStageVisa          CandidateStage = "VISA"
	CandidateStageMedical       CandidateStage = "MEDICAL"
	CandidateStageTicket        CandidateStage = "TICKET"
	CandidateStageDeployed      CandidateStage = "DEPLOYED"
	CandidateStageInvoiced      CandidateStage = "INVOICED"
)

// AllCandidateStages lists every pipeline stage in lifecycle order.
// Dashboards must emit a bucket for each, even when the count is zero.
var AllCandidateStages = []CandidateStage{
	CandidateStageSourcing,
	CandidateStageScreening,
	CandidateStageDocumentation,
	CandidateStageVisa,
	CandidateStageMedical,
	CandidateStageTicket,
	CandidateStageDeployed,
	CandidateStageInvoiced,
}

func (s CandidateStage) DisplayName() string {
	switch s {
	case CandidateStageSourcing:
		return "Sourcing"
	case CandidateStageScreening:
		return "Screening"
	case CandidateStageDocumentation:
		return "Documentation"
	case CandidateStageVisa:
		return "Visa Processing"
	case CandidateStageMedical:
		return "Medical"
	case CandidateStageTicket:
		return "Ticket Issued"
	case CandidateStageDeployed:
		return "Deployed"
	case CandidateStageInvoiced:
		return "Invoiced"
	}
	return string(s)
}

type InvoiceStatus string

const (
	InvoiceStatusDraft     InvoiceStatus = "DRAFT"
	InvoiceStatusPosted    InvoiceStatus = "POSTED"
	InvoiceStatusSent      InvoiceStatus = "SENT"
	InvoiceStatusPaid      InvoiceStatus = "PAID"
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED"
)

// InvoiceRevenueStatuses are the statuses that count toward recognized revenue.
var InvoiceRevenueStatuses = []string{
	string(InvoiceStatusPosted),
	string(InvoiceStatusSent),
	string(InvoiceStatusPaid),
}

// InvoiceOutstandingStatuses are the statuses that count toward open AR.
var InvoiceOutstandingStatuses = []string{
	string(InvoiceStatusPosted),
	string(InvoiceStatusSent),
}

type BillStatus string

const (
	BillStatusDraft     BillStatus = "DRAFT"
	BillStatusPosted    BillStatus = "POSTED"
	BillStatusPaid      BillStatus = "PAID"
	BillStatusCancelled BillStatus = "CANCELLED"
)

// BillOutstandingStatuses are the statuses that count toward open AP.
var BillOutstandingStatuses = []string{
	string(BillStatusPosted),
}

type LoginStatus string

const (
	LoginStatusSuccess  LoginStatus = "SUCCESS"
	LoginStatusFailed   LoginStatus = "FAILED"
	LoginStatusLocked   LoginStatus = "LOCKED"
	LoginStatusInactive LoginStatus = "INACTIVE"
)

type CostType string

const (
	CostTypeVisa          CostType = "VISA"
	CostTypeMedical       CostType = "MEDICAL"
	CostTypeTicket        CostType = "TICKET"
	CostTypeTraining      CostType = "TRAINING"
	CostTypeDocumentation CostType = "DOCUMENTATION"
	CostTypeOther         CostType = "OTHER"
)
