package reports_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"testing"
	"time"

	"bitbucket.org/mahadgroup/erp_backend/config"
	"bitbucket.org/mahadgroup/erp_backend/models"
	"bitbucket.org/mahadgroup/erp_backend/models/reports"
	"bitbucket.org/mahadgroup/erp_backend/utils"
	"github.com/shopspring/decimal"
)

func TestComputeDashboard_ScopingAndReconciliation(t *testing.T) {
	if strings.TrimSpace(os.Getenv("INTEGRATION_TESTS")) == "" {
		t.Skip("set INTEGRATION_TESTS=1 to run integration tests (requires docker)")
	}

	ctx := context.Background()

	mysqlName, mysqlPort := startMySQLContainer(t)
	t.Cleanup(func() { _ = dockerRmForce(mysqlName) })

	t.Setenv("DB_USER", "root")
	t.Setenv("DB_PASSWORD", "testpw")
	t.Setenv("DB_HOST", "127.0.0.1")
	t.Setenv("DB_PORT", mysqlPort)
	t.Setenv("DB_NAME", "erp_test")
	t.Setenv("ENABLE_REPORT_CACHE", "")

	config.ConnectDatabaseWithRetry()
	if err := models.MigrateAll(); err != nil {
		t.Fatalf("MigrateAll: %v", err)
	}

	db := config.GetDB()
	seedCtx := utils.SetSkipCompanyScopeInContext(ctx, true)

	india := models.Company{Name: "Mahad India", Code: "MIN", Country: "IN", BaseCurrency: "INR", IsActive: utils.NewTrue()}
	kenya := models.Company{Name: "Mahad Kenya", Code: "MKE", Country: "KE", BaseCurrency: "KES", IsActive: utils.NewTrue()}
	for _, c := range []*models.Company{&india, &kenya} {
		if err := db.WithContext(seedCtx).Create(c).Error; err != nil {
			t.Fatalf("create company: %v", err)
		}
	}

	employer := models.Employer{Code: "EMP-1", Name: "Gulf Employer", IsActive: utils.NewTrue()}
	if err := db.WithContext(seedCtx).Create(&employer).Error; err != nil {
		t.Fatalf("create employer: %v", err)
	}

	indiaOrder := models.JobOrder{CompanyId: india.ID, EmployerId: employer.ID, PositionTitle: "Electrician", NumPositions: 5, AgreedFee: decimal.NewFromInt(1200), IsActive: utils.NewTrue()}
	kenyaOrder := models.JobOrder{CompanyId: kenya.ID, EmployerId: employer.ID, PositionTitle: "Driver", NumPositions: 3, AgreedFee: decimal.NewFromInt(1000), IsActive: utils.NewTrue()}
	for _, jo := range []*models.JobOrder{&indiaOrder, &kenyaOrder} {
		if err := db.WithContext(seedCtx).Create(jo).Error; err != nil {
			t.Fatalf("create job order: %v", err)
		}
	}

	candidates := []models.Candidate{
		{JobOrderId: indiaOrder.ID, FullName: "A", PassportNumber: "P1", CurrentStage: models.CandidateStageSourcing},
		{JobOrderId: indiaOrder.ID, FullName: "B", PassportNumber: "P2", CurrentStage: models.CandidateStageVisa},
		{JobOrderId: kenyaOrder.ID, FullName: "C", PassportNumber: "P3", CurrentStage: models.CandidateStageDeployed},
	}
	for i := range candidates {
		if err := db.WithContext(seedCtx).Create(&candidates[i]).Error; err != nil {
			t.Fatalf("create candidate: %v", err)
		}
	}

	asOf := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	invoices := []models.Invoice{
		{CompanyId: india.ID, EmployerId: employer.ID, InvoiceNumber: "MIN-1", InvoiceDate: asOf.AddDate(0, -3, 0), DueDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), TotalAmount: decimal.NewFromInt(500), Status: models.InvoiceStatusSent},
		{CompanyId: india.ID, EmployerId: employer.ID, InvoiceNumber: "MIN-2", InvoiceDate: asOf.AddDate(0, -1, 0), DueDate: time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC), TotalAmount: decimal.NewFromInt(300), Status: models.InvoiceStatusPosted},
		{CompanyId: india.ID, EmployerId: employer.ID, InvoiceNumber: "MIN-3", InvoiceDate: asOf, DueDate: time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), TotalAmount: decimal.NewFromInt(100), Status: models.InvoiceStatusPosted},
		// Paid invoices never count toward AR.
		{CompanyId: india.ID, EmployerId: employer.ID, InvoiceNumber: "MIN-4", InvoiceDate: asOf, DueDate: asOf, TotalAmount: decimal.NewFromInt(9999), Status: models.InvoiceStatusPaid},
		// Other company's invoice must not leak into India's dashboards.
		{CompanyId: kenya.ID, EmployerId: employer.ID, InvoiceNumber: "MKE-1", InvoiceDate: asOf, DueDate: asOf.AddDate(0, 1, 0), TotalAmount: decimal.NewFromInt(777), Status: models.InvoiceStatusPosted},
		// Dated after the pinned as-of date; windowed revenue must exclude it.
		{CompanyId: india.ID, EmployerId: employer.ID, InvoiceNumber: "MIN-5", InvoiceDate: asOf.AddDate(0, 0, 26), DueDate: asOf.AddDate(0, 2, 0), TotalAmount: decimal.NewFromInt(5000), Status: models.InvoiceStatusPaid},
	}
	for i := range invoices {
		if err := db.WithContext(seedCtx).Create(&invoices[i]).Error; err != nil {
			t.Fatalf("create invoice: %v", err)
		}
	}

	t.Run("finance manager aging reconciles", func(t *testing.T) {
		d, err := reports.ComputeDashboard(ctx, models.UserRoleFinanceManager, reports.Scope{CompanyId: india.ID}, asOf)
		if err != nil {
			t.Fatalf("ComputeDashboard: %v", err)
		}
		fm, ok := d.(*reports.FinanceManagerDashboard)
		if !ok {
			t.Fatalf("dashboard has type %T", d)
		}
		if got := fm.ArSummary.Total.StringFixed(2); got != "900.00" {
			t.Errorf("AR total = %s, want 900.00", got)
		}
		if got := fm.ArSummary.Overdue.StringFixed(2); got != "800.00" {
			t.Errorf("AR overdue = %s, want 800.00", got)
		}
		if got := fm.ArSummary.Aging.Total().StringFixed(2); got != "900.00" {
			t.Errorf("aging total = %s, want 900.00 (buckets must reconcile)", got)
		}
	})

	t.Run("country manager sees only own company", func(t *testing.T) {
		d, err := reports.ComputeDashboard(ctx, models.UserRoleCountryManager, reports.Scope{CompanyId: india.ID}, asOf)
		if err != nil {
			t.Fatalf("ComputeDashboard: %v", err)
		}
		cm, ok := d.(*reports.CountryManagerDashboard)
		if !ok {
			t.Fatalf("dashboard has type %T", d)
		}
		if cm.Company.Id != india.ID {
			t.Errorf("company id = %d, want %d", cm.Company.Id, india.ID)
		}
		if got := cm.CandidatePipeline.TotalCandidates(); got != 2 {
			t.Errorf("pipeline total = %d, want 2 (Kenya candidate must not leak)", got)
		}
	})

	t.Run("revenue windows stop at the as-of date", func(t *testing.T) {
		d, err := reports.ComputeDashboard(ctx, models.UserRoleCountryManager, reports.Scope{CompanyId: india.ID}, asOf)
		if err != nil {
			t.Fatalf("ComputeDashboard: %v", err)
		}
		cm := d.(*reports.CountryManagerDashboard)
		// MIN-1 predates the year window; MIN-5 postdates asOf. YTD = 300+100+9999.
		if got := cm.Financial.RevenueYtd.StringFixed(2); got != "10399.00" {
			t.Errorf("revenue YTD at as-of = %s, want 10399.00", got)
		}

		later, err := reports.ComputeDashboard(ctx, models.UserRoleCountryManager, reports.Scope{CompanyId: india.ID}, asOf.AddDate(0, 1, 15))
		if err != nil {
			t.Fatalf("ComputeDashboard: %v", err)
		}
		cmLater := later.(*reports.CountryManagerDashboard)
		if got := cmLater.Financial.RevenueYtd.StringFixed(2); got != "15399.00" {
			t.Errorf("revenue YTD after MIN-5's date = %s, want 15399.00", got)
		}
	})

	t.Run("auditor counts span companies", func(t *testing.T) {
		d, err := reports.ComputeDashboard(ctx, models.UserRoleAuditor, reports.Scope{}, asOf)
		if err != nil {
			t.Fatalf("ComputeDashboard: %v", err)
		}
		ad, ok := d.(*reports.AuditorDashboard)
		if !ok {
			t.Fatalf("dashboard has type %T", d)
		}
		if ad.SystemOverview.ActiveJobOrders != 2 {
			t.Errorf("active job orders = %d, want 2", ad.SystemOverview.ActiveJobOrders)
		}
		if ad.SystemOverview.TotalCandidates != 3 {
			t.Errorf("total candidates = %d, want 3", ad.SystemOverview.TotalCandidates)
		}
		candidatesByCode := make(map[string]int64, len(ad.CompanySummaries))
		for _, s := range ad.CompanySummaries {
			candidatesByCode[s.Code] = s.CandidateCount
		}
		if candidatesByCode["MIN"] != 2 || candidatesByCode["MKE"] != 1 {
			t.Errorf("per-company candidates = %v, want MIN:2 MKE:1", candidatesByCode)
		}
	})

	t.Run("hq admin spans companies and subtotals add up", func(t *testing.T) {
		d, err := reports.ComputeDashboard(ctx, models.UserRoleHQAdmin, reports.Scope{}, asOf)
		if err != nil {
			t.Fatalf("ComputeDashboard: %v", err)
		}
		hq, ok := d.(*reports.HQAdminDashboard)
		if !ok {
			t.Fatalf("dashboard has type %T", d)
		}
		if hq.Summary.TotalCompanies != 2 {
			t.Errorf("total companies = %d, want 2", hq.Summary.TotalCompanies)
		}
		if hq.Summary.TotalCandidates != 3 {
			t.Errorf("total candidates = %d, want 3", hq.Summary.TotalCandidates)
		}
		perCompany := decimal.Zero
		for _, c := range hq.Companies {
			perCompany = perCompany.Add(c.RevenueYtd.Decimal)
		}
		if got, want := perCompany.StringFixed(2), hq.Financial.RevenueYtd.StringFixed(2); got != want {
			t.Errorf("per-company revenue %s != global revenue %s", got, want)
		}
	})
}

func startMySQLContainer(t *testing.T) (containerName, hostPort string) {
	t.Helper()
	name := fmt.Sprintf("erp-test-mysql-%d", time.Now().UnixNano())
	out, err := dockerRun(
		"run", "-d", "--name", name,
		"-e", "MYSQL_ROOT_PASSWORD=testpw",
		"-e", "MYSQL_DATABASE=erp_test",
		"-p", "127.0.0.1:0:3306",
		"mysql:8.0",
		"--default-authentication-plugin=mysql_native_password",
	)
	if err != nil {
		t.Fatalf("start mysql container: %v\n%s", err, out)
	}
	port, err := dockerHostPort(name, "3306/tcp")
	if err != nil {
		t.Fatalf("mysql docker port: %v", err)
	}
	deadline := time.Now().Add(120 * time.Second)
	for time.Now().Before(deadline) {
		_, err := dockerRun("exec", name, "mysqladmin", "ping", "-h", "127.0.0.1", "-ptestpw", "--silent")
		if err == nil {
			return name, port
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("mysql did not become ready")
	return "", ""
}

func dockerHostPort(container, portProto string) (string, error) {
	out, err := dockerRun("port", container, portProto)
	if err != nil {
		return "", fmt.Errorf("docker port: %w: %s", err, out)
	}
	re := regexp.MustCompile(`:(\d+)`)
	m := re.FindStringSubmatch(out)
	if len(m) != 2 {
		return "", fmt.Errorf("unexpected docker port output: %q", out)
	}
	return m[1], nil
}

func dockerRmForce(container string) error {
	if strings.TrimSpace(container) == "" {
		return nil
	}
	_, err := dockerRun("rm", "-f", container)
	return err
}

func dockerRun(args ...string) (string, error) {
	cmd := exec.Command("docker", args...)
	b, err := cmd.CombinedOutput()
	return string(b), err
}
