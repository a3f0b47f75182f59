package reports

import (
	"fmt"
	"io"

	"bitbucket.org/mahadgroup/erp_backend/models"
	"github.com/xuri/excelize/v2"
)

const exportSheet = "Dashboard"

// ExportDashboardExcel renders a dashboard as a two-column xlsx summary and
// writes it to w. The row set depends on the role the dashboard was built for.
func ExportDashboardExcel(w io.Writer, d Dashboard) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(exportSheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetCellValue(exportSheet, "A1", "Metric")
	f.SetCellValue(exportSheet, "B1", "Value")

	rowNo := 2
	addRow := func(metric string, value interface{}) {
		f.SetCellValue(exportSheet, "A"+fmt.Sprint(rowNo), metric)
		f.SetCellValue(exportSheet, "B"+fmt.Sprint(rowNo), value)
		rowNo++
	}

	addRow("Role", string(d.DashboardRole()))

	switch v := d.(type) {
	case *HQAdminDashboard:
		addRow("Total Companies", v.Summary.TotalCompanies)
		addRow("Total Job Orders", v.Summary.TotalJobOrders)
		addRow("Total Candidates", v.Summary.TotalCandidates)
		addRow("Deployed Candidates", v.Summary.DeployedCandidates)
		addRow("Deployment Rate", v.Summary.DeploymentRate)
		addRow("Revenue YTD", v.Financial.RevenueYtd.StringFixed(2))
		addRow("Total AR", v.Financial.TotalAr.StringFixed(2))
		addRow("Total AP", v.Financial.TotalAp.StringFixed(2))
		for _, c := range v.Companies {
			addRow(c.Name+" Revenue YTD", c.RevenueYtd.StringFixed(2))
		}
	case *CountryManagerDashboard:
		addRow("Company", v.Company.Name)
		addRow("Active Job Orders", v.Summary.ActiveJobOrders)
		addRow("Total Candidates", v.Summary.TotalCandidates)
		addRow("Revenue MTD", v.Financial.RevenueMtd.StringFixed(2))
		addRow("Revenue YTD", v.Financial.RevenueYtd.StringFixed(2))
		addRow("AR Outstanding", v.Financial.ArOutstanding.StringFixed(2))
		addRow("AP Outstanding", v.Financial.ApOutstanding.StringFixed(2))
		for _, stage := range models.AllCandidateStages {
			bucket := v.CandidatePipeline[stage]
			addRow("Pipeline "+bucket.Name, bucket.Count)
		}
	case *FinanceManagerDashboard:
		addRow("Company", v.Company.Name)
		addRow("AR Total", v.ArSummary.Total.StringFixed(2))
		addRow("AR Overdue", v.ArSummary.Overdue.StringFixed(2))
		addRow("AR Current", v.ArSummary.Aging.Current.StringFixed(2))
		addRow("AR 1-30 Days", v.ArSummary.Aging.Days1To30.StringFixed(2))
		addRow("AR 31-60 Days", v.ArSummary.Aging.Days31To60.StringFixed(2))
		addRow("AR 61-90 Days", v.ArSummary.Aging.Days61To90.StringFixed(2))
		addRow("AR Over 90 Days", v.ArSummary.Aging.Over90Days.StringFixed(2))
		addRow("AP Total", v.ApSummary.Total.StringFixed(2))
		addRow("AP Overdue", v.ApSummary.Overdue.StringFixed(2))
		addRow("Receipts MTD", v.CashFlow.ReceiptsMtd.StringFixed(2))
		addRow("Payments MTD", v.CashFlow.PaymentsMtd.StringFixed(2))
		addRow("Net Cash Flow", v.CashFlow.NetCashFlow.StringFixed(2))
	case *AccountantDashboard:
		addRow("Company", v.Company.Name)
		addRow("Invoices To Send", v.TodayTasks.InvoicesToSend)
		addRow("Bills To Process", v.TodayTasks.BillsToProcess)
		addRow("Payments Due Today", v.TodayTasks.PaymentsDueToday)
		addRow("Unprocessed Costs", v.TodayTasks.UnprocessedCosts)
		addRow("Draft Invoices", v.QuickStats.DraftInvoices)
		addRow("Draft Bills", v.QuickStats.DraftBills)
	case *BranchUserDashboard:
		addRow("Company", v.Company.Name)
		addRow("Active Job Orders", v.Summary.ActiveJobOrders)
		addRow("Total Candidates", v.Summary.TotalCandidates)
		addRow("Deployed This Month", v.Summary.DeployedThisMonth)
		addRow("Needs Documentation", v.ActionRequired.NeedsDocumentation)
		addRow("Needs Visa", v.ActionRequired.NeedsVisa)
		addRow("Needs Medical", v.ActionRequired.NeedsMedical)
	case *AuditorDashboard:
		addRow("Active Companies", v.SystemOverview.ActiveCompanies)
		addRow("Total Users", v.SystemOverview.TotalUsers)
		addRow("Active Job Orders", v.SystemOverview.ActiveJobOrders)
		addRow("Total Candidates", v.SystemOverview.TotalCandidates)
		addRow("Invoices MTD", v.TransactionVolume.InvoicesMtd)
		addRow("Bills MTD", v.TransactionVolume.BillsMtd)
		addRow("Receipts MTD", v.TransactionVolume.ReceiptsMtd)
		addRow("Payments MTD", v.TransactionVolume.PaymentsMtd)
		addRow("Unposted Invoices", v.Compliance.UnpostedInvoices)
		addRow("Unposted Bills", v.Compliance.UnpostedBills)
	}

	return f.Write(w)
}
