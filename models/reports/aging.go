package reports

import (
	"context"
	"time"

	"bitbucket.org/mahadgroup/erp_backend/config"
	"bitbucket.org/mahadgroup/erp_backend/models"
	"bitbucket.org/mahadgroup/erp_backend/utils"
	"github.com/shopspring/decimal"
)

// AgingBuckets splits outstanding receivables by days past due as of the
// report date. Buckets are mutually exclusive and always sum to the AR total.
type AgingBuckets struct {
	Current    Money `json:"current"`
	Days1To30  Money `json:"1_30_days"`
	Days31To60 Money `json:"31_60_days"`
	Days61To90 Money `json:"61_90_days"`
	Over90Days Money `json:"over_90_days"`
}

// agingRow is one open document: its due date and outstanding amount.
type agingRow struct {
	DueDate time.Time
	Amount  decimal.Decimal
}

// bucketAging assigns each row to exactly one bucket. days_overdue <= 0 is
// current (not yet due, including due exactly on asOf); then 1-30, 31-60,
// 61-90 and over 90, all boundaries inclusive on the upper end.
func bucketAging(rows []agingRow, asOf time.Time) AgingBuckets {
	current := decimal.Zero
	d1to30 := decimal.Zero
	d31to60 := decimal.Zero
	d61to90 := decimal.Zero
	over90 := decimal.Zero

	for _, row := range rows {
		daysOverdue := utils.DaysBetween(row.DueDate, asOf)
		switch {
		case daysOverdue <= 0:
			current = current.Add(row.Amount)
		case daysOverdue <= 30:
			d1to30 = d1to30.Add(row.Amount)
		case daysOverdue <= 60:
			d31to60 = d31to60.Add(row.Amount)
		case daysOverdue <= 90:
			d61to90 = d61to90.Add(row.Amount)
		default:
			over90 = over90.Add(row.Amount)
		}
	}

	return AgingBuckets{
		Current:    NewMoney(current),
		Days1To30:  NewMoney(d1to30),
		Days31To60: NewMoney(d31to60),
		Days61To90: NewMoney(d61to90),
		Over90Days: NewMoney(over90),
	}
}

// Total is the reconciliation sum across all buckets.
func (a AgingBuckets) Total() Money {
	return a.Current.Add(a.Days1To30).Add(a.Days31To60).Add(a.Days61To90).Add(a.Over90Days)
}

// getARAgingRows fetches every outstanding invoice's due date and amount in
// one query; bucketing happens in Go so the boundary rules live in one place.
func getARAgingRows(ctx context.Context, companyId int) ([]agingRow, error) {
	db := config.GetDB()
	var rows []agingRow
	query := `
		SELECT due_date, total_amount AS amount
		FROM invoices
		WHERE company_id = ? AND status IN ?`
	if err := db.WithContext(ctx).
		Raw(query, companyId, models.InvoiceOutstandingStatuses).
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
