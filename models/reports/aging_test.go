package reports

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestBucketAging_AssignsEachRowToOneBucket(t *testing.T) {
	asOf := day("2024-03-15")
	rows := []agingRow{
		{DueDate: day("2024-01-01"), Amount: decimal.NewFromInt(500)},  // 74 days overdue
		{DueDate: day("2024-02-20"), Amount: decimal.NewFromInt(300)},  // 24 days overdue
		{DueDate: day("2024-03-10"), Amount: decimal.NewFromInt(200)},  // 5 days overdue
		{DueDate: day("2024-03-15"), Amount: decimal.NewFromInt(100)},  // due today, current
	}

	aging := bucketAging(rows, asOf)

	if got := aging.Current.StringFixed(2); got != "100.00" {
		t.Errorf("current = %s, want 100.00", got)
	}
	if got := aging.Days1To30.StringFixed(2); got != "500.00" {
		t.Errorf("1_30_days = %s, want 500.00 (300 at 24 days + 200 at 5 days)", got)
	}
	if got := aging.Days31To60.StringFixed(2); got != "0.00" {
		t.Errorf("31_60_days = %s, want 0.00", got)
	}
	if got := aging.Days61To90.StringFixed(2); got != "500.00" {
		t.Errorf("61_90_days = %s, want 500.00 (74 days overdue)", got)
	}
	if got := aging.Over90Days.StringFixed(2); got != "0.00" {
		t.Errorf("over_90_days = %s, want 0.00", got)
	}
	if got := aging.Total().StringFixed(2); got != "1100.00" {
		t.Errorf("total = %s, want 1100.00", got)
	}
}

func TestBucketAging_Boundaries(t *testing.T) {
	asOf := day("2024-06-30")
	cases := []struct {
		due    string
		bucket string
	}{
		{"2024-07-05", "current"},   // not yet due
		{"2024-06-30", "current"},   // due exactly on asOf
		{"2024-06-29", "1_30"},      // 1 day
		{"2024-05-31", "1_30"},      // 30 days
		{"2024-05-30", "31_60"},     // 31 days
		{"2024-05-01", "31_60"},     // 60 days
		{"2024-04-30", "61_90"},     // 61 days
		{"2024-04-01", "61_90"},     // 90 days
		{"2024-03-31", "over_90"},   // 91 days
		{"2023-01-01", "over_90"},
	}

	for _, tc := range cases {
		aging := bucketAging([]agingRow{{DueDate: day(tc.due), Amount: decimal.NewFromInt(1)}}, asOf)

		got := map[string]string{
			"current": aging.Current.StringFixed(2),
			"1_30":    aging.Days1To30.StringFixed(2),
			"31_60":   aging.Days31To60.StringFixed(2),
			"61_90":   aging.Days61To90.StringFixed(2),
			"over_90": aging.Over90Days.StringFixed(2),
		}
		for bucket, amount := range got {
			want := "0.00"
			if bucket == tc.bucket {
				want = "1.00"
			}
			if amount != want {
				t.Errorf("due %s: bucket %s = %s, want %s", tc.due, bucket, amount, want)
			}
		}
	}
}

func TestBucketAging_TotalReconciles(t *testing.T) {
	asOf := day("2024-03-15")
	rows := []agingRow{
		{DueDate: day("2023-01-01"), Amount: decimal.RequireFromString("0.01")},
		{DueDate: day("2024-01-31"), Amount: decimal.RequireFromString("1234.56")},
		{DueDate: day("2024-03-01"), Amount: decimal.RequireFromString("99.99")},
		{DueDate: day("2024-04-01"), Amount: decimal.RequireFromString("500.44")},
	}

	aging := bucketAging(rows, asOf)
	want := decimal.Zero
	for _, row := range rows {
		want = want.Add(row.Amount)
	}
	if got := aging.Total().StringFixed(2); got != want.StringFixed(2) {
		t.Errorf("total = %s, want %s", got, want.StringFixed(2))
	}
}

func TestBucketAging_Empty(t *testing.T) {
	aging := bucketAging(nil, day("2024-03-15"))
	if got := aging.Total().StringFixed(2); got != "0.00" {
		t.Errorf("total of empty rows = %s, want 0.00", got)
	}
}
