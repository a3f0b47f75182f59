package reports

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestMoney_MarshalsWithTwoFractionDigits(t *testing.T) {
	cases := []struct {
		in       string
		expected string
	}{
		{"0", `"0.00"`},
		{"1500", `"1500.00"`},
		{"99.9", `"99.90"`},
		{"1234.567", `"1234.57"`},
		{"-45.5", `"-45.50"`},
	}
	for _, tc := range cases {
		m := NewMoney(decimal.RequireFromString(tc.in))
		b, err := json.Marshal(m)
		if err != nil {
			t.Fatalf("marshal %s: %v", tc.in, err)
		}
		if string(b) != tc.expected {
			t.Errorf("marshal %s = %s, want %s", tc.in, b, tc.expected)
		}
	}
}

func TestMoney_AddSub(t *testing.T) {
	a := NewMoney(decimal.RequireFromString("10.25"))
	b := NewMoney(decimal.RequireFromString("4.75"))

	if got := a.Add(b).StringFixed(2); got != "15.00" {
		t.Errorf("add = %s, want 15.00", got)
	}
	if got := a.Sub(b).StringFixed(2); got != "5.50" {
		t.Errorf("sub = %s, want 5.50", got)
	}
}
