package utils

import (
	"testing"
	"time"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{"user@example.com", "a.b+c@mahadgroup.com"}
	for _, e := range valid {
		if !IsValidEmail(e) {
			t.Errorf("IsValidEmail(%q) = false, want true", e)
		}
	}
	invalid := []string{"", "not-an-email", "user@", "@example.com"}
	for _, e := range invalid {
		if IsValidEmail(e) {
			t.Errorf("IsValidEmail(%q) = true, want false", e)
		}
	}
}

func TestDaysBetween(t *testing.T) {
	parse := func(s string) time.Time {
		v, err := time.Parse("2006-01-02", s)
		if err != nil {
			t.Fatalf("parse %s: %v", s, err)
		}
		return v
	}

	cases := []struct {
		a, b     string
		expected int
	}{
		{"2024-03-15", "2024-03-15", 0},
		{"2024-03-14", "2024-03-15", 1},
		{"2024-02-20", "2024-03-15", 24},
		{"2024-01-01", "2024-03-15", 74},
		{"2024-03-16", "2024-03-15", -1},
	}
	for _, tc := range cases {
		if got := DaysBetween(parse(tc.a), parse(tc.b)); got != tc.expected {
			t.Errorf("DaysBetween(%s, %s) = %d, want %d", tc.a, tc.b, got, tc.expected)
		}
	}
}

func TestDaysBetween_IgnoresTimeOfDay(t *testing.T) {
	a := time.Date(2024, 3, 14, 23, 59, 0, 0, time.UTC)
	b := time.Date(2024, 3, 15, 0, 1, 0, 0, time.UTC)
	if got := DaysBetween(a, b); got != 1 {
		t.Errorf("DaysBetween across midnight = %d, want 1", got)
	}
}

func TestStartOfMonth(t *testing.T) {
	in := time.Date(2024, 3, 15, 13, 45, 0, 0, time.UTC)
	got := StartOfMonth(in)
	want := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("StartOfMonth = %v, want %v", got, want)
	}
}

func TestStartOfYear(t *testing.T) {
	in := time.Date(2024, 11, 2, 7, 0, 0, 0, time.UTC)
	got := StartOfYear(in)
	want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("StartOfYear = %v, want %v", got, want)
	}
}

func TestWindowEnd(t *testing.T) {
	in := time.Date(2024, 3, 15, 17, 30, 0, 0, time.UTC)
	got := WindowEnd(in)
	want := time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("WindowEnd = %v, want %v", got, want)
	}
	// Rows dated after the as-of day fall outside [window start, WindowEnd).
	after := time.Date(2024, 3, 16, 9, 0, 0, 0, time.UTC)
	if after.Before(got) {
		t.Errorf("row at %v should not be before window end %v", after, got)
	}
}

func TestHashAndComparePassword(t *testing.T) {
	hashed, err := HashPassword("s3cret-Passw0rd")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if err := ComparePassword(string(hashed), "s3cret-Passw0rd"); err != nil {
		t.Errorf("ComparePassword with correct password: %v", err)
	}
	if err := ComparePassword(string(hashed), "wrong"); err == nil {
		t.Error("ComparePassword with wrong password: expected error")
	}
}
