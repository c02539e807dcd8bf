package cli

import (
	"testing"
	"time"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0"},
		{950, "$950"},
		{153000, "$153,000"},
		{-1250, "-$1,250"},
	}
	for _, tt := range tests {
		if got := FormatMoney(tt.in); got != tt.want {
			t.Errorf("FormatMoney(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatMoneyCents(t *testing.T) {
	if got := FormatMoneyCents(1234.5); got != "$1,234.50" {
		t.Errorf("FormatMoneyCents(1234.5) = %q, want $1,234.50", got)
	}
}

func TestFormatCompactMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{950, "$950"},
		{48300, "$48.3K"},
		{1250000, "$1.2M"},
		{-2000, "-$2.0K"},
	}
	for _, tt := range tests {
		if got := FormatCompactMoney(tt.in); got != tt.want {
			t.Errorf("FormatCompactMoney(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	if got := FormatNumber(1234567); got != "1,234,567" {
		t.Errorf("FormatNumber = %q, want 1,234,567", got)
	}
}

func TestFormatPercentAndDelta(t *testing.T) {
	if got := FormatPercent(87.456); got != "87.5%" {
		t.Errorf("FormatPercent = %q", got)
	}
	if got := FormatDelta(1500); got != "+$1,500" {
		t.Errorf("FormatDelta(1500) = %q", got)
	}
	if got := FormatDelta(-1500); got != "-$1,500" {
		t.Errorf("FormatDelta(-1500) = %q", got)
	}
}

func TestFormatDateAndDays(t *testing.T) {
	if got := FormatDate(time.Time{}); got != "-" {
		t.Errorf("FormatDate(zero) = %q", got)
	}
	if got := FormatDate(time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC)); got != "2025-03-04" {
		t.Errorf("FormatDate = %q", got)
	}
	if got := FormatDays(1); got != "1 day" {
		t.Errorf("FormatDays(1) = %q", got)
	}
	if got := FormatDays(1200); got != "1,200 days" {
		t.Errorf("FormatDays(1200) = %q", got)
	}
}
