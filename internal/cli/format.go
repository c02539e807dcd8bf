// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
)

// FormatMoney formats whole dollars with thousands separators.
// e.g., 153000 -> "$153,000", -1250.4 -> "-$1,250"
func FormatMoney(v float64) string {
	return money(v, "#,###.")
}

// FormatMoneyCents formats dollars and cents.
// e.g., 1234.5 -> "$1,234.50"
func FormatMoneyCents(v float64) string {
	return money(v, "#,###.##")
}

func money(v float64, format string) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return sign + "$" + humanize.FormatFloat(format, v)
}

// FormatCompactMoney abbreviates large amounts for cards and charts.
// e.g., 1250000 -> "$1.2M", 48300 -> "$48.3K", 950 -> "$950"
func FormatCompactMoney(v float64) string {
	abs := math.Abs(v)
	sign := ""
	if v < 0 {
		sign = "-"
	}
	switch {
	case abs >= 1_000_000_000:
		return fmt.Sprintf("%s$%.1fB", sign, abs/1_000_000_000)
	case abs >= 1_000_000:
		return fmt.Sprintf("%s$%.1fM", sign, abs/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("%s$%.1fK", sign, abs/1_000)
	default:
		return fmt.Sprintf("%s$%.0f", sign, abs)
	}
}

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	return humanize.Comma(n)
}

// FormatFloat formats a float with comma separators and up to one decimal.
func FormatFloat(f float64) string {
	return humanize.CommafWithDigits(f, 1)
}

// FormatPercent formats a value already expressed in percent.
// e.g., 87.456 -> "87.5%"
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatDelta formats a signed money difference.
func FormatDelta(delta float64) string {
	if delta >= 0 {
		return "+" + FormatMoney(delta)
	}
	return FormatMoney(delta)
}

// FormatDate formats a calendar date, or "-" when unset.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}

// FormatDays formats a day count.
// e.g., 1 -> "1 day", 45 -> "45 days"
func FormatDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return humanize.Comma(int64(n)) + " days"
}

// FormatAgo describes how long ago t was, relative to now.
func FormatAgo(t, now time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return humanize.RelTime(t, now, "ago", "from now")
}
