package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/theirongolddev/seasfin/internal/tui/theme"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestCardRowBackgroundFill(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Short", "Content", 22)
	tallCard := ContentCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4\nLine 5", 22)

	shortLines := len(strings.Split(shortCard, "\n"))
	tallLines := len(strings.Split(tallCard, "\n"))
	if shortLines >= tallLines {
		t.Fatal("short card should be shorter than tall card")
	}

	joined := CardRow([]string{tallCard, shortCard})
	lines := strings.Split(joined, "\n")
	if len(lines) != tallLines {
		t.Errorf("joined height = %d, want %d", len(lines), tallLines)
	}

	for i := shortLines; i < len(lines); i++ {
		if !strings.Contains(lines[i], "\x1b[") {
			t.Errorf("line %d has no ANSI codes, padding is unstyled", i)
		}
	}
}

func TestCardRowWidthConsistency(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Short", "A", 30)
	tallCard := ContentCard("Tall", "A\nB\nC\nD\nE\nF", 20)

	joined := CardRow([]string{tallCard, shortCard})
	lines := strings.Split(joined, "\n")
	want := lipgloss.Width(lines[0])
	for i, line := range lines {
		if w := lipgloss.Width(line); w != want {
			t.Errorf("line %d width = %d, want %d", i, w, want)
		}
	}
	if want != 50 {
		t.Errorf("row width = %d, want 50", want)
	}
}

func TestLayoutRowSumsToTotal(t *testing.T) {
	for _, tc := range []struct{ total, n int }{{100, 3}, {81, 4}, {7, 7}, {120, 5}} {
		widths := LayoutRow(tc.total, tc.n)
		sum := 0
		for _, w := range widths {
			sum += w
		}
		if sum != tc.total {
			t.Errorf("LayoutRow(%d, %d) sums to %d", tc.total, tc.n, sum)
		}
		if widths[0] < widths[len(widths)-1] {
			t.Errorf("LayoutRow(%d, %d) = %v, remainder should go first", tc.total, tc.n, widths)
		}
	}
	if LayoutRow(10, 0) != nil {
		t.Error("LayoutRow with n=0 should be nil")
	}
}

func TestMoneyLabel(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{0, "$0"},
		{950, "$950"},
		{12500, "$12.5k"},
		{20000, "$20k"},
		{1500000, "$1.5M"},
	}
	for _, tt := range tests {
		if got := MoneyLabel(tt.v); got != tt.want {
			t.Errorf("MoneyLabel(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestNiceCeiling(t *testing.T) {
	tests := []struct{ v, want float64 }{
		{0, 1},
		{7, 10},
		{12000, 20000},
		{41000, 50000},
	}
	for _, tt := range tests {
		if got := niceCeiling(tt.v); got != tt.want {
			t.Errorf("niceCeiling(%v) = %v, want %v", tt.v, got, tt.want)
		}
	}
}

func TestBarChartHeight(t *testing.T) {
	values := []float64{100, 200, 300, 50}
	labels := []string{"M1", "M2", "M3", "M4"}
	out := BarChart(values, labels, theme.Active.Accent, 60, 6)
	// 6 rows, the axis line and the label line
	if got := len(strings.Split(out, "\n")); got != 8 {
		t.Errorf("BarChart lines = %d, want 8", got)
	}

	if got := BarChart(values, labels, theme.Active.Accent, 10, 6); strings.Contains(got, "\n") {
		t.Error("narrow BarChart should fall back to a one-line sparkline")
	}
}

func TestTabVisualWidth(t *testing.T) {
	for i, tab := range Tabs {
		active := TabVisualWidth(tab, true)
		inactive := TabVisualWidth(tab, false)
		if active != len(tab.Name)+2 {
			t.Errorf("tab %d active width = %d", i, active)
		}
		if tab.KeyPos < 0 && inactive != active+3 {
			t.Errorf("tab %d inactive width = %d, want %d", i, inactive, active+3)
		}
	}
	if TabIdxByKey('x') != TabSettings || TabIdxByKey('z') != -1 {
		t.Error("TabIdxByKey mismatch")
	}
}
