package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/seasfin/internal/cli"
	"github.com/theirongolddev/seasfin/internal/tui/components"
	"github.com/theirongolddev/seasfin/internal/tui/theme"
)

func (a App) renderTrendsTab(cw int) string {
	t := theme.Active
	r := a.report
	var b strings.Builder

	// Row 1: simulated monthly spending
	chartH := 10
	if a.isCompactLayout() {
		chartH = 6
	}
	trendBody := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).
		Render("Record expenses to see a spending trend")
	if len(r.Trend.Points) > 0 && r.Trend.Base > 0 {
		values := make([]float64, len(r.Trend.Points))
		labels := make([]string, len(r.Trend.Points))
		for i, p := range r.Trend.Points {
			values[i] = p.Spending
			labels[i] = fmt.Sprintf("M%d", p.Month)
		}
		trendBody = components.BarChart(values, labels, t.Blue, components.CardInnerWidth(cw), chartH)
	}
	b.WriteString(components.ContentCard(
		fmt.Sprintf("Spending Trend (base %s/mo, [s] resample)", cli.FormatCompactMoney(r.Trend.Base)),
		trendBody, cw))
	b.WriteString("\n")

	// Row 2: forecast | team cost trend
	lw, rw, side := a.halves(cw)
	b.WriteString(pair(
		components.ContentCard("Budget Forecast", a.forecastBody(), lw),
		components.ContentCard("Team Cost Trend", a.costTrendBody(components.CardInnerWidth(rw)), rw),
		side,
	))
	b.WriteString("\n")

	// Row 3: projection
	b.WriteString(components.ContentCard(
		fmt.Sprintf("Team Cost Projection (%d months)", a.cfg.ProjectionParams().Months),
		a.projectionBody(components.CardInnerWidth(cw)), cw))
	return b.String()
}

func (a App) forecastBody() string {
	t := theme.Active
	f := a.report.Forecast
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	row := func(label, value string) string {
		return labelStyle.Render(fmt.Sprintf("%-18s", label)) + valueStyle.Render(value)
	}

	varColor := t.Green
	if f.Variance > 0 {
		varColor = t.Red
	}

	var b strings.Builder
	b.WriteString(row("Monthly average", cli.FormatMoney(a.report.Trend.Base)))
	b.WriteString("\n")
	b.WriteString(row("Projected (12 mo)", cli.FormatMoney(f.ProjectedTotal)))
	b.WriteString("\n")
	b.WriteString(row("Budget", cli.FormatMoney(a.report.Summary.TotalBudget)))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("%-18s", "Over budget")))
	b.WriteString(lipgloss.NewStyle().Foreground(varColor).Background(t.Surface).Bold(true).
		Render(fmt.Sprintf("%s (%+.1f%%)", cli.FormatDelta(f.Variance), f.VariancePct)))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("%-18s", "Risk")))
	b.WriteString(riskStyle(f.Risk).Render(f.Risk))
	return b.String()
}

func (a App) costTrendBody(innerW int) string {
	t := theme.Active
	points := a.report.CostTrend
	if len(points) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render("No labor records")
	}

	budgeted := make([]float64, len(points))
	actual := make([]float64, len(points))
	for i, p := range points {
		budgeted[i] = p.Budgeted
		actual[i] = p.Actual
	}
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	first, last := points[0], points[len(points)-1]
	var b strings.Builder
	b.WriteString(labelStyle.Render("Budgeted "))
	b.WriteString(components.Sparkline(budgeted, t.Accent))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Actual   "))
	b.WriteString(components.Sparkline(actual, t.Orange))
	b.WriteString("\n\n")
	b.WriteString(valueStyle.Width(innerW).Render(fmt.Sprintf("%s to %s · latest %s budgeted, %s actual",
		first.Period, last.Period, cli.FormatMoney(last.Budgeted), cli.FormatMoney(last.Actual))))
	return b.String()
}

func (a App) projectionBody(innerW int) string {
	t := theme.Active
	p := a.proj
	if len(p.Monthly) == 0 || p.TeamSize == 0 {
		return lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).
			Render("Add labor records to project team cost forward")
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Bold(true)

	values := make([]float64, len(p.Monthly))
	for i, m := range p.Monthly {
		values[i] = m.TotalCost
	}

	var b strings.Builder
	b.WriteString(labelStyle.Render("Total cost ") + valueStyle.Render(cli.FormatMoney(p.AnnualCost)))
	b.WriteString(labelStyle.Render("   Final team ") + valueStyle.Render(cli.FormatFloat(p.TeamSize)))
	b.WriteString(labelStyle.Render("   Per employee ") + valueStyle.Render(cli.FormatMoney(p.AvgCostPerEmployee)))
	b.WriteString("\n")
	b.WriteString(components.Sparkline(values, t.Cyan))
	b.WriteString("\n")

	parts := make([]string, 0, len(p.LCATBreakdown))
	for _, s := range p.LCATBreakdown {
		parts = append(parts, fmt.Sprintf("%s %.1f", s.LCAT, s.Count))
	}
	if len(parts) > 0 {
		b.WriteString(lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface).Width(innerW).
			Render(strings.Join(parts, " · ")))
	}
	return b.String()
}
