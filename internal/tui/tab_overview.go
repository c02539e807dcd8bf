package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/seasfin/internal/cli"
	"github.com/theirongolddev/seasfin/internal/model"
	"github.com/theirongolddev/seasfin/internal/tui/components"
	"github.com/theirongolddev/seasfin/internal/tui/theme"
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	r := a.report
	sum := r.Summary
	var b strings.Builder

	// Row 1: headline figures
	remainingColor := t.Green
	if sum.RemainingBudget < 0 {
		remainingColor = t.Red
	}
	cards := []components.Metric{
		{Label: "Total Budget", Value: cli.FormatMoney(sum.TotalBudget), Delta: r.Project.Name},
		{Label: "Spent", Value: cli.FormatMoney(sum.TotalExpenses),
			Delta: cli.FormatCompactMoney(r.BurnRate) + "/mo burn"},
		{Label: "Remaining", Value: cli.FormatMoney(sum.RemainingBudget), Color: remainingColor},
		{Label: "Utilization", Value: cli.FormatPercent(sum.BudgetUtilization),
			Color: components.ColorForPct(sum.BudgetUtilization)},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	// Row 2: spend by category | budget vs actual
	lw, rw, side := a.halves(cw)
	b.WriteString(pair(
		components.ContentCard("Spending by Category", a.categoryBody(components.CardInnerWidth(lw)), lw),
		components.ContentCard("Budget vs Actual", a.budgetBody(components.CardInnerWidth(rw)), rw),
		side,
	))
	b.WriteString("\n")

	// Row 3: schedule | recommendations
	b.WriteString(pair(
		components.ContentCard("Schedule", a.scheduleBody(components.CardInnerWidth(lw)), lw),
		components.ContentCard("Recommendations", a.recommendationsBody(components.CardInnerWidth(rw)), rw),
		side,
	))

	return b.String()
}

func (a App) categoryBody(innerW int) string {
	t := theme.Active
	cats := a.report.Categories
	if len(cats) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render("No expenses recorded yet")
	}

	labelW := 0
	peak := 0.0
	for _, c := range cats {
		labelW = max(labelW, len(c.Category))
		peak = max(peak, c.Amount)
	}
	labelW = min(labelW, 16)
	barMax := max(innerW-labelW-12, 5)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	barStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	lines := make([]string, 0, len(cats))
	for _, c := range cats {
		n := 0
		if peak > 0 {
			n = max(int(c.Amount/peak*float64(barMax)), 1)
		}
		lines = append(lines, labelStyle.Render(fmt.Sprintf("%-*s ", labelW, truncStr(c.Category, labelW)))+
			barStyle.Render(strings.Repeat("█", n))+
			valueStyle.Render(" "+cli.FormatCompactMoney(c.Amount)))
	}
	return strings.Join(lines, "\n")
}

func (a App) budgetBody(innerW int) string {
	t := theme.Active
	lines := a.report.Budget
	if len(lines) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render("No budget categories")
	}

	labelW := 0
	for _, l := range lines {
		labelW = max(labelW, len(l.Category))
	}
	labelW = min(labelW, 16)
	barW := max(innerW-labelW-9, 5)

	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, components.UtilizationBar(truncStr(l.Category, labelW), l.UsedPercent, labelW, barW))
	}
	return strings.Join(out, "\n")
}

func (a App) scheduleBody(innerW int) string {
	t := theme.Active
	r := a.report
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	row := func(label, value string) string {
		return labelStyle.Render(fmt.Sprintf("%-12s", label)) + valueStyle.Render(value)
	}

	var b strings.Builder
	b.WriteString(row("Dates", cli.FormatDate(r.Project.StartDate)+" → "+cli.FormatDate(r.Project.EndDate)))
	b.WriteString("\n")
	b.WriteString(row("Remaining", cli.FormatDays(r.Timeline.RemainingDays)+" "))
	b.WriteString(riskStyle(r.TimelineRisk).Render("(" + r.TimelineRisk + " risk)"))
	b.WriteString("\n\n")

	barW := max(innerW-19, 5)
	b.WriteString(components.UtilizationBar("Schedule", r.Timeline.ProgressPercent, 10, barW))
	b.WriteString("\n")
	b.WriteString(components.UtilizationBar("Budget", r.Summary.BudgetUtilization, 10, barW))
	b.WriteString("\n\n")

	eff := r.Efficiency
	b.WriteString(row("Efficiency", fmt.Sprintf("%.1f ", eff.Score)))
	b.WriteString(efficiencyStyle(eff.Status).Render(eff.Status))
	b.WriteString("\n")
	b.WriteString(row("Budget risk", ""))
	b.WriteString(lipgloss.NewStyle().Foreground(components.ColorForPct(r.Summary.BudgetUtilization)).
		Background(t.Surface).Render(eff.BudgetRisk))
	return b.String()
}

func (a App) recommendationsBody(innerW int) string {
	t := theme.Active
	recs := a.report.Recommendations
	if len(recs) == 0 {
		return lipgloss.NewStyle().Foreground(t.Green).Background(t.Surface).Render("Nothing to flag")
	}
	bullet := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Render("• ")
	textStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface).Width(innerW - 2)

	lines := make([]string, 0, len(recs))
	for _, rec := range recs {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, bullet, textStyle.Render(rec)))
	}
	return strings.Join(lines, "\n")
}

func riskStyle(level string) lipgloss.Style {
	t := theme.Active
	color := t.Green
	switch level {
	case model.RiskHigh:
		color = t.Red
	case model.RiskModerate:
		color = t.Yellow
	}
	return lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
}

func efficiencyStyle(status string) lipgloss.Style {
	t := theme.Active
	color := t.Green
	switch status {
	case model.EfficiencyBehind:
		color = t.Red
	case model.EfficiencySlightlyBehind:
		color = t.Yellow
	}
	return lipgloss.NewStyle().Foreground(color).Background(t.Surface).Bold(true)
}
