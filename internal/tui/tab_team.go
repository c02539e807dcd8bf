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

// teamState holds the Team tab cursor.
type teamState struct {
	cursor int
}

func (s *teamState) move(delta, n int) {
	s.cursor += delta
	s.clamp(n)
}

func (s *teamState) clamp(n int) {
	if s.cursor >= n {
		s.cursor = n - 1
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

// updateTeamKeys handles list navigation. It reports whether the key was used.
func (a *App) updateTeamKeys(key string) bool {
	n := len(a.report.EmployeeCosts)
	switch key {
	case "j", "down":
		a.team.move(1, n)
	case "k", "up":
		a.team.move(-1, n)
	case "g", "home":
		a.team.cursor = 0
	case "G", "end":
		a.team.move(n, n)
	default:
		return false
	}
	return true
}

func (a App) renderTeamTab(cw, h int) string {
	t := theme.Active
	ts := a.report.Team
	var b strings.Builder

	varColor := t.Green
	if ts.CostVariance > 0 {
		varColor = t.Red
	}
	cards := []components.Metric{
		{Label: "Team Members", Value: cli.FormatNumber(int64(ts.Headcount))},
		{Label: "Priced / mo", Value: cli.FormatMoney(ts.TotalPriced)},
		{Label: "Current / mo", Value: cli.FormatMoney(ts.TotalCurrent),
			Delta: cli.FormatMoneyCents(ts.AverageHourlyRate) + "/hr avg"},
		{Label: "Variance", Value: cli.FormatDelta(ts.CostVariance),
			Delta: fmt.Sprintf("%+.1f%%", ts.CostVariancePct), Color: varColor},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	lw, rw, side := a.halves(cw)
	listH := max(h-lipgloss.Height(b.String())-4, 5)
	b.WriteString(pair(
		components.ContentCard("Labor Costs", a.teamListBody(components.CardInnerWidth(lw), listH), lw),
		components.ContentCard("Details", a.teamDetailBody(components.CardInnerWidth(rw)), rw),
		side,
	))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("Roster", a.rosterBody(components.CardInnerWidth(cw)), cw))
	return b.String()
}

func (a App) teamListBody(innerW, visible int) string {
	t := theme.Active
	costs := a.report.EmployeeCosts
	if len(costs) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).
			Render("No labor records. Import them with `seasfin import enhanced <file>`.")
	}

	nameW := max(innerW-30, 8)
	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)

	format := fmt.Sprintf("%%-%ds %%14s %%14s", nameW)
	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf(format, "Name", "Budgeted", "Actual")))

	// Keep the cursor in view.
	visible = max(visible-1, 1)
	offset := max(a.team.cursor-visible+1, 0)
	end := min(offset+visible, len(costs))

	for i := offset; i < end; i++ {
		c := costs[i]
		line := fmt.Sprintf(format, truncStr(c.Name, nameW), cli.FormatMoney(c.BudgetedMonthly), cli.FormatMoney(c.ActualMonthly))
		b.WriteString("\n")
		if i == a.team.cursor {
			b.WriteString(selStyle.Render(line))
		} else {
			b.WriteString(rowStyle.Render(line))
		}
	}
	if len(costs) > visible {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).
			Render(fmt.Sprintf("%d/%d  [j/k] move", a.team.cursor+1, len(costs))))
	}
	return b.String()
}

func (a App) teamDetailBody(innerW int) string {
	t := theme.Active
	costs := a.report.EmployeeCosts
	if len(costs) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render("-")
	}
	c := costs[a.team.cursor]

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	nameStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface).Bold(true)

	row := func(label, value string) string {
		return labelStyle.Render(fmt.Sprintf("%-16s", label)) + valueStyle.Render(value)
	}

	var b strings.Builder
	b.WriteString(nameStyle.Render(truncStr(c.Name, innerW)))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(truncStr(c.LCAT, innerW)))
	b.WriteString("\n\n")
	b.WriteString(row("Priced rate", cli.FormatMoneyCents(c.PricedHourly)+"/hr"))
	b.WriteString("\n")
	b.WriteString(row("Current rate", cli.FormatMoneyCents(c.CurrentHourly)+"/hr"))
	b.WriteString("\n")
	b.WriteString(row("Budgeted / mo", cli.FormatMoney(c.BudgetedMonthly)))
	b.WriteString("\n")
	b.WriteString(row("Actual / mo", cli.FormatMoney(c.ActualMonthly)))
	b.WriteString("\n\n")
	b.WriteString(components.UtilizationBar("Hours", c.HoursUtilization, 8, max(innerW-17, 5)))
	return b.String()
}

func (a App) rosterBody(innerW int) string {
	t := theme.Active
	an := a.report.Analytics
	if an.Headcount == 0 {
		return lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).
			Render("No employees on the roster. Add one with `seasfin team add`.")
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)

	summary := fmt.Sprintf("%d employees (%d active) in %d departments · payroll %s · avg %s · median %s · range %s to %s",
		an.Headcount, an.Active, an.Departments,
		cli.FormatMoney(an.TotalPayroll), cli.FormatMoney(an.AverageSalary), cli.FormatMoney(an.MedianSalary),
		cli.FormatMoney(an.MinSalary), cli.FormatMoney(an.MaxSalary))

	var b strings.Builder
	b.WriteString(valueStyle.Width(innerW).Render(summary))
	b.WriteString("\n")

	groups := func(title string, gs []model.GroupCount) string {
		parts := make([]string, 0, len(gs))
		for _, g := range gs {
			parts = append(parts, fmt.Sprintf("%s %d", g.Label, g.Count))
		}
		return labelStyle.Render(title+": ") + valueStyle.Render(strings.Join(parts, " · "))
	}
	b.WriteString(groups("Departments", an.ByDepartment))
	b.WriteString("\n")
	b.WriteString(groups("Categories", an.ByCategory))
	return b.String()
}
