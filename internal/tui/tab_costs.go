package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/seasfin/internal/cli"
	"github.com/theirongolddev/seasfin/internal/model"
	"github.com/theirongolddev/seasfin/internal/store"
	"github.com/theirongolddev/seasfin/internal/tui/components"
	"github.com/theirongolddev/seasfin/internal/tui/theme"
)

func (a App) renderCostsTab(cw int) string {
	t := theme.Active
	c := a.report.Costs
	var b strings.Builder

	plColor := t.Green
	if c.ProfitLoss < 0 {
		plColor = t.Red
	}
	cards := []components.Metric{
		{Label: "Contract Value", Value: cli.FormatMoney(c.ContractValue),
			Delta: cli.FormatPercent(c.ContractUtilization) + " consumed"},
		{Label: "Total Costs", Value: cli.FormatMoney(c.TotalCosts)},
		{Label: "Profit / Loss", Value: cli.FormatDelta(c.ProfitLoss), Color: plColor},
		{Label: "Margin", Value: cli.FormatPercent(c.MarginPercent), Color: plColor},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	lw, rw, side := a.halves(cw)
	b.WriteString(pair(
		components.ContentCard("Cost Breakdown", a.costBreakdownBody(components.CardInnerWidth(lw)), lw),
		components.ContentCard("ODC by Status", a.odcStatusBody(components.CardInnerWidth(rw)), rw),
		side,
	))
	b.WriteString("\n")

	b.WriteString(components.ContentCard("Indirect Cost Periods", a.indirectBody(components.CardInnerWidth(cw)), cw))
	return b.String()
}

func (a App) costBreakdownBody(innerW int) string {
	t := theme.Active
	c := a.report.Costs

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	rows := []struct {
		label string
		value float64
	}{
		{"Labor", c.TotalLabor},
		{"ODC", c.TotalODC},
		{"Indirect", c.TotalIndirect},
	}

	valueW := max(innerW-22, 10)
	var b strings.Builder
	for _, r := range rows {
		share := 0.0
		if c.TotalCosts > 0 {
			share = r.value / c.TotalCosts * 100
		}
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-10s", r.label)))
		b.WriteString(valueStyle.Render(fmt.Sprintf("%*s", valueW, cli.FormatMoney(r.value))))
		b.WriteString(dimStyle.Render(fmt.Sprintf(" %6.1f%%", share)))
		b.WriteString("\n")
	}
	b.WriteString(dimStyle.Render(strings.Repeat("─", min(innerW, valueW+18))))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(fmt.Sprintf("%-10s", "Total")))
	b.WriteString(valueStyle.Bold(true).Render(fmt.Sprintf("%*s", valueW, cli.FormatMoney(c.TotalCosts))))
	b.WriteString("\n\n")
	b.WriteString(components.UtilizationBar("Contract", c.ContractUtilization, 10, max(innerW-19, 5)))
	return b.String()
}

func (a App) odcStatusBody(innerW int) string {
	t := theme.Active
	o := a.report.ODCByStatus
	if o.Count == 0 {
		return lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).Render("No ODC items recorded")
	}

	amounts := map[string]float64{
		model.ODCPlanned:   o.Planned,
		model.ODCCommitted: o.Committed,
		model.ODCInvoiced:  o.Invoiced,
		model.ODCPaid:      o.Paid,
	}
	colors := map[string]lipgloss.Color{
		model.ODCPlanned:   t.Blue,
		model.ODCCommitted: t.Yellow,
		model.ODCInvoiced:  t.Orange,
		model.ODCPaid:      t.Green,
	}
	total := o.Planned + o.Committed + o.Invoiced + o.Paid + o.Other

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	barMax := max(innerW-24, 5)

	statuses := append([]string(nil), model.ODCStatuses...)
	if o.Other > 0 {
		amounts["Other"] = o.Other
		colors["Other"] = t.TextDim
		statuses = append(statuses, "Other")
	}

	var b strings.Builder
	for _, s := range statuses {
		n := 0
		if total > 0 {
			n = int(amounts[s] / total * float64(barMax))
		}
		b.WriteString(labelStyle.Render(fmt.Sprintf("%-10s", s)))
		b.WriteString(lipgloss.NewStyle().Foreground(colors[s]).Background(t.Surface).Render(strings.Repeat("█", n)))
		b.WriteString(lipgloss.NewStyle().Background(t.Surface).Render(strings.Repeat(" ", barMax-n)))
		b.WriteString(valueStyle.Render(fmt.Sprintf(" %12s", cli.FormatMoney(amounts[s]))))
		b.WriteString("\n")
	}
	b.WriteString(labelStyle.Render(fmt.Sprintf("%d items · %s total", o.Count, cli.FormatMoney(total))))
	return b.String()
}

func (a App) indirectBody(innerW int) string {
	t := theme.Active
	if a.st == nil || a.st.Count(store.IndirectCosts) == 0 {
		return lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface).
			Render("No indirect cost periods. Add one with `seasfin indirect set`.")
	}
	periods := a.st.IndirectPeriods()

	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)

	periodW := max(min(innerW-52, 20), 8)
	format := fmt.Sprintf("%%-%ds %%12s %%12s %%12s %%12s", periodW)

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf(format, "Period", "Fringe", "Overhead", "G&A", "Total")))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(strings.Repeat("─", min(innerW, periodW+52))))
	for _, p := range periods {
		b.WriteString("\n")
		b.WriteString(rowStyle.Render(fmt.Sprintf(format, truncStr(p.Period, periodW),
			cli.FormatMoney(p.Fringe), cli.FormatMoney(p.Overhead), cli.FormatMoney(p.GA), cli.FormatMoney(p.Total))))
	}

	rates := a.st.Rates()
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Rates: fringe %s · overhead %s · G&A %s",
		cli.FormatPercent(rates.Fringe), cli.FormatPercent(rates.Overhead), cli.FormatPercent(rates.GA))))
	return b.String()
}
