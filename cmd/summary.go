package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/seasfin/internal/cli"
	"github.com/theirongolddev/seasfin/internal/pipeline"
	"github.com/theirongolddev/seasfin/internal/store"
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Budget position, spend by category and budget vs actual",
	RunE:  runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	return withSession(cmd.Context(), false, func(st *store.State) error {
		r := buildReport(st)
		printSummary(r)
		return nil
	})
}

func printSummary(r pipeline.Report) {
	s := r.Summary
	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("%s  %s", r.Project.Name, cli.FormatDate(r.Now))))
	fmt.Println()

	fmt.Print(cli.RenderKeyValues("", [][2]string{
		{"Total Budget", cli.FormatMoney(s.TotalBudget)},
		{"Total Expenses", cli.FormatMoney(s.TotalExpenses)},
		{"Remaining", cli.RenderMoneyDelta(s.RemainingBudget)},
		{"Revenue", cli.FormatMoney(s.TotalRevenue)},
		{"---", ""},
		{"Utilization", cli.RenderUtilizationBar(s.BudgetUtilization, 20)},
		{"Burn Rate", cli.FormatMoney(r.BurnRate) + "/mo"},
		{"Days Remaining", cli.FormatDays(r.Timeline.RemainingDays)},
	}))

	if len(r.Categories) > 0 {
		top := pipeline.TopCategories(r.Categories, 5)
		labels := make([]string, len(top))
		amounts := make([]float64, len(top))
		for i, c := range top {
			labels[i], amounts[i] = c.Category, c.Amount
		}
		fmt.Println()
		fmt.Print(cli.RenderSection("Spend by Category"))
		fmt.Print(cli.RenderBars(labels, amounts, 30))
	}

	rows := make([][]string, 0, len(r.Budget))
	for _, l := range r.Budget {
		rows = append(rows, []string{
			l.Category,
			cli.FormatMoney(l.Allocated),
			cli.FormatMoney(l.Spent),
			cli.RenderMoneyDelta(l.Remaining),
			cli.FormatPercent(l.UsedPercent),
		})
	}
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "Budget vs Actual",
		Headers: []string{"Category", "Allocated", "Spent", "Remaining", "Used"},
		Rows:    rows,
	}))

	if r.Summary.TotalExpenses == 0 {
		fmt.Println()
		fmt.Print(cli.RenderNote("No expenses recorded yet. Add one with `seasfin expense add`."))
	}
}
