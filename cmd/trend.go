package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/seasfin/internal/cli"
	"github.com/theirongolddev/seasfin/internal/store"
)

var trendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Simulated twelve-month spending trend and budget forecast",
	Long: `Simulate twelve months of spending around the current monthly average
and compare the projected total with the budget.

The series is randomized; pass --seed (or set SEASFIN_SEED) to repeat it.`,
	RunE: runTrend,
}

func init() {
	rootCmd.AddCommand(trendCmd)
}

func runTrend(cmd *cobra.Command, _ []string) error {
	return withSession(cmd.Context(), false, func(st *store.State) error {
		r := buildReport(st)
		if r.Summary.TotalExpenses == 0 {
			fmt.Println("\n  No expenses recorded; there is nothing to project.")
			return nil
		}

		values := make([]float64, len(r.Trend.Points))
		labels := make([]string, len(r.Trend.Points))
		for i, p := range r.Trend.Points {
			values[i] = p.Spending
			labels[i] = fmt.Sprintf("Month %2d", p.Month)
		}

		fmt.Println()
		fmt.Println(cli.RenderTitle("SPENDING TREND"))
		fmt.Println()
		fmt.Printf("  %s\n\n", cli.RenderSparkline(values))
		fmt.Print(cli.RenderBars(labels, values, 30))

		f := r.Forecast
		fmt.Println()
		fmt.Print(cli.RenderKeyValues("Forecast", [][2]string{
			{"Monthly Average", cli.FormatMoney(r.Trend.Base)},
			{"Projected (12 mo)", cli.FormatMoney(f.ProjectedTotal)},
			{"Budget", cli.FormatMoney(r.Summary.TotalBudget)},
			{"Over Budget", cli.FormatDelta(f.Variance) + "  (" + cli.FormatPercent(f.VariancePct) + ")"},
			{"Risk", cli.RenderRisk(f.Risk)},
		}))
		return nil
	})
}
