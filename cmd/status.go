package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/seasfin/internal/cli"
	"github.com/theirongolddev/seasfin/internal/store"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Schedule progress, spending efficiency and recommendations",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, _ []string) error {
	return withSession(cmd.Context(), false, func(st *store.State) error {
		r := buildReport(st)
		p := r.Project
		tl := r.Timeline

		fmt.Println()
		fmt.Println(cli.RenderTitle("PROJECT STATUS"))
		fmt.Println()

		fmt.Print(cli.RenderKeyValues(p.Name, [][2]string{
			{"Department", p.Department},
			{"Manager", p.Manager},
			{"Start", cli.FormatDate(p.StartDate)},
			{"End", cli.FormatDate(p.EndDate)},
			{"---", ""},
			{"Elapsed", fmt.Sprintf("%s of %s", cli.FormatDays(tl.ElapsedDays), cli.FormatDays(tl.TotalDays))},
			{"Remaining", cli.FormatDays(tl.RemainingDays) + "  " + cli.RenderRisk(r.TimelineRisk)},
			{"Schedule", cli.RenderUtilizationBar(tl.ProgressPercent, 20)},
			{"Budget", cli.RenderUtilizationBar(r.Summary.BudgetUtilization, 20)},
		}))

		e := r.Efficiency
		fmt.Println()
		fmt.Print(cli.RenderKeyValues("Efficiency", [][2]string{
			{"Score", fmt.Sprintf("%.0f", e.Score)},
			{"Status", cli.RenderRisk(e.Status)},
			{"Budget", e.BudgetRisk},
			{"Forecast Risk", cli.RenderRisk(r.Forecast.Risk)},
		}))
		fmt.Print(cli.RenderNote("Score is budget used per unit of schedule elapsed; above 100 means spending is ahead of time."))

		fmt.Println()
		fmt.Print(cli.RenderSection("Recommendations"))
		fmt.Print(cli.RenderBullets(r.Recommendations))
		return nil
	})
}
