package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/seasfin/internal/cli"
	"github.com/theirongolddev/seasfin/internal/pipeline"
	"github.com/theirongolddev/seasfin/internal/store"
)

var (
	flagProjMonths    int
	flagProjSalary    float64
	flagProjHours     float64
	flagProjNewHires  float64
	flagProjInflation float64
	flagProjAttrition float64
)

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Project the LCAT team's cost forward",
	Long: `Compound the LCAT team's current annual cost forward month by month.

Defaults come from the [projection] section of the config file.`,
	RunE: runProject,
}

func init() {
	f := projectCmd.Flags()
	f.IntVar(&flagProjMonths, "months", 0, "Months to project")
	f.Float64Var(&flagProjSalary, "salary-increase", 0, "Annual salary increase, percent")
	f.Float64Var(&flagProjHours, "hours-adjustment", 0, "Hours adjustment, percent (recorded only)")
	f.Float64Var(&flagProjNewHires, "new-hires", 0, "People hired over the horizon")
	f.Float64Var(&flagProjInflation, "inflation", 0, "Annual inflation, percent")
	f.Float64Var(&flagProjAttrition, "attrition", 0, "Annual attrition, percent")
	rootCmd.AddCommand(projectCmd)
}

func runProject(cmd *cobra.Command, _ []string) error {
	p := cfg.ProjectionParams()
	flags := cmd.Flags()
	if flags.Changed("months") {
		p.Months = flagProjMonths
	}
	if flags.Changed("salary-increase") {
		p.SalaryIncrease = flagProjSalary
	}
	if flags.Changed("hours-adjustment") {
		p.HoursAdjustment = flagProjHours
	}
	if flags.Changed("new-hires") {
		p.NewHires = flagProjNewHires
	}
	if flags.Changed("inflation") {
		p.Inflation = flagProjInflation
	}
	if flags.Changed("attrition") {
		p.Attrition = flagProjAttrition
	}
	if p.Months <= 0 {
		return fmt.Errorf("--months must be positive")
	}

	return withSession(cmd.Context(), false, func(st *store.State) error {
		team := st.EnhancedEmployees()
		if len(team) == 0 {
			fmt.Println("\n  No LCAT team members to project. Add them with `seasfin team add --enhanced`.")
			return nil
		}
		proj := pipeline.Project(team, p)
		current := pipeline.TeamCostSummary(team)

		fmt.Println()
		fmt.Println(cli.RenderTitle(fmt.Sprintf("TEAM COST PROJECTION  %d months", p.Months)))
		fmt.Println()
		fmt.Print(cli.RenderKeyValues("Assumptions", [][2]string{
			{"Salary Increase", cli.FormatPercent(p.SalaryIncrease) + "/yr"},
			{"Inflation", cli.FormatPercent(p.Inflation) + "/yr"},
			{"Attrition", cli.FormatPercent(p.Attrition) + "/yr"},
			{"New Hires", cli.FormatFloat(p.NewHires)},
			{"Hours Adjustment", cli.FormatPercent(p.HoursAdjustment)},
		}))

		fmt.Println()
		fmt.Print(cli.RenderKeyValues("Result", [][2]string{
			{"Current Annual Cost", cli.FormatMoney(current.TotalCurrent)},
			{"Projected Annual Cost", cli.FormatMoney(proj.AnnualCost)},
			{"Change", cli.FormatDelta(proj.AnnualCost - current.TotalCurrent)},
			{"Team Size", fmt.Sprintf("%d -> %.1f", len(team), proj.TeamSize)},
			{"Cost per Person", cli.FormatMoney(proj.AvgCostPerEmployee)},
		}))

		costs := make([]float64, len(proj.Monthly))
		rows := make([][]string, len(proj.Monthly))
		for i, m := range proj.Monthly {
			costs[i] = m.TotalCost
			rows[i] = []string{fmt.Sprintf("%d", m.Month), cli.FormatMoney(m.TotalCost), fmt.Sprintf("%.1f", m.TeamSize)}
		}
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "By Month  " + cli.RenderSparkline(costs),
			Headers: []string{"Month", "Annual Cost", "Team"},
			Rows:    rows,
		}))

		lrows := make([][]string, len(proj.LCATBreakdown))
		for i, l := range proj.LCATBreakdown {
			lrows[i] = []string{l.LCAT, fmt.Sprintf("%.1f", l.Count)}
		}
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Projected Headcount by LCAT",
			Headers: []string{"LCAT", "People"},
			Rows:    lrows,
		}))
		return nil
	})
}
