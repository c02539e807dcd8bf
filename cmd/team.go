package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/seasfin/internal/cli"
	"github.com/theirongolddev/seasfin/internal/model"
	"github.com/theirongolddev/seasfin/internal/pipeline"
	"github.com/theirongolddev/seasfin/internal/store"
)

var (
	flagTeamSearch     string
	flagTeamDepartment string
	flagTeamStatus     string

	flagEmpName       string
	flagEmpCategory   string
	flagEmpDepartment string
	flagEmpStatus     string
	flagEmpSalary     float64
	flagEmpStart      string
	flagEmpLocation   string
	flagEmpManager    string
	flagEmpSkills     string
	flagEmpNotes      string

	flagEmpEnhanced bool
	flagEmpPriced   float64
	flagEmpHours    float64
)

var teamCmd = &cobra.Command{
	Use:   "team",
	Short: "Roster and LCAT team costs",
}

var teamListCmd = &cobra.Command{
	Use:   "list",
	Short: "List roster entries",
	RunE:  runTeamList,
}

var teamAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a roster entry, or an LCAT-priced team member with --enhanced",
	RunE:  runTeamAdd,
}

var teamAnalyticsCmd = &cobra.Command{
	Use:   "analytics",
	Short: "Headcount and salary distribution of the roster",
	RunE:  runTeamAnalytics,
}

var teamCostsCmd = &cobra.Command{
	Use:   "costs",
	Short: "Priced vs current cost of the LCAT team",
	RunE:  runTeamCosts,
}

func init() {
	teamListCmd.Flags().StringVar(&flagTeamSearch, "search", "", "Match name, department or skills")
	teamListCmd.Flags().StringVar(&flagTeamDepartment, "department", "", "Only this department")
	teamListCmd.Flags().StringVar(&flagTeamStatus, "status", "", "Only this status")

	f := teamAddCmd.Flags()
	f.StringVar(&flagEmpName, "name", "", "Full name (required)")
	f.StringVar(&flagEmpCategory, "category", "", "Labor category, or LCAT with --enhanced (required)")
	f.StringVar(&flagEmpDepartment, "department", "", "Department")
	f.StringVar(&flagEmpStatus, "status", "", "Active, On Leave, Contractor or Part-time")
	f.Float64Var(&flagEmpSalary, "salary", 0, "Annual salary (current salary with --enhanced)")
	f.StringVar(&flagEmpStart, "start", "", "Start date YYYY-MM-DD")
	f.StringVar(&flagEmpLocation, "location", "", "Location")
	f.StringVar(&flagEmpManager, "manager", "", "Manager")
	f.StringVar(&flagEmpSkills, "skills", "", "Skills")
	f.StringVar(&flagEmpNotes, "notes", "", "Notes")
	f.BoolVar(&flagEmpEnhanced, "enhanced", false, "Add to the LCAT-priced team instead of the roster")
	f.Float64Var(&flagEmpPriced, "priced-salary", 0, "Annual salary priced into the contract (--enhanced)")
	f.Float64Var(&flagEmpHours, "hours", model.StandardHoursPerMonth, "Hours per month (--enhanced)")

	teamCmd.AddCommand(teamListCmd, teamAddCmd, teamAnalyticsCmd, teamCostsCmd)
	rootCmd.AddCommand(teamCmd)
}

func runTeamList(cmd *cobra.Command, _ []string) error {
	return withSession(cmd.Context(), false, func(st *store.State) error {
		emps := pipeline.FilterEmployees(st.Employees(), pipeline.EmployeeFilter{
			Search:     flagTeamSearch,
			Department: flagTeamDepartment,
			Status:     flagTeamStatus,
		})
		if len(emps) == 0 {
			fmt.Println("\n  No roster entries match.")
			return nil
		}

		rows := make([][]string, 0, len(emps))
		for _, e := range emps {
			rows = append(rows, []string{
				e.Name, e.LaborCategory, e.Department, e.Status,
				cli.FormatMoney(e.Salary), cli.FormatDate(e.StartDate),
			})
		}
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   fmt.Sprintf("Roster  (%d of %d)", len(emps), st.Count(store.Employees)),
			Headers: []string{"Name", "Category", "Department", "Status", "Salary", "Start"},
			Rows:    rows,
		}))
		return nil
	})
}

func parseDateFlag(name, v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s: want YYYY-MM-DD: %w", name, err)
	}
	return t, nil
}

func runTeamAdd(cmd *cobra.Command, _ []string) error {
	start, err := parseDateFlag("start", flagEmpStart)
	if err != nil {
		return err
	}

	return withSession(cmd.Context(), true, func(st *store.State) error {
		if flagEmpEnhanced {
			e, err := model.NewEnhancedEmployee(model.EnhancedEmployee{
				Name:          flagEmpName,
				LCAT:          flagEmpCategory,
				Department:    flagEmpDepartment,
				Location:      flagEmpLocation,
				PricedSalary:  flagEmpPriced,
				CurrentSalary: flagEmpSalary,
				HoursPerMonth: flagEmpHours,
				StartDate:     start,
				Manager:       flagEmpManager,
				Skills:        flagEmpSkills,
				Notes:         flagEmpNotes,
			})
			if err != nil {
				return err
			}
			e = st.AddEnhancedEmployee(e)
			fmt.Printf("  Added %s (%s) to the LCAT team as #%d\n", e.Name, e.LCAT, e.ID)
			return nil
		}

		e, err := model.NewEmployee(model.Employee{
			Name:          flagEmpName,
			LaborCategory: flagEmpCategory,
			Department:    flagEmpDepartment,
			Status:        flagEmpStatus,
			Salary:        flagEmpSalary,
			StartDate:     start,
			Location:      flagEmpLocation,
			Manager:       flagEmpManager,
			Skills:        flagEmpSkills,
			Notes:         flagEmpNotes,
		})
		if err != nil {
			return err
		}
		e = st.AddEmployee(e)
		fmt.Printf("  Added %s to the roster as #%d\n", e.Name, e.ID)
		return nil
	})
}

func runTeamAnalytics(cmd *cobra.Command, _ []string) error {
	return withSession(cmd.Context(), false, func(st *store.State) error {
		a := pipeline.TeamAnalytics(st.Employees())
		if a.Headcount == 0 {
			fmt.Println("\n  The roster is empty. Add people with `seasfin team add` or `seasfin import employees`.")
			return nil
		}

		fmt.Println()
		fmt.Print(cli.RenderKeyValues("Team Analytics", [][2]string{
			{"Headcount", cli.FormatNumber(int64(a.Headcount))},
			{"Active", cli.FormatNumber(int64(a.Active))},
			{"Departments", cli.FormatNumber(int64(a.Departments))},
			{"---", ""},
			{"Total Payroll", cli.FormatMoney(a.TotalPayroll)},
			{"Average Salary", cli.FormatMoney(a.AverageSalary)},
			{"Median Salary", cli.FormatMoney(a.MedianSalary)},
			{"Salary Range", cli.FormatMoney(a.MinSalary) + " - " + cli.FormatMoney(a.MaxSalary)},
		}))

		fmt.Println()
		fmt.Print(groupTable("By Department", a.ByDepartment, a.Headcount))
		fmt.Println()
		fmt.Print(groupTable("By Labor Category", a.ByCategory, a.Headcount))
		return nil
	})
}

func groupTable(title string, groups []model.GroupCount, total int) string {
	rows := make([][]string, 0, len(groups))
	for _, g := range groups {
		rows = append(rows, []string{
			g.Label,
			cli.FormatNumber(int64(g.Count)),
			cli.FormatPercent(float64(g.Count) / float64(total) * 100),
		})
	}
	return cli.RenderTable(cli.Table{Title: title, Headers: []string{"Group", "People", "Share"}, Rows: rows})
}

func runTeamCosts(cmd *cobra.Command, _ []string) error {
	return withSession(cmd.Context(), false, func(st *store.State) error {
		team := st.EnhancedEmployees()
		if len(team) == 0 {
			fmt.Println("\n  No LCAT team members. Add them with `seasfin team add --enhanced` or `seasfin import enhanced`.")
			return nil
		}
		s := pipeline.TeamCostSummary(team)

		fmt.Println()
		fmt.Print(cli.RenderKeyValues("LCAT Team", [][2]string{
			{"Headcount", cli.FormatNumber(int64(s.Headcount))},
			{"Priced (annual)", cli.FormatMoney(s.TotalPriced)},
			{"Current (annual)", cli.FormatMoney(s.TotalCurrent)},
			{"Variance", cli.FormatDelta(s.CostVariance) + "  (" + cli.FormatPercent(s.CostVariancePct) + ")"},
			{"Hours / Month", cli.FormatFloat(s.TotalHours)},
			{"Avg Hourly Rate", cli.FormatMoneyCents(s.AverageHourlyRate)},
		}))

		rows := make([][]string, 0, len(team))
		for _, c := range pipeline.EmployeeCosts(team) {
			rows = append(rows, []string{
				c.Name, c.LCAT,
				cli.FormatMoney(c.BudgetedMonthly),
				cli.FormatMoney(c.ActualMonthly),
				cli.FormatDelta(c.Variance),
				cli.FormatMoneyCents(c.CurrentHourly),
				cli.FormatPercent(c.HoursUtilization),
			})
		}
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Monthly Cost by Person",
			Headers: []string{"Name", "LCAT", "Budgeted", "Actual", "Variance", "Hourly", "Hours"},
			Rows:    rows,
		}))

		trend := pipeline.CostTrend(team, st.Now())
		trendRows := make([][]string, 0, len(trend))
		actuals := make([]float64, 0, len(trend))
		for _, p := range trend {
			trendRows = append(trendRows, []string{p.Period, cli.FormatMoney(p.Budgeted), cli.FormatMoney(p.Actual)})
			actuals = append(actuals, p.Actual)
		}
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Cost Trend  " + cli.RenderSparkline(actuals),
			Headers: []string{"Period", "Budgeted", "Actual"},
			Rows:    trendRows,
		}))
		fmt.Print(cli.RenderNote("Trend periods are illustrative, scaled from the current monthly cost."))

		if lcats := lcatList(); lcats != "" {
			fmt.Print(cli.RenderNote("Known LCATs: " + lcats))
		}
		return nil
	})
}

func lcatList() string {
	return strings.Join(model.LCATOptions, ", ")
}
