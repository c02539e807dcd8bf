package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/seasfin/internal/cli"
	"github.com/theirongolddev/seasfin/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	fmt.Printf("  Config file: %s\n", cfgPath)
	if config.ExistsAt(cfgPath) {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Printf("  Workspace:   %s\n", cfg.WorkspacePath())
	fmt.Println()

	fmt.Println("  [General]")
	if cfg.General.Seed != 0 {
		fmt.Printf("    Trend seed:   %d\n", cfg.General.Seed)
	} else {
		fmt.Println("    Trend seed:   random")
	}
	fmt.Println()

	fmt.Println("  [Project]  (seeds new workspaces)")
	fmt.Printf("    Name:         %s\n", cfg.Project.Name)
	fmt.Printf("    Total budget: %s\n", cli.FormatMoney(cfg.Project.TotalBudget))
	fmt.Printf("    Dates:        %s to %s\n", orDefault(cfg.Project.StartDate, "today"), orDefault(cfg.Project.EndDate, "+1 year"))
	fmt.Printf("    Department:   %s\n", cfg.Project.Department)
	fmt.Printf("    Manager:      %s\n", cfg.Project.Manager)
	fmt.Println()

	fmt.Println("  [Contract]")
	fmt.Printf("    Value:        %s\n", cli.FormatMoney(cfg.Contract.Value))
	fmt.Printf("    Dates:        %s to %s\n", orDefault(cfg.Contract.StartDate, "project start"), orDefault(cfg.Contract.EndDate, "project end"))
	fmt.Println()

	fmt.Println("  [Rates]")
	fmt.Printf("    Fringe %s, overhead %s, G&A %s\n",
		cli.FormatPercent(cfg.Rates.Fringe), cli.FormatPercent(cfg.Rates.Overhead), cli.FormatPercent(cfg.Rates.GA))
	fmt.Println()

	fmt.Println("  [Budget]")
	for _, c := range cfg.BudgetCategories() {
		fmt.Printf("    %-14s %s\n", c.Name+":", cli.FormatMoney(c.Allocated))
	}
	fmt.Println()

	p := cfg.Projection
	fmt.Println("  [Projection]")
	fmt.Printf("    %d months, salary +%s, inflation %s, attrition %s, %s new hires\n",
		p.Months, cli.FormatPercent(p.SalaryIncrease), cli.FormatPercent(p.Inflation),
		cli.FormatPercent(p.Attrition), cli.FormatFloat(p.NewHires))
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Println("  Run `seasfin setup` to reconfigure.")
	return nil
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
