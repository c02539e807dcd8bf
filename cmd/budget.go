package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/seasfin/internal/cli"
	"github.com/theirongolddev/seasfin/internal/store"
)

var (
	flagContractValue float64
	flagContractStart string
	flagContractEnd   string
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Show or change budget allocations",
	RunE:  runBudgetShow,
}

var budgetSetCmd = &cobra.Command{
	Use:   "set <category> <amount>",
	Short: "Set the allocation of a budget category, adding it if new",
	Args:  cobra.ExactArgs(2),
	RunE:  runBudgetSet,
}

var budgetTotalCmd = &cobra.Command{
	Use:   "total <amount>",
	Short: "Set the project's total budget",
	Args:  cobra.ExactArgs(1),
	RunE:  runBudgetTotal,
}

var contractCmd = &cobra.Command{
	Use:   "contract",
	Short: "Show or change the contract settings",
	RunE:  runContractShow,
}

var contractSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Set the contract value and period",
	RunE:  runContractSet,
}

func init() {
	contractSetCmd.Flags().Float64Var(&flagContractValue, "value", 0, "Contract value")
	contractSetCmd.Flags().StringVar(&flagContractStart, "start", "", "Contract start YYYY-MM-DD")
	contractSetCmd.Flags().StringVar(&flagContractEnd, "end", "", "Contract end YYYY-MM-DD")

	budgetCmd.AddCommand(budgetSetCmd, budgetTotalCmd)
	contractCmd.AddCommand(contractSetCmd)
	rootCmd.AddCommand(budgetCmd, contractCmd)
}

func runBudgetShow(cmd *cobra.Command, _ []string) error {
	return withSession(cmd.Context(), false, func(st *store.State) error {
		var allocated float64
		rows := make([][]string, 0, len(st.Budget())+2)
		for _, c := range st.Budget() {
			allocated += c.Allocated
			rows = append(rows, []string{c.Name, cli.FormatMoney(c.Allocated)})
		}
		rows = append(rows, []string{"---"}, []string{"Allocated", cli.FormatMoney(allocated)})

		total := st.Project().TotalBudget
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Budget Allocations  (total budget " + cli.FormatMoney(total) + ")",
			Headers: []string{"Category", "Allocated"},
			Rows:    rows,
		}))
		if diff := total - allocated; diff != 0 {
			fmt.Print(cli.RenderNote(fmt.Sprintf("Allocations differ from the total budget by %s", cli.FormatDelta(-diff))))
		}
		return nil
	})
}

func runBudgetSet(cmd *cobra.Command, args []string) error {
	amount, err := parseMoneyArg(args[1])
	if err != nil {
		return err
	}
	return withSession(cmd.Context(), true, func(st *store.State) error {
		st.SetBudgetCategory(args[0], amount)
		fmt.Printf("  %s allocation set to %s\n", args[0], cli.FormatMoney(amount))
		return nil
	})
}

func runBudgetTotal(cmd *cobra.Command, args []string) error {
	amount, err := parseMoneyArg(args[0])
	if err != nil {
		return err
	}
	return withSession(cmd.Context(), true, func(st *store.State) error {
		p := st.Project()
		p.TotalBudget = amount
		st.SetProject(p)
		fmt.Printf("  Total budget set to %s\n", cli.FormatMoney(amount))
		return nil
	})
}

func runContractShow(cmd *cobra.Command, _ []string) error {
	return withSession(cmd.Context(), false, func(st *store.State) error {
		printContract(st)
		return nil
	})
}

func runContractSet(cmd *cobra.Command, _ []string) error {
	start, err := parseDateFlag("start", flagContractStart)
	if err != nil {
		return err
	}
	end, err := parseDateFlag("end", flagContractEnd)
	if err != nil {
		return err
	}
	if flagContractValue < 0 {
		return fmt.Errorf("--value must not be negative")
	}

	return withSession(cmd.Context(), true, func(st *store.State) error {
		c := st.Contract()
		if cmd.Flags().Changed("value") {
			c.Value = flagContractValue
		}
		if !start.IsZero() {
			c.StartDate = start
		}
		if !end.IsZero() {
			c.EndDate = end
		}
		if !c.EndDate.IsZero() && c.EndDate.Before(c.StartDate) {
			return fmt.Errorf("contract ends before it starts")
		}
		st.SetContract(c)
		printContract(st)
		return nil
	})
}

func printContract(st *store.State) {
	c := st.Contract()
	fmt.Println()
	fmt.Print(cli.RenderKeyValues("Contract", [][2]string{
		{"Value", cli.FormatMoney(c.Value)},
		{"Start", cli.FormatDate(c.StartDate)},
		{"End", cli.FormatDate(c.EndDate)},
	}))
}
