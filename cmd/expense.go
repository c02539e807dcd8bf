package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/seasfin/internal/cli"
	"github.com/theirongolddev/seasfin/internal/model"
	"github.com/theirongolddev/seasfin/internal/pipeline"
	"github.com/theirongolddev/seasfin/internal/store"
)

var (
	flagExpenseCategory    string
	flagExpenseDescription string
	flagExpenseLimit       int
)

var expenseCmd = &cobra.Command{
	Use:     "expense",
	Aliases: []string{"expenses"},
	Short:   "Record and list expenses",
}

var expenseAddCmd = &cobra.Command{
	Use:   "add <amount>",
	Short: "Record an expense against a budget category",
	Args:  cobra.ExactArgs(1),
	RunE:  runExpenseAdd,
}

var expenseListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded expenses, newest first",
	RunE:  runExpenseList,
}

var expenseCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Spend per category, largest first",
	RunE:  runExpenseCategories,
}

func init() {
	expenseAddCmd.Flags().StringVarP(&flagExpenseCategory, "category", "c", "", "Budget category (required)")
	expenseAddCmd.Flags().StringVarP(&flagExpenseDescription, "description", "m", "", "What the money was spent on")
	expenseListCmd.Flags().StringVarP(&flagExpenseCategory, "category", "c", "", "Only this category")
	expenseListCmd.Flags().IntVarP(&flagExpenseLimit, "limit", "n", 20, "Show at most this many (0 = all)")

	expenseCmd.AddCommand(expenseAddCmd, expenseListCmd, expenseCategoriesCmd)
	rootCmd.AddCommand(expenseCmd)
}

func runExpenseAdd(cmd *cobra.Command, args []string) error {
	amount, err := parseMoneyArg(args[0])
	if err != nil {
		return err
	}
	e, err := model.NewExpense(flagExpenseCategory, amount, flagExpenseDescription)
	if err != nil {
		return err
	}

	return withSession(cmd.Context(), true, func(st *store.State) error {
		known := false
		for _, c := range st.Budget() {
			if strings.EqualFold(c.Name, e.Category) {
				known = true
				break
			}
		}
		e = st.AddExpense(e)
		fmt.Printf("  Recorded %s under %s (#%d)\n", cli.FormatMoneyCents(e.Amount), e.Category, e.ID)
		if !known {
			fmt.Print(cli.RenderNote(fmt.Sprintf("%q has no budget allocation; it will show as unbudgeted spend.", e.Category)))
		}
		return nil
	})
}

func runExpenseList(cmd *cobra.Command, _ []string) error {
	return withSession(cmd.Context(), false, func(st *store.State) error {
		all := st.Expenses()
		var rows [][]string
		var total float64
		for i := len(all) - 1; i >= 0; i-- {
			e := all[i]
			if flagExpenseCategory != "" && !strings.EqualFold(e.Category, flagExpenseCategory) {
				continue
			}
			total += e.Amount
			if flagExpenseLimit > 0 && len(rows) >= flagExpenseLimit {
				continue
			}
			rows = append(rows, []string{
				fmt.Sprintf("%d", e.ID),
				cli.FormatDate(e.CreatedAt),
				e.Category,
				cli.FormatMoneyCents(e.Amount),
				e.Description,
			})
		}
		if len(rows) == 0 {
			fmt.Println("\n  No expenses recorded.")
			return nil
		}

		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Expenses  (total " + cli.FormatMoneyCents(total) + ")",
			Headers: []string{"#", "Date", "Category", "Amount", "Description"},
			Rows:    rows,
		}))
		return nil
	})
}

func runExpenseCategories(cmd *cobra.Command, _ []string) error {
	return withSession(cmd.Context(), false, func(st *store.State) error {
		cats := pipeline.ExpenseByCategory(st.Expenses())
		if len(cats) == 0 {
			fmt.Println("\n  No expenses recorded.")
			return nil
		}
		labels := make([]string, len(cats))
		amounts := make([]float64, len(cats))
		for i, c := range cats {
			labels[i], amounts[i] = c.Category, c.Amount
		}
		fmt.Println()
		fmt.Print(cli.RenderSection("Spend by Category"))
		fmt.Print(cli.RenderBars(labels, amounts, 30))
		return nil
	})
}

// parseMoneyArg accepts amounts like 1200, 1,200.50 or $1200.
func parseMoneyArg(s string) (float64, error) {
	clean := strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)
	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	if v < 0 {
		return 0, fmt.Errorf("amount %s: %w", s, model.ErrNegativeAmount)
	}
	return v, nil
}
