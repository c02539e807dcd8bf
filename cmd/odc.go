package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/seasfin/internal/cli"
	"github.com/theirongolddev/seasfin/internal/model"
	"github.com/theirongolddev/seasfin/internal/pipeline"
	"github.com/theirongolddev/seasfin/internal/store"
)

var (
	flagODCCategory    string
	flagODCDescription string
	flagODCVendor      string
	flagODCDate        string
	flagODCStatus      string
	flagODCNotes       string
	flagODCSearch      string
)

var odcCmd = &cobra.Command{
	Use:   "odc",
	Short: "Other Direct Cost line items",
}

var odcAddCmd = &cobra.Command{
	Use:   "add <amount>",
	Short: "Record an ODC line item",
	Args:  cobra.ExactArgs(1),
	RunE:  runODCAdd,
}

var odcListCmd = &cobra.Command{
	Use:   "list",
	Short: "List ODC line items",
	RunE:  runODCList,
}

func init() {
	f := odcAddCmd.Flags()
	f.StringVarP(&flagODCCategory, "category", "c", model.ODCOther, "One of: "+strings.Join(model.ODCCategories, ", "))
	f.StringVarP(&flagODCDescription, "description", "m", "", "Description (required)")
	f.StringVar(&flagODCVendor, "vendor", "", "Vendor")
	f.StringVar(&flagODCDate, "date", "", "Date YYYY-MM-DD (default today)")
	f.StringVar(&flagODCStatus, "status", model.ODCPlanned, "One of: "+strings.Join(model.ODCStatuses, ", "))
	f.StringVar(&flagODCNotes, "notes", "", "Notes")

	lf := odcListCmd.Flags()
	lf.StringVarP(&flagODCCategory, "category", "c", "", "Only this category")
	lf.StringVar(&flagODCStatus, "status", "", "Only this status")
	lf.StringVar(&flagODCSearch, "search", "", "Match description, vendor or notes")

	odcCmd.AddCommand(odcAddCmd, odcListCmd)
	rootCmd.AddCommand(odcCmd)
}

func runODCAdd(cmd *cobra.Command, args []string) error {
	amount, err := parseMoneyArg(args[0])
	if err != nil {
		return err
	}
	date, err := parseDateFlag("date", flagODCDate)
	if err != nil {
		return err
	}
	item, err := model.NewODCItem(model.ODCItem{
		Category:    flagODCCategory,
		Description: flagODCDescription,
		Vendor:      flagODCVendor,
		Amount:      amount,
		Date:        date,
		Status:      flagODCStatus,
		Notes:       flagODCNotes,
	})
	if err != nil {
		return err
	}

	return withSession(cmd.Context(), true, func(st *store.State) error {
		item = st.AddODC(item)
		fmt.Printf("  Added ODC #%d: %s %s (%s, %s)\n",
			item.ID, item.Description, cli.FormatMoneyCents(item.Amount), item.Category, item.Status)
		return nil
	})
}

func runODCList(cmd *cobra.Command, _ []string) error {
	return withSession(cmd.Context(), false, func(st *store.State) error {
		items := pipeline.FilterODC(st.ODCItems(), pipeline.ODCFilter{
			Category: flagODCCategory,
			Status:   flagODCStatus,
			Search:   flagODCSearch,
		})
		if len(items) == 0 {
			fmt.Println("\n  No ODC items match.")
			return nil
		}

		var total float64
		rows := make([][]string, 0, len(items))
		for _, o := range items {
			total += o.Amount
			rows = append(rows, []string{
				fmt.Sprintf("%d", o.ID),
				cli.FormatDate(o.Date),
				o.Category,
				o.Description,
				o.Vendor,
				o.Status,
				cli.FormatMoneyCents(o.Amount),
			})
		}
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   fmt.Sprintf("ODC Items  (%d, total %s)", len(items), cli.FormatMoneyCents(total)),
			Headers: []string{"#", "Date", "Category", "Description", "Vendor", "Status", "Amount"},
			Rows:    rows,
		}))
		return nil
	})
}
