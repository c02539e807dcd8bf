package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/seasfin/internal/cli"
	"github.com/theirongolddev/seasfin/internal/model"
	"github.com/theirongolddev/seasfin/internal/store"
)

var costsCmd = &cobra.Command{
	Use:   "costs",
	Short: "Contract P&L with ODC and indirect cost breakdown",
	RunE:  runCosts,
}

func init() {
	rootCmd.AddCommand(costsCmd)
}

func runCosts(cmd *cobra.Command, _ []string) error {
	return withSession(cmd.Context(), false, func(st *store.State) error {
		r := buildReport(st)
		c := r.Costs

		fmt.Println()
		fmt.Println(cli.RenderTitle("CONTRACT COSTS"))
		fmt.Println()

		fmt.Print(cli.RenderKeyValues("Profit & Loss", [][2]string{
			{"Contract Value", cli.FormatMoney(c.ContractValue)},
			{"---", ""},
			{"Labor", cli.FormatMoney(c.TotalLabor)},
			{"ODC", cli.FormatMoney(c.TotalODC)},
			{"Indirect", cli.FormatMoney(c.TotalIndirect)},
			{"Total Costs", cli.FormatMoney(c.TotalCosts)},
			{"---", ""},
			{"Profit / Loss", cli.RenderMoneyDelta(c.ProfitLoss)},
			{"Margin", cli.FormatPercent(c.MarginPercent)},
			{"Contract Used", cli.RenderUtilizationBar(c.ContractUtilization, 20)},
		}))

		o := r.ODCByStatus
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   fmt.Sprintf("ODC by Status  (%d items)", o.Count),
			Headers: []string{"Status", "Amount"},
			Rows: [][]string{
				{model.ODCPlanned, cli.FormatMoney(o.Planned)},
				{model.ODCCommitted, cli.FormatMoney(o.Committed)},
				{model.ODCInvoiced, cli.FormatMoney(o.Invoiced)},
				{model.ODCPaid, cli.FormatMoney(o.Paid)},
				{"---"},
				{"Total", cli.FormatMoney(c.TotalODC)},
			},
		}))
		if o.Other != 0 {
			fmt.Print(cli.RenderNote(fmt.Sprintf("%s in items with another status", cli.FormatMoney(o.Other))))
		}

		periods := st.IndirectPeriods()
		if len(periods) > 0 {
			rows := make([][]string, 0, len(periods))
			for _, p := range periods {
				rows = append(rows, []string{
					p.Period,
					cli.FormatMoney(p.Fringe),
					cli.FormatMoney(p.Overhead),
					cli.FormatMoney(p.GA),
					cli.FormatMoney(p.Total),
				})
			}
			fmt.Println()
			fmt.Print(cli.RenderTable(cli.Table{
				Title:   "Indirect Costs",
				Headers: []string{"Period", "Fringe", "Overhead", "G&A", "Total"},
				Rows:    rows,
			}))
		}

		rates := st.Rates()
		fmt.Println()
		fmt.Print(cli.RenderNote(fmt.Sprintf("Indirect rates: fringe %s, overhead %s, G&A %s",
			cli.FormatPercent(rates.Fringe), cli.FormatPercent(rates.Overhead), cli.FormatPercent(rates.GA))))
		return nil
	})
}
