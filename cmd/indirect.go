package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/seasfin/internal/cli"
	"github.com/theirongolddev/seasfin/internal/model"
	"github.com/theirongolddev/seasfin/internal/store"
)

var (
	flagIndFringe   float64
	flagIndOverhead float64
	flagIndGA       float64
)

var indirectCmd = &cobra.Command{
	Use:   "indirect",
	Short: "Indirect cost pools and rates",
}

var indirectSetCmd = &cobra.Command{
	Use:   "set <period>",
	Short: "Record the Fringe, Overhead and G&A pools for a period, replacing any existing entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runIndirectSet,
}

var indirectRatesCmd = &cobra.Command{
	Use:   "rates",
	Short: "Show or change the indirect rates (percent)",
	RunE:  runIndirectRates,
}

func init() {
	indirectSetCmd.Flags().Float64Var(&flagIndFringe, "fringe", 0, "Fringe pool amount")
	indirectSetCmd.Flags().Float64Var(&flagIndOverhead, "overhead", 0, "Overhead pool amount")
	indirectSetCmd.Flags().Float64Var(&flagIndGA, "ga", 0, "G&A pool amount")

	indirectRatesCmd.Flags().Float64Var(&flagIndFringe, "fringe", 0, "Fringe rate")
	indirectRatesCmd.Flags().Float64Var(&flagIndOverhead, "overhead", 0, "Overhead rate")
	indirectRatesCmd.Flags().Float64Var(&flagIndGA, "ga", 0, "G&A rate")

	indirectCmd.AddCommand(indirectSetCmd, indirectRatesCmd)
	rootCmd.AddCommand(indirectCmd)
}

func runIndirectSet(cmd *cobra.Command, args []string) error {
	p, err := model.NewIndirectCostPeriod(args[0], flagIndFringe, flagIndOverhead, flagIndGA)
	if err != nil {
		return err
	}
	if p.Total <= 0 {
		return fmt.Errorf("period %s: total must be positive", p.Period)
	}

	return withSession(cmd.Context(), true, func(st *store.State) error {
		_, replaced := st.IndirectPeriod(p.Period)
		p = st.UpsertIndirect(p)
		verb := "Recorded"
		if replaced {
			verb = "Replaced"
		}
		fmt.Printf("  %s %s: total %s\n", verb, p.Period, cli.FormatMoney(p.Total))
		return nil
	})
}

func runIndirectRates(cmd *cobra.Command, _ []string) error {
	changed := cmd.Flags().Changed("fringe") || cmd.Flags().Changed("overhead") || cmd.Flags().Changed("ga")

	return withSession(cmd.Context(), changed, func(st *store.State) error {
		r := st.Rates()
		if cmd.Flags().Changed("fringe") {
			r.Fringe = flagIndFringe
		}
		if cmd.Flags().Changed("overhead") {
			r.Overhead = flagIndOverhead
		}
		if cmd.Flags().Changed("ga") {
			r.GA = flagIndGA
		}
		if r.Fringe < 0 || r.Overhead < 0 || r.GA < 0 {
			return fmt.Errorf("indirect rates: %w", model.ErrNegativeAmount)
		}
		st.SetRates(r)

		fmt.Println()
		fmt.Print(cli.RenderKeyValues("Indirect Rates", [][2]string{
			{"Fringe", cli.FormatPercent(r.Fringe)},
			{"Overhead", cli.FormatPercent(r.Overhead)},
			{"G&A", cli.FormatPercent(r.GA)},
		}))
		return nil
	})
}
