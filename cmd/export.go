package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/seasfin/internal/importer"
	"github.com/theirongolddev/seasfin/internal/log"
	"github.com/theirongolddev/seasfin/internal/pipeline"
	"github.com/theirongolddev/seasfin/internal/store"
)

var (
	flagExportFormat    string
	flagExportOutput    string
	flagExportEmployees bool
	flagExportFinancial bool
	flagExportSettings  bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the roster as CSV or the workspace as a JSON snapshot",
	Long: `Export workspace data.

  --format csv    the plain roster, in the employee import layout
  --format json   a snapshot that 'seasfin import snapshot' can restore

With --format json, the section flags choose what goes into the document.
When none is given, every section is exported.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&flagExportFormat, "format", "f", "json", "csv or json")
	exportCmd.Flags().StringVarP(&flagExportOutput, "output", "o", "", "Output file (default seasfin_export_<date>.<format>, - for stdout)")
	exportCmd.Flags().BoolVar(&flagExportEmployees, "employees", false, "Include roster and LCAT team (json)")
	exportCmd.Flags().BoolVar(&flagExportFinancial, "financial", false, "Include expenses, revenue, budget, ODC and indirect costs (json)")
	exportCmd.Flags().BoolVar(&flagExportSettings, "settings", false, "Include project settings (json)")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	if flagExportFormat != "csv" && flagExportFormat != "json" {
		return fmt.Errorf("export format %q: %w", flagExportFormat, importer.ErrUnsupportedFormat)
	}

	return withSession(cmd.Context(), false, func(st *store.State) error {
		now := st.Now()
		out := flagExportOutput
		if out == "" {
			out = fmt.Sprintf("seasfin_export_%s.%s", now.Format("20060102_150405"), flagExportFormat)
		}

		start := time.Now()
		err := writeOutput(out, func(w io.Writer) error {
			if flagExportFormat == "csv" {
				return importer.ExportEmployeesCSV(w, st.Employees())
			}
			opts := importer.ExportOptions{
				Employees: flagExportEmployees,
				Financial: flagExportFinancial,
				Settings:  flagExportSettings,
			}
			if opts == (importer.ExportOptions{}) {
				opts = importer.AllSections
			}
			summary := pipeline.FinancialSummary(st.Project().TotalBudget, st.Expenses(), st.Revenue())
			return importer.ExportJSON(w, st.Snapshot(), summary, opts, now)
		})
		if err != nil {
			return err
		}
		logger.WithComponent(log.ComponentExport).Info("export written",
			log.FieldPath, out, log.FieldKind, flagExportFormat,
			log.FieldDuration, time.Since(start).Milliseconds())
		return nil
	})
}
