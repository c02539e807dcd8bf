package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/seasfin/internal/cli"
	"github.com/theirongolddev/seasfin/internal/importer"
	"github.com/theirongolddev/seasfin/internal/log"
	"github.com/theirongolddev/seasfin/internal/store"
)

var (
	flagImportDryRun  bool
	flagImportWorkers int
)

var importCmd = &cobra.Command{
	Use:   "import <kind> <file>...",
	Short: "Import records from csv, xlsx or xls files, or restore a JSON export",
	Long: `Import records of one kind from one or more files.

Kinds:
  employees   roster entries (validated, invalid rows are skipped)
  enhanced    LCAT-priced team members
  odc         Other Direct Cost line items
  indirect    indirect cost pools, one column per period
  snapshot    a JSON document written by 'seasfin export --format json'

Files are parsed in parallel and applied in the order given. If any file
cannot be read, nothing is imported.`,
	Args:      cobra.MinimumNArgs(2),
	ValidArgs: kindNames(),
	RunE:      runImport,
}

func init() {
	importCmd.Flags().BoolVar(&flagImportDryRun, "dry-run", false, "Parse and validate without saving")
	importCmd.Flags().IntVar(&flagImportWorkers, "workers", 0, "Files parsed in parallel (default GOMAXPROCS)")
	rootCmd.AddCommand(importCmd)
}

func kindNames() []string {
	kinds := importer.Kinds()
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = string(k)
	}
	return out
}

func runImport(cmd *cobra.Command, args []string) error {
	kind, err := importer.ParseKind(args[0])
	if err != nil {
		return fmt.Errorf("%w (want one of %s)", err, strings.Join(kindNames(), ", "))
	}
	paths := args[1:]
	ilog := logger.WithComponent(log.ComponentImport)

	return withSession(cmd.Context(), !flagImportDryRun, func(st *store.State) error {
		start := time.Now()
		var err error
		opts := importer.Options{
			Workers: flagImportWorkers,
			Now:     st.Now(),
			Progress: func(current, total int) {
				progress("\r  Parsing files... %d/%d", current, total)
			},
		}

		var results []importer.ImportResult
		if flagImportDryRun {
			var batches []*importer.Batch
			batches, err = importer.ParseFiles(cmd.Context(), kind, paths, opts)
			for _, b := range batches {
				results = append(results, importer.ImportResult{Imported: b.Len(), Skipped: b.Skipped, Report: b.Report})
			}
		} else {
			results, err = importer.ImportFiles(cmd.Context(), st, kind, paths, opts)
		}
		progress("\r\033[K")
		if err != nil {
			ilog.Error("import failed", log.FieldKind, kind, log.FieldError, err)
			return err
		}

		var imported, skipped int
		for i, res := range results {
			imported += res.Imported
			skipped += res.Skipped
			printImportResult(paths[i], res)
			ilog.Info("file imported",
				log.FieldPath, paths[i], log.FieldKind, kind,
				log.FieldCount, res.Imported, log.FieldSkipped, res.Skipped)
		}

		verb := "Imported"
		if flagImportDryRun {
			verb = "Would import"
		}
		fmt.Printf("\n  %s %s %s record(s) from %d file(s) in %s\n",
			verb, cli.FormatNumber(int64(imported)), kind, len(paths), time.Since(start).Round(time.Millisecond))
		if skipped > 0 {
			fmt.Printf("  Skipped %s row(s)\n", cli.FormatNumber(int64(skipped)))
		}
		return nil
	})
}

func printImportResult(path string, res importer.ImportResult) {
	fmt.Printf("\n  %s: %d imported", path, res.Imported)
	if res.Skipped > 0 {
		fmt.Printf(", %d skipped", res.Skipped)
	}
	fmt.Println()

	r := res.Report
	if r == nil || r.OK() {
		return
	}
	if len(r.MissingColumns) > 0 {
		fmt.Print(cli.RenderNote("Missing required columns: " + strings.Join(r.MissingColumns, ", ")))
		return
	}
	shown := r.Display()
	lines := make([]string, len(shown))
	for i, issue := range shown {
		lines[i] = issue.String()
	}
	fmt.Print(cli.RenderBullets(lines))
	if more := len(r.Issues) - len(shown); more > 0 {
		fmt.Print(cli.RenderNote(fmt.Sprintf("... and %d more issue(s)", more)))
	}
}
