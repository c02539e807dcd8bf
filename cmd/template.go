package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/seasfin/internal/importer"
)

var (
	flagTemplateFormat string
	flagTemplateOutput string
)

var templateCmd = &cobra.Command{
	Use:   "template <kind>",
	Short: "Write an example import file (employees, enhanced, odc, indirect)",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplate,
}

func init() {
	templateCmd.Flags().StringVarP(&flagTemplateFormat, "format", "f", importer.FormatXLSX, "xlsx or csv")
	templateCmd.Flags().StringVarP(&flagTemplateOutput, "output", "o", "", "Output file (default <kind>_template.<format>, - for stdout)")
	rootCmd.AddCommand(templateCmd)
}

func runTemplate(_ *cobra.Command, args []string) error {
	kind, err := importer.ParseKind(args[0])
	if err != nil {
		return err
	}
	out := flagTemplateOutput
	if out == "" {
		out = fmt.Sprintf("%s_template.%s", kind, flagTemplateFormat)
	}

	return writeOutput(out, func(w io.Writer) error {
		return importer.WriteTemplate(w, kind, flagTemplateFormat, time.Now())
	})
}

// writeOutput runs fn against stdout when path is "-", otherwise against a
// new file at path.
func writeOutput(path string, fn func(w io.Writer) error) error {
	if path == "-" {
		bw := bufio.NewWriter(os.Stdout)
		if err := fn(bw); err != nil {
			return err
		}
		return bw.Flush()
	}

	f, err := os.Create(path) //nolint:gosec // path comes from the command line
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	if err := fn(bw); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	progress("  Wrote %s\n", path)
	return nil
}
