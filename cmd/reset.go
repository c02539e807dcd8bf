package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/theirongolddev/seasfin/internal/log"
	"github.com/theirongolddev/seasfin/internal/store"
)

var flagResetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Clear every record and restore default settings",
	RunE:  runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&flagResetYes, "yes", "y", false, "Do not ask for confirmation")
	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, _ []string) error {
	if !flagResetYes {
		fmt.Printf("  This deletes all records in %s. Continue? [y/N] ", cfg.WorkspacePath())
		answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			fmt.Println("  Aborted.")
			return nil
		}
	}

	var cleared int
	err := withSession(cmd.Context(), true, func(st *store.State) error {
		for _, c := range store.Collections() {
			cleared += st.Count(c)
		}
		st.Reset()
		applyConfigDefaults(st)
		return nil
	})
	if err != nil {
		return err
	}

	logger.WithComponent(log.ComponentWorkspace).Info("workspace reset", log.FieldCount, cleared)
	fmt.Printf("  Cleared %d records and restored default settings.\n", cleared)
	return nil
}
