package cmd

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/seasfin/internal/config"
	"github.com/theirongolddev/seasfin/internal/log"
	"github.com/theirongolddev/seasfin/internal/store"
	"github.com/theirongolddev/seasfin/internal/tui"
)

var flagSetupConfigOnly bool

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Set up the project and default configuration",
	Long: "Walks through the project name, budget, dates and contract value. The answers are\n" +
		"written to the workspace and, if chosen, saved as config defaults for new workspaces.",
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().BoolVar(&flagSetupConfigOnly, "config-only", false, "Only update the config file, leave the workspace alone")
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, _ []string) error {
	vals := tui.SetupValuesFrom(cfg)
	if err := tui.NewSetupForm(&vals).Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("  Setup cancelled, nothing was changed.")
			return nil
		}
		return err
	}

	if vals.SaveConfig || flagSetupConfigOnly {
		if err := vals.ApplyConfig(&cfg); err != nil {
			return err
		}
		if err := config.SaveFile(cfgPath, cfg); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		logger.WithComponent(log.ComponentConfig).Info("config saved", log.FieldPath, cfgPath)
		fmt.Printf("  Saved config to %s\n", cfgPath)
	}

	if !flagSetupConfigOnly {
		err := withSession(cmd.Context(), true, func(st *store.State) error {
			return vals.ApplyState(st)
		})
		if err != nil {
			return err
		}
		if flagEphemeral {
			fmt.Println("  Ephemeral session: workspace not written.")
		} else {
			fmt.Printf("  Updated workspace %s\n", cfg.WorkspacePath())
		}
	}

	fmt.Println("  Run `seasfin setup` anytime to reconfigure.")
	return nil
}
