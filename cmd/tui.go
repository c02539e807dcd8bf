package cmd

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/seasfin/internal/config"
	"github.com/theirongolddev/seasfin/internal/log"
	"github.com/theirongolddev/seasfin/internal/store"
	"github.com/theirongolddev/seasfin/internal/tui"
	"github.com/theirongolddev/seasfin/internal/tui/theme"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive TUI dashboard",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// workspaceSource feeds the dashboard from the workspace database. The
// database is opened per call so it is not held while the dashboard idles.
// Ephemeral sessions keep their state in memory only.
type workspaceSource struct {
	mem *store.State
}

func (s *workspaceSource) Load(ctx context.Context) (*store.State, error) {
	if flagEphemeral {
		if s.mem == nil {
			sess, err := openSession(ctx)
			if err != nil {
				return nil, err
			}
			s.mem = sess.st
		}
		return s.mem, nil
	}
	sess, err := openSession(ctx)
	if err != nil {
		return nil, err
	}
	defer sess.close()
	return sess.st, nil
}

func (s *workspaceSource) Save(ctx context.Context, st *store.State) error {
	if flagEphemeral {
		s.mem = st
		return nil
	}
	sess, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer sess.close()
	sess.st = st
	return sess.save(ctx)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	theme.SetActive(cfg.Appearance.Theme)

	// Force TrueColor profile so all background styling produces ANSI codes
	lipgloss.SetColorProfile(termenv.TrueColor)

	// Log lines would tear the alt screen.
	stderrLogger := logger
	logger = log.New(log.Config{Output: io.Discard})
	defer func() { logger = stderrLogger }()

	app := tui.NewApp(tui.Options{
		Source:     &workspaceSource{},
		Config:     cfg,
		ConfigPath: cfgPath,
		NeedSetup:  !flagEphemeral && !config.ExistsAt(cfgPath),
		NewRand:    newRand,
	})
	p := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(cmd.Context()))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	stderrLogger.WithComponent(log.ComponentTUI).Debug("dashboard closed")
	return nil
}
