// Package cmd implements the seasfin CLI commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/theirongolddev/seasfin/internal/cli"
	"github.com/theirongolddev/seasfin/internal/config"
	"github.com/theirongolddev/seasfin/internal/log"
	"github.com/theirongolddev/seasfin/internal/pipeline"
	"github.com/theirongolddev/seasfin/internal/store"
)

var (
	flagConfig    string
	flagDataDir   string
	flagEphemeral bool
	flagQuiet     bool
	flagNoColor   bool
	flagSeed      uint64
	flagLogLevel  string
	flagLogFormat string
)

var (
	cfg     config.Config
	cfgPath string
	logger  *log.Logger
)

var rootCmd = &cobra.Command{
	Use:               "seasfin",
	Short:             "Project budget and contract cost tracker",
	Long:              "Track a project's budget, team, ODCs and indirect costs, and derive its financial position.",
	RunE:              runSummary,
	PersistentPreRunE: prepare,
	SilenceUsage:      true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default "+config.ConfigPath()+")")
	rootCmd.PersistentFlags().StringVarP(&flagDataDir, "data-dir", "d", "", "Directory holding the workspace database")
	rootCmd.PersistentFlags().BoolVar(&flagEphemeral, "ephemeral", false, "Start from defaults and do not read or write the workspace")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().Uint64Var(&flagSeed, "seed", 0, "Seed for the simulated spending trend (0 = random)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", log.FormatText, "Log format: text or json")
}

// prepare loads .env, logging and config before any command runs.
func prepare(cmd *cobra.Command, _ []string) error {
	envErr := godotenv.Load()

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return err
	}
	logger = log.New(log.Config{Level: level, Format: flagLogFormat, Output: os.Stderr})
	log.SetDefault(logger)
	if envErr != nil && !errors.Is(envErr, fs.ErrNotExist) {
		logger.Warn("ignoring .env", log.FieldError, envErr)
	}

	cfgPath = flagConfig
	if cfgPath == "" {
		cfgPath = config.ConfigPath()
	}
	if cfg, err = config.LoadFile(cfgPath); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", cfgPath, err)
	}
	if flagDataDir != "" {
		cfg.General.DataDir = flagDataDir
	}
	if cmd.Flags().Changed("seed") {
		cfg.General.Seed = flagSeed
	}
	logger.WithComponent(log.ComponentConfig).Debug("config loaded", log.FieldPath, cfgPath)

	cli.ConfigureOutput(flagNoColor)
	return nil
}

// session is the state a command works on, plus the workspace it came from.
type session struct {
	st *store.State
	ws *store.Workspace
}

// openSession loads the workspace, seeding a fresh one from the config.
func openSession(ctx context.Context) (*session, error) {
	if flagEphemeral {
		st := store.New()
		applyConfigDefaults(st)
		return &session{st: st}, nil
	}

	ws, err := store.OpenWorkspace(cfg.WorkspacePath())
	if err != nil {
		return nil, err
	}
	initialized, err := ws.Initialized(ctx)
	if err != nil {
		_ = ws.Close()
		return nil, err
	}
	st, err := ws.Load(ctx)
	if err != nil {
		_ = ws.Close()
		return nil, err
	}
	if !initialized {
		applyConfigDefaults(st)
	}
	logger.WithComponent(log.ComponentWorkspace).Debug("workspace loaded",
		log.FieldPath, ws.Path(), "fresh", !initialized)
	return &session{st: st, ws: ws}, nil
}

// save persists the state. It is a no-op for ephemeral sessions.
func (s *session) save(ctx context.Context) error {
	if s.ws == nil {
		return nil
	}
	start := time.Now()
	if err := s.ws.Save(ctx, s.st); err != nil {
		return fmt.Errorf("saving workspace: %w", err)
	}
	logger.WithComponent(log.ComponentWorkspace).Debug("workspace saved",
		log.FieldPath, s.ws.Path(), log.FieldDuration, time.Since(start).Milliseconds())
	return nil
}

func (s *session) close() {
	if s.ws != nil {
		_ = s.ws.Close()
	}
}

// withSession runs fn against the workspace, saving afterwards when write is true.
func withSession(ctx context.Context, write bool, fn func(st *store.State) error) error {
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	if err := fn(s.st); err != nil {
		return err
	}
	if write {
		return s.save(ctx)
	}
	return nil
}

func applyConfigDefaults(st *store.State) {
	st.SetProject(cfg.ProjectSettings(st.Now()))
	contract := cfg.ContractSettings()
	if contract.StartDate.IsZero() {
		contract.StartDate = st.Project().StartDate
	}
	if contract.EndDate.IsZero() {
		contract.EndDate = st.Project().EndDate
	}
	st.SetContract(contract)
	st.SetRates(cfg.IndirectRates())
	for _, c := range cfg.BudgetCategories() {
		st.SetBudgetCategory(c.Name, c.Allocated)
	}
}

// newRand returns the generator for the simulated trend.
func newRand() *rand.Rand {
	seed := cfg.General.Seed
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed))
}

func buildReport(st *store.State) pipeline.Report {
	return pipeline.BuildReport(st.Snapshot(), st.Now(), newRand())
}

func progress(format string, args ...any) {
	if !flagQuiet {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}
