package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/theirongolddev/seasfin/internal/model"
)

// Config holds all seasfin configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Project    ProjectConfig    `toml:"project"`
	Contract   ContractConfig   `toml:"contract"`
	Rates      RatesConfig      `toml:"rates"`
	Budget     BudgetConfig     `toml:"budget"`
	Projection ProjectionConfig `toml:"projection"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DataDir string `toml:"data_dir,omitempty"`
	// Seed makes the simulated spending trend repeatable. Zero means random.
	Seed uint64 `toml:"seed,omitempty"`
}

// ProjectConfig seeds the project settings of a fresh workspace.
// Dates are "YYYY-MM-DD"; blank dates default to a one-year project starting today.
type ProjectConfig struct {
	Name        string  `toml:"name"`
	TotalBudget float64 `toml:"total_budget"`
	StartDate   string  `toml:"start_date,omitempty"`
	EndDate     string  `toml:"end_date,omitempty"`
	Department  string  `toml:"department"`
	Manager     string  `toml:"manager"`
}

// ContractConfig seeds the contract settings of a fresh workspace.
type ContractConfig struct {
	Value     float64 `toml:"value"`
	StartDate string  `toml:"start_date,omitempty"`
	EndDate   string  `toml:"end_date,omitempty"`
}

// RatesConfig holds the indirect rates in percent.
type RatesConfig struct {
	Fringe   float64 `toml:"fringe"`
	Overhead float64 `toml:"overhead"`
	GA       float64 `toml:"ga"`
}

// BudgetConfig holds category allocations, keyed by category name.
type BudgetConfig struct {
	Categories map[string]float64 `toml:"categories,omitempty"`
}

// ProjectionConfig holds the default team cost projection parameters.
type ProjectionConfig struct {
	Months          int     `toml:"months"`
	SalaryIncrease  float64 `toml:"salary_increase"`
	HoursAdjustment float64 `toml:"hours_adjustment"`
	NewHires        float64 `toml:"new_hires"`
	Inflation       float64 `toml:"inflation"`
	Attrition       float64 `toml:"attrition"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

const dateLayout = "2006-01-02"

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	rates := model.DefaultIndirectRates()
	cats := make(map[string]float64)
	for _, c := range model.DefaultBudgetCategories() {
		cats[c.Name] = c.Allocated
	}
	p := model.DefaultProjectSettings(time.Time{})
	return Config{
		Project: ProjectConfig{
			Name:        p.Name,
			TotalBudget: p.TotalBudget,
			Department:  p.Department,
			Manager:     p.Manager,
		},
		Rates:  RatesConfig{Fringe: rates.Fringe, Overhead: rates.Overhead, GA: rates.GA},
		Budget: BudgetConfig{Categories: cats},
		Projection: ProjectionConfig{
			Months:         12,
			SalaryIncrease: 3,
			Inflation:      2.5,
			Attrition:      10,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "seasfin")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "seasfin")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir returns the directory holding the workspace database.
func (c Config) DataDir() string {
	if c.General.DataDir != "" {
		return c.General.DataDir
	}
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "seasfin")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "seasfin")
}

// WorkspacePath returns the workspace database path.
func (c Config) WorkspacePath() string {
	return filepath.Join(c.DataDir(), "workspace.db")
}

// Load reads the config file at ConfigPath.
func Load() (Config, error) {
	return LoadFile(ConfigPath())
}

// LoadFile reads a config file, returning defaults if it doesn't exist.
// Environment overrides are applied last.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // path is the user's config file
	if err != nil {
		if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("reading config: %w", err)
		}
	} else if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("SEASFIN_DATA_DIR"); v != "" {
		cfg.General.DataDir = v
	}
	if v := os.Getenv("SEASFIN_THEME"); v != "" {
		cfg.Appearance.Theme = v
	}
	if v := os.Getenv("SEASFIN_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("SEASFIN_SEED: %w", err)
		}
		cfg.General.Seed = seed
	}
	return nil
}

// Save writes the config to ConfigPath.
func Save(cfg Config) error {
	return SaveFile(ConfigPath(), cfg)
}

// SaveFile writes the config to path.
func SaveFile(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600) //nolint:gosec // path is the user's config file
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	return ExistsAt(ConfigPath())
}

// ExistsAt returns true if a config file exists at path.
func ExistsAt(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Validate reports every problem in the config at once.
func (c Config) Validate() error {
	var errs []error
	if c.Project.TotalBudget < 0 {
		errs = append(errs, fmt.Errorf("project.total_budget: %w", model.ErrNegativeAmount))
	}
	if c.Contract.Value < 0 {
		errs = append(errs, fmt.Errorf("contract.value: %w", model.ErrNegativeAmount))
	}
	for name, amount := range c.Budget.Categories {
		if amount < 0 {
			errs = append(errs, fmt.Errorf("budget.categories.%s: %w", name, model.ErrNegativeAmount))
		}
	}
	for key, v := range map[string]string{
		"project.start_date":  c.Project.StartDate,
		"project.end_date":    c.Project.EndDate,
		"contract.start_date": c.Contract.StartDate,
		"contract.end_date":   c.Contract.EndDate,
	} {
		if _, err := parseDate(v); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", key, err))
		}
	}
	if c.Projection.Months < 0 {
		errs = append(errs, errors.New("projection.months must not be negative"))
	}
	return errors.Join(errs...)
}

func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, s)
}

// ProjectSettings builds the project settings for a fresh workspace.
func (c Config) ProjectSettings(now time.Time) model.ProjectSettings {
	p := model.DefaultProjectSettings(now)
	if c.Project.Name != "" {
		p.Name = c.Project.Name
	}
	if c.Project.TotalBudget > 0 {
		p.TotalBudget = c.Project.TotalBudget
	}
	if c.Project.Department != "" {
		p.Department = c.Project.Department
	}
	if c.Project.Manager != "" {
		p.Manager = c.Project.Manager
	}
	if d, err := parseDate(c.Project.StartDate); err == nil && !d.IsZero() {
		p.StartDate = d
	}
	if d, err := parseDate(c.Project.EndDate); err == nil && !d.IsZero() {
		p.EndDate = d
	}
	return p
}

// ContractSettings builds the contract settings for a fresh workspace.
func (c Config) ContractSettings() model.ContractSettings {
	cs := model.ContractSettings{Value: c.Contract.Value}
	cs.StartDate, _ = parseDate(c.Contract.StartDate)
	cs.EndDate, _ = parseDate(c.Contract.EndDate)
	return cs
}

// IndirectRates returns the configured rates.
func (c Config) IndirectRates() model.IndirectRates {
	return model.IndirectRates{Fringe: c.Rates.Fringe, Overhead: c.Rates.Overhead, GA: c.Rates.GA}
}

// ProjectionParams returns the default projection parameters.
func (c Config) ProjectionParams() model.ProjectionParams {
	return model.ProjectionParams{
		Months:          c.Projection.Months,
		SalaryIncrease:  c.Projection.SalaryIncrease,
		HoursAdjustment: c.Projection.HoursAdjustment,
		NewHires:        c.Projection.NewHires,
		Inflation:       c.Projection.Inflation,
		Attrition:       c.Projection.Attrition,
	}
}

// BudgetCategories returns the configured allocations. The default categories
// keep their display order; extra names follow alphabetically.
func (c Config) BudgetCategories() []model.BudgetCategory {
	var out []model.BudgetCategory
	seen := make(map[string]bool)
	for _, d := range model.DefaultBudgetCategories() {
		if amount, ok := c.Budget.Categories[d.Name]; ok {
			out = append(out, model.BudgetCategory{Name: d.Name, Allocated: amount})
			seen[d.Name] = true
		}
	}
	var extra []string
	for name := range c.Budget.Categories {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		out = append(out, model.BudgetCategory{Name: name, Allocated: c.Budget.Categories[name]})
	}
	return out
}
