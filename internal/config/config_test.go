package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/theirongolddev/seasfin/internal/model"
)

func TestLoadFileMissingReturnsDefaults(t *testing.T) {
	t.Setenv("SEASFIN_DATA_DIR", "")
	t.Setenv("SEASFIN_THEME", "")
	t.Setenv("SEASFIN_SEED", "")

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Project.TotalBudget != 153000 {
		t.Errorf("TotalBudget = %v, want 153000", cfg.Project.TotalBudget)
	}
	if cfg.Rates.Overhead != 45 {
		t.Errorf("Overhead = %v, want 45", cfg.Rates.Overhead)
	}
	if got := len(cfg.BudgetCategories()); got != 5 {
		t.Errorf("len(BudgetCategories) = %d, want 5", got)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("SEASFIN_SEED", "")
	path := filepath.Join(t.TempDir(), "sub", "config.toml")

	cfg := DefaultConfig()
	cfg.Project.Name = "Apollo"
	cfg.Project.StartDate = "2025-01-01"
	cfg.Contract.Value = 500000
	cfg.Budget.Categories["Cloud"] = 1234
	cfg.General.Seed = 42
	if err := SaveFile(path, cfg); err != nil {
		t.Fatalf("SaveFile: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("perm = %o, want 600", perm)
	}

	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if got.Project.Name != "Apollo" || got.Contract.Value != 500000 || got.General.Seed != 42 {
		t.Errorf("round trip mismatch: %+v", got)
	}
	cats := got.BudgetCategories()
	if last := cats[len(cats)-1]; last.Name != "Cloud" || last.Allocated != 1234 {
		t.Errorf("last category = %+v, want Cloud 1234", last)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("SEASFIN_DATA_DIR", "/tmp/seasfin-data")
	t.Setenv("SEASFIN_THEME", "catppuccin-mocha")
	t.Setenv("SEASFIN_SEED", "7")

	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.DataDir() != "/tmp/seasfin-data" {
		t.Errorf("DataDir = %q", cfg.DataDir())
	}
	if cfg.WorkspacePath() != filepath.Join("/tmp/seasfin-data", "workspace.db") {
		t.Errorf("WorkspacePath = %q", cfg.WorkspacePath())
	}
	if cfg.Appearance.Theme != "catppuccin-mocha" {
		t.Errorf("Theme = %q", cfg.Appearance.Theme)
	}
	if cfg.General.Seed != 7 {
		t.Errorf("Seed = %d, want 7", cfg.General.Seed)
	}
}

func TestBadSeedEnv(t *testing.T) {
	t.Setenv("SEASFIN_SEED", "abc")
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected error for non-numeric seed")
	}
}

func TestParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[project\nname ="), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestValidateCollectsErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Project.TotalBudget = -1
	cfg.Contract.Value = -5
	cfg.Project.EndDate = "next year"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate = nil, want errors")
	}
	if !errors.Is(err, model.ErrNegativeAmount) {
		t.Errorf("error %v does not wrap ErrNegativeAmount", err)
	}
	var joined interface{ Unwrap() []error }
	if !errors.As(err, &joined) || len(joined.Unwrap()) != 3 {
		t.Errorf("want 3 joined errors, got %v", err)
	}

	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestProjectSettings(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	cfg := DefaultConfig()
	cfg.Project.EndDate = "2025-12-31"

	p := cfg.ProjectSettings(now)
	if !p.StartDate.Equal(now) {
		t.Errorf("StartDate = %v, want %v", p.StartDate, now)
	}
	if want := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC); !p.EndDate.Equal(want) {
		t.Errorf("EndDate = %v, want %v", p.EndDate, want)
	}
	if p.Name != "SEAS Project" {
		t.Errorf("Name = %q", p.Name)
	}
}
