package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/theirongolddev/seasfin/internal/config"
	"github.com/theirongolddev/seasfin/internal/model"
	"github.com/theirongolddev/seasfin/internal/store"
	"github.com/theirongolddev/seasfin/internal/tui/theme"
)

// SetupValues holds the answers of the setup form as typed.
type SetupValues struct {
	ProjectName   string
	TotalBudget   string
	StartDate     string
	EndDate       string
	ContractValue string
	Theme         string
	SaveConfig    bool
}

// SetupValuesFrom pre-fills the form from a config.
func SetupValuesFrom(cfg config.Config) SetupValues {
	return SetupValues{
		ProjectName:   cfg.Project.Name,
		TotalBudget:   formatAmount(cfg.Project.TotalBudget),
		StartDate:     cfg.Project.StartDate,
		EndDate:       cfg.Project.EndDate,
		ContractValue: formatAmount(cfg.Contract.Value),
		Theme:         cfg.Appearance.Theme,
		SaveConfig:    true,
	}
}

func formatAmount(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// NewSetupForm builds the setup wizard. Answers are written into vals.
func NewSetupForm(vals *SetupValues) *huh.Form {
	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to seasfin").
				Description("Set up the project this workspace tracks.\nEverything can be changed later with `seasfin setup`."),
			huh.NewInput().
				Title("Project name").
				Value(&vals.ProjectName).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("name is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Total budget").
				Placeholder("153000").
				Value(&vals.TotalBudget).
				Validate(validateAmount),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Start date").
				Description("YYYY-MM-DD, blank for today").
				Value(&vals.StartDate).
				Validate(validateDate),
			huh.NewInput().
				Title("End date").
				Description("YYYY-MM-DD, blank for one year after the start").
				Value(&vals.EndDate).
				Validate(validateDate),
			huh.NewInput().
				Title("Contract value").
				Placeholder("0").
				Value(&vals.ContractValue).
				Validate(validateAmount),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.Theme),
			huh.NewConfirm().
				Title("Save as defaults for new workspaces?").
				Value(&vals.SaveConfig),
		),
	).WithTheme(huh.ThemeCharm())
}

func validateAmount(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	v, err := parseAmount(s)
	if err != nil {
		return fmt.Errorf("enter a number")
	}
	if v < 0 {
		return model.ErrNegativeAmount
	}
	return nil
}

func validateDate(s string) error {
	if _, err := parseDate(s); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	return nil
}

func parseAmount(s string) (float64, error) {
	s = strings.NewReplacer("$", "", ",", "", " ", "").Replace(s)
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return v, nil
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", s)
}

// ApplyConfig copies the answers into cfg.
func (v SetupValues) ApplyConfig(cfg *config.Config) error {
	budget, err := parseAmount(v.TotalBudget)
	if err != nil {
		return fmt.Errorf("total budget: %w", err)
	}
	contract, err := parseAmount(v.ContractValue)
	if err != nil {
		return fmt.Errorf("contract value: %w", err)
	}
	cfg.Project.Name = strings.TrimSpace(v.ProjectName)
	if budget > 0 {
		cfg.Project.TotalBudget = budget
	}
	cfg.Project.StartDate = strings.TrimSpace(v.StartDate)
	cfg.Project.EndDate = strings.TrimSpace(v.EndDate)
	cfg.Contract.Value = contract
	if v.Theme != "" {
		cfg.Appearance.Theme = v.Theme
	}
	return cfg.Validate()
}

// ApplyState copies the answers into the workspace's project and contract
// settings. Blank fields leave the current values alone.
func (v SetupValues) ApplyState(st *store.State) error {
	budget, err := parseAmount(v.TotalBudget)
	if err != nil {
		return fmt.Errorf("total budget: %w", err)
	}
	contract, err := parseAmount(v.ContractValue)
	if err != nil {
		return fmt.Errorf("contract value: %w", err)
	}
	start, err := parseDate(v.StartDate)
	if err != nil {
		return fmt.Errorf("start date: %w", err)
	}
	end, err := parseDate(v.EndDate)
	if err != nil {
		return fmt.Errorf("end date: %w", err)
	}

	p := st.Project()
	if name := strings.TrimSpace(v.ProjectName); name != "" {
		p.Name = name
	}
	if budget > 0 {
		p.TotalBudget = budget
	}
	if !start.IsZero() {
		p.StartDate = start
		if end.IsZero() {
			p.EndDate = start.AddDate(0, 0, 365)
		}
	}
	if !end.IsZero() {
		p.EndDate = end
	}
	if p.EndDate.Before(p.StartDate) {
		return fmt.Errorf("project ends before it starts")
	}
	st.SetProject(p)

	c := st.Contract()
	if contract > 0 {
		c.Value = contract
	}
	if c.StartDate.IsZero() {
		c.StartDate = p.StartDate
	}
	if c.EndDate.IsZero() {
		c.EndDate = p.EndDate
	}
	st.SetContract(c)
	return nil
}
