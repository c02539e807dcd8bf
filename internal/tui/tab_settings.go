package tui

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/seasfin/internal/cli"
	"github.com/theirongolddev/seasfin/internal/config"
	"github.com/theirongolddev/seasfin/internal/model"
	"github.com/theirongolddev/seasfin/internal/store"
	"github.com/theirongolddev/seasfin/internal/tui/components"
	"github.com/theirongolddev/seasfin/internal/tui/theme"
)

const (
	settingsFieldProjectName = iota
	settingsFieldTotalBudget
	settingsFieldContractValue
	settingsFieldFringe
	settingsFieldOverhead
	settingsFieldGA
	settingsFieldTheme
	settingsFieldCount // sentinel
)

// settingsState tracks the settings tab state.
type settingsState struct {
	cursor  int
	editing bool
	input   textinput.Model
}

func newSettingsInput() textinput.Model {
	ti := textinput.New()
	ti.CharLimit = 128
	ti.Width = 40
	return ti
}

func (a App) settingsStartEdit() (tea.Model, tea.Cmd) {
	if a.st == nil {
		return a, nil
	}
	// The theme cycles in place instead of opening an input.
	if a.settings.cursor == settingsFieldTheme {
		cmd := a.settingsSave(theme.Next(theme.Active.Name).Name)
		return a, cmd
	}
	a.settings.editing = true
	ti := newSettingsInput()

	p := a.st.Project()
	rates := a.st.Rates()
	switch a.settings.cursor {
	case settingsFieldProjectName:
		ti.Placeholder = "Project name"
		ti.SetValue(p.Name)
	case settingsFieldTotalBudget:
		ti.Placeholder = "153000"
		ti.SetValue(formatAmount(p.TotalBudget))
	case settingsFieldContractValue:
		ti.Placeholder = "0"
		ti.SetValue(formatAmount(a.st.Contract().Value))
	case settingsFieldFringe:
		ti.Placeholder = "percent"
		ti.SetValue(strconv.FormatFloat(rates.Fringe, 'f', -1, 64))
	case settingsFieldOverhead:
		ti.Placeholder = "percent"
		ti.SetValue(strconv.FormatFloat(rates.Overhead, 'f', -1, 64))
	case settingsFieldGA:
		ti.Placeholder = "percent"
		ti.SetValue(strconv.FormatFloat(rates.GA, 'f', -1, 64))
	}

	ti.Focus()
	a.settings.input = ti
	return a, textinput.Blink
}

func (a App) updateSettingsInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		a.settings.editing = false
		cmd := a.settingsSave(strings.TrimSpace(a.settings.input.Value()))
		return a, cmd
	case "esc":
		a.settings.editing = false
		return a, nil
	}

	var cmd tea.Cmd
	a.settings.input, cmd = a.settings.input.Update(msg)
	return a, cmd
}

// settingsSave applies one edited field. Workspace fields are saved through
// the Source, the theme goes to the config file.
func (a *App) settingsSave(val string) tea.Cmd {
	if a.settings.cursor == settingsFieldTheme {
		if !slices.Contains(theme.Names(), val) {
			return a.setFlash("Unknown theme " + strconv.Quote(val))
		}
		theme.SetActive(val)
		a.cfg.Appearance.Theme = val
		if err := config.SaveFile(a.opts.ConfigPath, a.cfg); err != nil {
			return a.setFlash("Config not saved: " + err.Error())
		}
		return a.setFlash("Theme " + val + " saved")
	}

	if err := applySetting(a.st, a.settings.cursor, val); err != nil {
		return a.setFlash(err.Error())
	}
	a.recompute()
	a.saving = true
	return saveCmd(a.opts.Source, a.st)
}

// applySetting writes one workspace field into st.
func applySetting(st *store.State, field int, val string) error {
	if field == settingsFieldProjectName {
		if val == "" {
			return fmt.Errorf("project name: %w", model.ErrMissingField)
		}
		p := st.Project()
		p.Name = val
		st.SetProject(p)
		return nil
	}

	v, err := parseAmount(val)
	if err != nil {
		return fmt.Errorf("not a number: %q", val)
	}
	if v < 0 {
		return model.ErrNegativeAmount
	}

	rates := st.Rates()
	switch field {
	case settingsFieldTotalBudget:
		p := st.Project()
		p.TotalBudget = v
		st.SetProject(p)
	case settingsFieldContractValue:
		c := st.Contract()
		c.Value = v
		st.SetContract(c)
	case settingsFieldFringe:
		rates.Fringe = v
		st.SetRates(rates)
	case settingsFieldOverhead:
		rates.Overhead = v
		st.SetRates(rates)
	case settingsFieldGA:
		rates.GA = v
		st.SetRates(rates)
	}
	return nil
}

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active
	if a.st == nil {
		return ""
	}

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Background(t.Surface)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.Surface)
	selectedStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
	selectedLabelStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.SurfaceHover).Bold(true)
	accentStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.Surface)
	markerStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Background(t.SurfaceHover)

	p := a.st.Project()
	rates := a.st.Rates()
	fields := []struct{ label, value string }{
		{"Project Name", p.Name},
		{"Total Budget", cli.FormatMoney(p.TotalBudget)},
		{"Contract Value", cli.FormatMoney(a.st.Contract().Value)},
		{"Fringe Rate", cli.FormatPercent(rates.Fringe)},
		{"Overhead Rate", cli.FormatPercent(rates.Overhead)},
		{"G&A Rate", cli.FormatPercent(rates.GA)},
		{"Theme", theme.Active.Name},
	}

	innerW := components.CardInnerWidth(cw)
	var formBody strings.Builder
	for i, f := range fields {
		if a.settings.editing && i == a.settings.cursor {
			formBody.WriteString(markerStyle.Render("▸ "))
			formBody.WriteString(accentStyle.Render(fmt.Sprintf("%-16s ", f.label)))
			formBody.WriteString(a.settings.input.View())
			formBody.WriteString("\n")
			continue
		}

		if i == a.settings.cursor {
			marker := markerStyle.Render("▸ ")
			label := selectedLabelStyle.Render(fmt.Sprintf("%-16s ", f.label+":"))
			value := selectedStyle.Render(f.value)
			formBody.WriteString(marker + label + value)
			used := lipgloss.Width(marker) + lipgloss.Width(label) + lipgloss.Width(value)
			if pad := innerW - used; pad > 0 {
				formBody.WriteString(lipgloss.NewStyle().Background(t.SurfaceHover).Render(strings.Repeat(" ", pad)))
			}
		} else {
			formBody.WriteString(lipgloss.NewStyle().Background(t.Surface).Render("  "))
			formBody.WriteString(labelStyle.Render(fmt.Sprintf("%-16s ", f.label+":")))
			formBody.WriteString(valueStyle.Render(f.value))
		}
		formBody.WriteString("\n")
	}
	formBody.WriteString("\n")
	formBody.WriteString(labelStyle.Render("[j/k] navigate  [Enter] edit or cycle theme  [Esc] cancel"))

	var info strings.Builder
	row := func(label, value string) {
		info.WriteString(labelStyle.Render(fmt.Sprintf("%-18s", label)) + valueStyle.Render(value) + "\n")
	}
	for _, c := range store.Collections() {
		row(string(c)+":", cli.FormatNumber(int64(a.st.Count(c))))
	}
	row("Load time:", fmt.Sprintf("%dms", a.loadTime.Milliseconds()))
	info.WriteString(labelStyle.Render(fmt.Sprintf("%-18s", "Config file:")) + valueStyle.Render(a.opts.ConfigPath))

	var b strings.Builder
	b.WriteString(components.ContentCard("Settings", formBody.String(), cw))
	b.WriteString("\n")
	b.WriteString(components.ContentCard("Workspace", info.String(), cw))
	return b.String()
}
