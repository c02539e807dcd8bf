// Package tui provides the interactive Bubble Tea dashboard for seasfin.
package tui

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/theirongolddev/seasfin/internal/config"
	"github.com/theirongolddev/seasfin/internal/model"
	"github.com/theirongolddev/seasfin/internal/pipeline"
	"github.com/theirongolddev/seasfin/internal/store"
	"github.com/theirongolddev/seasfin/internal/tui/components"
	"github.com/theirongolddev/seasfin/internal/tui/theme"
)

// Source loads and persists the workspace shown by the dashboard.
type Source interface {
	Load(ctx context.Context) (*store.State, error)
	Save(ctx context.Context, st *store.State) error
}

// Options configures NewApp.
type Options struct {
	Source     Source
	Config     config.Config
	ConfigPath string
	NeedSetup  bool              // show the setup form after the first load
	NewRand    func() *rand.Rand // generator for the simulated trend
}

// dataLoadedMsg is sent when the workspace has been read.
type dataLoadedMsg struct {
	st   *store.State
	took time.Duration
	err  error
}

// savedMsg reports the result of a background save.
type savedMsg struct {
	err error
}

// flashExpiredMsg clears the status bar message.
type flashExpiredMsg struct {
	id int
}

// App is the root Bubble Tea model.
type App struct {
	opts Options
	cfg  config.Config

	// Data
	st       *store.State
	report   pipeline.Report
	proj     model.Projection
	loaded   bool
	loadTime time.Duration
	loadErr  error

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Per-tab state
	team     teamState
	settings settingsState

	// First-run setup
	setupForm *huh.Form
	setupVals *SetupValues // shared with the form, which writes through it
	needSetup bool

	spinner spinner.Model
	saving  bool
	flash   string
	flashID int
}

const (
	minTerminalWidth = 80
	compactWidth     = 120
	maxContentWidth  = 180
	minContentHeight = 5

	flashDuration = 3 * time.Second
)

// NewApp creates the dashboard model.
func NewApp(opts Options) App {
	theme.SetActive(opts.Config.Appearance.Theme)
	if opts.NewRand == nil {
		opts.NewRand = func() *rand.Rand { return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) }
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent)

	return App{
		opts:      opts,
		cfg:       opts.Config,
		needSetup: opts.NeedSetup,
		spinner:   sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadCmd(a.opts.Source),
		a.spinner.Tick,
	)
}

func loadCmd(src Source) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		st, err := src.Load(context.Background())
		return dataLoadedMsg{st: st, took: time.Since(start), err: err}
	}
}

func saveCmd(src Source, st *store.State) tea.Cmd {
	return func() tea.Msg {
		return savedMsg{err: src.Save(context.Background(), st)}
	}
}

// recompute rebuilds every derived view from the current state.
func (a *App) recompute() {
	if a.st == nil {
		return
	}
	a.report = pipeline.BuildReport(a.st.Snapshot(), a.st.Now(), a.opts.NewRand())
	a.proj = pipeline.Project(a.st.EnhancedEmployees(), a.cfg.ProjectionParams())
	a.team.clamp(len(a.report.EmployeeCosts))
}

func (a *App) setFlash(msg string) tea.Cmd {
	a.flash = msg
	a.flashID++
	id := a.flashID
	return tea.Tick(flashDuration, func(time.Time) tea.Msg { return flashExpiredMsg{id: id} })
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || a.setupForm != nil {
			return a, nil
		}
		return a.updateMouse(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if !a.loaded {
			return a, nil
		}
		if a.setupForm != nil {
			return a.updateSetupForm(msg)
		}
		return a.updateKeys(msg)

	case dataLoadedMsg:
		a.loaded = true
		a.loadTime = msg.took
		a.loadErr = msg.err
		if msg.err != nil {
			return a, nil
		}
		a.st = msg.st
		a.recompute()

		if a.needSetup {
			vals := SetupValuesFrom(a.cfg)
			a.setupVals = &vals
			a.setupForm = NewSetupForm(a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}
		return a, nil

	case savedMsg:
		a.saving = false
		if msg.err != nil {
			return a, a.setFlash("Save failed: " + msg.err.Error())
		}
		return a, a.setFlash("Saved")

	case flashExpiredMsg:
		if msg.id == a.flashID {
			a.flash = ""
		}
		return a, nil

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Cursor blinks and other form messages
	if a.setupForm != nil {
		return a.updateSetupForm(msg)
	}
	if a.activeTab == components.TabSettings && a.settings.editing {
		var cmd tea.Cmd
		a.settings.input, cmd = a.settings.input.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a App) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if a.activeTab == components.TabSettings && a.settings.editing {
		return a.updateSettingsInput(msg)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch a.activeTab {
	case components.TabTeam:
		if a.updateTeamKeys(key) {
			return a, nil
		}
	case components.TabSettings:
		switch key {
		case "j", "down":
			if a.settings.cursor < settingsFieldCount-1 {
				a.settings.cursor++
			}
			return a, nil
		case "k", "up":
			if a.settings.cursor > 0 {
				a.settings.cursor--
			}
			return a, nil
		case "enter":
			return a.settingsStartEdit()
		}
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "r":
		a.loaded = false
		return a, tea.Batch(loadCmd(a.opts.Source), a.spinner.Tick)
	case "s":
		a.recompute()
		return a, a.setFlash("Trend resampled")
	case "left", "h":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
	case "right", "l", "tab":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
	default:
		if r := []rune(key); len(r) == 1 {
			if idx := components.TabIdxByKey(r[0]); idx >= 0 {
				a.activeTab = idx
			}
		}
	}
	return a, nil
}

func (a App) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if a.activeTab == components.TabTeam {
			a.team.move(-1, len(a.report.EmployeeCosts))
		}
	case tea.MouseButtonWheelDown:
		if a.activeTab == components.TabTeam {
			a.team.move(1, len(a.report.EmployeeCosts))
		}
	case tea.MouseButtonLeft:
		if msg.Action == tea.MouseActionPress && msg.Y == 0 {
			if tab := a.tabAtX(msg.X); tab >= 0 {
				a.activeTab = tab
			}
		}
	}
	return a, nil
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	switch a.setupForm.State {
	case huh.StateCompleted:
		a.setupForm = nil
		a.needSetup = false
		return a, a.finishSetup()
	case huh.StateAborted:
		a.setupForm = nil
		a.needSetup = false
		return a, nil
	}
	return a, cmd
}

// finishSetup applies the setup answers to the config file and the
// workspace, then saves the workspace in the background.
func (a *App) finishSetup() tea.Cmd {
	if a.setupVals.SaveConfig {
		if err := a.setupVals.ApplyConfig(&a.cfg); err != nil {
			return a.setFlash("Config not saved: " + err.Error())
		}
		if err := config.SaveFile(a.opts.ConfigPath, a.cfg); err != nil {
			return a.setFlash("Config not saved: " + err.Error())
		}
	}
	theme.SetActive(a.setupVals.Theme)
	if err := a.setupVals.ApplyState(a.st); err != nil {
		return a.setFlash(err.Error())
	}
	a.recompute()
	a.saving = true
	return saveCmd(a.opts.Source, a.st)
}

func (a App) contentWidth() int {
	return min(a.width, maxContentWidth)
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}
	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}
	if !a.loaded {
		return a.viewLoading()
	}
	if a.loadErr != nil {
		return a.viewError()
	}
	if a.setupForm != nil {
		return a.setupForm.View()
	}
	if a.showHelp {
		return a.viewHelp()
	}
	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := max(a.height, 5)
	msg := fmt.Sprintf("\n  Terminal too narrow (%d cols)\n\n  seasfin needs at least %d columns.\n",
		a.width, minTerminalWidth)
	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active
	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(2, 4)
	logoStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	subtitleStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	body := logoStyle.Render("◈ seasfin") + subtitleStyle.Render(" · Project Financials") + "\n\n" +
		a.spinner.View() + subtitleStyle.Render(" Loading workspace...")
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(body),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewError() string {
	t := theme.Active
	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Red).
		Padding(1, 3)
	body := lipgloss.NewStyle().Foreground(t.Red).Bold(true).Render("Could not load the workspace") + "\n\n" +
		lipgloss.NewStyle().Foreground(t.TextMuted).Render(a.loadErr.Error()) + "\n\n" +
		lipgloss.NewStyle().Foreground(t.TextDim).Render("[r] retry  [q] quit")
	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(body),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active
	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Padding(1, 3)
	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.Cyan).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")
	bindings := []struct{ key, desc string }{
		{"o c t e x", "Jump to tab"},
		{"← → tab", "Previous / next tab"},
		{"j k", "Move in lists and settings"},
		{"Enter", "Edit setting / confirm"},
		{"Esc", "Cancel edit"},
		{"r", "Reload workspace"},
		{"s", "Resample the spending trend"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	for _, bind := range bindings {
		fmt.Fprintf(&b, "  %s  %s\n", keyStyle.Render(fmt.Sprintf("%-10s", bind.key)), descStyle.Render(bind.desc))
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(t.TextDim).Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, cardStyle.Render(b.String()),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)

	right := fmt.Sprintf("%s · %s ", a.report.Project.Name, a.report.Now.Format("2006-01-02"))
	if a.saving {
		right = "saving... " + right
	}
	statusBar := components.RenderStatusBar(w, " [?]help  [r]eload  [q]uit", right, a.flash)

	contentH := max(h-lipgloss.Height(header)-lipgloss.Height(statusBar), minContentHeight)

	var content string
	switch a.activeTab {
	case components.TabOverview:
		content = a.renderOverviewTab(cw)
	case components.TabCosts:
		content = a.renderCostsTab(cw)
	case components.TabTeam:
		content = a.renderTeamTab(cw, contentH)
	case components.TabTrends:
		content = a.renderTrendsTab(cw)
	case components.TabSettings:
		content = a.renderSettingsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	return lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)
}

// ─── Helpers ────────────────────────────────────────────────────

// tabAtX returns the tab index at the given X coordinate, or -1 if none.
// Hitboxes follow the widths used by RenderTabBar.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW + 1 // separator
	}
	return -1
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// halves splits a content width into two card widths for side-by-side rows,
// or returns the full width twice when the layout is compact.
func (a App) halves(cw int) (int, int, bool) {
	if a.isCompactLayout() {
		return cw, cw, false
	}
	w := components.LayoutRow(cw, 2)
	return w[0], w[1], true
}

// pair lays two cards side by side, or stacks them in compact layouts.
func pair(left, right string, sideBySide bool) string {
	if sideBySide {
		return components.CardRow([]string{left, right})
	}
	return left + "\n" + right
}
