package tui

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/theirongolddev/seasfin/internal/config"
	"github.com/theirongolddev/seasfin/internal/model"
	"github.com/theirongolddev/seasfin/internal/store"
	"github.com/theirongolddev/seasfin/internal/tui/components"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

type fakeSource struct {
	st      *store.State
	loadErr error
	saves   int
}

func (f *fakeSource) Load(context.Context) (*store.State, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.st, nil
}

func (f *fakeSource) Save(_ context.Context, st *store.State) error {
	f.saves++
	f.st = st
	return nil
}

func testState(t *testing.T) *store.State {
	t.Helper()
	st := store.New(store.WithClock(func() time.Time { return testNow }))
	for _, e := range []model.EnhancedEmployee{
		{Name: "Ada", LCAT: "PM", PricedSalary: 150000, CurrentSalary: 140000, HoursPerMonth: 160},
		{Name: "Grace", LCAT: "SRE", PricedSalary: 130000, CurrentSalary: 135000, HoursPerMonth: 120},
	} {
		e, err := model.NewEnhancedEmployee(e)
		if err != nil {
			t.Fatalf("NewEnhancedEmployee: %v", err)
		}
		st.AddEnhancedEmployee(e)
	}
	exp, err := model.NewExpense("Software", 1200, "licenses")
	if err != nil {
		t.Fatalf("NewExpense: %v", err)
	}
	st.AddExpense(exp)
	return st
}

func newTestApp(src Source, needSetup bool) App {
	return NewApp(Options{
		Source:     src,
		Config:     config.DefaultConfig(),
		ConfigPath: "",
		NeedSetup:  needSetup,
		NewRand:    func() *rand.Rand { return rand.New(rand.NewPCG(1, 2)) },
	})
}

func loadedApp(t *testing.T) App {
	t.Helper()
	a := newTestApp(&fakeSource{st: testState(t)}, false)
	return update(t, a, tea.WindowSizeMsg{Width: 140, Height: 45}, dataLoadedMsg{st: testState(t)})
}

func update(t *testing.T, a App, msgs ...tea.Msg) App {
	t.Helper()
	var m tea.Model = a
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	app, ok := m.(App)
	if !ok {
		t.Fatalf("Update returned %T", m)
	}
	return app
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestLoadComputesReport(t *testing.T) {
	a := loadedApp(t)
	if !a.loaded {
		t.Fatal("app should be loaded")
	}
	if got := len(a.report.EmployeeCosts); got != 2 {
		t.Errorf("EmployeeCosts = %d, want 2", got)
	}
	if a.report.Summary.TotalExpenses != 1200 {
		t.Errorf("TotalExpenses = %v, want 1200", a.report.Summary.TotalExpenses)
	}
	if a.proj.TeamSize == 0 {
		t.Error("projection should be computed from the enhanced team")
	}
}

func TestKeyNavigation(t *testing.T) {
	a := loadedApp(t)

	a = update(t, a, keyRunes("t"))
	if a.activeTab != components.TabTeam {
		t.Errorf("after t: tab = %d, want %d", a.activeTab, components.TabTeam)
	}
	a = update(t, a, tea.KeyMsg{Type: tea.KeyRight})
	if a.activeTab != components.TabTrends {
		t.Errorf("after right: tab = %d, want %d", a.activeTab, components.TabTrends)
	}
	a = update(t, a, tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyLeft})
	if a.activeTab != components.TabCosts {
		t.Errorf("after left x2: tab = %d, want %d", a.activeTab, components.TabCosts)
	}
	a = update(t, a, tea.KeyMsg{Type: tea.KeyLeft}, tea.KeyMsg{Type: tea.KeyLeft})
	if a.activeTab != components.TabSettings {
		t.Errorf("left should wrap: tab = %d, want %d", a.activeTab, components.TabSettings)
	}

	a = update(t, a, keyRunes("?"))
	if !a.showHelp {
		t.Fatal("? should open help")
	}
	a = update(t, a, keyRunes("o"))
	if a.showHelp || a.activeTab != components.TabSettings {
		t.Error("any key should close help without switching tabs")
	}
}

func TestTeamCursorStaysInBounds(t *testing.T) {
	a := loadedApp(t)
	a.activeTab = components.TabTeam

	a = update(t, a, keyRunes("j"), keyRunes("j"), keyRunes("j"))
	if a.team.cursor != 1 {
		t.Errorf("cursor = %d, want 1", a.team.cursor)
	}
	a = update(t, a, keyRunes("g"))
	if a.team.cursor != 0 {
		t.Errorf("cursor after g = %d, want 0", a.team.cursor)
	}
}

func TestViewRendersEveryTab(t *testing.T) {
	a := loadedApp(t)
	for i, tab := range components.Tabs {
		a.activeTab = i
		out := a.View()
		if out == "" {
			t.Errorf("%s: empty view", tab.Name)
		}
		if !strings.Contains(out, "verview") {
			t.Errorf("%s: tab bar missing", tab.Name)
		}
	}
}

func TestViewTooNarrow(t *testing.T) {
	a := loadedApp(t)
	a = update(t, a, tea.WindowSizeMsg{Width: 60, Height: 20})
	if !strings.Contains(a.View(), "too narrow") {
		t.Error("narrow terminal should show a warning")
	}
}

func TestLoadErrorView(t *testing.T) {
	a := newTestApp(&fakeSource{loadErr: errors.New("disk gone")}, false)
	a = update(t, a, tea.WindowSizeMsg{Width: 120, Height: 40}, dataLoadedMsg{err: errors.New("disk gone")})
	if !strings.Contains(a.View(), "disk gone") {
		t.Error("error view should show the load error")
	}
}

func TestSettingsEditSavesWorkspace(t *testing.T) {
	src := &fakeSource{st: testState(t)}
	a := newTestApp(src, false)
	a = update(t, a, tea.WindowSizeMsg{Width: 140, Height: 45}, dataLoadedMsg{st: src.st})
	a.activeTab = components.TabSettings

	a = update(t, a, keyRunes("j"), tea.KeyMsg{Type: tea.KeyEnter})
	if !a.settings.editing || a.settings.cursor != settingsFieldTotalBudget {
		t.Fatalf("editing=%v cursor=%d, want editing the budget", a.settings.editing, a.settings.cursor)
	}
	a.settings.input.SetValue("$250,000")

	m, cmd := a.Update(tea.KeyMsg{Type: tea.KeyEnter})
	a = m.(App)
	if a.settings.editing {
		t.Error("enter should end editing")
	}
	if cmd == nil {
		t.Fatal("expected a save command")
	}
	if msg, ok := cmd().(savedMsg); !ok || msg.err != nil {
		t.Fatalf("save cmd returned %#v", msg)
	}
	if src.saves != 1 {
		t.Errorf("saves = %d, want 1", src.saves)
	}
	if got := src.st.Project().TotalBudget; got != 250000 {
		t.Errorf("TotalBudget = %v, want 250000", got)
	}
	if a.report.Summary.TotalBudget != 250000 {
		t.Error("report should be recomputed after an edit")
	}
}

func TestApplySetting(t *testing.T) {
	st := testState(t)

	if err := applySetting(st, settingsFieldFringe, "30"); err != nil {
		t.Fatalf("fringe: %v", err)
	}
	if got := st.Rates().Fringe; got != 30 {
		t.Errorf("Fringe = %v, want 30", got)
	}
	if err := applySetting(st, settingsFieldContractValue, "-5"); !errors.Is(err, model.ErrNegativeAmount) {
		t.Errorf("negative contract err = %v, want ErrNegativeAmount", err)
	}
	if err := applySetting(st, settingsFieldProjectName, ""); !errors.Is(err, model.ErrMissingField) {
		t.Errorf("blank name err = %v, want ErrMissingField", err)
	}
	if err := applySetting(st, settingsFieldGA, "abc"); err == nil {
		t.Error("non-numeric rate should fail")
	}
	for _, v := range []string{"NaN", "Inf", "-Inf"} {
		if err := applySetting(st, settingsFieldTotalBudget, v); err == nil {
			t.Errorf("budget %q should fail", v)
		}
	}
	if got := st.Rates().Fringe; got != 30 {
		t.Errorf("Fringe after rejected edits = %v, want 30", got)
	}
}

func TestNeedSetupShowsForm(t *testing.T) {
	a := newTestApp(&fakeSource{st: testState(t)}, true)
	a = update(t, a, tea.WindowSizeMsg{Width: 120, Height: 40}, dataLoadedMsg{st: testState(t)})
	if a.setupForm == nil {
		t.Fatal("setup form should open after the first load")
	}
	if a.setupVals.ProjectName != config.DefaultConfig().Project.Name {
		t.Errorf("setup prefill = %q", a.setupVals.ProjectName)
	}
}

func TestSetupValuesApplyState(t *testing.T) {
	st := testState(t)
	vals := SetupValues{
		ProjectName:   "Modernization",
		TotalBudget:   "500,000",
		StartDate:     "2025-01-01",
		ContractValue: "750000",
	}
	if err := vals.ApplyState(st); err != nil {
		t.Fatalf("ApplyState: %v", err)
	}
	p := st.Project()
	if p.Name != "Modernization" || p.TotalBudget != 500000 {
		t.Errorf("project = %+v", p)
	}
	wantEnd := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	if !p.EndDate.Equal(wantEnd) {
		t.Errorf("EndDate = %v, want %v", p.EndDate, wantEnd)
	}
	if got := st.Contract().Value; got != 750000 {
		t.Errorf("contract = %v, want 750000", got)
	}

	bad := SetupValues{StartDate: "2025-06-01", EndDate: "2025-01-01"}
	if err := bad.ApplyState(st); err == nil {
		t.Error("end before start should fail")
	}
}

func TestSetupValuesApplyConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	vals := SetupValues{ProjectName: " Alpha ", TotalBudget: "90000", Theme: "tokyo-night"}
	if err := vals.ApplyConfig(&cfg); err != nil {
		t.Fatalf("ApplyConfig: %v", err)
	}
	if cfg.Project.Name != "Alpha" || cfg.Project.TotalBudget != 90000 || cfg.Appearance.Theme != "tokyo-night" {
		t.Errorf("cfg = %+v", cfg)
	}
}
