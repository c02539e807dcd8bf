package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/theirongolddev/seasfin/internal/tui/components"
)

func TestTabAtXMatchesTabWidths(t *testing.T) {
	n := len(components.Tabs)
	for active := 0; active < n; active++ {
		a := App{activeTab: active}
		pos := 0

		for i := 0; i < n; i++ {
			w := tabWidthForTest(i, active)
			x := pos + w/2 // midpoint inside this tab
			if got := a.tabAtX(x); got != i {
				t.Fatalf("active=%d x=%d -> tab=%d, want %d", active, x, got, i)
			}
			pos += w
			if i < n-1 {
				pos++ // separator
			}
		}
		if got := a.tabAtX(pos + 5); got != -1 {
			t.Errorf("active=%d x past last tab -> %d, want -1", active, got)
		}
	}
}

func tabWidthForTest(tabIdx, activeIdx int) int {
	nameWidths := []int{
		len("Overview"),
		len("Costs"),
		len("Team"),
		len("Trends"),
		len("Settings"),
	}

	w := nameWidths[tabIdx] + 2 // horizontal padding in tab renderer
	if tabIdx != activeIdx && tabIdx == 4 {
		w += 3 // inactive Settings adds "[x]"
	}
	return w
}

func TestMouseClickSelectsTab(t *testing.T) {
	a := loadedApp(t)
	x := tabWidthForTest(0, 0) + 1 + 2 // inside "Costs"
	m, _ := a.Update(tea.MouseMsg{X: x, Y: 0, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if got := m.(App).activeTab; got != components.TabCosts {
		t.Errorf("activeTab = %d, want %d", got, components.TabCosts)
	}

	// Clicks below the tab row are ignored.
	m, _ = m.(App).Update(tea.MouseMsg{X: 1, Y: 3, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	if got := m.(App).activeTab; got != components.TabCosts {
		t.Errorf("activeTab after body click = %d, want %d", got, components.TabCosts)
	}
}

func TestMouseWheelMovesTeamCursor(t *testing.T) {
	a := loadedApp(t)
	a.activeTab = components.TabTeam

	m, _ := a.Update(tea.MouseMsg{Button: tea.MouseButtonWheelDown})
	if got := m.(App).team.cursor; got != 1 {
		t.Errorf("cursor = %d, want 1", got)
	}
	m, _ = m.(App).Update(tea.MouseMsg{Button: tea.MouseButtonWheelUp})
	m, _ = m.(App).Update(tea.MouseMsg{Button: tea.MouseButtonWheelUp})
	if got := m.(App).team.cursor; got != 0 {
		t.Errorf("cursor = %d, want 0", got)
	}
}
