package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/narek-arsh/aura-trends-dashboard/types"
)

// The fixed tabs are always present; server-reported categories are
// merged in between them.
const (
	tabAll   = "todas"
	tabSaved = "guardadas"
)

// Model represents the dashboard client state (thin client)
type Model struct {
	Client *DashboardClient

	// Local UI state (synced from the server)
	Trends      []types.Trend
	Categories  []string
	CategoryIdx int
	Cursor      int
	SavedKeys   map[string]bool

	Connected  bool
	Refreshing bool
	Err        error
}

// NewModel creates a new dashboard TUI model
func NewModel(dashboardURL string) Model {
	return Model{
		Client:     NewDashboardClient(dashboardURL),
		Categories: []string{tabAll, tabSaved},
		SavedKeys:  make(map[string]bool),
	}
}

// Init implements tea.Model interface
func (m Model) Init() tea.Cmd {
	// Load everything immediately, then keep polling. The saved list
	// seeds the star markers for trends saved in earlier sessions.
	return tea.Batch(
		loadCategories(m.Client),
		loadTrends(m.Client, m.activeCategory()),
		loadSaved(m.Client),
		tickCmd(),
	)
}

// activeCategory returns the category the current tab queries for. The
// "todas" tab maps to the unfiltered list.
func (m Model) activeCategory() string {
	tab := m.Categories[m.CategoryIdx]
	if tab == tabAll {
		return ""
	}
	return tab
}

// mergeCategories rebuilds the tab list from the server's categories
// while keeping the fixed tabs at the edges and the selection stable.
func (m Model) mergeCategories(fromServer []string) Model {
	current := m.Categories[m.CategoryIdx]

	tabs := []string{tabAll}
	for _, c := range fromServer {
		if c != tabAll && c != tabSaved {
			tabs = append(tabs, c)
		}
	}
	tabs = append(tabs, tabSaved)

	m.Categories = tabs
	m.CategoryIdx = 0
	for i, tab := range tabs {
		if tab == current {
			m.CategoryIdx = i
			break
		}
	}
	return m
}

// selected returns the trend under the cursor, or nil when the list is
// empty.
func (m Model) selected() *types.Trend {
	if m.Cursor < 0 || m.Cursor >= len(m.Trends) {
		return nil
	}
	return &m.Trends[m.Cursor]
}

// clampCursor keeps the cursor inside the current list.
func (m Model) clampCursor() Model {
	if m.Cursor >= len(m.Trends) {
		m.Cursor = len(m.Trends) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
	return m
}
