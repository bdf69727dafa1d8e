package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/narek-arsh/aura-trends-dashboard/types"
)

// loadTrends creates a command to fetch the current category's trends
func loadTrends(client *DashboardClient, category string) tea.Cmd {
	return func() tea.Msg {
		trends, err := client.GetTrends(category)
		return TrendsLoadedMsg{Trends: trends, Err: err}
	}
}

// loadCategories creates a command to fetch the category tabs
func loadCategories(client *DashboardClient) tea.Cmd {
	return func() tea.Msg {
		categories, err := client.GetCategories()
		return CategoriesLoadedMsg{Categories: categories, Err: err}
	}
}

// loadSaved creates a command to fetch the saved list
func loadSaved(client *DashboardClient) tea.Cmd {
	return func() tea.Msg {
		trends, err := client.GetSaved()
		return SavedLoadedMsg{Trends: trends, Err: err}
	}
}

// toggleSave creates a command to flip one trend's saved state
func toggleSave(client *DashboardClient, t types.Trend) tea.Cmd {
	return func() tea.Msg {
		saved, err := client.ToggleSave(t)
		return ToggleDoneMsg{Key: t.Key(), Saved: saved, Err: err}
	}
}

// triggerRefresh creates a command to start a curation pass
func triggerRefresh(client *DashboardClient) tea.Cmd {
	return func() tea.Msg {
		err := client.Refresh()
		return RefreshStartedMsg{Err: err}
	}
}

// tickCmd creates a command that ticks every 10s for polling
func tickCmd() tea.Cmd {
	return tea.Tick(10*time.Second, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}
