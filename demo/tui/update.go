package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model interface
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case TrendsLoadedMsg:
		return m.handleTrendsLoaded(msg)
	case CategoriesLoadedMsg:
		return m.handleCategoriesLoaded(msg)
	case SavedLoadedMsg:
		return m.handleSavedLoaded(msg)
	case ToggleDoneMsg:
		return m.handleToggleDone(msg)
	case RefreshStartedMsg:
		return m.handleRefreshStarted(msg)
	case TickMsg:
		return m, tea.Batch(
			loadTrends(m.Client, m.activeCategory()),
			loadCategories(m.Client),
			loadSaved(m.Client),
			tickCmd(),
		)
	}
	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		m.Cursor--
		return m.clampCursor(), nil
	case "down", "j":
		m.Cursor++
		return m.clampCursor(), nil
	case "left", "h":
		m.CategoryIdx--
		if m.CategoryIdx < 0 {
			m.CategoryIdx = len(m.Categories) - 1
		}
		m.Cursor = 0
		return m, loadTrends(m.Client, m.activeCategory())
	case "right", "l", "tab":
		m.CategoryIdx = (m.CategoryIdx + 1) % len(m.Categories)
		m.Cursor = 0
		return m, loadTrends(m.Client, m.activeCategory())
	case "s", "S":
		if t := m.selected(); t != nil {
			return m, toggleSave(m.Client, *t)
		}
	case "r", "R":
		if !m.Refreshing {
			m.Refreshing = true
			return m, triggerRefresh(m.Client)
		}
	}
	return m, nil
}

// handleTrendsLoaded processes an incoming trend list
func (m Model) handleTrendsLoaded(msg TrendsLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.Connected = false
		m.Err = msg.Err
		return m, nil
	}
	m.Connected = true
	m.Err = nil
	m.Trends = msg.Trends
	return m.clampCursor(), nil
}

// handleCategoriesLoaded processes the category tabs
func (m Model) handleCategoriesLoaded(msg CategoriesLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		return m, nil
	}
	return m.mergeCategories(msg.Categories), nil
}

// handleSavedLoaded rebuilds the star markers from the server's list
func (m Model) handleSavedLoaded(msg SavedLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		return m, nil
	}
	keys := make(map[string]bool, len(msg.Trends))
	for _, t := range msg.Trends {
		keys[t.Key()] = true
	}
	m.SavedKeys = keys
	return m, nil
}

// handleToggleDone processes a completed save toggle
func (m Model) handleToggleDone(msg ToggleDoneMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		m.Err = msg.Err
		return m, nil
	}
	m.SavedKeys[msg.Key] = msg.Saved
	// The saved tab serves from the server's list, refetch it
	return m, loadTrends(m.Client, m.activeCategory())
}

// handleRefreshStarted processes the refresh acknowledgement
func (m Model) handleRefreshStarted(msg RefreshStartedMsg) (tea.Model, tea.Cmd) {
	m.Refreshing = false
	if msg.Err != nil {
		m.Err = msg.Err
	}
	return m, nil
}
