package tui

import (
	"time"

	"github.com/narek-arsh/aura-trends-dashboard/types"
)

// Messages for the tea program (polling-based)

// TrendsLoadedMsg is sent when a trend list arrives from the server
type TrendsLoadedMsg struct {
	Trends []types.Trend
	Err    error
}

// CategoriesLoadedMsg is sent when the category tabs arrive
type CategoriesLoadedMsg struct {
	Categories []string
	Err        error
}

// SavedLoadedMsg is sent when the saved list arrives
type SavedLoadedMsg struct {
	Trends []types.Trend
	Err    error
}

// ToggleDoneMsg is sent after a save toggle round-trips
type ToggleDoneMsg struct {
	Key   string
	Saved bool
	Err   error
}

// RefreshStartedMsg is sent after triggering a curation pass
type RefreshStartedMsg struct {
	Err error
}

// TickMsg is sent periodically to trigger polling
type TickMsg struct {
	Time time.Time
}
