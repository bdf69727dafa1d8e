package config

import "time"

// Curation pacing constants
const (
	// DefaultCallInterval is the conservative delay applied after every
	// successful remote call when no pacing override is configured
	DefaultCallInterval = 12 * time.Second

	// MinCallInterval is the floor applied to requests-per-minute derived pacing
	MinCallInterval = 2 * time.Second

	// DefaultRetryWait is used for per-minute quota errors when the server
	// does not suggest a retry delay
	DefaultRetryWait = 65 * time.Second

	// MaxRetryWait caps any backoff sleep, server-suggested or not
	MaxRetryWait = 300 * time.Second

	// AttemptsPerKey is the retry budget against a single credential for
	// one article before rotation advances
	AttemptsPerKey = 2
)

// Remote model defaults
const (
	DefaultModel    = "gemini-1.5-flash"
	DefaultEndpoint = "https://generativelanguage.googleapis.com/v1beta"
)

// Storage layout constants
const (
	// DataDir is the directory holding all JSON stores
	DataDir = "data"

	// LedgerFile records every article ID ever evaluated and its outcome
	LedgerFile = "curated.json"

	// TrendsFile holds the accepted, enriched articles
	TrendsFile = "trends.json"

	// SavedFile holds the dashboard-owned saved markers
	SavedFile = "saved.json"

	// FeedsFile maps categories to feed URL lists
	FeedsFile = "config/feeds.yaml"
)
