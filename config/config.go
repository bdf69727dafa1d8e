package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Environment variable names
const (
	apiKeysEnv      = "GEMINI_API_KEYS"
	legacyAPIKeyEnv = "GEMINI_API_KEY"
	callSecondsEnv  = "CURATION_CALL_SECONDS"
	rpmPerKeyEnv    = "CURATION_RPM_PER_KEY"
	modelEnv        = "GEMINI_MODEL"
	endpointEnv     = "GEMINI_ENDPOINT"
	dataDirEnv      = "AURA_DATA_DIR"
	feedsPathEnv    = "AURA_FEEDS_PATH"
)

// Config is built once at process start and passed into every component.
// Nothing below the mains reads the environment directly.
type Config struct {
	// APIKeys is the ordered, de-duplicated credential rotation list
	APIKeys []string

	// CallInterval is the unconditional pacing sleep after each successful
	// remote call
	CallInterval time.Duration

	Model    string
	Endpoint string

	DataDir   string
	FeedsPath string
}

// FromEnv assembles a Config from process environment variables,
// applying defaults for everything unset.
func FromEnv() Config {
	cfg := Config{
		APIKeys:      credentialsFromEnv(),
		CallInterval: pacingFromEnv(),
		Model:        getEnvOrDefault(modelEnv, DefaultModel),
		Endpoint:     getEnvOrDefault(endpointEnv, DefaultEndpoint),
		DataDir:      getEnvOrDefault(dataDirEnv, DataDir),
		FeedsPath:    getEnvOrDefault(feedsPathEnv, FeedsFile),
	}
	return cfg
}

// LedgerPath returns the location of the curation decision ledger.
func (c Config) LedgerPath() string { return filepath.Join(c.DataDir, LedgerFile) }

// TrendsPath returns the location of the accepted trends store.
func (c Config) TrendsPath() string { return filepath.Join(c.DataDir, TrendsFile) }

// SavedPath returns the location of the dashboard saved-marker store.
func (c Config) SavedPath() string { return filepath.Join(c.DataDir, SavedFile) }

// credentialsFromEnv merges the comma-separated key list with the legacy
// single-key variable, preserving order and dropping duplicates and blanks.
func credentialsFromEnv() []string {
	var raw []string
	raw = append(raw, strings.Split(os.Getenv(apiKeysEnv), ",")...)
	raw = append(raw, os.Getenv(legacyAPIKeyEnv))

	seen := make(map[string]bool, len(raw))
	keys := make([]string, 0, len(raw))
	for _, k := range raw {
		k = strings.TrimSpace(k)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		keys = append(keys, k)
	}
	return keys
}

// pacingFromEnv resolves the per-call pacing interval. An explicit
// seconds value wins; otherwise a requests-per-minute-per-key figure is
// converted with a floor of MinCallInterval; otherwise the conservative
// default applies.
func pacingFromEnv() time.Duration {
	if v := os.Getenv(callSecondsEnv); v != "" {
		if secs, err := strconv.ParseFloat(v, 64); err == nil && secs > 0 {
			return time.Duration(secs * float64(time.Second))
		}
	}
	if v := os.Getenv(rpmPerKeyEnv); v != "" {
		if rpm, err := strconv.ParseFloat(v, 64); err == nil && rpm > 0 {
			interval := time.Duration(60 / rpm * float64(time.Second))
			if interval < MinCallInterval {
				return MinCallInterval
			}
			return interval
		}
	}
	return DefaultCallInterval
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
