package config

import (
	"testing"
	"time"
)

func TestCredentialsFromEnv(t *testing.T) {
	cases := []struct {
		name   string
		keys   string
		legacy string
		want   []string
	}{
		{"comma list", "a,b,c", "", []string{"a", "b", "c"}},
		{"legacy only", "", "solo", []string{"solo"}},
		{"legacy merged last", "a,b", "z", []string{"a", "b", "z"}},
		{"legacy duplicate dropped", "a,b", "a", []string{"a", "b"}},
		{"whitespace and blanks", " a , ,b,, a ", "", []string{"a", "b"}},
		{"nothing", "", "", []string{}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Setenv(apiKeysEnv, c.keys)
			t.Setenv(legacyAPIKeyEnv, c.legacy)
			got := credentialsFromEnv()
			if len(got) != len(c.want) {
				t.Fatalf("credentialsFromEnv() = %v; want %v", got, c.want)
			}
			for i := range got {
				if got[i] != c.want[i] {
					t.Fatalf("credentialsFromEnv()[%d] = %q; want %q", i, got[i], c.want[i])
				}
			}
		})
	}
}

func TestPacingFromEnv(t *testing.T) {
	cases := []struct {
		name    string
		seconds string
		rpm     string
		want    time.Duration
	}{
		{"default", "", "", DefaultCallInterval},
		{"explicit seconds", "5", "", 5 * time.Second},
		{"explicit wins over rpm", "3", "10", 3 * time.Second},
		{"rpm converted", "", "6", 10 * time.Second},
		{"rpm floored", "", "120", MinCallInterval},
		{"garbage ignored", "abc", "xyz", DefaultCallInterval},
		{"negative ignored", "-4", "", DefaultCallInterval},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Setenv(callSecondsEnv, c.seconds)
			t.Setenv(rpmPerKeyEnv, c.rpm)
			if got := pacingFromEnv(); got != c.want {
				t.Fatalf("pacingFromEnv() = %v; want %v", got, c.want)
			}
		})
	}
}

func TestConfigPaths(t *testing.T) {
	t.Setenv(dataDirEnv, "testdata")
	cfg := FromEnv()
	if cfg.LedgerPath() != "testdata/curated.json" {
		t.Errorf("LedgerPath() = %q", cfg.LedgerPath())
	}
	if cfg.TrendsPath() != "testdata/trends.json" {
		t.Errorf("TrendsPath() = %q", cfg.TrendsPath())
	}
	if cfg.SavedPath() != "testdata/saved.json" {
		t.Errorf("SavedPath() = %q", cfg.SavedPath())
	}
}
