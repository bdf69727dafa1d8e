package curation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/narek-arsh/aura-trends-dashboard/config"
	"github.com/narek-arsh/aura-trends-dashboard/types"
)

func newTestCurator(t *testing.T, keys []string, call callFunc) (*Curator, *[]time.Duration) {
	t.Helper()
	cfg := config.Config{
		APIKeys:      keys,
		CallInterval: 12 * time.Second,
		Model:        config.DefaultModel,
		Endpoint:     config.DefaultEndpoint,
	}
	c, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	sleeps := &[]time.Duration{}
	c.call = call
	c.sleep = func(d time.Duration) { *sleeps = append(*sleeps, d) }
	return c, sleeps
}

func testArticle() *types.Article {
	return &types.Article{
		ID:       "abc123",
		Title:    "Nueva apertura gastronómica en Málaga",
		Summary:  "Un chef con estrella abre local en el Soho.",
		Category: "gastronomia",
		Link:     "https://example.com/apertura",
	}
}

func TestEvaluateRelevantResponse(t *testing.T) {
	c, sleeps := newTestCurator(t, []string{"k1"}, func(ctx context.Context, key, prompt string) (string, error) {
		return "true", nil
	})

	relevant, err := c.Evaluate(context.Background(), testArticle())
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if !relevant {
		t.Fatal("Evaluate() = false; want true")
	}
	// Pacing sleep must follow every successful call.
	if len(*sleeps) != 1 || (*sleeps)[0] != 12*time.Second {
		t.Fatalf("pacing sleeps = %v; want one 12s sleep", *sleeps)
	}
}

func TestEvaluateAmbiguousResponseIsNotRelevant(t *testing.T) {
	c, _ := newTestCurator(t, []string{"k1"}, func(ctx context.Context, key, prompt string) (string, error) {
		return "maybe", nil
	})

	relevant, err := c.Evaluate(context.Background(), testArticle())
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if relevant {
		t.Fatal("ambiguous response must resolve to not relevant")
	}
}

func TestAttemptBudgetPerCredential(t *testing.T) {
	callsPerKey := map[string]int{}
	c, sleeps := newTestCurator(t, []string{"k1", "k2"}, func(ctx context.Context, key, prompt string) (string, error) {
		callsPerKey[key]++
		return "", &apiError{class: classQuotaMinute, status: 429, msg: "rate limited"}
	})

	_, err := c.generate(context.Background(), "prompt")
	if !errors.Is(err, ErrExhausted) {
		t.Fatalf("generate error = %v; want ErrExhausted", err)
	}

	for _, key := range []string{"k1", "k2"} {
		if callsPerKey[key] != config.AttemptsPerKey {
			t.Errorf("key %s attempted %d times; want %d", key, callsPerKey[key], config.AttemptsPerKey)
		}
	}

	// One backoff sleep per key (between its two attempts), each bounded
	// by the default wait and the cap.
	for _, d := range *sleeps {
		if d <= 0 || d > config.MaxRetryWait {
			t.Errorf("backoff sleep %v outside (0, %v]", d, config.MaxRetryWait)
		}
	}
}

func TestServerRetryHintIsUsedAndCapped(t *testing.T) {
	cases := []struct {
		name string
		hint time.Duration
		want time.Duration
	}{
		{"no hint", 0, config.DefaultRetryWait},
		{"short hint", 21 * time.Second, 21 * time.Second},
		{"hint above ceiling", 20 * time.Minute, config.MaxRetryWait},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := &apiError{class: classQuotaMinute, retryAfter: tc.hint, hasRetry: tc.hint > 0}
			got := retryHint(err, config.DefaultRetryWait, config.MaxRetryWait)
			if got != tc.want {
				t.Fatalf("retryHint = %v; want %v", got, tc.want)
			}
		})
	}
}

func TestDayQuotaRemovesCredentialForRun(t *testing.T) {
	calls := []string{}
	responses := map[string]error{
		"k1": &apiError{class: classQuotaDay, status: 429, msg: "daily limit"},
	}
	c, _ := newTestCurator(t, []string{"k1", "k2"}, func(ctx context.Context, key, prompt string) (string, error) {
		calls = append(calls, key)
		if err := responses[key]; err != nil {
			return "", err
		}
		return "false", nil
	})

	// First article: k1 fails on day quota, k2 serves.
	if _, err := c.generate(context.Background(), "p"); err != nil {
		t.Fatalf("generate: %v", err)
	}
	// Second article: k1 must not be tried again this run.
	if _, err := c.generate(context.Background(), "p"); err != nil {
		t.Fatalf("generate: %v", err)
	}

	want := []string{"k1", "k2", "k2"}
	if len(calls) != len(want) {
		t.Fatalf("calls = %v; want %v", calls, want)
	}
	for i := range want {
		if calls[i] != want[i] {
			t.Fatalf("calls = %v; want %v", calls, want)
		}
	}
}

func TestAllCredentialsInvalidIsExhaustion(t *testing.T) {
	c, _ := newTestCurator(t, []string{"k1", "k2"}, func(ctx context.Context, key, prompt string) (string, error) {
		return "", &apiError{class: classInvalidKey, status: 403, msg: "key expired"}
	})

	_, err := c.Evaluate(context.Background(), testArticle())
	if !errors.Is(err, ErrExhausted) {
		t.Fatalf("Evaluate error = %v; want ErrExhausted", err)
	}

	// Once exhausted, subsequent calls fail fast without remote attempts.
	_, err = c.Evaluate(context.Background(), testArticle())
	if !errors.Is(err, ErrExhausted) {
		t.Fatalf("second Evaluate error = %v; want ErrExhausted", err)
	}
}

func TestTransientFailureIsAbsorbedNotFatal(t *testing.T) {
	c, _ := newTestCurator(t, []string{"k1"}, func(ctx context.Context, key, prompt string) (string, error) {
		return "", &apiError{class: classTransient, status: 503, msg: "unavailable"}
	})

	relevant, err := c.Evaluate(context.Background(), testArticle())
	if err != nil {
		t.Fatalf("transient failures must not surface: %v", err)
	}
	if relevant {
		t.Fatal("failed evaluation must default to not relevant")
	}

	// The credential is not penalized: next call still tries it.
	tried := false
	c.call = func(ctx context.Context, key, prompt string) (string, error) {
		tried = true
		return "true", nil
	}
	if _, err := c.Evaluate(context.Background(), testArticle()); err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if !tried {
		t.Fatal("credential was penalized after a transient failure")
	}
}

func TestEnrichmentNeverBlocksRelevance(t *testing.T) {
	c, _ := newTestCurator(t, []string{"k1"}, func(ctx context.Context, key, prompt string) (string, error) {
		return "true", nil
	})

	relevant, err := c.Evaluate(context.Background(), testArticle())
	if err != nil || !relevant {
		t.Fatalf("Evaluate = (%v, %v); want (true, nil)", relevant, err)
	}

	c.call = func(ctx context.Context, key, prompt string) (string, error) {
		return "{broken json", nil
	}
	e := c.Enrich(context.Background(), testArticle())
	if e.WhyItMatters != "" || len(e.ActivationIdeas) != 0 {
		t.Fatalf("malformed enrichment must yield empty result, got %+v", e)
	}

	c.call = func(ctx context.Context, key, prompt string) (string, error) {
		return "", &apiError{class: classQuotaDay, status: 429, msg: "daily limit"}
	}
	e = c.Enrich(context.Background(), testArticle())
	if e.WhyItMatters != "" || len(e.ActivationIdeas) != 0 {
		t.Fatalf("failed enrichment must yield empty result, got %+v", e)
	}
}

func TestCoolingCredentialRecoversAfterWindow(t *testing.T) {
	now := time.Now()
	c, _ := newTestCurator(t, []string{"k1"}, nil)
	c.now = func() time.Time { return now }

	calls := 0
	c.call = func(ctx context.Context, key, prompt string) (string, error) {
		calls++
		return "", &apiError{class: classQuotaMinute, status: 429, msg: "rate limited"}
	}

	if _, err := c.generate(context.Background(), "p"); !errors.Is(err, ErrExhausted) {
		t.Fatalf("generate error = %v; want ErrExhausted while cooling", err)
	}
	if calls != config.AttemptsPerKey {
		t.Fatalf("calls = %d; want %d", calls, config.AttemptsPerKey)
	}

	// After the cooldown window passes the key rejoins the rotation.
	now = now.Add(config.MaxRetryWait + time.Second)
	c.call = func(ctx context.Context, key, prompt string) (string, error) {
		return "false", nil
	}
	if _, err := c.generate(context.Background(), "p"); err != nil {
		t.Fatalf("generate after cooldown: %v", err)
	}
}

func TestNewRequiresCredentials(t *testing.T) {
	if _, err := New(config.Config{}); err == nil {
		t.Fatal("New must fail without API keys")
	}
}
