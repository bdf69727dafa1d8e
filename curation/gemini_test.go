package curation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/narek-arsh/aura-trends-dashboard/config"
)

func TestClassifyHTTP(t *testing.T) {
	cases := []struct {
		name      string
		status    int
		body      string
		wantClass failureClass
		wantRetry time.Duration
	}{
		{
			"per-minute quota with retry info",
			429,
			`{"error":{"code":429,"status":"RESOURCE_EXHAUSTED","message":"Resource has been exhausted",
			"details":[{"@type":"type.googleapis.com/google.rpc.RetryInfo","retryDelay":"21s"}]}}`,
			classQuotaMinute, 21 * time.Second,
		},
		{
			"per-day quota",
			429,
			`{"error":{"code":429,"status":"RESOURCE_EXHAUSTED","message":"Quota exceeded",
			"details":[{"@type":"type.googleapis.com/google.rpc.QuotaFailure",
			"violations":[{"quotaId":"GenerateRequestsPerDayPerProjectPerModel-FreeTier"}]}]}}`,
			classQuotaDay, 0,
		},
		{"bare 429 defaults to per-minute", 429, `rate limited`, classQuotaMinute, 0},
		{"forbidden key", 403, `{"error":{"code":403,"message":"PERMISSION_DENIED"}}`, classInvalidKey, 0},
		{"bad api key", 400, `{"error":{"code":400,"message":"API key not valid. Please pass a valid API key."}}`, classInvalidKey, 0},
		{"other bad request", 400, `{"error":{"code":400,"message":"invalid argument"}}`, classUnknown, 0},
		{"service unavailable", 503, `upstream down`, classTransient, 0},
		{"internal error", 500, `{"error":{"code":500,"message":"internal"}}`, classTransient, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ae := classifyHTTP(c.status, []byte(c.body))
			if ae.class != c.wantClass {
				t.Fatalf("class = %v; want %v", ae.class, c.wantClass)
			}
			if c.wantRetry > 0 {
				if !ae.hasRetry || ae.retryAfter != c.wantRetry {
					t.Fatalf("retryAfter = (%v, %v); want %v", ae.retryAfter, ae.hasRetry, c.wantRetry)
				}
			}
		})
	}
}

func TestGeminiCallParsesCandidateText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("key") != "test-key" {
			t.Errorf("missing key query param, got %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"tr"},{"text":"ue"}]}}]}`))
	}))
	defer srv.Close()

	cfg := config.Config{
		APIKeys:      []string{"test-key"},
		CallInterval: time.Millisecond,
		Model:        config.DefaultModel,
		Endpoint:     srv.URL,
	}
	c, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	text, err := c.geminiCall(context.Background(), "test-key", "¿relevante?")
	if err != nil {
		t.Fatalf("geminiCall: %v", err)
	}
	if text != "true" {
		t.Fatalf("text = %q; want %q", text, "true")
	}
}

func TestGeminiCallClassifiesErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"code":429,"message":"slow down"}}`))
	}))
	defer srv.Close()

	cfg := config.Config{
		APIKeys:      []string{"k"},
		CallInterval: time.Millisecond,
		Model:        config.DefaultModel,
		Endpoint:     srv.URL,
	}
	c, _ := New(cfg)

	_, err := c.geminiCall(context.Background(), "k", "p")
	if err == nil {
		t.Fatal("expected error")
	}
	if classify(err) != classQuotaMinute {
		t.Fatalf("classify = %v; want %v", classify(err), classQuotaMinute)
	}
}
