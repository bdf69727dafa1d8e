package curation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const httpTimeout = 30 * time.Second

// generateRequest is the minimal generateContent payload
type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// googleError mirrors the standard Google API error envelope, including the
// detail entries used to tell per-minute from per-day quota failures.
type googleError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
		Details []struct {
			Type       string `json:"@type"`
			RetryDelay string `json:"retryDelay,omitempty"`
			Violations []struct {
				QuotaID     string `json:"quotaId,omitempty"`
				Description string `json:"description,omitempty"`
			} `json:"violations,omitempty"`
		} `json:"details,omitempty"`
	} `json:"error"`
}

// geminiCall performs one generateContent request with the given credential
// and returns the concatenated candidate text. All failures come back as
// *apiError so the rotation logic can classify them.
func (c *Curator) geminiCall(ctx context.Context, key, prompt string) (string, error) {
	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		strings.TrimRight(c.endpoint, "/"), c.model, url.QueryEscape(key))

	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", &apiError{class: classUnknown, cause: fmt.Errorf("marshal request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &apiError{class: classUnknown, cause: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &apiError{class: classTransient, cause: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", &apiError{class: classTransient, cause: err}
	}

	if resp.StatusCode != http.StatusOK {
		return "", classifyHTTP(resp.StatusCode, raw)
	}

	var gr generateResponse
	if err := json.Unmarshal(raw, &gr); err != nil {
		return "", &apiError{class: classUnknown, cause: fmt.Errorf("decode response: %w", err)}
	}
	if len(gr.Candidates) == 0 {
		return "", &apiError{class: classUnknown, status: resp.StatusCode, msg: "no candidates in response"}
	}

	var sb strings.Builder
	for _, p := range gr.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String(), nil
}

// classifyHTTP maps a non-200 response to a failure class. 429 responses
// are split into per-day and per-minute quota errors by inspecting the
// QuotaFailure violations; RetryInfo supplies the suggested wait.
func classifyHTTP(status int, body []byte) *apiError {
	ae := &apiError{status: status, msg: strings.TrimSpace(string(body))}

	var ge googleError
	if err := json.Unmarshal(body, &ge); err == nil && ge.Error.Message != "" {
		ae.msg = ge.Error.Message
	}

	switch {
	case status == http.StatusTooManyRequests:
		ae.class = classQuotaMinute
		for _, d := range ge.Error.Details {
			for _, v := range d.Violations {
				id := strings.ToLower(v.QuotaID + " " + v.Description)
				if strings.Contains(id, "perday") || strings.Contains(id, "per day") {
					ae.class = classQuotaDay
				}
			}
			if d.RetryDelay != "" {
				if wait, err := time.ParseDuration(d.RetryDelay); err == nil && wait > 0 {
					ae.retryAfter = wait
					ae.hasRetry = true
				}
			}
		}
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		ae.class = classInvalidKey
	case status == http.StatusBadRequest && strings.Contains(strings.ToLower(ae.msg), "api key"):
		ae.class = classInvalidKey
	case status >= 500:
		ae.class = classTransient
	default:
		ae.class = classUnknown
	}
	return ae
}
