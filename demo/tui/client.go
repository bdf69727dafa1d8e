package tui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/narek-arsh/aura-trends-dashboard/types"
)

// DashboardClient is a thin HTTP client for the dashboard API
type DashboardClient struct {
	baseURL string
	client  *http.Client
}

// NewDashboardClient creates a new dashboard client
func NewDashboardClient(baseURL string) *DashboardClient {
	return &DashboardClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

type trendListResponse struct {
	Trends []types.Trend `json:"trends"`
	Count  int           `json:"count"`
}

type categoriesResponse struct {
	Categories []string `json:"categories"`
}

type toggleResponse struct {
	Saved bool   `json:"saved"`
	Key   string `json:"key"`
}

// GetTrends fetches the curated trends for a category. An empty
// category returns everything.
func (c *DashboardClient) GetTrends(category string) ([]types.Trend, error) {
	url := c.baseURL + "/api/trends"
	if category != "" {
		url += "?category=" + category
	}

	resp, err := c.client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to get trends: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
	}

	var list trendListResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return list.Trends, nil
}

// GetCategories fetches the category tabs from the server.
func (c *DashboardClient) GetCategories() ([]string, error) {
	resp, err := c.client.Get(c.baseURL + "/api/trends/categories")
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
	}

	var cats categoriesResponse
	if err := json.NewDecoder(resp.Body).Decode(&cats); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return cats.Categories, nil
}

// GetSaved fetches the full saved list.
func (c *DashboardClient) GetSaved() ([]types.Trend, error) {
	resp, err := c.client.Get(c.baseURL + "/api/saved")
	if err != nil {
		return nil, fmt.Errorf("failed to get saved list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
	}

	var list trendListResponse
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return list.Trends, nil
}

// ToggleSave flips the saved state of a trend on the server.
func (c *DashboardClient) ToggleSave(t types.Trend) (bool, error) {
	payload, err := json.Marshal(map[string]types.Trend{"trend": t})
	if err != nil {
		return false, err
	}

	resp, err := c.client.Post(c.baseURL+"/api/saved/toggle", "application/json", bytes.NewReader(payload))
	if err != nil {
		return false, fmt.Errorf("failed to toggle save: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return false, fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
	}

	var result toggleResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, fmt.Errorf("failed to decode response: %w", err)
	}
	return result.Saved, nil
}

// Refresh asks the server to run a fetch-and-curate pass.
func (c *DashboardClient) Refresh() error {
	resp, err := c.client.Post(c.baseURL+"/api/probe/refresh", "application/json", bytes.NewReader([]byte("{}")))
	if err != nil {
		return fmt.Errorf("failed to trigger refresh: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted && resp.StatusCode != http.StatusConflict {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
