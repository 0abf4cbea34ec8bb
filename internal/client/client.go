// Package client is a small HTTP client for the portfolio API.
package client

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

	"github.com/dafibh/fortuna/portfolio-backend/internal/handler"
)

// APIError is a non-2xx response decoded from problem details
type APIError struct {
	Status  int
	Problem handler.ProblemDetails
}

func (e *APIError) Error() string {
	if e.Problem.Detail != "" {
		return fmt.Sprintf("api: %d %s: %s", e.Status, e.Problem.Title, e.Problem.Detail)
	}
	return fmt.Sprintf("api: %d %s", e.Status, http.StatusText(e.Status))
}

// Client calls the /api/v1 endpoints with a bearer token
type Client struct {
	baseURL    string
	token      string
	timezone   string
	httpClient *http.Client
}

// New creates a Client for baseURL, e.g. http://localhost:8080
func New(baseURL, token string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/") + "/api/v1",
		token:      token,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// WithTimezone sends an IANA time zone name with every request so the
// greeting matches the caller's local time
func (c *Client) WithTimezone(name string) *Client {
	c.timezone = name
	return c
}

// WithHTTPClient replaces the underlying http.Client
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	c.httpClient = hc
	return c
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if c.timezone != "" {
		req.Header.Set(handler.TimezoneHeader, c.timezone)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr.Problem)
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s: %w", method, path, err)
	}
	return nil
}

// Dashboard fetches the dashboard; an empty timeRange uses the saved one
func (c *Client) Dashboard(ctx context.Context, timeRange string) (*handler.DashboardResponse, error) {
	path := "/dashboard"
	if timeRange != "" {
		path += "?timeRange=" + url.QueryEscape(timeRange)
	}
	var out handler.DashboardResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TimeRanges lists the selectable time ranges
func (c *Client) TimeRanges(ctx context.Context) ([]handler.TimeRangeResponse, error) {
	var out []handler.TimeRangeResponse
	if err := c.do(ctx, http.MethodGet, "/dashboard/time-ranges", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Settings fetches the workspace settings
func (c *Client) Settings(ctx context.Context) (*handler.SettingsResponse, error) {
	var out handler.SettingsResponse
	if err := c.do(ctx, http.MethodGet, "/settings", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateSettings applies a partial settings update
func (c *Client) UpdateSettings(ctx context.Context, req handler.UpdateSettingsRequest) (*handler.SettingsResponse, error) {
	var out handler.SettingsResponse
	if err := c.do(ctx, http.MethodPut, "/settings", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SelectTimeRange persists the selected time range
func (c *Client) SelectTimeRange(ctx context.Context, key string) error {
	_, err := c.UpdateSettings(ctx, handler.UpdateSettingsRequest{SelectedTimeRange: &key})
	return err
}

// DismissBanner hides a banner for the workspace
func (c *Client) DismissBanner(ctx context.Context, bannerID string) error {
	return c.do(ctx, http.MethodPost, "/banners/"+url.PathEscape(bannerID)+"/dismiss", nil, nil)
}

// Account fetches one account with its operations
func (c *Client) Account(ctx context.Context, id string) (*handler.AccountResponse, error) {
	var out handler.AccountResponse
	if err := c.do(ctx, http.MethodGet, "/accounts/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
