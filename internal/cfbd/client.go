// Package cfbd provides a read-only client for the College Football Data
// API (api.collegefootballdata.com).
package cfbd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/nt-labs/gameday/internal/model"
)

// APIError represents a non-success response from the CFBD API.
type APIError struct {
	StatusCode int
	Body       []byte
}

func (e *APIError) Error() string {
	return fmt.Sprintf("cfbd api error %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Client provides access to the CFBD REST API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates a new CFBD client.
func NewClient(baseURL, apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// GameMedia is the wire form of a game broadcast record.
type GameMedia struct {
	Season         int    `json:"season"`
	Week           int    `json:"week"`
	StartTime      string `json:"startTime"`
	IsStartTimeTBD bool   `json:"isStartTimeTBD"`
	HomeTeam       string `json:"homeTeam"`
	AwayTeam       string `json:"awayTeam"`
}

// Game converts the wire record to the domain type, parsing the start time
// as UTC.
func (g GameMedia) Game() (model.Game, error) {
	start, err := time.Parse(time.RFC3339, g.StartTime)
	if err != nil {
		return model.Game{}, fmt.Errorf("parse startTime %q: %w", g.StartTime, err)
	}

	return model.Game{
		Season:       g.Season,
		Week:         g.Week,
		StartTime:    start.UTC(),
		StartTimeTBD: g.IsStartTimeTBD,
		HomeTeam:     g.HomeTeam,
		AwayTeam:     g.AwayTeam,
	}, nil
}

// GetGameSchedule fetches broadcast records for a season year.
func (c *Client) GetGameSchedule(ctx context.Context, year int) ([]GameMedia, error) {
	query := url.Values{}
	query.Set("year", strconv.Itoa(year))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/games/media?"+query.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: body}
	}

	var games []GameMedia
	if err := json.Unmarshal(body, &games); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	c.logger.Debug("fetched game schedule", "year", year, "records", len(games))

	return games, nil
}
