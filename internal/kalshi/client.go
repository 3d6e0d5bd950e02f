package kalshi

import (
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/nt-labs/gameday/internal/auth"
)

// Client provides access to the Kalshi REST API. All requests are signed
// with the credentials supplied at construction.
type Client struct {
	baseURL    string
	creds      *auth.Credentials
	httpClient *http.Client
	logger     *slog.Logger

	// Kalshi rate-limits reads and writes separately.
	readLimiter  *rate.Limiter
	writeLimiter *rate.Limiter
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates a new REST API client.
func NewClient(baseURL string, creds *auth.Credentials, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		creds:   creds,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger:       slog.Default(),
		readLimiter:  rate.NewLimiter(rate.Limit(10), 10),
		writeLimiter: rate.NewLimiter(rate.Limit(5), 5),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRateLimits overrides the per-second read and write request limits.
func WithRateLimits(read, write float64) ClientOption {
	return func(c *Client) {
		c.readLimiter = rate.NewLimiter(rate.Limit(read), int(read))
		c.writeLimiter = rate.NewLimiter(rate.Limit(write), int(write))
	}
}
