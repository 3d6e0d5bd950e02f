package kalshi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/nt-labs/gameday/internal/model"
)

// MarketsResponse from GET /markets.
type MarketsResponse struct {
	Markets []APIMarket `json:"markets"`
	Cursor  string      `json:"cursor"`
}

// APIMarket is the wire form of a market from the Kalshi API.
type APIMarket struct {
	Ticker      string `json:"ticker"`
	EventTicker string `json:"event_ticker"`
	Title       string `json:"title"`
	YesSubtitle string `json:"yes_sub_title"`
	Status      string `json:"status"`

	// Prices in cents
	YesBid    int `json:"yes_bid"`
	YesAsk    int `json:"yes_ask"`
	NoBid     int `json:"no_bid"`
	NoAsk     int `json:"no_ask"`
	LastPrice int `json:"last_price"`

	// Timestamps (ISO 8601, UTC, second precision)
	OpenTime               string `json:"open_time"`
	CloseTime              string `json:"close_time"`
	ExpectedExpirationTime string `json:"expected_expiration_time"`
}

// GetMarketsOptions configures a GetMarkets request.
type GetMarketsOptions struct {
	Limit        int
	Cursor       string
	EventTicker  string
	SeriesTicker string
	Tickers      []string
	Status       string
}

// GetMarkets fetches a page of markets.
func (c *Client) GetMarkets(ctx context.Context, opts GetMarketsOptions) (*MarketsResponse, error) {
	query := url.Values{}

	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Cursor != "" {
		query.Set("cursor", opts.Cursor)
	}
	if opts.EventTicker != "" {
		query.Set("event_ticker", opts.EventTicker)
	}
	if opts.SeriesTicker != "" {
		query.Set("series_ticker", opts.SeriesTicker)
	}
	if len(opts.Tickers) > 0 {
		query.Set("tickers", strings.Join(opts.Tickers, ","))
	}
	if opts.Status != "" {
		query.Set("status", opts.Status)
	}

	var resp MarketsResponse
	if err := c.get(ctx, "/markets", query, &resp); err != nil {
		return nil, fmt.Errorf("get markets: %w", err)
	}

	return &resp, nil
}

// GetOpenMarkets fetches every open market, optionally filtered by series
// ticker, paginating through all result pages.
func (c *Client) GetOpenMarkets(ctx context.Context, seriesTicker string) ([]model.Market, error) {
	opts := GetMarketsOptions{
		Limit:        1000, // Max page size
		SeriesTicker: seriesTicker,
		Status:       "open",
	}

	var markets []model.Market
	for {
		resp, err := c.GetMarkets(ctx, opts)
		if err != nil {
			return nil, err
		}

		for _, m := range resp.Markets {
			converted, err := convertMarket(m)
			if err != nil {
				return nil, fmt.Errorf("market %s: %w", m.Ticker, err)
			}
			markets = append(markets, converted)
		}

		if resp.Cursor == "" {
			break
		}
		opts.Cursor = resp.Cursor
	}

	return markets, nil
}

// convertMarket maps a wire market to the domain type, parsing the
// expected expiration timestamp as UTC.
func convertMarket(m APIMarket) (model.Market, error) {
	expiration, err := time.Parse(time.RFC3339, m.ExpectedExpirationTime)
	if err != nil {
		return model.Market{}, fmt.Errorf("parse expected_expiration_time %q: %w", m.ExpectedExpirationTime, err)
	}

	return model.Market{
		Ticker:             m.Ticker,
		EventTicker:        m.EventTicker,
		Title:              m.Title,
		YesSubtitle:        m.YesSubtitle,
		YesAsk:             m.YesAsk,
		ExpectedExpiration: expiration.UTC(),
	}, nil
}
