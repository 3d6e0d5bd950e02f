package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/nt-labs/gameday/internal/model"
)

// WriteMarkets appends an open-market snapshot, one row per market, with
// the estimated start time derived from the expected expiration.
func (s *Store) WriteMarkets(ctx context.Context, markets []model.Market, capturedAt time.Time) error {
	batch := &pgx.Batch{}
	for _, m := range markets {
		batch.Queue(`
			INSERT INTO open_markets (ticker, event_ticker, title, yes_subtitle, expected_expiration, estimated_start, captured_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, m.Ticker, m.EventTicker, m.Title, m.YesSubtitle, m.ExpectedExpiration, m.EstimatedStart(), capturedAt)
	}

	results := s.pool.SendBatch(ctx, batch)
	for range markets {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("insert market: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("close batch: %w", err)
	}

	return nil
}
