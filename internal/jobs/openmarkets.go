package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nt-labs/gameday/internal/kalshi"
	"github.com/nt-labs/gameday/internal/store"
)

// OpenMarkets snapshots every open market into the open_markets table.
func OpenMarkets(ctx context.Context, client *kalshi.Client, st *store.Store, logger *slog.Logger) error {
	markets, err := client.GetOpenMarkets(ctx, "")
	if err != nil {
		return fmt.Errorf("fetch open markets: %w", err)
	}

	if err := st.WriteMarkets(ctx, markets, time.Now().UTC()); err != nil {
		return fmt.Errorf("write markets: %w", err)
	}

	logger.Info("open markets snapshot written", "markets", len(markets))

	return nil
}
