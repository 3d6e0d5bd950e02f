package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nt-labs/gameday/internal/slack"
	"github.com/nt-labs/gameday/internal/store"
)

// Notify schedules a Slack alert ahead of each of today's games. Games with
// a TBD start time are skipped, as are games whose notification time has
// already passed.
func Notify(ctx context.Context, st *store.Store, notifier *slack.Notifier, ch slack.Channel, lead time.Duration, loc *time.Location, logger *slog.Logger) error {
	now := time.Now()

	games, err := st.GamesOn(ctx, now, loc)
	if err != nil {
		return fmt.Errorf("read schedule: %w", err)
	}

	scheduled := 0
	for _, game := range games {
		if game.StartTimeTBD {
			continue
		}

		notifyAt := game.StartTime.Add(-lead)
		if notifyAt.Before(now) {
			continue
		}

		text := fmt.Sprintf("Alert: %s vs. %s starts in %d minutes!",
			game.HomeTeam, game.AwayTeam, int(lead.Minutes()))

		if err := notifier.ScheduleMessage(ctx, ch, text, notifyAt); err != nil {
			return fmt.Errorf("schedule notification for %s vs. %s: %w", game.HomeTeam, game.AwayTeam, err)
		}
		scheduled++
	}

	logger.Info("game notifications scheduled", "games", len(games), "scheduled", scheduled)

	return nil
}
