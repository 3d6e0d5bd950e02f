package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/nt-labs/gameday/internal/cfbd"
	"github.com/nt-labs/gameday/internal/model"
	"github.com/nt-labs/gameday/internal/store"
)

// DailySchedule fetches the season schedule, keeps today's games in the
// reference timezone, and replaces the staged schedule table with them.
func DailySchedule(ctx context.Context, client *cfbd.Client, st *store.Store, season int, loc *time.Location, logger *slog.Logger) error {
	records, err := client.GetGameSchedule(ctx, season)
	if err != nil {
		return fmt.Errorf("fetch game schedule: %w", err)
	}

	now := time.Now()
	games, err := TodaysGames(records, now, loc)
	if err != nil {
		return err
	}

	if err := st.StageGames(ctx, games, now.In(loc)); err != nil {
		return fmt.Errorf("stage games: %w", err)
	}

	logger.Info("schedule staged", "season", season, "records", len(records), "games_today", len(games))

	return nil
}

// TodaysGames converts wire records to games starting today in the given
// location, deduplicated and sorted by start time.
func TodaysGames(records []cfbd.GameMedia, now time.Time, loc *time.Location) ([]model.Game, error) {
	y, m, d := now.In(loc).Date()

	seen := make(map[model.Game]bool)
	var games []model.Game
	for _, r := range records {
		g, err := r.Game()
		if err != nil {
			return nil, err
		}

		gy, gm, gd := g.StartTime.In(loc).Date()
		if gy != y || gm != m || gd != d {
			continue
		}
		if seen[g] {
			continue
		}
		seen[g] = true
		games = append(games, g)
	}

	sort.Slice(games, func(i, j int) bool {
		return games[i].StartTime.Before(games[j].StartTime)
	})

	return games, nil
}
