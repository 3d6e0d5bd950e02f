package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/nt-labs/gameday/internal/model"
)

// StageGames replaces the schedule table with the given games inside a
// single transaction, stamping each row with the update date.
func (s *Store) StageGames(ctx context.Context, games []model.Game, updateDate time.Time) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM schedule`); err != nil {
		return fmt.Errorf("clear schedule: %w", err)
	}

	batch := &pgx.Batch{}
	for _, g := range games {
		batch.Queue(`
			INSERT INTO schedule (season, week, start_time, start_time_tbd, home_team, away_team, last_update_date)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, g.Season, g.Week, g.StartTime, g.StartTimeTBD, g.HomeTeam, g.AwayTeam, updateDate)
	}

	results := tx.SendBatch(ctx, batch)
	for range games {
		if _, err := results.Exec(); err != nil {
			results.Close()
			return fmt.Errorf("insert game: %w", err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("close batch: %w", err)
	}

	return tx.Commit(ctx)
}

// GamesOn reads schedule rows whose start time falls on the given date in
// the given location, sorted by start time.
func (s *Store) GamesOn(ctx context.Context, date time.Time, loc *time.Location) ([]model.Game, error) {
	local := date.In(loc)
	dayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	rows, err := s.pool.Query(ctx, `
		SELECT season, week, start_time, start_time_tbd, home_team, away_team
		FROM schedule
		WHERE start_time >= $1 AND start_time < $2
		ORDER BY start_time
	`, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("query schedule: %w", err)
	}
	defer rows.Close()

	var games []model.Game
	for rows.Next() {
		var g model.Game
		if err := rows.Scan(&g.Season, &g.Week, &g.StartTime, &g.StartTimeTBD, &g.HomeTeam, &g.AwayTeam); err != nil {
			return nil, fmt.Errorf("scan game: %w", err)
		}
		g.StartTime = g.StartTime.UTC()
		games = append(games, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read schedule: %w", err)
	}

	return games, nil
}
