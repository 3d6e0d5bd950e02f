package model

import "time"

// Market is a read-only snapshot of an open Kalshi market, fetched fresh
// each run. No history is persisted for trading decisions.
type Market struct {
	Ticker             string    // Primary key (e.g., "KXNFLGAME-25SEP04DALPHI-PHI")
	EventTicker        string    // Groups related markets (e.g., "KXNFLGAME-25SEP04DALPHI")
	Title              string    // Display title
	YesSubtitle        string    // Display subtitle for the yes side
	YesAsk             int       // Best yes ask price in cents
	ExpectedExpiration time.Time // Expected expiration (UTC)
}

// EstimatedStart approximates kickoff as three hours before the market's
// expected expiration.
func (m Market) EstimatedStart() time.Time {
	return m.ExpectedExpiration.Add(-3 * time.Hour)
}

// ExpiresOn reports whether the market's expected expiration falls on the
// given date in the given location.
func (m Market) ExpiresOn(date time.Time, loc *time.Location) bool {
	y1, m1, d1 := m.ExpectedExpiration.In(loc).Date()
	y2, m2, d2 := date.In(loc).Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// Game is one row of the staged game schedule.
type Game struct {
	Season       int
	Week         int
	StartTime    time.Time // UTC
	StartTimeTBD bool
	HomeTeam     string
	AwayTeam     string
}
