// Package model defines shared data types used across the gameday jobs.
//
// Conventions:
//   - Prices: integer cents (1-99 for a tradeable yes contract)
//   - Dollar amounts: decimal.Decimal, never float64
//   - Timestamps: time.Time in UTC unless a method converts explicitly
package model
