// Package strategy implements the equal-weight same-day trading strategy.
//
// One invocation performs a single fetch-allocate-submit cycle: filter open
// markets to those priced in the configured band and expiring today, split
// the portfolio balance equally across them, size each position under the
// exchange fee, and submit one buy order per market. The strategy keeps no
// state between runs; duplicate-fill protection relies entirely on unique
// client order IDs.
package strategy
