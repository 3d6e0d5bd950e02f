// Package jobs contains the cron entry points. Each job performs one
// fetch-transform-sink cycle and returns; scheduling and single-instance
// guarantees come from the external cron trigger.
package jobs
