package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var weekdays = map[string]time.Weekday{
	"Sunday":    time.Sunday,
	"Monday":    time.Monday,
	"Tuesday":   time.Tuesday,
	"Wednesday": time.Wednesday,
	"Thursday":  time.Thursday,
	"Friday":    time.Friday,
	"Saturday":  time.Saturday,
}

// Validate checks that values are internally consistent. Credentials are
// checked lazily by the job that needs them, so that read-only jobs can run
// without trading keys.
func (c *Config) Validate() error {
	if c.Strategy.MinYesAsk < 1 || c.Strategy.MinYesAsk > 99 {
		return fmt.Errorf("strategy.min_yes_ask must be between 1 and 99, got %d", c.Strategy.MinYesAsk)
	}
	if c.Strategy.MaxYesAsk < 1 || c.Strategy.MaxYesAsk > 99 {
		return fmt.Errorf("strategy.max_yes_ask must be between 1 and 99, got %d", c.Strategy.MaxYesAsk)
	}
	if c.Strategy.MinYesAsk > c.Strategy.MaxYesAsk {
		return fmt.Errorf("strategy.min_yes_ask (%d) cannot exceed max_yes_ask (%d)",
			c.Strategy.MinYesAsk, c.Strategy.MaxYesAsk)
	}

	if _, err := c.Strategy.TradingWeekdays(); err != nil {
		return err
	}
	if _, err := c.Strategy.Location(); err != nil {
		return err
	}
	if _, err := c.Strategy.Fee(); err != nil {
		return err
	}

	if c.Database.Port < 1 || c.Database.Port > 65535 {
		return fmt.Errorf("database.port must be between 1 and 65535, got %d", c.Database.Port)
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns (%d) cannot exceed max_conns (%d)",
			c.Database.MinConns, c.Database.MaxConns)
	}

	switch c.Notify.Channel {
	case "testing", "general":
	default:
		return fmt.Errorf("notify.channel must be testing or general, got %q", c.Notify.Channel)
	}

	return nil
}

// TradingWeekdays parses the configured trading day names.
func (s StrategyConfig) TradingWeekdays() (map[time.Weekday]bool, error) {
	days := make(map[time.Weekday]bool, len(s.TradingDays))
	for _, name := range s.TradingDays {
		day, ok := weekdays[name]
		if !ok {
			return nil, fmt.Errorf("strategy.trading_days: unknown weekday %q", name)
		}
		days[day] = true
	}
	return days, nil
}

// Location loads the configured reference timezone.
func (s StrategyConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, fmt.Errorf("strategy.timezone: %w", err)
	}
	return loc, nil
}

// Fee parses the configured fee rate as a decimal.
func (s StrategyConfig) Fee() (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(s.FeeRate)
	if err != nil {
		return decimal.Zero, fmt.Errorf("strategy.fee_rate: %w", err)
	}
	if rate.IsNegative() {
		return decimal.Zero, errors.New("strategy.fee_rate cannot be negative")
	}
	return rate, nil
}
