package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultKalshiURL    = "https://api.elections.kalshi.com/trade-api/v2"
	DefaultAPITimeout   = 30 * time.Second
	DefaultSeriesTicker = "KXNFLGAME"
	DefaultMinYesAsk    = 90
	DefaultMaxYesAsk    = 99
	DefaultTimezone     = "America/Denver"
	DefaultFeeRate      = "0.07"
	DefaultDBPort       = 5432
	DefaultDBSSLMode    = "prefer"
	DefaultMaxConns     = 4
	DefaultMinConns     = 1
	DefaultCFBDURL      = "https://api.collegefootballdata.com"
	DefaultNotifyLead   = 30 * time.Minute
)

// DefaultTradingDays is the weekday window for the strategy job.
var DefaultTradingDays = []string{"Thursday", "Friday", "Saturday"}

func (c *Config) applyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}

	if c.Kalshi.BaseURL == "" {
		c.Kalshi.BaseURL = DefaultKalshiURL
	}
	if c.Kalshi.Timeout == 0 {
		c.Kalshi.Timeout = DefaultAPITimeout
	}

	if c.Strategy.SeriesTicker == "" {
		c.Strategy.SeriesTicker = DefaultSeriesTicker
	}
	if c.Strategy.MinYesAsk == 0 {
		c.Strategy.MinYesAsk = DefaultMinYesAsk
	}
	if c.Strategy.MaxYesAsk == 0 {
		c.Strategy.MaxYesAsk = DefaultMaxYesAsk
	}
	if len(c.Strategy.TradingDays) == 0 {
		c.Strategy.TradingDays = DefaultTradingDays
	}
	if c.Strategy.Timezone == "" {
		c.Strategy.Timezone = DefaultTimezone
	}
	if c.Strategy.FeeRate == "" {
		c.Strategy.FeeRate = DefaultFeeRate
	}

	if c.Database.Port == 0 {
		c.Database.Port = DefaultDBPort
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = DefaultDBSSLMode
	}
	if c.Database.MaxConns == 0 {
		c.Database.MaxConns = DefaultMaxConns
	}
	if c.Database.MinConns == 0 {
		c.Database.MinConns = DefaultMinConns
	}

	if c.CFBD.BaseURL == "" {
		c.CFBD.BaseURL = DefaultCFBDURL
	}

	if c.Notify.Lead == 0 {
		c.Notify.Lead = DefaultNotifyLead
	}
	if c.Notify.Channel == "" {
		c.Notify.Channel = "testing"
	}
}
