package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration shared by all gameday jobs.
type Config struct {
	Log      LogConfig      `yaml:"log"`
	Kalshi   KalshiConfig   `yaml:"kalshi"`
	Strategy StrategyConfig `yaml:"strategy"`
	Database DBConfig       `yaml:"database"`
	Slack    SlackConfig    `yaml:"slack"`
	CFBD     CFBDConfig     `yaml:"cfbd"`
	Notify   NotifyConfig   `yaml:"notify"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// KalshiConfig holds Kalshi API settings. Exactly one private key source
// must be set for jobs that talk to the exchange.
type KalshiConfig struct {
	BaseURL        string        `yaml:"base_url"`
	AccessKey      string        `yaml:"access_key"`       // API key ID (KALSHI-ACCESS-KEY header)
	PrivateKeyPath string        `yaml:"private_key_path"` // path to RSA private key PEM file
	PrivateKeyPEM  string        `yaml:"private_key_pem"`  // inline PEM, usually ${KALSHI_PRIVATE_KEY}
	Timeout        time.Duration `yaml:"timeout"`
}

// StrategyConfig holds trading strategy policy.
type StrategyConfig struct {
	SeriesTicker string   `yaml:"series_ticker"`
	MinYesAsk    int      `yaml:"min_yes_ask"` // inclusive, cents
	MaxYesAsk    int      `yaml:"max_yes_ask"` // inclusive, cents
	TradingDays  []string `yaml:"trading_days"`
	Timezone     string   `yaml:"timezone"`
	FeeRate      string   `yaml:"fee_rate"` // decimal string, e.g. "0.07"
}

// DBConfig holds the Postgres connection.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int    `yaml:"max_conns"`
	MinConns int    `yaml:"min_conns"`
}

// SlackConfig holds the Slack bot token and channel IDs.
type SlackConfig struct {
	Token    string        `yaml:"token"`
	Channels SlackChannels `yaml:"channels"`
}

// SlackChannels maps logical channels to Slack channel IDs.
type SlackChannels struct {
	Testing string `yaml:"testing"`
	General string `yaml:"general"`
}

// CFBDConfig holds the college football data API settings.
type CFBDConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Season  int    `yaml:"season"`
}

// NotifyConfig holds game notification settings.
type NotifyConfig struct {
	Lead    time.Duration `yaml:"lead"`    // how far before kickoff to notify
	Channel string        `yaml:"channel"` // logical channel name
}

// Load reads a YAML config file and expands environment variables.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// Expand ${VAR} environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config yaml: %w", err)
	}

	return &cfg, nil
}

// LoadWithDefaults loads config and applies default values.
func LoadWithDefaults(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// LoadAndValidate loads config, applies defaults, and validates.
func LoadAndValidate(path string) (*Config, error) {
	cfg, err := LoadWithDefaults(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}
