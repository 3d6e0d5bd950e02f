package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/nt-labs/gameday/internal/auth"
	"github.com/nt-labs/gameday/internal/cfbd"
	"github.com/nt-labs/gameday/internal/config"
	"github.com/nt-labs/gameday/internal/jobs"
	"github.com/nt-labs/gameday/internal/kalshi"
	"github.com/nt-labs/gameday/internal/slack"
	"github.com/nt-labs/gameday/internal/store"
	"github.com/nt-labs/gameday/internal/strategy"
	"github.com/nt-labs/gameday/internal/version"
)

func main() {
	jobName := flag.String("job", "", "job to run: open-markets, daily-schedule, notify, urp-strategy")
	configPath := flag.String("config", "configs/gameday.yaml", "path to config file")
	flag.Parse()

	// Local .env files supply secrets during development; absence is fine.
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if *jobName == "" {
		logger.Error("no job specified, use -job")
		os.Exit(1)
	}

	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(cfg.Log.Level),
	}))
	slog.SetDefault(logger)

	logger.Info("starting gameday job",
		"job", *jobName,
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	if err := runJob(ctx, *jobName, cfg, logger); err != nil {
		logger.Error("job failed", "job", *jobName, "error", err)
		os.Exit(1)
	}

	logger.Info("job complete", "job", *jobName)
}

func runJob(ctx context.Context, name string, cfg *config.Config, logger *slog.Logger) error {
	switch name {
	case "open-markets":
		return runOpenMarkets(ctx, cfg, logger)
	case "daily-schedule":
		return runDailySchedule(ctx, cfg, logger)
	case "notify":
		return runNotify(ctx, cfg, logger)
	case "urp-strategy":
		return runURPStrategy(ctx, cfg, logger)
	default:
		return fmt.Errorf("unknown job %q", name)
	}
}

func runOpenMarkets(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	client, err := kalshiClient(cfg, logger)
	if err != nil {
		return err
	}

	st, err := store.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer st.Close()

	return jobs.OpenMarkets(ctx, client, st, logger)
}

func runDailySchedule(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if cfg.CFBD.APIKey == "" {
		return fmt.Errorf("cfbd.api_key is required")
	}

	loc, err := cfg.Strategy.Location()
	if err != nil {
		return err
	}

	st, err := store.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer st.Close()

	client := cfbd.NewClient(cfg.CFBD.BaseURL, cfg.CFBD.APIKey, cfbd.WithLogger(logger))

	return jobs.DailySchedule(ctx, client, st, cfg.CFBD.Season, loc, logger)
}

func runNotify(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	notifier, ch, err := slackNotifier(cfg, logger)
	if err != nil {
		return err
	}

	loc, err := cfg.Strategy.Location()
	if err != nil {
		return err
	}

	st, err := store.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer st.Close()

	return jobs.Notify(ctx, st, notifier, ch, cfg.Notify.Lead, loc, logger)
}

func runURPStrategy(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	client, err := kalshiClient(cfg, logger)
	if err != nil {
		return err
	}

	stratCfg, err := strategyConfig(cfg)
	if err != nil {
		return err
	}

	strat := strategy.New(stratCfg, client, logger)

	// Slack summary is optional: without a token the report is only logged.
	var notifier *slack.Notifier
	var ch slack.Channel
	if cfg.Slack.Token != "" {
		notifier, ch, err = slackNotifier(cfg, logger)
		if err != nil {
			return err
		}
	}

	return jobs.URPStrategy(ctx, strat, notifier, ch, logger)
}

// kalshiClient builds a signed API client. Missing key material fails here,
// before any network call.
func kalshiClient(cfg *config.Config, logger *slog.Logger) (*kalshi.Client, error) {
	var creds *auth.Credentials
	var err error

	switch {
	case cfg.Kalshi.PrivateKeyPEM != "":
		creds, err = auth.CredentialsFromPEM(cfg.Kalshi.AccessKey, []byte(cfg.Kalshi.PrivateKeyPEM))
	case cfg.Kalshi.PrivateKeyPath != "":
		creds, err = auth.LoadCredentials(cfg.Kalshi.AccessKey, cfg.Kalshi.PrivateKeyPath)
	default:
		return nil, fmt.Errorf("kalshi.private_key_pem or kalshi.private_key_path is required")
	}
	if err != nil {
		return nil, fmt.Errorf("load kalshi credentials: %w", err)
	}

	return kalshi.NewClient(
		cfg.Kalshi.BaseURL,
		creds,
		kalshi.WithTimeout(cfg.Kalshi.Timeout),
		kalshi.WithLogger(logger),
	), nil
}

func slackNotifier(cfg *config.Config, logger *slog.Logger) (*slack.Notifier, slack.Channel, error) {
	if cfg.Slack.Token == "" {
		return nil, "", fmt.Errorf("slack.token is required")
	}

	ch, err := slack.ParseChannel(cfg.Notify.Channel)
	if err != nil {
		return nil, "", err
	}

	notifier := slack.NewNotifier(
		cfg.Slack.Token,
		cfg.Slack.Channels.Testing,
		cfg.Slack.Channels.General,
		slack.WithLogger(logger),
	)

	return notifier, ch, nil
}

func strategyConfig(cfg *config.Config) (strategy.Config, error) {
	days, err := cfg.Strategy.TradingWeekdays()
	if err != nil {
		return strategy.Config{}, err
	}
	loc, err := cfg.Strategy.Location()
	if err != nil {
		return strategy.Config{}, err
	}
	rate, err := cfg.Strategy.Fee()
	if err != nil {
		return strategy.Config{}, err
	}

	return strategy.Config{
		SeriesTicker: cfg.Strategy.SeriesTicker,
		MinYesAsk:    cfg.Strategy.MinYesAsk,
		MaxYesAsk:    cfg.Strategy.MaxYesAsk,
		TradingDays:  days,
		Location:     loc,
		FeeRate:      rate,
	}, nil
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
