package strategy

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nt-labs/gameday/internal/kalshi"
	"github.com/nt-labs/gameday/internal/model"
)

// Exchange is the subset of the Kalshi client the strategy drives.
type Exchange interface {
	GetOpenMarkets(ctx context.Context, seriesTicker string) ([]model.Market, error)
	GetBalance(ctx context.Context) (decimal.Decimal, error)
	CreateOrder(ctx context.Context, req kalshi.OrderRequest) (*kalshi.Order, error)
}

// Config holds strategy policy settings.
type Config struct {
	SeriesTicker string
	MinYesAsk    int // inclusive band, cents
	MaxYesAsk    int // inclusive band, cents
	TradingDays  map[time.Weekday]bool
	Location     *time.Location  // reference timezone for "today"
	FeeRate      decimal.Decimal // per-contract fee rate
}

// DefaultConfig returns the standard policy: NFL game markets priced
// 90-99 cents, Thursday through Saturday, Denver trading days.
func DefaultConfig() Config {
	loc, _ := time.LoadLocation("America/Denver")
	return Config{
		SeriesTicker: "KXNFLGAME",
		MinYesAsk:    90,
		MaxYesAsk:    99,
		TradingDays: map[time.Weekday]bool{
			time.Thursday: true,
			time.Friday:   true,
			time.Saturday: true,
		},
		Location: loc,
		FeeRate:  decimal.NewFromFloat(0.07),
	}
}

// TradeIntent is one market's computed allocation, consumed immediately by
// order submission and never persisted.
type TradeIntent struct {
	Ticker        string
	Budget        decimal.Decimal // dollars allocated to this market
	Contracts     int
	YesPriceCents int
	Expiration    time.Time
}

// Report summarizes a single run.
type Report struct {
	Skipped    bool
	SkipReason string
	Balance    decimal.Decimal
	Eligible   int
	Submitted  int
	Rejected   int
}

// Strategy drives one fetch-allocate-submit cycle against an exchange.
type Strategy struct {
	cfg      Config
	exchange Exchange
	logger   *slog.Logger

	now        func() time.Time
	newOrderID func() string
}

// New creates a Strategy.
func New(cfg Config, exchange Exchange, logger *slog.Logger) *Strategy {
	if logger == nil {
		logger = slog.Default()
	}
	return &Strategy{
		cfg:        cfg,
		exchange:   exchange,
		logger:     logger,
		now:        time.Now,
		newOrderID: uuid.NewString,
	}
}

// Run executes one cycle. Read-path failures abort the run; individual
// order rejections are counted and the loop continues. There is no
// cross-order rollback: each market's exposure is independent.
func (s *Strategy) Run(ctx context.Context) (Report, error) {
	today := s.now().In(s.cfg.Location)

	if !s.cfg.TradingDays[today.Weekday()] {
		s.logger.Info("outside trading window, skipping run", "weekday", today.Weekday().String())
		return Report{Skipped: true, SkipReason: "outside trading window"}, nil
	}

	balance, err := s.exchange.GetBalance(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("fetch balance: %w", err)
	}

	markets, err := s.exchange.GetOpenMarkets(ctx, s.cfg.SeriesTicker)
	if err != nil {
		return Report{}, fmt.Errorf("fetch open markets: %w", err)
	}

	eligible := s.eligible(markets, today)

	s.logger.Info("markets screened",
		"open", len(markets),
		"eligible", len(eligible),
		"balance", balance.StringFixed(2),
	)

	if len(eligible) == 0 {
		return Report{
			Skipped:    true,
			SkipReason: "no eligible markets",
			Balance:    balance,
		}, nil
	}

	intents := s.allocate(balance, eligible)

	report := Report{
		Balance:  balance,
		Eligible: len(eligible),
	}

	for _, intent := range intents {
		if intent.Contracts <= 0 {
			continue
		}

		req := kalshi.OrderRequest{
			Ticker:        intent.Ticker,
			Action:        model.ActionBuy,
			Side:          model.SideYes,
			Type:          model.OrderTypeLimit,
			Count:         intent.Contracts,
			YesPrice:      intent.YesPriceCents,
			ClientOrderID: s.newOrderID(),
		}

		order, err := s.exchange.CreateOrder(ctx, req)
		if err != nil {
			// One rejected order must not block the rest. Never retried:
			// a resubmission would need a new client order ID and with it
			// a fresh duplicate-fill risk.
			s.logger.Error("order rejected",
				"ticker", intent.Ticker,
				"count", intent.Contracts,
				"yes_price", intent.YesPriceCents,
				"error", err,
			)
			report.Rejected++
			continue
		}

		s.logger.Info("order submitted",
			"ticker", intent.Ticker,
			"count", intent.Contracts,
			"yes_price", intent.YesPriceCents,
			"order_id", order.OrderID,
		)
		report.Submitted++
	}

	return report, nil
}

// eligible filters to markets whose yes ask lies inside the configured band
// and whose expected expiration falls on today's date in the reference
// timezone, sorted by expiration then ticker for a deterministic submission
// order.
func (s *Strategy) eligible(markets []model.Market, today time.Time) []model.Market {
	var out []model.Market
	for _, m := range markets {
		if m.YesAsk < s.cfg.MinYesAsk || m.YesAsk > s.cfg.MaxYesAsk {
			continue
		}
		if !m.ExpiresOn(today, s.cfg.Location) {
			continue
		}
		out = append(out, m)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].ExpectedExpiration.Equal(out[j].ExpectedExpiration) {
			return out[i].ExpectedExpiration.Before(out[j].ExpectedExpiration)
		}
		return out[i].Ticker < out[j].Ticker
	})

	return out
}

// allocate splits the balance equally across eligible markets and sizes
// each position so that contracts*price + fee never exceeds the market's
// share of the budget.
func (s *Strategy) allocate(balance decimal.Decimal, eligible []model.Market) []TradeIntent {
	n := decimal.NewFromInt(int64(len(eligible)))
	budget := balance.Div(n)

	intents := make([]TradeIntent, 0, len(eligible))
	for _, m := range eligible {
		intents = append(intents, TradeIntent{
			Ticker:        m.Ticker,
			Budget:        budget,
			Contracts:     MaxContracts(s.cfg.FeeRate, budget, m.YesAsk),
			YesPriceCents: m.YesAsk,
			Expiration:    m.ExpectedExpiration,
		})
	}

	return intents
}
