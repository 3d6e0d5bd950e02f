package strategy

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nt-labs/gameday/internal/kalshi"
	"github.com/nt-labs/gameday/internal/model"
)

type fakeExchange struct {
	balance decimal.Decimal
	markets []model.Market

	balanceCalls int
	marketCalls  int
	orders       []kalshi.OrderRequest

	rejectTickers map[string]bool
	balanceErr    error
	marketsErr    error
}

func (f *fakeExchange) GetBalance(ctx context.Context) (decimal.Decimal, error) {
	f.balanceCalls++
	if f.balanceErr != nil {
		return decimal.Zero, f.balanceErr
	}
	return f.balance, nil
}

func (f *fakeExchange) GetOpenMarkets(ctx context.Context, seriesTicker string) ([]model.Market, error) {
	f.marketCalls++
	if f.marketsErr != nil {
		return nil, f.marketsErr
	}
	return f.markets, nil
}

func (f *fakeExchange) CreateOrder(ctx context.Context, req kalshi.OrderRequest) (*kalshi.Order, error) {
	f.orders = append(f.orders, req)
	if f.rejectTickers[req.Ticker] {
		return nil, &kalshi.APIError{StatusCode: 400, Message: "Bad Request", Body: []byte("rejected")}
	}
	return &kalshi.Order{OrderID: fmt.Sprintf("o-%d", len(f.orders)), ClientOrderID: req.ClientOrderID}, nil
}

func denver(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Denver")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	return loc
}

// tradingThursday is noon on Thursday 2025-09-04 in Denver.
func tradingThursday(t *testing.T) time.Time {
	return time.Date(2025, 9, 4, 12, 0, 0, 0, denver(t))
}

// expiresThursdayEvening is 8pm Denver on the same Thursday, in UTC.
var expiresThursdayEvening = time.Date(2025, 9, 5, 2, 0, 0, 0, time.UTC)

func testStrategy(t *testing.T, exchange Exchange, now time.Time) *Strategy {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Location = denver(t)

	s := New(cfg, exchange, slog.New(slog.DiscardHandler))
	s.now = func() time.Time { return now }
	return s
}

func TestRun_OffDay(t *testing.T) {
	exchange := &fakeExchange{balance: decimal.NewFromInt(100)}
	// Monday 2025-09-01 is outside the Thursday-Saturday window.
	monday := time.Date(2025, 9, 1, 12, 0, 0, 0, denver(t))

	report, err := testStrategy(t, exchange, monday).Run(t.Context())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if !report.Skipped {
		t.Error("expected skipped report")
	}
	if exchange.balanceCalls != 0 || exchange.marketCalls != 0 || len(exchange.orders) != 0 {
		t.Errorf("expected zero network calls, got balance=%d markets=%d orders=%d",
			exchange.balanceCalls, exchange.marketCalls, len(exchange.orders))
	}
}

func TestRun_NoEligibleMarkets(t *testing.T) {
	exchange := &fakeExchange{
		balance: decimal.NewFromInt(100),
		markets: []model.Market{
			// Priced below the band.
			{Ticker: "CHEAP", YesAsk: 50, ExpectedExpiration: expiresThursdayEvening},
			// In the band but expires tomorrow.
			{Ticker: "LATER", YesAsk: 95, ExpectedExpiration: expiresThursdayEvening.Add(24 * time.Hour)},
		},
	}

	report, err := testStrategy(t, exchange, tradingThursday(t)).Run(t.Context())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if !report.Skipped {
		t.Error("expected skipped report")
	}
	if len(exchange.orders) != 0 {
		t.Errorf("expected no orders, got %d", len(exchange.orders))
	}
}

func TestRun_EndToEnd(t *testing.T) {
	// $100 balance, two eligible markets at 95c and 90c: each gets $50.
	exchange := &fakeExchange{
		balance: decimal.NewFromInt(100),
		markets: []model.Market{
			{Ticker: "GAME-B", YesAsk: 90, ExpectedExpiration: expiresThursdayEvening.Add(time.Hour)},
			{Ticker: "GAME-A", YesAsk: 95, ExpectedExpiration: expiresThursdayEvening},
		},
	}

	report, err := testStrategy(t, exchange, tradingThursday(t)).Run(t.Context())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if report.Eligible != 2 || report.Submitted != 2 || report.Rejected != 0 {
		t.Fatalf("report = %+v, want 2 eligible, 2 submitted", report)
	}
	if len(exchange.orders) != 2 {
		t.Fatalf("got %d orders, want 2", len(exchange.orders))
	}

	// Submission order follows expiration time, not input order.
	first, second := exchange.orders[0], exchange.orders[1]
	if first.Ticker != "GAME-A" || second.Ticker != "GAME-B" {
		t.Errorf("submission order = %s, %s; want GAME-A, GAME-B", first.Ticker, second.Ticker)
	}

	budget := decimal.NewFromInt(50)
	rate := decimal.NewFromFloat(0.07)
	for _, order := range exchange.orders {
		if order.Action != model.ActionBuy || order.Side != model.SideYes || order.Type != model.OrderTypeLimit {
			t.Errorf("order %s: got %s/%s/%s, want buy/yes/limit",
				order.Ticker, order.Action, order.Side, order.Type)
		}
		if cost := Cost(rate, order.Count, order.YesPrice); cost.GreaterThan(budget) {
			t.Errorf("order %s: cost %s exceeds budget %s", order.Ticker, cost, budget)
		}
	}

	if first.ClientOrderID == second.ClientOrderID {
		t.Error("orders share a client order ID")
	}
	if first.Count != 52 {
		t.Errorf("GAME-A count = %d, want 52", first.Count)
	}
	if second.Count != 55 {
		t.Errorf("GAME-B count = %d, want 55", second.Count)
	}
}

func TestRun_OrderIDsUnique(t *testing.T) {
	var markets []model.Market
	for i := 0; i < 20; i++ {
		markets = append(markets, model.Market{
			Ticker:             fmt.Sprintf("GAME-%02d", i),
			YesAsk:             90 + i%10,
			ExpectedExpiration: expiresThursdayEvening,
		})
	}
	exchange := &fakeExchange{balance: decimal.NewFromInt(10000), markets: markets}

	if _, err := testStrategy(t, exchange, tradingThursday(t)).Run(t.Context()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	seen := make(map[string]bool)
	for _, order := range exchange.orders {
		if seen[order.ClientOrderID] {
			t.Fatalf("duplicate client order ID %q", order.ClientOrderID)
		}
		seen[order.ClientOrderID] = true
	}
}

func TestRun_RejectedOrderDoesNotBlockRest(t *testing.T) {
	exchange := &fakeExchange{
		balance: decimal.NewFromInt(100),
		markets: []model.Market{
			{Ticker: "GAME-A", YesAsk: 95, ExpectedExpiration: expiresThursdayEvening},
			{Ticker: "GAME-B", YesAsk: 90, ExpectedExpiration: expiresThursdayEvening},
			{Ticker: "GAME-C", YesAsk: 92, ExpectedExpiration: expiresThursdayEvening},
		},
		rejectTickers: map[string]bool{"GAME-B": true},
	}

	report, err := testStrategy(t, exchange, tradingThursday(t)).Run(t.Context())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if len(exchange.orders) != 3 {
		t.Errorf("got %d submissions, want 3", len(exchange.orders))
	}
	if report.Submitted != 2 || report.Rejected != 1 {
		t.Errorf("report = %+v, want 2 submitted, 1 rejected", report)
	}
}

func TestRun_ReadPathErrorAborts(t *testing.T) {
	exchange := &fakeExchange{
		balanceErr: errors.New("balance unavailable"),
	}

	_, err := testStrategy(t, exchange, tradingThursday(t)).Run(t.Context())
	if err == nil {
		t.Fatal("expected error")
	}
	if len(exchange.orders) != 0 {
		t.Errorf("expected no orders after read failure, got %d", len(exchange.orders))
	}
}

func TestAllocate_EqualWeights(t *testing.T) {
	exchange := &fakeExchange{}
	s := testStrategy(t, exchange, tradingThursday(t))

	balance := decimal.NewFromInt(100)
	eligible := []model.Market{
		{Ticker: "A", YesAsk: 95},
		{Ticker: "B", YesAsk: 92},
		{Ticker: "C", YesAsk: 90},
	}

	intents := s.allocate(balance, eligible)
	if len(intents) != 3 {
		t.Fatalf("got %d intents, want 3", len(intents))
	}

	want := balance.Div(decimal.NewFromInt(3))
	total := decimal.Zero
	for _, intent := range intents {
		if !intent.Budget.Equal(want) {
			t.Errorf("intent %s budget = %s, want %s", intent.Ticker, intent.Budget, want)
		}
		total = total.Add(intent.Budget)
	}

	// Weights sum to 1 within decimal division tolerance.
	tolerance := decimal.New(1, -10)
	if total.Sub(balance).Abs().GreaterThan(tolerance) {
		t.Errorf("budgets sum to %s, want %s", total, balance)
	}
}

func TestEligible_InclusiveBand(t *testing.T) {
	exchange := &fakeExchange{}
	s := testStrategy(t, exchange, tradingThursday(t))

	markets := []model.Market{
		{Ticker: "AT-MIN", YesAsk: 90, ExpectedExpiration: expiresThursdayEvening},
		{Ticker: "AT-MAX", YesAsk: 99, ExpectedExpiration: expiresThursdayEvening},
		{Ticker: "BELOW", YesAsk: 89, ExpectedExpiration: expiresThursdayEvening},
	}

	eligible := s.eligible(markets, tradingThursday(t))
	if len(eligible) != 2 {
		t.Fatalf("got %d eligible, want 2", len(eligible))
	}
	for _, m := range eligible {
		if m.Ticker == "BELOW" {
			t.Error("market below band marked eligible")
		}
	}
}

// A market expiring at 1am UTC Friday is still Thursday evening in Denver
// and must count as a Thursday game.
func TestEligible_TimezoneBoundary(t *testing.T) {
	exchange := &fakeExchange{}
	s := testStrategy(t, exchange, tradingThursday(t))

	markets := []model.Market{
		{Ticker: "LATE-UTC", YesAsk: 95, ExpectedExpiration: time.Date(2025, 9, 5, 1, 0, 0, 0, time.UTC)},
		// Midnight Denver Friday: no longer a Thursday game.
		{Ticker: "NEXT-DAY", YesAsk: 95, ExpectedExpiration: time.Date(2025, 9, 5, 6, 0, 0, 0, time.UTC)},
	}

	eligible := s.eligible(markets, tradingThursday(t))
	if len(eligible) != 1 || eligible[0].Ticker != "LATE-UTC" {
		t.Fatalf("eligible = %v, want only LATE-UTC", eligible)
	}
}
