package kalshi

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/nt-labs/gameday/internal/model"
)

// BalanceResponse from GET /portfolio/balance.
type BalanceResponse struct {
	Balance int64 `json:"balance"` // cents
}

// GetBalance returns the spendable portfolio balance in dollars. The
// exchange reports integer cents.
func (c *Client) GetBalance(ctx context.Context) (decimal.Decimal, error) {
	var resp BalanceResponse
	if err := c.get(ctx, "/portfolio/balance", nil, &resp); err != nil {
		return decimal.Zero, fmt.Errorf("get balance: %w", err)
	}

	return decimal.New(resp.Balance, -2), nil
}

// OrderRequest is the payload for POST /portfolio/orders.
type OrderRequest struct {
	Ticker        string          `json:"ticker"`
	Action        model.Action    `json:"action"`
	Side          model.Side      `json:"side"`
	Type          model.OrderType `json:"type"`
	Count         int             `json:"count"`
	YesPrice      int             `json:"yes_price,omitempty"` // cents
	NoPrice       int             `json:"no_price,omitempty"`  // cents
	ClientOrderID string          `json:"client_order_id"`
}

// Order is the exchange's view of a created order.
type Order struct {
	OrderID       string `json:"order_id"`
	ClientOrderID string `json:"client_order_id"`
	Ticker        string `json:"ticker"`
	Status        string `json:"status"`
	Action        string `json:"action"`
	Side          string `json:"side"`
	YesPrice      int    `json:"yes_price"`
	NoPrice       int    `json:"no_price"`
}

// OrderResponse from POST /portfolio/orders.
type OrderResponse struct {
	Order Order `json:"order"`
}

// CreateOrder submits an order. A rejection surfaces as *APIError carrying
// the exchange's response body; the order is never resubmitted with the
// same client order ID.
func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (*Order, error) {
	var resp OrderResponse
	if err := c.post(ctx, "/portfolio/orders", req, &resp); err != nil {
		return nil, fmt.Errorf("create order %s: %w", req.Ticker, err)
	}

	return &resp.Order, nil
}
