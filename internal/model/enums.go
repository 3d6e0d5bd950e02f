package model

import "fmt"

// Side is the contract side of an order.
type Side string

const (
	SideYes Side = "yes"
	SideNo  Side = "no"
)

// ParseSide validates a side string.
func ParseSide(s string) (Side, error) {
	switch Side(s) {
	case SideYes, SideNo:
		return Side(s), nil
	}
	return "", fmt.Errorf("invalid side %q", s)
}

// Action is the order direction.
type Action string

const (
	ActionBuy  Action = "buy"
	ActionSell Action = "sell"
)

// ParseAction validates an action string.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionBuy, ActionSell:
		return Action(s), nil
	}
	return "", fmt.Errorf("invalid action %q", s)
}

// OrderType distinguishes limit from market orders. Strategy orders are
// always limit orders at the observed ask.
type OrderType string

const (
	OrderTypeLimit  OrderType = "limit"
	OrderTypeMarket OrderType = "market"
)
