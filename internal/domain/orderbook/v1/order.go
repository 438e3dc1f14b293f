package orderbookv1

import "errors"

var (
	// ErrInvalidSide is returned when an order's side is not BUY or SELL.
	ErrInvalidSide = errors.New("side must be BUY or SELL")
	// ErrInvalidPrice is returned when an order's limit price is not positive.
	ErrInvalidPrice = errors.New("price must be positive")
	// ErrInvalidQty is returned when an order's quantity is not positive.
	ErrInvalidQty = errors.New("quantity must be positive")
)

// Side represents the direction of an order.
type Side string

const (
	// SideBuy represents a bid order.
	SideBuy Side = "BUY"
	// SideSell represents an ask order.
	SideSell Side = "SELL"
)

// Valid reports whether the side is one of the two legal values.
func (s Side) Valid() bool {
	return s == SideBuy || s == SideSell
}

// Opposite returns the opposing side.
func (s Side) Opposite() Side {
	if s == SideBuy {
		return SideSell
	}
	return SideBuy
}

// Order represents a single limit order. Orders are immutable values: the
// book either rests an order whole or removes it whole, so a partially
// consumed order never exists.
type Order struct {
	ID        int64 `json:"id"`
	Side      Side  `json:"side"`
	Price     int64 `json:"price"`
	Qty       int64 `json:"qty"`
	Timestamp int64 `json:"timestamp"` // informational; level ordering is arrival order
}

// NewOrder creates a new order with the given parameters.
func NewOrder(id int64, side Side, price, qty, timestamp int64) Order {
	return Order{
		ID:        id,
		Side:      side,
		Price:     price,
		Qty:       qty,
		Timestamp: timestamp,
	}
}

// IsBid checks if the order is a bid (buy) order.
func (o Order) IsBid() bool {
	return o.Side == SideBuy
}

// IsAsk checks if the order is an ask (sell) order.
func (o Order) IsAsk() bool {
	return o.Side == SideSell
}

// Validate reports whether the order is well formed. The book assumes
// validated input; callers must reject invalid orders before submission.
func (o Order) Validate() error {
	if !o.Side.Valid() {
		return ErrInvalidSide
	}
	if o.Price <= 0 {
		return ErrInvalidPrice
	}
	if o.Qty <= 0 {
		return ErrInvalidQty
	}
	return nil
}
