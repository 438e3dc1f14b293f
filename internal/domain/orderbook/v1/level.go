package orderbookv1

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyLevel is returned when removing from a level with no orders.
	ErrEmptyLevel = errors.New("level has no orders")
)

// Level represents a price level in the order book: a FIFO queue of the
// orders resting at one price. The level exclusively owns its orders; the
// first order enqueued is the first eligible to match.
//
// Level is not safe for concurrent use. The session serializes all access.
type Level struct {
	Price    int64   `json:"price"`
	Orders   []Order `json:"orders"`
	TotalQty int64   `json:"totalQty"`
}

// NewLevel creates a new empty Level at the specified price.
func NewLevel(price int64) *Level {
	return &Level{
		Price:  price,
		Orders: make([]Order, 0),
	}
}

// Enqueue appends an order to the back of the level and updates the total
// quantity.
func (l *Level) Enqueue(order Order) error {
	if order.Price != l.Price {
		return fmt.Errorf("order price %d does not match level price %d", order.Price, l.Price)
	}
	if order.Qty <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidQty, order.Qty)
	}

	l.Orders = append(l.Orders, order)
	l.TotalQty += order.Qty

	return nil
}

// Front returns the oldest resting order at this level without removing it.
func (l *Level) Front() (Order, bool) {
	if len(l.Orders) == 0 {
		return Order{}, false
	}
	return l.Orders[0], true
}

// PopFront removes and returns the oldest resting order at this level.
func (l *Level) PopFront() (Order, error) {
	if len(l.Orders) == 0 {
		return Order{}, ErrEmptyLevel
	}

	front := l.Orders[0]
	l.Orders = l.Orders[1:]
	l.TotalQty -= front.Qty

	return front, nil
}

// IsEmpty checks if the level has no orders.
func (l *Level) IsEmpty() bool {
	return len(l.Orders) == 0
}

// OrderCount returns the number of orders at this level.
func (l *Level) OrderCount() int {
	return len(l.Orders)
}
