package orderbook

import (
	orderbookv1 "github.com/Nearezz/Trading-Exchange-Sandbox/internal/domain/orderbook/v1"
)

// Orderbook owns the resting liquidity for one instrument: two price-indexed
// collections of FIFO levels, one per side. A price key is present iff its
// level holds at least one order; levels are deleted the instant they empty.
//
// Orderbook provides no internal locking. It is exclusively owned by one
// session, which serializes access.
type Orderbook struct {
	BidLevels map[int64]*orderbookv1.Level // price -> level
	AskLevels map[int64]*orderbookv1.Level // price -> level
}

// NewOrderbook creates a new empty orderbook.
func NewOrderbook() *Orderbook {
	return &Orderbook{
		BidLevels: make(map[int64]*orderbookv1.Level),
		AskLevels: make(map[int64]*orderbookv1.Level),
	}
}

// Add inserts an order at the back of the FIFO level for its side and price,
// creating the level if absent. Validation is the caller's responsibility.
func (ob *Orderbook) Add(order orderbookv1.Order) {
	levels := ob.sideLevels(order.Side)

	level, exists := levels[order.Price]
	if !exists {
		level = orderbookv1.NewLevel(order.Price)
		levels[order.Price] = level
	}

	// Enqueue only fails on price mismatch or non-positive quantity, both
	// excluded by the level lookup and caller validation.
	_ = level.Enqueue(order)
}

// BestBid returns the highest bid price and the aggregate quantity resting
// at it, or nil if no bids exist.
func (ob *Orderbook) BestBid() *orderbookv1.Quote {
	best := int64(-1)
	for price := range ob.BidLevels {
		if price > best {
			best = price
		}
	}
	if best < 0 {
		return nil
	}
	return &orderbookv1.Quote{Price: best, Qty: ob.BidLevels[best].TotalQty}
}

// BestAsk returns the lowest ask price and the aggregate quantity resting
// at it, or nil if no asks exist.
func (ob *Orderbook) BestAsk() *orderbookv1.Quote {
	best := int64(-1)
	for price := range ob.AskLevels {
		if best < 0 || price < best {
			best = price
		}
	}
	if best < 0 {
		return nil
	}
	return &orderbookv1.Quote{Price: best, Qty: ob.AskLevels[best].TotalQty}
}

// Bids returns the aggregate quantity at every bid level, keyed by price.
// The aggregates are computed at call time, never cached.
func (ob *Orderbook) Bids() map[int64]int64 {
	return aggregate(ob.BidLevels)
}

// Asks returns the aggregate quantity at every ask level, keyed by price.
func (ob *Orderbook) Asks() map[int64]int64 {
	return aggregate(ob.AskLevels)
}

// Front returns the oldest resting order at the given side and price.
func (ob *Orderbook) Front(side orderbookv1.Side, price int64) (orderbookv1.Order, bool) {
	level, exists := ob.sideLevels(side)[price]
	if !exists {
		return orderbookv1.Order{}, false
	}
	return level.Front()
}

// RemoveFront removes and returns the oldest resting order at the given side
// and price. The level is deleted from the book the instant its queue
// empties, never left as an empty entry.
func (ob *Orderbook) RemoveFront(side orderbookv1.Side, price int64) (orderbookv1.Order, error) {
	levels := ob.sideLevels(side)
	level, exists := levels[price]
	if !exists {
		return orderbookv1.Order{}, orderbookv1.ErrEmptyLevel
	}

	order, err := level.PopFront()
	if err != nil {
		return orderbookv1.Order{}, err
	}

	if level.IsEmpty() {
		delete(levels, price)
	}

	return order, nil
}

func (ob *Orderbook) sideLevels(side orderbookv1.Side) map[int64]*orderbookv1.Level {
	if side == orderbookv1.SideBuy {
		return ob.BidLevels
	}
	return ob.AskLevels
}

func aggregate(levels map[int64]*orderbookv1.Level) map[int64]int64 {
	view := make(map[int64]int64, len(levels))
	for price, level := range levels {
		view[price] = level.TotalQty
	}
	return view
}
