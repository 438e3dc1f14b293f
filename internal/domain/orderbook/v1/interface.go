package orderbookv1

// Book defines the interface for the price-indexed storage of resting
// orders. A price level is present iff its FIFO queue is non-empty.
type Book interface {
	// Add inserts an order at the back of its side/price level, creating
	// the level if absent. Input is assumed validated by the caller.
	Add(order Order)
	// BestBid returns the highest bid price and the total quantity resting
	// at it, or nil when no bids exist.
	BestBid() *Quote
	// BestAsk returns the lowest ask price and the total quantity resting
	// at it, or nil when no asks exist.
	BestAsk() *Quote
	// Bids returns a live aggregate of every bid level, price to total quantity.
	Bids() map[int64]int64
	// Asks returns a live aggregate of every ask level, price to total quantity.
	Asks() map[int64]int64
	// Front returns the oldest resting order at the given side and price.
	Front(side Side, price int64) (Order, bool)
	// RemoveFront removes the oldest resting order at the given side and
	// price, deleting the level the instant its queue empties.
	RemoveFront(side Side, price int64) (Order, error)
}
