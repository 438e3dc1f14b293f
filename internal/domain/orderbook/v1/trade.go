package orderbookv1

// Trade represents a completed match between a taker and a maker order.
// Trades always print at the maker's limit price.
type Trade struct {
	Price        int64 `json:"price"`
	Qty          int64 `json:"qty"`
	TakerOrderID int64 `json:"takerOrderID"`
	MakerOrderID int64 `json:"makerOrderID"`
}

// Quote represents one side of the top of book: the best price level and
// the total quantity resting at it.
type Quote struct {
	Price int64 `json:"price"`
	Qty   int64 `json:"qty"`
}
