package tradefeedv1

import (
	"encoding/json"
	"time"

	orderbookv1 "github.com/Nearezz/Trading-Exchange-Sandbox/internal/domain/orderbook/v1"
	"github.com/oklog/ulid/v2"
)

// TradeEvent represents one executed trade on the wire.
type TradeEvent struct {
	TradeID      string    `json:"tradeID"`
	Pair         string    `json:"pair"`
	Price        int64     `json:"price"`
	Qty          int64     `json:"qty"`
	TakerOrderID int64     `json:"takerOrderID"`
	MakerOrderID int64     `json:"makerOrderID"`
	TakerSide    string    `json:"takerSide"`
	ExecutedAt   time.Time `json:"executedAt"`
}

// CreateFromTrade creates a trade event from a core trade and the taker that
// caused it.
func CreateFromTrade(trade *orderbookv1.Trade, taker orderbookv1.Order, pair string) *TradeEvent {
	return &TradeEvent{
		TradeID:      ulid.Make().String(),
		Pair:         pair,
		Price:        trade.Price,
		Qty:          trade.Qty,
		TakerOrderID: trade.TakerOrderID,
		MakerOrderID: trade.MakerOrderID,
		TakerSide:    string(taker.Side),
		ExecutedAt:   time.Now().UTC(),
	}
}

// ToBytes converts the trade event to a byte array.
func ToBytes(event *TradeEvent) []byte {
	data, err := json.Marshal(event)
	if err != nil {
		return nil
	}

	return data
}

// FromBytes converts a byte array to a trade event.
func FromBytes(data []byte) *TradeEvent {
	var event TradeEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil
	}
	return &event
}
