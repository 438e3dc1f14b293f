package ordersourcev1

import (
	orderbookv1 "github.com/Nearezz/Trading-Exchange-Sandbox/internal/domain/orderbook/v1"
)

// OrderPayload represents one order submission on the wire. Order ids and
// timestamps are assigned by the producer; the engine only validates.
type OrderPayload struct {
	OrderID   int64  `json:"orderID"`
	Side      string `json:"side"`
	Price     int64  `json:"price"`
	Qty       int64  `json:"qty"`
	Timestamp int64  `json:"timestamp"`
	Offset    int64  `json:"-"` // Offset of the message in the stream
}

// ToOrder converts the payload to a core order. The result still needs
// engine-side validation.
func (p *OrderPayload) ToOrder() orderbookv1.Order {
	return orderbookv1.NewOrder(p.OrderID, orderbookv1.Side(p.Side), p.Price, p.Qty, p.Timestamp)
}
