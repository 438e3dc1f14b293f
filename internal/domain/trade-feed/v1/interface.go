package tradefeedv1

import "context"

// TradeFeed defines the interface for publishing executed trades to
// downstream consumers.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=tradefeedv1_mock
type TradeFeed interface {
	// PublishTrade publishes one executed trade.
	PublishTrade(ctx context.Context, event *TradeEvent) error
}
