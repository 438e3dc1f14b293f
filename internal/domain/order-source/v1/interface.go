package ordersourcev1

import (
	"context"

	"github.com/segmentio/kafka-go"
)

// OrderSource defines the interface for reading order submissions from a
// stream.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=ordersourcev1_mock
type OrderSource interface {
	// ReadMessage reads a message and returns the parsed order payload
	ReadMessage(ctx context.Context) (kafka.Message, *OrderPayload, error)
	// SetOffset sets the offset for the reader
	SetOffset(offset int64) error
	// Close closes the reader
	Close() error
}
