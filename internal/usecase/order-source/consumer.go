package ordersource

import (
	"context"
	"encoding/json"

	ordersourcev1 "github.com/Nearezz/Trading-Exchange-Sandbox/internal/domain/order-source/v1"
	"github.com/Nearezz/Trading-Exchange-Sandbox/pkg/config"
	"github.com/Nearezz/Trading-Exchange-Sandbox/pkg/errors"
	"github.com/Nearezz/Trading-Exchange-Sandbox/pkg/logger"
	"github.com/segmentio/kafka-go"
)

// Reader represents a Kafka Reader for consuming messages from the order topic.
type Reader struct {
	kafkaReader *kafka.Reader
	logger      logger.Interface
}

// NewReader creates a new Kafka reader for consuming messages from the order topic.
// It returns an implementation of the OrderSource interface.
func NewReader(cfg config.KafkaConfig, log logger.Interface) Reader {
	kafkaReader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     cfg.Brokers,
		Topic:       cfg.Topic,
		Partition:   0,
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafka.LastOffset,
	})

	return Reader{
		kafkaReader: kafkaReader,
		logger:      log,
	}
}

// logError is a helper method to log errors consistently
func (r Reader) logError(err error, operation string) {
	r.logger.Error(err,
		logger.Field{Key: "operation", Value: operation},
	)
}

// SetOffset sets the offset for the Kafka reader.
func (r Reader) SetOffset(offset int64) error {
	if err := r.kafkaReader.SetOffset(offset); err != nil {
		r.logError(err, "SetOffset")
		return err
	}
	return nil
}

// ReadMessage reads a message from the Kafka topic and parses it as an order payload.
func (r Reader) ReadMessage(ctx context.Context) (kafka.Message, *ordersourcev1.OrderPayload, error) {
	msg, err := r.kafkaReader.ReadMessage(ctx)
	if err != nil {
		r.logError(err, "ReadMessage")
		return kafka.Message{Offset: 0}, nil, errors.NewTracer("failed to read order message").
			WithCode(errors.KafkaReadError).
			Wrap(err)
	}

	payload, err := parsePayload(msg)
	if err != nil {
		r.logError(err, "ParseOrder")
		return kafka.Message{Offset: 0}, nil, err
	}

	r.logger.Debug("ReadMessage",
		logger.Field{Key: "orderID", Value: payload.OrderID},
		logger.Field{Key: "side", Value: payload.Side},
		logger.Field{Key: "price", Value: payload.Price},
		logger.Field{Key: "qty", Value: payload.Qty},
	)

	return msg, payload, nil
}

// parsePayload decodes an order topic message and stamps the payload with
// the message offset.
func parsePayload(msg kafka.Message) (*ordersourcev1.OrderPayload, error) {
	var payload ordersourcev1.OrderPayload
	if err := json.Unmarshal(msg.Value, &payload); err != nil {
		return nil, errors.NewTracer("failed to decode order payload").
			WithCode(errors.KafkaReadError).
			Wrap(err)
	}

	payload.Offset = msg.Offset
	return &payload, nil
}

// Close properly closes the Kafka reader.
func (r Reader) Close() error {
	if err := r.kafkaReader.Close(); err != nil {
		r.logError(err, "Close")
		return err
	}
	return nil
}
