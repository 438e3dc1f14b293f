package tradefeed

import (
	"context"

	tradefeedv1 "github.com/Nearezz/Trading-Exchange-Sandbox/internal/domain/trade-feed/v1"
	"github.com/Nearezz/Trading-Exchange-Sandbox/pkg/config"
	"github.com/Nearezz/Trading-Exchange-Sandbox/pkg/errors"
	"github.com/Nearezz/Trading-Exchange-Sandbox/pkg/logger"
	"github.com/segmentio/kafka-go"
)

// Publisher represents a Kafka Publisher for publishing trade events.
type Publisher struct {
	kafkaWriter *kafka.Writer
	logger      logger.Interface
}

// NewPublisher creates a new Kafka publisher for publishing trade events.
func NewPublisher(cfg config.TradeFeedConfig, log logger.Interface) *Publisher {
	kafkaWriter := kafka.NewWriter(kafka.WriterConfig{
		Brokers: cfg.Brokers,
		Topic:   cfg.Topic,
	})

	return &Publisher{
		kafkaWriter: kafkaWriter,
		logger:      log,
	}
}

// PublishTrade publishes a trade event to the Kafka topic.
func (p *Publisher) PublishTrade(ctx context.Context, event *tradefeedv1.TradeEvent) error {
	msg := kafka.Message{
		Key:   []byte(event.TradeID),
		Value: tradefeedv1.ToBytes(event),
	}

	if err := p.kafkaWriter.WriteMessages(ctx, msg); err != nil {
		p.logger.Error(err,
			logger.Field{Key: "tradeID", Value: event.TradeID},
			logger.Field{Key: "pair", Value: event.Pair},
		)
		return errors.NewTracer("failed to publish trade event").
			WithCode(errors.KafkaPublishError).
			Wrap(err)
	}
	return nil
}

// Close properly closes the Kafka writer.
func (p *Publisher) Close() error {
	return p.kafkaWriter.Close()
}

// Fanout publishes every trade event to each of its feeds in order,
// returning the first error encountered.
type Fanout []tradefeedv1.TradeFeed

// PublishTrade implements TradeFeed.
func (f Fanout) PublishTrade(ctx context.Context, event *tradefeedv1.TradeEvent) error {
	for _, feed := range f {
		if err := feed.PublishTrade(ctx, event); err != nil {
			return err
		}
	}
	return nil
}
