package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	ordersourcev1 "github.com/Nearezz/Trading-Exchange-Sandbox/internal/domain/order-source/v1"
	tradefeedv1 "github.com/Nearezz/Trading-Exchange-Sandbox/internal/domain/trade-feed/v1"
	"github.com/Nearezz/Trading-Exchange-Sandbox/internal/usecase/session"
	"github.com/Nearezz/Trading-Exchange-Sandbox/pkg/config"
	"github.com/Nearezz/Trading-Exchange-Sandbox/pkg/logger"
)

// ErrNoOrderSource is returned when Start is called without a configured
// order source.
var ErrNoOrderSource = errors.New("no order source configured")

// Engine drives one trading session from an order stream: it consumes order
// payloads, submits them to the session one at a time, and publishes the
// resulting trades. The single consumer loop is what serializes writes into
// the matching core.
type Engine struct {
	session *session.Session
	source  ordersourcev1.OrderSource
	feed    tradefeedv1.TradeFeed // optional
	logger  *logger.Logger
	config  *config.Config

	mu          sync.RWMutex
	orderOffset int64
	totalTrades int64

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	readBackoff time.Duration
}

// NewEngine creates a new instance of Engine with the provided dependencies.
// The feed may be nil when no trade feed is configured.
func NewEngine(
	sess *session.Session,
	source ordersourcev1.OrderSource,
	feed tradefeedv1.TradeFeed,
	log *logger.Logger,
	cfg *config.Config,
) *Engine {
	return NewEngineWithOptions(sess, source, feed, log, cfg, DefaultEngineOptions())
}

// NewEngineWithOptions creates a new engine with custom options
func NewEngineWithOptions(
	sess *session.Session,
	source ordersourcev1.OrderSource,
	feed tradefeedv1.TradeFeed,
	log *logger.Logger,
	cfg *config.Config,
	options *Options,
) *Engine {
	return &Engine{
		session:     sess,
		source:      source,
		feed:        feed,
		logger:      log,
		config:      cfg,
		orderOffset: -1,
		readBackoff: options.ReadBackoff,
	}
}

// Start launches the order processing loop.
func (e *Engine) Start(ctx context.Context) error {
	if e.source == nil {
		return ErrNoOrderSource
	}

	e.ctx, e.cancel = context.WithCancel(ctx)

	e.wg.Add(1)
	go e.runOrderProcessor()

	e.logger.Info("Engine started", logger.Field{
		Key:   "pair",
		Value: e.config.Pair,
	})

	return nil
}

// Stop gracefully shuts down the engine
func (e *Engine) Stop(ctx context.Context) error {
	if e.cancel != nil {
		e.cancel()
	}

	// Wait for the processor to finish with timeout
	done := make(chan struct{})
	go func() {
		e.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		e.logger.Info("Engine stopped gracefully")
		return nil
	case <-ctx.Done():
		e.logger.Warn("Engine stop timeout exceeded")
		return ctx.Err()
	}
}

// runOrderProcessor reads and processes orders in a single goroutine.
func (e *Engine) runOrderProcessor() {
	defer e.wg.Done()

	e.logger.Info("Starting order processor", logger.Field{
		Key:   "pair",
		Value: e.config.Pair,
	})

	// Resume after the last processed message when an offset is known;
	// a fresh engine starts from the reader's own initial position.
	if offset := e.getOrderOffset(); offset >= 0 {
		if err := e.source.SetOffset(offset + 1); err != nil {
			e.logger.Error(err, logger.Field{
				Key:   "action",
				Value: "seek_order_source",
			})
		}
	}

	for {
		select {
		case <-e.ctx.Done():
			e.logger.Info("Order processor shutting down")
			e.source.Close()
			return
		default:
			msg, payload, err := e.source.ReadMessage(e.ctx)
			if err != nil {
				if e.ctx.Err() != nil {
					continue
				}
				e.logger.ErrorContext(e.ctx, err, logger.Field{
					Key:   "action",
					Value: "read_order_message",
				})
				// Simple backoff
				time.Sleep(e.readBackoff)
				continue
			}

			if err := e.processPayload(payload); err != nil {
				e.logger.ErrorContext(e.ctx, err, logger.Field{
					Key:   "action",
					Value: "process_order",
				})
				continue
			}

			e.setOrderOffset(msg.Offset)
		}
	}
}

// processPayload submits a single order payload to the session and publishes
// any resulting trade.
func (e *Engine) processPayload(payload *ordersourcev1.OrderPayload) error {
	e.logger.Debug("Processing order",
		logger.Field{Key: "orderID", Value: payload.OrderID},
		logger.Field{Key: "side", Value: payload.Side},
		logger.Field{Key: "offset", Value: payload.Offset},
	)

	order := payload.ToOrder()

	trade, err := e.session.SubmitOrder(order)
	if err != nil {
		return err
	}
	if trade == nil {
		return nil
	}

	e.mu.Lock()
	e.totalTrades++
	total := e.totalTrades
	e.mu.Unlock()

	e.logger.Info("Trade executed",
		logger.Field{Key: "price", Value: trade.Price},
		logger.Field{Key: "qty", Value: trade.Qty},
		logger.Field{Key: "takerOrderID", Value: trade.TakerOrderID},
		logger.Field{Key: "makerOrderID", Value: trade.MakerOrderID},
		logger.Field{Key: "totalTrades", Value: total},
	)

	if e.feed != nil {
		event := tradefeedv1.CreateFromTrade(trade, order, e.config.Pair)
		if err := e.feed.PublishTrade(e.ctx, event); err != nil {
			// The trade already happened; a feed failure must not unwind it.
			e.logger.ErrorContext(e.ctx, err, logger.Field{
				Key:   "action",
				Value: "publish_trade",
			})
		}
	}

	return nil
}

// Thread-safe getters and setters
func (e *Engine) getOrderOffset() int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.orderOffset
}

func (e *Engine) setOrderOffset(offset int64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.orderOffset = offset
}

// GetOrderOffset returns the offset of the last processed order message.
func (e *Engine) GetOrderOffset() int64 {
	return e.getOrderOffset()
}

// GetTotalTrades returns the total number of trades executed by this engine.
func (e *Engine) GetTotalTrades() int64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.totalTrades
}
