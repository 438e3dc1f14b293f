package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	app "github.com/Nearezz/Trading-Exchange-Sandbox/internal/app/engine"
	tradefeedv1 "github.com/Nearezz/Trading-Exchange-Sandbox/internal/domain/trade-feed/v1"
	"github.com/Nearezz/Trading-Exchange-Sandbox/internal/server"
	"github.com/Nearezz/Trading-Exchange-Sandbox/internal/usecase/matcher"
	ordersource "github.com/Nearezz/Trading-Exchange-Sandbox/internal/usecase/order-source"
	"github.com/Nearezz/Trading-Exchange-Sandbox/internal/usecase/session"
	tradefeed "github.com/Nearezz/Trading-Exchange-Sandbox/internal/usecase/trade-feed"
	"github.com/Nearezz/Trading-Exchange-Sandbox/pkg/config"
	"github.com/Nearezz/Trading-Exchange-Sandbox/pkg/logger"
)

var cfg *config.Config
var log *logger.Logger

func init() {
	cfg = &config.Config{}
	config.MustLoad(cfg)

	l, err := logger.NewLogger()
	if err != nil {
		panic(err)
	}

	log = l
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	sess, err := session.New(matcher.PolicyExactMatchOnly)
	if err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "create_session",
		})
		return
	}

	var kafkaFeed tradefeedv1.TradeFeed
	if cfg.TradeFeedEnabled() {
		kafkaFeed = tradefeed.NewPublisher(cfg.TradeFeedConfig, log)
	}

	dashboard := server.New(sess, kafkaFeed, log, cfg.Pair)

	// The order-stream engine is optional; without a Kafka broker the
	// dashboard is the only write path.
	var engine *app.Engine
	if cfg.KafkaEnabled() {
		reader := ordersource.NewReader(cfg.KafkaConfig, log)

		// Fan executed trades into both the Kafka feed and the dashboard
		// websocket subscribers.
		feeds := tradefeed.Fanout{dashboard}
		if kafkaFeed != nil {
			feeds = append(feeds, kafkaFeed)
		}

		engine = app.NewEngine(sess, reader, feeds, log, cfg)
		if err := engine.Start(ctx); err != nil {
			log.Error(err, logger.Field{
				Key:   "action",
				Value: "start_engine",
			})
			return
		}
	}

	httpServer := &http.Server{
		Addr:    cfg.HTTPConfig.ListenAddr,
		Handler: dashboard.Routes(),
	}

	go func() {
		log.Info("Dashboard server listening", logger.Field{
			Key:   "addr",
			Value: cfg.HTTPConfig.ListenAddr,
		}, logger.Field{
			Key:   "pair",
			Value: cfg.Pair,
		})
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(err, logger.Field{
				Key:   "action",
				Value: "serve_http",
			})
		}
	}()

	sig := <-sigChan
	log.Info("Received shutdown signal", logger.Field{
		Key:   "signal",
		Value: sig.String(),
	})

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error(err, logger.Field{
			Key:   "action",
			Value: "shutdown_http",
		})
	}

	if engine != nil {
		if err := engine.Stop(shutdownCtx); err != nil {
			log.Error(err, logger.Field{
				Key:   "action",
				Value: "stop_engine",
			})
		}
	}

	log.Info("Shutdown complete")
}
