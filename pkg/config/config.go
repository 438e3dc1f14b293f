package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// MustLoad loads the configuration from environment variables and .env file.
func MustLoad[T any](cfg T) {
	_ = godotenv.Load() // Load environment variables from .env file

	env.Must(cfg, env.Parse(cfg))
}

// Load loads the configuration from environment variables and .env file.
func Load[T any](cfg T) error {
	_ = godotenv.Load() // optional .env file

	return env.Parse(cfg)
}

// Config holds the configuration for the application
type Config struct {
	Pair            string                `env:"PAIR" envDefault:"BTC-USD"` // Trading pair the session runs on
	HTTPConfig      `envPrefix:"HTTP_"`   // Dashboard server configuration
	KafkaConfig     `envPrefix:"KAFKA_"`  // Order source configuration
	TradeFeedConfig `envPrefix:"TRADES_"` // Trade feed configuration
}

// HTTPConfig holds the configuration for the dashboard HTTP server.
type HTTPConfig struct {
	ListenAddr string `env:"LISTEN_ADDR" envDefault:":8080"`
}

// KafkaConfig holds the configuration for the Kafka order consumer.
// Leaving BROKER empty disables the Kafka order source. The reader is a
// plain partition reader with explicit offset seeks, so there is no
// consumer group to configure.
type KafkaConfig struct {
	Topic   string   `env:"TOPIC" envDefault:"orders"`
	Brokers []string `env:"BROKER"`
}

// TradeFeedConfig holds the configuration for the Kafka trade publisher.
// Leaving BROKER empty disables the feed.
type TradeFeedConfig struct {
	Topic   string   `env:"TOPIC" envDefault:"trades"`
	Brokers []string `env:"BROKER"`
}

// KafkaEnabled reports whether an order source broker is configured.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaConfig.Brokers) > 0
}

// TradeFeedEnabled reports whether a trade feed broker is configured.
func (c *Config) TradeFeedEnabled() bool {
	return len(c.TradeFeedConfig.Brokers) > 0
}
