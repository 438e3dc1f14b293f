package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// orderPayload mirrors the order topic wire format.
type orderPayload struct {
	OrderID   int64  `json:"orderID"`
	Side      string `json:"side"`
	Price     int64  `json:"price"`
	Qty       int64  `json:"qty"`
	Timestamp int64  `json:"timestamp"`
}

// newOrderID creates a random order id, the same way the dashboard does for
// tickets submitted without one.
func newOrderID() int64 {
	return rand.Int63n(1_000_000_000) + 1
}

// generateOrders creates a batch of random limit orders around a base price.
// Quantities are drawn from a small set so that a realistic share of orders
// matches exactly under the exact-match-only policy.
func generateOrders(count int, basePrice, priceSpread int64) []orderPayload {
	quantities := []int64{1, 2, 5, 10, 25}

	orders := make([]orderPayload, count)
	for i := 0; i < count; i++ {
		side := "BUY"
		if rand.Float64() < 0.5 {
			side = "SELL"
		}

		price := basePrice + rand.Int63n(2*priceSpread+1) - priceSpread
		if price < 1 {
			price = 1
		}

		orders[i] = orderPayload{
			OrderID:   newOrderID(),
			Side:      side,
			Price:     price,
			Qty:       quantities[rand.Intn(len(quantities))],
			Timestamp: time.Now().UnixNano(),
		}
	}
	return orders
}

func main() {
	var (
		brokers    = flag.String("brokers", "localhost:9092", "comma-separated Kafka brokers")
		topic      = flag.String("topic", "orders", "order topic")
		count      = flag.Int("count", 100, "number of orders to publish")
		basePrice  = flag.Int64("base-price", 100, "center of the price band")
		spread     = flag.Int64("spread", 5, "max distance from the base price")
		intervalMs = flag.Int("interval-ms", 50, "delay between orders in milliseconds")
	)
	flag.Parse()

	writer := kafka.NewWriter(kafka.WriterConfig{
		Brokers: strings.Split(*brokers, ","),
		Topic:   *topic,
	})
	defer writer.Close()

	ctx := context.Background()
	orders := generateOrders(*count, *basePrice, *spread)

	log.Printf("publishing %d orders to %s (%s)", len(orders), *topic, *brokers)

	for i, order := range orders {
		value, err := json.Marshal(order)
		if err != nil {
			log.Fatalf("marshal order: %v", err)
		}

		if err := writer.WriteMessages(ctx, kafka.Message{Value: value}); err != nil {
			log.Fatalf("write message: %v", err)
		}

		if (i+1)%25 == 0 {
			log.Printf("published %d/%d", i+1, len(orders))
		}

		time.Sleep(time.Duration(*intervalMs) * time.Millisecond)
	}

	log.Printf("done: %d orders published", len(orders))
}
