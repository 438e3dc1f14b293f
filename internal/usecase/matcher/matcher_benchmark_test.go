package matcher

import (
	"testing"

	orderbookv1 "github.com/Nearezz/Trading-Exchange-Sandbox/internal/domain/orderbook/v1"
	"github.com/Nearezz/Trading-Exchange-Sandbox/internal/usecase/orderbook"
)

func BenchmarkEngine_SubmitOrder_Resting(b *testing.B) {
	engine := NewEngine(orderbook.NewOrderbook())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		// Spread bids over a price band so levels accumulate.
		price := int64(100 + i%50)
		_, err := engine.SubmitOrder(orderbookv1.NewOrder(int64(i), orderbookv1.SideBuy, price, 10, int64(i)))
		if err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEngine_SubmitOrder_MatchPairs(b *testing.B) {
	engine := NewEngine(orderbook.NewOrderbook())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		id := int64(i * 2)
		if _, err := engine.SubmitOrder(orderbookv1.NewOrder(id, orderbookv1.SideBuy, 100, 10, id)); err != nil {
			b.Fatal(err)
		}
		if _, err := engine.SubmitOrder(orderbookv1.NewOrder(id+1, orderbookv1.SideSell, 100, 10, id+1)); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEngine_TopOfBook(b *testing.B) {
	engine := NewEngine(orderbook.NewOrderbook())
	for i := 0; i < 100; i++ {
		price := int64(100 + i)
		if _, err := engine.SubmitOrder(orderbookv1.NewOrder(int64(i), orderbookv1.SideSell, price, 5, int64(i))); err != nil {
			b.Fatal(err)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = engine.TopOfBook()
	}
}
