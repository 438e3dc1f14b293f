package matcher

import (
	"errors"
	"testing"

	orderbookv1 "github.com/Nearezz/Trading-Exchange-Sandbox/internal/domain/orderbook/v1"
	"github.com/Nearezz/Trading-Exchange-Sandbox/internal/usecase/orderbook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) (*Engine, *orderbook.Orderbook) {
	t.Helper()
	ob := orderbook.NewOrderbook()
	return NewEngine(ob), ob
}

func buy(id, price, qty int64) orderbookv1.Order {
	return orderbookv1.NewOrder(id, orderbookv1.SideBuy, price, qty, id)
}

func sell(id, price, qty int64) orderbookv1.Order {
	return orderbookv1.NewOrder(id, orderbookv1.SideSell, price, qty, id)
}

func TestNewEngineWithPolicy(t *testing.T) {
	ob := orderbook.NewOrderbook()

	engine, err := NewEngineWithPolicy(ob, PolicyExactMatchOnly)
	require.NoError(t, err)
	assert.NotNil(t, engine)

	_, err = NewEngineWithPolicy(ob, Policy("greedy_sweep"))
	assert.Error(t, err)
}

// Submitting to an empty book never produces a trade; the order rests whole.
func TestEngine_SubmitOrder_EmptyBook(t *testing.T) {
	engine, ob := newTestEngine(t)

	trade, err := engine.SubmitOrder(buy(1, 100, 10))
	require.NoError(t, err)
	assert.Nil(t, trade)

	assert.Equal(t, map[int64]int64{100: 10}, ob.Bids())
	assert.Empty(t, ob.Asks())
	assert.Nil(t, engine.LastTrade())
}

// Non-crossing prices rest on their own side and leave the opposing side alone.
func TestEngine_SubmitOrder_NoCross(t *testing.T) {
	engine, ob := newTestEngine(t)

	_, err := engine.SubmitOrder(buy(1, 100, 10))
	require.NoError(t, err)

	trade, err := engine.SubmitOrder(sell(2, 105, 10))
	require.NoError(t, err)
	assert.Nil(t, trade)

	assert.Equal(t, map[int64]int64{100: 10}, ob.Bids())
	assert.Equal(t, map[int64]int64{105: 10}, ob.Asks())
}

// Crossing with an exactly equal quantity produces one trade at the maker's
// price and removes the maker; the emptied level disappears.
func TestEngine_SubmitOrder_ExactMatch(t *testing.T) {
	engine, ob := newTestEngine(t)

	_, err := engine.SubmitOrder(buy(1, 100, 10))
	require.NoError(t, err)

	trade, err := engine.SubmitOrder(sell(2, 100, 10))
	require.NoError(t, err)
	require.NotNil(t, trade)

	assert.Equal(t, int64(100), trade.Price)
	assert.Equal(t, int64(10), trade.Qty)
	assert.Equal(t, int64(2), trade.TakerOrderID)
	assert.Equal(t, int64(1), trade.MakerOrderID)

	assert.Empty(t, ob.Bids())
	assert.Empty(t, ob.Asks())
}

// A taker priced through the book still prints at the maker's price.
func TestEngine_SubmitOrder_PrintsAtMakerPrice(t *testing.T) {
	engine, _ := newTestEngine(t)

	_, err := engine.SubmitOrder(sell(1, 105, 10))
	require.NoError(t, err)

	trade, err := engine.SubmitOrder(buy(2, 110, 10))
	require.NoError(t, err)
	require.NotNil(t, trade)
	assert.Equal(t, int64(105), trade.Price)
}

// Two orders on the same side never trade against each other.
func TestEngine_SubmitOrder_SameSideNeverTrades(t *testing.T) {
	engine, ob := newTestEngine(t)

	_, err := engine.SubmitOrder(buy(1, 100, 10))
	require.NoError(t, err)

	trade, err := engine.SubmitOrder(buy(2, 100, 10))
	require.NoError(t, err)
	assert.Nil(t, trade)

	trade, err = engine.SubmitOrder(buy(3, 95, 10))
	require.NoError(t, err)
	assert.Nil(t, trade)

	assert.Equal(t, map[int64]int64{100: 20, 95: 10}, ob.Bids())
}

// FIFO: at one price level the order submitted first matches first.
func TestEngine_SubmitOrder_FIFO(t *testing.T) {
	engine, _ := newTestEngine(t)

	_, err := engine.SubmitOrder(buy(1, 100, 10))
	require.NoError(t, err)
	_, err = engine.SubmitOrder(buy(2, 100, 10))
	require.NoError(t, err)

	trade, err := engine.SubmitOrder(sell(3, 100, 10))
	require.NoError(t, err)
	require.NotNil(t, trade)
	assert.Equal(t, int64(1), trade.MakerOrderID)

	trade, err = engine.SubmitOrder(sell(4, 100, 10))
	require.NoError(t, err)
	require.NotNil(t, trade)
	assert.Equal(t, int64(2), trade.MakerOrderID)
}

// Quantity mismatch: the price crosses but no trade happens; the incoming
// order rests and a crossed book state persists.
func TestEngine_SubmitOrder_QuantityMismatchRests(t *testing.T) {
	engine, ob := newTestEngine(t)

	_, err := engine.SubmitOrder(buy(1, 100, 10))
	require.NoError(t, err)

	trade, err := engine.SubmitOrder(sell(2, 100, 5))
	require.NoError(t, err)
	assert.Nil(t, trade)

	// Both sides now rest at 100: the documented exact-match-only limitation.
	assert.Equal(t, map[int64]int64{100: 10}, ob.Bids())
	assert.Equal(t, map[int64]int64{100: 5}, ob.Asks())
	assert.Nil(t, engine.LastTrade())
}

// The mismatch branch never consumes multiple resting orders even when their
// combined quantity would satisfy the taker.
func TestEngine_SubmitOrder_NeverLooksPastFront(t *testing.T) {
	engine, ob := newTestEngine(t)

	_, err := engine.SubmitOrder(sell(1, 100, 4))
	require.NoError(t, err)
	_, err = engine.SubmitOrder(sell(2, 100, 6))
	require.NoError(t, err)

	trade, err := engine.SubmitOrder(buy(3, 100, 10))
	require.NoError(t, err)
	assert.Nil(t, trade)

	assert.Equal(t, map[int64]int64{100: 10}, ob.Asks())
	assert.Equal(t, map[int64]int64{100: 10}, ob.Bids())
}

func TestEngine_SubmitOrder_Validation(t *testing.T) {
	engine, ob := newTestEngine(t)

	testCases := []struct {
		name        string
		order       orderbookv1.Order
		expectedErr error
	}{
		{
			name:        "unknown side",
			order:       orderbookv1.NewOrder(1, orderbookv1.Side("HOLD"), 100, 10, 1),
			expectedErr: orderbookv1.ErrInvalidSide,
		},
		{
			name:        "non-positive price",
			order:       buy(2, 0, 10),
			expectedErr: orderbookv1.ErrInvalidPrice,
		},
		{
			name:        "non-positive quantity",
			order:       sell(3, 100, -1),
			expectedErr: orderbookv1.ErrInvalidQty,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			trade, err := engine.SubmitOrder(tc.order)
			assert.Nil(t, trade)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.expectedErr))
		})
	}

	// Rejected orders never touch the book.
	assert.Empty(t, ob.Bids())
	assert.Empty(t, ob.Asks())
}

func TestEngine_TopOfBook(t *testing.T) {
	engine, _ := newTestEngine(t)

	top := engine.TopOfBook()
	assert.Nil(t, top.Bid)
	assert.Nil(t, top.Ask)

	_, err := engine.SubmitOrder(buy(1, 100, 10))
	require.NoError(t, err)
	_, err = engine.SubmitOrder(sell(2, 105, 10))
	require.NoError(t, err)

	top = engine.TopOfBook()
	require.NotNil(t, top.Bid)
	require.NotNil(t, top.Ask)
	assert.Equal(t, orderbookv1.Quote{Price: 100, Qty: 10}, *top.Bid)
	assert.Equal(t, orderbookv1.Quote{Price: 105, Qty: 10}, *top.Ask)
}

func TestEngine_LastTrade(t *testing.T) {
	engine, _ := newTestEngine(t)

	assert.Nil(t, engine.LastTrade())

	_, err := engine.SubmitOrder(buy(1, 100, 10))
	require.NoError(t, err)
	trade, err := engine.SubmitOrder(sell(2, 100, 10))
	require.NoError(t, err)
	assert.Equal(t, trade, engine.LastTrade())

	// Overwritten on every successful match.
	_, err = engine.SubmitOrder(buy(3, 101, 7))
	require.NoError(t, err)
	trade2, err := engine.SubmitOrder(sell(4, 101, 7))
	require.NoError(t, err)
	assert.Equal(t, trade2, engine.LastTrade())
	assert.NotEqual(t, trade, engine.LastTrade())
}

// Scenario walk from the dashboard demo: A through D.
func TestEngine_ScenarioWalk(t *testing.T) {
	engine, ob := newTestEngine(t)

	// A: BUY 10 @ 100 rests.
	trade, err := engine.SubmitOrder(buy(1, 100, 10))
	require.NoError(t, err)
	assert.Nil(t, trade)
	top := engine.TopOfBook()
	assert.Equal(t, orderbookv1.Quote{Price: 100, Qty: 10}, *top.Bid)
	assert.Nil(t, top.Ask)

	// B: SELL 10 @ 105 does not cross.
	trade, err = engine.SubmitOrder(sell(2, 105, 10))
	require.NoError(t, err)
	assert.Nil(t, trade)
	top = engine.TopOfBook()
	assert.Equal(t, orderbookv1.Quote{Price: 100, Qty: 10}, *top.Bid)
	assert.Equal(t, orderbookv1.Quote{Price: 105, Qty: 10}, *top.Ask)

	// C: SELL 10 @ 100 matches A.
	trade, err = engine.SubmitOrder(sell(3, 100, 10))
	require.NoError(t, err)
	require.NotNil(t, trade)
	assert.Equal(t, orderbookv1.Trade{Price: 100, Qty: 10, TakerOrderID: 3, MakerOrderID: 1}, *trade)
	top = engine.TopOfBook()
	assert.Nil(t, top.Bid)
	assert.Equal(t, orderbookv1.Quote{Price: 105, Qty: 10}, *top.Ask)

	// D: BUY 10 @ 100 rests, then SELL 5 @ 100 crosses but mismatches.
	_, err = engine.SubmitOrder(buy(4, 100, 10))
	require.NoError(t, err)
	trade, err = engine.SubmitOrder(sell(5, 100, 5))
	require.NoError(t, err)
	assert.Nil(t, trade)
	assert.Equal(t, int64(10), ob.Bids()[100])
	assert.Equal(t, int64(5), ob.Asks()[100])
}
