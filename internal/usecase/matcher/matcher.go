package matcher

import (
	"fmt"

	orderbookv1 "github.com/Nearezz/Trading-Exchange-Sandbox/internal/domain/orderbook/v1"
	apperrors "github.com/Nearezz/Trading-Exchange-Sandbox/pkg/errors"
)

// Policy selects the crossing algorithm used by the engine. Book mechanics
// are policy-independent; swapping the policy never touches level storage.
type Policy string

const (
	// PolicyExactMatchOnly matches an incoming order only against the single
	// order at the front of the opposing best level, and only when the two
	// quantities are exactly equal. No partial fills, no multi-order sweep.
	// An incoming order that crosses but mismatches on quantity rests on its
	// own side, which can leave the book in a crossed state.
	PolicyExactMatchOnly Policy = "exact_match_only"
)

// Valid reports whether the policy is implemented.
func (p Policy) Valid() bool {
	return p == PolicyExactMatchOnly
}

// TopOfBook summarizes the best level of each side. A nil quote means the
// side is empty.
type TopOfBook struct {
	Bid *orderbookv1.Quote `json:"bid"`
	Ask *orderbookv1.Quote `json:"ask"`
}

// Engine is the matching engine for one order book. Beyond the last-trade
// slot it is stateless; all resting state lives in the book.
//
// Engine is not safe for concurrent use. The session serializes all access.
type Engine struct {
	book      orderbookv1.Book
	policy    Policy
	lastTrade *orderbookv1.Trade
}

// NewEngine creates a matching engine over the given book using the
// exact-match-only policy.
func NewEngine(book orderbookv1.Book) *Engine {
	engine, _ := NewEngineWithPolicy(book, PolicyExactMatchOnly)
	return engine
}

// NewEngineWithPolicy creates a matching engine with an explicit policy.
func NewEngineWithPolicy(book orderbookv1.Book, policy Policy) (*Engine, error) {
	if !policy.Valid() {
		return nil, fmt.Errorf("unknown matching policy %q", policy)
	}
	return &Engine{
		book:   book,
		policy: policy,
	}, nil
}

// SubmitOrder processes one incoming order synchronously and returns the
// trade it produced, or nil when the order rested. The order is atomically
// either fully matched and gone or fully resting; there is no partially
// filled state.
func (e *Engine) SubmitOrder(order orderbookv1.Order) (*orderbookv1.Trade, error) {
	if err := order.Validate(); err != nil {
		return nil, apperrors.NewTracer(fmt.Sprintf("order %d rejected: %s", order.ID, err)).
			WithCode(apperrors.ErrInvalidOrder).
			Wrap(err)
	}

	var best *orderbookv1.Quote
	if order.IsBid() {
		best = e.book.BestAsk()
	} else {
		best = e.book.BestBid()
	}

	// Empty opposing book, or the price does not cross: rest the order.
	if best == nil || !crosses(order, best.Price) {
		e.book.Add(order)
		return nil, nil
	}

	// The price crosses. Inspect only the front order of the opposing best
	// level; the algorithm never looks past it.
	opposing := order.Side.Opposite()
	maker, ok := e.book.Front(opposing, best.Price)
	if !ok {
		// Unreachable while the level-present-iff-nonempty invariant holds.
		e.book.Add(order)
		return nil, nil
	}

	if maker.Qty != order.Qty {
		// Quantity mismatch under exact-match-only: the maker is left
		// untouched and the incoming order rests even though it crosses.
		e.book.Add(order)
		return nil, nil
	}

	if _, err := e.book.RemoveFront(opposing, best.Price); err != nil {
		return nil, err
	}

	trade := &orderbookv1.Trade{
		Price:        maker.Price,
		Qty:          order.Qty,
		TakerOrderID: order.ID,
		MakerOrderID: maker.ID,
	}
	e.lastTrade = trade

	return trade, nil
}

// TopOfBook returns the best bid and ask quotes. Pure read, no mutation.
func (e *Engine) TopOfBook() TopOfBook {
	return TopOfBook{
		Bid: e.book.BestBid(),
		Ask: e.book.BestAsk(),
	}
}

// LastTrade returns the most recent trade of the session, or nil until the
// first successful match.
func (e *Engine) LastTrade() *orderbookv1.Trade {
	return e.lastTrade
}

// crosses reports whether the incoming limit price is compatible with
// trading against the opposing best price.
func crosses(order orderbookv1.Order, bestPrice int64) bool {
	if order.IsBid() {
		return order.Price >= bestPrice
	}
	return order.Price <= bestPrice
}
