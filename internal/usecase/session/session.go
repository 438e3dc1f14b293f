package session

import (
	"sync"

	orderbookv1 "github.com/Nearezz/Trading-Exchange-Sandbox/internal/domain/orderbook/v1"
	"github.com/Nearezz/Trading-Exchange-Sandbox/internal/usecase/matcher"
	"github.com/Nearezz/Trading-Exchange-Sandbox/internal/usecase/orderbook"
)

// Session owns one order book and one matching engine for the duration of a
// trading session. The core itself provides no locking; the session is the
// single writer and serializes every call with one exclusive lock, so it is
// safe to share between the order-processing loop and the dashboard server.
//
// Reset discards book and engine together and installs fresh empty
// instances; no state survives a reset.
type Session struct {
	mu     sync.Mutex
	policy matcher.Policy
	book   *orderbook.Orderbook
	engine *matcher.Engine
}

// New creates a session with a fresh empty book and engine.
func New(policy matcher.Policy) (*Session, error) {
	s := &Session{policy: policy}
	if err := s.install(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) install() error {
	book := orderbook.NewOrderbook()
	engine, err := matcher.NewEngineWithPolicy(book, s.policy)
	if err != nil {
		return err
	}
	s.book = book
	s.engine = engine
	return nil
}

// SubmitOrder processes one order and returns the trade it produced, if any.
func (s *Session) SubmitOrder(order orderbookv1.Order) (*orderbookv1.Trade, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.SubmitOrder(order)
}

// TopOfBook returns the current best bid and ask.
func (s *Session) TopOfBook() matcher.TopOfBook {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.TopOfBook()
}

// LastTrade returns the most recent trade, or nil before the first match.
func (s *Session) LastTrade() *orderbookv1.Trade {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.LastTrade()
}

// Bids returns the aggregate bid depth, price to total resting quantity.
func (s *Session) Bids() map[int64]int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book.Bids()
}

// Asks returns the aggregate ask depth, price to total resting quantity.
func (s *Session) Asks() map[int64]int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.book.Asks()
}

// Reset discards the book and engine and starts an empty session.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	// install only fails on an invalid policy, which New already rejected.
	_ = s.install()
}
