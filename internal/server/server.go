package server

import (
	"context"
	"encoding/json"
	"math/rand"
	"net/http"
	"sync"
	"time"

	orderbookv1 "github.com/Nearezz/Trading-Exchange-Sandbox/internal/domain/orderbook/v1"
	tradefeedv1 "github.com/Nearezz/Trading-Exchange-Sandbox/internal/domain/trade-feed/v1"
	"github.com/Nearezz/Trading-Exchange-Sandbox/internal/usecase/matcher"
	"github.com/Nearezz/Trading-Exchange-Sandbox/internal/usecase/session"
	"github.com/Nearezz/Trading-Exchange-Sandbox/pkg/logger"
	"github.com/Nearezz/Trading-Exchange-Sandbox/pkg/util"
	"github.com/gorilla/websocket"
)

const bookStreamInterval = time.Second

// Server is the dashboard surface over one trading session: order ticket,
// book views, last trade, reset, and websocket streams. Everything it does
// goes through the session's public operations; it holds no book state of
// its own.
type Server struct {
	session  *session.Session
	feed     tradefeedv1.TradeFeed // optional downstream feed (e.g. Kafka)
	logger   *logger.Logger
	pair     string
	upgrader websocket.Upgrader
	tradeHub *hub[*tradefeedv1.TradeEvent]

	logMu    sync.Mutex
	orderLog []orderLogEntry
}

// New creates a dashboard server over the given session. The feed may be
// nil; trades submitted over HTTP are then only broadcast to websocket
// subscribers.
func New(sess *session.Session, feed tradefeedv1.TradeFeed, log *logger.Logger, pair string) *Server {
	return &Server{
		session:  sess,
		feed:     feed,
		logger:   log,
		pair:     pair,
		upgrader: websocket.Upgrader{CheckOrigin: func(*http.Request) bool { return true }},
		tradeHub: newHub[*tradefeedv1.TradeEvent](),
	}
}

// PublishTrade broadcasts a trade event to websocket subscribers. It
// implements the trade feed interface so the order-stream engine can fan
// trades into the dashboard as well.
func (s *Server) PublishTrade(_ context.Context, event *tradefeedv1.TradeEvent) error {
	s.tradeHub.Broadcast(event)
	return nil
}

// Routes returns the HTTP handler for the dashboard.
func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/orders", s.withRequestID(http.HandlerFunc(s.handleOrder)))
	mux.Handle("/orders/log", s.withRequestID(http.HandlerFunc(s.handleOrderLog)))
	mux.Handle("/book", s.withRequestID(http.HandlerFunc(s.handleBook)))
	mux.Handle("/top", s.withRequestID(http.HandlerFunc(s.handleTop)))
	mux.Handle("/trades/last", s.withRequestID(http.HandlerFunc(s.handleLastTrade)))
	mux.Handle("/reset", s.withRequestID(http.HandlerFunc(s.handleReset)))
	mux.Handle("/ws/trades", http.HandlerFunc(s.handleTradeStream))
	mux.Handle("/ws/book", http.HandlerFunc(s.handleBookStream))
	return mux
}

func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := util.WithRequestID(r.Context(), r.Header.Get("X-Request-Id"))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

type orderRequest struct {
	OrderID int64  `json:"orderID"`
	Side    string `json:"side"`
	Price   int64  `json:"price"`
	Qty     int64  `json:"qty"`
}

type orderResponse struct {
	OrderID int64              `json:"orderID"`
	Status  string             `json:"status"` // "resting" or "filled"
	Trade   *orderbookv1.Trade `json:"trade,omitempty"`
}

// orderLogEntry is one accepted submission in the session's order log.
type orderLogEntry struct {
	Timestamp int64  `json:"timestamp"`
	OrderID   int64  `json:"orderID"`
	Side      string `json:"side"`
	Price     int64  `json:"price"`
	Qty       int64  `json:"qty"`
	Traded    bool   `json:"traded"`
}

type orderLogResponse struct {
	Orders []orderLogEntry `json:"orders"`
}

type bookResponse struct {
	Bids map[int64]int64 `json:"bids"`
	Asks map[int64]int64 `json:"asks"`
}

type lastTradeResponse struct {
	Trade *orderbookv1.Trade `json:"trade"`
}

func (s *Server) handleOrder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req orderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	// The id/timestamp glue lives here, outside the core: the book only
	// ever sees fully-formed orders.
	if req.OrderID == 0 {
		req.OrderID = newOrderID()
	}
	order := orderbookv1.NewOrder(req.OrderID, orderbookv1.Side(req.Side), req.Price, req.Qty, time.Now().UnixNano())

	trade, err := s.session.SubmitOrder(order)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	s.logger.InfoContext(r.Context(), "Order submitted",
		logger.Field{Key: "orderID", Value: order.ID},
		logger.Field{Key: "side", Value: order.Side},
		logger.Field{Key: "price", Value: order.Price},
		logger.Field{Key: "qty", Value: order.Qty},
		logger.Field{Key: "filled", Value: trade != nil},
	)

	s.appendOrderLog(order, trade != nil)

	resp := orderResponse{OrderID: order.ID, Status: "resting"}
	if trade != nil {
		resp.Status = "filled"
		resp.Trade = trade
		s.publishTrade(r.Context(), trade, order)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) appendOrderLog(order orderbookv1.Order, traded bool) {
	s.logMu.Lock()
	defer s.logMu.Unlock()
	s.orderLog = append(s.orderLog, orderLogEntry{
		Timestamp: order.Timestamp,
		OrderID:   order.ID,
		Side:      string(order.Side),
		Price:     order.Price,
		Qty:       order.Qty,
		Traded:    traded,
	})
}

func (s *Server) handleOrderLog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	s.logMu.Lock()
	entries := make([]orderLogEntry, len(s.orderLog))
	copy(entries, s.orderLog)
	s.logMu.Unlock()

	writeJSON(w, http.StatusOK, orderLogResponse{Orders: entries})
}

func (s *Server) publishTrade(ctx context.Context, trade *orderbookv1.Trade, taker orderbookv1.Order) {
	event := tradefeedv1.CreateFromTrade(trade, taker, s.pair)
	s.tradeHub.Broadcast(event)
	if s.feed != nil {
		if err := s.feed.PublishTrade(ctx, event); err != nil {
			s.logger.ErrorContext(ctx, err, logger.Field{
				Key:   "action",
				Value: "publish_trade",
			})
		}
	}
}

func (s *Server) handleBook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, bookResponse{
		Bids: s.session.Bids(),
		Asks: s.session.Asks(),
	})
}

func (s *Server) handleTop(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, s.session.TopOfBook())
}

func (s *Server) handleLastTrade(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, lastTradeResponse{Trade: s.session.LastTrade()})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	s.session.Reset()

	s.logMu.Lock()
	s.orderLog = nil
	s.logMu.Unlock()

	s.logger.InfoContext(r.Context(), "Session reset", logger.Field{
		Key:   "pair",
		Value: s.pair,
	})
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

type outboundMessage struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

func (s *Server) handleTradeStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	sub := s.tradeHub.Subscribe(32)
	defer s.tradeHub.Unsubscribe(sub)

	for event := range sub.ch {
		msg := outboundMessage{Type: "trade", Data: event}
		if err := conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

func (s *Server) handleBookStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ticker := time.NewTicker(bookStreamInterval)
	defer ticker.Stop()

	var last *matcher.TopOfBook
	for range ticker.C {
		top := s.session.TopOfBook()
		if last != nil && topEqual(*last, top) {
			continue
		}
		last = &top

		msg := outboundMessage{Type: "book", Data: top}
		if err := conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

func topEqual(a, b matcher.TopOfBook) bool {
	return quoteEqual(a.Bid, b.Bid) && quoteEqual(a.Ask, b.Ask)
}

func quoteEqual(a, b *orderbookv1.Quote) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// newOrderID generates a random order id for tickets submitted without one.
func newOrderID() int64 {
	return rand.Int63n(1_000_000_000) + 1
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}
