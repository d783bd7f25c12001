package service

import (
	"fmt"
	"net"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/akaashdash/simulated-exchange/domain/orderbook"
	"github.com/akaashdash/simulated-exchange/infra/metrics"
	"github.com/akaashdash/simulated-exchange/infra/sequence"
)

var (
	ErrDuplicateTicker = errors.New("ticker already registered")
	ErrUnknownTicker   = errors.New("ticker not registered")
	ErrRunning         = errors.New("instrument set is immutable while the exchange is running")
	ErrAlreadyStarted  = errors.New("exchange is already running")
)

// Exchange is the only write entry point into the books. One goroutine per
// accepted connection; the accept loop and every session poll the running
// flag. The RW mutex guards the two maps and all order and book state.
type Exchange struct {
	log     *zap.Logger
	metrics *metrics.Metrics
	seq     *sequence.Sequencer
	running atomic.Bool

	mu     sync.RWMutex
	books  map[string]*orderbook.OrderBook
	orders map[orderbook.OrderID]*orderbook.Order

	lnMu sync.Mutex
	ln   net.Listener
	wg   sync.WaitGroup
}

func NewExchange(log *zap.Logger) *Exchange {
	return &Exchange{
		log:     log,
		metrics: metrics.New(),
		seq:     sequence.New(0),
		books:   make(map[string]*orderbook.OrderBook),
		orders:  make(map[orderbook.OrderID]*orderbook.Order),
	}
}

// Metrics exposes the exchange collectors for an admin listener.
func (e *Exchange) Metrics() *metrics.Metrics {
	return e.metrics
}

// AddInstrument registers an empty book. The instrument set is fixed while
// the exchange is running.
func (e *Exchange) AddInstrument(ticker string) error {
	if e.running.Load() {
		return ErrRunning
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.books[ticker]; ok {
		return ErrDuplicateTicker
	}
	e.books[ticker] = orderbook.NewOrderBook()
	return nil
}

// RemoveInstrument drops a registered book.
func (e *Exchange) RemoveInstrument(ticker string) error {
	if e.running.Load() {
		return ErrRunning
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.books[ticker]; !ok {
		return ErrUnknownTicker
	}
	delete(e.books, ticker)
	return nil
}

// Start listens on all interfaces and blocks in the accept loop until Stop
// is called; accept errors while running are logged and the loop goes on.
// Each accepted connection runs its own
// session goroutine; Start returns only after those have drained.
func (e *Exchange) Start(port int) error {
	if !e.running.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
	if err != nil {
		e.running.Store(false)
		return errors.Wrap(err, "exchange listen")
	}
	e.lnMu.Lock()
	e.ln = ln
	e.lnMu.Unlock()

	e.log.Info("exchange started", zap.String("addr", ln.Addr().String()))

	for e.running.Load() {
		conn, err := ln.Accept()
		if err != nil {
			if !e.running.Load() {
				break
			}
			e.log.Warn("accept failed", zap.Error(err))
			continue
		}
		e.wg.Add(1)
		go e.handleConn(conn)
	}

	ln.Close()
	e.wg.Wait()
	e.log.Info("exchange stopped")
	return nil
}

// Stop flips the running flag and closes the listener so the accept loop
// exits. Sessions terminate after their current read.
func (e *Exchange) Stop() {
	if !e.running.CompareAndSwap(true, false) {
		return
	}
	e.lnMu.Lock()
	if e.ln != nil {
		e.ln.Close()
	}
	e.lnMu.Unlock()
}

// Running reports whether the accept loop is live.
func (e *Exchange) Running() bool {
	return e.running.Load()
}

// Addr returns the bound listen address, or nil before Start.
func (e *Exchange) Addr() net.Addr {
	e.lnMu.Lock()
	defer e.lnMu.Unlock()
	if e.ln == nil {
		return nil
	}
	return e.ln.Addr()
}

// Order returns the registered order for id. Entries persist after fills
// and cancellations to serve status queries.
func (e *Exchange) Order(id orderbook.OrderID) (*orderbook.Order, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	o, ok := e.orders[id]
	return o, ok
}
