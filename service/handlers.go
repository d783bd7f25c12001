package service

import (
	"math"

	"github.com/akaashdash/simulated-exchange/domain/orderbook"
	"github.com/akaashdash/simulated-exchange/wire/fix"
)

// dispatch routes one decoded request to its handler and always yields a
// single response frame.
func (e *Exchange) dispatch(msg *fix.Message) *fix.Message {
	switch msg.MsgType {
	case fix.MsgTypeNewOrder:
		return e.handleNewOrder(msg)
	case fix.MsgTypeCancel:
		return e.handleCancel(msg)
	case fix.MsgTypeStatus:
		return e.handleStatus(msg)
	default:
		return e.reject("Unsupported message type")
	}
}

// -------------------- New order (D) --------------------

func (e *Exchange) handleNewOrder(msg *fix.Message) *fix.Message {
	ticker, ok := msg.Get(fix.TagSymbol)
	if !ok || ticker == "" {
		return e.reject("Invalid symbol")
	}

	side, ok := decodeSide(msg)
	if !ok {
		return e.reject("Invalid side")
	}
	otype, ok := decodeOrdType(msg)
	if !ok {
		return e.reject("Invalid order type")
	}
	price, ok := msg.GetUint(fix.TagPrice)
	if !ok || price > math.MaxUint32 {
		return e.reject("Invalid price")
	}
	quantity, ok := msg.GetUint(fix.TagOrderQty)
	if !ok || quantity > math.MaxUint32 {
		return e.reject("Invalid quantity")
	}

	e.mu.RLock()
	_, exists := e.books[ticker]
	e.mu.RUnlock()
	if !exists {
		return e.reject("Invalid symbol")
	}

	// The symbol is valid; only now does the order burn an id.
	e.mu.Lock()
	id := e.seq.Next()
	order, err := orderbook.NewOrder(id, ticker, orderbook.Price(price), orderbook.Quantity(quantity), side, otype)
	if err != nil {
		e.mu.Unlock()
		return e.reject("Order placement failed")
	}
	e.orders[id] = order
	placed, err := e.books[ticker].PlaceOrder(order)
	e.mu.Unlock()

	if err != nil || !placed {
		return e.reject("Order placement failed")
	}

	e.metrics.OrdersAccepted.Inc()
	return serverMessage(fix.MsgTypeExecReport).
		SetUint(fix.TagOrderID, order.ID).
		Set(fix.TagExecType, fix.ExecTypeNew).
		Set(fix.TagOrdStatus, fix.OrdStatusNew).
		Set(fix.TagSymbol, order.Ticker).
		Set(fix.TagSide, encodeSide(order.Side)).
		Set(fix.TagOrdType, encodeOrdType(order.Type)).
		SetUint(fix.TagOrderQty, uint64(order.Quantity)).
		SetUint(fix.TagPrice, uint64(order.Price))
}

// -------------------- Cancel (F) --------------------

func (e *Exchange) handleCancel(msg *fix.Message) *fix.Message {
	id, ok := msg.GetUint(fix.TagOrderID)
	if !ok {
		return e.reject("Invalid order ID")
	}

	e.mu.RLock()
	_, exists := e.orders[id]
	e.mu.RUnlock()
	if !exists {
		return e.reject("Invalid order ID")
	}

	e.mu.Lock()
	order := e.orders[id]
	// A filled or already-cancelled order is no longer resting anywhere;
	// the book turns those down and the client gets a reject.
	err := e.books[order.Ticker].CancelOrder(id)
	if err == nil {
		err = order.SetStatus(orderbook.Cancelled)
	}
	e.mu.Unlock()

	if err != nil {
		return e.reject("Order cancellation failed")
	}

	e.metrics.OrdersCanceled.Inc()
	return serverMessage(fix.MsgTypeExecReport).
		SetUint(fix.TagOrderID, id).
		Set(fix.TagExecType, fix.ExecTypeCancel).
		Set(fix.TagOrdStatus, fix.OrdStatusCancelled)
}

// -------------------- Status (H) --------------------

func (e *Exchange) handleStatus(msg *fix.Message) *fix.Message {
	id, ok := msg.GetUint(fix.TagOrderID)
	if !ok {
		return e.reject("Invalid order ID")
	}

	e.mu.RLock()
	defer e.mu.RUnlock()

	order, exists := e.orders[id]
	if !exists {
		return e.reject("Invalid order ID")
	}

	return serverMessage(fix.MsgTypeExecReport).
		SetUint(fix.TagOrderID, order.ID).
		Set(fix.TagExecType, fix.ExecTypeStatus).
		Set(fix.TagOrdStatus, encodeOrdStatus(order)).
		Set(fix.TagSymbol, order.Ticker).
		Set(fix.TagSide, encodeSide(order.Side)).
		Set(fix.TagOrdType, encodeOrdType(order.Type)).
		SetUint(fix.TagOrderQty, uint64(order.Quantity)).
		SetUint(fix.TagCumQty, uint64(order.Filled)).
		SetUint(fix.TagLeavesQty, uint64(order.Remaining())).
		SetUint(fix.TagPrice, uint64(order.Price))
}

func (e *Exchange) reject(text string) *fix.Message {
	e.metrics.OrdersRejected.Inc()
	return serverMessage(fix.MsgTypeReject).
		Set(fix.TagText, text)
}

// -------------------- Wire converters --------------------

func decodeSide(msg *fix.Message) (orderbook.Side, bool) {
	switch v, _ := msg.Get(fix.TagSide); v {
	case fix.SideBid:
		return orderbook.Bid, true
	case fix.SideAsk:
		return orderbook.Ask, true
	default:
		return 0, false
	}
}

func encodeSide(s orderbook.Side) string {
	if s == orderbook.Ask {
		return fix.SideAsk
	}
	return fix.SideBid
}

func decodeOrdType(msg *fix.Message) (orderbook.OrderType, bool) {
	switch v, _ := msg.Get(fix.TagOrdType); v {
	case fix.OrdTypeGTC:
		return orderbook.GoodTilCanceled, true
	case fix.OrdTypeFOK:
		return orderbook.FillOrKill, true
	case fix.OrdTypeIOC:
		return orderbook.ImmediateOrCancel, true
	default:
		return 0, false
	}
}

func encodeOrdType(t orderbook.OrderType) string {
	switch t {
	case orderbook.FillOrKill:
		return fix.OrdTypeFOK
	case orderbook.ImmediateOrCancel:
		return fix.OrdTypeIOC
	default:
		return fix.OrdTypeGTC
	}
}

func encodeOrdStatus(o *orderbook.Order) string {
	switch o.Status {
	case orderbook.Closed:
		return fix.OrdStatusFilled
	case orderbook.Cancelled:
		return fix.OrdStatusCancelled
	default:
		if o.Filled == 0 {
			return fix.OrdStatusNew
		}
		return fix.OrdStatusPartial
	}
}
