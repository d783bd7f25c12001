// Package client is a convenience wrapper over the exchange's FIX wire:
// one connection, one logon, and a blocking request/response call per
// operation.
package client

import (
	"net"
	"strconv"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"

	"github.com/akaashdash/simulated-exchange/domain/orderbook"
	"github.com/akaashdash/simulated-exchange/wire/fix"
)

const readBufferSize = 1024

var (
	ErrInvalidHost = errors.New("exchange host is invalid")
	ErrNotStarted  = errors.New("client is not connected")
)

// Client tracks the ids it has been acked for, so cancels and status
// queries on foreign ids fail locally instead of on the wire.
type Client struct {
	conn   net.Conn
	buf    []byte
	orders map[orderbook.OrderID]struct{}
}

func New() *Client {
	return &Client{
		buf:    make([]byte, readBufferSize),
		orders: make(map[orderbook.OrderID]struct{}),
	}
}

// Start connects to the exchange and performs the logon handshake. The dial
// is retried briefly with exponential backoff to ride out a server that is
// still binding its listener.
func (c *Client) Start(host string, port int) error {
	if host == "" {
		return ErrInvalidHost
	}
	addr := net.JoinHostPort(host, strconv.Itoa(port))

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 50 * time.Millisecond
	policy.MaxElapsedTime = 2 * time.Second

	conn, err := backoff.RetryWithData(func() (net.Conn, error) {
		return net.Dial("tcp", addr)
	}, policy)
	if err != nil {
		return errors.Wrap(err, "connect to exchange")
	}
	c.conn = conn

	if err := c.logon(); err != nil {
		c.Stop()
		return err
	}
	return nil
}

// Stop closes the connection. Safe to call twice.
func (c *Client) Stop() {
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
}

func (c *Client) logon() error {
	logon := clientMessage(fix.MsgTypeLogon).
		SetUint(fix.TagEncryptMethod, 0)

	resp, err := c.roundTrip(logon)
	if err != nil {
		return errors.Wrap(err, "logon")
	}
	if resp.MsgType != fix.MsgTypeLogon {
		return errors.New("incorrect logon response received")
	}
	return nil
}

// PlaceOrder submits a new order and reports whether it was acked. Acked
// ids are tracked for later cancel/status calls.
func (c *Client) PlaceOrder(ticker string, side orderbook.Side, otype orderbook.OrderType, price orderbook.Price, quantity orderbook.Quantity) bool {
	req := clientMessage(fix.MsgTypeNewOrder).
		Set(fix.TagSymbol, ticker).
		Set(fix.TagSide, encodeSide(side)).
		Set(fix.TagOrdType, encodeOrdType(otype)).
		SetUint(fix.TagPrice, uint64(price)).
		SetUint(fix.TagOrderQty, uint64(quantity))

	resp, err := c.roundTrip(req)
	if err != nil || resp.MsgType != fix.MsgTypeExecReport {
		return false
	}
	if v, _ := resp.Get(fix.TagExecType); v != fix.ExecTypeNew {
		return false
	}
	if v, _ := resp.Get(fix.TagOrdStatus); v != fix.OrdStatusNew {
		return false
	}
	id, ok := resp.GetUint(fix.TagOrderID)
	if !ok {
		return false
	}

	c.orders[id] = struct{}{}
	return true
}

// CancelOrder cancels a tracked order and reports whether the exchange
// acked the cancellation.
func (c *Client) CancelOrder(id orderbook.OrderID) bool {
	if _, ok := c.orders[id]; !ok {
		return false
	}

	req := clientMessage(fix.MsgTypeCancel).
		SetUint(fix.TagOrderID, id)

	resp, err := c.roundTrip(req)
	if err != nil || resp.MsgType != fix.MsgTypeExecReport {
		return false
	}
	if v, _ := resp.Get(fix.TagExecType); v != fix.ExecTypeCancel {
		return false
	}

	delete(c.orders, id)
	return true
}

// GetOrderStatus queries a tracked order and decodes the execution report
// into a detached order snapshot.
func (c *Client) GetOrderStatus(id orderbook.OrderID) (*orderbook.Order, bool) {
	if _, ok := c.orders[id]; !ok {
		return nil, false
	}

	req := clientMessage(fix.MsgTypeStatus).
		SetUint(fix.TagOrderID, id)

	resp, err := c.roundTrip(req)
	if err != nil || resp.MsgType != fix.MsgTypeExecReport {
		return nil, false
	}
	if v, _ := resp.Get(fix.TagExecType); v != fix.ExecTypeStatus {
		return nil, false
	}
	return decodeOrderStatus(id, resp)
}

// roundTrip writes one frame and reads the single response frame.
func (c *Client) roundTrip(msg *fix.Message) (*fix.Message, error) {
	if c.conn == nil {
		return nil, ErrNotStarted
	}
	if _, err := c.conn.Write(fix.Encode(msg)); err != nil {
		return nil, errors.Wrap(err, "send request")
	}
	n, err := c.conn.Read(c.buf)
	if err != nil {
		return nil, errors.Wrap(err, "read response")
	}
	return fix.Decode(c.buf[:n])
}

func clientMessage(msgType string) *fix.Message {
	return fix.NewMessage(msgType).
		Set(fix.TagSenderCompID, fix.CompIDClient).
		Set(fix.TagTargetCompID, fix.CompIDServer)
}

func decodeOrderStatus(id orderbook.OrderID, resp *fix.Message) (*orderbook.Order, bool) {
	ticker, _ := resp.Get(fix.TagSymbol)
	price, _ := resp.GetUint(fix.TagPrice)
	quantity, ok := resp.GetUint(fix.TagOrderQty)
	if !ok {
		return nil, false
	}
	filled, _ := resp.GetUint(fix.TagCumQty)

	var side orderbook.Side
	switch v, _ := resp.Get(fix.TagSide); v {
	case fix.SideBid:
		side = orderbook.Bid
	case fix.SideAsk:
		side = orderbook.Ask
	default:
		return nil, false
	}

	var otype orderbook.OrderType
	switch v, _ := resp.Get(fix.TagOrdType); v {
	case fix.OrdTypeGTC:
		otype = orderbook.GoodTilCanceled
	case fix.OrdTypeFOK:
		otype = orderbook.FillOrKill
	case fix.OrdTypeIOC:
		otype = orderbook.ImmediateOrCancel
	default:
		return nil, false
	}

	order, err := orderbook.NewOrder(id, ticker, orderbook.Price(price), orderbook.Quantity(quantity), side, otype)
	if err != nil {
		return nil, false
	}
	if filled > 0 {
		if err := order.Fill(orderbook.Quantity(filled)); err != nil {
			return nil, false
		}
	}

	switch v, _ := resp.Get(fix.TagOrdStatus); v {
	case fix.OrdStatusNew, fix.OrdStatusPartial, fix.OrdStatusFilled:
		// filled/closed state already follows from the fill above
	case fix.OrdStatusCancelled:
		if err := order.SetStatus(orderbook.Cancelled); err != nil {
			return nil, false
		}
	default:
		return nil, false
	}
	return order, true
}

func encodeSide(s orderbook.Side) string {
	if s == orderbook.Ask {
		return fix.SideAsk
	}
	return fix.SideBid
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
