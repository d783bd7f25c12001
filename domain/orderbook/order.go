package orderbook

import (
	"errors"
	"time"
)

type OrderID = uint64
type Price = uint32
type Quantity = uint32

type Side uint8
type OrderType uint8
type Status uint8

const (
	Bid Side = iota
	Ask
)

const (
	GoodTilCanceled OrderType = iota
	FillOrKill
	ImmediateOrCancel
)

const (
	Open Status = iota
	Closed
	Cancelled
)

var (
	ErrZeroQuantity     = errors.New("order quantity must be positive")
	ErrOverfill         = errors.New("fill exceeds remaining quantity")
	ErrStatusTransition = errors.New("illegal order status transition")
	ErrDuplicateOrder   = errors.New("order id already present")
	ErrUnknownOrder     = errors.New("order id not present")
)

// Order is mutable fill/status state attached to an immutable identity.
// Identity fields are never written after construction; Filled and Status
// only move forward.
type Order struct {
	ID        OrderID
	CreatedAt int64 // nanoseconds since epoch
	Ticker    string
	Price     Price
	Quantity  Quantity
	Filled    Quantity
	Side      Side
	Type      OrderType
	Status    Status

	next, prev *Order // FIFO links inside a price level
}

// NewOrder constructs an open order. Zero-quantity orders are rejected.
func NewOrder(id OrderID, ticker string, price Price, quantity Quantity, side Side, otype OrderType) (*Order, error) {
	if quantity == 0 {
		return nil, ErrZeroQuantity
	}
	return &Order{
		ID:        id,
		CreatedAt: time.Now().UnixNano(),
		Ticker:    ticker,
		Price:     price,
		Quantity:  quantity,
		Side:      side,
		Type:      otype,
		Status:    Open,
	}, nil
}

// Remaining is the unfilled quantity.
func (o *Order) Remaining() Quantity {
	return o.Quantity - o.Filled
}

func (o *Order) IsFilled() bool {
	return o.Remaining() == 0
}

// Fill consumes amount of the remaining quantity. Filling the order
// completely closes it.
func (o *Order) Fill(amount Quantity) error {
	if amount > o.Remaining() {
		return ErrOverfill
	}
	o.Filled += amount
	if o.Remaining() == 0 {
		return o.SetStatus(Closed)
	}
	return nil
}

// SetStatus enforces the transition DAG: Open -> Closed, Open -> Cancelled.
// Open is never re-entered and terminal states never change.
func (o *Order) SetStatus(target Status) error {
	if o.Status != Open || target == Open {
		return ErrStatusTransition
	}
	o.Status = target
	return nil
}

// Next exposes read-only FIFO traversal for snapshots and tests.
func (o *Order) Next() *Order {
	return o.next
}
