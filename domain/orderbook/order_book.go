package orderbook

// location records where a resting order lives inside the book.
type location struct {
	side  Side
	price Price
}

// OrderBook is the pair of price ladders for one instrument. It is
// single-writer and deterministic; callers serialize access.
type OrderBook struct {
	bids *Ladder
	asks *Ladder

	// resting orders only; fully matched or killed orders are absent
	locations map[OrderID]location
}

func NewOrderBook() *OrderBook {
	return &OrderBook{
		bids:      NewLadder(),
		asks:      NewLadder(),
		locations: make(map[OrderID]location),
	}
}

// PlaceOrder runs the matching pass for an incoming order. It returns false
// when a fill-or-kill order cannot be fully filled (the book is untouched),
// and an error when the id is already resting here.
//
// Matching draws liquidity at resting prices, best level first, FIFO within
// a level. GTC remainders rest; FOK and IOC never rest.
func (b *OrderBook) PlaceOrder(o *Order) (bool, error) {
	if _, ok := b.locations[o.ID]; ok {
		return false, ErrDuplicateOrder
	}

	if o.Type == FillOrKill && !b.canFill(o) {
		return false, nil
	}

	b.fill(o)

	switch o.Type {
	case FillOrKill, ImmediateOrCancel:
		// Leftover quantity is discarded; nothing rests.
		return true, nil
	}

	if o.IsFilled() {
		return true, nil
	}

	lvl := b.side(o.Side).UpsertLevel(o.Price)
	if err := lvl.Add(o); err != nil {
		return false, err
	}
	b.locations[o.ID] = location{side: o.Side, price: o.Price}
	return true, nil
}

// CancelOrder removes a resting order. Orders that already left the book
// (fully matched, killed on entry, or never resting) are not cancellable.
func (b *OrderBook) CancelOrder(id OrderID) error {
	loc, ok := b.locations[id]
	if !ok {
		return ErrUnknownOrder
	}

	ladder := b.side(loc.side)
	lvl := ladder.FindLevel(loc.price)
	if err := lvl.Remove(id); err != nil {
		return err
	}
	if lvl.IsEmpty() {
		ladder.DeleteLevel(loc.price)
	}
	delete(b.locations, id)
	return nil
}

// Resting reports whether the id currently rests in this book.
func (b *OrderBook) Resting(id OrderID) bool {
	_, ok := b.locations[id]
	return ok
}

// BestBid and BestAsk expose top of book; nil when the side is empty.
func (b *OrderBook) BestBid() *PriceLevel { return b.bids.MaxLevel() }
func (b *OrderBook) BestAsk() *PriceLevel { return b.asks.MinLevel() }

func (b *OrderBook) BidsWalk(fn func(*PriceLevel) bool) { b.bids.ForEachDescending(fn) }
func (b *OrderBook) AsksWalk(fn func(*PriceLevel) bool) { b.asks.ForEachAscending(fn) }

func (b *OrderBook) side(s Side) *Ladder {
	if s == Bid {
		return b.bids
	}
	return b.asks
}

// canFill sums crossing liquidity level by level until the order's
// remaining quantity is covered. Used as the fill-or-kill dry run before
// any liquidity is consumed.
func (b *OrderBook) canFill(o *Order) bool {
	available := uint64(0)
	desired := uint64(o.Remaining())

	if o.Side == Bid {
		b.asks.ForEachAscending(func(lvl *PriceLevel) bool {
			if lvl.Price > o.Price {
				return false
			}
			available += lvl.TotalQuantity()
			return available < desired
		})
	} else {
		b.bids.ForEachDescending(func(lvl *PriceLevel) bool {
			if lvl.Price < o.Price {
				return false
			}
			available += lvl.TotalQuantity()
			return available < desired
		})
	}
	return available >= desired
}

// fill drains crossing levels best-first until the incoming order is filled
// or prices no longer cross. Emptied levels leave the ladder; drained
// resting orders leave the location map.
func (b *OrderBook) fill(o *Order) {
	if o.Side == Bid {
		for !o.IsFilled() {
			best := b.asks.MinLevel()
			if best == nil || best.Price > o.Price {
				return
			}
			b.drainLevel(b.asks, best, o)
		}
	} else {
		for !o.IsFilled() {
			best := b.bids.MaxLevel()
			if best == nil || best.Price < o.Price {
				return
			}
			b.drainLevel(b.bids, best, o)
		}
	}
}

func (b *OrderBook) drainLevel(ladder *Ladder, lvl *PriceLevel, o *Order) {
	for _, id := range lvl.Fill(o) {
		delete(b.locations, id)
	}
	if lvl.IsEmpty() {
		ladder.DeleteLevel(lvl.Price)
	}
}
