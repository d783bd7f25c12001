package orderbook

// PriceLevel is the FIFO queue of resting orders at a single price on one
// side of a book. Orders are linked intrusively; the index map gives O(1)
// removal by id. TotalQuantity always equals the sum of Remaining over the
// queued orders.
type PriceLevel struct {
	Price Price

	head *Order
	tail *Order

	index    map[OrderID]*Order
	totalQty uint64
}

func NewPriceLevel(price Price) *PriceLevel {
	return &PriceLevel{
		Price: price,
		index: make(map[OrderID]*Order),
	}
}

// Add appends the order at the tail of the queue.
func (lvl *PriceLevel) Add(o *Order) error {
	if _, ok := lvl.index[o.ID]; ok {
		return ErrDuplicateOrder
	}

	if lvl.tail != nil {
		lvl.tail.next = o
		o.prev = lvl.tail
	} else {
		lvl.head = o
	}
	lvl.tail = o
	lvl.index[o.ID] = o
	lvl.totalQty += uint64(o.Remaining())
	return nil
}

// Remove unlinks the order with the given id, wherever it sits in the queue.
func (lvl *PriceLevel) Remove(id OrderID) error {
	o, ok := lvl.index[id]
	if !ok {
		return ErrUnknownOrder
	}

	if o.prev != nil {
		o.prev.next = o.next
	} else {
		lvl.head = o.next
	}
	if o.next != nil {
		o.next.prev = o.prev
	} else {
		lvl.tail = o.prev
	}
	o.next, o.prev = nil, nil

	delete(lvl.index, id)
	lvl.totalQty -= uint64(o.Remaining())
	return nil
}

// CanFill reports whether the level holds at least amount of quantity.
// This is a level-local check only.
func (lvl *PriceLevel) CanFill(amount Quantity) bool {
	return uint64(amount) <= lvl.totalQty
}

// Fill drains the queue from the head into incoming until either the
// incoming order is filled or the level is empty. Fully consumed resting
// orders are unlinked and their ids returned so the caller can forget
// where they rested.
func (lvl *PriceLevel) Fill(incoming *Order) []OrderID {
	var drained []OrderID
	for !incoming.IsFilled() && !lvl.IsEmpty() {
		top := lvl.head
		amount := min(incoming.Remaining(), top.Remaining())
		// Neither fill can overfill: amount is bounded by both remainders.
		_ = top.Fill(amount)
		_ = incoming.Fill(amount)
		lvl.totalQty -= uint64(amount)
		if top.IsFilled() {
			// Quantity already accounted for above; unlink directly.
			lvl.unlink(top)
			drained = append(drained, top.ID)
		}
	}
	return drained
}

func (lvl *PriceLevel) unlink(o *Order) {
	if o.prev != nil {
		o.prev.next = o.next
	} else {
		lvl.head = o.next
	}
	if o.next != nil {
		o.next.prev = o.prev
	} else {
		lvl.tail = o.prev
	}
	o.next, o.prev = nil, nil
	delete(lvl.index, o.ID)
}

func (lvl *PriceLevel) IsEmpty() bool {
	return lvl.head == nil
}

func (lvl *PriceLevel) TotalQuantity() uint64 {
	return lvl.totalQty
}

// Head exposes the oldest order for read-only traversal.
func (lvl *PriceLevel) Head() *Order {
	return lvl.head
}
