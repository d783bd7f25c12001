package orderbook

import "sort"

// Ladder is the ordered set of price levels on one side of a book, kept as
// a slice sorted ascending by price. Real books are shallow, so binary
// search plus a slice insert beats pointer-chasing a balanced tree, and top
// of book is a bounds check.
type Ladder struct {
	levels []*PriceLevel
}

func NewLadder() *Ladder {
	return &Ladder{}
}

func (l *Ladder) Size() int { return len(l.levels) }

// search returns the index of the first level with price >= the argument.
func (l *Ladder) search(price Price) int {
	return sort.Search(len(l.levels), func(i int) bool {
		return l.levels[i].Price >= price
	})
}

func (l *Ladder) FindLevel(price Price) *PriceLevel {
	i := l.search(price)
	if i < len(l.levels) && l.levels[i].Price == price {
		return l.levels[i]
	}
	return nil
}

// UpsertLevel returns the level at price, creating it in place when absent.
func (l *Ladder) UpsertLevel(price Price) *PriceLevel {
	i := l.search(price)
	if i < len(l.levels) && l.levels[i].Price == price {
		return l.levels[i]
	}

	lvl := NewPriceLevel(price)
	l.levels = append(l.levels, nil)
	copy(l.levels[i+1:], l.levels[i:])
	l.levels[i] = lvl
	return lvl
}

func (l *Ladder) DeleteLevel(price Price) bool {
	i := l.search(price)
	if i >= len(l.levels) || l.levels[i].Price != price {
		return false
	}
	l.levels = append(l.levels[:i], l.levels[i+1:]...)
	return true
}

// MinLevel and MaxLevel expose the price extremes; nil when empty.
func (l *Ladder) MinLevel() *PriceLevel {
	if len(l.levels) == 0 {
		return nil
	}
	return l.levels[0]
}

func (l *Ladder) MaxLevel() *PriceLevel {
	if len(l.levels) == 0 {
		return nil
	}
	return l.levels[len(l.levels)-1]
}

// ForEachAscending visits levels from lowest price up until fn returns
// false. fn must not mutate the ladder.
func (l *Ladder) ForEachAscending(fn func(*PriceLevel) bool) {
	for _, lvl := range l.levels {
		if !fn(lvl) {
			return
		}
	}
}

// ForEachDescending visits levels from highest price down until fn returns
// false. fn must not mutate the ladder.
func (l *Ladder) ForEachDescending(fn func(*PriceLevel) bool) {
	for i := len(l.levels) - 1; i >= 0; i-- {
		if !fn(l.levels[i]) {
			return
		}
	}
}
