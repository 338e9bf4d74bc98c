package oliveprice

import (
	"fmt"
	"iter"
	"slices"

	"github.com/shopspring/decimal"
)

// History stores the daily prices of one grade.
// It ensures that dates are unique and the series is always sorted.
type History struct {
	days   []Date
	values []decimal.Decimal
}

// Len returns the number of days in the history.
func (h *History) Len() int { return len(h.days) }

// First returns the earliest date and price, or zero values if the history
// is empty.
func (h *History) First() (Date, decimal.Decimal) {
	if len(h.days) == 0 {
		return Date{}, decimal.Zero
	}
	return h.days[0], h.values[0]
}

// Latest returns the latest date and price, or zero values if the history
// is empty.
func (h *History) Latest() (Date, decimal.Decimal) {
	last := len(h.days) - 1
	if last < 0 {
		return Date{}, decimal.Zero
	}
	return h.days[last], h.values[last]
}

// search returns the position of day, or where it would be inserted.
func (h *History) search(day Date) (int, bool) {
	return slices.BinarySearchFunc(h.days, day, compare)
}

// Upsert sets the price of a day.
//
// An existing price at that date is overwritten, so the last write wins.
func (h *History) Upsert(day Date, price decimal.Decimal) *History {
	i, found := h.search(day)
	if found {
		h.values[i] = price
		return h
	}
	h.days = slices.Insert(h.days, i, day)
	h.values = slices.Insert(h.values, i, price)
	return h
}

// Get returns the price at 'day' and true or zero and false.
func (h *History) Get(day Date) (decimal.Decimal, bool) {
	if i, found := h.search(day); found {
		return h.values[i], true
	}
	return decimal.Zero, false
}

// ValueAsOf returns the price on a given day, or the most recent price before it.
func (h *History) ValueAsOf(day Date) (decimal.Decimal, bool) {
	i, found := h.search(day)
	if found {
		return h.values[i], true
	}
	// i is where day would be inserted, i-1 is the last entry before it.
	if i == 0 {
		return decimal.Zero, false
	}
	return h.values[i-1], true
}

// Values returns an iterator over all date/price pairs in chronological order.
func (h *History) Values() iter.Seq2[Date, decimal.Decimal] {
	return func(yield func(Date, decimal.Decimal) bool) {
		for i, on := range h.days {
			if !yield(on, h.values[i]) {
				return
			}
		}
	}
}

// Clone returns an independent copy of h.
func (h *History) Clone() *History {
	return &History{days: slices.Clone(h.days), values: slices.Clone(h.values)}
}

// Equal reports whether both histories hold the same prices on the same days.
func (h *History) Equal(x *History) bool {
	return slices.Equal(h.days, x.days) && slices.EqualFunc(h.values, x.values, decimal.Decimal.Equal)
}

// Book holds one History per grade.
type Book map[Grade]*History

// NewBook returns a book with an empty history for every grade.
func NewBook() Book {
	b := make(Book)
	for _, g := range Grades() {
		b[g] = new(History)
	}
	return b
}

// History returns the history of a grade, creating it if needed.
func (b Book) History(g Grade) *History {
	h, ok := b[g]
	if !ok {
		h = new(History)
		b[g] = h
	}
	return h
}

// Merge upserts observations in order: for the same date and grade, the
// last observation wins.
func (b Book) Merge(obs ...Observation) Book {
	for _, o := range obs {
		b.History(o.Grade).Upsert(o.Date, o.Price)
	}
	return b
}

// Clone returns an independent copy of b.
func (b Book) Clone() Book {
	c := make(Book, len(b))
	for g, h := range b {
		c[g] = h.Clone()
	}
	return c
}

// Counts describes the number of days per grade, in canonical order.
func (b Book) Counts() string {
	s := ""
	for i, g := range Grades() {
		if i > 0 {
			s += " "
		}
		n := 0
		if h, ok := b[g]; ok {
			n = h.Len()
		}
		s += fmt.Sprintf("%s=%d", g, n)
	}
	return s
}
