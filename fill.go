package oliveprice

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Fill returns a new History with one entry per calendar day, from the first
// day of h to end. Days without a price get the last known price. There is no
// backward fill: nothing is emitted before the first day.
//
// If end is zero or before the latest day of h, the series ends at its latest
// day. It fails with ErrEmptySeries if h has no price at all.
func (h *History) Fill(end Date) (*History, error) {
	if h.Len() == 0 {
		return nil, ErrEmptySeries
	}
	first, _ := h.First()
	last, _ := h.Latest()
	if end.After(last) {
		last = end
	}

	n := last.Sub(first) + 1
	out := &History{days: make([]Date, 0, n), values: make([]decimal.Decimal, 0, n)}
	var known decimal.Decimal
	i := 0
	for day := first; !day.After(last); day = day.Add(1) {
		if i < len(h.days) && h.days[i] == day {
			known = h.values[i]
			i++
		}
		out.days = append(out.days, day)
		out.values = append(out.values, known)
	}
	return out, nil
}

// Changes returns a new History holding only the days whose price differs
// from the day before, and the days after a gap. It undoes Fill: filling the
// result up to the latest day of h gives h back.
func (h *History) Changes() *History {
	out := new(History)
	for i, day := range h.days {
		if i > 0 && h.days[i-1].Add(1) == day && h.values[i-1].Equal(h.values[i]) {
			continue
		}
		out.days = append(out.days, day)
		out.values = append(out.values, h.values[i])
	}
	return out
}

// Fill fills every grade up to end. Grades without any price are reported in
// the error map and left empty in the returned Book; they never block the
// other grades. b is not modified.
func (b Book) Fill(end Date) (Book, map[Grade]error) {
	filled := make(Book, len(Grades()))
	errs := make(map[Grade]error)
	for _, g := range Grades() {
		h, ok := b[g]
		if !ok {
			h = new(History)
		}
		f, err := h.Fill(end)
		if err != nil {
			errs[g] = fmt.Errorf("%s: %w", g, err)
			f = new(History)
		}
		filled[g] = f
	}
	return filled, errs
}
