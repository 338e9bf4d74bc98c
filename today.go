package oliveprice

import "github.com/shopspring/decimal"

// MergeToday returns a copy of h where day has price, replacing any previous
// price of that day. Merging the same day twice leaves a single entry.
func (h *History) MergeToday(day Date, price decimal.Decimal) *History {
	return h.Clone().Upsert(day, price)
}

// MergeSnapshot returns a new Book with the snapshot prices merged in.
//
// When the snapshot is later than the latest day of a grade, the days in
// between get the latest known price. When it is earlier than the first day,
// the days in between get the snapshot price, which is then the latest known
// one. Either way a gap free series stays gap free.
func (b Book) MergeSnapshot(s Snapshot) Book {
	c := b.Clone()
	for _, g := range Grades() {
		p, ok := s.Prices[g]
		if !ok {
			continue
		}
		h := c.History(g)
		if h.Len() > 0 {
			last, known := h.Latest()
			for day := last.Add(1); day.Before(s.Date); day = day.Add(1) {
				h.Upsert(day, known)
			}
			first, _ := h.First()
			for day := s.Date.Add(1); day.Before(first); day = day.Add(1) {
				h.Upsert(day, p)
			}
		}
		c[g] = h.MergeToday(s.Date, p)
	}
	return c
}
