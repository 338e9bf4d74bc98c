package oliveprice

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Observation is one price fact read from a source.
type Observation struct {
	Date  Date
	Grade Grade
	Price decimal.Decimal
}

func (o Observation) String() string {
	return fmt.Sprintf("%s %s %s", o.Date, o.Grade, o.Price.StringFixed(3))
}

// Snapshot is the prices of a single day. Not every grade needs a price.
type Snapshot struct {
	Date   Date
	Prices map[Grade]decimal.Decimal
}

// Observations returns the snapshot prices in canonical grade order.
func (s Snapshot) Observations() []Observation {
	var obs []Observation
	for _, g := range Grades() {
		if p, ok := s.Prices[g]; ok {
			obs = append(obs, Observation{Date: s.Date, Grade: g, Price: p})
		}
	}
	return obs
}

// Warning reports an input line that was skipped.
type Warning struct {
	Line int    // 1-based line number, 0 when not line based.
	Text string // offending input
	Err  error
}

func (w Warning) Error() string {
	if w.Line > 0 {
		return fmt.Sprintf("line %d: %q: %v", w.Line, w.Text, w.Err)
	}
	return fmt.Sprintf("%q: %v", w.Text, w.Err)
}

func (w Warning) Unwrap() error { return w.Err }
