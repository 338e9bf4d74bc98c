package oliveprice

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

// cmpOpts compares prices by value and dates by day.
var cmpOpts = cmp.Options{
	cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) }),
	cmp.Comparer(func(a, b Date) bool { return a == b }),
	cmp.Comparer(func(a, b *History) bool { return a.Equal(b) }),
}

// D is a helper for test to create a decimal from a const string.
func D(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// obs is a helper for test to create an observation from const strings.
func obs(day string, g Grade, price string) Observation {
	return Observation{Date: MustParseDate(day), Grade: g, Price: D(price)}
}

// historyOf builds a history from "date", "price" pairs.
func historyOf(t *testing.T, pairs ...string) *History {
	t.Helper()
	if len(pairs)%2 != 0 {
		t.Fatalf("historyOf needs date/price pairs, got %d strings", len(pairs))
	}
	h := new(History)
	for i := 0; i < len(pairs); i += 2 {
		h.Upsert(MustParseDate(pairs[i]), D(pairs[i+1]))
	}
	return h
}

// entries lists a history as "date=price" strings, for readable diffs.
func entries(h *History) []string {
	var s []string
	for day, p := range h.Values() {
		s = append(s, day.String()+"="+p.StringFixed(3))
	}
	return s
}
