package oliveprice

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// perKg formats prices like "3,600 €/kg".
var perKg = money.AddCurrency("EUR/KG", "€/kg", "1 $", ",", ".", 3)

// FormatPrice formats a price in €/kg for humans.
func FormatPrice(p decimal.Decimal) string {
	return perKg.Formatter().Format(p.Shift(3).Round(0).IntPart())
}

// Summary renders a run as a markdown report: one row per grade, then the
// grades that could not be filled.
func Summary(r *Result) string {
	var sb strings.Builder
	sb.WriteString("# Olive oil prices\n\n")
	sb.WriteString("| Grade | Days | From | To | Latest |\n")
	sb.WriteString("|---|---|---|---|---|\n")
	for _, g := range Grades() {
		h, ok := r.Book[g]
		if !ok || h.Len() == 0 {
			fmt.Fprintf(&sb, "| %s | 0 | | | |\n", g.Label())
			continue
		}
		first, _ := h.First()
		last, latest := h.Latest()
		fmt.Fprintf(&sb, "| %s | %d | %s | %s | %s |\n", g.Label(), h.Len(), first, last, FormatPrice(latest))
	}

	if err := r.Err(); err != nil {
		sb.WriteString("\n## Errors\n\n")
		for _, line := range strings.Split(err.Error(), "\n") {
			fmt.Fprintf(&sb, "- %s\n", line)
		}
	}

	if r.Snapshot != nil {
		fmt.Fprintf(&sb, "\nToday's snapshot: %s, %d grades.\n", r.Snapshot.Date, len(r.Snapshot.Prices))
	}
	if r.Observations > 0 || len(r.Warnings) > 0 {
		fmt.Fprintf(&sb, "\n%d observations read, %d lines skipped.\n", r.Observations, len(r.Warnings))
	}
	return sb.String()
}
