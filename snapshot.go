package oliveprice

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// Paths probed, in order, for the snapshot date.
var snapshotDatePaths = []string{"$.fecha", "$.ultima_actualizacion", "$.generated_at"}

// DecodeSnapshot reads a daily JSON snapshot:
//
//	{"fecha": "2024-03-01 10:00:00",
//	 "precios": {"Aceite de oliva virgen extra": {"precio_eur_kg": 3.6}}}
//
// The price map can also be the top level object, the date can be stored
// under "ultima_actualizacion" or "generated_at", and prices can be strings
// like "3,600 €", read with conv. JSON numbers are always dot decimal.
//
// A snapshot without a readable date is an error; entries that cannot be
// read are returned as warnings.
func DecodeSnapshot(data []byte, conv Convention) (Snapshot, []Warning, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var root any
	if err := dec.Decode(&root); err != nil {
		return Snapshot{}, nil, fmt.Errorf("decoding snapshot: %w", err)
	}
	if _, ok := root.(map[string]any); !ok {
		return Snapshot{}, nil, fmt.Errorf("decoding snapshot: want a JSON object, got %T", root)
	}

	s := Snapshot{Prices: make(map[Grade]decimal.Decimal)}
	var dateKeys []string
	for _, path := range snapshotDatePaths {
		v, err := jsonpath.Get(path, root)
		if err != nil {
			continue
		}
		dateKeys = append(dateKeys, path[2:])
		str, ok := v.(string)
		if !ok || !s.Date.IsZero() {
			continue
		}
		if day, err := ParseDateTime(str); err == nil {
			s.Date = day
		}
	}
	if s.Date.IsZero() {
		return Snapshot{}, nil, fmt.Errorf("%w: snapshot has no readable date", ErrInvalidDate)
	}

	prices, ok := root.(map[string]any)
	if v, err := jsonpath.Get("$.precios", root); err == nil {
		if prices, ok = v.(map[string]any); !ok {
			return s, nil, fmt.Errorf("decoding snapshot: precios is %T, want an object", v)
		}
		dateKeys = nil
	}

	var warnings []Warning
	labels := make([]string, 0, len(prices))
	for label := range prices {
		if !slices.Contains(dateKeys, label) {
			labels = append(labels, label)
		}
	}
	slices.Sort(labels)
	for _, label := range labels {
		g, err := Classify(label)
		if err != nil {
			warnings = append(warnings, Warning{Text: label, Err: err})
			continue
		}
		p, err := snapshotPrice(prices[label], conv)
		if err != nil {
			warnings = append(warnings, Warning{Text: label, Err: err})
			continue
		}
		s.Prices[g] = p
	}
	return s, warnings, nil
}

// snapshotPrice reads an entry value: either a price, or an object holding
// one under "precio_eur_kg".
func snapshotPrice(v any, conv Convention) (decimal.Decimal, error) {
	if _, ok := v.(map[string]any); ok {
		var err error
		if v, err = jsonpath.Get("$.precio_eur_kg", v); err != nil {
			return decimal.Zero, fmt.Errorf("%w: no precio_eur_kg", ErrInvalidPrice)
		}
	}
	switch p := v.(type) {
	case json.Number:
		return NormalizePrice(p.String(), DotDecimal)
	case string:
		return NormalizePrice(p, conv)
	case nil:
		return decimal.Zero, fmt.Errorf("%w: no price", ErrInvalidPrice)
	}
	return decimal.Zero, fmt.Errorf("%w: unexpected %T", ErrInvalidPrice, v)
}
