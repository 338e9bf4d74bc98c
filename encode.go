package oliveprice

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"maps"
	"os"
	"slices"
	"strings"
)

// This file contains code to persist price series in a way that is still
// human-readable and git-friendly: one JSON object, grades in canonical order,
// one entry per day.
//
//	{
//	  "Aceite de oliva virgen extra": [
//	    {"fecha": "2024-03-01", "precio_eur_kg": 3.600},
//	    ...
//	  ],
//	  "Aceite de oliva virgen": [...],
//	  "Aceite de oliva lampante": []
//	}

// jentry is a day in the canonical output.
type jentry struct {
	Fecha  string       `json:"fecha"`
	Precio *json.Number `json:"precio_eur_kg"`
}

// EncodeBook writes the book in the canonical output format. Grades without
// prices are written as empty arrays.
func EncodeBook(w io.Writer, b Book) error {
	var obj jsonObjectWriter
	for _, g := range Grades() {
		list := []jentry{}
		if h, ok := b[g]; ok {
			list = make([]jentry, 0, h.Len())
			for day, p := range h.Values() {
				n := json.Number(p.StringFixed(3))
				list = append(list, jentry{Fecha: day.String(), Precio: &n})
			}
		}
		obj.Append(g.Label(), list)
	}
	raw, err := obj.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encoding series: %w", err)
	}
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return fmt.Errorf("encoding series: %w", err)
	}
	out.WriteByte('\n')
	_, err = out.WriteTo(w)
	return err
}

// DecodeBook reads a canonical output back.
//
// Keys are classified like any grade text. When several keys name the same
// grade, they are merged in sorted key order, the last one winning on the
// days they share. Entries with a null price are
// skipped silently, as older files have some; other unreadable entries are
// returned as warnings.
func DecodeBook(r io.Reader) (Book, []Warning, error) {
	var jbook map[string][]jentry
	dec := json.NewDecoder(r)
	dec.UseNumber()
	if err := dec.Decode(&jbook); err != nil {
		return nil, nil, fmt.Errorf("decoding series: %w", err)
	}

	b := NewBook()
	var warnings []Warning
	labels := slices.Sorted(maps.Keys(jbook))
	for _, label := range labels {
		list := jbook[label]
		g, err := Classify(label)
		if err != nil {
			warnings = append(warnings, Warning{Text: label, Err: err})
			continue
		}
		h := b.History(g)
		for _, e := range list {
			if e.Precio == nil {
				continue
			}
			day, err := ParseDate(e.Fecha)
			if err != nil {
				warnings = append(warnings, Warning{Text: label + " " + e.Fecha, Err: err})
				continue
			}
			p, err := NormalizePrice(e.Precio.String(), DotDecimal)
			if err != nil {
				warnings = append(warnings, Warning{Text: label + " " + e.Fecha, Err: err})
				continue
			}
			h.Upsert(day, p)
		}
	}
	return b, warnings, nil
}

// EncodeSnapshot writes a snapshot in the daily JSON snapshot format.
func EncodeSnapshot(w io.Writer, s Snapshot) error {
	var prices jsonObjectWriter
	for _, o := range s.Observations() {
		var entry jsonObjectWriter
		entry.Append("precio_eur_kg", json.Number(o.Price.StringFixed(3)))
		prices.Append(o.Grade.Label(), &entry)
	}
	var obj jsonObjectWriter
	obj.Append("fecha", s.Date.String())
	obj.Append("precios", &prices)
	raw, err := obj.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return fmt.Errorf("encoding snapshot: %w", err)
	}
	out.WriteByte('\n')
	_, err = out.WriteTo(w)
	return err
}

// AppendBlock appends the snapshot to a text log as a block: a DD-MM-YYYY
// line, then one "<grade label> <price>" line per grade, prices written with
// conv.
//
// Nothing is written if the log already has a line with that date, and it
// returns false. A missing log is created.
func AppendBlock(path string, s Snapshot, conv Convention) (bool, error) {
	content, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}

	sc := bufio.NewScanner(bytes.NewReader(content))
	for sc.Scan() {
		loc := findDate(sc.Text())
		if loc == nil {
			continue
		}
		if day, err := ParseDate(sc.Text()[loc[0]:loc[1]]); err == nil && day == s.Date {
			return false, nil
		}
	}

	obs := s.Observations()
	if len(obs) == 0 {
		return false, nil
	}
	var block strings.Builder
	if len(content) > 0 && !bytes.HasSuffix(content, []byte("\n")) {
		block.WriteString("\n")
	}
	block.WriteString(s.Date.Format(logDateFormat) + "\n")
	for _, o := range obs {
		fmt.Fprintf(&block, "%s %s\n", o.Grade.Label(), conv.Format(o.Price))
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return false, err
	}
	if _, err := f.WriteString(block.String()); err != nil {
		f.Close()
		return false, err
	}
	if err := f.Close(); err != nil {
		return false, err
	}
	return true, nil
}
