package oliveprice

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// Layout is the shape of a text price log.
type Layout int

const (
	// LayoutBlock logs are a date line followed by up to three price lines,
	// in grade order.
	LayoutBlock Layout = iota
	// LayoutFree logs have date lines and price lines in any order; each
	// price line names its grade.
	LayoutFree
	// LayoutInline logs have one "DATE GRADE PRICE" line per price.
	LayoutInline
)

func (l Layout) String() string {
	switch l {
	case LayoutBlock:
		return "block"
	case LayoutFree:
		return "free"
	case LayoutInline:
		return "inline"
	}
	return fmt.Sprintf("Layout(%d)", int(l))
}

// ParseLayout reads a layout name: "block", "free" or "inline".
func ParseLayout(name string) (Layout, error) {
	for _, l := range []Layout{LayoutBlock, LayoutFree, LayoutInline} {
		if strings.EqualFold(name, l.String()) {
			return l, nil
		}
	}
	return 0, fmt.Errorf("unknown log layout %q, want block, free or inline", name)
}

// Set implements flag.Value.
func (l *Layout) Set(name string) error {
	v, err := ParseLayout(name)
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// noClose marks a day without trading.
const noClose = "sin cierre de operaciones"

// Extractor reads price observations out of a text log.
type Extractor struct {
	Layout     Layout
	Convention Convention
}

// Extract scans r and returns the observations in scan order.
//
// Lines that cannot be read as prices are reported as warnings and skipped;
// the returned error is only about reading r.
func (x Extractor) Extract(r io.Reader) ([]Observation, []Warning, error) {
	s := &scan{conv: x.Convention}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(strings.TrimPrefix(sc.Text(), "\ufeff"))
		if line == "" {
			continue
		}
		if strings.Contains(strings.ToLower(line), noClose) {
			if x.Layout == LayoutBlock {
				s.skip()
			}
			continue
		}
		switch x.Layout {
		case LayoutBlock:
			s.block(n, line)
		case LayoutFree:
			s.free(n, line)
		case LayoutInline:
			s.inline(n, line)
		default:
			return nil, nil, fmt.Errorf("unsupported layout %v", x.Layout)
		}
	}
	if err := sc.Err(); err != nil {
		return s.obs, s.warnings, fmt.Errorf("reading log at line %d: %w", n, err)
	}
	return s.obs, s.warnings, nil
}

// scan is the state of one extraction.
type scan struct {
	conv     Convention
	current  Date // zero until the first date line
	pos      int  // price lines seen in the current block
	obs      []Observation
	warnings []Warning
}

func (s *scan) warn(n int, line string, err error) {
	s.warnings = append(s.warnings, Warning{Line: n, Text: line, Err: err})
}

func (s *scan) emit(day Date, g Grade, p decimal.Decimal) {
	s.obs = append(s.obs, Observation{Date: day, Grade: g, Price: p})
}

// skip uses up the current block position for a grade without a price.
func (s *scan) skip() {
	if !s.current.IsZero() && s.pos < 3 {
		s.pos++
	}
}

func (s *scan) block(n int, line string) {
	if loc := findDate(line); loc != nil && loc[0] == 0 && loc[1] == len(line) {
		day, err := ParseDate(line)
		if err != nil {
			// Not a day: it must not open a block.
			s.warn(n, line, err)
			return
		}
		s.current, s.pos = day, 0
		return
	}
	if s.current.IsZero() {
		return
	}
	if s.pos >= 3 {
		s.warn(n, line, fmt.Errorf("%w: more than three prices on %s", ErrUnexpectedLine, s.current))
		return
	}
	pos := s.pos
	s.pos++

	g, err := Classify(line)
	if err != nil {
		if !bareNumber(line) {
			s.warn(n, line, err)
			return
		}
		g = Grades()[pos]
	}
	p, err := NormalizePrice(line, s.conv)
	if err != nil {
		s.warn(n, line, err)
		return
	}
	s.emit(s.current, g, p)
}

func (s *scan) free(n int, line string) {
	if loc := findDate(line); loc != nil {
		day, err := ParseDate(line[loc[0]:loc[1]])
		if err == nil {
			s.current = day
			return
		}
		s.warn(n, line, err)
	}
	g, err := Classify(line)
	if err != nil {
		s.warn(n, line, err)
		return
	}
	if s.current.IsZero() {
		return
	}
	p, err := NormalizePrice(line, s.conv)
	if err != nil {
		s.warn(n, line, err)
		return
	}
	s.emit(s.current, g, p)
}

func (s *scan) inline(n int, line string) {
	loc := findDate(line)
	if loc == nil {
		s.warn(n, line, fmt.Errorf("%w: no date on the line", ErrInvalidDate))
		return
	}
	day, err := ParseDate(line[loc[0]:loc[1]])
	if err != nil {
		s.warn(n, line, err)
		return
	}
	rest := line[:loc[0]] + " " + line[loc[1]:]
	g, err := Classify(rest)
	if err != nil {
		s.warn(n, line, err)
		return
	}
	p, err := NormalizePrice(rest, s.conv)
	if err != nil {
		s.warn(n, line, err)
		return
	}
	s.emit(day, g, p)
}

var unitReplacer = strings.NewReplacer("€", "", "eur", "", "/kg", "", "kg", "")

// bareNumber reports whether line is a price with no description, like
// "2,345 €/kg".
func bareNumber(line string) bool {
	rest := unitReplacer.Replace(strings.ToLower(numberRe.ReplaceAllString(line, "")))
	return strings.IndexFunc(rest, unicode.IsLetter) < 0
}
