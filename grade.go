package oliveprice

import (
	"fmt"
	"strings"
)

// Grade is one of the three olive-oil price categories.
type Grade int

const (
	ExtraVirgin Grade = iota
	Virgin
	Lampante
)

// Grades returns every grade in canonical order.
func Grades() []Grade { return []Grade{ExtraVirgin, Virgin, Lampante} }

// Label returns the canonical persisted name of the grade.
func (g Grade) Label() string {
	switch g {
	case ExtraVirgin:
		return "Aceite de oliva virgen extra"
	case Virgin:
		return "Aceite de oliva virgen"
	case Lampante:
		return "Aceite de oliva lampante"
	}
	return fmt.Sprintf("Grade(%d)", int(g))
}

// String returns the short name used on the command line.
func (g Grade) String() string {
	switch g {
	case ExtraVirgin:
		return "extra-virgin"
	case Virgin:
		return "virgin"
	case Lampante:
		return "lampante"
	}
	return fmt.Sprintf("Grade(%d)", int(g))
}

// ParseGrade reads a grade by short name or by label.
func ParseGrade(s string) (Grade, error) {
	for _, g := range Grades() {
		if strings.EqualFold(s, g.String()) || strings.EqualFold(s, g.Label()) {
			return g, nil
		}
	}
	return 0, fmt.Errorf("%w: %q is not a grade name", ErrUnclassifiedGrade, s)
}

// Classify maps a free-text oil description to a grade. Matching is
// case-insensitive and the first rule wins:
//
//   - "lampante" anywhere is Lampante;
//   - "virgen" followed anywhere by "extra" is ExtraVirgin;
//   - "virgen" without "extra" is Virgin.
//
// Anything else is ErrUnclassifiedGrade.
func Classify(text string) (Grade, error) {
	s := strings.ToLower(text)
	if strings.Contains(s, "lampante") {
		return Lampante, nil
	}
	i := strings.Index(s, "virgen")
	if i < 0 {
		return 0, fmt.Errorf("%w: %q", ErrUnclassifiedGrade, text)
	}
	if strings.Contains(s[i:], "extra") {
		return ExtraVirgin, nil
	}
	if strings.Contains(s, "extra") {
		// "extra" before "virgen" matches neither rule.
		return 0, fmt.Errorf("%w: %q", ErrUnclassifiedGrade, text)
	}
	return Virgin, nil
}
