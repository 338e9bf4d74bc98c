package oliveprice

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Convention tells how a source spells decimal numbers.
type Convention int

const (
	// CommaDecimal reads "2,345" as 2.345 and "2.345" as 2345.
	CommaDecimal Convention = iota
	// DotDecimal reads "2.345" as 2.345 and "2,345" as 2345.
	DotDecimal
	// Lenient is CommaDecimal, except that a lone dot followed by at most
	// three digits is a decimal point, as in "3.600".
	Lenient
)

func (c Convention) String() string {
	switch c {
	case CommaDecimal:
		return "comma"
	case DotDecimal:
		return "dot"
	case Lenient:
		return "lenient"
	}
	return fmt.Sprintf("Convention(%d)", int(c))
}

// ParseConvention reads a convention name: "comma", "dot" or "lenient".
func ParseConvention(name string) (Convention, error) {
	for _, c := range []Convention{CommaDecimal, DotDecimal, Lenient} {
		if strings.EqualFold(name, c.String()) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown decimal convention %q, want comma, dot or lenient", name)
}

// Set implements flag.Value.
func (c *Convention) Set(name string) error {
	v, err := ParseConvention(name)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// Format writes a price with three decimals in that convention.
func (c Convention) Format(price decimal.Decimal) string {
	s := price.StringFixed(3)
	if c == CommaDecimal {
		s = strings.Replace(s, ".", ",", 1)
	}
	return s
}

// maxPrice is the highest plausible price in €/kg.
var maxPrice = decimal.NewFromInt(20)

var (
	numberRe     = regexp.MustCompile(`-?\d+(?:[.,]\d+)*`)
	euroNumberRe = regexp.MustCompile(`(-?\d+(?:[.,]\d+)*)\s*€`)
)

// priceToken returns the numeric part of a text: the number written before a
// '€' if any, the last number otherwise.
func priceToken(text string) (string, bool) {
	if m := euroNumberRe.FindStringSubmatch(text); m != nil {
		return m[1], true
	}
	all := numberRe.FindAllString(text, -1)
	if len(all) == 0 {
		return "", false
	}
	return all[len(all)-1], true
}

// NormalizePrice finds the price in token and parses it with conv.
//
// It fails with ErrInvalidPrice if there is no number, or if the value is not
// in (0, maxPrice]. Out of range values are never clamped.
func NormalizePrice(token string, conv Convention) (decimal.Decimal, error) {
	num, ok := priceToken(token)
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: no number in %q", ErrInvalidPrice, token)
	}

	var decimalSep, thousandSep string
	switch conv {
	case DotDecimal:
		decimalSep, thousandSep = ".", ","
	case Lenient:
		decimalSep, thousandSep = ",", "."
		if !strings.Contains(num, ",") && strings.Count(num, ".") == 1 {
			if _, frac, _ := strings.Cut(num, "."); len(frac) <= 3 {
				decimalSep, thousandSep = ".", ","
			}
		}
	default:
		decimalSep, thousandSep = ",", "."
	}

	num = strings.ReplaceAll(num, thousandSep, "")
	if strings.Count(num, decimalSep) > 1 {
		return decimal.Zero, fmt.Errorf("%w: %q has several decimal separators", ErrInvalidPrice, token)
	}
	num = strings.Replace(num, decimalSep, ".", 1)

	p, err := decimal.NewFromString(num)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q: %v", ErrInvalidPrice, token, err)
	}
	if !p.IsPositive() || p.GreaterThan(maxPrice) {
		return decimal.Zero, fmt.Errorf("%w: %s €/kg is out of (0, %s]", ErrInvalidPrice, p, maxPrice)
	}
	return p, nil
}
