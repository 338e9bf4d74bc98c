package oliveprice

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DateFormat is the format used to represent dates as strings in ISO-8601 format.
const DateFormat = "2006-01-02"

// logDateFormat is the day-first format used by text logs.
const logDateFormat = "02-01-2006"

// Date represents a date with day-level granularity.
type Date struct {
	y int        // year
	m time.Month // month
	d int        // day
}

// NewDate returns a normalized Date for the given year, month, and day.
func NewDate(year int, month time.Month, day int) Date {
	d := Date{year, month, day}
	d.y, d.m, d.d = d.time().Date()
	return d
}

// Year returns current year.
func (d Date) Year() int { return d.y }

// Month returns the month of the date.
func (d Date) Month() time.Month { return d.m }

// Day returns current day of the month.
func (d Date) Day() int { return d.d }

// String format the date in ISO-8601.
func (d Date) String() string { return d.time().Format(DateFormat) }

// IsZero returns true if the date is the zero value.
func (d Date) IsZero() bool { return d.y == 0 && d.m == 0 && d.d == 0 }

// time returns a time.Time that is a canonical representation of that day (at midnight UTC).
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Format returns a textual representation of the date value formatted according to the layout defined by the argument.
//
//	See the documentation for the [time.Format].
func (d Date) Format(format string) string { return d.time().Format(format) }

// Before reports whether the day d is before x.
func (d Date) Before(x Date) bool { return d.time().Before(x.time()) }

// After reports whether the day d is after x.
func (d Date) After(x Date) bool { return d.time().After(x.time()) }

// Add returns a new Date with the given number of days added.
func (d Date) Add(i int) Date { return NewDate(d.y, d.m, d.d+i) }

// Sub returns the number of days from x to d.
func (d Date) Sub(x Date) int { return int(d.time().Sub(x.time()) / (24 * time.Hour)) }

// Today returns the current date.
func Today() Date { return NewDate(time.Now().Date()) }

// compare orders dates, for use with the slices package.
func compare(a, b Date) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	}
	return 0
}

// Date tokens, in precedence order. Separators are checked to be identical
// after matching.
var (
	dayFirstLongRe  = regexp.MustCompile(`^(\d{1,2})([-/])(\d{1,2})([-/])(\d{4})$`)
	dayFirstShortRe = regexp.MustCompile(`^(\d{1,2})([-/])(\d{1,2})([-/])(\d{2})$`)
	yearFirstRe     = regexp.MustCompile(`^(\d{4})([-/])(\d{1,2})([-/])(\d{1,2})$`)
)

// dateTokenRe finds something date shaped inside a longer line.
var dateTokenRe = regexp.MustCompile(`\b\d{1,4}[-/]\d{1,2}[-/]\d{1,4}\b`)

// ParseDate parses a date token in one of the formats DD-MM-YYYY, DD-MM-YY or
// YYYY-MM-DD, with '-' or '/' separators. Two-digit years are in the 2000s.
//
// It fails with ErrInvalidDate if the token has none of these shapes, or if
// it does not denote a real calendar day (like 31-04-2020).
func ParseDate(token string) (Date, error) {
	token = strings.TrimSpace(token)
	var y, m, d string
	if g := dayFirstLongRe.FindStringSubmatch(token); g != nil && g[2] == g[4] {
		d, m, y = g[1], g[3], g[5]
	} else if g := dayFirstShortRe.FindStringSubmatch(token); g != nil && g[2] == g[4] {
		d, m, y = g[1], g[3], g[5]
	} else if g := yearFirstRe.FindStringSubmatch(token); g != nil && g[2] == g[4] {
		y, m, d = g[1], g[3], g[5]
	} else {
		return Date{}, fmt.Errorf("%w: %q is not a date", ErrInvalidDate, token)
	}

	// The regexps guarantee digits only.
	year, _ := strconv.Atoi(y)
	month, _ := strconv.Atoi(m)
	day, _ := strconv.Atoi(d)
	if year < 100 {
		year += 2000
	}

	on := NewDate(year, time.Month(month), day)
	if on.y != year || int(on.m) != month || on.d != day {
		// NewDate normalized it: 31-04 became 01-05.
		return Date{}, fmt.Errorf("%w: %q is not a calendar day", ErrInvalidDate, token)
	}
	return on, nil
}

// MustParseDate is like ParseDate but panics on error.
func MustParseDate(token string) Date {
	d, err := ParseDate(token)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// ParseDateTime parses a date optionally followed by a time of day, as found
// in snapshots ("2024-03-01 10:00:00", "2024-03-01T10:00:00Z"). The time is
// ignored.
func ParseDateTime(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return NewDate(t.Date()), nil
	}
	if i := strings.IndexAny(s, " T"); i >= 0 {
		s = s[:i]
	}
	return ParseDate(s)
}

// findDate looks for a date shaped token in a line. It returns the token
// position, or nil if there is none.
func findDate(line string) []int { return dateTokenRe.FindStringIndex(line) }

// UnmarshalJSON implements the json specific way to unmarshall a date from a json string.
func (d *Date) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	on, err := ParseDate(str)
	if err != nil {
		return err
	}
	*d = on
	return nil
}

// MarshalJSON writes the date in ISO-8601.
func (d Date) MarshalJSON() ([]byte, error) {
	str := d.String()
	return json.Marshal(&str)
}

// check that a Date pointer is a valid json marshall/unmarshaller type.
var _ json.Marshaler = (*Date)(nil)
var _ json.Unmarshaler = (*Date)(nil)
