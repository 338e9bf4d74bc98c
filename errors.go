package oliveprice

import "errors"

// Per-record errors. They are reported as Warnings and never abort an
// extraction.
var (
	ErrInvalidDate       = errors.New("invalid date")
	ErrInvalidPrice      = errors.New("invalid price")
	ErrUnclassifiedGrade = errors.New("unclassified grade")
	// ErrUnexpectedLine reports a price line in excess of a block's three
	// grades.
	ErrUnexpectedLine = errors.New("unexpected line")
)

// ErrEmptySeries is returned when a grade has no observation at all. It only
// concerns that grade.
var ErrEmptySeries = errors.New("empty series")

// ErrSourceUnavailable aborts a run before anything is written.
var ErrSourceUnavailable = errors.New("source unavailable")
