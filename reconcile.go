package oliveprice

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
)

// State is the stage a reconciliation run has reached.
type State int

const (
	Idle State = iota
	Reading
	Extracting
	Merging
	GapFilling
	TodayMerging
	Serializing
	Done
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Reading:
		return "reading"
	case Extracting:
		return "extracting"
	case Merging:
		return "merging"
	case GapFilling:
		return "gap-filling"
	case TodayMerging:
		return "today-merging"
	case Serializing:
		return "serializing"
	case Done:
		return "done"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Reconciler turns a text log, the previous canonical output and today's
// snapshot into one gap free series per grade.
//
// Every source is optional, an empty path is skipped. A configured log or
// snapshot that cannot be read aborts the run with ErrSourceUnavailable; a
// missing Base is an empty one.
type Reconciler struct {
	Log           string // text log path
	Layout        Layout
	LogConvention Convention

	Base string // previous canonical output path

	Snapshot           string // daily JSON snapshot path
	SnapshotConvention Convention

	// End is the last day of the filled series. Zero ends each grade at its
	// latest known day.
	End Date
}

// Result is the outcome of a run.
type Result struct {
	Book         Book
	GradeErrors  map[Grade]error // grades that could not be filled
	Warnings     []Warning       // skipped input
	Observations int             // observations read from the log
	Snapshot     *Snapshot       // today's snapshot, if any
	State        State
}

// Err joins the grade errors in canonical grade order.
func (r *Result) Err() error {
	var errs []error
	for _, g := range Grades() {
		if err, ok := r.GradeErrors[g]; ok {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Encode writes the reconciled series in the canonical output format.
func (r *Result) Encode(w io.Writer) error {
	r.State = Serializing
	if err := EncodeBook(w, r.Book); err != nil {
		return err
	}
	r.State = Done
	return nil
}

// sources is what a run has read.
type sources struct {
	log, base, snapshot []byte
}

// Run reads every source and reconciles them. The returned Result is ready
// to be encoded; Run itself never writes.
func (rc Reconciler) Run() (*Result, error) {
	res := &Result{State: Reading}
	src, err := rc.read()
	if err != nil {
		return nil, err
	}

	res.State = Extracting
	base := NewBook()
	if src.base != nil {
		var warnings []Warning
		base, warnings, err = DecodeBook(bytes.NewReader(src.base))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, rc.Base, err)
		}
		res.Warnings = append(res.Warnings, warnings...)
	}
	var obs []Observation
	if src.log != nil {
		x := Extractor{Layout: rc.Layout, Convention: rc.LogConvention}
		var warnings []Warning
		obs, warnings, err = x.Extract(bytes.NewReader(src.log))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, rc.Log, err)
		}
		res.Warnings = append(res.Warnings, warnings...)
		res.Observations = len(obs)
	}
	if src.snapshot != nil {
		s, warnings, err := DecodeSnapshot(src.snapshot, rc.SnapshotConvention)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, rc.Snapshot, err)
		}
		res.Warnings = append(res.Warnings, warnings...)
		res.Snapshot = &s
	}

	// The base was filled by a previous run: only its price changes are
	// observations, so that a log correction is carried to the next days.
	// The log comes after the base, so it wins on the days they share.
	res.State = Merging
	ends := make(map[Grade]Date)
	for g, h := range base {
		if h.Len() > 0 {
			ends[g], _ = h.Latest()
			base[g] = h.Changes()
		}
	}
	book := base.Merge(obs...)

	res.State = GapFilling
	book, res.GradeErrors = book.Fill(rc.End)
	// A series never gets shorter than its base.
	for g, end := range ends {
		if last, _ := book[g].Latest(); book[g].Len() > 0 && last.Before(end) {
			book[g], _ = book[g].Fill(end)
		}
	}

	res.State = TodayMerging
	if res.Snapshot != nil {
		book = book.MergeSnapshot(*res.Snapshot)
		// A grade only known from the snapshot is no longer empty.
		for g := range res.GradeErrors {
			if book[g].Len() > 0 {
				delete(res.GradeErrors, g)
			}
		}
	}
	res.Book = book
	return res, nil
}

// read loads every configured source fully.
func (rc Reconciler) read() (src sources, err error) {
	if rc.Log != "" {
		if src.log, err = os.ReadFile(rc.Log); err != nil {
			return src, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
		}
		if src.log == nil {
			src.log = []byte{}
		}
	}
	if rc.Snapshot != "" {
		if src.snapshot, err = os.ReadFile(rc.Snapshot); err != nil {
			return src, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
		}
	}
	if rc.Base != "" {
		src.base, err = os.ReadFile(rc.Base)
		if errors.Is(err, fs.ErrNotExist) {
			return src, nil
		}
		if err != nil {
			return src, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
		}
	}
	return src, nil
}
