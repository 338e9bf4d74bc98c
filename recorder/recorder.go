// Package recorder keeps the history of reconciliation runs.
package recorder

import (
	"time"

	"github.com/google/uuid"
)

// Run is one reconciliation run.
type Run struct {
	ID           uuid.UUID
	Started      time.Time
	Finished     time.Time
	Trigger      string // "cli" or "schedule"
	State        string // last state reached
	Observations int
	Warnings     int
	Days         map[string]int // filled days per grade
	Err          string         // empty on success
}

// NewRun starts a run now.
func NewRun(trigger string) *Run {
	return &Run{ID: uuid.New(), Started: time.Now(), Trigger: trigger, Days: make(map[string]int)}
}

// Recorder persists runs for later analysis.
type Recorder interface {
	RecordRun(run *Run) error
	Close() error
}
