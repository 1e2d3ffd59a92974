package scheduler

import (
	"time"

	"github.com/google/uuid"
)

// Status is the outcome of a scheduling operation.
type Status int

const (
	// Scheduled means a recurring primary schedule is live.
	Scheduled Status = iota
	// ScheduledFallback means recurring was rejected and a one-shot
	// schedule for the next occurrence is live instead.
	ScheduledFallback
	// Denied means authorization was not granted; nothing is scheduled.
	Denied
	// NoDays means the alarm has no enabled days; nothing is scheduled.
	NoDays
	// Failed means the facility rejected every attempt.
	Failed
	// Cancelled means every schedule for the alarm was removed.
	Cancelled
)

func (s Status) String() string {
	switch s {
	case Scheduled:
		return "scheduled"
	case ScheduledFallback:
		return "scheduled (one-shot fallback)"
	case Denied:
		return "denied"
	case NoDays:
		return "no days"
	case Failed:
		return "failed"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Result reports what a scheduling call did. Failures are soft: Err is
// informational and the caller decides what to show.
type Result struct {
	AlarmID    string
	Status     Status
	UUID       uuid.UUID
	FireAt     time.Time
	Retriggers []time.Time
	Err        error
}

// Live reports whether the alarm now has a primary schedule.
func (r Result) Live() bool {
	return r.Status == Scheduled || r.Status == ScheduledFallback
}
