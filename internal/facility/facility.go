// Package facility defines the contract with the alarm facility that
// actually fires alarms, plus two implementations: Mock for tests and
// Local, which keeps schedules in SQLite and fires them from a poll loop.
package facility

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrUnsupported is returned by ScheduleRecurring when the facility
// cannot express weekly repetition. Callers fall back to a fixed schedule.
var ErrUnsupported = errors.New("recurring schedules not supported")

// AuthStatus is the outcome of an authorization request.
type AuthStatus int

const (
	NotDetermined AuthStatus = iota
	Authorized
	Denied
)

func (s AuthStatus) String() string {
	switch s {
	case Authorized:
		return "authorized"
	case Denied:
		return "denied"
	default:
		return "notDetermined"
	}
}

// FixedRequest schedules a single alert at an absolute time.
type FixedRequest struct {
	UUID    uuid.UUID
	At      time.Time
	Sound   string
	Title   string
	AlarmID string
}

// RecurringRequest schedules a weekly alert. Weekdays use the facility
// numbering: 1 = Sunday ... 7 = Saturday.
type RecurringRequest struct {
	UUID     uuid.UUID
	Hour     int
	Minute   int
	Weekdays []int
	Sound    string
	Title    string
	AlarmID  string
}

// Facility is the external alarm facility. Scheduling the same UUID
// twice replaces the earlier schedule. Cancelling an unknown UUID is a
// no-op.
type Facility interface {
	RequestAuthorization(ctx context.Context) (AuthStatus, error)
	ScheduleFixed(ctx context.Context, req FixedRequest) error
	ScheduleRecurring(ctx context.Context, req RecurringRequest) error
	Cancel(ctx context.Context, id uuid.UUID) error
	CancelAll(ctx context.Context) error

	// SystemVolume returns the output volume in [0, 1].
	SystemVolume(ctx context.Context) (float64, error)

	// LaunchAlarmID returns, once, the id of the alarm whose firing
	// launched the app.
	LaunchAlarmID(ctx context.Context) (string, bool, error)
}

// AlarmCanceller is implemented by facilities that can drop every
// schedule issued for an alarm id, including schedules another process
// registered under UUIDs this process never saw.
type AlarmCanceller interface {
	CancelAlarm(ctx context.Context, alarmID string) error
}
