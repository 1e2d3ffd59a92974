package store

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/riseup/internal/alarm"
	"github.com/google/uuid"
)

// ErrDuplicateID is returned when creating an alarm whose id is already
// taken, including ids of deleted alarms.
var ErrDuplicateID = errors.New("alarm id already used")

// AlarmRepo persists alarms. Missing or deleted ids yield alarm.ErrNotFound.
type AlarmRepo interface {
	// Create inserts a new alarm.
	Create(ctx context.Context, a alarm.Alarm) error

	// Save overwrites an existing alarm.
	Save(ctx context.Context, a alarm.Alarm) error

	// Get returns the alarm with the given id.
	Get(ctx context.Context, id string) (alarm.Alarm, error)

	// List returns every live alarm ordered by time of day, then creation.
	List(ctx context.Context) ([]alarm.Alarm, error)

	// Delete removes the alarm. Its id stays reserved.
	Delete(ctx context.Context, id string) error
}

// RetriggerRepo persists re-trigger UUID lists keyed by alarm id.
type RetriggerRepo interface {
	LoadRetriggers(ctx context.Context) (map[string][]uuid.UUID, error)
	SaveRetriggers(ctx context.Context, alarmID string, ids []uuid.UUID) error
	DeleteRetriggers(ctx context.Context, alarmID string) error
}

// ScheduleKind distinguishes one-shot from weekly schedules.
type ScheduleKind string

const (
	ScheduleFixed     ScheduleKind = "fixed"
	ScheduleRecurring ScheduleKind = "recurring"
)

// ScheduleRecord is one live schedule held by the local alarm facility.
type ScheduleRecord struct {
	UUID    uuid.UUID
	AlarmID string
	Kind    ScheduleKind

	// FireAt is set for fixed schedules.
	FireAt time.Time

	// Hour, Minute and Weekdays (1 = Sunday ... 7 = Saturday) are set for
	// recurring schedules.
	Hour     int
	Minute   int
	Weekdays []int

	Sound string
	Title string

	// LastFiredAt is zero until the schedule first fires.
	LastFiredAt time.Time
	CreatedAt   time.Time
}

// ScheduleRepo persists the local facility's schedules.
type ScheduleRepo interface {
	// Put inserts or replaces the schedule with rec.UUID.
	Put(ctx context.Context, rec ScheduleRecord) error

	// Delete removes one schedule. Unknown UUIDs are ignored.
	Delete(ctx context.Context, id uuid.UUID) error

	// DeleteByAlarm removes every schedule issued for alarmID and returns
	// how many were removed.
	DeleteByAlarm(ctx context.Context, alarmID string) (int64, error)

	// DeleteAll removes every schedule.
	DeleteAll(ctx context.Context) error

	// List returns every schedule ordered by creation.
	List(ctx context.Context) ([]ScheduleRecord, error)

	// MarkFired records that a schedule fired at the given time.
	MarkFired(ctx context.Context, id uuid.UUID, at time.Time) error

	// SetLaunchAlarm remembers the alarm id whose firing launched the app.
	SetLaunchAlarm(ctx context.Context, alarmID string) error

	// TakeLaunchAlarm returns and clears the pending launch alarm id.
	TakeLaunchAlarm(ctx context.Context) (string, bool, error)
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// Challenge event actions.
const (
	ActionStart    = "start"
	ActionAnswer   = "answer"
	ActionHit      = "hit"
	ActionComplete = "complete"
	ActionAbandon  = "abandon"
)

// ChallengeEventData captures one step of a wake-up challenge.
type ChallengeEventData struct {
	SessionID  string
	AlarmID    string // empty for practice sessions
	Kind       string
	Difficulty int
	Action     string
	Prompt     string
	Response   string
	Correct    bool
	ElapsedMs  int64
}

// ChallengeEvent is a stored ChallengeEventData with its ordering fields.
type ChallengeEvent struct {
	Sequence  int64
	Timestamp time.Time
	ChallengeEventData
}

// EventRepo provides append and query access to challenge events.
type EventRepo interface {
	// AppendChallengeEvent records one challenge step.
	AppendChallengeEvent(ctx context.Context, data ChallengeEventData) error

	// QueryChallengeEvents returns events in sequence order.
	QueryChallengeEvents(ctx context.Context, opts QueryOpts) ([]ChallengeEvent, error)
}
