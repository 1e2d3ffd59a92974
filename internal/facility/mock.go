package facility

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// Schedule is a live schedule held by Mock.
type Schedule struct {
	UUID      uuid.UUID
	AlarmID   string
	Recurring bool
	Fixed     FixedRequest
	Weekly    RecurringRequest
}

// Mock is an in-memory Facility for tests.
type Mock struct {
	mu sync.Mutex

	// Auth is returned by RequestAuthorization.
	Auth AuthStatus

	// RejectRecurring makes ScheduleRecurring fail with ErrUnsupported.
	RejectRecurring bool

	// FailFixed makes ScheduleFixed fail.
	FailFixed bool

	// Volume is returned by SystemVolume.
	Volume float64

	// Launch is handed out once by LaunchAlarmID.
	Launch string

	live        map[uuid.UUID]Schedule
	authAsked   int
	cancelCalls int
}

// NewMock returns an authorized Mock with no schedules.
func NewMock() *Mock {
	return &Mock{
		Auth:   Authorized,
		Volume: 1,
		live:   make(map[uuid.UUID]Schedule),
	}
}

func (m *Mock) RequestAuthorization(_ context.Context) (AuthStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.authAsked++
	return m.Auth, nil
}

func (m *Mock) ScheduleFixed(_ context.Context, req FixedRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailFixed {
		return errors.New("mock: fixed schedule rejected")
	}
	m.live[req.UUID] = Schedule{UUID: req.UUID, AlarmID: req.AlarmID, Fixed: req}
	return nil
}

func (m *Mock) ScheduleRecurring(_ context.Context, req RecurringRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.RejectRecurring {
		return ErrUnsupported
	}
	m.live[req.UUID] = Schedule{UUID: req.UUID, AlarmID: req.AlarmID, Recurring: true, Weekly: req}
	return nil
}

func (m *Mock) Cancel(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cancelCalls++
	delete(m.live, id)
	return nil
}

func (m *Mock) CancelAll(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.live = make(map[uuid.UUID]Schedule)
	return nil
}

func (m *Mock) SystemVolume(_ context.Context) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Volume, nil
}

func (m *Mock) LaunchAlarmID(_ context.Context) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	id := m.Launch
	m.Launch = ""
	return id, id != "", nil
}

// Live returns every live schedule, fixed ones first by fire time.
func (m *Mock) Live() []Schedule {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Schedule, 0, len(m.live))
	for _, s := range m.live {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Recurring != out[j].Recurring {
			return !out[i].Recurring
		}
		return out[i].Fixed.At.Before(out[j].Fixed.At)
	})
	return out
}

// LiveFor returns the live schedules tagged with alarmID.
func (m *Mock) LiveFor(alarmID string) []Schedule {
	var out []Schedule
	for _, s := range m.Live() {
		if s.AlarmID == alarmID {
			out = append(out, s)
		}
	}
	return out
}

// Has reports whether a schedule with the given UUID is live.
func (m *Mock) Has(id uuid.UUID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.live[id]
	return ok
}

// AuthRequests returns how many times authorization was requested.
func (m *Mock) AuthRequests() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.authAsked
}
