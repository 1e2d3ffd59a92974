// Package alarmstore owns alarm persistence and keeps the scheduler in
// step with every mutation.
package alarmstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/abhisek/riseup/internal/alarm"
	"github.com/abhisek/riseup/internal/challenge"
	"github.com/abhisek/riseup/internal/rng"
	"github.com/abhisek/riseup/internal/scheduler"
	"github.com/abhisek/riseup/internal/store"
)

// maxIDAttempts bounds retries when a freshly generated id is taken.
const maxIDAttempts = 5

// Service is the alarm CRUD surface. Arming schedules, disarming and
// deleting cancel.
type Service struct {
	repo   store.AlarmRepo
	sched  *scheduler.Scheduler
	src    rng.Source
	now    func() time.Time
	logger *slog.Logger

	mu         sync.Mutex
	rehydrated bool
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets the time source used for ids and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithSource sets the random source used for ids.
func WithSource(src rng.Source) Option {
	return func(s *Service) { s.src = src }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// New creates a Service.
func New(repo store.AlarmRepo, sched *scheduler.Scheduler, opts ...Option) *Service {
	s := &Service{
		repo:   repo,
		sched:  sched,
		src:    rng.NewTimeSeeded(),
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Rehydrate re-registers every armed alarm. It runs at most once per
// process; mutations trigger it implicitly.
func (s *Service) Rehydrate(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rehydrateLocked(ctx)
}

func (s *Service) rehydrateLocked(ctx context.Context) error {
	if s.rehydrated {
		return nil
	}
	alarms, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("list alarms: %w", err)
	}
	if _, err := s.sched.Rehydrate(ctx, alarms); err != nil {
		return err
	}
	s.rehydrated = true
	return nil
}

// Add creates an alarm, assigning its id and filling defaults for unset
// fields. Armed alarms are scheduled immediately.
func (s *Service) Add(ctx context.Context, a alarm.Alarm) (alarm.Alarm, scheduler.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	applyDefaults(&a)
	if err := a.Validate(); err != nil {
		return alarm.Alarm{}, scheduler.Result{}, err
	}
	if err := s.rehydrateLocked(ctx); err != nil {
		return alarm.Alarm{}, scheduler.Result{}, err
	}

	now := s.now()
	a.CreatedAt, a.UpdatedAt = now, now

	var err error
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		a.ID = alarm.NewID(s.src, now)
		err = s.repo.Create(ctx, a)
		if !errors.Is(err, store.ErrDuplicateID) {
			break
		}
	}
	if err != nil {
		return alarm.Alarm{}, scheduler.Result{}, fmt.Errorf("create alarm: %w", err)
	}

	return a, s.sync(ctx, a), nil
}

// Update overwrites the stored fields of an existing alarm and
// reschedules or cancels it to match.
func (s *Service) Update(ctx context.Context, a alarm.Alarm) (alarm.Alarm, scheduler.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := a.Validate(); err != nil {
		return alarm.Alarm{}, scheduler.Result{}, err
	}
	cur, err := s.repo.Get(ctx, a.ID)
	if err != nil {
		return alarm.Alarm{}, scheduler.Result{}, err
	}
	if err := s.rehydrateLocked(ctx); err != nil {
		return alarm.Alarm{}, scheduler.Result{}, err
	}

	a.CreatedAt = cur.CreatedAt
	a.UpdatedAt = s.now()
	if err := s.repo.Save(ctx, a); err != nil {
		return alarm.Alarm{}, scheduler.Result{}, err
	}
	return a, s.sync(ctx, a), nil
}

// Toggle flips the armed flag.
func (s *Service) Toggle(ctx context.Context, id string) (alarm.Alarm, scheduler.Result, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return alarm.Alarm{}, scheduler.Result{}, err
	}
	return s.SetArmed(ctx, id, !a.Armed)
}

// SetArmed arms or disarms an alarm.
func (s *Service) SetArmed(ctx context.Context, id string, armed bool) (alarm.Alarm, scheduler.Result, error) {
	a, err := s.Get(ctx, id)
	if err != nil {
		return alarm.Alarm{}, scheduler.Result{}, err
	}
	a.Armed = armed
	return s.Update(ctx, a)
}

// Delete cancels every schedule for the alarm and then removes it.
func (s *Service) Delete(ctx context.Context, id string) (scheduler.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.repo.Get(ctx, id); err != nil {
		return scheduler.Result{}, err
	}
	if err := s.rehydrateLocked(ctx); err != nil {
		return scheduler.Result{}, err
	}

	res := s.sched.Cancel(ctx, id)
	if res.Status == scheduler.Failed {
		return res, fmt.Errorf("delete alarm %s: %w", id, res.Err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return res, err
	}
	return res, nil
}

// Get returns one alarm.
func (s *Service) Get(ctx context.Context, id string) (alarm.Alarm, error) {
	return s.repo.Get(ctx, id)
}

// List returns every alarm ordered by time of day.
func (s *Service) List(ctx context.Context) ([]alarm.Alarm, error) {
	return s.repo.List(ctx)
}

// Complete is called when the alarm's challenge is solved. A still-armed
// alarm is scheduled afresh for its next occurrence, which also cancels
// the pending re-triggers; a disarmed one just has them cancelled.
func (s *Service) Complete(ctx context.Context, id string) (scheduler.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.repo.Get(ctx, id)
	if err != nil {
		return scheduler.Result{}, err
	}
	if err := s.rehydrateLocked(ctx); err != nil {
		return scheduler.Result{}, err
	}
	return s.sync(ctx, a), nil
}

// Reset cancels every schedule and wipes stored alarms and history.
func (s *Service) Reset(ctx context.Context, wipe func(context.Context) error) (scheduler.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.sched.CancelAll(ctx)
	if res.Status == scheduler.Failed {
		return res, res.Err
	}
	if err := wipe(ctx); err != nil {
		return res, fmt.Errorf("wipe store: %w", err)
	}
	return res, nil
}

func (s *Service) sync(ctx context.Context, a alarm.Alarm) scheduler.Result {
	var res scheduler.Result
	if a.Armed {
		res = s.sched.Schedule(ctx, a)
	} else {
		res = s.sched.Cancel(ctx, a.ID)
	}
	s.logger.Debug("alarm synced", "alarm", a.ID, "armed", a.Armed, "status", res.Status)
	return res
}

func applyDefaults(a *alarm.Alarm) {
	if a.Sound == "" {
		a.Sound = alarm.DefaultSound
	}
	if a.Challenge == "" {
		a.Challenge = challenge.KindMath
	}
	if a.Difficulty == 0 {
		a.Difficulty = challenge.DefaultDifficulty
	}
}
