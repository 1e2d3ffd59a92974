// Package scheduler keeps the alarm facility in sync with armed alarms.
//
// Every Schedule call cancels what it scheduled before, so at most one
// primary schedule and one re-trigger chain are live per alarm. Callers
// must serialize calls for the same alarm id.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/riseup/internal/alarm"
	"github.com/abhisek/riseup/internal/bridge"
	"github.com/abhisek/riseup/internal/facility"
)

// DefaultTitle is the alert title used for alarms without a label.
const DefaultTitle = "Time to rise"

// Scheduler registers alarms with the facility.
type Scheduler struct {
	facility facility.Facility
	bridge   *bridge.Bridge
	logger   *slog.Logger
	now      func() time.Time
	title    string
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) { s.logger = l }
}

// WithClock sets the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// WithTitle sets the alert title for alarms without a label.
func WithTitle(title string) Option {
	return func(s *Scheduler) {
		if title != "" {
			s.title = title
		}
	}
}

// New creates a Scheduler.
func New(f facility.Facility, b *bridge.Bridge, opts ...Option) *Scheduler {
	s := &Scheduler{
		facility: f,
		bridge:   b,
		logger:   slog.Default(),
		now:      time.Now,
		title:    DefaultTitle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Schedule cancels whatever is live for the alarm, then registers a
// recurring schedule (or a one-shot for the next occurrence when the
// facility rejects recurring) followed by the re-trigger chain.
func (s *Scheduler) Schedule(ctx context.Context, a alarm.Alarm) Result {
	log := s.logger.With("alarm", a.ID)
	res := Result{AlarmID: a.ID}

	if c := s.Cancel(ctx, a.ID); c.Status == Failed {
		res.Status = Failed
		res.Err = fmt.Errorf("cancel previous schedule: %w", c.Err)
		log.Warn("scheduling aborted", "error", res.Err)
		return res
	}

	status, err := s.facility.RequestAuthorization(ctx)
	if err != nil {
		res.Status = Failed
		res.Err = fmt.Errorf("request authorization: %w", err)
		log.Warn("scheduling failed", "error", res.Err)
		return res
	}
	if status != facility.Authorized {
		res.Status = Denied
		log.Warn("alarm permission not granted", "status", status)
		return res
	}

	res.UUID = s.bridge.Resolve(a.ID)
	weekdays := alarm.ExternalWeekdays(a.Days)
	if len(weekdays) == 0 {
		res.Status = NoDays
		log.Warn("alarm has no enabled days, nothing scheduled")
		return res
	}

	now := s.now()
	next, hasNext := a.Next(now)
	res.FireAt = next
	sound, title := string(a.Sound), s.titleFor(a)

	err = s.facility.ScheduleRecurring(ctx, facility.RecurringRequest{
		UUID:     res.UUID,
		Hour:     a.Time.Hour,
		Minute:   a.Time.Minute,
		Weekdays: weekdays,
		Sound:    sound,
		Title:    title,
		AlarmID:  a.ID,
	})
	res.Status = Scheduled
	if err != nil {
		log.Warn("recurring schedule rejected, falling back to one-shot", "error", err)
		if !hasNext {
			res.Status = Failed
			res.Err = fmt.Errorf("schedule recurring: %w", err)
			return res
		}
		err = s.facility.ScheduleFixed(ctx, facility.FixedRequest{
			UUID:    res.UUID,
			At:      next,
			Sound:   sound,
			Title:   title,
			AlarmID: a.ID,
		})
		if err != nil {
			res.Status = Failed
			res.Err = fmt.Errorf("schedule one-shot: %w", err)
			log.Warn("scheduling failed", "error", res.Err)
			return res
		}
		res.Status = ScheduledFallback
	}

	if hasNext {
		res.Retriggers, res.Err = s.scheduleRetriggers(ctx, log, a, next, now, sound, title)
	}
	log.Debug("alarm scheduled", "status", res.Status, "next", next, "retriggers", len(res.Retriggers))
	return res
}

// scheduleRetriggers issues the one-shot escalation chain after base and
// records the UUIDs that went live. When recording fails the chain is
// rolled back and the error, joined with any failed rollback cancel, is
// returned; the primary schedule is unaffected.
func (s *Scheduler) scheduleRetriggers(ctx context.Context, log *slog.Logger, a alarm.Alarm, base, now time.Time, sound, title string) ([]time.Time, error) {
	var (
		ids   []uuid.UUID
		times []time.Time
	)
	for _, at := range RetriggerTimes(base, now) {
		id := uuid.New()
		err := s.facility.ScheduleFixed(ctx, facility.FixedRequest{
			UUID:    id,
			At:      at,
			Sound:   sound,
			Title:   title,
			AlarmID: a.ID,
		})
		if err != nil {
			log.Warn("re-trigger rejected", "at", at, "error", err)
			continue
		}
		ids = append(ids, id)
		times = append(times, at)
	}

	if err := s.bridge.RecordRetriggers(ctx, a.ID, ids); err != nil {
		// Unrecorded schedules could never be cancelled after a restart.
		errs := []error{fmt.Errorf("record re-triggers: %w", err)}
		for _, id := range ids {
			if cerr := s.facility.Cancel(ctx, id); cerr != nil {
				errs = append(errs, fmt.Errorf("roll back re-trigger %s: %w", id, cerr))
			}
		}
		err = errors.Join(errs...)
		log.Warn("could not record re-triggers, cancelled them", "error", err)
		return nil, err
	}
	return times, nil
}

// Cancel removes the primary schedule and every re-trigger for alarmID.
// When the facility can cancel by alarm id that sweep is authoritative,
// so schedules registered by another process sharing the facility go
// too. Otherwise mappings are dropped only for schedules the facility
// confirmed gone.
func (s *Scheduler) Cancel(ctx context.Context, alarmID string) Result {
	res := Result{AlarmID: alarmID, Status: Cancelled}
	if id, ok := s.bridge.Lookup(alarmID); ok {
		res.UUID = id
	}

	var errs []error
	if ac, ok := s.facility.(facility.AlarmCanceller); ok {
		errs = s.cancelByAlarm(ctx, ac, alarmID)
	} else {
		errs = s.cancelByUUID(ctx, alarmID)
	}

	if err := errors.Join(errs...); err != nil {
		res.Status = Failed
		res.Err = err
		s.logger.Warn("cancel incomplete", "alarm", alarmID, "error", err)
	}
	return res
}

func (s *Scheduler) cancelByAlarm(ctx context.Context, ac facility.AlarmCanceller, alarmID string) []error {
	if err := ac.CancelAlarm(ctx, alarmID); err != nil {
		return []error{fmt.Errorf("cancel schedules for %s: %w", alarmID, err)}
	}
	s.bridge.Forget(alarmID)
	// The persisted list may have been written by another process.
	if err := s.bridge.ClearRetriggers(ctx, alarmID); err != nil {
		return []error{err}
	}
	return nil
}

func (s *Scheduler) cancelByUUID(ctx context.Context, alarmID string) []error {
	var errs []error
	if id, ok := s.bridge.Lookup(alarmID); ok {
		if err := s.facility.Cancel(ctx, id); err != nil {
			errs = append(errs, fmt.Errorf("cancel primary %s: %w", id, err))
		} else {
			s.bridge.Forget(alarmID)
		}
	}

	retriggers := s.bridge.Retriggers(alarmID)
	cancelled := true
	for _, id := range retriggers {
		if err := s.facility.Cancel(ctx, id); err != nil {
			errs = append(errs, fmt.Errorf("cancel re-trigger %s: %w", id, err))
			cancelled = false
		}
	}
	if len(retriggers) > 0 && cancelled {
		if err := s.bridge.ClearRetriggers(ctx, alarmID); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// CancelAll removes every schedule the facility holds and clears both
// halves of the bridge.
func (s *Scheduler) CancelAll(ctx context.Context) Result {
	res := Result{Status: Cancelled}
	if err := s.facility.CancelAll(ctx); err != nil {
		res.Status = Failed
		res.Err = fmt.Errorf("cancel all: %w", err)
		s.logger.Warn("cancel all failed", "error", res.Err)
		return res
	}
	s.bridge.ForgetAll()

	var errs []error
	for id := range s.bridge.AllRetriggers() {
		if err := s.bridge.ClearRetriggers(ctx, id); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		res.Status = Failed
		res.Err = err
		s.logger.Warn("clearing re-triggers failed", "error", err)
	}
	return res
}

// Rehydrate runs once per cold start. The UUID mapping did not survive
// the restart, so every facility schedule is dropped and every armed
// alarm is scheduled again under a fresh UUID.
func (s *Scheduler) Rehydrate(ctx context.Context, alarms []alarm.Alarm) ([]Result, error) {
	if err := s.bridge.Load(ctx); err != nil {
		return nil, err
	}
	if r := s.CancelAll(ctx); r.Status == Failed {
		return nil, fmt.Errorf("rehydrate: %w", r.Err)
	}

	var results []Result
	for _, a := range alarms {
		if !a.Armed {
			continue
		}
		results = append(results, s.Schedule(ctx, a))
	}
	s.logger.Debug("rehydrated alarms", "scheduled", len(results))
	return results, nil
}

func (s *Scheduler) titleFor(a alarm.Alarm) string {
	if a.Label != "" {
		return a.Label
	}
	return s.title
}
