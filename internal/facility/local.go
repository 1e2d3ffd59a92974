package facility

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/riseup/internal/alarm"
	"github.com/abhisek/riseup/internal/store"
)

// Fired is a schedule that came due.
type Fired struct {
	UUID    uuid.UUID
	AlarmID string
	Sound   string
	Title   string
	At      time.Time
}

// Local is a Facility that keeps schedules in SQLite. Nothing fires on
// its own: a poll loop calls Due once per tick.
type Local struct {
	repo   store.ScheduleRepo
	logger *slog.Logger
	volume float64
}

// NewLocal creates a Local facility over repo.
func NewLocal(repo store.ScheduleRepo, logger *slog.Logger) *Local {
	if logger == nil {
		logger = slog.Default()
	}
	return &Local{repo: repo, logger: logger, volume: 1}
}

// RequestAuthorization always grants; a terminal needs no permission to ring.
func (l *Local) RequestAuthorization(_ context.Context) (AuthStatus, error) {
	return Authorized, nil
}

func (l *Local) ScheduleFixed(ctx context.Context, req FixedRequest) error {
	return l.repo.Put(ctx, store.ScheduleRecord{
		UUID:    req.UUID,
		AlarmID: req.AlarmID,
		Kind:    store.ScheduleFixed,
		FireAt:  req.At,
		Sound:   req.Sound,
		Title:   req.Title,
	})
}

func (l *Local) ScheduleRecurring(ctx context.Context, req RecurringRequest) error {
	if len(req.Weekdays) == 0 {
		return fmt.Errorf("recurring schedule %s has no weekdays", req.UUID)
	}
	for _, d := range req.Weekdays {
		if d < 1 || d > 7 {
			return fmt.Errorf("recurring schedule %s: weekday %d not in 1-7", req.UUID, d)
		}
	}
	return l.repo.Put(ctx, store.ScheduleRecord{
		UUID:     req.UUID,
		AlarmID:  req.AlarmID,
		Kind:     store.ScheduleRecurring,
		Hour:     req.Hour,
		Minute:   req.Minute,
		Weekdays: append([]int(nil), req.Weekdays...),
		Sound:    req.Sound,
		Title:    req.Title,
	})
}

func (l *Local) Cancel(ctx context.Context, id uuid.UUID) error {
	return l.repo.Delete(ctx, id)
}

// CancelAlarm removes every stored schedule carrying alarmID.
func (l *Local) CancelAlarm(ctx context.Context, alarmID string) error {
	n, err := l.repo.DeleteByAlarm(ctx, alarmID)
	if err != nil {
		return err
	}
	l.logger.Debug("cancelled schedules for alarm", "alarm", alarmID, "count", n)
	return nil
}

func (l *Local) CancelAll(ctx context.Context) error {
	return l.repo.DeleteAll(ctx)
}

// SystemVolume reports the configured output volume.
func (l *Local) SystemVolume(_ context.Context) (float64, error) {
	return l.volume, nil
}

// SetVolume sets the value SystemVolume reports, clamped to [0, 1].
func (l *Local) SetVolume(v float64) {
	l.volume = min(max(v, 0), 1)
}

func (l *Local) LaunchAlarmID(ctx context.Context) (string, bool, error) {
	return l.repo.TakeLaunchAlarm(ctx)
}

// Pending lists every stored schedule.
func (l *Local) Pending(ctx context.Context) ([]store.ScheduleRecord, error) {
	return l.repo.List(ctx)
}

// Due returns the schedules that fire at now and records the first one
// as the launch alarm. Fixed schedules at or before now are consumed.
// Recurring schedules match weekday and hour:minute, at most once per
// minute.
func (l *Local) Due(ctx context.Context, now time.Time) ([]Fired, error) {
	recs, err := l.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}

	minute := now.Truncate(time.Minute)
	var fired []Fired
	for _, rec := range recs {
		switch rec.Kind {
		case store.ScheduleFixed:
			if rec.FireAt.After(now) {
				continue
			}
			if err := l.repo.Delete(ctx, rec.UUID); err != nil {
				return fired, err
			}
		case store.ScheduleRecurring:
			if !matchesWeekly(rec, now) {
				continue
			}
			if !rec.LastFiredAt.IsZero() && !rec.LastFiredAt.Before(minute) {
				continue
			}
			if err := l.repo.MarkFired(ctx, rec.UUID, now); err != nil {
				return fired, err
			}
		default:
			l.logger.Warn("skipping schedule with unknown kind", "uuid", rec.UUID, "kind", rec.Kind)
			continue
		}

		l.logger.Info("alarm due", "alarm", rec.AlarmID, "uuid", rec.UUID, "kind", rec.Kind)
		fired = append(fired, Fired{
			UUID:    rec.UUID,
			AlarmID: rec.AlarmID,
			Sound:   rec.Sound,
			Title:   rec.Title,
			At:      now,
		})
	}

	if len(fired) > 0 {
		if err := l.repo.SetLaunchAlarm(ctx, fired[0].AlarmID); err != nil {
			return fired, err
		}
	}
	return fired, nil
}

// matchesWeekly reports whether a recurring record fires in now's minute.
func matchesWeekly(rec store.ScheduleRecord, now time.Time) bool {
	if now.Hour() != rec.Hour || now.Minute() != rec.Minute {
		return false
	}
	today := alarm.ExternalFromWeekday(now.Weekday())
	for _, d := range rec.Weekdays {
		if d == today {
			return true
		}
	}
	return false
}
