package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

const launchAlarmKey = "launch_alarm_id"

var scheduleColumns = []string{
	"uuid", "alarm_id", "kind", "fire_at", "hour", "minute",
	"weekdays", "sound", "title", "last_fired_at", "created_at",
}

// scheduleRepo implements ScheduleRepo.
type scheduleRepo struct {
	s *Store
}

func (r *scheduleRepo) Put(ctx context.Context, rec ScheduleRecord) error {
	weekdays, err := json.Marshal(rec.Weekdays)
	if err != nil {
		return fmt.Errorf("encode weekdays: %w", err)
	}
	created := rec.CreatedAt
	if created.IsZero() {
		created = r.s.now()
	}

	query, args := builder().Insert(FacilitySchedulesTable.Name).
		Columns(scheduleColumns...).
		Values(rec.UUID.String(), rec.AlarmID, string(rec.Kind), nullTime(rec.FireAt),
			rec.Hour, rec.Minute, string(weekdays), rec.Sound, rec.Title,
			nullTime(rec.LastFiredAt), created.UTC()).
		OnConflict(entsql.ConflictColumns("uuid"), entsql.ResolveWithNewValues()).
		Query()
	if _, err := r.s.exec(ctx, query, args...); err != nil {
		return fmt.Errorf("put schedule %s: %w", rec.UUID, err)
	}
	return nil
}

func (r *scheduleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	query, args := builder().Delete(FacilitySchedulesTable.Name).
		Where(entsql.EQ("uuid", id.String())).
		Query()
	if _, err := r.s.exec(ctx, query, args...); err != nil {
		return fmt.Errorf("delete schedule %s: %w", id, err)
	}
	return nil
}

func (r *scheduleRepo) DeleteByAlarm(ctx context.Context, alarmID string) (int64, error) {
	query, args := builder().Delete(FacilitySchedulesTable.Name).
		Where(entsql.EQ("alarm_id", alarmID)).
		Query()
	res, err := r.s.exec(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete schedules for alarm %s: %w", alarmID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count deleted schedules for alarm %s: %w", alarmID, err)
	}
	return n, nil
}

func (r *scheduleRepo) DeleteAll(ctx context.Context) error {
	query, args := builder().Delete(FacilitySchedulesTable.Name).Query()
	if _, err := r.s.exec(ctx, query, args...); err != nil {
		return fmt.Errorf("delete all schedules: %w", err)
	}
	return nil
}

func (r *scheduleRepo) List(ctx context.Context) ([]ScheduleRecord, error) {
	b := builder()
	query, args := b.Select(scheduleColumns...).
		From(b.Table(FacilitySchedulesTable.Name)).
		OrderBy("created_at").
		Query()

	rows, err := r.s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	defer rows.Close()

	var out []ScheduleRecord
	for rows.Next() {
		var (
			rec       ScheduleRecord
			id        string
			kind      string
			fireAt    sql.NullTime
			weekdays  string
			lastFired sql.NullTime
		)
		if err := rows.Scan(&id, &rec.AlarmID, &kind, &fireAt, &rec.Hour, &rec.Minute,
			&weekdays, &rec.Sound, &rec.Title, &lastFired, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan schedule: %w", err)
		}
		if rec.UUID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("parse schedule uuid %q: %w", id, err)
		}
		if err := json.Unmarshal([]byte(weekdays), &rec.Weekdays); err != nil {
			return nil, fmt.Errorf("decode weekdays for %s: %w", id, err)
		}
		rec.Kind = ScheduleKind(kind)
		rec.FireAt = fireAt.Time
		rec.LastFiredAt = lastFired.Time
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate schedules: %w", err)
	}
	return out, nil
}

func (r *scheduleRepo) MarkFired(ctx context.Context, id uuid.UUID, at time.Time) error {
	query, args := builder().Update(FacilitySchedulesTable.Name).
		Set("last_fired_at", at.UTC()).
		Where(entsql.EQ("uuid", id.String())).
		Query()
	if _, err := r.s.exec(ctx, query, args...); err != nil {
		return fmt.Errorf("mark schedule %s fired: %w", id, err)
	}
	return nil
}

func (r *scheduleRepo) SetLaunchAlarm(ctx context.Context, alarmID string) error {
	query, args := builder().Insert(FacilityStateTable.Name).
		Columns("key", "value").
		Values(launchAlarmKey, alarmID).
		OnConflict(entsql.ConflictColumns("key"), entsql.ResolveWithNewValues()).
		Query()
	if _, err := r.s.exec(ctx, query, args...); err != nil {
		return fmt.Errorf("set launch alarm: %w", err)
	}
	return nil
}

func (r *scheduleRepo) TakeLaunchAlarm(ctx context.Context) (string, bool, error) {
	b := builder()
	query, args := b.Select("value").
		From(b.Table(FacilityStateTable.Name)).
		Where(entsql.EQ("key", launchAlarmKey)).
		Query()

	var alarmID string
	err := r.s.db.QueryRowContext(ctx, query, args...).Scan(&alarmID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read launch alarm: %w", err)
	}

	query, args = b.Delete(FacilityStateTable.Name).
		Where(entsql.EQ("key", launchAlarmKey)).
		Query()
	if _, err := r.s.exec(ctx, query, args...); err != nil {
		return "", false, fmt.Errorf("clear launch alarm: %w", err)
	}
	return alarmID, true, nil
}

// nullTime maps the zero time to SQL NULL.
func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
