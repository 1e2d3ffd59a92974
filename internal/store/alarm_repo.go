package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/riseup/internal/alarm"
	"github.com/abhisek/riseup/internal/challenge"
)

var alarmColumns = []string{
	"id", "hour", "minute", "days", "sound", "armed",
	"challenge", "difficulty", "label", "created_at", "updated_at",
}

// alarmRepo implements AlarmRepo.
type alarmRepo struct {
	s *Store
}

func (r *alarmRepo) Create(ctx context.Context, a alarm.Alarm) error {
	taken, err := r.idTaken(ctx, a.ID)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: %s", ErrDuplicateID, a.ID)
	}

	query, args := builder().Insert(AlarmsTable.Name).
		Columns(alarmColumns...).
		Values(a.ID, a.Time.Hour, a.Time.Minute, encodeDays(a.Days), string(a.Sound), a.Armed,
			string(a.Challenge), a.Difficulty, a.Label, a.CreatedAt.UTC(), a.UpdatedAt.UTC()).
		Query()
	if _, err := r.s.exec(ctx, query, args...); err != nil {
		return fmt.Errorf("insert alarm %s: %w", a.ID, err)
	}
	return nil
}

func (r *alarmRepo) Save(ctx context.Context, a alarm.Alarm) error {
	query, args := builder().Update(AlarmsTable.Name).
		Set("hour", a.Time.Hour).
		Set("minute", a.Time.Minute).
		Set("days", encodeDays(a.Days)).
		Set("sound", string(a.Sound)).
		Set("armed", a.Armed).
		Set("challenge", string(a.Challenge)).
		Set("difficulty", a.Difficulty).
		Set("label", a.Label).
		Set("updated_at", a.UpdatedAt.UTC()).
		Where(liveAlarm(a.ID)).
		Query()
	res, err := r.s.exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update alarm %s: %w", a.ID, err)
	}
	return requireRow(res, a.ID)
}

func (r *alarmRepo) Get(ctx context.Context, id string) (alarm.Alarm, error) {
	b := builder()
	query, args := b.Select(alarmColumns...).
		From(b.Table(AlarmsTable.Name)).
		Where(liveAlarm(id)).
		Query()

	a, err := scanAlarm(r.s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return alarm.Alarm{}, fmt.Errorf("%w: %s", alarm.ErrNotFound, id)
	}
	if err != nil {
		return alarm.Alarm{}, fmt.Errorf("get alarm %s: %w", id, err)
	}
	return a, nil
}

func (r *alarmRepo) List(ctx context.Context) ([]alarm.Alarm, error) {
	b := builder()
	query, args := b.Select(alarmColumns...).
		From(b.Table(AlarmsTable.Name)).
		Where(entsql.IsNull("deleted_at")).
		Query()

	rows, err := r.s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list alarms: %w", err)
	}
	defer rows.Close()

	var out []alarm.Alarm
	for rows.Next() {
		a, err := scanAlarm(rows)
		if err != nil {
			return nil, fmt.Errorf("scan alarm: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate alarms: %w", err)
	}

	sort.SliceStable(out, func(i, j int) bool {
		ti, tj := out[i].Time, out[j].Time
		if ti != tj {
			return ti.Hour*60+ti.Minute < tj.Hour*60+tj.Minute
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *alarmRepo) Delete(ctx context.Context, id string) error {
	query, args := builder().Update(AlarmsTable.Name).
		Set("deleted_at", r.s.now().UTC()).
		Set("armed", false).
		Where(liveAlarm(id)).
		Query()
	res, err := r.s.exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete alarm %s: %w", id, err)
	}
	return requireRow(res, id)
}

func (r *alarmRepo) idTaken(ctx context.Context, id string) (bool, error) {
	b := builder()
	query, args := b.Select(entsql.Count("*")).
		From(b.Table(AlarmsTable.Name)).
		Where(entsql.EQ("id", id)).
		Query()
	var n int
	if err := r.s.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return false, fmt.Errorf("check alarm id %s: %w", id, err)
	}
	return n > 0, nil
}

func liveAlarm(id string) *entsql.Predicate {
	return entsql.And(entsql.EQ("id", id), entsql.IsNull("deleted_at"))
}

func requireRow(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", alarm.ErrNotFound, id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAlarm(row rowScanner) (alarm.Alarm, error) {
	var (
		a     alarm.Alarm
		days  string
		sound string
		kind  string
	)
	err := row.Scan(&a.ID, &a.Time.Hour, &a.Time.Minute, &days, &sound, &a.Armed,
		&kind, &a.Difficulty, &a.Label, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return alarm.Alarm{}, err
	}
	a.Days = decodeDays(days)
	a.Sound = alarm.Sound(sound)
	a.Challenge = challenge.Kind(kind)
	return a, nil
}

// encodeDays stores the day set as a Monday-first mask such as "1010100".
func encodeDays(d alarm.Days) string {
	b := make([]byte, len(d))
	for i, on := range d {
		b[i] = '0'
		if on {
			b[i] = '1'
		}
	}
	return string(b)
}

func decodeDays(s string) alarm.Days {
	var d alarm.Days
	for i := 0; i < len(d) && i < len(s); i++ {
		d[i] = s[i] == '1'
	}
	return d
}
