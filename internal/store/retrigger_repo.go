package store

import (
	"context"
	"encoding/json"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

// retriggerRepo implements RetriggerRepo.
type retriggerRepo struct {
	s *Store
}

func (r *retriggerRepo) LoadRetriggers(ctx context.Context) (map[string][]uuid.UUID, error) {
	b := builder()
	query, args := b.Select("alarm_id", "uuids").
		From(b.Table(RetriggersTable.Name)).
		Query()

	rows, err := r.s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("load retriggers: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]uuid.UUID)
	for rows.Next() {
		var (
			alarmID string
			raw     string
		)
		if err := rows.Scan(&alarmID, &raw); err != nil {
			return nil, fmt.Errorf("scan retriggers: %w", err)
		}
		var ids []uuid.UUID
		if err := json.Unmarshal([]byte(raw), &ids); err != nil {
			return nil, fmt.Errorf("decode retriggers for %s: %w", alarmID, err)
		}
		out[alarmID] = ids
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate retriggers: %w", err)
	}
	return out, nil
}

func (r *retriggerRepo) SaveRetriggers(ctx context.Context, alarmID string, ids []uuid.UUID) error {
	raw, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encode retriggers: %w", err)
	}

	query, args := builder().Insert(RetriggersTable.Name).
		Columns("alarm_id", "uuids", "updated_at").
		Values(alarmID, string(raw), r.s.now().UTC()).
		OnConflict(entsql.ConflictColumns("alarm_id"), entsql.ResolveWithNewValues()).
		Query()
	if _, err := r.s.exec(ctx, query, args...); err != nil {
		return fmt.Errorf("save retriggers for %s: %w", alarmID, err)
	}
	return nil
}

func (r *retriggerRepo) DeleteRetriggers(ctx context.Context, alarmID string) error {
	query, args := builder().Delete(RetriggersTable.Name).
		Where(entsql.EQ("alarm_id", alarmID)).
		Query()
	if _, err := r.s.exec(ctx, query, args...); err != nil {
		return fmt.Errorf("delete retriggers for %s: %w", alarmID, err)
	}
	return nil
}
