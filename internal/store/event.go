package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// sequenceCounter manages the global monotonic sequence number assigned
// to challenge events. Row ids alone don't survive a wipe, so the counter
// lives in its own table and keeps increasing across resets.
//
// Uses raw SQL outside the migrator because it needs a database-level
// atomic increment. The mutex serializes within the process; the
// RETURNING clause makes the increment atomic at the database level.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// newSequenceCounter creates a counter and ensures the tracking table exists.
func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}

	return &sequenceCounter{db: db}, nil
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

// eventRepo implements EventRepo.
type eventRepo struct {
	s *Store
}

func (r *eventRepo) AppendChallengeEvent(ctx context.Context, data ChallengeEventData) error {
	seqNum, err := r.s.seq.Next(ctx)
	if err != nil {
		return err
	}

	query, args := builder().Insert(ChallengeEventsTable.Name).
		Columns("sequence", "timestamp", "session_id", "alarm_id", "kind", "difficulty",
			"action", "prompt", "response", "correct", "elapsed_ms").
		Values(seqNum, r.s.now().UTC(), data.SessionID, data.AlarmID, data.Kind, data.Difficulty,
			data.Action, data.Prompt, data.Response, data.Correct, data.ElapsedMs).
		Query()
	if _, err := r.s.exec(ctx, query, args...); err != nil {
		return fmt.Errorf("save challenge event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryChallengeEvents(ctx context.Context, opts QueryOpts) ([]ChallengeEvent, error) {
	b := builder()
	sel := b.Select("sequence", "timestamp", "session_id", "alarm_id", "kind", "difficulty",
		"action", "prompt", "response", "correct", "elapsed_ms").
		From(b.Table(ChallengeEventsTable.Name)).
		OrderBy("sequence")

	var preds []*entsql.Predicate
	if opts.After > 0 {
		preds = append(preds, entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT("sequence", opts.Before))
	}
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}

	query, args := sel.Query()
	rows, err := r.s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query challenge events: %w", err)
	}
	defer rows.Close()

	var events []ChallengeEvent
	for rows.Next() {
		var e ChallengeEvent
		if err := rows.Scan(&e.Sequence, &e.Timestamp, &e.SessionID, &e.AlarmID, &e.Kind,
			&e.Difficulty, &e.Action, &e.Prompt, &e.Response, &e.Correct, &e.ElapsedMs); err != nil {
			return nil, fmt.Errorf("scan challenge event: %w", err)
		}
		if !inWindow(e.Timestamp, opts.From, opts.To) {
			continue
		}
		events = append(events, e)
		if opts.Limit > 0 && len(events) == opts.Limit {
			break
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate challenge events: %w", err)
	}
	return events, nil
}

// inWindow reports whether ts falls in [from, to]; zero bounds are open.
func inWindow(ts, from, to time.Time) bool {
	if !from.IsZero() && ts.Before(from) {
		return false
	}
	if !to.IsZero() && ts.After(to) {
		return false
	}
	return true
}
