package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"github.com/felixgeelhaar/fortify/retry"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store holds the database handle and provides access to repositories.
type Store struct {
	db     *sql.DB
	drv    *entsql.Driver
	seq    *sequenceCounter
	writes retry.Retry[sql.Result]
	now    func() time.Time
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and runs auto-migration.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", withPragmas(dsn))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	drv := entsql.OpenDB(dialect.SQLite, db)
	if err := migrate(context.Background(), drv); err != nil {
		db.Close()
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	seq, err := newSequenceCounter(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{
		db:     db,
		drv:    drv,
		seq:    seq,
		writes: newWriteRetrier(),
		now:    time.Now,
	}, nil
}

// migrate creates or upgrades every table.
func migrate(ctx context.Context, drv *entsql.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	return m.Create(ctx, Tables...)
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.drv.Close()
}

// AlarmRepo returns an AlarmRepo backed by this store.
func (s *Store) AlarmRepo() AlarmRepo {
	return &alarmRepo{s: s}
}

// RetriggerRepo returns a RetriggerRepo backed by this store.
func (s *Store) RetriggerRepo() RetriggerRepo {
	return &retriggerRepo{s: s}
}

// ScheduleRepo returns a ScheduleRepo backed by this store.
func (s *Store) ScheduleRepo() ScheduleRepo {
	return &scheduleRepo{s: s}
}

// EventRepo returns an EventRepo backed by this store.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{s: s}
}

// Wipe deletes every alarm, schedule, re-trigger list and challenge
// event. Deleted alarm ids stay reserved.
func (s *Store) Wipe(ctx context.Context) error {
	b := builder()
	for _, t := range []string{
		RetriggersTable.Name,
		FacilitySchedulesTable.Name,
		FacilityStateTable.Name,
		ChallengeEventsTable.Name,
	} {
		query, args := b.Delete(t).Query()
		if _, err := s.exec(ctx, query, args...); err != nil {
			return fmt.Errorf("wipe %s: %w", t, err)
		}
	}

	query, args := b.Update(AlarmsTable.Name).
		Set("deleted_at", s.now().UTC()).
		Where(entsql.IsNull("deleted_at")).
		Query()
	if _, err := s.exec(ctx, query, args...); err != nil {
		return fmt.Errorf("wipe alarms: %w", err)
	}
	return nil
}

// builder returns a SQL builder for the SQLite dialect.
func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

// exec runs a write statement, retrying transient SQLite errors.
func (s *Store) exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return s.writes.Do(ctx, func(ctx context.Context) (sql.Result, error) {
		return s.db.ExecContext(ctx, query, args...)
	})
}

// withPragmas appends the connection pragmas to dsn so that every pooled
// connection gets them.
func withPragmas(dsn string) string {
	pragmas := []string{
		"_pragma=journal_mode(WAL)",
		"_pragma=busy_timeout(5000)",
		"_pragma=foreign_keys(1)",
		"_pragma=synchronous(NORMAL)",
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(pragmas, "&")
}

// DefaultDBPath resolves the database file path in priority order:
// 1. RISEUP_DB environment variable
// 2. $XDG_DATA_HOME/riseup/riseup.db
// 3. ~/.local/share/riseup/riseup.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("RISEUP_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "riseup", "riseup.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
