package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"
)

func TestIsTransientSQLiteErr(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"non-transient", errors.New("syntax error"), false},
		{"SQLITE_BUSY text", errors.New("SQLITE_BUSY"), true},
		{"SQLITE_LOCKED text", errors.New("SQLITE_LOCKED"), true},
		{"IOERR_SHORT_READ text", errors.New("IOERR_SHORT_READ"), true},
		{"database is locked", errors.New("database is locked"), true},
		{"code 5", errors.New("sqlite: (5) database is busy"), true},
		{"code 522", errors.New("sqlite: (522) short read"), true},
		{"constraint", errors.New("constraint failed: UNIQUE constraint failed (2067)"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isTransientSQLiteErr(tt.err); got != tt.want {
				t.Errorf("isTransientSQLiteErr(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestWriteRetrier_RetriesTransient(t *testing.T) {
	calls := 0
	_, err := newWriteRetrier().Do(context.Background(), func(context.Context) (sql.Result, error) {
		calls++
		if calls < 3 {
			return nil, errors.New("SQLITE_BUSY")
		}
		return nil, nil
	})
	if err != nil {
		t.Errorf("expected success after retries, got %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestWriteRetrier_PermanentErrorNoRetry(t *testing.T) {
	calls := 0
	_, err := newWriteRetrier().Do(context.Background(), func(context.Context) (sql.Result, error) {
		calls++
		return nil, errors.New("syntax error near SELECT")
	})
	if err == nil {
		t.Error("expected error")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}
