package store

import (
	"database/sql"
	"strings"
	"time"

	"github.com/felixgeelhaar/fortify/retry"
)

// newWriteRetrier retries store writes that fail with transient SQLite
// errors. busy_timeout covers SQLITE_BUSY on the connection; the rest
// needs application-level retries.
func newWriteRetrier() retry.Retry[sql.Result] {
	return retry.New[sql.Result](retry.Config{
		MaxAttempts:   4,
		InitialDelay:  50 * time.Millisecond,
		MaxDelay:      500 * time.Millisecond,
		Multiplier:    2.0,
		BackoffPolicy: retry.BackoffExponential,
		Jitter:        true,
		IsRetryable:   isTransientSQLiteErr,
	})
}

// isTransientSQLiteErr reports whether err is a transient SQLite error
// that can be resolved by retrying.
func isTransientSQLiteErr(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	// Codes embedded in modernc.org/sqlite error messages.
	for _, pattern := range []string{
		"SQLITE_BUSY",
		"SQLITE_LOCKED",
		"IOERR_SHORT_READ",
		"database is locked",
		"database table is locked",
		"(5)",   // SQLITE_BUSY
		"(6)",   // SQLITE_LOCKED
		"(522)", // SQLITE_IOERR_SHORT_READ
	} {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}
