package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-pkgz/repeater/v2"
)

// ErrDuplicate is returned when a record violates a unique title, slug or key constraint
var ErrDuplicate = errors.New("duplicate record")

// withRetry runs fn with backoff while it fails on sqlite lock errors.
// Any other error stops retrying immediately and is returned as is.
func withRetry(ctx context.Context, fn func() error) error {
	var opErr error
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	err := retrier.Do(ctx, func() error {
		opErr = fn()
		if isLockError(opErr) {
			return opErr // retry
		}
		return nil
	})
	if err != nil {
		return err
	}
	return opErr
}

// isLockError checks if an error is a SQLite lock/busy error
func isLockError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "SQLITE_BUSY") ||
		strings.Contains(errStr, "database is locked") ||
		strings.Contains(errStr, "database table is locked")
}

// isUniqueViolation checks if an error is a SQLite unique constraint failure
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
