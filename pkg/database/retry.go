package database

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

const (
	maxAttempts  = 3
	initialDelay = 100 * time.Millisecond
)

// Retry runs fn, retrying transient store failures (connection loss,
// timeouts) with bounded exponential backoff. Domain and constraint
// errors are returned immediately; exhaustion returns the last error.
func Retry(ctx context.Context, log *zap.Logger, fn func(ctx context.Context) error) error {
	delay := initialDelay

	var err error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err = fn(ctx)
		if err == nil || !isTransient(err) {
			return err
		}

		if attempt == maxAttempts {
			break
		}

		log.Warn("Transient store error, retrying",
			zap.Error(err),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", delay),
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}

	return err
}

func isTransient(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	if pgconn.SafeToRetry(err) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// connection exception class
		return len(pgErr.Code) >= 2 && pgErr.Code[:2] == "08"
	}

	return false
}
