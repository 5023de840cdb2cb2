package db

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrNotAuthorized = errors.New("not authorized")
	// ErrSlotTaken is the room overlap conflict.
	ErrSlotTaken = errors.New("time slot already booked")
	// ErrConcurrentUpdate means a strict transaction lost a serialization
	// race and should be retried by the caller.
	ErrConcurrentUpdate = errors.New("concurrent update, retry")
	// ErrBackendUnavailable marks connectivity failures so callers can show
	// an offline message instead of a generic error.
	ErrBackendUnavailable = errors.New("backend unavailable")
)

// Postgres SQLSTATE for serialization_failure.
const pgSerializationFailure = "40001"

// ValidationError rejects malformed input before any database work.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func validationf(format string, args ...any) error {
	return &ValidationError{Reason: fmt.Sprintf(format, args...)}
}

// UnitConflictError reports which requested units are already loaned out.
type UnitConflictError struct {
	Units []int
}

func (e *UnitConflictError) Error() string {
	return fmt.Sprintf("units already loaned: %v", e.Units)
}

// classify wraps driver/network failures as ErrBackendUnavailable and leaves
// domain errors alone.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var ve *ValidationError
	var ce *UnitConflictError
	switch {
	case errors.As(err, &ve), errors.As(err, &ce),
		errors.Is(err, ErrNotFound), errors.Is(err, ErrNotAuthorized),
		errors.Is(err, ErrSlotTaken), errors.Is(err, ErrConcurrentUpdate),
		errors.Is(err, ErrBackendUnavailable):
		return err
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgSerializationFailure {
		return fmt.Errorf("%w: %v", ErrConcurrentUpdate, err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) ||
		errors.Is(err, context.DeadlineExceeded) ||
		strings.Contains(err.Error(), "connection refused") {
		return fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	return err
}
