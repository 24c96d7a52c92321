package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ErrStaleVersion is returned by repositories when a compare-and-swap save
// loses against a concurrent writer. Handlers surface it as a
// ConcurrencyError.
var ErrStaleVersion = errors.New("assignment was modified concurrently")

// ErrAssignmentNotFound is returned when an assignment id resolves to nothing.
var ErrAssignmentNotFound = errors.New("assignment not found")

// ErrPeriodNotFound is returned when a period id resolves to nothing.
var ErrPeriodNotFound = errors.New("exam period not found")

// ValidationError reports malformed or semantically invalid input. It is
// local to the call and never worth an automatic retry.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// StateError reports an action that is not legal in the assignment's
// current status.
type StateError struct {
	Action string
	Status Status
}

func (e *StateError) Error() string {
	return fmt.Sprintf("cannot %s an assignment in status %s", e.Action, e.Status)
}

// AuthorizationError reports a caller whose role or identity binding does
// not permit the attempted action.
type AuthorizationError struct {
	Action string
	Role   Role
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("role %s is not permitted to %s this assignment", e.Role, e.Action)
}

// ConcurrencyError reports a stale version supplied by the caller. The
// caller should re-fetch the assignment and retry with fresh state.
type ConcurrencyError struct {
	Expected int
	Actual   int
}

func (e *ConcurrencyError) Error() string {
	return fmt.Sprintf("stale version %d, current version is %d", e.Expected, e.Actual)
}

func (e *ConcurrencyError) Is(target error) bool {
	return target == ErrStaleVersion
}

// PeriodError reports a proposed date that falls outside every active
// exam period.
type PeriodError struct {
	Date time.Time
}

func (e *PeriodError) Error() string {
	return fmt.Sprintf("date %s is not within an active exam period", e.Date.Format("2006-01-02"))
}

// ConflictError reports a room or teacher double-booking detected during
// confirmation. The assignment stays ACCEPTED; the caller must pick a
// different slot or room.
type ConflictError struct {
	Reason        ConflictReason
	ConflictingID uuid.UUID
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s conflict with assignment %s", e.Reason, e.ConflictingID)
}
