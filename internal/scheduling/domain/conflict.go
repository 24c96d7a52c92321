package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ConflictReason classifies why a candidate slot is unavailable.
type ConflictReason string

const (
	ConflictRoom    ConflictReason = "ROOM"
	ConflictTeacher ConflictReason = "TEACHER"
)

// Candidate describes the slot a confirmation wants to claim.
type Candidate struct {
	AssignmentID uuid.UUID
	Date         time.Time
	Hour         int
	DurationMins int
	RoomID       uuid.UUID
	TeacherIDs   []uuid.UUID
}

// StartMinute returns the candidate's start as minutes from midnight.
func (c Candidate) StartMinute() int { return c.Hour * 60 }

// EndMinute returns the candidate's end as minutes from midnight.
func (c Candidate) EndMinute() int { return c.Hour*60 + c.DurationMins }

// ConflictResult reports the first booking that collides with a
// candidate. The zero value means no conflict.
type ConflictResult struct {
	ConflictingID uuid.UUID
	Reason        ConflictReason
}

// HasConflict reports whether a collision was found.
func (r ConflictResult) HasConflict() bool { return r.ConflictingID != uuid.Nil }

// Err converts a positive result into the matching domain error.
func (r ConflictResult) Err() error {
	if !r.HasConflict() {
		return nil
	}
	return &ConflictError{Reason: r.Reason, ConflictingID: r.ConflictingID}
}

// ConflictChecker decides whether a candidate slot collides with
// existing bookings on the same day. Implementations must be run inside
// the confirming transaction so the check and the status change are
// atomic.
type ConflictChecker interface {
	Check(ctx context.Context, candidate Candidate) (ConflictResult, error)
}
