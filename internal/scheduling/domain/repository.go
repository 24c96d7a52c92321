package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Filter narrows assignment listings. Zero-value fields are ignored.
type Filter struct {
	StudentGroup string
	TeacherID    uuid.UUID
	DisciplineID uuid.UUID
	Statuses     []Status
}

// AssignmentRepository persists exam assignments.
type AssignmentRepository interface {
	// Save persists the assignment with a compare-and-swap on the stored
	// version. ErrStaleVersion is returned when the row moved underneath
	// the caller.
	Save(ctx context.Context, assignment *ExamAssignment) error

	// FindByID returns nil, nil when the assignment does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*ExamAssignment, error)

	// FindActiveByKey returns the non-cancelled assignment for the
	// (discipline, group, type) key, or nil when none exists. At most one
	// such assignment may exist at a time.
	FindActiveByKey(ctx context.Context, disciplineID uuid.UUID, studentGroup string, examType ExamType) (*ExamAssignment, error)

	// FindBookedOn returns the CONFIRMED assignments holding a slot on
	// the given day. Only confirmed rows hold resources; accepted ones
	// are still pending confirmation. Used by the conflict checker.
	FindBookedOn(ctx context.Context, date time.Time) ([]*ExamAssignment, error)

	List(ctx context.Context, filter Filter) ([]*ExamAssignment, error)
}
