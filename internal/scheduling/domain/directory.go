package domain

import (
	"context"

	"github.com/google/uuid"
)

// Directory resolves references against the institutional registry of
// teachers, rooms, disciplines, and student groups. The scheduling
// context does not own these records; it only validates against them.
type Directory interface {
	TeacherExists(ctx context.Context, id uuid.UUID) (bool, error)
	RoomExists(ctx context.Context, id uuid.UUID) (bool, error)
	DisciplineExists(ctx context.Context, id uuid.UUID) (bool, error)
	// GroupLeaderID returns the designated leader of a student group, or
	// uuid.Nil when the group has no leader on record.
	GroupLeaderID(ctx context.Context, studentGroup string) (uuid.UUID, error)
}
