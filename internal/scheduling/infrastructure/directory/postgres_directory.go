package directory

import (
	"context"
	"errors"
	"fmt"

	sharedPersistence "github.com/fiesc/examsched/internal/shared/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresDirectory implements domain.Directory against the registry
// tables of teachers, rooms, disciplines, and student groups.
type PostgresDirectory struct {
	pool *pgxpool.Pool
}

// NewPostgresDirectory creates a new PostgreSQL directory.
func NewPostgresDirectory(pool *pgxpool.Pool) *PostgresDirectory {
	return &PostgresDirectory{pool: pool}
}

func (d *PostgresDirectory) exists(ctx context.Context, query string, id uuid.UUID) (bool, error) {
	exec := sharedPersistence.Executor(ctx, d.pool)
	var found bool
	if err := exec.QueryRow(ctx, query, id).Scan(&found); err != nil {
		return false, fmt.Errorf("directory lookup: %w", err)
	}
	return found, nil
}

// TeacherExists reports whether the teacher is registered.
func (d *PostgresDirectory) TeacherExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return d.exists(ctx, `SELECT EXISTS (SELECT 1 FROM teachers WHERE id = $1)`, id)
}

// RoomExists reports whether the room is registered.
func (d *PostgresDirectory) RoomExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return d.exists(ctx, `SELECT EXISTS (SELECT 1 FROM rooms WHERE id = $1)`, id)
}

// DisciplineExists reports whether the discipline is registered.
func (d *PostgresDirectory) DisciplineExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return d.exists(ctx, `SELECT EXISTS (SELECT 1 FROM disciplines WHERE id = $1)`, id)
}

// GroupLeaderID returns the designated leader of a student group, or
// uuid.Nil when the group has no leader on record.
func (d *PostgresDirectory) GroupLeaderID(ctx context.Context, studentGroup string) (uuid.UUID, error) {
	exec := sharedPersistence.Executor(ctx, d.pool)
	var leaderID uuid.UUID
	err := exec.QueryRow(ctx, `SELECT leader_id FROM student_groups WHERE name = $1`, studentGroup).Scan(&leaderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, nil
		}
		return uuid.Nil, fmt.Errorf("group leader lookup: %w", err)
	}
	return leaderID, nil
}
