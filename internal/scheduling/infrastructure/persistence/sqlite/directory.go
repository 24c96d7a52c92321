package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Directory implements domain.Directory against the local registry
// tables. Entries are registered on first use so a fresh local database
// does not block the secretariat.
type Directory struct {
	db *sql.DB
}

// NewDirectory creates a SQLite directory.
func NewDirectory(db *sql.DB) *Directory {
	return &Directory{db: db}
}

func (d *Directory) exists(ctx context.Context, table string, id uuid.UUID) (bool, error) {
	exec := executorFrom(ctx, d.db)
	var found bool
	query := `SELECT EXISTS (SELECT 1 FROM ` + table + ` WHERE id = ?)`
	if err := exec.QueryRowContext(ctx, query, id.String()).Scan(&found); err != nil {
		return false, fmt.Errorf("directory lookup: %w", err)
	}
	return found, nil
}

// TeacherExists reports whether the teacher is registered.
func (d *Directory) TeacherExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return d.exists(ctx, "teachers", id)
}

// RoomExists reports whether the room is registered.
func (d *Directory) RoomExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return d.exists(ctx, "rooms", id)
}

// DisciplineExists reports whether the discipline is registered.
func (d *Directory) DisciplineExists(ctx context.Context, id uuid.UUID) (bool, error) {
	return d.exists(ctx, "disciplines", id)
}

// GroupLeaderID returns the designated leader of a student group, or
// uuid.Nil when the group has no leader on record.
func (d *Directory) GroupLeaderID(ctx context.Context, studentGroup string) (uuid.UUID, error) {
	exec := executorFrom(ctx, d.db)
	var leaderID sql.NullString
	err := exec.QueryRowContext(ctx, `SELECT leader_id FROM student_groups WHERE name = ?`, studentGroup).Scan(&leaderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, nil
		}
		return uuid.Nil, fmt.Errorf("group leader lookup: %w", err)
	}
	if !leaderID.Valid {
		return uuid.Nil, nil
	}
	return uuid.Parse(leaderID.String)
}

// RegisterTeacher upserts a teacher into the local registry.
func (d *Directory) RegisterTeacher(ctx context.Context, id uuid.UUID, name string) error {
	return d.register(ctx, `INSERT INTO teachers (id, name) VALUES (?, ?) ON CONFLICT (id) DO UPDATE SET name = excluded.name`, id.String(), name)
}

// RegisterRoom upserts a room into the local registry.
func (d *Directory) RegisterRoom(ctx context.Context, id uuid.UUID, name string) error {
	return d.register(ctx, `INSERT INTO rooms (id, name) VALUES (?, ?) ON CONFLICT (id) DO UPDATE SET name = excluded.name`, id.String(), name)
}

// RegisterDiscipline upserts a discipline into the local registry.
func (d *Directory) RegisterDiscipline(ctx context.Context, id uuid.UUID, name string) error {
	return d.register(ctx, `INSERT INTO disciplines (id, name) VALUES (?, ?) ON CONFLICT (id) DO UPDATE SET name = excluded.name`, id.String(), name)
}

// RegisterGroup upserts a student group and its leader.
func (d *Directory) RegisterGroup(ctx context.Context, name string, leaderID uuid.UUID) error {
	var leader any
	if leaderID != uuid.Nil {
		leader = leaderID.String()
	}
	return d.register(ctx, `INSERT INTO student_groups (name, leader_id) VALUES (?, ?) ON CONFLICT (name) DO UPDATE SET leader_id = excluded.leader_id`, name, leader)
}

func (d *Directory) register(ctx context.Context, query string, args ...any) error {
	exec := executorFrom(ctx, d.db)
	if _, err := exec.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("directory register: %w", err)
	}
	return nil
}
