package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fiesc/examsched/internal/scheduling/domain"
	sharedPersistence "github.com/fiesc/examsched/internal/shared/infrastructure/persistence"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const assignmentColumns = `
	id, discipline_id, student_group, exam_type,
	main_teacher_id, second_teacher_id, room_id,
	proposed_date, proposed_hour, duration_mins,
	alternate_date, alternate_hour,
	status, version, created_at, updated_at
`

// PostgresAssignmentRepository implements domain.AssignmentRepository
// using PostgreSQL.
type PostgresAssignmentRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresAssignmentRepository creates a new PostgreSQL assignment repository.
func NewPostgresAssignmentRepository(pool *pgxpool.Pool) *PostgresAssignmentRepository {
	return &PostgresAssignmentRepository{pool: pool}
}

// assignmentRow represents a database row for exam assignments.
type assignmentRow struct {
	ID              uuid.UUID
	DisciplineID    uuid.UUID
	StudentGroup    string
	ExamType        string
	MainTeacherID   uuid.UUID
	SecondTeacherID uuid.UUID
	RoomID          *uuid.UUID
	ProposedDate    *time.Time
	ProposedHour    int
	DurationMins    int
	AlternateDate   *time.Time
	AlternateHour   int
	Status          string
	Version         int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (row assignmentRow) toDomain() *domain.ExamAssignment {
	roomID := uuid.Nil
	if row.RoomID != nil {
		roomID = *row.RoomID
	}
	return domain.RehydrateExamAssignment(
		row.ID,
		row.DisciplineID,
		row.StudentGroup,
		domain.ExamType(row.ExamType),
		row.MainTeacherID,
		row.SecondTeacherID,
		roomID,
		row.ProposedDate,
		row.ProposedHour,
		row.DurationMins,
		row.AlternateDate,
		row.AlternateHour,
		domain.Status(row.Status),
		row.Version,
		row.CreatedAt,
		row.UpdatedAt,
	)
}

func scanAssignment(row pgx.Row) (*domain.ExamAssignment, error) {
	var r assignmentRow
	err := row.Scan(
		&r.ID, &r.DisciplineID, &r.StudentGroup, &r.ExamType,
		&r.MainTeacherID, &r.SecondTeacherID, &r.RoomID,
		&r.ProposedDate, &r.ProposedHour, &r.DurationMins,
		&r.AlternateDate, &r.AlternateHour,
		&r.Status, &r.Version, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return r.toDomain(), nil
}

// Save persists an assignment with a compare-and-swap on the stored
// version. The row's version only advances when the caller saw the
// current one; a lost race surfaces as domain.ErrStaleVersion.
func (r *PostgresAssignmentRepository) Save(ctx context.Context, a *domain.ExamAssignment) error {
	var roomID *uuid.UUID
	if a.RoomID() != uuid.Nil {
		id := a.RoomID()
		roomID = &id
	}

	query := `
		INSERT INTO exam_assignments (
			id, discipline_id, student_group, exam_type,
			main_teacher_id, second_teacher_id, room_id,
			proposed_date, proposed_hour, duration_mins,
			alternate_date, alternate_hour,
			status, version, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (id) DO UPDATE SET
			room_id = EXCLUDED.room_id,
			proposed_date = EXCLUDED.proposed_date,
			proposed_hour = EXCLUDED.proposed_hour,
			duration_mins = EXCLUDED.duration_mins,
			alternate_date = EXCLUDED.alternate_date,
			alternate_hour = EXCLUDED.alternate_hour,
			status = EXCLUDED.status,
			version = exam_assignments.version + 1,
			updated_at = NOW()
		WHERE exam_assignments.version = $14
		RETURNING version
	`

	var newVersion int
	exec := sharedPersistence.Executor(ctx, r.pool)
	err := exec.QueryRow(ctx, query,
		a.ID(),
		a.DisciplineID(),
		a.StudentGroup(),
		string(a.ExamType()),
		a.MainTeacherID(),
		a.SecondTeacherID(),
		roomID,
		a.ProposedDate(),
		a.ProposedHour(),
		a.DurationMins(),
		a.AlternateDate(),
		a.AlternateHour(),
		string(a.Status()),
		a.Version(),
		a.CreatedAt(),
		a.UpdatedAt(),
	).Scan(&newVersion)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrStaleVersion
		}
		return fmt.Errorf("saving assignment: %w", err)
	}

	a.SetVersion(newVersion)
	return nil
}

// FindByID retrieves an assignment by its ID. Returns nil, nil when the
// assignment does not exist.
func (r *PostgresAssignmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.ExamAssignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM exam_assignments WHERE id = $1`

	exec := sharedPersistence.Executor(ctx, r.pool)
	a, err := scanAssignment(exec.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("finding assignment: %w", err)
	}
	return a, nil
}

// FindActiveByKey retrieves the non-cancelled assignment for the
// (discipline, group, type) key, or nil when none exists.
func (r *PostgresAssignmentRepository) FindActiveByKey(ctx context.Context, disciplineID uuid.UUID, studentGroup string, examType domain.ExamType) (*domain.ExamAssignment, error) {
	query := `
		SELECT ` + assignmentColumns + `
		FROM exam_assignments
		WHERE discipline_id = $1 AND student_group = $2 AND exam_type = $3
		  AND status <> $4
		LIMIT 1
	`

	exec := sharedPersistence.Executor(ctx, r.pool)
	a, err := scanAssignment(exec.QueryRow(ctx, query, disciplineID, studentGroup, string(examType), string(domain.StatusCancelled)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("finding assignment by key: %w", err)
	}
	return a, nil
}

// FindBookedOn retrieves the CONFIRMED assignments holding a slot on the
// given day. Confirmed rows always carry their slot in the proposed
// columns; accepting an alternate promotes it there first.
func (r *PostgresAssignmentRepository) FindBookedOn(ctx context.Context, date time.Time) ([]*domain.ExamAssignment, error) {
	query := `
		SELECT ` + assignmentColumns + `
		FROM exam_assignments
		WHERE status = $1 AND proposed_date = $2
		ORDER BY proposed_hour
	`

	exec := sharedPersistence.Executor(ctx, r.pool)
	rows, err := exec.Query(ctx, query, string(domain.StatusConfirmed), date)
	if err != nil {
		return nil, fmt.Errorf("finding booked assignments: %w", err)
	}
	defer rows.Close()

	return collectAssignments(rows)
}

// List retrieves assignments matching the filter, most recently updated
// first.
func (r *PostgresAssignmentRepository) List(ctx context.Context, filter domain.Filter) ([]*domain.ExamAssignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM exam_assignments WHERE 1=1`
	args := []any{}

	if filter.StudentGroup != "" {
		args = append(args, filter.StudentGroup)
		query += fmt.Sprintf(" AND student_group = $%d", len(args))
	}
	if filter.TeacherID != uuid.Nil {
		args = append(args, filter.TeacherID)
		query += fmt.Sprintf(" AND (main_teacher_id = $%d OR second_teacher_id = $%d)", len(args), len(args))
	}
	if filter.DisciplineID != uuid.Nil {
		args = append(args, filter.DisciplineID)
		query += fmt.Sprintf(" AND discipline_id = $%d", len(args))
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statuses = append(statuses, string(s))
		}
		args = append(args, statuses)
		query += fmt.Sprintf(" AND status = ANY($%d)", len(args))
	}
	query += " ORDER BY updated_at DESC"

	exec := sharedPersistence.Executor(ctx, r.pool)
	rows, err := exec.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing assignments: %w", err)
	}
	defer rows.Close()

	return collectAssignments(rows)
}

func collectAssignments(rows pgx.Rows) ([]*domain.ExamAssignment, error) {
	var assignments []*domain.ExamAssignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning assignment: %w", err)
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}
