package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fiesc/examsched/internal/scheduling/domain"
	"github.com/google/uuid"
)

const assignmentColumns = `
	id, discipline_id, student_group, exam_type,
	main_teacher_id, second_teacher_id, room_id,
	proposed_date, proposed_hour, duration_mins,
	alternate_date, alternate_hour,
	status, version, created_at, updated_at
`

// AssignmentRepository implements domain.AssignmentRepository on SQLite.
type AssignmentRepository struct {
	db *sql.DB
}

// NewAssignmentRepository creates a SQLite assignment repository.
func NewAssignmentRepository(db *sql.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// Save persists an assignment with a compare-and-swap on the stored
// version, mirroring the PostgreSQL repository's semantics.
func (r *AssignmentRepository) Save(ctx context.Context, a *domain.ExamAssignment) error {
	var roomID any
	if a.RoomID() != uuid.Nil {
		roomID = a.RoomID().String()
	}

	query := `
		INSERT INTO exam_assignments (
			id, discipline_id, student_group, exam_type,
			main_teacher_id, second_teacher_id, room_id,
			proposed_date, proposed_hour, duration_mins,
			alternate_date, alternate_hour,
			status, version, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			room_id = excluded.room_id,
			proposed_date = excluded.proposed_date,
			proposed_hour = excluded.proposed_hour,
			duration_mins = excluded.duration_mins,
			alternate_date = excluded.alternate_date,
			alternate_hour = excluded.alternate_hour,
			status = excluded.status,
			version = exam_assignments.version + 1,
			updated_at = excluded.updated_at
		WHERE exam_assignments.version = ?
		RETURNING version
	`

	var newVersion int
	exec := executorFrom(ctx, r.db)
	err := exec.QueryRowContext(ctx, query,
		a.ID().String(),
		a.DisciplineID().String(),
		a.StudentGroup(),
		string(a.ExamType()),
		a.MainTeacherID().String(),
		a.SecondTeacherID().String(),
		roomID,
		encodeDay(a.ProposedDate()),
		a.ProposedHour(),
		a.DurationMins(),
		encodeDay(a.AlternateDate()),
		a.AlternateHour(),
		string(a.Status()),
		a.Version(),
		encodeTime(a.CreatedAt()),
		encodeTime(time.Now()),
		a.Version(),
	).Scan(&newVersion)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrStaleVersion
		}
		return fmt.Errorf("saving assignment: %w", err)
	}

	a.SetVersion(newVersion)
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAssignment(row rowScanner) (*domain.ExamAssignment, error) {
	var (
		id, disciplineID, group, examType string
		mainID, secondID                  string
		roomID                            sql.NullString
		proposedDate, alternateDate       sql.NullString
		proposedHour, durationMins        int
		alternateHour, version            int
		status, createdAt, updatedAt      string
	)
	err := row.Scan(
		&id, &disciplineID, &group, &examType,
		&mainID, &secondID, &roomID,
		&proposedDate, &proposedHour, &durationMins,
		&alternateDate, &alternateHour,
		&status, &version, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	parsedProposed, err := decodeDay(proposedDate)
	if err != nil {
		return nil, err
	}
	parsedAlternate, err := decodeDay(alternateDate)
	if err != nil {
		return nil, err
	}
	created, err := decodeTime(createdAt)
	if err != nil {
		return nil, err
	}
	updated, err := decodeTime(updatedAt)
	if err != nil {
		return nil, err
	}

	room := uuid.Nil
	if roomID.Valid {
		room, err = uuid.Parse(roomID.String)
		if err != nil {
			return nil, fmt.Errorf("parsing room id: %w", err)
		}
	}

	return domain.RehydrateExamAssignment(
		uuid.MustParse(id),
		uuid.MustParse(disciplineID),
		group,
		domain.ExamType(examType),
		uuid.MustParse(mainID),
		uuid.MustParse(secondID),
		room,
		parsedProposed,
		proposedHour,
		durationMins,
		parsedAlternate,
		alternateHour,
		domain.Status(status),
		version,
		created,
		updated,
	), nil
}

// FindByID retrieves an assignment by its ID. Returns nil, nil when the
// assignment does not exist.
func (r *AssignmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.ExamAssignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM exam_assignments WHERE id = ?`

	exec := executorFrom(ctx, r.db)
	a, err := scanAssignment(exec.QueryRowContext(ctx, query, id.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("finding assignment: %w", err)
	}
	return a, nil
}

// FindActiveByKey retrieves the non-cancelled assignment for the
// (discipline, group, type) key, or nil when none exists.
func (r *AssignmentRepository) FindActiveByKey(ctx context.Context, disciplineID uuid.UUID, studentGroup string, examType domain.ExamType) (*domain.ExamAssignment, error) {
	query := `
		SELECT ` + assignmentColumns + `
		FROM exam_assignments
		WHERE discipline_id = ? AND student_group = ? AND exam_type = ? AND status <> ?
		LIMIT 1
	`

	exec := executorFrom(ctx, r.db)
	a, err := scanAssignment(exec.QueryRowContext(ctx, query,
		disciplineID.String(), studentGroup, string(examType), string(domain.StatusCancelled)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("finding assignment by key: %w", err)
	}
	return a, nil
}

// FindBookedOn retrieves the CONFIRMED assignments holding a slot on the
// given day. Confirmed rows always carry their slot in the proposed
// columns; accepting an alternate promotes it there first.
func (r *AssignmentRepository) FindBookedOn(ctx context.Context, date time.Time) ([]*domain.ExamAssignment, error) {
	query := `
		SELECT ` + assignmentColumns + `
		FROM exam_assignments
		WHERE status = ? AND proposed_date = ?
		ORDER BY proposed_hour
	`

	exec := executorFrom(ctx, r.db)
	rows, err := exec.QueryContext(ctx, query,
		string(domain.StatusConfirmed), date.Format(dayFormat))
	if err != nil {
		return nil, fmt.Errorf("finding booked assignments: %w", err)
	}
	defer rows.Close()

	return collectAssignments(rows)
}

// List retrieves assignments matching the filter, most recently updated
// first.
func (r *AssignmentRepository) List(ctx context.Context, filter domain.Filter) ([]*domain.ExamAssignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM exam_assignments WHERE 1=1`
	args := []any{}

	if filter.StudentGroup != "" {
		query += " AND student_group = ?"
		args = append(args, filter.StudentGroup)
	}
	if filter.TeacherID != uuid.Nil {
		query += " AND (main_teacher_id = ? OR second_teacher_id = ?)"
		args = append(args, filter.TeacherID.String(), filter.TeacherID.String())
	}
	if filter.DisciplineID != uuid.Nil {
		query += " AND discipline_id = ?"
		args = append(args, filter.DisciplineID.String())
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			placeholders[i] = "?"
			args = append(args, string(s))
		}
		query += " AND status IN (" + strings.Join(placeholders, ", ") + ")"
	}
	query += " ORDER BY updated_at DESC"

	exec := executorFrom(ctx, r.db)
	rows, err := exec.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing assignments: %w", err)
	}
	defer rows.Close()

	return collectAssignments(rows)
}

func collectAssignments(rows *sql.Rows) ([]*domain.ExamAssignment, error) {
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
