package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/fiesc/examsched/internal/scheduling/domain"
	"github.com/google/uuid"
)

const periodColumns = `id, name, start_date, end_date, is_active, created_at, updated_at`

// PeriodRepository implements domain.PeriodRepository on SQLite.
type PeriodRepository struct {
	db *sql.DB
}

// NewPeriodRepository creates a SQLite period repository.
func NewPeriodRepository(db *sql.DB) *PeriodRepository {
	return &PeriodRepository{db: db}
}

func scanPeriod(row rowScanner) (*domain.ExamPeriod, error) {
	var (
		id, name             string
		startDate, endDate   string
		active               bool
		createdAt, updatedAt string
	)
	if err := row.Scan(&id, &name, &startDate, &endDate, &active, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	start, err := time.Parse(dayFormat, startDate)
	if err != nil {
		return nil, fmt.Errorf("parsing start date: %w", err)
	}
	end, err := time.Parse(dayFormat, endDate)
	if err != nil {
		return nil, fmt.Errorf("parsing end date: %w", err)
	}
	created, err := decodeTime(createdAt)
	if err != nil {
		return nil, err
	}
	updated, err := decodeTime(updatedAt)
	if err != nil {
		return nil, err
	}

	return domain.RehydrateExamPeriod(uuid.MustParse(id), name, start, end, active, created, updated), nil
}

// Save persists a period, updating it in place when it already exists.
func (r *PeriodRepository) Save(ctx context.Context, p *domain.ExamPeriod) error {
	query := `
		INSERT INTO exam_periods (id, name, start_date, end_date, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			start_date = excluded.start_date,
			end_date = excluded.end_date,
			is_active = excluded.is_active,
			updated_at = excluded.updated_at
	`

	exec := executorFrom(ctx, r.db)
	_, err := exec.ExecContext(ctx, query,
		p.ID().String(), p.Name(),
		p.StartDate().Format(dayFormat), p.EndDate().Format(dayFormat),
		p.Active(), encodeTime(p.CreatedAt()), encodeTime(time.Now()),
	)
	if err != nil {
		return fmt.Errorf("saving period: %w", err)
	}
	return nil
}

// FindByID retrieves a period by its ID. Returns nil, nil when it does
// not exist.
func (r *PeriodRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.ExamPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM exam_periods WHERE id = ?`

	exec := executorFrom(ctx, r.db)
	p, err := scanPeriod(exec.QueryRowContext(ctx, query, id.String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("finding period: %w", err)
	}
	return p, nil
}

// FindActiveOn retrieves the active period containing the date.
func (r *PeriodRepository) FindActiveOn(ctx context.Context, date time.Time) (*domain.ExamPeriod, error) {
	query := `
		SELECT ` + periodColumns + `
		FROM exam_periods
		WHERE is_active AND start_date <= ? AND end_date >= ?
		LIMIT 1
	`

	day := date.Format(dayFormat)
	exec := executorFrom(ctx, r.db)
	p, err := scanPeriod(exec.QueryRowContext(ctx, query, day, day))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("finding active period: %w", err)
	}
	return p, nil
}

// List retrieves every period, newest window first.
func (r *PeriodRepository) List(ctx context.Context) ([]*domain.ExamPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM exam_periods ORDER BY start_date DESC`

	exec := executorFrom(ctx, r.db)
	rows, err := exec.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing periods: %w", err)
	}
	defer rows.Close()

	var periods []*domain.ExamPeriod
	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning period: %w", err)
		}
		periods = append(periods, p)
	}
	return periods, rows.Err()
}

// DeactivateOthers clears the active flag on every period except the
// given one.
func (r *PeriodRepository) DeactivateOthers(ctx context.Context, id uuid.UUID) error {
	exec := executorFrom(ctx, r.db)
	_, err := exec.ExecContext(ctx,
		`UPDATE exam_periods SET is_active = 0, updated_at = ? WHERE id <> ? AND is_active`,
		encodeTime(time.Now()), id.String())
	if err != nil {
		return fmt.Errorf("deactivating periods: %w", err)
	}
	return nil
}
