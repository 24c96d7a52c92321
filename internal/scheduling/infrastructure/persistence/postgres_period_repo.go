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

const periodColumns = `id, name, start_date, end_date, is_active, created_at, updated_at`

// PostgresPeriodRepository implements domain.PeriodRepository using PostgreSQL.
type PostgresPeriodRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresPeriodRepository creates a new PostgreSQL period repository.
func NewPostgresPeriodRepository(pool *pgxpool.Pool) *PostgresPeriodRepository {
	return &PostgresPeriodRepository{pool: pool}
}

func scanPeriod(row pgx.Row) (*domain.ExamPeriod, error) {
	var (
		id                   uuid.UUID
		name                 string
		startDate, endDate   time.Time
		active               bool
		createdAt, updatedAt time.Time
	)
	if err := row.Scan(&id, &name, &startDate, &endDate, &active, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	return domain.RehydrateExamPeriod(id, name, startDate, endDate, active, createdAt, updatedAt), nil
}

// Save persists a period, updating it in place when it already exists.
func (r *PostgresPeriodRepository) Save(ctx context.Context, p *domain.ExamPeriod) error {
	query := `
		INSERT INTO exam_periods (id, name, start_date, end_date, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date,
			is_active = EXCLUDED.is_active,
			updated_at = NOW()
	`

	exec := sharedPersistence.Executor(ctx, r.pool)
	_, err := exec.Exec(ctx, query,
		p.ID(), p.Name(), p.StartDate(), p.EndDate(), p.Active(), p.CreatedAt(), p.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("saving period: %w", err)
	}
	return nil
}

// FindByID retrieves a period by its ID. Returns nil, nil when the
// period does not exist.
func (r *PostgresPeriodRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.ExamPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM exam_periods WHERE id = $1`

	exec := sharedPersistence.Executor(ctx, r.pool)
	p, err := scanPeriod(exec.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("finding period: %w", err)
	}
	return p, nil
}

// FindActiveOn retrieves the active period containing the date, or nil
// when no active period covers it.
func (r *PostgresPeriodRepository) FindActiveOn(ctx context.Context, date time.Time) (*domain.ExamPeriod, error) {
	query := `
		SELECT ` + periodColumns + `
		FROM exam_periods
		WHERE is_active AND start_date <= $1 AND end_date >= $1
		LIMIT 1
	`

	exec := sharedPersistence.Executor(ctx, r.pool)
	p, err := scanPeriod(exec.QueryRow(ctx, query, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("finding active period: %w", err)
	}
	return p, nil
}

// List retrieves every period, newest window first.
func (r *PostgresPeriodRepository) List(ctx context.Context) ([]*domain.ExamPeriod, error) {
	query := `SELECT ` + periodColumns + ` FROM exam_periods ORDER BY start_date DESC`

	exec := sharedPersistence.Executor(ctx, r.pool)
	rows, err := exec.Query(ctx, query)
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
func (r *PostgresPeriodRepository) DeactivateOthers(ctx context.Context, id uuid.UUID) error {
	exec := sharedPersistence.Executor(ctx, r.pool)
	_, err := exec.Exec(ctx, `UPDATE exam_periods SET is_active = FALSE, updated_at = NOW() WHERE id <> $1 AND is_active`, id)
	if err != nil {
		return fmt.Errorf("deactivating periods: %w", err)
	}
	return nil
}
