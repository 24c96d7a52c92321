package domain

import (
	"context"
	"time"

	sharedDomain "github.com/fiesc/examsched/internal/shared/domain"
	"github.com/google/uuid"
)

// ExamPeriod is a named window of days inside which exams may be
// scheduled. Only active periods constrain proposals.
type ExamPeriod struct {
	sharedDomain.BaseEntity
	name      string
	startDate time.Time
	endDate   time.Time
	active    bool
}

// NewExamPeriod creates a period. Dates are truncated to whole days and
// the window must not be inverted.
func NewExamPeriod(actor Actor, name string, startDate, endDate time.Time) (*ExamPeriod, error) {
	if !actor.canManage() {
		return nil, &AuthorizationError{Action: "create a period", Role: actor.Role}
	}
	if name == "" {
		return nil, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	start := truncateToDay(startDate)
	end := truncateToDay(endDate)
	if end.Before(start) {
		return nil, &ValidationError{Field: "end_date", Reason: "must not precede start_date"}
	}

	return &ExamPeriod{
		BaseEntity: sharedDomain.NewBaseEntity(),
		name:       name,
		startDate:  start,
		endDate:    end,
		active:     false,
	}, nil
}

// Getters
func (p *ExamPeriod) Name() string         { return p.name }
func (p *ExamPeriod) StartDate() time.Time { return p.startDate }
func (p *ExamPeriod) EndDate() time.Time   { return p.endDate }
func (p *ExamPeriod) Active() bool         { return p.active }

// Contains reports whether the given date falls inside the period,
// boundaries included.
func (p *ExamPeriod) Contains(date time.Time) bool {
	d := truncateToDay(date)
	return !d.Before(p.startDate) && !d.After(p.endDate)
}

// SetActive toggles the period. Activation policy (at most one active
// period) is enforced by the repository.
func (p *ExamPeriod) SetActive(actor Actor, active bool) error {
	if !actor.canManage() {
		return &AuthorizationError{Action: "activate a period", Role: actor.Role}
	}
	p.active = active
	p.Touch()
	return nil
}

// RehydrateExamPeriod recreates a period from persisted state.
func RehydrateExamPeriod(id uuid.UUID, name string, startDate, endDate time.Time, active bool, createdAt, updatedAt time.Time) *ExamPeriod {
	return &ExamPeriod{
		BaseEntity: sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt),
		name:       name,
		startDate:  startDate,
		endDate:    endDate,
		active:     active,
	}
}

// PeriodRepository persists exam periods.
type PeriodRepository interface {
	Save(ctx context.Context, period *ExamPeriod) error
	FindByID(ctx context.Context, id uuid.UUID) (*ExamPeriod, error)
	// FindActiveOn returns the active period containing date, or nil when
	// no active period covers it.
	FindActiveOn(ctx context.Context, date time.Time) (*ExamPeriod, error)
	List(ctx context.Context) ([]*ExamPeriod, error)
	// DeactivateOthers clears the active flag on every period except the
	// given one, keeping at most one period active.
	DeactivateOthers(ctx context.Context, id uuid.UUID) error
}
