package queries

import (
	"context"
	"time"

	"github.com/fiesc/examsched/internal/scheduling/domain"
	"github.com/google/uuid"
)

// PeriodDTO is a data transfer object for exam periods.
type PeriodDTO struct {
	ID        uuid.UUID
	Name      string
	StartDate time.Time
	EndDate   time.Time
	Active    bool
}

// ListPeriodsQuery contains the parameters for listing exam periods.
type ListPeriodsQuery struct {
	ActiveOnly bool
}

// ListPeriodsHandler handles the ListPeriodsQuery.
type ListPeriodsHandler struct {
	periods domain.PeriodRepository
}

// NewListPeriodsHandler creates a new ListPeriodsHandler.
func NewListPeriodsHandler(periods domain.PeriodRepository) *ListPeriodsHandler {
	return &ListPeriodsHandler{periods: periods}
}

// Handle executes the ListPeriodsQuery.
func (h *ListPeriodsHandler) Handle(ctx context.Context, query ListPeriodsQuery) ([]PeriodDTO, error) {
	periods, err := h.periods.List(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]PeriodDTO, 0, len(periods))
	for _, p := range periods {
		if query.ActiveOnly && !p.Active() {
			continue
		}
		dtos = append(dtos, PeriodDTO{
			ID:        p.ID(),
			Name:      p.Name(),
			StartDate: p.StartDate(),
			EndDate:   p.EndDate(),
			Active:    p.Active(),
		})
	}

	return dtos, nil
}
