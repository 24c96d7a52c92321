package commands

import (
	"context"
	"time"

	"github.com/fiesc/examsched/internal/scheduling/domain"
	sharedApplication "github.com/fiesc/examsched/internal/shared/application"
	"github.com/google/uuid"
)

// CreatePeriodCommand contains the data needed to create an exam period.
type CreatePeriodCommand struct {
	ActorID   uuid.UUID
	ActorRole string
	Name      string
	StartDate time.Time
	EndDate   time.Time
}

// CreatePeriodResult contains the result of creating a period.
type CreatePeriodResult struct {
	PeriodID uuid.UUID
}

// CreatePeriodHandler handles the CreatePeriodCommand.
type CreatePeriodHandler struct {
	periods domain.PeriodRepository
	uow     sharedApplication.UnitOfWork
}

// NewCreatePeriodHandler creates a new CreatePeriodHandler.
func NewCreatePeriodHandler(periods domain.PeriodRepository, uow sharedApplication.UnitOfWork) *CreatePeriodHandler {
	return &CreatePeriodHandler{periods: periods, uow: uow}
}

// Handle executes the CreatePeriodCommand.
func (h *CreatePeriodHandler) Handle(ctx context.Context, cmd CreatePeriodCommand) (*CreatePeriodResult, error) {
	actor, err := parseActor(cmd.ActorID, cmd.ActorRole, "")
	if err != nil {
		return nil, err
	}

	var result *CreatePeriodResult

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		period, err := domain.NewExamPeriod(actor, cmd.Name, cmd.StartDate, cmd.EndDate)
		if err != nil {
			return err
		}

		if err := h.periods.Save(txCtx, period); err != nil {
			return err
		}

		result = &CreatePeriodResult{PeriodID: period.ID()}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}
