package commands

import (
	"context"

	"github.com/fiesc/examsched/internal/scheduling/domain"
	sharedApplication "github.com/fiesc/examsched/internal/shared/application"
	"github.com/google/uuid"
)

// SetPeriodActiveCommand toggles a period's active flag. Activating one
// period deactivates every other, so at most one period is ever active.
type SetPeriodActiveCommand struct {
	ActorID   uuid.UUID
	ActorRole string
	PeriodID  uuid.UUID
	Active    bool
}

// SetPeriodActiveHandler handles the SetPeriodActiveCommand.
type SetPeriodActiveHandler struct {
	periods domain.PeriodRepository
	uow     sharedApplication.UnitOfWork
}

// NewSetPeriodActiveHandler creates a new SetPeriodActiveHandler.
func NewSetPeriodActiveHandler(periods domain.PeriodRepository, uow sharedApplication.UnitOfWork) *SetPeriodActiveHandler {
	return &SetPeriodActiveHandler{periods: periods, uow: uow}
}

// Handle executes the SetPeriodActiveCommand.
func (h *SetPeriodActiveHandler) Handle(ctx context.Context, cmd SetPeriodActiveCommand) error {
	actor, err := parseActor(cmd.ActorID, cmd.ActorRole, "")
	if err != nil {
		return err
	}

	return sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		period, err := h.periods.FindByID(txCtx, cmd.PeriodID)
		if err != nil {
			return err
		}
		if period == nil {
			return domain.ErrPeriodNotFound
		}

		if err := period.SetActive(actor, cmd.Active); err != nil {
			return err
		}

		if cmd.Active {
			if err := h.periods.DeactivateOthers(txCtx, period.ID()); err != nil {
				return err
			}
		}

		return h.periods.Save(txCtx, period)
	})
}
