package commands

import (
	"context"

	"github.com/fiesc/examsched/internal/scheduling/domain"
	sharedApplication "github.com/fiesc/examsched/internal/shared/application"
	"github.com/fiesc/examsched/internal/shared/infrastructure/outbox"
	"github.com/google/uuid"
)

// CancelAssignmentCommand withdraws a non-terminal assignment.
type CancelAssignmentCommand struct {
	ActorID      uuid.UUID
	ActorRole    string
	AssignmentID uuid.UUID
	Version      int
}

// CancelAssignmentHandler handles the CancelAssignmentCommand.
type CancelAssignmentHandler struct {
	repo       domain.AssignmentRepository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewCancelAssignmentHandler creates a new CancelAssignmentHandler.
func NewCancelAssignmentHandler(repo domain.AssignmentRepository, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *CancelAssignmentHandler {
	return &CancelAssignmentHandler{
		repo:       repo,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle executes the CancelAssignmentCommand and returns the assignment
// in its post-transition state.
func (h *CancelAssignmentHandler) Handle(ctx context.Context, cmd CancelAssignmentCommand) (*domain.ExamAssignment, error) {
	actor, err := parseActor(cmd.ActorID, cmd.ActorRole, "")
	if err != nil {
		return nil, err
	}

	var updated *domain.ExamAssignment
	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		assignment, err := loadForUpdate(txCtx, h.repo, cmd.AssignmentID, cmd.Version)
		if err != nil {
			return err
		}

		if err := assignment.Cancel(actor); err != nil {
			return err
		}

		if err := h.repo.Save(txCtx, assignment); err != nil {
			return err
		}
		updated = assignment
		return stageEvents(txCtx, h.outboxRepo, assignment.DomainEvents(), actor.ID)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
