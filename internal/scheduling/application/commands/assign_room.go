package commands

import (
	"context"

	"github.com/fiesc/examsched/internal/scheduling/domain"
	sharedApplication "github.com/fiesc/examsched/internal/shared/application"
	"github.com/fiesc/examsched/internal/shared/infrastructure/outbox"
	"github.com/google/uuid"
)

// AssignRoomCommand binds or replaces the room on a pending assignment.
type AssignRoomCommand struct {
	ActorID      uuid.UUID
	ActorRole    string
	AssignmentID uuid.UUID
	RoomID       uuid.UUID
	Version      int
}

// AssignRoomHandler handles the AssignRoomCommand.
type AssignRoomHandler struct {
	repo       domain.AssignmentRepository
	directory  domain.Directory
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewAssignRoomHandler creates a new AssignRoomHandler.
func NewAssignRoomHandler(repo domain.AssignmentRepository, directory domain.Directory, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *AssignRoomHandler {
	return &AssignRoomHandler{
		repo:       repo,
		directory:  directory,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle executes the AssignRoomCommand and returns the assignment in
// its post-transition state.
func (h *AssignRoomHandler) Handle(ctx context.Context, cmd AssignRoomCommand) (*domain.ExamAssignment, error) {
	actor, err := parseActor(cmd.ActorID, cmd.ActorRole, "")
	if err != nil {
		return nil, err
	}

	var updated *domain.ExamAssignment
	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		ok, err := h.directory.RoomExists(txCtx, cmd.RoomID)
		if err != nil {
			return err
		}
		if !ok {
			return &domain.ValidationError{Field: "room_id", Reason: "unknown room"}
		}

		assignment, err := loadForUpdate(txCtx, h.repo, cmd.AssignmentID, cmd.Version)
		if err != nil {
			return err
		}

		if err := assignment.AssignRoom(actor, cmd.RoomID); err != nil {
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
