package commands

import (
	"context"

	"github.com/fiesc/examsched/internal/scheduling/domain"
	sharedApplication "github.com/fiesc/examsched/internal/shared/application"
	"github.com/fiesc/examsched/internal/shared/infrastructure/locking"
	"github.com/fiesc/examsched/internal/shared/infrastructure/outbox"
	"github.com/google/uuid"
)

// ConfirmAssignmentCommand finalizes an accepted assignment.
type ConfirmAssignmentCommand struct {
	ActorID      uuid.UUID
	ActorRole    string
	AssignmentID uuid.UUID
	Version      int
}

// ConfirmAssignmentHandler handles the ConfirmAssignmentCommand. The
// conflict check and the status change run inside one transaction, with
// the room and both examiners locked for the duration so two concurrent
// confirmations cannot both pass the check.
type ConfirmAssignmentHandler struct {
	repo       domain.AssignmentRepository
	checker    domain.ConflictChecker
	locker     locking.KeyLocker
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewConfirmAssignmentHandler creates a new ConfirmAssignmentHandler.
func NewConfirmAssignmentHandler(
	repo domain.AssignmentRepository,
	checker domain.ConflictChecker,
	locker locking.KeyLocker,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
) *ConfirmAssignmentHandler {
	return &ConfirmAssignmentHandler{
		repo:       repo,
		checker:    checker,
		locker:     locker,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle executes the ConfirmAssignmentCommand and returns the
// assignment in its confirmed state.
func (h *ConfirmAssignmentHandler) Handle(ctx context.Context, cmd ConfirmAssignmentCommand) (*domain.ExamAssignment, error) {
	actor, err := parseActor(cmd.ActorID, cmd.ActorRole, "")
	if err != nil {
		return nil, err
	}

	// Resolve lock keys from a plain read before taking locks or opening
	// the transaction. The locked re-read below is authoritative.
	assignment, err := h.repo.FindByID(ctx, cmd.AssignmentID)
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return nil, domain.ErrAssignmentNotFound
	}

	keys := []string{"room:" + assignment.RoomID().String()}
	for _, teacherID := range assignment.TeacherIDs() {
		keys = append(keys, "teacher:"+teacherID.String())
	}

	release, err := h.locker.Acquire(ctx, keys...)
	if err != nil {
		return nil, err
	}
	defer release()

	var updated *domain.ExamAssignment
	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		assignment, err := loadForUpdate(txCtx, h.repo, cmd.AssignmentID, cmd.Version)
		if err != nil {
			return err
		}

		if err := assignment.Confirm(actor); err != nil {
			return err
		}

		date := assignment.EffectiveDate()
		result, err := h.checker.Check(txCtx, domain.Candidate{
			AssignmentID: assignment.ID(),
			Date:         *date,
			Hour:         assignment.EffectiveHour(),
			DurationMins: assignment.DurationMins(),
			RoomID:       assignment.RoomID(),
			TeacherIDs:   assignment.TeacherIDs(),
		})
		if err != nil {
			return err
		}
		if err := result.Err(); err != nil {
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
