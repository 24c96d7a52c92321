package commands

import (
	"context"
	"fmt"

	"github.com/fiesc/examsched/internal/scheduling/domain"
	sharedApplication "github.com/fiesc/examsched/internal/shared/application"
	"github.com/fiesc/examsched/internal/shared/infrastructure/outbox"
	"github.com/google/uuid"
)

// CreateAssignmentCommand contains the data needed to draft an assignment.
type CreateAssignmentCommand struct {
	ActorID         uuid.UUID
	ActorRole       string
	DisciplineID    uuid.UUID
	StudentGroup    string
	ExamType        string
	MainTeacherID   uuid.UUID
	SecondTeacherID uuid.UUID
	RoomID          uuid.UUID
}

// CreateAssignmentResult contains the result of drafting an assignment.
type CreateAssignmentResult struct {
	AssignmentID uuid.UUID
}

// CreateAssignmentHandler handles the CreateAssignmentCommand.
type CreateAssignmentHandler struct {
	repo       domain.AssignmentRepository
	directory  domain.Directory
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
}

// NewCreateAssignmentHandler creates a new CreateAssignmentHandler.
func NewCreateAssignmentHandler(repo domain.AssignmentRepository, directory domain.Directory, outboxRepo outbox.Repository, uow sharedApplication.UnitOfWork) *CreateAssignmentHandler {
	return &CreateAssignmentHandler{
		repo:       repo,
		directory:  directory,
		outboxRepo: outboxRepo,
		uow:        uow,
	}
}

// Handle executes the CreateAssignmentCommand.
func (h *CreateAssignmentHandler) Handle(ctx context.Context, cmd CreateAssignmentCommand) (*CreateAssignmentResult, error) {
	actor, err := parseActor(cmd.ActorID, cmd.ActorRole, "")
	if err != nil {
		return nil, err
	}

	var result *CreateAssignmentResult

	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		if err := h.checkReferences(txCtx, cmd); err != nil {
			return err
		}

		existing, err := h.repo.FindActiveByKey(txCtx, cmd.DisciplineID, cmd.StudentGroup, domain.ExamType(cmd.ExamType))
		if err != nil {
			return err
		}
		if existing != nil {
			return &domain.ValidationError{
				Field:  "assignment",
				Reason: fmt.Sprintf("an active assignment %s already exists for this discipline, group, and exam type", existing.ID()),
			}
		}

		assignment, err := domain.NewExamAssignment(
			actor,
			cmd.DisciplineID,
			cmd.StudentGroup,
			domain.ExamType(cmd.ExamType),
			cmd.MainTeacherID,
			cmd.SecondTeacherID,
			cmd.RoomID,
		)
		if err != nil {
			return err
		}

		if err := h.repo.Save(txCtx, assignment); err != nil {
			return err
		}
		if err := stageEvents(txCtx, h.outboxRepo, assignment.DomainEvents(), actor.ID); err != nil {
			return err
		}

		result = &CreateAssignmentResult{AssignmentID: assignment.ID()}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (h *CreateAssignmentHandler) checkReferences(ctx context.Context, cmd CreateAssignmentCommand) error {
	ok, err := h.directory.DisciplineExists(ctx, cmd.DisciplineID)
	if err != nil {
		return err
	}
	if !ok {
		return &domain.ValidationError{Field: "discipline_id", Reason: "unknown discipline"}
	}

	for _, teacherID := range []uuid.UUID{cmd.MainTeacherID, cmd.SecondTeacherID} {
		ok, err := h.directory.TeacherExists(ctx, teacherID)
		if err != nil {
			return err
		}
		if !ok {
			return &domain.ValidationError{Field: "teacher_id", Reason: fmt.Sprintf("unknown teacher %s", teacherID)}
		}
	}

	if cmd.RoomID != uuid.Nil {
		ok, err := h.directory.RoomExists(ctx, cmd.RoomID)
		if err != nil {
			return err
		}
		if !ok {
			return &domain.ValidationError{Field: "room_id", Reason: "unknown room"}
		}
	}

	return nil
}
