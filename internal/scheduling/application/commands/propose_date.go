package commands

import (
	"context"
	"time"

	"github.com/fiesc/examsched/internal/scheduling/domain"
	sharedApplication "github.com/fiesc/examsched/internal/shared/application"
	"github.com/fiesc/examsched/internal/shared/infrastructure/outbox"
	"github.com/google/uuid"
)

// ProposeDateCommand contains the data for a group leader's proposal.
// DurationMins falls back to the configured default when zero.
type ProposeDateCommand struct {
	ActorID      uuid.UUID
	ActorRole    string
	ActorGroup   string
	AssignmentID uuid.UUID
	Date         time.Time
	Hour         int
	DurationMins int
	Version      int
}

// ProposeDateHandler handles the ProposeDateCommand.
type ProposeDateHandler struct {
	repo            domain.AssignmentRepository
	periods         domain.PeriodRepository
	directory       domain.Directory
	outboxRepo      outbox.Repository
	uow             sharedApplication.UnitOfWork
	hours           domain.OperatingHours
	defaultDuration int
}

// NewProposeDateHandler creates a new ProposeDateHandler.
func NewProposeDateHandler(
	repo domain.AssignmentRepository,
	periods domain.PeriodRepository,
	directory domain.Directory,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
	hours domain.OperatingHours,
	defaultDuration int,
) *ProposeDateHandler {
	return &ProposeDateHandler{
		repo:            repo,
		periods:         periods,
		directory:       directory,
		outboxRepo:      outboxRepo,
		uow:             uow,
		hours:           hours,
		defaultDuration: defaultDuration,
	}
}

// Handle executes the ProposeDateCommand and returns the assignment in
// its post-transition state.
func (h *ProposeDateHandler) Handle(ctx context.Context, cmd ProposeDateCommand) (*domain.ExamAssignment, error) {
	actor, err := parseActor(cmd.ActorID, cmd.ActorRole, cmd.ActorGroup)
	if err != nil {
		return nil, err
	}

	duration := cmd.DurationMins
	if duration == 0 {
		duration = h.defaultDuration
	}

	var updated *domain.ExamAssignment
	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		assignment, err := loadForUpdate(txCtx, h.repo, cmd.AssignmentID, cmd.Version)
		if err != nil {
			return err
		}

		// Role and group membership are checked by the aggregate; the
		// directory check additionally pins the proposal to the group's
		// designated leader.
		leaderID, err := h.directory.GroupLeaderID(txCtx, assignment.StudentGroup())
		if err != nil {
			return err
		}
		if leaderID != actor.ID {
			return &domain.AuthorizationError{Action: "propose", Role: actor.Role}
		}

		period, err := h.periods.FindActiveOn(txCtx, cmd.Date)
		if err != nil {
			return err
		}
		if period == nil {
			return &domain.PeriodError{Date: cmd.Date}
		}

		if err := assignment.Propose(actor, cmd.Date, cmd.Hour, duration, h.hours); err != nil {
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
