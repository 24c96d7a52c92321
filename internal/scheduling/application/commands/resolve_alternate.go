package commands

import (
	"context"
	"time"

	"github.com/fiesc/examsched/internal/scheduling/domain"
	sharedApplication "github.com/fiesc/examsched/internal/shared/application"
	"github.com/fiesc/examsched/internal/shared/infrastructure/outbox"
	"github.com/google/uuid"
)

// Alternate resolutions.
const (
	ResolutionAccept    = "ACCEPT"
	ResolutionRepropose = "REPROPOSE"
)

// ResolveAlternateCommand answers a teacher's counter-proposal: either
// accept it as-is or open a new review round with a fresh date. Date,
// Hour, and DurationMins are only read for REPROPOSE.
type ResolveAlternateCommand struct {
	ActorID      uuid.UUID
	ActorRole    string
	ActorGroup   string
	AssignmentID uuid.UUID
	Resolution   string
	Date         time.Time
	Hour         int
	DurationMins int
	Version      int
}

// ResolveAlternateHandler handles the ResolveAlternateCommand.
type ResolveAlternateHandler struct {
	repo            domain.AssignmentRepository
	periods         domain.PeriodRepository
	outboxRepo      outbox.Repository
	uow             sharedApplication.UnitOfWork
	hours           domain.OperatingHours
	defaultDuration int
}

// NewResolveAlternateHandler creates a new ResolveAlternateHandler.
func NewResolveAlternateHandler(
	repo domain.AssignmentRepository,
	periods domain.PeriodRepository,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
	hours domain.OperatingHours,
	defaultDuration int,
) *ResolveAlternateHandler {
	return &ResolveAlternateHandler{
		repo:            repo,
		periods:         periods,
		outboxRepo:      outboxRepo,
		uow:             uow,
		hours:           hours,
		defaultDuration: defaultDuration,
	}
}

// Handle executes the ResolveAlternateCommand and returns the assignment
// in its post-transition state.
func (h *ResolveAlternateHandler) Handle(ctx context.Context, cmd ResolveAlternateCommand) (*domain.ExamAssignment, error) {
	actor, err := parseActor(cmd.ActorID, cmd.ActorRole, cmd.ActorGroup)
	if err != nil {
		return nil, err
	}
	if cmd.Resolution != ResolutionAccept && cmd.Resolution != ResolutionRepropose {
		return nil, &domain.ValidationError{Field: "resolution", Reason: "must be ACCEPT or REPROPOSE"}
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

		switch cmd.Resolution {
		case ResolutionAccept:
			if err := assignment.AcceptAlternate(actor); err != nil {
				return err
			}
		case ResolutionRepropose:
			period, err := h.periods.FindActiveOn(txCtx, cmd.Date)
			if err != nil {
				return err
			}
			if period == nil {
				return &domain.PeriodError{Date: cmd.Date}
			}
			if err := assignment.Repropose(actor, cmd.Date, cmd.Hour, duration, h.hours); err != nil {
				return err
			}
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
