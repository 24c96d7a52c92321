package commands

import (
	"context"
	"time"

	"github.com/fiesc/examsched/internal/scheduling/domain"
	sharedApplication "github.com/fiesc/examsched/internal/shared/application"
	"github.com/fiesc/examsched/internal/shared/infrastructure/outbox"
	"github.com/google/uuid"
)

// ReviewProposalCommand contains a teacher's response to a proposed date.
// AlternateDate and AlternateHour are only read for an ALTERNATE decision.
type ReviewProposalCommand struct {
	ActorID       uuid.UUID
	ActorRole     string
	AssignmentID  uuid.UUID
	Decision      string
	AlternateDate *time.Time
	AlternateHour int
	Version       int
}

// ReviewProposalHandler handles the ReviewProposalCommand.
type ReviewProposalHandler struct {
	repo       domain.AssignmentRepository
	periods    domain.PeriodRepository
	outboxRepo outbox.Repository
	uow        sharedApplication.UnitOfWork
	hours      domain.OperatingHours
}

// NewReviewProposalHandler creates a new ReviewProposalHandler.
func NewReviewProposalHandler(
	repo domain.AssignmentRepository,
	periods domain.PeriodRepository,
	outboxRepo outbox.Repository,
	uow sharedApplication.UnitOfWork,
	hours domain.OperatingHours,
) *ReviewProposalHandler {
	return &ReviewProposalHandler{
		repo:       repo,
		periods:    periods,
		outboxRepo: outboxRepo,
		uow:        uow,
		hours:      hours,
	}
}

// Handle executes the ReviewProposalCommand and returns the assignment
// in its post-transition state.
func (h *ReviewProposalHandler) Handle(ctx context.Context, cmd ReviewProposalCommand) (*domain.ExamAssignment, error) {
	actor, err := parseActor(cmd.ActorID, cmd.ActorRole, "")
	if err != nil {
		return nil, err
	}

	decision := domain.ReviewDecision(cmd.Decision)
	if !decision.IsValid() {
		return nil, &domain.ValidationError{Field: "decision", Reason: "must be ACCEPT, REJECT, ALTERNATE, or CANCEL"}
	}

	var updated *domain.ExamAssignment
	err = sharedApplication.WithUnitOfWork(ctx, h.uow, func(txCtx context.Context) error {
		assignment, err := loadForUpdate(txCtx, h.repo, cmd.AssignmentID, cmd.Version)
		if err != nil {
			return err
		}

		// A counter-proposal is bound by the same period rule as the
		// original proposal.
		if decision == domain.ReviewAlternate && cmd.AlternateDate != nil {
			period, err := h.periods.FindActiveOn(txCtx, *cmd.AlternateDate)
			if err != nil {
				return err
			}
			if period == nil {
				return &domain.PeriodError{Date: *cmd.AlternateDate}
			}
		}

		if err := assignment.Review(actor, decision, cmd.AlternateDate, cmd.AlternateHour, h.hours); err != nil {
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
