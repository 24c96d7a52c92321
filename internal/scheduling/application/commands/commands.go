package commands

import (
	"context"

	"github.com/fiesc/examsched/internal/scheduling/domain"
	sharedApplication "github.com/fiesc/examsched/internal/shared/application"
	sharedDomain "github.com/fiesc/examsched/internal/shared/domain"
	"github.com/fiesc/examsched/internal/shared/infrastructure/outbox"
	"github.com/google/uuid"
)

// parseActor builds a domain actor from the primitive identity fields
// every command carries.
func parseActor(id uuid.UUID, role, studentGroup string) (domain.Actor, error) {
	if id == uuid.Nil {
		return domain.Actor{}, &domain.ValidationError{Field: "actor_id", Reason: "must not be empty"}
	}
	r := domain.Role(role)
	if !r.IsValid() {
		return domain.Actor{}, &domain.ValidationError{Field: "actor_role", Reason: "unknown role"}
	}
	return domain.Actor{ID: id, Role: r, StudentGroup: studentGroup}, nil
}

// stageEvents stamps metadata on the aggregate's pending events and
// writes them to the outbox inside the current transaction.
func stageEvents(ctx context.Context, outboxRepo outbox.Repository, events []sharedDomain.DomainEvent, actorID uuid.UUID) error {
	sharedApplication.ApplyEventMetadata(events, sharedApplication.NewEventMetadata(actorID))

	msgs := make([]*outbox.Message, 0, len(events))
	for _, event := range events {
		msg, err := outbox.NewMessage(event)
		if err != nil {
			return err
		}
		msgs = append(msgs, msg)
	}
	return outboxRepo.SaveBatch(ctx, msgs)
}

// loadForUpdate fetches an assignment and verifies the caller's version
// before any transition is attempted.
func loadForUpdate(ctx context.Context, repo domain.AssignmentRepository, id uuid.UUID, version int) (*domain.ExamAssignment, error) {
	assignment, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if assignment == nil {
		return nil, domain.ErrAssignmentNotFound
	}
	if assignment.Version() != version {
		return nil, &domain.ConcurrencyError{Expected: version, Actual: assignment.Version()}
	}
	return assignment, nil
}
