package commands

import (
	"context"
	"testing"
	"time"

	"github.com/fiesc/examsched/internal/scheduling/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newReviewHandler(repo *mockAssignmentRepo, periods *mockPeriodRepo, outboxRepo *mockOutboxRepo, uow *mockUnitOfWork) *ReviewProposalHandler {
	return NewReviewProposalHandler(repo, periods, outboxRepo, uow, domain.DefaultOperatingHours())
}

func TestReviewProposalHandler_Handle(t *testing.T) {
	t.Run("teacher accepts a proposal", func(t *testing.T) {
		repo := new(mockAssignmentRepo)
		periods := new(mockPeriodRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := newReviewHandler(repo, periods, outboxRepo, uow)

		ctx := context.Background()
		txCtx := txContext(ctx)

		assignment := rehydratedAssignment(domain.StatusProposed, 2)

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(nil)
		repo.On("FindByID", txCtx, assignment.ID()).Return(assignment, nil)
		repo.On("Save", txCtx, assignment).Return(nil)
		outboxRepo.On("SaveBatch", txCtx, mock.AnythingOfType("[]*outbox.Message")).Return(nil)

		cmd := ReviewProposalCommand{
			ActorID:      assignment.MainTeacherID(),
			ActorRole:    string(domain.RoleTeacher),
			AssignmentID: assignment.ID(),
			Decision:     string(domain.ReviewAccept),
			Version:      2,
		}

		updated, err := handler.Handle(ctx, cmd)

		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, domain.StatusAccepted, updated.Status())

		repo.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("teacher offers an alternate inside the active period", func(t *testing.T) {
		repo := new(mockAssignmentRepo)
		periods := new(mockPeriodRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := newReviewHandler(repo, periods, outboxRepo, uow)

		ctx := context.Background()
		txCtx := txContext(ctx)

		assignment := rehydratedAssignment(domain.StatusProposed, 2)
		altDate := time.Date(2026, 6, 18, 0, 0, 0, 0, time.UTC)

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(nil)
		repo.On("FindByID", txCtx, assignment.ID()).Return(assignment, nil)
		periods.On("FindActiveOn", txCtx, altDate).Return(activePeriod(t), nil)
		repo.On("Save", txCtx, assignment).Return(nil)
		outboxRepo.On("SaveBatch", txCtx, mock.AnythingOfType("[]*outbox.Message")).Return(nil)

		cmd := ReviewProposalCommand{
			ActorID:       assignment.SecondTeacherID(),
			ActorRole:     string(domain.RoleTeacher),
			AssignmentID:  assignment.ID(),
			Decision:      string(domain.ReviewAlternate),
			AlternateDate: &altDate,
			AlternateHour: 14,
			Version:       2,
		}

		updated, err := handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, domain.StatusAlternate, updated.Status())
		assert.Equal(t, altDate, *updated.AlternateDate())

		periods.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("rejects an alternate outside the active period", func(t *testing.T) {
		repo := new(mockAssignmentRepo)
		periods := new(mockPeriodRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := newReviewHandler(repo, periods, outboxRepo, uow)

		ctx := context.Background()
		txCtx := txContext(ctx)

		assignment := rehydratedAssignment(domain.StatusProposed, 2)
		altDate := time.Date(2026, 8, 3, 0, 0, 0, 0, time.UTC)

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Rollback", txCtx).Return(nil)
		repo.On("FindByID", txCtx, assignment.ID()).Return(assignment, nil)
		periods.On("FindActiveOn", txCtx, altDate).Return(nil, nil)

		cmd := ReviewProposalCommand{
			ActorID:       assignment.MainTeacherID(),
			ActorRole:     string(domain.RoleTeacher),
			AssignmentID:  assignment.ID(),
			Decision:      string(domain.ReviewAlternate),
			AlternateDate: &altDate,
			AlternateHour: 14,
			Version:       2,
		}

		_, err := handler.Handle(ctx, cmd)

		var periodErr *domain.PeriodError
		require.ErrorAs(t, err, &periodErr)
		assert.Equal(t, domain.StatusProposed, assignment.Status())

		uow.AssertExpectations(t)
	})

	t.Run("rejects an unknown decision before opening a transaction", func(t *testing.T) {
		repo := new(mockAssignmentRepo)
		periods := new(mockPeriodRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := newReviewHandler(repo, periods, outboxRepo, uow)

		cmd := ReviewProposalCommand{
			ActorID:      uuid.New(),
			ActorRole:    string(domain.RoleTeacher),
			AssignmentID: uuid.New(),
			Decision:     "POSTPONE",
			Version:      1,
		}

		_, err := handler.Handle(context.Background(), cmd)

		var valErr *domain.ValidationError
		require.ErrorAs(t, err, &valErr)
		uow.AssertNotCalled(t, "Begin", mock.Anything)
	})

	t.Run("rejects an unbound teacher", func(t *testing.T) {
		repo := new(mockAssignmentRepo)
		periods := new(mockPeriodRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := newReviewHandler(repo, periods, outboxRepo, uow)

		ctx := context.Background()
		txCtx := txContext(ctx)

		assignment := rehydratedAssignment(domain.StatusProposed, 2)

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Rollback", txCtx).Return(nil)
		repo.On("FindByID", txCtx, assignment.ID()).Return(assignment, nil)

		cmd := ReviewProposalCommand{
			ActorID:      uuid.New(),
			ActorRole:    string(domain.RoleTeacher),
			AssignmentID: assignment.ID(),
			Decision:     string(domain.ReviewReject),
			Version:      2,
		}

		_, err := handler.Handle(ctx, cmd)

		var authErr *domain.AuthorizationError
		require.ErrorAs(t, err, &authErr)

		uow.AssertExpectations(t)
	})
}
