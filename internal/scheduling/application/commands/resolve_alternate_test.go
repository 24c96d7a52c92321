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

func alternateAssignment(version int) *domain.ExamAssignment {
	now := time.Now()
	proposed := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	alternate := time.Date(2026, 6, 18, 0, 0, 0, 0, time.UTC)
	return domain.RehydrateExamAssignment(
		uuid.New(), uuid.New(), "SE-31", domain.ExamTypeExam,
		uuid.New(), uuid.New(), uuid.New(),
		&proposed, 10, 120, &alternate, 14,
		domain.StatusAlternate, version, now.Add(-time.Hour), now,
	)
}

func newResolveHandler(repo *mockAssignmentRepo, periods *mockPeriodRepo, outboxRepo *mockOutboxRepo, uow *mockUnitOfWork) *ResolveAlternateHandler {
	return NewResolveAlternateHandler(repo, periods, outboxRepo, uow, domain.DefaultOperatingHours(), 120)
}

func TestResolveAlternateHandler_Handle(t *testing.T) {
	t.Run("leader accepts the alternate", func(t *testing.T) {
		repo := new(mockAssignmentRepo)
		periods := new(mockPeriodRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := newResolveHandler(repo, periods, outboxRepo, uow)

		ctx := context.Background()
		txCtx := txContext(ctx)

		assignment := alternateAssignment(3)

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(nil)
		repo.On("FindByID", txCtx, assignment.ID()).Return(assignment, nil)
		repo.On("Save", txCtx, assignment).Return(nil)
		outboxRepo.On("SaveBatch", txCtx, mock.AnythingOfType("[]*outbox.Message")).Return(nil)

		cmd := ResolveAlternateCommand{
			ActorID:      uuid.New(),
			ActorRole:    string(domain.RoleGroupLeader),
			ActorGroup:   "SE-31",
			AssignmentID: assignment.ID(),
			Resolution:   ResolutionAccept,
			Version:      3,
		}

		updated, err := handler.Handle(ctx, cmd)

		require.NoError(t, err)
		require.NotNil(t, updated)
		assert.Equal(t, domain.StatusAccepted, updated.Status())
		assert.Equal(t, 14, updated.ProposedHour()) // alternate promoted
		assert.Nil(t, updated.AlternateDate())

		repo.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("leader re-proposes a fresh date", func(t *testing.T) {
		repo := new(mockAssignmentRepo)
		periods := new(mockPeriodRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := newResolveHandler(repo, periods, outboxRepo, uow)

		ctx := context.Background()
		txCtx := txContext(ctx)

		assignment := alternateAssignment(3)
		newDate := time.Date(2026, 6, 22, 0, 0, 0, 0, time.UTC)

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Commit", txCtx).Return(nil)
		repo.On("FindByID", txCtx, assignment.ID()).Return(assignment, nil)
		periods.On("FindActiveOn", txCtx, newDate).Return(activePeriod(t), nil)
		repo.On("Save", txCtx, assignment).Return(nil)
		outboxRepo.On("SaveBatch", txCtx, mock.AnythingOfType("[]*outbox.Message")).Return(nil)

		cmd := ResolveAlternateCommand{
			ActorID:      uuid.New(),
			ActorRole:    string(domain.RoleGroupLeader),
			ActorGroup:   "SE-31",
			AssignmentID: assignment.ID(),
			Resolution:   ResolutionRepropose,
			Date:         newDate,
			Hour:         9,
			Version:      3,
		}

		updated, err := handler.Handle(ctx, cmd)

		require.NoError(t, err)
		assert.Equal(t, domain.StatusProposed, updated.Status())
		assert.Equal(t, newDate, *updated.ProposedDate())
		assert.Equal(t, 120, updated.DurationMins()) // default applied

		periods.AssertExpectations(t)
		uow.AssertExpectations(t)
	})

	t.Run("rejects an unknown resolution before opening a transaction", func(t *testing.T) {
		repo := new(mockAssignmentRepo)
		periods := new(mockPeriodRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := newResolveHandler(repo, periods, outboxRepo, uow)

		cmd := ResolveAlternateCommand{
			ActorID:      uuid.New(),
			ActorRole:    string(domain.RoleGroupLeader),
			ActorGroup:   "SE-31",
			AssignmentID: uuid.New(),
			Resolution:   "DECLINE",
			Version:      1,
		}

		_, err := handler.Handle(context.Background(), cmd)

		var valErr *domain.ValidationError
		require.ErrorAs(t, err, &valErr)
		uow.AssertNotCalled(t, "Begin", mock.Anything)
	})

	t.Run("re-proposal outside the active period fails", func(t *testing.T) {
		repo := new(mockAssignmentRepo)
		periods := new(mockPeriodRepo)
		outboxRepo := new(mockOutboxRepo)
		uow := new(mockUnitOfWork)
		handler := newResolveHandler(repo, periods, outboxRepo, uow)

		ctx := context.Background()
		txCtx := txContext(ctx)

		assignment := alternateAssignment(3)
		outside := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

		uow.On("Begin", ctx).Return(txCtx, nil)
		uow.On("Rollback", txCtx).Return(nil)
		repo.On("FindByID", txCtx, assignment.ID()).Return(assignment, nil)
		periods.On("FindActiveOn", txCtx, outside).Return(nil, nil)

		cmd := ResolveAlternateCommand{
			ActorID:      uuid.New(),
			ActorRole:    string(domain.RoleGroupLeader),
			ActorGroup:   "SE-31",
			AssignmentID: assignment.ID(),
			Resolution:   ResolutionRepropose,
			Date:         outside,
			Hour:         9,
			Version:      3,
		}

		_, err := handler.Handle(ctx, cmd)

		var periodErr *domain.PeriodError
		require.ErrorAs(t, err, &periodErr)
		assert.Equal(t, domain.StatusAlternate, assignment.Status())

		uow.AssertExpectations(t)
	})
}
