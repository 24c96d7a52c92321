package queries

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

// mockAssignmentRepo is a mock implementation of domain.AssignmentRepository.
type mockAssignmentRepo struct {
	mock.Mock
}

func (m *mockAssignmentRepo) Save(ctx context.Context, assignment *domain.ExamAssignment) error {
	args := m.Called(ctx, assignment)
	return args.Error(0)
}

func (m *mockAssignmentRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.ExamAssignment, error) {
	args := m.Called(ctx, id)
	if a, ok := args.Get(0).(*domain.ExamAssignment); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAssignmentRepo) FindActiveByKey(ctx context.Context, disciplineID uuid.UUID, studentGroup string, examType domain.ExamType) (*domain.ExamAssignment, error) {
	args := m.Called(ctx, disciplineID, studentGroup, examType)
	if a, ok := args.Get(0).(*domain.ExamAssignment); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAssignmentRepo) FindBookedOn(ctx context.Context, date time.Time) ([]*domain.ExamAssignment, error) {
	args := m.Called(ctx, date)
	if as, ok := args.Get(0).([]*domain.ExamAssignment); ok {
		return as, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockAssignmentRepo) List(ctx context.Context, filter domain.Filter) ([]*domain.ExamAssignment, error) {
	args := m.Called(ctx, filter)
	if as, ok := args.Get(0).([]*domain.ExamAssignment); ok {
		return as, args.Error(1)
	}
	return nil, args.Error(1)
}

func storedAssignment(group string, status domain.Status) *domain.ExamAssignment {
	now := time.Now()
	date := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	return domain.RehydrateExamAssignment(
		uuid.New(), uuid.New(), group, domain.ExamTypeExam,
		uuid.New(), uuid.New(), uuid.New(),
		&date, 10, 120, nil, 0,
		status, 2, now.Add(-time.Hour), now,
	)
}

func TestListAssignmentsHandler_Handle(t *testing.T) {
	t.Run("maps assignments to DTOs", func(t *testing.T) {
		repo := new(mockAssignmentRepo)
		handler := NewListAssignmentsHandler(repo)

		ctx := context.Background()
		a := storedAssignment("SE-31", domain.StatusProposed)

		repo.On("List", ctx, domain.Filter{StudentGroup: "SE-31"}).
			Return([]*domain.ExamAssignment{a}, nil)

		dtos, err := handler.Handle(ctx, ListAssignmentsQuery{StudentGroup: "SE-31"})

		require.NoError(t, err)
		require.Len(t, dtos, 1)
		assert.Equal(t, a.ID(), dtos[0].ID)
		assert.Equal(t, "SE-31", dtos[0].StudentGroup)
		assert.Equal(t, string(domain.StatusProposed), dtos[0].Status)
		assert.Equal(t, 2, dtos[0].Version)
		require.NotNil(t, dtos[0].ProposedDate)

		repo.AssertExpectations(t)
	})

	t.Run("translates status filters", func(t *testing.T) {
		repo := new(mockAssignmentRepo)
		handler := NewListAssignmentsHandler(repo)

		ctx := context.Background()
		expected := domain.Filter{Statuses: []domain.Status{domain.StatusConfirmed, domain.StatusAccepted}}

		repo.On("List", ctx, expected).Return([]*domain.ExamAssignment{}, nil)

		dtos, err := handler.Handle(ctx, ListAssignmentsQuery{Statuses: []string{"CONFIRMED", "ACCEPTED"}})

		require.NoError(t, err)
		assert.Empty(t, dtos)
		repo.AssertExpectations(t)
	})

	t.Run("rejects an unknown status filter", func(t *testing.T) {
		repo := new(mockAssignmentRepo)
		handler := NewListAssignmentsHandler(repo)

		_, err := handler.Handle(context.Background(), ListAssignmentsQuery{Statuses: []string{"PENDING"}})

		var valErr *domain.ValidationError
		require.ErrorAs(t, err, &valErr)
		repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})
}

func TestGetAssignmentHandler_Handle(t *testing.T) {
	t.Run("returns one assignment", func(t *testing.T) {
		repo := new(mockAssignmentRepo)
		handler := NewGetAssignmentHandler(repo)

		ctx := context.Background()
		a := storedAssignment("SE-31", domain.StatusAccepted)

		repo.On("FindByID", ctx, a.ID()).Return(a, nil)

		dto, err := handler.Handle(ctx, GetAssignmentQuery{AssignmentID: a.ID()})

		require.NoError(t, err)
		require.NotNil(t, dto)
		assert.Equal(t, a.ID(), dto.ID)
		assert.Equal(t, string(domain.StatusAccepted), dto.Status)
	})

	t.Run("returns ErrAssignmentNotFound", func(t *testing.T) {
		repo := new(mockAssignmentRepo)
		handler := NewGetAssignmentHandler(repo)

		id := uuid.New()
		repo.On("FindByID", mock.Anything, id).Return(nil, nil)

		_, err := handler.Handle(context.Background(), GetAssignmentQuery{AssignmentID: id})

		assert.ErrorIs(t, err, domain.ErrAssignmentNotFound)
	})
}
