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

// mockPeriodRepo is a mock implementation of domain.PeriodRepository.
type mockPeriodRepo struct {
	mock.Mock
}

func (m *mockPeriodRepo) Save(ctx context.Context, period *domain.ExamPeriod) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

func (m *mockPeriodRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.ExamPeriod, error) {
	args := m.Called(ctx, id)
	if p, ok := args.Get(0).(*domain.ExamPeriod); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPeriodRepo) FindActiveOn(ctx context.Context, date time.Time) (*domain.ExamPeriod, error) {
	args := m.Called(ctx, date)
	if p, ok := args.Get(0).(*domain.ExamPeriod); ok {
		return p, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPeriodRepo) List(ctx context.Context) ([]*domain.ExamPeriod, error) {
	args := m.Called(ctx)
	if ps, ok := args.Get(0).([]*domain.ExamPeriod); ok {
		return ps, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockPeriodRepo) DeactivateOthers(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func storedPeriod(t *testing.T, name string, active bool) *domain.ExamPeriod {
	t.Helper()
	sec := domain.Actor{ID: uuid.New(), Role: domain.RoleSecretariat}
	p, err := domain.NewExamPeriod(sec, name,
		time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 6, 26, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	if active {
		require.NoError(t, p.SetActive(sec, true))
	}
	return p
}

func TestListPeriodsHandler_Handle(t *testing.T) {
	t.Run("lists every period", func(t *testing.T) {
		periods := new(mockPeriodRepo)
		handler := NewListPeriodsHandler(periods)

		ctx := context.Background()
		all := []*domain.ExamPeriod{
			storedPeriod(t, "Winter session", false),
			storedPeriod(t, "Summer session", true),
		}

		periods.On("List", ctx).Return(all, nil)

		dtos, err := handler.Handle(ctx, ListPeriodsQuery{})

		require.NoError(t, err)
		require.Len(t, dtos, 2)
		assert.Equal(t, "Winter session", dtos[0].Name)
		assert.False(t, dtos[0].Active)
		assert.True(t, dtos[1].Active)
	})

	t.Run("filters to active periods", func(t *testing.T) {
		periods := new(mockPeriodRepo)
		handler := NewListPeriodsHandler(periods)

		all := []*domain.ExamPeriod{
			storedPeriod(t, "Winter session", false),
			storedPeriod(t, "Summer session", true),
		}

		periods.On("List", mock.Anything).Return(all, nil)

		dtos, err := handler.Handle(context.Background(), ListPeriodsQuery{ActiveOnly: true})

		require.NoError(t, err)
		require.Len(t, dtos, 1)
		assert.Equal(t, "Summer session", dtos[0].Name)
	})
}
