package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func periodWindow() (time.Time, time.Time) {
	return time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 6, 26, 0, 0, 0, 0, time.UTC)
}

func TestNewExamPeriod_Success(t *testing.T) {
	start, end := periodWindow()

	p, err := NewExamPeriod(secretariat(), "Summer session 2026", start.Add(9*time.Hour), end)

	require.NoError(t, err)
	assert.Equal(t, "Summer session 2026", p.Name())
	assert.Equal(t, start, p.StartDate()) // time of day stripped
	assert.Equal(t, end, p.EndDate())
	assert.False(t, p.Active())
}

func TestNewExamPeriod_Validation(t *testing.T) {
	start, end := periodWindow()

	t.Run("inverted window", func(t *testing.T) {
		p, err := NewExamPeriod(secretariat(), "Backwards", end, start)
		var valErr *ValidationError
		require.ErrorAs(t, err, &valErr)
		assert.Nil(t, p)
	})

	t.Run("empty name", func(t *testing.T) {
		_, err := NewExamPeriod(secretariat(), "", start, end)
		var valErr *ValidationError
		require.ErrorAs(t, err, &valErr)
	})

	t.Run("teacher cannot create", func(t *testing.T) {
		_, err := NewExamPeriod(Actor{ID: uuid.New(), Role: RoleTeacher}, "Session", start, end)
		var authErr *AuthorizationError
		require.ErrorAs(t, err, &authErr)
	})
}

func TestExamPeriod_Contains(t *testing.T) {
	start, end := periodWindow()
	p, err := NewExamPeriod(secretariat(), "Summer", start, end)
	require.NoError(t, err)

	tests := []struct {
		name   string
		date   time.Time
		inside bool
	}{
		{"first day", start, true},
		{"last day", end, true},
		{"mid-period with time of day", start.AddDate(0, 0, 10).Add(14 * time.Hour), true},
		{"day before", start.AddDate(0, 0, -1), false},
		{"day after", end.AddDate(0, 0, 1), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.inside, p.Contains(tc.date))
		})
	}
}

func TestExamPeriod_SetActive(t *testing.T) {
	start, end := periodWindow()
	p, err := NewExamPeriod(secretariat(), "Summer", start, end)
	require.NoError(t, err)

	require.NoError(t, p.SetActive(secretariat(), true))
	assert.True(t, p.Active())

	err = p.SetActive(Actor{ID: uuid.New(), Role: RoleGroupLeader}, false)
	var authErr *AuthorizationError
	require.ErrorAs(t, err, &authErr)
	assert.True(t, p.Active())
}
