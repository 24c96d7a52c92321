package services

import (
	"context"
	"testing"
	"time"

	"github.com/fiesc/examsched/internal/scheduling/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAssignmentRepo serves a fixed day of bookings.
type stubAssignmentRepo struct {
	domain.AssignmentRepository
	booked []*domain.ExamAssignment
	err    error
}

func (s *stubAssignmentRepo) FindBookedOn(ctx context.Context, date time.Time) ([]*domain.ExamAssignment, error) {
	return s.booked, s.err
}

func booking(roomID, teacherID uuid.UUID, hour, durationMins int) *domain.ExamAssignment {
	now := time.Now()
	date := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	return domain.RehydrateExamAssignment(
		uuid.New(), uuid.New(), "SE-32", domain.ExamTypeExam,
		teacherID, uuid.New(), roomID,
		&date, hour, durationMins, nil, 0,
		domain.StatusConfirmed, 3, now, now,
	)
}

func TestBookingConflictChecker_Check(t *testing.T) {
	ctx := context.Background()
	date := time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC)
	room := uuid.New()
	teacher := uuid.New()

	candidate := func() domain.Candidate {
		return domain.Candidate{
			AssignmentID: uuid.New(),
			Date:         date,
			Hour:         10,
			DurationMins: 120,
			RoomID:       room,
			TeacherIDs:   []uuid.UUID{teacher, uuid.New()},
		}
	}

	t.Run("free day", func(t *testing.T) {
		checker := NewBookingConflictChecker(&stubAssignmentRepo{})

		result, err := checker.Check(ctx, candidate())

		require.NoError(t, err)
		assert.False(t, result.HasConflict())
	})

	t.Run("same room overlapping slot", func(t *testing.T) {
		other := booking(room, uuid.New(), 11, 120)
		checker := NewBookingConflictChecker(&stubAssignmentRepo{booked: []*domain.ExamAssignment{other}})

		result, err := checker.Check(ctx, candidate())

		require.NoError(t, err)
		require.True(t, result.HasConflict())
		assert.Equal(t, domain.ConflictRoom, result.Reason)
		assert.Equal(t, other.ID(), result.ConflictingID)
	})

	t.Run("shared examiner overlapping slot", func(t *testing.T) {
		other := booking(uuid.New(), teacher, 9, 120)
		checker := NewBookingConflictChecker(&stubAssignmentRepo{booked: []*domain.ExamAssignment{other}})

		result, err := checker.Check(ctx, candidate())

		require.NoError(t, err)
		require.True(t, result.HasConflict())
		assert.Equal(t, domain.ConflictTeacher, result.Reason)
	})

	t.Run("same room back to back is allowed", func(t *testing.T) {
		other := booking(room, uuid.New(), 12, 120) // candidate ends at 12:00
		checker := NewBookingConflictChecker(&stubAssignmentRepo{booked: []*domain.ExamAssignment{other}})

		result, err := checker.Check(ctx, candidate())

		require.NoError(t, err)
		assert.False(t, result.HasConflict())
	})

	t.Run("the candidate's own booking is skipped", func(t *testing.T) {
		c := candidate()
		now := time.Now()
		self := domain.RehydrateExamAssignment(
			c.AssignmentID, uuid.New(), "SE-31", domain.ExamTypeExam,
			teacher, uuid.New(), room,
			&date, 10, 120, nil, 0,
			domain.StatusAccepted, 3, now, now,
		)
		checker := NewBookingConflictChecker(&stubAssignmentRepo{booked: []*domain.ExamAssignment{self}})

		result, err := checker.Check(ctx, c)

		require.NoError(t, err)
		assert.False(t, result.HasConflict())
	})

	t.Run("room conflict wins over teacher conflict", func(t *testing.T) {
		other := booking(room, teacher, 10, 120)
		checker := NewBookingConflictChecker(&stubAssignmentRepo{booked: []*domain.ExamAssignment{other}})

		result, err := checker.Check(ctx, candidate())

		require.NoError(t, err)
		require.True(t, result.HasConflict())
		assert.Equal(t, domain.ConflictRoom, result.Reason)
	})
}
