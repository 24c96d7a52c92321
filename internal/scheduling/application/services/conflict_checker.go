package services

import (
	"context"

	"github.com/fiesc/examsched/internal/scheduling/domain"
	"github.com/google/uuid"
)

// BookingConflictChecker detects room and examiner double-bookings by
// scanning the day's confirmed bookings. Only CONFIRMED rows count: an
// ACCEPTED peer holds no resource yet, and letting it veto would leave
// two overlapping accepted assignments blocking each other with neither
// able to confirm. The per-room and per-teacher locks around Confirm
// serialize racing callers, so the loser re-checks after the winner's
// commit and sees the CONFIRMED row. Must run inside the confirming
// transaction; see domain.ConflictChecker.
type BookingConflictChecker struct {
	repo domain.AssignmentRepository
}

// NewBookingConflictChecker creates a new BookingConflictChecker.
func NewBookingConflictChecker(repo domain.AssignmentRepository) *BookingConflictChecker {
	return &BookingConflictChecker{repo: repo}
}

// Check reports the first booking colliding with the candidate slot.
// Room conflicts are reported before teacher conflicts.
func (c *BookingConflictChecker) Check(ctx context.Context, candidate domain.Candidate) (domain.ConflictResult, error) {
	booked, err := c.repo.FindBookedOn(ctx, candidate.Date)
	if err != nil {
		return domain.ConflictResult{}, err
	}

	for _, other := range booked {
		if other.ID() == candidate.AssignmentID {
			continue
		}
		if !overlaps(candidate, other) {
			continue
		}

		if candidate.RoomID != uuid.Nil && other.RoomID() == candidate.RoomID {
			return domain.ConflictResult{ConflictingID: other.ID(), Reason: domain.ConflictRoom}, nil
		}
		if sharesTeacher(candidate.TeacherIDs, other) {
			return domain.ConflictResult{ConflictingID: other.ID(), Reason: domain.ConflictTeacher}, nil
		}
	}

	return domain.ConflictResult{}, nil
}

func overlaps(candidate domain.Candidate, other *domain.ExamAssignment) bool {
	otherStart := other.EffectiveHour() * 60
	otherEnd := otherStart + other.DurationMins()
	return candidate.StartMinute() < otherEnd && otherStart < candidate.EndMinute()
}

func sharesTeacher(teacherIDs []uuid.UUID, other *domain.ExamAssignment) bool {
	for _, id := range teacherIDs {
		if other.IsBoundTeacher(id) {
			return true
		}
	}
	return false
}
