package queries

import (
	"context"
	"time"

	"github.com/fiesc/examsched/internal/scheduling/domain"
	"github.com/google/uuid"
)

// AssignmentDTO is a data transfer object for exam assignments.
type AssignmentDTO struct {
	ID              uuid.UUID
	DisciplineID    uuid.UUID
	StudentGroup    string
	ExamType        string
	MainTeacherID   uuid.UUID
	SecondTeacherID uuid.UUID
	RoomID          uuid.UUID
	ProposedDate    *time.Time
	ProposedHour    int
	DurationMins    int
	AlternateDate   *time.Time
	AlternateHour   int
	Status          string
	Version         int
	UpdatedAt       time.Time
}

func toAssignmentDTO(a *domain.ExamAssignment) AssignmentDTO {
	return AssignmentDTO{
		ID:              a.ID(),
		DisciplineID:    a.DisciplineID(),
		StudentGroup:    a.StudentGroup(),
		ExamType:        string(a.ExamType()),
		MainTeacherID:   a.MainTeacherID(),
		SecondTeacherID: a.SecondTeacherID(),
		RoomID:          a.RoomID(),
		ProposedDate:    a.ProposedDate(),
		ProposedHour:    a.ProposedHour(),
		DurationMins:    a.DurationMins(),
		AlternateDate:   a.AlternateDate(),
		AlternateHour:   a.AlternateHour(),
		Status:          string(a.Status()),
		Version:         a.Version(),
		UpdatedAt:       a.UpdatedAt(),
	}
}

// ListAssignmentsQuery contains the parameters for listing assignments.
// Zero-value fields do not filter.
type ListAssignmentsQuery struct {
	StudentGroup string
	TeacherID    uuid.UUID
	DisciplineID uuid.UUID
	Statuses     []string
}

// ListAssignmentsHandler handles the ListAssignmentsQuery.
type ListAssignmentsHandler struct {
	repo domain.AssignmentRepository
}

// NewListAssignmentsHandler creates a new ListAssignmentsHandler.
func NewListAssignmentsHandler(repo domain.AssignmentRepository) *ListAssignmentsHandler {
	return &ListAssignmentsHandler{repo: repo}
}

// Handle executes the ListAssignmentsQuery.
func (h *ListAssignmentsHandler) Handle(ctx context.Context, query ListAssignmentsQuery) ([]AssignmentDTO, error) {
	filter := domain.Filter{
		StudentGroup: query.StudentGroup,
		TeacherID:    query.TeacherID,
		DisciplineID: query.DisciplineID,
	}
	for _, s := range query.Statuses {
		status := domain.Status(s)
		if !status.IsValid() {
			return nil, &domain.ValidationError{Field: "status", Reason: "unknown status " + s}
		}
		filter.Statuses = append(filter.Statuses, status)
	}

	assignments, err := h.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	dtos := make([]AssignmentDTO, 0, len(assignments))
	for _, a := range assignments {
		dtos = append(dtos, toAssignmentDTO(a))
	}

	return dtos, nil
}
