package domain

import (
	sharedDomain "github.com/fiesc/examsched/internal/shared/domain"
	"github.com/google/uuid"
)

const aggregateType = "ExamAssignment"

// AssignmentCreated is emitted when the secretariat drafts an assignment.
type AssignmentCreated struct {
	sharedDomain.BaseEvent
	AssignmentID uuid.UUID `json:"assignment_id"`
	DisciplineID uuid.UUID `json:"discipline_id"`
	StudentGroup string    `json:"student_group"`
	ExamType     string    `json:"exam_type"`
	ActorID      uuid.UUID `json:"actor_id"`
}

// NewAssignmentCreated creates an AssignmentCreated event.
func NewAssignmentCreated(a *ExamAssignment, actor Actor) *AssignmentCreated {
	return &AssignmentCreated{
		BaseEvent:    sharedDomain.NewBaseEvent(a.ID(), aggregateType, "scheduling.assignment.created"),
		AssignmentID: a.ID(),
		DisciplineID: a.DisciplineID(),
		StudentGroup: a.StudentGroup(),
		ExamType:     string(a.ExamType()),
		ActorID:      actor.ID,
	}
}

// StatusChanged is emitted on every workflow transition.
type StatusChanged struct {
	sharedDomain.BaseEvent
	AssignmentID uuid.UUID `json:"assignment_id"`
	From         string    `json:"from"`
	To           string    `json:"to"`
	ActorID      uuid.UUID `json:"actor_id"`
	ActorRole    string    `json:"actor_role"`
}

// NewStatusChanged creates a StatusChanged event.
func NewStatusChanged(a *ExamAssignment, from, to Status, actor Actor) *StatusChanged {
	return &StatusChanged{
		BaseEvent:    sharedDomain.NewBaseEvent(a.ID(), aggregateType, "scheduling.assignment.status_changed"),
		AssignmentID: a.ID(),
		From:         string(from),
		To:           string(to),
		ActorID:      actor.ID,
		ActorRole:    string(actor.Role),
	}
}
