package application

import (
	"testing"

	"github.com/fiesc/examsched/internal/shared/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type stampableEvent struct {
	domain.BaseEvent
}

func TestNewEventMetadata(t *testing.T) {
	actorID := uuid.New()

	metadata := NewEventMetadata(actorID)

	assert.NotEqual(t, uuid.Nil, metadata.CorrelationID)
	assert.NotEqual(t, uuid.Nil, metadata.CausationID)
	assert.Equal(t, actorID, metadata.ActorID)
}

func TestApplyEventMetadata(t *testing.T) {
	first := &stampableEvent{BaseEvent: domain.NewBaseEvent(uuid.New(), "ExamAssignment", "scheduling.assignment.created")}
	second := &stampableEvent{BaseEvent: domain.NewBaseEvent(uuid.New(), "ExamAssignment", "scheduling.assignment.status_changed")}
	metadata := NewEventMetadata(uuid.New())

	ApplyEventMetadata([]domain.DomainEvent{first, second}, metadata)

	assert.Equal(t, metadata, first.Metadata())
	assert.Equal(t, metadata, second.Metadata())
}
