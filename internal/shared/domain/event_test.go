package domain_test

import (
	"testing"
	"time"

	"github.com/fiesc/examsched/internal/shared/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNewBaseEvent(t *testing.T) {
	aggregateID := uuid.New()

	event := domain.NewBaseEvent(aggregateID, "ExamAssignment", "scheduling.assignment.created")

	assert.NotEqual(t, uuid.Nil, event.EventID())
	assert.Equal(t, aggregateID, event.AggregateID())
	assert.Equal(t, "ExamAssignment", event.AggregateType())
	assert.Equal(t, "scheduling.assignment.created", event.RoutingKey())
	assert.WithinDuration(t, time.Now().UTC(), event.OccurredAt(), time.Second)
	assert.Equal(t, domain.EventMetadata{}, event.Metadata())
}

func TestBaseEvent_SetMetadata(t *testing.T) {
	event := domain.NewBaseEvent(uuid.New(), "ExamAssignment", "scheduling.assignment.created")

	metadata := domain.EventMetadata{
		CorrelationID: uuid.New(),
		CausationID:   uuid.New(),
		ActorID:       uuid.New(),
	}
	event.SetMetadata(metadata)

	assert.Equal(t, metadata, event.Metadata())
}
