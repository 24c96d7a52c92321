package outbox_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fiesc/examsched/internal/shared/infrastructure/outbox"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockRepository is a test double for outbox.Repository
type mockRepository struct {
	mu           sync.Mutex
	messages     []*outbox.Message
	publishedIDs []int64
	failedIDs    []int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		messages:     make([]*outbox.Message, 0),
		publishedIDs: make([]int64, 0),
		failedIDs:    make([]int64, 0),
	}
}

func (r *mockRepository) Save(ctx context.Context, msg *outbox.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	msg.ID = int64(len(r.messages) + 1)
	r.messages = append(r.messages, msg)
	return nil
}

func (r *mockRepository) SaveBatch(ctx context.Context, msgs []*outbox.Message) error {
	for _, msg := range msgs {
		if err := r.Save(ctx, msg); err != nil {
			return err
		}
	}
	return nil
}

func (r *mockRepository) GetUnpublished(ctx context.Context, limit int) ([]*outbox.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*outbox.Message
	for _, msg := range r.messages {
		if msg.PublishedAt == nil {
			result = append(result, msg)
			if len(result) >= limit {
				break
			}
		}
	}
	return result, nil
}

func (r *mockRepository) MarkPublished(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.publishedIDs = append(r.publishedIDs, id)
	for _, msg := range r.messages {
		if msg.ID == id {
			now := time.Now()
			msg.PublishedAt = &now
			break
		}
	}
	return nil
}

func (r *mockRepository) MarkFailed(ctx context.Context, id int64, errMsg string, nextRetryAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failedIDs = append(r.failedIDs, id)
	for _, msg := range r.messages {
		if msg.ID == id {
			msg.RetryCount++
			msg.LastError = &errMsg
			break
		}
	}
	return nil
}

func (r *mockRepository) DeleteOld(ctx context.Context, olderThanDays int) (int64, error) {
	return 0, nil
}

// mockPublisher is a test double for eventbus.Publisher
type mockPublisher struct {
	mu        sync.Mutex
	published []string
	failWith  error
}

func (p *mockPublisher) Publish(ctx context.Context, routingKey string, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failWith != nil {
		return p.failWith
	}
	p.published = append(p.published, routingKey)
	return nil
}

func (p *mockPublisher) Close() error { return nil }

func stageMessage(t *testing.T, repo *mockRepository, routingKey string) *outbox.Message {
	t.Helper()
	msg := &outbox.Message{
		EventID:       uuid.New(),
		AggregateType: "ExamAssignment",
		AggregateID:   uuid.New(),
		RoutingKey:    routingKey,
		Payload:       json.RawMessage(`{}`),
		Metadata:      json.RawMessage(`{}`),
		CreatedAt:     time.Now(),
	}
	require.NoError(t, repo.Save(context.Background(), msg))
	return msg
}

func TestProcessor_ProcessOnce_PublishesStagedMessages(t *testing.T) {
	repo := newMockRepository()
	publisher := &mockPublisher{}
	stageMessage(t, repo, "scheduling.assignment.created")
	stageMessage(t, repo, "scheduling.assignment.status_changed")

	processor := outbox.NewProcessor(repo, publisher, outbox.DefaultProcessorConfig(), nil)

	require.NoError(t, processor.ProcessOnce(context.Background()))

	assert.Equal(t, []string{"scheduling.assignment.created", "scheduling.assignment.status_changed"}, publisher.published)
	assert.Len(t, repo.publishedIDs, 2)
}

func TestProcessor_ProcessOnce_MarksFailedOnPublishError(t *testing.T) {
	repo := newMockRepository()
	publisher := &mockPublisher{failWith: errors.New("broker down")}
	msg := stageMessage(t, repo, "scheduling.assignment.created")

	processor := outbox.NewProcessor(repo, publisher, outbox.DefaultProcessorConfig(), nil)

	require.NoError(t, processor.ProcessOnce(context.Background()))

	assert.Empty(t, repo.publishedIDs)
	require.Len(t, repo.failedIDs, 1)
	assert.Equal(t, msg.ID, repo.failedIDs[0])
	assert.Equal(t, 1, msg.RetryCount)
	require.NotNil(t, msg.LastError)
	assert.Equal(t, "broker down", *msg.LastError)
}

func TestProcessor_StartStop(t *testing.T) {
	repo := newMockRepository()
	publisher := &mockPublisher{}
	stageMessage(t, repo, "scheduling.assignment.created")

	config := outbox.DefaultProcessorConfig()
	config.PollInterval = 10 * time.Millisecond
	processor := outbox.NewProcessor(repo, publisher, config, nil)

	ctx := context.Background()
	require.NoError(t, processor.Start(ctx))
	// Idempotent second start.
	require.NoError(t, processor.Start(ctx))

	assert.Eventually(t, func() bool {
		repo.mu.Lock()
		defer repo.mu.Unlock()
		return len(repo.publishedIDs) == 1
	}, time.Second, 10*time.Millisecond)

	processor.Stop()
	processor.Stop()
}
