package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/fiesc/examsched/internal/shared/infrastructure/outbox"
	"github.com/google/uuid"
)

// OutboxRepository implements outbox.Repository on SQLite, keeping the
// event trail local when no broker is configured.
type OutboxRepository struct {
	db *sql.DB
}

// NewOutboxRepository creates a SQLite outbox repository.
func NewOutboxRepository(db *sql.DB) *OutboxRepository {
	return &OutboxRepository{db: db}
}

// Save stores a new outbox message.
func (r *OutboxRepository) Save(ctx context.Context, msg *outbox.Message) error {
	query := `
		INSERT INTO outbox (event_id, aggregate_type, aggregate_id, routing_key, payload, metadata, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`

	exec := executorFrom(ctx, r.db)
	err := exec.QueryRowContext(ctx, query,
		msg.EventID.String(),
		msg.AggregateType,
		msg.AggregateID.String(),
		msg.RoutingKey,
		[]byte(msg.Payload),
		[]byte(msg.Metadata),
		encodeTime(msg.CreatedAt),
	).Scan(&msg.ID)
	if err != nil {
		return fmt.Errorf("saving outbox message: %w", err)
	}
	return nil
}

// SaveBatch stores multiple outbox messages.
func (r *OutboxRepository) SaveBatch(ctx context.Context, msgs []*outbox.Message) error {
	for _, msg := range msgs {
		if err := r.Save(ctx, msg); err != nil {
			return err
		}
	}
	return nil
}

// GetUnpublished retrieves unpublished messages ordered by creation time.
// Messages with a scheduled retry in the future are skipped.
func (r *OutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*outbox.Message, error) {
	query := `
		SELECT id, event_id, aggregate_type, aggregate_id, routing_key,
		       payload, metadata, created_at, published_at, retry_count, last_error
		FROM outbox
		WHERE published_at IS NULL AND (next_retry_at IS NULL OR next_retry_at <= ?)
		ORDER BY created_at
		LIMIT ?
	`

	exec := executorFrom(ctx, r.db)
	rows, err := exec.QueryContext(ctx, query, encodeTime(time.Now()), limit)
	if err != nil {
		return nil, fmt.Errorf("reading outbox: %w", err)
	}
	defer rows.Close()

	msgs := make([]*outbox.Message, 0, limit)
	for rows.Next() {
		var (
			msg                  outbox.Message
			eventID, aggregateID string
			createdAt            string
			publishedAt          sql.NullString
		)
		err := rows.Scan(
			&msg.ID, &eventID, &msg.AggregateType, &aggregateID, &msg.RoutingKey,
			&msg.Payload, &msg.Metadata, &createdAt, &publishedAt, &msg.RetryCount, &msg.LastError,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning outbox message: %w", err)
		}

		msg.EventID, err = uuid.Parse(eventID)
		if err != nil {
			return nil, err
		}
		msg.AggregateID, err = uuid.Parse(aggregateID)
		if err != nil {
			return nil, err
		}
		msg.CreatedAt, err = decodeTime(createdAt)
		if err != nil {
			return nil, err
		}
		if publishedAt.Valid {
			published, err := decodeTime(publishedAt.String)
			if err != nil {
				return nil, err
			}
			msg.PublishedAt = &published
		}

		msgs = append(msgs, &msg)
	}

	return msgs, rows.Err()
}

// MarkPublished marks a message as successfully published.
func (r *OutboxRepository) MarkPublished(ctx context.Context, id int64) error {
	exec := executorFrom(ctx, r.db)
	_, err := exec.ExecContext(ctx,
		`UPDATE outbox SET published_at = ?, last_error = NULL WHERE id = ?`,
		encodeTime(time.Now()), id)
	return err
}

// MarkFailed records a publish failure and schedules the next retry.
func (r *OutboxRepository) MarkFailed(ctx context.Context, id int64, errMsg string, nextRetryAt time.Time) error {
	exec := executorFrom(ctx, r.db)
	_, err := exec.ExecContext(ctx,
		`UPDATE outbox SET retry_count = retry_count + 1, last_error = ?, next_retry_at = ? WHERE id = ?`,
		errMsg, encodeTime(nextRetryAt), id)
	return err
}

// DeleteOld removes published messages older than the retention period.
func (r *OutboxRepository) DeleteOld(ctx context.Context, olderThanDays int) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -olderThanDays)
	exec := executorFrom(ctx, r.db)
	res, err := exec.ExecContext(ctx,
		`DELETE FROM outbox WHERE published_at IS NOT NULL AND published_at < ?`,
		encodeTime(cutoff))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
