package kafka

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	OutboxStatusPending = "pending"
	OutboxStatusSent    = "sent"
	OutboxStatusFailed  = "failed"
	// OutboxStatusDead rows exhausted MaxOutboxAttempts and are never polled again.
	OutboxStatusDead = "dead"
)

const (
	MaxOutboxAttempts  = 10
	maxErrorMessageLen = 500
)

type OutboxEvent struct {
	ID            string
	RequestID     string
	AggregateType string
	AggregateID   string
	EventType     string
	Topic         string
	Payload       []byte
	Status        string
	RetryCount    int
	NextRetryAt   time.Time
}

// NewOutboxEvent marshals payload into a pending event ready to be stored.
func NewOutboxEvent(requestID, aggregateType, aggregateID, eventType, topic string, payload any) (OutboxEvent, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return OutboxEvent{}, fmt.Errorf("marshal %s payload: %w", eventType, err)
	}
	event := OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     requestID,
		AggregateType: aggregateType,
		AggregateID:   aggregateID,
		EventType:     eventType,
		Topic:         topic,
		Payload:       raw,
		Status:        OutboxStatusPending,
	}
	return event, ValidateOutboxEvent(event)
}

//go:generate mockgen -source=outbox_repo.go -destination=mock/outbox_repo_mock.go -package=mock
type OutboxRepository interface {
	WithTx(tx *sql.Tx) OutboxRepository
	Create(ctx context.Context, event OutboxEvent) error
	ListPending(ctx context.Context, limit int) ([]OutboxEvent, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, reason string) error
	Requeue(ctx context.Context, aggregateType, aggregateID string) (int64, error)
}

type outboxRepository struct {
	db *sql.DB
	tx *sql.Tx
}

func NewOutboxRepository(db *sql.DB) OutboxRepository {
	return &outboxRepository{db: db}
}

func (r *outboxRepository) WithTx(tx *sql.Tx) OutboxRepository {
	return &outboxRepository{db: r.db, tx: tx}
}

func (r *outboxRepository) Create(ctx context.Context, event OutboxEvent) error {
	if err := ValidateOutboxEvent(event); err != nil {
		return err
	}

	const query = `
INSERT INTO outbox_events (
	id, request_id, aggregate_type, aggregate_id, event_type, topic, payload, status, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
`
	_, err := r.execer().ExecContext(
		ctx, query,
		event.ID, event.RequestID, event.AggregateType,
		event.AggregateID, event.EventType, event.Topic, event.Payload, event.Status,
	)
	return err
}

// ListPending returns events due for delivery, oldest first. Failed events
// come back once their next_retry_at has passed. An event is held back while
// an older undelivered event of the same aggregate exists, so consumers see a
// visit's registration before its approval and exit.
func (r *outboxRepository) ListPending(ctx context.Context, limit int) ([]OutboxEvent, error) {
	const query = `
SELECT
	o.id,
	COALESCE(o.request_id, ''),
	o.aggregate_type,
	o.aggregate_id,
	o.event_type,
	o.topic,
	o.payload,
	o.status,
	o.retry_count,
	COALESCE(o.next_retry_at, o.created_at)
FROM outbox_events o
WHERE o.status IN ($1, $2)
	AND (o.next_retry_at IS NULL OR o.next_retry_at <= NOW())
	AND NOT EXISTS (
		SELECT 1 FROM outbox_events prev
		WHERE prev.aggregate_type = o.aggregate_type
			AND prev.aggregate_id = o.aggregate_id
			AND prev.status IN ($1, $2)
			AND prev.created_at < o.created_at
	)
ORDER BY o.created_at ASC
LIMIT $3
`
	rows, err := r.db.QueryContext(ctx, query, OutboxStatusPending, OutboxStatusFailed, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]OutboxEvent, 0, limit)
	for rows.Next() {
		var e OutboxEvent
		if err := rows.Scan(
			&e.ID,
			&e.RequestID,
			&e.AggregateType,
			&e.AggregateID,
			&e.EventType,
			&e.Topic,
			&e.Payload,
			&e.Status,
			&e.RetryCount,
			&e.NextRetryAt,
		); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *outboxRepository) MarkSent(ctx context.Context, id string) error {
	const query = `
UPDATE outbox_events
SET status = $2, processed_at = NOW(), error_message = NULL, updated_at = NOW()
WHERE id = $1
`
	_, err := r.db.ExecContext(ctx, query, id, OutboxStatusSent)
	return err
}

// MarkFailed schedules a retry with linear backoff capped at 10 steps of 15s.
// The attempt that reaches MaxOutboxAttempts moves the event to dead instead.
func (r *outboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	if len(reason) > maxErrorMessageLen {
		reason = reason[:maxErrorMessageLen]
	}
	const query = `
UPDATE outbox_events
SET
	status = CASE WHEN retry_count + 1 >= $4 THEN $5 ELSE $2 END,
	retry_count = retry_count + 1,
	error_message = $3,
	next_retry_at = NOW() + (LEAST(retry_count + 1, 10) * INTERVAL '15 seconds'),
	updated_at = NOW()
WHERE id = $1
`
	_, err := r.db.ExecContext(ctx, query, id, OutboxStatusFailed, reason, MaxOutboxAttempts, OutboxStatusDead)
	return err
}

// Requeue puts dead events of one aggregate back in the queue with a fresh
// attempt budget. It returns how many events were revived.
func (r *outboxRepository) Requeue(ctx context.Context, aggregateType, aggregateID string) (int64, error) {
	const query = `
UPDATE outbox_events
SET status = $3, retry_count = 0, next_retry_at = NULL, updated_at = NOW()
WHERE aggregate_type = $1 AND aggregate_id = $2 AND status = $4
`
	res, err := r.db.ExecContext(ctx, query, aggregateType, aggregateID, OutboxStatusPending, OutboxStatusDead)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *outboxRepository) execer() interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

func ValidateOutboxEvent(event OutboxEvent) error {
	if event.ID == "" {
		return errors.New("outbox id is required")
	}
	if event.Topic == "" {
		return errors.New("outbox topic is required")
	}
	if len(event.Payload) == 0 {
		return errors.New("outbox payload is required")
	}
	switch event.Status {
	case OutboxStatusPending, OutboxStatusSent, OutboxStatusFailed, OutboxStatusDead:
		return nil
	default:
		return fmt.Errorf("invalid outbox status: %s", event.Status)
	}
}
