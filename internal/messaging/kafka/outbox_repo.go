package kafka

import (
	"context"
	"database/sql"
	"slices"
	"time"
)

// MaxOutboxAttempts is how often a row is offered to the broker before it
// is parked as dead.
const MaxOutboxAttempts = 20

//go:generate mockgen -source=outbox_repo.go -destination=mock/outbox_repo_mock.go -package=mock

type OutboxRepository interface {
	WithTx(tx *sql.Tx) OutboxRepository
	Create(ctx context.Context, event OutboxEvent) error
	ClaimPending(ctx context.Context, limit int, lease time.Duration) ([]OutboxEvent, error)
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id string, reason string) error
}

type sqlExecutor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
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

func (r *outboxRepository) conn() sqlExecutor {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// Create must run on the transaction of the state change it announces, so
// the event exists if and only if that change committed.
func (r *outboxRepository) Create(ctx context.Context, event OutboxEvent) error {
	if err := ValidateOutboxEvent(event); err != nil {
		return err
	}

	_, err := r.conn().ExecContext(ctx, `
INSERT INTO outbox_events (
	id, company_id, request_id, aggregate_type, aggregate_id, event_type, topic, payload, status
) VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9)`,
		event.ID, event.CompanyID, event.RequestID, event.AggregateType,
		event.AggregateID, event.EventType, event.Topic, event.Payload, event.Status,
	)
	return err
}

// ClaimPending leases up to limit due rows to the caller. Rows locked by
// another worker are skipped, and a claimed row is not due again until the
// lease runs out, so concurrent relays never pick up the same row.
func (r *outboxRepository) ClaimPending(ctx context.Context, limit int, lease time.Duration) ([]OutboxEvent, error) {
	rows, err := r.conn().QueryContext(ctx, `
WITH due AS (
	SELECT id
	FROM outbox_events
	WHERE status IN ($1, $2)
		AND (next_retry_at IS NULL OR next_retry_at <= NOW())
	ORDER BY created_at
	LIMIT $3
	FOR UPDATE SKIP LOCKED
)
UPDATE outbox_events o
SET next_retry_at = NOW() + make_interval(secs => $4), updated_at = NOW()
FROM due
WHERE o.id = due.id
RETURNING
	o.id::text, o.company_id::text, COALESCE(o.request_id, ''), o.aggregate_type,
	o.aggregate_id, o.event_type, o.topic, o.payload, o.status, o.retry_count, o.created_at`,
		OutboxStatusPending, OutboxStatusFailed, limit, lease.Seconds(),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]OutboxEvent, 0, limit)
	for rows.Next() {
		var e OutboxEvent
		if err := rows.Scan(
			&e.ID, &e.CompanyID, &e.RequestID, &e.AggregateType,
			&e.AggregateID, &e.EventType, &e.Topic, &e.Payload, &e.Status, &e.RetryCount, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// RETURNING has no defined order.
	slices.SortStableFunc(events, func(a, b OutboxEvent) int { return a.CreatedAt.Compare(b.CreatedAt) })
	return events, nil
}

func (r *outboxRepository) MarkSent(ctx context.Context, id string) error {
	_, err := r.conn().ExecContext(ctx, `
UPDATE outbox_events
SET status = $2, processed_at = NOW(), error_message = NULL, next_retry_at = NULL, updated_at = NOW()
WHERE id = $1`, id, OutboxStatusSent)
	return err
}

// MarkFailed backs off linearly, 15s per attempt capped at 150s, and parks
// the row as dead after MaxOutboxAttempts.
func (r *outboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	_, err := r.conn().ExecContext(ctx, `
UPDATE outbox_events
SET
	retry_count = retry_count + 1,
	status = CASE WHEN retry_count + 1 >= $4 THEN $3 ELSE $2 END,
	error_message = LEFT($5, 500),
	next_retry_at = NOW() + (LEAST(retry_count + 1, 10) * INTERVAL '15 seconds'),
	updated_at = NOW()
WHERE id = $1`, id, OutboxStatusFailed, OutboxStatusDead, MaxOutboxAttempts, reason)
	return err
}
