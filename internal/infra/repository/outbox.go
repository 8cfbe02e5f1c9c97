package repository

import (
	"context"
	"time"

	"washbook/internal/infra"
	"washbook/internal/infra/db"
	"washbook/internal/usecase/shared"

	"github.com/google/uuid"
)

type OutboxRepository struct {
	db db.DBTX
}

func NewOutboxRepository(dbtx db.DBTX) *OutboxRepository {
	return &OutboxRepository{db: dbtx}
}

const enqueueJobSQL = `
INSERT INTO outbox_jobs (id, kind, payload, status, attempts, run_at, created_at, updated_at)
VALUES ($1, $2, $3, 'pending', 0, $4, now(), now())`

func (r *OutboxRepository) Enqueue(ctx context.Context, tx db.DBTX, kind string, payload []byte, runAt time.Time) error {
	if _, err := tx.Exec(ctx, enqueueJobSQL, uuid.New(), kind, payload, runAt); err != nil {
		return infra.WrapRepoErr("failed to enqueue outbox job", err)
	}
	return nil
}

// A claim that was never finalized (worker crashed between transactions)
// must not strand the job: anything stuck in processing beyond the claim
// timeout goes back to pending before this poll selects its batch.
const reclaimStaleSQL = `
UPDATE outbox_jobs
SET status = 'pending', updated_at = now()
WHERE status = 'processing' AND updated_at < $1`

// SKIP LOCKED lets multiple workers poll without blocking each other.
const claimPendingSQL = `
UPDATE outbox_jobs
SET status = 'processing', updated_at = now()
WHERE id IN (
    SELECT id FROM outbox_jobs
    WHERE status = 'pending' AND run_at <= $2
    ORDER BY run_at
    LIMIT $1
    FOR UPDATE SKIP LOCKED
)
RETURNING id, kind, payload, attempts, run_at`

func (r *OutboxRepository) ClaimPending(ctx context.Context, tx db.DBTX, limit int32, now time.Time, claimTimeout time.Duration) ([]shared.OutboxJob, error) {
	if _, err := tx.Exec(ctx, reclaimStaleSQL, now.Add(-claimTimeout)); err != nil {
		return nil, infra.WrapRepoErr("failed to reclaim stale outbox jobs", err)
	}

	rows, err := tx.Query(ctx, claimPendingSQL, limit, now)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to claim pending outbox jobs", err)
	}
	defer rows.Close()

	var jobs []shared.OutboxJob
	for rows.Next() {
		var j shared.OutboxJob
		if err := rows.Scan(&j.ID, &j.Kind, &j.Payload, &j.Attempts, &j.RunAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan outbox job", err)
		}
		jobs = append(jobs, j)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read outbox jobs", err)
	}
	return jobs, nil
}

func (r *OutboxRepository) MarkDone(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	_, err := tx.Exec(ctx, `UPDATE outbox_jobs SET status = 'done', updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to mark outbox job done", err)
	}
	return nil
}

const markFailedSQL = `
UPDATE outbox_jobs
SET status = CASE WHEN $3::timestamptz IS NULL THEN 'dead' ELSE 'pending' END,
    attempts = attempts + 1,
    last_error = $2,
    run_at = COALESCE($3, run_at),
    updated_at = now()
WHERE id = $1`

func (r *OutboxRepository) MarkFailed(ctx context.Context, tx db.DBTX, id uuid.UUID, lastError string, retryAt *time.Time) error {
	_, err := tx.Exec(ctx, markFailedSQL, id, lastError, retryAt)
	if err != nil {
		return infra.WrapRepoErr("failed to mark outbox job failed", err)
	}
	return nil
}
