package repository

import (
	"context"
	"errors"
	"time"

	"washbook/internal/domain/loyalty"
	"washbook/internal/infra"
	"washbook/internal/infra/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type LoyaltyRepository struct {
	db db.DBTX
}

func NewLoyaltyRepository(dbtx db.DBTX) *LoyaltyRepository {
	return &LoyaltyRepository{db: dbtx}
}

const ensureAccountSQL = `
INSERT INTO loyalty_accounts (user_id, points, total_services, free_services_earned, free_services_used, created_at, updated_at)
VALUES ($1, 0, 0, 0, 0, now(), now())
ON CONFLICT (user_id) DO NOTHING`

func (r *LoyaltyRepository) EnsureAccount(ctx context.Context, tx db.DBTX, userID uuid.UUID) error {
	if _, err := tx.Exec(ctx, ensureAccountSQL, userID); err != nil {
		return infra.WrapRepoErr("failed to ensure loyalty account", err)
	}
	return nil
}

const creditPointsSQL = `
UPDATE loyalty_accounts
SET points = points + $2, updated_at = now()
WHERE user_id = $1
RETURNING points`

func (r *LoyaltyRepository) Credit(ctx context.Context, tx db.DBTX, userID uuid.UUID, points int) (int, error) {
	var balance int
	err := tx.QueryRow(ctx, creditPointsSQL, userID, points).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, infra.WrapRepoErr("loyalty account not found", nil, infra.KindNotFound)
		}
		return 0, infra.WrapRepoErr("failed to credit loyalty points", err)
	}
	return balance, nil
}

// The balance guard lives in the WHERE clause so concurrent redemptions
// can never drive points negative.
const debitPointsSQL = `
UPDATE loyalty_accounts
SET points = points - $2, updated_at = now()
WHERE user_id = $1 AND points >= $2
RETURNING points`

func (r *LoyaltyRepository) Debit(ctx context.Context, tx db.DBTX, userID uuid.UUID, points int) (int, bool, error) {
	var remaining int
	err := tx.QueryRow(ctx, debitPointsSQL, userID, points).Scan(&remaining)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, infra.WrapRepoErr("failed to debit loyalty points", err)
	}
	return remaining, true, nil
}

const totalEarnedSQL = `
SELECT COALESCE(SUM(points), 0)
FROM loyalty_transactions
WHERE user_id = $1 AND kind = 'earned'`

func (r *LoyaltyRepository) TotalEarned(ctx context.Context, tx db.DBTX, userID uuid.UUID) (int, error) {
	var total int
	if err := tx.QueryRow(ctx, totalEarnedSQL, userID).Scan(&total); err != nil {
		return 0, infra.WrapRepoErr("failed to sum earned loyalty points", err)
	}
	return total, nil
}

const recordServiceSQL = `
UPDATE loyalty_accounts
SET total_services = total_services + 1, last_service_at = $2, updated_at = now()
WHERE user_id = $1`

func (r *LoyaltyRepository) RecordService(ctx context.Context, tx db.DBTX, userID uuid.UUID, at time.Time) error {
	tag, err := tx.Exec(ctx, recordServiceSQL, userID, at)
	if err != nil {
		return infra.WrapRepoErr("failed to record loyalty service", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("loyalty account not found", nil, infra.KindNotFound)
	}
	return nil
}

const hasAccrualSQL = `
SELECT EXISTS (
    SELECT 1 FROM loyalty_transactions
    WHERE appointment_id = $1 AND kind = 'earned'
)`

func (r *LoyaltyRepository) HasAccrualForAppointment(ctx context.Context, tx db.DBTX, appointmentID uuid.UUID) (bool, error) {
	var exists bool
	if err := tx.QueryRow(ctx, hasAccrualSQL, appointmentID).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check loyalty accrual", err)
	}
	return exists, nil
}

const insertTransactionSQL = `
INSERT INTO loyalty_transactions (
    id, user_id, kind, points, reason, reward_id, appointment_id, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, now())
RETURNING id`

func (r *LoyaltyRepository) InsertTransaction(ctx context.Context, tx db.DBTX, trx *loyalty.Transaction) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, insertTransactionSQL,
		trx.ID(),
		trx.UserID(),
		trx.Kind().String(),
		trx.Points(),
		trx.Reason(),
		trx.RewardID(),
		trx.AppointmentID(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to insert loyalty transaction", err)
	}
	return id, nil
}

const createTierSQL = `
INSERT INTO loyalty_tiers (id, name, min_points, max_points, discount_percent, color, is_active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
RETURNING id`

func (r *LoyaltyRepository) CreateTier(ctx context.Context, tx db.DBTX, t *loyalty.Tier) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, createTierSQL,
		t.ID(),
		t.Name(),
		t.MinPoints(),
		t.MaxPoints(),
		t.DiscountPercent(),
		t.Color(),
		t.IsActive(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create loyalty tier", err)
	}
	return id, nil
}

const createRewardSQL = `
INSERT INTO loyalty_rewards (id, name, description, reward_type, points_required, reward_value_cents, service_id, is_active, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now(), now())
RETURNING id`

func (r *LoyaltyRepository) CreateReward(ctx context.Context, tx db.DBTX, rw *loyalty.Reward) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, createRewardSQL,
		rw.ID(),
		rw.Name(),
		rw.Description(),
		rw.Type().String(),
		rw.PointsRequired(),
		rw.RewardValueCents(),
		rw.ServiceID(),
		rw.IsActive(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create loyalty reward", err)
	}
	return id, nil
}
