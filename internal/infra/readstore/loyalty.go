package readstore

import (
	"context"

	"washbook/internal/infra"
	"washbook/internal/infra/db"
	"washbook/internal/usecase/queries"
	"washbook/internal/usecase/shared"

	"github.com/google/uuid"
)

type LoyaltyReadStore struct {
	db db.DBTX
}

func NewLoyaltyReadStore(dbtx db.DBTX) *LoyaltyReadStore {
	return &LoyaltyReadStore{db: dbtx}
}

const accountByUserSQL = `
SELECT user_id, points, total_services, free_services_earned, free_services_used, last_service_at
FROM loyalty_accounts
WHERE user_id = $1`

func (r *LoyaltyReadStore) AccountByUserID(ctx context.Context, userID uuid.UUID) (*shared.AccountSnapshot, error) {
	var snap shared.AccountSnapshot
	err := r.db.QueryRow(ctx, accountByUserSQL, userID).Scan(
		&snap.UserID, &snap.Points, &snap.TotalServices,
		&snap.FreeServicesEarned, &snap.FreeServicesUsed, &snap.LastServiceAt)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("loyalty account not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find loyalty account", err)
	}
	return &snap, nil
}

const activeTiersSQL = `
SELECT id, name, min_points, max_points, discount_percent, color
FROM loyalty_tiers
WHERE is_active
ORDER BY min_points`

func (r *LoyaltyReadStore) ActiveTiers(ctx context.Context) ([]shared.TierSnapshot, error) {
	rows, err := r.db.Query(ctx, activeTiersSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list loyalty tiers", err)
	}
	defer rows.Close()

	var tiers []shared.TierSnapshot
	for rows.Next() {
		var t shared.TierSnapshot
		if err := rows.Scan(&t.ID, &t.Name, &t.MinPoints, &t.MaxPoints,
			&t.DiscountPercent, &t.Color); err != nil {
			return nil, infra.WrapRepoErr("failed to scan loyalty tier", err)
		}
		tiers = append(tiers, t)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read loyalty tiers", err)
	}
	return tiers, nil
}

const findRewardByIDSQL = `
SELECT id, name, description, reward_type, points_required, reward_value_cents, service_id, is_active
FROM loyalty_rewards
WHERE id = $1`

func (r *LoyaltyReadStore) RewardByID(ctx context.Context, id uuid.UUID) (*shared.RewardSnapshot, error) {
	var snap shared.RewardSnapshot
	err := r.db.QueryRow(ctx, findRewardByIDSQL, id).Scan(
		&snap.ID, &snap.Name, &snap.Description, &snap.Type,
		&snap.PointsRequired, &snap.RewardValueCents, &snap.ServiceID, &snap.IsActive)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("loyalty reward not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find loyalty reward", err)
	}
	return &snap, nil
}

const activeRewardsSQL = `
SELECT id, name, description, reward_type, points_required, reward_value_cents, service_id
FROM loyalty_rewards
WHERE is_active
ORDER BY points_required`

func (r *LoyaltyReadStore) ActiveRewards(ctx context.Context) ([]queries.RewardView, error) {
	rows, err := r.db.Query(ctx, activeRewardsSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list loyalty rewards", err)
	}
	defer rows.Close()

	var rewards []queries.RewardView
	for rows.Next() {
		var v queries.RewardView
		if err := rows.Scan(&v.ID, &v.Name, &v.Description, &v.Type,
			&v.PointsRequired, &v.RewardValueCents, &v.ServiceID); err != nil {
			return nil, infra.WrapRepoErr("failed to scan loyalty reward", err)
		}
		rewards = append(rewards, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read loyalty rewards", err)
	}
	return rewards, nil
}

const listTransactionsSQL = `
SELECT id, kind, points, reason, reward_id, appointment_id, created_at
FROM loyalty_transactions
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2`

func (r *LoyaltyReadStore) TransactionsByUser(ctx context.Context, userID uuid.UUID, limit int32) ([]queries.LoyaltyTransactionView, error) {
	rows, err := r.db.Query(ctx, listTransactionsSQL, userID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list loyalty transactions", err)
	}
	defer rows.Close()

	var trxs []queries.LoyaltyTransactionView
	for rows.Next() {
		var v queries.LoyaltyTransactionView
		if err := rows.Scan(&v.ID, &v.Kind, &v.Points, &v.Reason,
			&v.RewardID, &v.AppointmentID, &v.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan loyalty transaction", err)
		}
		trxs = append(trxs, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read loyalty transactions", err)
	}
	return trxs, nil
}
