package queries

import (
	"context"

	"washbook/internal/domain/loyalty"
	"washbook/internal/infra"
	"washbook/internal/usecase/shared"

	"github.com/google/uuid"
)

type LoyaltyQueries interface {
	Status(ctx context.Context, userID uuid.UUID) (*LoyaltyStatusView, error)
	Tiers(ctx context.Context) ([]TierView, error)
	Rewards(ctx context.Context) ([]RewardView, error)
	Transactions(ctx context.Context, userID uuid.UUID, limit int) ([]LoyaltyTransactionView, error)
}

type LoyaltyViewRepo interface {
	AccountByUserID(ctx context.Context, userID uuid.UUID) (*shared.AccountSnapshot, error)
	ActiveTiers(ctx context.Context) ([]shared.TierSnapshot, error)
	ActiveRewards(ctx context.Context) ([]RewardView, error)
	TransactionsByUser(ctx context.Context, userID uuid.UUID, limit int32) ([]LoyaltyTransactionView, error)
}

type loyaltyQueriesImpl struct {
	repo LoyaltyViewRepo
}

func NewLoyaltyQueries(repo LoyaltyViewRepo) LoyaltyQueries {
	return &loyaltyQueriesImpl{repo: repo}
}

// Status assembles the customer's loyalty standing. An absent account reads
// as a zero-point account, not an error; enrollment happens lazily on first
// accrual.
func (q *loyaltyQueriesImpl) Status(ctx context.Context, userID uuid.UUID) (*LoyaltyStatusView, error) {
	account, err := q.repo.AccountByUserID(ctx, userID)
	if err != nil {
		if !infra.IsKind(err, infra.KindNotFound) {
			return nil, err
		}
		account = &shared.AccountSnapshot{UserID: userID}
	}

	snaps, err := q.repo.ActiveTiers(ctx)
	if err != nil {
		return nil, err
	}
	tiers := make([]*loyalty.Tier, 0, len(snaps))
	for _, s := range snaps {
		t, terr := loyalty.NewTier(s.ID, s.Name, s.MinPoints, s.MaxPoints, s.DiscountPercent, s.Color, true)
		if terr != nil {
			return nil, terr
		}
		tiers = append(tiers, t)
	}

	current, next, pointsToNext := loyalty.ResolveTier(tiers, account.Points)

	rewards, err := q.repo.ActiveRewards(ctx)
	if err != nil {
		return nil, err
	}
	affordable := make([]RewardView, 0, len(rewards))
	for _, r := range rewards {
		if r.PointsRequired <= account.Points {
			affordable = append(affordable, r)
		}
	}

	view := &LoyaltyStatusView{
		Points:             account.Points,
		TotalServices:      account.TotalServices,
		FreeServicesEarned: account.FreeServicesEarned,
		FreeServicesUsed:   account.FreeServicesUsed,
		LastServiceAt:      account.LastServiceAt,
		AffordableRewards:  affordable,
	}
	if current != nil {
		view.CurrentTier = tierToView(current)
	}
	if next != nil {
		view.NextTier = tierToView(next)
		view.PointsToNextTier = &pointsToNext
	}
	return view, nil
}

func (q *loyaltyQueriesImpl) Tiers(ctx context.Context) ([]TierView, error) {
	snaps, err := q.repo.ActiveTiers(ctx)
	if err != nil {
		return nil, err
	}
	views := make([]TierView, 0, len(snaps))
	for _, s := range snaps {
		views = append(views, TierView{
			ID:              s.ID,
			Name:            s.Name,
			MinPoints:       s.MinPoints,
			MaxPoints:       s.MaxPoints,
			DiscountPercent: s.DiscountPercent,
			Color:           s.Color,
		})
	}
	return views, nil
}

func (q *loyaltyQueriesImpl) Rewards(ctx context.Context) ([]RewardView, error) {
	return q.repo.ActiveRewards(ctx)
}

func (q *loyaltyQueriesImpl) Transactions(ctx context.Context, userID uuid.UUID, limit int) ([]LoyaltyTransactionView, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	return q.repo.TransactionsByUser(ctx, userID, int32(limit))
}

func tierToView(t *loyalty.Tier) *TierView {
	return &TierView{
		ID:              t.ID(),
		Name:            t.Name(),
		MinPoints:       t.MinPoints(),
		MaxPoints:       t.MaxPoints(),
		DiscountPercent: t.DiscountPercent(),
		Color:           t.Color(),
	}
}
