package commands

import (
	"context"
	"time"

	"washbook/internal/audit"
	"washbook/internal/domain/loyalty"
	"washbook/internal/infra"
	"washbook/internal/pkg/clock"
	"washbook/internal/pkg/errs"
	"washbook/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrRewardNotFound     = errs.New("loyalty reward not found")
	ErrInsufficientPoints = errs.New("insufficient loyalty points")
	ErrNonPositivePoints  = errs.New("points amount must be positive")
	ErrInvalidTier        = errs.New("invalid loyalty tier")
)

type CreateTierRequest struct {
	Name            string
	MinPoints       int
	MaxPoints       *int
	DiscountPercent float64
	Color           string
}

type CreateRewardRequest struct {
	Name             string
	Description      string
	Type             string
	PointsRequired   int
	RewardValueCents *int64
	ServiceID        *uuid.UUID
}

type AddPointsResult struct {
	TotalPoints     int
	AvailablePoints int
}

type RedeemRewardResult struct {
	RemainingPoints int
}

type LoyaltyCommands interface {
	AddPoints(ctx context.Context, actor uuid.UUID, userID uuid.UUID, amount int, reason string, appointmentID *uuid.UUID) (*AddPointsResult, error)
	RedeemReward(ctx context.Context, principal shared.Principal, rewardID uuid.UUID, appointmentID *uuid.UUID) (*RedeemRewardResult, error)
	SettleAccrual(ctx context.Context, userID uuid.UUID, appointmentID uuid.UUID, points int, completedAt time.Time) error
	CreateTier(ctx context.Context, principal shared.Principal, req CreateTierRequest) (uuid.UUID, error)
	CreateReward(ctx context.Context, principal shared.Principal, req CreateRewardRequest) (uuid.UUID, error)
}

type loyaltyUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
	audit audit.Sink
}

func NewLoyaltyUseCase(uow shared.UnitOfWork, clk clock.Clock, sink audit.Sink) LoyaltyCommands {
	return &loyaltyUseCaseImpl{uow: uow, clock: clk, audit: sink}
}

func (uc *loyaltyUseCaseImpl) AddPoints(ctx context.Context, actor uuid.UUID, userID uuid.UUID, amount int, reason string, appointmentID *uuid.UUID) (*AddPointsResult, error) {
	trx, err := loyalty.NewEarnTransaction(userID, appointmentID, amount, reason)
	if err != nil {
		return nil, ErrNonPositivePoints
	}

	var result AddPointsResult
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if derr := tx.Loyalty().EnsureAccount(ctx, tx.DB(), userID); derr != nil {
			return derr
		}
		balance, derr := tx.Loyalty().Credit(ctx, tx.DB(), userID, amount)
		if derr != nil {
			return derr
		}
		if _, derr = tx.Loyalty().InsertTransaction(ctx, tx.DB(), trx); derr != nil {
			return derr
		}
		total, derr := tx.Loyalty().TotalEarned(ctx, tx.DB(), userID)
		if derr != nil {
			return derr
		}
		result = AddPointsResult{TotalPoints: total, AvailablePoints: balance}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Emit(ctx, audit.Event{
		Actor:      actor,
		Action:     "loyalty.add_points",
		EntityKind: "loyalty_account",
		EntityID:   userID,
		After:      amount,
		At:         uc.clock.Now(),
	})
	return &result, nil
}

// SettleAccrual is the outbox job handler: credits points for a completed,
// paid appointment and bumps the service counters. The earn transaction's
// appointment link is what makes redelivery detectable.
func (uc *loyaltyUseCaseImpl) SettleAccrual(ctx context.Context, userID uuid.UUID, appointmentID uuid.UUID, points int, completedAt time.Time) error {
	trx, err := loyalty.NewEarnTransaction(userID, &appointmentID, points, "service completed")
	if err != nil {
		return ErrNonPositivePoints
	}

	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		// Redelivered job: the accrual for this appointment already landed.
		settled, derr := tx.Loyalty().HasAccrualForAppointment(ctx, tx.DB(), appointmentID)
		if derr != nil {
			return derr
		}
		if settled {
			return nil
		}
		if derr := tx.Loyalty().EnsureAccount(ctx, tx.DB(), userID); derr != nil {
			return derr
		}
		if _, derr := tx.Loyalty().Credit(ctx, tx.DB(), userID, points); derr != nil {
			return derr
		}
		if _, derr := tx.Loyalty().InsertTransaction(ctx, tx.DB(), trx); derr != nil {
			return derr
		}
		return tx.Loyalty().RecordService(ctx, tx.DB(), userID, completedAt)
	})
}

func (uc *loyaltyUseCaseImpl) RedeemReward(ctx context.Context, principal shared.Principal, rewardID uuid.UUID, appointmentID *uuid.UUID) (*RedeemRewardResult, error) {
	now := uc.clock.Now()
	var cost int
	var result RedeemRewardResult

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		reward, derr := tx.Reads().RewardByID(ctx, rewardID)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return ErrRewardNotFound
			}
			return derr
		}
		if !reward.IsActive {
			return ErrRewardNotFound
		}
		cost = reward.PointsRequired

		remaining, ok, derr := tx.Loyalty().Debit(ctx, tx.DB(), principal.ID, reward.PointsRequired)
		if derr != nil {
			return derr
		}
		if !ok {
			return ErrInsufficientPoints
		}

		trx, derr := loyalty.NewRedeemTransaction(principal.ID, appointmentID, &rewardID, reward.PointsRequired, reward.Name)
		if derr != nil {
			return derr
		}
		if _, derr = tx.Loyalty().InsertTransaction(ctx, tx.DB(), trx); derr != nil {
			return derr
		}
		result = RedeemRewardResult{RemainingPoints: remaining}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Emit(ctx, audit.Event{
		Actor:      principal.ID,
		Action:     "loyalty.redeem_reward",
		EntityKind: "loyalty_reward",
		EntityID:   rewardID,
		After:      -cost,
		At:         now,
	})
	return &result, nil
}

func (uc *loyaltyUseCaseImpl) CreateTier(ctx context.Context, principal shared.Principal, req CreateTierRequest) (uuid.UUID, error) {
	tier, err := loyalty.NewTier(uuid.Nil, req.Name, req.MinPoints, req.MaxPoints, req.DiscountPercent, req.Color, true)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrInvalidTier)
	}

	var id uuid.UUID
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snaps, derr := tx.Reads().ActiveTiers(ctx)
		if derr != nil {
			return derr
		}

		existing := make([]*loyalty.Tier, 0, len(snaps)+1)
		for _, s := range snaps {
			t, terr := loyalty.NewTier(s.ID, s.Name, s.MinPoints, s.MaxPoints, s.DiscountPercent, s.Color, true)
			if terr != nil {
				return terr
			}
			existing = append(existing, t)
		}
		existing = append(existing, tier)

		if derr = loyalty.ValidateTierLadder(existing); derr != nil {
			return errs.Mark(derr, ErrInvalidTier)
		}

		created, derr := tx.Loyalty().CreateTier(ctx, tx.DB(), tier)
		if derr != nil {
			return derr
		}
		id = created
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	uc.audit.Emit(ctx, audit.Event{
		Actor:      principal.ID,
		Action:     "loyalty.create_tier",
		EntityKind: "loyalty_tier",
		EntityID:   id,
		After:      req,
		At:         uc.clock.Now(),
	})
	return id, nil
}

func (uc *loyaltyUseCaseImpl) CreateReward(ctx context.Context, principal shared.Principal, req CreateRewardRequest) (uuid.UUID, error) {
	rewardType, err := loyalty.NewRewardType(req.Type)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}
	reward, err := loyalty.NewReward(uuid.Nil, req.Name, req.Description, rewardType, req.PointsRequired, req.RewardValueCents, req.ServiceID, true)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}

	var id uuid.UUID
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		created, derr := tx.Loyalty().CreateReward(ctx, tx.DB(), reward)
		if derr != nil {
			return derr
		}
		id = created
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	uc.audit.Emit(ctx, audit.Event{
		Actor:      principal.ID,
		Action:     "loyalty.create_reward",
		EntityKind: "loyalty_reward",
		EntityID:   id,
		After:      req,
		At:         uc.clock.Now(),
	})
	return id, nil
}
