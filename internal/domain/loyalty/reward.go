package loyalty

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrInvalidRewardType = errors.New("invalid reward type")
	ErrInvalidRewardCost = errors.New("reward cost must be positive")
)

type RewardType string

const (
	RewardFreeService        RewardType = "free_service"
	RewardDiscountPercentage RewardType = "discount_percentage"
	RewardDiscountFixed      RewardType = "discount_fixed"
)

func (t RewardType) String() string { return string(t) }

func NewRewardType(s string) (RewardType, error) {
	switch RewardType(s) {
	case RewardFreeService, RewardDiscountPercentage, RewardDiscountFixed:
		return RewardType(s), nil
	default:
		return "", ErrInvalidRewardType
	}
}

// Reward is a redeemable catalog item priced in points.
type Reward struct {
	id               uuid.UUID
	name             string
	description      string
	rewardType       RewardType
	pointsRequired   int
	rewardValueCents *int64
	serviceID        *uuid.UUID
	isActive         bool
}

func NewReward(id uuid.UUID, name, description string, rewardType RewardType, pointsRequired int, rewardValueCents *int64, serviceID *uuid.UUID, isActive bool) (*Reward, error) {
	if pointsRequired <= 0 {
		return nil, ErrInvalidRewardCost
	}
	if id == uuid.Nil {
		id = uuid.New()
	}
	return &Reward{
		id:               id,
		name:             name,
		description:      description,
		rewardType:       rewardType,
		pointsRequired:   pointsRequired,
		rewardValueCents: rewardValueCents,
		serviceID:        serviceID,
		isActive:         isActive,
	}, nil
}

func (r *Reward) ID() uuid.UUID            { return r.id }
func (r *Reward) Name() string             { return r.name }
func (r *Reward) Description() string      { return r.description }
func (r *Reward) Type() RewardType         { return r.rewardType }
func (r *Reward) PointsRequired() int      { return r.pointsRequired }
func (r *Reward) RewardValueCents() *int64 { return r.rewardValueCents }
func (r *Reward) ServiceID() *uuid.UUID    { return r.serviceID }
func (r *Reward) IsActive() bool           { return r.isActive }

func (r *Reward) Affordable(points int) bool {
	return points >= r.pointsRequired
}
