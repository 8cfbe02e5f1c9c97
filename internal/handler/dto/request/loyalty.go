package request

import (
	"strings"

	"washbook/internal/usecase/commands"

	"github.com/google/uuid"
)

type RedeemRewardRequest struct {
	RewardID      uuid.UUID  `json:"reward_id" binding:"required"`
	AppointmentID *uuid.UUID `json:"appointment_id,omitempty"`
}

type AddPointsRequest struct {
	UserID        uuid.UUID  `json:"user_id" binding:"required"`
	Points        int        `json:"points" binding:"required"`
	Reason        string     `json:"reason" binding:"required"`
	AppointmentID *uuid.UUID `json:"appointment_id,omitempty"`
}

type CreateTierRequest struct {
	Name            string  `json:"name" binding:"required"`
	MinPoints       int     `json:"min_points" binding:"min=0"`
	MaxPoints       *int    `json:"max_points,omitempty"`
	DiscountPercent float64 `json:"discount_percent" binding:"min=0,max=100"`
	Color           string  `json:"color,omitempty"`
}

func (r CreateTierRequest) ToCommand() commands.CreateTierRequest {
	return commands.CreateTierRequest{
		Name:            strings.TrimSpace(r.Name),
		MinPoints:       r.MinPoints,
		MaxPoints:       r.MaxPoints,
		DiscountPercent: r.DiscountPercent,
		Color:           strings.TrimSpace(r.Color),
	}
}

type CreateRewardRequest struct {
	Name             string     `json:"name" binding:"required"`
	Description      string     `json:"description,omitempty"`
	Type             string     `json:"type" binding:"required,oneof=free_service discount_percentage discount_fixed"`
	PointsRequired   int        `json:"points_required" binding:"required,min=1"`
	RewardValueCents *int64     `json:"reward_value_cents,omitempty"`
	ServiceID        *uuid.UUID `json:"service_id,omitempty"`
}

func (r CreateRewardRequest) ToCommand() commands.CreateRewardRequest {
	return commands.CreateRewardRequest{
		Name:             strings.TrimSpace(r.Name),
		Description:      strings.TrimSpace(r.Description),
		Type:             r.Type,
		PointsRequired:   r.PointsRequired,
		RewardValueCents: r.RewardValueCents,
		ServiceID:        r.ServiceID,
	}
}
