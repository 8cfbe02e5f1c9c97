package request

import (
	"strings"
	"time"

	"washbook/internal/usecase/commands"
)

type ValidateCouponRequest struct {
	Code       string `json:"code" binding:"required"`
	OrderCents int64  `json:"order_cents" binding:"required,min=1"`
}

type ApplyCouponRequest struct {
	Code string `json:"code" binding:"required"`
}

type UpsertCouponRequest struct {
	Code             string    `json:"code" binding:"required"`
	Description      string    `json:"description,omitempty"`
	Kind             string    `json:"kind" binding:"required,oneof=percentage fixed"`
	DiscountValue    int64     `json:"discount_value" binding:"required,min=1"`
	MinOrderCents    *int64    `json:"min_order_cents,omitempty"`
	MaxDiscountCents *int64    `json:"max_discount_cents,omitempty"`
	UsageLimit       *int      `json:"usage_limit,omitempty"`
	IsActive         bool      `json:"is_active"`
	ValidFrom        time.Time `json:"valid_from" binding:"required"`
	ValidUntil       time.Time `json:"valid_until" binding:"required"`
}

func (r UpsertCouponRequest) ToCommand() commands.UpsertCouponRequest {
	return commands.UpsertCouponRequest{
		Code:             strings.TrimSpace(r.Code),
		Description:      strings.TrimSpace(r.Description),
		Kind:             r.Kind,
		DiscountValue:    r.DiscountValue,
		MinOrderCents:    r.MinOrderCents,
		MaxDiscountCents: r.MaxDiscountCents,
		UsageLimit:       r.UsageLimit,
		IsActive:         r.IsActive,
		ValidFrom:        r.ValidFrom,
		ValidUntil:       r.ValidUntil,
	}
}
