package response

import (
	"washbook/internal/usecase/commands"

	"github.com/google/uuid"
)

type ValidateCouponResponse struct {
	CouponID      uuid.UUID `json:"coupon_id"`
	Code          string    `json:"code"`
	Kind          string    `json:"kind"`
	DiscountCents int64     `json:"discount_cents"`
}

func FromValidateCouponResult(r *commands.ValidateCouponResult) *ValidateCouponResponse {
	return &ValidateCouponResponse{
		CouponID:      r.CouponID,
		Code:          r.Code,
		Kind:          r.Kind,
		DiscountCents: r.DiscountCents,
	}
}

type ApplyCouponResponse struct {
	DiscountCents   int64 `json:"discount_cents"`
	FinalPriceCents int64 `json:"final_price_cents"`
}

func FromApplyCouponResult(r *commands.ApplyCouponResult) *ApplyCouponResponse {
	return &ApplyCouponResponse{
		DiscountCents:   r.DiscountCents,
		FinalPriceCents: r.FinalPriceCents,
	}
}
