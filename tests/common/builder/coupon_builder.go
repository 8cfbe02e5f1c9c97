//go:build unit || e2e

package builder

import (
	"time"

	domcoupon "washbook/internal/domain/coupon"
	"washbook/internal/usecase/queries"

	"github.com/google/uuid"
)

type CouponBuilder struct {
	ID               uuid.UUID
	Code             string
	Description      string
	Kind             string
	DiscountValue    int64
	MinOrderCents    *int64
	MaxDiscountCents *int64
	UsageLimit       *int
	UsedCount        int
	IsActive         bool
	ValidFrom        time.Time
	ValidUntil       time.Time
	CreatedBy        uuid.UUID
}

func NewCouponBuilder() *CouponBuilder {
	now := time.Now()
	return &CouponBuilder{
		ID:            uuid.New(),
		Code:          "SAVE10",
		Description:   "10 percent off",
		Kind:          "percentage",
		DiscountValue: 10,
		IsActive:      true,
		ValidFrom:     now.Add(-24 * time.Hour),
		ValidUntil:    now.Add(24 * time.Hour),
		CreatedBy:     uuid.New(),
	}
}

func (b *CouponBuilder) With(mutate func(*CouponBuilder)) *CouponBuilder {
	mutate(b)
	return b
}

func (b *CouponBuilder) WithMinOrder(cents int64) *CouponBuilder {
	b.MinOrderCents = &cents
	return b
}

func (b *CouponBuilder) WithMaxDiscount(cents int64) *CouponBuilder {
	b.MaxDiscountCents = &cents
	return b
}

func (b *CouponBuilder) WithUsageLimit(limit, used int) *CouponBuilder {
	b.UsageLimit = &limit
	b.UsedCount = used
	return b
}

func (b *CouponBuilder) BuildDomain() (*domcoupon.Coupon, error) {
	code, err := domcoupon.NewCode(b.Code)
	if err != nil {
		return nil, err
	}
	kind, err := domcoupon.NewKind(b.Kind)
	if err != nil {
		return nil, err
	}
	return domcoupon.NewCoupon(
		b.ID, code, b.Description, kind, b.DiscountValue,
		b.MinOrderCents, b.MaxDiscountCents, b.UsageLimit,
		b.IsActive, b.ValidFrom, b.ValidUntil, b.CreatedBy,
	)
}

func (b *CouponBuilder) BuildView() *queries.CouponView {
	now := time.Now()
	return &queries.CouponView{
		ID:               b.ID,
		Code:             b.Code,
		Description:      b.Description,
		Kind:             b.Kind,
		DiscountValue:    b.DiscountValue,
		MinOrderCents:    b.MinOrderCents,
		MaxDiscountCents: b.MaxDiscountCents,
		UsageLimit:       b.UsageLimit,
		UsedCount:        b.UsedCount,
		ValidFrom:        b.ValidFrom,
		ValidUntil:       b.ValidUntil,
		IsActive:         b.IsActive,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// BuildReconstructed bypasses constructor validation, for exercising the
// used-count bookkeeping that only exists on stored coupons.
func (b *CouponBuilder) BuildReconstructed() *domcoupon.Coupon {
	code, _ := domcoupon.NewCode(b.Code)
	kind, _ := domcoupon.NewKind(b.Kind)
	return domcoupon.Reconstruct(
		b.ID, code, b.Description, kind, b.DiscountValue,
		b.MinOrderCents, b.MaxDiscountCents, b.UsageLimit, b.UsedCount,
		b.IsActive, b.ValidFrom, b.ValidUntil, b.CreatedBy,
	)
}
