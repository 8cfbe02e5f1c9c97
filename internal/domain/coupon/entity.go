package coupon

import (
	"time"

	"github.com/google/uuid"
)

// Coupon aggregates the discount rule plus its usage bookkeeping. used_count
// is incremented under the same transaction that records a usage, so the
// usage-limit check here is a fast-path only; the conditional UPDATE in the
// repository is the authoritative guard.
type Coupon struct {
	id               uuid.UUID
	code             Code
	description      string
	kind             Kind
	discountValue    int64
	minOrderCents    *int64
	maxDiscountCents *int64
	usageLimit       *int
	usedCount        int
	isActive         bool
	validFrom        time.Time
	validUntil       time.Time
	createdBy        uuid.UUID
}

func NewCoupon(
	id uuid.UUID,
	code Code,
	description string,
	kind Kind,
	discountValue int64,
	minOrderCents, maxDiscountCents *int64,
	usageLimit *int,
	isActive bool,
	validFrom, validUntil time.Time,
	createdBy uuid.UUID,
) (*Coupon, error) {
	if discountValue <= 0 {
		return nil, ErrInvalidDiscountValue
	}
	if kind == KindPercentage && discountValue > 100 {
		return nil, ErrInvalidDiscountValue
	}
	if validUntil.Before(validFrom) {
		return nil, ErrInvalidValidityWindow
	}
	if id == uuid.Nil {
		id = uuid.New()
	}
	return &Coupon{
		id:               id,
		code:             code,
		description:      description,
		kind:             kind,
		discountValue:    discountValue,
		minOrderCents:    minOrderCents,
		maxDiscountCents: maxDiscountCents,
		usageLimit:       usageLimit,
		isActive:         isActive,
		validFrom:        validFrom,
		validUntil:       validUntil,
		createdBy:        createdBy,
	}, nil
}

func Reconstruct(
	id uuid.UUID,
	code Code,
	description string,
	kind Kind,
	discountValue int64,
	minOrderCents, maxDiscountCents *int64,
	usageLimit *int,
	usedCount int,
	isActive bool,
	validFrom, validUntil time.Time,
	createdBy uuid.UUID,
) *Coupon {
	return &Coupon{
		id:               id,
		code:             code,
		description:      description,
		kind:             kind,
		discountValue:    discountValue,
		minOrderCents:    minOrderCents,
		maxDiscountCents: maxDiscountCents,
		usageLimit:       usageLimit,
		usedCount:        usedCount,
		isActive:         isActive,
		validFrom:        validFrom,
		validUntil:       validUntil,
		createdBy:        createdBy,
	}
}

// IsValidAt mirrors the stored validity rule: active, inside the window, and
// not exhausted.
func (c *Coupon) IsValidAt(now time.Time) bool {
	if !c.isActive {
		return false
	}
	if now.Before(c.validFrom) || now.After(c.validUntil) {
		return false
	}
	if c.usageLimit != nil && c.usedCount >= *c.usageLimit {
		return false
	}
	return true
}

// DiscountFor computes the discount for an order total, without mutating
// anything. Percentage discounts are clamped to maxDiscountCents when set;
// fixed discounts are returned as-is and may exceed the order value — the
// appointment clamps its own total at zero.
func (c *Coupon) DiscountFor(orderCents int64, now time.Time) (int64, error) {
	if !c.IsValidAt(now) {
		return 0, ErrCouponNotActive
	}
	if c.minOrderCents != nil && orderCents < *c.minOrderCents {
		return 0, ErrBelowMinOrder
	}

	switch c.kind {
	case KindPercentage:
		discount := orderCents * c.discountValue / 100
		if c.maxDiscountCents != nil && discount > *c.maxDiscountCents {
			discount = *c.maxDiscountCents
		}
		return discount, nil
	case KindFixed:
		return c.discountValue, nil
	default:
		return 0, ErrInvalidKind
	}
}

func (c *Coupon) ID() uuid.UUID            { return c.id }
func (c *Coupon) Code() Code               { return c.code }
func (c *Coupon) Description() string      { return c.description }
func (c *Coupon) Kind() Kind               { return c.kind }
func (c *Coupon) DiscountValue() int64     { return c.discountValue }
func (c *Coupon) MinOrderCents() *int64    { return c.minOrderCents }
func (c *Coupon) MaxDiscountCents() *int64 { return c.maxDiscountCents }
func (c *Coupon) UsageLimit() *int         { return c.usageLimit }
func (c *Coupon) UsedCount() int           { return c.usedCount }
func (c *Coupon) IsActive() bool           { return c.isActive }
func (c *Coupon) ValidFrom() time.Time     { return c.validFrom }
func (c *Coupon) ValidUntil() time.Time    { return c.validUntil }
func (c *Coupon) CreatedBy() uuid.UUID     { return c.createdBy }
