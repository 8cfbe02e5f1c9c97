package repository

import (
	"context"

	"washbook/internal/domain/coupon"
	"washbook/internal/infra"
	"washbook/internal/infra/db"

	"github.com/google/uuid"
)

type CouponRepository struct {
	db db.DBTX
}

func NewCouponRepository(dbtx db.DBTX) *CouponRepository {
	return &CouponRepository{db: dbtx}
}

const createCouponSQL = `
INSERT INTO coupons (
    id, code, description, kind, discount_value, min_order_cents,
    max_discount_cents, usage_limit, used_count, valid_from, valid_until,
    is_active, created_by, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 0, $9, $10, $11, $12, now(), now())
RETURNING id`

func (r *CouponRepository) Create(ctx context.Context, tx db.DBTX, c *coupon.Coupon) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, createCouponSQL,
		c.ID(),
		c.Code().String(),
		c.Description(),
		c.Kind().String(),
		c.DiscountValue(),
		c.MinOrderCents(),
		c.MaxDiscountCents(),
		c.UsageLimit(),
		c.ValidFrom(),
		c.ValidUntil(),
		c.IsActive(),
		c.CreatedBy(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create coupon", err)
	}
	return id, nil
}

const updateCouponSQL = `
UPDATE coupons
SET description = $2, kind = $3, discount_value = $4, min_order_cents = $5,
    max_discount_cents = $6, usage_limit = $7, valid_from = $8,
    valid_until = $9, is_active = $10, updated_at = now()
WHERE id = $1`

func (r *CouponRepository) Update(ctx context.Context, tx db.DBTX, id uuid.UUID, c *coupon.Coupon) error {
	tag, err := tx.Exec(ctx, updateCouponSQL,
		id,
		c.Description(),
		c.Kind().String(),
		c.DiscountValue(),
		c.MinOrderCents(),
		c.MaxDiscountCents(),
		c.UsageLimit(),
		c.ValidFrom(),
		c.ValidUntil(),
		c.IsActive(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update coupon", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("coupon not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *CouponRepository) Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	tag, err := tx.Exec(ctx, `DELETE FROM coupons WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete coupon", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("coupon not found", nil, infra.KindNotFound)
	}
	return nil
}

// 0 rows means the limit is exhausted or the coupon was deactivated
// since validation; callers treat that as not-active.
const consumeCouponUseSQL = `
UPDATE coupons
SET used_count = used_count + 1, updated_at = now()
WHERE id = $1
  AND is_active
  AND (usage_limit IS NULL OR used_count < usage_limit)`

func (r *CouponRepository) ConsumeUse(ctx context.Context, tx db.DBTX, id uuid.UUID) (int64, error) {
	tag, err := tx.Exec(ctx, consumeCouponUseSQL, id)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to consume coupon use", err)
	}
	return tag.RowsAffected(), nil
}

const recordCouponUsageSQL = `
INSERT INTO coupon_usages (id, coupon_id, user_id, appointment_id, discount_cents, used_at)
VALUES ($1, $2, $3, $4, $5, now())`

func (r *CouponRepository) RecordUsage(ctx context.Context, tx db.DBTX, couponID, userID, appointmentID uuid.UUID, discountCents int64) error {
	_, err := tx.Exec(ctx, recordCouponUsageSQL, uuid.New(), couponID, userID, appointmentID, discountCents)
	if err != nil {
		return infra.WrapRepoErr("failed to record coupon usage", err)
	}
	return nil
}
