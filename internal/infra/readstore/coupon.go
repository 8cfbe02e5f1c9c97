package readstore

import (
	"context"
	"strings"

	"washbook/internal/infra"
	"washbook/internal/infra/db"
	"washbook/internal/usecase/queries"
	"washbook/internal/usecase/shared"

	"github.com/google/uuid"
)

type CouponReadStore struct {
	db db.DBTX
}

func NewCouponReadStore(dbtx db.DBTX) *CouponReadStore {
	return &CouponReadStore{db: dbtx}
}

const couponColumns = `id, code, description, kind, discount_value, min_order_cents,
       max_discount_cents, usage_limit, used_count, valid_from, valid_until,
       is_active, created_at, updated_at`

const findCouponByCodeSQL = `
SELECT id, code, kind, discount_value, min_order_cents, max_discount_cents,
       usage_limit, used_count, valid_from, valid_until, is_active
FROM coupons
WHERE code = $1`

func (r *CouponReadStore) FindByCode(ctx context.Context, code string) (*shared.CouponSnapshot, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	var snap shared.CouponSnapshot
	err := r.db.QueryRow(ctx, findCouponByCodeSQL, normalized).Scan(
		&snap.ID, &snap.Code, &snap.Kind, &snap.DiscountValue,
		&snap.MinOrderCents, &snap.MaxDiscountCents, &snap.UsageLimit,
		&snap.UsedCount, &snap.ValidFrom, &snap.ValidUntil, &snap.IsActive)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("coupon not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find coupon by code", err)
	}
	return &snap, nil
}

const findCouponByIDSQL = `
SELECT ` + couponColumns + `
FROM coupons
WHERE id = $1`

func (r *CouponReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.CouponView, error) {
	var v queries.CouponView
	err := r.db.QueryRow(ctx, findCouponByIDSQL, id).Scan(
		&v.ID, &v.Code, &v.Description, &v.Kind, &v.DiscountValue,
		&v.MinOrderCents, &v.MaxDiscountCents, &v.UsageLimit, &v.UsedCount,
		&v.ValidFrom, &v.ValidUntil, &v.IsActive, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("coupon not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find coupon by ID", err)
	}
	return &v, nil
}

const listCouponsSQL = `
SELECT ` + couponColumns + `
FROM coupons
ORDER BY created_at DESC`

func (r *CouponReadStore) ListAll(ctx context.Context) ([]*queries.CouponView, error) {
	rows, err := r.db.Query(ctx, listCouponsSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list coupons", err)
	}
	defer rows.Close()

	var views []*queries.CouponView
	for rows.Next() {
		var v queries.CouponView
		if err := rows.Scan(
			&v.ID, &v.Code, &v.Description, &v.Kind, &v.DiscountValue,
			&v.MinOrderCents, &v.MaxDiscountCents, &v.UsageLimit, &v.UsedCount,
			&v.ValidFrom, &v.ValidUntil, &v.IsActive, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan coupon", err)
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read coupons", err)
	}
	return views, nil
}
