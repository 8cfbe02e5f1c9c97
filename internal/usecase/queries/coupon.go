package queries

import (
	"context"

	"github.com/google/uuid"
)

type CouponQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*CouponView, error)
	List(ctx context.Context) ([]*CouponView, error)
}

type CouponViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CouponView, error)
	ListAll(ctx context.Context) ([]*CouponView, error)
}

type couponQueriesImpl struct {
	repo CouponViewRepo
}

func NewCouponQueries(repo CouponViewRepo) CouponQueries {
	return &couponQueriesImpl{repo: repo}
}

func (q *couponQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*CouponView, error) {
	return q.repo.FindByID(ctx, id)
}

func (q *couponQueriesImpl) List(ctx context.Context) ([]*CouponView, error) {
	return q.repo.ListAll(ctx)
}
