package queries

import (
	"context"

	"github.com/google/uuid"
)

type CatalogQueries interface {
	ListServices(ctx context.Context) ([]*ServiceView, error)
	GetService(ctx context.Context, id uuid.UUID) (*ServiceView, error)
	ServicePrices(ctx context.Context, serviceID uuid.UUID) ([]*ServicePriceView, error)
}

type ServiceViewRepo interface {
	ListActive(ctx context.Context) ([]*ServiceView, error)
	FindByID(ctx context.Context, id uuid.UUID) (*ServiceView, error)
	PricesFor(ctx context.Context, serviceID uuid.UUID) ([]*ServicePriceView, error)
}

type catalogQueriesImpl struct {
	repo ServiceViewRepo
}

func NewCatalogQueries(repo ServiceViewRepo) CatalogQueries {
	return &catalogQueriesImpl{repo: repo}
}

func (q *catalogQueriesImpl) ListServices(ctx context.Context) ([]*ServiceView, error) {
	return q.repo.ListActive(ctx)
}

func (q *catalogQueriesImpl) GetService(ctx context.Context, id uuid.UUID) (*ServiceView, error) {
	return q.repo.FindByID(ctx, id)
}

func (q *catalogQueriesImpl) ServicePrices(ctx context.Context, serviceID uuid.UUID) ([]*ServicePriceView, error) {
	return q.repo.PricesFor(ctx, serviceID)
}
