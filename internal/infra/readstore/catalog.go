package readstore

import (
	"context"

	"washbook/internal/infra"
	"washbook/internal/infra/db"
	"washbook/internal/usecase/queries"
	"washbook/internal/usecase/shared"

	"github.com/google/uuid"
)

type ServiceReadStore struct {
	db db.DBTX
}

func NewServiceReadStore(dbtx db.DBTX) *ServiceReadStore {
	return &ServiceReadStore{db: dbtx}
}

const listActiveServicesSQL = `
SELECT id, name, description, category, duration_minutes, is_active, created_at, updated_at
FROM services
WHERE is_active
ORDER BY category, name`

func (r *ServiceReadStore) ListActive(ctx context.Context) ([]*queries.ServiceView, error) {
	rows, err := r.db.Query(ctx, listActiveServicesSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list services", err)
	}
	defer rows.Close()

	var views []*queries.ServiceView
	for rows.Next() {
		var v queries.ServiceView
		if err := rows.Scan(&v.ID, &v.Name, &v.Description, &v.Category,
			&v.DurationMinutes, &v.IsActive, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan service", err)
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read services", err)
	}
	return views, nil
}

const findServiceByIDSQL = `
SELECT id, name, description, category, duration_minutes, is_active, created_at, updated_at
FROM services
WHERE id = $1`

func (r *ServiceReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ServiceView, error) {
	var v queries.ServiceView
	err := r.db.QueryRow(ctx, findServiceByIDSQL, id).Scan(
		&v.ID, &v.Name, &v.Description, &v.Category,
		&v.DurationMinutes, &v.IsActive, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("service not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find service by ID", err)
	}
	return &v, nil
}

// Snapshot returns the minimal fields command validation needs.
func (r *ServiceReadStore) Snapshot(ctx context.Context, id uuid.UUID) (*shared.ServiceSnapshot, error) {
	v, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &shared.ServiceSnapshot{
		ID:              v.ID,
		Name:            v.Name,
		Category:        v.Category,
		DurationMinutes: v.DurationMinutes,
		IsActive:        v.IsActive,
	}, nil
}

const listServicePricesSQL = `
SELECT vehicle_type, price_cents
FROM service_prices
WHERE service_id = $1
ORDER BY vehicle_type`

func (r *ServiceReadStore) PricesFor(ctx context.Context, serviceID uuid.UUID) ([]*queries.ServicePriceView, error) {
	rows, err := r.db.Query(ctx, listServicePricesSQL, serviceID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list service prices", err)
	}
	defer rows.Close()

	var prices []*queries.ServicePriceView
	for rows.Next() {
		var p queries.ServicePriceView
		if err := rows.Scan(&p.VehicleType, &p.PriceCents); err != nil {
			return nil, infra.WrapRepoErr("failed to scan service price", err)
		}
		prices = append(prices, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read service prices", err)
	}
	return prices, nil
}

const priceForSQL = `
SELECT sp.price_cents
FROM service_prices sp
JOIN services s ON s.id = sp.service_id
WHERE sp.service_id = $1 AND sp.vehicle_type = $2 AND s.is_active`

func (r *ServiceReadStore) PriceFor(ctx context.Context, serviceID uuid.UUID, vehicleType string) (int64, error) {
	var cents int64
	err := r.db.QueryRow(ctx, priceForSQL, serviceID, vehicleType).Scan(&cents)
	if err != nil {
		if infra.IsNoRows(err) {
			return 0, infra.WrapRepoErr("no price for service and vehicle type", err, infra.KindNotFound)
		}
		return 0, infra.WrapRepoErr("failed to find service price", err)
	}
	return cents, nil
}
