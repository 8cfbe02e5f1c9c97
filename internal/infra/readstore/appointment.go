package readstore

import (
	"context"
	"time"

	"washbook/internal/infra"
	"washbook/internal/infra/db"
	"washbook/internal/usecase/queries"
	"washbook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type AppointmentReadStore struct {
	db db.DBTX
}

func NewAppointmentReadStore(dbtx db.DBTX) *AppointmentReadStore {
	return &AppointmentReadStore{db: dbtx}
}

const findAppointmentByIDSQL = `
SELECT a.id, a.user_id, u.name, a.service_id, s.name,
       a.appointment_date, a.start_time, a.status,
       a.vehicle_type, a.license_plate, a.vehicle_model, a.vehicle_color,
       a.price_cents, a.discount_cents, a.final_price_cents,
       a.coupon_id, c.code, a.notes, a.rating, a.review,
       a.created_at, a.updated_at
FROM appointments a
JOIN users u ON u.id = a.user_id
JOIN services s ON s.id = a.service_id
LEFT JOIN coupons c ON c.id = a.coupon_id
WHERE a.id = $1`

func (r *AppointmentReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AppointmentView, error) {
	var (
		v      queries.AppointmentView
		date   time.Time
		start  pgtype.Time
		review *string
	)
	err := r.db.QueryRow(ctx, findAppointmentByIDSQL, id).Scan(
		&v.ID, &v.UserID, &v.UserName, &v.ServiceID, &v.ServiceName,
		&date, &start, &v.Status,
		&v.VehicleType, &v.LicensePlate, &v.VehicleModel, &v.VehicleColor,
		&v.PriceCents, &v.DiscountCents, &v.FinalPriceCents,
		&v.CouponID, &v.CouponCode, &v.Notes, &v.Rating, &review,
		&v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("appointment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find appointment by ID", err)
	}
	v.Date = date.Format("2006-01-02")
	v.StartTime = formatMinutes(int(start.Microseconds / microsPerMinute))
	if review != nil {
		v.Review = *review
	}
	return &v, nil
}

const listAppointmentsByUserSQL = `
SELECT a.id, s.name, a.appointment_date, a.start_time, a.status,
       a.final_price_cents, a.created_at
FROM appointments a
JOIN services s ON s.id = a.service_id
WHERE a.user_id = $1
ORDER BY a.appointment_date DESC, a.start_time DESC
LIMIT $2`

func (r *AppointmentReadStore) ListByUser(ctx context.Context, userID uuid.UUID, limit int32) ([]*queries.AppointmentListItem, error) {
	rows, err := r.db.Query(ctx, listAppointmentsByUserSQL, userID, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list appointments by user", err)
	}
	return scanAppointmentList(rows)
}

const listAllAppointmentsSQL = `
SELECT a.id, s.name, a.appointment_date, a.start_time, a.status,
       a.final_price_cents, a.created_at
FROM appointments a
JOIN services s ON s.id = a.service_id
ORDER BY a.appointment_date DESC, a.start_time DESC
LIMIT $1`

func (r *AppointmentReadStore) ListAll(ctx context.Context, limit int32) ([]*queries.AppointmentListItem, error) {
	rows, err := r.db.Query(ctx, listAllAppointmentsSQL, limit)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list appointments", err)
	}
	return scanAppointmentList(rows)
}

const appointmentStatsSQL = `
SELECT count(*),
       count(*) FILTER (WHERE status = 'completed'),
       count(*) FILTER (WHERE status = 'cancelled'),
       count(*) FILTER (WHERE status = 'no_show'),
       count(*) FILTER (WHERE status IN ('scheduled', 'confirmed')),
       COALESCE(sum(final_price_cents) FILTER (WHERE status = 'completed'), 0),
       avg(rating)
FROM appointments
WHERE $1::uuid IS NULL OR user_id = $1`

func (r *AppointmentReadStore) Stats(ctx context.Context, userID *uuid.UUID) (*queries.AppointmentStatsView, error) {
	var v queries.AppointmentStatsView
	err := r.db.QueryRow(ctx, appointmentStatsSQL, userID).Scan(
		&v.Total, &v.Completed, &v.Cancelled, &v.NoShow, &v.Upcoming,
		&v.RevenueCents, &v.AverageRating)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to compute appointment stats", err)
	}
	return &v, nil
}

// Snapshot is the command-side read used for ownership and state checks.
const appointmentSnapshotSQL = `
SELECT id, user_id, service_id, appointment_date, start_time, status,
       vehicle_type, price_cents, discount_cents, final_price_cents,
       coupon_id, rating
FROM appointments
WHERE id = $1`

func (r *AppointmentReadStore) Snapshot(ctx context.Context, id uuid.UUID) (*shared.AppointmentSnapshot, error) {
	var (
		snap  shared.AppointmentSnapshot
		start pgtype.Time
	)
	err := r.db.QueryRow(ctx, appointmentSnapshotSQL, id).Scan(
		&snap.ID, &snap.UserID, &snap.ServiceID, &snap.Date, &start,
		&snap.Status, &snap.VehicleType, &snap.PriceCents, &snap.DiscountCents,
		&snap.FinalPriceCents, &snap.CouponID, &snap.Rating)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("appointment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find appointment", err)
	}
	snap.StartMinutes = int(start.Microseconds / microsPerMinute)
	return &snap, nil
}

func scanAppointmentList(rows pgx.Rows) ([]*queries.AppointmentListItem, error) {
	defer rows.Close()

	var items []*queries.AppointmentListItem
	for rows.Next() {
		var (
			item  queries.AppointmentListItem
			date  time.Time
			start pgtype.Time
		)
		if err := rows.Scan(&item.ID, &item.ServiceName, &date, &start,
			&item.Status, &item.FinalPriceCents, &item.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan appointment", err)
		}
		item.Date = date.Format("2006-01-02")
		item.StartTime = formatMinutes(int(start.Microseconds / microsPerMinute))
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read appointments", err)
	}
	return items, nil
}

func formatMinutes(minutes int) string {
	return time.Date(0, 1, 1, minutes/60, minutes%60, 0, 0, time.UTC).Format("15:04")
}
