package repository

import (
	"context"
	"time"

	"washbook/internal/domain/appointment"
	"washbook/internal/infra"
	"washbook/internal/infra/db"
	"washbook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type AppointmentRepository struct {
	db db.DBTX
}

func NewAppointmentRepository(dbtx db.DBTX) *AppointmentRepository {
	return &AppointmentRepository{db: dbtx}
}

const createAppointmentSQL = `
INSERT INTO appointments (
    id, user_id, service_id, appointment_date, start_time,
    vehicle_type, license_plate, vehicle_model, vehicle_color,
    status, price_cents, discount_cents, final_price_cents, notes,
    created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 0, $11, $12, now(), now())
RETURNING id`

func (r *AppointmentRepository) Create(ctx context.Context, tx db.DBTX, appt *appointment.Appointment) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, createAppointmentSQL,
		appt.ID(),
		appt.CustomerID(),
		appt.ServiceID(),
		appt.Date(),
		minutesToPgTime(appt.StartTime().Minutes()),
		appt.Vehicle().Type().String(),
		appt.Vehicle().Plate(),
		appt.Vehicle().Model(),
		appt.Vehicle().Color(),
		appt.Status().String(),
		appt.TotalPriceCents(),
		appt.Notes(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create appointment", err)
	}
	return id, nil
}

const updateAppointmentStatusSQL = `
UPDATE appointments
SET status = $2, completed_at = COALESCE($3, completed_at), updated_at = now()
WHERE id = $1`

func (r *AppointmentRepository) UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status appointment.Status, completedAt *time.Time) error {
	tag, err := tx.Exec(ctx, updateAppointmentStatusSQL, id, status.String(), completedAt)
	if err != nil {
		return infra.WrapRepoErr("failed to update appointment status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("appointment not found", nil, infra.KindNotFound)
	}
	return nil
}

const setAppointmentRatingSQL = `
UPDATE appointments
SET rating = $2, review = $3, updated_at = now()
WHERE id = $1`

func (r *AppointmentRepository) SetRating(ctx context.Context, tx db.DBTX, id uuid.UUID, rating int, review string) error {
	tag, err := tx.Exec(ctx, setAppointmentRatingSQL, id, rating, review)
	if err != nil {
		return infra.WrapRepoErr("failed to set appointment rating", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("appointment not found", nil, infra.KindNotFound)
	}
	return nil
}

const applyCouponSQL = `
UPDATE appointments
SET coupon_id = $2, discount_cents = $3, final_price_cents = $4, updated_at = now()
WHERE id = $1 AND coupon_id IS NULL`

func (r *AppointmentRepository) ApplyCoupon(ctx context.Context, tx db.DBTX, id, couponID uuid.UUID, discountCents, finalPriceCents int64) error {
	tag, err := tx.Exec(ctx, applyCouponSQL, id, couponID, discountCents, finalPriceCents)
	if err != nil {
		return infra.WrapRepoErr("failed to apply coupon to appointment", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("coupon already applied to appointment", nil, infra.KindConflict)
	}
	return nil
}

const lockAppointmentSQL = `
SELECT id, user_id, service_id, appointment_date, start_time, status,
       vehicle_type, price_cents, discount_cents, final_price_cents,
       coupon_id, rating
FROM appointments
WHERE id = $1
FOR UPDATE`

func (r *AppointmentRepository) LockForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*shared.AppointmentSnapshot, error) {
	var (
		snap  shared.AppointmentSnapshot
		start pgtype.Time
	)
	err := tx.QueryRow(ctx, lockAppointmentSQL, id).Scan(
		&snap.ID,
		&snap.UserID,
		&snap.ServiceID,
		&snap.Date,
		&start,
		&snap.Status,
		&snap.VehicleType,
		&snap.PriceCents,
		&snap.DiscountCents,
		&snap.FinalPriceCents,
		&snap.CouponID,
		&snap.Rating,
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock appointment", err)
	}
	snap.StartMinutes = int(start.Microseconds / microsPerMinute)
	return &snap, nil
}

const microsPerMinute = int64(time.Minute / time.Microsecond)

func minutesToPgTime(minutes int) pgtype.Time {
	return pgtype.Time{Microseconds: int64(minutes) * microsPerMinute, Valid: true}
}
