package readstore

import (
	"context"

	"washbook/internal/infra"
	"washbook/internal/infra/db"
	"washbook/internal/usecase/queries"
	"washbook/internal/usecase/shared"

	"github.com/google/uuid"
)

type PaymentReadStore struct {
	db db.DBTX
}

func NewPaymentReadStore(dbtx db.DBTX) *PaymentReadStore {
	return &PaymentReadStore{db: dbtx}
}

const findPaymentByIDSQL = `
SELECT id, appointment_id, amount_cents, method, status, paid_at, created_at, updated_at
FROM payments
WHERE id = $1`

func (r *PaymentReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.PaymentView, error) {
	var v queries.PaymentView
	err := r.db.QueryRow(ctx, findPaymentByIDSQL, id).Scan(
		&v.ID, &v.AppointmentID, &v.AmountCents, &v.Method, &v.Status,
		&v.PaidAt, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("payment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find payment by ID", err)
	}
	return &v, nil
}

const paymentSnapshotSQL = `
SELECT id, appointment_id, status, method, amount_cents, paid_at
FROM payments
WHERE id = $1`

func (r *PaymentReadStore) Snapshot(ctx context.Context, id uuid.UUID) (*shared.PaymentSnapshot, error) {
	var snap shared.PaymentSnapshot
	err := r.db.QueryRow(ctx, paymentSnapshotSQL, id).Scan(
		&snap.ID, &snap.AppointmentID, &snap.Status, &snap.Method,
		&snap.AmountCents, &snap.PaidAt)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("payment not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find payment", err)
	}
	return &snap, nil
}

const paymentByAppointmentSQL = `
SELECT id, appointment_id, status, method, amount_cents, paid_at
FROM payments
WHERE appointment_id = $1`

func (r *PaymentReadStore) SnapshotByAppointment(ctx context.Context, appointmentID uuid.UUID) (*shared.PaymentSnapshot, error) {
	var snap shared.PaymentSnapshot
	err := r.db.QueryRow(ctx, paymentByAppointmentSQL, appointmentID).Scan(
		&snap.ID, &snap.AppointmentID, &snap.Status, &snap.Method,
		&snap.AmountCents, &snap.PaidAt)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("payment not found for appointment", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find payment by appointment", err)
	}
	return &snap, nil
}
