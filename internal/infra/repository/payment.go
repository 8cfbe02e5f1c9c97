package repository

import (
	"context"
	"time"

	"washbook/internal/domain/payment"
	"washbook/internal/infra"
	"washbook/internal/infra/db"

	"github.com/google/uuid"
)

type PaymentRepository struct {
	db db.DBTX
}

func NewPaymentRepository(dbtx db.DBTX) *PaymentRepository {
	return &PaymentRepository{db: dbtx}
}

const createPaymentSQL = `
INSERT INTO payments (
    id, appointment_id, amount_cents, method, status, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, now(), now())
RETURNING id`

func (r *PaymentRepository) Create(ctx context.Context, tx db.DBTX, pay *payment.Payment) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, createPaymentSQL,
		pay.ID(),
		pay.AppointmentID(),
		pay.AmountCents(),
		pay.Method().String(),
		pay.Status().String(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create payment", err)
	}
	return id, nil
}

const updatePaymentStatusSQL = `
UPDATE payments
SET status = $2, paid_at = COALESCE($3, paid_at), updated_at = now()
WHERE id = $1`

func (r *PaymentRepository) UpdateStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status payment.Status, paidAt *time.Time) error {
	tag, err := tx.Exec(ctx, updatePaymentStatusSQL, id, status.String(), paidAt)
	if err != nil {
		return infra.WrapRepoErr("failed to update payment status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("payment not found", nil, infra.KindNotFound)
	}
	return nil
}

const updatePaymentAmountSQL = `
UPDATE payments
SET amount_cents = $2, updated_at = now()
WHERE appointment_id = $1 AND status = 'pending'`

func (r *PaymentRepository) UpdateAmount(ctx context.Context, tx db.DBTX, appointmentID uuid.UUID, amountCents int64) error {
	tag, err := tx.Exec(ctx, updatePaymentAmountSQL, appointmentID, amountCents)
	if err != nil {
		return infra.WrapRepoErr("failed to update payment amount", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("no pending payment for appointment", nil, infra.KindConflict)
	}
	return nil
}
