package commands

import (
	"context"
	"time"

	"washbook/internal/audit"
	"washbook/internal/domain/payment"
	"washbook/internal/infra"
	"washbook/internal/pkg/clock"
	"washbook/internal/pkg/errs"
	"washbook/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrPaymentNotFound = errs.New("payment not found")

type PaymentCommands interface {
	UpdateStatus(ctx context.Context, principal shared.Principal, id uuid.UUID, status string) error
}

type paymentUseCaseImpl struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	policy AccrualPolicy
	audit  audit.Sink
}

func NewPaymentUseCase(uow shared.UnitOfWork, clk clock.Clock, policy AccrualPolicy, sink audit.Sink) PaymentCommands {
	return &paymentUseCaseImpl{uow: uow, clock: clk, policy: policy, audit: sink}
}

func (uc *paymentUseCaseImpl) UpdateStatus(ctx context.Context, principal shared.Principal, id uuid.UUID, status string) error {
	next, err := payment.NewStatus(status)
	if err != nil {
		return errs.Mark(err, ErrDomainValidation)
	}

	now := uc.clock.Now()
	var before string

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().PaymentByID(ctx, id)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return ErrPaymentNotFound
			}
			return derr
		}
		before = snap.Status

		current, derr := payment.NewStatus(snap.Status)
		if derr != nil {
			return derr
		}
		if !current.CanTransitionTo(next) {
			return ErrInvalidTransition
		}

		var paidAt *time.Time
		if next == payment.StatusCompleted {
			paidAt = &now
		}
		if derr = tx.Payments().UpdateStatus(ctx, tx.DB(), id, next, paidAt); derr != nil {
			return derr
		}
		snap.Status = next.String()

		if next == payment.StatusCompleted {
			appt, apptErr := tx.Reads().AppointmentByID(ctx, snap.AppointmentID)
			if apptErr != nil {
				if infra.IsKind(apptErr, infra.KindNotFound) {
					return nil
				}
				return apptErr
			}
			return settleIfComplete(ctx, tx, appt, snap, uc.policy, now)
		}
		return nil
	})
	if err != nil {
		return err
	}

	uc.audit.Emit(ctx, audit.Event{
		Actor:      principal.ID,
		Action:     "payment.update_status",
		EntityKind: "payment",
		EntityID:   id,
		Before:     before,
		After:      next.String(),
		At:         now,
	})
	return nil
}
