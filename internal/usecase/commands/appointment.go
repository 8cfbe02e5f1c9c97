package commands

import (
	"context"
	"errors"
	"time"

	"washbook/internal/audit"
	"washbook/internal/domain/appointment"
	"washbook/internal/domain/payment"
	"washbook/internal/domain/schedule"
	"washbook/internal/infra"
	"washbook/internal/pkg/clock"
	"washbook/internal/pkg/errs"
	"washbook/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrServiceNotFound     = errs.New("service not found")
	ErrAppointmentNotFound = errs.New("appointment not found")
	ErrPastDate            = errs.New("appointment date is in the past")
	ErrSlotUnavailable     = errs.New("time slot is not available")
	ErrPermissionDenied    = errs.New("permission denied")
	ErrInvalidTransition   = errs.New("illegal status transition")
	ErrNotCompleted        = errs.New("appointment is not completed")
	ErrInvalidRating       = errs.New("rating must be between 1 and 5")
	ErrDomainValidation    = errs.New("domain validation error")
)

type CreateAppointmentRequest struct {
	ServiceID    uuid.UUID
	Date         string
	StartTime    string
	VehicleType  string
	LicensePlate string
	VehicleModel string
	VehicleColor string
	Method       string
	Notes        string
}

type CreateAppointmentResult struct {
	AppointmentID uuid.UUID
	PaymentID     uuid.UUID
	PriceCents    int64
}

type AppointmentCommands interface {
	Create(ctx context.Context, principal shared.Principal, req CreateAppointmentRequest) (*CreateAppointmentResult, error)
	UpdateStatus(ctx context.Context, principal shared.Principal, id uuid.UUID, status string) error
	Rate(ctx context.Context, principal shared.Principal, id uuid.UUID, rating int, review string) error
}

type appointmentUseCaseImpl struct {
	uow    shared.UnitOfWork
	clock  clock.Clock
	policy AccrualPolicy
	audit  audit.Sink
}

func NewAppointmentUseCase(uow shared.UnitOfWork, clk clock.Clock, policy AccrualPolicy, sink audit.Sink) AppointmentCommands {
	return &appointmentUseCaseImpl{uow: uow, clock: clk, policy: policy, audit: sink}
}

func (uc *appointmentUseCaseImpl) Create(ctx context.Context, principal shared.Principal, req CreateAppointmentRequest) (*CreateAppointmentResult, error) {
	date, err := schedule.ParseDate(req.Date)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	start, err := schedule.ParseTimeOfDay(req.StartTime)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	vehicle, err := appointment.NewVehicle(req.VehicleType, req.LicensePlate, req.VehicleModel, req.VehicleColor)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	method, err := payment.NewMethod(req.Method)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	now := uc.clock.Now()
	var result CreateAppointmentResult

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		svc, derr := tx.Reads().ServiceByID(ctx, req.ServiceID)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return ErrServiceNotFound
			}
			return derr
		}
		if !svc.IsActive {
			return ErrServiceNotFound
		}

		priceCents, derr := tx.Reads().ServicePrice(ctx, req.ServiceID, vehicle.Type().String())
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return ErrServiceNotFound
			}
			return derr
		}

		// The template row lock serializes concurrent bookings for the
		// same slot; the count decides inside that critical section.
		tpl, derr := tx.Reads().TemplateFor(ctx, schedule.Weekday(date), start)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return ErrSlotUnavailable
			}
			return derr
		}
		occupied, derr := tx.Reads().OccupiedCountAt(ctx, date, start)
		if derr != nil {
			return derr
		}
		if occupied >= int64(tpl.MaxAppointments) {
			return ErrSlotUnavailable
		}

		appt, derr := appointment.NewAppointment(principal.ID, req.ServiceID, date, start, vehicle, priceCents, req.Notes, now)
		if derr != nil {
			if errors.Is(derr, appointment.ErrPastDate) {
				return ErrPastDate
			}
			return errs.Mark(derr, ErrDomainValidation)
		}

		apptID, derr := tx.Appointments().Create(ctx, tx.DB(), appt)
		if derr != nil {
			return derr
		}

		pay, derr := payment.NewPayment(apptID, priceCents, method)
		if derr != nil {
			return errs.Mark(derr, ErrDomainValidation)
		}
		payID, derr := tx.Payments().Create(ctx, tx.DB(), pay)
		if derr != nil {
			return derr
		}

		result = CreateAppointmentResult{
			AppointmentID: apptID,
			PaymentID:     payID,
			PriceCents:    priceCents,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Emit(ctx, audit.Event{
		Actor:      principal.ID,
		Action:     "appointment.create",
		EntityKind: "appointment",
		EntityID:   result.AppointmentID,
		After:      result,
		At:         now,
	})
	return &result, nil
}

func (uc *appointmentUseCaseImpl) UpdateStatus(ctx context.Context, principal shared.Principal, id uuid.UUID, status string) error {
	next, err := appointment.NewStatus(status)
	if err != nil {
		return errs.Mark(err, ErrDomainValidation)
	}

	now := uc.clock.Now()
	var before string

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Appointments().LockForUpdate(ctx, tx.DB(), id)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return ErrAppointmentNotFound
			}
			return derr
		}
		before = snap.Status

		// Customers may only cancel their own appointments; other
		// transitions need staff capability enforced at the route.
		if !principal.Staff() {
			if snap.UserID != principal.ID {
				return ErrPermissionDenied
			}
			if next != appointment.StatusCancelled {
				return ErrPermissionDenied
			}
		}

		current, derr := appointment.NewStatus(snap.Status)
		if derr != nil {
			return derr
		}
		if !current.CanTransitionTo(next) {
			return ErrInvalidTransition
		}

		var completedAt *time.Time
		if next == appointment.StatusCompleted {
			completedAt = &now
		}
		if derr = tx.Appointments().UpdateStatus(ctx, tx.DB(), id, next, completedAt); derr != nil {
			return derr
		}
		snap.Status = next.String()

		if next == appointment.StatusCompleted {
			pay, payErr := tx.Reads().PaymentByAppointmentID(ctx, id)
			if payErr != nil {
				if infra.IsKind(payErr, infra.KindNotFound) {
					return nil
				}
				return payErr
			}
			return settleIfComplete(ctx, tx, snap, pay, uc.policy, now)
		}
		return nil
	})
	if err != nil {
		return err
	}

	uc.audit.Emit(ctx, audit.Event{
		Actor:      principal.ID,
		Action:     "appointment.update_status",
		EntityKind: "appointment",
		EntityID:   id,
		Before:     before,
		After:      next.String(),
		At:         now,
	})
	return nil
}

func (uc *appointmentUseCaseImpl) Rate(ctx context.Context, principal shared.Principal, id uuid.UUID, ratingValue int, review string) error {
	rating, err := appointment.NewRating(ratingValue)
	if err != nil {
		return ErrInvalidRating
	}

	now := uc.clock.Now()
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().AppointmentByID(ctx, id)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return ErrAppointmentNotFound
			}
			return derr
		}
		if snap.UserID != principal.ID {
			return ErrPermissionDenied
		}
		if snap.Status != appointment.StatusCompleted.String() {
			return ErrNotCompleted
		}
		return tx.Appointments().SetRating(ctx, tx.DB(), id, rating.Value(), review)
	})
	if err != nil {
		return err
	}

	uc.audit.Emit(ctx, audit.Event{
		Actor:      principal.ID,
		Action:     "appointment.rate",
		EntityKind: "appointment",
		EntityID:   id,
		After:      ratingValue,
		At:         now,
	})
	return nil
}
