package queries

import (
	"context"

	"washbook/internal/pkg/errs"
	"washbook/internal/usecase/shared"

	"github.com/google/uuid"
)

var ErrAppointmentNotVisible = errs.New("appointment not visible to caller")

const defaultListLimit = 50

type AppointmentQueries interface {
	GetByID(ctx context.Context, principal shared.Principal, id uuid.UUID) (*AppointmentView, error)
	List(ctx context.Context, principal shared.Principal, limit int) ([]*AppointmentListItem, error)
	Stats(ctx context.Context, principal shared.Principal) (*AppointmentStatsView, error)
	GetPayment(ctx context.Context, principal shared.Principal, paymentID uuid.UUID) (*PaymentView, error)
}

type AppointmentViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AppointmentView, error)
	ListByUser(ctx context.Context, userID uuid.UUID, limit int32) ([]*AppointmentListItem, error)
	ListAll(ctx context.Context, limit int32) ([]*AppointmentListItem, error)
	Stats(ctx context.Context, userID *uuid.UUID) (*AppointmentStatsView, error)
}

type PaymentViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PaymentView, error)
}

type appointmentQueriesImpl struct {
	repo     AppointmentViewRepo
	payments PaymentViewRepo
}

func NewAppointmentQueries(repo AppointmentViewRepo, payments PaymentViewRepo) AppointmentQueries {
	return &appointmentQueriesImpl{repo: repo, payments: payments}
}

func (q *appointmentQueriesImpl) GetByID(ctx context.Context, principal shared.Principal, id uuid.UUID) (*AppointmentView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if view.UserID != principal.ID && !principal.Staff() {
		return nil, ErrAppointmentNotVisible
	}
	return view, nil
}

func (q *appointmentQueriesImpl) List(ctx context.Context, principal shared.Principal, limit int) ([]*AppointmentListItem, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if principal.Staff() {
		return q.repo.ListAll(ctx, int32(limit))
	}
	return q.repo.ListByUser(ctx, principal.ID, int32(limit))
}

func (q *appointmentQueriesImpl) Stats(ctx context.Context, principal shared.Principal) (*AppointmentStatsView, error) {
	if principal.Staff() {
		return q.repo.Stats(ctx, nil)
	}
	userID := principal.ID
	return q.repo.Stats(ctx, &userID)
}

func (q *appointmentQueriesImpl) GetPayment(ctx context.Context, principal shared.Principal, paymentID uuid.UUID) (*PaymentView, error) {
	view, err := q.payments.FindByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if !principal.Staff() {
		appt, err := q.repo.FindByID(ctx, view.AppointmentID)
		if err != nil {
			return nil, err
		}
		if appt.UserID != principal.ID {
			return nil, ErrAppointmentNotVisible
		}
	}
	return view, nil
}
