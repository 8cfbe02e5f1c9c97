package commands

import (
	"context"
	"errors"
	"time"

	"washbook/internal/audit"
	"washbook/internal/domain/coupon"
	"washbook/internal/infra"
	"washbook/internal/pkg/clock"
	"washbook/internal/pkg/errs"
	"washbook/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrCouponNotFound       = errs.New("coupon not found")
	ErrCouponNotActive      = errs.New("coupon is not active")
	ErrBelowMinOrder        = errs.New("order total is below coupon minimum")
	ErrCouponAlreadyApplied = errs.New("coupon already applied")
	ErrCouponCodeTaken      = errs.New("coupon code already exists")
)

type ValidateCouponResult struct {
	CouponID      uuid.UUID
	Code          string
	Kind          string
	DiscountCents int64
}

type ApplyCouponResult struct {
	DiscountCents   int64
	FinalPriceCents int64
}

type UpsertCouponRequest struct {
	Code             string
	Description      string
	Kind             string
	DiscountValue    int64
	MinOrderCents    *int64
	MaxDiscountCents *int64
	UsageLimit       *int
	IsActive         bool
	ValidFrom        time.Time
	ValidUntil       time.Time
}

type CouponCommands interface {
	Validate(ctx context.Context, code string, orderCents int64) (*ValidateCouponResult, error)
	Apply(ctx context.Context, principal shared.Principal, appointmentID uuid.UUID, code string) (*ApplyCouponResult, error)
	Create(ctx context.Context, principal shared.Principal, req UpsertCouponRequest) (uuid.UUID, error)
	Update(ctx context.Context, principal shared.Principal, id uuid.UUID, req UpsertCouponRequest) error
	Delete(ctx context.Context, principal shared.Principal, id uuid.UUID) error
}

type couponUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
	audit audit.Sink
}

func NewCouponUseCase(uow shared.UnitOfWork, clk clock.Clock, sink audit.Sink) CouponCommands {
	return &couponUseCaseImpl{uow: uow, clock: clk, audit: sink}
}

func (uc *couponUseCaseImpl) Validate(ctx context.Context, code string, orderCents int64) (*ValidateCouponResult, error) {
	snap, err := uc.uow.CommandReads().CouponByCode(ctx, code)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrCouponNotFound
		}
		return nil, err
	}

	entity := couponFromSnapshot(snap)
	discount, err := entity.DiscountFor(orderCents, uc.clock.Now())
	if err != nil {
		return nil, mapCouponDomainErr(err)
	}

	return &ValidateCouponResult{
		CouponID:      snap.ID,
		Code:          snap.Code,
		Kind:          snap.Kind,
		DiscountCents: discount,
	}, nil
}

func (uc *couponUseCaseImpl) Apply(ctx context.Context, principal shared.Principal, appointmentID uuid.UUID, code string) (*ApplyCouponResult, error) {
	now := uc.clock.Now()
	var result ApplyCouponResult
	var couponID uuid.UUID

	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		appt, derr := tx.Appointments().LockForUpdate(ctx, tx.DB(), appointmentID)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return ErrAppointmentNotFound
			}
			return derr
		}
		if appt.UserID != principal.ID && !principal.Staff() {
			return ErrPermissionDenied
		}
		if appt.CouponID != nil {
			return ErrCouponAlreadyApplied
		}

		snap, derr := tx.Reads().CouponByCode(ctx, code)
		if derr != nil {
			if infra.IsKind(derr, infra.KindNotFound) {
				return ErrCouponNotFound
			}
			return derr
		}
		couponID = snap.ID

		entity := couponFromSnapshot(snap)
		discount, derr := entity.DiscountFor(appt.PriceCents, now)
		if derr != nil {
			return mapCouponDomainErr(derr)
		}

		// The conditional update is the real guard against exhaustion
		// races; the validity check above only produces nicer errors.
		affected, derr := tx.Coupons().ConsumeUse(ctx, tx.DB(), snap.ID)
		if derr != nil {
			return derr
		}
		if affected == 0 {
			return ErrCouponNotActive
		}

		finalPrice := appt.PriceCents - discount
		if finalPrice < 0 {
			finalPrice = 0
		}

		if derr = tx.Appointments().ApplyCoupon(ctx, tx.DB(), appointmentID, snap.ID, discount, finalPrice); derr != nil {
			if infra.IsKind(derr, infra.KindConflict) {
				return ErrCouponAlreadyApplied
			}
			return derr
		}
		if derr = tx.Coupons().RecordUsage(ctx, tx.DB(), snap.ID, appt.UserID, appointmentID, discount); derr != nil {
			if infra.IsKind(derr, infra.KindDuplicateKey) {
				return ErrCouponAlreadyApplied
			}
			return derr
		}
		if derr = tx.Payments().UpdateAmount(ctx, tx.DB(), appointmentID, finalPrice); derr != nil {
			if !infra.IsKind(derr, infra.KindConflict) {
				return derr
			}
		}

		result = ApplyCouponResult{DiscountCents: discount, FinalPriceCents: finalPrice}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Emit(ctx, audit.Event{
		Actor:      principal.ID,
		Action:     "coupon.apply",
		EntityKind: "coupon",
		EntityID:   couponID,
		After:      result,
		At:         now,
	})
	return &result, nil
}

func (uc *couponUseCaseImpl) Create(ctx context.Context, principal shared.Principal, req UpsertCouponRequest) (uuid.UUID, error) {
	entity, err := couponFromRequest(uuid.Nil, req, principal.ID)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrDomainValidation)
	}

	var id uuid.UUID
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		created, derr := tx.Coupons().Create(ctx, tx.DB(), entity)
		if derr != nil {
			if infra.IsKind(derr, infra.KindDuplicateKey) {
				return ErrCouponCodeTaken
			}
			return derr
		}
		id = created
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	uc.audit.Emit(ctx, audit.Event{
		Actor:      principal.ID,
		Action:     "coupon.create",
		EntityKind: "coupon",
		EntityID:   id,
		After:      req.Code,
		At:         uc.clock.Now(),
	})
	return id, nil
}

func (uc *couponUseCaseImpl) Update(ctx context.Context, principal shared.Principal, id uuid.UUID, req UpsertCouponRequest) error {
	entity, err := couponFromRequest(id, req, principal.ID)
	if err != nil {
		return errs.Mark(err, ErrDomainValidation)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		derr := tx.Coupons().Update(ctx, tx.DB(), id, entity)
		if infra.IsKind(derr, infra.KindNotFound) {
			return ErrCouponNotFound
		}
		return derr
	})
	if err != nil {
		return err
	}

	uc.audit.Emit(ctx, audit.Event{
		Actor:      principal.ID,
		Action:     "coupon.update",
		EntityKind: "coupon",
		EntityID:   id,
		After:      req,
		At:         uc.clock.Now(),
	})
	return nil
}

func (uc *couponUseCaseImpl) Delete(ctx context.Context, principal shared.Principal, id uuid.UUID) error {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		derr := tx.Coupons().Delete(ctx, tx.DB(), id)
		if infra.IsKind(derr, infra.KindNotFound) {
			return ErrCouponNotFound
		}
		return derr
	})
	if err != nil {
		return err
	}

	uc.audit.Emit(ctx, audit.Event{
		Actor:      principal.ID,
		Action:     "coupon.delete",
		EntityKind: "coupon",
		EntityID:   id,
		At:         uc.clock.Now(),
	})
	return nil
}

func couponFromSnapshot(snap *shared.CouponSnapshot) *coupon.Coupon {
	return coupon.Reconstruct(
		snap.ID,
		coupon.Code(snap.Code),
		"",
		coupon.Kind(snap.Kind),
		snap.DiscountValue,
		snap.MinOrderCents,
		snap.MaxDiscountCents,
		snap.UsageLimit,
		snap.UsedCount,
		snap.IsActive,
		snap.ValidFrom,
		snap.ValidUntil,
		uuid.Nil,
	)
}

func couponFromRequest(id uuid.UUID, req UpsertCouponRequest, createdBy uuid.UUID) (*coupon.Coupon, error) {
	code, err := coupon.NewCode(req.Code)
	if err != nil {
		return nil, err
	}
	kind, err := coupon.NewKind(req.Kind)
	if err != nil {
		return nil, err
	}
	return coupon.NewCoupon(
		id,
		code,
		req.Description,
		kind,
		req.DiscountValue,
		req.MinOrderCents,
		req.MaxDiscountCents,
		req.UsageLimit,
		req.IsActive,
		req.ValidFrom,
		req.ValidUntil,
		createdBy,
	)
}

func mapCouponDomainErr(err error) error {
	switch {
	case errors.Is(err, coupon.ErrCouponNotActive):
		return ErrCouponNotActive
	case errors.Is(err, coupon.ErrBelowMinOrder):
		return ErrBelowMinOrder
	default:
		return err
	}
}
