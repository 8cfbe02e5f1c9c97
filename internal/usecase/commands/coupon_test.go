//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"washbook/internal/audit"
	"washbook/internal/domain/user"
	"washbook/internal/infra"
	"washbook/internal/infra/db"
	"washbook/internal/pkg/clock"
	"washbook/internal/usecase/commands"
	"washbook/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAppointmentRepo struct {
	shared.AppointmentRepository
	byID map[uuid.UUID]*shared.AppointmentSnapshot
}

func (r *fakeAppointmentRepo) LockForUpdate(_ context.Context, _ db.DBTX, id uuid.UUID) (*shared.AppointmentSnapshot, error) {
	snap, ok := r.byID[id]
	if !ok {
		return nil, infra.WrapRepoErr("appointment not found", nil, infra.KindNotFound)
	}
	return snap, nil
}

func (r *fakeAppointmentRepo) ApplyCoupon(_ context.Context, _ db.DBTX, id, couponID uuid.UUID, discountCents, finalPriceCents int64) error {
	snap := r.byID[id]
	snap.CouponID = &couponID
	snap.DiscountCents = discountCents
	snap.FinalPriceCents = finalPriceCents
	return nil
}

type usageKey struct {
	couponID      uuid.UUID
	appointmentID uuid.UUID
}

type fakeCouponRepo struct {
	shared.CouponRepository
	snap   *shared.CouponSnapshot
	usages map[usageKey]struct{}
}

func (r *fakeCouponRepo) ConsumeUse(_ context.Context, _ db.DBTX, id uuid.UUID) (int64, error) {
	if id != r.snap.ID || !r.snap.IsActive {
		return 0, nil
	}
	if r.snap.UsageLimit != nil && r.snap.UsedCount >= *r.snap.UsageLimit {
		return 0, nil
	}
	r.snap.UsedCount++
	return 1, nil
}

func (r *fakeCouponRepo) RecordUsage(_ context.Context, _ db.DBTX, couponID, userID, appointmentID uuid.UUID, discountCents int64) error {
	key := usageKey{couponID: couponID, appointmentID: appointmentID}
	if _, ok := r.usages[key]; ok {
		return infra.WrapRepoErr("coupon usage already recorded", nil, infra.KindDuplicateKey)
	}
	r.usages[key] = struct{}{}
	return nil
}

type fakePaymentRepo struct {
	shared.PaymentRepository
}

func (r *fakePaymentRepo) UpdateAmount(context.Context, db.DBTX, uuid.UUID, int64) error {
	return nil
}

type fakeCommandReads struct {
	shared.CommandReads
	coupon *shared.CouponSnapshot
}

func (r *fakeCommandReads) CouponByCode(_ context.Context, code string) (*shared.CouponSnapshot, error) {
	if r.coupon == nil || r.coupon.Code != code {
		return nil, infra.WrapRepoErr("coupon not found", nil, infra.KindNotFound)
	}
	return r.coupon, nil
}

type fakeTx struct {
	appts    *fakeAppointmentRepo
	coupons  *fakeCouponRepo
	payments *fakePaymentRepo
	reads    *fakeCommandReads
}

func (t *fakeTx) Appointments() shared.AppointmentRepository { return t.appts }
func (t *fakeTx) Payments() shared.PaymentRepository         { return t.payments }
func (t *fakeTx) Coupons() shared.CouponRepository           { return t.coupons }
func (t *fakeTx) Loyalty() shared.LoyaltyRepository          { return nil }
func (t *fakeTx) Outbox() shared.OutboxRepository            { return nil }
func (t *fakeTx) Users() shared.UserRepository               { return nil }
func (t *fakeTx) Reads() shared.CommandReads                 { return t.reads }
func (t *fakeTx) DB() db.DBTX                                { return nil }

type fakeUoW struct {
	tx *fakeTx
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, u.tx)
}

func (u *fakeUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *fakeUoW) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *fakeUoW) CommandReads() shared.CommandReads { return u.tx.reads }

type couponApplyFixture struct {
	uc        commands.CouponCommands
	principal shared.Principal
	appts     *fakeAppointmentRepo
	coupons   *fakeCouponRepo
}

func newCouponApplyFixture(t *testing.T, usageLimit *int, appointmentIDs ...uuid.UUID) *couponApplyFixture {
	t.Helper()

	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	userID := uuid.New()

	snap := &shared.CouponSnapshot{
		ID:            uuid.New(),
		Code:          "SAVE10",
		Kind:          "percentage",
		DiscountValue: 10,
		UsageLimit:    usageLimit,
		ValidFrom:     now.Add(-time.Hour),
		ValidUntil:    now.Add(24 * time.Hour),
		IsActive:      true,
	}

	appts := &fakeAppointmentRepo{byID: make(map[uuid.UUID]*shared.AppointmentSnapshot)}
	for _, id := range appointmentIDs {
		appts.byID[id] = &shared.AppointmentSnapshot{
			ID:         id,
			UserID:     userID,
			Status:     "scheduled",
			PriceCents: 8000,
		}
	}

	coupons := &fakeCouponRepo{snap: snap, usages: make(map[usageKey]struct{})}
	tx := &fakeTx{
		appts:    appts,
		coupons:  coupons,
		payments: &fakePaymentRepo{},
		reads:    &fakeCommandReads{coupon: snap},
	}

	return &couponApplyFixture{
		uc:        commands.NewCouponUseCase(&fakeUoW{tx: tx}, clock.NewFixedClock(now), audit.NopSink{}),
		principal: shared.Principal{ID: userID, Role: user.RoleCustomer},
		appts:     appts,
		coupons:   coupons,
	}
}

func TestCouponApply_ReuseAcrossAppointments(t *testing.T) {
	first := uuid.New()
	second := uuid.New()
	limit := 10
	fx := newCouponApplyFixture(t, &limit, first, second)
	ctx := context.Background()

	res, err := fx.uc.Apply(ctx, fx.principal, first, "SAVE10")
	require.NoError(t, err)
	assert.Equal(t, int64(800), res.DiscountCents)
	assert.Equal(t, int64(7200), res.FinalPriceCents)

	// The same customer books again: the coupon is good for the new
	// appointment as long as the usage limit holds.
	res, err = fx.uc.Apply(ctx, fx.principal, second, "SAVE10")
	require.NoError(t, err)
	assert.Equal(t, int64(800), res.DiscountCents)
	assert.Equal(t, 2, fx.coupons.snap.UsedCount)
}

func TestCouponApply_SameAppointmentRejected(t *testing.T) {
	apptID := uuid.New()
	fx := newCouponApplyFixture(t, nil, apptID)
	ctx := context.Background()

	_, err := fx.uc.Apply(ctx, fx.principal, apptID, "SAVE10")
	require.NoError(t, err)

	_, err = fx.uc.Apply(ctx, fx.principal, apptID, "SAVE10")
	assert.ErrorIs(t, err, commands.ErrCouponAlreadyApplied)
	assert.Equal(t, 1, fx.coupons.snap.UsedCount)
}

func TestCouponApply_UsageLimitExhausted(t *testing.T) {
	first := uuid.New()
	second := uuid.New()
	limit := 1
	fx := newCouponApplyFixture(t, &limit, first, second)
	ctx := context.Background()

	_, err := fx.uc.Apply(ctx, fx.principal, first, "SAVE10")
	require.NoError(t, err)

	_, err = fx.uc.Apply(ctx, fx.principal, second, "SAVE10")
	assert.ErrorIs(t, err, commands.ErrCouponNotActive)
}

func TestCouponApply_RacedUsageInsertRejected(t *testing.T) {
	apptID := uuid.New()
	fx := newCouponApplyFixture(t, nil, apptID)
	ctx := context.Background()

	// A concurrent request already recorded the usage but the snapshot
	// read raced ahead of it; the unique constraint is the backstop.
	fx.coupons.usages[usageKey{couponID: fx.coupons.snap.ID, appointmentID: apptID}] = struct{}{}

	_, err := fx.uc.Apply(ctx, fx.principal, apptID, "SAVE10")
	assert.ErrorIs(t, err, commands.ErrCouponAlreadyApplied)
}
