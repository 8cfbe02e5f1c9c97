package shared

import (
	"context"
	"time"

	"washbook/internal/domain/appointment"
	"washbook/internal/domain/coupon"
	"washbook/internal/domain/loyalty"
	"washbook/internal/domain/payment"
	"washbook/internal/domain/schedule"
	"washbook/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Appointments() AppointmentRepository
	Payments() PaymentRepository
	Coupons() CouponRepository
	Loyalty() LoyaltyRepository
	Outbox() OutboxRepository
	Users() UserRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	ServiceByID(ctx context.Context, id uuid.UUID) (*ServiceSnapshot, error)
	ServicePrice(ctx context.Context, serviceID uuid.UUID, vehicleType string) (int64, error)
	TemplateFor(ctx context.Context, dayOfWeek int, start schedule.TimeOfDay) (*TemplateSnapshot, error)
	OccupiedCountAt(ctx context.Context, date time.Time, start schedule.TimeOfDay) (int64, error)
	CouponByCode(ctx context.Context, code string) (*CouponSnapshot, error)
	AppointmentByID(ctx context.Context, id uuid.UUID) (*AppointmentSnapshot, error)
	PaymentByID(ctx context.Context, id uuid.UUID) (*PaymentSnapshot, error)
	PaymentByAppointmentID(ctx context.Context, appointmentID uuid.UUID) (*PaymentSnapshot, error)
	AccountByUserID(ctx context.Context, userID uuid.UUID) (*AccountSnapshot, error)
	RewardByID(ctx context.Context, id uuid.UUID) (*RewardSnapshot, error)
	ActiveTiers(ctx context.Context) ([]TierSnapshot, error)
}

type AppointmentRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, appt *appointment.Appointment) (uuid.UUID, error)
	UpdateStatus(ctx context.Context, dbtx db.DBTX, id uuid.UUID, status appointment.Status, completedAt *time.Time) error
	SetRating(ctx context.Context, dbtx db.DBTX, id uuid.UUID, rating int, review string) error
	ApplyCoupon(ctx context.Context, dbtx db.DBTX, id, couponID uuid.UUID, discountCents, finalPriceCents int64) error
	LockForUpdate(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*AppointmentSnapshot, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, pay *payment.Payment) (uuid.UUID, error)
	UpdateStatus(ctx context.Context, dbtx db.DBTX, id uuid.UUID, status payment.Status, paidAt *time.Time) error
	UpdateAmount(ctx context.Context, dbtx db.DBTX, appointmentID uuid.UUID, amountCents int64) error
}

type CouponRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, c *coupon.Coupon) (uuid.UUID, error)
	Update(ctx context.Context, dbtx db.DBTX, id uuid.UUID, c *coupon.Coupon) error
	Delete(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error
	// ConsumeUse increments used_count iff the usage limit still allows it.
	// Returns the number of rows updated (0 means exhausted or inactive).
	ConsumeUse(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (int64, error)
	RecordUsage(ctx context.Context, dbtx db.DBTX, couponID, userID, appointmentID uuid.UUID, discountCents int64) error
}

type LoyaltyRepository interface {
	EnsureAccount(ctx context.Context, dbtx db.DBTX, userID uuid.UUID) error
	// Credit adds points and returns the new balance.
	Credit(ctx context.Context, dbtx db.DBTX, userID uuid.UUID, points int) (int, error)
	// Debit decrements points iff the balance covers the amount, returning
	// the remaining balance. ok is false when the balance falls short.
	Debit(ctx context.Context, dbtx db.DBTX, userID uuid.UUID, points int) (remaining int, ok bool, err error)
	// TotalEarned sums the earned side of the user's transaction ledger.
	TotalEarned(ctx context.Context, dbtx db.DBTX, userID uuid.UUID) (int, error)
	RecordService(ctx context.Context, dbtx db.DBTX, userID uuid.UUID, at time.Time) error
	// HasAccrualForAppointment reports whether an earn transaction already
	// references the appointment, which makes accrual redelivery a no-op.
	HasAccrualForAppointment(ctx context.Context, dbtx db.DBTX, appointmentID uuid.UUID) (bool, error)
	InsertTransaction(ctx context.Context, dbtx db.DBTX, trx *loyalty.Transaction) (uuid.UUID, error)
	CreateTier(ctx context.Context, dbtx db.DBTX, t *loyalty.Tier) (uuid.UUID, error)
	CreateReward(ctx context.Context, dbtx db.DBTX, r *loyalty.Reward) (uuid.UUID, error)
}

type OutboxRepository interface {
	Enqueue(ctx context.Context, dbtx db.DBTX, kind string, payload []byte, runAt time.Time) error
	// ClaimPending also returns jobs whose previous claim went stale, so a
	// worker crash between claiming and finalizing cannot strand them.
	ClaimPending(ctx context.Context, dbtx db.DBTX, limit int32, now time.Time, claimTimeout time.Duration) ([]OutboxJob, error)
	MarkDone(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error
	MarkFailed(ctx context.Context, dbtx db.DBTX, id uuid.UUID, lastError string, retryAt *time.Time) error
}

type UserRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, email, passwordHash, name, phone, role string) (uuid.UUID, error)
	UpdateLastLogin(ctx context.Context, dbtx db.DBTX, userID uuid.UUID) error
}
