package shared

import (
	"time"

	"washbook/internal/domain/user"

	"github.com/google/uuid"
)

// Principal identifies the authenticated caller. Commands receive it
// explicitly instead of reading request-scoped globals.
type Principal struct {
	ID   uuid.UUID
	Role user.Role
}

func (p Principal) Staff() bool {
	return p.Role.Staff()
}

func (p Principal) Admin() bool {
	return p.Role == user.RoleAdmin
}

type ServiceSnapshot struct {
	ID              uuid.UUID
	Name            string
	Category        string
	DurationMinutes int
	IsActive        bool
}

type TemplateSnapshot struct {
	ID              uuid.UUID
	DayOfWeek       int
	StartMinutes    int
	EndMinutes      int
	MaxAppointments int
	IsAvailable     bool
}

type CouponSnapshot struct {
	ID               uuid.UUID
	Code             string
	Kind             string
	DiscountValue    int64
	MinOrderCents    *int64
	MaxDiscountCents *int64
	UsageLimit       *int
	UsedCount        int
	ValidFrom        time.Time
	ValidUntil       time.Time
	IsActive         bool
}

type AppointmentSnapshot struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	ServiceID       uuid.UUID
	Date            time.Time
	StartMinutes    int
	Status          string
	VehicleType     string
	PriceCents      int64
	DiscountCents   int64
	FinalPriceCents int64
	CouponID        *uuid.UUID
	Rating          *int
}

type PaymentSnapshot struct {
	ID            uuid.UUID
	AppointmentID uuid.UUID
	Status        string
	Method        string
	AmountCents   int64
	PaidAt        *time.Time
}

type AccountSnapshot struct {
	UserID             uuid.UUID
	Points             int
	TotalServices      int
	FreeServicesEarned int
	FreeServicesUsed   int
	LastServiceAt      *time.Time
}

type RewardSnapshot struct {
	ID               uuid.UUID
	Name             string
	Description      string
	Type             string
	PointsRequired   int
	RewardValueCents *int64
	ServiceID        *uuid.UUID
	IsActive         bool
}

type TierSnapshot struct {
	ID              uuid.UUID
	Name            string
	MinPoints       int
	MaxPoints       *int
	DiscountPercent float64
	Color           string
}

type OutboxJob struct {
	ID       uuid.UUID
	Kind     string
	Payload  []byte
	Attempts int32
	RunAt    time.Time
}
