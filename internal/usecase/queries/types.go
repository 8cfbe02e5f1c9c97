package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)

type ServiceView struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	DurationMinutes int       `json:"duration_minutes"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type ServicePriceView struct {
	VehicleType string `json:"vehicle_type"`
	PriceCents  int64  `json:"price_cents"`
}

type SlotView struct {
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	MaxAppointments int    `json:"max_appointments"`
}

type AppointmentView struct {
	ID              uuid.UUID  `json:"id"`
	UserID          uuid.UUID  `json:"user_id"`
	UserName        string     `json:"user_name"`
	ServiceID       uuid.UUID  `json:"service_id"`
	ServiceName     string     `json:"service_name"`
	Date            string     `json:"date"`
	StartTime       string     `json:"start_time"`
	Status          string     `json:"status"`
	VehicleType     string     `json:"vehicle_type"`
	LicensePlate    string     `json:"license_plate"`
	VehicleModel    string     `json:"vehicle_model,omitempty"`
	VehicleColor    string     `json:"vehicle_color,omitempty"`
	PriceCents      int64      `json:"price_cents"`
	DiscountCents   int64      `json:"discount_cents"`
	FinalPriceCents int64      `json:"final_price_cents"`
	CouponID        *uuid.UUID `json:"coupon_id,omitempty"`
	CouponCode      *string    `json:"coupon_code,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	Rating          *int       `json:"rating,omitempty"`
	Review          string     `json:"review,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type AppointmentListItem struct {
	ID              uuid.UUID `json:"id"`
	ServiceName     string    `json:"service_name"`
	Date            string    `json:"date"`
	StartTime       string    `json:"start_time"`
	Status          string    `json:"status"`
	FinalPriceCents int64     `json:"final_price_cents"`
	CreatedAt       time.Time `json:"created_at"`
}

type AppointmentStatsView struct {
	Total         int64    `json:"total"`
	Completed     int64    `json:"completed"`
	Cancelled     int64    `json:"cancelled"`
	NoShow        int64    `json:"no_show"`
	Upcoming      int64    `json:"upcoming"`
	RevenueCents  int64    `json:"revenue_cents"`
	AverageRating *float64 `json:"average_rating,omitempty"`
}

type PaymentView struct {
	ID            uuid.UUID  `json:"id"`
	AppointmentID uuid.UUID  `json:"appointment_id"`
	AmountCents   int64      `json:"amount_cents"`
	Method        string     `json:"method"`
	Status        string     `json:"status"`
	PaidAt        *time.Time `json:"paid_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

type CouponView struct {
	ID               uuid.UUID `json:"id"`
	Code             string    `json:"code"`
	Description      string    `json:"description"`
	Kind             string    `json:"kind"`
	DiscountValue    int64     `json:"discount_value"`
	MinOrderCents    *int64    `json:"min_order_cents,omitempty"`
	MaxDiscountCents *int64    `json:"max_discount_cents,omitempty"`
	UsageLimit       *int      `json:"usage_limit,omitempty"`
	UsedCount        int       `json:"used_count"`
	ValidFrom        time.Time `json:"valid_from"`
	ValidUntil       time.Time `json:"valid_until"`
	IsActive         bool      `json:"is_active"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type TierView struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	MinPoints       int       `json:"min_points"`
	MaxPoints       *int      `json:"max_points,omitempty"`
	DiscountPercent float64   `json:"discount_percent"`
	Color           string    `json:"color"`
}

type RewardView struct {
	ID               uuid.UUID  `json:"id"`
	Name             string     `json:"name"`
	Description      string     `json:"description"`
	Type             string     `json:"type"`
	PointsRequired   int        `json:"points_required"`
	RewardValueCents *int64     `json:"reward_value_cents,omitempty"`
	ServiceID        *uuid.UUID `json:"service_id,omitempty"`
}

type LoyaltyStatusView struct {
	Points             int          `json:"points"`
	TotalServices      int          `json:"total_services"`
	FreeServicesEarned int          `json:"free_services_earned"`
	FreeServicesUsed   int          `json:"free_services_used"`
	LastServiceAt      *time.Time   `json:"last_service_at,omitempty"`
	CurrentTier        *TierView    `json:"current_tier,omitempty"`
	NextTier           *TierView    `json:"next_tier,omitempty"`
	PointsToNextTier   *int         `json:"points_to_next_tier,omitempty"`
	AffordableRewards  []RewardView `json:"affordable_rewards"`
}

type LoyaltyTransactionView struct {
	ID            uuid.UUID  `json:"id"`
	Kind          string     `json:"kind"`
	Points        int        `json:"points"`
	Reason        string     `json:"reason"`
	RewardID      *uuid.UUID `json:"reward_id,omitempty"`
	AppointmentID *uuid.UUID `json:"appointment_id,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

type AuthorizedUserView struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	Role     string    `json:"role"`
	IsActive bool      `json:"is_active"`
}
