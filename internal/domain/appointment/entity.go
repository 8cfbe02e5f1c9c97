package appointment

import (
	"time"

	"washbook/internal/domain/schedule"

	"github.com/google/uuid"
)

// Appointment is the booking aggregate. Its total price is mutable: coupon
// application reduces it after creation.
type Appointment struct {
	id              uuid.UUID
	customerID      uuid.UUID
	serviceID       uuid.UUID
	employeeID      *uuid.UUID
	date            time.Time
	startTime       schedule.TimeOfDay
	vehicle         Vehicle
	status          Status
	totalPriceCents int64
	notes           string
	rating          *Rating
	review          string
	createdAt       time.Time
	updatedAt       time.Time
}

func NewAppointment(
	customerID, serviceID uuid.UUID,
	date time.Time,
	startTime schedule.TimeOfDay,
	vehicle Vehicle,
	totalPriceCents int64,
	notes string,
	now time.Time,
) (*Appointment, error) {
	if totalPriceCents < 0 {
		return nil, ErrNegativePrice
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	if day.Before(today) {
		return nil, ErrPastDate
	}

	return &Appointment{
		id:              uuid.New(),
		customerID:      customerID,
		serviceID:       serviceID,
		date:            day,
		startTime:       startTime,
		vehicle:         vehicle,
		status:          StatusScheduled,
		totalPriceCents: totalPriceCents,
		notes:           notes,
	}, nil
}

func Reconstruct(
	id, customerID, serviceID uuid.UUID,
	employeeID *uuid.UUID,
	date time.Time,
	startTime schedule.TimeOfDay,
	vehicle Vehicle,
	status Status,
	totalPriceCents int64,
	notes string,
	rating *Rating,
	review string,
	createdAt, updatedAt time.Time,
) *Appointment {
	return &Appointment{
		id:              id,
		customerID:      customerID,
		serviceID:       serviceID,
		employeeID:      employeeID,
		date:            date,
		startTime:       startTime,
		vehicle:         vehicle,
		status:          status,
		totalPriceCents: totalPriceCents,
		notes:           notes,
		rating:          rating,
		review:          review,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// Transition moves the appointment to next, enforcing the lifecycle.
func (a *Appointment) Transition(next Status) error {
	if !a.status.CanTransitionTo(next) {
		return ErrIllegalTransition
	}
	a.status = next
	return nil
}

// Rate records a post-completion rating and review.
func (a *Appointment) Rate(rating Rating, review string) error {
	if a.status != StatusCompleted {
		return ErrNotCompleted
	}
	a.rating = &rating
	a.review = review
	return nil
}

// ApplyDiscount reduces the total, clamped at zero. A fixed discount may
// exceed the current total.
func (a *Appointment) ApplyDiscount(discountCents int64) int64 {
	newTotal := a.totalPriceCents - discountCents
	if newTotal < 0 {
		newTotal = 0
	}
	a.totalPriceCents = newTotal
	return newTotal
}

// Occupying reports whether the appointment still holds its slot.
func (a *Appointment) Occupying() bool {
	return a.status.Occupying()
}

func (a *Appointment) ID() uuid.UUID                 { return a.id }
func (a *Appointment) CustomerID() uuid.UUID         { return a.customerID }
func (a *Appointment) ServiceID() uuid.UUID          { return a.serviceID }
func (a *Appointment) EmployeeID() *uuid.UUID        { return a.employeeID }
func (a *Appointment) Date() time.Time               { return a.date }
func (a *Appointment) StartTime() schedule.TimeOfDay { return a.startTime }
func (a *Appointment) Vehicle() Vehicle              { return a.vehicle }
func (a *Appointment) Status() Status                { return a.status }
func (a *Appointment) TotalPriceCents() int64        { return a.totalPriceCents }
func (a *Appointment) Notes() string                 { return a.notes }
func (a *Appointment) Rating() *Rating               { return a.rating }
func (a *Appointment) Review() string                { return a.review }
func (a *Appointment) CreatedAt() time.Time          { return a.createdAt }
func (a *Appointment) UpdatedAt() time.Time          { return a.updatedAt }
