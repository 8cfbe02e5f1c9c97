//go:build unit || e2e

package builder

import (
	"time"

	domappt "washbook/internal/domain/appointment"
	"washbook/internal/domain/schedule"

	"github.com/google/uuid"
)

type AppointmentBuilder struct {
	CustomerID      uuid.UUID
	ServiceID       uuid.UUID
	Date            time.Time
	StartTime       string
	VehicleType     string
	LicensePlate    string
	VehicleModel    string
	VehicleColor    string
	TotalPriceCents int64
	Notes           string
	Now             time.Time
}

func NewAppointmentBuilder() *AppointmentBuilder {
	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	return &AppointmentBuilder{
		CustomerID:      uuid.New(),
		ServiceID:       uuid.New(),
		Date:            now.AddDate(0, 0, 1),
		StartTime:       "10:00",
		VehicleType:     "medium_car",
		LicensePlate:    "ABC1D23",
		VehicleModel:    "Corolla",
		VehicleColor:    "silver",
		TotalPriceCents: 8000,
		Now:             now,
	}
}

func (b *AppointmentBuilder) With(mutate func(*AppointmentBuilder)) *AppointmentBuilder {
	mutate(b)
	return b
}

func (b *AppointmentBuilder) BuildDomain() (*domappt.Appointment, error) {
	start, err := schedule.ParseTimeOfDay(b.StartTime)
	if err != nil {
		return nil, err
	}
	vehicle, err := domappt.NewVehicle(b.VehicleType, b.LicensePlate, b.VehicleModel, b.VehicleColor)
	if err != nil {
		return nil, err
	}
	return domappt.NewAppointment(
		b.CustomerID, b.ServiceID, b.Date, start, vehicle,
		b.TotalPriceCents, b.Notes, b.Now,
	)
}
