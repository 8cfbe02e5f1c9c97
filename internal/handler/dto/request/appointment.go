package request

import (
	"strings"

	"washbook/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateAppointmentRequest struct {
	ServiceID     uuid.UUID `json:"service_id" binding:"required"`
	Date          string    `json:"date" binding:"required"`
	StartTime     string    `json:"start_time" binding:"required"`
	VehicleType   string    `json:"vehicle_type" binding:"required"`
	LicensePlate  string    `json:"license_plate" binding:"required"`
	VehicleModel  string    `json:"vehicle_model,omitempty"`
	VehicleColor  string    `json:"vehicle_color,omitempty"`
	PaymentMethod string    `json:"payment_method" binding:"required"`
	Notes         string    `json:"notes,omitempty"`
}

func (r CreateAppointmentRequest) ToCommand() commands.CreateAppointmentRequest {
	return commands.CreateAppointmentRequest{
		ServiceID:    r.ServiceID,
		Date:         strings.TrimSpace(r.Date),
		StartTime:    strings.TrimSpace(r.StartTime),
		VehicleType:  r.VehicleType,
		LicensePlate: strings.TrimSpace(r.LicensePlate),
		VehicleModel: strings.TrimSpace(r.VehicleModel),
		VehicleColor: strings.TrimSpace(r.VehicleColor),
		Method:       r.PaymentMethod,
		Notes:        strings.TrimSpace(r.Notes),
	}
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type RateAppointmentRequest struct {
	Rating int    `json:"rating" binding:"required,min=1,max=5"`
	Review string `json:"review,omitempty"`
}

type UpdatePaymentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
