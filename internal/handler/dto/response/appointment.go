package response

import (
	"washbook/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateAppointmentResponse struct {
	AppointmentID uuid.UUID `json:"appointment_id"`
	PaymentID     uuid.UUID `json:"payment_id"`
	PriceCents    int64     `json:"price_cents"`
}

func FromCreateAppointmentResult(r *commands.CreateAppointmentResult) *CreateAppointmentResponse {
	return &CreateAppointmentResponse{
		AppointmentID: r.AppointmentID,
		PaymentID:     r.PaymentID,
		PriceCents:    r.PriceCents,
	}
}

type CreatedResponse struct {
	ID uuid.UUID `json:"id"`
}
