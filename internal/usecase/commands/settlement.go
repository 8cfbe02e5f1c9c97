package commands

import (
	"context"
	"encoding/json"
	"time"

	"washbook/internal/pkg/config"
	"washbook/internal/usecase/shared"

	"github.com/google/uuid"
)

const JobKindLoyaltyAccrual = "loyalty_accrual"

// LoyaltyAccrualPayload is the outbox job body for a settled appointment.
type LoyaltyAccrualPayload struct {
	AppointmentID uuid.UUID `json:"appointment_id"`
	UserID        uuid.UUID `json:"user_id"`
	Points        int       `json:"points"`
	CompletedAt   time.Time `json:"completed_at"`
}

// AccrualPolicy decides how many points a settled appointment earns.
type AccrualPolicy func(finalPriceCents int64) int

func NewAccrualPolicy(cfg config.LoyaltyConfig) AccrualPolicy {
	return func(finalPriceCents int64) int {
		points := cfg.PointsPerService
		if cfg.PointsPerCurrencyUnit > 0 {
			points += int(finalPriceCents/100) * cfg.PointsPerCurrencyUnit
		}
		return points
	}
}

// settleIfComplete enqueues the loyalty accrual job once both the appointment
// and its payment reached completed. Runs inside the caller's transaction so
// the status change and the job commit together; actual accrual happens
// asynchronously and never blocks completion.
func settleIfComplete(
	ctx context.Context,
	tx shared.Tx,
	appt *shared.AppointmentSnapshot,
	pay *shared.PaymentSnapshot,
	policy AccrualPolicy,
	now time.Time,
) error {
	if appt.Status != "completed" || pay.Status != "completed" {
		return nil
	}

	points := policy(appt.FinalPriceCents)
	if points <= 0 {
		return nil
	}

	payload, err := json.Marshal(LoyaltyAccrualPayload{
		AppointmentID: appt.ID,
		UserID:        appt.UserID,
		Points:        points,
		CompletedAt:   now,
	})
	if err != nil {
		return err
	}

	return tx.Outbox().Enqueue(ctx, tx.DB(), JobKindLoyaltyAccrual, payload, now)
}
