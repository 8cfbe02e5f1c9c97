package worker

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"washbook/internal/pkg/config"
	"washbook/internal/usecase/commands"
	"washbook/internal/usecase/shared"
)

// OutboxWorker drains pending outbox jobs. Delivery is at-least-once: a job
// stays pending until its handler commits, and the handlers tolerate
// redelivery.
type OutboxWorker struct {
	uow     shared.UnitOfWork
	loyalty commands.LoyaltyCommands
	cfg     config.OutboxConfig
	logger  *slog.Logger

	done chan struct{}
}

func NewOutboxWorker(uow shared.UnitOfWork, loyalty commands.LoyaltyCommands, cfg config.OutboxConfig, logger *slog.Logger) *OutboxWorker {
	return &OutboxWorker{
		uow:     uow,
		loyalty: loyalty,
		cfg:     cfg,
		logger:  logger,
		done:    make(chan struct{}),
	}
}

func (w *OutboxWorker) Start(ctx context.Context) {
	go w.loop(ctx)
}

func (w *OutboxWorker) Stop() {
	close(w.done)
}

func (w *OutboxWorker) loop(ctx context.Context) {
	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case <-ticker.C:
			if err := w.RunOnce(ctx); err != nil {
				w.logger.Error("outbox poll failed", "error", err.Error())
			}
		}
	}
}

// RunOnce claims one batch and processes it. Exposed for tests and for
// draining on demand.
func (w *OutboxWorker) RunOnce(ctx context.Context) error {
	var jobs []shared.OutboxJob

	err := w.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		claimed, derr := tx.Outbox().ClaimPending(ctx, tx.DB(), int32(w.cfg.BatchSize), time.Now(), w.cfg.ClaimTimeout)
		if derr != nil {
			return derr
		}
		jobs = claimed
		return nil
	})
	if err != nil {
		return err
	}

	for _, job := range jobs {
		w.process(ctx, job)
	}
	return nil
}

func (w *OutboxWorker) process(ctx context.Context, job shared.OutboxJob) {
	var handlerErr error

	switch job.Kind {
	case commands.JobKindLoyaltyAccrual:
		var payload commands.LoyaltyAccrualPayload
		if handlerErr = json.Unmarshal(job.Payload, &payload); handlerErr == nil {
			handlerErr = w.loyalty.SettleAccrual(ctx, payload.UserID, payload.AppointmentID, payload.Points, payload.CompletedAt)
		}
	default:
		w.logger.Warn("unknown outbox job kind", "job_id", job.ID, "kind", job.Kind)
		handlerErr = nil
	}

	err := w.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if handlerErr == nil {
			return tx.Outbox().MarkDone(ctx, tx.DB(), job.ID)
		}

		var retryAt *time.Time
		if int(job.Attempts)+1 < w.cfg.MaxAttempts {
			// Linear backoff keyed to the attempt count
			next := time.Now().Add(time.Duration(job.Attempts+1) * w.cfg.PollInterval)
			retryAt = &next
		}
		return tx.Outbox().MarkFailed(ctx, tx.DB(), job.ID, handlerErr.Error(), retryAt)
	})
	if err != nil {
		w.logger.Error("failed to finalize outbox job", "job_id", job.ID, "error", err.Error())
	}
	if handlerErr != nil {
		w.logger.Warn("outbox job failed", "job_id", job.ID, "kind", job.Kind,
			"attempts", job.Attempts+1, "error", handlerErr.Error())
	}
}
