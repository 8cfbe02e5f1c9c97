package components

import (
	"context"
	"log/slog"

	"washbook/internal/pkg/config"
	"washbook/internal/usecase/commands"
	"washbook/internal/usecase/shared"
	"washbook/internal/worker"

	"go.uber.org/fx"
)

var WorkerModule = fx.Module("worker",
	fx.Provide(
		func(uow shared.UnitOfWork, loyalty commands.LoyaltyCommands, cfg config.Config, logger *slog.Logger) *worker.OutboxWorker {
			return worker.NewOutboxWorker(uow, loyalty, cfg.Outbox, logger)
		},
	),
	fx.Invoke(startOutboxWorker),
)

func startOutboxWorker(lc fx.Lifecycle, w *worker.OutboxWorker) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			w.Start(context.WithoutCancel(ctx))
			return nil
		},
		OnStop: func(_ context.Context) error {
			w.Stop()
			return nil
		},
	})
}
