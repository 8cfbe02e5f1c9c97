package components

import (
	"log/slog"

	"washbook/internal/audit"
	"washbook/internal/pkg/clock"
	"washbook/internal/pkg/config"
	"washbook/internal/usecase"
	"washbook/internal/usecase/commands"
	"washbook/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(logger *slog.Logger) audit.Sink {
		return audit.NewSlogSink(logger)
	},
	func(cfg config.Config) commands.AccrualPolicy {
		return commands.NewAccrualPolicy(cfg.Loyalty)
	},
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewAuthCommands,
		commands.NewAppointmentUseCase,
		commands.NewPaymentUseCase,
		commands.NewCouponUseCase,
		commands.NewLoyaltyUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewCatalogQueries,
		queries.NewScheduleQueries,
		queries.NewAppointmentQueries,
		queries.NewCouponQueries,
		queries.NewLoyaltyQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
