package components

import (
	"washbook/internal/handler"
	"washbook/internal/handler/api"
	"washbook/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAuthHandler,
		api.NewCatalogHandler,
		api.NewAppointmentHandler,
		api.NewCouponHandler,
		api.NewLoyaltyHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
