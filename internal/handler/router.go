package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"washbook/internal/handler/api"
	"washbook/internal/handler/middleware"
	"washbook/internal/pkg/config"
)

type route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
	Mw      []gin.HandlerFunc
}

func NewRouter(
	engine *gin.Engine,
	cfg config.Config,
	authHandler *api.AuthHandler,
	catalogHandler *api.CatalogHandler,
	appointmentHandler *api.AppointmentHandler,
	couponHandler *api.CouponHandler,
	loyaltyHandler *api.LoyaltyHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	setupMiddleware(engine, cfg)
	setupRoutes(engine, authHandler, catalogHandler, appointmentHandler, couponHandler, loyaltyHandler, authMiddleware)
}

func setupMiddleware(engine *gin.Engine, cfg config.Config) {
	// Recovery must be first (outermost) to catch panics from all other middleware
	engine.Use(middleware.CustomRecovery())
	engine.Use(middleware.NewCORSMiddleware(cfg.CORS))
	engine.Use(middleware.NewLogger(cfg.Log).LoggingMiddleware())
	engine.Use(middleware.ErrorHandler())
}

func setupRoutes(
	engine *gin.Engine,
	authHandler *api.AuthHandler,
	catalogHandler *api.CatalogHandler,
	appointmentHandler *api.AppointmentHandler,
	couponHandler *api.CouponHandler,
	loyaltyHandler *api.LoyaltyHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	engine.GET("/health", healthCheck)

	if gin.Mode() == gin.DebugMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	apiGroup := engine.Group("/api")
	{
		auth := apiGroup.Group("/auth")
		{
			addRoutes(auth, []route{
				{Method: http.MethodPost, Path: "/login", Handler: authHandler.Login},
				{Method: http.MethodPost, Path: "/register", Handler: authHandler.Register},
			})

			authRequired := auth.Group("")
			authRequired.Use(authMiddleware.RequireAuth())
			addRoutes(authRequired, []route{
				{Method: http.MethodGet, Path: "/me", Handler: authHandler.Me},
			})
		}

		services := apiGroup.Group("/services")
		{
			addRoutes(services, []route{
				{Method: http.MethodGet, Path: "", Handler: catalogHandler.ListServices},
				{Method: http.MethodGet, Path: "/:id", Handler: catalogHandler.GetService},
				{Method: http.MethodGet, Path: "/:id/prices", Handler: catalogHandler.ServicePrices},
			})
		}

		appointments := apiGroup.Group("/appointments")
		appointments.Use(authMiddleware.RequireAuth())
		{
			requireCap := authMiddleware.RequireCapability
			addRoutes(appointments, []route{
				{Method: http.MethodGet, Path: "/available-slots", Handler: catalogHandler.AvailableSlots},
				{Method: http.MethodPost, Path: "", Handler: appointmentHandler.Create, Mw: []gin.HandlerFunc{requireCap(middleware.CapAppointmentBook)}},
				{Method: http.MethodGet, Path: "", Handler: appointmentHandler.List, Mw: []gin.HandlerFunc{requireCap(middleware.CapAppointmentView)}},
				{Method: http.MethodGet, Path: "/stats", Handler: appointmentHandler.Stats, Mw: []gin.HandlerFunc{requireCap(middleware.CapStatsView)}},
				{Method: http.MethodGet, Path: "/:id", Handler: appointmentHandler.GetByID, Mw: []gin.HandlerFunc{requireCap(middleware.CapAppointmentView)}},
				{Method: http.MethodPatch, Path: "/:id/status", Handler: appointmentHandler.UpdateStatus, Mw: []gin.HandlerFunc{requireCap(middleware.CapAppointmentManage)}},
				{Method: http.MethodPost, Path: "/:id/rating", Handler: appointmentHandler.Rate, Mw: []gin.HandlerFunc{requireCap(middleware.CapAppointmentRate)}},
				{Method: http.MethodPost, Path: "/:id/coupon", Handler: couponHandler.Apply, Mw: []gin.HandlerFunc{requireCap(middleware.CapCouponApply)}},
			})
		}

		payments := apiGroup.Group("/payments")
		payments.Use(authMiddleware.RequireAuth())
		{
			requireCap := authMiddleware.RequireCapability
			addRoutes(payments, []route{
				{Method: http.MethodGet, Path: "/:id", Handler: appointmentHandler.GetPayment, Mw: []gin.HandlerFunc{requireCap(middleware.CapPaymentView)}},
				{Method: http.MethodPatch, Path: "/:id/status", Handler: appointmentHandler.UpdatePaymentStatus, Mw: []gin.HandlerFunc{requireCap(middleware.CapPaymentManage)}},
			})
		}

		coupons := apiGroup.Group("/coupons")
		coupons.Use(authMiddleware.RequireAuth())
		{
			requireCap := authMiddleware.RequireCapability
			addRoutes(coupons, []route{
				{Method: http.MethodPost, Path: "/validate", Handler: couponHandler.Validate, Mw: []gin.HandlerFunc{requireCap(middleware.CapCouponValidate)}},
				{Method: http.MethodGet, Path: "", Handler: couponHandler.List, Mw: []gin.HandlerFunc{requireCap(middleware.CapCouponManage)}},
				{Method: http.MethodPost, Path: "", Handler: couponHandler.Create, Mw: []gin.HandlerFunc{requireCap(middleware.CapCouponManage)}},
				{Method: http.MethodGet, Path: "/:id", Handler: couponHandler.GetByID, Mw: []gin.HandlerFunc{requireCap(middleware.CapCouponManage)}},
				{Method: http.MethodPut, Path: "/:id", Handler: couponHandler.Update, Mw: []gin.HandlerFunc{requireCap(middleware.CapCouponManage)}},
				{Method: http.MethodDelete, Path: "/:id", Handler: couponHandler.Delete, Mw: []gin.HandlerFunc{requireCap(middleware.CapCouponManage)}},
			})
		}

		loyalty := apiGroup.Group("/loyalty")
		loyalty.Use(authMiddleware.RequireAuth())
		{
			requireCap := authMiddleware.RequireCapability
			addRoutes(loyalty, []route{
				{Method: http.MethodGet, Path: "/status", Handler: loyaltyHandler.Status, Mw: []gin.HandlerFunc{requireCap(middleware.CapLoyaltyView)}},
				{Method: http.MethodGet, Path: "/tiers", Handler: loyaltyHandler.Tiers, Mw: []gin.HandlerFunc{requireCap(middleware.CapLoyaltyView)}},
				{Method: http.MethodGet, Path: "/rewards", Handler: loyaltyHandler.Rewards, Mw: []gin.HandlerFunc{requireCap(middleware.CapLoyaltyView)}},
				{Method: http.MethodGet, Path: "/transactions", Handler: loyaltyHandler.Transactions, Mw: []gin.HandlerFunc{requireCap(middleware.CapLoyaltyView)}},
				{Method: http.MethodPost, Path: "/redeem", Handler: loyaltyHandler.Redeem, Mw: []gin.HandlerFunc{requireCap(middleware.CapLoyaltyRedeem)}},
				{Method: http.MethodPost, Path: "/points", Handler: loyaltyHandler.AddPoints, Mw: []gin.HandlerFunc{requireCap(middleware.CapLoyaltyGrant)}},
				{Method: http.MethodPost, Path: "/tiers", Handler: loyaltyHandler.CreateTier, Mw: []gin.HandlerFunc{requireCap(middleware.CapLoyaltyManage)}},
				{Method: http.MethodPost, Path: "/rewards", Handler: loyaltyHandler.CreateReward, Mw: []gin.HandlerFunc{requireCap(middleware.CapLoyaltyManage)}},
			})
		}
	}
}

// @Summary Health check
// @Description Check if the service is healthy
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"message": "Service is healthy",
	})
}

func addRoutes(g *gin.RouterGroup, rs []route) {
	for _, r := range rs {
		h := r.Handler
		if len(r.Mw) > 0 {
			h = chainHandlers(append(r.Mw, r.Handler)...)
		}
		switch r.Method {
		case http.MethodGet:
			g.GET(r.Path, h)
		case http.MethodPost:
			g.POST(r.Path, h)
		case http.MethodPut:
			g.PUT(r.Path, h)
		case http.MethodPatch:
			g.PATCH(r.Path, h)
		case http.MethodDelete:
			g.DELETE(r.Path, h)
		default:
			g.Any(r.Path, h)
		}
	}
}

func chainHandlers(hs ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range hs {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
