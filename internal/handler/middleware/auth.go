package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"washbook/internal/domain/user"
	"washbook/internal/usecase"
	"washbook/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthMiddleware struct {
	tokenValidator usecase.TokenValidator
}

const (
	ctxUserIDKey   = "user_id"
	ctxUserRoleKey = "user_role"
)

// Capability names declared by routes. The policy table below is the single
// place where roles map to what they may do.
type Capability string

const (
	CapAppointmentBook   Capability = "appointments.book"
	CapAppointmentView   Capability = "appointments.view"
	CapAppointmentManage Capability = "appointments.manage"
	CapAppointmentRate   Capability = "appointments.rate"
	CapCouponValidate    Capability = "coupons.validate"
	CapCouponApply       Capability = "coupons.apply"
	CapCouponManage      Capability = "coupons.manage"
	CapLoyaltyView       Capability = "loyalty.view"
	CapLoyaltyRedeem     Capability = "loyalty.redeem"
	CapLoyaltyGrant      Capability = "loyalty.grant"
	CapLoyaltyManage     Capability = "loyalty.manage"
	CapPaymentView       Capability = "payments.view"
	CapPaymentManage     Capability = "payments.manage"
	CapStatsView         Capability = "stats.view"
)

var rolePolicy = map[user.Role][]Capability{
	user.RoleCustomer: {
		CapAppointmentBook, CapAppointmentView, CapAppointmentManage, CapAppointmentRate,
		CapCouponValidate, CapCouponApply,
		CapLoyaltyView, CapLoyaltyRedeem,
		CapPaymentView, CapStatsView,
	},
	user.RoleEmployee: {
		CapAppointmentBook, CapAppointmentView, CapAppointmentManage, CapAppointmentRate,
		CapCouponValidate, CapCouponApply,
		CapLoyaltyView, CapLoyaltyRedeem,
		CapPaymentView, CapPaymentManage, CapStatsView,
	},
	user.RoleAdmin: {
		CapAppointmentBook, CapAppointmentView, CapAppointmentManage, CapAppointmentRate,
		CapCouponValidate, CapCouponApply, CapCouponManage,
		CapLoyaltyView, CapLoyaltyRedeem, CapLoyaltyGrant, CapLoyaltyManage,
		CapPaymentView, CapPaymentManage, CapStatsView,
	},
}

func roleHasCapability(role user.Role, cap Capability) bool {
	for _, c := range rolePolicy[role] {
		if c == cap {
			return true
		}
	}
	return false
}

func NewAuthMiddleware(tokenValidator usecase.TokenValidator) *AuthMiddleware {
	return &AuthMiddleware{
		tokenValidator: tokenValidator,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimSpace(authHeader[len("Bearer "):])
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
			})
			c.Abort()
			return
		}

		principal, err := m.tokenValidator.ValidateToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(ctxUserIDKey, principal.ID)
		c.Set(ctxUserRoleKey, principal.Role)
		c.Set("jwt_claims", map[string]any{
			"user_id": principal.ID.String(),
			"role":    string(principal.Role),
		})
		c.Next()
	}
}

// RequireCapability gates a route on the policy table. Must run after
// RequireAuth.
func (m *AuthMiddleware) RequireCapability(cap Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := GetUserRole(c)
		if !ok {
			// Unexpected error: should be used after RequireAuth()
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
			c.Abort()
			return
		}

		if !roleHasCapability(role, cap) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Insufficient permissions",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, exists := c.Get(ctxUserIDKey)
	if !exists {
		return uuid.Nil, false
	}

	id, ok := userID.(uuid.UUID)
	return id, ok
}

func GetUserRole(c *gin.Context) (user.Role, bool) {
	userRole, exists := c.Get(ctxUserRoleKey)
	if !exists {
		return "", false
	}

	role, ok := userRole.(user.Role)
	return role, ok
}

// GetPrincipal assembles the caller identity commands receive explicitly.
func GetPrincipal(c *gin.Context) (shared.Principal, bool) {
	id, ok := GetUserID(c)
	if !ok {
		return shared.Principal{}, false
	}
	role, ok := GetUserRole(c)
	if !ok {
		return shared.Principal{}, false
	}
	return shared.Principal{ID: id, Role: role}, true
}
