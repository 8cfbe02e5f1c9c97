package api

import (
	"errors"
	"net/http"
	"strconv"

	reqdto "washbook/internal/handler/dto/request"
	resdto "washbook/internal/handler/dto/response"
	"washbook/internal/handler/middleware"
	"washbook/internal/usecase/commands"
	"washbook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LoyaltyHandler struct {
	loyaltyCommands commands.LoyaltyCommands
	loyaltyQueries  queries.LoyaltyQueries
}

func NewLoyaltyHandler(loyaltyCommands commands.LoyaltyCommands, loyaltyQueries queries.LoyaltyQueries) *LoyaltyHandler {
	return &LoyaltyHandler{
		loyaltyCommands: loyaltyCommands,
		loyaltyQueries:  loyaltyQueries,
	}
}

// targetUser resolves which account a loyalty read is about: admins may
// inspect any user via the user_id query parameter, everyone else gets
// their own account.
func targetUser(c *gin.Context) (uuid.UUID, bool) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return uuid.Nil, false
	}

	raw := c.Query("user_id")
	if raw == "" || !principal.Admin() {
		return principal.ID, true
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid user_id parameter",
		})
		return uuid.Nil, false
	}
	return id, true
}

// @Summary Loyalty status
// @Description Points balance, current and next tier, affordable rewards
// @Tags loyalty
// @Produce json
// @Security BearerAuth
// @Param user_id query string false "Inspect another user (admin only)"
// @Success 200 {object} queries.LoyaltyStatusView
// @Router /loyalty/status [get]
func (h *LoyaltyHandler) Status(c *gin.Context) {
	userID, ok := targetUser(c)
	if !ok {
		return
	}

	view, err := h.loyaltyQueries.Status(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, view)
}

// @Summary List loyalty tiers
// @Tags loyalty
// @Produce json
// @Security BearerAuth
// @Success 200 {array} queries.TierView
// @Router /loyalty/tiers [get]
func (h *LoyaltyHandler) Tiers(c *gin.Context) {
	tiers, err := h.loyaltyQueries.Tiers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, tiers)
}

// @Summary List active rewards
// @Tags loyalty
// @Produce json
// @Security BearerAuth
// @Success 200 {array} queries.RewardView
// @Router /loyalty/rewards [get]
func (h *LoyaltyHandler) Rewards(c *gin.Context) {
	rewards, err := h.loyaltyQueries.Rewards(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	c.JSON(http.StatusOK, rewards)
}

// @Summary Loyalty transaction history
// @Tags loyalty
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Max rows to return"
// @Param user_id query string false "Inspect another user (admin only)"
// @Success 200 {array} queries.LoyaltyTransactionView
// @Router /loyalty/transactions [get]
func (h *LoyaltyHandler) Transactions(c *gin.Context) {
	userID, ok := targetUser(c)
	if !ok {
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid limit parameter",
			})
			return
		}
		limit = parsed
	}

	views, err := h.loyaltyQueries.Transactions(c.Request.Context(), userID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, views)
}

// @Summary Redeem a reward
// @Description Debits the caller's points atomically, rejects overdraft
// @Tags loyalty
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.RedeemRewardRequest true "Reward to redeem"
// @Success 200 {object} resdto.RedeemRewardResponse
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /loyalty/redeem [post]
func (h *LoyaltyHandler) Redeem(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.RedeemRewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.loyaltyCommands.RedeemReward(c.Request.Context(), principal, req.RewardID, req.AppointmentID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrRewardNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Reward not found",
			})
		case errors.Is(err, commands.ErrInsufficientPoints):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Insufficient points",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromRedeemRewardResult(result))
}

// @Summary Grant or deduct points manually
// @Description Admin adjustment with an audit trail entry
// @Tags loyalty
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.AddPointsRequest true "Adjustment"
// @Success 200 {object} resdto.AddPointsResponse
// @Failure 422 {object} map[string]string
// @Router /loyalty/points [post]
func (h *LoyaltyHandler) AddPoints(c *gin.Context) {
	actorID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.AddPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.loyaltyCommands.AddPoints(c.Request.Context(), actorID, req.UserID, req.Points, req.Reason, req.AppointmentID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrNonPositivePoints):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Points amount must be positive",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromAddPointsResult(result))
}

// @Summary Create a loyalty tier
// @Tags loyalty
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateTierRequest true "Tier definition"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 422 {object} map[string]string
// @Router /loyalty/tiers [post]
func (h *LoyaltyHandler) CreateTier(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateTierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	id, err := h.loyaltyCommands.CreateTier(c.Request.Context(), principal, req.ToCommand())
	if err != nil {
		if errors.Is(err, commands.ErrInvalidTier) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Tier brackets must not overlap or leave gaps",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}

// @Summary Create a loyalty reward
// @Tags loyalty
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateRewardRequest true "Reward definition"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 422 {object} map[string]string
// @Router /loyalty/rewards [post]
func (h *LoyaltyHandler) CreateReward(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateRewardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	id, err := h.loyaltyCommands.CreateReward(c.Request.Context(), principal, req.ToCommand())
	if err != nil {
		if errors.Is(err, commands.ErrDomainValidation) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Invalid reward definition",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}
