//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"washbook/internal/domain/user"
	"washbook/internal/handler/api"
	resdto "washbook/internal/handler/dto/response"
	"washbook/internal/usecase/commands"
	"washbook/internal/usecase/queries"
	"washbook/tests/common/httptest"
	commandsmock "washbook/tests/mock/commands"
	queriesmock "washbook/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type LoyaltyHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockLoyaltyCommands
	mockQueries  *queriesmock.MockLoyaltyQueries
	handler      *api.LoyaltyHandler
	principalID  uuid.UUID
	role         user.Role
}

func (s *LoyaltyHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockLoyaltyCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockLoyaltyQueries(s.mockCtrl)
	s.handler = api.NewLoyaltyHandler(s.mockCommands, s.mockQueries)
	s.principalID = uuid.New()
	s.role = user.RoleCustomer

	// Mock middleware behavior: role is whatever the test sets on the suite
	authed := func(c *gin.Context) {
		c.Set("user_id", s.principalID)
		c.Set("user_role", s.role)
	}

	s.router.GET("/loyalty/status", authed, s.handler.Status)
	s.router.GET("/loyalty/transactions", authed, s.handler.Transactions)
	s.router.POST("/loyalty/redeem", authed, s.handler.Redeem)
	s.router.POST("/loyalty/points", authed, s.handler.AddPoints)
}

func (s *LoyaltyHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestLoyaltyHandlerSuite(t *testing.T) {
	suite.Run(t, new(LoyaltyHandlerTestSuite))
}

func (s *LoyaltyHandlerTestSuite) TestRedeem() {
	url := "/loyalty/redeem"
	rewardID := uuid.New()
	reqBody := map[string]any{"reward_id": rewardID}

	s.Run("success: returns 200 OK with the remaining balance", func() {
		s.mockCommands.EXPECT().RedeemReward(gomock.Any(), gomock.Any(), rewardID, gomock.Nil()).
			Return(&commands.RedeemRewardResult{RemainingPoints: 50}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.RedeemRewardResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(50, response.RemainingPoints)
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "unknown reward",
				commandsError:  commands.ErrRewardNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Reward not found",
			},
			{
				name:           "balance too low",
				commandsError:  commands.ErrInsufficientPoints,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "Insufficient points",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().RedeemReward(gomock.Any(), gomock.Any(), rewardID, gomock.Nil()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

func (s *LoyaltyHandlerTestSuite) TestAddPoints() {
	url := "/loyalty/points"
	targetID := uuid.New()
	reqBody := map[string]any{"user_id": targetID, "points": 150, "reason": "signup promotion"}

	s.Run("success: returns 200 OK with the updated balances", func() {
		s.mockCommands.EXPECT().
			AddPoints(gomock.Any(), s.principalID, targetID, 150, "signup promotion", gomock.Nil()).
			Return(&commands.AddPointsResult{TotalPoints: 250, AvailablePoints: 150}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.AddPointsResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(250, response.TotalPoints)
		s.Equal(150, response.AvailablePoints)
	})

	s.Run("error: 422 on non-positive amount", func() {
		s.mockCommands.EXPECT().
			AddPoints(gomock.Any(), s.principalID, targetID, 150, "signup promotion", gomock.Nil()).
			Return(nil, commands.ErrNonPositivePoints).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnprocessableEntity, "must be positive")
	})
}

func (s *LoyaltyHandlerTestSuite) TestStatus() {
	otherID := uuid.New()

	s.Run("customer: user_id parameter is ignored", func() {
		s.role = user.RoleCustomer
		s.mockQueries.EXPECT().Status(gomock.Any(), s.principalID).
			Return(&queries.LoyaltyStatusView{Points: 150}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/loyalty/status?user_id="+otherID.String(), nil, "")

		var response queries.LoyaltyStatusView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(150, response.Points)
	})

	s.Run("admin: user_id parameter selects the target account", func() {
		s.role = user.RoleAdmin
		s.mockQueries.EXPECT().Status(gomock.Any(), otherID).
			Return(&queries.LoyaltyStatusView{Points: 30}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/loyalty/status?user_id="+otherID.String(), nil, "")

		var response queries.LoyaltyStatusView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(30, response.Points)
	})

	s.Run("admin: malformed user_id is rejected", func() {
		s.role = user.RoleAdmin

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/loyalty/status?user_id=not-a-uuid", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "user_id")
	})
}

func (s *LoyaltyHandlerTestSuite) TestTransactions() {
	otherID := uuid.New()

	s.Run("admin: user_id parameter selects the target ledger", func() {
		s.role = user.RoleAdmin
		s.mockQueries.EXPECT().Transactions(gomock.Any(), otherID, 0).
			Return([]queries.LoyaltyTransactionView{{Points: 150, Kind: "earned"}}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/loyalty/transactions?user_id="+otherID.String(), nil, "")

		var response []queries.LoyaltyTransactionView
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 1)
	})

	s.Run("customer: always scoped to the caller", func() {
		s.role = user.RoleCustomer
		s.mockQueries.EXPECT().Transactions(gomock.Any(), s.principalID, 0).
			Return([]queries.LoyaltyTransactionView{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/loyalty/transactions?user_id="+otherID.String(), nil, "")
		s.Equal(http.StatusOK, rec.Code)
	})
}
