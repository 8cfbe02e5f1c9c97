//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"washbook/internal/domain/user"
	"washbook/internal/handler/api"
	resdto "washbook/internal/handler/dto/response"
	"washbook/internal/infra"
	"washbook/internal/usecase/commands"
	"washbook/tests/common/builder"
	"washbook/tests/common/httptest"
	"washbook/tests/common/testutil"
	commandsmock "washbook/tests/mock/commands"
	queriesmock "washbook/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CouponHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockCouponCommands
	mockQueries  *queriesmock.MockCouponQueries
	handler      *api.CouponHandler
	principalID  uuid.UUID
}

func (s *CouponHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockCouponCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockCouponQueries(s.mockCtrl)
	s.handler = api.NewCouponHandler(s.mockCommands, s.mockQueries)
	s.principalID = uuid.New()

	// Mock middleware behavior: authenticated admin principal
	authed := func(c *gin.Context) {
		c.Set("user_id", s.principalID)
		c.Set("user_role", user.RoleAdmin)
	}

	s.router.POST("/coupons/validate", s.handler.Validate)
	s.router.POST("/appointments/:id/coupon", authed, s.handler.Apply)
	s.router.POST("/coupons", authed, s.handler.Create)
	s.router.PUT("/coupons/:id", authed, s.handler.Update)
	s.router.DELETE("/coupons/:id", authed, s.handler.Delete)
	s.router.GET("/coupons", s.handler.List)
	s.router.GET("/coupons/:id", s.handler.GetByID)
}

func (s *CouponHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCouponHandlerSuite(t *testing.T) {
	suite.Run(t, new(CouponHandlerTestSuite))
}

func (s *CouponHandlerTestSuite) TestValidate() {
	url := "/coupons/validate"
	reqBody := map[string]any{"code": "SAVE10", "order_cents": 10000}

	s.Run("success: returns 200 OK with computed discount", func() {
		couponID := uuid.New()
		s.mockCommands.EXPECT().Validate(gomock.Any(), "SAVE10", int64(10000)).
			Return(&commands.ValidateCouponResult{
				CouponID:      couponID,
				Code:          "SAVE10",
				Kind:          "percentage",
				DiscountCents: 1000,
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.ValidateCouponResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(couponID, response.CouponID)
		s.Equal(int64(1000), response.DiscountCents)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		testCases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing field: code", mutate: testutil.Field("code", nil)},
			{name: "missing field: order_cents", mutate: testutil.Field("order_cents", nil)},
			{name: "zero order total", mutate: testutil.Field("order_cents", 0)},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "unknown code",
				commandsError:  commands.ErrCouponNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Coupon not found",
			},
			{
				name:           "inactive or exhausted coupon",
				commandsError:  commands.ErrCouponNotActive,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "not active",
			},
			{
				name:           "order below minimum",
				commandsError:  commands.ErrBelowMinOrder,
				expectedStatus: http.StatusUnprocessableEntity,
				expectedMsg:    "below the coupon minimum",
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
				s.mockCommands.EXPECT().Validate(gomock.Any(), "SAVE10", int64(10000)).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

func (s *CouponHandlerTestSuite) TestApply() {
	appointmentID := uuid.New()
	url := "/appointments/" + appointmentID.String() + "/coupon"
	reqBody := map[string]any{"code": "SAVE10"}

	s.Run("success: returns 200 OK with repriced totals", func() {
		s.mockCommands.EXPECT().Apply(gomock.Any(), gomock.Any(), appointmentID, "SAVE10").
			Return(&commands.ApplyCouponResult{
				DiscountCents:   1000,
				FinalPriceCents: 9000,
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "token")

		var response resdto.ApplyCouponResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(int64(1000), response.DiscountCents)
		s.Equal(int64(9000), response.FinalPriceCents)
	})

	s.Run("error: 400 Bad Request for malformed appointment id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/appointments/not-a-uuid/coupon", reqBody, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid appointment ID")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "appointment not found",
				commandsError:  commands.ErrAppointmentNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Appointment not found",
			},
			{
				name:           "not the appointment owner",
				commandsError:  commands.ErrPermissionDenied,
				expectedStatus: http.StatusForbidden,
				expectedMsg:    "Access denied",
			},
			{
				name:           "coupon already applied",
				commandsError:  commands.ErrCouponAlreadyApplied,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "already applied",
			},
			{
				name:           "unknown code",
				commandsError:  commands.ErrCouponNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Coupon not found",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Apply(gomock.Any(), gomock.Any(), appointmentID, "SAVE10").
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

func (s *CouponHandlerTestSuite) TestCreate() {
	url := "/coupons"
	reqBody := map[string]any{
		"code":           "SPRING20",
		"description":    "Spring promo",
		"kind":           "percentage",
		"discount_value": 20,
		"valid_from":     "2026-03-01T00:00:00Z",
		"valid_until":    "2026-04-01T00:00:00Z",
		"is_active":      true,
	}

	s.Run("success: returns 201 Created with the coupon id", func() {
		newID := uuid.New()
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(newID, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "token")

		var response resdto.CreatedResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(newID, response.ID)
	})

	s.Run("error: 400 Bad Request for unknown coupon kind", func() {
		requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field("kind", "bogus"))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: 409 Conflict when the code is taken", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(uuid.Nil, commands.ErrCouponCodeTaken).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "Coupon code already exists")
	})
}

func (s *CouponHandlerTestSuite) TestDelete() {
	couponID := uuid.New()
	url := "/coupons/" + couponID.String()

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), gomock.Any(), couponID).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 404 Not Found for unknown coupon", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), gomock.Any(), couponID).
			Return(commands.ErrCouponNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Coupon not found")
	})
}

func (s *CouponHandlerTestSuite) TestGetByID() {
	couponID := uuid.New()
	url := "/coupons/" + couponID.String()

	s.Run("success: returns the coupon view", func() {
		view := builder.NewCouponBuilder().With(func(b *builder.CouponBuilder) {
			b.ID = couponID
		}).BuildView()
		s.mockQueries.EXPECT().GetByID(gomock.Any(), couponID).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "token")

		var response map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(view.Code, response["code"])
	})

	s.Run("error: 404 Not Found when the row is missing", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), couponID).
			Return(nil, infra.WrapRepoErr("coupon not found", nil, infra.KindNotFound)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Coupon not found")
	})
}
