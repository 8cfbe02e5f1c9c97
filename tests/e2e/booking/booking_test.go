//go:build e2e

package booking_test

import (
	"net/http"
	"testing"
	"time"

	"washbook/internal/domain/user"
	"washbook/tests/common/dbtest"
	"washbook/tests/common/httptest"
	"washbook/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	loginURL        = "/api/auth/login"
	registerURL     = "/api/auth/register"
	servicesURL     = "/api/services"
	appointmentsURL = "/api/appointments"
	slotsURL        = "/api/appointments/available-slots"
	paymentsURL     = "/api/payments"
)

type bookingSuite struct {
	e2e.SharedSuite
	serviceID  uuid.UUID
	customerID uuid.UUID
	employeeID uuid.UUID
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(bookingSuite))
}

func (s *bookingSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()

	s.customerID = dbtest.CreateTestUser(s.T(), s.DB, "customer@example.com", string(user.RoleCustomer))
	s.employeeID = dbtest.CreateTestUser(s.T(), s.DB, "employee@example.com", string(user.RoleEmployee))
	s.serviceID = dbtest.CreateTestService(s.T(), s.DB, "Full Wash", 8000)
}

// next bookable day; the seeded slot grid covers Monday through Saturday
func nextBookableDate() string {
	d := time.Now().UTC().AddDate(0, 0, 1)
	for d.Weekday() == time.Sunday {
		d = d.AddDate(0, 0, 1)
	}
	return d.Format("2006-01-02")
}

func (s *bookingSuite) login(email string) string {
	t := s.T()
	body := map[string]any{"email": email, "password": "password123"}
	rec := httptest.PerformRequest(t, s.Router, http.MethodPost, loginURL, body, "")
	require.Equal(t, http.StatusOK, rec.Code, "login failed: %s", rec.Body.String())

	var res struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, httptest.DecodeResponseBody(t, rec.Body, &res))
	require.NotEmpty(t, res.AccessToken)
	return res.AccessToken
}

func (s *bookingSuite) createAppointment(token, date, startTime string) (int, map[string]any) {
	t := s.T()
	body := map[string]any{
		"service_id":     s.serviceID,
		"date":           date,
		"start_time":     startTime,
		"vehicle_type":   "medium_car",
		"license_plate":  "ABC1D23",
		"vehicle_model":  "Corolla",
		"vehicle_color":  "silver",
		"payment_method": "pix",
	}
	rec := httptest.PerformRequest(t, s.Router, http.MethodPost, appointmentsURL, body, token)

	var res map[string]any
	if rec.Code == http.StatusCreated {
		require.NoError(t, httptest.DecodeResponseBody(t, rec.Body, &res))
	}
	return rec.Code, res
}

func (s *bookingSuite) TestBookingLifecycle() {
	s.Run("full lifecycle from booking to rating", func() {
		t := s.T()
		date := nextBookableDate()

		customerToken := s.login("customer@example.com")

		rec := httptest.PerformRequest(t, s.Router, http.MethodGet, servicesURL, nil, "")
		require.Equal(t, http.StatusOK, rec.Code)

		rec = httptest.PerformRequest(t, s.Router, http.MethodGet, slotsURL+"?date="+date, nil, customerToken)
		require.Equal(t, http.StatusOK, rec.Code, "slots: %s", rec.Body.String())

		code, created := s.createAppointment(customerToken, date, "10:00")
		require.Equal(t, http.StatusCreated, code)
		require.EqualValues(t, 8000, created["price_cents"])

		appointmentID := created["appointment_id"].(string)
		paymentID := created["payment_id"].(string)

		rec = httptest.PerformRequest(t, s.Router, http.MethodGet, appointmentsURL+"/"+appointmentID, nil, customerToken)
		require.Equal(t, http.StatusOK, rec.Code)
		var view map[string]any
		require.NoError(t, httptest.DecodeResponseBody(t, rec.Body, &view))
		require.Equal(t, "scheduled", view["status"])

		employeeToken := s.login("employee@example.com")
		for _, status := range []string{"confirmed", "in_progress", "completed"} {
			rec = httptest.PerformRequest(t, s.Router, http.MethodPatch,
				appointmentsURL+"/"+appointmentID+"/status", map[string]any{"status": status}, employeeToken)
			require.Equal(t, http.StatusNoContent, rec.Code, "transition to %s: %s", status, rec.Body.String())
		}

		rec = httptest.PerformRequest(t, s.Router, http.MethodPatch,
			paymentsURL+"/"+paymentID+"/status", map[string]any{"status": "completed"}, employeeToken)
		require.Equal(t, http.StatusNoContent, rec.Code, "settle payment: %s", rec.Body.String())

		rec = httptest.PerformRequest(t, s.Router, http.MethodPost,
			appointmentsURL+"/"+appointmentID+"/rating", map[string]any{"rating": 5, "review": "spotless"}, customerToken)
		require.Equal(t, http.StatusNoContent, rec.Code, "rating: %s", rec.Body.String())
	})

	s.Run("slot capacity is enforced", func() {
		t := s.T()
		date := nextBookableDate()

		customerToken := s.login("customer@example.com")

		// Two bays per seeded slot: third booking for the same slot must fail
		for i := 0; i < 2; i++ {
			code, _ := s.createAppointment(customerToken, date, "11:00")
			require.Equal(t, http.StatusCreated, code, "booking %d should fit", i+1)
		}

		code, _ := s.createAppointment(customerToken, date, "11:00")
		require.Equal(t, http.StatusConflict, code)
	})

	s.Run("invalid transitions are rejected", func() {
		t := s.T()
		date := nextBookableDate()

		customerToken := s.login("customer@example.com")
		code, created := s.createAppointment(customerToken, date, "14:00")
		require.Equal(t, http.StatusCreated, code)
		appointmentID := created["appointment_id"].(string)

		employeeToken := s.login("employee@example.com")
		rec := httptest.PerformRequest(t, s.Router, http.MethodPatch,
			appointmentsURL+"/"+appointmentID+"/status", map[string]any{"status": "completed"}, employeeToken)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code, "skipping to completed must fail")
	})

	s.Run("rating requires a completed appointment", func() {
		t := s.T()
		date := nextBookableDate()

		customerToken := s.login("customer@example.com")
		code, created := s.createAppointment(customerToken, date, "15:00")
		require.Equal(t, http.StatusCreated, code)
		appointmentID := created["appointment_id"].(string)

		rec := httptest.PerformRequest(t, s.Router, http.MethodPost,
			appointmentsURL+"/"+appointmentID+"/rating", map[string]any{"rating": 4}, customerToken)
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	s.Run("registration and login round-trip", func() {
		t := s.T()

		rec := httptest.PerformRequest(t, s.Router, http.MethodPost, registerURL, map[string]any{
			"email":    "fresh@example.com",
			"password": "password123",
			"name":     "Fresh Customer",
		}, "")
		require.Equal(t, http.StatusCreated, rec.Code, "register: %s", rec.Body.String())

		token := s.login("fresh@example.com")
		rec = httptest.PerformRequest(t, s.Router, http.MethodGet, "/api/auth/me", nil, token)
		require.Equal(t, http.StatusOK, rec.Code)

		var me map[string]any
		require.NoError(t, httptest.DecodeResponseBody(t, rec.Body, &me))
		require.Equal(t, "fresh@example.com", me["email"])
	})
}
