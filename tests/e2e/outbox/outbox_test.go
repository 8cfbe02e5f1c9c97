//go:build e2e

package outbox_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"washbook/internal/audit"
	"washbook/internal/domain/user"
	"washbook/internal/infra/uow"
	"washbook/internal/pkg/clock"
	"washbook/internal/usecase/commands"
	"washbook/internal/worker"
	"washbook/tests/common/dbtest"
	"washbook/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type outboxSuite struct {
	e2e.SharedSuite
	customerID uuid.UUID
	serviceID  uuid.UUID
	worker     *worker.OutboxWorker
}

func TestOutboxSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(outboxSuite))
}

func (s *outboxSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()

	s.customerID = dbtest.CreateTestUser(s.T(), s.DB, "customer@example.com", string(user.RoleCustomer))
	s.serviceID = dbtest.CreateTestService(s.T(), s.DB, "Full Wash", 8000)

	u := uow.NewPostgresUoW(s.DB)
	loyaltyCommands := commands.NewLoyaltyUseCase(u, clock.NewRealClock(), audit.NopSink{})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.worker = worker.NewOutboxWorker(u, loyaltyCommands, s.Config.Outbox, logger)
}

func (s *outboxSuite) insertCompletedAppointment() uuid.UUID {
	t := s.T()
	id := uuid.New()
	_, err := s.DB.Exec(context.Background(), `
		INSERT INTO appointments (id, user_id, service_id, appointment_date, start_time,
		                          vehicle_type, license_plate, status, price_cents, final_price_cents, completed_at)
		VALUES ($1, $2, $3, current_date, '10:00', 'suv', 'XYZ9A87', 'completed', 8000, 8000, now())`,
		id, s.customerID, s.serviceID)
	require.NoError(t, err)
	return id
}

func (s *outboxSuite) insertAccrualJob(appointmentID uuid.UUID, status string, updatedAgo time.Duration) uuid.UUID {
	t := s.T()
	payload, err := json.Marshal(commands.LoyaltyAccrualPayload{
		AppointmentID: appointmentID,
		UserID:        s.customerID,
		Points:        10,
		CompletedAt:   time.Now().UTC(),
	})
	require.NoError(t, err)

	id := uuid.New()
	_, err = s.DB.Exec(context.Background(), `
		INSERT INTO outbox_jobs (id, kind, payload, status, run_at, updated_at)
		VALUES ($1, $2, $3, $4, now() - make_interval(secs => $5), now() - make_interval(secs => $5))`,
		id, commands.JobKindLoyaltyAccrual, payload, status, updatedAgo.Seconds())
	require.NoError(t, err)
	return id
}

func (s *outboxSuite) jobStatus(jobID uuid.UUID) string {
	var status string
	err := s.DB.QueryRow(context.Background(),
		`SELECT status FROM outbox_jobs WHERE id = $1`, jobID).Scan(&status)
	require.NoError(s.T(), err)
	return status
}

func (s *outboxSuite) accountPoints() int {
	var points int
	err := s.DB.QueryRow(context.Background(),
		`SELECT points FROM loyalty_accounts WHERE user_id = $1`, s.customerID).Scan(&points)
	require.NoError(s.T(), err)
	return points
}

func (s *outboxSuite) TestAccrualDelivery() {
	s.Run("pending job credits points and records the service", func() {
		t := s.T()
		apptID := s.insertCompletedAppointment()
		jobID := s.insertAccrualJob(apptID, "pending", time.Minute)

		require.NoError(t, s.worker.RunOnce(context.Background()))

		require.Equal(t, "done", s.jobStatus(jobID))
		require.Equal(t, 10, s.accountPoints())
	})

	s.Run("abandoned claim is reclaimed and settled", func() {
		t := s.T()
		apptID := s.insertCompletedAppointment()
		// A previous worker claimed the job and died before finalizing;
		// the row sits in processing well past the claim timeout.
		jobID := s.insertAccrualJob(apptID, "processing", time.Hour)

		require.NoError(t, s.worker.RunOnce(context.Background()))

		require.Equal(t, "done", s.jobStatus(jobID))
		require.Equal(t, 10, s.accountPoints())
	})

	s.Run("fresh claim is left alone", func() {
		t := s.T()
		apptID := s.insertCompletedAppointment()
		jobID := s.insertAccrualJob(apptID, "processing", 0)

		require.NoError(t, s.worker.RunOnce(context.Background()))

		require.Equal(t, "processing", s.jobStatus(jobID))
	})

	s.Run("redelivered job does not double-credit", func() {
		t := s.T()
		apptID := s.insertCompletedAppointment()
		jobID := s.insertAccrualJob(apptID, "pending", time.Minute)

		require.NoError(t, s.worker.RunOnce(context.Background()))
		require.Equal(t, 10, s.accountPoints())

		// Force a redelivery of the already-settled job.
		_, err := s.DB.Exec(context.Background(),
			`UPDATE outbox_jobs SET status = 'pending', updated_at = now() WHERE id = $1`, jobID)
		require.NoError(t, err)

		require.NoError(t, s.worker.RunOnce(context.Background()))
		require.Equal(t, "done", s.jobStatus(jobID))
		require.Equal(t, 10, s.accountPoints())
	})
}
