package readstore

import (
	"context"
	"time"

	"washbook/internal/domain/schedule"
	"washbook/internal/infra"
	"washbook/internal/infra/db"
	"washbook/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgtype"
)

type ScheduleReadStore struct {
	db db.DBTX
}

func NewScheduleReadStore(dbtx db.DBTX) *ScheduleReadStore {
	return &ScheduleReadStore{db: dbtx}
}

const templatesForDaySQL = `
SELECT id, day_of_week, start_time, end_time, max_appointments, is_available
FROM time_slot_templates
WHERE day_of_week = $1 AND is_available
ORDER BY start_time`

func (r *ScheduleReadStore) TemplatesForDay(ctx context.Context, dayOfWeek int) ([]shared.TemplateSnapshot, error) {
	rows, err := r.db.Query(ctx, templatesForDaySQL, dayOfWeek)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list slot templates", err)
	}
	defer rows.Close()

	var snaps []shared.TemplateSnapshot
	for rows.Next() {
		snap, err := scanTemplate(rows.Scan)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan slot template", err)
		}
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read slot templates", err)
	}
	return snaps, nil
}

// Locks the template row so concurrent bookings for the same slot
// serialize on the capacity check.
const templateForUpdateSQL = `
SELECT id, day_of_week, start_time, end_time, max_appointments, is_available
FROM time_slot_templates
WHERE day_of_week = $1 AND start_time = $2 AND is_available
FOR UPDATE`

func (r *ScheduleReadStore) TemplateFor(ctx context.Context, dayOfWeek int, start schedule.TimeOfDay) (*shared.TemplateSnapshot, error) {
	row := r.db.QueryRow(ctx, templateForUpdateSQL, dayOfWeek, pgTimeFromMinutes(start.Minutes()))
	snap, err := scanTemplate(row.Scan)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, infra.WrapRepoErr("slot template not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find slot template", err)
	}
	return &snap, nil
}

const occupiedStartTimesSQL = `
SELECT start_time
FROM appointments
WHERE appointment_date = $1
  AND status IN ('scheduled', 'confirmed', 'in_progress')`

func (r *ScheduleReadStore) OccupiedStartTimes(ctx context.Context, date time.Time) ([]schedule.TimeOfDay, error) {
	rows, err := r.db.Query(ctx, occupiedStartTimesSQL, date)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list occupied start times", err)
	}
	defer rows.Close()

	var times []schedule.TimeOfDay
	for rows.Next() {
		var t pgtype.Time
		if err := rows.Scan(&t); err != nil {
			return nil, infra.WrapRepoErr("failed to scan occupied start time", err)
		}
		times = append(times, schedule.TimeOfDayFromMicroseconds(t.Microseconds))
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read occupied start times", err)
	}
	return times, nil
}

const occupiedCountAtSQL = `
SELECT count(*)
FROM appointments
WHERE appointment_date = $1
  AND start_time = $2
  AND status IN ('scheduled', 'confirmed', 'in_progress')`

func (r *ScheduleReadStore) OccupiedCountAt(ctx context.Context, date time.Time, start schedule.TimeOfDay) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, occupiedCountAtSQL, date, pgTimeFromMinutes(start.Minutes())).Scan(&count)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count occupied slots", err)
	}
	return count, nil
}

const microsPerMinute = int64(time.Minute / time.Microsecond)

func pgTimeFromMinutes(minutes int) pgtype.Time {
	return pgtype.Time{Microseconds: int64(minutes) * microsPerMinute, Valid: true}
}

func scanTemplate(scan func(dest ...any) error) (shared.TemplateSnapshot, error) {
	var (
		snap       shared.TemplateSnapshot
		start, end pgtype.Time
	)
	if err := scan(&snap.ID, &snap.DayOfWeek, &start, &end, &snap.MaxAppointments, &snap.IsAvailable); err != nil {
		return shared.TemplateSnapshot{}, err
	}
	snap.StartMinutes = int(start.Microseconds / microsPerMinute)
	snap.EndMinutes = int(end.Microseconds / microsPerMinute)
	return snap, nil
}
