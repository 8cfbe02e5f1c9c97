package queries

import (
	"context"
	"time"

	"washbook/internal/domain/schedule"
	"washbook/internal/usecase/shared"

	"github.com/google/uuid"
)

type ScheduleQueries interface {
	AvailableSlots(ctx context.Context, date string) ([]*SlotView, error)
}

type ScheduleViewRepo interface {
	TemplatesForDay(ctx context.Context, dayOfWeek int) ([]shared.TemplateSnapshot, error)
	OccupiedStartTimes(ctx context.Context, date time.Time) ([]schedule.TimeOfDay, error)
}

type scheduleQueriesImpl struct {
	repo ScheduleViewRepo
}

func NewScheduleQueries(repo ScheduleViewRepo) ScheduleQueries {
	return &scheduleQueriesImpl{repo: repo}
}

// AvailableSlots lists the weekday's templates minus slots whose start time
// is already taken by a live appointment. A slot with remaining capacity but
// any occupant is excluded here; capacity only matters at booking time.
func (q *scheduleQueriesImpl) AvailableSlots(ctx context.Context, date string) ([]*SlotView, error) {
	day, err := schedule.ParseDate(date)
	if err != nil {
		return nil, err
	}

	snaps, err := q.repo.TemplatesForDay(ctx, schedule.Weekday(day))
	if err != nil {
		return nil, err
	}
	occupied, err := q.repo.OccupiedStartTimes(ctx, day)
	if err != nil {
		return nil, err
	}

	templates := make([]*schedule.Template, 0, len(snaps))
	for _, s := range snaps {
		tpl, terr := templateFromSnapshot(s)
		if terr != nil {
			return nil, terr
		}
		templates = append(templates, tpl)
	}

	free := schedule.AvailableSlots(templates, occupied)
	views := make([]*SlotView, 0, len(free))
	for _, tpl := range free {
		views = append(views, &SlotView{
			StartTime:       tpl.Start().String(),
			EndTime:         tpl.End().String(),
			MaxAppointments: tpl.MaxAppointments(),
		})
	}
	return views, nil
}

func templateFromSnapshot(s shared.TemplateSnapshot) (*schedule.Template, error) {
	start := schedule.TimeOfDayFromMicroseconds(int64(s.StartMinutes) * 60_000_000)
	end := schedule.TimeOfDayFromMicroseconds(int64(s.EndMinutes) * 60_000_000)
	id := s.ID
	if id == uuid.Nil {
		id = uuid.New()
	}
	return schedule.NewTemplate(id, s.DayOfWeek, start, end, s.IsAvailable, s.MaxAppointments)
}
