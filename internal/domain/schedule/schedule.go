package schedule

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidDate      = errors.New("invalid date format")
	ErrInvalidTimeOfDay = errors.New("invalid time of day")
	ErrInvalidDayOfWeek = errors.New("day of week must be between 0 and 6")
	ErrInvalidTimeRange = errors.New("start time must be before end time")
	ErrInvalidCapacity  = errors.New("slot capacity must be positive")
)

const (
	DateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// TimeOfDay is a wall-clock time with minute precision, independent of any date.
type TimeOfDay struct {
	minutes int
}

func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		// Accept the seconds form Postgres emits for time columns.
		t, err = time.Parse("15:04:05", s)
		if err != nil {
			return TimeOfDay{}, ErrInvalidTimeOfDay
		}
	}
	return TimeOfDay{minutes: t.Hour()*60 + t.Minute()}, nil
}

func TimeOfDayFromMicroseconds(us int64) TimeOfDay {
	return TimeOfDay{minutes: int(us / 60_000_000)}
}

func (t TimeOfDay) Minutes() int { return t.minutes }

func (t TimeOfDay) Microseconds() int64 { return int64(t.minutes) * 60_000_000 }

func (t TimeOfDay) Before(other TimeOfDay) bool { return t.minutes < other.minutes }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.minutes/60, t.minutes%60)
}

// ParseDate parses a calendar date in ISO form. The zero time is never returned
// alongside a nil error.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return d, nil
}

// Weekday maps a date to the 0=Monday..6=Sunday convention the templates use.
func Weekday(date time.Time) int {
	return (int(date.Weekday()) + 6) % 7
}

// Template is a weekly recurring bookable window. max_appointments bounds how
// many appointments may share the window's start time on a single date.
type Template struct {
	id              uuid.UUID
	dayOfWeek       int
	start           TimeOfDay
	end             TimeOfDay
	isAvailable     bool
	maxAppointments int
}

func NewTemplate(id uuid.UUID, dayOfWeek int, start, end TimeOfDay, isAvailable bool, maxAppointments int) (*Template, error) {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return nil, ErrInvalidDayOfWeek
	}
	if !start.Before(end) {
		return nil, ErrInvalidTimeRange
	}
	if maxAppointments <= 0 {
		return nil, ErrInvalidCapacity
	}
	if id == uuid.Nil {
		id = uuid.New()
	}
	return &Template{
		id:              id,
		dayOfWeek:       dayOfWeek,
		start:           start,
		end:             end,
		isAvailable:     isAvailable,
		maxAppointments: maxAppointments,
	}, nil
}

func (t *Template) ID() uuid.UUID        { return t.id }
func (t *Template) DayOfWeek() int       { return t.dayOfWeek }
func (t *Template) Start() TimeOfDay     { return t.start }
func (t *Template) End() TimeOfDay       { return t.end }
func (t *Template) IsAvailable() bool    { return t.isAvailable }
func (t *Template) MaxAppointments() int { return t.maxAppointments }

// AvailableSlots filters the day's templates down to those whose start time is
// not already occupied by an active appointment, ordered by start time.
// Occupancy is binary: one active appointment at a start time closes the slot
// for listing purposes; capacity is enforced separately at booking time.
func AvailableSlots(templates []*Template, occupied []TimeOfDay) []*Template {
	taken := make(map[int]struct{}, len(occupied))
	for _, o := range occupied {
		taken[o.Minutes()] = struct{}{}
	}

	open := make([]*Template, 0, len(templates))
	for _, tpl := range templates {
		if !tpl.IsAvailable() {
			continue
		}
		if _, ok := taken[tpl.Start().Minutes()]; ok {
			continue
		}
		open = append(open, tpl)
	}

	sort.Slice(open, func(i, j int) bool {
		return open[i].Start().Before(open[j].Start())
	})
	return open
}
