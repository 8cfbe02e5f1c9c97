package appointment

import (
	"errors"
	"strings"

	"washbook/internal/domain/catalog"
)

var (
	ErrPastDate          = errors.New("appointment date is in the past")
	ErrNegativePrice     = errors.New("price cannot be negative")
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrNotCompleted      = errors.New("appointment is not completed")
	ErrInvalidRating     = errors.New("rating must be between 1 and 5")
	ErrInvalidStatus     = errors.New("invalid appointment status")
)

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
	StatusNoShow     Status = "no_show"
)

func NewStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusScheduled, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

func (s Status) String() string { return string(s) }

// Occupying statuses hold their time slot; terminal ones release it for re-use.
func (s Status) Occupying() bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusInProgress:
		return true
	default:
		return false
	}
}

func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	default:
		return false
	}
}

var transitions = map[Status][]Status{
	StatusScheduled:  {StatusConfirmed, StatusInProgress, StatusCancelled, StatusNoShow},
	StatusConfirmed:  {StatusInProgress, StatusCompleted, StatusCancelled, StatusNoShow},
	StatusInProgress: {StatusCompleted, StatusCancelled},
}

func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if next == allowed {
			return true
		}
	}
	return false
}

// Vehicle describes what shows up at the bay. Only the type affects pricing.
type Vehicle struct {
	vehicleType catalog.VehicleType
	plate       string
	model       string
	color       string
}

func NewVehicle(vehicleType string, plate, model, color string) (Vehicle, error) {
	vt, err := catalog.NewVehicleType(vehicleType)
	if err != nil {
		return Vehicle{}, err
	}
	return Vehicle{
		vehicleType: vt,
		plate:       strings.ToUpper(strings.TrimSpace(plate)),
		model:       strings.TrimSpace(model),
		color:       strings.TrimSpace(color),
	}, nil
}

func (v Vehicle) Type() catalog.VehicleType { return v.vehicleType }
func (v Vehicle) Plate() string             { return v.plate }
func (v Vehicle) Model() string             { return v.model }
func (v Vehicle) Color() string             { return v.color }

type Rating struct {
	value int
}

func NewRating(v int) (Rating, error) {
	if v < 1 || v > 5 {
		return Rating{}, ErrInvalidRating
	}
	return Rating{value: v}, nil
}

func (r Rating) Value() int { return r.value }
