package catalog

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrInvalidCategory    = errors.New("invalid service category")
	ErrInvalidVehicleType = errors.New("invalid vehicle type")
	ErrInvalidDuration    = errors.New("service duration must be positive")
)

type Category string

const (
	CategoryWash      Category = "wash"
	CategoryWaxing    Category = "waxing"
	CategoryDetailing Category = "detailing"
	CategoryPremium   Category = "premium"
)

func NewCategory(s string) (Category, error) {
	switch Category(s) {
	case CategoryWash, CategoryWaxing, CategoryDetailing, CategoryPremium:
		return Category(s), nil
	default:
		return "", ErrInvalidCategory
	}
}

type VehicleType string

const (
	VehicleSmallCar  VehicleType = "small_car"
	VehicleMediumCar VehicleType = "medium_car"
	VehicleLargeCar  VehicleType = "large_car"
	VehicleSUV       VehicleType = "suv"
	VehiclePickup    VehicleType = "pickup"
	VehicleMotorbike VehicleType = "motorbike"
)

func NewVehicleType(s string) (VehicleType, error) {
	switch VehicleType(s) {
	case VehicleSmallCar, VehicleMediumCar, VehicleLargeCar, VehicleSUV, VehiclePickup, VehicleMotorbike:
		return VehicleType(s), nil
	default:
		return "", ErrInvalidVehicleType
	}
}

func (v VehicleType) String() string { return string(v) }

// Service is reference data for booking: which washes exist and how long they block a bay.
type Service struct {
	id              uuid.UUID
	name            string
	description     string
	category        Category
	durationMinutes int
	isActive        bool
}

func NewService(id uuid.UUID, name, description string, category Category, durationMinutes int, isActive bool) (*Service, error) {
	if durationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}
	if id == uuid.Nil {
		id = uuid.New()
	}
	return &Service{
		id:              id,
		name:            name,
		description:     description,
		category:        category,
		durationMinutes: durationMinutes,
		isActive:        isActive,
	}, nil
}

func (s *Service) ID() uuid.UUID        { return s.id }
func (s *Service) Name() string         { return s.name }
func (s *Service) Description() string  { return s.description }
func (s *Service) Category() Category   { return s.category }
func (s *Service) DurationMinutes() int { return s.durationMinutes }
func (s *Service) IsActive() bool       { return s.isActive }
