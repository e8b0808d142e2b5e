package reservation

import (
	"errors"
	"time"

	"rental-booking/internal/pkg/clock"

	"github.com/google/uuid"
)

var (
	ErrInvalidWindow      = errors.New("invalid reservation time window")
	ErrNegativePrice      = errors.New("price cannot be negative")
	ErrInvalidStatus      = errors.New("invalid reservation status")
	ErrInvalidLocation    = errors.New("location must be 1-150 characters")
	ErrLifecycleViolation = errors.New("reservation is canceled or done and cannot be changed")
)

type Services struct {
	Clock           clock.Clock
	PriceCalculator PriceCalculator
}

type Reservation struct {
	id         uuid.UUID
	carID      uuid.UUID
	userID     uuid.UUID
	window     TimeWindow
	route      Route
	status     Status
	totalPrice Money
	createdAt  time.Time
	updatedAt  time.Time
}

func NewReservation(
	services *Services,
	car CarSpec,
	userID uuid.UUID,
	window TimeWindow,
	route Route,
) (*Reservation, error) {
	price, err := services.PriceCalculator.Price(car, window.PickUp(), window.DropOff())
	if err != nil {
		return nil, err
	}
	now := services.Clock.Now()
	return &Reservation{
		id:         uuid.New(),
		carID:      car.ID,
		userID:     userID,
		window:     window,
		route:      route,
		status:     StatusCreated,
		totalPrice: price,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

func ReconstructReservation(
	id, carID, userID uuid.UUID,
	window TimeWindow,
	route Route,
	status Status,
	totalPrice Money,
	createdAt, updatedAt time.Time,
) *Reservation {
	return &Reservation{
		id:         id,
		carID:      carID,
		userID:     userID,
		window:     window,
		route:      route,
		status:     status,
		totalPrice: totalPrice,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

func (r *Reservation) EnsureMutable() error {
	if r.status.IsTerminal() {
		return ErrLifecycleViolation
	}
	return nil
}

// Reschedule moves an active reservation to a new car and window and
// recomputes its price. The window must already be validated.
func (r *Reservation) Reschedule(services *Services, car CarSpec, window TimeWindow, route Route) error {
	if err := r.EnsureMutable(); err != nil {
		return err
	}
	price, err := services.PriceCalculator.Price(car, window.PickUp(), window.DropOff())
	if err != nil {
		return err
	}
	r.carID = car.ID
	r.window = window
	r.route = route
	r.status = StatusCreated
	r.totalPrice = price
	r.updatedAt = services.Clock.Now()
	return nil
}

// Transition moves an active reservation into a terminal status. The window
// and route are stored as given, car and price stay unchanged.
func (r *Reservation) Transition(services *Services, status Status, window TimeWindow, route Route) error {
	if err := r.EnsureMutable(); err != nil {
		return err
	}
	if !status.IsValid() || status == StatusCreated {
		return ErrInvalidStatus
	}
	r.window = window
	r.route = route
	r.status = status
	r.updatedAt = services.Clock.Now()
	return nil
}

func (r *Reservation) IsActive() bool {
	return !r.status.IsTerminal()
}

func (r *Reservation) ID() uuid.UUID      { return r.id }
func (r *Reservation) CarID() uuid.UUID   { return r.carID }
func (r *Reservation) UserID() uuid.UUID  { return r.userID }
func (r *Reservation) Window() TimeWindow { return r.window }
func (r *Reservation) Route() Route       { return r.route }
func (r *Reservation) Status() Status     { return r.status }
func (r *Reservation) TotalPrice() Money  { return r.totalPrice }
func (r *Reservation) CreatedAt() time.Time {
	return r.createdAt
}
func (r *Reservation) UpdatedAt() time.Time {
	return r.updatedAt
}
