//go:build unit || e2e

package builder

import (
	"time"

	"rental-booking/internal/domain/reservation"
	reqdto "rental-booking/internal/handler/dto/request"
	"rental-booking/internal/pkg/clock"
	"rental-booking/internal/usecase/commands"
	"rental-booking/internal/usecase/queries"
	"rental-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	ID               uuid.UUID
	CarID            uuid.UUID
	CarModel         string
	HourlyPriceCents int64
	UserID           uuid.UUID
	UserEmail        string
	Now              time.Time
	PickUpTime       time.Time
	DropOffTime      time.Time
	PickUpLocation   string
	DropOffLocation  string
	Status           string
}

// NewReservationBuilder describes a three hour booking that starts one day
// after Now.
func NewReservationBuilder() *ReservationBuilder {
	now := time.Now().UTC().Truncate(time.Minute)
	pickUp := now.Add(24 * time.Hour)
	return &ReservationBuilder{
		ID:               uuid.New(),
		CarID:            uuid.New(),
		CarModel:         "Skoda Octavia",
		HourlyPriceCents: 1500,
		UserID:           uuid.New(),
		UserEmail:        "driver@example.com",
		Now:              now,
		PickUpTime:       pickUp,
		DropOffTime:      pickUp.Add(3 * time.Hour),
		PickUpLocation:   "Main Street 1",
		DropOffLocation:  "Airport Terminal 2",
		Status:           reservation.StatusCreated.String(),
	}
}

func (r *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(r)
	return r
}

func (r *ReservationBuilder) WithCar(carID uuid.UUID) *ReservationBuilder {
	r.CarID = carID
	return r
}

func (r *ReservationBuilder) WithUser(userID uuid.UUID) *ReservationBuilder {
	r.UserID = userID
	return r
}

// WithWindow takes offsets relative to Now.
func (r *ReservationBuilder) WithWindow(pickUp, dropOff time.Duration) *ReservationBuilder {
	r.PickUpTime = r.Now.Add(pickUp)
	r.DropOffTime = r.Now.Add(dropOff)
	return r
}

func (r *ReservationBuilder) WithStatus(status reservation.Status) *ReservationBuilder {
	r.Status = status.String()
	return r
}

// Build methods
func (r *ReservationBuilder) Clock() *clock.MockClock {
	return clock.NewMockClock(r.Now)
}

func (r *ReservationBuilder) Services() *reservation.Services {
	return &reservation.Services{
		Clock:           r.Clock(),
		PriceCalculator: reservation.NewHourlyPriceCalculator(),
	}
}

func (r *ReservationBuilder) BuildCarSpec() reservation.CarSpec {
	price, _ := reservation.NewMoney(r.HourlyPriceCents)
	return reservation.CarSpec{ID: r.CarID, HourlyPrice: price}
}

func (r *ReservationBuilder) BuildDomain() (*reservation.Reservation, error) {
	window, err := reservation.NewTimeWindow(r.PickUpTime, r.DropOffTime, r.Now)
	if err != nil {
		return nil, err
	}
	route, err := reservation.NewRoute(r.PickUpLocation, r.DropOffLocation)
	if err != nil {
		return nil, err
	}
	return reservation.NewReservation(r.Services(), r.BuildCarSpec(), r.UserID, window, route)
}

func (r *ReservationBuilder) TotalPriceCents() int64 {
	price, _ := reservation.NewHourlyPriceCalculator().Price(r.BuildCarSpec(), r.PickUpTime, r.DropOffTime)
	return price.Cents()
}

func (r *ReservationBuilder) BuildSnapshot() shared.ReservationSnapshot {
	return shared.ReservationSnapshot{
		ID:              r.ID,
		CarID:           r.CarID,
		UserID:          r.UserID,
		PickUpTime:      r.PickUpTime,
		DropOffTime:     r.DropOffTime,
		PickUpLocation:  r.PickUpLocation,
		DropOffLocation: r.DropOffLocation,
		Status:          r.Status,
		TotalPriceCents: r.TotalPriceCents(),
		CreatedAt:       r.Now,
		UpdatedAt:       r.Now,
	}
}

func (r *ReservationBuilder) BuildCarSnapshot() shared.CarSnapshot {
	return shared.CarSnapshot{
		ID:                r.CarID,
		Model:             r.CarModel,
		PricePerHourCents: r.HourlyPriceCents,
	}
}

func (r *ReservationBuilder) BuildUserSnapshot() shared.UserSnapshot {
	return shared.UserSnapshot{
		ID:       r.UserID,
		Email:    r.UserEmail,
		Role:     "CUSTOMER",
		IsActive: true,
	}
}

func (r *ReservationBuilder) BuildCreateInput() commands.CreateReservationInput {
	return commands.CreateReservationInput{
		CarID:           r.CarID,
		UserID:          r.UserID,
		PickUpTime:      r.PickUpTime,
		DropOffTime:     r.DropOffTime,
		PickUpLocation:  r.PickUpLocation,
		DropOffLocation: r.DropOffLocation,
	}
}

// BuildUpdateInput leaves the status empty unless one was set explicitly.
func (r *ReservationBuilder) BuildUpdateInput(status string) commands.UpdateReservationInput {
	return commands.UpdateReservationInput{
		PickUpTime:      r.PickUpTime,
		DropOffTime:     r.DropOffTime,
		PickUpLocation:  r.PickUpLocation,
		DropOffLocation: r.DropOffLocation,
		Status:          status,
	}
}

func (r *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		PickUpTime:      r.PickUpTime,
		DropOffTime:     r.DropOffTime,
		PickUpLocation:  r.PickUpLocation,
		DropOffLocation: r.DropOffLocation,
	}
}

func (r *ReservationBuilder) BuildUpdateRequestDTO(status *string) reqdto.UpdateReservationRequest {
	return reqdto.UpdateReservationRequest{
		PickUpTime:      r.PickUpTime,
		DropOffTime:     r.DropOffTime,
		PickUpLocation:  r.PickUpLocation,
		DropOffLocation: r.DropOffLocation,
		Status:          status,
	}
}

func (r *ReservationBuilder) BuildView() *queries.ReservationView {
	return &queries.ReservationView{
		ID:              r.ID,
		UserID:          r.UserID,
		UserEmail:       r.UserEmail,
		PickUpTime:      r.PickUpTime,
		DropOffTime:     r.DropOffTime,
		PickUpLocation:  r.PickUpLocation,
		DropOffLocation: r.DropOffLocation,
		Status:          r.Status,
		TotalPriceCents: r.TotalPriceCents(),
		CreatedAt:       r.Now,
		UpdatedAt:       r.Now,
		Car: queries.CarView{
			ID:                r.CarID,
			Model:             r.CarModel,
			PricePerHourCents: r.HourlyPriceCents,
		},
	}
}
