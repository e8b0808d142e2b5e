package shared

import (
	"time"

	"rental-booking/internal/domain/reservation"
	"rental-booking/internal/domain/user"

	"github.com/google/uuid"
)

// Write-side snapshots prevent dependency on Read-side query types (CQRS separation)
type CarSnapshot struct {
	ID                uuid.UUID `json:"id"`
	Model             string    `json:"model"`
	PricePerHourCents int64     `json:"price_per_hour_cents"`
	BuiltIn           bool      `json:"built_in"`
}

type UserSnapshot struct {
	ID       uuid.UUID
	Email    string
	Role     string
	IsActive bool
}

func (s *UserSnapshot) ToDomain() (*user.User, error) {
	role, err := user.NewRole(s.Role)
	if err != nil {
		return nil, err
	}
	return user.ReconstructUser(s.ID, user.ReconstructEmail(s.Email), role, s.IsActive), nil
}

type ReservationSnapshot struct {
	ID              uuid.UUID
	CarID           uuid.UUID
	UserID          uuid.UUID
	PickUpTime      time.Time
	DropOffTime     time.Time
	PickUpLocation  string
	DropOffLocation string
	Status          string
	TotalPriceCents int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ToDomain rebuilds the aggregate without re-running creation rules.
func (s *ReservationSnapshot) ToDomain() (*reservation.Reservation, error) {
	status, err := reservation.NewStatus(s.Status)
	if err != nil {
		return nil, err
	}
	price, err := reservation.NewMoney(s.TotalPriceCents)
	if err != nil {
		return nil, err
	}
	return reservation.ReconstructReservation(
		s.ID, s.CarID, s.UserID,
		reservation.ReconstructTimeWindow(s.PickUpTime, s.DropOffTime),
		reservation.Route{
			PickUp:  reservation.ReconstructLocation(s.PickUpLocation),
			DropOff: reservation.ReconstructLocation(s.DropOffLocation),
		},
		status,
		price,
		s.CreatedAt, s.UpdatedAt,
	), nil
}
