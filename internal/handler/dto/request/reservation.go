package request

import (
	"time"

	"rental-booking/internal/usecase/commands"
	"rental-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	PickUpTime      time.Time `json:"pickUpTime" binding:"required"`
	DropOffTime     time.Time `json:"dropOffTime" binding:"required"`
	PickUpLocation  string    `json:"pickUpLocation" binding:"required,max=150"`
	DropOffLocation string    `json:"dropOffLocation" binding:"required,max=150"`
}

func (r CreateReservationRequest) ToInput(carID, userID uuid.UUID) commands.CreateReservationInput {
	return commands.CreateReservationInput{
		CarID:           carID,
		UserID:          userID,
		PickUpTime:      r.PickUpTime,
		DropOffTime:     r.DropOffTime,
		PickUpLocation:  r.PickUpLocation,
		DropOffLocation: r.DropOffLocation,
	}
}

// UpdateReservationRequest replaces the whole reservation; status may be omitted.
type UpdateReservationRequest struct {
	PickUpTime      time.Time `json:"pickUpTime" binding:"required"`
	DropOffTime     time.Time `json:"dropOffTime" binding:"required"`
	PickUpLocation  string    `json:"pickUpLocation" binding:"required,max=150"`
	DropOffLocation string    `json:"dropOffLocation" binding:"required,max=150"`
	Status          *string   `json:"status" binding:"omitempty,oneof=CREATED CANCELED DONE"`
}

func (r UpdateReservationRequest) ToInput() commands.UpdateReservationInput {
	return commands.UpdateReservationInput{
		PickUpTime:      r.PickUpTime,
		DropOffTime:     r.DropOffTime,
		PickUpLocation:  r.PickUpLocation,
		DropOffLocation: r.DropOffLocation,
		Status:          valueOr(r.Status, ""),
	}
}

type AvailabilityQuery struct {
	PickUpTime  time.Time `form:"pickUpTime" time_format:"2006-01-02T15:04:05Z07:00" binding:"required"`
	DropOffTime time.Time `form:"dropOffTime" time_format:"2006-01-02T15:04:05Z07:00" binding:"required"`
}

type PageQuery struct {
	Page      *int   `form:"page"`
	Size      *int   `form:"size"`
	Sort      string `form:"sort"`
	Direction string `form:"direction"`
}

func (q PageQuery) ToPageRequest() (queries.PageRequest, error) {
	return queries.NewPageRequest(
		valueOr(q.Page, 0),
		valueOr(q.Size, queries.DefaultPageSize),
		q.Sort,
		q.Direction,
	)
}

func valueOr[T any](ptr *T, fallback T) T {
	if ptr == nil {
		return fallback
	}
	return *ptr
}
