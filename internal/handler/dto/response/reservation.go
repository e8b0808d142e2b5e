package response

import (
	"time"

	"rental-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type CarResponse struct {
	ID                uuid.UUID `json:"id"`
	Model             string    `json:"model"`
	PricePerHourCents int64     `json:"pricePerHourCents"`
	BuiltIn           bool      `json:"builtIn"`
}

type ReservationResponse struct {
	ID              uuid.UUID   `json:"id"`
	UserID          uuid.UUID   `json:"userId"`
	UserEmail       string      `json:"userEmail"`
	Car             CarResponse `json:"car"`
	PickUpTime      time.Time   `json:"pickUpTime"`
	DropOffTime     time.Time   `json:"dropOffTime"`
	PickUpLocation  string      `json:"pickUpLocation"`
	DropOffLocation string      `json:"dropOffLocation"`
	Status          string      `json:"status"`
	TotalPriceCents int64       `json:"totalPriceCents"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
}

type ReservationPageResponse struct {
	Items      []*ReservationResponse `json:"items"`
	Page       int                    `json:"page"`
	Size       int                    `json:"size"`
	TotalItems int64                  `json:"totalItems"`
	TotalPages int                    `json:"totalPages"`
}

type AvailabilityResponse struct {
	CarID           uuid.UUID `json:"carId"`
	Available       bool      `json:"available"`
	TotalPriceCents int64     `json:"totalPriceCents"`
}

type ExistsResponse struct {
	Exists bool `json:"exists"`
}

type CreatedResponse struct {
	ID uuid.UUID `json:"id"`
}

func FromReservationView(rm *queries.ReservationView) *ReservationResponse {
	var resp ReservationResponse
	// Field names line up one to one; the nested car is copied field by field.
	if err := copier.Copy(&resp, rm); err != nil {
		return &ReservationResponse{ID: rm.ID, Status: rm.Status}
	}
	return &resp
}

func FromReservationViews(rms []*queries.ReservationView) []*ReservationResponse {
	out := make([]*ReservationResponse, 0, len(rms))
	for _, rm := range rms {
		out = append(out, FromReservationView(rm))
	}
	return out
}

func FromReservationPage(p *queries.Page[*queries.ReservationView]) *ReservationPageResponse {
	return &ReservationPageResponse{
		Items:      FromReservationViews(p.Items),
		Page:       p.Page,
		Size:       p.Size,
		TotalItems: p.TotalItems,
		TotalPages: p.TotalPages,
	}
}
