package queries

import (
	"time"

	"github.com/google/uuid"
)

// CarView is the car summary embedded in reservation read models
type CarView struct {
	ID                uuid.UUID `json:"id"`
	Model             string    `json:"model"`
	PricePerHourCents int64     `json:"price_per_hour_cents"`
	BuiltIn           bool      `json:"built_in"`
}

// ReservationView represents read-optimized reservation data
type ReservationView struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"user_id"`
	UserEmail       string    `json:"user_email"`
	PickUpTime      time.Time `json:"pick_up_time"`
	DropOffTime     time.Time `json:"drop_off_time"`
	PickUpLocation  string    `json:"pick_up_location"`
	DropOffLocation string    `json:"drop_off_location"`
	Status          string    `json:"status"`
	TotalPriceCents int64     `json:"total_price_cents"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
	Car             CarView   `json:"car"`
}

type Page[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

func NewPage[T any](items []T, req PageRequest, total int64) *Page[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if req.Size > 0 {
		pages = int((total + int64(req.Size) - 1) / int64(req.Size))
	}
	return &Page[T]{
		Items:      items,
		Page:       req.Page,
		Size:       req.Size,
		TotalItems: total,
		TotalPages: pages,
	}
}
