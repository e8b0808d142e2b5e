package reservation

import (
	"time"

	"github.com/google/uuid"
)

// CarSpec is the part of a car the booking engine needs.
type CarSpec struct {
	ID          uuid.UUID
	HourlyPrice Money
}

type PriceCalculator interface {
	Price(car CarSpec, pickUp, dropOff time.Time) (Money, error)
}

// HourlyPriceCalculator bills every started hour at the car's hourly rate.
// The duration is truncated to whole minutes before rounding up to hours.
type HourlyPriceCalculator struct{}

func NewHourlyPriceCalculator() *HourlyPriceCalculator {
	return &HourlyPriceCalculator{}
}

func (HourlyPriceCalculator) Price(car CarSpec, pickUp, dropOff time.Time) (Money, error) {
	if dropOff.Before(pickUp) {
		return Money{}, ErrInvalidWindow
	}
	minutes := int64(dropOff.Sub(pickUp) / time.Minute)
	hours := (minutes + 59) / 60
	return car.HourlyPrice.Multiply(hours), nil
}
