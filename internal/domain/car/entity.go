package car

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrEmptyModel        = errors.New("car model cannot be empty")
	ErrModelTooLong      = errors.New("car model is too long (max 255 characters)")
	ErrNegativeHourlyFee = errors.New("hourly price cannot be negative")
)

const MaxModelLength = 255

// Car is the rentable vehicle as seen by the booking engine. The catalog
// itself is owned elsewhere.
type Car struct {
	id               uuid.UUID
	model            string
	pricePerHourCent int64
	builtIn          bool
}

func NewCar(id uuid.UUID, model string, pricePerHourCent int64, builtIn bool) (*Car, error) {
	model = strings.TrimSpace(model)
	if model == "" {
		return nil, ErrEmptyModel
	}
	if len(model) > MaxModelLength {
		return nil, ErrModelTooLong
	}
	if pricePerHourCent < 0 {
		return nil, ErrNegativeHourlyFee
	}
	return &Car{
		id:               id,
		model:            model,
		pricePerHourCent: pricePerHourCent,
		builtIn:          builtIn,
	}, nil
}

func (c *Car) ID() uuid.UUID            { return c.id }
func (c *Car) Model() string            { return c.model }
func (c *Car) PricePerHourCents() int64 { return c.pricePerHourCent }
func (c *Car) BuiltIn() bool            { return c.builtIn }
