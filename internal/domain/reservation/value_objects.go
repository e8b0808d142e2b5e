package reservation

import (
	"time"
	"unicode/utf8"
)

const MaxLocationLength = 150

// TimeWindow is a closed interval [pickUp, dropOff].
type TimeWindow struct {
	pickUp  time.Time
	dropOff time.Time
}

// ValidateWindow rejects windows that start in the past or are empty or reversed.
func ValidateWindow(pickUp, dropOff, now time.Time) error {
	if pickUp.Before(now) {
		return ErrInvalidWindow
	}
	if !pickUp.Before(dropOff) {
		return ErrInvalidWindow
	}
	return nil
}

func NewTimeWindow(pickUp, dropOff, now time.Time) (TimeWindow, error) {
	if err := ValidateWindow(pickUp, dropOff, now); err != nil {
		return TimeWindow{}, err
	}
	return TimeWindow{pickUp: pickUp, dropOff: dropOff}, nil
}

// ReconstructTimeWindow rebuilds a window from storage or from a terminal
// transition. No validation is applied.
func ReconstructTimeWindow(pickUp, dropOff time.Time) TimeWindow {
	return TimeWindow{pickUp: pickUp, dropOff: dropOff}
}

func (w TimeWindow) PickUp() time.Time  { return w.pickUp }
func (w TimeWindow) DropOff() time.Time { return w.dropOff }

func (w TimeWindow) Duration() time.Duration {
	return w.dropOff.Sub(w.pickUp)
}

// Intersects reports whether two closed intervals share at least one instant.
// Touching endpoints count as an intersection.
func (w TimeWindow) Intersects(pickUp, dropOff time.Time) bool {
	return !w.pickUp.After(dropOff) && !w.dropOff.Before(pickUp)
}

type Money struct {
	cents int64
}

func NewMoney(cents int64) (Money, error) {
	if cents < 0 {
		return Money{}, ErrNegativePrice
	}
	return Money{cents: cents}, nil
}

func (m Money) Cents() int64 {
	return m.cents
}

func (m Money) Multiply(n int64) Money {
	return Money{cents: m.cents * n}
}

type Location struct {
	value string
}

func NewLocation(value string) (Location, error) {
	if value == "" || utf8.RuneCountInString(value) > MaxLocationLength {
		return Location{}, ErrInvalidLocation
	}
	return Location{value: value}, nil
}

func ReconstructLocation(value string) Location {
	return Location{value: value}
}

func (l Location) String() string {
	return l.value
}

// Route is the pick-up and drop-off location pair of a reservation.
type Route struct {
	PickUp  Location
	DropOff Location
}

func NewRoute(pickUp, dropOff string) (Route, error) {
	p, err := NewLocation(pickUp)
	if err != nil {
		return Route{}, err
	}
	d, err := NewLocation(dropOff)
	if err != nil {
		return Route{}, err
	}
	return Route{PickUp: p, DropOff: d}, nil
}
