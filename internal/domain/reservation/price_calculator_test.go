//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"rental-booking/internal/domain/reservation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHourlyPriceCalculator(t *testing.T) {
	rate, err := reservation.NewMoney(1000)
	require.NoError(t, err)
	car := reservation.CarSpec{ID: uuid.New(), HourlyPrice: rate}
	calc := reservation.NewHourlyPriceCalculator()

	testCases := []struct {
		name     string
		duration time.Duration
		want     int64
	}{
		{name: "zero length", duration: 0, want: 0},
		{name: "under a minute is free", duration: 59 * time.Second, want: 0},
		{name: "one minute bills one hour", duration: time.Minute, want: 1000},
		{name: "exactly one hour", duration: time.Hour, want: 1000},
		{name: "one hour and one minute", duration: 61 * time.Minute, want: 2000},
		{name: "seconds past the hour are truncated", duration: time.Hour + 59*time.Second, want: 1000},
		{name: "one day", duration: 24 * time.Hour, want: 24000},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			price, err := calc.Price(car, now, now.Add(tc.duration))
			require.NoError(t, err)
			assert.Equal(t, tc.want, price.Cents())
		})
	}

	t.Run("reversed window is rejected", func(t *testing.T) {
		_, err := calc.Price(car, now, now.Add(-time.Hour))
		require.ErrorIs(t, err, reservation.ErrInvalidWindow)
	})
}
