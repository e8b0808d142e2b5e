//go:build unit

package reservation_test

import (
	"strings"
	"testing"
	"time"

	"rental-booking/internal/domain/reservation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2030, 5, 1, 10, 0, 0, 0, time.UTC)

func TestValidateWindow(t *testing.T) {
	testCases := []struct {
		name    string
		pickUp  time.Time
		dropOff time.Time
		errIs   error
	}{
		{name: "future window", pickUp: now.Add(time.Hour), dropOff: now.Add(2 * time.Hour)},
		{name: "pick-up exactly now", pickUp: now, dropOff: now.Add(time.Minute)},
		{name: "pick-up in the past", pickUp: now.Add(-time.Second), dropOff: now.Add(time.Hour), errIs: reservation.ErrInvalidWindow},
		{name: "empty window", pickUp: now.Add(time.Hour), dropOff: now.Add(time.Hour), errIs: reservation.ErrInvalidWindow},
		{name: "reversed window", pickUp: now.Add(2 * time.Hour), dropOff: now.Add(time.Hour), errIs: reservation.ErrInvalidWindow},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := reservation.ValidateWindow(tc.pickUp, tc.dropOff, now)
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)

			w, err := reservation.NewTimeWindow(tc.pickUp, tc.dropOff, now)
			require.NoError(t, err)
			assert.Equal(t, tc.dropOff.Sub(tc.pickUp), w.Duration())
		})
	}
}

func TestTimeWindow_Intersects(t *testing.T) {
	w := reservation.ReconstructTimeWindow(now.Add(10*time.Hour), now.Add(12*time.Hour))

	testCases := []struct {
		name    string
		pickUp  time.Duration
		dropOff time.Duration
		want    bool
	}{
		{name: "strictly before", pickUp: 7 * time.Hour, dropOff: 9 * time.Hour, want: false},
		{name: "ends at pick-up", pickUp: 8 * time.Hour, dropOff: 10 * time.Hour, want: true},
		{name: "inside", pickUp: 10*time.Hour + 30*time.Minute, dropOff: 11 * time.Hour, want: true},
		{name: "covers", pickUp: 9 * time.Hour, dropOff: 13 * time.Hour, want: true},
		{name: "starts at drop-off", pickUp: 12 * time.Hour, dropOff: 14 * time.Hour, want: true},
		{name: "strictly after", pickUp: 12*time.Hour + time.Nanosecond, dropOff: 14 * time.Hour, want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, w.Intersects(now.Add(tc.pickUp), now.Add(tc.dropOff)))
		})
	}
}

func TestMoney(t *testing.T) {
	_, err := reservation.NewMoney(-1)
	require.ErrorIs(t, err, reservation.ErrNegativePrice)

	m, err := reservation.NewMoney(1250)
	require.NoError(t, err)
	assert.Equal(t, int64(3750), m.Multiply(3).Cents())
	assert.Equal(t, int64(0), m.Multiply(0).Cents())
}

func TestNewRoute(t *testing.T) {
	testCases := []struct {
		name    string
		pickUp  string
		dropOff string
		errIs   error
	}{
		{name: "both set", pickUp: "Depot", dropOff: "Airport"},
		{name: "max length", pickUp: strings.Repeat("a", reservation.MaxLocationLength), dropOff: "Airport"},
		{name: "multibyte max length", pickUp: strings.Repeat("ü", reservation.MaxLocationLength), dropOff: "Airport"},
		{name: "too long", pickUp: "Depot", dropOff: strings.Repeat("a", reservation.MaxLocationLength+1), errIs: reservation.ErrInvalidLocation},
		{name: "empty pick-up", pickUp: "", dropOff: "Airport", errIs: reservation.ErrInvalidLocation},
		{name: "empty drop-off", pickUp: "Depot", dropOff: "", errIs: reservation.ErrInvalidLocation},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			route, err := reservation.NewRoute(tc.pickUp, tc.dropOff)
			if tc.errIs != nil {
				require.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.pickUp, route.PickUp.String())
			assert.Equal(t, tc.dropOff, route.DropOff.String())
		})
	}
}

func TestStatus(t *testing.T) {
	for _, s := range []string{"CREATED", "CANCELED", "DONE"} {
		st, err := reservation.NewStatus(s)
		require.NoError(t, err)
		assert.Equal(t, s, st.String())
	}

	_, err := reservation.NewStatus("created")
	require.ErrorIs(t, err, reservation.ErrInvalidStatus)

	assert.False(t, reservation.StatusCreated.IsTerminal())
	assert.True(t, reservation.StatusCanceled.IsTerminal())
	assert.True(t, reservation.StatusDone.IsTerminal())
}
