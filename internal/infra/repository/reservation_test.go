//go:build unit

package repository_test

import (
	"testing"
	"time"

	"rental-booking/internal/domain/reservation"
	"rental-booking/internal/infra/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConflictQuery(t *testing.T) {
	carID := uuid.New()
	pickUp := time.Date(2030, 5, 1, 10, 0, 0, 0, time.UTC)
	dropOff := pickUp.Add(3 * time.Hour)

	t.Run("closed interval with excluded statuses", func(t *testing.T) {
		query, args, err := repository.ConflictQuery(reservation.ConflictQuery{
			CarID:            carID,
			PickUp:           pickUp,
			DropOff:          dropOff,
			ExcludedStatuses: reservation.InactiveStatuses,
		}).ToSQL()
		require.NoError(t, err)

		assert.Contains(t, query, `"car_id" = $1`)
		assert.Contains(t, query, `"pick_up_time" <= $2`)
		assert.Contains(t, query, `"drop_off_time" >= $3`)
		assert.Contains(t, query, `"status" NOT IN ($4, $5)`)
		assert.Contains(t, query, `ORDER BY "pick_up_time" ASC`)
		assert.Equal(t, []any{carID.String(), dropOff, pickUp, "CANCELED", "DONE"}, args)
	})

	t.Run("no status filter when nothing is excluded", func(t *testing.T) {
		query, args, err := repository.ConflictQuery(reservation.ConflictQuery{
			CarID:   carID,
			PickUp:  pickUp,
			DropOff: dropOff,
		}).ToSQL()
		require.NoError(t, err)

		assert.NotContains(t, query, "NOT IN")
		assert.Len(t, args, 3)
	})
}
