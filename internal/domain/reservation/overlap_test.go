//go:build unit

package reservation_test

import (
	"context"
	"testing"
	"time"

	"rental-booking/internal/domain/reservation"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type finderFunc func(ctx context.Context, q reservation.ConflictQuery) ([]uuid.UUID, error)

func (f finderFunc) FindConflicting(ctx context.Context, q reservation.ConflictQuery) ([]uuid.UUID, error) {
	return f(ctx, q)
}

func TestDetectConflicts(t *testing.T) {
	ctx := context.Background()
	carID := uuid.New()
	pickUp, dropOff := now.Add(time.Hour), now.Add(3*time.Hour)

	t.Run("passes the query through", func(t *testing.T) {
		blocking := uuid.New()
		var got reservation.ConflictQuery
		finder := finderFunc(func(_ context.Context, q reservation.ConflictQuery) ([]uuid.UUID, error) {
			got = q
			return []uuid.UUID{blocking}, nil
		})

		conflicts, err := reservation.DetectConflicts(ctx, finder, carID, pickUp, dropOff, reservation.InactiveStatuses)
		require.NoError(t, err)
		assert.False(t, conflicts.Empty())
		assert.Equal(t, reservation.ConflictQuery{
			CarID:            carID,
			PickUp:           pickUp,
			DropOff:          dropOff,
			ExcludedStatuses: reservation.InactiveStatuses,
		}, got)
	})

	t.Run("degenerate window is allowed", func(t *testing.T) {
		finder := finderFunc(func(context.Context, reservation.ConflictQuery) ([]uuid.UUID, error) {
			return nil, nil
		})
		conflicts, err := reservation.DetectConflicts(ctx, finder, carID, pickUp, pickUp, nil)
		require.NoError(t, err)
		assert.True(t, conflicts.Empty())
	})

	t.Run("reversed window never reaches the finder", func(t *testing.T) {
		finder := finderFunc(func(context.Context, reservation.ConflictQuery) ([]uuid.UUID, error) {
			t.Fatal("finder must not be called")
			return nil, nil
		})
		_, err := reservation.DetectConflicts(ctx, finder, carID, dropOff, pickUp, nil)
		require.ErrorIs(t, err, reservation.ErrInvalidWindow)
	})

	t.Run("finder error is returned", func(t *testing.T) {
		boom := assert.AnError
		finder := finderFunc(func(context.Context, reservation.ConflictQuery) ([]uuid.UUID, error) {
			return nil, boom
		})
		_, err := reservation.DetectConflicts(ctx, finder, carID, pickUp, dropOff, nil)
		require.ErrorIs(t, err, boom)
	})
}

func TestConflicts_Without(t *testing.T) {
	self, other := uuid.New(), uuid.New()

	assert.True(t, reservation.Conflicts{self}.Without(self).Empty())
	assert.Equal(t, reservation.Conflicts{other}, reservation.Conflicts{self, other}.Without(self))
	assert.True(t, reservation.Conflicts(nil).Without(self).Empty())
}
