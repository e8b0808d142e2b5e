package reservation

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ConflictQuery selects reservations of one car whose window intersects
// [PickUp, DropOff] and whose status is not in ExcludedStatuses.
type ConflictQuery struct {
	CarID            uuid.UUID
	PickUp           time.Time
	DropOff          time.Time
	ExcludedStatuses []Status
}

type ConflictFinder interface {
	FindConflicting(ctx context.Context, q ConflictQuery) ([]uuid.UUID, error)
}

// Conflicts is a set of reservation ids that block a requested window.
type Conflicts []uuid.UUID

func (c Conflicts) Empty() bool {
	return len(c) == 0
}

// Without returns the conflicts minus the given reservation.
func (c Conflicts) Without(id uuid.UUID) Conflicts {
	out := make(Conflicts, 0, len(c))
	for _, cid := range c {
		if cid != id {
			out = append(out, cid)
		}
	}
	return out
}

func DetectConflicts(
	ctx context.Context,
	finder ConflictFinder,
	carID uuid.UUID,
	pickUp, dropOff time.Time,
	excluded []Status,
) (Conflicts, error) {
	if pickUp.After(dropOff) {
		return nil, ErrInvalidWindow
	}
	ids, err := finder.FindConflicting(ctx, ConflictQuery{
		CarID:            carID,
		PickUp:           pickUp,
		DropOff:          dropOff,
		ExcludedStatuses: excluded,
	})
	if err != nil {
		return nil, err
	}
	return Conflicts(ids), nil
}
