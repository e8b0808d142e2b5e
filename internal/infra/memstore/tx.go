package memstore

import (
	"context"

	"rental-booking/internal/domain/reservation"
	"rental-booking/internal/infra"
	"rental-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// memTx runs with the store lock held.
type memTx struct {
	st *state
}

func (t *memTx) Reservations() shared.ReservationRepository { return t }

// LockCars is a no-op because the whole transaction already holds the store lock.
func (t *memTx) LockCars(_ context.Context, _ ...uuid.UUID) error {
	return nil
}

func (t *memTx) GetForUpdate(_ context.Context, id uuid.UUID) (*shared.ReservationSnapshot, error) {
	return t.st.reservation(id)
}

func (t *memTx) FindConflicting(_ context.Context, q reservation.ConflictQuery) ([]uuid.UUID, error) {
	return t.st.conflicting(q), nil
}

func (t *memTx) Insert(_ context.Context, res *reservation.Reservation) error {
	if _, ok := t.st.reservations[res.ID()]; ok {
		return infra.NewRepoErr(infra.KindDuplicateKey, "reservation already exists")
	}
	snap := toSnapshot(res)
	if t.violatesExclusion(snap) {
		return infra.NewRepoErr(infra.KindConflict, "overlapping active reservation")
	}
	t.st.put(snap)
	return nil
}

func (t *memTx) Update(_ context.Context, res *reservation.Reservation) error {
	if _, ok := t.st.reservations[res.ID()]; !ok {
		return infra.NewRepoErr(infra.KindNotFound, "reservation not found")
	}
	snap := toSnapshot(res)
	if t.violatesExclusion(snap) {
		return infra.NewRepoErr(infra.KindConflict, "overlapping active reservation")
	}
	t.st.put(snap)
	return nil
}

func (t *memTx) DeleteByID(_ context.Context, id uuid.UUID) (bool, error) {
	snap, ok := t.st.reservations[id]
	if !ok {
		return false, nil
	}
	t.st.unindex(snap)
	delete(t.st.reservations, id)
	return true, nil
}

// violatesExclusion mirrors the database constraint on active reservations.
func (t *memTx) violatesExclusion(snap shared.ReservationSnapshot) bool {
	if snap.Status != reservation.StatusCreated.String() {
		return false
	}
	ids := t.st.conflicting(reservation.ConflictQuery{
		CarID:            snap.CarID,
		PickUp:           snap.PickUpTime,
		DropOff:          snap.DropOffTime,
		ExcludedStatuses: reservation.InactiveStatuses,
	})
	for _, id := range ids {
		if id != snap.ID {
			return true
		}
	}
	return false
}

type lockedReads struct {
	store *Store
}

func (r *lockedReads) CarByID(_ context.Context, id uuid.UUID) (*shared.CarSnapshot, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.state.car(id)
}

func (r *lockedReads) UserByID(_ context.Context, id uuid.UUID) (*shared.UserSnapshot, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return r.store.state.user(id)
}
