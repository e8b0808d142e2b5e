package memstore

import (
	"context"
	"slices"
	"sort"
	"sync"

	"rental-booking/internal/domain/reservation"
	"rental-booking/internal/infra"
	"rental-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// Store keeps cars, users and reservations in memory. Reservations of a car
// are indexed by pick-up time. Transactions are serialized and rolled back
// by restoring the state captured before they started.
type Store struct {
	mu    sync.RWMutex
	state *state
}

type state struct {
	cars         map[uuid.UUID]shared.CarSnapshot
	users        map[uuid.UUID]shared.UserSnapshot
	reservations map[uuid.UUID]shared.ReservationSnapshot
	byCar        map[uuid.UUID][]uuid.UUID
}

func New() *Store {
	return &Store{state: &state{
		cars:         map[uuid.UUID]shared.CarSnapshot{},
		users:        map[uuid.UUID]shared.UserSnapshot{},
		reservations: map[uuid.UUID]shared.ReservationSnapshot{},
		byCar:        map[uuid.UUID][]uuid.UUID{},
	}}
}

func (s *Store) AddCar(car shared.CarSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.cars[car.ID] = car
}

func (s *Store) AddUser(user shared.UserSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.users[user.ID] = user
}

// Put stores a reservation as is, bypassing every booking rule.
func (s *Store) Put(snap shared.ReservationSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.put(snap)
}

// Reservation returns the stored snapshot for inspection.
func (s *Store) Reservation(id uuid.UUID) (*shared.ReservationSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.reservation(id)
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	saved := s.state.clone()
	if err := fn(ctx, &memTx{st: s.state}); err != nil {
		s.state = saved
		return err
	}
	return nil
}

func (s *Store) CommandReads() shared.CommandReads {
	return &lockedReads{store: s}
}

func (st *state) clone() *state {
	out := &state{
		cars:         make(map[uuid.UUID]shared.CarSnapshot, len(st.cars)),
		users:        make(map[uuid.UUID]shared.UserSnapshot, len(st.users)),
		reservations: make(map[uuid.UUID]shared.ReservationSnapshot, len(st.reservations)),
		byCar:        make(map[uuid.UUID][]uuid.UUID, len(st.byCar)),
	}
	for k, v := range st.cars {
		out.cars[k] = v
	}
	for k, v := range st.users {
		out.users[k] = v
	}
	for k, v := range st.reservations {
		out.reservations[k] = v
	}
	for k, v := range st.byCar {
		out.byCar[k] = slices.Clone(v)
	}
	return out
}

func (st *state) put(snap shared.ReservationSnapshot) {
	if old, ok := st.reservations[snap.ID]; ok {
		st.unindex(old)
	}
	st.reservations[snap.ID] = snap

	ids := st.byCar[snap.CarID]
	i := sort.Search(len(ids), func(i int) bool {
		return st.reservations[ids[i]].PickUpTime.After(snap.PickUpTime)
	})
	st.byCar[snap.CarID] = slices.Insert(ids, i, snap.ID)
}

func (st *state) unindex(snap shared.ReservationSnapshot) {
	ids := st.byCar[snap.CarID]
	if i := slices.Index(ids, snap.ID); i >= 0 {
		st.byCar[snap.CarID] = slices.Delete(ids, i, i+1)
	}
}

func (st *state) conflicting(q reservation.ConflictQuery) []uuid.UUID {
	var out []uuid.UUID
	for _, id := range st.byCar[q.CarID] {
		r := st.reservations[id]
		if r.PickUpTime.After(q.DropOff) {
			break
		}
		if r.DropOffTime.Before(q.PickUp) {
			continue
		}
		if slices.Contains(q.ExcludedStatuses, reservation.Status(r.Status)) {
			continue
		}
		out = append(out, id)
	}
	return out
}

func (st *state) reservation(id uuid.UUID) (*shared.ReservationSnapshot, error) {
	r, ok := st.reservations[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "reservation not found")
	}
	return &r, nil
}

func (st *state) car(id uuid.UUID) (*shared.CarSnapshot, error) {
	c, ok := st.cars[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "car not found")
	}
	return &c, nil
}

func (st *state) user(id uuid.UUID) (*shared.UserSnapshot, error) {
	u, ok := st.users[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "user not found")
	}
	return &u, nil
}

func toSnapshot(res *reservation.Reservation) shared.ReservationSnapshot {
	return shared.ReservationSnapshot{
		ID:              res.ID(),
		CarID:           res.CarID(),
		UserID:          res.UserID(),
		PickUpTime:      res.Window().PickUp(),
		DropOffTime:     res.Window().DropOff(),
		PickUpLocation:  res.Route().PickUp.String(),
		DropOffLocation: res.Route().DropOff.String(),
		Status:          res.Status().String(),
		TotalPriceCents: res.TotalPrice().Cents(),
		CreatedAt:       res.CreatedAt(),
		UpdatedAt:       res.UpdatedAt(),
	}
}
