package memstore

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"rental-booking/internal/infra"
	"rental-booking/internal/usecase/queries"
	"rental-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// ReadStore exposes the in-memory reservations as read models.
type ReadStore struct {
	store *Store
}

func NewReadStore(store *Store) *ReadStore {
	return &ReadStore{store: store}
}

func (r *ReadStore) FindByID(_ context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	snap, ok := r.store.state.reservations[id]
	if !ok {
		return nil, infra.NewRepoErr(infra.KindNotFound, "reservation not found")
	}
	return r.view(snap), nil
}

func (r *ReadStore) FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*queries.ReservationView, error) {
	view, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if view.UserID != userID {
		return nil, infra.NewRepoErr(infra.KindNotFound, "reservation not found")
	}
	return view, nil
}

func (r *ReadStore) FindAll(_ context.Context) ([]*queries.ReservationView, error) {
	req := queries.PageRequest{Sort: queries.SortPickUpTime, Direction: queries.DirectionDesc}
	return r.sorted(func(shared.ReservationSnapshot) bool { return true }, req), nil
}

func (r *ReadStore) FindPage(_ context.Context, req queries.PageRequest) ([]*queries.ReservationView, int64, error) {
	all := r.sorted(func(shared.ReservationSnapshot) bool { return true }, req)
	return paginate(all, req), int64(len(all)), nil
}

func (r *ReadStore) FindPageByUser(_ context.Context, userID uuid.UUID, req queries.PageRequest) ([]*queries.ReservationView, int64, error) {
	all := r.sorted(func(s shared.ReservationSnapshot) bool { return s.UserID == userID }, req)
	return paginate(all, req), int64(len(all)), nil
}

func (r *ReadStore) ExistsForCar(_ context.Context, carID uuid.UUID) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return len(r.store.state.byCar[carID]) > 0, nil
}

func (r *ReadStore) ExistsForUser(_ context.Context, userID uuid.UUID) (bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, snap := range r.store.state.reservations {
		if snap.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *ReadStore) sorted(keep func(shared.ReservationSnapshot) bool, req queries.PageRequest) []*queries.ReservationView {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var views []*queries.ReservationView
	for _, snap := range r.store.state.reservations {
		if keep(snap) {
			views = append(views, r.view(snap))
		}
	}

	slices.SortFunc(views, func(a, b *queries.ReservationView) int {
		c := compareBy(req.Sort, a, b)
		if req.Direction != queries.DirectionAsc {
			c = -c
		}
		if c == 0 {
			c = strings.Compare(a.ID.String(), b.ID.String())
		}
		return c
	})
	return views
}

func compareBy(field queries.SortField, a, b *queries.ReservationView) int {
	switch field {
	case queries.SortDropOffTime:
		return a.DropOffTime.Compare(b.DropOffTime)
	case queries.SortStatus:
		return strings.Compare(a.Status, b.Status)
	case queries.SortTotalPrice:
		return cmp.Compare(a.TotalPriceCents, b.TotalPriceCents)
	case queries.SortCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt)
	case queries.SortID:
		return strings.Compare(a.ID.String(), b.ID.String())
	default:
		return a.PickUpTime.Compare(b.PickUpTime)
	}
}

func paginate(all []*queries.ReservationView, req queries.PageRequest) []*queries.ReservationView {
	start := min(req.Offset(), len(all))
	end := min(start+req.Size, len(all))
	return all[start:end]
}

func (r *ReadStore) view(snap shared.ReservationSnapshot) *queries.ReservationView {
	car := r.store.state.cars[snap.CarID]
	user := r.store.state.users[snap.UserID]
	return &queries.ReservationView{
		ID:              snap.ID,
		UserID:          snap.UserID,
		UserEmail:       user.Email,
		PickUpTime:      snap.PickUpTime,
		DropOffTime:     snap.DropOffTime,
		PickUpLocation:  snap.PickUpLocation,
		DropOffLocation: snap.DropOffLocation,
		Status:          snap.Status,
		TotalPriceCents: snap.TotalPriceCents,
		CreatedAt:       snap.CreatedAt,
		UpdatedAt:       snap.UpdatedAt,
		Car: queries.CarView{
			ID:                car.ID,
			Model:             car.Model,
			PricePerHourCents: car.PricePerHourCents,
			BuiltIn:           car.BuiltIn,
		},
	}
}
