package queries

import (
	"context"

	"rental-booking/internal/infra"
	"rental-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrReservationNotFound    = errs.New("reservation not found")
	ErrReservationQueryFailed = errs.New("failed to load reservations")
)

type ReservationQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*ReservationView, error)
	ListAll(ctx context.Context) ([]*ReservationView, error)
	ListPage(ctx context.Context, req PageRequest) (*Page[*ReservationView], error)
	ListPageByUser(ctx context.Context, userID uuid.UUID, req PageRequest) (*Page[*ReservationView], error)
	ExistsForCar(ctx context.Context, carID uuid.UUID) (bool, error)
	ExistsForUser(ctx context.Context, userID uuid.UUID) (bool, error)
}

type ReservationReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	FindByIDForUser(ctx context.Context, id, userID uuid.UUID) (*ReservationView, error)
	FindAll(ctx context.Context) ([]*ReservationView, error)
	FindPage(ctx context.Context, req PageRequest) ([]*ReservationView, int64, error)
	FindPageByUser(ctx context.Context, userID uuid.UUID, req PageRequest) ([]*ReservationView, int64, error)
	ExistsForCar(ctx context.Context, carID uuid.UUID) (bool, error)
	ExistsForUser(ctx context.Context, userID uuid.UUID) (bool, error)
}

type reservationQueriesImpl struct {
	store ReservationReadStore
}

func NewReservationQueries(store ReservationReadStore) ReservationQueries {
	return &reservationQueriesImpl{store: store}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		return nil, mapReadErr(err)
	}
	return view, nil
}

// GetByIDForUser hides reservations of other users behind the not-found error.
func (q *reservationQueriesImpl) GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*ReservationView, error) {
	view, err := q.store.FindByIDForUser(ctx, id, userID)
	if err != nil {
		return nil, mapReadErr(err)
	}
	return view, nil
}

func (q *reservationQueriesImpl) ListAll(ctx context.Context) ([]*ReservationView, error) {
	views, err := q.store.FindAll(ctx)
	if err != nil {
		return nil, mapReadErr(err)
	}
	return views, nil
}

func (q *reservationQueriesImpl) ListPage(ctx context.Context, req PageRequest) (*Page[*ReservationView], error) {
	req = normalize(req)
	if !req.inRange() {
		return nil, ErrInvalidPageRequest
	}
	views, total, err := q.store.FindPage(ctx, req)
	if err != nil {
		return nil, mapReadErr(err)
	}
	return NewPage(views, req, total), nil
}

func (q *reservationQueriesImpl) ListPageByUser(ctx context.Context, userID uuid.UUID, req PageRequest) (*Page[*ReservationView], error) {
	req = normalize(req)
	if !req.inRange() {
		return nil, ErrInvalidPageRequest
	}
	views, total, err := q.store.FindPageByUser(ctx, userID, req)
	if err != nil {
		return nil, mapReadErr(err)
	}
	return NewPage(views, req, total), nil
}

func (q *reservationQueriesImpl) ExistsForCar(ctx context.Context, carID uuid.UUID) (bool, error) {
	ok, err := q.store.ExistsForCar(ctx, carID)
	if err != nil {
		return false, mapReadErr(err)
	}
	return ok, nil
}

func (q *reservationQueriesImpl) ExistsForUser(ctx context.Context, userID uuid.UUID) (bool, error) {
	ok, err := q.store.ExistsForUser(ctx, userID)
	if err != nil {
		return false, mapReadErr(err)
	}
	return ok, nil
}

func normalize(req PageRequest) PageRequest {
	req.Size = ValidateLimit(req.Size)
	if req.Page < 0 {
		req.Page = 0
	}
	if req.Sort.Column() == "" {
		req.Sort = DefaultSort
	}
	if req.Direction != DirectionAsc {
		req.Direction = DirectionDesc
	}
	return req
}

func mapReadErr(err error) error {
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, ErrReservationNotFound)
	}
	return errs.Mark(err, ErrReservationQueryFailed)
}
