//go:build unit

package queries_test

import (
	"context"
	"math"
	"testing"
	"time"

	"rental-booking/internal/domain/reservation"
	"rental-booking/internal/infra"
	"rental-booking/internal/infra/memstore"
	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/usecase/queries"
	"rental-booking/tests/common/builder"
	queriesmock "rental-booking/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationQueriesTestSuite struct {
	suite.Suite
	ctx   context.Context
	store *memstore.Store
	q     queries.ReservationQueries
	alice uuid.UUID
	bob   uuid.UUID
	carID uuid.UUID
	ids   []uuid.UUID
}

func TestReservationQueriesSuite(t *testing.T) {
	suite.Run(t, new(ReservationQueriesTestSuite))
}

// SetupTest stores three reservations of alice and one of bob on the same car.
func (s *ReservationQueriesTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = memstore.New()
	s.q = queries.NewReservationQueries(memstore.NewReadStore(s.store))

	base := builder.NewReservationBuilder()
	s.carID = base.CarID
	s.store.AddCar(base.BuildCarSnapshot())

	alice := builder.NewUserBuilder().WithEmail("alice@example.com").BuildSnapshot()
	bob := builder.NewUserBuilder().WithEmail("bob@example.com").BuildSnapshot()
	s.store.AddUser(alice)
	s.store.AddUser(bob)
	s.alice, s.bob = alice.ID, bob.ID

	s.ids = nil
	for i, owner := range []uuid.UUID{s.alice, s.alice, s.alice, s.bob} {
		offset := time.Duration(i*10) * time.Hour
		snap := builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) {
			b.Now = base.Now
		}).WithCar(s.carID).WithUser(owner).WithWindow(offset+time.Hour, offset+2*time.Hour).BuildSnapshot()
		s.store.Put(snap)
		s.ids = append(s.ids, snap.ID)
	}
}

func (s *ReservationQueriesTestSuite) TestGetByID() {
	view, err := s.q.GetByID(s.ctx, s.ids[0])
	s.Require().NoError(err)
	s.Equal(s.ids[0], view.ID)
	s.Equal("alice@example.com", view.UserEmail)
	s.Equal(s.carID, view.Car.ID)

	_, err = s.q.GetByID(s.ctx, uuid.New())
	s.Require().Error(err)
	s.True(errs.Is(err, queries.ErrReservationNotFound))
}

func (s *ReservationQueriesTestSuite) TestGetByIDForUser() {
	view, err := s.q.GetByIDForUser(s.ctx, s.ids[3], s.bob)
	s.Require().NoError(err)
	s.Equal(s.bob, view.UserID)

	_, err = s.q.GetByIDForUser(s.ctx, s.ids[3], s.alice)
	s.Require().Error(err)
	s.True(errs.Is(err, queries.ErrReservationNotFound))
}

func (s *ReservationQueriesTestSuite) TestListAll_NewestPickUpFirst() {
	views, err := s.q.ListAll(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(views, 4)
	for i := 1; i < len(views); i++ {
		s.False(views[i].PickUpTime.After(views[i-1].PickUpTime))
	}
}

func (s *ReservationQueriesTestSuite) TestListPage() {
	s.Run("pages through every reservation", func() {
		req, err := queries.NewPageRequest(1, 3, "pickUpTime", "ASC")
		s.Require().NoError(err)

		page, err := s.q.ListPage(s.ctx, req)
		s.Require().NoError(err)
		s.Equal(int64(4), page.TotalItems)
		s.Equal(2, page.TotalPages)
		s.Require().Len(page.Items, 1)
		s.Equal(s.ids[3], page.Items[0].ID)
	})

	s.Run("zero value request falls back to defaults", func() {
		page, err := s.q.ListPage(s.ctx, queries.PageRequest{})
		s.Require().NoError(err)
		s.Equal(queries.DefaultPageSize, page.Size)
		s.Len(page.Items, 4)
		s.Equal(s.ids[3], page.Items[0].ID)
	})

	s.Run("page past the end is empty", func() {
		page, err := s.q.ListPage(s.ctx, queries.PageRequest{Page: 5, Size: 10})
		s.Require().NoError(err)
		s.Empty(page.Items)
		s.Equal(int64(4), page.TotalItems)
	})

	s.Run("error: page whose offset overflows is rejected", func() {
		huge := queries.PageRequest{Page: math.MaxInt / 10, Size: queries.MaxPageSize}

		_, err := s.q.ListPage(s.ctx, huge)
		s.Require().Error(err)
		s.True(errs.Is(err, queries.ErrInvalidPageRequest))

		_, err = s.q.ListPageByUser(s.ctx, s.alice, huge)
		s.Require().Error(err)
		s.True(errs.Is(err, queries.ErrInvalidPageRequest))
	})
}

func (s *ReservationQueriesTestSuite) TestListPageByUser() {
	page, err := s.q.ListPageByUser(s.ctx, s.alice, queries.PageRequest{Size: 2, Sort: queries.SortPickUpTime, Direction: queries.DirectionAsc})
	s.Require().NoError(err)
	s.Equal(int64(3), page.TotalItems)
	s.Equal(2, page.TotalPages)
	s.Require().Len(page.Items, 2)
	s.Equal(s.ids[0], page.Items[0].ID)
	s.Equal(s.ids[1], page.Items[1].ID)

	page, err = s.q.ListPageByUser(s.ctx, uuid.New(), queries.PageRequest{})
	s.Require().NoError(err)
	s.Empty(page.Items)
	s.Equal(int64(0), page.TotalItems)
}

func (s *ReservationQueriesTestSuite) TestExists() {
	ok, err := s.q.ExistsForCar(s.ctx, s.carID)
	s.Require().NoError(err)
	s.True(ok)

	ok, err = s.q.ExistsForCar(s.ctx, uuid.New())
	s.Require().NoError(err)
	s.False(ok)

	ok, err = s.q.ExistsForUser(s.ctx, s.bob)
	s.Require().NoError(err)
	s.True(ok)
}

func (s *ReservationQueriesTestSuite) TestExists_CountsTerminalReservations() {
	owner := builder.NewUserBuilder().BuildSnapshot()
	s.store.AddUser(owner)
	s.store.Put(builder.NewReservationBuilder().WithCar(s.carID).WithUser(owner.ID).
		WithStatus(reservation.StatusCanceled).BuildSnapshot())

	ok, err := s.q.ExistsForUser(s.ctx, owner.ID)
	s.Require().NoError(err)
	s.True(ok)
}

func TestReservationQueries_StoreFailures(t *testing.T) {
	ctx := context.Background()
	dbErr := infra.NewRepoErr(infra.KindDBFailure, "connection refused")

	testCases := []struct {
		name      string
		setupMock func(m *queriesmock.MockReservationReadStore)
		call      func(q queries.ReservationQueries) error
	}{
		{
			name: "list all",
			setupMock: func(m *queriesmock.MockReservationReadStore) {
				m.EXPECT().FindAll(gomock.Any()).Return(nil, dbErr)
			},
			call: func(q queries.ReservationQueries) error {
				_, err := q.ListAll(ctx)
				return err
			},
		},
		{
			name: "list page normalizes the request before querying",
			setupMock: func(m *queriesmock.MockReservationReadStore) {
				want := queries.PageRequest{Page: 0, Size: queries.DefaultPageSize, Sort: queries.DefaultSort, Direction: queries.DirectionDesc}
				m.EXPECT().FindPage(gomock.Any(), want).Return(nil, int64(0), dbErr)
			},
			call: func(q queries.ReservationQueries) error {
				_, err := q.ListPage(ctx, queries.PageRequest{Page: -3, Sort: "nope", Direction: "up"})
				return err
			},
		},
		{
			name: "exists for car",
			setupMock: func(m *queriesmock.MockReservationReadStore) {
				m.EXPECT().ExistsForCar(gomock.Any(), gomock.Any()).Return(false, dbErr)
			},
			call: func(q queries.ReservationQueries) error {
				_, err := q.ExistsForCar(ctx, uuid.New())
				return err
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			m := queriesmock.NewMockReservationReadStore(ctrl)
			tc.setupMock(m)

			err := tc.call(queries.NewReservationQueries(m))
			require.Error(t, err)
			assert.True(t, errs.Is(err, queries.ErrReservationQueryFailed))
			assert.False(t, errs.Is(err, queries.ErrReservationNotFound))
		})
	}
}
