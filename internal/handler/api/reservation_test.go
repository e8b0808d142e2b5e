//go:build unit

package api_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"rental-booking/internal/domain/reservation"
	"rental-booking/internal/domain/user"
	"rental-booking/internal/handler/api"
	resdto "rental-booking/internal/handler/dto/response"
	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/usecase/commands"
	"rental-booking/internal/usecase/queries"
	"rental-booking/tests/common/builder"
	"rental-booking/tests/common/httptest"
	"rental-booking/tests/common/testutil"
	commandsmock "rental-booking/tests/mock/commands"
	queriesmock "rental-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ReservationHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockReservationCommands
	mockQueries  *queriesmock.MockReservationQueries
	handler      *api.ReservationHandler
	userID       uuid.UUID
	b            *builder.ReservationBuilder
}

func (s *ReservationHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockReservationCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockReservationQueries(s.mockCtrl)
	s.handler = api.NewReservationHandler(s.mockCommands, s.mockQueries)
	s.b = builder.NewReservationBuilder()
	s.userID = s.b.UserID

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("user_id", s.userID)
		c.Set("user_role", user.RoleCustomer)
		c.Next()
	}

	mine := s.router.Group("/reservations", authMiddleware)
	mine.POST("", s.handler.Create)
	mine.GET("", s.handler.ListMine)
	mine.GET("/availability", s.handler.Availability)
	mine.GET("/:id", s.handler.GetMine)

	admin := s.router.Group("/admin/reservations")
	admin.POST("", s.handler.AdminCreate)
	admin.GET("", s.handler.AdminList)
	admin.GET("/all", s.handler.AdminListAll)
	admin.GET("/exists", s.handler.AdminExists)
	admin.GET("/users/:userId", s.handler.AdminListByUser)
	admin.GET("/:id", s.handler.AdminGet)
	admin.PUT("/:id", s.handler.AdminUpdate)
	admin.DELETE("/:id", s.handler.AdminDelete)
}

func (s *ReservationHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestReservationHandlerSuite(t *testing.T) {
	suite.Run(t, new(ReservationHandlerTestSuite))
}

// sameInstant matches times by instant, ignoring location and monotonic data.
type sameInstant time.Time

func (m sameInstant) Matches(x any) bool {
	t, ok := x.(time.Time)
	return ok && t.Equal(time.Time(m))
}

func (m sameInstant) String() string {
	return "is " + time.Time(m).Format(time.RFC3339)
}

type testCaseReservation struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *ReservationHandlerTestSuite) TestCreate() {
	url := "/reservations?carId=" + s.b.CarID.String()
	reqBody := s.b.BuildCreateRequestDTO()
	returnView := s.b.BuildView()
	expectedResult := &commands.CreateReservationResult{ReservationID: returnView.ID}

	expectCreated := func() {
		s.mockCommands.EXPECT().CreateReservation(gomock.Any(), gomock.Any()).
			Return(expectedResult, nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), returnView.ID).
			Return(returnView, nil).Times(1)
	}

	s.Run("success: returns 201 Created with the stored reservation", func() {
		s.mockCommands.EXPECT().CreateReservation(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, in commands.CreateReservationInput) (*commands.CreateReservationResult, error) {
				s.Equal(s.b.CarID, in.CarID)
				s.Equal(s.userID, in.UserID)
				s.True(in.PickUpTime.Equal(s.b.PickUpTime))
				s.True(in.DropOffTime.Equal(s.b.DropOffTime))
				s.Equal(s.b.PickUpLocation, in.PickUpLocation)
				return expectedResult, nil
			}).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), returnView.ID).Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(returnView.ID, response.ID)
		s.Equal(returnView.TotalPriceCents, response.TotalPriceCents)
		s.Equal(returnView.Car.Model, response.Car.Model)
		s.Equal("CREATED", response.Status)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		bound := []testCaseReservation{
			{name: "pick-up location length OK (150 chars)", mutate: testutil.Field("pickUpLocation", strings.Repeat("a", 150)), expectCode: http.StatusCreated},
			{name: "pick-up location too long (151 chars)", mutate: testutil.Field("pickUpLocation", strings.Repeat("a", 151)), expectCode: http.StatusBadRequest},
			{name: "drop-off location too long (151 chars)", mutate: testutil.Field("dropOffLocation", strings.Repeat("a", 151)), expectCode: http.StatusBadRequest},
			{name: "malformed pick-up time", mutate: testutil.Field("pickUpTime", "tomorrow"), expectCode: http.StatusBadRequest},
		}
		missing := []testCaseReservation{
			{name: "missing field: pickUpTime", mutate: testutil.Field("pickUpTime", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: dropOffTime", mutate: testutil.Field("dropOffTime", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: pickUpLocation", mutate: testutil.Field("pickUpLocation", nil), expectCode: http.StatusBadRequest},
			{name: "empty dropOffLocation", mutate: testutil.Field("dropOffLocation", ""), expectCode: http.StatusBadRequest},
		}

		for _, group := range [][]testCaseReservation{bound, missing} {
			for _, tc := range group {
				s.Run(tc.name, func() {
					requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
					if tc.expectCode == http.StatusCreated {
						expectCreated()
					}
					rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
					if tc.expectCode == http.StatusCreated {
						httptest.AssertSuccessResponse(s.T(), rec, tc.expectCode, nil)
					} else {
						httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "Invalid request")
					}
				})
			}
		}
	})

	s.Run("error: 400 Bad Request for a missing or malformed carId", func() {
		for _, path := range []string{"/reservations", "/reservations?carId=not-a-uuid"} {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, path, reqBody, "bearer-token")
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid carId")
		}
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
		}{
			{name: "window in the past", commandsError: commands.ErrInvalidWindow, expectedStatus: http.StatusBadRequest},
			{name: "bad location", commandsError: commands.ErrInvalidLocation, expectedStatus: http.StatusBadRequest},
			{name: "car taken", commandsError: commands.ErrCarUnavailable, expectedStatus: http.StatusConflict},
			{name: "unknown car", commandsError: commands.ErrCarNotFound, expectedStatus: http.StatusNotFound},
			{name: "unknown user", commandsError: commands.ErrUserNotFound, expectedStatus: http.StatusNotFound},
			{name: "marked store conflict", commandsError: errs.Mark(errors.New("23P01"), commands.ErrCarUnavailable), expectedStatus: http.StatusConflict},
			{name: "database failure", commandsError: commands.ErrDatabaseOperationFailed, expectedStatus: http.StatusInternalServerError},
			{name: "unexpected error", commandsError: errors.New("boom"), expectedStatus: http.StatusInternalServerError},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CreateReservation(gomock.Any(), gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, "Create reservation failed")
				if tc.expectedStatus == http.StatusConflict {
					httptest.AssertErrorDetail(s.T(), rec, tc.expectedStatus, commands.ErrCarUnavailable.Error())
				}
			})
		}
	})
}

func (s *ReservationHandlerTestSuite) TestAdminCreate() {
	otherUser := uuid.New()
	url := "/admin/reservations?carId=" + s.b.CarID.String() + "&userId=" + otherUser.String()
	returnView := s.b.BuildView()

	s.Run("success: books on behalf of the given user", func() {
		s.mockCommands.EXPECT().CreateReservation(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, in commands.CreateReservationInput) (*commands.CreateReservationResult, error) {
				s.Equal(otherUser, in.UserID)
				return &commands.CreateReservationResult{ReservationID: returnView.ID}, nil
			}).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), returnView.ID).Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, s.b.BuildCreateRequestDTO(), "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
	})

	s.Run("error: 400 Bad Request without userId", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost,
			"/admin/reservations?carId="+s.b.CarID.String(), s.b.BuildCreateRequestDTO(), "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid userId")
	})
}

// ================================================================================
// TestAvailability
// ================================================================================

func (s *ReservationHandlerTestSuite) TestAvailability() {
	pickUp := time.Date(2030, 5, 1, 10, 0, 0, 0, time.UTC)
	dropOff := pickUp.Add(90 * time.Minute)
	url := "/reservations/availability?carId=" + s.b.CarID.String() +
		"&pickUpTime=" + pickUp.Format(time.RFC3339) +
		"&dropOffTime=" + dropOff.Format(time.RFC3339)
	price, err := reservation.NewMoney(3000)
	s.Require().NoError(err)

	s.Run("success: reports availability with the price", func() {
		for _, available := range []bool{true, false} {
			s.mockCommands.EXPECT().TotalPrice(gomock.Any(), s.b.CarID, sameInstant(pickUp), sameInstant(dropOff)).Return(price, nil).Times(1)
			s.mockCommands.EXPECT().CheckCarAvailability(gomock.Any(), s.b.CarID, sameInstant(pickUp), sameInstant(dropOff)).Return(available, nil).Times(1)

			rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

			var response resdto.AvailabilityResponse
			httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
			s.Equal(available, response.Available)
			s.Equal(int64(3000), response.TotalPriceCents)
			s.Equal(s.b.CarID, response.CarID)
		}
	})

	s.Run("error: 400 Bad Request for missing times", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/reservations/availability?carId="+s.b.CarID.String(), nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid time window")
	})

	s.Run("error: 400 Bad Request for a reversed window", func() {
		s.mockCommands.EXPECT().TotalPrice(gomock.Any(), s.b.CarID, sameInstant(pickUp), sameInstant(dropOff)).
			Return(reservation.Money{}, commands.ErrInvalidWindow).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Price calculation failed")
	})

	s.Run("error: 404 Not Found for an unknown car", func() {
		s.mockCommands.EXPECT().TotalPrice(gomock.Any(), s.b.CarID, sameInstant(pickUp), sameInstant(dropOff)).
			Return(reservation.Money{}, commands.ErrCarNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
	})
}

// ================================================================================
// TestListMine / TestGetMine
// ================================================================================

func (s *ReservationHandlerTestSuite) TestListMine() {
	page := queries.NewPage([]*queries.ReservationView{s.b.BuildView()},
		queries.PageRequest{Page: 1, Size: 5}, 6)

	s.Run("success: passes paging parameters through", func() {
		want := queries.PageRequest{Page: 1, Size: 5, Sort: queries.SortCreatedAt, Direction: queries.DirectionAsc}
		s.mockQueries.EXPECT().ListPageByUser(gomock.Any(), s.userID, want).Return(page, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet,
			"/reservations?page=1&size=5&sort=createdAt&direction=asc", nil, "bearer-token")

		var response resdto.ReservationPageResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response.Items, 1)
		s.Equal(int64(6), response.TotalItems)
		s.Equal(2, response.TotalPages)
	})

	s.Run("success: defaults when no parameters are given", func() {
		want := queries.PageRequest{Page: 0, Size: queries.DefaultPageSize, Sort: queries.DefaultSort, Direction: queries.DirectionDesc}
		s.mockQueries.EXPECT().ListPageByUser(gomock.Any(), s.userID, want).Return(page, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations", nil, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 Bad Request for unknown sort or bad numbers", func() {
		for _, query := range []string{"?sort=carModel", "?page=-1", "?size=abc", "?direction=up"} {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations"+query, nil, "bearer-token")
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid paging parameters")
		}
	})
}

func (s *ReservationHandlerTestSuite) TestGetMine() {
	view := s.b.BuildView()
	url := "/reservations/" + view.ID.String()

	s.Run("success: returns the caller's reservation", func() {
		s.mockQueries.EXPECT().GetByIDForUser(gomock.Any(), view.ID, s.userID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(view.ID, response.ID)
		s.Equal(view.UserEmail, response.UserEmail)
	})

	s.Run("error: 404 Not Found for someone else's reservation", func() {
		s.mockQueries.EXPECT().GetByIDForUser(gomock.Any(), view.ID, s.userID).
			Return(nil, queries.ErrReservationNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Failed to load reservation")
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/reservations/invalid-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})
}

// ================================================================================
// Admin queries
// ================================================================================

func (s *ReservationHandlerTestSuite) TestAdminListAll() {
	views := []*queries.ReservationView{s.b.BuildView(), builder.NewReservationBuilder().BuildView()}

	s.Run("success: returns every reservation", func() {
		s.mockQueries.EXPECT().ListAll(gomock.Any()).Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/reservations/all", nil, "")

		var response []resdto.ReservationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 2)
	})

	s.Run("error: 500 on query failure", func() {
		s.mockQueries.EXPECT().ListAll(gomock.Any()).Return(nil, queries.ErrReservationQueryFailed).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/reservations/all", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Failed to list reservations")
	})
}

func (s *ReservationHandlerTestSuite) TestAdminList() {
	page := queries.NewPage[*queries.ReservationView](nil, queries.PageRequest{Size: 10}, 0)
	want := queries.PageRequest{Page: 0, Size: 10, Sort: queries.SortTotalPrice, Direction: queries.DirectionDesc}
	s.mockQueries.EXPECT().ListPage(gomock.Any(), want).Return(page, nil).Times(1)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/reservations?size=10&sort=totalPrice", nil, "")

	var response resdto.ReservationPageResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
	s.NotNil(response.Items)
	s.Empty(response.Items)
}

func (s *ReservationHandlerTestSuite) TestAdminListByUser() {
	target := uuid.New()
	page := queries.NewPage([]*queries.ReservationView{s.b.BuildView()}, queries.PageRequest{Size: queries.DefaultPageSize}, 1)

	s.Run("success: lists the given user's reservations", func() {
		s.mockQueries.EXPECT().ListPageByUser(gomock.Any(), target, gomock.Any()).Return(page, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/reservations/users/"+target.String(), nil, "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 Bad Request for invalid user id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/reservations/users/nope", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid userId")
	})
}

func (s *ReservationHandlerTestSuite) TestAdminExists() {
	carID, userID := uuid.New(), uuid.New()

	s.Run("success: by car", func() {
		s.mockQueries.EXPECT().ExistsForCar(gomock.Any(), carID).Return(true, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/reservations/exists?carId="+carID.String(), nil, "")

		var response resdto.ExistsResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.True(response.Exists)
	})

	s.Run("success: by user", func() {
		s.mockQueries.EXPECT().ExistsForUser(gomock.Any(), userID).Return(false, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/reservations/exists?userId="+userID.String(), nil, "")

		var response resdto.ExistsResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.False(response.Exists)
	})

	s.Run("error: 400 Bad Request unless exactly one id is given", func() {
		for _, query := range []string{"", "?carId=" + carID.String() + "&userId=" + userID.String()} {
			rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/reservations/exists"+query, nil, "")
			httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Exactly one of carId or userId is required")
		}
	})

	s.Run("error: 400 Bad Request for malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/reservations/exists?carId=xyz", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid carId")
	})
}

func (s *ReservationHandlerTestSuite) TestAdminGet() {
	view := s.b.BuildView()

	s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil).Times(1)
	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/reservations/"+view.ID.String(), nil, "")
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)

	missing := uuid.New()
	s.mockQueries.EXPECT().GetByID(gomock.Any(), missing).Return(nil, queries.ErrReservationNotFound).Times(1)
	rec = httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/admin/reservations/"+missing.String(), nil, "")
	httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "")
}

// ================================================================================
// TestAdminUpdate / TestAdminDelete
// ================================================================================

func (s *ReservationHandlerTestSuite) TestAdminUpdate() {
	view := s.b.BuildView()
	url := "/admin/reservations/" + view.ID.String() + "?carId=" + s.b.CarID.String()

	s.Run("success: returns 200 OK with the updated reservation", func() {
		canceled := reservation.StatusCanceled.String()
		s.mockCommands.EXPECT().UpdateReservation(gomock.Any(), view.ID, s.b.CarID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _ uuid.UUID, in commands.UpdateReservationInput) error {
				s.Equal(canceled, in.Status)
				s.True(in.PickUpTime.Equal(s.b.PickUpTime))
				return nil
			}).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, s.b.BuildUpdateRequestDTO(&canceled), "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("success: omitted status is passed as empty", func() {
		s.mockCommands.EXPECT().UpdateReservation(gomock.Any(), view.ID, s.b.CarID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _ uuid.UUID, in commands.UpdateReservationInput) error {
				s.Empty(in.Status)
				return nil
			}).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), view.ID).Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, s.b.BuildUpdateRequestDTO(nil), "")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 Bad Request for an unknown status", func() {
		body := testutil.DtoMap(s.T(), s.b.BuildUpdateRequestDTO(nil), testutil.Field("status", "PAUSED"))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, body, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
		}{
			{name: "not found", commandsError: commands.ErrReservationNotFound, expectedStatus: http.StatusNotFound},
			{name: "overlap", commandsError: commands.ErrCarUnavailable, expectedStatus: http.StatusConflict},
			{name: "terminal reservation", commandsError: commands.ErrLifecycleViolation, expectedStatus: http.StatusUnprocessableEntity},
			{name: "status rejected by domain", commandsError: commands.ErrInvalidStatus, expectedStatus: http.StatusBadRequest},
			{name: "database failure", commandsError: commands.ErrDatabaseOperationFailed, expectedStatus: http.StatusInternalServerError},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().UpdateReservation(gomock.Any(), view.ID, s.b.CarID, gomock.Any()).
					Return(tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, s.b.BuildUpdateRequestDTO(nil), "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, "Update reservation failed")
			})
		}
	})
}

func (s *ReservationHandlerTestSuite) TestAdminDelete() {
	id := uuid.New()
	url := "/admin/reservations/" + id.String()

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().RemoveByID(gomock.Any(), id).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "")
		s.Equal(http.StatusNoContent, rec.Code)
		s.Empty(rec.Body.String())
	})

	s.Run("error: 404 Not Found when already gone", func() {
		s.mockCommands.EXPECT().RemoveByID(gomock.Any(), id).Return(commands.ErrReservationNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Delete reservation failed")
	})
}
