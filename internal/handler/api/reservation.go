package api

import (
	"net/http"

	reqdto "rental-booking/internal/handler/dto/request"
	resdto "rental-booking/internal/handler/dto/response"
	"rental-booking/internal/handler/httperr"
	"rental-booking/internal/handler/middleware"
	"rental-booking/internal/pkg/errs"
	"rental-booking/internal/usecase/commands"
	"rental-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ReservationHandler struct {
	cmds commands.ReservationCommands
	q    queries.ReservationQueries
}

func NewReservationHandler(cmds commands.ReservationCommands, q queries.ReservationQueries) *ReservationHandler {
	return &ReservationHandler{cmds: cmds, q: q}
}

// @Summary Create reservation
// @Description Book a car for the authenticated user
// @Tags reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param carId query string true "Car ID"
// @Param request body reqdto.CreateReservationRequest true "Create reservation request"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /reservations [post]
func (h *ReservationHandler) Create(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}
	h.create(c, userID)
}

// @Summary Create reservation on behalf of a user
// @Tags admin-reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId query string true "User ID"
// @Param carId query string true "Car ID"
// @Param request body reqdto.CreateReservationRequest true "Create reservation request"
// @Success 201 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/reservations [post]
func (h *ReservationHandler) AdminCreate(c *gin.Context) {
	userID, ok := queryUUID(c, "userId")
	if !ok {
		return
	}
	h.create(c, userID)
}

func (h *ReservationHandler) create(c *gin.Context, userID uuid.UUID) {
	carID, ok := queryUUID(c, "carId")
	if !ok {
		return
	}
	var req reqdto.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	result, err := h.cmds.CreateReservation(c.Request.Context(), req.ToInput(carID, userID))
	if err != nil {
		abortWithMapped(c, err, "Create reservation failed")
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), result.ReservationID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load reservation", nil)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromReservationView(view))
}

// @Summary Check car availability
// @Description Report whether the car is free for the window and what it would cost
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param carId query string true "Car ID"
// @Param pickUpTime query string true "Pick-up time (RFC 3339)"
// @Param dropOffTime query string true "Drop-off time (RFC 3339)"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservations/availability [get]
func (h *ReservationHandler) Availability(c *gin.Context) {
	carID, ok := queryUUID(c, "carId")
	if !ok {
		return
	}
	var query reqdto.AvailabilityQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid time window", nil)
		return
	}

	ctx := c.Request.Context()
	price, err := h.cmds.TotalPrice(ctx, carID, query.PickUpTime, query.DropOffTime)
	if err != nil {
		abortWithMapped(c, err, "Price calculation failed")
		return
	}
	available, err := h.cmds.CheckCarAvailability(ctx, carID, query.PickUpTime, query.DropOffTime)
	if err != nil {
		abortWithMapped(c, err, "Availability check failed")
		return
	}

	c.JSON(http.StatusOK, resdto.AvailabilityResponse{
		CarID:           carID,
		Available:       available,
		TotalPriceCents: price.Cents(),
	})
}

// @Summary List own reservations
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number, zero based"
// @Param size query int false "Page size"
// @Param sort query string false "Sort field" Enums(pickUpTime, dropOffTime, status, totalPrice, createdAt, id)
// @Param direction query string false "Sort direction" Enums(ASC, DESC)
// @Success 200 {object} resdto.ReservationPageResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /reservations [get]
func (h *ReservationHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}
	h.listByUser(c, userID)
}

// @Summary Get own reservation
// @Tags reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /reservations/{id} [get]
func (h *ReservationHandler) GetMine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, nil, "Unauthorized", nil)
		return
	}
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	view, err := h.q.GetByIDForUser(c.Request.Context(), id, userID)
	if err != nil {
		abortWithMapped(c, err, "Failed to load reservation")
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary List all reservations
// @Tags admin-reservations
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.ReservationResponse
// @Failure 403 {object} httperr.Response
// @Router /admin/reservations/all [get]
func (h *ReservationHandler) AdminListAll(c *gin.Context) {
	views, err := h.q.ListAll(c.Request.Context())
	if err != nil {
		abortWithMapped(c, err, "Failed to list reservations")
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationViews(views))
}

// @Summary List reservations page
// @Tags admin-reservations
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number, zero based"
// @Param size query int false "Page size"
// @Param sort query string false "Sort field"
// @Param direction query string false "Sort direction" Enums(ASC, DESC)
// @Success 200 {object} resdto.ReservationPageResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /admin/reservations [get]
func (h *ReservationHandler) AdminList(c *gin.Context) {
	req, ok := pageRequest(c)
	if !ok {
		return
	}
	page, err := h.q.ListPage(c.Request.Context(), req)
	if err != nil {
		abortWithMapped(c, err, "Failed to list reservations")
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationPage(page))
}

// @Summary List a user's reservations
// @Tags admin-reservations
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Param page query int false "Page number, zero based"
// @Param size query int false "Page size"
// @Success 200 {object} resdto.ReservationPageResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Router /admin/reservations/users/{userId} [get]
func (h *ReservationHandler) AdminListByUser(c *gin.Context) {
	userID, ok := pathUUID(c, "userId")
	if !ok {
		return
	}
	h.listByUser(c, userID)
}

func (h *ReservationHandler) listByUser(c *gin.Context, userID uuid.UUID) {
	req, ok := pageRequest(c)
	if !ok {
		return
	}
	page, err := h.q.ListPageByUser(c.Request.Context(), userID, req)
	if err != nil {
		abortWithMapped(c, err, "Failed to list reservations")
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationPage(page))
}

// @Summary Check whether reservations reference a car or a user
// @Description Exactly one of carId and userId must be given
// @Tags admin-reservations
// @Produce json
// @Security BearerAuth
// @Param carId query string false "Car ID"
// @Param userId query string false "User ID"
// @Success 200 {object} resdto.ExistsResponse
// @Failure 400 {object} httperr.Response
// @Router /admin/reservations/exists [get]
func (h *ReservationHandler) AdminExists(c *gin.Context) {
	rawCar, rawUser := c.Query("carId"), c.Query("userId")
	if (rawCar == "") == (rawUser == "") {
		httperr.AbortWithError(c, http.StatusBadRequest, nil, "Exactly one of carId or userId is required", nil)
		return
	}

	var (
		exists bool
		err    error
	)
	if rawCar != "" {
		carID, ok := queryUUID(c, "carId")
		if !ok {
			return
		}
		exists, err = h.q.ExistsForCar(c.Request.Context(), carID)
	} else {
		userID, ok := queryUUID(c, "userId")
		if !ok {
			return
		}
		exists, err = h.q.ExistsForUser(c.Request.Context(), userID)
	}
	if err != nil {
		abortWithMapped(c, err, "Existence check failed")
		return
	}
	c.JSON(http.StatusOK, resdto.ExistsResponse{Exists: exists})
}

// @Summary Get reservation
// @Tags admin-reservations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /admin/reservations/{id} [get]
func (h *ReservationHandler) AdminGet(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		abortWithMapped(c, err, "Failed to load reservation")
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary Update reservation
// @Description Replace window, route, car and optionally status of a reservation
// @Tags admin-reservations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Param carId query string true "Car ID"
// @Param request body reqdto.UpdateReservationRequest true "Update reservation request"
// @Success 200 {object} resdto.ReservationResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /admin/reservations/{id} [put]
func (h *ReservationHandler) AdminUpdate(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	carID, ok := queryUUID(c, "carId")
	if !ok {
		return
	}
	var req reqdto.UpdateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	if err := h.cmds.UpdateReservation(c.Request.Context(), id, carID, req.ToInput()); err != nil {
		abortWithMapped(c, err, "Update reservation failed")
		return
	}
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load reservation", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationView(view))
}

// @Summary Delete reservation
// @Tags admin-reservations
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 204
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /admin/reservations/{id} [delete]
func (h *ReservationHandler) AdminDelete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.cmds.RemoveByID(c.Request.Context(), id); err != nil {
		abortWithMapped(c, err, "Delete reservation failed")
		return
	}
	c.Status(http.StatusNoContent)
}

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid "+name, nil)
		return uuid.Nil, false
	}
	return id, true
}

func queryUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Query(name))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid "+name, nil)
		return uuid.Nil, false
	}
	return id, true
}

func pageRequest(c *gin.Context) (queries.PageRequest, bool) {
	var query reqdto.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid paging parameters", nil)
		return queries.PageRequest{}, false
	}
	req, err := query.ToPageRequest()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid paging parameters", nil)
		return queries.PageRequest{}, false
	}
	return req, true
}

type errorMapping struct {
	sentinel error
	status   int
}

var errorMappings = []errorMapping{
	{commands.ErrInvalidWindow, http.StatusBadRequest},
	{commands.ErrInvalidLocation, http.StatusBadRequest},
	{commands.ErrInvalidStatus, http.StatusBadRequest},
	{queries.ErrInvalidPageRequest, http.StatusBadRequest},
	{commands.ErrCarUnavailable, http.StatusConflict},
	{commands.ErrReservationNotFound, http.StatusNotFound},
	{commands.ErrCarNotFound, http.StatusNotFound},
	{commands.ErrUserNotFound, http.StatusNotFound},
	{queries.ErrReservationNotFound, http.StatusNotFound},
	{commands.ErrLifecycleViolation, http.StatusUnprocessableEntity},
}

// abortWithMapped exposes the sentinel message as detail; store failures stay opaque.
func abortWithMapped(c *gin.Context, err error, msg string) {
	for _, m := range errorMappings {
		if errs.Is(err, m.sentinel) {
			httperr.AbortWithError(c, m.status, err, msg, m.sentinel.Error())
			return
		}
	}
	httperr.AbortWithError(c, http.StatusInternalServerError, err, msg, nil)
}
