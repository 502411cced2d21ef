package api

import (
	"errors"
	"net/http"
	"time"

	"coworking-backend/internal/domain/booking"
	reqdto "coworking-backend/internal/handler/dto/request"
	resdto "coworking-backend/internal/handler/dto/response"
	"coworking-backend/internal/handler/httperr"
	"coworking-backend/internal/handler/middleware"
	"coworking-backend/internal/usecase/commands"
	"coworking-backend/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	cmds commands.BookingCommands
	q    queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, q queries.BookingQueries) *BookingHandler {
	return &BookingHandler{cmds: cmds, q: q}
}

func (h *BookingHandler) Create(c *gin.Context) {
	actor, ok := middleware.GetUserContext(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "Unauthorized", nil)
		return
	}

	idempotencyKey, err := h.getIdempotencyKey(c)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid Idempotency-Key header", nil)
		return
	}

	var req reqdto.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.cmds.Create(c.Request.Context(), commands.CreateBookingRequest{
		RoomID:    req.RoomID,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Purpose:   req.GetPurpose(),
	}, actor, idempotencyKey)
	if err != nil {
		h.abortBookingError(c, err)
		return
	}

	view, err := h.q.GetByIDSystem(c.Request.Context(), result.BookingID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load booking", nil)
		return
	}

	status := http.StatusCreated
	if result.IsReplayed {
		status = http.StatusOK
	}
	c.JSON(status, resdto.FromBookingView(view))
}

func (h *BookingHandler) List(c *gin.Context) {
	actor, ok := middleware.GetUserContext(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "Unauthorized", nil)
		return
	}

	views, err := h.q.List(c.Request.Context(), actor)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list bookings", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingViews(views))
}

func (h *BookingHandler) Get(c *gin.Context) {
	actor, ok := middleware.GetUserContext(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "Unauthorized", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking id", nil)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrBookingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
		case errors.Is(err, queries.ErrBookingHidden):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Not enough permissions", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

func (h *BookingHandler) ListByRoom(c *gin.Context) {
	roomID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid room id", nil)
		return
	}

	from, err := h.parseTimeQuery(c, "from")
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid from parameter, expected RFC3339", nil)
		return
	}
	to, err := h.parseTimeQuery(c, "to")
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid to parameter, expected RFC3339", nil)
		return
	}

	views, err := h.q.ListByRoom(c.Request.Context(), roomID, from, to)
	if err != nil {
		if errors.Is(err, queries.ErrRoomNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Room not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list room bookings", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingViews(views))
}

func (h *BookingHandler) Update(c *gin.Context) {
	actor, ok := middleware.GetUserContext(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "Unauthorized", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking id", nil)
		return
	}

	var req reqdto.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	err = h.cmds.Update(c.Request.Context(), id, commands.UpdateBookingRequest{
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Purpose:   req.GetPurpose(),
	}, actor)
	if err != nil {
		h.abortBookingError(c, err)
		return
	}

	view, err := h.q.GetByIDSystem(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load booking", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	actor, ok := middleware.GetUserContext(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "Unauthorized", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking id", nil)
		return
	}

	if err := h.cmds.Cancel(c.Request.Context(), id, actor); err != nil {
		h.abortBookingError(c, err)
		return
	}

	view, err := h.q.GetByIDSystem(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load booking", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

func (h *BookingHandler) getIdempotencyKey(c *gin.Context) (*uuid.UUID, error) {
	header := c.GetHeader("Idempotency-Key")
	if header == "" {
		return nil, nil
	}
	key, err := uuid.Parse(header)
	if err != nil {
		return nil, err
	}
	return &key, nil
}

func (h *BookingHandler) parseTimeQuery(c *gin.Context, name string) (*time.Time, error) {
	value := c.Query(name)
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (h *BookingHandler) abortBookingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrForbidden):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Not enough permissions", nil)
	case errors.Is(err, commands.ErrBookingNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
	case errors.Is(err, commands.ErrRoomNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Room not found", nil)
	case errors.Is(err, commands.ErrBookingConflict):
		httperr.AbortWithError(c, http.StatusConflict, err, "Room is already booked for this time", nil)
	case errors.Is(err, commands.ErrDuplicateRequest):
		httperr.AbortWithError(c, http.StatusConflict, err, "Duplicate request with different parameters", nil)
	case errors.Is(err, commands.ErrRoomInactive):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Room is not available for booking", nil)
	case errors.Is(err, commands.ErrPastBooking):
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Cannot modify past bookings", nil)
	case errors.Is(err, booking.ErrPastStart),
		errors.Is(err, booking.ErrInvalidDuration),
		errors.Is(err, booking.ErrOutsideOperatingHours),
		errors.Is(err, booking.ErrDurationTooLong),
		errors.Is(err, booking.ErrQuotaExceeded),
		errors.Is(err, booking.ErrAlreadyStarted),
		errors.Is(err, booking.ErrTooCloseToStart),
		errors.Is(err, booking.ErrNotConfirmed),
		errors.Is(err, booking.ErrPurposeTooLong):
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
