package api

import (
	"errors"
	"net/http"
	"time"

	"coworking-backend/internal/domain/room"
	reqdto "coworking-backend/internal/handler/dto/request"
	resdto "coworking-backend/internal/handler/dto/response"
	"coworking-backend/internal/handler/httperr"
	"coworking-backend/internal/handler/middleware"
	"coworking-backend/internal/usecase/commands"
	"coworking-backend/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RoomHandler struct {
	cmds commands.RoomCommands
	q    queries.RoomQueries
}

func NewRoomHandler(cmds commands.RoomCommands, q queries.RoomQueries) *RoomHandler {
	return &RoomHandler{cmds: cmds, q: q}
}

func (h *RoomHandler) Create(c *gin.Context) {
	actor, ok := middleware.GetUserContext(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "Unauthorized", nil)
		return
	}

	var req reqdto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	id, err := h.cmds.Create(c.Request.Context(), commands.CreateRoomRequest{
		Name:        req.Name,
		Capacity:    req.Capacity,
		Equipment:   req.Equipment,
		Description: req.Description,
	}, actor)
	if err != nil {
		h.abortRoomError(c, err)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load room", nil)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromRoomView(view))
}

func (h *RoomHandler) List(c *gin.Context) {
	activeOnly := c.DefaultQuery("active_only", "true") != "false"

	views, err := h.q.List(c.Request.Context(), activeOnly)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list rooms", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRoomViews(views))
}

func (h *RoomHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid room id", nil)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, queries.ErrRoomNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Room not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRoomView(view))
}

func (h *RoomHandler) Update(c *gin.Context) {
	actor, ok := middleware.GetUserContext(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "Unauthorized", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid room id", nil)
		return
	}

	var req reqdto.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	err = h.cmds.Update(c.Request.Context(), id, commands.UpdateRoomRequest{
		Name:        req.Name,
		Capacity:    req.Capacity,
		Equipment:   req.Equipment,
		Description: req.Description,
	}, actor)
	if err != nil {
		h.abortRoomError(c, err)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load room", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromRoomView(view))
}

func (h *RoomHandler) Deactivate(c *gin.Context) {
	actor, ok := middleware.GetUserContext(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "Unauthorized", nil)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid room id", nil)
		return
	}

	if err := h.cmds.Deactivate(c.Request.Context(), id, actor); err != nil {
		h.abortRoomError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RoomHandler) Availability(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid room id", nil)
		return
	}

	dateParam := c.Query("date")
	if dateParam == "" {
		httperr.AbortWithError(c, http.StatusBadRequest, errors.New("missing date"), "Query parameter date is required", nil)
		return
	}
	date, err := time.ParseInLocation("2006-01-02", dateParam, time.UTC)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date format, expected YYYY-MM-DD", nil)
		return
	}

	view, err := h.q.Availability(c.Request.Context(), id, date)
	if err != nil {
		if errors.Is(err, queries.ErrRoomNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Room not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAvailabilityView(view))
}

func (h *RoomHandler) abortRoomError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, commands.ErrForbidden):
		httperr.AbortWithError(c, http.StatusForbidden, err, "Not enough permissions", nil)
	case errors.Is(err, commands.ErrRoomNotFound):
		httperr.AbortWithError(c, http.StatusNotFound, err, "Room not found", nil)
	case errors.Is(err, commands.ErrRoomNameTaken):
		httperr.AbortWithError(c, http.StatusConflict, err, "Room name already exists", nil)
	case errors.Is(err, room.ErrEmptyRoomName),
		errors.Is(err, room.ErrRoomNameTooLong),
		errors.Is(err, room.ErrInvalidCapacity):
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
	}
}
