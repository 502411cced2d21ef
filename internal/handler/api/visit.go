package api

import (
	"errors"
	"net/http"

	resdto "coworking-backend/internal/handler/dto/response"
	"coworking-backend/internal/handler/httperr"
	"coworking-backend/internal/handler/middleware"
	"coworking-backend/internal/usecase/commands"
	"coworking-backend/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type VisitHandler struct {
	cmds commands.VisitCommands
	q    queries.UserQueries
}

func NewVisitHandler(cmds commands.VisitCommands, q queries.UserQueries) *VisitHandler {
	return &VisitHandler{cmds: cmds, q: q}
}

func (h *VisitHandler) CheckIn(c *gin.Context) {
	actor, ok := middleware.GetUserContext(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "Unauthorized", nil)
		return
	}

	id, err := h.cmds.CheckIn(c.Request.Context(), actor)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrForbidden):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Not enough permissions", nil)
		case errors.Is(err, commands.ErrAlreadyCheckedIn):
			httperr.AbortWithError(c, http.StatusConflict, err, "An open visit already exists", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"visit_id": id})
}

func (h *VisitHandler) CheckOut(c *gin.Context) {
	actor, ok := middleware.GetUserContext(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "Unauthorized", nil)
		return
	}

	result, err := h.cmds.CheckOut(c.Request.Context(), actor)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrForbidden):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Not enough permissions", nil)
		case errors.Is(err, commands.ErrNoOpenVisit):
			httperr.AbortWithError(c, http.StatusNotFound, err, "No open visit to check out", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	c.JSON(http.StatusOK, resdto.CheckOutResponse{
		VisitID:         result.VisitID,
		DurationMinutes: result.DurationMinutes,
	})
}

func (h *VisitHandler) ListMine(c *gin.Context) {
	actor, ok := middleware.GetUserContext(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "Unauthorized", nil)
		return
	}

	views, err := h.q.ListVisits(c.Request.Context(), actor.ID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list visits", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromVisitViews(views))
}
