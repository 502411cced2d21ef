package api

import (
	"errors"
	"net/http"
	"strconv"

	reqdto "coworking-backend/internal/handler/dto/request"
	resdto "coworking-backend/internal/handler/dto/response"
	"coworking-backend/internal/handler/httperr"
	"coworking-backend/internal/handler/middleware"
	"coworking-backend/internal/usecase/commands"
	"coworking-backend/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type DonationHandler struct {
	cmds commands.DonationCommands
	q    queries.UserQueries
}

func NewDonationHandler(cmds commands.DonationCommands, q queries.UserQueries) *DonationHandler {
	return &DonationHandler{cmds: cmds, q: q}
}

func (h *DonationHandler) Create(c *gin.Context) {
	actor, ok := middleware.GetUserContext(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "Unauthorized", nil)
		return
	}

	var req reqdto.CreateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	id, err := h.cmds.Create(c.Request.Context(), commands.CreateDonationRequest{
		Amount:      req.Amount,
		Message:     req.Message,
		IsAnonymous: req.IsAnonymous,
	}, actor)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrForbidden):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Not enough permissions", nil)
		case errors.Is(err, commands.ErrDonationTooSmall):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Donation amount is below the minimum", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{"donation_id": id})
}

func (h *DonationHandler) ListMine(c *gin.Context) {
	actor, ok := middleware.GetUserContext(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errors.New("missing user context"), "Unauthorized", nil)
		return
	}

	views, err := h.q.ListDonations(c.Request.Context(), actor.ID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list donations", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromDonationViews(views))
}

// ListRecent is public: anonymous donors are masked by the read store.
func (h *DonationHandler) ListRecent(c *gin.Context) {
	limit := int64(0)
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || parsed < 0 {
			httperr.AbortWithError(c, http.StatusBadRequest, errors.New("invalid limit"), "Invalid limit parameter", nil)
			return
		}
		limit = parsed
	}

	views, err := h.q.ListRecentDonations(c.Request.Context(), int32(limit))
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list donations", nil)
		return
	}
	c.JSON(http.StatusOK, resdto.FromDonationViews(views))
}
