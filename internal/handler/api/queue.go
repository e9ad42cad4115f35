package api

import (
	"net/http"

	domqueue "table-concierge/internal/domain/queue"
	reqdto "table-concierge/internal/handler/dto/request"
	resdto "table-concierge/internal/handler/dto/response"
	"table-concierge/internal/handler/httperr"
	"table-concierge/internal/handler/middleware"
	"table-concierge/internal/pkg/errs"
	"table-concierge/internal/usecase/access"
	"table-concierge/internal/usecase/queue"

	"github.com/gin-gonic/gin"
)

var errUnauthenticated = errs.New("unauthenticated request")

type QueueHandler struct {
	engine queue.Engine
	gate   access.Gate
}

func NewQueueHandler(engine queue.Engine, gate access.Gate) *QueueHandler {
	return &QueueHandler{
		engine: engine,
		gate:   gate,
	}
}

func (h *QueueHandler) caller(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "User not authenticated", nil)
		return "", false
	}
	return userID, true
}

// authorize answers 403 with the upgrade details when the caller may not
// manage this location.
func (h *QueueHandler) authorize(c *gin.Context, userID, locationID string) bool {
	denial, err := h.gate.AuthorizeQueueRead(c.Request.Context(), userID, locationID)
	if err != nil {
		httperr.Abort(c, err)
		return false
	}
	if denial != nil {
		c.AbortWithStatusJSON(http.StatusForbidden, resdto.UpgradeRequired(denial))
		return false
	}
	return true
}

// @Summary Queue status
// @Description Metadata, entries and counts of one location's queue for a day (today by default)
// @Tags queue
// @Security BearerAuth
// @Produce json
// @Param locationId path string true "Location ID"
// @Param date query string false "Date (YYYY-MM-DD)"
// @Success 200 {object} resdto.QueueStatusResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} resdto.UpgradeRequiredResponse
// @Router /api/locations/{locationId}/queue [get]
func (h *QueueHandler) GetQueue(c *gin.Context) {
	userID, ok := h.caller(c)
	if !ok {
		return
	}

	result, err := h.engine.Status(c.Request.Context(), queue.StatusQuery{
		LocationID: c.Param("locationId"),
		Date:       c.Query("date"),
		CallerID:   userID,
	})
	if err != nil {
		httperr.Abort(c, err)
		return
	}
	if result.Denial != nil {
		c.JSON(http.StatusForbidden, resdto.UpgradeRequired(result.Denial))
		return
	}

	c.JSON(http.StatusOK, resdto.FromStatusResult(result))
}

// @Summary Add a guest to the queue
// @Description Staff-originated join; subject to plan, location and daily quota checks
// @Tags queue
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param locationId path string true "Location ID"
// @Param request body reqdto.AdminJoinRequest true "Guest details"
// @Success 201 {object} resdto.JoinResponse
// @Failure 400 {object} resdto.JoinResponse
// @Failure 403 {object} resdto.JoinResponse
// @Failure 409 {object} resdto.JoinResponse
// @Router /api/locations/{locationId}/queue [post]
func (h *QueueHandler) JoinQueue(c *gin.Context) {
	userID, ok := h.caller(c)
	if !ok {
		return
	}

	var req reqdto.AdminJoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	result, err := h.engine.Join(c.Request.Context(), req.ToJoin(c.Param("locationId"), userID))
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	c.JSON(joinStatus(result), resdto.FromJoinResult(result))
}

func joinStatus(r *queue.JoinResult) int {
	if r.Success {
		return http.StatusCreated
	}
	switch r.Reason {
	case queue.RejectValidation:
		return http.StatusBadRequest
	case queue.RejectAccessDenied:
		return http.StatusForbidden
	default:
		return http.StatusConflict
	}
}

// @Summary Change a queue entry's status
// @Description Moves an entry to called, seated or removed and repairs positions
// @Tags queue
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param locationId path string true "Location ID"
// @Param entryId path string true "Entry ID"
// @Param request body reqdto.UpdateEntryStatusRequest true "New status"
// @Success 200 {object} resdto.StatusChangeResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} resdto.UpgradeRequiredResponse
// @Failure 404 {object} httperr.Response
// @Router /api/locations/{locationId}/queue/{entryId} [patch]
func (h *QueueHandler) UpdateEntryStatus(c *gin.Context) {
	userID, ok := h.caller(c)
	if !ok {
		return
	}

	var req reqdto.UpdateEntryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request format", nil)
		return
	}

	locationID := c.Param("locationId")
	if !h.authorize(c, userID, locationID) {
		return
	}

	result, err := h.engine.ChangeStatus(c.Request.Context(), req.ToStatusChange(locationID, c.Param("entryId"), userID))
	if err != nil {
		httperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.FromStatusChange(result))
}

// @Summary Recalculate queue positions
// @Description Reassigns dense positions and wait estimates to waiting entries
// @Tags queue
// @Security BearerAuth
// @Produce json
// @Param locationId path string true "Location ID"
// @Param date query string false "Date (YYYY-MM-DD)"
// @Success 200 {object} resdto.RecalculateResponse
// @Failure 403 {object} resdto.UpgradeRequiredResponse
// @Router /api/locations/{locationId}/queue/recalculate [post]
func (h *QueueHandler) Recalculate(c *gin.Context) {
	userID, ok := h.caller(c)
	if !ok {
		return
	}

	locationID := c.Param("locationId")
	if !h.authorize(c, userID, locationID) {
		return
	}

	date := c.Query("date")
	if date == "" {
		date = h.engine.Today()
	} else if _, err := domqueue.ParseDate(date); err != nil {
		httperr.Abort(c, errs.Mark(err, errs.ErrValidation))
		return
	}
	if err := h.engine.Recalculate(c.Request.Context(), locationID, date); err != nil {
		httperr.Abort(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.RecalculateResponse{LocationID: locationID, Date: date})
}
