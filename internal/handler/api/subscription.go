package api

import (
	"net/http"

	resdto "table-concierge/internal/handler/dto/response"
	"table-concierge/internal/handler/httperr"
	"table-concierge/internal/handler/middleware"
	"table-concierge/internal/usecase/access"

	"github.com/gin-gonic/gin"
)

type SubscriptionHandler struct {
	gate access.Gate
}

func NewSubscriptionHandler(gate access.Gate) *SubscriptionHandler {
	return &SubscriptionHandler{gate: gate}
}

// @Summary Current subscription
// @Description Tier, status, feature decisions and limits of the authenticated subscriber
// @Tags subscription
// @Security BearerAuth
// @Produce json
// @Success 200 {object} resdto.SubscriptionResponse
// @Failure 401 {object} httperr.Response
// @Router /api/me/subscription [get]
func (h *SubscriptionHandler) GetMine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthenticated, "User not authenticated", nil)
		return
	}

	sub := h.gate.Subscription(c.Request.Context(), userID)
	c.JSON(http.StatusOK, resdto.FromSubscription(sub))
}
