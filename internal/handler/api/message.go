package api

import (
	"net/http"

	reqdto "table-concierge/internal/handler/dto/request"
	resdto "table-concierge/internal/handler/dto/response"
	"table-concierge/internal/handler/middleware"
	"table-concierge/internal/pkg/phone"
	"table-concierge/internal/usecase/conversation"

	"github.com/gin-gonic/gin"
)

const msgSlowDown = "You're sending messages a little too fast. Please wait a moment and try again."

type MessageHandler struct {
	dispatcher conversation.Dispatcher
	limiter    *middleware.GuestRateLimiter
}

func NewMessageHandler(dispatcher conversation.Dispatcher, limiter *middleware.GuestRateLimiter) *MessageHandler {
	return &MessageHandler{
		dispatcher: dispatcher,
		limiter:    limiter,
	}
}

// @Summary Handle an inbound guest message
// @Description Routes a chat message to the active flow or the command table
// @Tags messages
// @Accept json
// @Produce json
// @Param request body reqdto.InboundMessageRequest true "Inbound message"
// @Success 200 {object} resdto.MessageResponse
// @Failure 400 {object} httperr.Response
// @Failure 429 {object} resdto.MessageResponse
// @Router /api/messages [post]
func (h *MessageHandler) HandleMessage(c *gin.Context) {
	reply, ok := h.dispatch(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, resdto.FromReply(reply))
}

// @Summary Handle an inbound guest message (conversational shape)
// @Description Same routing as /api/messages, reporting whether the flow awaits more input
// @Tags messages
// @Accept json
// @Produce json
// @Param request body reqdto.InboundMessageRequest true "Inbound message"
// @Success 200 {object} resdto.ConversationResponse
// @Failure 400 {object} httperr.Response
// @Failure 429 {object} resdto.MessageResponse
// @Router /api/conversation [post]
func (h *MessageHandler) HandleConversation(c *gin.Context) {
	reply, ok := h.dispatch(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, resdto.ConversationFromReply(reply))
}

func (h *MessageHandler) dispatch(c *gin.Context) (conversation.Reply, bool) {
	var req reqdto.InboundMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": gin.H{"message": "Invalid request format"},
		})
		return conversation.Reply{}, false
	}

	if guest := phone.Normalize(req.GuestIdentity); guest != "" {
		middleware.SetGuestIdentity(c, guest)
		if !h.limiter.Allow(guest) {
			c.JSON(http.StatusTooManyRequests, resdto.MessageResponse{Success: false, Message: msgSlowDown})
			return conversation.Reply{}, false
		}
	}

	return h.dispatcher.Handle(c.Request.Context(), req.ToInbound()), true
}
