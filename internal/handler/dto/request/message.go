package request

import (
	"strings"

	"table-concierge/internal/usecase/conversation"
)

// InboundMessageRequest is posted by the chat transport for every guest
// message. Field validation happens in the dispatcher so that a bad message
// still gets the fixed invalid-input reply instead of a 400.
type InboundMessageRequest struct {
	Message         string                  `json:"message"`
	GuestIdentity   string                  `json:"guestIdentity"`
	LocationContext *LocationContextRequest `json:"locationContext,omitempty"`
}

type LocationContextRequest struct {
	LocationID   string `json:"locationId"`
	LocationName string `json:"locationName"`
}

func (r InboundMessageRequest) ToInbound() conversation.Inbound {
	in := conversation.Inbound{
		Message:       r.Message,
		GuestIdentity: r.GuestIdentity,
	}
	if r.LocationContext != nil && strings.TrimSpace(r.LocationContext.LocationID) != "" {
		in.LocationContext = &conversation.LocationContext{
			LocationID:   strings.TrimSpace(r.LocationContext.LocationID),
			LocationName: strings.TrimSpace(r.LocationContext.LocationName),
		}
	}
	return in
}
