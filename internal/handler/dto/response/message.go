package response

import "table-concierge/internal/usecase/conversation"

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ConversationResponse is the richer shape for integrations that render the
// pending step, e.g. quick-reply buttons.
type ConversationResponse struct {
	Reply         string `json:"reply"`
	RequiresInput bool   `json:"requiresInput"`
	CurrentStep   string `json:"currentStep,omitempty"`
}

func FromReply(r conversation.Reply) MessageResponse {
	return MessageResponse{Success: r.Success, Message: r.Message}
}

func ConversationFromReply(r conversation.Reply) ConversationResponse {
	return ConversationResponse{
		Reply:         r.Message,
		RequiresInput: r.RequiresInput,
		CurrentStep:   r.CurrentStep,
	}
}
