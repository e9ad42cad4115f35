package conversation

import (
	"time"

	"table-concierge/internal/domain/tier"
	"table-concierge/internal/usecase/access"
)

// LocationContext pre-selects a location, e.g. when the guest scanned a
// table-side QR code for one restaurant.
type LocationContext struct {
	LocationID   string
	LocationName string
}

type Inbound struct {
	Message         string
	GuestIdentity   string
	LocationContext *LocationContext
}

// Reply is what the transport sends back. RequiresInput and CurrentStep are
// set while a flow is waiting for the guest's next answer.
type Reply struct {
	Success         bool
	Message         string
	RequiresInput   bool
	CurrentStep     string
	RequiresUpgrade bool
	RequiredFeature tier.Feature
	Usage           *access.UsageInfo
}

type request struct {
	guest    string
	text     string
	command  string
	location *LocationContext
	now      time.Time
}

func ok(msg string) Reply {
	return Reply{Success: true, Message: msg}
}

func fail(msg string) Reply {
	return Reply{Success: false, Message: msg}
}

func prompt(step, msg string) Reply {
	return Reply{Success: true, Message: msg, RequiresInput: true, CurrentStep: step}
}

// reprompt keeps the guest on the same step after a rejected answer.
func reprompt(step, msg string) Reply {
	return Reply{Success: false, Message: msg, RequiresInput: true, CurrentStep: step}
}
