//go:build unit || integration

package testutil

import (
	"context"
	"sync"

	"table-concierge/internal/usecase/shared"
)

// RecordingSender captures outbound messages; set Err to simulate delivery failure.
type RecordingSender struct {
	mu   sync.Mutex
	sent []shared.OutboundMessage
	Err  error
}

func (s *RecordingSender) Send(_ context.Context, msg shared.OutboundMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.sent = append(s.sent, msg)
	return nil
}

func (s *RecordingSender) Sent() []shared.OutboundMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]shared.OutboundMessage, len(s.sent))
	copy(out, s.sent)
	return out
}
