package notify

import (
	"context"
	"log/slog"

	"table-concierge/internal/pkg/phone"
	"table-concierge/internal/usecase/shared"
)

// LogSender records outbound messages without delivering them. Used when no
// transport is configured.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(_ context.Context, msg shared.OutboundMessage) error {
	s.logger.Info("outbound message (not delivered)",
		"to", phone.Mask(msg.To),
		"kind", msg.Kind,
		"length", len(msg.Body))
	return nil
}
