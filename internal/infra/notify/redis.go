package notify

import (
	"context"
	"encoding/json"
	"log/slog"

	"table-concierge/internal/infra"
	"table-concierge/internal/pkg/phone"
	"table-concierge/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
)

// RedisPublisher hands outbound messages to the chat transport through a
// pub/sub channel. Publishing succeeds even when nobody is subscribed.
type RedisPublisher struct {
	client  *redis.Client
	channel string
	logger  *slog.Logger
}

func NewRedisPublisher(client *redis.Client, channel string, logger *slog.Logger) *RedisPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisPublisher{client: client, channel: channel, logger: logger}
}

func (p *RedisPublisher) Send(ctx context.Context, msg shared.OutboundMessage) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return infra.WrapRepoErr(p.logger, infra.KindCodec, "failed to encode outbound message", err)
	}
	receivers, err := p.client.Publish(ctx, p.channel, payload).Result()
	if err != nil {
		return infra.WrapRepoErr(p.logger, infra.KindDBFailure, "failed to publish outbound message", err)
	}
	p.logger.Debug("outbound message published",
		"channel", p.channel,
		"to", phone.Mask(msg.To),
		"kind", msg.Kind,
		"receivers", receivers)
	return nil
}
