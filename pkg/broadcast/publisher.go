// Package broadcast fans human-readable activity messages out to live
// websocket clients. Any API instance publishes to a Redis channel; every
// instance's Hub relays the channel to its own connected clients.
package broadcast

import (
	"context"

	"github.com/redis/go-redis/v9"

	"github.com/ghuser/storecatalog/pkg/logger"
)

// DefaultChannel is the Redis pub/sub channel carrying activity messages.
const DefaultChannel = "catalog:logs"

// Publisher sends messages to the Redis channel. Delivery is best effort:
// failures are logged and never returned to the caller.
type Publisher struct {
	client  redis.UniversalClient
	channel string
	log     logger.Logger
}

// NewPublisher returns a Publisher for channel (DefaultChannel when empty).
func NewPublisher(client redis.UniversalClient, channel string, log logger.Logger) *Publisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &Publisher{client: client, channel: channel, log: log}
}

// Broadcast publishes message to every subscribed hub.
func (p *Publisher) Broadcast(ctx context.Context, message string) {
	p.log.InfoContext(ctx, "broadcasting log message", "message", message)
	if err := p.client.Publish(ctx, p.channel, message).Err(); err != nil {
		p.log.WarnContext(ctx, "broadcast publish failed", "channel", p.channel, "error", err)
	}
}
