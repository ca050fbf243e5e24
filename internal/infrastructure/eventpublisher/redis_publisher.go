package eventpublisher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/iho/fxledger/internal/domain"
)

// RedisPublisher publishes events on a Redis Pub/Sub channel. Each event goes
// to "<channel>" and to "<channel>.<event_type>".
type RedisPublisher struct {
	client  redis.UniversalClient
	channel string
}

// NewRedisPublisher creates a new RedisPublisher.
func NewRedisPublisher(client redis.UniversalClient, channel string) *RedisPublisher {
	return &RedisPublisher{client: client, channel: channel}
}

// Publish sends the event as JSON.
func (p *RedisPublisher) Publish(ctx context.Context, event *domain.OutboxEvent) error {
	data, err := json.Marshal(NewMessage(event))
	if err != nil {
		return fmt.Errorf("encode event %s: %w", event.ID, err)
	}

	pipe := p.client.Pipeline()
	pipe.Publish(ctx, p.channel, data)
	pipe.Publish(ctx, p.channel+"."+event.EventType, data)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("publish event %s: %w", event.ID, err)
	}

	return nil
}
