package notify

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/polkiloo/mailmart/internal/domain/model"
)

// Publisher is the subset of the redis client used for pub/sub delivery.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisNotifier publishes events on a redis channel the front end subscribes to.
type RedisNotifier struct {
	publisher Publisher
	channel   string
}

// NewRedisNotifier constructs RedisNotifier.
func NewRedisNotifier(publisher Publisher, channel string) *RedisNotifier {
	return &RedisNotifier{publisher: publisher, channel: channel}
}

// Notify publishes the JSON encoded event.
func (n *RedisNotifier) Notify(ctx context.Context, event model.Event) error {
	body, err := encode(event)
	if err != nil {
		return err
	}
	if err := n.publisher.Publish(ctx, n.channel, body).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", event.Kind, err)
	}
	return nil
}
