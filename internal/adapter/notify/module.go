package notify

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/polkiloo/mailmart/internal/config"
)

// Module exposes the notifier chosen by configuration to the fx graph.
var Module = fx.Provide(newNotifier)

type notifierParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

// newNotifier prefers redis, then the webhook, then plain logging.
func newNotifier(p notifierParams) (Notifier, error) {
	switch {
	case p.Config.RedisAddr != "":
		client := redis.NewClient(&redis.Options{
			Addr:     p.Config.RedisAddr,
			Password: p.Config.RedisPassword,
		})
		p.Lifecycle.Append(fx.Hook{
			OnStop: func(context.Context) error { return client.Close() },
		})
		p.Logger.Info("notifications via redis", slog.String("channel", p.Config.RedisChannel))
		return NewRedisNotifier(client, p.Config.RedisChannel), nil
	case p.Config.NotifyWebhookURL != "":
		n, err := NewWebhookNotifier(p.Config.NotifyWebhookURL, p.Logger)
		if err != nil {
			return nil, err
		}
		p.Logger.Info("notifications via webhook")
		return n, nil
	default:
		p.Logger.Warn("no notification channel configured, events are only logged")
		return NewLogNotifier(p.Logger), nil
	}
}
