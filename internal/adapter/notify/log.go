package notify

import (
	"context"
	"log/slog"

	"github.com/polkiloo/mailmart/internal/domain/model"
)

// LogNotifier only records events. Used when no delivery channel is configured.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier constructs LogNotifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Notify(ctx context.Context, event model.Event) error {
	n.logger.InfoContext(ctx, "notification",
		slog.String("event_id", event.ID),
		slog.String("kind", string(event.Kind)),
		slog.Int64("recipient_id", event.RecipientID),
		slog.Int64("account_id", event.AccountID),
	)
	return nil
}
