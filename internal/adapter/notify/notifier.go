package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/polkiloo/mailmart/internal/domain/model"
)

// AdminRecipient addresses an event to the configured admin.
const AdminRecipient int64 = 0

// Notifier delivers events to the chat front end.
type Notifier interface {
	Notify(ctx context.Context, event model.Event) error
}

// NewEvent stamps an event with a sortable unique id the front end can use
// to drop duplicates.
func NewEvent(kind model.EventKind, recipientID, accountID int64, data map[string]string) model.Event {
	now := time.Now().UTC()
	return model.Event{
		ID:          ulid.Make().String(),
		Kind:        kind,
		RecipientID: recipientID,
		AccountID:   accountID,
		Data:        data,
		OccurredAt:  now,
	}
}

// message is the wire form shared by the webhook and redis notifiers.
type message struct {
	ID          string            `json:"id"`
	Kind        string            `json:"kind"`
	RecipientID int64             `json:"recipient_id"`
	Admin       bool              `json:"admin"`
	AccountID   int64             `json:"account_id"`
	Data        map[string]string `json:"data,omitempty"`
	OccurredAt  time.Time         `json:"occurred_at"`
}

func encode(event model.Event) ([]byte, error) {
	return json.Marshal(message{
		ID:          event.ID,
		Kind:        string(event.Kind),
		RecipientID: event.RecipientID,
		Admin:       event.RecipientID == AdminRecipient,
		AccountID:   event.AccountID,
		Data:        event.Data,
		OccurredAt:  event.OccurredAt,
	})
}
