package model

import "time"

// EventKind identifies a notification delivered to the chat front end.
type EventKind string

const (
	EventSubmissionReceived  EventKind = "submission.received"
	EventSubmissionApproved  EventKind = "submission.approved"
	EventSubmissionRejected  EventKind = "submission.rejected"
	EventWithdrawalRequested EventKind = "withdrawal.requested"
	EventReferralJoined      EventKind = "referral.joined"
)

// Event is a best-effort notification emitted after a committed change.
// RecipientID is zero when the event is addressed to the admin.
type Event struct {
	ID          string
	Kind        EventKind
	RecipientID int64
	AccountID   int64
	Data        map[string]string
	OccurredAt  time.Time
}
