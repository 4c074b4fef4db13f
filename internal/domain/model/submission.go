package model

import "time"

// Payload holds the three free-text fields of a submitted item.
type Payload struct {
	Identifier string
	Secret     string
	Recovery   string
}

// PendingSubmission is an item awaiting admin review.
type PendingSubmission struct {
	ID          int64
	AccountID   int64
	AccountName string
	Payload     Payload
	SubmittedAt time.Time
}

// ApprovedItem is an item that passed review. It is never mutated.
type ApprovedItem struct {
	ID         int64
	AccountID  int64
	Payload    Payload
	ApprovedAt time.Time
}

// Complete reports whether every payload field is filled in.
func (p Payload) Complete() bool {
	return p.Identifier != "" && p.Secret != "" && p.Recovery != ""
}

// DefaultRejectReason is sent to the owner when the admin gives no reason.
const DefaultRejectReason = "Invalid or duplicate account"

// Rejection describes a removed submission and the reason relayed to its owner.
type Rejection struct {
	Submission PendingSubmission
	Reason     string
}
