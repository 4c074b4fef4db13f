package dto

import "time"

// SubmissionRequest carries either the structured payload fields or the raw
// chat text. Text wins when present.
type SubmissionRequest struct {
	Identifier string `json:"identifier"`
	Secret     string `json:"secret"`
	Recovery   string `json:"recovery"`
	Text       string `json:"text"`
}

// PendingResponse describes a submission awaiting review.
type PendingResponse struct {
	ID          int64     `json:"id"`
	AccountID   int64     `json:"account_id"`
	AccountName string    `json:"account_name,omitempty"`
	Identifier  string    `json:"identifier"`
	Secret      string    `json:"secret,omitempty"`
	Recovery    string    `json:"recovery"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// ItemResponse describes an approved item.
type ItemResponse struct {
	ID         int64     `json:"id"`
	Identifier string    `json:"identifier"`
	Recovery   string    `json:"recovery"`
	ApprovedAt time.Time `json:"approved_at"`
}

// RejectRequest optionally carries the reason relayed to the owner.
type RejectRequest struct {
	Reason string `json:"reason"`
}

// RejectResponse describes a rejected submission.
type RejectResponse struct {
	ID        int64  `json:"id"`
	AccountID int64  `json:"account_id"`
	Reason    string `json:"reason"`
}
