package auth

import "time"

// Strategy issues and verifies account tokens handed to the chat front end.
type Strategy interface {
	IssueToken(accountID int64) (string, error)
	ParseToken(token string) (int64, error)
	Name() string
}

// Options tunes token issuance. A non-positive TTL falls back to 24h.
type Options struct {
	TTL time.Duration
}
