package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateAccountRequest opens an account for a chat user.
type CreateAccountRequest struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	ReferrerID *int64 `json:"referrer_id,omitempty"`
}

// SessionRequest asks for a fresh token of an existing account.
type SessionRequest struct {
	ID int64 `json:"id"`
}

// AccountResponse describes an account.
type AccountResponse struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	Balance    decimal.Decimal `json:"balance"`
	ReferrerID *int64          `json:"referrer_id,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// TokenResponse carries an account token, and the account when it was just created.
type TokenResponse struct {
	Token   string           `json:"token"`
	Account *AccountResponse `json:"account,omitempty"`
}

// ReferralResponse describes an account brought in by the caller.
type ReferralResponse struct {
	AccountID int64           `json:"account_id"`
	Name      string          `json:"name"`
	JoinedAt  time.Time       `json:"joined_at"`
	Credited  decimal.Decimal `json:"credited"`
	Earnings  decimal.Decimal `json:"earnings"`
}

// ErrorResponse is returned with every non-2xx status.
type ErrorResponse struct {
	Error string `json:"error"`
}
