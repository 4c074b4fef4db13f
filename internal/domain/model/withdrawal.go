package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// WithdrawalStatus describes payout request lifecycle.
type WithdrawalStatus string

const WithdrawalStatusPending WithdrawalStatus = "pending"

// WithdrawalRequest represents a recorded cash-out request.
type WithdrawalRequest struct {
	ID          int64
	AccountID   int64
	Destination string
	Amount      decimal.Decimal
	Status      WithdrawalStatus
	RequestedAt time.Time
}

// WithdrawalForm is a parsed cash-out request before it reaches the ledger.
type WithdrawalForm struct {
	Destination string
	Amount      decimal.Decimal
}
