package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// WithdrawRequest carries either destination and amount or the raw chat text.
type WithdrawRequest struct {
	Destination string           `json:"destination"`
	Amount      *decimal.Decimal `json:"amount,omitempty"`
	Text        string           `json:"text"`
}

// WithdrawalResponse describes a withdrawal request.
type WithdrawalResponse struct {
	ID          int64           `json:"id"`
	AccountID   int64           `json:"account_id"`
	Destination string          `json:"destination"`
	Amount      decimal.Decimal `json:"amount"`
	Status      string          `json:"status"`
	RequestedAt time.Time       `json:"requested_at"`
}
