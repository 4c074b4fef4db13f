package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalanceResponse is the balance screen of an account.
type BalanceResponse struct {
	Balance          decimal.Decimal `json:"balance"`
	Pending          decimal.Decimal `json:"pending"`
	Display          int64           `json:"display"`
	ReferralCount    int             `json:"referral_count"`
	ReferralEarnings decimal.Decimal `json:"referral_earnings"`
	MinWithdrawal    decimal.Decimal `json:"min_withdrawal"`
}

// TransactionResponse describes a ledger entry.
type TransactionResponse struct {
	ID          int64           `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Kind        string          `json:"kind"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}
