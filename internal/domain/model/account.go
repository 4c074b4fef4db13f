package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account represents a registered marketplace participant.
type Account struct {
	ID         int64
	Name       string
	Balance    decimal.Decimal
	ReferrerID *int64
	CreatedAt  time.Time
}

// NewAccount carries the data required to open an account.
type NewAccount struct {
	ID         int64
	Name       string
	ReferrerID *int64
}

// Referral describes an account attributed to a referrer. Credited is the
// total credited to the referred account, Earnings the commission it produced
// for the referrer.
type Referral struct {
	AccountID int64
	Name      string
	JoinedAt  time.Time
	Credited  decimal.Decimal
	Earnings  decimal.Decimal
}
