package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind tells whether a ledger entry adds to or takes from the balance.
type TransactionKind string

const (
	TransactionKindCredit TransactionKind = "credit"
	TransactionKindDebit  TransactionKind = "debit"
)

// Valid reports whether kind is one of the known ledger kinds.
func (k TransactionKind) Valid() bool {
	return k == TransactionKindCredit || k == TransactionKindDebit
}

// Standard ledger descriptions.
const (
	DescriptionItemSale      = "item sale"
	DescriptionWithdrawal    = "withdrawal"
	DescriptionReferralBonus = "referral bonus"
)

// Transaction is an append-only ledger entry. Amount is always non-negative,
// the direction is carried by Kind.
type Transaction struct {
	ID          int64
	AccountID   int64
	Amount      decimal.Decimal
	Kind        TransactionKind
	Description string
	CreatedAt   time.Time
}

// Signed returns the amount with the sign implied by the kind.
func (t Transaction) Signed() decimal.Decimal {
	if t.Kind == TransactionKindDebit {
		return t.Amount.Neg()
	}
	return t.Amount
}
