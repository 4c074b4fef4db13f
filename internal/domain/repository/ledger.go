package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/mailmart/internal/domain/model"
)

// LedgerRepository manages balance mutations and the transaction log.
type LedgerRepository interface {
	Apply(ctx context.Context, accountID int64, amount decimal.Decimal, kind model.TransactionKind, description string) (*model.Transaction, error)
	ListByAccount(ctx context.Context, accountID int64) ([]model.Transaction, error)
	// ReferredCredits sums credit entries of every account referred by referrerID.
	ReferredCredits(ctx context.Context, referrerID int64) (decimal.Decimal, error)
}
