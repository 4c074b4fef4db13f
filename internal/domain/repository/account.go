package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/mailmart/internal/domain/model"
)

// AccountRepository describes persistence operations for accounts.
type AccountRepository interface {
	// Create opens the account and, when a referrer is set, credits the
	// referrer with bonus in the same transaction.
	Create(ctx context.Context, account model.NewAccount, bonus decimal.Decimal) (*model.Account, error)
	GetByID(ctx context.Context, id int64) (*model.Account, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Balance(ctx context.Context, id int64) (decimal.Decimal, error)
	CountReferrals(ctx context.Context, referrerID int64) (int, error)
	ListReferrals(ctx context.Context, referrerID int64) ([]model.Referral, error)
}
