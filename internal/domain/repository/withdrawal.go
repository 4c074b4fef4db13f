package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/mailmart/internal/domain/model"
)

// WithdrawalRepository records payout requests.
type WithdrawalRepository interface {
	// Create debits amount and records the request in one transaction.
	Create(ctx context.Context, accountID int64, destination string, amount decimal.Decimal) (*model.WithdrawalRequest, error)
	// List returns requests of a single account, or all requests when accountID is nil.
	List(ctx context.Context, accountID *int64) ([]model.WithdrawalRequest, error)
}
