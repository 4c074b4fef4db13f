package usecase

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/mailmart/internal/domain/errors"
	"github.com/polkiloo/mailmart/internal/domain/model"
	"github.com/polkiloo/mailmart/internal/domain/repository"
)

// WithdrawalUseCase validates and records cash-out requests.
type WithdrawalUseCase struct {
	withdrawals repository.WithdrawalRepository
	rates       model.Rates
}

// NewWithdrawalUseCase constructs WithdrawalUseCase.
func NewWithdrawalUseCase(withdrawals repository.WithdrawalRepository, rates model.Rates) *WithdrawalUseCase {
	return &WithdrawalUseCase{withdrawals: withdrawals, rates: rates}
}

// Request debits amount and records a pending request. The minimum is checked
// before the balance so an undersized request, zero and negative amounts
// included, fails with ErrBelowMinimum for everyone.
func (u *WithdrawalUseCase) Request(ctx context.Context, accountID int64, destination string, amount decimal.Decimal) (*model.WithdrawalRequest, error) {
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return nil, domainErrors.ErrInvalidPayload
	}
	if amount.LessThan(u.rates.MinWithdrawal) || !amount.IsPositive() {
		return nil, domainErrors.ErrBelowMinimum
	}
	if !model.FitsScale(amount) {
		return nil, domainErrors.ErrInvalidAmount
	}
	return u.withdrawals.Create(ctx, accountID, destination, amount)
}

// Requests lists requests of one account, or of every account when accountID is nil.
func (u *WithdrawalUseCase) Requests(ctx context.Context, accountID *int64) ([]model.WithdrawalRequest, error) {
	return u.withdrawals.List(ctx, accountID)
}
