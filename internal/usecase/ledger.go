package usecase

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/mailmart/internal/domain/errors"
	"github.com/polkiloo/mailmart/internal/domain/model"
	"github.com/polkiloo/mailmart/internal/domain/repository"
)

// LedgerUseCase owns accounts, balances and the transaction log.
type LedgerUseCase struct {
	accounts repository.AccountRepository
	ledger   repository.LedgerRepository
	rates    model.Rates
}

// NewLedgerUseCase constructs LedgerUseCase.
func NewLedgerUseCase(accounts repository.AccountRepository, ledger repository.LedgerRepository, rates model.Rates) *LedgerUseCase {
	return &LedgerUseCase{accounts: accounts, ledger: ledger, rates: rates}
}

// CreateAccount opens an account. A valid referrer is credited the referral
// bonus in the same unit of work.
func (u *LedgerUseCase) CreateAccount(ctx context.Context, account model.NewAccount) (*model.Account, error) {
	if account.ID <= 0 {
		return nil, domainErrors.ErrInvalidAccountID
	}
	if account.ReferrerID != nil && *account.ReferrerID == account.ID {
		return nil, domainErrors.ErrSelfReferral
	}
	if account.ReferrerID != nil && *account.ReferrerID <= 0 {
		return nil, domainErrors.ErrInvalidReferrer
	}
	account.Name = strings.TrimSpace(account.Name)
	return u.accounts.Create(ctx, account, u.rates.ReferralBonus())
}

// Account returns stored account data.
func (u *LedgerUseCase) Account(ctx context.Context, id int64) (*model.Account, error) {
	return u.accounts.GetByID(ctx, id)
}

// Exists reports whether the account has been opened.
func (u *LedgerUseCase) Exists(ctx context.Context, id int64) (bool, error) {
	return u.accounts.Exists(ctx, id)
}

// Balance returns the current balance, zero for unknown accounts.
func (u *LedgerUseCase) Balance(ctx context.Context, id int64) (decimal.Decimal, error) {
	return u.accounts.Balance(ctx, id)
}

// Apply mutates the balance and appends one transaction. Amounts with more
// than model.MoneyScale decimal places are rejected.
func (u *LedgerUseCase) Apply(ctx context.Context, id int64, amount decimal.Decimal, kind model.TransactionKind, description string) (*model.Transaction, error) {
	if !kind.Valid() || amount.IsNegative() || !model.FitsScale(amount) {
		return nil, domainErrors.ErrInvalidAmount
	}
	return u.ledger.Apply(ctx, id, amount, kind, description)
}

// Transactions lists the account's ledger in insertion order.
func (u *LedgerUseCase) Transactions(ctx context.Context, id int64) ([]model.Transaction, error) {
	return u.ledger.ListByAccount(ctx, id)
}
