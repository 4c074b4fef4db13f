package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/mailmart/internal/domain/model"
	"github.com/polkiloo/mailmart/internal/domain/repository"
)

// ReferralUseCase computes referral attribution and projected earnings.
type ReferralUseCase struct {
	accounts    repository.AccountRepository
	ledger      repository.LedgerRepository
	submissions repository.SubmissionRepository
	rates       model.Rates
}

// NewReferralUseCase constructs ReferralUseCase.
func NewReferralUseCase(accounts repository.AccountRepository, ledger repository.LedgerRepository, submissions repository.SubmissionRepository, rates model.Rates) *ReferralUseCase {
	return &ReferralUseCase{accounts: accounts, ledger: ledger, submissions: submissions, rates: rates}
}

// Count returns how many accounts name id as their referrer.
func (u *ReferralUseCase) Count(ctx context.Context, id int64) (int, error) {
	return u.accounts.CountReferrals(ctx, id)
}

// Earnings is the referral rate applied to everything credited to referred accounts.
func (u *ReferralUseCase) Earnings(ctx context.Context, id int64) (decimal.Decimal, error) {
	credited, err := u.ledger.ReferredCredits(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}
	return u.rates.ReferralRate.Mul(credited), nil
}

// PendingBalance projects what the account would earn if every pending
// submission were approved.
func (u *ReferralUseCase) PendingBalance(ctx context.Context, id int64) (decimal.Decimal, error) {
	count, err := u.submissions.CountPending(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}
	return u.rates.UnitPayout.Mul(decimal.NewFromInt(int64(count))), nil
}

// Referrals lists referred accounts with the commission each produced.
func (u *ReferralUseCase) Referrals(ctx context.Context, id int64) ([]model.Referral, error) {
	refs, err := u.accounts.ListReferrals(ctx, id)
	if err != nil {
		return nil, err
	}
	for i := range refs {
		refs[i].Earnings = u.rates.ReferralRate.Mul(refs[i].Credited)
	}
	return refs, nil
}
