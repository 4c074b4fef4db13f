package handlers

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/mailmart/internal/domain/model"
)

// AccountFacade covers account opening, tokens and the read side of an account.
type AccountFacade interface {
	Register(ctx context.Context, account model.NewAccount) (*model.Account, string, error)
	Session(ctx context.Context, accountID int64) (string, error)
	ParseToken(token string) (int64, error)
	Account(ctx context.Context, accountID int64) (*model.Account, error)
	Balance(ctx context.Context, accountID int64) (*model.BalanceSummary, error)
	Transactions(ctx context.Context, accountID int64) ([]model.Transaction, error)
	Referrals(ctx context.Context, accountID int64) ([]model.Referral, error)
}

// SubmissionFacade covers item intake and admin review. Admin operations
// take the caller id and fail with ErrForbidden for anyone but the admin.
type SubmissionFacade interface {
	Submit(ctx context.Context, accountID int64, payload model.Payload) (*model.PendingSubmission, error)
	SubmitText(ctx context.Context, accountID int64, text string) (*model.PendingSubmission, error)
	ApprovedItems(ctx context.Context, accountID int64) ([]model.ApprovedItem, error)
	PendingSubmissions(ctx context.Context, callerID int64) ([]model.PendingSubmission, error)
	Approve(ctx context.Context, callerID, pendingID int64) (*model.ApprovedItem, error)
	Reject(ctx context.Context, callerID, pendingID int64, reason string) (*model.Rejection, error)
}

// WithdrawalFacade covers cash-out requests.
type WithdrawalFacade interface {
	Withdraw(ctx context.Context, accountID int64, destination string, amount decimal.Decimal) (*model.WithdrawalRequest, error)
	WithdrawText(ctx context.Context, accountID int64, text string) (*model.WithdrawalRequest, error)
	Withdrawals(ctx context.Context, accountID int64) ([]model.WithdrawalRequest, error)
	AllWithdrawals(ctx context.Context, callerID int64) ([]model.WithdrawalRequest, error)
}

// MarketFacade aggregates the full set of operations used across handlers.
type MarketFacade interface {
	AccountFacade
	SubmissionFacade
	WithdrawalFacade
}

// HealthChecker reports whether storage is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
