package test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/mailmart/internal/domain/model"
)

// FixedTime is the timestamp stub data carries.
var FixedTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// MarketFacadeStub provides controllable behaviour for every HTTP endpoint.
// Unset functions return small successful defaults.
type MarketFacadeStub struct {
	RegisterFn     func(context.Context, model.NewAccount) (*model.Account, string, error)
	SessionFn      func(context.Context, int64) (string, error)
	ParseFn        func(string) (int64, error)
	AccountFn      func(context.Context, int64) (*model.Account, error)
	BalanceFn      func(context.Context, int64) (*model.BalanceSummary, error)
	TransactionsFn func(context.Context, int64) ([]model.Transaction, error)
	ReferralsFn    func(context.Context, int64) ([]model.Referral, error)

	SubmitFn     func(context.Context, int64, model.Payload) (*model.PendingSubmission, error)
	SubmitTextFn func(context.Context, int64, string) (*model.PendingSubmission, error)
	ItemsFn      func(context.Context, int64) ([]model.ApprovedItem, error)
	PendingFn    func(context.Context, int64) ([]model.PendingSubmission, error)
	ApproveFn    func(context.Context, int64, int64) (*model.ApprovedItem, error)
	RejectFn     func(context.Context, int64, int64, string) (*model.Rejection, error)

	WithdrawFn       func(context.Context, int64, string, decimal.Decimal) (*model.WithdrawalRequest, error)
	WithdrawTextFn   func(context.Context, int64, string) (*model.WithdrawalRequest, error)
	WithdrawalsFn    func(context.Context, int64) ([]model.WithdrawalRequest, error)
	AllWithdrawalsFn func(context.Context, int64) ([]model.WithdrawalRequest, error)
}

func (s MarketFacadeStub) Register(ctx context.Context, account model.NewAccount) (*model.Account, string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, account)
	}
	return &model.Account{ID: account.ID, Name: account.Name, ReferrerID: account.ReferrerID, CreatedAt: FixedTime}, "token", nil
}

func (s MarketFacadeStub) Session(ctx context.Context, accountID int64) (string, error) {
	if s.SessionFn != nil {
		return s.SessionFn(ctx, accountID)
	}
	return "token", nil
}

func (s MarketFacadeStub) ParseToken(token string) (int64, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return 1, nil
}

func (s MarketFacadeStub) Account(ctx context.Context, accountID int64) (*model.Account, error) {
	if s.AccountFn != nil {
		return s.AccountFn(ctx, accountID)
	}
	return &model.Account{ID: accountID, Name: "user", Balance: decimal.RequireFromString("1.25"), CreatedAt: FixedTime}, nil
}

func (s MarketFacadeStub) Balance(ctx context.Context, accountID int64) (*model.BalanceSummary, error) {
	if s.BalanceFn != nil {
		return s.BalanceFn(ctx, accountID)
	}
	return &model.BalanceSummary{
		Balance:       decimal.RequireFromString("1.25"),
		Pending:       decimal.RequireFromString("0.10"),
		Display:       137,
		MinWithdrawal: decimal.NewFromInt(1),
	}, nil
}

func (s MarketFacadeStub) Transactions(ctx context.Context, accountID int64) ([]model.Transaction, error) {
	if s.TransactionsFn != nil {
		return s.TransactionsFn(ctx, accountID)
	}
	return []model.Transaction{{ID: 1, AccountID: accountID, Amount: decimal.RequireFromString("0.05"), Kind: model.TransactionKindCredit, Description: model.DescriptionItemSale, CreatedAt: FixedTime}}, nil
}

func (s MarketFacadeStub) Referrals(ctx context.Context, accountID int64) ([]model.Referral, error) {
	if s.ReferralsFn != nil {
		return s.ReferralsFn(ctx, accountID)
	}
	return nil, nil
}

func (s MarketFacadeStub) Submit(ctx context.Context, accountID int64, payload model.Payload) (*model.PendingSubmission, error) {
	if s.SubmitFn != nil {
		return s.SubmitFn(ctx, accountID, payload)
	}
	return &model.PendingSubmission{ID: 1, AccountID: accountID, Payload: payload, SubmittedAt: FixedTime}, nil
}

func (s MarketFacadeStub) SubmitText(ctx context.Context, accountID int64, text string) (*model.PendingSubmission, error) {
	if s.SubmitTextFn != nil {
		return s.SubmitTextFn(ctx, accountID, text)
	}
	return &model.PendingSubmission{ID: 2, AccountID: accountID, SubmittedAt: FixedTime}, nil
}

func (s MarketFacadeStub) ApprovedItems(ctx context.Context, accountID int64) ([]model.ApprovedItem, error) {
	if s.ItemsFn != nil {
		return s.ItemsFn(ctx, accountID)
	}
	return nil, nil
}

func (s MarketFacadeStub) PendingSubmissions(ctx context.Context, callerID int64) ([]model.PendingSubmission, error) {
	if s.PendingFn != nil {
		return s.PendingFn(ctx, callerID)
	}
	return nil, nil
}

func (s MarketFacadeStub) Approve(ctx context.Context, callerID, pendingID int64) (*model.ApprovedItem, error) {
	if s.ApproveFn != nil {
		return s.ApproveFn(ctx, callerID, pendingID)
	}
	return &model.ApprovedItem{ID: pendingID, ApprovedAt: FixedTime}, nil
}

func (s MarketFacadeStub) Reject(ctx context.Context, callerID, pendingID int64, reason string) (*model.Rejection, error) {
	if s.RejectFn != nil {
		return s.RejectFn(ctx, callerID, pendingID, reason)
	}
	if reason == "" {
		reason = model.DefaultRejectReason
	}
	return &model.Rejection{Submission: model.PendingSubmission{ID: pendingID}, Reason: reason}, nil
}

func (s MarketFacadeStub) Withdraw(ctx context.Context, accountID int64, destination string, amount decimal.Decimal) (*model.WithdrawalRequest, error) {
	if s.WithdrawFn != nil {
		return s.WithdrawFn(ctx, accountID, destination, amount)
	}
	return &model.WithdrawalRequest{ID: 1, AccountID: accountID, Destination: destination, Amount: amount, Status: model.WithdrawalStatusPending, RequestedAt: FixedTime}, nil
}

func (s MarketFacadeStub) WithdrawText(ctx context.Context, accountID int64, text string) (*model.WithdrawalRequest, error) {
	if s.WithdrawTextFn != nil {
		return s.WithdrawTextFn(ctx, accountID, text)
	}
	return &model.WithdrawalRequest{ID: 2, AccountID: accountID, Status: model.WithdrawalStatusPending, RequestedAt: FixedTime}, nil
}

func (s MarketFacadeStub) Withdrawals(ctx context.Context, accountID int64) ([]model.WithdrawalRequest, error) {
	if s.WithdrawalsFn != nil {
		return s.WithdrawalsFn(ctx, accountID)
	}
	return nil, nil
}

func (s MarketFacadeStub) AllWithdrawals(ctx context.Context, callerID int64) ([]model.WithdrawalRequest, error) {
	if s.AllWithdrawalsFn != nil {
		return s.AllWithdrawalsFn(ctx, callerID)
	}
	return nil, nil
}

// HealthCheckerStub reports Err from HealthCheck.
type HealthCheckerStub struct {
	Err error
}

func (h HealthCheckerStub) HealthCheck(context.Context) error {
	return h.Err
}
