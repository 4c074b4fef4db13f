package app

import (
	"context"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/mailmart/internal/adapter/notify"
	domainErrors "github.com/polkiloo/mailmart/internal/domain/errors"
	"github.com/polkiloo/mailmart/internal/domain/model"
	"github.com/polkiloo/mailmart/internal/usecase"
)

// EventSink accepts events for delivery once the change behind them is committed.
type EventSink interface {
	Enqueue(event model.Event) bool
}

// MarketFacade is the single entry point the HTTP layer talks to. It runs
// the use cases and emits notifications after they succeed.
type MarketFacade struct {
	auth        *usecase.AuthUseCase
	ledger      *usecase.LedgerUseCase
	submissions *usecase.SubmissionUseCase
	referrals   *usecase.ReferralUseCase
	withdrawals *usecase.WithdrawalUseCase
	events      EventSink
	rates       model.Rates
	adminID     int64
}

// NewMarketFacade constructs MarketFacade.
func NewMarketFacade(
	auth *usecase.AuthUseCase,
	ledger *usecase.LedgerUseCase,
	submissions *usecase.SubmissionUseCase,
	referrals *usecase.ReferralUseCase,
	withdrawals *usecase.WithdrawalUseCase,
	events EventSink,
	rates model.Rates,
	adminID int64,
) *MarketFacade {
	return &MarketFacade{
		auth:        auth,
		ledger:      ledger,
		submissions: submissions,
		referrals:   referrals,
		withdrawals: withdrawals,
		events:      events,
		rates:       rates,
		adminID:     adminID,
	}
}

func (f *MarketFacade) Register(ctx context.Context, account model.NewAccount) (*model.Account, string, error) {
	created, token, err := f.auth.Register(ctx, account)
	if err != nil {
		return nil, "", err
	}
	if created.ReferrerID != nil {
		f.emit(model.EventReferralJoined, *created.ReferrerID, created.ID, map[string]string{
			"name":  created.Name,
			"bonus": f.rates.ReferralBonus().String(),
		})
	}
	return created, token, nil
}

func (f *MarketFacade) Session(ctx context.Context, accountID int64) (string, error) {
	return f.auth.Session(ctx, accountID)
}

func (f *MarketFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *MarketFacade) Account(ctx context.Context, accountID int64) (*model.Account, error) {
	return f.ledger.Account(ctx, accountID)
}

// Balance assembles the balance screen of an account.
func (f *MarketFacade) Balance(ctx context.Context, accountID int64) (*model.BalanceSummary, error) {
	balance, err := f.ledger.Balance(ctx, accountID)
	if err != nil {
		return nil, err
	}
	pending, err := f.referrals.PendingBalance(ctx, accountID)
	if err != nil {
		return nil, err
	}
	count, err := f.referrals.Count(ctx, accountID)
	if err != nil {
		return nil, err
	}
	earnings, err := f.referrals.Earnings(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return &model.BalanceSummary{
		Balance:          balance,
		Pending:          pending,
		Display:          f.rates.Display(balance),
		ReferralCount:    count,
		ReferralEarnings: earnings,
		MinWithdrawal:    f.rates.MinWithdrawal,
	}, nil
}

func (f *MarketFacade) Transactions(ctx context.Context, accountID int64) ([]model.Transaction, error) {
	return f.ledger.Transactions(ctx, accountID)
}

func (f *MarketFacade) Referrals(ctx context.Context, accountID int64) ([]model.Referral, error) {
	return f.referrals.Referrals(ctx, accountID)
}

// Submit queues a payload for review and tells the admin about it.
func (f *MarketFacade) Submit(ctx context.Context, accountID int64, payload model.Payload) (*model.PendingSubmission, error) {
	pending, err := f.submissions.Submit(ctx, accountID, payload)
	if err != nil {
		return nil, err
	}
	f.emit(model.EventSubmissionReceived, notify.AdminRecipient, accountID, map[string]string{
		"pending_id": strconv.FormatInt(pending.ID, 10),
		"identifier": pending.Payload.Identifier,
		"recovery":   pending.Payload.Recovery,
	})
	return pending, nil
}

// SubmitText parses the chat submission format before submitting.
func (f *MarketFacade) SubmitText(ctx context.Context, accountID int64, text string) (*model.PendingSubmission, error) {
	payload, err := usecase.ParsePayload(text)
	if err != nil {
		return nil, err
	}
	return f.Submit(ctx, accountID, payload)
}

func (f *MarketFacade) ApprovedItems(ctx context.Context, accountID int64) ([]model.ApprovedItem, error) {
	return f.submissions.Approved(ctx, accountID)
}

func (f *MarketFacade) PendingSubmissions(ctx context.Context, callerID int64) ([]model.PendingSubmission, error) {
	if err := f.requireAdmin(callerID); err != nil {
		return nil, err
	}
	return f.submissions.Pending(ctx)
}

func (f *MarketFacade) Approve(ctx context.Context, callerID, pendingID int64) (*model.ApprovedItem, error) {
	if err := f.requireAdmin(callerID); err != nil {
		return nil, err
	}
	item, err := f.submissions.Approve(ctx, pendingID)
	if err != nil {
		return nil, err
	}
	f.emit(model.EventSubmissionApproved, item.AccountID, item.AccountID, map[string]string{
		"item_id":    strconv.FormatInt(item.ID, 10),
		"identifier": item.Payload.Identifier,
		"credited":   f.rates.UnitPayout.String(),
	})
	return item, nil
}

func (f *MarketFacade) Reject(ctx context.Context, callerID, pendingID int64, reason string) (*model.Rejection, error) {
	if err := f.requireAdmin(callerID); err != nil {
		return nil, err
	}
	rejection, err := f.submissions.Reject(ctx, pendingID, reason)
	if err != nil {
		return nil, err
	}
	owner := rejection.Submission.AccountID
	f.emit(model.EventSubmissionRejected, owner, owner, map[string]string{
		"identifier": rejection.Submission.Payload.Identifier,
		"reason":     rejection.Reason,
	})
	return rejection, nil
}

// Withdraw debits the account and tells the admin to pay out.
func (f *MarketFacade) Withdraw(ctx context.Context, accountID int64, destination string, amount decimal.Decimal) (*model.WithdrawalRequest, error) {
	request, err := f.withdrawals.Request(ctx, accountID, destination, amount)
	if err != nil {
		return nil, err
	}
	f.emit(model.EventWithdrawalRequested, notify.AdminRecipient, accountID, map[string]string{
		"request_id":  strconv.FormatInt(request.ID, 10),
		"destination": request.Destination,
		"amount":      money(request.Amount),
		"display":     strconv.FormatInt(f.rates.Display(request.Amount), 10),
	})
	return request, nil
}

// WithdrawText parses the chat withdrawal format before withdrawing.
func (f *MarketFacade) WithdrawText(ctx context.Context, accountID int64, text string) (*model.WithdrawalRequest, error) {
	form, err := usecase.ParseWithdrawalForm(text)
	if err != nil {
		return nil, err
	}
	return f.Withdraw(ctx, accountID, form.Destination, form.Amount)
}

func (f *MarketFacade) Withdrawals(ctx context.Context, accountID int64) ([]model.WithdrawalRequest, error) {
	return f.withdrawals.Requests(ctx, &accountID)
}

func (f *MarketFacade) AllWithdrawals(ctx context.Context, callerID int64) ([]model.WithdrawalRequest, error) {
	if err := f.requireAdmin(callerID); err != nil {
		return nil, err
	}
	return f.withdrawals.Requests(ctx, nil)
}

func (f *MarketFacade) requireAdmin(callerID int64) error {
	if f.adminID <= 0 || callerID != f.adminID {
		return domainErrors.ErrForbidden
	}
	return nil
}

func (f *MarketFacade) emit(kind model.EventKind, recipientID, accountID int64, data map[string]string) {
	if f.events == nil {
		return
	}
	f.events.Enqueue(notify.NewEvent(kind, recipientID, accountID, data))
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
