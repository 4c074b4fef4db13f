package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/polkiloo/mailmart/internal/domain/errors"
	"github.com/polkiloo/mailmart/internal/domain/model"
	"github.com/polkiloo/mailmart/internal/domain/repository"
)

// SubmissionUseCase drives item intake and admin review.
type SubmissionUseCase struct {
	submissions repository.SubmissionRepository
	accounts    repository.AccountRepository
	rates       model.Rates
}

// NewSubmissionUseCase constructs SubmissionUseCase.
func NewSubmissionUseCase(submissions repository.SubmissionRepository, accounts repository.AccountRepository, rates model.Rates) *SubmissionUseCase {
	return &SubmissionUseCase{submissions: submissions, accounts: accounts, rates: rates}
}

// Submit queues a payload for review.
func (u *SubmissionUseCase) Submit(ctx context.Context, accountID int64, payload model.Payload) (*model.PendingSubmission, error) {
	payload = model.Payload{
		Identifier: strings.TrimSpace(payload.Identifier),
		Secret:     strings.TrimSpace(payload.Secret),
		Recovery:   strings.TrimSpace(payload.Recovery),
	}
	if !payload.Complete() {
		return nil, domainErrors.ErrInvalidPayload
	}

	exists, err := u.accounts.Exists(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domainErrors.ErrAccountNotFound
	}

	return u.submissions.Create(ctx, accountID, payload)
}

// Approve turns the pending submission into an approved item and pays the
// owner. A second approval of the same id fails with ErrNotFound.
func (u *SubmissionUseCase) Approve(ctx context.Context, pendingID int64) (*model.ApprovedItem, error) {
	return u.submissions.Approve(ctx, pendingID, u.rates.UnitPayout, model.DescriptionItemSale)
}

// Reject removes the pending submission. The reason is not stored.
func (u *SubmissionUseCase) Reject(ctx context.Context, pendingID int64, reason string) (*model.Rejection, error) {
	removed, err := u.submissions.Reject(ctx, pendingID)
	if err != nil {
		return nil, err
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = model.DefaultRejectReason
	}
	return &model.Rejection{Submission: *removed, Reason: reason}, nil
}

// Pending lists submissions awaiting review, oldest first.
func (u *SubmissionUseCase) Pending(ctx context.Context) ([]model.PendingSubmission, error) {
	return u.submissions.ListPending(ctx)
}

// Approved lists the account's approved items, newest first.
func (u *SubmissionUseCase) Approved(ctx context.Context, accountID int64) ([]model.ApprovedItem, error) {
	return u.submissions.ListApproved(ctx, accountID)
}
