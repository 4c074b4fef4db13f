package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/mailmart/internal/domain/model"
)

// SubmissionRepository persists pending and approved items.
type SubmissionRepository interface {
	Create(ctx context.Context, accountID int64, payload model.Payload) (*model.PendingSubmission, error)
	// Approve moves the pending submission into approved items and credits
	// payout to its owner atomically.
	Approve(ctx context.Context, pendingID int64, payout decimal.Decimal, description string) (*model.ApprovedItem, error)
	// Reject removes the pending submission and returns what was removed.
	Reject(ctx context.Context, pendingID int64) (*model.PendingSubmission, error)
	ListPending(ctx context.Context) ([]model.PendingSubmission, error)
	CountPending(ctx context.Context, accountID int64) (int, error)
	ListApproved(ctx context.Context, accountID int64) ([]model.ApprovedItem, error)
}
