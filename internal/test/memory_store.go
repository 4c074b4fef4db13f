package test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/mailmart/internal/domain/errors"
	"github.com/polkiloo/mailmart/internal/domain/model"
	"github.com/polkiloo/mailmart/internal/domain/repository"
)

// MemoryStore keeps every repository in memory behind one mutex, so each
// call is atomic the way a database transaction would be.
type MemoryStore struct {
	mu sync.Mutex

	accounts     map[int64]*model.Account
	transactions []model.Transaction
	pending      map[int64]model.PendingSubmission
	approved     []model.ApprovedItem
	withdrawals  []model.WithdrawalRequest

	nextID int64
	clock  time.Time

	// Err, when set, is returned by every operation.
	Err error
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		accounts: make(map[int64]*model.Account),
		pending:  make(map[int64]model.PendingSubmission),
		clock:    time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *MemoryStore) Accounts() repository.AccountRepository       { return &MemoryAccounts{s} }
func (s *MemoryStore) Ledger() repository.LedgerRepository           { return &MemoryLedger{s} }
func (s *MemoryStore) Submissions() repository.SubmissionRepository { return &MemorySubmissions{s} }
func (s *MemoryStore) Withdrawals() repository.WithdrawalRepository { return &MemoryWithdrawals{s} }

// tick returns strictly increasing timestamps so ordering is deterministic.
func (s *MemoryStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *MemoryStore) id() int64 {
	s.nextID++
	return s.nextID
}

func (s *MemoryStore) applyLocked(accountID int64, amount decimal.Decimal, kind model.TransactionKind, description string) (*model.Transaction, error) {
	if !kind.Valid() || amount.IsNegative() || !model.FitsScale(amount) {
		return nil, domainErrors.ErrInvalidAmount
	}
	account, ok := s.accounts[accountID]
	if !ok {
		return nil, domainErrors.ErrAccountNotFound
	}
	next := account.Balance.Add(amount)
	if kind == model.TransactionKindDebit {
		next = account.Balance.Sub(amount)
	}
	if next.IsNegative() {
		return nil, domainErrors.ErrNegativeBalance
	}
	account.Balance = next
	entry := model.Transaction{ID: s.id(), AccountID: accountID, Amount: amount, Kind: kind, Description: description, CreatedAt: s.tick()}
	s.transactions = append(s.transactions, entry)
	return &entry, nil
}

func (s *MemoryStore) creditedLocked(accountID int64) decimal.Decimal {
	total := decimal.Zero
	for _, t := range s.transactions {
		if t.AccountID == accountID && t.Kind == model.TransactionKindCredit {
			total = total.Add(t.Amount)
		}
	}
	return total
}

// MemoryAccounts implements repository.AccountRepository.
type MemoryAccounts struct{ s *MemoryStore }

func (r *MemoryAccounts) Create(ctx context.Context, account model.NewAccount, bonus decimal.Decimal) (*model.Account, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if account.ReferrerID != nil && *account.ReferrerID == account.ID {
		return nil, domainErrors.ErrSelfReferral
	}
	if _, exists := s.accounts[account.ID]; exists {
		return nil, domainErrors.ErrDuplicateAccount
	}
	if account.ReferrerID != nil {
		if _, ok := s.accounts[*account.ReferrerID]; !ok {
			return nil, domainErrors.ErrInvalidReferrer
		}
	}

	created := &model.Account{ID: account.ID, Name: account.Name, Balance: decimal.Zero, CreatedAt: s.tick()}
	if account.ReferrerID != nil {
		ref := *account.ReferrerID
		created.ReferrerID = &ref
	}
	s.accounts[account.ID] = created

	if created.ReferrerID != nil && bonus.IsPositive() {
		if _, err := s.applyLocked(*created.ReferrerID, bonus, model.TransactionKindCredit, model.DescriptionReferralBonus); err != nil {
			delete(s.accounts, account.ID)
			return nil, err
		}
	}
	copied := *created
	return &copied, nil
}

func (r *MemoryAccounts) GetByID(ctx context.Context, id int64) (*model.Account, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	account, ok := s.accounts[id]
	if !ok {
		return nil, domainErrors.ErrAccountNotFound
	}
	copied := *account
	return &copied, nil
}

func (r *MemoryAccounts) Exists(ctx context.Context, id int64) (bool, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return false, s.Err
	}
	_, ok := s.accounts[id]
	return ok, nil
}

func (r *MemoryAccounts) Balance(ctx context.Context, id int64) (decimal.Decimal, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return decimal.Zero, s.Err
	}
	if account, ok := s.accounts[id]; ok {
		return account.Balance, nil
	}
	return decimal.Zero, nil
}

func (r *MemoryAccounts) CountReferrals(ctx context.Context, referrerID int64) (int, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	count := 0
	for _, a := range s.accounts {
		if a.ReferrerID != nil && *a.ReferrerID == referrerID {
			count++
		}
	}
	return count, nil
}

func (r *MemoryAccounts) ListReferrals(ctx context.Context, referrerID int64) ([]model.Referral, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Referral
	for _, a := range s.accounts {
		if a.ReferrerID != nil && *a.ReferrerID == referrerID {
			result = append(result, model.Referral{AccountID: a.ID, Name: a.Name, JoinedAt: a.CreatedAt, Credited: s.creditedLocked(a.ID)})
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].JoinedAt.Before(result[j].JoinedAt) })
	return result, nil
}

// MemoryLedger implements repository.LedgerRepository.
type MemoryLedger struct{ s *MemoryStore }

func (r *MemoryLedger) Apply(ctx context.Context, accountID int64, amount decimal.Decimal, kind model.TransactionKind, description string) (*model.Transaction, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return s.applyLocked(accountID, amount, kind, description)
}

func (r *MemoryLedger) ListByAccount(ctx context.Context, accountID int64) ([]model.Transaction, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Transaction
	for _, t := range s.transactions {
		if t.AccountID == accountID {
			result = append(result, t)
		}
	}
	return result, nil
}

func (r *MemoryLedger) ReferredCredits(ctx context.Context, referrerID int64) (decimal.Decimal, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return decimal.Zero, s.Err
	}
	total := decimal.Zero
	for _, a := range s.accounts {
		if a.ReferrerID != nil && *a.ReferrerID == referrerID {
			total = total.Add(s.creditedLocked(a.ID))
		}
	}
	return total, nil
}

// MemorySubmissions implements repository.SubmissionRepository.
type MemorySubmissions struct{ s *MemoryStore }

func (r *MemorySubmissions) Create(ctx context.Context, accountID int64, payload model.Payload) (*model.PendingSubmission, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	account, ok := s.accounts[accountID]
	if !ok {
		return nil, domainErrors.ErrAccountNotFound
	}
	sub := model.PendingSubmission{ID: s.id(), AccountID: accountID, AccountName: account.Name, Payload: payload, SubmittedAt: s.tick()}
	s.pending[sub.ID] = sub
	return &sub, nil
}

func (r *MemorySubmissions) Approve(ctx context.Context, pendingID int64, payout decimal.Decimal, description string) (*model.ApprovedItem, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	sub, ok := s.pending[pendingID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if _, err := s.applyLocked(sub.AccountID, payout, model.TransactionKindCredit, description); err != nil {
		return nil, err
	}
	delete(s.pending, pendingID)
	item := model.ApprovedItem{ID: s.id(), AccountID: sub.AccountID, Payload: sub.Payload, ApprovedAt: s.tick()}
	s.approved = append(s.approved, item)
	return &item, nil
}

func (r *MemorySubmissions) Reject(ctx context.Context, pendingID int64) (*model.PendingSubmission, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	sub, ok := s.pending[pendingID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	delete(s.pending, pendingID)
	return &sub, nil
}

func (r *MemorySubmissions) ListPending(ctx context.Context) ([]model.PendingSubmission, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	result := make([]model.PendingSubmission, 0, len(s.pending))
	for _, sub := range s.pending {
		result = append(result, sub)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].SubmittedAt.Before(result[j].SubmittedAt) })
	return result, nil
}

func (r *MemorySubmissions) CountPending(ctx context.Context, accountID int64) (int, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	count := 0
	for _, sub := range s.pending {
		if sub.AccountID == accountID {
			count++
		}
	}
	return count, nil
}

func (r *MemorySubmissions) ListApproved(ctx context.Context, accountID int64) ([]model.ApprovedItem, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.ApprovedItem
	for i := len(s.approved) - 1; i >= 0; i-- {
		if s.approved[i].AccountID == accountID {
			result = append(result, s.approved[i])
		}
	}
	return result, nil
}

// MemoryWithdrawals implements repository.WithdrawalRepository.
type MemoryWithdrawals struct{ s *MemoryStore }

func (r *MemoryWithdrawals) Create(ctx context.Context, accountID int64, destination string, amount decimal.Decimal) (*model.WithdrawalRequest, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if _, err := s.applyLocked(accountID, amount, model.TransactionKindDebit, model.DescriptionWithdrawal); err != nil {
		if err == domainErrors.ErrNegativeBalance {
			return nil, domainErrors.ErrInsufficientBalance
		}
		return nil, err
	}
	req := model.WithdrawalRequest{ID: s.id(), AccountID: accountID, Destination: destination, Amount: amount, Status: model.WithdrawalStatusPending, RequestedAt: s.tick()}
	s.withdrawals = append(s.withdrawals, req)
	return &req, nil
}

func (r *MemoryWithdrawals) List(ctx context.Context, accountID *int64) ([]model.WithdrawalRequest, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.WithdrawalRequest
	for i := len(s.withdrawals) - 1; i >= 0; i-- {
		if accountID == nil || s.withdrawals[i].AccountID == *accountID {
			result = append(result, s.withdrawals[i])
		}
	}
	return result, nil
}

var _ repository.Factory = (*MemoryStore)(nil)
