package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/mailmart/internal/domain/errors"
	"github.com/polkiloo/mailmart/internal/domain/model"
	"github.com/polkiloo/mailmart/internal/domain/repository"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type accountRepository struct {
	storage *Storage
}

type ledgerRepository struct {
	storage *Storage
}

type submissionRepository struct {
	storage *Storage
}

type withdrawalRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Accounts() repository.AccountRepository {
	return &accountRepository{storage: s}
}

func (s *Storage) Ledger() repository.LedgerRepository {
	return &ledgerRepository{storage: s}
}

func (s *Storage) Submissions() repository.SubmissionRepository {
	return &submissionRepository{storage: s}
}

func (s *Storage) Withdrawals() repository.WithdrawalRepository {
	return &withdrawalRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS accounts (
            id BIGINT PRIMARY KEY,
            name TEXT NOT NULL,
            balance NUMERIC(20, 8) NOT NULL DEFAULT 0 CHECK (balance >= 0),
            referrer_id BIGINT REFERENCES accounts(id) CHECK (referrer_id <> id),
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS transactions (
            id BIGSERIAL PRIMARY KEY,
            account_id BIGINT NOT NULL REFERENCES accounts(id),
            amount NUMERIC(20, 8) NOT NULL CHECK (amount >= 0),
            kind TEXT NOT NULL CHECK (kind IN ('credit', 'debit')),
            description TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS pending_submissions (
            id BIGSERIAL PRIMARY KEY,
            account_id BIGINT NOT NULL REFERENCES accounts(id),
            identifier TEXT NOT NULL,
            secret TEXT NOT NULL,
            recovery TEXT NOT NULL,
            submitted_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS approved_items (
            id BIGSERIAL PRIMARY KEY,
            account_id BIGINT NOT NULL REFERENCES accounts(id),
            identifier TEXT NOT NULL,
            secret TEXT NOT NULL,
            recovery TEXT NOT NULL,
            approved_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS withdrawal_requests (
            id BIGSERIAL PRIMARY KEY,
            account_id BIGINT NOT NULL REFERENCES accounts(id),
            destination TEXT NOT NULL,
            amount NUMERIC(20, 8) NOT NULL CHECK (amount > 0),
            status TEXT NOT NULL DEFAULT 'pending',
            requested_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_accounts_referrer ON accounts(referrer_id)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_account ON transactions(account_id, id)`,
		`CREATE INDEX IF NOT EXISTS idx_pending_submitted ON pending_submissions(submitted_at, id)`,
		`CREATE INDEX IF NOT EXISTS idx_approved_account ON approved_items(account_id, approved_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_withdrawals_account ON withdrawal_requests(account_id, requested_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// --- AccountRepository implementation ---

func (r *accountRepository) Create(ctx context.Context, account model.NewAccount, bonus decimal.Decimal) (*model.Account, error) {
	if account.ReferrerID != nil && *account.ReferrerID == account.ID {
		return nil, domainErrors.ErrSelfReferral
	}

	created := model.Account{ID: account.ID, Name: account.Name, ReferrerID: account.ReferrerID}
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertAccount = `INSERT INTO accounts (id, name, referrer_id) VALUES ($1, $2, $3)
                               RETURNING balance, created_at`
		err := tx.QueryRow(ctx, insertAccount, account.ID, account.Name, account.ReferrerID).Scan(&created.Balance, &created.CreatedAt)
		if err != nil {
			switch pgErrorCode(err) {
			case codeUniqueViolation:
				return domainErrors.ErrDuplicateAccount
			case codeForeignKeyViolation:
				return domainErrors.ErrInvalidReferrer
			}
			return fmt.Errorf("insert account: %w", err)
		}

		if account.ReferrerID == nil || !bonus.IsPositive() {
			return nil
		}
		if _, err := r.storage.applyTx(ctx, tx, *account.ReferrerID, bonus, model.TransactionKindCredit, model.DescriptionReferralBonus); err != nil {
			if errors.Is(err, domainErrors.ErrAccountNotFound) {
				return domainErrors.ErrInvalidReferrer
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.storage.logger.Debug("account created", slog.Int64("account_id", created.ID))
	return &created, nil
}

func (r *accountRepository) GetByID(ctx context.Context, id int64) (*model.Account, error) {
	const query = `SELECT id, name, balance, referrer_id, created_at FROM accounts WHERE id=$1`
	var a model.Account
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&a.ID, &a.Name, &a.Balance, &a.ReferrerID, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrAccountNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *accountRepository) Exists(ctx context.Context, id int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM accounts WHERE id=$1)`
	var exists bool
	if err := r.storage.pool.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *accountRepository) Balance(ctx context.Context, id int64) (decimal.Decimal, error) {
	const query = `SELECT balance FROM accounts WHERE id=$1`
	var balance decimal.Decimal
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	return balance, nil
}

func (r *accountRepository) CountReferrals(ctx context.Context, referrerID int64) (int, error) {
	const query = `SELECT COUNT(*) FROM accounts WHERE referrer_id=$1`
	var count int
	if err := r.storage.pool.QueryRow(ctx, query, referrerID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *accountRepository) ListReferrals(ctx context.Context, referrerID int64) ([]model.Referral, error) {
	const query = `SELECT a.id, a.name, a.created_at, COALESCE(SUM(t.amount), 0)
                   FROM accounts a
                   LEFT JOIN transactions t ON t.account_id = a.id AND t.kind = 'credit'
                   WHERE a.referrer_id=$1
                   GROUP BY a.id, a.name, a.created_at
                   ORDER BY a.created_at, a.id`
	rows, err := r.storage.pool.Query(ctx, query, referrerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Referral
	for rows.Next() {
		var ref model.Referral
		if err := rows.Scan(&ref.AccountID, &ref.Name, &ref.JoinedAt, &ref.Credited); err != nil {
			return nil, err
		}
		result = append(result, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- LedgerRepository implementation ---

// applyTx mutates the account balance and appends the matching ledger entry
// inside tx. The account row stays locked until tx ends.
//
// The lock is FOR NO KEY UPDATE: callers may already hold FOR KEY SHARE on
// the same row from a foreign key check (approved item, referred account),
// and FOR UPDATE would make two such transactions wait on each other.
func (s *Storage) applyTx(ctx context.Context, tx pgx.Tx, accountID int64, amount decimal.Decimal, kind model.TransactionKind, description string) (*model.Transaction, error) {
	if !kind.Valid() || amount.IsNegative() || !model.FitsScale(amount) {
		return nil, domainErrors.ErrInvalidAmount
	}

	const lockAccount = `SELECT balance FROM accounts WHERE id=$1 FOR NO KEY UPDATE`
	var balance decimal.Decimal
	if err := tx.QueryRow(ctx, lockAccount, accountID).Scan(&balance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrAccountNotFound
		}
		return nil, err
	}

	next := balance.Add(amount)
	if kind == model.TransactionKindDebit {
		next = balance.Sub(amount)
	}
	if next.IsNegative() {
		return nil, domainErrors.ErrNegativeBalance
	}

	const updateBalance = `UPDATE accounts SET balance=$1 WHERE id=$2`
	if _, err := tx.Exec(ctx, updateBalance, next, accountID); err != nil {
		return nil, err
	}

	const insertTransaction = `INSERT INTO transactions (account_id, amount, kind, description) VALUES ($1, $2, $3, $4)
                               RETURNING id, created_at`
	entry := model.Transaction{AccountID: accountID, Amount: amount, Kind: kind, Description: description}
	if err := tx.QueryRow(ctx, insertTransaction, accountID, amount, kind, description).Scan(&entry.ID, &entry.CreatedAt); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *ledgerRepository) Apply(ctx context.Context, accountID int64, amount decimal.Decimal, kind model.TransactionKind, description string) (*model.Transaction, error) {
	var entry *model.Transaction
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		entry, err = r.storage.applyTx(ctx, tx, accountID, amount, kind, description)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *ledgerRepository) ListByAccount(ctx context.Context, accountID int64) ([]model.Transaction, error) {
	const query = `SELECT id, account_id, amount, kind, description, created_at
                   FROM transactions WHERE account_id=$1 ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Transaction
	for rows.Next() {
		var t model.Transaction
		if err := rows.Scan(&t.ID, &t.AccountID, &t.Amount, &t.Kind, &t.Description, &t.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *ledgerRepository) ReferredCredits(ctx context.Context, referrerID int64) (decimal.Decimal, error) {
	const query = `SELECT COALESCE(SUM(t.amount), 0)
                   FROM accounts a
                   JOIN transactions t ON t.account_id = a.id AND t.kind = 'credit'
                   WHERE a.referrer_id=$1`
	var total decimal.Decimal
	if err := r.storage.pool.QueryRow(ctx, query, referrerID).Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

// --- SubmissionRepository implementation ---

func (r *submissionRepository) Create(ctx context.Context, accountID int64, payload model.Payload) (*model.PendingSubmission, error) {
	const query = `INSERT INTO pending_submissions (account_id, identifier, secret, recovery) VALUES ($1, $2, $3, $4)
                   RETURNING id, submitted_at`
	sub := model.PendingSubmission{AccountID: accountID, Payload: payload}
	err := r.storage.pool.QueryRow(ctx, query, accountID, payload.Identifier, payload.Secret, payload.Recovery).Scan(&sub.ID, &sub.SubmittedAt)
	if err != nil {
		if pgErrorCode(err) == codeForeignKeyViolation {
			return nil, domainErrors.ErrAccountNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (r *submissionRepository) Approve(ctx context.Context, pendingID int64, payout decimal.Decimal, description string) (*model.ApprovedItem, error) {
	var item model.ApprovedItem
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const removePending = `DELETE FROM pending_submissions WHERE id=$1
                               RETURNING account_id, identifier, secret, recovery`
		err := tx.QueryRow(ctx, removePending, pendingID).Scan(&item.AccountID, &item.Payload.Identifier, &item.Payload.Secret, &item.Payload.Recovery)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}

		const insertItem = `INSERT INTO approved_items (account_id, identifier, secret, recovery) VALUES ($1, $2, $3, $4)
                            RETURNING id, approved_at`
		if err := tx.QueryRow(ctx, insertItem, item.AccountID, item.Payload.Identifier, item.Payload.Secret, item.Payload.Recovery).Scan(&item.ID, &item.ApprovedAt); err != nil {
			return err
		}

		_, err = r.storage.applyTx(ctx, tx, item.AccountID, payout, model.TransactionKindCredit, description)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *submissionRepository) Reject(ctx context.Context, pendingID int64) (*model.PendingSubmission, error) {
	const query = `DELETE FROM pending_submissions WHERE id=$1
                   RETURNING id, account_id, identifier, secret, recovery, submitted_at`
	var sub model.PendingSubmission
	err := r.storage.pool.QueryRow(ctx, query, pendingID).Scan(&sub.ID, &sub.AccountID, &sub.Payload.Identifier, &sub.Payload.Secret, &sub.Payload.Recovery, &sub.SubmittedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (r *submissionRepository) ListPending(ctx context.Context) ([]model.PendingSubmission, error) {
	const query = `SELECT p.id, p.account_id, a.name, p.identifier, p.secret, p.recovery, p.submitted_at
                   FROM pending_submissions p
                   JOIN accounts a ON a.id = p.account_id
                   ORDER BY p.submitted_at, p.id`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.PendingSubmission
	for rows.Next() {
		var p model.PendingSubmission
		if err := rows.Scan(&p.ID, &p.AccountID, &p.AccountName, &p.Payload.Identifier, &p.Payload.Secret, &p.Payload.Recovery, &p.SubmittedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *submissionRepository) CountPending(ctx context.Context, accountID int64) (int, error) {
	const query = `SELECT COUNT(*) FROM pending_submissions WHERE account_id=$1`
	var count int
	if err := r.storage.pool.QueryRow(ctx, query, accountID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *submissionRepository) ListApproved(ctx context.Context, accountID int64) ([]model.ApprovedItem, error) {
	const query = `SELECT id, account_id, identifier, secret, recovery, approved_at
                   FROM approved_items WHERE account_id=$1 ORDER BY approved_at DESC, id DESC`
	rows, err := r.storage.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.ApprovedItem
	for rows.Next() {
		var item model.ApprovedItem
		if err := rows.Scan(&item.ID, &item.AccountID, &item.Payload.Identifier, &item.Payload.Secret, &item.Payload.Recovery, &item.ApprovedAt); err != nil {
			return nil, err
		}
		result = append(result, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- WithdrawalRepository implementation ---

func (r *withdrawalRepository) Create(ctx context.Context, accountID int64, destination string, amount decimal.Decimal) (*model.WithdrawalRequest, error) {
	req := model.WithdrawalRequest{AccountID: accountID, Destination: destination, Amount: amount, Status: model.WithdrawalStatusPending}
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if _, err := r.storage.applyTx(ctx, tx, accountID, amount, model.TransactionKindDebit, model.DescriptionWithdrawal); err != nil {
			if errors.Is(err, domainErrors.ErrNegativeBalance) {
				return domainErrors.ErrInsufficientBalance
			}
			return err
		}

		const insertRequest = `INSERT INTO withdrawal_requests (account_id, destination, amount, status) VALUES ($1, $2, $3, $4)
                               RETURNING id, requested_at`
		return tx.QueryRow(ctx, insertRequest, accountID, destination, amount, req.Status).Scan(&req.ID, &req.RequestedAt)
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *withdrawalRepository) List(ctx context.Context, accountID *int64) ([]model.WithdrawalRequest, error) {
	const query = `SELECT id, account_id, destination, amount, status, requested_at
                   FROM withdrawal_requests
                   WHERE $1::BIGINT IS NULL OR account_id=$1
                   ORDER BY requested_at DESC, id DESC`
	rows, err := r.storage.pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.WithdrawalRequest
	for rows.Next() {
		var w model.WithdrawalRequest
		if err := rows.Scan(&w.ID, &w.AccountID, &w.Destination, &w.Amount, &w.Status, &w.RequestedAt); err != nil {
			return nil, err
		}
		result = append(result, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}
