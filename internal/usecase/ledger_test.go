package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/mailmart/internal/domain/errors"
	"github.com/polkiloo/mailmart/internal/domain/model"
	testhelpers "github.com/polkiloo/mailmart/internal/test"
)

type fixture struct {
	store       *testhelpers.MemoryStore
	rates       model.Rates
	ledger      *LedgerUseCase
	submissions *SubmissionUseCase
	referrals   *ReferralUseCase
	withdrawals *WithdrawalUseCase
}

func newFixture() *fixture {
	store := testhelpers.NewMemoryStore()
	rates := model.DefaultRates()
	return &fixture{
		store:       store,
		rates:       rates,
		ledger:      NewLedgerUseCase(store.Accounts(), store.Ledger(), rates),
		submissions: NewSubmissionUseCase(store.Submissions(), store.Accounts(), rates),
		referrals:   NewReferralUseCase(store.Accounts(), store.Ledger(), store.Submissions(), rates),
		withdrawals: NewWithdrawalUseCase(store.Withdrawals(), rates),
	}
}

func (f *fixture) open(t *testing.T, id int64, referrer *int64) {
	t.Helper()
	if _, err := f.ledger.CreateAccount(context.Background(), model.NewAccount{ID: id, Name: "user", ReferrerID: referrer}); err != nil {
		t.Fatalf("create account %d: %v", id, err)
	}
}

func (f *fixture) credit(t *testing.T, id int64, amount string) {
	t.Helper()
	if _, err := f.ledger.Apply(context.Background(), id, decimal.RequireFromString(amount), model.TransactionKindCredit, model.DescriptionItemSale); err != nil {
		t.Fatalf("credit %d: %v", id, err)
	}
}

func (f *fixture) balance(t *testing.T, id int64) decimal.Decimal {
	t.Helper()
	b, err := f.ledger.Balance(context.Background(), id)
	if err != nil {
		t.Fatalf("balance %d: %v", id, err)
	}
	return b
}

// assertLedgerConsistent checks that the balance equals the signed sum of
// the account's transactions.
func (f *fixture) assertLedgerConsistent(t *testing.T, id int64) {
	t.Helper()
	txs, err := f.ledger.Transactions(context.Background(), id)
	if err != nil {
		t.Fatalf("transactions %d: %v", id, err)
	}
	sum := decimal.Zero
	for _, tx := range txs {
		sum = sum.Add(tx.Signed())
	}
	if b := f.balance(t, id); !b.Equal(sum) {
		t.Fatalf("account %d: balance %s differs from transaction sum %s", id, b, sum)
	}
}

func ptr(v int64) *int64 { return &v }

func TestCreateAccountValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	cases := []struct {
		name    string
		account model.NewAccount
		want    error
	}{
		{"zero id", model.NewAccount{ID: 0}, domainErrors.ErrInvalidAccountID},
		{"self referral", model.NewAccount{ID: 3, ReferrerID: ptr(3)}, domainErrors.ErrSelfReferral},
		{"bad referrer id", model.NewAccount{ID: 3, ReferrerID: ptr(-1)}, domainErrors.ErrInvalidReferrer},
		{"unknown referrer", model.NewAccount{ID: 3, ReferrerID: ptr(404)}, domainErrors.ErrInvalidReferrer},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := f.ledger.CreateAccount(ctx, tc.account); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}

	if exists, _ := f.ledger.Exists(ctx, 3); exists {
		t.Fatal("failed creations must not leave an account behind")
	}

	created, err := f.ledger.CreateAccount(ctx, model.NewAccount{ID: 3, Name: "  carol  "})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Name != "carol" || !created.Balance.IsZero() {
		t.Fatalf("unexpected account %+v", created)
	}
	if _, err := f.ledger.CreateAccount(ctx, model.NewAccount{ID: 3}); !errors.Is(err, domainErrors.ErrDuplicateAccount) {
		t.Fatalf("expected duplicate, got %v", err)
	}
}

func TestBalanceOfUnknownAccountIsZero(t *testing.T) {
	f := newFixture()
	if b := f.balance(t, 12345); !b.IsZero() {
		t.Fatalf("expected zero, got %s", b)
	}
	if _, err := f.ledger.Account(context.Background(), 12345); !errors.Is(err, domainErrors.ErrAccountNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestApplyValidationAndNegativeBalance(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.open(t, 1, nil)

	if _, err := f.ledger.Apply(ctx, 1, decimal.NewFromInt(-1), model.TransactionKindCredit, "x"); !errors.Is(err, domainErrors.ErrInvalidAmount) {
		t.Fatalf("expected invalid amount, got %v", err)
	}
	if _, err := f.ledger.Apply(ctx, 1, decimal.RequireFromString("0.000000001"), model.TransactionKindCredit, "x"); !errors.Is(err, domainErrors.ErrInvalidAmount) {
		t.Fatalf("expected invalid amount beyond stored scale, got %v", err)
	}
	if _, err := f.ledger.Apply(ctx, 1, decimal.NewFromInt(1), model.TransactionKind("refund"), "x"); !errors.Is(err, domainErrors.ErrInvalidAmount) {
		t.Fatalf("expected invalid kind, got %v", err)
	}
	if _, err := f.ledger.Apply(ctx, 2, decimal.NewFromInt(1), model.TransactionKindCredit, "x"); !errors.Is(err, domainErrors.ErrAccountNotFound) {
		t.Fatalf("expected account not found, got %v", err)
	}
	if _, err := f.ledger.Apply(ctx, 1, decimal.NewFromInt(1), model.TransactionKindDebit, "x"); !errors.Is(err, domainErrors.ErrNegativeBalance) {
		t.Fatalf("expected negative balance, got %v", err)
	}

	txs, _ := f.ledger.Transactions(ctx, 1)
	if len(txs) != 0 {
		t.Fatalf("rejected operations must not be logged, got %d", len(txs))
	}
}

func TestBalanceEqualsTransactionSum(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.open(t, 1, nil)
	f.open(t, 2, ptr(1))

	f.credit(t, 2, "3.00")
	f.credit(t, 2, "0.05")
	if _, err := f.ledger.Apply(ctx, 2, decimal.RequireFromString("1.20"), model.TransactionKindDebit, "manual"); err != nil {
		t.Fatalf("debit: %v", err)
	}
	if _, err := f.withdrawals.Request(ctx, 2, "+1", decimal.RequireFromString("1.00")); err != nil {
		t.Fatalf("withdraw: %v", err)
	}
	pending, err := f.submissions.Submit(ctx, 2, model.Payload{Identifier: "a", Secret: "b", Recovery: "c"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := f.submissions.Approve(ctx, pending.ID); err != nil {
		t.Fatalf("approve: %v", err)
	}

	f.assertLedgerConsistent(t, 1)
	f.assertLedgerConsistent(t, 2)
	if b := f.balance(t, 2); !b.Equal(decimal.RequireFromString("0.90")) {
		t.Fatalf("expected 0.90, got %s", b)
	}

	txs, _ := f.ledger.Transactions(ctx, 2)
	for i := 1; i < len(txs); i++ {
		if txs[i].ID <= txs[i-1].ID || txs[i].CreatedAt.Before(txs[i-1].CreatedAt) {
			t.Fatal("transactions must be listed in insertion order")
		}
	}
}

func TestRandomOperationsKeepLedgerConsistent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	accounts := []int64{1, 2, 3, 4}
	f.open(t, 1, nil)
	f.open(t, 2, ptr(1))
	f.open(t, 3, ptr(1))
	f.open(t, 4, ptr(2))

	var pending []int64
	for i := 0; i < 300; i++ {
		id := accounts[testhelpers.RandomIntn(len(accounts))]
		switch testhelpers.RandomIntn(5) {
		case 0:
			f.credit(t, id, testhelpers.RandomAmount(300).String())
		case 1:
			_, err := f.ledger.Apply(ctx, id, testhelpers.RandomAmount(300), model.TransactionKindDebit, "manual")
			if err != nil && !errors.Is(err, domainErrors.ErrNegativeBalance) {
				t.Fatalf("debit: %v", err)
			}
		case 2:
			_, err := f.withdrawals.Request(ctx, id, "+1", testhelpers.RandomAmount(400))
			if err != nil && !errors.Is(err, domainErrors.ErrBelowMinimum) && !errors.Is(err, domainErrors.ErrInsufficientBalance) {
				t.Fatalf("withdraw: %v", err)
			}
		case 3:
			p, err := f.submissions.Submit(ctx, id, testhelpers.RandomPayload())
			if err != nil {
				t.Fatalf("submit: %v", err)
			}
			pending = append(pending, p.ID)
		case 4:
			if len(pending) == 0 {
				continue
			}
			k := testhelpers.RandomIntn(len(pending))
			if _, err := f.submissions.Approve(ctx, pending[k]); err != nil {
				t.Fatalf("approve: %v", err)
			}
			pending = append(pending[:k], pending[k+1:]...)
		}
	}

	for _, id := range accounts {
		f.assertLedgerConsistent(t, id)
		if f.balance(t, id).IsNegative() {
			t.Fatalf("account %d went negative", id)
		}
	}
}
