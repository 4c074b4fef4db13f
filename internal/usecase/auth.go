package usecase

import (
	"context"

	domainErrors "github.com/polkiloo/mailmart/internal/domain/errors"
	"github.com/polkiloo/mailmart/internal/domain/model"
	pkgAuth "github.com/polkiloo/mailmart/internal/pkg/auth"
)

// AuthUseCase opens accounts on behalf of the front end and issues account tokens.
type AuthUseCase struct {
	ledger *LedgerUseCase
	tokens pkgAuth.Strategy
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(ledger *LedgerUseCase, strategy pkgAuth.Strategy) *AuthUseCase {
	return &AuthUseCase{ledger: ledger, tokens: strategy}
}

// Register opens the account and returns a token for it.
func (u *AuthUseCase) Register(ctx context.Context, account model.NewAccount) (*model.Account, string, error) {
	created, err := u.ledger.CreateAccount(ctx, account)
	if err != nil {
		return nil, "", err
	}

	token, err := u.tokens.IssueToken(created.ID)
	if err != nil {
		return nil, "", err
	}

	return created, token, nil
}

// Session issues a fresh token for an existing account.
func (u *AuthUseCase) Session(ctx context.Context, accountID int64) (string, error) {
	exists, err := u.ledger.Exists(ctx, accountID)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", domainErrors.ErrAccountNotFound
	}
	return u.tokens.IssueToken(accountID)
}

// ParseToken extracts the account id from token.
func (u *AuthUseCase) ParseToken(token string) (int64, error) {
	if token == "" {
		return 0, pkgAuth.ErrInvalidToken
	}
	return u.tokens.ParseToken(token)
}
