package test

import (
	"errors"

	pkgAuth "github.com/polkiloo/mailmart/internal/pkg/auth"
)

// HasherStub provides deterministic key hashing for tests.
type HasherStub struct {
	HashFn    func(string) (string, error)
	CompareFn func(string, string) error
}

// Hash returns a predictable hash for the supplied key.
func (h HasherStub) Hash(key string) (string, error) {
	if h.HashFn != nil {
		return h.HashFn(key)
	}
	return "hash:" + key, nil
}

// Compare validates key against stored hash.
func (h HasherStub) Compare(hash string, key string) error {
	if h.CompareFn != nil {
		return h.CompareFn(hash, key)
	}
	if hash != "hash:"+key {
		return errors.New("mismatch")
	}
	return nil
}

// StrategyStub issues and parses tokens via function overrides.
type StrategyStub struct {
	IssueFn func(int64) (string, error)
	ParseFn func(string) (int64, error)
	NameVal string
}

// IssueToken returns deterministic tokens for tests.
func (s StrategyStub) IssueToken(accountID int64) (string, error) {
	if s.IssueFn != nil {
		return s.IssueFn(accountID)
	}
	return "token", nil
}

// ParseToken parses previously issued token strings.
func (s StrategyStub) ParseToken(token string) (int64, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return 1, nil
}

// Name returns the strategy identifier used in tests.
func (s StrategyStub) Name() string {
	if s.NameVal != "" {
		return s.NameVal
	}
	return "stub"
}

// TokenParserStub implements the middleware token parsing contract.
type TokenParserStub struct {
	ID      int64
	Err     error
	ParseFn func(string) (int64, error)
}

// ParseToken either delegates to override or returns predefined result.
func (s TokenParserStub) ParseToken(token string) (int64, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	if s.Err != nil {
		return 0, s.Err
	}
	return s.ID, nil
}

// BotKeyVerifierStub accepts exactly Key.
type BotKeyVerifierStub struct {
	Key string
}

// Verify mimics pkgAuth.BotKeyVerifier.
func (s BotKeyVerifierStub) Verify(key string) error {
	if key == "" || key != s.Key {
		return pkgAuth.ErrInvalidBotKey
	}
	return nil
}

var _ pkgAuth.KeyHasher = HasherStub{}
var _ pkgAuth.Strategy = StrategyStub{}
