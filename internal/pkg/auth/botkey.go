package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidBotKey = errors.New("invalid bot key")

// KeyHasher hashes and compares shared secrets.
type KeyHasher interface {
	Hash(key string) (string, error)
	Compare(hash string, key string) error
}

// BcryptHasher uses bcrypt to hash keys.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates BcryptHasher with provided cost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(key string) (string, error) {
	encoded, err := bcrypt.GenerateFromPassword([]byte(key), h.cost)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}

func (h *BcryptHasher) Compare(hash string, key string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(key))
}

// BotKeyVerifier checks the key presented by the chat front end against the
// configured bcrypt hash.
type BotKeyVerifier struct {
	hasher KeyHasher
	hash   string
}

// NewBotKeyVerifier constructs BotKeyVerifier.
func NewBotKeyVerifier(hasher KeyHasher, hash string) *BotKeyVerifier {
	return &BotKeyVerifier{hasher: hasher, hash: hash}
}

// Verify returns ErrInvalidBotKey unless key matches the configured hash.
func (v *BotKeyVerifier) Verify(key string) error {
	if key == "" || v.hash == "" {
		return ErrInvalidBotKey
	}
	if err := v.hasher.Compare(v.hash, key); err != nil {
		return ErrInvalidBotKey
	}
	return nil
}
