package auth

import (
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/polkiloo/mailmart/internal/config"
)

func TestNewKeyHasher(t *testing.T) {
	hasher := newKeyHasher()
	bcryptHasher, ok := hasher.(*BcryptHasher)
	if !ok {
		t.Fatalf("expected *BcryptHasher, got %T", hasher)
	}
	if bcryptHasher.cost != bcrypt.DefaultCost {
		t.Fatalf("unexpected cost: %d", bcryptHasher.cost)
	}
}

func TestNewTokenStrategy(t *testing.T) {
	strategy := newTokenStrategy(strategyParams{Config: &config.Config{TokenSecret: "top-secret", TokenTTL: time.Hour}})
	hmacStrategy, ok := strategy.(*HMACStrategy)
	if !ok {
		t.Fatalf("expected *HMACStrategy, got %T", strategy)
	}
	if string(hmacStrategy.secret) != "top-secret" {
		t.Fatalf("unexpected secret: %q", string(hmacStrategy.secret))
	}
	if hmacStrategy.ttl != time.Hour {
		t.Fatalf("unexpected ttl: %s", hmacStrategy.ttl)
	}
}

func TestNewBotKeyVerifier(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)
	hash, _ := hasher.Hash("k")
	verifier := newBotKeyVerifier(hasher, &config.Config{BotKeyHash: hash})
	if err := verifier.Verify("k"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
