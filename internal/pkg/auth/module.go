package auth

import (
	"go.uber.org/fx"

	"github.com/polkiloo/mailmart/internal/config"
)

// Module provides authentication primitives via fx.
var Module = fx.Options(
	fx.Provide(newKeyHasher),
	fx.Provide(newTokenStrategy),
	fx.Provide(newBotKeyVerifier),
)

func newKeyHasher() KeyHasher {
	return NewBcryptHasher(0)
}

type strategyParams struct {
	fx.In

	Config *config.Config
}

func newTokenStrategy(p strategyParams) Strategy {
	return NewHMACStrategy(p.Config.TokenSecret, Options{TTL: p.Config.TokenTTL})
}

func newBotKeyVerifier(hasher KeyHasher, cfg *config.Config) *BotKeyVerifier {
	return NewBotKeyVerifier(hasher, cfg.BotKeyHash)
}
