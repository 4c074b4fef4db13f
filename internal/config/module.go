package config

import (
	"go.uber.org/fx"

	"github.com/polkiloo/mailmart/internal/domain/model"
)

// Module exposes configuration loader and marketplace rates for fx graphs.
var Module = fx.Provide(
	Load,
	func(cfg *Config) model.Rates { return cfg.Rates() },
)
