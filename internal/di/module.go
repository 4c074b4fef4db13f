package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/mailmart/internal/adapter/notify"
	"github.com/polkiloo/mailmart/internal/app"
	"github.com/polkiloo/mailmart/internal/config"
	"github.com/polkiloo/mailmart/internal/logger"
	"github.com/polkiloo/mailmart/internal/pkg/auth"
	"github.com/polkiloo/mailmart/internal/server/http/handlers"
	"github.com/polkiloo/mailmart/internal/server/http/middleware"
	"github.com/polkiloo/mailmart/internal/server/http/router"
	"github.com/polkiloo/mailmart/internal/storage/postgres"
	"github.com/polkiloo/mailmart/internal/usecase"
)

// Module composes the whole service. Extra options are appended last so
// tests can replace any dependency.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		notify.Module,
		usecase.Module,
		fx.Provide(
			func(f *app.MarketFacade) handlers.MarketFacade { return f },
			func(v *auth.BotKeyVerifier) middleware.BotKeyVerifier { return v },
			func(s *postgres.Storage) handlers.HealthChecker { return s },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
