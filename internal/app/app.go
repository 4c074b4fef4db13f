package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/mailmart/internal/adapter/notify"
	"github.com/polkiloo/mailmart/internal/config"
	"github.com/polkiloo/mailmart/internal/usecase"
	"github.com/polkiloo/mailmart/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		newMarketFacade,
		newHTTPServer,
		newDispatcher,
	),
	fx.Invoke(registerLifecycle),
)

type facadeParams struct {
	fx.In

	Auth        *usecase.AuthUseCase
	Ledger      *usecase.LedgerUseCase
	Submissions *usecase.SubmissionUseCase
	Referrals   *usecase.ReferralUseCase
	Withdrawals *usecase.WithdrawalUseCase
	Dispatcher  *worker.Dispatcher
	Config      *config.Config
}

func newMarketFacade(p facadeParams) *MarketFacade {
	return NewMarketFacade(
		p.Auth,
		p.Ledger,
		p.Submissions,
		p.Referrals,
		p.Withdrawals,
		p.Dispatcher,
		p.Config.Rates(),
		p.Config.AdminID,
	)
}

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type dispatcherParams struct {
	fx.In

	Notifier notify.Notifier
	Config   *config.Config
	Logger   *slog.Logger
}

func newDispatcher(p dispatcherParams) *worker.Dispatcher {
	return worker.NewDispatcher(
		p.Notifier,
		p.Config.NotifyWorkers,
		p.Config.NotifyQueueSize,
		p.Logger,
	)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Dispatcher *worker.Dispatcher
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			p.Logger.Info("starting mailmart", slog.String("addr", p.Server.Addr))
			p.Dispatcher.Start(ctx)
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			// Stop accepting requests first so no new events arrive while the queue drains.
			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			if err := p.Dispatcher.Stop(shutdownCtx); err != nil {
				p.Logger.Warn("notification queue not drained", slog.String("error", err.Error()))
			}
			p.Logger.Info("mailmart stopped")
			return nil
		},
	})
}
