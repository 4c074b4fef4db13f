package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/polkiloo/mailmart/internal/di"
	"github.com/polkiloo/mailmart/internal/pkg/auth"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == hashBotKeyCommand {
		os.Exit(hashBotKey(os.Args[2:], os.Stdin, os.Stdout, os.Stderr, auth.NewBcryptHasher(0)))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := fx.New(
		fx.Provide(func() context.Context { return ctx }),
		fx.WithLogger(func(logger *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger}
		}),
		di.Module(),
	)

	run(ctx, app)
}
