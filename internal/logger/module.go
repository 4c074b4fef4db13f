package logger

import (
	"log/slog"

	"go.uber.org/fx"
)

// Module provides the JSON logger and installs it as slog's default so
// code logging through slog.Default shares the handler.
var Module = fx.Options(
	fx.Provide(New),
	fx.Invoke(slog.SetDefault),
)
