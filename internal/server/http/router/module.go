package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/mailmart/internal/config"
	"github.com/polkiloo/mailmart/internal/logger"
)

// Module builds the gin engine serving the front-end API.
var Module = fx.Options(
	fx.Invoke(setMode),
	fx.Provide(Setup),
)

// setMode keeps gin's debug route dump out of production logs.
func setMode(cfg *config.Config) {
	if logger.ParseLevel(cfg.LogLevel) == slog.LevelDebug {
		gin.SetMode(gin.DebugMode)
		return
	}
	gin.SetMode(gin.ReleaseMode)
}
