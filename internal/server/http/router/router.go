package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/mailmart/internal/server/http/handlers"
	"github.com/polkiloo/mailmart/internal/server/http/middleware"
)

// Params are the dependencies of the HTTP router.
type Params struct {
	fx.In

	Facade handlers.MarketFacade
	BotKey middleware.BotKeyVerifier
	Health handlers.HealthChecker
	Logger *slog.Logger
}

// Setup configures gin router with handlers and middleware.
func Setup(p Params) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(p.Logger))
	engine.Use(middleware.DecompressRequest(middleware.DefaultMaxBodyBytes))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	accounts := handlers.NewAccountHandler(p.Facade)
	submissions := handlers.NewSubmissionHandler(p.Facade)
	withdrawals := handlers.NewWithdrawalHandler(p.Facade)
	admin := handlers.NewAdminHandler(p.Facade, p.Facade)

	api := engine.Group("/api")
	api.GET("/health", handlers.Health(p.Health))

	bot := api.Group("")
	bot.Use(middleware.BotKeyRequired(p.BotKey))
	bot.POST("/accounts", accounts.Create)
	bot.POST("/session", accounts.Session)

	user := api.Group("")
	user.Use(middleware.AuthRequired(p.Facade))
	user.GET("/account", accounts.Me)
	user.GET("/balance", accounts.Balance)
	user.GET("/transactions", accounts.Transactions)
	user.GET("/referrals", accounts.Referrals)
	user.POST("/submissions", submissions.Submit)
	user.GET("/items", submissions.Items)
	user.POST("/withdrawals", withdrawals.Withdraw)
	user.GET("/withdrawals", withdrawals.List)

	// Admin routes only need a token here; the facade rejects non-admin callers.
	adminGroup := user.Group("/admin")
	adminGroup.GET("/submissions", admin.Pending)
	adminGroup.POST("/submissions/:id/approve", admin.Approve)
	adminGroup.POST("/submissions/:id/reject", admin.Reject)
	adminGroup.GET("/withdrawals", admin.Withdrawals)

	return engine
}
