package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/polkiloo/mailmart/internal/domain/model"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress      string
	DatabaseURI     string
	TokenSecret     string
	TokenTTL        time.Duration
	BotKeyHash      string
	AdminID         int64
	LogLevel        string
	ShutdownTimeout time.Duration

	UnitPayout    decimal.Decimal
	ReferralRate  decimal.Decimal
	MinWithdrawal decimal.Decimal
	DisplayRate   decimal.Decimal

	NotifyWebhookURL string
	RedisAddr        string
	RedisPassword    string
	RedisChannel     string
	NotifyWorkers    int
	NotifyQueueSize  int
}

const (
	defaultRunAddress      = ":8080"
	defaultTokenSecret     = "change-me-in-production"
	defaultLogLevel        = "info"
	defaultShutdownTimeout = 10 * time.Second
	defaultTokenTTL        = 24 * time.Hour
	defaultUnitPayout      = "0.05"
	defaultReferralRate    = "0.05"
	defaultMinWithdrawal   = "1.00"
	defaultDisplayRate     = "110"
	defaultRedisChannel    = "mailmart_events"
	defaultNotifyWorkers   = 2
	defaultNotifyQueueSize = 64
)

// Load parses configuration from .env, flags and environment variables.
func Load() (*Config, error) {
	// A missing .env file is normal outside local development.
	_ = godotenv.Load()
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:       getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:      getString(lookup, "DATABASE_URI", ""),
		TokenSecret:      getString(lookup, "TOKEN_SECRET", defaultTokenSecret),
		TokenTTL:         getDuration(lookup, "TOKEN_TTL", defaultTokenTTL),
		BotKeyHash:       getString(lookup, "BOT_KEY_HASH", ""),
		AdminID:          getInt64(lookup, "ADMIN_ID", 0),
		LogLevel:         getString(lookup, "LOG_LEVEL", defaultLogLevel),
		ShutdownTimeout:  getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		NotifyWebhookURL: getString(lookup, "NOTIFY_WEBHOOK_URL", ""),
		RedisAddr:        getString(lookup, "REDIS_ADDR", ""),
		RedisPassword:    getString(lookup, "REDIS_PASSWORD", ""),
		RedisChannel:     getString(lookup, "REDIS_CHANNEL", defaultRedisChannel),
		NotifyWorkers:    getInt(lookup, "NOTIFY_WORKERS", defaultNotifyWorkers),
		NotifyQueueSize:  getInt(lookup, "NOTIFY_QUEUE_SIZE", defaultNotifyQueueSize),
	}

	fs := flag.NewFlagSet("mailmart", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		tokenTTLStr        = cfg.TokenTTL.String()
		unitPayoutStr      = getString(lookup, "UNIT_PAYOUT", defaultUnitPayout)
		referralRateStr    = getString(lookup, "REFERRAL_RATE", defaultReferralRate)
		minWithdrawalStr   = getString(lookup, "MIN_WITHDRAWAL", defaultMinWithdrawal)
		displayRateStr     = getString(lookup, "DISPLAY_RATE", defaultDisplayRate)
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.NotifyWebhookURL, "n", cfg.NotifyWebhookURL, "Front-end webhook receiving notifications")
	fs.StringVar(&cfg.TokenSecret, "token-secret", cfg.TokenSecret, "Secret for signing account tokens")
	fs.StringVar(&tokenTTLStr, "token-ttl", tokenTTLStr, "Lifetime of issued account tokens")
	fs.StringVar(&cfg.BotKeyHash, "bot-key-hash", cfg.BotKeyHash, "bcrypt hash of the front-end bot key")
	fs.Int64Var(&cfg.AdminID, "admin-id", cfg.AdminID, "Account id of the admin principal")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&unitPayoutStr, "unit-payout", unitPayoutStr, "Credit per approved item")
	fs.StringVar(&referralRateStr, "referral-rate", referralRateStr, "Referral commission rate")
	fs.StringVar(&minWithdrawalStr, "min-withdrawal", minWithdrawalStr, "Minimum withdrawal amount")
	fs.StringVar(&displayRateStr, "display-rate", displayRateStr, "Display currency units per primary unit")
	fs.StringVar(&cfg.RedisAddr, "redis-addr", cfg.RedisAddr, "Redis address for event publishing")
	fs.StringVar(&cfg.RedisChannel, "redis-channel", cfg.RedisChannel, "Redis pub/sub channel")
	fs.IntVar(&cfg.NotifyWorkers, "notify-workers", cfg.NotifyWorkers, "Number of notification workers")
	fs.IntVar(&cfg.NotifyQueueSize, "notify-queue", cfg.NotifyQueueSize, "Notification queue capacity")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.TokenTTL, err = time.ParseDuration(tokenTTLStr); err != nil {
		return nil, fmt.Errorf("invalid token ttl: %w", err)
	}

	money := []struct {
		name  string
		raw   string
		value *decimal.Decimal
	}{
		{"unit payout", unitPayoutStr, &cfg.UnitPayout},
		{"referral rate", referralRateStr, &cfg.ReferralRate},
		{"min withdrawal", minWithdrawalStr, &cfg.MinWithdrawal},
		{"display rate", displayRateStr, &cfg.DisplayRate},
	}
	for _, m := range money {
		v, err := decimal.NewFromString(strings.TrimSpace(m.raw))
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", m.name, err)
		}
		if v.IsNegative() {
			return nil, fmt.Errorf("invalid %s: must not be negative", m.name)
		}
		*m.value = v
	}

	if !cfg.MinWithdrawal.IsPositive() {
		return nil, fmt.Errorf("invalid min withdrawal: must be positive")
	}

	for _, m := range money[:3] {
		if !model.FitsScale(*m.value) {
			return nil, fmt.Errorf("invalid %s: more than %d decimal places", m.name, model.MoneyScale)
		}
	}

	if secretFile, ok := lookup("TOKEN_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read token secret file: %w", err)
		}
		cfg.TokenSecret = strings.TrimSpace(string(content))
	}

	if cfg.NotifyWorkers <= 0 {
		cfg.NotifyWorkers = defaultNotifyWorkers
	}

	if cfg.NotifyQueueSize <= 0 {
		cfg.NotifyQueueSize = defaultNotifyQueueSize
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	if cfg.RedisChannel == "" {
		cfg.RedisChannel = defaultRedisChannel
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.BotKeyHash == "" {
		return nil, fmt.Errorf("bot key hash must be provided")
	}

	if cfg.AdminID <= 0 {
		return nil, fmt.Errorf("admin id must be provided")
	}

	return cfg, nil
}

// Rates returns the monetary constants configured for the marketplace.
func (c *Config) Rates() model.Rates {
	return model.Rates{
		UnitPayout:    c.UnitPayout,
		ReferralRate:  c.ReferralRate,
		MinWithdrawal: c.MinWithdrawal,
		DisplayRate:   c.DisplayRate,
	}
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getInt64(lookup envLookup, key string, def int64) int64 {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
