package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	pkgAuth "github.com/polkiloo/mailmart/internal/pkg/auth"
	"github.com/polkiloo/mailmart/internal/server/http/dto"
)

const (
	// AccountIDContextKey is a gin context key for the authenticated account.
	AccountIDContextKey = "accountID"
	// BotKeyHeader carries the shared key of the chat front end.
	BotKeyHeader = "X-Bot-Key"
)

// TokenParser resolves an account token.
type TokenParser interface {
	ParseToken(token string) (int64, error)
}

// BotKeyVerifier checks the front end's shared key.
type BotKeyVerifier interface {
	Verify(key string) error
}

// AuthRequired ensures the request carries a valid account token.
func AuthRequired(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			abort(c, http.StatusUnauthorized, "missing token")
			return
		}

		accountID, err := parser.ParseToken(token)
		if err != nil {
			if errors.Is(err, pkgAuth.ErrInvalidToken) {
				abort(c, http.StatusUnauthorized, "invalid token")
				return
			}
			abort(c, http.StatusInternalServerError, "internal error")
			return
		}

		c.Set(AccountIDContextKey, accountID)
		c.Next()
	}
}

// BotKeyRequired lets through only requests from the chat front end.
func BotKeyRequired(verifier BotKeyVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := verifier.Verify(c.GetHeader(BotKeyHeader)); err != nil {
			abort(c, http.StatusUnauthorized, "invalid bot key")
			return
		}
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}

// SetAuthHeader exposes the issued token to the caller.
func SetAuthHeader(c *gin.Context, token string) {
	c.Header("Authorization", "Bearer "+token)
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Error: message})
}
