package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/mailmart/internal/server/http/dto"
)

// Health handles GET /api/health.
func Health(checker HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := checker.HealthCheck(c.Request.Context()); err != nil {
			_ = c.Error(err)
			c.JSON(http.StatusServiceUnavailable, dto.ErrorResponse{Error: "storage unavailable"})
			return
		}
		c.Status(http.StatusOK)
	}
}
