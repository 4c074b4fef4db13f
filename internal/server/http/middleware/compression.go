package middleware

import (
	"compress/gzip"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// DefaultMaxBodyBytes bounds a decompressed request body.
const DefaultMaxBodyBytes int64 = 1 << 20

// DecompressRequest unwraps gzip encoded request bodies, refusing bodies
// that inflate beyond limit bytes.
func DecompressRequest(limit int64) gin.HandlerFunc {
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}
	return func(c *gin.Context) {
		if !strings.Contains(c.GetHeader("Content-Encoding"), "gzip") {
			c.Next()
			return
		}

		original := c.Request.Body
		reader, err := gzip.NewReader(original)
		if err != nil {
			abort(c, http.StatusBadRequest, "malformed gzip body")
			return
		}
		defer reader.Close()
		defer original.Close()

		c.Request.Body = http.MaxBytesReader(c.Writer, reader, limit)
		c.Request.Header.Del("Content-Encoding")
		c.Request.ContentLength = -1
		c.Next()
	}
}
