package middleware

import (
	"bytes"
	"compress/gzip"
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	pkgAuth "github.com/polkiloo/mailmart/internal/pkg/auth"
	testhelpers "github.com/polkiloo/mailmart/internal/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAuthRequired(t *testing.T) {
	cases := []struct {
		name   string
		parser TokenParser
		header string
		status int
	}{
		{"missing token", testhelpers.TokenParserStub{}, "", http.StatusUnauthorized},
		{"not bearer", testhelpers.TokenParserStub{ID: 1}, "Basic abc", http.StatusUnauthorized},
		{"invalid token", testhelpers.TokenParserStub{Err: pkgAuth.ErrInvalidToken}, "Bearer token", http.StatusUnauthorized},
		{"parser failure", testhelpers.TokenParserStub{Err: context.DeadlineExceeded}, "Bearer token", http.StatusInternalServerError},
		{"valid", testhelpers.TokenParserStub{ID: 42}, "bearer token", http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var storedID int64
			router := gin.New()
			router.Use(AuthRequired(tc.parser))
			router.GET("/", func(c *gin.Context) {
				if v, ok := c.Get(AccountIDContextKey); ok {
					storedID = v.(int64)
				}
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp := httptest.NewRecorder()
			router.ServeHTTP(resp, req)

			if resp.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, resp.Code)
			}
			if tc.status == http.StatusOK && storedID != 42 {
				t.Fatalf("expected account id 42, got %d", storedID)
			}
			if tc.status != http.StatusOK && !strings.Contains(resp.Body.String(), `"error"`) {
				t.Fatalf("expected json error body, got %q", resp.Body.String())
			}
		})
	}
}

func TestBotKeyRequired(t *testing.T) {
	router := gin.New()
	router.Use(BotKeyRequired(testhelpers.BotKeyVerifierStub{Key: "secret"}))
	router.POST("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	cases := []struct {
		key    string
		status int
	}{
		{"", http.StatusUnauthorized},
		{"wrong", http.StatusUnauthorized},
		{"secret", http.StatusOK},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		if tc.key != "" {
			req.Header.Set(BotKeyHeader, tc.key)
		}
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != tc.status {
			t.Fatalf("key %q: expected %d, got %d", tc.key, tc.status, resp.Code)
		}
	}
}

func TestBotKeyRequiredWithBcryptVerifier(t *testing.T) {
	hasher := pkgAuth.NewBcryptHasher(4)
	hash, err := hasher.Hash("bot-key")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	router := gin.New()
	router.Use(BotKeyRequired(pkgAuth.NewBotKeyVerifier(hasher, hash)))
	router.POST("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.Header.Set(BotKeyHeader, "bot-key")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestSetAuthHeader(t *testing.T) {
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	SetAuthHeader(c, "token")
	if got := recorder.Header().Get("Authorization"); got != "Bearer token" {
		t.Fatalf("expected auth header, got %q", got)
	}
}

func TestExtractToken(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request, _ = http.NewRequest(http.MethodGet, "/", nil)
	if token := extractToken(c); token != "" {
		t.Fatalf("expected empty token, got %q", token)
	}

	c.Request.Header.Set("Authorization", "Bearer abc")
	if token := extractToken(c); token != "abc" {
		t.Fatalf("expected token from header, got %q", token)
	}

	c.Request.Header.Set("Authorization", "Bearer ")
	if token := extractToken(c); token != "" {
		t.Fatalf("expected empty token for bare scheme, got %q", token)
	}
}

func gzipped(t *testing.T, payload []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(payload); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	return buf.Bytes()
}

func TestDecompressRequest(t *testing.T) {
	router := gin.New()
	router.Use(DecompressRequest(0))
	var body string
	router.POST("/", func(c *gin.Context) {
		data, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		body = string(data)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(gzipped(t, []byte("payload"))))
	req.Header.Set("Content-Encoding", "gzip")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if body != "payload" {
		t.Fatalf("expected decompressed payload, got %q", body)
	}

	req = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("plain")))
	resp = httptest.NewRecorder()
	body = ""
	router.ServeHTTP(resp, req)
	if body != "plain" {
		t.Fatalf("expected plain body, got %q", body)
	}

	req = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("not gzip")))
	req.Header.Set("Content-Encoding", "gzip")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed gzip, got %d", resp.Code)
	}
}

func TestDecompressRequestLimit(t *testing.T) {
	router := gin.New()
	router.Use(DecompressRequest(8))
	router.POST("/", func(c *gin.Context) {
		if _, err := io.ReadAll(c.Request.Body); err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(gzipped(t, bytes.Repeat([]byte("a"), 64))))
	req.Header.Set("Content-Encoding", "gzip")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected oversized body to fail, got %d", resp.Code)
	}
}

func TestRequestLogger(t *testing.T) {
	var levels []slog.Level
	var accountLogged bool
	handler := slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
		if a.Key == slog.LevelKey {
			levels = append(levels, a.Value.Any().(slog.Level))
		}
		if a.Key == "account_id" && a.Value.Int64() == 7 {
			accountLogged = true
		}
		return a
	}})

	router := gin.New()
	router.Use(RequestLogger(slog.New(handler)))
	router.GET("/ok", func(c *gin.Context) {
		c.Set(AccountIDContextKey, int64(7))
		c.Status(http.StatusOK)
	})
	router.GET("/fail", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/fail", nil))

	if len(levels) != 2 || levels[0] != slog.LevelInfo || levels[1] != slog.LevelError {
		t.Fatalf("unexpected log levels %v", levels)
	}
	if !accountLogged {
		t.Fatal("expected account id to be logged")
	}
}
