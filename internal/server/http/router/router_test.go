package router

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/mailmart/internal/config"
	domainErrors "github.com/polkiloo/mailmart/internal/domain/errors"
	"github.com/polkiloo/mailmart/internal/domain/model"
	"github.com/polkiloo/mailmart/internal/server/http/dto"
	"github.com/polkiloo/mailmart/internal/server/http/handlers"
	"github.com/polkiloo/mailmart/internal/server/http/middleware"
	testhelpers "github.com/polkiloo/mailmart/internal/test"
)

const adminID int64 = 99

func newTestEngine(health error) *gin.Engine {
	gin.SetMode(gin.TestMode)
	facade := testhelpers.MarketFacadeStub{
		ParseFn: func(token string) (int64, error) {
			switch token {
			case "admin":
				return adminID, nil
			case "user":
				return 7, nil
			}
			return 0, errors.New("unexpected token")
		},
		PendingFn: func(_ context.Context, callerID int64) ([]model.PendingSubmission, error) {
			if callerID != adminID {
				return nil, domainErrors.ErrForbidden
			}
			return []model.PendingSubmission{{ID: 1, AccountID: 7}}, nil
		},
	}
	return Setup(Params{
		Facade: facade,
		BotKey: testhelpers.BotKeyVerifierStub{Key: "bot"},
		Health: testhelpers.HealthCheckerStub{Err: health},
		Logger: slog.New(slog.NewJSONHandler(io.Discard, nil)),
	})
}

func serve(engine *gin.Engine, method, path string, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	return resp
}

func TestSetupBotRoutes(t *testing.T) {
	engine := newTestEngine(nil)
	body, _ := json.Marshal(dto.CreateAccountRequest{ID: 7, Name: "bob"})

	resp := serve(engine, http.MethodPost, "/api/accounts", body, nil)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without bot key, got %d", resp.Code)
	}

	resp = serve(engine, http.MethodPost, "/api/accounts", body, map[string]string{middleware.BotKeyHeader: "bot"})
	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 for account creation, got %d", resp.Code)
	}

	session, _ := json.Marshal(dto.SessionRequest{ID: 7})
	resp = serve(engine, http.MethodPost, "/api/session", session, map[string]string{middleware.BotKeyHeader: "bot"})
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for session, got %d", resp.Code)
	}
}

func TestSetupAccountRoutes(t *testing.T) {
	engine := newTestEngine(nil)
	auth := map[string]string{"Authorization": "Bearer user"}

	cases := []struct {
		method string
		path   string
		body   string
		status int
	}{
		{http.MethodGet, "/api/account", "", http.StatusOK},
		{http.MethodGet, "/api/balance", "", http.StatusOK},
		{http.MethodGet, "/api/transactions", "", http.StatusOK},
		{http.MethodGet, "/api/referrals", "", http.StatusNoContent},
		{http.MethodGet, "/api/items", "", http.StatusNoContent},
		{http.MethodGet, "/api/withdrawals", "", http.StatusNoContent},
		{http.MethodPost, "/api/submissions", `{"identifier":"a","secret":"b","recovery":"c"}`, http.StatusCreated},
		{http.MethodPost, "/api/withdrawals", `{"destination":"+1","amount":"1.5"}`, http.StatusCreated},
	}
	for _, tc := range cases {
		var body []byte
		if tc.body != "" {
			body = []byte(tc.body)
		}
		resp := serve(engine, tc.method, tc.path, body, auth)
		if resp.Code != tc.status {
			t.Fatalf("%s %s: expected %d, got %d", tc.method, tc.path, tc.status, resp.Code)
		}
	}

	resp := serve(engine, http.MethodGet, "/api/balance", nil, nil)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", resp.Code)
	}
}

func TestSetupAdminRoutes(t *testing.T) {
	engine := newTestEngine(nil)

	resp := serve(engine, http.MethodGet, "/api/admin/submissions", nil, map[string]string{"Authorization": "Bearer user"})
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", resp.Code)
	}

	admin := map[string]string{"Authorization": "Bearer admin"}
	resp = serve(engine, http.MethodGet, "/api/admin/submissions", nil, admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin, got %d", resp.Code)
	}

	resp = serve(engine, http.MethodPost, "/api/admin/submissions/1/approve", nil, admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for approve, got %d", resp.Code)
	}

	resp = serve(engine, http.MethodPost, "/api/admin/submissions/1/reject", []byte(`{"reason":"dup"}`), admin)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for reject, got %d", resp.Code)
	}

	resp = serve(engine, http.MethodGet, "/api/admin/withdrawals", nil, admin)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for empty withdrawals, got %d", resp.Code)
	}
}

func TestSetupHealth(t *testing.T) {
	if resp := serve(newTestEngine(nil), http.MethodGet, "/api/health", nil, nil); resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if resp := serve(newTestEngine(errors.New("down")), http.MethodGet, "/api/health", nil, nil); resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
}

var _ handlers.MarketFacade = testhelpers.MarketFacadeStub{}

func TestSetModeFollowsLogLevel(t *testing.T) {
	t.Cleanup(func() { gin.SetMode(gin.TestMode) })

	setMode(&config.Config{LogLevel: "debug"})
	if gin.Mode() != gin.DebugMode {
		t.Fatalf("expected debug mode, got %s", gin.Mode())
	}
	setMode(&config.Config{LogLevel: "info"})
	if gin.Mode() != gin.ReleaseMode {
		t.Fatalf("expected release mode, got %s", gin.Mode())
	}
}

func TestSetupKeepsModeChosenByModule(t *testing.T) {
	t.Cleanup(func() { gin.SetMode(gin.TestMode) })

	setMode(&config.Config{LogLevel: "debug"})
	Setup(Params{
		Facade: testhelpers.MarketFacadeStub{},
		BotKey: testhelpers.BotKeyVerifierStub{Key: "bot"},
		Health: testhelpers.HealthCheckerStub{},
		Logger: slog.New(slog.NewJSONHandler(io.Discard, nil)),
	})
	if gin.Mode() != gin.DebugMode {
		t.Fatalf("expected debug mode to survive Setup, got %s", gin.Mode())
	}
}
