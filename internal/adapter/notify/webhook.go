package notify

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/polkiloo/mailmart/internal/domain/model"
)

// TooManyRequestsError represents rate limiting signal from the front end.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// WebhookNotifier posts events as JSON to the front end's webhook.
type WebhookNotifier struct {
	endpoint   *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// NewWebhookNotifier creates webhook notifier with default timeout.
func NewWebhookNotifier(endpoint string, logger *slog.Logger) (*WebhookNotifier, error) {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse webhook url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("webhook url must be absolute")
	}
	return &WebhookNotifier{
		endpoint: parsed,
		logger:   logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Notify delivers one event. Any 2xx status counts as delivered.
func (n *WebhookNotifier) Notify(ctx context.Context, event model.Event) error {
	body, err := encode(event)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Event-ID", event.ID)

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return TooManyRequestsError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	default:
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		n.logger.Error("webhook delivery failed",
			slog.String("event_id", event.ID),
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(payload)),
		)
		return fmt.Errorf("webhook error: %s", resp.Status)
	}
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return 5 * time.Second
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return 5 * time.Second
}
