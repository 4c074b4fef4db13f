package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/polkiloo/mailmart/internal/adapter/notify"
	"github.com/polkiloo/mailmart/internal/domain/model"
)

// Notifier delivers a single event.
type Notifier interface {
	Notify(ctx context.Context, event model.Event) error
}

// Dispatcher fans committed events out to a notifier from a bounded queue.
// Delivery is best effort: a full queue drops the event and a failed
// delivery is logged, never retried more than once.
type Dispatcher struct {
	notifier Notifier
	workers  int
	logger   *slog.Logger

	jobs    chan model.Event
	wg      sync.WaitGroup
	cancel  context.CancelFunc
	mu      sync.RWMutex
	started bool
	closed  bool
}

// NewDispatcher constructs the notification worker pool.
func NewDispatcher(notifier Notifier, workers, queueSize int, logger *slog.Logger) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = workers
	}
	return &Dispatcher{
		notifier: notifier,
		workers:  workers,
		logger:   logger,
		jobs:     make(chan model.Event, queueSize),
	}
}

// Start launches the workers. The context only carries values; the pool
// lives until Stop.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started || d.closed {
		return
	}
	d.started = true

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	d.cancel = cancel

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(runCtx)
	}
}

// Enqueue schedules an event without blocking the caller. It reports
// whether the event was accepted.
func (d *Dispatcher) Enqueue(event model.Event) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return false
	}

	select {
	case d.jobs <- event:
		return true
	default:
		d.logger.Warn("notification queue full, event dropped",
			slog.String("event_id", event.ID),
			slog.String("kind", string(event.Kind)),
		)
		return false
	}
}

// Stop closes the queue and waits for queued events to drain. When ctx
// expires first, in-flight deliveries are cancelled.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return nil
	}
	d.closed = true
	close(d.jobs)
	cancel := d.cancel
	d.mu.Unlock()

	if cancel == nil {
		return nil
	}

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		cancel()
		return nil
	case <-ctx.Done():
		cancel()
		<-done
		return ctx.Err()
	}
}

func (d *Dispatcher) worker(ctx context.Context) {
	defer d.wg.Done()
	for event := range d.jobs {
		d.deliver(ctx, event)
	}
}

func (d *Dispatcher) deliver(ctx context.Context, event model.Event) {
	err := d.notifier.Notify(ctx, event)

	var limited notify.TooManyRequestsError
	if errors.As(err, &limited) {
		d.logger.Warn("notification rate limited", slog.Duration("retry_after", limited.RetryAfter))
		timer := time.NewTimer(limited.RetryAfter)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
		err = d.notifier.Notify(ctx, event)
	}

	if err != nil {
		d.logger.Error("notification delivery failed",
			slog.String("event_id", event.ID),
			slog.String("kind", string(event.Kind)),
			slog.String("error", err.Error()),
		)
	}
}
