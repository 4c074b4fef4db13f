package test

import (
	"context"
	"sync"

	"github.com/polkiloo/mailmart/internal/domain/model"
)

// NotifierStub records delivered events.
type NotifierStub struct {
	sync.Mutex
	Events   []model.Event
	NotifyFn func(context.Context, model.Event) error
}

// Notify records event and delegates to NotifyFn when set.
func (n *NotifierStub) Notify(ctx context.Context, event model.Event) error {
	var err error
	if n.NotifyFn != nil {
		err = n.NotifyFn(ctx, event)
	}
	n.Lock()
	defer n.Unlock()
	if err == nil {
		n.Events = append(n.Events, event)
	}
	return err
}

// Delivered returns a copy of delivered events.
func (n *NotifierStub) Delivered() []model.Event {
	n.Lock()
	defer n.Unlock()
	return append([]model.Event(nil), n.Events...)
}

// EventSinkStub collects enqueued events synchronously.
type EventSinkStub struct {
	sync.Mutex
	Events []model.Event
	Reject bool
}

// Enqueue stores the event unless Reject is set.
func (s *EventSinkStub) Enqueue(event model.Event) bool {
	if s.Reject {
		return false
	}
	s.Lock()
	defer s.Unlock()
	s.Events = append(s.Events, event)
	return true
}

// Kinds lists the kinds of enqueued events in order.
func (s *EventSinkStub) Kinds() []model.EventKind {
	s.Lock()
	defer s.Unlock()
	kinds := make([]model.EventKind, 0, len(s.Events))
	for _, e := range s.Events {
		kinds = append(kinds, e.Kind)
	}
	return kinds
}
