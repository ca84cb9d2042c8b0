package events

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
)

type subscription struct {
	id      uint64
	handler EventHandler
	types   []EventType
}

func (s subscription) wants(t EventType) bool {
	return len(s.types) == 0 || slices.Contains(s.types, t)
}

// InMemoryEventEmitter dispatches library events synchronously to the
// handlers registered on it, in registration order.
type InMemoryEventEmitter struct {
	mu     sync.RWMutex
	nextID uint64
	subs   []subscription
	logger *slog.Logger
}

var _ EventEmitter = (*InMemoryEventEmitter)(nil)

// NewInMemoryEventEmitter returns an emitter with no handlers.
func NewInMemoryEventEmitter(logger *slog.Logger) *InMemoryEventEmitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &InMemoryEventEmitter{logger: logger.With(slog.String("component", "event_emitter"))}
}

// RegisterHandler subscribes handler to the given event types, or to every
// event when none are given. The returned func removes the subscription.
func (e *InMemoryEventEmitter) RegisterHandler(handler EventHandler, types ...EventType) (unregister func()) {
	e.mu.Lock()
	e.nextID++
	id := e.nextID
	e.subs = append(e.subs, subscription{id: id, handler: handler, types: slices.Clone(types)})
	e.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			e.mu.Lock()
			defer e.mu.Unlock()
			e.subs = slices.DeleteFunc(e.subs, func(s subscription) bool { return s.id == id })
		})
	}
}

// HandlerCount returns the number of live subscriptions.
func (e *InMemoryEventEmitter) HandlerCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.subs)
}

// EmitEvent delivers event to every matching handler. Every handler runs
// even when an earlier one fails; the failures are joined. A panicking
// handler is reported as an error.
func (e *InMemoryEventEmitter) EmitEvent(ctx context.Context, event *LibraryEvent) error {
	e.mu.RLock()
	subs := slices.Clone(e.subs)
	e.mu.RUnlock()

	var errs []error
	for _, s := range subs {
		if !s.wants(event.Type) {
			continue
		}
		if err := dispatch(ctx, s.handler, event); err != nil {
			e.logger.Error("event handler failed",
				slog.String("event_type", string(event.Type)),
				slog.String("event_id", event.ID.String()),
				slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func dispatch(ctx context.Context, h EventHandler, event *LibraryEvent) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("event handler panic: %v", p)
		}
	}()
	return h.HandleEvent(ctx, event)
}
