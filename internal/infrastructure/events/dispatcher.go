// Package events delivers domain events raised by the menu aggregate to
// in-process subscribers: logs, metrics and an optional Redis channel.
package events

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/smartmeal/planner/internal/domain/shared"
	"github.com/smartmeal/planner/internal/ports/outbound"
	"go.uber.org/zap"
)

// Handler reacts to one published event
type Handler func(ctx context.Context, event shared.DomainEvent) error

// Dispatcher fans events out to the handlers subscribed to their name.
// Handlers run synchronously in subscription order.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	all      []Handler
	logger   *zap.Logger
}

var _ outbound.EventPublisher = (*Dispatcher)(nil)

// NewDispatcher creates an empty dispatcher
func NewDispatcher(logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		handlers: make(map[string][]Handler),
		logger:   logger.Named("events"),
	}
}

// Subscribe registers h for events named name
func (d *Dispatcher) Subscribe(name string, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[name] = append(d.handlers[name], h)
}

// SubscribeAll registers h for every event
func (d *Dispatcher) SubscribeAll(h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.all = append(d.all, h)
}

// Publish delivers every event to its handlers. A failing handler does not
// stop delivery; all failures are joined into the returned error.
func (d *Dispatcher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	var errs []error
	for _, event := range events {
		if event == nil {
			continue
		}
		for _, h := range d.handlersFor(event.EventName()) {
			if err := h(ctx, event); err != nil {
				d.logger.Warn("Event handler failed",
					zap.String("event", event.EventName()),
					zap.Error(err),
				)
				errs = append(errs, fmt.Errorf("%s: %w", event.EventName(), err))
			}
		}
	}
	return errors.Join(errs...)
}

func (d *Dispatcher) handlersFor(name string) []Handler {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]Handler, 0, len(d.all)+len(d.handlers[name]))
	out = append(out, d.all...)
	out = append(out, d.handlers[name]...)
	return out
}

// LoggingHandler writes every event to logger at info level
func LoggingHandler(logger *zap.Logger) Handler {
	return func(ctx context.Context, event shared.DomainEvent) error {
		logger.Info("Domain event",
			zap.String("event", event.EventName()),
			zap.Time("occurred_at", event.OccurredAt()),
			zap.Any("payload", event),
		)
		return nil
	}
}

// Counter records event occurrences
type Counter interface {
	ObserveEvent(name string)
}

// MetricsHandler counts every event by name
func MetricsHandler(c Counter) Handler {
	return func(ctx context.Context, event shared.DomainEvent) error {
		c.ObserveEvent(event.EventName())
		return nil
	}
}
