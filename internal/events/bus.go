// Package events carries domain events between services in-process and
// forwards them to external sinks.
package events

import (
	"context"
	"sync"
	"time"

	commonerrors "accelerator-workers/internal/common/errors"
	"accelerator-workers/internal/common/logger"

	"github.com/google/uuid"
)

const (
	TypeTemplateCreated      = "assessment.template_created"
	TypeQualificationChanged = "startup.qualification_changed"
)

type Event struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	OccurredAt time.Time   `json:"occurredAt"`
	Payload    interface{} `json:"payload"`
}

// Handler reacts to one event. A returned error fails the publish.
type Handler func(ctx context.Context, ev Event) error

// Sink forwards events outside the process. Failures are logged only.
type Sink interface {
	Send(ctx context.Context, ev Event) error
}

// Bus delivers events synchronously, in subscription order, on the
// publisher's goroutine.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	sinks    []Sink
	logger   logger.Logger
}

func NewBus(log logger.Logger, sinks ...Sink) *Bus {
	return &Bus{
		handlers: make(map[string][]Handler),
		sinks:    sinks,
		logger:   log,
	}
}

func (b *Bus) Subscribe(eventType string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], h)
}

// Publish runs every subscriber for eventType and then every sink. The first
// subscriber error stops delivery and is returned.
func (b *Bus) Publish(ctx context.Context, eventType string, payload interface{}) (Event, error) {
	ev := Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}

	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[eventType]...)
	b.mu.RUnlock()

	for _, h := range handlers {
		if err := h(ctx, ev); err != nil {
			if _, ok := commonerrors.As(err); ok {
				return ev, err
			}
			return ev, commonerrors.NewEventPublishFailedError(eventType, err)
		}
	}

	for _, sink := range b.sinks {
		if err := sink.Send(ctx, ev); err != nil {
			b.logger.Warn("event sink failed", map[string]interface{}{
				"eventId":   ev.ID,
				"eventType": eventType,
				"error":     err.Error(),
			})
		}
	}

	b.logger.Debug("event published", map[string]interface{}{
		"eventId":   ev.ID,
		"eventType": eventType,
		"handlers":  len(handlers),
	})
	return ev, nil
}
