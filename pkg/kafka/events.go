package kafka

import (
	"context"

	"staybook/pkg/logger"
)

// Emitter is what domain services depend on. Emission is best effort: a
// failed publish is logged and never fails the request that caused it.
type Emitter interface {
	Emit(ctx context.Context, eventType, key string, payload any)
}

type EventEmitter struct {
	publisher Publisher
	source    string
	log       *logger.Logger
}

func NewEventEmitter(publisher Publisher, source string, log *logger.Logger) *EventEmitter {
	return &EventEmitter{
		publisher: publisher,
		source:    source,
		log:       log,
	}
}

type requestIDKey struct{}

// WithRequestID lets the HTTP layer stamp events with the request that
// produced them.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

func (e *EventEmitter) Emit(ctx context.Context, eventType, key string, payload any) {
	msg, err := NewMessage().
		WithKey(key).
		WithValue(payload).
		WithEventType(eventType).
		WithSource(e.source).
		WithHeader(HeaderRequestID, RequestIDFrom(ctx)).
		Build()
	if err != nil {
		e.log.Error("Failed to build event", "event_type", eventType, "key", key, "error", err)
		return
	}

	if err := e.publisher.Publish(ctx, msg); err != nil {
		e.log.Error("Failed to publish event",
			"event_type", eventType,
			"key", key,
			"event_id", msg.EventID(),
			"error", err,
		)
		return
	}
	e.log.Debug("Event published", "event_type", eventType, "key", key, "event_id", msg.EventID())
}

// NopEmitter discards events. Useful in tests.
type NopEmitter struct{}

func (NopEmitter) Emit(context.Context, string, string, any) {}
