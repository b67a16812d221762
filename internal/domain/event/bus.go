package event

import (
	"context"
	"fmt"
)

// Handler processes one delivered event. A returned error is recorded in the
// publish result and logged; it never stops delivery to later handlers of the
// same event.
type Handler func(ctx context.Context, e Event) error

// HandlerError ties a handler failure to its position in the delivery order.
type HandlerError struct {
	Kind     Kind
	Position int
	Err      error
}

func (e HandlerError) Error() string {
	return fmt.Sprintf("handler %d for %s: %v", e.Position, e.Kind, e.Err)
}

func (e HandlerError) Unwrap() error { return e.Err }

// Result is the per-handler outcome of a single publish. Asynchronous bus
// implementations return an empty result and report outcomes through logs.
type Result struct {
	Delivered int
	Errors    []HandlerError
}

func (r Result) Failed() bool { return len(r.Errors) > 0 }

// Subscription is the handle returned by Subscribe. Cancel removes the
// binding; a cancel issued while a dispatch for the same kind is in flight
// takes effect only for subsequent publishes.
type Subscription interface {
	Cancel()
}

// Bus is the typed publish/subscribe registry. Delivery within a kind follows
// registration order; no ordering is guaranteed across kinds.
type Bus interface {
	// Subscribe registers a handler for an event kind. An unknown kind is a
	// configuration error and is returned immediately.
	Subscribe(kind Kind, h Handler) (Subscription, error)

	// SubscribeAll registers a handler invoked for every published event,
	// after the kind-specific handlers.
	SubscribeAll(h Handler) Subscription

	// Publish delivers the event to every handler subscribed to its kind.
	Publish(ctx context.Context, e Event) Result
}
