package inmem

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"go.uber.org/zap"

	"notifyservice/internal/domain"
	"notifyservice/internal/domain/event"
)

const DefaultLogSize = 128

// Bus is the synchronous in-process event bus. Delivery within a kind follows
// registration order; handler failures are isolated per handler. Publishes of
// the same kind are serialized by a per-kind mutex, unrelated kinds run
// concurrently.
//
// Dispatch runs over a snapshot of the subscriber list, so subscriptions and
// cancels issued from inside a handler take effect only for subsequent
// publishes of that kind.
type Bus struct {
	mu       sync.Mutex
	kinds    map[event.Kind]*kindSubs
	wildcard []*subscription
	recent   *ring
	log      *zap.Logger
}

type kindSubs struct {
	dispatchMu sync.Mutex
	handlers   []*subscription
}

type subscription struct {
	bus *Bus
	// kind is empty for wildcard subscriptions.
	kind event.Kind
	h    event.Handler
}

func (s *subscription) Cancel() {
	s.bus.remove(s)
}

func New(logSize int, log *zap.Logger) *Bus {
	if logSize <= 0 {
		logSize = DefaultLogSize
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Bus{
		kinds:  make(map[event.Kind]*kindSubs),
		recent: newRing(logSize),
		log:    log,
	}
}

func (b *Bus) Subscribe(kind event.Kind, h event.Handler) (event.Subscription, error) {
	if !kind.Valid() {
		return nil, &domain.DomainError{
			Code:       domain.ErrorCodeUnknownEventKind,
			Message:    fmt.Sprintf("unknown event kind %q", kind),
			HTTPStatus: http.StatusBadRequest,
		}
	}

	sub := &subscription{bus: b, kind: kind, h: h}

	b.mu.Lock()
	b.kind(kind).handlers = append(b.kind(kind).handlers, sub)
	b.mu.Unlock()
	return sub, nil
}

func (b *Bus) SubscribeAll(h event.Handler) event.Subscription {
	sub := &subscription{bus: b, h: h}

	b.mu.Lock()
	b.wildcard = append(b.wildcard, sub)
	b.mu.Unlock()
	return sub
}

func (b *Bus) Publish(ctx context.Context, e event.Event) event.Result {
	b.mu.Lock()
	ks := b.kind(e.Kind())
	b.mu.Unlock()

	ks.dispatchMu.Lock()
	defer ks.dispatchMu.Unlock()

	b.mu.Lock()
	snapshot := make([]*subscription, 0, len(ks.handlers)+len(b.wildcard))
	snapshot = append(snapshot, ks.handlers...)
	snapshot = append(snapshot, b.wildcard...)
	b.recent.add(e)
	b.mu.Unlock()

	var res event.Result
	for i, sub := range snapshot {
		res.Delivered++
		if err := b.call(ctx, sub.h, e); err != nil {
			b.log.Error("event handler failed",
				zap.String("kind", string(e.Kind())),
				zap.String("event_id", e.EventID()),
				zap.Int("position", i),
				zap.Error(err),
			)
			res.Errors = append(res.Errors, event.HandlerError{Kind: e.Kind(), Position: i, Err: err})
		}
	}

	if res.Delivered == 0 {
		b.log.Warn("no handlers for event kind", zap.String("kind", string(e.Kind())))
	}
	return res
}

// call isolates handler panics so one subscriber cannot take down the
// dispatch loop.
func (b *Bus) call(ctx context.Context, h event.Handler, e event.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return h(ctx, e)
}

// Recent returns the bounded log of the last published events, oldest first.
// Diagnostics only, not part of the delivery contract.
func (b *Bus) Recent() []event.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.recent.snapshot()
}

// SubscriberCount reports the number of kind-specific handlers.
func (b *Bus) SubscriberCount(kind event.Kind) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	if ks, ok := b.kinds[kind]; ok {
		return len(ks.handlers)
	}
	return 0
}

func (b *Bus) kind(k event.Kind) *kindSubs {
	ks, ok := b.kinds[k]
	if !ok {
		ks = &kindSubs{}
		b.kinds[k] = ks
	}
	return ks
}

func (b *Bus) remove(sub *subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if sub.kind == "" {
		b.wildcard = without(b.wildcard, sub)
		return
	}
	if ks, ok := b.kinds[sub.kind]; ok {
		ks.handlers = without(ks.handlers, sub)
	}
}

func without(subs []*subscription, target *subscription) []*subscription {
	out := subs[:0]
	for _, s := range subs {
		if s != target {
			out = append(out, s)
		}
	}
	return out
}

// ring is a fixed-capacity event log.
type ring struct {
	buf  []event.Event
	next int
	full bool
}

func newRing(size int) *ring {
	return &ring{buf: make([]event.Event, size)}
}

func (r *ring) add(e event.Event) {
	r.buf[r.next] = e
	r.next = (r.next + 1) % len(r.buf)
	if r.next == 0 {
		r.full = true
	}
}

func (r *ring) snapshot() []event.Event {
	if !r.full {
		out := make([]event.Event, r.next)
		copy(out, r.buf[:r.next])
		return out
	}
	out := make([]event.Event, 0, len(r.buf))
	out = append(out, r.buf[r.next:]...)
	out = append(out, r.buf[:r.next]...)
	return out
}
