package async

import (
	"context"
	"time"

	"go.uber.org/zap"

	"notifyservice/internal/domain/event"
)

// Bus dispatches events to an inner bus on background workers. Each event
// kind gets its own single-worker pool, so events of one kind are handled
// in publish order while distinct kinds proceed concurrently.
type Bus struct {
	inner event.Bus
	pools map[event.Kind]*WorkerPool
	log   *zap.Logger
}

func NewBus(ctx context.Context, inner event.Bus, taskTimeout time.Duration, log *zap.Logger) *Bus {
	if log == nil {
		log = zap.NewNop()
	}
	pools := make(map[event.Kind]*WorkerPool, len(event.Kinds()))
	for _, k := range event.Kinds() {
		pools[k] = NewWorkerPool(ctx, 1, taskTimeout, log.With(zap.String("event_kind", string(k))))
	}
	return &Bus{inner: inner, pools: pools, log: log}
}

func (b *Bus) Subscribe(kind event.Kind, h event.Handler) (event.Subscription, error) {
	return b.inner.Subscribe(kind, h)
}

func (b *Bus) SubscribeAll(h event.Handler) event.Subscription {
	return b.inner.SubscribeAll(h)
}

// Publish hands the event off to the kind's worker and returns immediately.
// Handler outcomes are reported through the log, not the returned Result.
func (b *Bus) Publish(ctx context.Context, e event.Event) event.Result {
	pool, ok := b.pools[e.Kind()]
	if !ok {
		b.log.Warn("event dropped, unknown kind",
			zap.String("event_kind", string(e.Kind())),
			zap.String("event_id", e.EventID()),
		)
		return event.Result{}
	}

	pool.Submit(func(taskCtx context.Context) {
		res := b.inner.Publish(taskCtx, e)
		for _, he := range res.Errors {
			b.log.Error("async handler failed",
				zap.String("event_kind", string(he.Kind)),
				zap.String("event_id", e.EventID()),
				zap.Int("position", he.Position),
				zap.Error(he.Err),
			)
		}
	})

	return event.Result{}
}

// Close drains all kind workers. In-flight dispatches finish first.
func (b *Bus) Close() {
	for _, pool := range b.pools {
		pool.Shutdown()
	}
}
