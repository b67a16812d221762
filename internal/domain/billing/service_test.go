package billing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"notifyservice/internal/domain"
	"notifyservice/internal/domain/billing"
	"notifyservice/internal/domain/event"
	"notifyservice/internal/domain/order"
)

type uowStub struct{}

func (uowStub) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type busFake struct {
	events []event.Event
}

func (b *busFake) Subscribe(kind event.Kind, h event.Handler) (event.Subscription, error) {
	return nil, errors.New("not used")
}
func (b *busFake) SubscribeAll(h event.Handler) event.Subscription { return nil }
func (b *busFake) Publish(ctx context.Context, e event.Event) event.Result {
	b.events = append(b.events, e)
	return event.Result{Delivered: 1}
}

type orderRepoFake struct {
	byID map[string]order.Order
}

func (r *orderRepoFake) GetByID(ctx context.Context, id string) (order.Order, error) {
	o, ok := r.byID[id]
	if !ok {
		return order.Order{}, &domain.DomainError{Code: domain.ErrorCodeNotFound, Message: "order not found", HTTPStatus: 404}
	}
	return o, nil
}

func (r *orderRepoFake) UpdateStatus(ctx context.Context, id string, st order.Status) (order.Order, error) {
	return order.Order{}, errors.New("not used")
}

func (r *orderRepoFake) UpdateItemStatus(ctx context.Context, orderID, itemID string, st order.ItemStatus) (order.Order, error) {
	return order.Order{}, errors.New("not used")
}

func TestRecordFailure_PublishesPaymentFailed(t *testing.T) {
	orders := &orderRepoFake{byID: map[string]order.Order{
		"ord-001": {
			ID:         "ord-001",
			CustomerID: "cust-001",
			Status:     order.StatusProcessing,
			Total:      decimal.RequireFromString("458.99"),
		},
	}}
	events := &busFake{}
	svc := billing.NewService(uowStub{}, orders, events)

	paymentID, err := svc.RecordFailure(context.Background(), "ord-001", "card_declined", 2)
	if err != nil {
		t.Fatalf("record failure: %v", err)
	}
	if paymentID == "" {
		t.Fatal("payment id not generated")
	}

	if len(events.events) != 1 {
		t.Fatalf("published %d events, want 1", len(events.events))
	}
	ev, ok := events.events[0].(event.PaymentFailed)
	if !ok {
		t.Fatalf("unexpected event type %T", events.events[0])
	}
	if ev.PaymentID != paymentID || ev.OrderID != "ord-001" || ev.CustomerID != "cust-001" {
		t.Fatalf("unexpected event payload: %+v", ev)
	}
	if !ev.Amount.Equal(decimal.RequireFromString("458.99")) {
		t.Fatalf("amount = %s, want 458.99", ev.Amount)
	}
	if ev.Reason != "card_declined" || ev.Attempt != 2 {
		t.Fatalf("reason/attempt not carried: %+v", ev)
	}
}

func TestRecordFailure_UnknownOrder(t *testing.T) {
	orders := &orderRepoFake{byID: map[string]order.Order{}}
	events := &busFake{}
	svc := billing.NewService(uowStub{}, orders, events)

	_, err := svc.RecordFailure(context.Background(), "no-such-order", "card_declined", 1)
	var derr *domain.DomainError
	if !errors.As(err, &derr) || derr.Code != domain.ErrorCodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
	if len(events.events) != 0 {
		t.Fatalf("no event expected, got %d", len(events.events))
	}
}
