package pricing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"notifyservice/internal/domain"
	"notifyservice/internal/domain/catalog"
	"notifyservice/internal/domain/event"
	"notifyservice/internal/domain/pricing"
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

type catalogRepoFake struct {
	products map[string]catalog.Product
}

func (r *catalogRepoFake) GetProduct(ctx context.Context, id string) (catalog.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return catalog.Product{}, &domain.DomainError{Code: domain.ErrorCodeNotFound, Message: "product not found", HTTPStatus: 404}
	}
	return p, nil
}

func (r *catalogRepoFake) UpdatePrice(ctx context.Context, id string, price decimal.Decimal) (catalog.Product, error) {
	p, err := r.GetProduct(ctx, id)
	if err != nil {
		return catalog.Product{}, err
	}
	p.Price = price
	r.products[id] = p
	return p, nil
}

func (r *catalogRepoFake) CartsContainingProduct(ctx context.Context, productID string) ([]catalog.Cart, error) {
	return nil, nil
}

func TestUpdatePrice_PublishesOldAndNewPrice(t *testing.T) {
	repo := &catalogRepoFake{products: map[string]catalog.Product{
		"prod-001": {ID: "prod-001", Name: "Wireless Headphones", Price: decimal.RequireFromString("149.99")},
	}}
	events := &busFake{}
	svc := pricing.NewService(uowStub{}, repo, events)

	p, err := svc.UpdatePrice(context.Background(), "prod-001", decimal.RequireFromString("119.99"))
	if err != nil {
		t.Fatalf("UpdatePrice: %v", err)
	}
	if !p.Price.Equal(decimal.RequireFromString("119.99")) {
		t.Fatalf("price not updated: %s", p.Price)
	}

	if len(events.events) != 1 {
		t.Fatalf("want 1 event, got %d", len(events.events))
	}
	ev := events.events[0].(event.PriceChanged)
	if !ev.OldPrice.Equal(decimal.RequireFromString("149.99")) || !ev.NewPrice.Equal(decimal.RequireFromString("119.99")) {
		t.Fatalf("event prices wrong: old=%s new=%s", ev.OldPrice, ev.NewPrice)
	}
}

func TestUpdatePrice_UnchangedPricePublishesNothing(t *testing.T) {
	repo := &catalogRepoFake{products: map[string]catalog.Product{
		"prod-001": {ID: "prod-001", Name: "Wireless Headphones", Price: decimal.RequireFromString("149.99")},
	}}
	events := &busFake{}
	svc := pricing.NewService(uowStub{}, repo, events)

	if _, err := svc.UpdatePrice(context.Background(), "prod-001", decimal.RequireFromString("149.99")); err != nil {
		t.Fatalf("UpdatePrice: %v", err)
	}
	if len(events.events) != 0 {
		t.Fatalf("unchanged price must not publish, got %d events", len(events.events))
	}
}

func TestUpdatePrice_UnknownProduct(t *testing.T) {
	repo := &catalogRepoFake{products: map[string]catalog.Product{}}
	svc := pricing.NewService(uowStub{}, repo, &busFake{})

	_, err := svc.UpdatePrice(context.Background(), "ghost", decimal.RequireFromString("10.00"))
	var de *domain.DomainError
	if !errors.As(err, &de) || de.Code != domain.ErrorCodeNotFound {
		t.Fatalf("want NOT_FOUND, got %v", err)
	}
}
