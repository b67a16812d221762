package memstore_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"notifyservice/internal/domain"
	"notifyservice/internal/domain/order"
	"notifyservice/internal/infrastructure/memstore"
)

func TestViewsReturnSeededData(t *testing.T) {
	s := memstore.SeedDemo()
	ctx := context.Background()

	c, err := s.Customers().GetByID(ctx, "cust-001")
	if err != nil {
		t.Fatalf("get customer: %v", err)
	}
	if c.Name != "Alice Johnson" || c.Segment != "gold" {
		t.Fatalf("unexpected customer: %+v", c)
	}

	prefs, err := s.Customers().GetPreferences(ctx, "cust-003")
	if err != nil {
		t.Fatalf("get preferences: %v", err)
	}
	p, ok := prefs.ByCategory["order_updates"]
	if !ok || p.Email || !p.SMS {
		t.Fatalf("unexpected order_updates preference: %+v", p)
	}

	o, err := s.Orders().GetByID(ctx, "ord-001")
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if len(o.Items) != 2 || o.CustomerID != "cust-001" {
		t.Fatalf("unexpected order: %+v", o)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	s := memstore.New()

	_, err := s.Customers().GetByID(context.Background(), "nobody")
	var derr *domain.DomainError
	if !errors.As(err, &derr) || derr.Code != domain.ErrorCodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestUpdateItemStatus(t *testing.T) {
	s := memstore.SeedDemo()
	ctx := context.Background()

	o, err := s.Orders().UpdateItemStatus(ctx, "ord-001", "ord-001-item-1", order.ItemStatusShipped)
	if err != nil {
		t.Fatalf("update item: %v", err)
	}
	if o.Items[0].Status != order.ItemStatusShipped {
		t.Fatalf("item status not updated: %+v", o.Items[0])
	}
	if o.Items[1].Status != order.ItemStatusProcessing {
		t.Fatalf("other item must be untouched: %+v", o.Items[1])
	}

	_, err = s.Orders().UpdateItemStatus(ctx, "ord-001", "no-such-item", order.ItemStatusShipped)
	var derr *domain.DomainError
	if !errors.As(err, &derr) || derr.Code != domain.ErrorCodeNotFound {
		t.Fatalf("expected NOT_FOUND for unknown item, got %v", err)
	}
}

func TestReturnedOrderIsACopy(t *testing.T) {
	s := memstore.SeedDemo()
	ctx := context.Background()

	o, _ := s.Orders().GetByID(ctx, "ord-001")
	o.Items[0].Status = order.ItemStatusCancelled

	again, _ := s.Orders().GetByID(ctx, "ord-001")
	if again.Items[0].Status == order.ItemStatusCancelled {
		t.Fatal("mutation through returned order leaked into the store")
	}
}

func TestUpdatePrice(t *testing.T) {
	s := memstore.SeedDemo()
	ctx := context.Background()

	newPrice := decimal.RequireFromString("99.99")
	p, err := s.Catalog().UpdatePrice(ctx, "prod-002", newPrice)
	if err != nil {
		t.Fatalf("update price: %v", err)
	}
	if !p.Price.Equal(newPrice) {
		t.Fatalf("price = %s, want %s", p.Price, newPrice)
	}
}

func TestCartsContainingProduct(t *testing.T) {
	s := memstore.SeedDemo()

	carts, err := s.Catalog().CartsContainingProduct(context.Background(), "prod-002")
	if err != nil {
		t.Fatalf("carts lookup: %v", err)
	}
	if len(carts) != 2 {
		t.Fatalf("cart count = %d, want 2", len(carts))
	}

	carts, err = s.Catalog().CartsContainingProduct(context.Background(), "prod-001")
	if err != nil {
		t.Fatalf("carts lookup: %v", err)
	}
	if len(carts) != 0 {
		t.Fatalf("cart count = %d, want 0", len(carts))
	}
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatalf("write fixture: %v", err)
		}
	}

	write("customers.json", `[{"id":"c1","name":"Dana","email":"dana@example.com","phone":"+15550103","segment":"silver"}]`)
	write("products.json", `[{"id":"p1","name":"Mug","price":"12.50","category":"kitchen"}]`)
	write("orders.json", `[{"id":"o1","customer_id":"c1","status":"PROCESSING","total_amount":"25.00","line_items":[{"product_id":"p1","quantity":2,"unit_price":"12.50"}]}]`)
	write("notification_preferences.json", `[{"customer_id":"c1","preferences":{"order_updates":{"email":true,"sms":false}}}]`)

	s := memstore.New()
	if err := s.LoadDir(dir); err != nil {
		t.Fatalf("load: %v", err)
	}

	ctx := context.Background()
	o, err := s.Orders().GetByID(ctx, "o1")
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if len(o.Items) != 1 || o.Items[0].ID != "o1-item-1" || o.Items[0].Status != order.ItemStatusPending {
		t.Fatalf("unexpected items: %+v", o.Items)
	}

	prefs, err := s.Customers().GetPreferences(ctx, "c1")
	if err != nil {
		t.Fatalf("get preferences: %v", err)
	}
	if !prefs.ByCategory["order_updates"].Email {
		t.Fatalf("unexpected preferences: %+v", prefs)
	}

	// carts.json absent, lookups still work.
	carts, err := s.Catalog().CartsContainingProduct(ctx, "p1")
	if err != nil || len(carts) != 0 {
		t.Fatalf("carts = %v, err = %v", carts, err)
	}
}
