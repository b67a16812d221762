package memstore

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/shopspring/decimal"

	"notifyservice/internal/domain"
	"notifyservice/internal/domain/catalog"
	"notifyservice/internal/domain/customer"
	"notifyservice/internal/domain/order"
)

// Store is the in-memory backing store used when no database is configured.
// It holds what would live in separate services in a real deployment:
// customers with their notification preferences, the product catalog, orders
// and shopping carts. Views returned by Customers, Orders and Catalog satisfy
// the corresponding domain repository interfaces.
type Store struct {
	mu        sync.RWMutex
	customers map[string]customer.Customer
	prefs     map[string]customer.Preferences
	products  map[string]catalog.Product
	orders    map[string]order.Order
	// carts is keyed by customer id, one cart per customer.
	carts map[string]catalog.Cart
}

func New() *Store {
	return &Store{
		customers: make(map[string]customer.Customer),
		prefs:     make(map[string]customer.Preferences),
		products:  make(map[string]catalog.Product),
		orders:    make(map[string]order.Order),
		carts:     make(map[string]catalog.Cart),
	}
}

// WithinTx satisfies domain.UnitOfWork. The store has no transactions, so fn
// simply runs in place.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (s *Store) PutCustomer(c customer.Customer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.customers[c.ID] = c
}

func (s *Store) PutPreferences(p customer.Preferences) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs[p.CustomerID] = p
}

func (s *Store) PutProduct(p catalog.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = p
}

func (s *Store) PutOrder(o order.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID] = o
}

func (s *Store) PutCart(c catalog.Cart) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[c.CustomerID] = c
}

func (s *Store) Customers() customer.Repository { return customerView{s} }
func (s *Store) Orders() order.Repository       { return orderView{s} }
func (s *Store) Catalog() catalog.Repository    { return catalogView{s} }

func notFound(what, id string) error {
	return &domain.DomainError{
		Code:       domain.ErrorCodeNotFound,
		Message:    fmt.Sprintf("%s %s not found", what, id),
		HTTPStatus: http.StatusNotFound,
	}
}

type customerView struct{ s *Store }

func (v customerView) GetByID(_ context.Context, id string) (customer.Customer, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	c, ok := v.s.customers[id]
	if !ok {
		return customer.Customer{}, notFound("customer", id)
	}
	return c, nil
}

func (v customerView) GetPreferences(_ context.Context, customerID string) (customer.Preferences, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	p, ok := v.s.prefs[customerID]
	if !ok {
		return customer.Preferences{}, notFound("preferences for customer", customerID)
	}
	return clonePreferences(p), nil
}

type orderView struct{ s *Store }

func (v orderView) GetByID(_ context.Context, id string) (order.Order, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	o, ok := v.s.orders[id]
	if !ok {
		return order.Order{}, notFound("order", id)
	}
	return cloneOrder(o), nil
}

func (v orderView) UpdateStatus(_ context.Context, id string, status order.Status) (order.Order, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	o, ok := v.s.orders[id]
	if !ok {
		return order.Order{}, notFound("order", id)
	}
	o.Status = status
	v.s.orders[id] = o
	return cloneOrder(o), nil
}

func (v orderView) UpdateItemStatus(_ context.Context, orderID, itemID string, status order.ItemStatus) (order.Order, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	o, ok := v.s.orders[orderID]
	if !ok {
		return order.Order{}, notFound("order", orderID)
	}

	items := make([]order.LineItem, len(o.Items))
	copy(items, o.Items)
	found := false
	for i := range items {
		if items[i].ID == itemID {
			items[i].Status = status
			found = true
			break
		}
	}
	if !found {
		return order.Order{}, notFound("line item", itemID)
	}
	o.Items = items
	v.s.orders[orderID] = o
	return cloneOrder(o), nil
}

type catalogView struct{ s *Store }

func (v catalogView) GetProduct(_ context.Context, id string) (catalog.Product, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	p, ok := v.s.products[id]
	if !ok {
		return catalog.Product{}, notFound("product", id)
	}
	return p, nil
}

func (v catalogView) UpdatePrice(_ context.Context, id string, price decimal.Decimal) (catalog.Product, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	p, ok := v.s.products[id]
	if !ok {
		return catalog.Product{}, notFound("product", id)
	}
	p.Price = price
	v.s.products[id] = p
	return p, nil
}

func (v catalogView) CartsContainingProduct(_ context.Context, productID string) ([]catalog.Cart, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	var out []catalog.Cart
	for _, c := range v.s.carts {
		if c.Contains(productID) {
			out = append(out, cloneCart(c))
		}
	}
	return out, nil
}

func clonePreferences(p customer.Preferences) customer.Preferences {
	byCat := make(map[string]customer.ChannelPreference, len(p.ByCategory))
	for k, v := range p.ByCategory {
		byCat[k] = v
	}
	p.ByCategory = byCat
	return p
}

func cloneOrder(o order.Order) order.Order {
	items := make([]order.LineItem, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	return o
}

func cloneCart(c catalog.Cart) catalog.Cart {
	items := make([]catalog.CartItem, len(c.Items))
	copy(items, c.Items)
	c.Items = items
	return c
}
