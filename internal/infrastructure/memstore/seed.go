package memstore

import (
	"github.com/shopspring/decimal"

	"notifyservice/internal/domain/catalog"
	"notifyservice/internal/domain/customer"
	"notifyservice/internal/domain/order"
)

// SeedDemo loads a small fixed data set covering the demo flows: a gold
// customer with both channels on, a bronze customer who is not eligible for
// price alerts, a platinum customer with SMS-only order updates, a multi-item
// order and two carts sharing a product.
func SeedDemo() *Store {
	s := New()

	s.PutCustomer(customer.Customer{
		ID:      "cust-001",
		Name:    "Alice Johnson",
		Email:   "alice@example.com",
		Phone:   "+15550100",
		Segment: customer.SegmentGold,
	})
	s.PutCustomer(customer.Customer{
		ID:      "cust-002",
		Name:    "Bob Smith",
		Email:   "bob@example.com",
		Phone:   "+15550101",
		Segment: customer.SegmentBronze,
	})
	s.PutCustomer(customer.Customer{
		ID:      "cust-003",
		Name:    "Carol Diaz",
		Email:   "carol@example.com",
		Phone:   "+15550102",
		Segment: customer.SegmentPlatinum,
	})

	s.PutPreferences(customer.Preferences{
		CustomerID: "cust-001",
		ByCategory: map[string]customer.ChannelPreference{
			"order_updates":  {Email: true, SMS: true},
			"price_alerts":   {Email: true, SMS: false},
			"payment_alerts": {Email: true, SMS: true},
			"promotions":     {Email: true, SMS: false},
		},
	})
	s.PutPreferences(customer.Preferences{
		CustomerID: "cust-002",
		ByCategory: map[string]customer.ChannelPreference{
			"order_updates":  {Email: true, SMS: false},
			"price_alerts":   {Email: true, SMS: true},
			"payment_alerts": {Email: true, SMS: false},
		},
	})
	s.PutPreferences(customer.Preferences{
		CustomerID: "cust-003",
		ByCategory: map[string]customer.ChannelPreference{
			"order_updates":  {Email: false, SMS: true},
			"price_alerts":   {Email: true, SMS: true},
			"payment_alerts": {Email: true, SMS: true},
			"promotions":     {Email: false, SMS: false},
		},
	})

	s.PutProduct(catalog.Product{
		ID:       "prod-001",
		Name:     "Wireless Headphones",
		Price:    decimal.RequireFromString("199.99"),
		Category: "electronics",
	})
	s.PutProduct(catalog.Product{
		ID:       "prod-002",
		Name:     "Mechanical Keyboard",
		Price:    decimal.RequireFromString("129.50"),
		Category: "electronics",
	})

	s.PutOrder(order.Order{
		ID:         "ord-001",
		CustomerID: "cust-001",
		Status:     order.StatusProcessing,
		Items: []order.LineItem{
			{
				ID:        "ord-001-item-1",
				ProductID: "prod-001",
				Quantity:  1,
				UnitPrice: decimal.RequireFromString("199.99"),
				Status:    order.ItemStatusProcessing,
			},
			{
				ID:        "ord-001-item-2",
				ProductID: "prod-002",
				Quantity:  2,
				UnitPrice: decimal.RequireFromString("129.50"),
				Status:    order.ItemStatusProcessing,
			},
		},
		Total: decimal.RequireFromString("458.99"),
	})
	s.PutOrder(order.Order{
		ID:         "ord-002",
		CustomerID: "cust-003",
		Status:     order.StatusProcessing,
		Items: []order.LineItem{
			{
				ID:        "ord-002-item-1",
				ProductID: "prod-002",
				Quantity:  1,
				UnitPrice: decimal.RequireFromString("129.50"),
				Status:    order.ItemStatusProcessing,
			},
		},
		Total: decimal.RequireFromString("129.50"),
	})

	s.PutCart(catalog.Cart{
		CustomerID: "cust-001",
		Items:      []catalog.CartItem{{ProductID: "prod-002", Quantity: 1}},
	})
	s.PutCart(catalog.Cart{
		CustomerID: "cust-002",
		Items:      []catalog.CartItem{{ProductID: "prod-002", Quantity: 3}},
	})

	return s
}
