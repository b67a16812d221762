package memstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"notifyservice/internal/domain/catalog"
	"notifyservice/internal/domain/customer"
	"notifyservice/internal/domain/order"
)

type customerFixture struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Segment string `json:"segment"`
}

type productFixture struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
}

type lineItemFixture struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Status    string          `json:"status"`
}

type orderFixture struct {
	ID          string            `json:"id"`
	CustomerID  string            `json:"customer_id"`
	Status      string            `json:"status"`
	LineItems   []lineItemFixture `json:"line_items"`
	TotalAmount decimal.Decimal   `json:"total_amount"`
}

type cartItemFixture struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type cartFixture struct {
	CustomerID string            `json:"customer_id"`
	Items      []cartItemFixture `json:"items"`
}

type channelPrefFixture struct {
	Email bool `json:"email"`
	SMS   bool `json:"sms"`
}

type preferencesFixture struct {
	CustomerID  string                        `json:"customer_id"`
	Preferences map[string]channelPrefFixture `json:"preferences"`
}

// LoadDir populates the store from JSON fixture files in dir. Missing files
// are skipped, so a fixture directory only needs the entities a scenario
// touches. Recognized files: customers.json, products.json, orders.json,
// carts.json, notification_preferences.json.
func (s *Store) LoadDir(dir string) error {
	var customers []customerFixture
	if err := loadJSON(filepath.Join(dir, "customers.json"), &customers); err != nil {
		return err
	}
	for _, c := range customers {
		s.PutCustomer(customer.Customer{
			ID:      c.ID,
			Name:    c.Name,
			Email:   c.Email,
			Phone:   c.Phone,
			Segment: customer.Segment(c.Segment),
		})
	}

	var products []productFixture
	if err := loadJSON(filepath.Join(dir, "products.json"), &products); err != nil {
		return err
	}
	for _, p := range products {
		s.PutProduct(catalog.Product{
			ID:       p.ID,
			Name:     p.Name,
			Price:    p.Price,
			Category: p.Category,
		})
	}

	var orders []orderFixture
	if err := loadJSON(filepath.Join(dir, "orders.json"), &orders); err != nil {
		return err
	}
	for _, o := range orders {
		items := make([]order.LineItem, 0, len(o.LineItems))
		for i, li := range o.LineItems {
			id := li.ID
			if id == "" {
				id = fmt.Sprintf("%s-item-%d", o.ID, i+1)
			}
			status := li.Status
			if status == "" {
				status = string(order.ItemStatusPending)
			}
			items = append(items, order.LineItem{
				ID:        id,
				ProductID: li.ProductID,
				Quantity:  li.Quantity,
				UnitPrice: li.UnitPrice,
				Status:    order.ItemStatus(status),
			})
		}
		status := o.Status
		if status == "" {
			status = string(order.StatusPending)
		}
		s.PutOrder(order.Order{
			ID:         o.ID,
			CustomerID: o.CustomerID,
			Status:     order.Status(status),
			Items:      items,
			Total:      o.TotalAmount,
		})
	}

	var carts []cartFixture
	if err := loadJSON(filepath.Join(dir, "carts.json"), &carts); err != nil {
		return err
	}
	for _, c := range carts {
		items := make([]catalog.CartItem, 0, len(c.Items))
		for _, it := range c.Items {
			items = append(items, catalog.CartItem{ProductID: it.ProductID, Quantity: it.Quantity})
		}
		s.PutCart(catalog.Cart{CustomerID: c.CustomerID, Items: items})
	}

	var prefs []preferencesFixture
	if err := loadJSON(filepath.Join(dir, "notification_preferences.json"), &prefs); err != nil {
		return err
	}
	for _, p := range prefs {
		byCat := make(map[string]customer.ChannelPreference, len(p.Preferences))
		for cat, cp := range p.Preferences {
			byCat[cat] = customer.ChannelPreference{Email: cp.Email, SMS: cp.SMS}
		}
		s.PutPreferences(customer.Preferences{CustomerID: p.CustomerID, ByCategory: byCat})
	}

	return nil
}

func loadJSON(path string, dst any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read fixture %s: %w", path, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return nil
}
