package catalog

import "github.com/shopspring/decimal"

type Product struct {
	ID       string
	Name     string
	Price    decimal.Decimal
	Category string
}

type CartItem struct {
	ProductID string
	Quantity  int
}

type Cart struct {
	CustomerID string
	Items      []CartItem
}

func (c Cart) Contains(productID string) bool {
	for _, it := range c.Items {
		if it.ProductID == productID {
			return true
		}
	}
	return false
}
