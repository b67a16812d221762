package catalog

import (
	"context"

	"github.com/shopspring/decimal"
)

type Repository interface {
	GetProduct(ctx context.Context, id string) (Product, error)
	UpdatePrice(ctx context.Context, id string, price decimal.Decimal) (Product, error)
	CartsContainingProduct(ctx context.Context, productID string) ([]Cart, error)
}
