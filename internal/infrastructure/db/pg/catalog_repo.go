package pg

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"notifyservice/internal/domain"
	"notifyservice/internal/domain/catalog"
)

type CatalogRepository struct {
	db *sql.DB
}

func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) GetProduct(ctx context.Context, id string) (catalog.Product, error) {
	var p catalog.Product
	err := queryRow(ctx, r.db,
		`SELECT product_id, name, price, category
		   FROM products
		  WHERE product_id = $1`,
		id,
	).Scan(&p.ID, &p.Name, &p.Price, &p.Category)

	if errors.Is(err, sql.ErrNoRows) {
		return catalog.Product{}, &domain.DomainError{
			Code:       domain.ErrorCodeNotFound,
			Message:    "product not found",
			HTTPStatus: http.StatusNotFound,
		}
	}
	if err != nil {
		return catalog.Product{}, err
	}
	return p, nil
}

func (r *CatalogRepository) UpdatePrice(ctx context.Context, id string, price decimal.Decimal) (catalog.Product, error) {
	res, err := exec(ctx, r.db,
		`UPDATE products SET price = $2 WHERE product_id = $1`,
		id, price,
	)
	if err != nil {
		return catalog.Product{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return catalog.Product{}, &domain.DomainError{
			Code:       domain.ErrorCodeNotFound,
			Message:    "product not found",
			HTTPStatus: http.StatusNotFound,
		}
	}
	return r.GetProduct(ctx, id)
}

func (r *CatalogRepository) CartsContainingProduct(ctx context.Context, productID string) ([]catalog.Cart, error) {
	rows, err := query(ctx, r.db,
		`SELECT c.customer_id, ci.product_id, ci.quantity
		   FROM carts c
		   JOIN cart_items ci ON ci.cart_id = c.cart_id
		  WHERE c.customer_id IN (
		        SELECT c2.customer_id
		          FROM carts c2
		          JOIN cart_items ci2 ON ci2.cart_id = c2.cart_id
		         WHERE ci2.product_id = $1)
		  ORDER BY c.customer_id`,
		productID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var (
		carts   []catalog.Cart
		current *catalog.Cart
	)
	for rows.Next() {
		var (
			customerID string
			it         catalog.CartItem
		)
		if err := rows.Scan(&customerID, &it.ProductID, &it.Quantity); err != nil {
			return nil, err
		}
		if current == nil || current.CustomerID != customerID {
			carts = append(carts, catalog.Cart{CustomerID: customerID})
			current = &carts[len(carts)-1]
		}
		current.Items = append(current.Items, it)
	}
	return carts, rows.Err()
}
