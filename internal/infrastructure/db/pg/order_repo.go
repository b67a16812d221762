package pg

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"notifyservice/internal/domain"
	"notifyservice/internal/domain/order"
)

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) GetByID(ctx context.Context, id string) (order.Order, error) {
	var o order.Order
	err := queryRow(ctx, r.db,
		`SELECT order_id, customer_id, status, total_amount
		   FROM orders
		  WHERE order_id = $1`,
		id,
	).Scan(&o.ID, &o.CustomerID, &o.Status, &o.Total)

	if errors.Is(err, sql.ErrNoRows) {
		return order.Order{}, &domain.DomainError{
			Code:       domain.ErrorCodeNotFound,
			Message:    "order not found",
			HTTPStatus: http.StatusNotFound,
		}
	}
	if err != nil {
		return order.Order{}, err
	}

	items, err := r.loadItems(ctx, id)
	if err != nil {
		return order.Order{}, err
	}
	o.Items = items
	return o, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status order.Status) (order.Order, error) {
	res, err := exec(ctx, r.db,
		`UPDATE orders SET status = $2 WHERE order_id = $1`,
		id, status,
	)
	if err != nil {
		return order.Order{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return order.Order{}, &domain.DomainError{
			Code:       domain.ErrorCodeNotFound,
			Message:    "order not found",
			HTTPStatus: http.StatusNotFound,
		}
	}
	return r.GetByID(ctx, id)
}

func (r *OrderRepository) UpdateItemStatus(ctx context.Context, orderID, itemID string, status order.ItemStatus) (order.Order, error) {
	res, err := exec(ctx, r.db,
		`UPDATE line_items SET status = $3
		  WHERE order_id = $1 AND item_id = $2`,
		orderID, itemID, status,
	)
	if err != nil {
		return order.Order{}, err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return order.Order{}, &domain.DomainError{
			Code:       domain.ErrorCodeNotFound,
			Message:    "line item not found",
			HTTPStatus: http.StatusNotFound,
		}
	}
	return r.GetByID(ctx, orderID)
}

func (r *OrderRepository) loadItems(ctx context.Context, orderID string) ([]order.LineItem, error) {
	rows, err := query(ctx, r.db,
		`SELECT item_id, product_id, quantity, unit_price, status
		   FROM line_items
		  WHERE order_id = $1
		  ORDER BY item_id`,
		orderID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []order.LineItem
	for rows.Next() {
		var it order.LineItem
		if err := rows.Scan(&it.ID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.Status); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
