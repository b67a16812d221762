package order

import "context"

type Repository interface {
	GetByID(ctx context.Context, id string) (Order, error)
	UpdateStatus(ctx context.Context, id string, status Status) (Order, error)
	UpdateItemStatus(ctx context.Context, orderID, itemID string, status ItemStatus) (Order, error)
}
