package customer

import "context"

type Repository interface {
	GetByID(ctx context.Context, id string) (Customer, error)
	GetPreferences(ctx context.Context, customerID string) (Preferences, error)
}
