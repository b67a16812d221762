package pg

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"notifyservice/internal/domain"
	"notifyservice/internal/domain/customer"
)

type CustomerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

func (r *CustomerRepository) GetByID(ctx context.Context, id string) (customer.Customer, error) {
	var c customer.Customer
	err := queryRow(ctx, r.db,
		`SELECT customer_id, name, email, phone, segment
		   FROM customers
		  WHERE customer_id = $1`,
		id,
	).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Segment)

	if errors.Is(err, sql.ErrNoRows) {
		return customer.Customer{}, &domain.DomainError{
			Code:       domain.ErrorCodeNotFound,
			Message:    "customer not found",
			HTTPStatus: http.StatusNotFound,
		}
	}
	if err != nil {
		return customer.Customer{}, err
	}
	return c, nil
}

func (r *CustomerRepository) GetPreferences(ctx context.Context, customerID string) (customer.Preferences, error) {
	rows, err := query(ctx, r.db,
		`SELECT category, email_enabled, sms_enabled
		   FROM notification_preferences
		  WHERE customer_id = $1`,
		customerID,
	)
	if err != nil {
		return customer.Preferences{}, err
	}
	defer rows.Close()

	prefs := customer.Preferences{
		CustomerID: customerID,
		ByCategory: make(map[string]customer.ChannelPreference),
	}
	for rows.Next() {
		var (
			category string
			cp       customer.ChannelPreference
		)
		if err := rows.Scan(&category, &cp.Email, &cp.SMS); err != nil {
			return customer.Preferences{}, err
		}
		prefs.ByCategory[category] = cp
	}
	if err := rows.Err(); err != nil {
		return customer.Preferences{}, err
	}

	if len(prefs.ByCategory) == 0 {
		return customer.Preferences{}, &domain.DomainError{
			Code:       domain.ErrorCodeNotFound,
			Message:    "preferences not found",
			HTTPStatus: http.StatusNotFound,
		}
	}
	return prefs, nil
}
