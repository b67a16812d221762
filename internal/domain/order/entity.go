package order

import "github.com/shopspring/decimal"

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusShipped    Status = "SHIPPED"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
)

type ItemStatus string

const (
	ItemStatusPending    ItemStatus = "PENDING"
	ItemStatusProcessing ItemStatus = "PROCESSING"
	ItemStatusShipped    ItemStatus = "SHIPPED"
	ItemStatusDelivered  ItemStatus = "DELIVERED"
	ItemStatusCancelled  ItemStatus = "CANCELLED"
)

// Terminal reports whether the item has reached the end of its fulfillment
// lifecycle.
func (s ItemStatus) Terminal() bool {
	return s == ItemStatusShipped || s == ItemStatusDelivered
}

type LineItem struct {
	ID        string
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
	Status    ItemStatus
}

type Order struct {
	ID         string
	CustomerID string
	Status     Status
	Items      []LineItem
	Total      decimal.Decimal
}

// ItemIDs returns the ids of every line item, the expected-child set used for
// completion tracking.
func (o Order) ItemIDs() []string {
	ids := make([]string, 0, len(o.Items))
	for _, it := range o.Items {
		ids = append(ids, it.ID)
	}
	return ids
}
