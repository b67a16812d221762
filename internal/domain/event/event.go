package event

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind identifies one of the closed set of domain event variants.
type Kind string

const (
	KindOrderStatusChanged    Kind = "OrderStatusChanged"
	KindLineItemStatusChanged Kind = "LineItemStatusChanged"
	KindPriceChanged          Kind = "PriceChanged"
	KindPaymentFailed         Kind = "PaymentFailed"
)

// Kinds returns every kind in the closed set, in a stable order.
func Kinds() []Kind {
	return []Kind{
		KindOrderStatusChanged,
		KindLineItemStatusChanged,
		KindPriceChanged,
		KindPaymentFailed,
	}
}

func (k Kind) Valid() bool {
	switch k {
	case KindOrderStatusChanged, KindLineItemStatusChanged, KindPriceChanged, KindPaymentFailed:
		return true
	}
	return false
}

// Event is an immutable record of something that happened. Ownership passes
// from publisher to bus to subscribers; subscribers must treat payloads as
// read-only.
type Event interface {
	Kind() Kind
	EventID() string
	OccurredAt() time.Time
}

// Header carries the identity fields shared by every event kind.
type Header struct {
	ID string
	At time.Time
}

func NewHeader() Header {
	return Header{ID: uuid.NewString(), At: time.Now().UTC()}
}

func (h Header) EventID() string       { return h.ID }
func (h Header) OccurredAt() time.Time { return h.At }

// OrderStatusChanged is published when an order's overall status moves, e.g.
// PROCESSING -> SHIPPED. CustomerID is carried in the payload so subscribers
// do not need to look it up.
type OrderStatusChanged struct {
	Header
	OrderID        string
	CustomerID     string
	PreviousStatus string
	NewStatus      string
}

func (OrderStatusChanged) Kind() Kind { return KindOrderStatusChanged }

// LineItemStatusChanged is published when a single line item within an order
// moves state. Items of one order may ship at different times.
type LineItemStatusChanged struct {
	Header
	OrderID        string
	CustomerID     string
	LineItemID     string
	PreviousStatus string
	NewStatus      string
}

func (LineItemStatusChanged) Kind() Kind { return KindLineItemStatusChanged }

// PriceChanged carries both prices so subscribers can tell a drop from an
// increase without a catalog lookup.
type PriceChanged struct {
	Header
	ProductID   string
	ProductName string
	OldPrice    decimal.Decimal
	NewPrice    decimal.Decimal
}

func (PriceChanged) Kind() Kind { return KindPriceChanged }

type PaymentFailed struct {
	Header
	PaymentID  string
	OrderID    string
	CustomerID string
	Amount     decimal.Decimal
	Reason     string
	Attempt    int
}

func (PaymentFailed) Kind() Kind { return KindPaymentFailed }
