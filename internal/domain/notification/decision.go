package notification

type Channel string

const (
	ChannelEmail Channel = "email"
	ChannelSMS   Channel = "sms"
)

// Category groups notifications for preference lookups.
type Category string

const (
	CategoryOrderUpdates  Category = "order_updates"
	CategoryPriceAlerts   Category = "price_alerts"
	CategoryPaymentAlerts Category = "payment_alerts"
	CategoryPromotions    Category = "promotions"
)

// Decision is the ephemeral output of the service: one message to one
// customer on one channel. It is handed straight to the sender and never
// persisted.
type Decision struct {
	CustomerID string
	Channel    Channel
	Address    string
	Subject    string
	Body       string
}

// Failure records a per-decision send or render problem. Failures never abort
// the rest of a batch.
type Failure struct {
	Decision Decision
	Err      error
}

// Outcome aggregates what one event handling attempt actually did.
type Outcome struct {
	Sent   []Decision
	Failed []Failure
}
