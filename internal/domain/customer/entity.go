package customer

type Segment string

const (
	SegmentBronze   Segment = "bronze"
	SegmentSilver   Segment = "silver"
	SegmentGold     Segment = "gold"
	SegmentPlatinum Segment = "platinum"
)

type Customer struct {
	ID      string
	Name    string
	Email   string
	Phone   string
	Segment Segment
}

// ChannelPreference is the per-channel opt-in for one notification category.
type ChannelPreference struct {
	Email bool
	SMS   bool
}

// Preferences maps notification categories (order_updates, price_alerts,
// payment_alerts, promotions) to channel opt-ins. Read-only from the
// notification core's perspective.
type Preferences struct {
	CustomerID string
	ByCategory map[string]ChannelPreference
}
