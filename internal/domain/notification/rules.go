package notification

import (
	"github.com/shopspring/decimal"

	"notifyservice/internal/domain/customer"
)

// Eligibility rules are pure predicates over already-fetched data: no I/O, no
// side effects. The service supplies the data and composes them.

// EnabledChannels returns the channels a customer opted into for a category,
// in a stable order. An unconfigured category means no channels.
func EnabledChannels(p customer.Preferences, cat Category) []Channel {
	cp, ok := p.ByCategory[string(cat)]
	if !ok {
		return nil
	}
	var out []Channel
	if cp.Email {
		out = append(out, ChannelEmail)
	}
	if cp.SMS {
		out = append(out, ChannelSMS)
	}
	return out
}

// SegmentEligible reports whether a customer segment is in the eligible set
// for a promotion class.
func SegmentEligible(seg customer.Segment, eligible map[customer.Segment]struct{}) bool {
	_, ok := eligible[seg]
	return ok
}

// PriceDropped is the scenario-specific condition for price alerts: the price
// actually went down.
func PriceDropped(old, new decimal.Decimal) bool {
	return new.LessThan(old)
}

// PriceAlertSegments is the segment set eligible for price drop alerts.
func PriceAlertSegments() map[customer.Segment]struct{} {
	return map[customer.Segment]struct{}{
		customer.SegmentGold:     {},
		customer.SegmentPlatinum: {},
	}
}
