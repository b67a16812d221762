package notification

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"notifyservice/internal/domain/catalog"
	"notifyservice/internal/domain/correlation"
	"notifyservice/internal/domain/customer"
	"notifyservice/internal/domain/event"
	"notifyservice/internal/domain/order"
)

// Service is the sole consumer of bus events. It decides, per event, whether
// and how to notify, and hands each decision to the sender collaborator.
type Service interface {
	Start(bus event.Bus) error
	Stop()
}

type service struct {
	customers customer.Repository
	orders    order.Repository
	catalog   catalog.Repository
	sender    Sender
	renderer  Renderer
	tracker   *correlation.Tracker
	segments  map[customer.Segment]struct{}
	log       *zap.Logger

	mu   sync.Mutex
	subs []event.Subscription
}

func NewService(
	customers customer.Repository,
	orders order.Repository,
	catalog catalog.Repository,
	sender Sender,
	renderer Renderer,
	tracker *correlation.Tracker,
	log *zap.Logger,
) Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &service{
		customers: customers,
		orders:    orders,
		catalog:   catalog,
		sender:    sender,
		renderer:  renderer,
		tracker:   tracker,
		segments:  PriceAlertSegments(),
		log:       log,
	}
}

// Start subscribes the service to every event kind it reacts to. A failed
// subscription unwinds the ones already made and is returned to the caller.
func (s *service) Start(bus event.Bus) error {
	bindings := []struct {
		kind event.Kind
		h    event.Handler
	}{
		{event.KindOrderStatusChanged, s.onOrderStatusChanged},
		{event.KindLineItemStatusChanged, s.onLineItemStatusChanged},
		{event.KindPriceChanged, s.onPriceChanged},
		{event.KindPaymentFailed, s.onPaymentFailed},
	}

	subs := make([]event.Subscription, 0, len(bindings))
	for _, b := range bindings {
		sub, err := bus.Subscribe(b.kind, b.h)
		if err != nil {
			for _, prev := range subs {
				prev.Cancel()
			}
			return fmt.Errorf("subscribe %s: %w", b.kind, err)
		}
		subs = append(subs, sub)
	}

	s.mu.Lock()
	s.subs = subs
	s.mu.Unlock()
	s.log.Info("notification service started", zap.Int("subscriptions", len(subs)))
	return nil
}

func (s *service) Stop() {
	s.mu.Lock()
	subs := s.subs
	s.subs = nil
	s.mu.Unlock()

	for _, sub := range subs {
		sub.Cancel()
	}
}

func (s *service) onOrderStatusChanged(ctx context.Context, e event.Event) error {
	ev, ok := e.(event.OrderStatusChanged)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", e, e.Kind())
	}

	switch order.Status(ev.NewStatus) {
	case order.StatusShipped:
		s.notifyOrderStatus(ctx, ev.OrderID, ev.CustomerID, TemplateOrderShipped)
	case order.StatusDelivered:
		s.notifyOrderStatus(ctx, ev.OrderID, ev.CustomerID, TemplateOrderDelivered)
	}
	return nil
}

func (s *service) notifyOrderStatus(ctx context.Context, orderID, customerID string, tpl Template) {
	cust, prefs, ok := s.recipient(ctx, customerID)
	if !ok {
		return
	}

	out := s.deliver(ctx, cust, prefs, CategoryOrderUpdates, tpl, map[string]string{
		"customer_name": cust.Name,
		"order_id":      orderID,
	})
	s.logOutcome(string(tpl), out)
}

func (s *service) onPaymentFailed(ctx context.Context, e event.Event) error {
	ev, ok := e.(event.PaymentFailed)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", e, e.Kind())
	}

	cust, prefs, ok := s.recipient(ctx, ev.CustomerID)
	if !ok {
		return nil
	}

	out := s.deliver(ctx, cust, prefs, CategoryPaymentAlerts, TemplatePaymentFailed, map[string]string{
		"customer_name":  cust.Name,
		"order_id":       ev.OrderID,
		"amount":         ev.Amount.StringFixed(2),
		"failure_reason": ev.Reason,
	})
	s.logOutcome("payment_failed", out)
	return nil
}

// onPriceChanged implements the compound price-drop scenario: find every
// customer whose cart contains the product, then apply the three-part
// eligibility predicate per candidate in the order preference -> segment ->
// price actually dropped, short-circuiting on the first failure so a disabled
// preference costs no further lookups.
func (s *service) onPriceChanged(ctx context.Context, e event.Event) error {
	ev, ok := e.(event.PriceChanged)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", e, e.Kind())
	}

	carts, err := s.catalog.CartsContainingProduct(ctx, ev.ProductID)
	if err != nil {
		s.log.Warn("cart lookup failed",
			zap.String("product_id", ev.ProductID),
			zap.Error(err),
		)
		return nil
	}

	var out Outcome
	for _, cart := range carts {
		prefs, err := s.customers.GetPreferences(ctx, cart.CustomerID)
		if err != nil {
			s.log.Warn("preference lookup failed",
				zap.String("customer_id", cart.CustomerID),
				zap.Error(err),
			)
			continue
		}
		if len(EnabledChannels(prefs, CategoryPriceAlerts)) == 0 {
			continue
		}

		cust, err := s.customers.GetByID(ctx, cart.CustomerID)
		if err != nil {
			s.log.Warn("customer lookup failed",
				zap.String("customer_id", cart.CustomerID),
				zap.Error(err),
			)
			continue
		}
		if !SegmentEligible(cust.Segment, s.segments) {
			continue
		}
		if !PriceDropped(ev.OldPrice, ev.NewPrice) {
			continue
		}

		one := s.deliver(ctx, cust, prefs, CategoryPriceAlerts, TemplatePriceDropAlert, priceDropFields(cust, ev))
		out.Sent = append(out.Sent, one.Sent...)
		out.Failed = append(out.Failed, one.Failed...)
	}
	s.logOutcome("price_drop_alert", out)
	return nil
}

func priceDropFields(cust customer.Customer, ev event.PriceChanged) map[string]string {
	savings := ev.OldPrice.Sub(ev.NewPrice)
	discount := decimal.Zero
	if ev.OldPrice.IsPositive() {
		discount = savings.Div(ev.OldPrice).Mul(decimal.NewFromInt(100))
	}
	return map[string]string{
		"customer_name":    cust.Name,
		"product_name":     ev.ProductName,
		"old_price":        ev.OldPrice.StringFixed(2),
		"new_price":        ev.NewPrice.StringFixed(2),
		"savings":          savings.StringFixed(2),
		"discount_percent": discount.StringFixed(0),
	}
}

// onLineItemStatusChanged feeds the aggregate-completion scenario: every
// terminal line-item event is forwarded to the correlator together with the
// order's full expected item set. When the correlator signals completion, one
// order-complete notification goes out; the fired flag guarantees never more
// than one.
func (s *service) onLineItemStatusChanged(ctx context.Context, e event.Event) error {
	ev, ok := e.(event.LineItemStatusChanged)
	if !ok {
		return fmt.Errorf("unexpected payload %T for %s", e, e.Kind())
	}
	if !order.ItemStatus(ev.NewStatus).Terminal() {
		return nil
	}

	var expected []string
	itemCount := 0
	ord, err := s.orders.GetByID(ctx, ev.OrderID)
	if err != nil {
		// The expected set is unknowable right now; the tracker buffers the
		// observation until an order lookup succeeds.
		s.log.Warn("order lookup failed, holding line item observation",
			zap.String("order_id", ev.OrderID),
			zap.String("line_item_id", ev.LineItemID),
			zap.Error(err),
		)
	} else {
		expected = ord.ItemIDs()
		itemCount = len(ord.Items)
	}

	if !s.tracker.Observe(ev.OrderID, ev.LineItemID, expected, true) {
		return nil
	}

	cust, prefs, ok := s.recipient(ctx, ev.CustomerID)
	if !ok {
		return nil
	}
	out := s.deliver(ctx, cust, prefs, CategoryOrderUpdates, TemplateOrderComplete, map[string]string{
		"customer_name": cust.Name,
		"order_id":      ev.OrderID,
		"item_count":    strconv.Itoa(itemCount),
	})
	s.logOutcome("order_complete", out)
	return nil
}

// recipient fetches the customer and their preferences. Lookup failures are
// logged and mean "not eligible", never a handler error.
func (s *service) recipient(ctx context.Context, customerID string) (customer.Customer, customer.Preferences, bool) {
	cust, err := s.customers.GetByID(ctx, customerID)
	if err != nil {
		s.log.Warn("customer lookup failed",
			zap.String("customer_id", customerID),
			zap.Error(err),
		)
		return customer.Customer{}, customer.Preferences{}, false
	}
	prefs, err := s.customers.GetPreferences(ctx, customerID)
	if err != nil {
		s.log.Warn("preference lookup failed",
			zap.String("customer_id", customerID),
			zap.Error(err),
		)
		return customer.Customer{}, customer.Preferences{}, false
	}
	return cust, prefs, true
}

// deliver produces one decision per enabled channel and hands each to the
// sender. Render and send failures are isolated per decision.
func (s *service) deliver(
	ctx context.Context,
	cust customer.Customer,
	prefs customer.Preferences,
	cat Category,
	tpl Template,
	fields map[string]string,
) Outcome {
	var out Outcome
	for _, ch := range EnabledChannels(prefs, cat) {
		d := Decision{
			CustomerID: cust.ID,
			Channel:    ch,
			Address:    addressFor(cust, ch),
		}

		msg, err := s.renderer.Render(tpl, ch, fields)
		if err != nil {
			s.log.Error("render failed",
				zap.String("template", string(tpl)),
				zap.String("channel", string(ch)),
				zap.Error(err),
			)
			out.Failed = append(out.Failed, Failure{Decision: d, Err: err})
			continue
		}
		d.Subject = msg.Subject
		d.Body = msg.Body

		if err := s.sender.Send(ctx, ch, d.Address, d.Subject, d.Body); err != nil {
			s.log.Warn("send failed",
				zap.String("customer_id", cust.ID),
				zap.String("channel", string(ch)),
				zap.Error(err),
			)
			out.Failed = append(out.Failed, Failure{Decision: d, Err: err})
			continue
		}
		out.Sent = append(out.Sent, d)
	}
	return out
}

func addressFor(c customer.Customer, ch Channel) string {
	if ch == ChannelSMS {
		return c.Phone
	}
	return c.Email
}

func (s *service) logOutcome(scenario string, out Outcome) {
	if len(out.Sent) == 0 && len(out.Failed) == 0 {
		return
	}
	s.log.Info("notification dispatch",
		zap.String("scenario", scenario),
		zap.Int("sent", len(out.Sent)),
		zap.Int("failed", len(out.Failed)),
	)
}
