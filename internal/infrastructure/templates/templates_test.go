package templates_test

import (
	"errors"
	"strings"
	"testing"

	"notifyservice/internal/domain"
	"notifyservice/internal/domain/notification"
	"notifyservice/internal/infrastructure/templates"
)

func TestRenderEmailOrderShipped(t *testing.T) {
	r := templates.New()

	msg, err := r.Render(notification.TemplateOrderShipped, notification.ChannelEmail, map[string]string{
		"order_id":      "ord-001",
		"customer_name": "Alice",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if msg.Subject != "Your Order Has Shipped! - #ord-001" {
		t.Fatalf("unexpected subject: %q", msg.Subject)
	}
	if !strings.Contains(msg.Body, "Hi Alice,") || !strings.Contains(msg.Body, "#ord-001") {
		t.Fatalf("unexpected body: %q", msg.Body)
	}
}

func TestRenderSMSHasNoSubject(t *testing.T) {
	r := templates.New()

	msg, err := r.Render(notification.TemplateOrderDelivered, notification.ChannelSMS, map[string]string{
		"order_id":      "ord-001",
		"customer_name": "Alice",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if msg.Subject != "" {
		t.Fatalf("sms must have empty subject, got %q", msg.Subject)
	}
	if !strings.Contains(msg.Body, "ord-001") {
		t.Fatalf("unexpected body: %q", msg.Body)
	}
}

func TestPaymentFailedIncludesReason(t *testing.T) {
	r := templates.New()

	msg, err := r.Render(notification.TemplatePaymentFailed, notification.ChannelEmail, map[string]string{
		"order_id":       "ord-002",
		"customer_name":  "Bob",
		"amount":         "149.99",
		"failure_reason": "card_declined",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(msg.Body, "Reason: card_declined") {
		t.Fatalf("body must carry the failure reason: %q", msg.Body)
	}
	if !strings.Contains(msg.Body, "$149.99") {
		t.Fatalf("body must carry the amount: %q", msg.Body)
	}
}

func TestPriceDropAlertFields(t *testing.T) {
	r := templates.New()

	msg, err := r.Render(notification.TemplatePriceDropAlert, notification.ChannelSMS, map[string]string{
		"product_name": "Laptop",
		"old_price":    "999.99",
		"new_price":    "899.99",
		"savings":      "100.00",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"Laptop", "$999.99", "$899.99", "$100.00"} {
		if !strings.Contains(msg.Body, want) {
			t.Fatalf("body missing %q: %q", want, msg.Body)
		}
	}
}

func TestUnknownTemplate(t *testing.T) {
	r := templates.New()

	_, err := r.Render(notification.Template("order_teleported"), notification.ChannelEmail, nil)
	var derr *domain.DomainError
	if !errors.As(err, &derr) || derr.Code != domain.ErrorCodeUnknownTemplate {
		t.Fatalf("expected UNKNOWN_TEMPLATE error, got %v", err)
	}
}

func TestUnknownChannel(t *testing.T) {
	r := templates.New()

	_, err := r.Render(notification.TemplateOrderShipped, notification.Channel("fax"), map[string]string{
		"order_id":      "ord-001",
		"customer_name": "Alice",
	})
	var derr *domain.DomainError
	if !errors.As(err, &derr) || derr.Code != domain.ErrorCodeUnknownChannel {
		t.Fatalf("expected UNKNOWN_CHANNEL error, got %v", err)
	}
}

func TestMissingFieldFails(t *testing.T) {
	r := templates.New()

	_, err := r.Render(notification.TemplateOrderShipped, notification.ChannelEmail, map[string]string{
		"order_id": "ord-001",
	})
	if err == nil {
		t.Fatal("expected error for missing customer_name")
	}
}
