package templates

import (
	"fmt"
	"net/http"
	"strings"
	"sync"
	"text/template"

	"notifyservice/internal/domain"
	"notifyservice/internal/domain/notification"
)

// entry holds the parsed variants of one notification template. Email gets a
// subject and a longer body, SMS a single short body. Amounts arrive already
// formatted, so the templates only substitute strings.
type entry struct {
	emailSubject *template.Template
	emailBody    *template.Template
	smsBody      *template.Template
}

type source struct {
	emailSubject string
	emailBody    string
	smsBody      string
}

var sources = map[notification.Template]source{
	notification.TemplateOrderShipped: {
		emailSubject: "Your Order Has Shipped! - #{{.order_id}}",
		emailBody: `Hi {{.customer_name}},

Great news! Your order #{{.order_id}} has shipped and is on its way.

You can track your package using the carrier's tracking system.

Thanks for shopping with us!
`,
		smsBody: "Your order #{{.order_id}} has shipped! Track your package for delivery updates.",
	},
	notification.TemplateOrderDelivered: {
		emailSubject: "Your Order Has Been Delivered - #{{.order_id}}",
		emailBody: `Hi {{.customer_name}},

Your order #{{.order_id}} has been delivered!

We hope you love your purchase. If you have any questions or concerns, please don't hesitate to contact us.

Thanks for shopping with us!
`,
		smsBody: "Order #{{.order_id}} delivered! Thanks for shopping with us.",
	},
	notification.TemplateOrderComplete: {
		emailSubject: "All Items From Your Order Have Shipped! - #{{.order_id}}",
		emailBody: `Hi {{.customer_name}},

All items from your order #{{.order_id}} have now shipped!

All items are on their way to you. Thanks for your patience with items that shipped separately.

Thanks for shopping with us!
`,
		smsBody: "All {{.item_count}} items from order #{{.order_id}} have shipped! Your complete order is on the way.",
	},
	notification.TemplatePaymentFailed: {
		emailSubject: "Payment Issue - Action Required for Order #{{.order_id}}",
		emailBody: `Hi {{.customer_name}},

We were unable to process your payment of ${{.amount}} for order #{{.order_id}}.

Reason: {{.failure_reason}}

Please update your payment method or try again to avoid delays with your order.

If you need assistance, our support team is here to help.
`,
		smsBody: "Payment of ${{.amount}} failed for order #{{.order_id}}. Please update your payment method.",
	},
	notification.TemplatePriceDropAlert: {
		emailSubject: "Price Drop Alert: {{.product_name}} is now ${{.new_price}}!",
		emailBody: `Hi {{.customer_name}},

Great news! An item in your cart just dropped in price.

{{.product_name}}
Was: ${{.old_price}}
Now: ${{.new_price}}
You save: ${{.savings}} ({{.discount_percent}}% off)

Don't miss out - prices can change at any time!

Complete your purchase now to lock in this lower price.
`,
		smsBody: "{{.product_name}} in your cart dropped from ${{.old_price}} to ${{.new_price}}! Save ${{.savings}} now.",
	},
}

// Renderer renders notification templates. Parsing happens once, lazily, so
// constructing a Renderer is free and rendering is concurrency safe.
type Renderer struct {
	once    sync.Once
	entries map[notification.Template]entry
	initErr error
}

func New() *Renderer {
	return &Renderer{}
}

func (r *Renderer) init() {
	r.entries = make(map[notification.Template]entry, len(sources))
	for name, src := range sources {
		e := entry{}
		var err error
		if e.emailSubject, err = parse(string(name)+"/email_subject", src.emailSubject); err != nil {
			r.initErr = err
			return
		}
		if e.emailBody, err = parse(string(name)+"/email_body", src.emailBody); err != nil {
			r.initErr = err
			return
		}
		if e.smsBody, err = parse(string(name)+"/sms_body", src.smsBody); err != nil {
			r.initErr = err
			return
		}
		r.entries[name] = e
	}
}

func parse(name, text string) (*template.Template, error) {
	t, err := template.New(name).Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}
	return t, nil
}

func (r *Renderer) Render(tpl notification.Template, ch notification.Channel, fields map[string]string) (notification.Message, error) {
	r.once.Do(r.init)
	if r.initErr != nil {
		return notification.Message{}, r.initErr
	}

	e, ok := r.entries[tpl]
	if !ok {
		return notification.Message{}, &domain.DomainError{
			Code:       domain.ErrorCodeUnknownTemplate,
			Message:    fmt.Sprintf("unknown template %q", tpl),
			HTTPStatus: http.StatusBadRequest,
		}
	}

	switch ch {
	case notification.ChannelEmail:
		subject, err := render(e.emailSubject, fields)
		if err != nil {
			return notification.Message{}, err
		}
		body, err := render(e.emailBody, fields)
		if err != nil {
			return notification.Message{}, err
		}
		return notification.Message{Subject: subject, Body: body}, nil
	case notification.ChannelSMS:
		body, err := render(e.smsBody, fields)
		if err != nil {
			return notification.Message{}, err
		}
		return notification.Message{Body: body}, nil
	default:
		return notification.Message{}, &domain.DomainError{
			Code:       domain.ErrorCodeUnknownChannel,
			Message:    fmt.Sprintf("unknown channel %q", ch),
			HTTPStatus: http.StatusBadRequest,
		}
	}
}

func render(t *template.Template, fields map[string]string) (string, error) {
	var sb strings.Builder
	if err := t.Execute(&sb, fields); err != nil {
		return "", fmt.Errorf("render %s: %w", t.Name(), err)
	}
	return sb.String(), nil
}
