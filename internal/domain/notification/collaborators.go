package notification

import "context"

// Sender is the channel-sender collaborator. The core only selects channel
// and content; transport details (SMTP, SMS gateways) live behind this
// interface. Retry policy belongs to the implementation, not the core.
type Sender interface {
	Send(ctx context.Context, ch Channel, address, subject, body string) error
}

// Template names a renderable notification.
type Template string

const (
	TemplateOrderShipped   Template = "order_shipped"
	TemplateOrderDelivered Template = "order_delivered"
	TemplateOrderComplete  Template = "order_complete"
	TemplatePaymentFailed  Template = "payment_failed"
	TemplatePriceDropAlert Template = "price_drop_alert"
)

type Message struct {
	Subject string
	Body    string
}

// Renderer is the externally owned template renderer: a pure function from
// (template, channel, fields) to rendered content.
type Renderer interface {
	Render(tpl Template, ch Channel, fields map[string]string) (Message, error)
}
