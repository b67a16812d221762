package dto

import "github.com/shopspring/decimal"

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error Error `json:"error"`
}

type ShipOrderRequest struct {
	OrderID string `json:"order_id" binding:"required"`
}

type ShipItemRequest struct {
	OrderID string `json:"order_id" binding:"required"`
	ItemID  string `json:"item_id" binding:"required"`
}

type UpdatePriceRequest struct {
	ProductID string          `json:"product_id" binding:"required"`
	NewPrice  decimal.Decimal `json:"new_price" binding:"required"`
}

type PaymentFailedRequest struct {
	OrderID string `json:"order_id" binding:"required"`
	Reason  string `json:"reason" binding:"required"`
	Attempt int    `json:"attempt"`
}

type LineItem struct {
	ItemID    string `json:"item_id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	Status    string `json:"status"`
}

type Order struct {
	OrderID     string     `json:"order_id"`
	CustomerID  string     `json:"customer_id"`
	Status      string     `json:"status"`
	Items       []LineItem `json:"items"`
	TotalAmount string     `json:"total_amount"`
}

type Product struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Category  string `json:"category"`
}

type PaymentFailedResponse struct {
	PaymentID string `json:"payment_id"`
	OrderID   string `json:"order_id"`
}

type SentMessage struct {
	Channel   string `json:"channel"`
	Recipient string `json:"recipient"`
	Subject   string `json:"subject,omitempty"`
	Body      string `json:"body"`
	SentAt    string `json:"sent_at"`
	OK        bool   `json:"ok"`
}

type SentMessagesResponse struct {
	Messages []SentMessage `json:"messages"`
	Count    int           `json:"count"`
}

type EventLogEntry struct {
	Kind       string `json:"kind"`
	EventID    string `json:"event_id"`
	OccurredAt string `json:"occurred_at"`
}

type EventLogResponse struct {
	Events []EventLogEntry `json:"events"`
}

type CompletionResponse struct {
	OrderID  string `json:"order_id"`
	Expected int    `json:"expected"`
	Observed int    `json:"observed"`
	Pending  int    `json:"pending"`
	Complete bool   `json:"complete"`
}
