package channels

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"notifyservice/internal/domain"
	"notifyservice/internal/domain/notification"
)

// SentMessage is one delivery attempt recorded by the hub, successful or not.
type SentMessage struct {
	Channel   notification.Channel
	Recipient string
	Subject   string
	Body      string
	SentAt    time.Time
	OK        bool
}

// Hub is the in-process sender. It records every delivery attempt and can be
// told to fail a channel, which stands in for a flaky downstream gateway.
type Hub struct {
	mu       sync.Mutex
	history  []SentMessage
	failures map[notification.Channel]error
	log      *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		failures: make(map[notification.Channel]error),
		log:      log,
	}
}

func (h *Hub) Send(ctx context.Context, ch notification.Channel, address, subject, body string) error {
	switch ch {
	case notification.ChannelEmail, notification.ChannelSMS:
	default:
		return &domain.DomainError{
			Code:       domain.ErrorCodeUnknownChannel,
			Message:    fmt.Sprintf("unknown channel %q", ch),
			HTTPStatus: http.StatusBadRequest,
		}
	}

	h.mu.Lock()
	err := h.failures[ch]
	h.history = append(h.history, SentMessage{
		Channel:   ch,
		Recipient: address,
		Subject:   subject,
		Body:      body,
		SentAt:    time.Now().UTC(),
		OK:        err == nil,
	})
	h.mu.Unlock()

	if err != nil {
		h.log.Warn("send failed",
			zap.String("channel", string(ch)),
			zap.String("recipient", address),
			zap.Error(err),
		)
		return err
	}

	h.log.Info("message sent",
		zap.String("channel", string(ch)),
		zap.String("recipient", address),
		zap.String("subject", subject),
	)
	return nil
}

// FailChannel makes every subsequent send on ch return err. Pass nil to
// restore the channel.
func (h *Hub) FailChannel(ch notification.Channel, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err == nil {
		delete(h.failures, ch)
		return
	}
	h.failures[ch] = err
}

// Sent returns a copy of the delivery history, oldest first.
func (h *Hub) Sent() []SentMessage {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]SentMessage, len(h.history))
	copy(out, h.history)
	return out
}

func (h *Hub) SentCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.history)
}

func (h *Hub) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.history = nil
}
