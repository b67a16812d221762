package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"notifyservice/internal/app/dto"
)

func (h *Handler) NotificationsSent(c *gin.Context) {
	sent := h.Hub.Sent()

	resp := dto.SentMessagesResponse{
		Messages: make([]dto.SentMessage, 0, len(sent)),
		Count:    len(sent),
	}
	for _, m := range sent {
		resp.Messages = append(resp.Messages, dto.SentMessage{
			Channel:   string(m.Channel),
			Recipient: m.Recipient,
			Subject:   m.Subject,
			Body:      m.Body,
			SentAt:    m.SentAt.Format(time.RFC3339),
			OK:        m.OK,
		})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) EventsRecent(c *gin.Context) {
	events := h.EventLog.Recent()

	resp := dto.EventLogResponse{Events: make([]dto.EventLogEntry, 0, len(events))}
	for _, e := range events {
		resp.Events = append(resp.Events, dto.EventLogEntry{
			Kind:       string(e.Kind()),
			EventID:    e.EventID(),
			OccurredAt: e.OccurredAt().Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
