package httpapi

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"notifyservice/internal/app/http/handler"
	"notifyservice/internal/app/http/middleware"
)

func NewRouter(h *handler.Handler, log *zap.Logger) *gin.Engine {
	r := gin.New()

	r.Use(
		gin.Recovery(),
		middleware.ZapLogger(log),
		middleware.ZapRecovery(log),
	)

	r.GET("/health", h.Health)

	r.POST("/orders/ship", h.OrderShip)
	r.POST("/orders/shipItem", h.OrderShipItem)
	r.GET("/orders/completion", h.OrderCompletion)

	r.POST("/pricing/updatePrice", h.PricingUpdatePrice)

	r.POST("/billing/paymentFailed", h.BillingPaymentFailed)

	r.GET("/notifications/sent", h.NotificationsSent)
	r.GET("/events/recent", h.EventsRecent)

	return r
}
