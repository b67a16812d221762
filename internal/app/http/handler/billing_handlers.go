package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"notifyservice/internal/app/dto"
)

func (h *Handler) BillingPaymentFailed(c *gin.Context) {
	var body dto.PaymentFailedRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, "order_id and reason are required")
		return
	}

	paymentID, err := h.BillingSvc.RecordFailure(c.Request.Context(), body.OrderID, body.Reason, body.Attempt)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PaymentFailedResponse{
		PaymentID: paymentID,
		OrderID:   body.OrderID,
	})
}
