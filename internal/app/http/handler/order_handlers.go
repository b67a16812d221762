package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"notifyservice/internal/app/dto"
	"notifyservice/internal/domain/order"
)

func (h *Handler) OrderShip(c *gin.Context) {
	var body dto.ShipOrderRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, "order_id is required")
		return
	}

	res, err := h.OrderingSvc.ShipOrder(c.Request.Context(), body.OrderID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderDTO(res))
}

func (h *Handler) OrderShipItem(c *gin.Context) {
	var body dto.ShipItemRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, "order_id and item_id are required")
		return
	}

	res, err := h.OrderingSvc.ShipLineItem(c.Request.Context(), body.OrderID, body.ItemID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderDTO(res))
}

func (h *Handler) OrderCompletion(c *gin.Context) {
	orderID := c.Query("order_id")
	if orderID == "" {
		h.badRequest(c, "order_id is required")
		return
	}

	state, ok := h.Tracker.Snapshot(orderID)
	if !ok {
		c.JSON(http.StatusOK, dto.CompletionResponse{OrderID: orderID})
		return
	}
	c.JSON(http.StatusOK, dto.CompletionResponse{
		OrderID:  state.AggregateID,
		Expected: state.Expected,
		Observed: state.Observed,
		Pending:  state.Pending,
		Complete: state.Fired,
	})
}

func toOrderDTO(o order.Order) dto.Order {
	out := dto.Order{
		OrderID:     o.ID,
		CustomerID:  o.CustomerID,
		Status:      string(o.Status),
		Items:       make([]dto.LineItem, 0, len(o.Items)),
		TotalAmount: o.Total.StringFixed(2),
	}
	for _, it := range o.Items {
		out.Items = append(out.Items, dto.LineItem{
			ItemID:    it.ID,
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice.StringFixed(2),
			Status:    string(it.Status),
		})
	}
	return out
}
