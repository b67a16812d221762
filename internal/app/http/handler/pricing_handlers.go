package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"notifyservice/internal/app/dto"
)

func (h *Handler) PricingUpdatePrice(c *gin.Context) {
	var body dto.UpdatePriceRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		h.badRequest(c, "product_id and new_price are required")
		return
	}
	if body.NewPrice.IsNegative() {
		h.badRequest(c, "new_price must not be negative")
		return
	}

	res, err := h.PricingSvc.UpdatePrice(c.Request.Context(), body.ProductID, body.NewPrice)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.Product{
		ProductID: res.ID,
		Name:      res.Name,
		Price:     res.Price.StringFixed(2),
		Category:  res.Category,
	})
}
