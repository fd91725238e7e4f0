package controllers

import (
	"net/http"

	"github.com/Klimov-IS/Flowers-marketplace-sub001/middleware"
	"github.com/Klimov-IS/Flowers-marketplace-sub001/services"

	"github.com/gin-gonic/gin"
)

// OrderController handles HTTP requests for the seller's order feed.
type OrderController struct {
	orderService services.OrderService
	validator    *RequestValidator
}

// NewOrderController creates a new OrderController.
func NewOrderController(orderService services.OrderService, validator *RequestValidator) *OrderController {
	return &OrderController{orderService: orderService, validator: validator}
}

// ListOrders handles GET /dashboard/orders.
func (oc *OrderController) ListOrders(ctx *gin.Context) {
	sellerID, err := middleware.GetSellerID(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	page, err := oc.validator.ParsePage(ctx)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, svcErr := oc.orderService.List(ctx.Request.Context(), sellerID, ctx.Query("status"), page)
	if svcErr != nil {
		respondError(ctx, svcErr)
		return
	}

	ctx.JSON(http.StatusOK, view)
}
