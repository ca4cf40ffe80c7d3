package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"divyakart/services"
)

// OrderController serves the customer-facing order reads and cancellation.
type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

func (oc *OrderController) ListMine(c *gin.Context) {
	orders, err := oc.orders.ListByUser(c.Request.Context(), c.GetString("userId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"orders": orders})
}

func (oc *OrderController) GetMine(c *gin.Context) {
	order, err := oc.orders.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	phone := c.GetString("phoneNumber")
	if order.UserID != c.GetString("userId") && order.CustomerInfo.Phone != phone {
		respondServiceError(c, services.ErrNotOrderOwner)
		return
	}
	respondOK(c, gin.H{"order": order})
}

func (oc *OrderController) Cancel(c *gin.Context) {
	var input struct {
		Reason string `json:"reason"`
	}
	// The reason is optional; an empty body is fine.
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			respondError(c, http.StatusBadRequest, "invalid request body")
			return
		}
	}
	if input.Reason == "" {
		input.Reason = "cancelled by customer"
	}

	order, err := oc.orders.Cancel(c.Request.Context(), c.Param("id"), c.GetString("userId"), input.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"order": order})
}
