package controllers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"divyakart/models"
	"divyakart/services"
	"divyakart/store"
)

func newOrderFixture(t *testing.T, phone string) (*gin.Engine, *services.OrderService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.NewMemoryStore()
	log := zaptest.NewLogger(t)
	users := services.NewUserService(st, log)
	notifications := services.NewNotificationService(st, log)
	orders := services.NewOrderService(st, &fakeGateway{}, users, notifications, log)
	oc := NewOrderController(orders)

	r := gin.New()
	grp := r.Group("/orders", asUser(phone))
	grp.GET("/:id", oc.GetMine)
	grp.POST("/:id/cancel", oc.Cancel)
	return r, orders
}

func TestGetOrderEnforcesOwnership(t *testing.T) {
	r, orders := newOrderFixture(t, "+910000000000")

	order, err := orders.Create(context.Background(), services.CreateOrderInput{
		UserID:       "+919876543210",
		CustomerInfo: shippingInfo(),
		Items:        []models.OrderItem{{ProductID: "p1", Name: "Brass Diya", Quantity: 1, Price: 500}},
	})
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodGet, "/orders/"+order.ID, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCancelOwnOrder(t *testing.T) {
	phone := "+919876543210"
	r, orders := newOrderFixture(t, phone)

	order, err := orders.Create(context.Background(), services.CreateOrderInput{
		UserID:       phone,
		CustomerInfo: shippingInfo(),
		Items:        []models.OrderItem{{ProductID: "p1", Name: "Brass Diya", Quantity: 1, Price: 500}},
	})
	require.NoError(t, err)

	w := postJSON(t, r, "/orders/"+order.ID+"/cancel", gin.H{"reason": "changed my mind"})
	require.Equal(t, http.StatusOK, w.Code)

	updated, err := orders.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, updated.Status)
	assert.Equal(t, "changed my mind", updated.CancellationReason)
}

func TestCancelWithoutBodyUsesDefaultReason(t *testing.T) {
	phone := "+919876543210"
	r, orders := newOrderFixture(t, phone)

	order, err := orders.Create(context.Background(), services.CreateOrderInput{
		UserID:       phone,
		CustomerInfo: shippingInfo(),
		Items:        []models.OrderItem{{ProductID: "p1", Name: "Brass Diya", Quantity: 1, Price: 500}},
	})
	require.NoError(t, err)

	w := doJSON(t, r, http.MethodPost, "/orders/"+order.ID+"/cancel", nil)
	require.Equal(t, http.StatusOK, w.Code)

	updated, err := orders.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, updated.Status)
	assert.Equal(t, "cancelled by customer", updated.CancellationReason)
}
