package controllers

import (
	"context"
	"encoding/json"
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

type adminFixture struct {
	st     store.Store
	orders *services.OrderService
	router *gin.Engine
}

func newAdminFixture(t *testing.T) *adminFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.NewMemoryStore()
	log := zaptest.NewLogger(t)
	users := services.NewUserService(st, log)
	notifications := services.NewNotificationService(st, log)
	orders := services.NewOrderService(st, &fakeGateway{}, users, notifications, log)
	categories := services.NewCategoryService(st, log)
	variants := services.NewVariantService(st, log)
	products := services.NewProductService(st, categories, variants, log)
	banners := services.NewBannerService(st, log)
	dashboard := services.NewDashboardService(orders, users, products)

	a := NewAdminController(categories, products, variants, banners, orders, dashboard)

	r := gin.New()
	grp := r.Group("/admin", asUser("admin-1"))
	grp.PUT("/orders/:id/status", a.UpdateOrderStatus)
	grp.GET("/dashboard", a.Dashboard)
	grp.POST("/categories", a.CreateCategory)
	grp.POST("/products", a.CreateProduct)

	return &adminFixture{st: st, orders: orders, router: r}
}

func (f *adminFixture) placeOrder(t *testing.T) *models.Order {
	t.Helper()
	order, err := f.orders.Create(context.Background(), services.CreateOrderInput{
		UserID:       "+919876543210",
		CustomerInfo: shippingInfo(),
		Items: []models.OrderItem{
			{ProductID: "p1", Name: "Brass Diya", Quantity: 2, Price: 500, Discount: 10},
		},
	})
	require.NoError(t, err)
	return order
}

func TestAdminUpdatesOrderStatusForward(t *testing.T) {
	f := newAdminFixture(t)
	order := f.placeOrder(t)

	w := doJSON(t, f.router, http.MethodPut, "/admin/orders/"+order.ID+"/status",
		gin.H{"status": "processing"})
	require.Equal(t, http.StatusOK, w.Code)

	updated, err := f.orders.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusProcessing, updated.Status)
	require.Len(t, updated.StatusHistory, 2)
	assert.Equal(t, "admin-1", updated.StatusHistory[1].UpdatedBy)
}

func TestAdminRejectsBackwardTransition(t *testing.T) {
	f := newAdminFixture(t)
	order := f.placeOrder(t)

	w := doJSON(t, f.router, http.MethodPut, "/admin/orders/"+order.ID+"/status",
		gin.H{"status": "shipped"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, f.router, http.MethodPut, "/admin/orders/"+order.ID+"/status",
		gin.H{"status": "processing"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	updated, err := f.orders.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusShipped, updated.Status)
}

func TestAdminDashboardAggregates(t *testing.T) {
	f := newAdminFixture(t)
	order := f.placeOrder(t)
	f.placeOrder(t)

	_, err := f.orders.ConfirmPayment(context.Background(), order.RazorpayOrderID, "pay_1", "valid")
	require.NoError(t, err)

	w := doJSON(t, f.router, http.MethodGet, "/admin/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Stats services.DashboardStats `json:"stats"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Data.Stats.TotalOrders)
	assert.Equal(t, 999.0, resp.Data.Stats.Revenue)
	assert.Equal(t, 1, resp.Data.Stats.OrdersByStatus[models.OrderStatusProcessing])
	assert.Equal(t, 1, resp.Data.Stats.OrdersByStatus[models.OrderStatusPending])
}

func TestAdminCreateProductDenormalizesCategory(t *testing.T) {
	f := newAdminFixture(t)

	w := doJSON(t, f.router, http.MethodPost, "/admin/categories",
		gin.H{"name": "Puja Essentials"})
	require.Equal(t, http.StatusCreated, w.Code)
	var catResp struct {
		Data struct {
			Category models.Category `json:"category"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &catResp))

	w = doJSON(t, f.router, http.MethodPost, "/admin/products",
		gin.H{"name": "Brass Diya", "categoryId": catResp.Data.Category.ID, "price": 500.0})
	require.Equal(t, http.StatusCreated, w.Code)
	var prodResp struct {
		Data struct {
			Product models.Product `json:"product"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &prodResp))
	assert.Equal(t, "Puja Essentials", prodResp.Data.Product.CategoryName)
}
