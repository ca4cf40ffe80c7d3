package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"divyakart/controllers"
	"divyakart/middleware"
	"divyakart/store"
)

// Controllers bundles every handler group the router mounts.
type Controllers struct {
	Auth          *controllers.AuthController
	Profile       *controllers.ProfileController
	Catalog       *controllers.CatalogController
	Cart          *controllers.CartController
	Orders        *controllers.OrderController
	Payments      *controllers.PaymentController
	Notifications *controllers.NotificationController
	Admin         *controllers.AdminController
}

// Register mounts the public storefront, the authenticated customer
// surface and the admin dashboard onto r.
func Register(r *gin.Engine, c Controllers, secret []byte, st store.Store) {
	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", middleware.PrometheusHandler())

	api := r.Group("/api")

	// Public storefront and session bootstrap.
	api.POST("/auth/otp/request", c.Auth.RequestOTP)
	api.POST("/auth/otp/verify", c.Auth.VerifyOTP)
	api.POST("/auth/admin/login", c.Auth.AdminLogin)
	api.GET("/categories", c.Catalog.ListCategories)
	api.GET("/products", c.Catalog.ListProducts)
	api.GET("/products/:id", c.Catalog.GetProduct)
	api.GET("/banners", c.Catalog.ListBanners)

	// Checkout works for guests too; the session, when present, binds the
	// order to the customer and drives the cart freeze.
	payment := api.Group("/payment", middleware.OptionalAuth(secret, st))
	payment.POST("/create-order", c.Payments.CreateOrder)
	payment.POST("/verify", c.Payments.VerifyPayment)

	// Authenticated customer surface.
	auth := api.Group("", middleware.Auth(secret, st))
	auth.POST("/auth/logout", c.Auth.Logout)
	auth.GET("/profile", c.Profile.Get)
	auth.PUT("/profile", c.Profile.Update)
	auth.POST("/profile/addresses", c.Profile.AddAddress)

	auth.GET("/cart", c.Cart.Get)
	auth.POST("/cart/items", c.Cart.AddItem)
	auth.PUT("/cart/items", c.Cart.UpdateQuantity)
	auth.DELETE("/cart/items/:productId", c.Cart.RemoveItem)
	auth.DELETE("/cart", c.Cart.Clear)

	auth.GET("/orders", c.Orders.ListMine)
	auth.GET("/orders/:id", c.Orders.GetMine)
	auth.POST("/orders/:id/cancel", c.Orders.Cancel)
	auth.POST("/orders/:id/retry-payment", c.Payments.RetryPayment)

	auth.GET("/notifications", c.Notifications.ListMine)
	auth.PUT("/notifications/:id/read", c.Notifications.MarkRead)

	// Admin dashboard.
	admin := api.Group("/admin", middleware.Auth(secret, st), middleware.AdminOnly())
	admin.GET("/dashboard", c.Admin.Dashboard)

	admin.POST("/categories", c.Admin.CreateCategory)
	admin.PUT("/categories/:id", c.Admin.UpdateCategory)
	admin.DELETE("/categories/:id", c.Admin.DeleteCategory)

	admin.POST("/products", c.Admin.CreateProduct)
	admin.PUT("/products/:id", c.Admin.UpdateProduct)
	admin.DELETE("/products/:id", c.Admin.DeleteProduct)

	admin.POST("/variants", c.Admin.CreateVariant)
	admin.PUT("/variants/:id", c.Admin.UpdateVariant)
	admin.DELETE("/variants/:id", c.Admin.DeleteVariant)

	admin.GET("/banners", c.Admin.ListBanners)
	admin.POST("/banners", c.Admin.CreateBanner)
	admin.PUT("/banners/:id", c.Admin.UpdateBanner)
	admin.DELETE("/banners/:id", c.Admin.DeleteBanner)

	admin.GET("/orders", c.Admin.ListOrders)
	admin.GET("/orders/:id", c.Admin.GetOrder)
	admin.PUT("/orders/:id/status", c.Admin.UpdateOrderStatus)
}
