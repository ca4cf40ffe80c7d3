package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"divyakart/cart"
	"divyakart/config"
	"divyakart/controllers"
	"divyakart/database"
	"divyakart/identity"
	"divyakart/middleware"
	"divyakart/payments"
	applog "divyakart/pkg/logger"
	"divyakart/routes"
	"divyakart/services"
	"divyakart/store"
	"divyakart/sweeper"
)

func main() {
	config.LoadEnv()

	logger, err := applog.New(config.GetEnv("LOG_LEVEL", "info"))
	if err != nil {
		log.Fatalf("logger init failed: %v", err)
	}
	defer logger.Sync()

	db, err := database.Connect(config.MongoURI(), config.DBName())
	if err != nil {
		logger.Fatal("mongodb connection failed", zap.Error(err))
	}
	st := store.NewMongoStore(db)

	storage := cartStorage(logger)

	gateway := payments.NewRazorpayGateway(config.RazorpayKeyID(), config.RazorpayKeySecret())
	provider := identity.NewHTTPProvider(config.IdentityBaseURL(), config.IdentityAPIKey())

	users := services.NewUserService(st, logger)
	categories := services.NewCategoryService(st, logger)
	variants := services.NewVariantService(st, logger)
	products := services.NewProductService(st, categories, variants, logger)
	banners := services.NewBannerService(st, logger)
	notifications := services.NewNotificationService(st, logger)
	orders := services.NewOrderService(st, gateway, users, notifications, logger)
	dashboard := services.NewDashboardService(orders, users, products)

	secret := config.JWTSecret()
	if len(secret) == 0 {
		logger.Fatal("JWT_SECRET is not set")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sweeper.New(orders, sweeper.DefaultInterval, logger).Run(ctx)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger(logger), middleware.Metrics())
	routes.Register(r, routes.Controllers{
		Auth:          controllers.NewAuthController(provider, users, st, secret, logger),
		Profile:       controllers.NewProfileController(users),
		Catalog:       controllers.NewCatalogController(categories, products, banners),
		Cart:          controllers.NewCartController(storage),
		Orders:        controllers.NewOrderController(orders),
		Payments:      controllers.NewPaymentController(orders, storage, config.RazorpayKeyID(), logger),
		Notifications: controllers.NewNotificationController(notifications),
		Admin: controllers.NewAdminController(
			categories, products, variants, banners, orders, dashboard),
	}, secret, st)

	addr := ":" + config.Port()
	logger.Info("server listening", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

// cartStorage picks Redis when REDIS_ADDR is set; otherwise carts live
// in process memory.
func cartStorage(logger *zap.Logger) cart.Storage {
	addr := config.RedisAddr()
	if addr == "" {
		logger.Warn("REDIS_ADDR not set, carts are in-memory only")
		return cart.NewMemoryStorage()
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	logger.Info("cart storage on redis", zap.String("addr", addr))
	return cart.NewRedisStorage(rdb, 30*24*time.Hour)
}
