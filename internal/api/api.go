package api

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/sufrah/backend/internal/middleware"
	"github.com/sufrah/backend/internal/notify"
	"github.com/sufrah/backend/internal/service"
	"github.com/sufrah/backend/internal/storage"
)

func SetupAPI(router *gin.Engine, db *gorm.DB, redisClient *redis.Client, blobs storage.BlobStore, hub *notify.Hub, jwtSecret string) {
	v1 := router.Group("/api/v1")
	{
		// Initialize services
		authService := service.NewAuthService(db, jwtSecret)
		discountService := service.NewDiscountService(db)
		apportionService := service.NewApportionService(db)
		cartService := service.NewCartService(db, discountService, apportionService)
		notificationService := service.NewNotificationService(db, hub)
		orderService := service.NewOrderService(db, cartService, notificationService)
		calculatorService := service.NewCalculatorService(db)
		intakeService := service.NewIntakeService(db)
		menuService := service.NewMenuService(db, blobs)

		var orderLimiter *middleware.RateLimiter
		if redisClient != nil {
			orderLimiter = middleware.NewOrderPlacementRateLimiter(redisClient)
		}

		// Initialize handlers
		authHandler := NewAuthHandler(authService)
		menuHandler := NewMenuHandler(menuService)
		cartHandler := NewCartHandler(cartService, apportionService)
		discountHandler := NewDiscountHandler(discountService)
		orderHandler := NewOrderHandler(orderService, db, orderLimiter)
		calculatorHandler := NewCalculatorHandler(calculatorService)
		intakeHandler := NewIntakeHandler(intakeService)
		notificationHandler := NewNotificationHandler(notificationService, hub, authService)

		// Register routes
		authHandler.RegisterRoutes(v1)
		menuHandler.RegisterRoutes(v1, authService)
		cartHandler.RegisterRoutes(v1, authService)
		discountHandler.RegisterRoutes(v1, authService)
		orderHandler.RegisterRoutes(v1, authService)
		calculatorHandler.RegisterRoutes(v1, authService)
		intakeHandler.RegisterRoutes(v1, authService)
		notificationHandler.RegisterRoutes(v1)
	}
}
