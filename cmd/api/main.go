package main

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"restaurant-manager-go/internal/analytics"
	"restaurant-manager-go/internal/auth"
	"restaurant-manager-go/internal/handler"
	"restaurant-manager-go/internal/layout"
	"restaurant-manager-go/internal/menu"
	"restaurant-manager-go/internal/middleware"
	"restaurant-manager-go/internal/notification"
	"restaurant-manager-go/internal/order"
	"restaurant-manager-go/internal/payment"
	"restaurant-manager-go/pkg/config"
	"restaurant-manager-go/pkg/model"
)

func main() {
	// Load configuration
	cfg := config.LoadConfig()

	// Connect to database
	db, err := sqlx.Connect("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Payment gateway client
	gatewayConfig := payment.GatewayConfig{
		BaseURL:    os.Getenv("PAYMENT_GATEWAY_URL"),
		APIKey:     os.Getenv("PAYMENT_GATEWAY_API_KEY"),
		MaxRetries: 3,
		RetryDelay: 2 * time.Second,
	}
	gatewayClient := payment.NewGatewayClient(gatewayConfig)

	// Staff notifications (Telegram + email, both optional)
	telegramService := notification.NewTelegramService(notification.TelegramConfig{
		APIToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		ChatID:   os.Getenv("TELEGRAM_STAFF_CHAT_ID"),
	})
	emailService := notification.NewEmailService(notification.EmailConfig{
		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     os.Getenv("SMTP_PORT"),
		SMTPUsername: os.Getenv("SMTP_USERNAME"),
		SMTPPassword: os.Getenv("SMTP_PASSWORD"),
		FromEmail:    os.Getenv("SMTP_FROM_EMAIL"),
		FromName:     os.Getenv("SMTP_FROM_NAME"),
	})

	// Initialize services
	authService := auth.NewAuthService(db, cfg.JWTSecret, cfg.EncryptionKey)
	layoutService := layout.NewLayoutService(db)
	menuService := menu.NewMenuService(db, menu.NewCache(cfg.RedisAddr))
	orderService := order.NewOrderService(db, telegramService)
	paymentService := payment.NewPaymentService(db, gatewayClient, orderService, emailService, os.Getenv("PAYMENT_PROVIDER"))
	analyticsService := analytics.NewAnalyticsService(db)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authService)
	layoutHandler := handler.NewLayoutHandler(layoutService)
	menuHandler := handler.NewMenuHandler(menuService)
	orderHandler := handler.NewOrderHandler(orderService)
	paymentHandler := handler.NewPaymentHandler(paymentService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)

	// Start the stuck-order watcher in a goroutine
	watcher := order.NewWatcher(orderService, telegramService, time.Minute, 20*time.Minute)
	go watcher.RunScheduledChecks()

	// Daily revenue summary, if an admin address is configured
	if adminEmail := os.Getenv("ADMIN_EMAIL"); adminEmail != "" {
		reporter := analytics.NewReporter(analyticsService, emailService, adminEmail)
		go reporter.RunDailyReports()
	}

	// Set up Gin router
	router := gin.Default()

	// Apply comprehensive CORS middleware
	corsConfig := cors.Config{
		AllowOrigins:     []string{"http://localhost:8081"}, // Web front end URL
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}
	router.Use(cors.New(corsConfig))

	// Public routes
	router.POST("/api/login", authHandler.Login)
	router.GET("/api/menu", menuHandler.GetPublicMenu)
	router.GET("/api/menu/items/:id/related", menuHandler.GetRelatedItems)
	router.POST("/api/payments/callback", paymentHandler.HandleCallback)

	// Protected routes
	protected := router.Group("/api")
	protected.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	{
		// 2FA routes
		protected.POST("/2fa/setup", authHandler.SetupTwoFactor)
		protected.POST("/2fa/verify", authHandler.VerifyTwoFactor)
		protected.POST("/2fa/disable", authHandler.DisableTwoFactor)

		// User profile
		protected.GET("/user/profile", authHandler.GetUserProfile)
		protected.PUT("/user/password", authHandler.UpdatePassword)

		// Floor plan (read for all staff)
		protected.GET("/layout", layoutHandler.GetFloorPlan)
		protected.GET("/layout/canvas", layoutHandler.GetCanvas)
		protected.GET("/layout/locations/:id/tables", layoutHandler.ListLocationTables)
		protected.GET("/tables/:id/order", orderHandler.OpenOrderForTable)
		protected.PUT("/layout/tables/:id/status", layoutHandler.SetTableStatus)

		// Orders
		protected.POST("/orders", orderHandler.CreateOrder)
		protected.GET("/orders", orderHandler.ListOrders)
		protected.GET("/orders/:id", orderHandler.GetOrder)
		protected.PUT("/orders/:id/status", orderHandler.UpdateStatus)
		protected.POST("/orders/:id/items", orderHandler.AddItems)
		protected.GET("/orders/:id/payments", paymentHandler.ListPayments)
		protected.GET("/kitchen/queue", orderHandler.KitchenQueue)

		// Payments
		protected.POST("/payments", paymentHandler.CreatePayment)

		// Admin routes
		admin := protected.Group("/admin")
		admin.Use(middleware.RequireRole(model.RoleAdmin))
		{
			admin.POST("/register", authHandler.Register)

			// Floor-plan editing
			admin.POST("/layout/locations", layoutHandler.CreateLocation)
			admin.PUT("/layout/locations/:id/position", layoutHandler.MoveLocation)
			admin.PUT("/layout/locations/:id/size", layoutHandler.ResizeLocation)
			admin.DELETE("/layout/locations/:id", layoutHandler.DeleteLocation)
			admin.POST("/layout/tables", layoutHandler.CreateTable)
			admin.PUT("/layout/tables/:id/position", layoutHandler.MoveTable)
			admin.PUT("/layout/tables/:id/location", layoutHandler.AssignTable)
			admin.DELETE("/layout/tables/:id", layoutHandler.DeleteTable)

			// Menu management
			admin.GET("/menu/categories", menuHandler.ListCategories)
			admin.POST("/menu/categories", menuHandler.CreateCategory)
			admin.PUT("/menu/categories/:id", menuHandler.UpdateCategory)
			admin.DELETE("/menu/categories/:id", menuHandler.DeleteCategory)
			admin.GET("/menu/categories/:id/items", menuHandler.ListItems)
			admin.POST("/menu/items", menuHandler.CreateItem)
			admin.PUT("/menu/items/:id", menuHandler.UpdateItem)
			admin.DELETE("/menu/items/:id", menuHandler.DeleteItem)
			admin.POST("/menu/items/:id/options", menuHandler.CreateOption)
			admin.DELETE("/menu/options/:id", menuHandler.DeleteOption)

			// Analytics
			admin.GET("/analytics/revenue", analyticsHandler.DailyRevenue)
			admin.GET("/analytics/top-items", analyticsHandler.TopItems)
			admin.GET("/analytics/tables", analyticsHandler.TableActivity)
		}
	}

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting server on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
