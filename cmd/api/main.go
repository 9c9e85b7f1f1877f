package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-shop-api/internal/handler"
	"go-shop-api/internal/middleware"
	"go-shop-api/internal/model"
	"go-shop-api/internal/repository"
	"go-shop-api/internal/service"
	"go-shop-api/internal/ws"
	"go-shop-api/pkg/database"
	"go-shop-api/pkg/recommender"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.Cart{},
		&model.CartItem{},
		&model.Order{},
		&model.OrderItem{},
		&model.UserEvent{},
	)
	// One active cart per user; the upsert path also checks inside its
	// transaction, this index backs it up across instances.
	db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_carts_one_active ON carts (user_id) WHERE status = 'active'`)

	// 3. Seed default admin user
	seedAdmin(db)

	// 4. Setup WebSocket Hub for the admin activity feed
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. External recommender client
	mlURL := os.Getenv("ML_SERVICE_URL")
	if mlURL == "" {
		mlURL = "http://127.0.0.1:8000"
	}
	scorer := recommender.New(mlURL, 3*time.Second)

	// 6. Dependency Injection (Wiring Layers)
	userRepo := repository.NewUserRepo(db)
	productRepo := repository.NewProductRepo(db)
	cartRepo := repository.NewCartRepo(db)
	orderRepo := repository.NewOrderRepo(db)
	eventRepo := repository.NewEventRepo(db)

	authService := service.NewAuthService(userRepo)
	catalogService := service.NewCatalogService(productRepo, wsHub)
	cartService := service.NewCartService(cartRepo, productRepo, db)
	orderService := service.NewOrderService(orderRepo, cartRepo, eventRepo, db, wsHub)
	recService := service.NewRecommendationService(scorer, productRepo)
	eventService := service.NewEventService(eventRepo)
	adminService := service.NewAdminService(productRepo, userRepo, orderRepo)

	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(catalogService)
	cartHandler := handler.NewCartHandler(cartService)
	orderHandler := handler.NewOrderHandler(orderService)
	recHandler := handler.NewRecommendationHandler(recService)
	eventHandler := handler.NewEventHandler(eventService)
	adminHandler := handler.NewAdminHandler(adminService)
	healthHandler := handler.NewHealthHandler(db)

	// 7. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Shop API v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 8. Routes
	app.Get("/api/health", healthHandler.Get)

	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", middleware.RequireAuth(), authHandler.Me)

	api.Get("/products", productHandler.List)
	api.Get("/products/:id", productHandler.Get)

	api.Get("/recommendations", middleware.OptionalAuth(), recHandler.Get)
	api.Post("/events", middleware.OptionalAuth(), eventHandler.Record)
	api.Post("/events/purchase", middleware.RequireAuth(), eventHandler.RecordPurchase)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth())

	// Cart
	protected.Get("/cart", cartHandler.Get)
	protected.Post("/cart/items", cartHandler.AddItem)
	protected.Put("/cart/items/:productId", cartHandler.UpdateItem)
	protected.Delete("/cart/items/:productId", cartHandler.RemoveItem)

	// Orders
	protected.Get("/orders", orderHandler.List)
	protected.Get("/orders/:id", orderHandler.Get)
	protected.Post("/orders/checkout", orderHandler.Checkout)

	// ============ ADMIN ROUTES ============
	admin := api.Group("/admin", middleware.RequireAuth(), middleware.RequireAdmin())
	admin.Get("/metrics", adminHandler.Metrics)
	admin.Get("/orders", adminHandler.Orders)
	admin.Put("/orders/:id/status", adminHandler.UpdateOrderStatus)
	admin.Get("/users", adminHandler.Users)

	// Catalog mutations (admin only)
	adminProducts := api.Group("/products", middleware.RequireAuth(), middleware.RequireAdmin())
	adminProducts.Post("", productHandler.Create)
	adminProducts.Put("/:id", productHandler.Update)
	adminProducts.Delete("/:id", productHandler.Delete)

	// WebSocket Route (admin activity feed)
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 9. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3001"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedAdmin creates the default admin account if it doesn't exist
func seedAdmin(db *gorm.DB) {
	userRepo := repository.NewUserRepo(db)

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@example.com"
	}

	if _, err := userRepo.FindByEmail(email); err == nil {
		return
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	admin := &model.User{
		Email:    email,
		FullName: "Administrator",
		Role:     model.RoleAdmin,
	}
	if err := admin.SetPassword(password); err != nil {
		log.Printf("Warning: Failed to hash admin password: %v", err)
		return
	}

	if err := userRepo.Create(admin); err != nil {
		log.Printf("Warning: Failed to create admin user: %v", err)
	} else {
		log.Printf("Admin user created: %s", email)
	}
}
