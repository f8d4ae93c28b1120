package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-backoffice/internal/handler"
	"go-backoffice/internal/middleware"
	"go-backoffice/internal/model"
	"go-backoffice/internal/repository"
	"go-backoffice/internal/service"
	"go-backoffice/internal/ws"
	"go-backoffice/pkg/database"

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
		&model.Product{}, &model.Supplier{}, &model.Client{},
		&model.Purchase{}, &model.PurchaseItem{},
		&model.Sale{}, &model.SaleItem{},
		&model.Order{}, &model.OrderItem{},
		&model.AuditEvent{}, &model.User{},
	)

	// 3. Seed default admin user
	seedAdmin(db)

	// 4. Audit feed hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	supplierRepo := repository.NewSupplierRepo(db)
	clientRepo := repository.NewClientRepo(db)
	purchaseRepo := repository.NewPurchaseRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	orderRepo := repository.NewOrderRepo(db)
	auditRepo := repository.NewAuditRepo(db)
	userRepo := repository.NewUserRepo(db)

	auditor := service.NewAuditor(auditRepo, wsHub)
	purchaseService := service.NewPurchaseService(purchaseRepo, productRepo, supplierRepo, db, auditor)
	saleService := service.NewSaleService(saleRepo, productRepo, clientRepo, db, auditor)
	orderService := service.NewOrderService(orderRepo, productRepo, clientRepo, db, auditor)
	authService := service.NewAuthService(userRepo)

	purchaseHandler := handler.NewPurchaseHandler(purchaseService)
	saleHandler := handler.NewSaleHandler(saleService)
	orderHandler := handler.NewOrderHandler(orderService)
	productHandler := handler.NewProductHandler(productRepo)
	directoryHandler := handler.NewDirectoryHandler(supplierRepo, clientRepo)
	authHandler := handler.NewAuthHandler(authService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Back Office v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	api.Post("/auth/login", authHandler.Login)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth())

	// Ledger
	protected.Get("/products", productHandler.List)
	protected.Get("/products/:id", productHandler.Get)
	protected.Post("/products", middleware.RequireRole("ADMIN", "MANAGER"), productHandler.Create)

	// Directory
	protected.Get("/suppliers", directoryHandler.ListSuppliers)
	protected.Get("/suppliers/:id", directoryHandler.GetSupplier)
	protected.Post("/suppliers", middleware.RequireRole("ADMIN", "MANAGER"), directoryHandler.CreateSupplier)
	protected.Get("/clients", directoryHandler.ListClients)
	protected.Get("/clients/:id", directoryHandler.GetClient)
	protected.Post("/clients", directoryHandler.CreateClient)

	// Purchase workflow
	protected.Get("/purchases", purchaseHandler.List)
	protected.Get("/purchases/:id", purchaseHandler.Get)
	protected.Post("/purchases", purchaseHandler.Create)
	protected.Put("/purchases/:id/status", purchaseHandler.ChangeStatus)
	protected.Delete("/purchases/:id", middleware.RequireRole("ADMIN"), purchaseHandler.Delete)

	// Sale workflow
	protected.Get("/sales", saleHandler.List)
	protected.Get("/sales/:id", saleHandler.Get)
	protected.Post("/sales", saleHandler.Create)

	// Order workflow
	protected.Get("/orders", orderHandler.List)
	protected.Get("/orders/:id", orderHandler.Get)
	protected.Post("/orders", orderHandler.Create)
	protected.Put("/orders/:id", orderHandler.UpdateStatus)

	// Audit feed (WebSocket)
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

	// 8. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedAdmin creates the default admin user if it doesn't exist
func seedAdmin(db *gorm.DB) {
	userRepo := repository.NewUserRepo(db)

	if _, err := userRepo.FindByEmail("admin@example.com"); err == nil {
		return
	}

	admin := &model.User{
		Email:    "admin@example.com",
		FullName: "Administrator",
		Role:     "ADMIN",
		IsActive: true,
	}
	admin.CreatedBy = "system"
	admin.UpdatedBy = "system"

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}
	if err := admin.SetPassword(password); err != nil {
		log.Printf("Warning: Failed to hash admin password: %v", err)
		return
	}

	if err := userRepo.Create(admin); err != nil {
		log.Printf("Warning: Failed to create admin user: %v", err)
	} else {
		log.Println("Admin user created: admin@example.com")
	}
}
