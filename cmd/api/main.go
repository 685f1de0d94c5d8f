package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-warehouse-tracker/internal/handler"
	"go-warehouse-tracker/internal/middleware"
	"go-warehouse-tracker/internal/model"
	"go-warehouse-tracker/internal/repository"
	"go-warehouse-tracker/internal/service"
	"go-warehouse-tracker/internal/ws"
	"go-warehouse-tracker/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup database
	db := database.ConnectDB()
	db.AutoMigrate(&model.Product{}, &model.Transaction{}, &model.User{}, &model.UserProfile{}, &model.UserAction{})

	mediaRoot := os.Getenv("MEDIA_ROOT")
	if mediaRoot == "" {
		mediaRoot = "media"
	}

	// 3. Setup websocket hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Dependency injection (wiring layers)
	productRepo := repository.NewProductRepo(db)
	txRepo := repository.NewTransactionRepo(db)
	userRepo := repository.NewUserRepo(db)
	actionRepo := repository.NewActionRepo(db)

	audit := service.NewAuditor(actionRepo)
	invService := service.NewInventoryService(productRepo, txRepo, db, audit, wsHub)
	analyticsService := service.NewAnalyticsService(txRepo)
	authService := service.NewAuthService(userRepo, audit)
	accountService := service.NewAccountService(userRepo, mediaRoot)

	invHandler := handler.NewInventoryHandler(invService)
	analyticsHandler := handler.NewAnalyticsHandler(analyticsService)
	authHandler := handler.NewAuthHandler(authService)
	profileHandler := handler.NewProfileHandler(accountService)

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Warehouse Tracker v1.0",
	})

	app.Use(logger.New())  // Request logging
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// Uploaded avatars
	app.Static("/media", mediaRoot)

	// ============ PUBLIC ROUTES ============
	app.Get("/", invHandler.Index)
	app.Get("/register/", authHandler.RegisterForm)
	app.Post("/register/", authHandler.Register)
	app.Post("/login/", authHandler.Login)

	// ============ PROTECTED ROUTES ============
	auth := middleware.RequireAuth(userRepo)

	app.Get("/analytics/", auth, analyticsHandler.Analytics)

	app.Post("/product/add/", auth, invHandler.AddProduct)
	app.Post("/product/edit/", auth, invHandler.EditProduct)
	app.Post("/product/:id/delete/", auth, invHandler.DeleteProduct)

	app.Get("/transactions/", auth, invHandler.Transactions)
	app.Post("/transactions/add/", auth, invHandler.AddTransaction)
	app.Post("/transactions/edit/", auth, invHandler.EditTransaction)
	app.Post("/transactions/:id/delete/", auth, invHandler.DeleteTransaction)

	app.Get("/profile/update/", auth, profileHandler.Profile)
	app.Post("/profile/update/", auth, profileHandler.UpdateProfile)
	app.Get("/profile/password/", auth, profileHandler.PasswordForm)
	app.Post("/profile/password/", auth, profileHandler.ChangePassword)
	app.Post("/profile/delete/", auth, profileHandler.DeleteAccount)

	// WebSocket route
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

	// 6. Graceful shutdown
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
