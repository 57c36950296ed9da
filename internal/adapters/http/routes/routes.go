package routes

import (
	"bookhive/internal/adapters/http/handlers"
	"bookhive/internal/adapters/http/middleware"
	"bookhive/internal/adapters/persistence/repositories"
	"bookhive/internal/config"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Setup wires repositories, handlers and routes
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// ====================================
	// Initialize Repositories
	// ====================================
	userRepo := repositories.NewUserRepository(db)
	bookRepo := repositories.NewBookRepository(db)
	loanRepo := repositories.NewLoanRepository(db)
	notifyRepo := repositories.NewNotificationRepository(db)

	// ====================================
	// Initialize Handlers
	// ====================================
	healthHandler := handlers.NewHealthHandler(db)
	authHandler := handlers.NewAuthHandler(userRepo, cfg)
	bookHandler := handlers.NewBookHandler(bookRepo)
	loanHandler := handlers.NewLoanHandler(loanRepo, bookRepo, notifyRepo)
	notificationHandler := handlers.NewNotificationHandler(notifyRepo)
	reportHandler := handlers.NewReportHandler(userRepo, bookRepo, loanRepo)
	userHandler := handlers.NewUserHandler(userRepo)

	// ====================================
	// Public Routes
	// ====================================
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	api.Get("/books", bookHandler.List)
	api.Get("/books/sections", bookHandler.Sections)
	api.Get("/books/:id", bookHandler.Get)

	// ====================================
	// Protected Routes (authenticated users)
	// ====================================
	protected := api.Group("", middleware.Protected(cfg.JWT.Secret))

	protected.Get("/users/me", authHandler.Me)
	protected.Put("/users/me", authHandler.UpdateMe)
	protected.Post("/users/me/password", authHandler.ChangePassword)

	protected.Post("/loans", loanHandler.Create)
	protected.Get("/loans/me", loanHandler.ListMine)

	protected.Get("/notifications/me", notificationHandler.ListMine)
	protected.Patch("/notifications/:id/read", notificationHandler.MarkRead)
	protected.Post("/notifications/read-all", notificationHandler.MarkAllRead)

	// ====================================
	// Admin Routes
	// ====================================
	admin := protected.Group("/admin", middleware.AdminOnly())

	admin.Post("/books", bookHandler.Create)
	admin.Patch("/books/:id/status", bookHandler.UpdateStatus)
	admin.Delete("/books/:id", bookHandler.Delete)

	admin.Get("/loans", loanHandler.ListAll)
	admin.Patch("/loans/:id/return", loanHandler.MarkReturned)

	admin.Get("/users", userHandler.List)
	admin.Patch("/users/:id/status", userHandler.SetStatus)
	admin.Patch("/users/:id/role", userHandler.SetRole)

	admin.Get("/reports/summary", reportHandler.Summary)
	admin.Get("/reports/top-books", reportHandler.TopBooks)
	admin.Get("/reports/top-users", reportHandler.TopUsers)
	admin.Get("/reports/status-split", reportHandler.StatusSplit)
}
