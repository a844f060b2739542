// Package routes defines the API routing configuration.
// It wires repositories into services, services into handlers, and groups
// the HTTP routes with their middleware requirements.
package routes

import (
	"smartwallet/internal/config"
	"smartwallet/internal/events"
	"smartwallet/internal/handlers"
	"smartwallet/internal/middleware"
	"smartwallet/internal/repositories"
	"smartwallet/internal/services/auth"
	"smartwallet/internal/services/gift"
	"smartwallet/internal/services/notification"
	"smartwallet/internal/services/subscription"
	"smartwallet/internal/services/user"
	"smartwallet/internal/services/wallet"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App) {
	// Initialize repositories
	walletRepo := repositories.NewWalletRepository(repositories.DB)
	transactionRepo := repositories.NewTransactionRepository(repositories.DB)
	subscriptionRepo := repositories.NewSubscriptionRepository(repositories.DB)
	userRepo := repositories.NewUserRepository(repositories.DB, repositories.CacheService)

	// Initialize auth service and middleware
	jwtSecret := config.GetEnv("JWT_SECRET", "smartwallet")
	refreshSecret := config.GetEnv("REFRESH_SECRET", "smartwallet-refresh")
	authService := auth.NewService(jwtSecret, refreshSecret)
	authMiddleware := middleware.NewAuthMiddleware(authService)

	// Notification client against the external notification-svc
	notificationService := notification.NewService(
		notification.NewHTTPClient(config.GetEnv("NOTIFICATION_SVC_URL", "http://localhost:8085")),
	)

	// Charge events fan out to the gift and notification listeners after the
	// wallet mutation commits.
	dispatcher := events.NewDispatcher()
	dispatcher.Subscribe(gift.NewService().HandleSuccessfulCharge)
	dispatcher.Subscribe(notificationService.HandleSuccessfulCharge)

	// Initialize services in dependency order
	walletService := wallet.NewService(walletRepo, repositories.CacheService, dispatcher)
	subscriptionService := subscription.NewService(subscriptionRepo, walletService, notificationService)
	userService := user.NewService(userRepo, walletService, subscriptionService, notificationService)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(userService, authService)
	walletHandler := handlers.NewWalletHandler(walletService, userService)
	transferHandler := handlers.NewTransferHandler(walletService)
	transactionHandler := handlers.NewTransactionHandler(transactionRepo)
	subscriptionHandler := handlers.NewSubscriptionHandler(subscriptionService, userService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)

	api := app.Group("/api")

	// Public endpoints (no auth required)
	api.Post("/register", userHandler.Register)
	api.Post("/login", userHandler.Login)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Welcome to SmartWallet API",
			"version": "1.0.0",
			"docs":    "/api",
		})
	})

	// Protected routes with auth middleware
	protected := api.Use(authMiddleware.Handler)

	protected.Get("/profile", userHandler.GetProfile)
	protected.Put("/profile", userHandler.EditProfile)

	protected.Get("/wallets", walletHandler.GetWallets)
	protected.Post("/wallets/unlock", walletHandler.Unlock)
	protected.Get("/wallets/:id", walletHandler.GetWallet)
	protected.Post("/wallets/:id/top-up", walletHandler.TopUp)
	protected.Put("/wallets/:id/status", walletHandler.SwitchStatus)
	protected.Put("/wallets/:id/nickname", walletHandler.SetNickname)

	protected.Post("/transfers", transferHandler.Transfer)
	protected.Get("/transactions", transactionHandler.GetHistory)

	protected.Post("/subscriptions/upgrade", subscriptionHandler.Upgrade)
	protected.Get("/subscriptions", subscriptionHandler.GetHistory)

	protected.Get("/notifications/preference", notificationHandler.GetPreference)
	protected.Put("/notifications/preference", notificationHandler.UpdatePreference)
	protected.Get("/notifications/emails", notificationHandler.GetLastEmails)
	protected.Delete("/notifications/emails", notificationHandler.DeleteAllEmails)
	protected.Post("/notifications/emails/retry", notificationHandler.RetryFailedEmails)
}
