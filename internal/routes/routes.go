// Package routes defines the API routing configuration.
// It sets up all HTTP routes and their corresponding handlers,
// including middleware and authentication requirements.
package routes

import (
	"fitcoin/internal/handlers"
	"fitcoin/internal/middleware"
	"fitcoin/internal/models"
	"fitcoin/internal/repositories"
	"fitcoin/internal/services/auth"
	"fitcoin/internal/services/challenge"
	"fitcoin/internal/services/ledger"
	"fitcoin/internal/services/reward"
	"fitcoin/internal/services/user"

	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// SetupRoutes configures all application routes.
// It groups routes by functionality and applies appropriate middleware.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Initialize repositories
	ledgerRepo := repositories.NewLedgerRepository(db)
	userRepo := repositories.NewUserRepository(db, repositories.CacheService)
	challengeRepo := repositories.NewChallengeRepository(db)
	rewardRepo := repositories.NewRewardRepository(db)

	// Initialize services
	authService := auth.NewService(userRepo)
	userService := user.NewService(userRepo, ledgerRepo)
	challengeService := challenge.NewService(challengeRepo, repositories.CacheService)
	rewardService := reward.NewService(rewardRepo)

	registry := prometheus.NewRegistry()
	ledgerService := ledger.NewService(
		ledgerRepo,
		userRepo,
		challengeRepo,
		rewardRepo,
		repositories.CacheService,
		ledger.NewPrometheusMetrics(registry),
	)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService, ledgerService)
	challengeHandler := handlers.NewChallengeHandler(challengeService, ledgerService)
	transactionHandler := handlers.NewTransactionHandler(ledgerService)
	rewardHandler := handlers.NewRewardHandler(rewardService, ledgerService)
	walletHandler := handlers.NewWalletHandler(ledgerService)

	app.Get("/health", handlers.HealthCheck)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	// Public routes
	api := app.Group("/api")
	api.Post("/register", userHandler.RegisterUser)
	api.Post("/login", authHandler.LoginUser)
	api.Post("/refresh", authHandler.RefreshToken)

	// Protected routes with auth middleware
	authMiddleware := middleware.NewAuthMiddleware(authService)
	protected := api.Use(authMiddleware.Handler)

	protected.Get("/profile", userHandler.GetProfile)
	protected.Post("/change-password", authHandler.ChangePassword)
	protected.Post("/logout", authHandler.LogoutUser)

	setupWalletRoutes(protected, walletHandler, userHandler, transactionHandler)
	setupChallengeRoutes(protected, challengeHandler)
	setupRewardRoutes(protected, rewardHandler)
}

func setupWalletRoutes(router fiber.Router, walletHandler *handlers.WalletHandler, userHandler *handlers.UserHandler, transactionHandler *handlers.TransactionHandler) {
	router.Get("/wallet", middleware.HasPermission(models.PermissionWalletRead), walletHandler.GetWallet)

	// Own balance, or any balance for admins.
	router.Get("/users/balance/:userId", middleware.HasPermission(models.PermissionWalletRead), userHandler.GetBalance)
	router.Post("/users/add-coins", middleware.RequireAdmin, userHandler.AddCoins)

	router.Get("/transactions", middleware.HasPermission(models.PermissionTransactionRead), transactionHandler.GetTransactions)
	router.Post("/transactions/spend", middleware.HasPermission(models.PermissionTransactionWrite), transactionHandler.SpendCoins)
}

func setupChallengeRoutes(router fiber.Router, h *handlers.ChallengeHandler) {
	challenges := router.Group("/challenges")
	challenges.Get("/", h.ListChallenges)
	challenges.Patch("/:id", middleware.HasPermission(models.PermissionChallengeRedeem), h.RedeemChallenge)
	challenges.Post("/", middleware.RequireAdmin, h.CreateChallenge)
}

func setupRewardRoutes(router fiber.Router, h *handlers.RewardHandler) {
	rewards := router.Group("/rewards")
	rewards.Get("/", h.ListRewards)
	rewards.Get("/redemptions", h.ListRedemptions)
	rewards.Post("/:id/redeem", middleware.HasPermission(models.PermissionRewardRedeem), h.RedeemReward)
	rewards.Post("/", middleware.RequireAdmin, h.CreateReward)
}
