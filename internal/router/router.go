// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/rewear/rewear-backend/internal/cache"
	"github.com/rewear/rewear-backend/internal/config"
	"github.com/rewear/rewear-backend/internal/handlers"
	"github.com/rewear/rewear-backend/internal/messaging"
	"github.com/rewear/rewear-backend/internal/middleware"
	"github.com/rewear/rewear-backend/internal/services"
	"github.com/rewear/rewear-backend/internal/utils"
)

func Initialize(db *gorm.DB, cfg *config.Config, cacheClient *cache.Client, events *messaging.Publisher) *gin.Engine {
	// Initialize services
	notificationService := services.NewNotificationService(db)
	storageService, _ := services.NewStorageService(cfg)
	pointsService := services.NewPointsService(db, cfg, cacheClient, events)
	profileService := services.NewProfileService(db, cfg)

	authService := services.NewAuthService(db, cfg, profileService)
	itemService := services.NewItemService(db, pointsService, notificationService, storageService, events)
	swapService := services.NewSwapService(db, cfg, pointsService, notificationService, events)
	adminService := services.NewAdminService(db, cfg, pointsService, notificationService, storageService, events)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	itemHandler := handlers.NewItemHandler(itemService, storageService)
	swapHandler := handlers.NewSwapHandler(swapService)
	pointsHandler := handlers.NewPointsHandler(pointsService, notificationService)
	profileHandler := handlers.NewProfileHandler(profileService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	adminHandler := handlers.NewAdminHandler(adminService)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.Frontend.BaseURL))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())
	r.Use(middleware.AuditLogMiddleware(db))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Authentication routes
		auth := v1.Group("/auth")
		auth.Use(middleware.AuthRateLimit())
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
			auth.GET("/me", middleware.AuthRequired(), authHandler.Me)
		}

		// Item catalog routes
		items := v1.Group("/items")
		{
			items.GET("", itemHandler.ListItems)
			items.GET("/search", itemHandler.SearchItems)

			// Authenticated routes. Static paths registered before the
			// :id wildcard.
			protected := items.Group("")
			protected.Use(middleware.AuthRequired())
			{
				protected.POST("", itemHandler.CreateItem)
				protected.GET("/mine", itemHandler.GetMyItems)
				protected.GET("/favorites", itemHandler.GetFavorites)
				protected.POST("/upload-images", middleware.UploadRateLimit(), itemHandler.UploadImages)
				protected.POST("/:id/favorite", itemHandler.ToggleFavorite)
				protected.POST("/:id/redeem", itemHandler.RedeemItem)
			}

			items.GET("/:id", middleware.OptionalAuth(), itemHandler.GetItem)
		}

		// Swap workflow routes
		swaps := v1.Group("/swaps")
		swaps.Use(middleware.AuthRequired())
		{
			swaps.POST("", swapHandler.CreateSwap)
			swaps.GET("/sent", swapHandler.GetSentSwaps)
			swaps.GET("/received", swapHandler.GetReceivedSwaps)
			swaps.PUT("/:id/respond", swapHandler.RespondToSwap)
			swaps.PUT("/:id/complete", swapHandler.CompleteSwap)
		}

		// Points routes
		points := v1.Group("/points")
		{
			points.GET("/leaderboard", pointsHandler.GetLeaderboard)
			points.GET("/transactions", middleware.AuthRequired(), pointsHandler.GetTransactions)
			points.POST("/award", middleware.AuthRequired(), middleware.AdminRequired(), pointsHandler.AwardPoints)
		}

		// Profile routes
		profile := v1.Group("/profile")
		profile.Use(middleware.AuthRequired())
		{
			profile.GET("", profileHandler.GetMyProfile)
			profile.PUT("", profileHandler.UpdateProfile)
			profile.POST("/ensure", profileHandler.EnsureProfile)
			profile.GET("/admin-check", profileHandler.AdminCheck)
			profile.GET("/:id", profileHandler.GetProfileByID)
		}

		// Notification routes
		notifications := v1.Group("/notifications")
		notifications.Use(middleware.AuthRequired())
		{
			notifications.GET("", notificationHandler.GetNotifications)
			notifications.PUT("/read-all", notificationHandler.MarkAllRead)
			notifications.PUT("/:id/read", notificationHandler.MarkRead)
		}

		// Admin routes
		admin := v1.Group("/admin")
		admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			admin.GET("/items/pending", adminHandler.GetPendingItems)
			admin.PUT("/items/:id/review", adminHandler.ReviewItem)
			admin.GET("/stats", adminHandler.GetStats)
			admin.GET("/users", adminHandler.GetUsers)
			admin.PUT("/users/:id/admin", adminHandler.ToggleAdmin)
		}
	}

	return r
}
