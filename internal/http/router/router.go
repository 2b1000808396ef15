package router

import (
	"github.com/gin-gonic/gin"

	"github.com/recyconnect/backend/internal/config"
	"github.com/recyconnect/backend/internal/http/handlers"
	"github.com/recyconnect/backend/internal/http/middleware"
	"github.com/recyconnect/backend/internal/service"
)

func SetupRouter(
	cfg *config.Config,
	userHandler *handlers.UserHandler,
	itemHandler *handlers.ItemHandler,
	mediaHandler *handlers.MediaHandler,
	donatedItemHandler *handlers.DonatedItemHandler,
	reportedItemHandler *handlers.ReportedItemHandler,
	concernHandler *handlers.ConcernHandler,
	flagHandler *handlers.FlagHandler,
	messageHandler *handlers.MessageHandler,
	notificationHandler *handlers.NotificationHandler,
	dashboardHandler *handlers.DashboardHandler,
	healthHandler *handlers.HealthHandler,
	wsHandler *handlers.WSHandler,
	tokenManager *service.TokenManager,
) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	r.GET("/health", healthHandler.Health)

	api := r.Group("/api")

	// Регистрация и вход под rate limit, чтобы не перебирали пароли
	authRateLimit := middleware.RateLimitMiddleware(cfg.RateLimitLimit, cfg.RateLimitPeriod)
	api.POST("/users", authRateLimit, userHandler.Register)
	api.POST("/users/login", authRateLimit, userHandler.Login)
	api.POST("/users/refresh", userHandler.Refresh)
	api.POST("/users/logout", userHandler.Logout)

	// Публичные маршруты
	api.GET("/ws", wsHandler.Handle)
	api.GET("/items", itemHandler.List)
	api.GET("/items/:id", middleware.UUIDValidator("id"), itemHandler.Get)
	api.GET("/items/user/:userId", middleware.UUIDValidator("userId"), itemHandler.ListByUser)
	api.GET("/images/:imageId", middleware.UUIDValidator("imageId"), mediaHandler.Serve)
	api.GET("/donated-items", donatedItemHandler.List)
	api.GET("/reported", reportedItemHandler.List)

	// Защищённые маршруты
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(tokenManager))
	{
		protected.GET("/users/profile", userHandler.GetProfile)
		protected.PUT("/users/profile", userHandler.UpdateProfile)
		protected.PUT("/users/change-password", userHandler.ChangePassword)
		protected.DELETE("/users/profile", userHandler.DeleteAccount)

		protected.POST("/items", itemHandler.Create)
		protected.PUT("/items/:id", middleware.UUIDValidator("id"), itemHandler.Update)
		protected.DELETE("/items/:id", middleware.UUIDValidator("id"), itemHandler.Delete)
		protected.POST("/items/:id/images", middleware.UUIDValidator("id"), mediaHandler.Upload)
		protected.DELETE("/images/:imageId", middleware.UUIDValidator("imageId"), mediaHandler.Delete)

		protected.POST("/donated-items", donatedItemHandler.Create)
		protected.GET("/donated-items/user", donatedItemHandler.ListMine)
		protected.GET("/donated-items/:id", middleware.UUIDValidator("id"), donatedItemHandler.Get)
		protected.PUT("/donated-items/:id", middleware.UUIDValidator("id"), donatedItemHandler.Update)
		protected.PATCH("/donated-items/:id/claim", middleware.UUIDValidator("id"), donatedItemHandler.Claim)
		protected.PATCH("/donated-items/:id/complete", middleware.UUIDValidator("id"), donatedItemHandler.Complete)
		protected.DELETE("/donated-items/:id", middleware.UUIDValidator("id"), donatedItemHandler.Delete)

		protected.POST("/reported", reportedItemHandler.Create)
		protected.GET("/reported/my-reported", reportedItemHandler.ListMine)
		protected.GET("/reported/:id", middleware.UUIDValidator("id"), reportedItemHandler.Get)
		protected.PUT("/reported/:id", middleware.UUIDValidator("id"), reportedItemHandler.Update)
		protected.PATCH("/reported/:id", middleware.UUIDValidator("id"), reportedItemHandler.UpdateStatus)
		protected.DELETE("/reported/:id", middleware.UUIDValidator("id"), reportedItemHandler.Delete)

		protected.POST("/concerns", concernHandler.Create)
		protected.GET("/concerns/my-concerns", concernHandler.ListMine)
		protected.GET("/concerns/:id", middleware.UUIDValidator("id"), concernHandler.Get)
		protected.DELETE("/concerns/:id", middleware.UUIDValidator("id"), concernHandler.Delete)

		protected.POST("/flags", flagHandler.Create)
		protected.GET("/flags/user/:userId", middleware.UUIDValidator("userId"), flagHandler.ListByUser)
		protected.GET("/flags/count/:type/:id", middleware.UUIDValidator("id"), flagHandler.CountByTarget)
		protected.DELETE("/flags/:id", middleware.UUIDValidator("id"), flagHandler.Delete)

		protected.POST("/messages", messageHandler.Send)
		protected.GET("/messages/conversations", messageHandler.ListConversations)
		protected.GET("/messages/conversation/:userId", middleware.UUIDValidator("userId"), messageHandler.ListConversation)
		protected.GET("/messages/item/:itemId", middleware.UUIDValidator("itemId"), messageHandler.ListByItem)
		protected.GET("/messages/unread-count", messageHandler.UnreadCount)
		protected.PATCH("/messages/:id/read", middleware.UUIDValidator("id"), messageHandler.MarkAsRead)
		protected.DELETE("/messages/:id", middleware.UUIDValidator("id"), messageHandler.Delete)

		protected.GET("/notifications", notificationHandler.List)
		protected.GET("/notifications/unread-count", notificationHandler.UnreadCount)
		protected.PATCH("/notifications/read-all", notificationHandler.MarkAllAsRead)
		protected.PATCH("/notifications/:id/read", middleware.UUIDValidator("id"), notificationHandler.MarkAsRead)
	}

	// Маршруты панели администратора
	admin := api.Group("/")
	admin.Use(middleware.AuthMiddleware(tokenManager), middleware.AdminOnly())
	{
		admin.GET("/users", userHandler.List)
		admin.GET("/users/:id", middleware.UUIDValidator("id"), userHandler.Get)
		admin.PUT("/users/:id", middleware.UUIDValidator("id"), userHandler.AdminUpdate)
		admin.PATCH("/users/:id/suspend", middleware.UUIDValidator("id"), userHandler.ToggleSuspension)
		admin.PATCH("/users/:id/role", middleware.UUIDValidator("id"), userHandler.ToggleRole)
		admin.POST("/users/:id/reset-password", middleware.UUIDValidator("id"), userHandler.ResetPassword)
		admin.DELETE("/users/:id", middleware.UUIDValidator("id"), userHandler.Delete)

		admin.PATCH("/items/:id/verify", middleware.UUIDValidator("id"), itemHandler.Verify)
		admin.PATCH("/donated-items/:id/revert", middleware.UUIDValidator("id"), donatedItemHandler.Revert)

		admin.GET("/concerns", concernHandler.List)
		admin.PATCH("/concerns/:id", middleware.UUIDValidator("id"), concernHandler.UpdateStatus)

		admin.GET("/flags", flagHandler.List)
		admin.GET("/flags/target/:type/:id", middleware.UUIDValidator("id"), flagHandler.ListByTarget)
		admin.PATCH("/flags/:id", middleware.UUIDValidator("id"), flagHandler.UpdateStatus)

		admin.GET("/dashboard/stats", dashboardHandler.Stats)
	}

	return r
}
