package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/dreamlog-app/dreamlog/internal/interfaces/http/handlers"
	"github.com/dreamlog-app/dreamlog/internal/interfaces/http/middleware"
)

// DreamRouteConfig holds dependencies for dream, insight and profile routes.
type DreamRouteConfig struct {
	DreamHandler   *handlers.DreamHandler
	InsightHandler *handlers.InsightHandler
	ProfileHandler *handlers.ProfileHandler
	AuthMiddleware *middleware.AuthMiddleware
	InsightLimiter *middleware.RateLimiter
}

// SetupDreamRoutes configures the authenticated journal routes.
func SetupDreamRoutes(api *gin.RouterGroup, cfg *DreamRouteConfig) {
	protected := api.Group("")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	{
		protected.GET("/profile", cfg.ProfileHandler.GetProfile)

		dreams := protected.Group("/dreams")
		{
			dreams.POST("", cfg.DreamHandler.CreateDream)
			dreams.GET("", cfg.DreamHandler.ListDreams)
			dreams.GET("/:id", cfg.DreamHandler.GetDream)
		}

		protected.POST("/insights/generate", cfg.InsightLimiter.Limit(), cfg.InsightHandler.GenerateInsight)
	}
}
