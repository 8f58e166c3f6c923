package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/dreamlog-app/dreamlog/internal/interfaces/http/handlers"
	"github.com/dreamlog-app/dreamlog/internal/interfaces/http/middleware"
)

// AccountRouteConfig holds dependencies for signup and auth callback routes.
type AccountRouteConfig struct {
	AccountHandler *handlers.AccountHandler
	SignupLimiter  *middleware.RateLimiter
}

// SetupAccountRoutes configures account routes.
func SetupAccountRoutes(engine *gin.Engine, api *gin.RouterGroup, cfg *AccountRouteConfig) {
	api.POST("/auth/signup-with-dream", cfg.SignupLimiter.Limit(), cfg.AccountHandler.SignupWithDream)

	// the confirmation email links here, outside /api
	engine.GET("/auth/callback", cfg.AccountHandler.AuthCallback)
}
