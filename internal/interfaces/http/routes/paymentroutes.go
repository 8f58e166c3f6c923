package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/dreamlog-app/dreamlog/internal/interfaces/http/handlers"
	"github.com/dreamlog-app/dreamlog/internal/interfaces/http/middleware"
)

// PaymentRouteConfig holds dependencies for payment routes.
type PaymentRouteConfig struct {
	PaymentHandler *handlers.PaymentHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// SetupPaymentRoutes configures payment routes.
func SetupPaymentRoutes(api *gin.RouterGroup, cfg *PaymentRouteConfig) {
	// authenticated by the Stripe signature, not a session
	api.POST("/stripe/webhook", cfg.PaymentHandler.HandleWebhook)

	protected := api.Group("")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	{
		protected.POST("/checkout-session", cfg.PaymentHandler.CreateCheckoutSession)
		protected.POST("/sync-subscription", cfg.PaymentHandler.SyncSubscription)
	}
}
