package http

import (
	"context"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/dreamlog-app/dreamlog/internal/infrastructure/config"
	"github.com/dreamlog-app/dreamlog/internal/interfaces/http/middleware"
	"github.com/dreamlog-app/dreamlog/internal/interfaces/http/routes"
	"github.com/dreamlog-app/dreamlog/internal/shared/logger"

	_ "github.com/dreamlog-app/dreamlog/docs"
)

// Router represents the HTTP router configuration
type Router struct {
	container *Container
}

// NewRouter creates a new HTTP router with all dependencies
func NewRouter(db, elevatedDB *gorm.DB, cfg *config.Config, log logger.Interface) *Router {
	return &Router{container: NewContainer(db, elevatedDB, cfg, log)}
}

// SetupRoutes registers middlewares and every route group on the engine.
func (r *Router) SetupRoutes() {
	c := r.container
	engine := c.engine

	engine.Use(middleware.Recovery(c.log))
	engine.Use(middleware.RequestID())
	engine.Use(middleware.CustomLogger(c.log))
	engine.Use(middleware.CORS(c.cfg.Server.AllowedOrigins))
	engine.Use(middleware.SecurityHeaders())

	engine.GET("/health", c.hdlrs.healthHandler.HealthCheck)
	engine.GET("/version", c.hdlrs.healthHandler.Version)

	if c.cfg.Server.Mode != gin.ReleaseMode {
		engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := engine.Group("/api")

	routes.SetupAccountRoutes(engine, api, &routes.AccountRouteConfig{
		AccountHandler: c.hdlrs.accountHandler,
		SignupLimiter:  c.signupLimiter,
	})

	routes.SetupDreamRoutes(api, &routes.DreamRouteConfig{
		DreamHandler:   c.hdlrs.dreamHandler,
		InsightHandler: c.hdlrs.insightHandler,
		ProfileHandler: c.hdlrs.profileHandler,
		AuthMiddleware: c.authMiddleware,
		InsightLimiter: c.insightLimiter,
	})

	routes.SetupPaymentRoutes(api, &routes.PaymentRouteConfig{
		PaymentHandler: c.hdlrs.paymentHandler,
		AuthMiddleware: c.authMiddleware,
	})
}

// GetEngine returns the gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.container.engine
}

// Shutdown releases resources held by the router's dependencies.
func (r *Router) Shutdown(ctx context.Context) {
	r.container.Shutdown(ctx)
}
