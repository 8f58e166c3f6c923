package http

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/dreamlog-app/dreamlog/internal/infrastructure/config"
	"github.com/dreamlog-app/dreamlog/internal/interfaces/http/middleware"
	"github.com/dreamlog-app/dreamlog/internal/shared/logger"
)

// Container holds all infrastructure components, repositories, use cases and handlers.
// It wires everything together and releases external connections in Shutdown.
type Container struct {
	// Core infrastructure
	engine     *gin.Engine
	db         *gorm.DB
	elevatedDB *gorm.DB
	cfg        *config.Config
	log        logger.Interface
	redis      redis.UniversalClient

	// Repositories
	repos *repositories

	// External service clients
	clients *externalClients

	// Use cases
	ucs *allUseCases

	// Handlers
	hdlrs *allHandlers

	// Middlewares
	authMiddleware *middleware.AuthMiddleware
	insightLimiter *middleware.RateLimiter
	signupLimiter  *middleware.RateLimiter
}

// NewContainer creates a new Container with all dependencies wired together.
// elevatedDB is the elevated role's connection, or nil to disable signup.
func NewContainer(db, elevatedDB *gorm.DB, cfg *config.Config, log logger.Interface) *Container {
	return newContainer(db, elevatedDB, cfg, log, nil)
}

// newContainer wires the container around the given external clients, or the
// configured production clients when clients is nil.
func newContainer(db, elevatedDB *gorm.DB, cfg *config.Config, log logger.Interface, clients *externalClients) *Container {
	c := &Container{
		engine:     gin.New(),
		db:         db,
		elevatedDB: elevatedDB,
		cfg:        cfg,
		log:        log,
		clients:    clients,
	}

	// Section 1: Infrastructure - Redis, Repositories, External clients
	c.initInfrastructure()

	// Section 2: Use cases - Entitlements, Payments, Insights, Dreams, Accounts
	c.initUseCases()

	// Section 3: Middlewares - Auth, Rate limits
	c.initMiddlewares()

	// Section 4: Handlers
	c.initHandlers()

	return c
}

// Shutdown releases the Redis connection. Database connections are closed by the caller that opened them.
func (c *Container) Shutdown(_ context.Context) {
	if c.redis == nil {
		return
	}
	if err := c.redis.Close(); err != nil {
		c.log.Warnw("failed to close redis client", "error", err)
		return
	}
	c.log.Infow("redis client closed")
}
