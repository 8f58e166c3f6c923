package http

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dreamlog-app/dreamlog/internal/application/account/authprovider"
	"github.com/dreamlog-app/dreamlog/internal/application/insight/analyzer"
	"github.com/dreamlog-app/dreamlog/internal/application/payment/paymentgateway"
	"github.com/dreamlog-app/dreamlog/internal/infrastructure/ai/gemini"
	"github.com/dreamlog-app/dreamlog/internal/infrastructure/auth/supabase"
	"github.com/dreamlog-app/dreamlog/internal/infrastructure/config"
	"github.com/dreamlog-app/dreamlog/internal/infrastructure/payment/stripe"
	"github.com/dreamlog-app/dreamlog/internal/infrastructure/ratelimit"
	"github.com/dreamlog-app/dreamlog/internal/shared/logger"
	"github.com/dreamlog-app/dreamlog/internal/shared/services/markdown"
)

const redisPingTimeout = 3 * time.Second

// externalClients holds adapters for the third-party services the API calls.
type externalClients struct {
	paymentGateway paymentgateway.PaymentGateway
	analyzer       analyzer.Analyzer
	authProvider   authprovider.AuthProvider
	tokenVerifier  *supabase.TokenVerifier
	markdown       markdown.Service
	rateLimiter    ratelimit.Limiter
}

// initInfrastructure sets up Redis, repositories and external service clients.
func (c *Container) initInfrastructure() {
	if c.cfg.RateLimit.Enabled {
		c.redis = initRedis(c.cfg, c.log)
	}

	c.repos = newRepositories(c.db, c.elevatedDB, c.log)
	if !c.repos.hasElevated() {
		c.log.Warnw("elevated database role not configured, signup with dream is disabled")
	}

	if c.clients == nil {
		c.clients = newExternalClients(c.cfg, c.log)
	}
	if c.redis != nil && c.clients.rateLimiter == nil {
		c.clients.rateLimiter = ratelimit.NewRedisRateLimiter(c.redis, c.cfg.RateLimit.RedisKeyPrefix)
	}
}

// newExternalClients builds the production adapters from configuration.
func newExternalClients(cfg *config.Config, log logger.Interface) *externalClients {
	return &externalClients{
		paymentGateway: stripe.NewGateway(stripe.Config{
			SecretKey:     cfg.Stripe.SecretKey,
			WebhookSecret: cfg.Stripe.WebhookSecret,
		}, log.Named("stripe")),
		analyzer: gemini.NewClient(gemini.Config{
			APIKey:  cfg.Gemini.APIKey,
			Model:   cfg.Gemini.Model,
			BaseURL: cfg.Gemini.BaseURL,
		}, log.Named("gemini")),
		authProvider: supabase.NewAuthClient(
			cfg.Supabase.URL,
			cfg.Supabase.AnonKey,
			authCallbackURL(cfg.Server.AppURL),
			log.Named("supabase"),
		),
		tokenVerifier: supabase.NewTokenVerifier(cfg.Supabase.JWTSecret),
		markdown:      markdown.NewService(),
	}
}

// initRedis connects to Redis. Rate limiting fails open, so an unreachable
// server is logged rather than treated as fatal.
func initRedis(cfg *config.Config, log logger.Interface) redis.UniversalClient {
	redisClient := redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:    []string{cfg.Redis.GetAddr()},
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Warnw("failed to connect to Redis, rate limiting will fail open", "addr", cfg.Redis.GetAddr(), "error", err)
		return redisClient
	}
	log.Infow("Redis connection established successfully")

	return redisClient
}

func authCallbackURL(appURL string) string {
	return strings.TrimRight(appURL, "/") + "/auth/callback"
}
