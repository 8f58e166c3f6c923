package http

import (
	"context"

	"github.com/dreamlog-app/dreamlog/internal/interfaces/http/handlers"
	"github.com/dreamlog-app/dreamlog/internal/interfaces/http/middleware"
)

const codeVerifierCookieName = "dreamlog-code-verifier"

// allHandlers holds all HTTP handler instances used by the application.
type allHandlers struct {
	healthHandler  *handlers.HealthHandler
	accountHandler *handlers.AccountHandler
	profileHandler *handlers.ProfileHandler
	dreamHandler   *handlers.DreamHandler
	insightHandler *handlers.InsightHandler
	paymentHandler *handlers.PaymentHandler
}

// initMiddlewares creates the auth middleware and the per-route rate limiters.
func (c *Container) initMiddlewares() {
	c.authMiddleware = middleware.NewAuthMiddleware(c.clients.tokenVerifier, c.cfg.Supabase.CookieName, c.log)

	rl := c.cfg.RateLimit
	c.insightLimiter = middleware.NewRateLimiter(c.clients.rateLimiter, "insights", rl.InsightLimit, rl.Window, c.log)
	c.signupLimiter = middleware.NewRateLimiter(c.clients.rateLimiter, "signup", rl.SignupLimit, rl.Window, c.log)
}

// initHandlers creates the HTTP handlers from the use cases.
func (c *Container) initHandlers() {
	ucs := c.ucs

	checks := map[string]handlers.Pinger{
		"database": handlers.PingFunc(func(ctx context.Context) error {
			sqlDB, err := c.db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		}),
	}
	if c.redis != nil {
		checks["redis"] = handlers.PingFunc(func(ctx context.Context) error {
			return c.redis.Ping(ctx).Err()
		})
	}

	cookies := handlers.SessionCookies{
		AccessTokenName:  c.cfg.Supabase.CookieName,
		CodeVerifierName: codeVerifierCookieName,
		Secure:           c.cfg.Supabase.CookieSecure,
	}

	c.hdlrs = &allHandlers{
		healthHandler:  handlers.NewHealthHandler(checks, c.log),
		accountHandler: handlers.NewAccountHandler(ucs.signupWithDreamUC, ucs.exchangeAuthCodeUC, cookies, c.cfg.Server.AppURL, c.log),
		profileHandler: handlers.NewProfileHandler(ucs.getProfileUC, c.log),
		dreamHandler:   handlers.NewDreamHandler(ucs.createDreamUC, ucs.listDreamsUC, ucs.getDreamUC, c.log),
		insightHandler: handlers.NewInsightHandler(ucs.generateInsightUC, c.log),
		paymentHandler: handlers.NewPaymentHandler(ucs.handlePaymentEventUC, ucs.createCheckoutSessionUC, ucs.reconcileSubscriptionUC, c.log),
	}
}
