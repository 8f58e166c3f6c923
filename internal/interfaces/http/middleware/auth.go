package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dreamlog-app/dreamlog/internal/infrastructure/auth/supabase"
	"github.com/dreamlog-app/dreamlog/internal/shared/constants"
	apperrors "github.com/dreamlog-app/dreamlog/internal/shared/errors"
	"github.com/dreamlog-app/dreamlog/internal/shared/logger"
	"github.com/dreamlog-app/dreamlog/internal/shared/utils"
)

type tokenVerifier interface {
	Verify(tokenString string) (*supabase.Claims, error)
}

// AuthMiddleware authenticates requests with the identity provider's access token,
// read from the session cookie or an Authorization: Bearer header.
type AuthMiddleware struct {
	verifier   tokenVerifier
	cookieName string
	logger     logger.Interface
}

func NewAuthMiddleware(verifier tokenVerifier, cookieName string, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		verifier:   verifier,
		cookieName: cookieName,
		logger:     logger,
	}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := m.extractToken(c)
		if !ok {
			utils.ErrorResponseWithError(c, apperrors.NewSessionMissingError())
			c.Abort()
			return
		}

		claims, err := m.verifier.Verify(token)
		if err != nil {
			authErr := apperrors.NewTokenInvalidError("access token")
			if errors.Is(err, supabase.ErrTokenExpired) {
				authErr = apperrors.NewTokenExpiredError("Session")
			}
			if apperrors.ShouldLogAuthError(authErr) {
				m.logger.Warnw("rejected access token",
					"error", err,
					"client_ip", c.ClientIP(),
					"security_event", apperrors.IsSecurityEvent(authErr),
				)
			}
			utils.ErrorResponseWithError(c, authErr)
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, claims.Subject)
		c.Set(constants.ContextKeyUserEmail, claims.Email)

		c.Next()
	}
}

func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := m.extractToken(c)
		if !ok {
			c.Next()
			return
		}

		if claims, err := m.verifier.Verify(token); err == nil {
			c.Set(constants.ContextKeyUserID, claims.Subject)
			c.Set(constants.ContextKeyUserEmail, claims.Email)
		}

		c.Next()
	}
}

func (m *AuthMiddleware) extractToken(c *gin.Context) (string, bool) {
	// Try to get token from cookie first
	if m.cookieName != "" {
		if token, err := c.Cookie(m.cookieName); err == nil && token != "" {
			return token, true
		}
	}

	authHeader := c.GetHeader(constants.HeaderAuthorization)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}

	return strings.TrimSpace(parts[1]), true
}

// GetUserID returns the authenticated user id set by RequireAuth.
func GetUserID(c *gin.Context) (string, bool) {
	userID := c.GetString(constants.ContextKeyUserID)
	return userID, userID != ""
}

// GetUserEmail returns the email claim of the authenticated user.
func GetUserEmail(c *gin.Context) string {
	return c.GetString(constants.ContextKeyUserEmail)
}
