package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dreamlog-app/dreamlog/internal/application/account/authprovider"
)

const (
	// codeVerifierCookieMaxAge covers the time a user takes to open the confirmation email.
	codeVerifierCookieMaxAge = 24 * 60 * 60
	// sessionCookieFallbackMaxAge is used when the provider omits expires_in.
	sessionCookieFallbackMaxAge = 60 * 60
)

// SessionCookies names the cookies that carry the access token and the PKCE verifier.
type SessionCookies struct {
	AccessTokenName  string
	CodeVerifierName string
	Secure           bool
}

func (s SessionCookies) setSession(c *gin.Context, session *authprovider.Session) {
	maxAge := session.ExpiresIn
	if maxAge <= 0 {
		maxAge = sessionCookieFallbackMaxAge
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.AccessTokenName, session.AccessToken, maxAge, "/", "", s.Secure, true)
}

func (s SessionCookies) setCodeVerifier(c *gin.Context, verifier string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.CodeVerifierName, verifier, codeVerifierCookieMaxAge, "/", "", s.Secure, true)
}

func (s SessionCookies) codeVerifier(c *gin.Context) string {
	v, err := c.Cookie(s.CodeVerifierName)
	if err != nil {
		return ""
	}
	return v
}

func (s SessionCookies) clearCodeVerifier(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.CodeVerifierName, "", -1, "/", "", s.Secure, true)
}
