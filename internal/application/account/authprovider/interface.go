package authprovider

import (
	"context"
	"fmt"
)

// Session is an authenticated session issued by the identity provider.
type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int
	UserID       string
	Email        string
}

// SignUpResult carries the new account. Session is nil when the provider
// requires email confirmation before issuing one; the confirmation link then
// returns a PKCE code that only CodeVerifier can redeem.
type SignUpResult struct {
	UserID       string
	Email        string
	Session      *Session
	CodeVerifier string
}

// RejectedError is returned when the provider refuses a request, e.g. a weak
// password or an expired code. Message is safe to show to the user.
type RejectedError struct {
	StatusCode int
	Message    string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("auth provider rejected request (%d): %s", e.StatusCode, e.Message)
}

// AuthProvider is the hosted identity service.
type AuthProvider interface {
	SignUp(ctx context.Context, email, password string) (*SignUpResult, error)
	// ExchangeCode completes a PKCE login
	ExchangeCode(ctx context.Context, code, codeVerifier string) (*Session, error)
}
