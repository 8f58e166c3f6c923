package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamlog-app/dreamlog/internal/application/account/authprovider"
	"github.com/dreamlog-app/dreamlog/internal/shared/logger"
)

func TestTokenVerifier(t *testing.T) {
	v := NewTokenVerifier("super-secret-jwt-token-with-at-least-32-characters")

	token, err := v.Sign("user-1", "a@example.com", time.Hour)
	require.NoError(t, err)

	claims, err := v.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "a@example.com", claims.Email)

	expired, err := v.Sign("user-1", "a@example.com", -time.Hour)
	require.NoError(t, err)
	_, err = v.Verify(expired)
	assert.ErrorIs(t, err, ErrTokenExpired)

	other := NewTokenVerifier("a-different-secret-of-sufficient-length!!")
	forged, err := other.Sign("user-1", "a@example.com", time.Hour)
	require.NoError(t, err)
	_, err = v.Verify(forged)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = v.Verify("not.a.jwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenVerifier_RejectsWrongAudienceAndAlgorithm(t *testing.T) {
	secret := "super-secret-jwt-token-with-at-least-32-characters"
	v := NewTokenVerifier(secret)

	anon := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		Role: "anon",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			Audience:  jwt.ClaimStrings{"anon"},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	s, err := anon.SignedString([]byte(secret))
	require.NoError(t, err)
	_, err = v.Verify(s)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	hs512 := jwt.NewWithClaims(jwt.SigningMethodHS512, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			Audience:  jwt.ClaimStrings{authenticatedAudience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	s, err = hs512.SignedString([]byte(secret))
	require.NoError(t, err)
	_, err = v.Verify(s)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestAuthClient_SignUp(t *testing.T) {
	tests := []struct {
		name          string
		response      string
		expectSession bool
	}{
		{
			name:     "confirmation required",
			response: `{"id":"user-1","email":"a@example.com","confirmation_sent_at":"2026-10-17T00:00:00Z"}`,
		},
		{
			name:          "auto confirmed",
			response:      `{"access_token":"at","refresh_token":"rt","expires_in":3600,"token_type":"bearer","user":{"id":"user-1","email":"a@example.com"}}`,
			expectSession: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/auth/v1/signup", r.URL.Path)
				assert.Equal(t, "http://localhost:3000/auth/callback", r.URL.Query().Get("redirect_to"))
				assert.Equal(t, "anon-key", r.Header.Get("apikey"))

				var body map[string]string
				require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
				assert.Equal(t, "a@example.com", body["email"])
				assert.Equal(t, "s256", body["code_challenge_method"])
				assert.NotEmpty(t, body["code_challenge"])

				_, _ = io.WriteString(w, tt.response)
			}))
			defer srv.Close()

			c := NewAuthClient(srv.URL, "anon-key", "http://localhost:3000/auth/callback", logger.NewNopLogger())
			result, err := c.SignUp(context.Background(), "a@example.com", "hunter22")
			require.NoError(t, err)

			assert.Equal(t, "user-1", result.UserID)
			assert.Equal(t, tt.expectSession, result.Session != nil)
			assert.NotEmpty(t, result.CodeVerifier)
		})
	}
}

func TestAuthClient_SignUpRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = io.WriteString(w, `{"code":422,"error_code":"user_already_exists","msg":"User already registered"}`)
	}))
	defer srv.Close()

	c := NewAuthClient(srv.URL, "anon-key", "", logger.NewNopLogger())
	_, err := c.SignUp(context.Background(), "a@example.com", "hunter22")

	var rejected *authprovider.RejectedError
	require.True(t, errors.As(err, &rejected))
	assert.Equal(t, 422, rejected.StatusCode)
	assert.Equal(t, "User already registered", rejected.Message)
}

func TestAuthClient_ExchangeCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/token", r.URL.Path)
		assert.Equal(t, "pkce", r.URL.Query().Get("grant_type"))

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body["auth_code"] != "good-code" || body["code_verifier"] != "verifier" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"error":"invalid_grant","error_description":"invalid flow state, no valid flow state found"}`)
			return
		}
		_, _ = io.WriteString(w, `{"access_token":"at","refresh_token":"rt","expires_in":3600,"user":{"id":"user-1","email":"a@example.com"}}`)
	}))
	defer srv.Close()

	c := NewAuthClient(srv.URL, "anon-key", "", logger.NewNopLogger())

	session, err := c.ExchangeCode(context.Background(), "good-code", "verifier")
	require.NoError(t, err)
	assert.Equal(t, "at", session.AccessToken)
	assert.Equal(t, "user-1", session.UserID)

	_, err = c.ExchangeCode(context.Background(), "stale", "verifier")
	var rejected *authprovider.RejectedError
	require.True(t, errors.As(err, &rejected))
	assert.Equal(t, "invalid flow state, no valid flow state found", rejected.Message)
}

func TestGeneratePKCEParams(t *testing.T) {
	verifier, challenge, err := generatePKCEParams()
	require.NoError(t, err)
	assert.Len(t, verifier, 43)
	assert.Equal(t, challengeFor(verifier), challenge)
	assert.NotEqual(t, verifier, challenge)
}
