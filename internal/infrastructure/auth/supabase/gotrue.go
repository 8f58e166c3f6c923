package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dreamlog-app/dreamlog/internal/application/account/authprovider"
	"github.com/dreamlog-app/dreamlog/internal/shared/logger"
)

const (
	defaultRequestTimeout = 15 * time.Second
	maxResponseBytes      = 1 << 20
)

// AuthClient talks to the GoTrue API behind a Supabase project.
type AuthClient struct {
	baseURL     string
	anonKey     string
	redirectURL string
	http        *http.Client
	logger      logger.Interface
}

var _ authprovider.AuthProvider = (*AuthClient)(nil)

// NewAuthClient creates a client for projectURL (e.g. https://xyz.supabase.co).
// redirectURL is where email confirmation links send the browser.
func NewAuthClient(projectURL, anonKey, redirectURL string, logger logger.Interface) *AuthClient {
	return &AuthClient{
		baseURL:     strings.TrimRight(projectURL, "/") + "/auth/v1",
		anonKey:     anonKey,
		redirectURL: redirectURL,
		http:        &http.Client{Timeout: defaultRequestTimeout},
		logger:      logger,
	}
}

type gotrueUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type gotrueSession struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	ExpiresIn    int         `json:"expires_in"`
	User         *gotrueUser `json:"user"`
}

// signupResponse is a session when auto-confirm is on, otherwise the bare user.
type signupResponse struct {
	gotrueSession
	gotrueUser
}

type gotrueError struct {
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func (e gotrueError) text() string {
	for _, s := range []string{e.Msg, e.ErrorDescription, e.Message, e.Error} {
		if s != "" {
			return s
		}
	}
	return ""
}

func (c *AuthClient) SignUp(ctx context.Context, email, password string) (*authprovider.SignUpResult, error) {
	verifier, challenge, err := generatePKCEParams()
	if err != nil {
		return nil, err
	}

	endpoint := c.baseURL + "/signup"
	if c.redirectURL != "" {
		endpoint += "?redirect_to=" + url.QueryEscape(c.redirectURL)
	}

	var resp signupResponse
	err = c.post(ctx, endpoint, map[string]string{
		"email":                 email,
		"password":              password,
		"code_challenge":        challenge,
		"code_challenge_method": codeChallengeMethod,
	}, &resp)
	if err != nil {
		return nil, err
	}

	result := &authprovider.SignUpResult{
		UserID:       resp.gotrueUser.ID,
		Email:        resp.gotrueUser.Email,
		CodeVerifier: verifier,
	}
	if resp.AccessToken != "" && resp.User != nil {
		result.UserID = resp.User.ID
		result.Email = resp.User.Email
		result.Session = toSession(&resp.gotrueSession)
	}
	c.logger.Debugw("gotrue signup completed", "user_id", result.UserID, "confirmed", result.Session != nil)
	return result, nil
}

func (c *AuthClient) ExchangeCode(ctx context.Context, code, codeVerifier string) (*authprovider.Session, error) {
	var resp gotrueSession
	err := c.post(ctx, c.baseURL+"/token?grant_type=pkce", map[string]string{
		"auth_code":     code,
		"code_verifier": codeVerifier,
	}, &resp)
	if err != nil {
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, fmt.Errorf("gotrue pkce exchange returned no access token")
	}
	return toSession(&resp), nil
}

func toSession(s *gotrueSession) *authprovider.Session {
	session := &authprovider.Session{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		ExpiresIn:    s.ExpiresIn,
	}
	if s.User != nil {
		session.UserID = s.User.ID
		session.Email = s.User.Email
	}
	return session
}

// post sends a JSON body and decodes a 2xx response into out.
// 4xx responses become *authprovider.RejectedError carrying GoTrue's message.
func (c *AuthClient) post(ctx context.Context, endpoint string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("apikey", c.anonKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("gotrue request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("failed to read gotrue response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var e gotrueError
		_ = json.Unmarshal(respBody, &e)
		msg := e.text()
		if resp.StatusCode < 500 {
			if msg == "" {
				msg = http.StatusText(resp.StatusCode)
			}
			return &authprovider.RejectedError{StatusCode: resp.StatusCode, Message: msg}
		}
		return fmt.Errorf("gotrue error (%d): %s", resp.StatusCode, msg)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode gotrue response: %w", err)
	}
	return nil
}
