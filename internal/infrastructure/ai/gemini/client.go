package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/dreamlog-app/dreamlog/internal/application/insight/analyzer"
	"github.com/dreamlog-app/dreamlog/internal/domain/insight"
	"github.com/dreamlog-app/dreamlog/internal/shared/logger"
)

const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"
	DefaultModel   = "gemini-2.5-flash"

	maxRetries     = 2
	initialBackoff = time.Second
	maxBodyBytes   = 4 << 20
)

var (
	// ErrNoJSON is returned when the model answered without a JSON object
	ErrNoJSON = errors.New("gemini response contains no JSON object")
	// ErrEmptyResponse is returned when no candidate carries text, e.g. a safety block
	ErrEmptyResponse = errors.New("gemini response is empty")

	jsonObjectPattern = regexp.MustCompile(`\{[\s\S]*\}`)
)

// Config configures the generateContent client.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Client analyzes dreams with the Gemini generateContent REST endpoint.
type Client struct {
	apiKey  string
	model   string
	baseURL string
	http    *http.Client
	backoff time.Duration
	logger  logger.Interface
}

var _ analyzer.Analyzer = (*Client)(nil)

// NewClient creates a client. Request deadlines come from the caller's context.
func NewClient(cfg Config, logger logger.Interface) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	model := strings.TrimPrefix(strings.TrimSpace(cfg.Model), "gemini:")
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: baseURL,
		http:    &http.Client{},
		backoff: initialBackoff,
		logger:  logger,
	}
}

func (c *Client) Model() string {
	return c.model
}

type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text,omitempty"`
}

type generationConfig struct {
	Temperature      float64 `json:"temperature,omitempty"`
	ResponseMimeType string  `json:"responseMimeType,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason,omitempty"`
	} `json:"promptFeedback,omitempty"`
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

func (c *Client) Analyze(ctx context.Context, req analyzer.Request) (*insight.Analysis, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: BuildPrompt(req)}}}},
		GenerationConfig: &generationConfig{
			Temperature:      0.7,
			ResponseMimeType: "application/json",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	respBody, err := c.generate(ctx, body)
	if err != nil {
		return nil, err
	}

	var resp generateResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	text := responseText(resp)
	if text == "" {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return nil, fmt.Errorf("%w: blocked (%s)", ErrEmptyResponse, resp.PromptFeedback.BlockReason)
		}
		return nil, ErrEmptyResponse
	}

	analysis, err := ParseAnalysis(text)
	if err != nil {
		c.logger.Warnw("gemini returned unparseable analysis", "model", c.model, "error", err)
		return nil, err
	}
	return analysis, nil
}

// generate posts the request, retrying rate limits and server errors with backoff.
func (c *Client) generate(ctx context.Context, body []byte) ([]byte, error) {
	// the key travels in a header so it never shows up in logged URLs
	endpoint := fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, url.PathEscape(c.model))

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			backoff := c.backoff * time.Duration(1<<(attempt-1))
			c.logger.Warnw("retrying gemini request", "attempt", attempt, "backoff", backoff, "last_error", lastErr)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("x-goog-api-key", c.apiKey)

		resp, err := c.http.Do(httpReq)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = fmt.Errorf("request failed: %w", err)
			continue
		}

		respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("failed to read response: %w", err)
			continue
		}

		if resp.StatusCode == http.StatusOK {
			return respBody, nil
		}

		lastErr = fmt.Errorf("API error (%d): %s", resp.StatusCode, errorMessage(respBody))
		if resp.StatusCode != http.StatusTooManyRequests && resp.StatusCode < 500 {
			return nil, lastErr
		}
	}
	return nil, fmt.Errorf("gemini request failed after %d attempts: %w", maxRetries+1, lastErr)
}

func responseText(resp generateResponse) string {
	var sb strings.Builder
	for _, cand := range resp.Candidates {
		for _, p := range cand.Content.Parts {
			sb.WriteString(p.Text)
		}
		if sb.Len() > 0 {
			break
		}
	}
	return strings.TrimSpace(sb.String())
}

func errorMessage(body []byte) string {
	var e apiError
	if err := json.Unmarshal(body, &e); err == nil && e.Error.Message != "" {
		return e.Error.Message
	}
	msg := strings.TrimSpace(string(body))
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return msg
}

// ParseAnalysis extracts the outermost JSON object from model text, which may be
// wrapped in a markdown code fence or prose.
func ParseAnalysis(text string) (*insight.Analysis, error) {
	match := jsonObjectPattern.FindString(text)
	if match == "" {
		return nil, ErrNoJSON
	}

	var a insight.Analysis
	if err := json.Unmarshal([]byte(match), &a); err != nil {
		return nil, fmt.Errorf("failed to decode analysis: %w", err)
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &a, nil
}
