package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/Veraticus/denials/internal/common"
	"github.com/Veraticus/denials/internal/config"
	"github.com/Veraticus/denials/internal/service"
)

// Fixed request parameters.
const (
	Temperature    = 0.2
	MaxTokens      = 512
	RequestTimeout = 30 * time.Second
	MaxAttempts    = 3
	InitialBackoff = 500 * time.Millisecond

	// ClientName is sent in the X-Client-Name header.
	ClientName = "claim-denial-classifier"

	maxErrorBodyLen = 512
)

// Options tunes the transport. The zero value gives the production settings.
type Options struct {
	HTTPClient *http.Client
	Logger     *slog.Logger
	UserAgent  string
	// Retry overrides individual retry settings; unset fields keep the defaults.
	Retry   service.RetryOptions
	Timeout time.Duration
}

// DefaultRetryOptions returns 3 attempts with 500ms then 1000ms backoff.
func DefaultRetryOptions() service.RetryOptions {
	return service.RetryOptions{
		MaxAttempts:  MaxAttempts,
		InitialDelay: InitialBackoff,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
}

// openAIClient implements Client against an OpenAI-compatible chat-completion endpoint.
type openAIClient struct {
	httpClient *http.Client
	logger     *slog.Logger
	apiKey     string
	endpoint   string
	model      string
	userAgent  string
	retry      service.RetryOptions
	timeout    time.Duration
}

// NewClient creates the chat-completion client for cfg.
func NewClient(cfg config.LLMConfig, opts Options) (Client, error) {
	if cfg.APIKey == "" {
		return nil, common.NewConfigError("LLM API key is required", nil)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = config.DefaultBaseURL
	}
	modelName := cfg.Model
	if modelName == "" {
		modelName = config.DefaultModel
	}

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = RequestTimeout
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        10,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     90 * time.Second,
			},
		}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = "denials"
	}

	retry := DefaultRetryOptions()
	if opts.Retry.MaxAttempts > 0 {
		retry.MaxAttempts = opts.Retry.MaxAttempts
	}
	if opts.Retry.InitialDelay > 0 {
		retry.InitialDelay = opts.Retry.InitialDelay
	}
	if opts.Retry.MaxDelay > 0 {
		retry.MaxDelay = opts.Retry.MaxDelay
	}
	if opts.Retry.Multiplier > 0 {
		retry.Multiplier = opts.Retry.Multiplier
	}
	retry.Sleep = opts.Retry.Sleep
	retry.OnRetry = opts.Retry.OnRetry
	if retry.OnRetry == nil {
		retry.OnRetry = func(attempt int, delay time.Duration, err error) {
			logger.Warn("LLM request failed, retrying",
				"attempt", attempt,
				"max_attempts", retry.MaxAttempts,
				"delay", delay,
				"error", err)
		}
	}

	return &openAIClient{
		httpClient: httpClient,
		logger:     logger,
		apiKey:     cfg.APIKey,
		endpoint:   baseURL + "/chat/completions",
		model:      modelName,
		userAgent:  userAgent,
		retry:      retry,
		timeout:    timeout,
	}, nil
}

type chatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

// chatCompletionResponse is the subset of the response we read. Content is a
// pointer so a null or missing content is distinguishable from "".
type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Role    string  `json:"role"`
			Content *string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
	} `json:"usage"`
}

// Complete sends one chat-completion request, retrying transport failures.
func (c *openAIClient) Complete(ctx context.Context, messages []Message) (string, error) {
	body, err := json.Marshal(chatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: Temperature,
		MaxTokens:   MaxTokens,
	})
	if err != nil {
		return "", common.NewTransportError("failed to marshal request", err)
	}

	var content string
	err = common.WithRetry(ctx, func(ctx context.Context) error {
		text, attemptErr := c.completeOnce(ctx, body)
		if attemptErr != nil {
			return attemptErr
		}
		content = text
		return nil
	}, c.retry)

	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		var exhausted *common.RetryExhaustedError
		if errors.As(err, &exhausted) {
			return "", common.NewTransportError(
				fmt.Sprintf("LLM API call failed after %d attempts", exhausted.Attempts), exhausted.Err)
		}
		return "", common.NewTransportError("LLM API call failed", err)
	}

	return content, nil
}

// completeOnce performs a single attempt under its own timeout.
func (c *openAIClient) completeOnce(ctx context.Context, body []byte) (string, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Client-Name", ClientName)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, truncate(string(respBody), maxErrorBodyLen))
	}

	var response chatCompletionResponse
	if err := json.Unmarshal(respBody, &response); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	if len(response.Choices) == 0 {
		return "", fmt.Errorf("no completion choices returned")
	}

	content := response.Choices[0].Message.Content
	if content == nil {
		return "", fmt.Errorf("response missing choices[0].message.content")
	}

	c.logger.Debug("LLM request completed",
		"model", c.model,
		"duration", time.Since(start),
		"prompt_tokens", response.Usage.PromptTokens,
		"completion_tokens", response.Usage.CompletionTokens)

	return *content, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
