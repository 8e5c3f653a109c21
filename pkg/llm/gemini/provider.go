package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sanjay123-Ad/AI-Backend/pkg/llm"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai"

	// overloadedMarker is the substring Google returns when the upstream
	// model is temporarily saturated. Only responses carrying it are safe
	// to retry; everything else fails immediately.
	overloadedMarker = "The model is overloaded"

	defaultMaxAttempts = 3
	defaultRetryDelay  = 2000 * time.Millisecond
)

// GeminiProvider talks to Gemini's OpenAI-compatible chat endpoint and
// retries transient overload errors with a fixed bounded delay.
type GeminiProvider struct {
	apiKey  string
	baseURL string

	Client      *http.Client
	MaxAttempts int
	RetryDelay  time.Duration
}

var _ llm.Provider = &GeminiProvider{}

func NewGeminiProvider(apiKey, baseURL string, timeout time.Duration) *GeminiProvider {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &GeminiProvider{
		apiKey:  apiKey,
		baseURL: baseURL,
		Client: &http.Client{
			Timeout: timeout,
		},
		MaxAttempts: defaultMaxAttempts,
		RetryDelay:  defaultRetryDelay,
	}
}

// --- Request/Response structs (internal to this package) ---

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []llm.Message `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// isTransient is the retry predicate: it classifies an upstream error
// message as retry-eligible by content alone, independent of transport.
func isTransient(message string) bool {
	return strings.Contains(message, overloadedMarker)
}

// upstreamMessage extracts the error message from an API error body,
// falling back to the raw body when it is not the documented shape.
func upstreamMessage(body []byte) string {
	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		return errResp.Error.Message
	}
	return string(body)
}

func (g *GeminiProvider) Complete(ctx context.Context, model string, history []llm.Message, options ...llm.Option) (string, error) {
	opts := &llm.Options{}
	for _, o := range options {
		o(opts)
	}

	reqBody := chatRequest{
		Model:       model,
		Messages:    history,
		Temperature: opts.Temperature,
		MaxTokens:   opts.MaxTokens,
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", &llm.ProviderError{Kind: llm.KindGemini, Err: fmt.Errorf("marshal request: %w", err)}
	}

	var lastErr error
	for attempt := 1; attempt <= g.MaxAttempts; attempt++ {
		content, retryable, err := g.attempt(ctx, jsonData)
		if err == nil {
			return content, nil
		}
		lastErr = err

		if !retryable || attempt == g.MaxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return "", &llm.ProviderError{Kind: llm.KindGemini, Err: ctx.Err()}
		case <-time.After(g.RetryDelay):
		}
	}

	return "", &llm.ProviderError{Kind: llm.KindGemini, Err: lastErr}
}

// attempt performs a single completion request. retryable is only true for
// upstream errors whose message passes the transient predicate.
func (g *GeminiProvider) attempt(ctx context.Context, payload []byte) (string, bool, error) {
	url := fmt.Sprintf("%s/chat/completions", g.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payload))
	if err != nil {
		return "", false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", g.apiKey))

	resp, err := g.Client.Do(req)
	if err != nil {
		return "", false, fmt.Errorf("gemini request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", false, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		msg := upstreamMessage(bodyBytes)
		return "", isTransient(msg), fmt.Errorf("gemini api error (status %d): %s", resp.StatusCode, msg)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(bodyBytes, &chatResp); err != nil {
		return "", false, fmt.Errorf("unmarshal response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", false, fmt.Errorf("empty choices from gemini api")
	}

	return chatResp.Choices[0].Message.Content, false, nil
}
