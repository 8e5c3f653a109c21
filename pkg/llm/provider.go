package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// Kind tags the closed set of completion backends. Dispatch happens once,
// at the orchestrator boundary, never by string comparison at call sites.
type Kind string

const (
	KindGemini     Kind = "gemini"
	KindGitHub     Kind = "github"
	KindOpenRouter Kind = "openrouter"
)

// ParseKind resolves a request-supplied provider name. Unknown or empty
// values fall back to the Gemini gateway, which carries the retry policy.
func ParseKind(s string) Kind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "github":
		return KindGitHub
	case "openrouter":
		return KindOpenRouter
	default:
		return KindGemini
	}
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

// Provider defines the contract for any completion backend
type Provider interface {
	// Complete sends an already-windowed message sequence to the named model
	// and returns the raw completion text. Implementations own their retry
	// policy; a failed completion is always a *ProviderError, never an
	// empty success.
	Complete(ctx context.Context, model string, history []Message, options ...Option) (string, error)
}

// Selector resolves which backend serves a request.
type Selector interface {
	Get(kind Kind) Provider
}

// ProviderError marks a completion failure so callers can classify it apart
// from validation or persistence errors.
type ProviderError struct {
	Kind Kind
	Err  error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Kind, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// IsProviderError reports whether err wraps a completion failure.
func IsProviderError(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe)
}
