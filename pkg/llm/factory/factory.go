package factory

import (
	"fmt"
	"time"

	"github.com/sanjay123-Ad/AI-Backend/pkg/llm"
	"github.com/sanjay123-Ad/AI-Backend/pkg/llm/gemini"
	"github.com/sanjay123-Ad/AI-Backend/pkg/llm/github"
	"github.com/sanjay123-Ad/AI-Backend/pkg/llm/openrouter"
)

// Credentials carries one API key per backend.
type Credentials struct {
	Gemini     string
	GitHub     string
	OpenRouter string
}

// Registry holds one constructed provider per kind so the orchestrator can
// switch backends per request without rebuilding clients.
type Registry struct {
	providers map[llm.Kind]llm.Provider
}

var _ llm.Selector = &Registry{}

func NewRegistry(creds Credentials, timeout time.Duration) *Registry {
	return &Registry{
		providers: map[llm.Kind]llm.Provider{
			llm.KindGemini:     gemini.NewGeminiProvider(creds.Gemini, "", timeout),
			llm.KindGitHub:     github.NewGitHubProvider(creds.GitHub),
			llm.KindOpenRouter: openrouter.NewOpenRouterProvider(creds.OpenRouter, "", timeout),
		},
	}
}

// Get returns the provider for kind, falling back to the Gemini gateway for
// anything outside the known set.
func (r *Registry) Get(kind llm.Kind) llm.Provider {
	if p, ok := r.providers[kind]; ok {
		return p
	}
	return r.providers[llm.KindGemini]
}

// NewProvider builds a single standalone provider for the given kind.
func NewProvider(kind llm.Kind, creds Credentials, timeout time.Duration) (llm.Provider, error) {
	switch kind {
	case llm.KindGemini:
		return gemini.NewGeminiProvider(creds.Gemini, "", timeout), nil
	case llm.KindGitHub:
		return github.NewGitHubProvider(creds.GitHub), nil
	case llm.KindOpenRouter:
		return openrouter.NewOpenRouterProvider(creds.OpenRouter, "", timeout), nil
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", kind)
	}
}
