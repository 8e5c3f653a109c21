package github

import (
	"context"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"

	"github.com/sanjay123-Ad/AI-Backend/pkg/llm"
)

const (
	// GitHub Models serves namespaced identifiers ("openai/gpt-4o-mini")
	// from the current inference catalog; bare legacy identifiers still
	// live on the old Azure host.
	inferenceBaseURL = "https://models.github.ai/inference"
	legacyBaseURL    = "https://models.inference.ai.azure.com"

	openAINamespace = "openai/"

	defaultTemperature = 0.7
	defaultMaxTokens   = 1024

	// emptyResponsePlaceholder stands in when the API answers with no
	// content at all, so callers never see an empty success.
	emptyResponsePlaceholder = "(empty model response)"
)

// GitHubProvider drives GitHub Models through langchaingo's OpenAI client.
// Single shot with fixed sampling parameters; errors propagate, no retry.
type GitHubProvider struct {
	token string
}

var _ llm.Provider = &GitHubProvider{}

func NewGitHubProvider(token string) *GitHubProvider {
	return &GitHubProvider{token: token}
}

// endpointFor picks the catalog host for a model identifier by prefix.
func endpointFor(model string) string {
	if strings.HasPrefix(model, openAINamespace) {
		return inferenceBaseURL
	}
	return legacyBaseURL
}

func roleFor(role string) schema.ChatMessageType {
	switch role {
	case "system":
		return schema.ChatMessageTypeSystem
	case "assistant":
		return schema.ChatMessageTypeAI
	default:
		return schema.ChatMessageTypeHuman
	}
}

func (p *GitHubProvider) Complete(ctx context.Context, model string, history []llm.Message, options ...llm.Option) (string, error) {
	opts := &llm.Options{
		Temperature: defaultTemperature,
		MaxTokens:   defaultMaxTokens,
	}
	for _, o := range options {
		o(opts)
	}

	client, err := openai.New(
		openai.WithToken(p.token),
		openai.WithModel(model),
		openai.WithBaseURL(endpointFor(model)),
	)
	if err != nil {
		return "", &llm.ProviderError{Kind: llm.KindGitHub, Err: err}
	}

	content := make([]llms.MessageContent, 0, len(history))
	for _, msg := range history {
		content = append(content, llms.TextParts(roleFor(msg.Role), msg.Content))
	}

	resp, err := client.GenerateContent(ctx, content,
		llms.WithTemperature(opts.Temperature),
		llms.WithMaxTokens(opts.MaxTokens),
	)
	if err != nil {
		return "", &llm.ProviderError{Kind: llm.KindGitHub, Err: err}
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Content) == "" {
		return emptyResponsePlaceholder, nil
	}
	return resp.Choices[0].Content, nil
}
