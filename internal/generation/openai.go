package generation

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	openai "github.com/sashabaranov/go-openai"

	"github.com/maslennikov-ig/coursebench/internal/models"
)

// OpenAIClient talks to any OpenAI-compatible chat-completion endpoint
// (OpenAI itself, OpenRouter, or a self-hosted gateway).
type OpenAIClient struct {
	client *openai.Client
}

// NewOpenAIClient builds a client for the given endpoint. apiKeyEnv
// names the environment variable holding the key; baseURL may be empty
// for the library default.
func NewOpenAIClient(baseURL, apiKeyEnv string) (*OpenAIClient, error) {
	key := os.Getenv(apiKeyEnv)
	if key == "" {
		return nil, fmt.Errorf("environment variable %s is not set", apiKeyEnv)
	}

	cfg := openai.DefaultConfig(key)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &OpenAIClient{client: openai.NewClientWithConfig(cfg)}, nil
}

func (c *OpenAIClient) Generate(ctx context.Context, model models.ModelDescriptor, prompt string) (*Response, error) {
	req := openai.ChatCompletionRequest{
		Model: model.Backend,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	}
	if model.MaxTokens > 0 {
		req.MaxTokens = model.MaxTokens
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("backend %s returned no choices", model.Backend)
	}

	slog.Debug("generation complete",
		"model", model.Slug,
		"backend", model.Backend,
		"tokens", resp.Usage.TotalTokens)

	out := &Response{Text: resp.Choices[0].Message.Content}
	if resp.Usage.TotalTokens > 0 {
		out.Usage = &models.TokenUsage{
			Prompt:     resp.Usage.PromptTokens,
			Completion: resp.Usage.CompletionTokens,
			Total:      resp.Usage.TotalTokens,
		}
	}
	return out, nil
}
