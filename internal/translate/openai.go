package translate

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// OpenAIEngine translates text through the OpenAI chat completion API.
type OpenAIEngine struct {
	client *openai.Client
	config *Config
}

// NewOpenAIEngine creates an OpenAI translation engine.
func NewOpenAIEngine(config *Config) *OpenAIEngine {
	return &OpenAIEngine{
		client: openai.NewClient(config.OpenAIKey),
		config: config,
	}
}

// Translate sends a single-turn chat completion request.
func (e *OpenAIEngine) Translate(ctx context.Context, req Request) (string, error) {
	if strings.TrimSpace(req.Text) == "" {
		return req.Text, nil
	}

	model := e.config.Model
	if model == "" {
		model = openai.GPT4oMini
	}

	resp, err := e.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildPrompt(req),
			},
		},
		MaxTokens:   e.config.MaxTokens,
		Temperature: e.config.Temperature,
	})
	if err != nil {
		return "", e.classify(err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no translation returned")
	}

	return cleanOutput(resp.Choices[0].Message.Content), nil
}

// Name returns the backend name.
func (e *OpenAIEngine) Name() string {
	return "openai"
}

func (e *OpenAIEngine) classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.HTTPStatusCode {
		case http.StatusTooManyRequests:
			return &RateLimitError{Provider: "openai", Err: err}
		case http.StatusUnauthorized, http.StatusForbidden:
			return &AuthError{Provider: "openai", Err: err}
		case http.StatusNotFound:
			return &ModelUnavailableError{Provider: "openai", Model: e.config.Model, Err: err}
		}
	}
	return fmt.Errorf("OpenAI API error: %w", err)
}
