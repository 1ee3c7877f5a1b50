package translate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	brtypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/aws/smithy-go"
)

const anthropicVersion = "bedrock-2023-05-31"

// bedrockInvoker is the subset of the Bedrock runtime client used by
// the engine.
type bedrockInvoker interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// BedrockEngine translates text through an Anthropic model hosted on
// AWS Bedrock.
type BedrockEngine struct {
	client bedrockInvoker
	config *Config
}

// anthropicRequest is the Anthropic messages request body.
type anthropicRequest struct {
	AnthropicVersion string             `json:"anthropic_version"`
	MaxTokens        int                `json:"max_tokens"`
	Messages         []anthropicMessage `json:"messages"`
	Temperature      float32            `json:"temperature"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// anthropicResponse is the subset of the response body we read.
type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// NewBedrockEngine creates a Bedrock translation engine using the
// ambient AWS credential chain and the configured region.
func NewBedrockEngine(ctx context.Context, config *Config) (*BedrockEngine, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(config.Region))
	if err != nil {
		return nil, &AuthError{Provider: "bedrock", Err: err}
	}

	return &BedrockEngine{
		client: bedrockruntime.NewFromConfig(awsCfg),
		config: config,
	}, nil
}

// Translate invokes the model synchronously with a single-turn prompt.
func (e *BedrockEngine) Translate(ctx context.Context, req Request) (string, error) {
	if strings.TrimSpace(req.Text) == "" {
		return req.Text, nil
	}

	body, err := json.Marshal(anthropicRequest{
		AnthropicVersion: anthropicVersion,
		MaxTokens:        e.config.MaxTokens,
		Messages: []anthropicMessage{
			{Role: "user", Content: buildPrompt(req)},
		},
		Temperature: e.config.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode request body: %w", err)
	}

	out, err := e.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(e.config.Model),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		return "", e.classify(err)
	}

	var resp anthropicResponse
	if err := json.Unmarshal(out.Body, &resp); err != nil {
		return "", fmt.Errorf("failed to decode model response: %w", err)
	}
	if len(resp.Content) == 0 {
		return "", fmt.Errorf("model returned no content")
	}

	return cleanOutput(resp.Content[0].Text), nil
}

// Name returns the backend name.
func (e *BedrockEngine) Name() string {
	return "bedrock"
}

// classify maps Bedrock service exceptions onto the engine error
// taxonomy. AccessDeniedException covers both missing model access and
// bad IAM permissions; the message distinguishes the two.
func (e *BedrockEngine) classify(err error) error {
	var throttled *brtypes.ThrottlingException
	if errors.As(err, &throttled) {
		return &RateLimitError{Provider: "bedrock", Err: err}
	}
	var quota *brtypes.ServiceQuotaExceededException
	if errors.As(err, &quota) {
		return &RateLimitError{Provider: "bedrock", Err: err}
	}

	var notFound *brtypes.ResourceNotFoundException
	if errors.As(err, &notFound) {
		return &ModelUnavailableError{Provider: "bedrock", Model: e.config.Model, Region: e.config.Region, Err: err}
	}

	var denied *brtypes.AccessDeniedException
	if errors.As(err, &denied) {
		if strings.Contains(strings.ToLower(aws.ToString(denied.Message)), "model") {
			return &ModelUnavailableError{Provider: "bedrock", Model: e.config.Model, Region: e.config.Region, Err: err}
		}
		return &AuthError{Provider: "bedrock", Err: err}
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "UnrecognizedClientException", "InvalidSignatureException", "ExpiredTokenException":
			return &AuthError{Provider: "bedrock", Err: err}
		}
	}

	return fmt.Errorf("bedrock invocation failed: %w", err)
}
