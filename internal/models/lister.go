package models

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrock"
	bedrocktypes "github.com/aws/aws-sdk-go-v2/service/bedrock/types"
	"github.com/sashabaranov/go-openai"
)

// Lister lists the models usable for translation with the current
// credentials.
type Lister struct {
	provider  string
	region    string
	openAIKey string
}

// NewLister creates a model lister for the given provider.
func NewLister(provider, region, openAIKey string) *Lister {
	return &Lister{
		provider:  provider,
		region:    region,
		openAIKey: openAIKey,
	}
}

// ListAvailableModels prints the available text models for the
// configured provider.
func (l *Lister) ListAvailableModels(ctx context.Context) error {
	switch l.provider {
	case "bedrock":
		return l.listBedrockModels(ctx)
	case "openai":
		return l.listOpenAIModels(ctx)
	default:
		return fmt.Errorf("unknown translation provider: %s", l.provider)
	}
}

// listBedrockModels lists text-output foundation models in the
// configured region, grouped by model provider.
func (l *Lister) listBedrockModels(ctx context.Context) error {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(l.region))
	if err != nil {
		return fmt.Errorf("failed to load AWS configuration: %w", err)
	}
	client := bedrock.NewFromConfig(awsCfg)

	out, err := client.ListFoundationModels(ctx, &bedrock.ListFoundationModelsInput{
		ByOutputModality: bedrocktypes.ModelModalityText,
	})
	if err != nil {
		return fmt.Errorf("failed to list foundation models: %w", err)
	}

	byProvider := make(map[string][]string)
	for _, summary := range out.ModelSummaries {
		provider := aws.ToString(summary.ProviderName)
		byProvider[provider] = append(byProvider[provider], aws.ToString(summary.ModelId))
	}

	providers := make([]string, 0, len(byProvider))
	for p := range byProvider {
		providers = append(providers, p)
	}
	sort.Strings(providers)

	fmt.Printf("Text models available on Bedrock (region %s):\n", l.region)
	for _, p := range providers {
		ids := byProvider[p]
		sort.Strings(ids)
		fmt.Printf("\n%s:\n", p)
		for _, id := range ids {
			fmt.Printf("  %s\n", id)
		}
	}
	fmt.Println("\nA model missing from this list must be enabled in the Bedrock console first.")
	return nil
}

// listOpenAIModels lists chat-capable OpenAI models.
func (l *Lister) listOpenAIModels(ctx context.Context) error {
	if l.openAIKey == "" {
		return fmt.Errorf("OpenAI API key not found. Set OPENAI_API_KEY environment variable or configure in .xltranslate.yaml")
	}

	client := openai.NewClient(l.openAIKey)
	models, err := client.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("failed to list models: %w", err)
	}

	chatModels := []string{}
	for _, model := range models.Models {
		if strings.Contains(model.ID, "gpt") || strings.Contains(model.ID, "chat") {
			chatModels = append(chatModels, model.ID)
		}
	}
	sort.Strings(chatModels)

	fmt.Println("Chat models available for translation:")
	for _, model := range chatModels {
		fmt.Printf("  %s\n", model)
	}
	return nil
}
