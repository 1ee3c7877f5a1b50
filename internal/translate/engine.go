package translate

import (
	"context"
	"fmt"
	"strings"
)

// Request carries one translation: the source text and the language
// pair. It is built per row and not retained after the call.
type Request struct {
	Text       string
	SourceLang string
	TargetLang string
}

// Engine is the interface to a translation backend.
type Engine interface {
	// Translate returns the translated text. Empty or whitespace-only
	// input is returned unchanged without a remote call.
	Translate(ctx context.Context, req Request) (string, error)

	// Name returns the backend name.
	Name() string
}

// Config holds common configuration for translation engines.
type Config struct {
	Provider    string // "bedrock" or "openai"
	Model       string
	Region      string // Bedrock endpoint region
	MaxTokens   int
	Temperature float32

	// OpenAI-specific settings
	OpenAIKey string

	// Caching
	EnableCache bool
	CacheFile   string
}

// DefaultEngineConfig returns the default engine configuration,
// matching the original deployment: Claude Haiku on Bedrock in
// us-east-1 with a bounded response budget and low temperature.
func DefaultEngineConfig() *Config {
	return &Config{
		Provider:    "bedrock",
		Model:       "us.anthropic.claude-haiku-4-5-20251001-v1:0",
		Region:      "us-east-1",
		MaxTokens:   4096,
		Temperature: 0.3,
	}
}

// NewEngine creates the appropriate translation engine based on
// configuration.
func NewEngine(ctx context.Context, config *Config) (Engine, error) {
	if config == nil {
		config = DefaultEngineConfig()
	}

	switch config.Provider {
	case "bedrock":
		return NewBedrockEngine(ctx, config)

	case "openai":
		if config.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		return NewOpenAIEngine(config), nil

	default:
		return nil, fmt.Errorf("unknown translation provider: %s", config.Provider)
	}
}

// buildPrompt builds the single-turn translation prompt. The model is
// told to return only the translation so no explanation has to be
// stripped afterwards.
func buildPrompt(req Request) string {
	return fmt.Sprintf(`Translate the following text from %s to %s.
Return only the translation, without any explanation or extra content.

Text:
%s

Translation:`, req.SourceLang, req.TargetLang, req.Text)
}

// quotePairs lists wrapping quote artifacts some models add around the
// translation despite the prompt.
var quotePairs = [][2]string{
	{`"`, `"`},
	{"'", "'"},
	{"「", "」"}, // 「 」
	{"『", "』"}, // 『 』
	{"“", "”"}, // “ ”
}

// cleanOutput trims whitespace and strips one layer of wrapping quotes
// from the raw model output.
func cleanOutput(s string) string {
	s = strings.TrimSpace(s)
	for _, pair := range quotePairs {
		if len(s) > len(pair[0])+len(pair[1]) &&
			strings.HasPrefix(s, pair[0]) && strings.HasSuffix(s, pair[1]) {
			s = strings.TrimSpace(s[len(pair[0]) : len(s)-len(pair[1])])
			break
		}
	}
	return s
}
