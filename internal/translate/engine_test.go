package translate

import (
	"context"
	"strings"
	"testing"
)

func TestBuildPrompt(t *testing.T) {
	prompt := buildPrompt(Request{Text: "Good morning", SourceLang: "en", TargetLang: "ja"})

	for _, want := range []string{"from en to ja", "Good morning", "only the translation"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestCleanOutput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "おはよう", "おはよう"},
		{"surrounding whitespace", "  おはよう \n", "おはよう"},
		{"double quotes", `"おはよう"`, "おはよう"},
		{"single quotes", "'おはよう'", "おはよう"},
		{"corner brackets", "「おはよう」", "おはよう"},
		{"white corner brackets", "『おはよう』", "おはよう"},
		{"curly quotes", "\u201cおはよう\u201d", "おはよう"},
		{"only one layer stripped", `""おはよう""`, `"おはよう"`},
		{"inner quotes kept", `he said "hi"`, `he said "hi"`},
		{"quote plus whitespace", " \"おはよう\" ", "おはよう"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanOutput(tt.input); got != tt.want {
				t.Errorf("cleanOutput(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewEngine_UnknownProvider(t *testing.T) {
	cfg := DefaultEngineConfig()
	cfg.Provider = "carrier-pigeon"

	if _, err := NewEngine(context.Background(), cfg); err == nil {
		t.Error("Expected error for unknown provider")
	}
}

func TestNewEngine_OpenAIRequiresKey(t *testing.T) {
	cfg := DefaultEngineConfig()
	cfg.Provider = "openai"
	cfg.OpenAIKey = ""

	if _, err := NewEngine(context.Background(), cfg); err == nil {
		t.Error("Expected error for missing OpenAI API key")
	}
}

func TestDefaultEngineConfig(t *testing.T) {
	cfg := DefaultEngineConfig()

	if cfg.Provider != "bedrock" {
		t.Errorf("Provider = %q, want bedrock", cfg.Provider)
	}
	if cfg.Region != "us-east-1" {
		t.Errorf("Region = %q, want us-east-1", cfg.Region)
	}
	if cfg.MaxTokens != 4096 {
		t.Errorf("MaxTokens = %d, want 4096", cfg.MaxTokens)
	}
	if cfg.Temperature != 0.3 {
		t.Errorf("Temperature = %v, want 0.3", cfg.Temperature)
	}
}
