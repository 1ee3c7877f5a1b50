package cli

import "time"

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile      string
	SheetName    string
	SourceColumn string
	TargetColumn string
	OutputFile   string
	ListModels   bool
	DryRun       bool

	// Translation flags
	Provider        string
	Model           string
	Region          string
	SourceLang      string
	TargetLang      string
	MaxRetries      int
	RequestInterval time.Duration
	MaxTokens       int
	Temperature     float64

	// Cache flags
	EnableCache bool
	CacheFile   string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		SheetName:       "Sheet1",
		SourceColumn:    "Content",
		TargetColumn:    "Translation",
		Provider:        "bedrock",
		Model:           "us.anthropic.claude-haiku-4-5-20251001-v1:0",
		Region:          "us-east-1",
		SourceLang:      "en",
		TargetLang:      "ja",
		MaxRetries:      3,
		RequestInterval: 500 * time.Millisecond,
		MaxTokens:       4096,
		Temperature:     0.3,
		CacheFile:       "./.translation_cache.db",
	}
}
