package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/xltranslate/internal"
	"codeberg.org/snonux/xltranslate/internal/processor"
	"codeberg.org/snonux/xltranslate/internal/translate"
	"codeberg.org/snonux/xltranslate/internal/workbook"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "xltranslate [workbook.xlsx]",
		Short: "Excel Column Translator",
		Long: `xltranslate translates one text column of an Excel workbook through a
hosted language model (AWS Bedrock by default) and writes the result
into a target column of a new workbook <stem>_translated.xlsx.

Examples:
  xltranslate feedback.xlsx                      # Translate the "Content" column en->ja
  xltranslate feedback.xlsx --source-column Text --target-lang de
  xltranslate --list-models                      # Show models enabled for this account`,
		Args:    cobra.MaximumNArgs(1),
		Version: internal.Version,
	}

	// Set up flags
	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.xltranslate.yaml)")

	// Local flags
	cmd.Flags().StringVarP(&flags.SheetName, "sheet", "s", flags.SheetName, "Sheet to read")
	cmd.Flags().StringVar(&flags.SourceColumn, "source-column", flags.SourceColumn, "Header of the column to translate (exact match)")
	cmd.Flags().StringVar(&flags.TargetColumn, "target-column", flags.TargetColumn, "Header, letter or 1-based index of the column to write (appended if absent)")
	cmd.Flags().StringVarP(&flags.OutputFile, "output", "o", "", "Output file (default <input-stem>_translated.xlsx)")
	cmd.Flags().BoolVar(&flags.ListModels, "list-models", false, "List models available to the current credentials and exit")
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "Load and resolve columns only, make no API calls")

	// Translation flags
	cmd.Flags().StringVar(&flags.Provider, "provider", flags.Provider, "Translation provider: bedrock or openai")
	cmd.Flags().StringVar(&flags.Model, "model", flags.Model, "Model identifier")
	cmd.Flags().StringVar(&flags.Region, "region", flags.Region, "Bedrock endpoint region")
	cmd.Flags().StringVar(&flags.SourceLang, "source-lang", flags.SourceLang, "Source language tag")
	cmd.Flags().StringVar(&flags.TargetLang, "target-lang", flags.TargetLang, "Target language tag")
	cmd.Flags().IntVar(&flags.MaxRetries, "max-retries", flags.MaxRetries, "Attempt ceiling per row on throttling")
	cmd.Flags().DurationVar(&flags.RequestInterval, "request-interval", flags.RequestInterval, "Fixed delay after every translation call")
	cmd.Flags().IntVar(&flags.MaxTokens, "max-tokens", flags.MaxTokens, "Response token budget per call")
	cmd.Flags().Float64Var(&flags.Temperature, "temperature", flags.Temperature, "Sampling temperature")

	// Cache flags
	cmd.Flags().BoolVar(&flags.EnableCache, "cache", false, "Serve repeated cells from a persistent translation cache")
	cmd.Flags().StringVar(&flags.CacheFile, "cache-file", flags.CacheFile, "Path of the sqlite translation cache")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("input.sheet", cmd.Flags().Lookup("sheet"))
	viper.BindPFlag("input.source_column", cmd.Flags().Lookup("source-column"))
	viper.BindPFlag("input.target_column", cmd.Flags().Lookup("target-column"))
	viper.BindPFlag("output.file", cmd.Flags().Lookup("output"))
	viper.BindPFlag("translation.provider", cmd.Flags().Lookup("provider"))
	viper.BindPFlag("translation.model", cmd.Flags().Lookup("model"))
	viper.BindPFlag("translation.region", cmd.Flags().Lookup("region"))
	viper.BindPFlag("translation.source_lang", cmd.Flags().Lookup("source-lang"))
	viper.BindPFlag("translation.target_lang", cmd.Flags().Lookup("target-lang"))
	viper.BindPFlag("translation.max_retries", cmd.Flags().Lookup("max-retries"))
	viper.BindPFlag("translation.request_interval", cmd.Flags().Lookup("request-interval"))
	viper.BindPFlag("translation.max_tokens", cmd.Flags().Lookup("max-tokens"))
	viper.BindPFlag("translation.temperature", cmd.Flags().Lookup("temperature"))
	viper.BindPFlag("cache.enable", cmd.Flags().Lookup("cache"))
	viper.BindPFlag("cache.file", cmd.Flags().Lookup("cache-file"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".xltranslate" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".xltranslate")
	}

	// Environment variables
	viper.SetEnvPrefix("XLTRANSLATE")
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// BuildConfig assembles the immutable run configuration from the bound
// flags, config file and environment. Flag binding means changed flags
// win over config file values, which win over flag defaults.
func BuildConfig(inputFile string, flags *Flags) (*processor.Config, *translate.Config) {
	runCfg := processor.DefaultConfig()
	runCfg.InputFile = inputFile
	runCfg.Sheet = viper.GetString("input.sheet")
	runCfg.SourceColumn = workbook.NameLocator(viper.GetString("input.source_column"))
	runCfg.TargetColumn = workbook.ParseLocator(viper.GetString("input.target_column"))
	runCfg.SourceLang = viper.GetString("translation.source_lang")
	runCfg.TargetLang = viper.GetString("translation.target_lang")
	runCfg.MaxRetries = viper.GetInt("translation.max_retries")
	runCfg.RequestInterval = viper.GetDuration("translation.request_interval")
	runCfg.OutputFile = viper.GetString("output.file")
	runCfg.DryRun = flags.DryRun

	engineCfg := translate.DefaultEngineConfig()
	engineCfg.Provider = viper.GetString("translation.provider")
	engineCfg.Model = viper.GetString("translation.model")
	engineCfg.Region = viper.GetString("translation.region")
	engineCfg.MaxTokens = viper.GetInt("translation.max_tokens")
	engineCfg.Temperature = float32(viper.GetFloat64("translation.temperature"))
	engineCfg.OpenAIKey = GetOpenAIKey()
	engineCfg.EnableCache = viper.GetBool("cache.enable")
	engineCfg.CacheFile = viper.GetString("cache.file")

	return runCfg, engineCfg
}

// GetOpenAIKey retrieves the OpenAI API key from environment or config
func GetOpenAIKey() string {
	// First check environment variable
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return key
	}

	// Then check config file
	return viper.GetString("translation.openai_key")
}
