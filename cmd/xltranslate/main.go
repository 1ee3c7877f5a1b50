package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/xltranslate/internal/cli"
	"codeberg.org/snonux/xltranslate/internal/models"
	"codeberg.org/snonux/xltranslate/internal/processor"
	"codeberg.org/snonux/xltranslate/internal/translate"
	"codeberg.org/snonux/xltranslate/internal/workbook"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, args, flags)
	}

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	ctx := context.Background()

	// The default model is a Bedrock identifier; pick a sensible OpenAI
	// default when the provider is switched without --model.
	if flags.Provider == "openai" && !cmd.Flags().Changed("model") {
		cmd.Flags().Set("model", "gpt-4o-mini")
		fmt.Printf("Note: Using model gpt-4o-mini for OpenAI (use --model to override)\n")
	}

	// Handle --list-models flag
	if flags.ListModels {
		_, engineCfg := cli.BuildConfig("", flags)
		lister := models.NewLister(engineCfg.Provider, engineCfg.Region, engineCfg.OpenAIKey)
		return lister.ListAvailableModels(ctx)
	}

	if len(args) == 0 {
		return fmt.Errorf("please provide an input workbook (.xlsx)")
	}

	runCfg, engineCfg := cli.BuildConfig(args[0], flags)

	if runCfg.DryRun {
		proc := processor.New(runCfg, nil)
		summary, err := proc.Run(ctx)
		if err != nil {
			return reportFatal(err)
		}
		fmt.Printf("Dry run: %d rows would be translated (%s -> %s)\n",
			summary.Total, runCfg.SourceLang, runCfg.TargetLang)
		return nil
	}

	engine, err := buildEngine(ctx, engineCfg)
	if err != nil {
		return reportFatal(err)
	}

	fmt.Printf("Translating %s -> %s using %s model %s\n",
		runCfg.SourceLang, runCfg.TargetLang, engine.Name(), engineCfg.Model)

	proc := processor.New(runCfg, engine)
	summary, err := proc.Run(ctx)
	if err != nil {
		return reportFatal(err)
	}

	summary.Print()
	fmt.Printf("\nDone! Output saved to: %s\n", summary.OutputPath)
	return nil
}

// buildEngine assembles the engine stack: provider, circuit breaker,
// optional persistent cache.
func buildEngine(ctx context.Context, cfg *translate.Config) (translate.Engine, error) {
	engine, err := translate.NewEngine(ctx, cfg)
	if err != nil {
		return nil, err
	}

	engine = translate.NewBreakerEngine(engine)

	if cfg.EnableCache {
		cache, err := translate.OpenCache(cfg.CacheFile)
		if err != nil {
			return nil, err
		}
		engine = translate.NewCachedEngine(engine, cache, cfg.Model)
	}

	return engine, nil
}

// reportFatal prints a remediation hint for fatal errors before
// returning them to cobra.
func reportFatal(err error) error {
	var authErr *translate.AuthError
	if errors.As(err, &authErr) {
		fmt.Fprintf(os.Stderr, "Hint: %s\n", authErr.Remediation())
		return err
	}
	var modelErr *translate.ModelUnavailableError
	if errors.As(err, &modelErr) {
		fmt.Fprintf(os.Stderr, "Hint: %s\n", modelErr.Remediation())
		return err
	}
	var colErr *workbook.ColumnNotFoundError
	if errors.As(err, &colErr) {
		fmt.Fprintln(os.Stderr, "Hint: column matching is exact and case-sensitive")
		return err
	}
	return err
}
