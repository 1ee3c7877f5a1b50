package processor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"codeberg.org/snonux/xltranslate/internal/translate"
	"codeberg.org/snonux/xltranslate/internal/workbook"
)

// ErrorMarker prefixes the target cell of a row whose translation
// failed, so the operator can find and re-run failed rows without
// losing the rest.
const ErrorMarker = "ERROR: "

// Config is the immutable run configuration, constructed once at
// startup from flags and the config file.
type Config struct {
	InputFile    string
	Sheet        string
	SourceColumn workbook.ColumnLocator
	TargetColumn workbook.ColumnLocator
	SourceLang   string
	TargetLang   string

	// MaxRetries is the per-row attempt ceiling on throttling.
	MaxRetries int
	// RequestInterval is the unconditional delay after every row call,
	// keeping the aggregate request rate bounded regardless of outcome.
	RequestInterval time.Duration
	// BackoffBase is the first retry delay; it doubles per attempt.
	BackoffBase time.Duration

	// OutputFile overrides the derived <stem>_translated.xlsx path.
	OutputFile string
	// DryRun loads and resolves only, making no API calls.
	DryRun bool
}

// DefaultConfig returns the default run configuration.
func DefaultConfig() *Config {
	return &Config{
		SourceLang:      "en",
		TargetLang:      "ja",
		MaxRetries:      3,
		RequestInterval: 500 * time.Millisecond,
		BackoffBase:     time.Second,
	}
}

// Summary reports the outcome of a run.
type Summary struct {
	Total      int
	Translated int
	Failed     int
	Skipped    int
	Cached     int
	Elapsed    time.Duration
	OutputPath string
}

// cacheHitCounter is implemented by translate.CachedEngine.
type cacheHitCounter interface {
	Hits() int
}

// Processor drives the sequential read-translate-write pipeline. One
// request is in flight at a time; the sleep function is injectable so
// tests run without real delays.
type Processor struct {
	cfg    *Config
	engine translate.Engine
	sleep  func(time.Duration)
	now    func() time.Time
}

// New creates a processor for the given configuration and engine.
func New(cfg *Config, engine translate.Engine) *Processor {
	return &Processor{
		cfg:    cfg,
		engine: engine,
		sleep:  time.Sleep,
		now:    time.Now,
	}
}

// Run executes the whole pipeline. Configuration and column errors are
// returned before any API call; fatal engine errors abort with no
// output file written.
func (p *Processor) Run(ctx context.Context) (*Summary, error) {
	start := p.now()

	doc, err := workbook.Load(p.cfg.InputFile, p.cfg.Sheet)
	if err != nil {
		return nil, err
	}
	if err := doc.ResolveColumns(p.cfg.SourceColumn, p.cfg.TargetColumn); err != nil {
		return nil, err
	}

	fmt.Printf("Read %d rows from %s (sheet %s)\n", len(doc.Rows), p.cfg.InputFile, p.cfg.Sheet)
	if doc.TargetCreated() {
		fmt.Printf("Target column %q not present, appending it\n", p.cfg.TargetColumn.Name)
	}

	if p.cfg.DryRun {
		return &Summary{Total: len(doc.Rows), Elapsed: p.now().Sub(start)}, nil
	}

	summary, err := p.processRows(ctx, doc, start)
	if err != nil {
		return nil, err
	}

	outputPath := p.cfg.OutputFile
	if outputPath == "" {
		outputPath = doc.OutputPath()
	}
	if err := doc.Write(outputPath); err != nil {
		return nil, err
	}
	summary.OutputPath = outputPath
	summary.Elapsed = p.now().Sub(start)

	return summary, nil
}

// processRows iterates the rows in original order. Empty source cells
// produce empty target cells without a call; per-row failures leave an
// error marker and the run continues; fatal errors propagate.
func (p *Processor) processRows(ctx context.Context, doc *workbook.Document, start time.Time) (*Summary, error) {
	summary := &Summary{Total: len(doc.Rows)}

	for i := range doc.Rows {
		text := doc.SourceText(i)
		if strings.TrimSpace(text) == "" {
			doc.SetTarget(i, "")
			summary.Skipped++
			continue
		}

		elapsed := p.now().Sub(start)
		fmt.Printf("[%d/%d] translating (%.1fs elapsed)\n", i+1, summary.Total, elapsed.Seconds())
		fmt.Printf("  source: %s\n", preview(text))

		translated, err := p.translateWithRetry(ctx, translate.Request{
			Text:       text,
			SourceLang: p.cfg.SourceLang,
			TargetLang: p.cfg.TargetLang,
		})
		if err != nil {
			if translate.IsFatal(err) {
				return nil, err
			}
			doc.SetTarget(i, ErrorMarker+err.Error())
			summary.Failed++
			fmt.Printf("  failed: %v\n", err)
		} else {
			doc.SetTarget(i, translated)
			summary.Translated++
			fmt.Printf("  result: %s\n", preview(translated))
		}

		// Pace every call the same way, whether it succeeded or not.
		p.sleep(p.cfg.RequestInterval)
	}

	if counter, ok := p.engine.(cacheHitCounter); ok {
		summary.Cached = counter.Hits()
	}
	return summary, nil
}

// translateWithRetry retries throttled calls with exponential backoff
// up to the configured attempt ceiling. Any other error is returned to
// the caller after the first attempt.
func (p *Processor) translateWithRetry(ctx context.Context, req translate.Request) (string, error) {
	backoff := p.cfg.BackoffBase

	for attempt := 1; ; attempt++ {
		translated, err := p.engine.Translate(ctx, req)
		if err == nil {
			return translated, nil
		}
		if !translate.IsRateLimit(err) || attempt >= p.cfg.MaxRetries {
			return "", err
		}

		fmt.Printf("  throttled, retrying in %s (attempt %d/%d)\n", backoff, attempt, p.cfg.MaxRetries)
		p.sleep(backoff)
		backoff *= 2
	}
}

// Print writes the final run summary to stdout.
func (s *Summary) Print() {
	fmt.Printf("\n=== Translation Summary ===\n")
	fmt.Printf("Total rows: %d\n", s.Total)
	fmt.Printf("Translated: %d\n", s.Translated)
	fmt.Printf("Skipped (empty): %d\n", s.Skipped)
	if s.Cached > 0 {
		fmt.Printf("Served from cache: %d\n", s.Cached)
	}
	if s.Failed > 0 {
		fmt.Printf("Failed: %d\n", s.Failed)
	}
	fmt.Printf("Elapsed: %s\n", s.Elapsed.Round(time.Millisecond))
	fmt.Printf("===========================\n")
}

// preview shortens long cell values for progress output.
func preview(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	runes := []rune(s)
	if len(runes) <= 50 {
		return s
	}
	return string(runes[:50]) + "..."
}
