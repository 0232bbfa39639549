package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/cfpwatch/internal/llm"
	"github.com/ppiankov/cfpwatch/internal/model"
	"github.com/ppiankov/cfpwatch/internal/pipeline"
	"github.com/ppiankov/cfpwatch/internal/tracklist"
)

var (
	storePath     string
	changeLogPath string
	catalogPath   string
	workers       int
	yearOffsets   []int
	llmProvider   string
	llmModel      string
	delegateFirst bool
	noCache       bool
	noRobots      bool
	outputFormat  string
)

// trackCmd represents the track command
var trackCmd = &cobra.Command{
	Use:   "track <list-file>",
	Short: "Refresh deadlines for every conference in a tracked list",
	Long: `Track runs the full pipeline for each acronym in the list file:
- Resolve the official site of the current and next edition
- Extract the paper submission deadline
- Validate the deadline against the edition year
- Compare with the stored database and log changes

The list file holds one acronym per line; '#' starts a comment.

Example:
  cfpwatch track conferences.txt
  cfpwatch track conferences.txt --workers 4 --store ~/cfp/db.json
  cfpwatch track conferences.txt --llm openai --llm-model gpt-4o-mini`,
	Args: cobra.ExactArgs(1),
	RunE: runTrack,
}

func init() {
	rootCmd.AddCommand(trackCmd)

	// Storage flags
	trackCmd.Flags().StringVar(&storePath, "store", "", "deadline database path (overrides storage.store_path)")
	trackCmd.Flags().StringVar(&changeLogPath, "changelog", "", "change log path (overrides storage.changelog_path)")
	trackCmd.Flags().StringVar(&catalogPath, "catalog", "", "TOML catalog overlay")

	// Run flags
	trackCmd.Flags().IntVar(&workers, "workers", 1, "number of conferences processed concurrently")
	trackCmd.Flags().IntSliceVar(&yearOffsets, "years", []int{0, 1}, "year offsets tracked relative to the current year")
	trackCmd.Flags().Duration("timeout", 30*time.Minute, "overall run timeout")
	trackCmd.Flags().StringVar(&outputFormat, "format", "text", "summary format (text, json)")

	addFetchFlags(trackCmd)
	addLLMFlags(trackCmd)
}

func addFetchFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable cache (force fresh fetch)")
	cmd.Flags().BoolVar(&noRobots, "no-robots", false, "ignore robots.txt on conference sites")
}

func addLLMFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&llmProvider, "llm", "", "LLM delegate provider (openai, anthropic, ollama, gemini)")
	cmd.Flags().StringVar(&llmModel, "llm-model", "", "LLM model name")
	cmd.Flags().BoolVar(&delegateFirst, "delegate-first", false, "try the LLM delegate before the rule-based strategies")
}

// applyFlags copies explicitly set flags over the loaded configuration
func applyFlags(cmd *cobra.Command, c *model.Config) error {
	flags := cmd.Flags()
	if flags.Changed("store") {
		c.Storage.StorePath = storePath
	}
	if flags.Changed("changelog") {
		c.Storage.ChangeLogPath = changeLogPath
	}
	if flags.Changed("catalog") {
		c.CatalogPath = catalogPath
	}
	if flags.Changed("workers") {
		if workers < 1 {
			return fmt.Errorf("--workers must be at least 1")
		}
		c.Concurrency.Workers = workers
	}
	if flags.Changed("no-cache") {
		c.Cache.Enabled = !noCache
	}
	if flags.Changed("no-robots") {
		c.HTTP.RespectRobots = !noRobots
	}
	if flags.Changed("delegate-first") {
		c.Extract.DelegateFirst = delegateFirst
	}
	if flags.Changed("llm-model") {
		c.LLM.Model = llmModel
	}
	if flags.Changed("llm") {
		c.LLM.Provider = llmProvider
		// Fail early on an explicit request instead of silently running without a delegate
		if _, err := llm.NewProvider(llm.ConfigFromModel(c.LLM, c.HTTP)); err != nil {
			return fmt.Errorf("llm: %w", err)
		}
	}
	if flags.Changed("delegate-first") && c.Extract.DelegateFirst && c.LLM.Provider == "" {
		return fmt.Errorf("--delegate-first: %w", llm.ErrNoProvider)
	}
	return nil
}

// signalContext returns a context cancelled on SIGINT/SIGTERM or after d
func signalContext(d time.Duration) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	ctx, cancel := context.WithTimeout(ctx, d)
	return ctx, func() {
		cancel()
		stop()
	}
}

func runTrack(cmd *cobra.Command, args []string) error {
	if outputFormat != "text" && outputFormat != "json" {
		return fmt.Errorf("unknown format %q (supported: text, json)", outputFormat)
	}

	acronyms, err := tracklist.Load(args[0])
	if err != nil {
		return err
	}
	if len(acronyms) == 0 {
		return fmt.Errorf("tracked list %s is empty", args[0])
	}

	if err := applyFlags(cmd, cfg); err != nil {
		return err
	}

	d, _ := cmd.Flags().GetDuration("timeout")
	ctx, cancel := signalContext(d)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Tracking %d conferences (years %v, %d workers)\n", len(acronyms), yearOffsets, cfg.Concurrency.Workers)
		fmt.Fprintf(os.Stderr, "Store: %s\n", cfg.Storage.StorePath)
		fmt.Fprintf(os.Stderr, "Change log: %s\n", cfg.Storage.ChangeLogPath)
		fmt.Fprintln(os.Stderr)
	}

	p, err := pipeline.New(cfg,
		pipeline.WithLogger(slog.Default()),
		pipeline.WithYearOffsets(yearOffsets...),
	)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "Strategies: %v\n\n", p.Strategies())
	}

	summary, err := p.Run(ctx, acronyms)
	if summary != nil {
		if renderErr := renderSummary(os.Stdout, summary, outputFormat); renderErr != nil && err == nil {
			err = renderErr
		}
	}
	if err != nil {
		return fmt.Errorf("track failed: %w", err)
	}
	return nil
}
