package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/cfpwatch/internal/model"
	"github.com/ppiankov/cfpwatch/internal/pipeline"
)

var (
	extractAcronym string
	extractYear    int
)

var extractCmd = &cobra.Command{
	Use:   "extract <url>",
	Short: "Extract and validate the deadline from a known page",
	Long: `Extract skips site resolution and reads the paper deadline from the given
page (and its CFP subpages). The record is validated and printed as JSON.
Nothing is written to the store.

Example:
  cfpwatch extract https://iscaconf.org/isca2026/ --acronym ISCA --year 2026`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVar(&extractAcronym, "acronym", "", "conference acronym (required)")
	extractCmd.Flags().IntVar(&extractYear, "year", time.Now().Year(), "edition year")
	extractCmd.Flags().Duration("timeout", 2*time.Minute, "overall timeout")
	_ = extractCmd.MarkFlagRequired("acronym")
	addFetchFlags(extractCmd)
	addLLMFlags(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	if err := applyFlags(cmd, cfg); err != nil {
		return err
	}

	d, _ := cmd.Flags().GetDuration("timeout")
	ctx, cancel := signalContext(d)
	defer cancel()

	p, err := pipeline.New(cfg, pipeline.WithLogger(slog.Default()))
	if err != nil {
		return err
	}

	key := model.NewConferenceKey(extractAcronym, extractYear)
	if verbose {
		fmt.Fprintf(os.Stderr, "Extracting %s from %s\n", key.Name(), args[0])
		fmt.Fprintf(os.Stderr, "Strategies: %v\n\n", p.Strategies())
	}

	result := p.ExtractURL(ctx, args[0], key)
	if err := writeJSON(os.Stdout, result); err != nil {
		return err
	}
	if result.Status == pipeline.StatusNotFound {
		return fmt.Errorf("extract failed: %s", result.Error)
	}
	return nil
}
