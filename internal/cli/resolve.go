package cli

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/cfpwatch/internal/pipeline"
	"github.com/ppiankov/cfpwatch/internal/resolve"
)

var (
	resolveYear int
	resolveAll  bool
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <acronym>",
	Short: "Find the official site of one conference edition",
	Long: `Resolve searches for the official website of a conference edition and
prints the winning candidate with its scoring signals.

Example:
  cfpwatch resolve ISCA --year 2026
  cfpwatch resolve MICRO --all --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)

	resolveCmd.Flags().IntVar(&resolveYear, "year", time.Now().Year(), "edition year")
	resolveCmd.Flags().BoolVar(&resolveAll, "all", false, "print every candidate, including rejected ones")
	resolveCmd.Flags().String("format", "text", "output format (text, json)")
	resolveCmd.Flags().Duration("timeout", 2*time.Minute, "overall timeout")
	addFetchFlags(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	if err := applyFlags(cmd, cfg); err != nil {
		return err
	}

	d, _ := cmd.Flags().GetDuration("timeout")
	ctx, cancel := signalContext(d)
	defer cancel()

	p, err := pipeline.New(cfg, pipeline.WithLogger(slog.Default()), pipeline.WithProvider(nil))
	if err != nil {
		return err
	}

	res, err := p.Resolver().Investigate(ctx, args[0], resolveYear)
	if err != nil {
		return fmt.Errorf("resolve failed: %w", err)
	}

	ranked := res.Ranked()
	if format, _ := cmd.Flags().GetString("format"); format == "json" {
		if resolveAll {
			return writeJSON(os.Stdout, res)
		}
		if len(ranked) == 0 {
			return fmt.Errorf("%s: %w", res.Key.Name(), resolve.ErrNotFound)
		}
		return writeJSON(os.Stdout, ranked[0])
	}

	if resolveAll {
		renderCandidates(os.Stdout, res.Candidates)
		fmt.Println()
	}
	if len(ranked) == 0 {
		fmt.Printf("%s: not found\n", res.Key.Name())
		for _, e := range res.Errors {
			fmt.Printf("  search error: %s\n", e)
		}
		return fmt.Errorf("%s: %w", res.Key.Name(), resolve.ErrNotFound)
	}
	renderSite(os.Stdout, res.Key.Name(), &ranked[0])
	return nil
}
