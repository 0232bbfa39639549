package extract

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ppiankov/cfpwatch/internal/fetch"
	"github.com/ppiankov/cfpwatch/internal/model"
)

// PageFetcher retrieves pages; *fetch.Fetcher satisfies it
type PageFetcher interface {
	FetchWithRetry(ctx context.Context, url string) (*fetch.FetchResult, error)
}

// Extractor runs the strategy chain over a page and, when the page yields
// nothing, over its likely deadline subpages
type Extractor struct {
	fetcher     PageFetcher
	chain       *Chain
	maxText     int
	maxSubpages int
	logger      *slog.Logger
}

// New builds the default chain: keyword, table, full scan, then the
// delegate when one is given (first when cfg.DelegateFirst is set)
func New(fetcher PageFetcher, cfg model.ExtractConfig, delegate Strategy) *Extractor {
	chain := NewChain(
		NewKeywordStrategy(cfg.KeywordWindow),
		NewTableStrategy(),
		NewFullScanStrategy(cfg.ScanRadius),
	)
	if delegate != nil {
		if cfg.DelegateFirst {
			chain.Prepend(delegate)
		} else {
			chain.Register(delegate)
		}
	}

	return &Extractor{
		fetcher:     fetcher,
		chain:       chain,
		maxText:     cfg.MaxPageText,
		maxSubpages: cfg.MaxSubpages,
		logger:      slog.Default(),
	}
}

// WithLogger sets the logger for the extractor and its chain
func (e *Extractor) WithLogger(l *slog.Logger) *Extractor {
	if l != nil {
		e.logger = l
		e.chain.logger = l
	}
	return e
}

// Strategies returns the strategy names in the order they are tried
func (e *Extractor) Strategies() []string {
	return e.chain.Names()
}

// ExtractPage runs the chain over an already parsed page
func (e *Extractor) ExtractPage(ctx context.Context, page *Page, target Target) (*Candidate, error) {
	return e.chain.Run(ctx, page, target)
}

// ExtractURL fetches url and extracts a candidate from it or its subpages.
// A fetch failure of the main page is returned as is; a page that yields no
// deadline returns ErrExtractionFailed.
func (e *Extractor) ExtractURL(ctx context.Context, url string, target Target) (*Candidate, error) {
	landing, err := e.fetchPage(ctx, url)
	if err != nil {
		return nil, err
	}

	cand, err := e.chain.Run(ctx, landing, target)
	if err == nil {
		return cand, nil
	}
	if !errors.Is(err, ErrExtractionFailed) {
		return nil, err
	}

	for _, sub := range landing.Subpages(e.maxSubpages) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page, err := e.fetchPage(ctx, sub)
		if err != nil {
			e.logger.Debug("subpage fetch failed", "url", sub, "error", err)
			continue
		}

		cand, err := e.chain.Run(ctx, page, target)
		if err != nil {
			continue
		}

		// the landing page usually carries venue and dates
		fillSecondary(landing, target, cand)
		e.logger.Debug("deadline found on subpage", "url", sub, "strategy", cand.Strategy)
		return cand, nil
	}

	return nil, ErrExtractionFailed
}

func (e *Extractor) fetchPage(ctx context.Context, url string) (*Page, error) {
	result, err := e.fetcher.FetchWithRetry(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}

	pageURL := result.FinalURL
	if pageURL == "" {
		pageURL = url
	}
	return NewPage(result.HTML, pageURL, e.maxText)
}
