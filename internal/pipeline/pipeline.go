// Package pipeline runs resolve, extract, validate and change detection for
// every tracked conference edition.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/ppiankov/cfpwatch/internal/cache"
	"github.com/ppiankov/cfpwatch/internal/catalog"
	"github.com/ppiankov/cfpwatch/internal/change"
	"github.com/ppiankov/cfpwatch/internal/extract"
	"github.com/ppiankov/cfpwatch/internal/fetch"
	"github.com/ppiankov/cfpwatch/internal/llm"
	"github.com/ppiankov/cfpwatch/internal/model"
	"github.com/ppiankov/cfpwatch/internal/resolve"
	"github.com/ppiankov/cfpwatch/internal/search"
	"github.com/ppiankov/cfpwatch/internal/storage"
	"github.com/ppiankov/cfpwatch/internal/util"
	"github.com/ppiankov/cfpwatch/internal/validate"
	"github.com/ppiankov/cfpwatch/internal/worker"
)

// Status is the outcome of one unit
type Status string

const (
	StatusFound              Status = "found"
	StatusNotFound           Status = "not_found"
	StatusExtractionFailed   Status = "extraction_failed"
	StatusValidationRejected Status = "validation_rejected"
)

// UnitResult is the outcome of one (acronym, year) unit
type UnitResult struct {
	Key       model.ConferenceKey   `json:"key"`
	Status    Status                `json:"status"`
	Record    *model.DeadlineRecord `json:"record,omitempty"`
	Site      *model.CandidateSite  `json:"site,omitempty"`
	SourceURL string                `json:"source_url,omitempty"` // Page the deadline was read from
	Issues    []string              `json:"issues,omitempty"`
	Error     string                `json:"error,omitempty"`
}

// RunSummary describes a complete run
type RunSummary struct {
	RunID         string              `json:"run_id"`
	StartedAt     time.Time           `json:"started_at"`
	FinishedAt    time.Time           `json:"finished_at"`
	Units         []UnitResult        `json:"units"`
	Events        []model.ChangeEvent `json:"events"`
	Counts        map[Status]int      `json:"counts"`
	StorePath     string              `json:"store_path"`
	ChangeLogPath string              `json:"changelog_path"`
	LoggedEvents  int                 `json:"logged_events"`
}

// Option customizes a pipeline
type Option func(*options)

type options struct {
	searcher    search.Searcher
	provider    llm.Provider
	providerSet bool
	fetcher     extract.PageFetcher
	catalog     *catalog.Catalog
	clock       func() time.Time
	logger      *slog.Logger
	yearOffsets []int
}

// WithSearcher replaces the web search backend
func WithSearcher(s search.Searcher) Option {
	return func(o *options) { o.searcher = s }
}

// WithProvider sets the delegate model provider. nil disables the delegate
// regardless of configuration.
func WithProvider(p llm.Provider) Option {
	return func(o *options) {
		o.provider = p
		o.providerSet = true
	}
}

// WithFetcher replaces the page fetcher used for extraction
func WithFetcher(f extract.PageFetcher) Option {
	return func(o *options) { o.fetcher = f }
}

// WithCatalog replaces the conference catalog
func WithCatalog(c *catalog.Catalog) Option {
	return func(o *options) { o.catalog = c }
}

// WithClock sets the time source for last_checked and change events
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.clock = now }
}

// WithLogger sets the logger for every component
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithYearOffsets sets which years are tracked relative to the current one
func WithYearOffsets(offsets ...int) Option {
	return func(o *options) { o.yearOffsets = offsets }
}

// Pipeline orchestrates the complete tracking process
type Pipeline struct {
	resolver      *resolve.Resolver
	extractor     *extract.Extractor
	validator     *validate.Validator
	store         *storage.Store
	changeLogPath string
	workers       int
	yearOffsets   []int
	now           func() time.Time
	logger        *slog.Logger
}

// New wires the pipeline from configuration
func New(cfg *model.Config, opts ...Option) (*Pipeline, error) {
	o := options{
		clock:       func() time.Time { return time.Now().UTC().Truncate(time.Second) },
		logger:      slog.Default(),
		yearOffsets: []int{0, 1},
	}
	for _, opt := range opts {
		opt(&o)
	}

	cat := o.catalog
	if cat == nil {
		cat = catalog.Default()
		if cfg.CatalogPath != "" {
			loaded, err := catalog.LoadFile(util.ExpandHome(cfg.CatalogPath), cat)
			if err != nil {
				return nil, err
			}
			cat = loaded
		}
	}

	pages := cache.New(cfg.Cache)
	limiter := worker.NewLimiter(cfg.RateLimiting.RequestsPerSecond, cfg.RateLimiting.Burst)

	searcher := o.searcher
	if searcher == nil {
		if cfg.Search.RequestsPerSecond > 0 && cfg.Search.Endpoint != "" {
			if err := limiter.SetRate(cfg.Search.Endpoint, cfg.Search.RequestsPerSecond, 1); err != nil {
				return nil, fmt.Errorf("search endpoint: %w", err)
			}
		}
		searcher = search.NewDuckDuckGo(newFetcher(cfg, pages, limiter, o.logger), cfg.Search.Endpoint, cfg.Search.MaxResults)
	}

	var pageFetcher extract.PageFetcher = o.fetcher
	if pageFetcher == nil {
		f := newFetcher(cfg, pages, limiter, o.logger)
		if cfg.HTTP.RespectRobots {
			f.WithRobots(util.NewRobotsChecker(cfg.HTTP.UserAgent, f.Client(), cfg.HTTP.Timeout))
		}
		pageFetcher = f
	}

	provider := o.provider
	if !o.providerSet {
		p, err := llm.NewProvider(llm.ConfigFromModel(cfg.LLM, cfg.HTTP))
		if err != nil {
			o.logger.Warn("LLM provider disabled", "provider", cfg.LLM.Provider, "error", err)
		} else {
			provider = p
		}
	}

	var delegate extract.Strategy
	if provider != nil {
		delegate = extract.NewDelegateStrategy(provider, cfg.LLM.MaxInputChars, cfg.LLM.StrictSource).WithLogger(o.logger)
	}

	return &Pipeline{
		resolver:      resolve.New(searcher, cat, cfg.Resolver, cfg.Search.MaxQueries).WithLogger(o.logger),
		extractor:     extract.New(pageFetcher, cfg.Extract, delegate).WithLogger(o.logger),
		validator:     validate.New(cfg.Validation),
		store:         storage.New(cfg.Storage.StorePath),
		changeLogPath: cfg.Storage.ChangeLogPath,
		workers:       cfg.Concurrency.Workers,
		yearOffsets:   o.yearOffsets,
		now:           o.clock,
		logger:        o.logger,
	}, nil
}

// newFetcher builds an HTTP fetcher sharing the page cache and per-domain limiter
func newFetcher(cfg *model.Config, c cache.Cache, limiter *worker.Limiter, logger *slog.Logger) *fetch.Fetcher {
	return fetch.NewFromConfig(cfg.HTTP).
		WithCache(c, cfg.Cache.DiskTTL).
		WithLimiter(limiter).
		WithLogger(logger)
}

// Resolver exposes the configured resolver
func (p *Pipeline) Resolver() *resolve.Resolver {
	return p.resolver
}

// Strategies returns extraction strategy names in order
func (p *Pipeline) Strategies() []string {
	return p.extractor.Strategies()
}

// Units expands acronyms into (acronym, year) keys in list order
func (p *Pipeline) Units(acronyms []string, year int) []model.ConferenceKey {
	keys := make([]model.ConferenceKey, 0, len(acronyms)*len(p.yearOffsets))
	for _, a := range acronyms {
		for _, off := range p.yearOffsets {
			keys = append(keys, model.NewConferenceKey(a, year+off))
		}
	}
	return keys
}

// ProcessUnit resolves the edition, extracts from the best reachable
// candidate and validates the result. Failures are soft.
func (p *Pipeline) ProcessUnit(ctx context.Context, key model.ConferenceKey) UnitResult {
	logger := p.logger.With("acronym", key.Acronym, "year", key.Year)

	candidates, err := p.resolver.ResolveAll(ctx, key.Acronym, key.Year)
	if err != nil {
		logger.Info("conference not found", "reason", err)
		return UnitResult{Key: key, Status: StatusNotFound, Error: err.Error()}
	}

	for i := range candidates {
		site := candidates[i]
		result, ok := p.extractSite(ctx, key, site.URL)
		if ok {
			result.Site = &site
			return result
		}
		if ctx.Err() != nil {
			return UnitResult{Key: key, Status: StatusNotFound, Error: ctx.Err().Error()}
		}
		logger.Warn("candidate page unreachable", "url", site.URL, "reason", result.Error)
	}

	return UnitResult{Key: key, Status: StatusNotFound, Error: "no candidate page could be fetched"}
}

// ExtractURL runs extraction and validation on a pre-supplied URL
func (p *Pipeline) ExtractURL(ctx context.Context, url string, key model.ConferenceKey) UnitResult {
	result, ok := p.extractSite(ctx, key, url)
	if !ok {
		result.Status = StatusNotFound
	}
	return result
}

// extractSite returns false when the page itself could not be fetched
func (p *Pipeline) extractSite(ctx context.Context, key model.ConferenceKey, url string) (UnitResult, bool) {
	logger := p.logger.With("acronym", key.Acronym, "year", key.Year, "url", url)
	target := extract.Target{Acronym: key.Acronym, Year: key.Year}
	result := UnitResult{Key: key}

	var rec model.DeadlineRecord
	cand, err := p.extractor.ExtractURL(ctx, url, target)
	switch {
	case err == nil:
		rec = cand.Record(key, url, p.now())
		result.SourceURL = cand.PageURL
		result.Status = StatusFound
	case errors.Is(err, extract.ErrExtractionFailed):
		logger.Info("no deadline found on page")
		rec = extract.FailedRecord(key, url, p.now())
		result.Status = StatusExtractionFailed
	default:
		result.Error = err.Error()
		return result, false
	}

	validated, report := p.validator.Validate(rec, key.Year)
	if report.Rejected {
		logger.Warn("deadline rejected by validator", "deadline", rec.PaperDeadline, "issues", report.Issues)
		result.Status = StatusValidationRejected
	} else if len(report.Issues) > 0 {
		logger.Info("validator adjusted record", "issues", report.Issues)
	}
	result.Issues = report.Issues
	result.Record = &validated

	if result.Status == StatusFound {
		logger.Info("deadline found", "deadline", validated.PaperDeadline, "strategy", validated.Strategy)
	}
	return result, true
}

// Run processes every unit, then detects changes, writes the store once and
// appends the change log once. Only store and log failures are returned.
func (p *Pipeline) Run(ctx context.Context, acronyms []string) (*RunSummary, error) {
	summary := &RunSummary{
		RunID:         uuid.NewString(),
		StartedAt:     p.now(),
		Counts:        make(map[Status]int),
		StorePath:     p.store.Path(),
		ChangeLogPath: p.changeLogPath,
	}

	prev, err := p.store.Load()
	if err != nil {
		return nil, err
	}

	keys := p.Units(acronyms, summary.StartedAt.Year())
	p.logger.Info("run started", "run_id", summary.RunID, "units", len(keys), "workers", p.workers)

	processor := worker.NewBatchProcessor[UnitResult](p.ProcessUnit, p.workers)
	summary.Units = processor.ProcessUnits(ctx, keys)

	produced := storage.Snapshot{}
	detectedAt := p.now()
	for _, r := range summary.Units {
		summary.Counts[r.Status]++
		if r.Record == nil {
			continue
		}
		produced[r.Key.String()] = *r.Record
		summary.Events = append(summary.Events, change.Detect(prev.Get(r.Key), *r.Record, r.Key, detectedAt)...)
	}

	if err := p.store.Save(storage.Merge(prev, produced)); err != nil {
		return summary, err
	}

	log := change.NewLog(p.changeLogPath, summary.RunID)
	summary.ChangeLogPath = log.Path()
	n, err := log.Append(summary.Events)
	if err != nil {
		return summary, err
	}
	summary.LoggedEvents = n

	summary.FinishedAt = p.now()
	p.logger.Info("run finished", "run_id", summary.RunID, "found", summary.Counts[StatusFound],
		"not_found", summary.Counts[StatusNotFound], "changes", n)
	return summary, nil
}

// String renders the per-status counts
func (s *RunSummary) String() string {
	return fmt.Sprintf("%d units: %d found, %d not found, %d extraction failed, %d rejected; %d changes logged",
		len(s.Units), s.Counts[StatusFound], s.Counts[StatusNotFound],
		s.Counts[StatusExtractionFailed], s.Counts[StatusValidationRejected], s.LoggedEvents)
}
