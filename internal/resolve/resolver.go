// Package resolve maps a conference acronym and year onto its official website.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sort"
	"strings"

	"github.com/ppiankov/cfpwatch/internal/catalog"
	"github.com/ppiankov/cfpwatch/internal/model"
	"github.com/ppiankov/cfpwatch/internal/score"
	"github.com/ppiankov/cfpwatch/internal/search"
)

// ErrNotFound is returned when no candidate survives rejection
var ErrNotFound = errors.New("no acceptable candidate")

// Rejection reasons
const (
	ReasonBadScheme       = "unsupported scheme"
	ReasonPDF             = "pdf document"
	ReasonGlobalBlocklist = "global blocklist"
	ReasonAcronymBlock    = "acronym blocklist"
	ReasonNoToken         = "acronym not found as a token in host, path or title"
	ReasonNoYear          = "year not near acronym"
)

// Resolution is the full outcome of one resolve call, kept for diagnostics
type Resolution struct {
	Key        model.ConferenceKey   `json:"key"`
	Queries    []string              `json:"queries"`
	Candidates []model.CandidateSite `json:"candidates"`
	Errors     []string              `json:"errors,omitempty"`
}

// Ranked returns surviving candidates, best first
func (r *Resolution) Ranked() []model.CandidateSite {
	var out []model.CandidateSite
	for _, c := range r.Candidates {
		if !c.Rejected() {
			out = append(out, c)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score.Total != out[j].Score.Total {
			return out[i].Score.Total > out[j].Score.Total
		}
		if out[i].Tier != out[j].Tier {
			return out[i].Tier > out[j].Tier
		}
		return out[i].Rank < out[j].Rank
	})
	return out
}

// Resolver finds the official page for a conference edition
type Resolver struct {
	searcher        search.Searcher
	catalog         *catalog.Catalog
	hosts           *HostPolicy
	scorer          *score.Scorer
	yearWindow      int
	shortAcronymLen int
	maxQueries      int
	logger          *slog.Logger
}

// New creates a resolver. A nil searcher resolves from catalog seeds only.
func New(searcher search.Searcher, cat *catalog.Catalog, cfg model.ResolverConfig, maxQueries int) *Resolver {
	if cat == nil {
		cat = catalog.Default()
	}
	if cfg.YearWindow <= 0 {
		cfg.YearWindow = 30
	}
	if cfg.ShortAcronymLen <= 0 {
		cfg.ShortAcronymLen = 5
	}
	if maxQueries <= 0 {
		maxQueries = 3
	}

	return &Resolver{
		searcher:        searcher,
		catalog:         cat,
		hosts:           NewHostPolicy(cat.GlobalBlocklist()),
		scorer:          score.NewScorer(),
		yearWindow:      cfg.YearWindow,
		shortAcronymLen: cfg.ShortAcronymLen,
		maxQueries:      maxQueries,
		logger:          slog.Default(),
	}
}

// WithLogger sets the logger
func (r *Resolver) WithLogger(logger *slog.Logger) *Resolver {
	if logger != nil {
		r.logger = logger
	}
	return r
}

// Queries builds the deduplicated search queries for an edition
func (r *Resolver) Queries(acronym string, year int) []string {
	name := fmt.Sprintf("%q", fmt.Sprintf("%s %d", acronym, year))

	queries := []string{name}
	if full := r.catalog.FullName(acronym); full != "" {
		queries = append(queries, fmt.Sprintf("%s %q", name, full))
	}
	queries = append(queries, name+" call for papers")

	if len(queries) > r.maxQueries {
		queries = queries[:r.maxQueries]
	}
	return queries
}

// Resolve returns the best candidate or ErrNotFound
func (r *Resolver) Resolve(ctx context.Context, acronym string, year int) (*model.CandidateSite, error) {
	ranked, err := r.ResolveAll(ctx, acronym, year)
	if err != nil {
		return nil, err
	}
	return &ranked[0], nil
}

// ResolveAll returns every surviving candidate, best first, so callers can
// fall back to the next one when a page cannot be fetched
func (r *Resolver) ResolveAll(ctx context.Context, acronym string, year int) ([]model.CandidateSite, error) {
	res, err := r.Investigate(ctx, acronym, year)
	if err != nil {
		return nil, err
	}

	ranked := res.Ranked()
	if len(ranked) == 0 {
		if len(res.Errors) > 0 {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, res.Errors[len(res.Errors)-1])
		}
		return nil, ErrNotFound
	}
	return ranked, nil
}

// Investigate gathers catalog seeds and search results and evaluates all of them.
// Search failures are recorded on the resolution, not returned.
func (r *Resolver) Investigate(ctx context.Context, acronym string, year int) (*Resolution, error) {
	key := model.NewConferenceKey(acronym, year)
	if compactAcronym(key.Acronym) == "" {
		return nil, fmt.Errorf("invalid acronym %q", acronym)
	}

	res := &Resolution{Key: key}
	index := make(map[string]int)

	add := func(c model.CandidateSite) {
		k := candidateKey(c.URL)
		if i, ok := index[k]; ok {
			existing := &res.Candidates[i]
			if existing.Title == "" {
				existing.Title = c.Title
			}
			if existing.Snippet == "" {
				existing.Snippet = c.Snippet
			}
			return
		}
		index[k] = len(res.Candidates)
		res.Candidates = append(res.Candidates, c)
	}

	for _, seed := range r.catalog.SeedURLs(key.Acronym, year) {
		add(model.CandidateSite{URL: seed, Source: model.SourceCatalog})
	}

	if r.searcher != nil {
		res.Queries = r.Queries(key.Acronym, year)
		for _, q := range res.Queries {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			results, err := r.searcher.Search(ctx, q)
			if err != nil {
				r.logger.Warn("search failed", "acronym", key.Acronym, "year", year, "query", q, "error", err)
				res.Errors = append(res.Errors, err.Error())
				continue
			}

			for _, hit := range results {
				add(model.CandidateSite{
					URL:     hit.URL,
					Title:   hit.Title,
					Snippet: hit.Snippet,
					Source:  model.SourceSearch,
					Rank:    hit.Rank,
				})
			}
		}
	}

	for i := range res.Candidates {
		r.Evaluate(key.Acronym, year, &res.Candidates[i])
		c := &res.Candidates[i]
		if c.Rejected() {
			r.logger.Debug("candidate rejected", "acronym", key.Acronym, "year", year, "url", c.URL, "reason", c.RejectReason)
		}
	}

	return res, nil
}

// Evaluate fills in token matches, year proximity, blocklist state, tier and
// score for one candidate. Rejections are recorded in RejectReason.
func (r *Resolver) Evaluate(acronym string, year int, c *model.CandidateSite) {
	c.MatchedTokens = nil
	c.RejectReason = ""
	c.IsBlocklisted = false

	parsed, err := url.Parse(strings.TrimSpace(c.URL))
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		c.RejectReason = ReasonBadScheme
		return
	}

	c.Host = strings.ToLower(parsed.Host)
	c.Tier = r.hosts.Classify(c.Host)

	if strings.HasSuffix(strings.ToLower(parsed.Path), ".pdf") {
		c.RejectReason = ReasonPDF
	}

	if entry, blocked := r.hosts.GloballyBlocked(c.Host, parsed.Path); blocked {
		c.IsBlocklisted = true
		c.RejectReason = fmt.Sprintf("%s (%s)", ReasonGlobalBlocklist, entry)
	} else if entry, blocked := AcronymBlocked(c.Host, parsed.Path, r.catalog.Blocklist(acronym)); blocked {
		c.IsBlocklisted = true
		c.RejectReason = fmt.Sprintf("%s (%s)", ReasonAcronymBlock, entry)
	}

	spelled := acronym
	if e, ok := r.catalog.Lookup(acronym); ok && e.Acronym != "" {
		spelled = e.Acronym
	}
	pattern := newAcronymPattern(spelled)
	compact := pattern.compact
	fields := []struct {
		loc  model.MatchLocation
		text string
	}{
		{model.MatchHost, c.Host},
		{model.MatchPath, parsed.EscapedPath()},
		{model.MatchTitle, c.Title},
		{model.MatchBody, c.Snippet},
	}

	for _, f := range fields {
		if hits := newField(f.text).find(pattern); len(hits) > 0 {
			c.MatchedTokens = append(c.MatchedTokens, model.TokenMatch{Token: compact, Location: f.loc})
		}
	}

	// The URL is one field for proximity so "hpca-conf.org/2026/" is anchored
	c.ProximityToYear = false
	for _, text := range []string{c.Host + parsed.EscapedPath(), c.Title, c.Snippet} {
		f := newField(text)
		if f.nearYear(f.find(pattern), year, r.yearWindow) {
			c.ProximityToYear = true
			break
		}
	}

	if full := r.catalog.FullName(acronym); full != "" {
		for _, f := range fields[2:] {
			if newField(f.text).containsPhrase(full) {
				c.MatchedTokens = append(c.MatchedTokens, model.TokenMatch{Token: full, Location: f.loc, FullName: true})
				break
			}
		}
	}

	if c.RejectReason == "" && c.Source != model.SourceCatalog {
		switch {
		case !c.HasMatch(model.MatchHost) && !c.HasMatch(model.MatchPath) && !c.HasMatch(model.MatchTitle):
			c.RejectReason = ReasonNoToken
		case len(compact) <= r.shortAcronymLen && !c.ProximityToYear:
			c.RejectReason = ReasonNoYear
		}
	}

	c.Score = r.scorer.Calculate(c, year)
}

// candidateKey normalizes a URL for deduplication
func candidateKey(rawURL string) string {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return rawURL
	}
	return normalizeHost(parsed.Host) + strings.TrimSuffix(parsed.EscapedPath(), "/") + "?" + parsed.RawQuery
}
