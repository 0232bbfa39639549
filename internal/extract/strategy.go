package extract

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/ppiankov/cfpwatch/internal/dates"
	"github.com/ppiankov/cfpwatch/internal/model"
)

// ErrExtractionFailed is returned when no strategy produced a parseable deadline
var ErrExtractionFailed = errors.New("extraction failed")

// Strategy names, recorded as provenance on the record
const (
	StrategyKeyword  = "keyword"
	StrategyTable    = "table"
	StrategyFullScan = "fullscan"
	StrategyDelegate = "delegate"
)

// Target is the conference edition being extracted
type Target struct {
	Acronym string
	Year    int
}

// Key returns the conference key of the target
func (t Target) Key() model.ConferenceKey {
	return model.NewConferenceKey(t.Acronym, t.Year)
}

// Candidate is the unvalidated result of one strategy
type Candidate struct {
	PaperDeadline  string               `json:"paper_deadline"`
	SubmissionType model.SubmissionType `json:"submission_type"`
	Abstract       string               `json:"abstract_deadline,omitempty"`
	ConferenceDate string               `json:"conference_date,omitempty"`
	Location       string               `json:"location,omitempty"`
	Supplementary  map[string]string    `json:"supplementary_deadlines,omitempty"`
	Strategy       string               `json:"strategy"`
	Evidence       string               `json:"evidence,omitempty"` // Text the deadline was read from
	PageURL        string               `json:"page_url,omitempty"`
}

// Found reports whether the candidate carries a parseable paper deadline
func (c *Candidate) Found() bool {
	if c == nil {
		return false
	}
	_, ok := dates.Parse(c.PaperDeadline)
	return ok
}

// Record converts the candidate into a deadline record for key at url
func (c *Candidate) Record(key model.ConferenceKey, url string, checked time.Time) model.DeadlineRecord {
	rec := model.DeadlineRecord{
		Name:           key.Name(),
		URL:            url,
		PaperDeadline:  dates.Normalize(c.PaperDeadline),
		SubmissionType: c.SubmissionType,
		ConferenceDate: c.ConferenceDate,
		Location:       c.Location,
		Strategy:       c.Strategy,
		LastChecked:    checked,
	}
	if rec.SubmissionType == "" {
		rec.SubmissionType = model.SubmissionUnknown
	}
	if c.Abstract != "" {
		if abs := dates.Normalize(c.Abstract); abs != model.TBD {
			rec.Abstract = abs
		}
	}
	if len(c.Supplementary) > 0 {
		rec.Supplementary = make(map[string]string, len(c.Supplementary))
		for label, d := range c.Supplementary {
			if norm := dates.Normalize(d); norm != model.TBD {
				rec.Supplementary[label] = norm
			}
		}
		if len(rec.Supplementary) == 0 {
			rec.Supplementary = nil
		}
	}
	return rec
}

// FailedRecord is the record emitted when extraction fails: the conference
// stays visible with a TBD deadline
func FailedRecord(key model.ConferenceKey, url string, checked time.Time) model.DeadlineRecord {
	return model.DeadlineRecord{
		Name:           key.Name(),
		URL:            url,
		PaperDeadline:  model.TBD,
		SubmissionType: model.SubmissionUnknown,
		LastChecked:    checked,
	}
}

// Strategy extracts a candidate from a page. The bool is false when the
// strategy found nothing usable.
type Strategy interface {
	// Name returns the strategy name
	Name() string

	// Extract runs the strategy against a parsed page
	Extract(ctx context.Context, page *Page, target Target) (*Candidate, bool)
}

// Chain tries strategies in order; the first success wins and results are never merged
type Chain struct {
	strategies []Strategy
	logger     *slog.Logger
}

// NewChain creates a chain from the given strategies
func NewChain(strategies ...Strategy) *Chain {
	return &Chain{
		strategies: strategies,
		logger:     slog.Default(),
	}
}

// Register appends a strategy
func (c *Chain) Register(s Strategy) {
	c.strategies = append(c.strategies, s)
}

// Prepend puts a strategy at the front of the chain
func (c *Chain) Prepend(s Strategy) {
	c.strategies = append([]Strategy{s}, c.strategies...)
}

// Names returns strategy names in order
func (c *Chain) Names() []string {
	names := make([]string, 0, len(c.strategies))
	for _, s := range c.strategies {
		names = append(names, s.Name())
	}
	return names
}

// Run returns the first successful candidate or ErrExtractionFailed
func (c *Chain) Run(ctx context.Context, page *Page, target Target) (*Candidate, error) {
	for _, s := range c.strategies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		cand, ok := s.Extract(ctx, page, target)
		if !ok || !cand.Found() {
			c.logger.Debug("strategy found nothing", "strategy", s.Name(), "url", page.URL)
			continue
		}

		cand.Strategy = s.Name()
		cand.PageURL = page.URL
		fillSecondary(page, target, cand)
		return cand, nil
	}
	return nil, ErrExtractionFailed
}
