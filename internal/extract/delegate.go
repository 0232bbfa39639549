package extract

import (
	"context"
	"log/slog"

	"github.com/ppiankov/cfpwatch/internal/dates"
	"github.com/ppiankov/cfpwatch/internal/llm"
	"github.com/ppiankov/cfpwatch/internal/model"
)

// DelegateStrategy hands the page text to a language model. Its answers are
// untrusted: the validator re-checks every field downstream.
type DelegateStrategy struct {
	provider      llm.Provider
	maxInputChars int
	strict        bool
	logger        *slog.Logger
}

// NewDelegateStrategy wraps a provider. With strict set, an answer quoting a
// source_text that does not occur on the page is discarded.
func NewDelegateStrategy(provider llm.Provider, maxInputChars int, strict bool) *DelegateStrategy {
	if maxInputChars <= 0 {
		maxInputChars = 6000
	}
	return &DelegateStrategy{
		provider:      provider,
		maxInputChars: maxInputChars,
		strict:        strict,
		logger:        slog.Default(),
	}
}

// WithLogger sets the logger
func (s *DelegateStrategy) WithLogger(l *slog.Logger) *DelegateStrategy {
	if l != nil {
		s.logger = l
	}
	return s
}

// Name returns the strategy name
func (s *DelegateStrategy) Name() string {
	return StrategyDelegate
}

// Extract implements Strategy
func (s *DelegateStrategy) Extract(ctx context.Context, page *Page, target Target) (*Candidate, bool) {
	resp, err := s.provider.Extract(ctx, llm.ExtractRequest{
		PageText: truncateRunes(page.Text, s.maxInputChars),
		Acronym:  target.Acronym,
		Year:     target.Year,
		URL:      page.URL,
	})
	if err != nil {
		s.logger.Warn("delegate extraction failed",
			"provider", s.provider.Name(), "url", page.URL, "error", err)
		return nil, false
	}

	if dates.IsTBD(resp.PaperDeadline) {
		s.logger.Debug("delegate answered TBD", "provider", s.provider.Name(), "url", page.URL)
		return nil, false
	}

	if s.strict && resp.SourceText != "" && !llm.VerifySource(resp, page.Text) {
		s.logger.Warn("delegate source text not found on page",
			"provider", s.provider.Name(), "url", page.URL, "deadline", resp.PaperDeadline)
		return nil, false
	}

	return &Candidate{
		PaperDeadline:  resp.PaperDeadline,
		SubmissionType: model.ParseSubmissionType(resp.SubmissionType),
		Abstract:       resp.AbstractDeadline,
		ConferenceDate: resp.ConferenceDate,
		Location:       resp.Location,
		Evidence:       resp.SourceText,
	}, true
}
