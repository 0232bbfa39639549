package extract

import (
	"context"
	"regexp"
	"strings"

	"github.com/ppiankov/cfpwatch/internal/dates"
	"github.com/ppiankov/cfpwatch/internal/model"
)

var scanKeywordPattern = regexp.MustCompile(`(?i)\b(?:deadlines?|due|submissions?)\b`)

// FullScanStrategy takes the date nearest to any deadline keyword on the page
type FullScanStrategy struct {
	radius int
}

// NewFullScanStrategy creates the fallback strategy; radius bounds the
// distance between keyword and date in characters
func NewFullScanStrategy(radius int) *FullScanStrategy {
	if radius <= 0 {
		radius = 200
	}
	return &FullScanStrategy{radius: radius}
}

// Name returns the strategy name
func (s *FullScanStrategy) Name() string {
	return StrategyFullScan
}

// Extract implements Strategy
func (s *FullScanStrategy) Extract(ctx context.Context, page *Page, target Target) (*Candidate, bool) {
	text := page.Text

	var eligible []dates.Match
	for _, m := range dates.FindAll(text) {
		if !labeledMilestone(text, m) {
			eligible = append(eligible, m)
		}
	}
	if len(eligible) == 0 {
		return nil, false
	}

	best := -1
	bestDist := s.radius + 1
	var bestKeyword []int

	for _, kw := range scanKeywordPattern.FindAllStringIndex(text, -1) {
		for i, m := range eligible {
			dist := m.Start - kw[1]
			if m.Start < kw[0] {
				dist = kw[0] - m.End
			}
			if dist >= 0 && dist < bestDist {
				best, bestDist, bestKeyword = i, dist, kw
			}
		}
	}
	if best < 0 {
		return nil, false
	}

	m := eligible[best]
	around := lineAround(text, min(m.Start, bestKeyword[0]), max(m.End, bestKeyword[1]), 80)

	fallback := model.SubmissionUnknown
	if lower := strings.ToLower(around); strings.Contains(lower, "paper") || strings.Contains(lower, "submission") {
		fallback = model.SubmissionRegularPaper
	}

	return &Candidate{
		PaperDeadline:  m.Text,
		SubmissionType: classify(around, fallback),
		Evidence:       strings.TrimSpace(around),
	}, true
}

// labeledMilestone reports whether the words just before a date name a
// non-submission milestone ("Notification: Jan 10, 2026")
func labeledMilestone(text string, m dates.Match) bool {
	from := max(0, m.Start-60)
	if nl := strings.LastIndex(text[from:m.Start], "\n"); nl >= 0 {
		from += nl + 1
	}
	label := strings.ToLower(text[from:m.Start])

	milestone := -1
	for _, k := range milestoneKeywords {
		if idx := strings.LastIndex(label, k); idx > milestone {
			milestone = idx
		}
	}
	if milestone < 0 {
		return false
	}

	for _, k := range submissionWords {
		if strings.LastIndex(label, k) > milestone {
			return false
		}
	}
	return true
}

var submissionWords = []string{"submission", "abstract", "paper deadline"}
