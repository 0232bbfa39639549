package extract

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/ppiankov/cfpwatch/internal/dates"
	"github.com/ppiankov/cfpwatch/internal/model"
)

// Phrases are matched longest first so "paper submission deadline" is not
// also counted as "submission deadline"
var (
	paperPhrases = []string{
		"full paper submission deadline", "paper submission deadline", "full paper deadline",
		"deadline for paper submission", "deadline for submissions", "full paper submission",
		"paper deadline", "submission deadline", "papers due", "submissions due", "paper submission",
	}
	abstractPhrases = []string{
		"abstract submission deadline", "abstract registration deadline", "abstract deadline",
		"abstract submission", "abstract registration", "abstracts due",
	}
)

// KeywordStrategy reads the date that follows a deadline phrase
type KeywordStrategy struct {
	window int
}

// NewKeywordStrategy creates the keyword-proximity strategy; window is the
// number of characters scanned after each phrase
func NewKeywordStrategy(window int) *KeywordStrategy {
	if window <= 0 {
		window = 120
	}
	return &KeywordStrategy{window: window}
}

// Name returns the strategy name
func (s *KeywordStrategy) Name() string {
	return StrategyKeyword
}

type phraseHit struct {
	start, end int
	abstract   bool
}

type datedHit struct {
	phraseHit
	date  string
	kind  model.SubmissionType
	label string
}

// Extract implements Strategy
func (s *KeywordStrategy) Extract(ctx context.Context, page *Page, target Target) (*Candidate, bool) {
	text := page.Text
	lower := strings.ToLower(text)
	if len(lower) != len(text) {
		text = lower
	}

	hits := findPhrases(lower)
	if len(hits) == 0 {
		return nil, false
	}

	var papers, abstracts []datedHit
	for i, h := range hits {
		end := min(len(text), h.end+s.window)
		if i+1 < len(hits) && hits[i+1].start < end {
			end = hits[i+1].start
		}
		window := truncateAtMilestone(text[h.end:end])

		m, ok := dates.FindFirst(window)
		if !ok {
			continue
		}

		line := lineAround(text, h.start, h.end, 80)
		d := datedHit{phraseHit: h, date: m.Text, label: strings.TrimSpace(line)}
		if h.abstract {
			d.kind = model.SubmissionAbstract
			abstracts = append(abstracts, d)
			continue
		}
		d.kind = classify(line, model.SubmissionRegularPaper)
		papers = append(papers, d)
	}

	cand := &Candidate{}
	switch {
	case len(papers) > 0:
		primary := 0
		for i, p := range papers {
			if p.kind == model.SubmissionRegularPaper {
				primary = i
				break
			}
		}
		cand.PaperDeadline = papers[primary].date
		cand.SubmissionType = papers[primary].kind
		cand.Evidence = papers[primary].label

		for i, p := range papers {
			if i == primary || p.date == cand.PaperDeadline {
				continue
			}
			addSupplementary(cand, string(p.kind), p.date)
		}
		if len(abstracts) > 0 {
			cand.Abstract = abstracts[0].date
		}

	case len(abstracts) > 0:
		cand.PaperDeadline = abstracts[0].date
		cand.SubmissionType = model.SubmissionAbstract
		cand.Evidence = abstracts[0].label

	default:
		return nil, false
	}

	return cand, true
}

// findPhrases returns non-overlapping deadline phrase hits in text order
func findPhrases(lower string) []phraseHit {
	var hits []phraseHit
	covered := make([]bool, len(lower))

	scan := func(phrases []string, abstract bool) {
		for _, phrase := range phrases {
			from := 0
			for {
				idx := strings.Index(lower[from:], phrase)
				if idx < 0 {
					break
				}
				start := from + idx
				end := start + len(phrase)
				from = end
				if covered[start] || covered[end-1] {
					continue
				}
				for i := start; i < end; i++ {
					covered[i] = true
				}
				hits = append(hits, phraseHit{start: start, end: end, abstract: abstract})
			}
		}
	}

	// abstract first: "abstract submission deadline" must not become a paper hit
	scan(abstractPhrases, true)
	scan(paperPhrases, false)

	sort.Slice(hits, func(i, j int) bool { return hits[i].start < hits[j].start })
	return hits
}

// truncateAtMilestone cuts a window at the first non-submission milestone keyword
func truncateAtMilestone(window string) string {
	lower := strings.ToLower(window)
	cut := len(window)
	for _, k := range milestoneKeywords {
		if idx := strings.Index(lower, k); idx >= 0 && idx < cut {
			cut = idx
		}
	}
	return window[:cut]
}

// addSupplementary records a secondary deadline under a unique label
func addSupplementary(c *Candidate, label, date string) {
	if c.Supplementary == nil {
		c.Supplementary = make(map[string]string)
	}
	key := label
	for n := 2; ; n++ {
		existing, ok := c.Supplementary[key]
		if !ok {
			break
		}
		if existing == date {
			return
		}
		key = fmt.Sprintf("%s (%d)", label, n)
	}
	c.Supplementary[key] = date
}
