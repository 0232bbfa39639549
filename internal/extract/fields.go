package extract

import (
	"regexp"
	"strings"

	"github.com/ppiankov/cfpwatch/internal/dates"
	"github.com/ppiankov/cfpwatch/internal/model"
)

// milestoneKeywords label dates that are not submission deadlines
var milestoneKeywords = []string{
	"notification", "acceptance", "camera-ready", "camera ready", "final version",
	"registration deadline", "early registration", "author registration", "rebuttal",
	"author response", "conference date", "conference:", "workshop date", "tutorial",
	"program available", "decision",
}

var (
	conferenceDatePhrases = []string{"conference dates", "conference date", "will be held", "takes place", "will take place", "held on", "event dates"}

	venuePattern   = regexp.MustCompile(`(?i)\b(?:location|venue)\s*:\s*([^\n;|]{3,100})`)
	heldInPattern  = regexp.MustCompile(`(?i)\b(?:held|take place|takes place)\s+in\s+([^\n;|()]{3,100})`)
	locationCutter = regexp.MustCompile(`(?i)\s+(?:from|on|during|between|at the|in (?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec))\b|[.!]\s|[.!]$`)
)

// classify maps the words around a deadline onto a submission type.
// fallback is returned when no type word is present.
func classify(context string, fallback model.SubmissionType) model.SubmissionType {
	lower := strings.ToLower(context)
	switch {
	case strings.Contains(lower, "late breaking"), strings.Contains(lower, "late-breaking"):
		return model.SubmissionLateBreaking
	case strings.Contains(lower, "poster"):
		return model.SubmissionPoster
	case strings.Contains(lower, "short paper"):
		return model.SubmissionShortPaper
	case strings.Contains(lower, "workshop"), strings.Contains(lower, "work-in-progress"),
		strings.Contains(lower, "work in progress"), containsWord(lower, "wip"):
		return model.SubmissionWorkshop
	}
	return fallback
}

// isMilestone reports whether a label names a non-submission milestone
func isMilestone(label string) bool {
	lower := strings.ToLower(label)
	for _, k := range milestoneKeywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}

// lineAround returns the part of the line around [start,end), bounded by radius
func lineAround(text string, start, end, radius int) string {
	from := start - radius
	if from < 0 {
		from = 0
	}
	if nl := strings.LastIndex(text[from:start], "\n"); nl >= 0 {
		from += nl + 1
	}

	to := end + radius
	if to > len(text) {
		to = len(text)
	}
	if nl := strings.Index(text[end:to], "\n"); nl >= 0 {
		to = end + nl
	}
	return text[from:to]
}

// fillSecondary adds conference dates and location when a strategy left them empty
func fillSecondary(page *Page, target Target, c *Candidate) {
	if c.ConferenceDate == "" {
		c.ConferenceDate = ConferenceDates(page.Text, target.Year)
	}
	if c.Location == "" {
		c.Location = Location(page.Text)
	}
}

// ConferenceDates finds the conference date range, e.g. "June 20-24, 2026".
// Ranges introduced by a conference phrase win; otherwise the first range
// within a year of the target is used.
func ConferenceDates(text string, year int) string {
	lower := strings.ToLower(text)
	for _, phrase := range conferenceDatePhrases {
		idx := strings.Index(lower, phrase)
		if idx < 0 {
			continue
		}
		window := text[idx:min(len(text), idx+len(phrase)+150)]
		if r, ok := dates.FindRange(window); ok && rangeNearYear(r, year) {
			return r
		}
	}

	rest := text
	for {
		r, ok := dates.FindRange(rest)
		if !ok {
			return ""
		}
		if rangeNearYear(r, year) {
			return r
		}
		rest = rest[strings.Index(rest, r)+len(r):]
	}
}

func rangeNearYear(r string, year int) bool {
	start, ok := dates.RangeStart(r)
	if !ok {
		return false
	}
	diff := start.Year() - year
	return diff >= -1 && diff <= 1
}

// Location finds a venue from "Location:"/"Venue:" labels or "held in ..." phrases
func Location(text string) string {
	for _, re := range []*regexp.Regexp{venuePattern, heldInPattern} {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		loc := m[1]
		if cut := locationCutter.FindStringIndex(loc); cut != nil {
			loc = loc[:cut[0]]
		}
		if d, ok := dates.FindFirst(loc); ok {
			loc = loc[:d.Start]
		}
		if r, ok := dates.FindRange(loc); ok {
			loc = loc[:strings.Index(loc, r)]
		}
		loc = strings.Trim(strings.TrimSpace(loc), ",;:-")
		loc = strings.TrimSpace(loc)
		if len(loc) >= 3 && !dates.IsTBD(loc) {
			return loc
		}
	}
	return ""
}

func containsWord(s, word string) bool {
	for _, f := range strings.FieldsFunc(s, func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	}) {
		if f == word {
			return true
		}
	}
	return false
}
