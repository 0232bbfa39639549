package dates

import (
	"regexp"
	"strings"
	"time"

	"github.com/ppiankov/cfpwatch/internal/model"
)

// Layout is the canonical stored form, e.g. "February 15, 2026"
const Layout = "January 2, 2006"

// layouts accepted after cleaning, most common first
var layouts = []string{
	"January 2, 2006",
	"Jan 2, 2006",
	"2006-1-2",
	"2 January 2006",
	"2 Jan 2006",
	"1/2/2006",
	"January 2 2006",
	"Jan 2 2006",
	"2 January, 2006",
	"2 Jan, 2006",
	"2006/1/2",
}

// optional RFC 3339 time part, e.g. T23:59:00Z or T23:59-12:00
const isoTimeSuffix = `(?:T\d{1,2}:\d{2}(?::\d{2}(?:\.\d+)?)?(?:Z|[+-]\d{2}:?\d{2})?)`

const monthPattern = `(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\.?`

var (
	datePattern = regexp.MustCompile(`(?i)\b(?:` +
		monthPattern + `\s+\d{1,2}(?:st|nd|rd|th)?(?:,\s*|\s+)\d{4}` + `|` +
		`\d{1,2}(?:st|nd|rd|th)?\s+` + monthPattern + `,?\s+\d{4}` + `|` +
		`\d{4}-\d{1,2}-\d{1,2}` + isoTimeSuffix + `?|` +
		`\d{1,2}/\d{1,2}/\d{4}` +
		`)\b`)

	// June 20-24, 2026 | June 28 - July 2, 2026 | 20-24 June 2026
	rangePattern = regexp.MustCompile(`(?i)\b(?:` +
		`(` + monthPattern + `)\s+(\d{1,2})\s*[-–—]\s*(?:` + monthPattern + `\s+)?\d{1,2},?\s+(\d{4})` + `|` +
		`(\d{1,2})\s*[-–—]\s*\d{1,2}\s+(` + monthPattern + `),?\s+(\d{4})` +
		`)\b`)

	isoTimePattern = regexp.MustCompile(`(?i)\b(\d{4}-\d{1,2}-\d{1,2})` + isoTimeSuffix)
	parenPattern   = regexp.MustCompile(`\([^)]*\)`)
	timePattern    = regexp.MustCompile(`(?i)\s*(?:\bat\s+|@\s*)?\d{1,2}(?::\d{2})?\s*(?:am|pm)\b.*$|\s*(?:\bat\s+|@\s*)?\d{1,2}:\d{2}.*$`)
	zonePattern    = regexp.MustCompile(`(?i)\s+(?:aoe|anywhere on earth|pst|pdt|pt|est|edt|et|cet|cest|utc|gmt)\b.*$`)
	weekdayPattern = regexp.MustCompile(`(?i)^(?:monday|tuesday|wednesday|thursday|friday|saturday|sunday|mon|tues|tue|wed|thurs|thur|thu|fri|sat|sun)\.?,?\s+`)
	ordinalPattern = regexp.MustCompile(`(?i)\b(\d{1,2})(?:st|nd|rd|th)\b`)
	septPattern    = regexp.MustCompile(`(?i)\bsept\b`)
	abbrDotPattern = regexp.MustCompile(`(?i)\b(jan|feb|mar|apr|jun|jul|aug|sep|oct|nov|dec)\.`)
	commaPattern   = regexp.MustCompile(`\s*,\s*`)
)

// Match is a date-like substring found in text
type Match struct {
	Text  string
	Start int
	End   int
	Time  time.Time
}

// Parse parses any accepted date format. The bool is false for unparseable input.
func Parse(s string) (time.Time, bool) {
	cleaned := clean(s)
	if cleaned == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, cleaned); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Normalize returns the canonical "Month Day, Year" form or TBD
func Normalize(s string) string {
	t, ok := Parse(s)
	if !ok {
		return model.TBD
	}
	return t.Format(Layout)
}

// Year returns the year of a parseable date string
func Year(s string) (int, bool) {
	t, ok := Parse(s)
	if !ok {
		return 0, false
	}
	return t.Year(), true
}

// IsTBD reports whether s is empty or the TBD sentinel (any case)
func IsTBD(s string) bool {
	v := strings.TrimSpace(s)
	return v == "" || strings.EqualFold(v, model.TBD) || strings.EqualFold(v, "TBA")
}

// FindAll returns every parseable date-like substring in text, in order
func FindAll(text string) []Match {
	var matches []Match
	for _, loc := range datePattern.FindAllStringIndex(text, -1) {
		raw := text[loc[0]:loc[1]]
		t, ok := Parse(raw)
		if !ok {
			continue
		}
		matches = append(matches, Match{Text: raw, Start: loc[0], End: loc[1], Time: t})
	}
	return matches
}

// FindFirst returns the first parseable date in text
func FindFirst(text string) (Match, bool) {
	all := FindAll(text)
	if len(all) == 0 {
		return Match{}, false
	}
	return all[0], true
}

// FindRange returns the first date range (e.g. "June 20-24, 2026") in text
func FindRange(text string) (string, bool) {
	loc := rangePattern.FindStringIndex(text)
	if loc == nil {
		return "", false
	}
	return strings.TrimSpace(text[loc[0]:loc[1]]), true
}

// RangeStart parses the first day of a single date or a date range
func RangeStart(s string) (time.Time, bool) {
	if t, ok := Parse(s); ok {
		return t, true
	}
	m := rangePattern.FindStringSubmatch(s)
	if m == nil {
		if first, ok := FindFirst(s); ok {
			return first.Time, true
		}
		return time.Time{}, false
	}
	if m[1] != "" {
		return Parse(m[1] + " " + m[2] + ", " + m[3])
	}
	return Parse(m[4] + " " + m[5] + " " + m[6])
}

func clean(s string) string {
	v := strings.Join(strings.Fields(s), " ")
	v = parenPattern.ReplaceAllString(v, " ")
	if idx := strings.Index(v, ";"); idx >= 0 {
		v = v[:idx]
	}
	v = isoTimePattern.ReplaceAllString(v, "$1")
	v = timePattern.ReplaceAllString(v, "")
	v = zonePattern.ReplaceAllString(v, "")
	v = weekdayPattern.ReplaceAllString(v, "")
	v = ordinalPattern.ReplaceAllString(v, "$1")
	v = septPattern.ReplaceAllString(v, "Sep")
	v = abbrDotPattern.ReplaceAllString(v, "$1")
	v = commaPattern.ReplaceAllString(v, ", ")
	v = strings.Join(strings.Fields(v), " ")
	return strings.Trim(v, " .,:-")
}
