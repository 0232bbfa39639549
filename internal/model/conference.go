package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TBD marks a deadline that is unknown or could not be trusted
const TBD = "TBD"

// ConferenceKey identifies one tracked conference edition
type ConferenceKey struct {
	Acronym string `json:"acronym"`
	Year    int    `json:"year"`
}

// NewConferenceKey trims and upper-cases the acronym so every spelling maps to one store key
func NewConferenceKey(acronym string, year int) ConferenceKey {
	return ConferenceKey{Acronym: strings.ToUpper(strings.TrimSpace(acronym)), Year: year}
}

// String returns the persistence key, e.g. "ISCA_2026"
func (k ConferenceKey) String() string {
	return fmt.Sprintf("%s_%d", k.Acronym, k.Year)
}

// Name returns the display name, e.g. "ISCA 2026"
func (k ConferenceKey) Name() string {
	return fmt.Sprintf("%s %d", k.Acronym, k.Year)
}

// ParseConferenceKey parses a persistence key. The year follows the last underscore
// so acronyms containing underscores survive.
func ParseConferenceKey(s string) (ConferenceKey, error) {
	idx := strings.LastIndex(s, "_")
	if idx <= 0 || idx == len(s)-1 {
		return ConferenceKey{}, fmt.Errorf("invalid conference key %q", s)
	}
	year, err := strconv.Atoi(s[idx+1:])
	if err != nil {
		return ConferenceKey{}, fmt.Errorf("invalid year in conference key %q: %w", s, err)
	}
	return ConferenceKey{Acronym: s[:idx], Year: year}, nil
}

// SubmissionType classifies what the primary deadline is for
type SubmissionType string

const (
	SubmissionRegularPaper SubmissionType = "Regular Paper"
	SubmissionAbstract     SubmissionType = "Abstract"
	SubmissionLateBreaking SubmissionType = "Late Breaking Results"
	SubmissionPoster       SubmissionType = "Poster"
	SubmissionShortPaper   SubmissionType = "Short Paper"
	SubmissionWorkshop     SubmissionType = "Workshop/WIP"
	SubmissionUnknown      SubmissionType = "unknown"
)

// SubmissionTypes lists every valid submission type
var SubmissionTypes = []SubmissionType{
	SubmissionRegularPaper,
	SubmissionAbstract,
	SubmissionLateBreaking,
	SubmissionPoster,
	SubmissionShortPaper,
	SubmissionWorkshop,
	SubmissionUnknown,
}

// ParseSubmissionType maps free text (including model output) onto the enum
func ParseSubmissionType(s string) SubmissionType {
	v := strings.ToLower(strings.TrimSpace(s))
	for _, t := range SubmissionTypes {
		if v == strings.ToLower(string(t)) {
			return t
		}
	}

	switch {
	case v == "":
		return SubmissionUnknown
	case strings.Contains(v, "late") && strings.Contains(v, "break"), v == "lbr":
		return SubmissionLateBreaking
	case strings.Contains(v, "poster"):
		return SubmissionPoster
	case strings.Contains(v, "short"):
		return SubmissionShortPaper
	case strings.Contains(v, "workshop"), strings.Contains(v, "wip"), strings.Contains(v, "work-in-progress"), strings.Contains(v, "work in progress"):
		return SubmissionWorkshop
	case strings.Contains(v, "abstract"):
		return SubmissionAbstract
	case strings.Contains(v, "regular"), strings.Contains(v, "full paper"), strings.Contains(v, "research paper"), v == "paper", v == "main":
		return SubmissionRegularPaper
	}
	return SubmissionUnknown
}

// DeadlineRecord is the canonical result for one conference edition
type DeadlineRecord struct {
	Name           string            `json:"name"`
	URL            string            `json:"url"`
	PaperDeadline  string            `json:"paper_deadline"`
	SubmissionType SubmissionType    `json:"submission_type"`
	Abstract       string            `json:"abstract_deadline,omitempty"`
	ConferenceDate string            `json:"conference_date,omitempty"`
	Location       string            `json:"location,omitempty"`
	Supplementary  map[string]string `json:"supplementary_deadlines,omitempty"`
	Strategy       string            `json:"strategy,omitempty"`
	LastChecked    time.Time         `json:"last_checked"`
}

// HasDeadline reports whether the record carries a concrete paper deadline
func (r DeadlineRecord) HasDeadline() bool {
	return r.PaperDeadline != "" && r.PaperDeadline != TBD
}

// SameContent compares two records ignoring LastChecked
func (r DeadlineRecord) SameContent(o DeadlineRecord) bool {
	if r.Name != o.Name || r.URL != o.URL || r.PaperDeadline != o.PaperDeadline ||
		r.SubmissionType != o.SubmissionType || r.Abstract != o.Abstract ||
		r.ConferenceDate != o.ConferenceDate || r.Location != o.Location ||
		r.Strategy != o.Strategy || len(r.Supplementary) != len(o.Supplementary) {
		return false
	}
	for k, v := range r.Supplementary {
		if ov, ok := o.Supplementary[k]; !ok || ov != v {
			return false
		}
	}
	return true
}

// MatchLocation is where an acronym token was found on a candidate
type MatchLocation string

const (
	MatchHost  MatchLocation = "host"
	MatchPath  MatchLocation = "path"
	MatchTitle MatchLocation = "title"
	MatchBody  MatchLocation = "body"
)

// TokenMatch records one acronym or full-name token hit
type TokenMatch struct {
	Token    string        `json:"token"`
	Location MatchLocation `json:"location"`
	FullName bool          `json:"full_name,omitempty"`
}

// Candidate sources
const (
	SourceSearch  = "search"
	SourceCatalog = "catalog"
)

// CandidateSite is one search result under evaluation by the resolver.
// Never persisted.
type CandidateSite struct {
	URL             string       `json:"url"`
	Host            string       `json:"host"`
	Title           string       `json:"title,omitempty"`
	Snippet         string       `json:"snippet,omitempty"`
	Source          string       `json:"source"` // "search" or "catalog"
	Rank            int          `json:"rank"`
	MatchedTokens   []TokenMatch `json:"matched_tokens,omitempty"`
	ProximityToYear bool         `json:"proximity_to_year"`
	IsBlocklisted   bool         `json:"is_blocklisted"`
	RejectReason    string       `json:"reject_reason,omitempty"`
	Tier            HostTier     `json:"tier"`
	Score           Score        `json:"score"`
}

// Rejected reports whether the candidate failed any rejection rule
func (c *CandidateSite) Rejected() bool {
	return c.RejectReason != ""
}

// HasMatch reports whether the acronym was matched at the given location
func (c *CandidateSite) HasMatch(loc MatchLocation) bool {
	for _, m := range c.MatchedTokens {
		if m.Location == loc && !m.FullName {
			return true
		}
	}
	return false
}
