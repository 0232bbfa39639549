package model

// Score is the transparent scoring breakdown of a candidate site
type Score struct {
	Total   int      `json:"total"`
	Signals []Signal `json:"signals"`
}

// Signal represents one scoring contribution with transparent data
type Signal struct {
	Type        SignalType             `json:"type"`
	Severity    SignalSeverity         `json:"severity"`
	Description string                 `json:"description"`
	Points      int                    `json:"points"`
	Data        map[string]interface{} `json:"data,omitempty"` // Formula inputs
}

// SignalType classifies a scoring signal
type SignalType string

const (
	SignalTokenLocation   SignalType = "token_location"  // Best acronym match location
	SignalExtraLocation   SignalType = "extra_location"  // Acronym also matched elsewhere
	SignalYearProximity   SignalType = "year_proximity"  // Year near acronym
	SignalYearInURL       SignalType = "year_in_url"     // Year present in host or path
	SignalCatalogSeed     SignalType = "catalog_seed"    // Built from a known URL pattern
	SignalFullNameInTitle SignalType = "full_name_title" // Expanded name in title or snippet
	SignalHostTier        SignalType = "host_tier"       // Informational, used for tie-breaks
)

// SignalSeverity indicates the importance of the signal
type SignalSeverity string

const (
	SeverityInfo     SignalSeverity = "info"
	SeverityWarning  SignalSeverity = "warning"
	SeverityCritical SignalSeverity = "critical"
)
