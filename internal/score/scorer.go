package score

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ppiankov/cfpwatch/internal/model"
)

// Points per contribution. The best acronym location counts fully, every
// further location adds ExtraLocationPoints.
const (
	HostPoints          = 40
	PathPoints          = 25
	TitlePoints         = 15
	BodyPoints          = 5
	ExtraLocationPoints = 5
	YearProximityPoints = 20
	YearInURLPoints     = 10
	CatalogSeedPoints   = 15
	FullNamePoints      = 10
)

// locationOrder ranks match locations from strongest to weakest
var locationOrder = []model.MatchLocation{
	model.MatchHost,
	model.MatchPath,
	model.MatchTitle,
	model.MatchBody,
}

var locationPoints = map[model.MatchLocation]int{
	model.MatchHost:  HostPoints,
	model.MatchPath:  PathPoints,
	model.MatchTitle: TitlePoints,
	model.MatchBody:  BodyPoints,
}

// Scorer calculates candidate scores and generates signals
type Scorer struct{}

// NewScorer creates a new scorer
func NewScorer() *Scorer {
	return &Scorer{}
}

// Calculate scores an evaluated candidate for the target year. Every
// contribution is reported as a signal so the ranking stays explainable.
func (s *Scorer) Calculate(c *model.CandidateSite, year int) model.Score {
	var signals []model.Signal

	// 1. Acronym location (5-40 points, +5 per extra location)
	signals = append(signals, s.calculateLocation(c)...)

	// 2. Year proximity (20 points)
	if c.ProximityToYear {
		signals = append(signals, model.Signal{
			Type:        model.SignalYearProximity,
			Severity:    model.SeverityInfo,
			Description: fmt.Sprintf("Year %d appears near the acronym", year),
			Points:      YearProximityPoints,
		})
	}

	// 3. Year in URL (10 points)
	if yearInURL(c, year) {
		signals = append(signals, model.Signal{
			Type:        model.SignalYearInURL,
			Severity:    model.SeverityInfo,
			Description: fmt.Sprintf("URL contains %d", year),
			Points:      YearInURLPoints,
			Data:        map[string]interface{}{"url": c.URL},
		})
	}

	// 4. Catalog seed (15 points)
	if c.Source == model.SourceCatalog {
		signals = append(signals, model.Signal{
			Type:        model.SignalCatalogSeed,
			Severity:    model.SeverityInfo,
			Description: "Built from a known official URL pattern",
			Points:      CatalogSeedPoints,
		})
	}

	// 5. Full name (10 points)
	for _, m := range c.MatchedTokens {
		if m.FullName {
			signals = append(signals, model.Signal{
				Type:        model.SignalFullNameInTitle,
				Severity:    model.SeverityInfo,
				Description: fmt.Sprintf("Full name found in %s", m.Location),
				Points:      FullNamePoints,
				Data:        map[string]interface{}{"full_name": m.Token},
			})
			break
		}
	}

	// 6. Host tier (informational, breaks ties)
	signals = append(signals, model.Signal{
		Type:        model.SignalHostTier,
		Severity:    tierSeverity(c.Tier),
		Description: fmt.Sprintf("Host %s looks %s", c.Host, c.Tier),
		Data:        map[string]interface{}{"tier": int(c.Tier)},
	})

	total := 0
	for _, sig := range signals {
		total += sig.Points
	}

	return model.Score{
		Total:   total,
		Signals: signals,
	}
}

// calculateLocation scores the strongest acronym location plus a bonus per extra location
func (s *Scorer) calculateLocation(c *model.CandidateSite) []model.Signal {
	var found []model.MatchLocation
	for _, loc := range locationOrder {
		if c.HasMatch(loc) {
			found = append(found, loc)
		}
	}

	if len(found) == 0 {
		return []model.Signal{{
			Type:        model.SignalTokenLocation,
			Severity:    model.SeverityWarning,
			Description: "Acronym not found as a token",
			Data:        map[string]interface{}{"locations": 0},
		}}
	}

	best := found[0]
	severity := model.SeverityInfo
	if best == model.MatchBody {
		severity = model.SeverityWarning
	}

	signals := []model.Signal{{
		Type:        model.SignalTokenLocation,
		Severity:    severity,
		Description: fmt.Sprintf("Acronym matched in %s", best),
		Points:      locationPoints[best],
		Data: map[string]interface{}{
			"location": string(best),
			"formula":  "host=40, path=25, title=15, body=5",
		},
	}}

	if extra := len(found) - 1; extra > 0 {
		names := make([]string, 0, extra)
		for _, loc := range found[1:] {
			names = append(names, string(loc))
		}
		signals = append(signals, model.Signal{
			Type:        model.SignalExtraLocation,
			Severity:    model.SeverityInfo,
			Description: fmt.Sprintf("Acronym also matched in %s", strings.Join(names, ", ")),
			Points:      extra * ExtraLocationPoints,
			Data: map[string]interface{}{
				"extra":   extra,
				"formula": "extra_locations * 5",
			},
		})
	}

	return signals
}

func yearInURL(c *model.CandidateSite, year int) bool {
	return strings.Contains(c.URL, strconv.Itoa(year))
}

func tierSeverity(t model.HostTier) model.SignalSeverity {
	if t == model.TierCommercial {
		return model.SeverityWarning
	}
	return model.SeverityInfo
}
