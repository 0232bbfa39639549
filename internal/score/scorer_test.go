package score

import (
	"testing"

	"github.com/ppiankov/cfpwatch/internal/model"
)

func TestScorer_Calculate_HostAndYear(t *testing.T) {
	scorer := NewScorer()

	c := &model.CandidateSite{
		URL:    "https://iscaconf.org/isca2026/",
		Host:   "iscaconf.org",
		Source: model.SourceSearch,
		MatchedTokens: []model.TokenMatch{
			{Token: "isca", Location: model.MatchHost},
			{Token: "isca", Location: model.MatchPath},
			{Token: "isca", Location: model.MatchTitle},
		},
		ProximityToYear: true,
		Tier:            model.TierOfficial,
	}

	result := scorer.Calculate(c, 2026)

	// host 40 + two extra locations 10 + proximity 20 + year in URL 10
	if result.Total != 80 {
		t.Errorf("expected total 80, got %d", result.Total)
	}

	sum := 0
	for _, sig := range result.Signals {
		sum += sig.Points
	}
	if sum != result.Total {
		t.Errorf("signal points (%d) should add up to total (%d)", sum, result.Total)
	}
}

func TestScorer_Calculate_LocationOrder(t *testing.T) {
	tests := []struct {
		name     string
		location model.MatchLocation
		want     int
	}{
		{"host", model.MatchHost, HostPoints},
		{"path", model.MatchPath, PathPoints},
		{"title", model.MatchTitle, TitlePoints},
		{"body", model.MatchBody, BodyPoints},
	}

	scorer := NewScorer()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &model.CandidateSite{
				URL:           "https://example.org/",
				Host:          "example.org",
				MatchedTokens: []model.TokenMatch{{Token: "date", Location: tt.location}},
				Tier:          model.TierNeutral,
			}
			if got := scorer.Calculate(c, 2026).Total; got != tt.want {
				t.Errorf("expected %d points, got %d", tt.want, got)
			}
		})
	}
}

func TestScorer_Calculate_CatalogSeedAndFullName(t *testing.T) {
	scorer := NewScorer()

	c := &model.CandidateSite{
		URL:    "https://www.isfpga.org/",
		Host:   "www.isfpga.org",
		Source: model.SourceCatalog,
		MatchedTokens: []model.TokenMatch{
			{Token: "International Symposium on Field-Programmable Gate Arrays", Location: model.MatchTitle, FullName: true},
		},
		Tier: model.TierOfficial,
	}

	result := scorer.Calculate(c, 2026)
	if result.Total != CatalogSeedPoints+FullNamePoints {
		t.Errorf("expected %d, got %d", CatalogSeedPoints+FullNamePoints, result.Total)
	}

	// the full-name hit must not count as an acronym location
	for _, sig := range result.Signals {
		if sig.Type == model.SignalTokenLocation && sig.Points != 0 {
			t.Errorf("full-name match scored as acronym location: %+v", sig)
		}
	}
}

func TestScorer_Calculate_CommercialHostWarns(t *testing.T) {
	scorer := NewScorer()

	c := &model.CandidateSite{
		URL:           "https://www.dac.com/",
		Host:          "www.dac.com",
		MatchedTokens: []model.TokenMatch{{Token: "dac", Location: model.MatchHost}},
		Tier:          model.TierCommercial,
	}

	result := scorer.Calculate(c, 2026)
	found := false
	for _, sig := range result.Signals {
		if sig.Type == model.SignalHostTier {
			found = true
			if sig.Severity != model.SeverityWarning {
				t.Errorf("expected warning severity for commercial host, got %s", sig.Severity)
			}
			if sig.Points != 0 {
				t.Errorf("host tier is informational, got %d points", sig.Points)
			}
		}
	}
	if !found {
		t.Error("expected a host tier signal")
	}
}
