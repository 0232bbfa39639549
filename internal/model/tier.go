package model

// HostTier classifies how official a candidate host looks.
// Higher tiers win score ties in the resolver.
type HostTier int

const (
	TierCommercial HostTier = 0 // .com, .net and other commercial-looking hosts
	TierNeutral    HostTier = 1 // Unclassified
	TierOfficial   HostTier = 2 // .org, .edu, .ac.*, society-run hosts
)

func (t HostTier) String() string {
	switch t {
	case TierOfficial:
		return "official"
	case TierNeutral:
		return "neutral"
	default:
		return "commercial"
	}
}
