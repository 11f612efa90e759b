package types

// Tier is the criticality tier derived from an overall impact score
type Tier string

const (
	TierGold        Tier = "tier1_gold"
	TierSilver      Tier = "tier2_silver"
	TierBronze      Tier = "tier3_bronze"
	TierNonCritical Tier = "non_critical"
)

// AllTiers returns all tiers from most to least critical
func AllTiers() []Tier {
	return []Tier{
		TierGold,
		TierSilver,
		TierBronze,
		TierNonCritical,
	}
}

// Label returns the display label of the tier
func (t Tier) Label() string {
	switch t {
	case TierGold:
		return "Tier 1 (Gold)"
	case TierSilver:
		return "Tier 2 (Silver)"
	case TierBronze:
		return "Tier 3 (Bronze)"
	case TierNonCritical:
		return "Non-critical"
	default:
		return "N/A"
	}
}

func (t Tier) String() string {
	return string(t)
}
