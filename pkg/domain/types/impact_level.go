package types

import "fmt"

// ImpactLevel is a qualitative impact rating used for customer, staff, partner,
// compliance and safety impact.
type ImpactLevel string

const (
	ImpactLevelNone     ImpactLevel = "none"
	ImpactLevelLow      ImpactLevel = "low"
	ImpactLevelModerate ImpactLevel = "moderate"
	ImpactLevelHigh     ImpactLevel = "high"
	ImpactLevelSevere   ImpactLevel = "severe"
)

// AllImpactLevels returns all impact levels in ascending order
func AllImpactLevels() []ImpactLevel {
	return []ImpactLevel{
		ImpactLevelNone,
		ImpactLevelLow,
		ImpactLevelModerate,
		ImpactLevelHigh,
		ImpactLevelSevere,
	}
}

// IsValid checks if the impact level is valid. Empty is accepted and treated as none.
func (l ImpactLevel) IsValid() bool {
	switch l {
	case "", ImpactLevelNone, ImpactLevelLow, ImpactLevelModerate, ImpactLevelHigh, ImpactLevelSevere:
		return true
	default:
		return false
	}
}

func (l ImpactLevel) String() string {
	return string(l)
}

// ParseImpactLevel parses a string into an ImpactLevel
func ParseImpactLevel(s string) (ImpactLevel, error) {
	l := ImpactLevel(s)
	if !l.IsValid() {
		return "", fmt.Errorf("invalid impact level: %s", s)
	}
	return l, nil
}
