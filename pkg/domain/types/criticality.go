package types

import "fmt"

// Criticality is the user-assigned criticality rating of a business process.
// Values are ordered from least to most critical.
type Criticality string

const (
	CriticalityLow      Criticality = "low"
	CriticalityMedium   Criticality = "medium"
	CriticalityHigh     Criticality = "high"
	CriticalityCritical Criticality = "critical"
)

// AllCriticalities returns all valid criticality ratings in ascending order
func AllCriticalities() []Criticality {
	return []Criticality{
		CriticalityLow,
		CriticalityMedium,
		CriticalityHigh,
		CriticalityCritical,
	}
}

// IsValid checks if the criticality is valid
func (c Criticality) IsValid() bool {
	return c.Rank() > 0
}

// Rank returns the 1-based position of the rating, or 0 when invalid
func (c Criticality) Rank() int {
	for i, v := range AllCriticalities() {
		if v == c {
			return i + 1
		}
	}
	return 0
}

func (c Criticality) String() string {
	return string(c)
}

// ParseCriticality parses a string into a Criticality
func ParseCriticality(s string) (Criticality, error) {
	c := Criticality(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid criticality: %s", s)
	}
	return c, nil
}
