package types

import "fmt"

// ScoringMode selects how an impact analysis is valued. The two modes are
// independent formulas and are never mixed on one record.
type ScoringMode string

const (
	// ScoringModeStepTable maps each dimension through its band table and
	// aggregates into an overall score and tier.
	ScoringModeStepTable ScoringMode = "step_table"
	// ScoringModeLinear is the dashboard formula producing a monetary total impact.
	ScoringModeLinear ScoringMode = "linear"
)

// IsValid checks if the scoring mode is valid
func (m ScoringMode) IsValid() bool {
	switch m {
	case ScoringModeStepTable, ScoringModeLinear:
		return true
	default:
		return false
	}
}

func (m ScoringMode) String() string {
	return string(m)
}

// ParseScoringMode parses a string into a ScoringMode
func ParseScoringMode(s string) (ScoringMode, error) {
	m := ScoringMode(s)
	if !m.IsValid() {
		return "", fmt.Errorf("invalid scoring mode: %s", s)
	}
	return m, nil
}
