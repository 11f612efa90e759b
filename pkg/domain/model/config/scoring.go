package config

import (
	"math"
	"sort"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bcplanner/pkg/domain/types"
)

// Band maps every value at or above Threshold to Score
type Band struct {
	Threshold float64
	Score     float64
}

// StepTable is an ordered list of bands, highest threshold first
type StepTable []Band

// Lookup returns the score of the band with the highest threshold that is less
// than or equal to v. Values below the lowest threshold, negative values and
// NaN score 0.
func (t StepTable) Lookup(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	for _, b := range t {
		if v >= b.Threshold {
			return b.Score
		}
	}
	return 0
}

// Sorted returns a copy ordered by descending threshold
func (t StepTable) Sorted() StepTable {
	out := make(StepTable, len(t))
	copy(out, t)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Threshold > out[j].Threshold
	})
	return out
}

// Validate checks the table is non-empty, strictly descending by threshold and
// non-increasing by score so that the lookup is monotone.
func (t StepTable) Validate() error {
	if len(t) == 0 {
		return goerr.New("step table is empty")
	}
	for i, b := range t {
		if b.Threshold < 0 || b.Score < 0 {
			return goerr.New("step table band must not be negative",
				goerr.V("index", i), goerr.V("threshold", b.Threshold), goerr.V("score", b.Score))
		}
		if i == 0 {
			continue
		}
		prev := t[i-1]
		if b.Threshold >= prev.Threshold {
			return goerr.New("step table thresholds must be strictly descending",
				goerr.V("index", i), goerr.V("threshold", b.Threshold))
		}
		if b.Score > prev.Score {
			return goerr.New("step table scores must not increase as threshold decreases",
				goerr.V("index", i), goerr.V("score", b.Score))
		}
	}
	return nil
}

// Weights of the nine dimensions of the overall impact score
type Weights struct {
	RevenueLoss           float64
	ProductivityLoss      float64
	OperatingCostIncrease float64
	FinancialPenalties    float64
	Customer              float64
	Staff                 float64
	Partner               float64
	Compliance            float64
	Safety                float64
}

// Sum returns the total weight
func (w Weights) Sum() float64 {
	return w.RevenueLoss + w.ProductivityLoss + w.OperatingCostIncrease + w.FinancialPenalties +
		w.Customer + w.Staff + w.Partner + w.Compliance + w.Safety
}

func (w Weights) validate() error {
	for name, v := range map[string]float64{
		"revenue_loss":            w.RevenueLoss,
		"productivity_loss":       w.ProductivityLoss,
		"operating_cost_increase": w.OperatingCostIncrease,
		"financial_penalties":     w.FinancialPenalties,
		"customer":                w.Customer,
		"staff":                   w.Staff,
		"partner":                 w.Partner,
		"compliance":              w.Compliance,
		"safety":                  w.Safety,
	} {
		if v < 0 || math.IsNaN(v) {
			return goerr.New("weight must not be negative", goerr.V("dimension", name), goerr.V("weight", v))
		}
	}
	return nil
}

// TierCutoffs are the minimum overall scores of each tier
type TierCutoffs struct {
	Gold   float64
	Silver float64
	Bronze float64
}

// Tier classifies an overall score
func (c TierCutoffs) Tier(score float64) types.Tier {
	switch {
	case score >= c.Gold:
		return types.TierGold
	case score >= c.Silver:
		return types.TierSilver
	case score >= c.Bronze:
		return types.TierBronze
	default:
		return types.TierNonCritical
	}
}

func (c TierCutoffs) validate() error {
	if !(c.Gold > c.Silver && c.Silver > c.Bronze && c.Bronze > 0) {
		return goerr.New("tier cutoffs must satisfy gold > silver > bronze > 0",
			goerr.V("gold", c.Gold), goerr.V("silver", c.Silver), goerr.V("bronze", c.Bronze))
	}
	return nil
}

// ScoringConfig holds the tables used by the impact scoring engine
type ScoringConfig struct {
	Mode                  types.ScoringMode
	RevenueLoss           StepTable
	ProductivityLoss      StepTable
	OperatingCostIncrease StepTable
	FinancialPenalties    StepTable
	Weights               Weights
	Tiers                 TierCutoffs
}

// Validate checks every table and cutoff
func (c *ScoringConfig) Validate() error {
	if !c.Mode.IsValid() {
		return goerr.New("invalid scoring mode", goerr.V("mode", c.Mode))
	}
	for name, table := range map[string]StepTable{
		"revenue_loss":            c.RevenueLoss,
		"productivity_loss":       c.ProductivityLoss,
		"operating_cost_increase": c.OperatingCostIncrease,
		"financial_penalties":     c.FinancialPenalties,
	} {
		if err := table.Validate(); err != nil {
			return goerr.Wrap(err, "invalid step table", goerr.V("table", name))
		}
	}
	if err := c.Weights.validate(); err != nil {
		return goerr.Wrap(err, "invalid weights")
	}
	if err := c.Tiers.validate(); err != nil {
		return goerr.Wrap(err, "invalid tier cutoffs")
	}
	return nil
}

// defaultScores are shared by every default step table, 4.0 down to 0 in 0.5 steps
var defaultScores = []float64{4.0, 3.5, 3.0, 2.5, 2.0, 1.5, 1.0, 0.5, 0}

func newStepTable(thresholds ...float64) StepTable {
	table := make(StepTable, len(thresholds))
	for i, th := range thresholds {
		table[i] = Band{Threshold: th, Score: defaultScores[i]}
	}
	return table
}

// DefaultScoringConfig returns the built-in tables, equal weights and standard tiers
func DefaultScoringConfig() *ScoringConfig {
	return &ScoringConfig{
		Mode:                  types.ScoringModeStepTable,
		RevenueLoss:           newStepTable(500000, 375000, 250000, 150000, 100000, 50000, 25000, 10000, 0),
		ProductivityLoss:      newStepTable(200000, 150000, 100000, 75000, 50000, 25000, 10000, 5000, 0),
		OperatingCostIncrease: newStepTable(100000, 75000, 50000, 30000, 20000, 10000, 5000, 1000, 0),
		FinancialPenalties:    newStepTable(1000000, 750000, 500000, 250000, 100000, 50000, 25000, 10000, 0),
		Weights: Weights{
			RevenueLoss:           1,
			ProductivityLoss:      1,
			OperatingCostIncrease: 1,
			FinancialPenalties:    1,
			Customer:              1,
			Staff:                 1,
			Partner:               1,
			Compliance:            1,
			Safety:                1,
		},
		Tiers: TierCutoffs{Gold: 3.0, Silver: 2.0, Bronze: 1.0},
	}
}
