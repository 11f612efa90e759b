// Package scoring computes the derived metrics of impact analyses, RTO/RPO
// analyses and maturity scorecards. Every function is pure and never fails:
// malformed or negative input contributes 0.
package scoring

import (
	"math"
	"strconv"
	"strings"

	"github.com/secmon-lab/bcplanner/pkg/domain/model"
	"github.com/secmon-lab/bcplanner/pkg/domain/model/config"
	"github.com/secmon-lab/bcplanner/pkg/domain/types"
)

// Weights of the linear formula
const (
	reputationWeight  = 1000
	operationalWeight = 500
)

// MaxMaturity is the upper bound of a single maturity dimension
const MaxMaturity = 10

// Engine scores impact analyses with a fixed configuration
type Engine struct {
	cfg config.ScoringConfig
}

// New creates an Engine. A nil config selects DefaultScoringConfig.
func New(cfg *config.ScoringConfig) *Engine {
	if cfg == nil {
		cfg = config.DefaultScoringConfig()
	}
	c := *cfg
	c.RevenueLoss = cfg.RevenueLoss.Sorted()
	c.ProductivityLoss = cfg.ProductivityLoss.Sorted()
	c.OperatingCostIncrease = cfg.OperatingCostIncrease.Sorted()
	c.FinancialPenalties = cfg.FinancialPenalties.Sorted()
	if !c.Mode.IsValid() {
		c.Mode = types.ScoringModeStepTable
	}
	return &Engine{cfg: c}
}

// Mode returns the default scoring mode of the engine
func (e *Engine) Mode() types.ScoringMode {
	return e.cfg.Mode
}

// Score derives every score field from in using the engine's default mode
func (e *Engine) Score(in model.ImpactInput) model.ImpactScore {
	return e.ScoreWithMode(e.cfg.Mode, in)
}

// ScoreWithMode derives the score fields using the given mode. The overall
// score and tier are only set in step-table mode, total impact only in linear
// mode. Gaps are computed in both.
func (e *Engine) ScoreWithMode(mode types.ScoringMode, in model.ImpactInput) model.ImpactScore {
	score := model.ImpactScore{
		Mode:   mode,
		RTOGap: Gap(in.ExpectedRTO, in.ActualRTO),
		RPOGap: Gap(in.ExpectedRPO, in.ActualRPO),
	}

	switch mode {
	case types.ScoringModeLinear:
		score.TotalImpact = TotalImpact(in)
	default:
		score.Mode = types.ScoringModeStepTable
		score.OverallScore = e.OverallScore(in)
		score.Tier = e.Tier(score.OverallScore)
	}
	return score
}

// OverallScore is the weighted mean of the four monetary step-table scores and
// the five qualitative scores, rounded to 2 decimals.
func (e *Engine) OverallScore(in model.ImpactInput) float64 {
	w := e.cfg.Weights
	total := w.Sum()
	if total <= 0 {
		return 0
	}

	sum := w.RevenueLoss*e.cfg.RevenueLoss.Lookup(in.RevenueLoss) +
		w.ProductivityLoss*e.cfg.ProductivityLoss.Lookup(in.ProductivityLoss) +
		w.OperatingCostIncrease*e.cfg.OperatingCostIncrease.Lookup(in.OperatingCostIncrease) +
		w.FinancialPenalties*e.cfg.FinancialPenalties.Lookup(in.FinancialPenalties) +
		w.Customer*QualitativeScore(in.CustomerImpact) +
		w.Staff*QualitativeScore(in.StaffImpact) +
		w.Partner*QualitativeScore(in.PartnerImpact) +
		w.Compliance*QualitativeScore(in.ComplianceImpact) +
		w.Safety*QualitativeScore(in.SafetyImpact)

	return Round2(sum / total)
}

// Tier classifies an overall score with the configured cutoffs
func (e *Engine) Tier(score float64) types.Tier {
	return e.cfg.Tiers.Tier(score)
}

// DimensionScores returns the per-dimension step and qualitative scores, in
// the order of the overall score formula.
func (e *Engine) DimensionScores(in model.ImpactInput) []float64 {
	return []float64{
		e.cfg.RevenueLoss.Lookup(in.RevenueLoss),
		e.cfg.ProductivityLoss.Lookup(in.ProductivityLoss),
		e.cfg.OperatingCostIncrease.Lookup(in.OperatingCostIncrease),
		e.cfg.FinancialPenalties.Lookup(in.FinancialPenalties),
		QualitativeScore(in.CustomerImpact),
		QualitativeScore(in.StaffImpact),
		QualitativeScore(in.PartnerImpact),
		QualitativeScore(in.ComplianceImpact),
		QualitativeScore(in.SafetyImpact),
	}
}

// QualitativeScore maps an impact level to 0-4; unknown levels score 0
func QualitativeScore(level types.ImpactLevel) float64 {
	switch level {
	case types.ImpactLevelLow:
		return 1
	case types.ImpactLevelModerate:
		return 2
	case types.ImpactLevelHigh:
		return 3
	case types.ImpactLevelSevere:
		return 4
	default:
		return 0
	}
}

// TotalImpact is the linear dashboard formula:
// financial + reputation*1000 + operational*500 + downtimeHours*costPerHour
func TotalImpact(in model.ImpactInput) float64 {
	return nonNegative(in.FinancialImpact) +
		nonNegative(in.ReputationImpact)*reputationWeight +
		nonNegative(in.OperationalImpact)*operationalWeight +
		nonNegative(in.DowntimeHours)*nonNegative(in.CostPerHour)
}

// Gap returns actual - expected of an impact analysis objective. A missing
// operand yields 0.
func Gap(expected, actual *float64) float64 {
	if expected == nil || actual == nil {
		return 0
	}
	return finite(*actual) - finite(*expected)
}

// RTORPOGap returns acceptable - achievable of an RTO/RPO analysis
func RTORPOGap(acceptable, achievable float64) float64 {
	return finite(acceptable) - finite(achievable)
}

// MaturityScore is the mean over every checklist dimension with values
// clamped to [0, 10], rounded to 2 decimals. Missing and unparseable values
// count as 0.
func MaturityScore(scores map[types.MaturityDimension]string) float64 {
	dims := types.AllMaturityDimensions()
	if len(dims) == 0 {
		return 0
	}

	var sum float64
	for _, d := range dims {
		v := ParseNumber(scores[d])
		sum += math.Min(v, MaxMaturity)
	}
	return Round2(sum / float64(len(dims)))
}

// ParseNumber leniently parses form input. Surrounding spaces, thousands
// separators and a leading currency sign are accepted; anything else, and
// negative or non-finite numbers, yield 0.
func ParseNumber(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(strings.TrimPrefix(s, "$"))
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return nonNegative(v)
}

// Round2 rounds half away from zero to 2 decimals
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func nonNegative(v float64) float64 {
	v = finite(v)
	if v < 0 {
		return 0
	}
	return v
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
