package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	domainConfig "github.com/secmon-lab/bcplanner/pkg/domain/model/config"
	"github.com/secmon-lab/bcplanner/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// ScoringFile is the TOML representation of the scoring tables. Every
// section is optional; omitted sections and keys keep the built-in values.
type ScoringFile struct {
	Mode                  string        `toml:"mode"`
	RevenueLoss           []BandEntry   `toml:"revenue_loss"`
	ProductivityLoss      []BandEntry   `toml:"productivity_loss"`
	OperatingCostIncrease []BandEntry   `toml:"operating_cost_increase"`
	FinancialPenalties    []BandEntry   `toml:"financial_penalties"`
	Weights               *WeightsEntry `toml:"weights"`
	Tiers                 *TiersEntry   `toml:"tiers"`
}

// BandEntry is one row of a step table
type BandEntry struct {
	Threshold float64 `toml:"threshold"`
	Score     float64 `toml:"score"`
}

// WeightsEntry overrides dimension weights of the overall score
type WeightsEntry struct {
	RevenueLoss           *float64 `toml:"revenue_loss"`
	ProductivityLoss      *float64 `toml:"productivity_loss"`
	OperatingCostIncrease *float64 `toml:"operating_cost_increase"`
	FinancialPenalties    *float64 `toml:"financial_penalties"`
	Customer              *float64 `toml:"customer"`
	Staff                 *float64 `toml:"staff"`
	Partner               *float64 `toml:"partner"`
	Compliance            *float64 `toml:"compliance"`
	Safety                *float64 `toml:"safety"`
}

// TiersEntry overrides the tier cutoffs
type TiersEntry struct {
	Gold   *float64 `toml:"gold"`
	Silver *float64 `toml:"silver"`
	Bronze *float64 `toml:"bronze"`
}

func toStepTable(entries []BandEntry) domainConfig.StepTable {
	table := make(domainConfig.StepTable, len(entries))
	for i, e := range entries {
		table[i] = domainConfig.Band{Threshold: e.Threshold, Score: e.Score}
	}
	return table.Sorted()
}

func override(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

// ToDomain merges the file over DefaultScoringConfig
func (f *ScoringFile) ToDomain() *domainConfig.ScoringConfig {
	cfg := domainConfig.DefaultScoringConfig()

	if f.Mode != "" {
		cfg.Mode = types.ScoringMode(f.Mode)
	}

	tables := []struct {
		entries []BandEntry
		dst     *domainConfig.StepTable
	}{
		{f.RevenueLoss, &cfg.RevenueLoss},
		{f.ProductivityLoss, &cfg.ProductivityLoss},
		{f.OperatingCostIncrease, &cfg.OperatingCostIncrease},
		{f.FinancialPenalties, &cfg.FinancialPenalties},
	}
	for _, t := range tables {
		if len(t.entries) > 0 {
			*t.dst = toStepTable(t.entries)
		}
	}

	if w := f.Weights; w != nil {
		override(&cfg.Weights.RevenueLoss, w.RevenueLoss)
		override(&cfg.Weights.ProductivityLoss, w.ProductivityLoss)
		override(&cfg.Weights.OperatingCostIncrease, w.OperatingCostIncrease)
		override(&cfg.Weights.FinancialPenalties, w.FinancialPenalties)
		override(&cfg.Weights.Customer, w.Customer)
		override(&cfg.Weights.Staff, w.Staff)
		override(&cfg.Weights.Partner, w.Partner)
		override(&cfg.Weights.Compliance, w.Compliance)
		override(&cfg.Weights.Safety, w.Safety)
	}

	if t := f.Tiers; t != nil {
		override(&cfg.Tiers.Gold, t.Gold)
		override(&cfg.Tiers.Silver, t.Silver)
		override(&cfg.Tiers.Bronze, t.Bronze)
	}

	return cfg
}

// LoadScoringConfiguration reads and validates a scoring TOML file
func LoadScoringConfiguration(path string) (*domainConfig.ScoringConfig, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, goerr.Wrap(ErrConfigNotFound, "scoring config does not exist", goerr.V(ConfigPathKey, path))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read scoring config", goerr.V(ConfigPathKey, path))
	}

	var file ScoringFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "failed to parse TOML scoring config",
			goerr.V(ConfigPathKey, path), goerr.V("error", err.Error()))
	}

	cfg := file.ToDomain()
	if err := cfg.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "scoring config validation failed",
			goerr.V(ConfigPathKey, path), goerr.V("error", err.Error()))
	}

	return cfg, nil
}

// Scoring holds the path of the optional scoring tables file
type Scoring struct {
	path string
}

func (x *Scoring) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "scoring-config",
			Usage:       "Path to a TOML file overriding scoring step tables, weights and tier cutoffs",
			Category:    "Scoring",
			Sources:     cli.EnvVars("BCPLANNER_SCORING_CONFIG"),
			Destination: &x.path,
		},
	}
}

func (x Scoring) LogValue() slog.Value {
	return slog.GroupValue(slog.String("path", x.path))
}

// Configure loads the scoring file, or returns the defaults when no path is set
func (x *Scoring) Configure() (*domainConfig.ScoringConfig, error) {
	if x.path == "" {
		return domainConfig.DefaultScoringConfig(), nil
	}
	return LoadScoringConfiguration(x.path)
}
