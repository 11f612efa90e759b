package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bcplanner/pkg/cli/config"
	"github.com/secmon-lab/bcplanner/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	var path string

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate a scoring configuration file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "scoring-config",
				Aliases:     []string{"c"},
				Usage:       "Path to the scoring TOML file",
				Required:    true,
				Sources:     cli.EnvVars("BCPLANNER_SCORING_CONFIG"),
				Destination: &path,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			cfg, err := config.LoadScoringConfiguration(path)
			if err != nil {
				return goerr.Wrap(err, "configuration validation failed")
			}

			logging.Default().Info("Scoring configuration validation passed",
				"path", path,
				"mode", cfg.Mode,
				"revenue_loss_bands", len(cfg.RevenueLoss),
				"productivity_loss_bands", len(cfg.ProductivityLoss),
				"operating_cost_increase_bands", len(cfg.OperatingCostIncrease),
				"financial_penalties_bands", len(cfg.FinancialPenalties),
				"weight_sum", cfg.Weights.Sum(),
				"tier_gold", cfg.Tiers.Gold,
				"tier_silver", cfg.Tiers.Silver,
				"tier_bronze", cfg.Tiers.Bronze,
			)
			return nil
		},
	}
}
