package cli

import (
	"context"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bcplanner/pkg/cli/config"
	"github.com/secmon-lab/bcplanner/pkg/domain/model"
	"github.com/secmon-lab/bcplanner/pkg/service/report"
	"github.com/secmon-lab/bcplanner/pkg/utils/logging"
	"github.com/secmon-lab/bcplanner/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdReport() *cli.Command {
	var owner string
	var output string
	var repoCfg config.Repository
	var reportCfg reportConfig

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "owner",
			Usage:       "Owner ID whose records are rendered",
			Required:    true,
			Sources:     cli.EnvVars("BCPLANNER_OWNER"),
			Destination: &owner,
		},
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Path of the PDF to write",
			Value:       report.Filename,
			Destination: &output,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, reportCfg.flags()...)

	return &cli.Command{
		Name:    "report",
		Aliases: []string{"r"},
		Usage:   "Render the business continuity plan of an owner to a PDF file",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer safe.Close(ctx, "repository", repo)

			uc, closeUC, err := reportCfg.newUseCases(ctx, repo)
			if err != nil {
				return err
			}
			defer closeUC()

			rep, err := uc.Report.Generate(ctx, model.OwnerID(owner))
			if err != nil {
				return goerr.Wrap(err, "failed to generate report", goerr.V("owner_id", owner))
			}

			if err := os.WriteFile(output, rep.Data, 0o600); err != nil {
				return goerr.Wrap(err, "failed to write report", goerr.V("path", output))
			}

			for _, w := range rep.Bundle.Warnings {
				logging.Default().Warn("Report is missing a collection", "collection", w.Collection, "reason", w.Message)
			}
			logging.Default().Info("Report written",
				"path", output,
				"bytes", len(rep.Data),
				"processes", rep.Bundle.Summary.ProcessCount,
				"partial", rep.Bundle.IsPartial(),
				"archive", rep.Location,
			)
			return nil
		},
	}
}
