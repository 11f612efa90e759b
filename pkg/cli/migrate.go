package cli

import (
	"context"

	"github.com/m-mizutani/fireconf"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bcplanner/pkg/utils/logging"
	"github.com/secmon-lab/bcplanner/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdMigrate() *cli.Command {
	var projectID string
	var databaseID string
	var dryRun bool

	return &cli.Command{
		Name:    "migrate",
		Aliases: []string{"m"},
		Usage:   "Migrate Firestore indexes",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "firestore-project-id",
				Usage:       "Firestore Project ID (required)",
				Required:    true,
				Sources:     cli.EnvVars("BCPLANNER_FIRESTORE_PROJECT_ID"),
				Destination: &projectID,
			},
			&cli.StringFlag{
				Name:        "firestore-database-id",
				Usage:       "Firestore Database ID",
				Sources:     cli.EnvVars("BCPLANNER_FIRESTORE_DATABASE_ID"),
				Destination: &databaseID,
			},
			&cli.BoolFlag{
				Name:        "dry-run",
				Usage:       "Preview changes without applying",
				Destination: &dryRun,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			logger.Info("Migrate configuration",
				"projectID", projectID,
				"databaseID", databaseID,
				"dryRun", dryRun)

			indexConfig := getIndexConfig()

			client, err := fireconf.New(ctx, projectID, databaseID, indexConfig,
				fireconf.WithLogger(logger),
				fireconf.WithDryRun(dryRun),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create fireconf client")
			}
			defer safe.Close(ctx, "fireconf client", client)

			if dryRun {
				logger.Info("Dry run mode - previewing changes")
				current, err := client.Import(ctx, collectionNames(indexConfig)...)
				if err != nil {
					return goerr.Wrap(err, "failed to read current indexes")
				}
				diff, err := client.DiffConfigs(current)
				if err != nil {
					return goerr.Wrap(err, "failed to compare index configuration")
				}

				if len(diff.Collections) == 0 {
					logger.Info("No changes required")
					return nil
				}
				for _, col := range diff.Collections {
					logger.Info("Migration step",
						"collection", col.Name,
						"action", col.Action,
						"indexes_to_add", len(col.IndexesToAdd),
						"indexes_to_delete", len(col.IndexesToDelete))
				}
				return nil
			}

			logger.Info("Applying migrations")
			if err := client.Migrate(ctx); err != nil {
				return goerr.Wrap(err, "failed to apply migrations")
			}
			logger.Info("Migrations applied successfully")
			return nil
		},
	}
}

// getIndexConfig returns the Firestore composite indexes. Collections live
// under owners/{ownerID}, so each index applies to every owner's subcollection.
func getIndexConfig() *fireconf.Config {
	return &fireconf.Config{
		Collections: []fireconf.Collection{
			{
				Name: "rto_rpo_analyses",
				Indexes: []fireconf.Index{
					// List: business_process_id ASC, type ASC, metric ASC
					{
						Fields: []fireconf.IndexField{
							{Path: "business_process_id", Order: fireconf.OrderAscending},
							{Path: "type", Order: fireconf.OrderAscending},
							{Path: "metric", Order: fireconf.OrderAscending},
						},
					},
				},
			},
		},
	}
}

func collectionNames(cfg *fireconf.Config) []string {
	names := make([]string, 0, len(cfg.Collections))
	for _, col := range cfg.Collections {
		names = append(names, col.Name)
	}
	return names
}
