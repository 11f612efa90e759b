package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bcplanner/pkg/domain/interfaces"
	"github.com/secmon-lab/bcplanner/pkg/repository/firestore"
	"github.com/secmon-lab/bcplanner/pkg/repository/memory"
	"github.com/secmon-lab/bcplanner/pkg/repository/sql"
	"github.com/secmon-lab/bcplanner/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Repository backend names
const (
	BackendFirestore = "firestore"
	BackendMemory    = "memory"
	BackendSQLite    = "sqlite"
	BackendPostgres  = "postgres"
)

// Repository holds CLI flags for repository backend configuration
type Repository struct {
	backend          string
	projectID        string
	databaseID       string
	collectionPrefix string
	dsn              string
}

// Flags returns CLI flags for repository configuration
func (r *Repository) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "repository-backend",
			Usage:       "Repository backend type (firestore, sqlite, postgres or memory)",
			Category:    "Repository",
			Value:       BackendFirestore,
			Sources:     cli.EnvVars("BCPLANNER_REPOSITORY_BACKEND"),
			Destination: &r.backend,
		},
		&cli.StringFlag{
			Name:        "firestore-project-id",
			Usage:       "Firestore Project ID (required when using firestore backend)",
			Category:    "Repository",
			Sources:     cli.EnvVars("BCPLANNER_FIRESTORE_PROJECT_ID"),
			Destination: &r.projectID,
		},
		&cli.StringFlag{
			Name:        "firestore-database-id",
			Usage:       "Firestore Database ID",
			Category:    "Repository",
			Sources:     cli.EnvVars("BCPLANNER_FIRESTORE_DATABASE_ID"),
			Destination: &r.databaseID,
		},
		&cli.StringFlag{
			Name:        "firestore-collection-prefix",
			Usage:       "Prefix of the Firestore root collection, to share a database between environments",
			Category:    "Repository",
			Sources:     cli.EnvVars("BCPLANNER_FIRESTORE_COLLECTION_PREFIX"),
			Destination: &r.collectionPrefix,
		},
		&cli.StringFlag{
			Name:        "sql-dsn",
			Usage:       "Data source name for sqlite or postgres backend (e.g. file:bcp.db or postgres://user@host/db)",
			Category:    "Repository",
			Sources:     cli.EnvVars("BCPLANNER_SQL_DSN"),
			Destination: &r.dsn,
		},
	}
}

func (r Repository) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("backend", r.backend),
		slog.String("project_id", r.projectID),
		slog.String("database_id", r.databaseID),
		slog.Bool("dsn", r.dsn != ""),
	)
}

// Backend returns the configured backend type
func (r *Repository) Backend() string {
	return r.backend
}

// ProjectID returns the Firestore project ID
func (r *Repository) ProjectID() string {
	return r.projectID
}

// DatabaseID returns the Firestore database ID
func (r *Repository) DatabaseID() string {
	return r.databaseID
}

// Configure initializes and returns a repository based on the configured backend.
// The caller is responsible for calling Close() on the returned repository.
func (r *Repository) Configure(ctx context.Context) (interfaces.Repository, error) {
	switch r.backend {
	case BackendFirestore:
		if r.projectID == "" {
			return nil, goerr.Wrap(ErrMissingFlag, "firestore-project-id is required when using firestore backend",
				goerr.V(FlagKey, "firestore-project-id"))
		}
		var opts []firestore.Option
		if r.collectionPrefix != "" {
			opts = append(opts, firestore.WithCollectionPrefix(r.collectionPrefix))
		}
		repo, err := firestore.New(ctx, r.projectID, r.databaseID, opts...)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize firestore repository")
		}
		logging.Default().Info("Using Firestore repository",
			"project_id", r.projectID,
			"database_id", r.databaseID,
		)
		return repo, nil

	case BackendSQLite, BackendPostgres:
		if r.dsn == "" {
			return nil, goerr.Wrap(ErrMissingFlag, "sql-dsn is required when using sql backend",
				goerr.V(FlagKey, "sql-dsn"), goerr.V(BackendKey, r.backend))
		}
		driver := sql.DriverPostgres
		if r.backend == BackendSQLite {
			driver = sql.DriverSQLite
		}
		repo, err := sql.New(ctx, driver, r.dsn)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to initialize sql repository", goerr.V(BackendKey, r.backend))
		}
		logging.Default().Info("Using SQL repository", "backend", r.backend)
		return repo, nil

	case BackendMemory:
		logging.Default().Info("Using in-memory repository (development mode)")
		return memory.New(), nil

	default:
		return nil, goerr.Wrap(ErrInvalidBackend, "cannot configure repository", goerr.V(BackendKey, r.backend))
	}
}
