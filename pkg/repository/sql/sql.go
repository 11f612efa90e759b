package sql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bcplanner/pkg/domain/interfaces"
	"github.com/secmon-lab/bcplanner/pkg/domain/model"

	// database drivers selectable by name
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

var (
	ErrNotFound          = goerr.Wrap(interfaces.ErrNotFound, "sql")
	ErrUnsupportedDriver = goerr.New("unsupported sql driver")
)

const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
)

// SQL stores each entity as a JSON document row. Key columns are duplicated out
// of the document so that owner scoping and unique constraints are enforced by
// the database.
type SQL struct {
	db *sqlx.DB

	businessProcess  *businessProcessRepository
	impactAnalysis   *impactAnalysisRepository
	rtoRPO           *rtoRPORepository
	recoveryWorkflow *recoveryWorkflowRepository
	maturity         *maturityRepository
}

var _ interfaces.Repository = &SQL{}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS business_processes (
		owner_id   TEXT NOT NULL,
		id         TEXT NOT NULL,
		doc        TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		PRIMARY KEY (owner_id, id)
	)`,
	`CREATE TABLE IF NOT EXISTS impact_analyses (
		owner_id   TEXT NOT NULL,
		id         TEXT NOT NULL,
		doc        TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL,
		PRIMARY KEY (owner_id, id)
	)`,
	`CREATE TABLE IF NOT EXISTS rto_rpo_analyses (
		owner_id            TEXT NOT NULL,
		id                  TEXT NOT NULL,
		business_process_id TEXT NOT NULL,
		type                TEXT NOT NULL,
		metric              TEXT NOT NULL,
		doc                 TEXT NOT NULL,
		created_at          TIMESTAMP NOT NULL,
		updated_at          TIMESTAMP NOT NULL,
		PRIMARY KEY (owner_id, id),
		UNIQUE (owner_id, business_process_id, type, metric)
	)`,
	`CREATE TABLE IF NOT EXISTS recovery_workflows (
		owner_id            TEXT NOT NULL,
		id                  TEXT NOT NULL,
		business_process_id TEXT NOT NULL,
		doc                 TEXT NOT NULL,
		created_at          TIMESTAMP NOT NULL,
		updated_at          TIMESTAMP NOT NULL,
		PRIMARY KEY (owner_id, id),
		UNIQUE (owner_id, business_process_id)
	)`,
	`CREATE TABLE IF NOT EXISTS maturity_scorecards (
		owner_id   TEXT NOT NULL PRIMARY KEY,
		doc        TEXT NOT NULL,
		created_at TIMESTAMP NOT NULL,
		updated_at TIMESTAMP NOT NULL
	)`,
}

// New opens the database and creates the tables if they do not exist
func New(ctx context.Context, driver, dsn string) (*SQL, error) {
	switch driver {
	case DriverSQLite, DriverPostgres:
	default:
		return nil, goerr.Wrap(ErrUnsupportedDriver, "cannot open database", goerr.V("driver", driver))
	}

	db, err := sqlx.ConnectContext(ctx, driver, dsn)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to connect database", goerr.V("driver", driver))
	}
	if driver == DriverSQLite {
		// a single connection keeps ":memory:" databases shared and serializes writers
		db.SetMaxOpenConns(1)
	}

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, goerr.Wrap(err, "failed to initialize schema", goerr.V("driver", driver))
		}
	}

	return NewWithDB(db), nil
}

// NewWithDB wraps an already opened database whose schema is initialized
func NewWithDB(db *sqlx.DB) *SQL {
	return &SQL{
		db:               db,
		businessProcess:  &businessProcessRepository{db: db},
		impactAnalysis:   &impactAnalysisRepository{db: db},
		rtoRPO:           &rtoRPORepository{db: db},
		recoveryWorkflow: &recoveryWorkflowRepository{db: db},
		maturity:         &maturityRepository{db: db},
	}
}

func (s *SQL) BusinessProcess() interfaces.BusinessProcessRepository {
	return s.businessProcess
}

func (s *SQL) ImpactAnalysis() interfaces.ImpactAnalysisRepository {
	return s.impactAnalysis
}

func (s *SQL) RTORPO() interfaces.RTORPORepository {
	return s.rtoRPO
}

func (s *SQL) RecoveryWorkflow() interfaces.RecoveryWorkflowRepository {
	return s.recoveryWorkflow
}

func (s *SQL) Maturity() interfaces.MaturityRepository {
	return s.maturity
}

func (s *SQL) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

type documentRow struct {
	Doc types.JSONText `db:"doc"`
}

// encodeDoc returns the JSON text of v. It is bound as a string so that
// drivers store it as TEXT rather than bytea.
func encodeDoc(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", goerr.Wrap(err, "failed to encode document")
	}
	return string(raw), nil
}

// getDoc runs a single-row query and decodes the doc column into T. It returns
// nil, nil when no row matches.
func getDoc[T any](ctx context.Context, q sqlx.QueryerContext, query string, args ...any) (*T, error) {
	var row documentRow
	if err := sqlx.GetContext(ctx, q, &row, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to query document")
	}

	var v T
	if err := row.Doc.Unmarshal(&v); err != nil {
		return nil, goerr.Wrap(err, "failed to decode document")
	}
	return &v, nil
}

func listDocs[T any](ctx context.Context, q sqlx.QueryerContext, query string, args ...any) ([]*T, error) {
	var rows []documentRow
	if err := sqlx.SelectContext(ctx, q, &rows, query, args...); err != nil {
		return nil, goerr.Wrap(err, "failed to query documents")
	}

	out := make([]*T, 0, len(rows))
	for _, row := range rows {
		var v T
		if err := row.Doc.Unmarshal(&v); err != nil {
			return nil, goerr.Wrap(err, "failed to decode document")
		}
		out = append(out, &v)
	}
	return out, nil
}

func validateOwner(owner model.OwnerID) error {
	if err := owner.Validate(); err != nil {
		return goerr.Wrap(err, "owner is required")
	}
	return nil
}

// execAffected runs a statement and returns the number of affected rows
func execAffected(ctx context.Context, db *sqlx.DB, query string, args ...any) (int64, error) {
	res, err := db.ExecContext(ctx, db.Rebind(query), args...)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to execute statement")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, goerr.Wrap(err, "failed to get affected rows")
	}
	return n, nil
}
