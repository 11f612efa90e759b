package sql

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bcplanner/pkg/domain/model"
	"github.com/secmon-lab/bcplanner/pkg/domain/types"
)

type maturityRepository struct {
	db *sqlx.DB
}

func (r *maturityRepository) Put(ctx context.Context, owner model.OwnerID, sc *model.MaturityScorecard) (*model.MaturityScorecard, error) {
	if err := validateOwner(owner); err != nil {
		return nil, err
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to begin transaction")
	}
	defer func() { _ = tx.Rollback() }()

	existing, err := getDoc[model.MaturityScorecard](ctx, tx,
		tx.Rebind(`SELECT doc FROM maturity_scorecards WHERE owner_id = ?`), string(owner))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get maturity scorecard")
	}

	now := time.Now().UTC()
	stored := sc.Clone()
	stored.OwnerID = owner
	stored.UpdatedAt = now
	stored.CreatedAt = now
	if existing != nil {
		stored.CreatedAt = existing.CreatedAt
	}

	doc, err := encodeDoc(stored)
	if err != nil {
		return nil, err
	}

	query := `INSERT INTO maturity_scorecards (owner_id, doc, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (owner_id)
		DO UPDATE SET doc = excluded.doc, updated_at = excluded.updated_at`
	if _, err := tx.ExecContext(ctx, tx.Rebind(query), string(owner), doc, stored.CreatedAt, stored.UpdatedAt); err != nil {
		return nil, goerr.Wrap(err, "failed to put maturity scorecard")
	}

	if err := tx.Commit(); err != nil {
		return nil, goerr.Wrap(err, "failed to commit maturity scorecard")
	}
	return stored, nil
}

func (r *maturityRepository) Get(ctx context.Context, owner model.OwnerID) (*model.MaturityScorecard, error) {
	if err := validateOwner(owner); err != nil {
		return nil, err
	}

	query := r.db.Rebind(`SELECT doc FROM maturity_scorecards WHERE owner_id = ?`)
	sc, err := getDoc[model.MaturityScorecard](ctx, r.db, query, string(owner))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get maturity scorecard", goerr.V("owner", owner))
	}
	if sc == nil {
		return nil, goerr.Wrap(ErrNotFound, "maturity scorecard not found", goerr.V("owner", owner))
	}
	if sc.Scores == nil {
		sc.Scores = map[types.MaturityDimension]string{}
	}
	return sc, nil
}

func (r *maturityRepository) Delete(ctx context.Context, owner model.OwnerID) error {
	if err := validateOwner(owner); err != nil {
		return err
	}

	n, err := execAffected(ctx, r.db, `DELETE FROM maturity_scorecards WHERE owner_id = ?`, string(owner))
	if err != nil {
		return goerr.Wrap(err, "failed to delete maturity scorecard", goerr.V("owner", owner))
	}
	if n == 0 {
		return goerr.Wrap(ErrNotFound, "maturity scorecard not found", goerr.V("owner", owner))
	}
	return nil
}
