package sql

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bcplanner/pkg/domain/model"
)

type rtoRPORepository struct {
	db *sqlx.DB
}

func (r *rtoRPORepository) Upsert(ctx context.Context, owner model.OwnerID, a *model.RTORPOAnalysis) (*model.RTORPOAnalysis, error) {
	if err := validateOwner(owner); err != nil {
		return nil, err
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to begin transaction")
	}
	defer func() { _ = tx.Rollback() }()

	key := a.Key()
	existing, err := getDoc[model.RTORPOAnalysis](ctx, tx,
		tx.Rebind(`SELECT doc FROM rto_rpo_analyses WHERE owner_id = ? AND business_process_id = ? AND type = ? AND metric = ?`),
		string(owner), string(key.BusinessProcessID), string(key.Type), string(key.Metric))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get rto/rpo analysis")
	}

	now := time.Now().UTC()
	stored := a.Clone()
	stored.OwnerID = owner
	stored.UpdatedAt = now
	if existing != nil {
		stored.ID = existing.ID
		stored.CreatedAt = existing.CreatedAt
	} else {
		if stored.ID == "" {
			stored.ID = model.NewRTORPOAnalysisID()
		}
		stored.CreatedAt = now
	}

	doc, err := encodeDoc(stored)
	if err != nil {
		return nil, err
	}

	query := `INSERT INTO rto_rpo_analyses
		(owner_id, id, business_process_id, type, metric, doc, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (owner_id, business_process_id, type, metric)
		DO UPDATE SET id = excluded.id, doc = excluded.doc, updated_at = excluded.updated_at`
	if _, err := tx.ExecContext(ctx, tx.Rebind(query),
		string(owner), string(stored.ID), string(key.BusinessProcessID), string(key.Type), string(key.Metric),
		doc, stored.CreatedAt, stored.UpdatedAt); err != nil {
		return nil, goerr.Wrap(err, "failed to upsert rto/rpo analysis",
			goerr.V("businessProcessID", key.BusinessProcessID), goerr.V("type", key.Type), goerr.V("metric", key.Metric))
	}

	if err := tx.Commit(); err != nil {
		return nil, goerr.Wrap(err, "failed to commit rto/rpo analysis")
	}
	return stored, nil
}

func (r *rtoRPORepository) Find(ctx context.Context, owner model.OwnerID, key model.RTORPOKey) (*model.RTORPOAnalysis, error) {
	if err := validateOwner(owner); err != nil {
		return nil, err
	}

	query := r.db.Rebind(`SELECT doc FROM rto_rpo_analyses WHERE owner_id = ? AND business_process_id = ? AND type = ? AND metric = ?`)
	a, err := getDoc[model.RTORPOAnalysis](ctx, r.db, query,
		string(owner), string(key.BusinessProcessID), string(key.Type), string(key.Metric))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get rto/rpo analysis")
	}
	if a == nil {
		return nil, goerr.Wrap(ErrNotFound, "rto/rpo analysis not found",
			goerr.V("businessProcessID", key.BusinessProcessID), goerr.V("type", key.Type), goerr.V("metric", key.Metric))
	}
	return a, nil
}

func (r *rtoRPORepository) Get(ctx context.Context, owner model.OwnerID, id model.RTORPOAnalysisID) (*model.RTORPOAnalysis, error) {
	if err := validateOwner(owner); err != nil {
		return nil, err
	}

	query := r.db.Rebind(`SELECT doc FROM rto_rpo_analyses WHERE owner_id = ? AND id = ?`)
	a, err := getDoc[model.RTORPOAnalysis](ctx, r.db, query, string(owner), string(id))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get rto/rpo analysis", goerr.V("id", id))
	}
	if a == nil {
		return nil, goerr.Wrap(ErrNotFound, "rto/rpo analysis not found", goerr.V("id", id))
	}
	return a, nil
}

func (r *rtoRPORepository) List(ctx context.Context, owner model.OwnerID) ([]*model.RTORPOAnalysis, error) {
	if err := validateOwner(owner); err != nil {
		return nil, err
	}

	query := r.db.Rebind(`SELECT doc FROM rto_rpo_analyses WHERE owner_id = ? ORDER BY business_process_id, type, metric`)
	analyses, err := listDocs[model.RTORPOAnalysis](ctx, r.db, query, string(owner))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list rto/rpo analyses")
	}
	return analyses, nil
}

func (r *rtoRPORepository) Delete(ctx context.Context, owner model.OwnerID, id model.RTORPOAnalysisID) error {
	if err := validateOwner(owner); err != nil {
		return err
	}

	n, err := execAffected(ctx, r.db, `DELETE FROM rto_rpo_analyses WHERE owner_id = ? AND id = ?`, string(owner), string(id))
	if err != nil {
		return goerr.Wrap(err, "failed to delete rto/rpo analysis", goerr.V("id", id))
	}
	if n == 0 {
		return goerr.Wrap(ErrNotFound, "rto/rpo analysis not found", goerr.V("id", id))
	}
	return nil
}

func (r *rtoRPORepository) Move(ctx context.Context, owner model.OwnerID, id model.RTORPOAnalysisID, a *model.RTORPOAnalysis) (*model.RTORPOAnalysis, error) {
	if err := validateOwner(owner); err != nil {
		return nil, err
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to begin transaction")
	}
	defer func() { _ = tx.Rollback() }()

	cur, err := getDoc[model.RTORPOAnalysis](ctx, tx,
		tx.Rebind(`SELECT doc FROM rto_rpo_analyses WHERE owner_id = ? AND id = ?`), string(owner), string(id))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get rto/rpo analysis", goerr.V("id", id))
	}
	if cur == nil {
		return nil, goerr.Wrap(ErrNotFound, "rto/rpo analysis not found", goerr.V("id", id))
	}

	stored := a.Clone()
	stored.ID = cur.ID
	stored.OwnerID = owner
	stored.CreatedAt = cur.CreatedAt
	stored.UpdatedAt = time.Now().UTC()
	key := stored.Key()

	doc, err := encodeDoc(stored)
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, tx.Rebind(`DELETE FROM rto_rpo_analyses
		WHERE owner_id = ? AND business_process_id = ? AND type = ? AND metric = ? AND id <> ?`),
		string(owner), string(key.BusinessProcessID), string(key.Type), string(key.Metric), string(id)); err != nil {
		return nil, goerr.Wrap(err, "failed to clear target key of rto/rpo analysis", goerr.V("id", id))
	}

	if _, err := tx.ExecContext(ctx, tx.Rebind(`UPDATE rto_rpo_analyses
		SET business_process_id = ?, type = ?, metric = ?, doc = ?, updated_at = ?
		WHERE owner_id = ? AND id = ?`),
		string(key.BusinessProcessID), string(key.Type), string(key.Metric), doc, stored.UpdatedAt,
		string(owner), string(id)); err != nil {
		return nil, goerr.Wrap(err, "failed to move rto/rpo analysis", goerr.V("id", id))
	}

	if err := tx.Commit(); err != nil {
		return nil, goerr.Wrap(err, "failed to commit rto/rpo analysis")
	}
	return stored, nil
}
