package sql

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bcplanner/pkg/domain/model"
)

type impactAnalysisRepository struct {
	db *sqlx.DB
}

func (r *impactAnalysisRepository) Create(ctx context.Context, owner model.OwnerID, ia *model.ImpactAnalysis) (*model.ImpactAnalysis, error) {
	if err := validateOwner(owner); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created := ia.Clone()
	if created.ID == "" {
		created.ID = model.NewImpactAnalysisID()
	}
	created.OwnerID = owner
	created.CreatedAt = now
	created.UpdatedAt = now

	doc, err := encodeDoc(created)
	if err != nil {
		return nil, err
	}

	query := `INSERT INTO impact_analyses (owner_id, id, doc, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), string(owner), string(created.ID), doc, now, now); err != nil {
		return nil, goerr.Wrap(err, "failed to create impact analysis", goerr.V("id", created.ID))
	}
	return created, nil
}

func (r *impactAnalysisRepository) Get(ctx context.Context, owner model.OwnerID, id model.ImpactAnalysisID) (*model.ImpactAnalysis, error) {
	if err := validateOwner(owner); err != nil {
		return nil, err
	}

	query := r.db.Rebind(`SELECT doc FROM impact_analyses WHERE owner_id = ? AND id = ?`)
	ia, err := getDoc[model.ImpactAnalysis](ctx, r.db, query, string(owner), string(id))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get impact analysis", goerr.V("id", id))
	}
	if ia == nil {
		return nil, goerr.Wrap(ErrNotFound, "impact analysis not found", goerr.V("id", id))
	}
	return ia, nil
}

func (r *impactAnalysisRepository) List(ctx context.Context, owner model.OwnerID) ([]*model.ImpactAnalysis, error) {
	if err := validateOwner(owner); err != nil {
		return nil, err
	}

	query := r.db.Rebind(`SELECT doc FROM impact_analyses WHERE owner_id = ? ORDER BY created_at, id`)
	analyses, err := listDocs[model.ImpactAnalysis](ctx, r.db, query, string(owner))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list impact analyses")
	}
	return analyses, nil
}

func (r *impactAnalysisRepository) Update(ctx context.Context, owner model.OwnerID, ia *model.ImpactAnalysis) (*model.ImpactAnalysis, error) {
	existing, err := r.Get(ctx, owner, ia.ID)
	if err != nil {
		return nil, err
	}

	updated := ia.Clone()
	updated.OwnerID = owner
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	doc, err := encodeDoc(updated)
	if err != nil {
		return nil, err
	}

	n, err := execAffected(ctx, r.db,
		`UPDATE impact_analyses SET doc = ?, updated_at = ? WHERE owner_id = ? AND id = ?`,
		doc, updated.UpdatedAt, string(owner), string(updated.ID))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update impact analysis", goerr.V("id", ia.ID))
	}
	if n == 0 {
		return nil, goerr.Wrap(ErrNotFound, "impact analysis not found", goerr.V("id", ia.ID))
	}
	return updated, nil
}

func (r *impactAnalysisRepository) Delete(ctx context.Context, owner model.OwnerID, id model.ImpactAnalysisID) error {
	if err := validateOwner(owner); err != nil {
		return err
	}

	n, err := execAffected(ctx, r.db, `DELETE FROM impact_analyses WHERE owner_id = ? AND id = ?`, string(owner), string(id))
	if err != nil {
		return goerr.Wrap(err, "failed to delete impact analysis", goerr.V("id", id))
	}
	if n == 0 {
		return goerr.Wrap(ErrNotFound, "impact analysis not found", goerr.V("id", id))
	}
	return nil
}
