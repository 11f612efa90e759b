package sql

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bcplanner/pkg/domain/model"
)

type businessProcessRepository struct {
	db *sqlx.DB
}

func (r *businessProcessRepository) Create(ctx context.Context, owner model.OwnerID, bp *model.BusinessProcess) (*model.BusinessProcess, error) {
	if err := validateOwner(owner); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created := bp.Clone()
	if created.ID == "" {
		created.ID = model.NewBusinessProcessID()
	}
	created.OwnerID = owner
	created.Dependencies = created.Dependencies.Normalize()
	created.CreatedAt = now
	created.UpdatedAt = now

	doc, err := encodeDoc(created)
	if err != nil {
		return nil, err
	}

	query := `INSERT INTO business_processes (owner_id, id, doc, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), string(owner), string(created.ID), doc, now, now); err != nil {
		return nil, goerr.Wrap(err, "failed to create business process", goerr.V("id", created.ID))
	}
	return created, nil
}

func (r *businessProcessRepository) Get(ctx context.Context, owner model.OwnerID, id model.BusinessProcessID) (*model.BusinessProcess, error) {
	if err := validateOwner(owner); err != nil {
		return nil, err
	}

	query := r.db.Rebind(`SELECT doc FROM business_processes WHERE owner_id = ? AND id = ?`)
	bp, err := getDoc[model.BusinessProcess](ctx, r.db, query, string(owner), string(id))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get business process", goerr.V("id", id))
	}
	if bp == nil {
		return nil, goerr.Wrap(ErrNotFound, "business process not found", goerr.V("id", id))
	}
	bp.Dependencies = bp.Dependencies.Normalize()
	return bp, nil
}

func (r *businessProcessRepository) List(ctx context.Context, owner model.OwnerID) ([]*model.BusinessProcess, error) {
	if err := validateOwner(owner); err != nil {
		return nil, err
	}

	query := r.db.Rebind(`SELECT doc FROM business_processes WHERE owner_id = ? ORDER BY created_at, id`)
	processes, err := listDocs[model.BusinessProcess](ctx, r.db, query, string(owner))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list business processes")
	}
	for _, bp := range processes {
		bp.Dependencies = bp.Dependencies.Normalize()
	}
	return processes, nil
}

func (r *businessProcessRepository) Update(ctx context.Context, owner model.OwnerID, bp *model.BusinessProcess) (*model.BusinessProcess, error) {
	existing, err := r.Get(ctx, owner, bp.ID)
	if err != nil {
		return nil, err
	}

	updated := bp.Clone()
	updated.OwnerID = owner
	updated.Dependencies = updated.Dependencies.Normalize()
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	doc, err := encodeDoc(updated)
	if err != nil {
		return nil, err
	}

	n, err := execAffected(ctx, r.db,
		`UPDATE business_processes SET doc = ?, updated_at = ? WHERE owner_id = ? AND id = ?`,
		doc, updated.UpdatedAt, string(owner), string(updated.ID))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update business process", goerr.V("id", bp.ID))
	}
	if n == 0 {
		return nil, goerr.Wrap(ErrNotFound, "business process not found", goerr.V("id", bp.ID))
	}
	return updated, nil
}

func (r *businessProcessRepository) Delete(ctx context.Context, owner model.OwnerID, id model.BusinessProcessID) error {
	if err := validateOwner(owner); err != nil {
		return err
	}

	n, err := execAffected(ctx, r.db, `DELETE FROM business_processes WHERE owner_id = ? AND id = ?`, string(owner), string(id))
	if err != nil {
		return goerr.Wrap(err, "failed to delete business process", goerr.V("id", id))
	}
	if n == 0 {
		return goerr.Wrap(ErrNotFound, "business process not found", goerr.V("id", id))
	}
	return nil
}
