package sql

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bcplanner/pkg/domain/model"
)

type recoveryWorkflowRepository struct {
	db *sqlx.DB
}

func (r *recoveryWorkflowRepository) Put(ctx context.Context, owner model.OwnerID, wf *model.RecoveryWorkflow) (*model.RecoveryWorkflow, error) {
	if err := validateOwner(owner); err != nil {
		return nil, err
	}
	if wf.BusinessProcessID == "" {
		return nil, goerr.New("business process ID is required for recovery workflow")
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to begin transaction")
	}
	defer func() { _ = tx.Rollback() }()

	existing, err := getDoc[model.RecoveryWorkflow](ctx, tx,
		tx.Rebind(`SELECT doc FROM recovery_workflows WHERE owner_id = ? AND business_process_id = ?`),
		string(owner), string(wf.BusinessProcessID))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get recovery workflow", goerr.V("businessProcessID", wf.BusinessProcessID))
	}

	now := time.Now().UTC()
	stored := wf.Clone()
	stored.OwnerID = owner
	stored.UpdatedAt = now
	if existing != nil {
		stored.ID = existing.ID
		stored.CreatedAt = existing.CreatedAt
	} else {
		if stored.ID == "" {
			stored.ID = model.NewRecoveryWorkflowID()
		}
		stored.CreatedAt = now
	}

	doc, err := encodeDoc(stored)
	if err != nil {
		return nil, err
	}

	query := `INSERT INTO recovery_workflows
		(owner_id, id, business_process_id, doc, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (owner_id, business_process_id)
		DO UPDATE SET id = excluded.id, doc = excluded.doc, updated_at = excluded.updated_at`
	if _, err := tx.ExecContext(ctx, tx.Rebind(query),
		string(owner), string(stored.ID), string(stored.BusinessProcessID), doc, stored.CreatedAt, stored.UpdatedAt); err != nil {
		return nil, goerr.Wrap(err, "failed to put recovery workflow", goerr.V("businessProcessID", wf.BusinessProcessID))
	}

	if err := tx.Commit(); err != nil {
		return nil, goerr.Wrap(err, "failed to commit recovery workflow")
	}
	return stored, nil
}

func (r *recoveryWorkflowRepository) Get(ctx context.Context, owner model.OwnerID, id model.RecoveryWorkflowID) (*model.RecoveryWorkflow, error) {
	if err := validateOwner(owner); err != nil {
		return nil, err
	}

	query := r.db.Rebind(`SELECT doc FROM recovery_workflows WHERE owner_id = ? AND id = ?`)
	wf, err := getDoc[model.RecoveryWorkflow](ctx, r.db, query, string(owner), string(id))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get recovery workflow", goerr.V("id", id))
	}
	if wf == nil {
		return nil, goerr.Wrap(ErrNotFound, "recovery workflow not found", goerr.V("id", id))
	}
	return normalizeWorkflow(wf), nil
}

func (r *recoveryWorkflowRepository) GetByBusinessProcess(ctx context.Context, owner model.OwnerID, bpID model.BusinessProcessID) (*model.RecoveryWorkflow, error) {
	if err := validateOwner(owner); err != nil {
		return nil, err
	}

	query := r.db.Rebind(`SELECT doc FROM recovery_workflows WHERE owner_id = ? AND business_process_id = ?`)
	wf, err := getDoc[model.RecoveryWorkflow](ctx, r.db, query, string(owner), string(bpID))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get recovery workflow", goerr.V("businessProcessID", bpID))
	}
	if wf == nil {
		return nil, goerr.Wrap(ErrNotFound, "recovery workflow not found", goerr.V("businessProcessID", bpID))
	}
	return normalizeWorkflow(wf), nil
}

func (r *recoveryWorkflowRepository) List(ctx context.Context, owner model.OwnerID) ([]*model.RecoveryWorkflow, error) {
	if err := validateOwner(owner); err != nil {
		return nil, err
	}

	query := r.db.Rebind(`SELECT doc FROM recovery_workflows WHERE owner_id = ? ORDER BY created_at, id`)
	workflows, err := listDocs[model.RecoveryWorkflow](ctx, r.db, query, string(owner))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list recovery workflows")
	}
	for i, wf := range workflows {
		workflows[i] = normalizeWorkflow(wf)
	}
	return workflows, nil
}

func (r *recoveryWorkflowRepository) Delete(ctx context.Context, owner model.OwnerID, id model.RecoveryWorkflowID) error {
	if err := validateOwner(owner); err != nil {
		return err
	}

	n, err := execAffected(ctx, r.db, `DELETE FROM recovery_workflows WHERE owner_id = ? AND id = ?`, string(owner), string(id))
	if err != nil {
		return goerr.Wrap(err, "failed to delete recovery workflow", goerr.V("id", id))
	}
	if n == 0 {
		return goerr.Wrap(ErrNotFound, "recovery workflow not found", goerr.V("id", id))
	}
	return nil
}

// normalizeWorkflow restores non-nil slices lost in the JSON round trip
func normalizeWorkflow(wf *model.RecoveryWorkflow) *model.RecoveryWorkflow {
	if wf.Steps == nil {
		wf.Steps = []model.RecoveryStep{}
	}
	return wf.Clone()
}
