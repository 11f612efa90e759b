package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bcplanner/pkg/domain/model"
)

type recoveryWorkflowRepository struct {
	mu sync.RWMutex
	// workflows are keyed by business process; a process has at most one workflow
	workflows map[model.OwnerID]map[model.BusinessProcessID]*model.RecoveryWorkflow
}

func newRecoveryWorkflowRepository() *recoveryWorkflowRepository {
	return &recoveryWorkflowRepository{
		workflows: make(map[model.OwnerID]map[model.BusinessProcessID]*model.RecoveryWorkflow),
	}
}

func (r *recoveryWorkflowRepository) Put(ctx context.Context, owner model.OwnerID, wf *model.RecoveryWorkflow) (*model.RecoveryWorkflow, error) {
	if err := validateOwner(owner); err != nil {
		return nil, err
	}
	if wf.BusinessProcessID == "" {
		return nil, goerr.New("business process ID is required for recovery workflow")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	stored := wf.Clone()
	stored.OwnerID = owner
	stored.UpdatedAt = now

	if existing, exists := r.workflows[owner][wf.BusinessProcessID]; exists {
		stored.ID = existing.ID
		stored.CreatedAt = existing.CreatedAt
	} else {
		if stored.ID == "" {
			stored.ID = model.NewRecoveryWorkflowID()
		}
		stored.CreatedAt = now
	}

	if _, exists := r.workflows[owner]; !exists {
		r.workflows[owner] = make(map[model.BusinessProcessID]*model.RecoveryWorkflow)
	}
	r.workflows[owner][stored.BusinessProcessID] = stored
	return stored.Clone(), nil
}

func (r *recoveryWorkflowRepository) Get(ctx context.Context, owner model.OwnerID, id model.RecoveryWorkflowID) (*model.RecoveryWorkflow, error) {
	if err := validateOwner(owner); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, wf := range r.workflows[owner] {
		if wf.ID == id {
			return wf.Clone(), nil
		}
	}
	return nil, goerr.Wrap(ErrNotFound, "recovery workflow not found", goerr.V("id", id))
}

func (r *recoveryWorkflowRepository) GetByBusinessProcess(ctx context.Context, owner model.OwnerID, bpID model.BusinessProcessID) (*model.RecoveryWorkflow, error) {
	if err := validateOwner(owner); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	wf, exists := r.workflows[owner][bpID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "recovery workflow not found", goerr.V("businessProcessID", bpID))
	}
	return wf.Clone(), nil
}

func (r *recoveryWorkflowRepository) List(ctx context.Context, owner model.OwnerID) ([]*model.RecoveryWorkflow, error) {
	if err := validateOwner(owner); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	workflows := make([]*model.RecoveryWorkflow, 0, len(r.workflows[owner]))
	for _, wf := range r.workflows[owner] {
		workflows = append(workflows, wf.Clone())
	}
	sort.Slice(workflows, func(i, j int) bool {
		return lessByCreation(workflows[i].CreatedAt, workflows[j].CreatedAt, string(workflows[i].ID), string(workflows[j].ID))
	})
	return workflows, nil
}

func (r *recoveryWorkflowRepository) Delete(ctx context.Context, owner model.OwnerID, id model.RecoveryWorkflowID) error {
	if err := validateOwner(owner); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for bpID, wf := range r.workflows[owner] {
		if wf.ID == id {
			delete(r.workflows[owner], bpID)
			return nil
		}
	}
	return goerr.Wrap(ErrNotFound, "recovery workflow not found", goerr.V("id", id))
}
