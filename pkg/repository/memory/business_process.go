package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bcplanner/pkg/domain/model"
)

type businessProcessRepository struct {
	mu        sync.RWMutex
	processes map[model.OwnerID]map[model.BusinessProcessID]*model.BusinessProcess
}

func newBusinessProcessRepository() *businessProcessRepository {
	return &businessProcessRepository{
		processes: make(map[model.OwnerID]map[model.BusinessProcessID]*model.BusinessProcess),
	}
}

func (r *businessProcessRepository) Create(ctx context.Context, owner model.OwnerID, bp *model.BusinessProcess) (*model.BusinessProcess, error) {
	if err := validateOwner(owner); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := bp.Clone()
	if created.ID == "" {
		created.ID = model.NewBusinessProcessID()
	}
	created.OwnerID = owner
	created.CreatedAt = now
	created.UpdatedAt = now

	if _, exists := r.processes[owner]; !exists {
		r.processes[owner] = make(map[model.BusinessProcessID]*model.BusinessProcess)
	}
	r.processes[owner][created.ID] = created
	return created.Clone(), nil
}

func (r *businessProcessRepository) Get(ctx context.Context, owner model.OwnerID, id model.BusinessProcessID) (*model.BusinessProcess, error) {
	if err := validateOwner(owner); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	bp, exists := r.processes[owner][id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "business process not found", goerr.V("id", id))
	}
	return bp.Clone(), nil
}

func (r *businessProcessRepository) List(ctx context.Context, owner model.OwnerID) ([]*model.BusinessProcess, error) {
	if err := validateOwner(owner); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	processes := make([]*model.BusinessProcess, 0, len(r.processes[owner]))
	for _, bp := range r.processes[owner] {
		processes = append(processes, bp.Clone())
	}
	sort.Slice(processes, func(i, j int) bool {
		return lessByCreation(processes[i].CreatedAt, processes[j].CreatedAt, string(processes[i].ID), string(processes[j].ID))
	})
	return processes, nil
}

func (r *businessProcessRepository) Update(ctx context.Context, owner model.OwnerID, bp *model.BusinessProcess) (*model.BusinessProcess, error) {
	if err := validateOwner(owner); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.processes[owner][bp.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "business process not found", goerr.V("id", bp.ID))
	}

	updated := bp.Clone()
	updated.OwnerID = owner
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.processes[owner][updated.ID] = updated
	return updated.Clone(), nil
}

func (r *businessProcessRepository) Delete(ctx context.Context, owner model.OwnerID, id model.BusinessProcessID) error {
	if err := validateOwner(owner); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.processes[owner][id]; !exists {
		return goerr.Wrap(ErrNotFound, "business process not found", goerr.V("id", id))
	}
	delete(r.processes[owner], id)
	return nil
}

func lessByCreation(a, b time.Time, aID, bID string) bool {
	if a.Equal(b) {
		return aID < bID
	}
	return a.Before(b)
}
