package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bcplanner/pkg/domain/model"
)

type rtoRPORepository struct {
	mu       sync.RWMutex
	analyses map[model.OwnerID]map[model.RTORPOKey]*model.RTORPOAnalysis
}

func newRTORPORepository() *rtoRPORepository {
	return &rtoRPORepository{
		analyses: make(map[model.OwnerID]map[model.RTORPOKey]*model.RTORPOAnalysis),
	}
}

func (r *rtoRPORepository) Upsert(ctx context.Context, owner model.OwnerID, a *model.RTORPOAnalysis) (*model.RTORPOAnalysis, error) {
	if err := validateOwner(owner); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	stored := a.Clone()
	stored.OwnerID = owner
	stored.UpdatedAt = now

	key := stored.Key()
	if existing, exists := r.analyses[owner][key]; exists {
		stored.ID = existing.ID
		stored.CreatedAt = existing.CreatedAt
	} else {
		if stored.ID == "" {
			stored.ID = model.NewRTORPOAnalysisID()
		}
		stored.CreatedAt = now
	}

	if _, exists := r.analyses[owner]; !exists {
		r.analyses[owner] = make(map[model.RTORPOKey]*model.RTORPOAnalysis)
	}
	r.analyses[owner][key] = stored
	return stored.Clone(), nil
}

func (r *rtoRPORepository) Find(ctx context.Context, owner model.OwnerID, key model.RTORPOKey) (*model.RTORPOAnalysis, error) {
	if err := validateOwner(owner); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	a, exists := r.analyses[owner][key]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "rto/rpo analysis not found",
			goerr.V("businessProcessID", key.BusinessProcessID), goerr.V("type", key.Type), goerr.V("metric", key.Metric))
	}
	return a.Clone(), nil
}

func (r *rtoRPORepository) Get(ctx context.Context, owner model.OwnerID, id model.RTORPOAnalysisID) (*model.RTORPOAnalysis, error) {
	if err := validateOwner(owner); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if a := r.findByID(owner, id); a != nil {
		return a.Clone(), nil
	}
	return nil, goerr.Wrap(ErrNotFound, "rto/rpo analysis not found", goerr.V("id", id))
}

func (r *rtoRPORepository) List(ctx context.Context, owner model.OwnerID) ([]*model.RTORPOAnalysis, error) {
	if err := validateOwner(owner); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	analyses := make([]*model.RTORPOAnalysis, 0, len(r.analyses[owner]))
	for _, a := range r.analyses[owner] {
		analyses = append(analyses, a.Clone())
	}
	sort.Slice(analyses, func(i, j int) bool {
		return lessByKey(analyses[i].Key(), analyses[j].Key())
	})
	return analyses, nil
}

func (r *rtoRPORepository) Delete(ctx context.Context, owner model.OwnerID, id model.RTORPOAnalysisID) error {
	if err := validateOwner(owner); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	a := r.findByID(owner, id)
	if a == nil {
		return goerr.Wrap(ErrNotFound, "rto/rpo analysis not found", goerr.V("id", id))
	}
	delete(r.analyses[owner], a.Key())
	return nil
}

func (r *rtoRPORepository) Move(ctx context.Context, owner model.OwnerID, id model.RTORPOAnalysisID, a *model.RTORPOAnalysis) (*model.RTORPOAnalysis, error) {
	if err := validateOwner(owner); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	cur := r.findByID(owner, id)
	if cur == nil {
		return nil, goerr.Wrap(ErrNotFound, "rto/rpo analysis not found", goerr.V("id", id))
	}

	stored := a.Clone()
	stored.ID = cur.ID
	stored.OwnerID = owner
	stored.CreatedAt = cur.CreatedAt
	stored.UpdatedAt = time.Now().UTC()

	delete(r.analyses[owner], cur.Key())
	r.analyses[owner][stored.Key()] = stored
	return stored.Clone(), nil
}

// findByID must be called with the lock held
func (r *rtoRPORepository) findByID(owner model.OwnerID, id model.RTORPOAnalysisID) *model.RTORPOAnalysis {
	for _, a := range r.analyses[owner] {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// lessByKey orders analyses by business process, then type, then metric
func lessByKey(a, b model.RTORPOKey) bool {
	if a.BusinessProcessID != b.BusinessProcessID {
		return a.BusinessProcessID < b.BusinessProcessID
	}
	if a.Type != b.Type {
		return a.Type < b.Type
	}
	return a.Metric < b.Metric
}
