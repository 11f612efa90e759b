package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bcplanner/pkg/domain/model"
)

type impactAnalysisRepository struct {
	mu       sync.RWMutex
	analyses map[model.OwnerID]map[model.ImpactAnalysisID]*model.ImpactAnalysis
}

func newImpactAnalysisRepository() *impactAnalysisRepository {
	return &impactAnalysisRepository{
		analyses: make(map[model.OwnerID]map[model.ImpactAnalysisID]*model.ImpactAnalysis),
	}
}

func (r *impactAnalysisRepository) Create(ctx context.Context, owner model.OwnerID, ia *model.ImpactAnalysis) (*model.ImpactAnalysis, error) {
	if err := validateOwner(owner); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := ia.Clone()
	if created.ID == "" {
		created.ID = model.NewImpactAnalysisID()
	}
	created.OwnerID = owner
	created.CreatedAt = now
	created.UpdatedAt = now

	if _, exists := r.analyses[owner]; !exists {
		r.analyses[owner] = make(map[model.ImpactAnalysisID]*model.ImpactAnalysis)
	}
	r.analyses[owner][created.ID] = created
	return created.Clone(), nil
}

func (r *impactAnalysisRepository) Get(ctx context.Context, owner model.OwnerID, id model.ImpactAnalysisID) (*model.ImpactAnalysis, error) {
	if err := validateOwner(owner); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	ia, exists := r.analyses[owner][id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "impact analysis not found", goerr.V("id", id))
	}
	return ia.Clone(), nil
}

func (r *impactAnalysisRepository) List(ctx context.Context, owner model.OwnerID) ([]*model.ImpactAnalysis, error) {
	if err := validateOwner(owner); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	analyses := make([]*model.ImpactAnalysis, 0, len(r.analyses[owner]))
	for _, ia := range r.analyses[owner] {
		analyses = append(analyses, ia.Clone())
	}
	sort.Slice(analyses, func(i, j int) bool {
		return lessByCreation(analyses[i].CreatedAt, analyses[j].CreatedAt, string(analyses[i].ID), string(analyses[j].ID))
	})
	return analyses, nil
}

func (r *impactAnalysisRepository) Update(ctx context.Context, owner model.OwnerID, ia *model.ImpactAnalysis) (*model.ImpactAnalysis, error) {
	if err := validateOwner(owner); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.analyses[owner][ia.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "impact analysis not found", goerr.V("id", ia.ID))
	}

	updated := ia.Clone()
	updated.OwnerID = owner
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.analyses[owner][updated.ID] = updated
	return updated.Clone(), nil
}

func (r *impactAnalysisRepository) Delete(ctx context.Context, owner model.OwnerID, id model.ImpactAnalysisID) error {
	if err := validateOwner(owner); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.analyses[owner][id]; !exists {
		return goerr.Wrap(ErrNotFound, "impact analysis not found", goerr.V("id", id))
	}
	delete(r.analyses[owner], id)
	return nil
}
