package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bcplanner/pkg/domain/model"
)

type maturityRepository struct {
	mu         sync.RWMutex
	scorecards map[model.OwnerID]*model.MaturityScorecard
}

func newMaturityRepository() *maturityRepository {
	return &maturityRepository{
		scorecards: make(map[model.OwnerID]*model.MaturityScorecard),
	}
}

func (r *maturityRepository) Put(ctx context.Context, owner model.OwnerID, sc *model.MaturityScorecard) (*model.MaturityScorecard, error) {
	if err := validateOwner(owner); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	stored := sc.Clone()
	stored.OwnerID = owner
	stored.UpdatedAt = now
	if existing, exists := r.scorecards[owner]; exists {
		stored.CreatedAt = existing.CreatedAt
	} else {
		stored.CreatedAt = now
	}

	r.scorecards[owner] = stored
	return stored.Clone(), nil
}

func (r *maturityRepository) Get(ctx context.Context, owner model.OwnerID) (*model.MaturityScorecard, error) {
	if err := validateOwner(owner); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	sc, exists := r.scorecards[owner]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "maturity scorecard not found", goerr.V("owner", owner))
	}
	return sc.Clone(), nil
}

func (r *maturityRepository) Delete(ctx context.Context, owner model.OwnerID) error {
	if err := validateOwner(owner); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.scorecards[owner]; !exists {
		return goerr.Wrap(ErrNotFound, "maturity scorecard not found", goerr.V("owner", owner))
	}
	delete(r.scorecards, owner)
	return nil
}
