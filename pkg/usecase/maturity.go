package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bcplanner/pkg/domain/interfaces"
	"github.com/secmon-lab/bcplanner/pkg/domain/model"
	"github.com/secmon-lab/bcplanner/pkg/domain/types"
	"github.com/secmon-lab/bcplanner/pkg/service/scoring"
	"github.com/secmon-lab/bcplanner/pkg/utils/logging"
)

type MaturityUseCase struct {
	repo interfaces.Repository
}

func NewMaturityUseCase(repo interfaces.Repository) *MaturityUseCase {
	return &MaturityUseCase{repo: repo}
}

// Save stores the owner's scorecard and recomputes the overall maturity
// score over the full checklist. Dimensions not in the checklist are rejected.
func (uc *MaturityUseCase) Save(ctx context.Context, owner model.OwnerID, scores map[types.MaturityDimension]string) (*model.MaturityScorecard, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}

	cleaned := make(map[types.MaturityDimension]string, len(scores))
	for dim, v := range scores {
		if !dim.IsValid() {
			return nil, goerr.Wrap(ErrValidation, "unknown maturity dimension", goerr.V("dimension", dim))
		}
		cleaned[dim] = strings.TrimSpace(v)
	}

	sc := &model.MaturityScorecard{
		Scores:               cleaned,
		OverallMaturityScore: scoring.MaturityScore(cleaned),
	}

	saved, err := uc.repo.Maturity().Put(ctx, owner, sc)
	if err != nil {
		return nil, storeError(err, "failed to save maturity scorecard", goerr.V(OwnerIDKey, owner))
	}

	logging.From(ctx).Info("maturity scorecard saved",
		"owner_id", owner,
		"overall_maturity_score", saved.OverallMaturityScore,
	)
	return saved, nil
}

func (uc *MaturityUseCase) Get(ctx context.Context, owner model.OwnerID) (*model.MaturityScorecard, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}

	sc, err := uc.repo.Maturity().Get(ctx, owner)
	if err != nil {
		return nil, storeError(err, "failed to get maturity scorecard", goerr.V(OwnerIDKey, owner))
	}
	return sc, nil
}

func (uc *MaturityUseCase) Delete(ctx context.Context, owner model.OwnerID) error {
	if err := requireOwner(owner); err != nil {
		return err
	}

	if err := uc.repo.Maturity().Delete(ctx, owner); err != nil {
		return storeError(err, "failed to delete maturity scorecard", goerr.V(OwnerIDKey, owner))
	}
	return nil
}
