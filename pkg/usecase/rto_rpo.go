package usecase

import (
	"context"
	"math"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bcplanner/pkg/domain/interfaces"
	"github.com/secmon-lab/bcplanner/pkg/domain/model"
	"github.com/secmon-lab/bcplanner/pkg/domain/types"
	"github.com/secmon-lab/bcplanner/pkg/service/scoring"
	"github.com/secmon-lab/bcplanner/pkg/utils/logging"
)

// RTORPOInput is one RTO/RPO objective. All five fields are required together.
type RTORPOInput struct {
	BusinessProcessID model.BusinessProcessID `json:"businessProcessId"`
	Type              types.AnalysisType      `json:"type"`
	Metric            types.Metric            `json:"metric"`
	AcceptableTime    *float64                `json:"acceptableTime"`
	AchievableTime    *float64                `json:"achievableTime"`
}

func (in RTORPOInput) validate() error {
	if in.BusinessProcessID == "" || in.Type == "" || in.Metric == "" || in.AcceptableTime == nil || in.AchievableTime == nil {
		return goerr.Wrap(ErrValidation, "businessProcessId, type, metric, acceptableTime and achievableTime are all required")
	}
	if !in.Type.IsValid() {
		return goerr.Wrap(ErrValidation, "unknown analysis type", goerr.V("type", in.Type))
	}
	if !in.Metric.IsValid() {
		return goerr.Wrap(ErrValidation, "unknown metric", goerr.V("metric", in.Metric))
	}
	for _, v := range []float64{*in.AcceptableTime, *in.AchievableTime} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return goerr.Wrap(ErrValidation, "times must be non-negative hours", goerr.V("value", v))
		}
	}
	return nil
}

type RTORPOUseCase struct {
	repo interfaces.Repository
}

func NewRTORPOUseCase(repo interfaces.Repository) *RTORPOUseCase {
	return &RTORPOUseCase{repo: repo}
}

// Save upserts the analysis on (businessProcessId, type, metric) and stores
// the gap computed as acceptable minus achievable.
func (uc *RTORPOUseCase) Save(ctx context.Context, owner model.OwnerID, in RTORPOInput) (*model.RTORPOAnalysis, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	a := &model.RTORPOAnalysis{
		BusinessProcessID: in.BusinessProcessID,
		Type:              in.Type,
		Metric:            in.Metric,
		AcceptableTime:    *in.AcceptableTime,
		AchievableTime:    *in.AchievableTime,
		Gap:               scoring.RTORPOGap(*in.AcceptableTime, *in.AchievableTime),
	}

	saved, err := uc.repo.RTORPO().Upsert(ctx, owner, a)
	if err != nil {
		return nil, storeError(err, "failed to save RTO/RPO analysis",
			goerr.V(OwnerIDKey, owner), goerr.V(BusinessProcessIDKey, in.BusinessProcessID))
	}

	logging.From(ctx).Info("rto/rpo analysis saved",
		"owner_id", owner,
		"rto_rpo_analysis_id", saved.ID,
		"type", saved.Type,
		"metric", saved.Metric,
		"gap", saved.Gap,
	)
	return saved, nil
}

// Update rewrites an existing analysis by ID. Changing its key fields moves it
// onto the new key; a different record already holding that key is replaced.
func (uc *RTORPOUseCase) Update(ctx context.Context, owner model.OwnerID, id model.RTORPOAnalysisID, in RTORPOInput) (*model.RTORPOAnalysis, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	current, err := uc.Get(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	key := model.RTORPOKey{BusinessProcessID: in.BusinessProcessID, Type: in.Type, Metric: in.Metric}
	if current.Key() == key {
		return uc.Save(ctx, owner, in)
	}

	moved, err := uc.repo.RTORPO().Move(ctx, owner, id, &model.RTORPOAnalysis{
		BusinessProcessID: in.BusinessProcessID,
		Type:              in.Type,
		Metric:            in.Metric,
		AcceptableTime:    *in.AcceptableTime,
		AchievableTime:    *in.AchievableTime,
		Gap:               scoring.RTORPOGap(*in.AcceptableTime, *in.AchievableTime),
	})
	if err != nil {
		return nil, storeError(err, "failed to move RTO/RPO analysis",
			goerr.V(OwnerIDKey, owner), goerr.V(RTORPOAnalysisIDKey, id))
	}

	logging.From(ctx).Info("rto/rpo analysis moved",
		"owner_id", owner,
		"rto_rpo_analysis_id", moved.ID,
		"type", moved.Type,
		"metric", moved.Metric,
		"gap", moved.Gap,
	)
	return moved, nil
}

func (uc *RTORPOUseCase) Get(ctx context.Context, owner model.OwnerID, id model.RTORPOAnalysisID) (*model.RTORPOAnalysis, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}

	a, err := uc.repo.RTORPO().Get(ctx, owner, id)
	if err != nil {
		return nil, storeError(err, "failed to get RTO/RPO analysis",
			goerr.V(OwnerIDKey, owner), goerr.V(RTORPOAnalysisIDKey, id))
	}
	return a, nil
}

// Find looks an analysis up by its natural key
func (uc *RTORPOUseCase) Find(ctx context.Context, owner model.OwnerID, key model.RTORPOKey) (*model.RTORPOAnalysis, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}

	a, err := uc.repo.RTORPO().Find(ctx, owner, key)
	if err != nil {
		return nil, storeError(err, "failed to find RTO/RPO analysis",
			goerr.V(OwnerIDKey, owner), goerr.V("key", key))
	}
	return a, nil
}

func (uc *RTORPOUseCase) List(ctx context.Context, owner model.OwnerID) ([]*model.RTORPOAnalysis, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}

	list, err := uc.repo.RTORPO().List(ctx, owner)
	if err != nil {
		return nil, storeError(err, "failed to list RTO/RPO analyses", goerr.V(OwnerIDKey, owner))
	}
	return list, nil
}

func (uc *RTORPOUseCase) Delete(ctx context.Context, owner model.OwnerID, id model.RTORPOAnalysisID) error {
	if err := requireOwner(owner); err != nil {
		return err
	}

	if err := uc.repo.RTORPO().Delete(ctx, owner, id); err != nil {
		return storeError(err, "failed to delete RTO/RPO analysis",
			goerr.V(OwnerIDKey, owner), goerr.V(RTORPOAnalysisIDKey, id))
	}
	return nil
}
