package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bcplanner/pkg/domain/interfaces"
	"github.com/secmon-lab/bcplanner/pkg/domain/model"
	"github.com/secmon-lab/bcplanner/pkg/domain/types"
	"github.com/secmon-lab/bcplanner/pkg/service/scoring"
	"github.com/secmon-lab/bcplanner/pkg/utils/logging"
)

// ImpactAnalysisInput holds the user inputs of an impact analysis. Mode is
// optional; empty selects the configured default mode.
type ImpactAnalysisInput struct {
	BusinessProcessID model.BusinessProcessID `json:"businessProcessId"`
	ProcessName       string                  `json:"processName"`
	Mode              types.ScoringMode       `json:"scoringMode"`
	model.ImpactInput
}

func (in ImpactAnalysisInput) validate() error {
	if in.Mode != "" && !in.Mode.IsValid() {
		return goerr.Wrap(ErrValidation, "unknown scoring mode", goerr.V("mode", in.Mode))
	}
	if in.Criticality != "" && !in.Criticality.IsValid() {
		return goerr.Wrap(ErrValidation, "unknown criticality", goerr.V("criticality", in.Criticality))
	}
	levels := map[string]types.ImpactLevel{
		"customerImpact":   in.CustomerImpact,
		"staffImpact":      in.StaffImpact,
		"partnerImpact":    in.PartnerImpact,
		"complianceImpact": in.ComplianceImpact,
		"safetyImpact":     in.SafetyImpact,
	}
	for field, level := range levels {
		if !level.IsValid() {
			return goerr.Wrap(ErrValidation, "unknown impact level",
				goerr.V("field", field), goerr.V("level", level))
		}
	}

	objectives := []*float64{in.ExpectedRTO, in.ActualRTO, in.ExpectedRPO, in.ActualRPO}
	set := 0
	for _, v := range objectives {
		if v != nil {
			set++
		}
	}
	if set != 0 && set != len(objectives) {
		return goerr.Wrap(ErrValidation, "expectedRTO, actualRTO, expectedRPO and actualRPO are required together")
	}
	return nil
}

// ImpactUseCase stores impact analyses with their scores computed at save time
type ImpactUseCase struct {
	repo   interfaces.Repository
	engine *scoring.Engine
}

func NewImpactUseCase(repo interfaces.Repository, engine *scoring.Engine) *ImpactUseCase {
	if engine == nil {
		engine = scoring.New(nil)
	}
	return &ImpactUseCase{repo: repo, engine: engine}
}

func (uc *ImpactUseCase) score(in ImpactAnalysisInput) model.ImpactScore {
	mode := in.Mode
	if mode == "" {
		mode = uc.engine.Mode()
	}
	return uc.engine.ScoreWithMode(mode, in.ImpactInput)
}

// Create scores and stores a new impact analysis
func (uc *ImpactUseCase) Create(ctx context.Context, owner model.OwnerID, in ImpactAnalysisInput) (*model.ImpactAnalysis, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	ia := &model.ImpactAnalysis{
		BusinessProcessID: in.BusinessProcessID,
		ProcessName:       in.ProcessName,
		ImpactInput:       in.ImpactInput,
		ImpactScore:       uc.score(in),
	}

	created, err := uc.repo.ImpactAnalysis().Create(ctx, owner, ia)
	if err != nil {
		return nil, storeError(err, "failed to create impact analysis", goerr.V(OwnerIDKey, owner))
	}

	logging.From(ctx).Info("impact analysis created",
		"owner_id", owner,
		"impact_analysis_id", created.ID,
		"mode", created.Mode,
		"overall_score", created.OverallScore,
	)
	return created, nil
}

func (uc *ImpactUseCase) Get(ctx context.Context, owner model.OwnerID, id model.ImpactAnalysisID) (*model.ImpactAnalysis, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}

	ia, err := uc.repo.ImpactAnalysis().Get(ctx, owner, id)
	if err != nil {
		return nil, storeError(err, "failed to get impact analysis",
			goerr.V(OwnerIDKey, owner), goerr.V(ImpactAnalysisIDKey, id))
	}
	return ia, nil
}

func (uc *ImpactUseCase) List(ctx context.Context, owner model.OwnerID) ([]*model.ImpactAnalysis, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}

	list, err := uc.repo.ImpactAnalysis().List(ctx, owner)
	if err != nil {
		return nil, storeError(err, "failed to list impact analyses", goerr.V(OwnerIDKey, owner))
	}
	return list, nil
}

// Update replaces the inputs of an analysis and rescores it
func (uc *ImpactUseCase) Update(ctx context.Context, owner model.OwnerID, id model.ImpactAnalysisID, in ImpactAnalysisInput) (*model.ImpactAnalysis, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	current, err := uc.Get(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	current.BusinessProcessID = in.BusinessProcessID
	current.ProcessName = in.ProcessName
	current.ImpactInput = in.ImpactInput
	current.ImpactScore = uc.score(in)

	updated, err := uc.repo.ImpactAnalysis().Update(ctx, owner, current)
	if err != nil {
		return nil, storeError(err, "failed to update impact analysis",
			goerr.V(OwnerIDKey, owner), goerr.V(ImpactAnalysisIDKey, id))
	}
	return updated, nil
}

func (uc *ImpactUseCase) Delete(ctx context.Context, owner model.OwnerID, id model.ImpactAnalysisID) error {
	if err := requireOwner(owner); err != nil {
		return err
	}

	if err := uc.repo.ImpactAnalysis().Delete(ctx, owner, id); err != nil {
		return storeError(err, "failed to delete impact analysis",
			goerr.V(OwnerIDKey, owner), goerr.V(ImpactAnalysisIDKey, id))
	}
	return nil
}
