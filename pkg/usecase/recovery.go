package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bcplanner/pkg/domain/interfaces"
	"github.com/secmon-lab/bcplanner/pkg/domain/model"
	"github.com/secmon-lab/bcplanner/pkg/service/recovery"
	"github.com/secmon-lab/bcplanner/pkg/utils/logging"
)

// RecoveryStepInput holds the editable fields of one recovery step. The step
// number is assigned from its position.
type RecoveryStepInput struct {
	Description         string             `json:"description"`
	ResponsibleTeam     string             `json:"responsibleTeam"`
	EstimatedCompletion model.Duration     `json:"estimatedCompletionTime"`
	Dependencies        model.Dependencies `json:"dependencies"`
	AlternateStaff      []string           `json:"alternateStaff"`
}

func (in RecoveryStepInput) toStep() (model.RecoveryStep, error) {
	if strings.TrimSpace(in.Description) == "" {
		return model.RecoveryStep{}, goerr.Wrap(ErrValidation, "step description is required")
	}
	staff := make([]string, 0, len(in.AlternateStaff))
	for _, s := range in.AlternateStaff {
		if s = strings.TrimSpace(s); s != "" {
			staff = append(staff, s)
		}
	}
	return model.RecoveryStep{
		Description:         strings.TrimSpace(in.Description),
		ResponsibleTeam:     strings.TrimSpace(in.ResponsibleTeam),
		EstimatedCompletion: in.EstimatedCompletion,
		Dependencies:        in.Dependencies.Normalize(),
		AlternateStaff:      staff,
	}, nil
}

type RecoveryUseCase struct {
	repo interfaces.Repository
}

func NewRecoveryUseCase(repo interfaces.Repository) *RecoveryUseCase {
	return &RecoveryUseCase{repo: repo}
}

// Generate builds the rule-based workflow for a business process and stores
// it, replacing any existing workflow of that process. A missing process
// returns ErrNotFound and writes nothing.
func (uc *RecoveryUseCase) Generate(ctx context.Context, owner model.OwnerID, bpID model.BusinessProcessID) (*model.RecoveryWorkflow, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}

	bp, err := uc.repo.BusinessProcess().Get(ctx, owner, bpID)
	if err != nil {
		return nil, storeError(err, "failed to get business process for recovery workflow",
			goerr.V(OwnerIDKey, owner), goerr.V(BusinessProcessIDKey, bpID))
	}

	wf, err := uc.repo.RecoveryWorkflow().Put(ctx, owner, recovery.NewWorkflow(bp))
	if err != nil {
		return nil, storeError(err, "failed to store recovery workflow",
			goerr.V(OwnerIDKey, owner), goerr.V(BusinessProcessIDKey, bpID))
	}

	logging.From(ctx).Info("recovery workflow generated",
		"owner_id", owner,
		"business_process_id", bpID,
		"steps", len(wf.Steps),
	)
	return wf, nil
}

// Save stores a hand-written workflow for a business process
func (uc *RecoveryUseCase) Save(ctx context.Context, owner model.OwnerID, bpID model.BusinessProcessID, steps []RecoveryStepInput) (*model.RecoveryWorkflow, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}

	if _, err := uc.repo.BusinessProcess().Get(ctx, owner, bpID); err != nil {
		return nil, storeError(err, "failed to get business process for recovery workflow",
			goerr.V(OwnerIDKey, owner), goerr.V(BusinessProcessIDKey, bpID))
	}

	wf := &model.RecoveryWorkflow{BusinessProcessID: bpID}
	for i, in := range steps {
		step, err := in.toStep()
		if err != nil {
			return nil, goerr.Wrap(err, "invalid recovery step", goerr.V("step", i+1))
		}
		wf = wf.WithAddedStep(step)
	}

	saved, err := uc.repo.RecoveryWorkflow().Put(ctx, owner, wf)
	if err != nil {
		return nil, storeError(err, "failed to store recovery workflow",
			goerr.V(OwnerIDKey, owner), goerr.V(BusinessProcessIDKey, bpID))
	}
	return saved, nil
}

func (uc *RecoveryUseCase) Get(ctx context.Context, owner model.OwnerID, id model.RecoveryWorkflowID) (*model.RecoveryWorkflow, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}

	wf, err := uc.repo.RecoveryWorkflow().Get(ctx, owner, id)
	if err != nil {
		return nil, storeError(err, "failed to get recovery workflow",
			goerr.V(OwnerIDKey, owner), goerr.V(RecoveryWorkflowKey, id))
	}
	return wf, nil
}

func (uc *RecoveryUseCase) GetByBusinessProcess(ctx context.Context, owner model.OwnerID, bpID model.BusinessProcessID) (*model.RecoveryWorkflow, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}

	wf, err := uc.repo.RecoveryWorkflow().GetByBusinessProcess(ctx, owner, bpID)
	if err != nil {
		return nil, storeError(err, "failed to get recovery workflow",
			goerr.V(OwnerIDKey, owner), goerr.V(BusinessProcessIDKey, bpID))
	}
	return wf, nil
}

func (uc *RecoveryUseCase) List(ctx context.Context, owner model.OwnerID) ([]*model.RecoveryWorkflow, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}

	list, err := uc.repo.RecoveryWorkflow().List(ctx, owner)
	if err != nil {
		return nil, storeError(err, "failed to list recovery workflows", goerr.V(OwnerIDKey, owner))
	}
	return list, nil
}

func (uc *RecoveryUseCase) Delete(ctx context.Context, owner model.OwnerID, id model.RecoveryWorkflowID) error {
	if err := requireOwner(owner); err != nil {
		return err
	}

	if err := uc.repo.RecoveryWorkflow().Delete(ctx, owner, id); err != nil {
		return storeError(err, "failed to delete recovery workflow",
			goerr.V(OwnerIDKey, owner), goerr.V(RecoveryWorkflowKey, id))
	}
	return nil
}

// AddStep appends a step to the workflow
func (uc *RecoveryUseCase) AddStep(ctx context.Context, owner model.OwnerID, id model.RecoveryWorkflowID, in RecoveryStepInput) (*model.RecoveryWorkflow, error) {
	step, err := in.toStep()
	if err != nil {
		return nil, err
	}
	return uc.edit(ctx, owner, id, func(wf *model.RecoveryWorkflow) (*model.RecoveryWorkflow, error) {
		return wf.WithAddedStep(step), nil
	})
}

// UpdateStep replaces the step with the given 1-based step number
func (uc *RecoveryUseCase) UpdateStep(ctx context.Context, owner model.OwnerID, id model.RecoveryWorkflowID, stepNumber int, in RecoveryStepInput) (*model.RecoveryWorkflow, error) {
	step, err := in.toStep()
	if err != nil {
		return nil, err
	}
	return uc.edit(ctx, owner, id, func(wf *model.RecoveryWorkflow) (*model.RecoveryWorkflow, error) {
		return wf.WithStep(stepNumber-1, step)
	})
}

// RemoveStep deletes the step with the given 1-based step number and
// renumbers the rest
func (uc *RecoveryUseCase) RemoveStep(ctx context.Context, owner model.OwnerID, id model.RecoveryWorkflowID, stepNumber int) (*model.RecoveryWorkflow, error) {
	return uc.edit(ctx, owner, id, func(wf *model.RecoveryWorkflow) (*model.RecoveryWorkflow, error) {
		return wf.WithoutStep(stepNumber - 1)
	})
}

func (uc *RecoveryUseCase) edit(ctx context.Context, owner model.OwnerID, id model.RecoveryWorkflowID, fn func(*model.RecoveryWorkflow) (*model.RecoveryWorkflow, error)) (*model.RecoveryWorkflow, error) {
	current, err := uc.Get(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	edited, err := fn(current)
	if err != nil {
		return nil, invalid(err, "failed to edit recovery workflow", goerr.V(RecoveryWorkflowKey, id))
	}

	saved, err := uc.repo.RecoveryWorkflow().Put(ctx, owner, edited)
	if err != nil {
		return nil, storeError(err, "failed to store recovery workflow",
			goerr.V(OwnerIDKey, owner), goerr.V(RecoveryWorkflowKey, id))
	}
	return saved, nil
}
