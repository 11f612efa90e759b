package usecase

import (
	"context"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bcplanner/pkg/domain/interfaces"
	"github.com/secmon-lab/bcplanner/pkg/domain/model"
	"github.com/secmon-lab/bcplanner/pkg/domain/types"
	"github.com/secmon-lab/bcplanner/pkg/utils/logging"
)

// BusinessProcessInput holds the user-editable fields of a business process
type BusinessProcessInput struct {
	Name         string             `json:"name"`
	Description  string             `json:"description"`
	Owner        string             `json:"owner"`
	Dependencies model.Dependencies `json:"dependencies"`
}

func (in BusinessProcessInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return goerr.Wrap(ErrValidation, "business process name is required")
	}
	return nil
}

type BusinessProcessUseCase struct {
	repo interfaces.Repository
}

func NewBusinessProcessUseCase(repo interfaces.Repository) *BusinessProcessUseCase {
	return &BusinessProcessUseCase{repo: repo}
}

// Create stores a new business process with normalized dependencies
func (uc *BusinessProcessUseCase) Create(ctx context.Context, owner model.OwnerID, in BusinessProcessInput) (*model.BusinessProcess, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	bp := &model.BusinessProcess{
		Name:         strings.TrimSpace(in.Name),
		Description:  in.Description,
		Owner:        strings.TrimSpace(in.Owner),
		Dependencies: in.Dependencies.Normalize(),
	}

	created, err := uc.repo.BusinessProcess().Create(ctx, owner, bp)
	if err != nil {
		return nil, storeError(err, "failed to create business process", goerr.V(OwnerIDKey, owner))
	}

	logging.From(ctx).Info("business process created",
		"owner_id", owner,
		"business_process_id", created.ID,
		"dependencies", created.Dependencies.Count(),
	)
	return created, nil
}

// Get returns a single business process of the owner
func (uc *BusinessProcessUseCase) Get(ctx context.Context, owner model.OwnerID, id model.BusinessProcessID) (*model.BusinessProcess, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}

	bp, err := uc.repo.BusinessProcess().Get(ctx, owner, id)
	if err != nil {
		return nil, storeError(err, "failed to get business process",
			goerr.V(OwnerIDKey, owner), goerr.V(BusinessProcessIDKey, id))
	}
	return bp, nil
}

// List returns every business process of the owner
func (uc *BusinessProcessUseCase) List(ctx context.Context, owner model.OwnerID) ([]*model.BusinessProcess, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}

	processes, err := uc.repo.BusinessProcess().List(ctx, owner)
	if err != nil {
		return nil, storeError(err, "failed to list business processes", goerr.V(OwnerIDKey, owner))
	}
	return processes, nil
}

// Update replaces the editable fields of an existing business process
func (uc *BusinessProcessUseCase) Update(ctx context.Context, owner model.OwnerID, id model.BusinessProcessID, in BusinessProcessInput) (*model.BusinessProcess, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	current, err := uc.Get(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	current.Name = strings.TrimSpace(in.Name)
	current.Description = in.Description
	current.Owner = strings.TrimSpace(in.Owner)
	current.Dependencies = in.Dependencies.Normalize()

	return uc.save(ctx, owner, current)
}

// Delete removes a business process. Analyses referencing it are kept and
// show up with a placeholder process name in aggregated output.
func (uc *BusinessProcessUseCase) Delete(ctx context.Context, owner model.OwnerID, id model.BusinessProcessID) error {
	if err := requireOwner(owner); err != nil {
		return err
	}

	if err := uc.repo.BusinessProcess().Delete(ctx, owner, id); err != nil {
		return storeError(err, "failed to delete business process",
			goerr.V(OwnerIDKey, owner), goerr.V(BusinessProcessIDKey, id))
	}

	logging.From(ctx).Info("business process deleted", "owner_id", owner, "business_process_id", id)
	return nil
}

// ReplaceDependency overwrites one dependency item
func (uc *BusinessProcessUseCase) ReplaceDependency(ctx context.Context, owner model.OwnerID, id model.BusinessProcessID, category types.DependencyCategory, index int, value string) (*model.BusinessProcess, error) {
	return uc.editDependencies(ctx, owner, id, func(d model.Dependencies) (model.Dependencies, error) {
		return d.ReplaceAt(category, index, value)
	})
}

// AppendDependency adds one item at the end of a category
func (uc *BusinessProcessUseCase) AppendDependency(ctx context.Context, owner model.OwnerID, id model.BusinessProcessID, category types.DependencyCategory, value string) (*model.BusinessProcess, error) {
	return uc.editDependencies(ctx, owner, id, func(d model.Dependencies) (model.Dependencies, error) {
		return d.Append(category, value)
	})
}

// RemoveDependency deletes one item from a category
func (uc *BusinessProcessUseCase) RemoveDependency(ctx context.Context, owner model.OwnerID, id model.BusinessProcessID, category types.DependencyCategory, index int) (*model.BusinessProcess, error) {
	return uc.editDependencies(ctx, owner, id, func(d model.Dependencies) (model.Dependencies, error) {
		return d.RemoveAt(category, index)
	})
}

func (uc *BusinessProcessUseCase) editDependencies(ctx context.Context, owner model.OwnerID, id model.BusinessProcessID, edit func(model.Dependencies) (model.Dependencies, error)) (*model.BusinessProcess, error) {
	current, err := uc.Get(ctx, owner, id)
	if err != nil {
		return nil, err
	}

	deps, err := edit(current.Dependencies.Normalize())
	if err != nil {
		return nil, invalid(err, "failed to edit dependencies", goerr.V(BusinessProcessIDKey, id))
	}
	current.Dependencies = deps

	return uc.save(ctx, owner, current)
}

func (uc *BusinessProcessUseCase) save(ctx context.Context, owner model.OwnerID, bp *model.BusinessProcess) (*model.BusinessProcess, error) {
	updated, err := uc.repo.BusinessProcess().Update(ctx, owner, bp)
	if err != nil {
		return nil, storeError(err, "failed to update business process",
			goerr.V(OwnerIDKey, owner), goerr.V(BusinessProcessIDKey, bp.ID))
	}
	return updated, nil
}
