package interfaces

import (
	"context"

	"github.com/secmon-lab/bcplanner/pkg/domain/model"
)

type RecoveryWorkflowRepository interface {
	// Put stores the workflow keyed by its business process, replacing any
	// existing workflow of that process.
	Put(ctx context.Context, owner model.OwnerID, wf *model.RecoveryWorkflow) (*model.RecoveryWorkflow, error)

	Get(ctx context.Context, owner model.OwnerID, id model.RecoveryWorkflowID) (*model.RecoveryWorkflow, error)
	GetByBusinessProcess(ctx context.Context, owner model.OwnerID, bpID model.BusinessProcessID) (*model.RecoveryWorkflow, error)
	List(ctx context.Context, owner model.OwnerID) ([]*model.RecoveryWorkflow, error)
	Delete(ctx context.Context, owner model.OwnerID, id model.RecoveryWorkflowID) error
}
