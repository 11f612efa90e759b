package interfaces

import (
	"context"

	"github.com/secmon-lab/bcplanner/pkg/domain/model"
)

type BusinessProcessRepository interface {
	// Create creates a new business process with auto-generated ID
	Create(ctx context.Context, owner model.OwnerID, bp *model.BusinessProcess) (*model.BusinessProcess, error)

	// Get retrieves a business process by ID
	Get(ctx context.Context, owner model.OwnerID, id model.BusinessProcessID) (*model.BusinessProcess, error)

	// List retrieves all business processes of the owner ordered by creation time
	List(ctx context.Context, owner model.OwnerID) ([]*model.BusinessProcess, error)

	// Update updates an existing business process
	Update(ctx context.Context, owner model.OwnerID, bp *model.BusinessProcess) (*model.BusinessProcess, error)

	// Delete deletes a business process by ID
	Delete(ctx context.Context, owner model.OwnerID, id model.BusinessProcessID) error
}
