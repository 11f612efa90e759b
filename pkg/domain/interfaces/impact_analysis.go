package interfaces

import (
	"context"

	"github.com/secmon-lab/bcplanner/pkg/domain/model"
)

type ImpactAnalysisRepository interface {
	Create(ctx context.Context, owner model.OwnerID, ia *model.ImpactAnalysis) (*model.ImpactAnalysis, error)
	Get(ctx context.Context, owner model.OwnerID, id model.ImpactAnalysisID) (*model.ImpactAnalysis, error)
	List(ctx context.Context, owner model.OwnerID) ([]*model.ImpactAnalysis, error)
	Update(ctx context.Context, owner model.OwnerID, ia *model.ImpactAnalysis) (*model.ImpactAnalysis, error)
	Delete(ctx context.Context, owner model.OwnerID, id model.ImpactAnalysisID) error
}
