package interfaces

import (
	"context"

	"github.com/secmon-lab/bcplanner/pkg/domain/model"
)

type RTORPORepository interface {
	// Upsert writes the analysis keyed by (businessProcessId, type, metric). An
	// existing record with the same key is overwritten and keeps its ID.
	Upsert(ctx context.Context, owner model.OwnerID, a *model.RTORPOAnalysis) (*model.RTORPOAnalysis, error)

	// Find retrieves the analysis by its natural key
	Find(ctx context.Context, owner model.OwnerID, key model.RTORPOKey) (*model.RTORPOAnalysis, error)

	Get(ctx context.Context, owner model.OwnerID, id model.RTORPOAnalysisID) (*model.RTORPOAnalysis, error)
	List(ctx context.Context, owner model.OwnerID) ([]*model.RTORPOAnalysis, error)
	Delete(ctx context.Context, owner model.OwnerID, id model.RTORPOAnalysisID) error

	// Move rewrites the analysis identified by id onto a's key in one atomic
	// step, keeping its ID and CreatedAt. A different record already holding
	// the target key is replaced.
	Move(ctx context.Context, owner model.OwnerID, id model.RTORPOAnalysisID, a *model.RTORPOAnalysis) (*model.RTORPOAnalysis, error)
}
