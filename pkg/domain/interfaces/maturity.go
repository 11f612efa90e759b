package interfaces

import (
	"context"

	"github.com/secmon-lab/bcplanner/pkg/domain/model"
)

// MaturityRepository stores the single maturity scorecard of each owner
type MaturityRepository interface {
	Put(ctx context.Context, owner model.OwnerID, sc *model.MaturityScorecard) (*model.MaturityScorecard, error)
	Get(ctx context.Context, owner model.OwnerID) (*model.MaturityScorecard, error)
	Delete(ctx context.Context, owner model.OwnerID) error
}
