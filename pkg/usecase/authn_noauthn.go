package usecase

import (
	"context"
	"net/http"

	"github.com/secmon-lab/bcplanner/pkg/domain/model"
)

// NoAuthnResolver resolves every request to a fixed owner (for development/testing)
type NoAuthnResolver struct {
	owner model.OwnerID
}

var _ OwnerResolver = &NoAuthnResolver{}

func NewNoAuthnResolver(owner model.OwnerID) *NoAuthnResolver {
	return &NoAuthnResolver{owner: owner}
}

// ResolveOwner always returns the configured owner
func (x *NoAuthnResolver) ResolveOwner(ctx context.Context, r *http.Request) (model.OwnerID, error) {
	if err := requireOwner(x.owner); err != nil {
		return "", err
	}
	return x.owner, nil
}
