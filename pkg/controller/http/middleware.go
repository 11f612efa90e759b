package http

import (
	"context"
	"net/http"

	"github.com/secmon-lab/bcplanner/pkg/domain/model"
	"github.com/secmon-lab/bcplanner/pkg/usecase"
	"github.com/secmon-lab/bcplanner/pkg/utils/logging"
)

type ctxOwnerKey struct{}

func contextWithOwner(ctx context.Context, owner model.OwnerID) context.Context {
	return context.WithValue(ctx, ctxOwnerKey{}, owner)
}

// ownerFromContext returns the owner resolved by ownerMiddleware. An empty
// owner is rejected by every use case with ErrNotAuthenticated.
func ownerFromContext(ctx context.Context) model.OwnerID {
	if owner, ok := ctx.Value(ctxOwnerKey{}).(model.OwnerID); ok {
		return owner
	}
	return ""
}

// ownerMiddleware resolves the request owner and attaches it, together with
// an owner-scoped logger, to the request context
func ownerMiddleware(resolver usecase.OwnerResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			owner, err := resolver.ResolveOwner(r.Context(), r)
			if err != nil {
				handleError(w, r, err)
				return
			}

			ctx := contextWithOwner(r.Context(), owner)
			ctx = logging.With(ctx, logging.From(ctx).With("owner_id", owner))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
