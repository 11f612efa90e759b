package async

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bcplanner/pkg/utils/errutil"
	"github.com/secmon-lab/bcplanner/pkg/utils/logging"
)

// Dispatch runs handler in a new goroutine, detached from the request
// context. The logger of ctx is carried over. Errors and panics are reported
// through errutil.Handle under the given name.
func Dispatch(ctx context.Context, name string, handler func(ctx context.Context) error) {
	bgCtx := logging.With(context.Background(), logging.From(ctx))

	go func() {
		defer func() {
			if r := recover(); r != nil {
				_ = errutil.Handle(bgCtx, goerr.New("panic in async handler", goerr.V("task", name), goerr.V("panic", r)), "async task panicked")
			}
		}()

		if err := handler(bgCtx); err != nil {
			_ = errutil.Handle(bgCtx, err, name+" failed")
		}
	}()
}
