// Package safe wraps I/O calls whose errors can only be logged, such as
// deferred closes and writes after the response header is committed.
package safe

import (
	"context"
	"io"

	"github.com/secmon-lab/bcplanner/pkg/utils/logging"
)

// Close closes c and logs a failure under the given resource name. Nil
// closers are ignored.
func Close(ctx context.Context, name string, c io.Closer) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		logging.From(ctx).Error("failed to close", "resource", name, "error", err.Error())
	}
}

// Write writes data to w and logs a failed or short write
func Write(ctx context.Context, w io.Writer, data []byte) {
	if w == nil {
		return
	}
	n, err := w.Write(data)
	if err != nil {
		logging.From(ctx).Error("failed to write", "written", n, "size", len(data), "error", err.Error())
	}
}
