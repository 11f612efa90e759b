package logging_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/bcplanner/pkg/utils/logging"
)

func TestFrom(t *testing.T) {
	t.Run("falls back to default logger", func(t *testing.T) {
		gt.Value(t, logging.From(context.Background())).Equal(logging.Default())
	})

	t.Run("returns logger stored in context", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		ctx := logging.With(context.Background(), logger)

		logging.From(ctx).Info("hello", "owner", "u-1")
		gt.String(t, buf.String()).Contains("owner=u-1")
	})
}

func TestSetDefault(t *testing.T) {
	orig := logging.Default()
	t.Cleanup(func() { logging.SetDefault(orig) })

	var buf bytes.Buffer
	logging.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	logging.Default().Warn("switched")
	gt.String(t, buf.String()).Contains("switched")

	logging.SetDefault(nil)
	gt.Value(t, logging.Default()).NotNil()
}
