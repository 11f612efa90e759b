package interfaces

import (
	"context"

	"github.com/secmon-lab/bcplanner/pkg/domain/model"
)

// ReportArchiver keeps a copy of every rendered report
type ReportArchiver interface {
	// Archive stores the PDF and returns a location string for it
	Archive(ctx context.Context, owner model.OwnerID, bundle *model.Bundle, pdf []byte) (string, error)
}

// ReportNotifier announces a rendered report
type ReportNotifier interface {
	NotifyReport(ctx context.Context, bundle *model.Bundle, location string) error
}
