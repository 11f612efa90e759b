// Package archive keeps a copy of every generated report in Cloud Storage
package archive

import (
	"context"
	"net/url"
	"path"
	"strconv"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bcplanner/pkg/domain/interfaces"
	"github.com/secmon-lab/bcplanner/pkg/domain/model"
	"github.com/secmon-lab/bcplanner/pkg/utils/logging"
	"google.golang.org/api/option"
)

const contentType = "application/pdf"

// GCS writes reports to gs://<bucket>/<prefix>/<owner>/<timestamp>.pdf
type GCS struct {
	client *storage.Client
	bucket string
	prefix string
}

var _ interfaces.ReportArchiver = &GCS{}

// New creates a GCS archiver. Credentials come from the environment unless
// client options say otherwise.
func New(ctx context.Context, bucket, prefix string, opts ...option.ClientOption) (*GCS, error) {
	if bucket == "" {
		return nil, goerr.New("archive bucket is required")
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client", goerr.V("bucket", bucket))
	}

	return &GCS{client: client, bucket: bucket, prefix: prefix}, nil
}

// Archive uploads the PDF and returns its gs:// URL
func (g *GCS) Archive(ctx context.Context, owner model.OwnerID, bundle *model.Bundle, pdf []byte) (string, error) {
	name := ObjectName(g.prefix, owner, bundle)

	w := g.client.Bucket(g.bucket).Object(name).NewWriter(ctx)
	w.ContentType = contentType
	w.Metadata = map[string]string{
		"owner_id":      string(owner),
		"process_count": strconv.Itoa(bundle.Summary.ProcessCount),
		"partial":       strconv.FormatBool(bundle.IsPartial()),
	}

	if _, err := w.Write(pdf); err != nil {
		_ = w.Close()
		return "", goerr.Wrap(err, "failed to write report object",
			goerr.V("bucket", g.bucket), goerr.V("object", name))
	}
	if err := w.Close(); err != nil {
		return "", goerr.Wrap(err, "failed to finalize report object",
			goerr.V("bucket", g.bucket), goerr.V("object", name))
	}

	location := "gs://" + g.bucket + "/" + name
	logging.From(ctx).Info("report archived", "location", location, "size", len(pdf))
	return location, nil
}

// Close releases the storage client
func (g *GCS) Close() error {
	return g.client.Close()
}

// ObjectName builds the object path of a report. The owner ID is escaped so
// that identity provider subjects containing '/' stay one path segment.
func ObjectName(prefix string, owner model.OwnerID, bundle *model.Bundle) string {
	ts := bundle.GeneratedAt.UTC().Format("20060102T150405Z")
	return path.Join(prefix, url.PathEscape(string(owner)), ts+".pdf")
}
