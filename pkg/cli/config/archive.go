package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bcplanner/pkg/service/archive"
	"github.com/secmon-lab/bcplanner/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Archive configures the optional Cloud Storage copy of every generated report
type Archive struct {
	bucket string
	prefix string
}

func (x *Archive) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "archive-bucket",
			Usage:       "Cloud Storage bucket to archive generated reports to",
			Category:    "Report",
			Sources:     cli.EnvVars("BCPLANNER_ARCHIVE_BUCKET"),
			Destination: &x.bucket,
		},
		&cli.StringFlag{
			Name:        "archive-prefix",
			Usage:       "Object name prefix of archived reports",
			Category:    "Report",
			Value:       "reports",
			Sources:     cli.EnvVars("BCPLANNER_ARCHIVE_PREFIX"),
			Destination: &x.prefix,
		},
	}
}

func (x Archive) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("bucket", x.bucket),
		slog.String("prefix", x.prefix),
	)
}

// IsEnabled reports whether a bucket is configured
func (x *Archive) IsEnabled() bool {
	return x.bucket != ""
}

// Configure returns nil when archiving is disabled. The caller closes the
// returned archiver.
func (x *Archive) Configure(ctx context.Context) (*archive.GCS, error) {
	if !x.IsEnabled() {
		return nil, nil
	}

	gcs, err := archive.New(ctx, x.bucket, x.prefix)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to configure report archive", goerr.V("bucket", x.bucket))
	}
	logging.Default().Info("Report archive enabled", "bucket", x.bucket, "prefix", x.prefix)
	return gcs, nil
}
