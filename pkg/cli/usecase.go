package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bcplanner/pkg/cli/config"
	"github.com/secmon-lab/bcplanner/pkg/domain/interfaces"
	"github.com/secmon-lab/bcplanner/pkg/usecase"
	"github.com/secmon-lab/bcplanner/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

// reportConfig groups the flag sets that shape report generation
type reportConfig struct {
	scoring config.Scoring
	archive config.Archive
	slack   config.Slack
}

func (x *reportConfig) flags() []cli.Flag {
	var flags []cli.Flag
	flags = append(flags, x.scoring.Flags()...)
	flags = append(flags, x.archive.Flags()...)
	flags = append(flags, x.slack.Flags()...)
	return flags
}

// newUseCases wires scoring, archive and notification into the use cases.
// The returned closer releases the archive client.
func (x *reportConfig) newUseCases(ctx context.Context, repo interfaces.Repository, opts ...usecase.Option) (*usecase.UseCases, func(), error) {
	scoringCfg, err := x.scoring.Configure()
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to load scoring configuration")
	}
	opts = append(opts, usecase.WithScoringConfig(scoringCfg))

	closer := func() {}

	gcs, err := x.archive.Configure(ctx)
	if err != nil {
		return nil, nil, err
	}
	if gcs != nil {
		opts = append(opts, usecase.WithArchiver(gcs))
		closer = func() { safe.Close(ctx, "archive client", gcs) }
	}

	notifier, err := x.slack.Configure()
	if err != nil {
		closer()
		return nil, nil, err
	}
	if notifier != nil {
		opts = append(opts, usecase.WithNotifier(notifier))
	}

	return usecase.New(repo, opts...), closer, nil
}
