package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bcplanner/pkg/domain/interfaces"
	"github.com/secmon-lab/bcplanner/pkg/domain/model"
	"github.com/secmon-lab/bcplanner/pkg/service/report"
	"github.com/secmon-lab/bcplanner/pkg/utils/async"
	"github.com/secmon-lab/bcplanner/pkg/utils/errutil"
	"github.com/secmon-lab/bcplanner/pkg/utils/logging"
	"github.com/secmon-lab/bcplanner/pkg/utils/metrics"
)

// Report is a rendered business continuity plan
type Report struct {
	Filename    string
	ContentType string
	Data        []byte
	Bundle      *model.Bundle
	// Location is where the archived copy was stored, empty when not archived
	Location string
}

// ReportUseCase renders the business continuity plan of an owner
type ReportUseCase struct {
	aggregate *AggregateUseCase
	archiver  interfaces.ReportArchiver
	notifier  interfaces.ReportNotifier
	// asyncNotify sends notifications without holding up the caller
	asyncNotify bool
}

func NewReportUseCase(aggregate *AggregateUseCase, archiver interfaces.ReportArchiver, notifier interfaces.ReportNotifier) *ReportUseCase {
	return &ReportUseCase{
		aggregate: aggregate,
		archiver:  archiver,
		notifier:  notifier,
	}
}

// Generate aggregates the owner's records and renders them as PDF. Archive
// and notification run afterwards and only log their failures.
func (uc *ReportUseCase) Generate(ctx context.Context, owner model.OwnerID) (*Report, error) {
	bundle, err := uc.aggregate.Aggregate(ctx, owner)
	if err != nil {
		return nil, err
	}

	data, err := report.Render(bundle)
	if err != nil {
		return nil, goerr.Wrap(classify(ErrUpstream, err), "failed to render report", goerr.V(OwnerIDKey, owner))
	}
	metrics.RecordReport(bundle.IsPartial(), len(data))

	r := &Report{
		Filename:    report.Filename,
		ContentType: "application/pdf",
		Data:        data,
		Bundle:      bundle,
	}

	if uc.archiver != nil {
		location, err := uc.archiver.Archive(ctx, owner, bundle, data)
		if err != nil {
			_ = errutil.Handle(ctx, err, "failed to archive report")
		} else {
			r.Location = location
		}
	}

	if uc.notifier != nil {
		location := r.Location
		notify := func(ctx context.Context) error {
			return uc.notifier.NotifyReport(ctx, bundle, location)
		}
		if uc.asyncNotify {
			async.Dispatch(ctx, "report notification", notify)
		} else if err := notify(ctx); err != nil {
			_ = errutil.Handle(ctx, err, "failed to notify report")
		}
	}

	logging.From(ctx).Info("report generated",
		"owner_id", owner,
		"size", len(data),
		"partial", bundle.IsPartial(),
		"location", r.Location,
	)
	return r, nil
}
