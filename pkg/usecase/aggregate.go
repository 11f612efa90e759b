package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bcplanner/pkg/domain/interfaces"
	"github.com/secmon-lab/bcplanner/pkg/domain/model"
	"github.com/secmon-lab/bcplanner/pkg/domain/types"
	"github.com/secmon-lab/bcplanner/pkg/service/scoring"
	"github.com/secmon-lab/bcplanner/pkg/utils/errutil"
	"github.com/secmon-lab/bcplanner/pkg/utils/metrics"
	"golang.org/x/sync/errgroup"
)

// Collection names used in fetch warnings
const (
	CollectionBusinessProcesses = "business_processes"
	CollectionImpactAnalyses    = "impact_analyses"
	CollectionRTORPOAnalyses    = "rto_rpo_analyses"
	CollectionRecoveryWorkflows = "recovery_workflows"
	CollectionMaturity          = "maturity_scorecard"
)

// AggregateUseCase joins every collection of one owner into a Bundle
type AggregateUseCase struct {
	repo interfaces.Repository
	now  func() time.Time
}

func NewAggregateUseCase(repo interfaces.Repository) *AggregateUseCase {
	return &AggregateUseCase{repo: repo, now: time.Now}
}

type fetched struct {
	processes []*model.BusinessProcess
	impacts   []*model.ImpactAnalysis
	rtoRPO    []*model.RTORPOAnalysis
	workflows []*model.RecoveryWorkflow
	maturity  *model.MaturityScorecard
	warnings  [5]*model.FetchWarning
}

// Aggregate reads the five collections concurrently and joins them. A failed
// fetch leaves its collection empty and is reported in Bundle.Warnings; only
// a missing owner is an error.
func (uc *AggregateUseCase) Aggregate(ctx context.Context, owner model.OwnerID) (*model.Bundle, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}

	var f fetched
	var eg errgroup.Group

	fetch := func(slot int, collection string, fn func() error) {
		eg.Go(func() error {
			if err := fn(); err != nil {
				metrics.RecordFetchFailure(collection)
				_ = errutil.Handle(ctx, goerr.Wrap(err, "failed to fetch collection",
					goerr.V(OwnerIDKey, owner), goerr.V("collection", collection)),
					"aggregation fetch failed")
				f.warnings[slot] = &model.FetchWarning{
					Collection: collection,
					Message:    "failed to load " + collection,
				}
			}
			// one failed collection must not cancel the others
			return nil
		})
	}

	repo := uc.repo
	fetch(0, CollectionBusinessProcesses, func() (err error) {
		f.processes, err = repo.BusinessProcess().List(ctx, owner)
		return err
	})
	fetch(1, CollectionImpactAnalyses, func() (err error) {
		f.impacts, err = repo.ImpactAnalysis().List(ctx, owner)
		return err
	})
	fetch(2, CollectionRTORPOAnalyses, func() (err error) {
		f.rtoRPO, err = repo.RTORPO().List(ctx, owner)
		return err
	})
	fetch(3, CollectionRecoveryWorkflows, func() (err error) {
		f.workflows, err = repo.RecoveryWorkflow().List(ctx, owner)
		return err
	})
	fetch(4, CollectionMaturity, func() (err error) {
		f.maturity, err = repo.Maturity().Get(ctx, owner)
		if errors.Is(err, interfaces.ErrNotFound) {
			f.maturity = nil
			return nil
		}
		return err
	})

	_ = eg.Wait()

	bundle := join(owner, &f)
	bundle.GeneratedAt = uc.now().UTC()
	return bundle, nil
}

func join(owner model.OwnerID, f *fetched) *model.Bundle {
	bundle := &model.Bundle{
		OwnerID:   owner,
		Processes: f.processes,
		Impacts:   make([]model.ImpactRow, 0, len(f.impacts)),
		RTORPO:    make([]model.RTORPORow, 0, len(f.rtoRPO)),
		Workflows: make([]model.WorkflowRow, 0, len(f.workflows)),
		Maturity:  f.maturity,
	}
	if bundle.Processes == nil {
		bundle.Processes = []*model.BusinessProcess{}
	}
	for _, w := range f.warnings {
		if w != nil {
			bundle.Warnings = append(bundle.Warnings, *w)
		}
	}

	byID := make(map[model.BusinessProcessID]*model.BusinessProcess, len(f.processes))
	for _, bp := range f.processes {
		byID[bp.ID] = bp
	}
	lookup := func(id model.BusinessProcessID) (string, string) {
		bp, ok := byID[id]
		if id == "" || !ok {
			return model.NotAvailable, model.NotAvailable
		}
		return bp.Name, orNotAvailable(bp.Owner)
	}

	for _, ia := range f.impacts {
		name, processOwner := lookup(ia.BusinessProcessID)
		if ia.BusinessProcessID == "" && ia.ProcessName != "" {
			name = ia.ProcessName
		}
		bundle.Impacts = append(bundle.Impacts, model.ImpactRow{
			ImpactAnalysis: ia,
			ProcessName:    name,
			ProcessOwner:   processOwner,
		})
	}

	for _, a := range f.rtoRPO {
		name, processOwner := lookup(a.BusinessProcessID)
		bundle.RTORPO = append(bundle.RTORPO, model.RTORPORow{
			RTORPOAnalysis: a,
			ProcessName:    name,
			ProcessOwner:   processOwner,
		})
	}

	for _, wf := range f.workflows {
		name, _ := lookup(wf.BusinessProcessID)
		bundle.Workflows = append(bundle.Workflows, model.WorkflowRow{
			RecoveryWorkflow: wf,
			ProcessName:      name,
		})
	}

	bundle.Summary = summarize(bundle)
	return bundle
}

func summarize(b *model.Bundle) model.Summary {
	s := model.Summary{
		ProcessCount:     len(b.Processes),
		ImpactCount:      len(b.Impacts),
		TierDistribution: make(map[types.Tier]int),
	}

	var total float64
	var scored int
	for _, row := range b.Impacts {
		if row.Mode == types.ScoringModeLinear {
			continue
		}
		total += row.OverallScore
		scored++
		if row.Tier != "" {
			s.TierDistribution[row.Tier]++
		}
	}
	if scored > 0 {
		s.AverageImpactScore = scoring.Round2(total / float64(scored))
	}

	for _, row := range b.RTORPO {
		gap := row.Gap
		switch row.Metric {
		case types.MetricRTO:
			s.WorstRTOGap = minGap(s.WorstRTOGap, gap)
		case types.MetricRPO:
			s.WorstRPOGap = minGap(s.WorstRPOGap, gap)
		}
	}

	if b.Maturity != nil {
		s.MaturityScore = b.Maturity.OverallMaturityScore
	}
	return s
}

// minGap keeps the most negative gap, i.e. the objective furthest from being met
func minGap(current *float64, gap float64) *float64 {
	if current == nil || gap < *current {
		return &gap
	}
	return current
}

func orNotAvailable(s string) string {
	if s == "" {
		return model.NotAvailable
	}
	return s
}
