package usecase

import (
	"github.com/secmon-lab/bcplanner/pkg/domain/interfaces"
	"github.com/secmon-lab/bcplanner/pkg/domain/model/config"
	"github.com/secmon-lab/bcplanner/pkg/service/scoring"
)

type UseCases struct {
	repo          interfaces.Repository
	scoringConfig *config.ScoringConfig
	archiver      interfaces.ReportArchiver
	notifier      interfaces.ReportNotifier
	asyncNotify   bool

	BusinessProcess *BusinessProcessUseCase
	Impact          *ImpactUseCase
	RTORPO          *RTORPOUseCase
	Recovery        *RecoveryUseCase
	Maturity        *MaturityUseCase
	Aggregate       *AggregateUseCase
	Report          *ReportUseCase
	Auth            OwnerResolver
}

type Option func(*UseCases)

// WithScoringConfig replaces the default step tables, weights and tier cutoffs
func WithScoringConfig(cfg *config.ScoringConfig) Option {
	return func(uc *UseCases) {
		uc.scoringConfig = cfg
	}
}

func WithArchiver(archiver interfaces.ReportArchiver) Option {
	return func(uc *UseCases) {
		uc.archiver = archiver
	}
}

func WithNotifier(notifier interfaces.ReportNotifier) Option {
	return func(uc *UseCases) {
		uc.notifier = notifier
	}
}

// WithAsyncNotification sends report notifications in the background so that
// the report is returned without waiting for Slack
func WithAsyncNotification() Option {
	return func(uc *UseCases) {
		uc.asyncNotify = true
	}
}

func WithAuth(resolver OwnerResolver) Option {
	return func(uc *UseCases) {
		uc.Auth = resolver
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.BusinessProcess = NewBusinessProcessUseCase(repo)
	uc.Impact = NewImpactUseCase(repo, scoring.New(uc.scoringConfig))
	uc.RTORPO = NewRTORPOUseCase(repo)
	uc.Recovery = NewRecoveryUseCase(repo)
	uc.Maturity = NewMaturityUseCase(repo)
	uc.Aggregate = NewAggregateUseCase(repo)
	uc.Report = NewReportUseCase(uc.Aggregate, uc.archiver, uc.notifier)
	uc.Report.asyncNotify = uc.asyncNotify

	return uc
}
