package interfaces

// Repository defines the interface for data persistence. Every method of the
// per-entity repositories is scoped by the owner ID passed in.
type Repository interface {
	BusinessProcess() BusinessProcessRepository
	ImpactAnalysis() ImpactAnalysisRepository
	RTORPO() RTORPORepository
	RecoveryWorkflow() RecoveryWorkflowRepository
	Maturity() MaturityRepository

	Close() error
}
