package memory

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bcplanner/pkg/domain/interfaces"
	"github.com/secmon-lab/bcplanner/pkg/domain/model"
)

var ErrNotFound = goerr.Wrap(interfaces.ErrNotFound, "memory")

// Memory is an in-process repository backend. Each collection is a map per
// owner guarded by its own RWMutex; values are deep-copied in and out.
type Memory struct {
	businessProcess  *businessProcessRepository
	impactAnalysis   *impactAnalysisRepository
	rtoRPO           *rtoRPORepository
	recoveryWorkflow *recoveryWorkflowRepository
	maturity         *maturityRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		businessProcess:  newBusinessProcessRepository(),
		impactAnalysis:   newImpactAnalysisRepository(),
		rtoRPO:           newRTORPORepository(),
		recoveryWorkflow: newRecoveryWorkflowRepository(),
		maturity:         newMaturityRepository(),
	}
}

func (m *Memory) BusinessProcess() interfaces.BusinessProcessRepository {
	return m.businessProcess
}

func (m *Memory) ImpactAnalysis() interfaces.ImpactAnalysisRepository {
	return m.impactAnalysis
}

func (m *Memory) RTORPO() interfaces.RTORPORepository {
	return m.rtoRPO
}

func (m *Memory) RecoveryWorkflow() interfaces.RecoveryWorkflowRepository {
	return m.recoveryWorkflow
}

func (m *Memory) Maturity() interfaces.MaturityRepository {
	return m.maturity
}

func (m *Memory) Close() error {
	return nil
}

func validateOwner(owner model.OwnerID) error {
	if err := owner.Validate(); err != nil {
		return goerr.Wrap(err, "owner is required")
	}
	return nil
}
