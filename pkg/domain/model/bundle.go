package model

import (
	"time"

	"github.com/secmon-lab/bcplanner/pkg/domain/types"
)

// NotAvailable is shown in place of process fields that cannot be resolved
const NotAvailable = "N/A"

// ImpactRow is an impact analysis joined with its business process
type ImpactRow struct {
	*ImpactAnalysis
	ProcessName  string `json:"processName"`
	ProcessOwner string `json:"processOwner"`
}

// RTORPORow is an RTO/RPO analysis joined with its business process
type RTORPORow struct {
	*RTORPOAnalysis
	ProcessName  string `json:"processName"`
	ProcessOwner string `json:"processOwner"`
}

// WorkflowRow is a recovery workflow joined with its business process
type WorkflowRow struct {
	*RecoveryWorkflow
	ProcessName string `json:"processName"`
}

// Summary holds dashboard metrics computed over a Bundle
type Summary struct {
	ProcessCount       int                `json:"processCount"`
	ImpactCount        int                `json:"impactCount"`
	AverageImpactScore float64            `json:"averageImpactScore"`
	WorstRTOGap        *float64           `json:"worstRtoGap,omitempty"`
	WorstRPOGap        *float64           `json:"worstRpoGap,omitempty"`
	TierDistribution   map[types.Tier]int `json:"tierDistribution"`
	MaturityScore      float64            `json:"maturityScore"`
}

// FetchWarning records a collection that could not be read during aggregation
type FetchWarning struct {
	Collection string `json:"collection"`
	Message    string `json:"message"`
}

// Bundle is the read-only join of every collection of one owner, the input of
// the report renderer and dashboard.
type Bundle struct {
	OwnerID     OwnerID            `json:"ownerId"`
	GeneratedAt time.Time          `json:"generatedAt"`
	Processes   []*BusinessProcess `json:"processes"`
	Impacts     []ImpactRow        `json:"impacts"`
	RTORPO      []RTORPORow        `json:"rtoRpo"`
	Workflows   []WorkflowRow      `json:"workflows"`
	Maturity    *MaturityScorecard `json:"maturity,omitempty"`
	Summary     Summary            `json:"summary"`
	Warnings    []FetchWarning     `json:"warnings,omitempty"`
}

// IsPartial reports whether any collection failed to load
func (b *Bundle) IsPartial() bool {
	return len(b.Warnings) > 0
}
