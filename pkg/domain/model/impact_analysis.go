package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/secmon-lab/bcplanner/pkg/domain/types"
)

// ImpactAnalysisID is a UUID-based identifier for ImpactAnalysis
type ImpactAnalysisID string

// NewImpactAnalysisID generates a new UUID v4 ImpactAnalysisID
func NewImpactAnalysisID() ImpactAnalysisID {
	return ImpactAnalysisID(uuid.New().String())
}

// ImpactInput holds the raw inputs of a business impact analysis
type ImpactInput struct {
	Criticality    types.Criticality `json:"criticality"`
	CostOfDowntime float64           `json:"costOfDowntime"`

	RevenueLoss           float64 `json:"revenueLoss"`
	ProductivityLoss      float64 `json:"productivityLoss"`
	OperatingCostIncrease float64 `json:"operatingCostIncrease"`
	FinancialPenalties    float64 `json:"financialPenalties"`

	CustomerImpact   types.ImpactLevel `json:"customerImpact"`
	StaffImpact      types.ImpactLevel `json:"staffImpact"`
	PartnerImpact    types.ImpactLevel `json:"partnerImpact"`
	ComplianceImpact types.ImpactLevel `json:"complianceImpact"`
	SafetyImpact     types.ImpactLevel `json:"safetyImpact"`

	// Dashboard inputs used by the linear formula
	FinancialImpact   float64  `json:"financialImpact"`
	ReputationImpact  float64  `json:"reputationImpact"`
	OperationalImpact float64  `json:"operationalImpact"`
	DowntimeHours     float64  `json:"downtimeHours"`
	CostPerHour       float64  `json:"costPerHour"`
	ExpectedRTO       *float64 `json:"expectedRTO,omitempty"`
	ActualRTO         *float64 `json:"actualRTO,omitempty"`
	ExpectedRPO       *float64 `json:"expectedRPO,omitempty"`
	ActualRPO         *float64 `json:"actualRPO,omitempty"`
}

// ImpactScore holds values derived from ImpactInput at save time
type ImpactScore struct {
	Mode         types.ScoringMode `json:"scoringMode"`
	OverallScore float64           `json:"overallScore"`
	Tier         types.Tier        `json:"tier,omitempty"`
	TotalImpact  float64           `json:"totalImpact"`
	RTOGap       float64           `json:"rtoGap"`
	RPOGap       float64           `json:"rpoGap"`
}

// ImpactAnalysis is a business impact analysis, optionally linked to a process
type ImpactAnalysis struct {
	ID                ImpactAnalysisID  `json:"id"`
	OwnerID           OwnerID           `json:"ownerId"`
	BusinessProcessID BusinessProcessID `json:"businessProcessId,omitempty"`
	// ProcessName labels standalone analyses that have no linked process
	ProcessName string `json:"processName,omitempty"`
	ImpactInput
	ImpactScore
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Clone returns a deep copy of the analysis
func (a *ImpactAnalysis) Clone() *ImpactAnalysis {
	if a == nil {
		return nil
	}
	c := *a
	c.ExpectedRTO = clonePtr(a.ExpectedRTO)
	c.ActualRTO = clonePtr(a.ActualRTO)
	c.ExpectedRPO = clonePtr(a.ExpectedRPO)
	c.ActualRPO = clonePtr(a.ActualRPO)
	return &c
}

func clonePtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
