package types

// MaturityDimension identifies one checklist item of the maturity scorecard
type MaturityDimension string

const (
	MaturityBCPPolicy              MaturityDimension = "bcp_policy"
	MaturityExecutiveSponsorship   MaturityDimension = "executive_sponsorship"
	MaturityGovernanceStructure    MaturityDimension = "governance_structure"
	MaturityBudget                 MaturityDimension = "bcp_budget"
	MaturityRiskAssessment         MaturityDimension = "risk_assessment"
	MaturityBusinessImpactAnalysis MaturityDimension = "business_impact_analysis"
	MaturityRecoveryStrategies     MaturityDimension = "recovery_strategies"
	MaturityITDisasterRecovery     MaturityDimension = "it_disaster_recovery_plan"
	MaturityCrisisManagement       MaturityDimension = "crisis_management_plan"
	MaturityCrisisCommunication    MaturityDimension = "crisis_communication_plan"
	MaturityEmergencyResponse      MaturityDimension = "emergency_response_plan"
	MaturityIncidentResponse       MaturityDimension = "incident_response_procedures"
	MaturityPandemicPlan           MaturityDimension = "pandemic_plan"
	MaturitySupplierContinuity     MaturityDimension = "supplier_continuity"
	MaturityAlternateSite          MaturityDimension = "alternate_site"
	MaturityRemoteWork             MaturityDimension = "remote_work_capability"
	MaturityDataBackup             MaturityDimension = "data_backup"
	MaturityOffsiteBackup          MaturityDimension = "offsite_backup_storage"
	MaturityRecoveryTesting        MaturityDimension = "recovery_testing"
	MaturityTabletopExercises      MaturityDimension = "tabletop_exercises"
	MaturityPlanMaintenance        MaturityDimension = "plan_maintenance"
	MaturityTrainingAwareness      MaturityDimension = "training_and_awareness"
	MaturityRolesResponsibilities  MaturityDimension = "roles_and_responsibilities"
	MaturityContactLists           MaturityDimension = "contact_lists"
	MaturityVitalRecords           MaturityDimension = "vital_records"
	MaturityRegulatoryCompliance   MaturityDimension = "regulatory_compliance"
	MaturityInsuranceCoverage      MaturityDimension = "insurance_coverage"
	MaturityCyberResilience        MaturityDimension = "cyber_resilience"
	MaturityFacilitySecurity       MaturityDimension = "facility_security"
	MaturityUtilityRedundancy      MaturityDimension = "utility_redundancy"
	MaturityNetworkRedundancy      MaturityDimension = "network_redundancy"
	MaturityApplicationResilience  MaturityDimension = "application_resilience"
	MaturityWorkforceSuccession    MaturityDimension = "workforce_succession"
	MaturityPostIncidentReview     MaturityDimension = "post_incident_review"
	MaturityContinuousImprovement  MaturityDimension = "continuous_improvement"
)

var maturityLabels = map[MaturityDimension]string{
	MaturityBCPPolicy:              "BCP Policy",
	MaturityExecutiveSponsorship:   "Executive Sponsorship",
	MaturityGovernanceStructure:    "Governance Structure",
	MaturityBudget:                 "BCP Budget",
	MaturityRiskAssessment:         "Risk Assessment",
	MaturityBusinessImpactAnalysis: "Business Impact Analysis",
	MaturityRecoveryStrategies:     "Recovery Strategies",
	MaturityITDisasterRecovery:     "IT Disaster Recovery Plan",
	MaturityCrisisManagement:       "Crisis Management Plan",
	MaturityCrisisCommunication:    "Crisis Communication Plan",
	MaturityEmergencyResponse:      "Emergency Response Plan",
	MaturityIncidentResponse:       "Incident Response Procedures",
	MaturityPandemicPlan:           "Pandemic Plan",
	MaturitySupplierContinuity:     "Supplier Continuity",
	MaturityAlternateSite:          "Alternate Site",
	MaturityRemoteWork:             "Remote Work Capability",
	MaturityDataBackup:             "Data Backup",
	MaturityOffsiteBackup:          "Offsite Backup Storage",
	MaturityRecoveryTesting:        "Recovery Testing",
	MaturityTabletopExercises:      "Tabletop Exercises",
	MaturityPlanMaintenance:        "Plan Maintenance",
	MaturityTrainingAwareness:      "Training and Awareness",
	MaturityRolesResponsibilities:  "Roles and Responsibilities",
	MaturityContactLists:           "Contact Lists",
	MaturityVitalRecords:           "Vital Records",
	MaturityRegulatoryCompliance:   "Regulatory Compliance",
	MaturityInsuranceCoverage:      "Insurance Coverage",
	MaturityCyberResilience:        "Cyber Resilience",
	MaturityFacilitySecurity:       "Facility Security",
	MaturityUtilityRedundancy:      "Utility Redundancy",
	MaturityNetworkRedundancy:      "Network Redundancy",
	MaturityApplicationResilience:  "Application Resilience",
	MaturityWorkforceSuccession:    "Workforce Succession",
	MaturityPostIncidentReview:     "Post-Incident Review",
	MaturityContinuousImprovement:  "Continuous Improvement",
}

// AllMaturityDimensions returns the full checklist in display order
func AllMaturityDimensions() []MaturityDimension {
	return []MaturityDimension{
		MaturityBCPPolicy,
		MaturityExecutiveSponsorship,
		MaturityGovernanceStructure,
		MaturityBudget,
		MaturityRiskAssessment,
		MaturityBusinessImpactAnalysis,
		MaturityRecoveryStrategies,
		MaturityITDisasterRecovery,
		MaturityCrisisManagement,
		MaturityCrisisCommunication,
		MaturityEmergencyResponse,
		MaturityIncidentResponse,
		MaturityPandemicPlan,
		MaturitySupplierContinuity,
		MaturityAlternateSite,
		MaturityRemoteWork,
		MaturityDataBackup,
		MaturityOffsiteBackup,
		MaturityRecoveryTesting,
		MaturityTabletopExercises,
		MaturityPlanMaintenance,
		MaturityTrainingAwareness,
		MaturityRolesResponsibilities,
		MaturityContactLists,
		MaturityVitalRecords,
		MaturityRegulatoryCompliance,
		MaturityInsuranceCoverage,
		MaturityCyberResilience,
		MaturityFacilitySecurity,
		MaturityUtilityRedundancy,
		MaturityNetworkRedundancy,
		MaturityApplicationResilience,
		MaturityWorkforceSuccession,
		MaturityPostIncidentReview,
		MaturityContinuousImprovement,
	}
}

// IsValid checks if the dimension is part of the checklist
func (d MaturityDimension) IsValid() bool {
	_, ok := maturityLabels[d]
	return ok
}

// Label returns the display label of the dimension
func (d MaturityDimension) Label() string {
	if label, ok := maturityLabels[d]; ok {
		return label
	}
	return string(d)
}

func (d MaturityDimension) String() string {
	return string(d)
}
