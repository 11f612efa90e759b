package report

var introductionText = []string{
	"This Business Continuity Plan describes how the organization keeps its critical business processes running during a disruption and how it restores normal operations afterwards.",
	"The plan is generated from the business processes, impact analyses, recovery objectives, recovery workflows and maturity assessment maintained for this organization. Review it whenever those records change.",
}

var riskAssessmentText = []string{
	"Threats to business operations include natural disasters, utility outages, cyber incidents, supplier failures, pandemics and loss of key personnel.",
	"Each threat should be assessed for likelihood and impact on the business processes listed in this plan. Mitigation measures are prioritized for processes in the highest criticality tiers.",
}

var alternateLocationsText = []string{
	"When a primary site becomes unavailable, staff relocate to a designated alternate site or work remotely where the process allows it.",
	"Alternate locations must provide the facilities, equipment and network access that the relocated processes depend on. Arrangements are reviewed annually.",
}

var communicationPlanText = []string{
	"The crisis management team notifies employees, customers, partners, regulators and other stakeholders as soon as a disruption is confirmed.",
	"Status updates are issued at regular intervals until recovery is complete. Contact lists are kept current and stored where they remain reachable during an outage.",
}

var testingMaintenanceText = []string{
	"The plan is exercised at least once a year through tabletop exercises and recovery tests.",
	"Findings from exercises and real incidents are recorded, and the business processes, recovery objectives and workflows are updated accordingly.",
}

var appendixText = []string{
	"Impact scores use a step table per monetary dimension and a fixed scale for qualitative dimensions. Recovery gaps are measured in hours.",
}
