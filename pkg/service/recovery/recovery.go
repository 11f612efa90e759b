// Package recovery generates recovery workflow steps for a business process
// from an ordered rules table.
package recovery

import (
	"strings"

	"github.com/secmon-lab/bcplanner/pkg/domain/model"
	"github.com/secmon-lab/bcplanner/pkg/domain/types"
)

// DependencyTeam is responsible for every per-dependency step
const DependencyTeam = "Business Continuity Team"

type ruleKind int

const (
	// ruleFixed emits exactly one step
	ruleFixed ruleKind = iota
	// rulePerDependency emits one step per dependency entry of the process
	rulePerDependency
)

type rule struct {
	kind ruleKind

	description    string
	team           string
	duration       model.Duration
	copies         []types.DependencyCategory
	alternateStaff []string
}

var (
	people     = types.DependencyPeople
	apps       = types.DependencyITApplications
	devices    = types.DependencyDevices
	facilities = types.DependencyFacilities
	suppliers  = types.DependencySuppliers
)

// processNamePlaceholder is replaced by the business process name
const processNamePlaceholder = "{process}"

var rules = []rule{
	{
		description:    "Notify the crisis management team and activate the business continuity plan for {process}",
		team:           "Crisis Management Team",
		duration:       model.Hours(1),
		copies:         []types.DependencyCategory{people},
		alternateStaff: []string{"Deputy Crisis Manager"},
	},
	{
		description:    "Assess the scope and impact of the disruption on {process}",
		team:           "Business Continuity Team",
		duration:       model.Hours(2),
		copies:         []types.DependencyCategory{people, apps, devices, facilities, suppliers},
		alternateStaff: []string{"Business Continuity Coordinator"},
	},
	{
		description:    "Communicate the situation to employees, customers and key stakeholders",
		team:           "Communications Team",
		duration:       model.Hours(2),
		copies:         []types.DependencyCategory{people},
		alternateStaff: []string{"Communications Deputy"},
	},
	{
		description:    "Activate the IT disaster recovery plan",
		team:           "IT Team",
		duration:       model.Hours(4),
		copies:         []types.DependencyCategory{apps, devices},
		alternateStaff: []string{"IT Operations Lead"},
	},
	{
		description:    "Prioritize critical business functions for recovery",
		team:           "Business Continuity Team",
		duration:       model.Hours(2),
		alternateStaff: []string{"Business Continuity Coordinator"},
	},
	{
		description:    "Restore critical IT systems and applications",
		team:           "IT Team",
		duration:       model.Hours(8),
		copies:         []types.DependencyCategory{apps},
		alternateStaff: []string{"Systems Administrator"},
	},
	{
		description:    "Restore data from the most recent backups",
		team:           "IT Team",
		duration:       model.Hours(6),
		copies:         []types.DependencyCategory{apps},
		alternateStaff: []string{"Database Administrator"},
	},
	{
		description:    "Coordinate with vendors and suppliers to restore services",
		team:           "Procurement Team",
		duration:       model.Hours(8),
		copies:         []types.DependencyCategory{suppliers},
		alternateStaff: []string{"Vendor Manager"},
	},
	{
		description:    "Relocate staff to the alternate work site if the primary site is unavailable",
		team:           "Facilities Team",
		duration:       model.Hours(12),
		copies:         []types.DependencyCategory{people, facilities},
		alternateStaff: []string{"Facilities Coordinator"},
	},
	{
		description:    "Assess physical damage to facilities and equipment",
		team:           "Facilities Team",
		duration:       model.Hours(8),
		copies:         []types.DependencyCategory{facilities, devices},
		alternateStaff: []string{"Facilities Coordinator"},
	},
	{
		description:    "Review the effectiveness of the response and adjust recovery actions",
		team:           "Crisis Management Team",
		duration:       model.Hours(4),
		alternateStaff: []string{"Deputy Crisis Manager"},
	},
	{
		description:    "Implement interim workarounds and manual procedures for {process}",
		team:           "Operations Team",
		duration:       model.Hours(24),
		copies:         []types.DependencyCategory{people},
		alternateStaff: []string{"Operations Supervisor"},
	},
	{
		description:    "Engage vendors for support during an extended outage",
		team:           "Procurement Team",
		duration:       model.Hours(48),
		copies:         []types.DependencyCategory{suppliers},
		alternateStaff: []string{"Vendor Manager"},
	},
	{
		description:    "Hold daily status meetings until recovery is complete",
		team:           "Crisis Management Team",
		duration:       model.Qualitative("Ongoing (Daily)"),
		copies:         []types.DependencyCategory{people},
		alternateStaff: []string{"Deputy Crisis Manager"},
	},
	{
		description:    "Validate that all systems and processes are fully restored",
		team:           "Quality Assurance Team",
		duration:       model.Hours(8),
		copies:         []types.DependencyCategory{apps, devices},
		alternateStaff: []string{"QA Lead"},
	},
	{
		description:    "Return operations to the primary site",
		team:           "Facilities Team",
		duration:       model.Hours(24),
		copies:         []types.DependencyCategory{people, facilities},
		alternateStaff: []string{"Facilities Coordinator"},
	},
	{
		description:    "Conduct a post-recovery review of {process}",
		team:           "Business Continuity Team",
		duration:       model.Hours(4),
		alternateStaff: []string{"Business Continuity Coordinator"},
	},
	{
		description:    "Update the business continuity plan documentation",
		team:           "Business Continuity Team",
		duration:       model.Hours(8),
		alternateStaff: []string{"Documentation Specialist"},
	},
	{
		description:    "Train staff on updated recovery procedures",
		team:           "Human Resources",
		duration:       model.Hours(16),
		copies:         []types.DependencyCategory{people},
		alternateStaff: []string{"Training Coordinator"},
	},
	{
		description:    "Perform a final audit of the recovery",
		team:           "Internal Audit",
		duration:       model.Hours(8),
		alternateStaff: []string{"Compliance Officer"},
	},
	{
		kind:     rulePerDependency,
		team:     DependencyTeam,
		duration: model.Hours(4),
	},
}

// FixedStepCount is the number of steps emitted regardless of dependencies
func FixedStepCount() int {
	n := 0
	for _, r := range rules {
		if r.kind == ruleFixed {
			n++
		}
	}
	return n
}

// Generate returns the recovery steps for bp, numbered contiguously from 1.
// The result depends only on bp.
func Generate(bp *model.BusinessProcess) []model.RecoveryStep {
	deps := bp.Dependencies.Normalize()
	name := strings.TrimSpace(bp.Name)
	if name == "" {
		name = "the business process"
	}

	var steps []model.RecoveryStep
	for _, r := range rules {
		switch r.kind {
		case ruleFixed:
			steps = append(steps, model.RecoveryStep{
				Description:         strings.ReplaceAll(r.description, processNamePlaceholder, name),
				ResponsibleTeam:     r.team,
				EstimatedCompletion: r.duration,
				Dependencies:        copyCategories(deps, r.copies),
				AlternateStaff:      append([]string{}, r.alternateStaff...),
			})

		case rulePerDependency:
			deps.Each(func(category types.DependencyCategory, items []string) {
				for _, item := range items {
					single, _ := model.Dependencies{}.Normalize().Append(category, item)
					steps = append(steps, model.RecoveryStep{
						Description:         "Assess and recover " + category.Label() + ": " + item,
						ResponsibleTeam:     r.team,
						EstimatedCompletion: r.duration,
						Dependencies:        single,
						AlternateStaff:      []string{},
					})
				}
			})
		}
	}

	for i := range steps {
		steps[i].StepNumber = i + 1
	}
	return steps
}

// NewWorkflow returns an auto-generated workflow for bp
func NewWorkflow(bp *model.BusinessProcess) *model.RecoveryWorkflow {
	return &model.RecoveryWorkflow{
		OwnerID:           bp.OwnerID,
		BusinessProcessID: bp.ID,
		Steps:             Generate(bp),
		IsAutoGenerated:   true,
	}
}

func copyCategories(deps model.Dependencies, categories []types.DependencyCategory) model.Dependencies {
	out := model.Dependencies{}.Normalize()
	for _, c := range categories {
		for _, item := range deps.Get(c) {
			out, _ = out.Append(c, item)
		}
	}
	return out
}
