// Package report turns an aggregated Bundle into the business continuity plan
// document and renders it as PDF.
package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/secmon-lab/bcplanner/pkg/domain/model"
	"github.com/secmon-lab/bcplanner/pkg/domain/types"
	"github.com/secmon-lab/bcplanner/pkg/service/scoring"
)

const (
	Title    = "Business Continuity Plan"
	Version  = "1.0"
	Filename = "BusinessContinuityPlan.pdf"
)

// Section titles in table of contents order
var sectionTitles = []string{
	"Introduction",
	"Business Processes and Dependencies",
	"Business Impact Analysis",
	"RTO/RPO Summary",
	"Recovery Workflows",
	"Maturity Assessment",
	"Risk Assessment",
	"Alternate Locations",
	"Communication Plan",
	"Testing and Maintenance",
	"Appendix",
}

// SectionTitles returns the fixed table of contents
func SectionTitles() []string {
	out := make([]string, len(sectionTitles))
	copy(out, sectionTitles)
	return out
}

// Document is the structure of a plan independent of the output format
type Document struct {
	Title       string
	Version     string
	OwnerID     model.OwnerID
	GeneratedAt time.Time
	Sections    []Section
}

// Section is one top-level chapter. Each section starts on a new page.
type Section struct {
	Number     int
	Title      string
	Paragraphs []string
	Blocks     []Block
}

// Block is a titled group of lines inside a section
type Block struct {
	Heading string
	Lines   []string
}

// Build lays out the document for a bundle. It never fails; missing or empty
// collections leave their blocks out.
func Build(b *model.Bundle) *Document {
	if b == nil {
		b = &model.Bundle{}
	}

	doc := &Document{
		Title:       Title,
		Version:     Version,
		OwnerID:     b.OwnerID,
		GeneratedAt: b.GeneratedAt,
	}

	builders := []func(*model.Bundle) Section{
		introduction,
		businessProcesses,
		impactAnalysis,
		rtoRPOSummary,
		recoveryWorkflows,
		maturityAssessment,
		narrative(riskAssessmentText),
		narrative(alternateLocationsText),
		narrative(communicationPlanText),
		narrative(testingMaintenanceText),
		appendix,
	}
	for i, build := range builders {
		s := build(b)
		s.Number = i + 1
		s.Title = sectionTitles[i]
		doc.Sections = append(doc.Sections, s)
	}
	return doc
}

func introduction(b *model.Bundle) Section {
	s := Section{Paragraphs: introductionText}
	lines := []string{
		fmt.Sprintf("Business processes: %d", b.Summary.ProcessCount),
		fmt.Sprintf("Impact analyses: %d", b.Summary.ImpactCount),
		fmt.Sprintf("Average impact score: %s", formatScore(b.Summary.AverageImpactScore)),
		fmt.Sprintf("Maturity score: %s / 10", formatScore(b.Summary.MaturityScore)),
	}
	// Non-negative gaps meet their objective and are not a shortfall
	if g := b.Summary.WorstRTOGap; g != nil && *g < 0 {
		lines = append(lines, "Largest RTO shortfall: "+formatHours(*g))
	}
	if g := b.Summary.WorstRPOGap; g != nil && *g < 0 {
		lines = append(lines, "Largest RPO shortfall: "+formatHours(*g))
	}
	s.Blocks = append(s.Blocks, Block{Heading: "Plan Summary", Lines: lines})

	if b.IsPartial() {
		var missing []string
		for _, w := range b.Warnings {
			missing = append(missing, w.Collection)
		}
		s.Paragraphs = append(s.Paragraphs,
			"Some records could not be loaded while this plan was generated and are not included: "+
				strings.Join(missing, ", ")+".")
	}
	return s
}

func businessProcesses(b *model.Bundle) Section {
	s := Section{Paragraphs: []string{
		"The following business processes were identified together with the people, systems, equipment, locations and suppliers they depend on.",
	}}
	for _, bp := range b.Processes {
		if bp == nil {
			continue
		}
		lines := []string{"Owner: " + orNA(bp.Owner)}
		if d := strings.TrimSpace(bp.Description); d != "" {
			lines = append(lines, "Description: "+d)
		}
		bp.Dependencies.Normalize().Each(func(c types.DependencyCategory, items []string) {
			if len(items) > 0 {
				lines = append(lines, c.Label()+": "+strings.Join(items, ", "))
			}
		})
		s.Blocks = append(s.Blocks, Block{Heading: bp.Name, Lines: lines})
	}
	return s
}

func impactAnalysis(b *model.Bundle) Section {
	s := Section{Paragraphs: []string{
		"Each analysis estimates the consequences of a disruption. Step table scores range from 0 to 4 and map to a criticality tier.",
	}}
	var lines []string
	for _, row := range b.Impacts {
		if row.ImpactAnalysis == nil {
			continue
		}
		lines = append(lines, impactLine(row))
	}
	if len(lines) > 0 {
		s.Blocks = append(s.Blocks, Block{Heading: "Impact Analyses", Lines: lines})
	}
	return s
}

func impactLine(row model.ImpactRow) string {
	parts := []string{fmt.Sprintf("%s (owner: %s)", row.ProcessName, row.ProcessOwner)}
	if row.Criticality != "" {
		parts = append(parts, "criticality "+string(row.Criticality))
	}
	switch row.Mode {
	case types.ScoringModeLinear:
		parts = append(parts, "total impact "+formatAmount(row.TotalImpact))
	default:
		parts = append(parts, "overall score "+formatScore(row.OverallScore), row.Tier.Label())
	}
	if row.ExpectedRTO != nil || row.ActualRTO != nil {
		parts = append(parts, "RTO gap "+formatHours(row.RTOGap))
	}
	if row.ExpectedRPO != nil || row.ActualRPO != nil {
		parts = append(parts, "RPO gap "+formatHours(row.RPOGap))
	}
	return strings.Join(parts, ", ")
}

func rtoRPOSummary(b *model.Bundle) Section {
	s := Section{Paragraphs: []string{
		"Recovery time (RTO) and recovery point (RPO) objectives compare the acceptable time with what can currently be achieved. A negative gap means the objective is not met.",
	}}
	var lines []string
	for _, row := range b.RTORPO {
		if row.RTORPOAnalysis == nil {
			continue
		}
		lines = append(lines, fmt.Sprintf("%s - %s %s: acceptable %s, achievable %s, gap %s",
			row.ProcessName,
			analysisTypeLabel(row.Type),
			strings.ToUpper(string(row.Metric)),
			formatHours(row.AcceptableTime),
			formatHours(row.AchievableTime),
			formatHours(row.Gap),
		))
	}
	if len(lines) > 0 {
		s.Blocks = append(s.Blocks, Block{Heading: "Objectives", Lines: lines})
	}
	return s
}

func recoveryWorkflows(b *model.Bundle) Section {
	s := Section{Paragraphs: []string{
		"Recovery workflows list the ordered steps to restore each business process after a disruption.",
	}}
	for _, row := range b.Workflows {
		if row.RecoveryWorkflow == nil || len(row.Steps) == 0 {
			continue
		}
		lines := make([]string, 0, len(row.Steps))
		for _, step := range row.Steps {
			line := fmt.Sprintf("%d. %s", step.StepNumber, step.Description)
			var meta []string
			if step.ResponsibleTeam != "" {
				meta = append(meta, step.ResponsibleTeam)
			}
			meta = append(meta, step.EstimatedCompletion.String())
			if len(step.AlternateStaff) > 0 {
				meta = append(meta, "alternates: "+strings.Join(step.AlternateStaff, ", "))
			}
			lines = append(lines, line+" ("+strings.Join(meta, "; ")+")")
		}
		s.Blocks = append(s.Blocks, Block{Heading: row.ProcessName, Lines: lines})
	}
	return s
}

func maturityAssessment(b *model.Bundle) Section {
	s := Section{Paragraphs: []string{
		"The maturity assessment rates the continuity program against a fixed checklist on a scale of 0 to 10.",
	}}
	if b.Maturity == nil {
		return s
	}
	lines := []string{"Overall maturity score: " + formatScore(b.Maturity.OverallMaturityScore) + " / 10"}
	for _, dim := range types.AllMaturityDimensions() {
		if v := strings.TrimSpace(b.Maturity.Scores[dim]); v != "" {
			lines = append(lines, dim.Label()+": "+v)
		}
	}
	s.Blocks = append(s.Blocks, Block{Heading: "Scorecard", Lines: lines})
	return s
}

func narrative(text []string) func(*model.Bundle) Section {
	return func(*model.Bundle) Section {
		return Section{Paragraphs: text}
	}
}

func appendix(b *model.Bundle) Section {
	s := Section{Paragraphs: appendixText}
	var tiers []string
	for _, t := range types.AllTiers() {
		tiers = append(tiers, t.Label())
	}
	s.Blocks = append(s.Blocks, Block{Heading: "Criticality Tiers", Lines: tiers})
	if !b.GeneratedAt.IsZero() {
		s.Blocks = append(s.Blocks, Block{
			Heading: "Document Information",
			Lines: []string{
				"Version: " + Version,
				"Generated: " + b.GeneratedAt.UTC().Format(time.RFC3339),
			},
		})
	}
	return s
}

func analysisTypeLabel(t types.AnalysisType) string {
	switch t {
	case types.AnalysisTypeRecovery:
		return "Recovery"
	case types.AnalysisTypeRepatriation:
		return "Repatriation"
	default:
		return string(t)
	}
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func formatHours(v float64) string {
	return model.Hours(scoring.Round2(v)).String()
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return model.NotAvailable
	}
	return s
}
