package types

import "fmt"

// AnalysisType distinguishes failover recovery from return to the primary site
type AnalysisType string

const (
	AnalysisTypeRecovery     AnalysisType = "recovery"
	AnalysisTypeRepatriation AnalysisType = "repatriation"
)

// IsValid checks if the analysis type is valid
func (a AnalysisType) IsValid() bool {
	switch a {
	case AnalysisTypeRecovery, AnalysisTypeRepatriation:
		return true
	default:
		return false
	}
}

func (a AnalysisType) String() string {
	return string(a)
}

// ParseAnalysisType parses a string into an AnalysisType
func ParseAnalysisType(s string) (AnalysisType, error) {
	a := AnalysisType(s)
	if !a.IsValid() {
		return "", fmt.Errorf("invalid analysis type: %s", s)
	}
	return a, nil
}

// Metric is the objective measured by an RTO/RPO analysis
type Metric string

const (
	MetricRTO Metric = "rto"
	MetricRPO Metric = "rpo"
)

// IsValid checks if the metric is valid
func (m Metric) IsValid() bool {
	switch m {
	case MetricRTO, MetricRPO:
		return true
	default:
		return false
	}
}

func (m Metric) String() string {
	return string(m)
}

// ParseMetric parses a string into a Metric
func ParseMetric(s string) (Metric, error) {
	m := Metric(s)
	if !m.IsValid() {
		return "", fmt.Errorf("invalid metric: %s", s)
	}
	return m, nil
}
