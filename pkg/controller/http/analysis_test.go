package http_test

import (
	"net/http"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/bcplanner/pkg/domain/model"
	"github.com/secmon-lab/bcplanner/pkg/domain/types"
)

func severeImpact(bpID model.BusinessProcessID) map[string]any {
	return map[string]any{
		"businessProcessId":     bpID,
		"criticality":           "critical",
		"revenueLoss":           600000,
		"productivityLoss":      250000,
		"operatingCostIncrease": 100000,
		"financialPenalties":    1000000,
		"customerImpact":        "severe",
		"staffImpact":           "severe",
		"partnerImpact":         "severe",
		"complianceImpact":      "severe",
		"safetyImpact":          "severe",
		"expectedRTO":           24,
		"actualRTO":             36,
		"expectedRPO":           4,
		"actualRPO":             4,
	}
}

func TestImpactAnalysisAPI(t *testing.T) {
	s := setupServer(t)
	bp := createBusinessProcess(t, s, "Payroll")

	w := s.doJSON(http.MethodPost, "/api/impact-analyses", severeImpact(bp.ID))
	gt.Value(t, w.Code).Equal(http.StatusCreated)
	ia := decode[*model.ImpactAnalysis](t, w)
	gt.Value(t, ia.OverallScore).Equal(4.0)
	gt.Value(t, ia.Tier).Equal(types.TierGold)
	gt.Value(t, ia.RTOGap).Equal(12.0)

	t.Run("get and list", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/impact-analyses/"+string(ia.ID), "", nil)
		gt.Value(t, w.Code).Equal(http.StatusOK)
		gt.Value(t, decode[*model.ImpactAnalysis](t, w).ID).Equal(ia.ID)

		w = s.do(http.MethodGet, "/api/impact-analyses", "", nil)
		gt.Array(t, decode[[]*model.ImpactAnalysis](t, w)).Length(1)
	})

	t.Run("update rescores", func(t *testing.T) {
		w := s.doJSON(http.MethodPut, "/api/impact-analyses/"+string(ia.ID), map[string]any{
			"businessProcessId": bp.ID,
			"criticality":       "low",
		})
		gt.Value(t, w.Code).Equal(http.StatusOK)
		got := decode[*model.ImpactAnalysis](t, w)
		gt.Bool(t, got.OverallScore < ia.OverallScore).True()
	})

	t.Run("unknown impact level is rejected", func(t *testing.T) {
		in := severeImpact(bp.ID)
		in["staffImpact"] = "catastrophic"
		w := s.doJSON(http.MethodPost, "/api/impact-analyses", in)
		gt.Value(t, w.Code).Equal(http.StatusBadRequest)
		gt.String(t, decodeError(t, w)).Contains("unknown impact level")
	})

	t.Run("partial recovery objectives are rejected", func(t *testing.T) {
		in := severeImpact(bp.ID)
		delete(in, "actualRTO")
		delete(in, "expectedRPO")
		delete(in, "actualRPO")
		w := s.doJSON(http.MethodPost, "/api/impact-analyses", in)
		gt.Value(t, w.Code).Equal(http.StatusBadRequest)
		gt.String(t, decodeError(t, w)).Contains("required together")
	})

	t.Run("delete", func(t *testing.T) {
		w := s.do(http.MethodDelete, "/api/impact-analyses/"+string(ia.ID), "", nil)
		gt.Value(t, w.Code).Equal(http.StatusOK)

		w = s.do(http.MethodGet, "/api/impact-analyses/"+string(ia.ID), "", nil)
		gt.Value(t, w.Code).Equal(http.StatusNotFound)
	})
}

func TestRTORPOAPI(t *testing.T) {
	s := setupServer(t)
	bp := createBusinessProcess(t, s, "Payroll")

	input := func(acceptable, achievable float64) map[string]any {
		return map[string]any{
			"businessProcessId": bp.ID,
			"type":              "recovery",
			"metric":            "rto",
			"acceptableTime":    acceptable,
			"achievableTime":    achievable,
		}
	}

	w := s.doJSON(http.MethodPost, "/api/rto-rpo-analyses", input(4, 6))
	gt.Value(t, w.Code).Equal(http.StatusOK)
	first := decode[*model.RTORPOAnalysis](t, w)
	gt.Value(t, first.Gap).Equal(-2.0)

	t.Run("upsert keeps a single record per key", func(t *testing.T) {
		w := s.doJSON(http.MethodPost, "/api/rto-rpo-analyses", input(8, 6))
		gt.Value(t, w.Code).Equal(http.StatusOK)
		second := decode[*model.RTORPOAnalysis](t, w)
		gt.Value(t, second.ID).Equal(first.ID)
		gt.Value(t, second.Gap).Equal(2.0)

		w = s.do(http.MethodGet, "/api/rto-rpo-analyses", "", nil)
		gt.Array(t, decode[[]*model.RTORPOAnalysis](t, w)).Length(1)
	})

	t.Run("missing time is rejected", func(t *testing.T) {
		in := input(4, 6)
		delete(in, "achievableTime")
		w := s.doJSON(http.MethodPost, "/api/rto-rpo-analyses", in)
		gt.Value(t, w.Code).Equal(http.StatusBadRequest)
	})

	t.Run("update changes metric", func(t *testing.T) {
		in := input(2, 1)
		in["metric"] = "rpo"
		w := s.doJSON(http.MethodPut, "/api/rto-rpo-analyses/"+string(first.ID), in)
		gt.Value(t, w.Code).Equal(http.StatusOK)
		got := decode[*model.RTORPOAnalysis](t, w)
		gt.Value(t, got.Metric).Equal(types.MetricRPO)
		gt.Value(t, got.ID).Equal(first.ID)

		w = s.do(http.MethodGet, "/api/rto-rpo-analyses", "", nil)
		list := decode[[]*model.RTORPOAnalysis](t, w)
		gt.Array(t, list).Length(1)
		gt.Value(t, list[0].Metric).Equal(types.MetricRPO)
	})

	t.Run("get unknown is 404", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/rto-rpo-analyses/missing", "", nil)
		gt.Value(t, w.Code).Equal(http.StatusNotFound)
	})
}
