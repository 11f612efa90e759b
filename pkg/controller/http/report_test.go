package http_test

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/bcplanner/pkg/domain/model"
	"github.com/secmon-lab/bcplanner/pkg/domain/types"
)

func TestMaturityAPI(t *testing.T) {
	s := setupServer(t)

	t.Run("missing scorecard is 404", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/maturity-scorecard", "", nil)
		gt.Value(t, w.Code).Equal(http.StatusNotFound)
	})

	t.Run("save and get", func(t *testing.T) {
		w := s.doJSON(http.MethodPut, "/api/maturity-scorecard", map[string]any{
			"scores": map[string]string{
				"bcp_policy":     "10",
				"data_backup":    "5",
				"alternate_site": "not sure",
			},
		})
		gt.Value(t, w.Code).Equal(http.StatusOK)
		saved := decode[*model.MaturityScorecard](t, w)
		gt.Value(t, saved.Scores[types.MaturityBCPPolicy]).Equal("10")

		w = s.do(http.MethodGet, "/api/maturity-scorecard", "", nil)
		gt.Value(t, w.Code).Equal(http.StatusOK)
		got := decode[*model.MaturityScorecard](t, w)
		gt.Value(t, got.OverallMaturityScore).Equal(saved.OverallMaturityScore)
	})

	t.Run("unknown dimension is rejected", func(t *testing.T) {
		w := s.doJSON(http.MethodPut, "/api/maturity-scorecard", map[string]any{
			"scores": map[string]string{"coffee_supply": "10"},
		})
		gt.Value(t, w.Code).Equal(http.StatusBadRequest)
	})

	t.Run("delete", func(t *testing.T) {
		w := s.do(http.MethodDelete, "/api/maturity-scorecard", "", nil)
		gt.Value(t, w.Code).Equal(http.StatusOK)

		w = s.do(http.MethodGet, "/api/maturity-scorecard", "", nil)
		gt.Value(t, w.Code).Equal(http.StatusNotFound)
	})
}

func TestDashboard(t *testing.T) {
	s := setupServer(t)
	bp := createBusinessProcess(t, s, "Payroll")
	w := s.doJSON(http.MethodPost, "/api/impact-analyses", severeImpact(bp.ID))
	gt.Value(t, w.Code).Equal(http.StatusCreated)

	w = s.do(http.MethodGet, "/api/dashboard", "", nil)
	gt.Value(t, w.Code).Equal(http.StatusOK)

	got := decode[struct {
		Summary  model.Summary        `json:"summary"`
		Warnings []model.FetchWarning `json:"warnings"`
	}](t, w)
	gt.Value(t, got.Summary.ProcessCount).Equal(1)
	gt.Value(t, got.Summary.ImpactCount).Equal(1)
	gt.Value(t, got.Summary.AverageImpactScore).Equal(4.0)
	gt.Value(t, got.Summary.TierDistribution[types.TierGold]).Equal(1)
	gt.Array(t, got.Warnings).Length(0)
}

func TestReport(t *testing.T) {
	t.Run("empty owner data still renders", func(t *testing.T) {
		s := setupServer(t)
		w := s.do(http.MethodGet, "/api/report", "", nil)

		gt.Value(t, w.Code).Equal(http.StatusOK)
		gt.Value(t, w.Header().Get("Content-Type")).Equal("application/pdf")
		gt.Value(t, w.Header().Get("Content-Disposition")).Equal(`attachment; filename="BusinessContinuityPlan.pdf"`)
		gt.Bool(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-"))).True()
	})

	t.Run("populated report", func(t *testing.T) {
		s := setupServer(t)
		bp := createBusinessProcess(t, s, "Payroll")
		s.doJSON(http.MethodPost, "/api/impact-analyses", severeImpact(bp.ID))
		s.doJSON(http.MethodPost, "/api/recovery-workflows/generate", map[string]any{"businessProcessId": bp.ID})

		w := s.do(http.MethodGet, "/api/report", "", nil)
		gt.Value(t, w.Code).Equal(http.StatusOK)
		gt.Bool(t, w.Body.Len() > 0).True()
	})
}
