package http_test

import (
	"net/http"
	"strconv"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/bcplanner/pkg/domain/model"
)

func TestRecoveryWorkflowAPI(t *testing.T) {
	s := setupServer(t)
	bp := createBusinessProcess(t, s, "Payroll")

	w := s.doJSON(http.MethodPost, "/api/recovery-workflows/generate", map[string]any{"businessProcessId": bp.ID})
	gt.Value(t, w.Code).Equal(http.StatusOK)
	wf := decode[*model.RecoveryWorkflow](t, w)
	gt.Bool(t, wf.IsAutoGenerated).True()
	for i, step := range wf.Steps {
		gt.Value(t, step.StepNumber).Equal(i + 1)
	}
	last := wf.Steps[len(wf.Steps)-1]
	gt.Value(t, last.Description).Equal("Assess and recover Facility/Location: HQ")

	t.Run("regeneration replaces the workflow", func(t *testing.T) {
		w := s.doJSON(http.MethodPost, "/api/recovery-workflows/generate", map[string]any{"businessProcessId": bp.ID})
		gt.Value(t, w.Code).Equal(http.StatusOK)

		w = s.do(http.MethodGet, "/api/recovery-workflows", "", nil)
		gt.Array(t, decode[[]*model.RecoveryWorkflow](t, w)).Length(1)
	})

	t.Run("filter by business process", func(t *testing.T) {
		w := s.do(http.MethodGet, "/api/recovery-workflows?businessProcessId="+string(bp.ID), "", nil)
		gt.Value(t, w.Code).Equal(http.StatusOK)
		list := decode[[]*model.RecoveryWorkflow](t, w)
		gt.Array(t, list).Length(1)
		gt.Value(t, list[0].BusinessProcessID).Equal(bp.ID)
	})

	t.Run("generate for unknown process is 404", func(t *testing.T) {
		w := s.doJSON(http.MethodPost, "/api/recovery-workflows/generate", map[string]any{"businessProcessId": "missing"})
		gt.Value(t, w.Code).Equal(http.StatusNotFound)
	})
}

func TestRecoveryStepEditing(t *testing.T) {
	s := setupServer(t)
	bp := createBusinessProcess(t, s, "Payroll")

	w := s.doJSON(http.MethodPost, "/api/recovery-workflows", map[string]any{
		"businessProcessId": bp.ID,
		"steps": []map[string]any{
			{"description": "Notify crisis team", "responsibleTeam": "Crisis Team", "estimatedCompletionTime": 1},
			{"description": "Restore payroll system", "estimatedCompletionTime": "Ongoing (Daily)"},
		},
	})
	gt.Value(t, w.Code).Equal(http.StatusCreated)
	wf := decode[*model.RecoveryWorkflow](t, w)
	gt.Array(t, wf.Steps).Length(2)
	gt.Bool(t, wf.IsAutoGenerated).False()
	gt.Value(t, wf.Steps[0].EstimatedCompletion).Equal(model.Hours(1))
	gt.Value(t, wf.Steps[1].EstimatedCompletion).Equal(model.Qualitative("Ongoing (Daily)"))

	stepsPath := "/api/recovery-workflows/" + string(wf.ID) + "/steps"

	t.Run("add step", func(t *testing.T) {
		w := s.doJSON(http.MethodPost, stepsPath, map[string]any{"description": "Validate payments"})
		gt.Value(t, w.Code).Equal(http.StatusOK)
		got := decode[*model.RecoveryWorkflow](t, w)
		gt.Array(t, got.Steps).Length(3)
		gt.Value(t, got.Steps[2].StepNumber).Equal(3)
	})

	t.Run("update step", func(t *testing.T) {
		w := s.doJSON(http.MethodPut, stepsPath+"/2", map[string]any{
			"description":     "Restore payroll from backup",
			"responsibleTeam": "IT",
		})
		gt.Value(t, w.Code).Equal(http.StatusOK)
		got := decode[*model.RecoveryWorkflow](t, w)
		gt.Value(t, got.Steps[1].Description).Equal("Restore payroll from backup")
		gt.Value(t, got.Steps[1].StepNumber).Equal(2)
	})

	t.Run("remove step renumbers", func(t *testing.T) {
		w := s.do(http.MethodDelete, stepsPath+"/1", "", nil)
		gt.Value(t, w.Code).Equal(http.StatusOK)
		got := decode[*model.RecoveryWorkflow](t, w)
		gt.Array(t, got.Steps).Length(2)
		for i, step := range got.Steps {
			gt.Value(t, step.StepNumber).Equal(i + 1)
		}
		gt.Value(t, got.Steps[0].Description).Equal("Restore payroll from backup")
	})

	t.Run("out of range step", func(t *testing.T) {
		w := s.do(http.MethodDelete, stepsPath+"/"+strconv.Itoa(99), "", nil)
		gt.Value(t, w.Code).Equal(http.StatusBadRequest)
	})

	t.Run("empty description", func(t *testing.T) {
		w := s.doJSON(http.MethodPost, stepsPath, map[string]any{"description": " "})
		gt.Value(t, w.Code).Equal(http.StatusBadRequest)
	})

	t.Run("delete workflow", func(t *testing.T) {
		w := s.do(http.MethodDelete, "/api/recovery-workflows/"+string(wf.ID), "", nil)
		gt.Value(t, w.Code).Equal(http.StatusOK)

		w = s.do(http.MethodGet, "/api/recovery-workflows/"+string(wf.ID), "", nil)
		gt.Value(t, w.Code).Equal(http.StatusNotFound)
	})
}
