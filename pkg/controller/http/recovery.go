package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/secmon-lab/bcplanner/pkg/domain/model"
	"github.com/secmon-lab/bcplanner/pkg/usecase"
)

func recoveryWorkflowID(r *http.Request) model.RecoveryWorkflowID {
	return model.RecoveryWorkflowID(chi.URLParam(r, "id"))
}

// listRecoveryWorkflowsHandler lists every workflow, or only the one of a
// business process when ?businessProcessId= is given
func listRecoveryWorkflowsHandler(uc *usecase.RecoveryUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		owner := ownerFromContext(ctx)

		if bpID := r.URL.Query().Get("businessProcessId"); bpID != "" {
			wf, err := uc.GetByBusinessProcess(ctx, owner, model.BusinessProcessID(bpID))
			if err != nil {
				handleError(w, r, err)
				return
			}
			writeData(w, r, http.StatusOK, []*model.RecoveryWorkflow{wf})
			return
		}

		list, err := uc.List(ctx, owner)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeData(w, r, http.StatusOK, list)
	}
}

type saveWorkflowRequest struct {
	BusinessProcessID model.BusinessProcessID   `json:"businessProcessId"`
	Steps             []usecase.RecoveryStepInput `json:"steps"`
}

func saveRecoveryWorkflowHandler(uc *usecase.RecoveryUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in saveWorkflowRequest
		if err := decodeJSON(r, &in); err != nil {
			handleError(w, r, err)
			return
		}

		wf, err := uc.Save(r.Context(), ownerFromContext(r.Context()), in.BusinessProcessID, in.Steps)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeData(w, r, http.StatusCreated, wf)
	}
}

type generateWorkflowRequest struct {
	BusinessProcessID model.BusinessProcessID `json:"businessProcessId"`
}

func generateRecoveryWorkflowHandler(uc *usecase.RecoveryUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in generateWorkflowRequest
		if err := decodeJSON(r, &in); err != nil {
			handleError(w, r, err)
			return
		}

		wf, err := uc.Generate(r.Context(), ownerFromContext(r.Context()), in.BusinessProcessID)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeData(w, r, http.StatusOK, wf)
	}
}

func getRecoveryWorkflowHandler(uc *usecase.RecoveryUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		wf, err := uc.Get(r.Context(), ownerFromContext(r.Context()), recoveryWorkflowID(r))
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeData(w, r, http.StatusOK, wf)
	}
}

func deleteRecoveryWorkflowHandler(uc *usecase.RecoveryUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := recoveryWorkflowID(r)
		if err := uc.Delete(r.Context(), ownerFromContext(r.Context()), id); err != nil {
			handleError(w, r, err)
			return
		}
		writeData(w, r, http.StatusOK, map[string]model.RecoveryWorkflowID{"id": id})
	}
}

func addRecoveryStepHandler(uc *usecase.RecoveryUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in usecase.RecoveryStepInput
		if err := decodeJSON(r, &in); err != nil {
			handleError(w, r, err)
			return
		}

		wf, err := uc.AddStep(r.Context(), ownerFromContext(r.Context()), recoveryWorkflowID(r), in)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeData(w, r, http.StatusOK, wf)
	}
}

func updateRecoveryStepHandler(uc *usecase.RecoveryUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		number, err := intParam(r, "number")
		if err != nil {
			handleError(w, r, err)
			return
		}
		var in usecase.RecoveryStepInput
		if err := decodeJSON(r, &in); err != nil {
			handleError(w, r, err)
			return
		}

		wf, err := uc.UpdateStep(r.Context(), ownerFromContext(r.Context()), recoveryWorkflowID(r), number, in)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeData(w, r, http.StatusOK, wf)
	}
}

func removeRecoveryStepHandler(uc *usecase.RecoveryUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		number, err := intParam(r, "number")
		if err != nil {
			handleError(w, r, err)
			return
		}

		wf, err := uc.RemoveStep(r.Context(), ownerFromContext(r.Context()), recoveryWorkflowID(r), number)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeData(w, r, http.StatusOK, wf)
	}
}
