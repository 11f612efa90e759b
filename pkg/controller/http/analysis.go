package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/secmon-lab/bcplanner/pkg/domain/model"
	"github.com/secmon-lab/bcplanner/pkg/usecase"
)

func listImpactAnalysesHandler(uc *usecase.ImpactUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := uc.List(r.Context(), ownerFromContext(r.Context()))
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeData(w, r, http.StatusOK, list)
	}
}

func createImpactAnalysisHandler(uc *usecase.ImpactUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in usecase.ImpactAnalysisInput
		if err := decodeJSON(r, &in); err != nil {
			handleError(w, r, err)
			return
		}

		ia, err := uc.Create(r.Context(), ownerFromContext(r.Context()), in)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeData(w, r, http.StatusCreated, ia)
	}
}

func getImpactAnalysisHandler(uc *usecase.ImpactUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := model.ImpactAnalysisID(chi.URLParam(r, "id"))
		ia, err := uc.Get(r.Context(), ownerFromContext(r.Context()), id)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeData(w, r, http.StatusOK, ia)
	}
}

func updateImpactAnalysisHandler(uc *usecase.ImpactUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in usecase.ImpactAnalysisInput
		if err := decodeJSON(r, &in); err != nil {
			handleError(w, r, err)
			return
		}

		id := model.ImpactAnalysisID(chi.URLParam(r, "id"))
		ia, err := uc.Update(r.Context(), ownerFromContext(r.Context()), id, in)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeData(w, r, http.StatusOK, ia)
	}
}

func deleteImpactAnalysisHandler(uc *usecase.ImpactUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := model.ImpactAnalysisID(chi.URLParam(r, "id"))
		if err := uc.Delete(r.Context(), ownerFromContext(r.Context()), id); err != nil {
			handleError(w, r, err)
			return
		}
		writeData(w, r, http.StatusOK, map[string]model.ImpactAnalysisID{"id": id})
	}
}

func listRTORPOHandler(uc *usecase.RTORPOUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := uc.List(r.Context(), ownerFromContext(r.Context()))
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeData(w, r, http.StatusOK, list)
	}
}

// saveRTORPOHandler upserts on (businessProcessId, type, metric)
func saveRTORPOHandler(uc *usecase.RTORPOUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in usecase.RTORPOInput
		if err := decodeJSON(r, &in); err != nil {
			handleError(w, r, err)
			return
		}

		a, err := uc.Save(r.Context(), ownerFromContext(r.Context()), in)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeData(w, r, http.StatusOK, a)
	}
}

func getRTORPOHandler(uc *usecase.RTORPOUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := model.RTORPOAnalysisID(chi.URLParam(r, "id"))
		a, err := uc.Get(r.Context(), ownerFromContext(r.Context()), id)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeData(w, r, http.StatusOK, a)
	}
}

func updateRTORPOHandler(uc *usecase.RTORPOUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in usecase.RTORPOInput
		if err := decodeJSON(r, &in); err != nil {
			handleError(w, r, err)
			return
		}

		id := model.RTORPOAnalysisID(chi.URLParam(r, "id"))
		a, err := uc.Update(r.Context(), ownerFromContext(r.Context()), id, in)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeData(w, r, http.StatusOK, a)
	}
}

func deleteRTORPOHandler(uc *usecase.RTORPOUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := model.RTORPOAnalysisID(chi.URLParam(r, "id"))
		if err := uc.Delete(r.Context(), ownerFromContext(r.Context()), id); err != nil {
			handleError(w, r, err)
			return
		}
		writeData(w, r, http.StatusOK, map[string]model.RTORPOAnalysisID{"id": id})
	}
}
