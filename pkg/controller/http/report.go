package http

import (
	"net/http"
	"strconv"

	"github.com/secmon-lab/bcplanner/pkg/domain/types"
	"github.com/secmon-lab/bcplanner/pkg/usecase"
	"github.com/secmon-lab/bcplanner/pkg/utils/safe"
)

func getMaturityHandler(uc *usecase.MaturityUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, err := uc.Get(r.Context(), ownerFromContext(r.Context()))
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeData(w, r, http.StatusOK, sc)
	}
}

type saveMaturityRequest struct {
	Scores map[types.MaturityDimension]string `json:"scores"`
}

func saveMaturityHandler(uc *usecase.MaturityUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in saveMaturityRequest
		if err := decodeJSON(r, &in); err != nil {
			handleError(w, r, err)
			return
		}

		sc, err := uc.Save(r.Context(), ownerFromContext(r.Context()), in.Scores)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeData(w, r, http.StatusOK, sc)
	}
}

func deleteMaturityHandler(uc *usecase.MaturityUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := uc.Delete(r.Context(), ownerFromContext(r.Context())); err != nil {
			handleError(w, r, err)
			return
		}
		writeData(w, r, http.StatusOK, nil)
	}
}

// dashboardHandler serves the summary metrics of the owner's bundle. Partial
// aggregation is reported through warnings, not as an error.
func dashboardHandler(uc *usecase.AggregateUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bundle, err := uc.Aggregate(r.Context(), ownerFromContext(r.Context()))
		if err != nil {
			handleError(w, r, err)
			return
		}

		writeData(w, r, http.StatusOK, map[string]any{
			"summary":     bundle.Summary,
			"generatedAt": bundle.GeneratedAt,
			"warnings":    bundle.Warnings,
		})
	}
}

func reportHandler(uc *usecase.ReportUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rep, err := uc.Generate(r.Context(), ownerFromContext(r.Context()))
		if err != nil {
			handleError(w, r, err)
			return
		}

		w.Header().Set("Content-Type", rep.ContentType)
		w.Header().Set("Content-Disposition", `attachment; filename="`+rep.Filename+`"`)
		w.Header().Set("Content-Length", strconv.Itoa(len(rep.Data)))
		w.WriteHeader(http.StatusOK)
		safe.Write(r.Context(), w, rep.Data)
	}
}
