package http

import (
	"io"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bcplanner/pkg/domain/model"
	"github.com/secmon-lab/bcplanner/pkg/domain/types"
	"github.com/secmon-lab/bcplanner/pkg/usecase"
)

func businessProcessID(r *http.Request) model.BusinessProcessID {
	return model.BusinessProcessID(chi.URLParam(r, "id"))
}

func listBusinessProcessesHandler(uc *usecase.BusinessProcessUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := uc.List(r.Context(), ownerFromContext(r.Context()))
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeData(w, r, http.StatusOK, list)
	}
}

func createBusinessProcessHandler(uc *usecase.BusinessProcessUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in usecase.BusinessProcessInput
		if err := decodeJSON(r, &in); err != nil {
			handleError(w, r, err)
			return
		}

		bp, err := uc.Create(r.Context(), ownerFromContext(r.Context()), in)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeData(w, r, http.StatusCreated, bp)
	}
}

func getBusinessProcessHandler(uc *usecase.BusinessProcessUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bp, err := uc.Get(r.Context(), ownerFromContext(r.Context()), businessProcessID(r))
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeData(w, r, http.StatusOK, bp)
	}
}

func updateBusinessProcessHandler(uc *usecase.BusinessProcessUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in usecase.BusinessProcessInput
		if err := decodeJSON(r, &in); err != nil {
			handleError(w, r, err)
			return
		}

		bp, err := uc.Update(r.Context(), ownerFromContext(r.Context()), businessProcessID(r), in)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeData(w, r, http.StatusOK, bp)
	}
}

func deleteBusinessProcessHandler(uc *usecase.BusinessProcessUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := businessProcessID(r)
		if err := uc.Delete(r.Context(), ownerFromContext(r.Context()), id); err != nil {
			handleError(w, r, err)
			return
		}
		writeData(w, r, http.StatusOK, map[string]model.BusinessProcessID{"id": id})
	}
}

// importBusinessProcessesHandler accepts either a JSON array of flat records
// or a CSV document with a header row, selected by Content-Type
func importBusinessProcessesHandler(uc *usecase.BusinessProcessUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := io.LimitReader(r.Body, maxBodyBytes)

		var (
			records []usecase.ImportRecord
			err     error
		)
		mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
		switch mediaType {
		case "text/csv":
			records, err = usecase.ParseImportCSV(body)
		case "application/json", "":
			records, err = usecase.ParseImportJSON(body)
		default:
			err = goerr.Wrap(usecase.ErrValidation, "unsupported import content type", goerr.V("content_type", mediaType))
		}
		if err != nil {
			handleError(w, r, err)
			return
		}

		result, err := uc.Import(r.Context(), ownerFromContext(r.Context()), records)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeData(w, r, http.StatusCreated, result)
	}
}

type dependencyValue struct {
	Value string `json:"value"`
}

func dependencyCategory(r *http.Request) types.DependencyCategory {
	return types.DependencyCategory(chi.URLParam(r, "category"))
}

func appendDependencyHandler(uc *usecase.BusinessProcessUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in dependencyValue
		if err := decodeJSON(r, &in); err != nil {
			handleError(w, r, err)
			return
		}

		bp, err := uc.AppendDependency(r.Context(), ownerFromContext(r.Context()), businessProcessID(r), dependencyCategory(r), in.Value)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeData(w, r, http.StatusOK, bp)
	}
}

func replaceDependencyHandler(uc *usecase.BusinessProcessUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, err := intParam(r, "index")
		if err != nil {
			handleError(w, r, err)
			return
		}
		var in dependencyValue
		if err := decodeJSON(r, &in); err != nil {
			handleError(w, r, err)
			return
		}

		bp, err := uc.ReplaceDependency(r.Context(), ownerFromContext(r.Context()), businessProcessID(r), dependencyCategory(r), index, in.Value)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeData(w, r, http.StatusOK, bp)
	}
}

func removeDependencyHandler(uc *usecase.BusinessProcessUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, err := intParam(r, "index")
		if err != nil {
			handleError(w, r, err)
			return
		}

		bp, err := uc.RemoveDependency(r.Context(), ownerFromContext(r.Context()), businessProcessID(r), dependencyCategory(r), index)
		if err != nil {
			handleError(w, r, err)
			return
		}
		writeData(w, r, http.StatusOK, bp)
	}
}
