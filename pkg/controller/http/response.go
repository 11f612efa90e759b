package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bcplanner/pkg/usecase"
	"github.com/secmon-lab/bcplanner/pkg/utils/errutil"
	"github.com/secmon-lab/bcplanner/pkg/utils/logging"
	"github.com/secmon-lab/bcplanner/pkg/utils/safe"
)

// maxBodyBytes bounds JSON and CSV request bodies
const maxBodyBytes = 10 << 20

var (
	errAuthenticationRequired = errors.New("authentication required")
	errResourceNotFound       = errors.New("resource not found")
)

type envelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

func writeData(w http.ResponseWriter, r *http.Request, status int, data any) {
	body, err := json.Marshal(envelope{Success: true, Data: data})
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(r.Context(), w, body)
}

// handleError maps use case errors to status codes. Only validation messages
// reach the client verbatim.
func handleError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := r.Context()

	switch {
	case errors.Is(err, usecase.ErrNotAuthenticated):
		logging.From(ctx).Debug("request rejected", "error", err.Error())
		errutil.HandleHTTP(ctx, w, errAuthenticationRequired, http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrNotFound):
		logging.From(ctx).Debug("record not found", "error", err.Error())
		errutil.HandleHTTP(ctx, w, errResourceNotFound, http.StatusNotFound)
	case errors.Is(err, usecase.ErrValidation):
		errutil.HandleHTTP(ctx, w, err, http.StatusBadRequest)
	default:
		errutil.HandleHTTP(ctx, w, err, http.StatusInternalServerError)
	}
}

func decodeJSON(r *http.Request, v any) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := decoder.Decode(v); err != nil {
		return goerr.Wrap(usecase.ErrValidation, "request body is not valid JSON", goerr.V("error", err.Error()))
	}
	return nil
}

func intParam(r *http.Request, name string) (int, error) {
	raw := chi.URLParam(r, name)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, goerr.Wrap(usecase.ErrValidation, name+" must be an integer", goerr.V(name, raw))
	}
	return n, nil
}
