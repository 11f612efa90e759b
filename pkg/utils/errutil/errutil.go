package errutil

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bcplanner/pkg/utils/logging"
)

// Handle logs the error with a message and forwards it to Sentry when a client is
// configured. The error is returned unchanged so callers can keep propagating it.
func Handle(ctx context.Context, err error, msg string) error {
	if err == nil {
		return nil
	}

	logger := logging.From(ctx)

	var ge *goerr.Error
	if errors.As(err, &ge) {
		logger.Error(msg,
			"error", err.Error(),
			"values", ge.Values(),
			"stack", ge.Stacks(),
		)
	} else {
		logger.Error(msg, "error", err.Error())
	}

	capture(ctx, err, ge)
	return err
}

func capture(ctx context.Context, err error, ge *goerr.Error) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	if hub.Client() == nil {
		return
	}

	hub.WithScope(func(scope *sentry.Scope) {
		if ge != nil {
			scope.SetContext("goerr", sentry.Context(ge.Values()))
		}
		hub.CaptureException(err)
	})
}

// errorEnvelope is the JSON body of every failed API response
type errorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// HandleHTTP writes the JSON error envelope. Server errors are logged with
// their full context and forwarded to Sentry, and the client only receives a
// generic message. Client errors carry the error message and are logged at
// warn level.
func HandleHTTP(ctx context.Context, w http.ResponseWriter, err error, statusCode int) {
	if err == nil {
		return
	}

	msg := err.Error()
	if statusCode >= http.StatusInternalServerError {
		_ = Handle(ctx, err, "HTTP error")
		msg = http.StatusText(statusCode)
	} else {
		logging.From(ctx).Warn("HTTP client error", "status", statusCode, "error", msg)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errorEnvelope{Success: false, Error: msg})
}
