package usecase

import (
	"errors"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bcplanner/pkg/domain/interfaces"
	"github.com/secmon-lab/bcplanner/pkg/domain/model"
)

// Sentinel errors for use case layer. Callers classify errors with errors.Is.
var (
	// ErrNotAuthenticated means no owner could be resolved for the request
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrNotFound means the referenced record does not exist for the owner
	ErrNotFound = errors.New("not found")
	// ErrValidation means the input was rejected; the message is safe to show
	ErrValidation = errors.New("invalid input")
	// ErrUpstream means an entity store or other dependency failed
	ErrUpstream = errors.New("upstream failure")
)

// Context keys for error values
const (
	OwnerIDKey           = "owner_id"
	BusinessProcessIDKey = "business_process_id"
	ImpactAnalysisIDKey  = "impact_analysis_id"
	RTORPOAnalysisIDKey  = "rto_rpo_analysis_id"
	RecoveryWorkflowKey  = "recovery_workflow_id"
)

// classify joins a use case sentinel into the chain of err so that both the
// sentinel and the original cause remain reachable through errors.Is/As.
func classify(sentinel, err error) error {
	return fmt.Errorf("%w: %w", sentinel, err)
}

// storeError translates an entity store error. Not-found from any backend
// becomes ErrNotFound, everything else ErrUpstream.
func storeError(err error, msg string, opts ...goerr.Option) error {
	if errors.Is(err, interfaces.ErrNotFound) {
		return goerr.Wrap(classify(ErrNotFound, err), msg, opts...)
	}
	return goerr.Wrap(classify(ErrUpstream, err), msg, opts...)
}

// invalid wraps a domain validation error as ErrValidation
func invalid(err error, msg string, opts ...goerr.Option) error {
	return goerr.Wrap(classify(ErrValidation, err), msg, opts...)
}

func requireOwner(owner model.OwnerID) error {
	if err := owner.Validate(); err != nil {
		return goerr.Wrap(classify(ErrNotAuthenticated, err), "owner is not resolved")
	}
	return nil
}
