package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
)

// ErrStepOutOfRange is returned when a step index does not exist in the workflow
var ErrStepOutOfRange = goerr.New("recovery step index out of range")

// RecoveryWorkflowID is a UUID-based identifier for RecoveryWorkflow
type RecoveryWorkflowID string

// NewRecoveryWorkflowID generates a new UUID v4 RecoveryWorkflowID
func NewRecoveryWorkflowID() RecoveryWorkflowID {
	return RecoveryWorkflowID(uuid.New().String())
}

// RecoveryStep is one ordered action in a recovery workflow
type RecoveryStep struct {
	StepNumber          int          `json:"stepNumber"`
	Description         string       `json:"description"`
	ResponsibleTeam     string       `json:"responsibleTeam"`
	EstimatedCompletion Duration     `json:"estimatedCompletionTime"`
	Dependencies        Dependencies `json:"dependencies"`
	AlternateStaff      []string     `json:"alternateStaff"`
}

// Clone returns a deep copy of the step
func (s RecoveryStep) Clone() RecoveryStep {
	c := s
	c.Dependencies = s.Dependencies.Clone()
	c.AlternateStaff = copyList(s.AlternateStaff)
	return c
}

// RecoveryWorkflow is the ordered recovery plan for one business process
type RecoveryWorkflow struct {
	ID                RecoveryWorkflowID `json:"id"`
	OwnerID           OwnerID            `json:"ownerId"`
	BusinessProcessID BusinessProcessID  `json:"businessProcessId"`
	Steps             []RecoveryStep     `json:"steps"`
	IsAutoGenerated   bool               `json:"isAutoGenerated"`
	CreatedAt         time.Time          `json:"createdAt"`
	UpdatedAt         time.Time          `json:"updatedAt"`
}

// Clone returns a deep copy of the workflow
func (w *RecoveryWorkflow) Clone() *RecoveryWorkflow {
	if w == nil {
		return nil
	}
	c := *w
	c.Steps = cloneSteps(w.Steps)
	return &c
}

// WithoutStep returns a copy with the step at index removed and the remaining
// steps renumbered contiguously from 1.
func (w *RecoveryWorkflow) WithoutStep(index int) (*RecoveryWorkflow, error) {
	if index < 0 || index >= len(w.Steps) {
		return nil, goerr.Wrap(ErrStepOutOfRange, "cannot remove step",
			goerr.V("index", index), goerr.V("length", len(w.Steps)))
	}

	out := w.Clone()
	out.Steps = append(out.Steps[:index], out.Steps[index+1:]...)
	out.IsAutoGenerated = false
	renumber(out.Steps)
	return out, nil
}

// WithStep returns a copy with the step at index replaced; the step number is kept
func (w *RecoveryWorkflow) WithStep(index int, step RecoveryStep) (*RecoveryWorkflow, error) {
	if index < 0 || index >= len(w.Steps) {
		return nil, goerr.Wrap(ErrStepOutOfRange, "cannot update step",
			goerr.V("index", index), goerr.V("length", len(w.Steps)))
	}

	out := w.Clone()
	out.Steps[index] = step.Clone()
	out.IsAutoGenerated = false
	renumber(out.Steps)
	return out, nil
}

// WithAddedStep returns a copy with step appended at the end
func (w *RecoveryWorkflow) WithAddedStep(step RecoveryStep) *RecoveryWorkflow {
	out := w.Clone()
	out.Steps = append(out.Steps, step.Clone())
	out.IsAutoGenerated = false
	renumber(out.Steps)
	return out
}

func renumber(steps []RecoveryStep) {
	for i := range steps {
		steps[i].StepNumber = i + 1
	}
}

func cloneSteps(steps []RecoveryStep) []RecoveryStep {
	out := make([]RecoveryStep, len(steps))
	for i, s := range steps {
		out[i] = s.Clone()
	}
	return out
}
