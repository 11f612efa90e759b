package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/bcplanner/pkg/domain/model"
	"github.com/secmon-lab/bcplanner/pkg/repository/memory"
	"github.com/secmon-lab/bcplanner/pkg/service/recovery"
	"github.com/secmon-lab/bcplanner/pkg/usecase"
)

func assertContiguous(t *testing.T, steps []model.RecoveryStep) {
	t.Helper()
	for i, s := range steps {
		gt.Value(t, s.StepNumber).Equal(i + 1)
	}
}

func TestRecoveryUseCase_Generate(t *testing.T) {
	ctx := context.Background()

	t.Run("generates fixed and per-dependency steps", func(t *testing.T) {
		uc := usecase.New(memory.New())
		bp := newBusinessProcess(t, uc, "Payroll")

		wf, err := uc.Recovery.Generate(ctx, testOwner, bp.ID)
		gt.NoError(t, err).Required()
		gt.Bool(t, wf.IsAutoGenerated).True()
		gt.Value(t, wf.BusinessProcessID).Equal(bp.ID)
		gt.Array(t, wf.Steps).Length(recovery.FixedStepCount() + bp.Dependencies.Count())
		assertContiguous(t, wf.Steps)
	})

	t.Run("regeneration replaces the workflow", func(t *testing.T) {
		uc := usecase.New(memory.New())
		bp := newBusinessProcess(t, uc, "Payroll")

		first, err := uc.Recovery.Generate(ctx, testOwner, bp.ID)
		gt.NoError(t, err).Required()
		second, err := uc.Recovery.Generate(ctx, testOwner, bp.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, second.ID).Equal(first.ID)
		gt.Value(t, second.Steps).Equal(first.Steps)

		list, err := uc.Recovery.List(ctx, testOwner)
		gt.NoError(t, err).Required()
		gt.Array(t, list).Length(1)
	})

	t.Run("missing process writes nothing", func(t *testing.T) {
		uc := usecase.New(memory.New())
		_, err := uc.Recovery.Generate(ctx, testOwner, "missing")
		gt.Error(t, err).Is(usecase.ErrNotFound)

		list, err := uc.Recovery.List(ctx, testOwner)
		gt.NoError(t, err).Required()
		gt.Array(t, list).Length(0)
	})

	t.Run("other owner's process is not found", func(t *testing.T) {
		uc := usecase.New(memory.New())
		bp := newBusinessProcess(t, uc, "Payroll")
		_, err := uc.Recovery.Generate(ctx, "owner-2", bp.ID)
		gt.Error(t, err).Is(usecase.ErrNotFound)
	})
}

func TestRecoveryUseCase_EditSteps(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New())
	bp := newBusinessProcess(t, uc, "Payroll")
	wf, err := uc.Recovery.Generate(ctx, testOwner, bp.ID)
	gt.NoError(t, err).Required()
	total := len(wf.Steps)

	t.Run("remove renumbers contiguously", func(t *testing.T) {
		edited, err := uc.Recovery.RemoveStep(ctx, testOwner, wf.ID, 2)
		gt.NoError(t, err).Required()
		gt.Array(t, edited.Steps).Length(total - 1)
		gt.Value(t, edited.Steps[1].Description).Equal(wf.Steps[2].Description)
		gt.Bool(t, edited.IsAutoGenerated).False()
		assertContiguous(t, edited.Steps)
	})

	t.Run("add appends with next number", func(t *testing.T) {
		edited, err := uc.Recovery.AddStep(ctx, testOwner, wf.ID, usecase.RecoveryStepInput{
			Description:         "Call insurer",
			ResponsibleTeam:     "Finance",
			EstimatedCompletion: model.Hours(2),
		})
		gt.NoError(t, err).Required()
		last := edited.Steps[len(edited.Steps)-1]
		gt.Value(t, last.StepNumber).Equal(len(edited.Steps))
		gt.Value(t, last.Description).Equal("Call insurer")
		gt.Bool(t, last.Dependencies.People != nil).True()
	})

	t.Run("update keeps position", func(t *testing.T) {
		edited, err := uc.Recovery.UpdateStep(ctx, testOwner, wf.ID, 1, usecase.RecoveryStepInput{
			Description: "Notify the crisis team by phone",
		})
		gt.NoError(t, err).Required()
		gt.Value(t, edited.Steps[0].StepNumber).Equal(1)
		gt.Value(t, edited.Steps[0].Description).Equal("Notify the crisis team by phone")
	})

	t.Run("out of range step is a validation error", func(t *testing.T) {
		_, err := uc.Recovery.RemoveStep(ctx, testOwner, wf.ID, 0)
		gt.Error(t, err).Is(usecase.ErrValidation)
		_, err = uc.Recovery.UpdateStep(ctx, testOwner, wf.ID, 1000, usecase.RecoveryStepInput{Description: "x"})
		gt.Error(t, err).Is(usecase.ErrValidation)
	})

	t.Run("empty description is rejected", func(t *testing.T) {
		_, err := uc.Recovery.AddStep(ctx, testOwner, wf.ID, usecase.RecoveryStepInput{})
		gt.Error(t, err).Is(usecase.ErrValidation)
	})

	t.Run("lookup by business process", func(t *testing.T) {
		got, err := uc.Recovery.GetByBusinessProcess(ctx, testOwner, bp.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, got.ID).Equal(wf.ID)
	})

	t.Run("delete", func(t *testing.T) {
		gt.NoError(t, uc.Recovery.Delete(ctx, testOwner, wf.ID)).Required()
		_, err := uc.Recovery.Get(ctx, testOwner, wf.ID)
		gt.Error(t, err).Is(usecase.ErrNotFound)
	})
}

func TestRecoveryUseCase_Save(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New())
	bp := newBusinessProcess(t, uc, "Payroll")

	wf, err := uc.Recovery.Save(ctx, testOwner, bp.ID, []usecase.RecoveryStepInput{
		{Description: "First", EstimatedCompletion: model.Hours(1)},
		{Description: "Second", EstimatedCompletion: model.Qualitative("Ongoing")},
	})
	gt.NoError(t, err).Required()
	gt.Bool(t, wf.IsAutoGenerated).False()
	gt.Array(t, wf.Steps).Length(2)
	assertContiguous(t, wf.Steps)

	_, err = uc.Recovery.Save(ctx, testOwner, "missing", nil)
	gt.Error(t, err).Is(usecase.ErrNotFound)
}
