package repository_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/bcplanner/pkg/domain/model"
	"github.com/secmon-lab/bcplanner/pkg/domain/types"
)

func TestImpactAnalysisRepository(t *testing.T) {
	runAllBackends(t, func(t *testing.T, newRepo repoFactory) {
		t.Run("round trip keeps inputs and scores", func(t *testing.T) {
			repo := newRepo(t)
			ctx := context.Background()
			owner := newOwner(t)

			expected := 4.0
			created, err := repo.ImpactAnalysis().Create(ctx, owner, &model.ImpactAnalysis{
				BusinessProcessID: "bp-1",
				ImpactInput: model.ImpactInput{
					Criticality:    types.CriticalityHigh,
					RevenueLoss:    250000,
					CustomerImpact: types.ImpactLevelSevere,
					ExpectedRTO:    &expected,
				},
				ImpactScore: model.ImpactScore{
					Mode:         types.ScoringModeStepTable,
					OverallScore: 2.5,
					Tier:         types.TierSilver,
				},
			})
			gt.NoError(t, err).Required()

			got, err := repo.ImpactAnalysis().Get(ctx, owner, created.ID)
			gt.NoError(t, err).Required()
			gt.Value(t, got.Criticality).Equal(types.CriticalityHigh)
			gt.Value(t, got.RevenueLoss).Equal(250000.0)
			gt.Value(t, got.CustomerImpact).Equal(types.ImpactLevelSevere)
			gt.Value(t, got.OverallScore).Equal(2.5)
			gt.Value(t, got.Tier).Equal(types.TierSilver)
			gt.Value(t, got.ExpectedRTO).NotNil()
			gt.Value(t, *got.ExpectedRTO).Equal(4.0)
			gt.Value(t, got.ActualRTO).Nil()
		})

		t.Run("List, Update and Delete", func(t *testing.T) {
			repo := newRepo(t)
			ctx := context.Background()
			owner := newOwner(t)

			a, err := repo.ImpactAnalysis().Create(ctx, owner, &model.ImpactAnalysis{ProcessName: "standalone"})
			gt.NoError(t, err).Required()
			_, err = repo.ImpactAnalysis().Create(ctx, owner, &model.ImpactAnalysis{BusinessProcessID: "bp-2"})
			gt.NoError(t, err).Required()

			list, err := repo.ImpactAnalysis().List(ctx, owner)
			gt.NoError(t, err).Required()
			gt.Array(t, list).Length(2)

			a.OverallScore = 3.25
			updated, err := repo.ImpactAnalysis().Update(ctx, owner, a)
			gt.NoError(t, err).Required()
			gt.Value(t, updated.OverallScore).Equal(3.25)

			gt.NoError(t, repo.ImpactAnalysis().Delete(ctx, owner, a.ID)).Required()
			_, err = repo.ImpactAnalysis().Get(ctx, owner, a.ID)
			gt.Bool(t, isNotFound(err)).True()
		})

		t.Run("cross-owner access is not found", func(t *testing.T) {
			repo := newRepo(t)
			ctx := context.Background()
			owner := newOwner(t)

			a, err := repo.ImpactAnalysis().Create(ctx, owner, &model.ImpactAnalysis{})
			gt.NoError(t, err).Required()

			err = repo.ImpactAnalysis().Delete(ctx, owner+"-other", a.ID)
			gt.Bool(t, isNotFound(err)).True()
		})
	})
}
