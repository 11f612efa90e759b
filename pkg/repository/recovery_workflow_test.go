package repository_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/bcplanner/pkg/domain/model"
)

func TestRecoveryWorkflowRepository(t *testing.T) {
	runAllBackends(t, func(t *testing.T, newRepo repoFactory) {
		t.Run("Put replaces workflow of the same process", func(t *testing.T) {
			repo := newRepo(t)
			ctx := context.Background()
			owner := newOwner(t)

			first, err := repo.RecoveryWorkflow().Put(ctx, owner, &model.RecoveryWorkflow{
				BusinessProcessID: "bp-1",
				IsAutoGenerated:   true,
				Steps: []model.RecoveryStep{
					{StepNumber: 1, Description: "Notify", EstimatedCompletion: model.Hours(1)},
					{StepNumber: 2, Description: "Daily sync", EstimatedCompletion: model.Qualitative("Ongoing (Daily)")},
				},
			})
			gt.NoError(t, err).Required()

			second, err := repo.RecoveryWorkflow().Put(ctx, owner, &model.RecoveryWorkflow{
				BusinessProcessID: "bp-1",
				Steps:             []model.RecoveryStep{{StepNumber: 1, Description: "Only step"}},
			})
			gt.NoError(t, err).Required()
			gt.Value(t, second.ID).Equal(first.ID)

			list, err := repo.RecoveryWorkflow().List(ctx, owner)
			gt.NoError(t, err).Required()
			gt.Array(t, list).Length(1)
			gt.Array(t, list[0].Steps).Length(1)
			gt.Bool(t, list[0].IsAutoGenerated).False()
		})

		t.Run("steps round trip with tagged durations", func(t *testing.T) {
			repo := newRepo(t)
			ctx := context.Background()
			owner := newOwner(t)

			_, err := repo.RecoveryWorkflow().Put(ctx, owner, &model.RecoveryWorkflow{
				BusinessProcessID: "bp-2",
				Steps: []model.RecoveryStep{
					{
						StepNumber:          1,
						Description:         "Restore ERP",
						EstimatedCompletion: model.Hours(4),
						Dependencies:        model.Dependencies{ITApplications: []string{"ERP"}},
						AlternateStaff:      []string{"Backup Admin"},
					},
					{StepNumber: 2, Description: "Meet", EstimatedCompletion: model.Qualitative("Ongoing (Daily)")},
				},
			})
			gt.NoError(t, err).Required()

			got, err := repo.RecoveryWorkflow().GetByBusinessProcess(ctx, owner, "bp-2")
			gt.NoError(t, err).Required()
			gt.Array(t, got.Steps).Length(2)
			gt.Value(t, got.Steps[0].EstimatedCompletion).Equal(model.Hours(4))
			gt.Value(t, got.Steps[1].EstimatedCompletion).Equal(model.Qualitative("Ongoing (Daily)"))
			gt.Array(t, got.Steps[0].Dependencies.ITApplications).Length(1)
			gt.Bool(t, got.Steps[1].Dependencies.People != nil).True()
			gt.Array(t, got.Steps[0].AlternateStaff).Length(1)
		})

		t.Run("Get and Delete by ID", func(t *testing.T) {
			repo := newRepo(t)
			ctx := context.Background()
			owner := newOwner(t)

			created, err := repo.RecoveryWorkflow().Put(ctx, owner, &model.RecoveryWorkflow{BusinessProcessID: "bp-3"})
			gt.NoError(t, err).Required()

			got, err := repo.RecoveryWorkflow().Get(ctx, owner, created.ID)
			gt.NoError(t, err).Required()
			gt.Value(t, got.BusinessProcessID).Equal(model.BusinessProcessID("bp-3"))

			_, err = repo.RecoveryWorkflow().Get(ctx, owner+"-other", created.ID)
			gt.Bool(t, isNotFound(err)).True()

			gt.NoError(t, repo.RecoveryWorkflow().Delete(ctx, owner, created.ID)).Required()
			_, err = repo.RecoveryWorkflow().GetByBusinessProcess(ctx, owner, "bp-3")
			gt.Bool(t, isNotFound(err)).True()
		})

		t.Run("Put without business process fails", func(t *testing.T) {
			repo := newRepo(t)
			_, err := repo.RecoveryWorkflow().Put(context.Background(), newOwner(t), &model.RecoveryWorkflow{})
			gt.Error(t, err)
		})
	})
}
