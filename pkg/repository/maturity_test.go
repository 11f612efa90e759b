package repository_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/bcplanner/pkg/domain/model"
	"github.com/secmon-lab/bcplanner/pkg/domain/types"
)

func TestMaturityRepository(t *testing.T) {
	runAllBackends(t, func(t *testing.T, newRepo repoFactory) {
		t.Run("single scorecard per owner", func(t *testing.T) {
			repo := newRepo(t)
			ctx := context.Background()
			owner := newOwner(t)

			_, err := repo.Maturity().Get(ctx, owner)
			gt.Bool(t, isNotFound(err)).True()

			first, err := repo.Maturity().Put(ctx, owner, &model.MaturityScorecard{
				Scores:               map[types.MaturityDimension]string{types.MaturityBCPPolicy: "7"},
				OverallMaturityScore: 0.2,
			})
			gt.NoError(t, err).Required()

			second, err := repo.Maturity().Put(ctx, owner, &model.MaturityScorecard{
				Scores: map[types.MaturityDimension]string{
					types.MaturityBCPPolicy:  "8",
					types.MaturityDataBackup: "10",
				},
				OverallMaturityScore: 0.51,
			})
			gt.NoError(t, err).Required()
			gt.Bool(t, second.CreatedAt.Equal(first.CreatedAt)).True()

			got, err := repo.Maturity().Get(ctx, owner)
			gt.NoError(t, err).Required()
			gt.Value(t, got.Scores[types.MaturityBCPPolicy]).Equal("8")
			gt.Value(t, got.Scores[types.MaturityDataBackup]).Equal("10")
			gt.Value(t, got.OverallMaturityScore).Equal(0.51)

			_, err = repo.Maturity().Get(ctx, owner+"-other")
			gt.Bool(t, isNotFound(err)).True()
		})

		t.Run("Delete", func(t *testing.T) {
			repo := newRepo(t)
			ctx := context.Background()
			owner := newOwner(t)

			_, err := repo.Maturity().Put(ctx, owner, &model.MaturityScorecard{})
			gt.NoError(t, err).Required()
			gt.NoError(t, repo.Maturity().Delete(ctx, owner)).Required()

			err = repo.Maturity().Delete(ctx, owner)
			gt.Bool(t, isNotFound(err)).True()
		})
	})
}
