package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/bcplanner/pkg/domain/interfaces"
	"github.com/secmon-lab/bcplanner/pkg/domain/model"
	"github.com/secmon-lab/bcplanner/pkg/domain/types"
	"github.com/secmon-lab/bcplanner/pkg/repository/memory"
	"github.com/secmon-lab/bcplanner/pkg/usecase"
)

func rtoInput(bp model.BusinessProcessID, acceptable, achievable float64) usecase.RTORPOInput {
	return usecase.RTORPOInput{
		BusinessProcessID: bp,
		Type:              types.AnalysisTypeRecovery,
		Metric:            types.MetricRTO,
		AcceptableTime:    ptr(acceptable),
		AchievableTime:    ptr(achievable),
	}
}

func TestRTORPOUseCase_Save(t *testing.T) {
	ctx := context.Background()

	t.Run("gap is acceptable minus achievable", func(t *testing.T) {
		uc := usecase.New(memory.New())
		a, err := uc.RTORPO.Save(ctx, testOwner, rtoInput("bp-1", 4, 6))
		gt.NoError(t, err).Required()
		gt.Value(t, a.Gap).Equal(-2.0)
	})

	t.Run("same key twice keeps one record with latest values", func(t *testing.T) {
		uc := usecase.New(memory.New())
		first, err := uc.RTORPO.Save(ctx, testOwner, rtoInput("bp-1", 4, 6))
		gt.NoError(t, err).Required()
		second, err := uc.RTORPO.Save(ctx, testOwner, rtoInput("bp-1", 8, 2))
		gt.NoError(t, err).Required()
		gt.Value(t, second.ID).Equal(first.ID)

		list, err := uc.RTORPO.List(ctx, testOwner)
		gt.NoError(t, err).Required()
		gt.Array(t, list).Length(1)
		gt.Value(t, list[0].AcceptableTime).Equal(8.0)
		gt.Value(t, list[0].Gap).Equal(6.0)
	})

	t.Run("different metric is a separate record", func(t *testing.T) {
		uc := usecase.New(memory.New())
		_, err := uc.RTORPO.Save(ctx, testOwner, rtoInput("bp-1", 4, 6))
		gt.NoError(t, err).Required()
		in := rtoInput("bp-1", 1, 1)
		in.Metric = types.MetricRPO
		_, err = uc.RTORPO.Save(ctx, testOwner, in)
		gt.NoError(t, err).Required()

		list, err := uc.RTORPO.List(ctx, testOwner)
		gt.NoError(t, err).Required()
		gt.Array(t, list).Length(2)

		found, err := uc.RTORPO.Find(ctx, testOwner, model.RTORPOKey{
			BusinessProcessID: "bp-1", Type: types.AnalysisTypeRecovery, Metric: types.MetricRPO,
		})
		gt.NoError(t, err).Required()
		gt.Value(t, found.Gap).Equal(0.0)
	})

	t.Run("all fields are required together", func(t *testing.T) {
		uc := usecase.New(memory.New())
		in := rtoInput("bp-1", 4, 6)
		in.AchievableTime = nil
		_, err := uc.RTORPO.Save(ctx, testOwner, in)
		gt.Error(t, err).Is(usecase.ErrValidation)

		in = rtoInput("", 4, 6)
		_, err = uc.RTORPO.Save(ctx, testOwner, in)
		gt.Error(t, err).Is(usecase.ErrValidation)
	})

	t.Run("rejects negative times and unknown enums", func(t *testing.T) {
		uc := usecase.New(memory.New())
		_, err := uc.RTORPO.Save(ctx, testOwner, rtoInput("bp-1", -1, 6))
		gt.Error(t, err).Is(usecase.ErrValidation)

		in := rtoInput("bp-1", 4, 6)
		in.Type = "failback"
		_, err = uc.RTORPO.Save(ctx, testOwner, in)
		gt.Error(t, err).Is(usecase.ErrValidation)
	})
}

func TestRTORPOUseCase_Update(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New())

	a, err := uc.RTORPO.Save(ctx, testOwner, rtoInput("bp-1", 4, 6))
	gt.NoError(t, err).Required()

	t.Run("same key updates in place", func(t *testing.T) {
		updated, err := uc.RTORPO.Update(ctx, testOwner, a.ID, rtoInput("bp-1", 10, 6))
		gt.NoError(t, err).Required()
		gt.Value(t, updated.ID).Equal(a.ID)
		gt.Value(t, updated.Gap).Equal(4.0)
	})

	t.Run("key change moves the record", func(t *testing.T) {
		in := rtoInput("bp-1", 10, 6)
		in.Type = types.AnalysisTypeRepatriation
		_, err := uc.RTORPO.Update(ctx, testOwner, a.ID, in)
		gt.NoError(t, err).Required()

		list, err := uc.RTORPO.List(ctx, testOwner)
		gt.NoError(t, err).Required()
		gt.Array(t, list).Length(1)
		gt.Value(t, list[0].Type).Equal(types.AnalysisTypeRepatriation)
		gt.Value(t, list[0].ID).Equal(a.ID)
		gt.Bool(t, list[0].CreatedAt.Equal(a.CreatedAt)).True()
	})

	t.Run("other owner gets not found", func(t *testing.T) {
		_, err := uc.RTORPO.Update(ctx, "owner-2", a.ID, rtoInput("bp-1", 1, 1))
		gt.Error(t, err).Is(usecase.ErrNotFound)
	})
}

// failingRTORPORepo rejects every write
type failingRTORPORepo struct {
	interfaces.RTORPORepository
}

func (failingRTORPORepo) Upsert(ctx context.Context, owner model.OwnerID, a *model.RTORPOAnalysis) (*model.RTORPOAnalysis, error) {
	return nil, errStoreDown
}

func (failingRTORPORepo) Move(ctx context.Context, owner model.OwnerID, id model.RTORPOAnalysisID, a *model.RTORPOAnalysis) (*model.RTORPOAnalysis, error) {
	return nil, errStoreDown
}

type readOnlyRTORPORepo struct {
	*memory.Memory
}

func (r readOnlyRTORPORepo) RTORPO() interfaces.RTORPORepository {
	return failingRTORPORepo{r.Memory.RTORPO()}
}

func TestRTORPOUseCase_UpdateStoreFailureKeepsRecord(t *testing.T) {
	ctx := context.Background()
	mem := memory.New()

	a, err := usecase.New(mem).RTORPO.Save(ctx, testOwner, rtoInput("bp-1", 4, 6))
	gt.NoError(t, err).Required()

	uc := usecase.New(readOnlyRTORPORepo{mem})

	t.Run("key change", func(t *testing.T) {
		in := rtoInput("bp-2", 10, 6)
		_, err := uc.RTORPO.Update(ctx, testOwner, a.ID, in)
		gt.Error(t, err).Is(errStoreDown)
	})

	t.Run("same key", func(t *testing.T) {
		_, err := uc.RTORPO.Update(ctx, testOwner, a.ID, rtoInput("bp-1", 10, 6))
		gt.Error(t, err).Is(errStoreDown)
	})

	got, err := uc.RTORPO.Get(ctx, testOwner, a.ID)
	gt.NoError(t, err).Required()
	gt.Value(t, got.BusinessProcessID).Equal(model.BusinessProcessID("bp-1"))
	gt.Value(t, got.AcceptableTime).Equal(4.0)
}
