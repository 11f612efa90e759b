package usecase_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/bcplanner/pkg/domain/model"
	"github.com/secmon-lab/bcplanner/pkg/domain/model/config"
	"github.com/secmon-lab/bcplanner/pkg/domain/types"
	"github.com/secmon-lab/bcplanner/pkg/repository/memory"
	"github.com/secmon-lab/bcplanner/pkg/usecase"
)

func ptr(v float64) *float64 { return &v }

func severeInput() model.ImpactInput {
	return model.ImpactInput{
		Criticality:           types.CriticalityCritical,
		RevenueLoss:           600000,
		ProductivityLoss:      250000,
		OperatingCostIncrease: 100000,
		FinancialPenalties:    1000000,
		CustomerImpact:        types.ImpactLevelSevere,
		StaffImpact:           types.ImpactLevelSevere,
		PartnerImpact:         types.ImpactLevelSevere,
		ComplianceImpact:      types.ImpactLevelSevere,
		SafetyImpact:          types.ImpactLevelSevere,
		ExpectedRTO:           ptr(24),
		ActualRTO:             ptr(36),
		ExpectedRPO:           ptr(4),
		ActualRPO:             ptr(4),
	}
}

func TestImpactUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("scores with step tables at save time", func(t *testing.T) {
		uc := usecase.New(memory.New())
		ia, err := uc.Impact.Create(ctx, testOwner, usecase.ImpactAnalysisInput{
			BusinessProcessID: "bp-1",
			ImpactInput:       severeInput(),
		})
		gt.NoError(t, err).Required()
		gt.Value(t, ia.Mode).Equal(types.ScoringModeStepTable)
		gt.Value(t, ia.OverallScore).Equal(4.0)
		gt.Value(t, ia.Tier).Equal(types.TierGold)
		gt.Value(t, ia.RTOGap).Equal(12.0)
		gt.Value(t, ia.RPOGap).Equal(0.0)

		stored, err := uc.Impact.Get(ctx, testOwner, ia.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, stored.OverallScore).Equal(4.0)
	})

	t.Run("linear mode computes total impact only", func(t *testing.T) {
		uc := usecase.New(memory.New())
		ia, err := uc.Impact.Create(ctx, testOwner, usecase.ImpactAnalysisInput{
			Mode: types.ScoringModeLinear,
			ImpactInput: model.ImpactInput{
				FinancialImpact:   1000,
				ReputationImpact:  2,
				OperationalImpact: 3,
				DowntimeHours:     4,
				CostPerHour:       100,
			},
		})
		gt.NoError(t, err).Required()
		gt.Value(t, ia.Mode).Equal(types.ScoringModeLinear)
		gt.Value(t, ia.TotalImpact).Equal(1000.0 + 2000 + 1500 + 400)
		gt.Value(t, ia.OverallScore).Equal(0.0)
		gt.Value(t, ia.Tier).Equal(types.Tier(""))
	})

	t.Run("configured default mode applies when none is given", func(t *testing.T) {
		cfg := config.DefaultScoringConfig()
		cfg.Mode = types.ScoringModeLinear
		uc := usecase.New(memory.New(), usecase.WithScoringConfig(cfg))
		ia, err := uc.Impact.Create(ctx, testOwner, usecase.ImpactAnalysisInput{
			ImpactInput: model.ImpactInput{FinancialImpact: 10},
		})
		gt.NoError(t, err).Required()
		gt.Value(t, ia.Mode).Equal(types.ScoringModeLinear)
		gt.Value(t, ia.TotalImpact).Equal(10.0)
	})

	t.Run("rejects unknown impact level", func(t *testing.T) {
		uc := usecase.New(memory.New())
		_, err := uc.Impact.Create(ctx, testOwner, usecase.ImpactAnalysisInput{
			ImpactInput: model.ImpactInput{CustomerImpact: "catastrophic"},
		})
		gt.Error(t, err).Is(usecase.ErrValidation)
	})

	t.Run("rejects a partial set of recovery objectives", func(t *testing.T) {
		uc := usecase.New(memory.New())
		_, err := uc.Impact.Create(ctx, testOwner, usecase.ImpactAnalysisInput{
			ImpactInput: model.ImpactInput{ExpectedRTO: ptr(24)},
		})
		gt.Error(t, err).Is(usecase.ErrValidation)

		list, err := uc.Impact.List(ctx, testOwner)
		gt.NoError(t, err).Required()
		gt.Array(t, list).Length(0)
	})

	t.Run("rejects unknown scoring mode", func(t *testing.T) {
		uc := usecase.New(memory.New())
		_, err := uc.Impact.Create(ctx, testOwner, usecase.ImpactAnalysisInput{Mode: "magic"})
		gt.Error(t, err).Is(usecase.ErrValidation)
	})
}

func TestImpactUseCase_Update(t *testing.T) {
	ctx := context.Background()
	uc := usecase.New(memory.New())

	ia, err := uc.Impact.Create(ctx, testOwner, usecase.ImpactAnalysisInput{ImpactInput: severeInput()})
	gt.NoError(t, err).Required()

	updated, err := uc.Impact.Update(ctx, testOwner, ia.ID, usecase.ImpactAnalysisInput{
		ProcessName: "Standalone",
	})
	gt.NoError(t, err).Required()
	gt.Value(t, updated.ID).Equal(ia.ID)
	gt.Value(t, updated.OverallScore).Equal(0.0)
	gt.Value(t, updated.Tier).Equal(types.TierNonCritical)
	gt.Value(t, updated.ProcessName).Equal("Standalone")

	_, err = uc.Impact.Update(ctx, "owner-2", ia.ID, usecase.ImpactAnalysisInput{})
	gt.Error(t, err).Is(usecase.ErrNotFound)

	gt.NoError(t, uc.Impact.Delete(ctx, testOwner, ia.ID)).Required()
	_, err = uc.Impact.Get(ctx, testOwner, ia.ID)
	gt.Error(t, err).Is(usecase.ErrNotFound)
}
