package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bcplanner/pkg/domain/model"
	"github.com/secmon-lab/bcplanner/pkg/domain/types"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type impactAnalysisDocument struct {
	ID                string `firestore:"id"`
	OwnerID           string `firestore:"owner_id"`
	BusinessProcessID string `firestore:"business_process_id"`
	ProcessName       string `firestore:"process_name"`

	Criticality           string  `firestore:"criticality"`
	CostOfDowntime        float64 `firestore:"cost_of_downtime"`
	RevenueLoss           float64 `firestore:"revenue_loss"`
	ProductivityLoss      float64 `firestore:"productivity_loss"`
	OperatingCostIncrease float64 `firestore:"operating_cost_increase"`
	FinancialPenalties    float64 `firestore:"financial_penalties"`
	CustomerImpact        string  `firestore:"customer_impact"`
	StaffImpact           string  `firestore:"staff_impact"`
	PartnerImpact         string  `firestore:"partner_impact"`
	ComplianceImpact      string  `firestore:"compliance_impact"`
	SafetyImpact          string  `firestore:"safety_impact"`

	FinancialImpact   float64  `firestore:"financial_impact"`
	ReputationImpact  float64  `firestore:"reputation_impact"`
	OperationalImpact float64  `firestore:"operational_impact"`
	DowntimeHours     float64  `firestore:"downtime_hours"`
	CostPerHour       float64  `firestore:"cost_per_hour"`
	ExpectedRTO       *float64 `firestore:"expected_rto"`
	ActualRTO         *float64 `firestore:"actual_rto"`
	ExpectedRPO       *float64 `firestore:"expected_rpo"`
	ActualRPO         *float64 `firestore:"actual_rpo"`

	ScoringMode  string  `firestore:"scoring_mode"`
	OverallScore float64 `firestore:"overall_score"`
	Tier         string  `firestore:"tier"`
	TotalImpact  float64 `firestore:"total_impact"`
	RTOGap       float64 `firestore:"rto_gap"`
	RPOGap       float64 `firestore:"rpo_gap"`

	CreatedAt time.Time `firestore:"created_at"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

type impactAnalysisRepository struct {
	*base
}

func impactAnalysisToDocument(ia *model.ImpactAnalysis) *impactAnalysisDocument {
	return &impactAnalysisDocument{
		ID:                    string(ia.ID),
		OwnerID:               string(ia.OwnerID),
		BusinessProcessID:     string(ia.BusinessProcessID),
		ProcessName:           ia.ProcessName,
		Criticality:           string(ia.Criticality),
		CostOfDowntime:        ia.CostOfDowntime,
		RevenueLoss:           ia.RevenueLoss,
		ProductivityLoss:      ia.ProductivityLoss,
		OperatingCostIncrease: ia.OperatingCostIncrease,
		FinancialPenalties:    ia.FinancialPenalties,
		CustomerImpact:        string(ia.CustomerImpact),
		StaffImpact:           string(ia.StaffImpact),
		PartnerImpact:         string(ia.PartnerImpact),
		ComplianceImpact:      string(ia.ComplianceImpact),
		SafetyImpact:          string(ia.SafetyImpact),
		FinancialImpact:       ia.FinancialImpact,
		ReputationImpact:      ia.ReputationImpact,
		OperationalImpact:     ia.OperationalImpact,
		DowntimeHours:         ia.DowntimeHours,
		CostPerHour:           ia.CostPerHour,
		ExpectedRTO:           ia.ExpectedRTO,
		ActualRTO:             ia.ActualRTO,
		ExpectedRPO:           ia.ExpectedRPO,
		ActualRPO:             ia.ActualRPO,
		ScoringMode:           string(ia.Mode),
		OverallScore:          ia.OverallScore,
		Tier:                  string(ia.Tier),
		TotalImpact:           ia.TotalImpact,
		RTOGap:                ia.RTOGap,
		RPOGap:                ia.RPOGap,
		CreatedAt:             ia.CreatedAt,
		UpdatedAt:             ia.UpdatedAt,
	}
}

func impactAnalysisToModel(doc *impactAnalysisDocument) *model.ImpactAnalysis {
	return &model.ImpactAnalysis{
		ID:                model.ImpactAnalysisID(doc.ID),
		OwnerID:           model.OwnerID(doc.OwnerID),
		BusinessProcessID: model.BusinessProcessID(doc.BusinessProcessID),
		ProcessName:       doc.ProcessName,
		ImpactInput: model.ImpactInput{
			Criticality:           types.Criticality(doc.Criticality),
			CostOfDowntime:        doc.CostOfDowntime,
			RevenueLoss:           doc.RevenueLoss,
			ProductivityLoss:      doc.ProductivityLoss,
			OperatingCostIncrease: doc.OperatingCostIncrease,
			FinancialPenalties:    doc.FinancialPenalties,
			CustomerImpact:        types.ImpactLevel(doc.CustomerImpact),
			StaffImpact:           types.ImpactLevel(doc.StaffImpact),
			PartnerImpact:         types.ImpactLevel(doc.PartnerImpact),
			ComplianceImpact:      types.ImpactLevel(doc.ComplianceImpact),
			SafetyImpact:          types.ImpactLevel(doc.SafetyImpact),
			FinancialImpact:       doc.FinancialImpact,
			ReputationImpact:      doc.ReputationImpact,
			OperationalImpact:     doc.OperationalImpact,
			DowntimeHours:         doc.DowntimeHours,
			CostPerHour:           doc.CostPerHour,
			ExpectedRTO:           doc.ExpectedRTO,
			ActualRTO:             doc.ActualRTO,
			ExpectedRPO:           doc.ExpectedRPO,
			ActualRPO:             doc.ActualRPO,
		},
		ImpactScore: model.ImpactScore{
			Mode:         types.ScoringMode(doc.ScoringMode),
			OverallScore: doc.OverallScore,
			Tier:         types.Tier(doc.Tier),
			TotalImpact:  doc.TotalImpact,
			RTOGap:       doc.RTOGap,
			RPOGap:       doc.RPOGap,
		},
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}

func (r *impactAnalysisRepository) Create(ctx context.Context, owner model.OwnerID, ia *model.ImpactAnalysis) (*model.ImpactAnalysis, error) {
	col, err := r.collection(owner, collectionImpactAnalyses)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created := ia.Clone()
	if created.ID == "" {
		created.ID = model.NewImpactAnalysisID()
	}
	created.OwnerID = owner
	created.CreatedAt = now
	created.UpdatedAt = now

	doc := impactAnalysisToDocument(created)
	if _, err := col.Doc(doc.ID).Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create impact analysis", goerr.V("id", doc.ID))
	}
	return impactAnalysisToModel(doc), nil
}

func (r *impactAnalysisRepository) Get(ctx context.Context, owner model.OwnerID, id model.ImpactAnalysisID) (*model.ImpactAnalysis, error) {
	col, err := r.collection(owner, collectionImpactAnalyses)
	if err != nil {
		return nil, err
	}

	snap, err := col.Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "impact analysis not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get impact analysis", goerr.V("id", id))
	}

	var doc impactAnalysisDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode impact analysis", goerr.V("id", id))
	}
	return impactAnalysisToModel(&doc), nil
}

func (r *impactAnalysisRepository) List(ctx context.Context, owner model.OwnerID) ([]*model.ImpactAnalysis, error) {
	col, err := r.collection(owner, collectionImpactAnalyses)
	if err != nil {
		return nil, err
	}

	docs, err := collectAll[impactAnalysisDocument](col.OrderBy("created_at", firestore.Asc).Documents(ctx))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list impact analyses")
	}

	analyses := make([]*model.ImpactAnalysis, 0, len(docs))
	for _, doc := range docs {
		analyses = append(analyses, impactAnalysisToModel(doc))
	}
	return analyses, nil
}

func (r *impactAnalysisRepository) Update(ctx context.Context, owner model.OwnerID, ia *model.ImpactAnalysis) (*model.ImpactAnalysis, error) {
	col, err := r.collection(owner, collectionImpactAnalyses)
	if err != nil {
		return nil, err
	}
	ref := col.Doc(string(ia.ID))

	var updated *impactAnalysisDocument
	err = r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(ErrNotFound, "impact analysis not found", goerr.V("id", ia.ID))
			}
			return goerr.Wrap(err, "failed to get impact analysis", goerr.V("id", ia.ID))
		}

		var existing impactAnalysisDocument
		if err := snap.DataTo(&existing); err != nil {
			return goerr.Wrap(err, "failed to decode impact analysis", goerr.V("id", ia.ID))
		}

		next := ia.Clone()
		next.OwnerID = owner
		next.CreatedAt = existing.CreatedAt
		next.UpdatedAt = time.Now().UTC()
		updated = impactAnalysisToDocument(next)
		return tx.Set(ref, updated)
	})
	if err != nil {
		return nil, err
	}
	return impactAnalysisToModel(updated), nil
}

func (r *impactAnalysisRepository) Delete(ctx context.Context, owner model.OwnerID, id model.ImpactAnalysisID) error {
	col, err := r.collection(owner, collectionImpactAnalyses)
	if err != nil {
		return err
	}
	return deleteExisting(ctx, col.Doc(string(id)), "impact analysis")
}
