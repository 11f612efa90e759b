package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bcplanner/pkg/domain/model"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type recoveryStepDocument struct {
	StepNumber          int                  `firestore:"step_number"`
	Description         string               `firestore:"description"`
	ResponsibleTeam     string               `firestore:"responsible_team"`
	EstimatedCompletion durationDocument     `firestore:"estimated_completion"`
	Dependencies        dependenciesDocument `firestore:"dependencies"`
	AlternateStaff      []string             `firestore:"alternate_staff"`
}

// recoveryWorkflowDocument is stored with the business process ID as document ID
type recoveryWorkflowDocument struct {
	ID                string                 `firestore:"id"`
	OwnerID           string                 `firestore:"owner_id"`
	BusinessProcessID string                 `firestore:"business_process_id"`
	Steps             []recoveryStepDocument `firestore:"steps"`
	IsAutoGenerated   bool                   `firestore:"is_auto_generated"`
	CreatedAt         time.Time              `firestore:"created_at"`
	UpdatedAt         time.Time              `firestore:"updated_at"`
}

type recoveryWorkflowRepository struct {
	*base
}

func recoveryWorkflowToDocument(wf *model.RecoveryWorkflow) *recoveryWorkflowDocument {
	steps := make([]recoveryStepDocument, len(wf.Steps))
	for i, s := range wf.Steps {
		steps[i] = recoveryStepDocument{
			StepNumber:          s.StepNumber,
			Description:         s.Description,
			ResponsibleTeam:     s.ResponsibleTeam,
			EstimatedCompletion: durationToDocument(s.EstimatedCompletion),
			Dependencies:        dependenciesToDocument(s.Dependencies),
			AlternateStaff:      s.AlternateStaff,
		}
	}

	return &recoveryWorkflowDocument{
		ID:                string(wf.ID),
		OwnerID:           string(wf.OwnerID),
		BusinessProcessID: string(wf.BusinessProcessID),
		Steps:             steps,
		IsAutoGenerated:   wf.IsAutoGenerated,
		CreatedAt:         wf.CreatedAt,
		UpdatedAt:         wf.UpdatedAt,
	}
}

func recoveryWorkflowToModel(doc *recoveryWorkflowDocument) *model.RecoveryWorkflow {
	steps := make([]model.RecoveryStep, len(doc.Steps))
	for i, s := range doc.Steps {
		staff := s.AlternateStaff
		if staff == nil {
			staff = []string{}
		}
		steps[i] = model.RecoveryStep{
			StepNumber:          s.StepNumber,
			Description:         s.Description,
			ResponsibleTeam:     s.ResponsibleTeam,
			EstimatedCompletion: durationToModel(s.EstimatedCompletion),
			Dependencies:        dependenciesToModel(s.Dependencies),
			AlternateStaff:      staff,
		}
	}

	return &model.RecoveryWorkflow{
		ID:                model.RecoveryWorkflowID(doc.ID),
		OwnerID:           model.OwnerID(doc.OwnerID),
		BusinessProcessID: model.BusinessProcessID(doc.BusinessProcessID),
		Steps:             steps,
		IsAutoGenerated:   doc.IsAutoGenerated,
		CreatedAt:         doc.CreatedAt,
		UpdatedAt:         doc.UpdatedAt,
	}
}

func (r *recoveryWorkflowRepository) Put(ctx context.Context, owner model.OwnerID, wf *model.RecoveryWorkflow) (*model.RecoveryWorkflow, error) {
	if wf.BusinessProcessID == "" {
		return nil, goerr.New("business process ID is required for recovery workflow")
	}
	col, err := r.collection(owner, collectionRecoveryWorkflows)
	if err != nil {
		return nil, err
	}
	ref := col.Doc(string(wf.BusinessProcessID))

	var stored *recoveryWorkflowDocument
	err = r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		now := time.Now().UTC()
		next := wf.Clone()
		next.OwnerID = owner
		next.UpdatedAt = now

		snap, err := tx.Get(ref)
		switch {
		case err == nil:
			var existing recoveryWorkflowDocument
			if err := snap.DataTo(&existing); err != nil {
				return goerr.Wrap(err, "failed to decode recovery workflow", goerr.V("businessProcessID", wf.BusinessProcessID))
			}
			next.ID = model.RecoveryWorkflowID(existing.ID)
			next.CreatedAt = existing.CreatedAt
		case status.Code(err) == codes.NotFound:
			if next.ID == "" {
				next.ID = model.NewRecoveryWorkflowID()
			}
			next.CreatedAt = now
		default:
			return goerr.Wrap(err, "failed to get recovery workflow", goerr.V("businessProcessID", wf.BusinessProcessID))
		}

		stored = recoveryWorkflowToDocument(next)
		return tx.Set(ref, stored)
	})
	if err != nil {
		return nil, err
	}
	return recoveryWorkflowToModel(stored), nil
}

func (r *recoveryWorkflowRepository) Get(ctx context.Context, owner model.OwnerID, id model.RecoveryWorkflowID) (*model.RecoveryWorkflow, error) {
	ref, doc, err := r.findByID(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if ref == nil {
		return nil, goerr.Wrap(ErrNotFound, "recovery workflow not found", goerr.V("id", id))
	}
	return recoveryWorkflowToModel(doc), nil
}

func (r *recoveryWorkflowRepository) GetByBusinessProcess(ctx context.Context, owner model.OwnerID, bpID model.BusinessProcessID) (*model.RecoveryWorkflow, error) {
	col, err := r.collection(owner, collectionRecoveryWorkflows)
	if err != nil {
		return nil, err
	}

	snap, err := col.Doc(string(bpID)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "recovery workflow not found", goerr.V("businessProcessID", bpID))
		}
		return nil, goerr.Wrap(err, "failed to get recovery workflow", goerr.V("businessProcessID", bpID))
	}

	var doc recoveryWorkflowDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode recovery workflow", goerr.V("businessProcessID", bpID))
	}
	return recoveryWorkflowToModel(&doc), nil
}

func (r *recoveryWorkflowRepository) List(ctx context.Context, owner model.OwnerID) ([]*model.RecoveryWorkflow, error) {
	col, err := r.collection(owner, collectionRecoveryWorkflows)
	if err != nil {
		return nil, err
	}

	docs, err := collectAll[recoveryWorkflowDocument](col.OrderBy("created_at", firestore.Asc).Documents(ctx))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list recovery workflows")
	}

	workflows := make([]*model.RecoveryWorkflow, 0, len(docs))
	for _, doc := range docs {
		workflows = append(workflows, recoveryWorkflowToModel(doc))
	}
	return workflows, nil
}

func (r *recoveryWorkflowRepository) Delete(ctx context.Context, owner model.OwnerID, id model.RecoveryWorkflowID) error {
	ref, _, err := r.findByID(ctx, owner, id)
	if err != nil {
		return err
	}
	if ref == nil {
		return goerr.Wrap(ErrNotFound, "recovery workflow not found", goerr.V("id", id))
	}
	return deleteExisting(ctx, ref, "recovery workflow")
}

func (r *recoveryWorkflowRepository) findByID(ctx context.Context, owner model.OwnerID, id model.RecoveryWorkflowID) (*firestore.DocumentRef, *recoveryWorkflowDocument, error) {
	col, err := r.collection(owner, collectionRecoveryWorkflows)
	if err != nil {
		return nil, nil, err
	}

	snaps, err := col.Where("id", "==", string(id)).Limit(1).Documents(ctx).GetAll()
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to query recovery workflow", goerr.V("id", id))
	}
	if len(snaps) == 0 {
		return nil, nil, nil
	}

	var doc recoveryWorkflowDocument
	if err := snaps[0].DataTo(&doc); err != nil {
		return nil, nil, goerr.Wrap(err, "failed to decode recovery workflow", goerr.V("id", id))
	}
	return snaps[0].Ref, &doc, nil
}
