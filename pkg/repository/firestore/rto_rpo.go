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

type rtoRPODocument struct {
	ID                string    `firestore:"id"`
	OwnerID           string    `firestore:"owner_id"`
	BusinessProcessID string    `firestore:"business_process_id"`
	Type              string    `firestore:"type"`
	Metric            string    `firestore:"metric"`
	AcceptableTime    float64   `firestore:"acceptable_time"`
	AchievableTime    float64   `firestore:"achievable_time"`
	Gap               float64   `firestore:"gap"`
	CreatedAt         time.Time `firestore:"created_at"`
	UpdatedAt         time.Time `firestore:"updated_at"`
}

type rtoRPORepository struct {
	*base
}

// rtoRPODocID derives the document ID from the natural key so that concurrent
// upserts of the same key converge on one document.
func rtoRPODocID(key model.RTORPOKey) string {
	return string(key.BusinessProcessID) + "_" + string(key.Type) + "_" + string(key.Metric)
}

func rtoRPOToDocument(a *model.RTORPOAnalysis) *rtoRPODocument {
	return &rtoRPODocument{
		ID:                string(a.ID),
		OwnerID:           string(a.OwnerID),
		BusinessProcessID: string(a.BusinessProcessID),
		Type:              string(a.Type),
		Metric:            string(a.Metric),
		AcceptableTime:    a.AcceptableTime,
		AchievableTime:    a.AchievableTime,
		Gap:               a.Gap,
		CreatedAt:         a.CreatedAt,
		UpdatedAt:         a.UpdatedAt,
	}
}

func rtoRPOToModel(doc *rtoRPODocument) *model.RTORPOAnalysis {
	return &model.RTORPOAnalysis{
		ID:                model.RTORPOAnalysisID(doc.ID),
		OwnerID:           model.OwnerID(doc.OwnerID),
		BusinessProcessID: model.BusinessProcessID(doc.BusinessProcessID),
		Type:              types.AnalysisType(doc.Type),
		Metric:            types.Metric(doc.Metric),
		AcceptableTime:    doc.AcceptableTime,
		AchievableTime:    doc.AchievableTime,
		Gap:               doc.Gap,
		CreatedAt:         doc.CreatedAt,
		UpdatedAt:         doc.UpdatedAt,
	}
}

func (r *rtoRPORepository) Upsert(ctx context.Context, owner model.OwnerID, a *model.RTORPOAnalysis) (*model.RTORPOAnalysis, error) {
	col, err := r.collection(owner, collectionRTORPOAnalyses)
	if err != nil {
		return nil, err
	}
	ref := col.Doc(rtoRPODocID(a.Key()))

	var stored *rtoRPODocument
	err = r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		now := time.Now().UTC()
		next := a.Clone()
		next.OwnerID = owner
		next.UpdatedAt = now

		snap, err := tx.Get(ref)
		switch {
		case err == nil:
			var existing rtoRPODocument
			if err := snap.DataTo(&existing); err != nil {
				return goerr.Wrap(err, "failed to decode rto/rpo analysis", goerr.V("docID", ref.ID))
			}
			next.ID = model.RTORPOAnalysisID(existing.ID)
			next.CreatedAt = existing.CreatedAt
		case status.Code(err) == codes.NotFound:
			if next.ID == "" {
				next.ID = model.NewRTORPOAnalysisID()
			}
			next.CreatedAt = now
		default:
			return goerr.Wrap(err, "failed to get rto/rpo analysis", goerr.V("docID", ref.ID))
		}

		stored = rtoRPOToDocument(next)
		return tx.Set(ref, stored)
	})
	if err != nil {
		return nil, err
	}
	return rtoRPOToModel(stored), nil
}

func (r *rtoRPORepository) Find(ctx context.Context, owner model.OwnerID, key model.RTORPOKey) (*model.RTORPOAnalysis, error) {
	col, err := r.collection(owner, collectionRTORPOAnalyses)
	if err != nil {
		return nil, err
	}

	snap, err := col.Doc(rtoRPODocID(key)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "rto/rpo analysis not found",
				goerr.V("businessProcessID", key.BusinessProcessID), goerr.V("type", key.Type), goerr.V("metric", key.Metric))
		}
		return nil, goerr.Wrap(err, "failed to get rto/rpo analysis")
	}

	var doc rtoRPODocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode rto/rpo analysis")
	}
	return rtoRPOToModel(&doc), nil
}

func (r *rtoRPORepository) Get(ctx context.Context, owner model.OwnerID, id model.RTORPOAnalysisID) (*model.RTORPOAnalysis, error) {
	ref, doc, err := r.findByID(ctx, owner, id)
	if err != nil {
		return nil, err
	}
	if ref == nil {
		return nil, goerr.Wrap(ErrNotFound, "rto/rpo analysis not found", goerr.V("id", id))
	}
	return rtoRPOToModel(doc), nil
}

func (r *rtoRPORepository) List(ctx context.Context, owner model.OwnerID) ([]*model.RTORPOAnalysis, error) {
	col, err := r.collection(owner, collectionRTORPOAnalyses)
	if err != nil {
		return nil, err
	}

	// Requires the composite index declared by the migrate command
	query := col.OrderBy("business_process_id", firestore.Asc).
		OrderBy("type", firestore.Asc).
		OrderBy("metric", firestore.Asc)
	docs, err := collectAll[rtoRPODocument](query.Documents(ctx))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list rto/rpo analyses")
	}

	analyses := make([]*model.RTORPOAnalysis, 0, len(docs))
	for _, doc := range docs {
		analyses = append(analyses, rtoRPOToModel(doc))
	}
	return analyses, nil
}

func (r *rtoRPORepository) Delete(ctx context.Context, owner model.OwnerID, id model.RTORPOAnalysisID) error {
	ref, _, err := r.findByID(ctx, owner, id)
	if err != nil {
		return err
	}
	if ref == nil {
		return goerr.Wrap(ErrNotFound, "rto/rpo analysis not found", goerr.V("id", id))
	}
	return deleteExisting(ctx, ref, "rto/rpo analysis")
}

func (r *rtoRPORepository) Move(ctx context.Context, owner model.OwnerID, id model.RTORPOAnalysisID, a *model.RTORPOAnalysis) (*model.RTORPOAnalysis, error) {
	col, err := r.collection(owner, collectionRTORPOAnalyses)
	if err != nil {
		return nil, err
	}
	newRef := col.Doc(rtoRPODocID(a.Key()))

	var stored *rtoRPODocument
	err = r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snaps, err := tx.Documents(col.Where("id", "==", string(id)).Limit(1)).GetAll()
		if err != nil {
			return goerr.Wrap(err, "failed to query rto/rpo analysis", goerr.V("id", id))
		}
		if len(snaps) == 0 {
			return goerr.Wrap(ErrNotFound, "rto/rpo analysis not found", goerr.V("id", id))
		}

		var cur rtoRPODocument
		if err := snaps[0].DataTo(&cur); err != nil {
			return goerr.Wrap(err, "failed to decode rto/rpo analysis", goerr.V("id", id))
		}

		next := a.Clone()
		next.ID = model.RTORPOAnalysisID(cur.ID)
		next.OwnerID = owner
		next.CreatedAt = cur.CreatedAt
		next.UpdatedAt = time.Now().UTC()
		stored = rtoRPOToDocument(next)

		if oldRef := snaps[0].Ref; oldRef.ID != newRef.ID {
			if err := tx.Delete(oldRef); err != nil {
				return goerr.Wrap(err, "failed to delete previous rto/rpo analysis", goerr.V("docID", oldRef.ID))
			}
		}
		return tx.Set(newRef, stored)
	})
	if err != nil {
		return nil, err
	}
	return rtoRPOToModel(stored), nil
}

func (r *rtoRPORepository) findByID(ctx context.Context, owner model.OwnerID, id model.RTORPOAnalysisID) (*firestore.DocumentRef, *rtoRPODocument, error) {
	col, err := r.collection(owner, collectionRTORPOAnalyses)
	if err != nil {
		return nil, nil, err
	}

	snaps, err := col.Where("id", "==", string(id)).Limit(1).Documents(ctx).GetAll()
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to query rto/rpo analysis", goerr.V("id", id))
	}
	if len(snaps) == 0 {
		return nil, nil, nil
	}

	var doc rtoRPODocument
	if err := snaps[0].DataTo(&doc); err != nil {
		return nil, nil, goerr.Wrap(err, "failed to decode rto/rpo analysis", goerr.V("id", id))
	}
	return snaps[0].Ref, &doc, nil
}
