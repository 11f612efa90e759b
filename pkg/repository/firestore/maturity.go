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

// maturityDocID is the fixed document ID of the per-owner scorecard
const maturityDocID = "current"

type maturityDocument struct {
	OwnerID              string            `firestore:"owner_id"`
	Scores               map[string]string `firestore:"scores"`
	OverallMaturityScore float64           `firestore:"overall_maturity_score"`
	CreatedAt            time.Time         `firestore:"created_at"`
	UpdatedAt            time.Time         `firestore:"updated_at"`
}

type maturityRepository struct {
	*base
}

func maturityToDocument(sc *model.MaturityScorecard) *maturityDocument {
	scores := make(map[string]string, len(sc.Scores))
	for k, v := range sc.Scores {
		scores[string(k)] = v
	}
	return &maturityDocument{
		OwnerID:              string(sc.OwnerID),
		Scores:               scores,
		OverallMaturityScore: sc.OverallMaturityScore,
		CreatedAt:            sc.CreatedAt,
		UpdatedAt:            sc.UpdatedAt,
	}
}

func maturityToModel(doc *maturityDocument) *model.MaturityScorecard {
	scores := make(map[types.MaturityDimension]string, len(doc.Scores))
	for k, v := range doc.Scores {
		scores[types.MaturityDimension(k)] = v
	}
	return &model.MaturityScorecard{
		OwnerID:              model.OwnerID(doc.OwnerID),
		Scores:               scores,
		OverallMaturityScore: doc.OverallMaturityScore,
		CreatedAt:            doc.CreatedAt,
		UpdatedAt:            doc.UpdatedAt,
	}
}

func (r *maturityRepository) ref(owner model.OwnerID) (*firestore.DocumentRef, error) {
	col, err := r.collection(owner, collectionMaturity)
	if err != nil {
		return nil, err
	}
	return col.Doc(maturityDocID), nil
}

func (r *maturityRepository) Put(ctx context.Context, owner model.OwnerID, sc *model.MaturityScorecard) (*model.MaturityScorecard, error) {
	ref, err := r.ref(owner)
	if err != nil {
		return nil, err
	}

	var stored *maturityDocument
	err = r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		now := time.Now().UTC()
		next := sc.Clone()
		next.OwnerID = owner
		next.UpdatedAt = now
		next.CreatedAt = now

		snap, err := tx.Get(ref)
		switch {
		case err == nil:
			var existing maturityDocument
			if err := snap.DataTo(&existing); err != nil {
				return goerr.Wrap(err, "failed to decode maturity scorecard")
			}
			next.CreatedAt = existing.CreatedAt
		case status.Code(err) != codes.NotFound:
			return goerr.Wrap(err, "failed to get maturity scorecard")
		}

		stored = maturityToDocument(next)
		return tx.Set(ref, stored)
	})
	if err != nil {
		return nil, err
	}
	return maturityToModel(stored), nil
}

func (r *maturityRepository) Get(ctx context.Context, owner model.OwnerID) (*model.MaturityScorecard, error) {
	ref, err := r.ref(owner)
	if err != nil {
		return nil, err
	}

	snap, err := ref.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "maturity scorecard not found", goerr.V("owner", owner))
		}
		return nil, goerr.Wrap(err, "failed to get maturity scorecard", goerr.V("owner", owner))
	}

	var doc maturityDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode maturity scorecard", goerr.V("owner", owner))
	}
	return maturityToModel(&doc), nil
}

func (r *maturityRepository) Delete(ctx context.Context, owner model.OwnerID) error {
	ref, err := r.ref(owner)
	if err != nil {
		return err
	}
	return deleteExisting(ctx, ref, "maturity scorecard")
}
