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

type businessProcessDocument struct {
	ID           string               `firestore:"id"`
	OwnerID      string               `firestore:"owner_id"`
	Name         string               `firestore:"name"`
	Description  string               `firestore:"description"`
	Owner        string               `firestore:"owner"`
	Dependencies dependenciesDocument `firestore:"dependencies"`
	CreatedAt    time.Time            `firestore:"created_at"`
	UpdatedAt    time.Time            `firestore:"updated_at"`
}

type businessProcessRepository struct {
	*base
}

func businessProcessToDocument(bp *model.BusinessProcess) *businessProcessDocument {
	return &businessProcessDocument{
		ID:           string(bp.ID),
		OwnerID:      string(bp.OwnerID),
		Name:         bp.Name,
		Description:  bp.Description,
		Owner:        bp.Owner,
		Dependencies: dependenciesToDocument(bp.Dependencies),
		CreatedAt:    bp.CreatedAt,
		UpdatedAt:    bp.UpdatedAt,
	}
}

func businessProcessToModel(doc *businessProcessDocument) *model.BusinessProcess {
	return &model.BusinessProcess{
		ID:           model.BusinessProcessID(doc.ID),
		OwnerID:      model.OwnerID(doc.OwnerID),
		Name:         doc.Name,
		Description:  doc.Description,
		Owner:        doc.Owner,
		Dependencies: dependenciesToModel(doc.Dependencies),
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}
}

func (r *businessProcessRepository) Create(ctx context.Context, owner model.OwnerID, bp *model.BusinessProcess) (*model.BusinessProcess, error) {
	col, err := r.collection(owner, collectionBusinessProcesses)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created := bp.Clone()
	if created.ID == "" {
		created.ID = model.NewBusinessProcessID()
	}
	created.OwnerID = owner
	created.CreatedAt = now
	created.UpdatedAt = now

	doc := businessProcessToDocument(created)
	if _, err := col.Doc(doc.ID).Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create business process", goerr.V("id", doc.ID))
	}
	return businessProcessToModel(doc), nil
}

func (r *businessProcessRepository) Get(ctx context.Context, owner model.OwnerID, id model.BusinessProcessID) (*model.BusinessProcess, error) {
	col, err := r.collection(owner, collectionBusinessProcesses)
	if err != nil {
		return nil, err
	}

	snap, err := col.Doc(string(id)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "business process not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get business process", goerr.V("id", id))
	}

	var doc businessProcessDocument
	if err := snap.DataTo(&doc); err != nil {
		return nil, goerr.Wrap(err, "failed to decode business process", goerr.V("id", id))
	}
	return businessProcessToModel(&doc), nil
}

func (r *businessProcessRepository) List(ctx context.Context, owner model.OwnerID) ([]*model.BusinessProcess, error) {
	col, err := r.collection(owner, collectionBusinessProcesses)
	if err != nil {
		return nil, err
	}

	docs, err := collectAll[businessProcessDocument](col.OrderBy("created_at", firestore.Asc).Documents(ctx))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list business processes")
	}

	processes := make([]*model.BusinessProcess, 0, len(docs))
	for _, doc := range docs {
		processes = append(processes, businessProcessToModel(doc))
	}
	return processes, nil
}

func (r *businessProcessRepository) Update(ctx context.Context, owner model.OwnerID, bp *model.BusinessProcess) (*model.BusinessProcess, error) {
	col, err := r.collection(owner, collectionBusinessProcesses)
	if err != nil {
		return nil, err
	}
	ref := col.Doc(string(bp.ID))

	var updated *businessProcessDocument
	err = r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(ErrNotFound, "business process not found", goerr.V("id", bp.ID))
			}
			return goerr.Wrap(err, "failed to get business process", goerr.V("id", bp.ID))
		}

		var existing businessProcessDocument
		if err := snap.DataTo(&existing); err != nil {
			return goerr.Wrap(err, "failed to decode business process", goerr.V("id", bp.ID))
		}

		next := bp.Clone()
		next.OwnerID = owner
		next.CreatedAt = existing.CreatedAt
		next.UpdatedAt = time.Now().UTC()
		updated = businessProcessToDocument(next)
		return tx.Set(ref, updated)
	})
	if err != nil {
		return nil, err
	}
	return businessProcessToModel(updated), nil
}

func (r *businessProcessRepository) Delete(ctx context.Context, owner model.OwnerID, id model.BusinessProcessID) error {
	col, err := r.collection(owner, collectionBusinessProcesses)
	if err != nil {
		return err
	}
	return deleteExisting(ctx, col.Doc(string(id)), "business process")
}

// deleteExisting deletes the document, returning ErrNotFound when it does not exist
func deleteExisting(ctx context.Context, ref *firestore.DocumentRef, kind string) error {
	if _, err := ref.Delete(ctx, firestore.Exists); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, kind+" not found", goerr.V("id", ref.ID))
		}
		return goerr.Wrap(err, "failed to delete "+kind, goerr.V("id", ref.ID))
	}
	return nil
}
