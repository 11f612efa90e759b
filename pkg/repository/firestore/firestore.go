package firestore

import (
	"context"
	"errors"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/bcplanner/pkg/domain/interfaces"
	"github.com/secmon-lab/bcplanner/pkg/domain/model"
	"google.golang.org/api/iterator"
)

var ErrNotFound = goerr.Wrap(interfaces.ErrNotFound, "firestore")

const (
	collectionOwners            = "owners"
	collectionBusinessProcesses = "business_processes"
	collectionImpactAnalyses    = "impact_analyses"
	collectionRTORPOAnalyses    = "rto_rpo_analyses"
	collectionRecoveryWorkflows = "recovery_workflows"
	collectionMaturity          = "maturity_scorecards"
)

// Firestore stores every collection under owners/{ownerID}/{collection}
type Firestore struct {
	client *firestore.Client
	base   *base

	businessProcess  *businessProcessRepository
	impactAnalysis   *impactAnalysisRepository
	rtoRPO           *rtoRPORepository
	recoveryWorkflow *recoveryWorkflowRepository
	maturity         *maturityRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix prefixes the root collection name, mainly to isolate test runs
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.base.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	client, err := firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID), goerr.V("databaseID", databaseID))
	}

	b := &base{client: client}
	f := &Firestore{
		client:           client,
		base:             b,
		businessProcess:  &businessProcessRepository{base: b},
		impactAnalysis:   &impactAnalysisRepository{base: b},
		rtoRPO:           &rtoRPORepository{base: b},
		recoveryWorkflow: &recoveryWorkflowRepository{base: b},
		maturity:         &maturityRepository{base: b},
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

func (f *Firestore) BusinessProcess() interfaces.BusinessProcessRepository {
	return f.businessProcess
}

func (f *Firestore) ImpactAnalysis() interfaces.ImpactAnalysisRepository {
	return f.impactAnalysis
}

func (f *Firestore) RTORPO() interfaces.RTORPORepository {
	return f.rtoRPO
}

func (f *Firestore) RecoveryWorkflow() interfaces.RecoveryWorkflowRepository {
	return f.recoveryWorkflow
}

func (f *Firestore) Maturity() interfaces.MaturityRepository {
	return f.maturity
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}

type base struct {
	client           *firestore.Client
	collectionPrefix string
}

func (b *base) ownersCollection() string {
	if b.collectionPrefix != "" {
		return b.collectionPrefix + "_" + collectionOwners
	}
	return collectionOwners
}

// collection returns owners/{ownerID}/{name}
func (b *base) collection(owner model.OwnerID, name string) (*firestore.CollectionRef, error) {
	if err := owner.Validate(); err != nil {
		return nil, goerr.Wrap(err, "owner is required")
	}
	return b.client.Collection(b.ownersCollection()).Doc(string(owner)).Collection(name), nil
}

// collectAll decodes every document returned by iter into T
func collectAll[T any](iter *firestore.DocumentIterator) ([]*T, error) {
	defer iter.Stop()

	var docs []*T
	for {
		snap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate documents")
		}

		var doc T
		if err := snap.DataTo(&doc); err != nil {
			return nil, goerr.Wrap(err, "failed to decode document", goerr.V("path", snap.Ref.Path))
		}
		docs = append(docs, &doc)
	}
	return docs, nil
}
