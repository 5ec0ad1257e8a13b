package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"

	"github.com/estima-lab/pertcost/pkg/domain/interfaces"
	"github.com/estima-lab/pertcost/pkg/domain/model/config"
)

type Firestore struct {
	client     *firestore.Client
	project    *projectRepository
	wbs        *wbsRepository
	assignment *assignmentRepository
	risk       *riskRepository
	lookup     *lookupRepository
	audit      *auditRepository
}

var _ interfaces.Repository = &Firestore{}

type Option func(*Firestore)

// WithCollectionPrefix namespaces every collection, so multiple deployments
// can share one database.
func WithCollectionPrefix(prefix string) Option {
	return func(f *Firestore) {
		f.project.collectionPrefix = prefix
		f.wbs.collectionPrefix = prefix
		f.assignment.collectionPrefix = prefix
		f.risk.collectionPrefix = prefix
		f.lookup.collectionPrefix = prefix
		f.audit.collectionPrefix = prefix
	}
}

func New(ctx context.Context, projectID, databaseID string, opts ...Option) (*Firestore, error) {
	var client *firestore.Client
	var err error
	if databaseID != "" {
		client, err = firestore.NewClientWithDatabase(ctx, projectID, databaseID)
	} else {
		client, err = firestore.NewClient(ctx, projectID)
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create firestore client",
			goerr.V("projectID", projectID), goerr.V("databaseID", databaseID))
	}

	f := &Firestore{
		client:     client,
		project:    newProjectRepository(client),
		wbs:        newWBSRepository(client),
		assignment: newAssignmentRepository(client),
		risk:       newRiskRepository(client),
		lookup:     newLookupRepository(client),
		audit:      newAuditRepository(client),
	}

	for _, opt := range opts {
		opt(f)
	}

	return f, nil
}

// SeedCatalog writes the estimation catalog into the lookup collections.
// Used by the seed command; the core itself only reads them.
func (f *Firestore) SeedCatalog(ctx context.Context, catalog *config.Catalog) error {
	return f.lookup.seed(ctx, catalog)
}

func (f *Firestore) Project() interfaces.ProjectRepository {
	return f.project
}

func (f *Firestore) WBS() interfaces.WBSRepository {
	return f.wbs
}

func (f *Firestore) Assignment() interfaces.AssignmentRepository {
	return f.assignment
}

func (f *Firestore) Risk() interfaces.RiskRepository {
	return f.risk
}

func (f *Firestore) Lookup() interfaces.LookupRepository {
	return f.lookup
}

func (f *Firestore) Audit() interfaces.AuditRepository {
	return f.audit
}

func (f *Firestore) Close() error {
	if f.client != nil {
		return f.client.Close()
	}
	return nil
}
