package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/shopspring/decimal"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/estima-lab/pertcost/pkg/domain/interfaces"
	"github.com/estima-lab/pertcost/pkg/domain/model/config"
	"github.com/estima-lab/pertcost/pkg/domain/types"
)

type weightDocument struct {
	Code        string `firestore:"code"`
	Description string `firestore:"description"`
	Weight      string `firestore:"weight"`
}

type lookupDocument struct {
	Code        string `firestore:"code"`
	Description string `firestore:"description"`
}

// lookupRepository serves the read-only reference tables. Documents are
// keyed by code, so every lookup is a single point read.
type lookupRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newLookupRepository(client *firestore.Client) *lookupRepository {
	return &lookupRepository{client: client}
}

func (r *lookupRepository) prefixed(name string) string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_" + name
	}
	return name
}

func (r *lookupRepository) weightCollection(kind string) string {
	return r.prefixed(kind + "_levels")
}

func (r *lookupRepository) dimensionCollection(dimension types.Dimension) string {
	return r.prefixed("lookup_" + dimension.String())
}

func (r *lookupRepository) ProbabilityWeight(ctx context.Context, code string) (decimal.Decimal, error) {
	return r.weight(ctx, "probability", code)
}

func (r *lookupRepository) SeverityWeight(ctx context.Context, code string) (decimal.Decimal, error) {
	return r.weight(ctx, "severity", code)
}

func (r *lookupRepository) weight(ctx context.Context, kind, code string) (decimal.Decimal, error) {
	doc, err := r.client.Collection(r.weightCollection(kind)).Doc(code).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return decimal.Zero, goerr.Wrap(interfaces.ErrLookupMiss, "unknown "+kind+" code", goerr.V("code", code))
		}
		return decimal.Zero, goerr.Wrap(err, "failed to get "+kind+" level", goerr.V("code", code))
	}

	var weightDoc weightDocument
	if err := doc.DataTo(&weightDoc); err != nil {
		return decimal.Zero, goerr.Wrap(err, "failed to unmarshal "+kind+" level", goerr.V("code", code))
	}

	weight, err := parseDecimal(weightDoc.Weight)
	if err != nil {
		return decimal.Zero, goerr.Wrap(err, "failed to parse "+kind+" weight",
			goerr.V("code", code), goerr.V("value", weightDoc.Weight))
	}
	return weight, nil
}

func (r *lookupRepository) Description(ctx context.Context, dimension types.Dimension, code string) (string, error) {
	doc, err := r.client.Collection(r.dimensionCollection(dimension)).Doc(code).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return "", goerr.Wrap(interfaces.ErrLookupMiss, "unknown classification code",
				goerr.V("dimension", dimension.String()), goerr.V("code", code))
		}
		return "", goerr.Wrap(err, "failed to get lookup entry",
			goerr.V("dimension", dimension.String()), goerr.V("code", code))
	}

	var entry lookupDocument
	if err := doc.DataTo(&entry); err != nil {
		return "", goerr.Wrap(err, "failed to unmarshal lookup entry",
			goerr.V("dimension", dimension.String()), goerr.V("code", code))
	}
	return entry.Description, nil
}

// seed writes the estimation catalog into the lookup collections using
// batched writes.
func (r *lookupRepository) seed(ctx context.Context, catalog *config.Catalog) error {
	writer := r.client.BulkWriter(ctx)

	for _, level := range catalog.Probability {
		ref := r.client.Collection(r.weightCollection("probability")).Doc(level.Code)
		if _, err := writer.Set(ref, &weightDocument{
			Code:        level.Code,
			Description: level.Description,
			Weight:      level.Weight.String(),
		}); err != nil {
			return goerr.Wrap(err, "failed to seed probability level", goerr.V("code", level.Code))
		}
	}

	for _, level := range catalog.Severity {
		ref := r.client.Collection(r.weightCollection("severity")).Doc(level.Code)
		if _, err := writer.Set(ref, &weightDocument{
			Code:        level.Code,
			Description: level.Description,
			Weight:      level.Weight.String(),
		}); err != nil {
			return goerr.Wrap(err, "failed to seed severity level", goerr.V("code", level.Code))
		}
	}

	for _, dimension := range types.AllDimensions() {
		for _, entry := range catalog.Entries(dimension) {
			ref := r.client.Collection(r.dimensionCollection(dimension)).Doc(entry.Code)
			if _, err := writer.Set(ref, &lookupDocument{
				Code:        entry.Code,
				Description: entry.Description,
			}); err != nil {
				return goerr.Wrap(err, "failed to seed lookup entry",
					goerr.V("dimension", dimension.String()), goerr.V("code", entry.Code))
			}
		}
	}

	writer.End()
	return nil
}
