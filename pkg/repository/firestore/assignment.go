package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/shopspring/decimal"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/estima-lab/pertcost/pkg/domain/interfaces"
	"github.com/estima-lab/pertcost/pkg/domain/model"
)

// Money fields are stored as decimal strings: firestore has no decimal
// type and floats would leak binary rounding into stored estimates.
type assignmentDocument struct {
	ID                      int64  `firestore:"id"`
	WBSID                   int64  `firestore:"wbs_id"`
	ResourceCode            string `firestore:"resource_code"`
	SupplierCode            string `firestore:"supplier_code"`
	CostTypeCode            string `firestore:"cost_type_code"`
	RegionCode              string `firestore:"region_code"`
	BusinessAreaCode        string `firestore:"business_area_code"`
	EstimatingTechniqueCode string `firestore:"estimating_technique_code"`

	BestEstimate   string `firestore:"best_estimate"`
	LikelyEstimate string `firestore:"likely_estimate"`
	WorstEstimate  string `firestore:"worst_estimate"`

	DutyPct          string `firestore:"duty_pct"`
	ImportContentPct string `firestore:"import_content_pct"`
	AIIPct           string `firestore:"aii_pct"`

	CreatedAt time.Time `firestore:"created_at"`
	UpdatedAt time.Time `firestore:"updated_at"`
}

type assignmentRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newAssignmentRepository(client *firestore.Client) *assignmentRepository {
	return &assignmentRepository{client: client}
}

func (r *assignmentRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_assignments"
	}
	return "assignments"
}

func (r *assignmentRepository) counterCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_counters"
	}
	return "counters"
}

func (r *assignmentRepository) Create(ctx context.Context, assignment *model.Assignment) (*model.Assignment, error) {
	id, err := nextID(ctx, r.client, r.counterCollection(), "assignment_counter")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc := assignmentToDocument(assignment)
	doc.ID = id
	doc.CreatedAt = now
	doc.UpdatedAt = now

	docRef := r.client.Collection(r.collection()).Doc(fmt.Sprintf("%d", id))
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create assignment")
	}

	return doc.toModel()
}

func (r *assignmentRepository) Get(ctx context.Context, id int64) (*model.Assignment, error) {
	docRef := r.client.Collection(r.collection()).Doc(fmt.Sprintf("%d", id))
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "assignment not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get assignment", goerr.V("id", id))
	}

	var assignmentDoc assignmentDocument
	if err := doc.DataTo(&assignmentDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal assignment", goerr.V("id", id))
	}

	return assignmentDoc.toModel()
}

func (r *assignmentRepository) ListByWBS(ctx context.Context, wbsID int64) ([]*model.Assignment, error) {
	iter := r.client.Collection(r.collection()).
		Where("wbs_id", "==", wbsID).
		OrderBy("id", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var assignments []*model.Assignment
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate assignments", goerr.V("wbs_id", wbsID))
		}

		var assignmentDoc assignmentDocument
		if err := doc.DataTo(&assignmentDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal assignment")
		}

		assignment, err := assignmentDoc.toModel()
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, assignment)
	}

	return assignments, nil
}

func (r *assignmentRepository) CountByWBS(ctx context.Context, wbsID int64) (int, error) {
	assignments, err := r.ListByWBS(ctx, wbsID)
	if err != nil {
		return 0, err
	}
	return len(assignments), nil
}

func (r *assignmentRepository) Update(ctx context.Context, assignment *model.Assignment) (*model.Assignment, error) {
	docRef := r.client.Collection(r.collection()).Doc(fmt.Sprintf("%d", assignment.ID))

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "assignment not found", goerr.V("id", assignment.ID))
		}
		return nil, goerr.Wrap(err, "failed to get assignment", goerr.V("id", assignment.ID))
	}

	var existing assignmentDocument
	if err := doc.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal assignment", goerr.V("id", assignment.ID))
	}

	updated := assignmentToDocument(assignment)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update assignment", goerr.V("id", assignment.ID))
	}

	return updated.toModel()
}

func (r *assignmentRepository) Delete(ctx context.Context, id int64) error {
	docRef := r.client.Collection(r.collection()).Doc(fmt.Sprintf("%d", id))

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(interfaces.ErrNotFound, "assignment not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get assignment", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete assignment", goerr.V("id", id))
	}

	return nil
}

func assignmentToDocument(a *model.Assignment) *assignmentDocument {
	return &assignmentDocument{
		ID:                      a.ID,
		WBSID:                   a.WBSID,
		ResourceCode:            a.ResourceCode,
		SupplierCode:            a.SupplierCode,
		CostTypeCode:            a.CostTypeCode,
		RegionCode:              a.RegionCode,
		BusinessAreaCode:        a.BusinessAreaCode,
		EstimatingTechniqueCode: a.EstimatingTechniqueCode,
		BestEstimate:            a.BestEstimate.String(),
		LikelyEstimate:          a.LikelyEstimate.String(),
		WorstEstimate:           a.WorstEstimate.String(),
		DutyPct:                 a.DutyPct.String(),
		ImportContentPct:        a.ImportContentPct.String(),
		AIIPct:                  a.AIIPct.String(),
		CreatedAt:               a.CreatedAt,
		UpdatedAt:               a.UpdatedAt,
	}
}

func (d *assignmentDocument) toModel() (*model.Assignment, error) {
	fields := map[string]string{
		"best_estimate":      d.BestEstimate,
		"likely_estimate":    d.LikelyEstimate,
		"worst_estimate":     d.WorstEstimate,
		"duty_pct":           d.DutyPct,
		"import_content_pct": d.ImportContentPct,
		"aii_pct":            d.AIIPct,
	}
	parsed := make(map[string]decimal.Decimal, len(fields))
	for name, raw := range fields {
		value, err := parseDecimal(raw)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to parse assignment amount",
				goerr.V("id", d.ID), goerr.V("field", name), goerr.V("value", raw))
		}
		parsed[name] = value
	}

	return &model.Assignment{
		ID:                      d.ID,
		WBSID:                   d.WBSID,
		ResourceCode:            d.ResourceCode,
		SupplierCode:            d.SupplierCode,
		CostTypeCode:            d.CostTypeCode,
		RegionCode:              d.RegionCode,
		BusinessAreaCode:        d.BusinessAreaCode,
		EstimatingTechniqueCode: d.EstimatingTechniqueCode,
		BestEstimate:            parsed["best_estimate"],
		LikelyEstimate:          parsed["likely_estimate"],
		WorstEstimate:           parsed["worst_estimate"],
		DutyPct:                 parsed["duty_pct"],
		ImportContentPct:        parsed["import_content_pct"],
		AIIPct:                  parsed["aii_pct"],
		CreatedAt:               d.CreatedAt,
		UpdatedAt:               d.UpdatedAt,
	}, nil
}

// parseDecimal treats an empty stored value as zero, for documents written
// before a field existed.
func parseDecimal(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(raw)
}
