package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/estima-lab/pertcost/pkg/domain/interfaces"
	"github.com/estima-lab/pertcost/pkg/domain/model"
)

type riskDocument struct {
	ID              int64     `firestore:"id"`
	WBSID           int64     `firestore:"wbs_id"`
	CategoryCode    string    `firestore:"category_code"`
	RiskCost        string    `firestore:"risk_cost"`
	ProbabilityCode string    `firestore:"probability_code"`
	SeverityCode    string    `firestore:"severity_code"`
	MitigationPlan  string    `firestore:"mitigation_plan"`
	DateIdentified  time.Time `firestore:"date_identified"`
	CreatedAt       time.Time `firestore:"created_at"`
	UpdatedAt       time.Time `firestore:"updated_at"`
}

type riskRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newRiskRepository(client *firestore.Client) *riskRepository {
	return &riskRepository{client: client}
}

func (r *riskRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_risks"
	}
	return "risks"
}

func (r *riskRepository) counterCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_counters"
	}
	return "counters"
}

func (r *riskRepository) Create(ctx context.Context, risk *model.Risk) (*model.Risk, error) {
	id, err := nextID(ctx, r.client, r.counterCollection(), "risk_counter")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc := riskToDocument(risk)
	doc.ID = id
	if doc.DateIdentified.IsZero() {
		doc.DateIdentified = now
	}
	doc.CreatedAt = now
	doc.UpdatedAt = now

	docRef := r.client.Collection(r.collection()).Doc(fmt.Sprintf("%d", id))
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create risk")
	}

	return doc.toModel()
}

func (r *riskRepository) Get(ctx context.Context, id int64) (*model.Risk, error) {
	docRef := r.client.Collection(r.collection()).Doc(fmt.Sprintf("%d", id))
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "risk not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get risk", goerr.V("id", id))
	}

	var riskDoc riskDocument
	if err := doc.DataTo(&riskDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal risk", goerr.V("id", id))
	}

	return riskDoc.toModel()
}

func (r *riskRepository) ListByWBS(ctx context.Context, wbsID int64) ([]*model.Risk, error) {
	iter := r.client.Collection(r.collection()).
		Where("wbs_id", "==", wbsID).
		OrderBy("id", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var risks []*model.Risk
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate risks", goerr.V("wbs_id", wbsID))
		}

		var riskDoc riskDocument
		if err := doc.DataTo(&riskDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal risk")
		}

		risk, err := riskDoc.toModel()
		if err != nil {
			return nil, err
		}
		risks = append(risks, risk)
	}

	return risks, nil
}

func (r *riskRepository) CountByWBS(ctx context.Context, wbsID int64) (int, error) {
	risks, err := r.ListByWBS(ctx, wbsID)
	if err != nil {
		return 0, err
	}
	return len(risks), nil
}

func (r *riskRepository) Update(ctx context.Context, risk *model.Risk) (*model.Risk, error) {
	docRef := r.client.Collection(r.collection()).Doc(fmt.Sprintf("%d", risk.ID))

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "risk not found", goerr.V("id", risk.ID))
		}
		return nil, goerr.Wrap(err, "failed to get risk", goerr.V("id", risk.ID))
	}

	var existing riskDocument
	if err := doc.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal risk", goerr.V("id", risk.ID))
	}

	updated := riskToDocument(risk)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()
	if updated.DateIdentified.IsZero() {
		updated.DateIdentified = existing.DateIdentified
	}

	if _, err := docRef.Set(ctx, updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update risk", goerr.V("id", risk.ID))
	}

	return updated.toModel()
}

func (r *riskRepository) Delete(ctx context.Context, id int64) error {
	docRef := r.client.Collection(r.collection()).Doc(fmt.Sprintf("%d", id))

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(interfaces.ErrNotFound, "risk not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get risk", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete risk", goerr.V("id", id))
	}

	return nil
}

func riskToDocument(risk *model.Risk) *riskDocument {
	return &riskDocument{
		ID:              risk.ID,
		WBSID:           risk.WBSID,
		CategoryCode:    risk.CategoryCode,
		RiskCost:        risk.RiskCost.String(),
		ProbabilityCode: risk.ProbabilityCode,
		SeverityCode:    risk.SeverityCode,
		MitigationPlan:  risk.MitigationPlan,
		DateIdentified:  risk.DateIdentified,
		CreatedAt:       risk.CreatedAt,
		UpdatedAt:       risk.UpdatedAt,
	}
}

func (d *riskDocument) toModel() (*model.Risk, error) {
	cost, err := parseDecimal(d.RiskCost)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse risk cost",
			goerr.V("id", d.ID), goerr.V("value", d.RiskCost))
	}

	return &model.Risk{
		ID:              d.ID,
		WBSID:           d.WBSID,
		CategoryCode:    d.CategoryCode,
		RiskCost:        cost,
		ProbabilityCode: d.ProbabilityCode,
		SeverityCode:    d.SeverityCode,
		MitigationPlan:  d.MitigationPlan,
		DateIdentified:  d.DateIdentified,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}, nil
}
