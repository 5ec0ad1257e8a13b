package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"

	"github.com/estima-lab/pertcost/pkg/domain/model"
	"github.com/estima-lab/pertcost/pkg/domain/types"
)

type auditDocument struct {
	ID               string    `firestore:"id"`
	Actor            string    `firestore:"actor"`
	Action           string    `firestore:"action"`
	WBSID            int64     `firestore:"wbs_id"`
	WBSCode          string    `firestore:"wbs_code"`
	WBSTitle         string    `firestore:"wbs_title"`
	NewStatus        string    `firestore:"new_status"`
	EstimateRevision int       `firestore:"estimate_revision"`
	Comment          string    `firestore:"comment"`
	OccurredAt       time.Time `firestore:"occurred_at"`
}

type auditRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newAuditRepository(client *firestore.Client) *auditRepository {
	return &auditRepository{client: client}
}

func (r *auditRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_audit_events"
	}
	return "audit_events"
}

func (r *auditRepository) Emit(ctx context.Context, event *model.AuditEvent) error {
	doc := &auditDocument{
		ID:               event.ID,
		Actor:            event.Actor,
		Action:           event.Action.String(),
		WBSID:            event.WBSID,
		WBSCode:          event.WBSCode,
		WBSTitle:         event.WBSTitle,
		NewStatus:        event.NewStatus.String(),
		EstimateRevision: event.EstimateRevision,
		Comment:          event.Comment,
		OccurredAt:       event.OccurredAt,
	}

	docRef := r.client.Collection(r.collection()).Doc(event.ID)
	if _, err := docRef.Set(ctx, doc); err != nil {
		return goerr.Wrap(err, "failed to emit audit event", goerr.V("id", event.ID))
	}

	return nil
}

func (r *auditRepository) ListByWBS(ctx context.Context, wbsID int64) ([]*model.AuditEvent, error) {
	iter := r.client.Collection(r.collection()).
		Where("wbs_id", "==", wbsID).
		OrderBy("occurred_at", firestore.Desc).
		Documents(ctx)
	defer iter.Stop()

	var events []*model.AuditEvent
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate audit events", goerr.V("wbs_id", wbsID))
		}

		var auditDoc auditDocument
		if err := doc.DataTo(&auditDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal audit event")
		}

		events = append(events, &model.AuditEvent{
			ID:               auditDoc.ID,
			Actor:            auditDoc.Actor,
			Action:           types.ApprovalAction(auditDoc.Action),
			WBSID:            auditDoc.WBSID,
			WBSCode:          auditDoc.WBSCode,
			WBSTitle:         auditDoc.WBSTitle,
			NewStatus:        types.ApprovalStatus(auditDoc.NewStatus),
			EstimateRevision: auditDoc.EstimateRevision,
			Comment:          auditDoc.Comment,
			OccurredAt:       auditDoc.OccurredAt,
		})
	}

	return events, nil
}
