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
	"github.com/estima-lab/pertcost/pkg/domain/types"
)

type wbsDocument struct {
	ID               int64      `firestore:"id"`
	ProjectID        int64      `firestore:"project_id"`
	Code             string     `firestore:"code"`
	Title            string     `firestore:"title"`
	ApprovalStatus   string     `firestore:"approval_status"`
	Approver         string     `firestore:"approver"`
	ApproverDate     *time.Time `firestore:"approver_date"`
	EstimateRevision int        `firestore:"estimate_revision"`
	Requirements     string     `firestore:"requirements"`
	Assumptions      string     `firestore:"assumptions"`
	CreatedAt        time.Time  `firestore:"created_at"`
	UpdatedAt        time.Time  `firestore:"updated_at"`
}

type wbsRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newWBSRepository(client *firestore.Client) *wbsRepository {
	return &wbsRepository{client: client}
}

func (r *wbsRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_wbs_items"
	}
	return "wbs_items"
}

func (r *wbsRepository) counterCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_counters"
	}
	return "counters"
}

func (r *wbsRepository) Create(ctx context.Context, wbs *model.WBSItem) (*model.WBSItem, error) {
	id, err := nextID(ctx, r.client, r.counterCollection(), "wbs_counter")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc := &wbsDocument{
		ID:               id,
		ProjectID:        wbs.ProjectID,
		Code:             wbs.Code,
		Title:            wbs.Title,
		ApprovalStatus:   wbs.ApprovalStatus.Normalize().String(),
		Approver:         wbs.Approver,
		ApproverDate:     wbs.ApproverDate,
		EstimateRevision: wbs.EstimateRevision,
		Requirements:     wbs.Requirements,
		Assumptions:      wbs.Assumptions,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	docRef := r.client.Collection(r.collection()).Doc(fmt.Sprintf("%d", id))
	if _, err := docRef.Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create wbs item")
	}

	return doc.toModel(), nil
}

func (r *wbsRepository) Get(ctx context.Context, id int64) (*model.WBSItem, error) {
	docRef := r.client.Collection(r.collection()).Doc(fmt.Sprintf("%d", id))
	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(interfaces.ErrNotFound, "wbs item not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get wbs item", goerr.V("id", id))
	}

	var wbsDoc wbsDocument
	if err := doc.DataTo(&wbsDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal wbs item", goerr.V("id", id))
	}

	return wbsDoc.toModel(), nil
}

func (r *wbsRepository) ListByProject(ctx context.Context, projectID int64) ([]*model.WBSItem, error) {
	iter := r.client.Collection(r.collection()).
		Where("project_id", "==", projectID).
		OrderBy("id", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var items []*model.WBSItem
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate wbs items", goerr.V("project_id", projectID))
		}

		var wbsDoc wbsDocument
		if err := doc.DataTo(&wbsDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal wbs item")
		}

		items = append(items, wbsDoc.toModel())
	}

	return items, nil
}

// UpdateApproval applies the patch inside a transaction: the status check
// and the write either happen together or not at all, so two concurrent
// transitions cannot both succeed from the same observed state.
func (r *wbsRepository) UpdateApproval(ctx context.Context, id int64, from types.ApprovalStatus, patch model.ApprovalPatch) (*model.WBSItem, error) {
	docRef := r.client.Collection(r.collection()).Doc(fmt.Sprintf("%d", id))

	var updated *model.WBSItem
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(interfaces.ErrNotFound, "wbs item not found", goerr.V("id", id))
			}
			return goerr.Wrap(err, "failed to get wbs item", goerr.V("id", id))
		}

		var existing wbsDocument
		if err := doc.DataTo(&existing); err != nil {
			return goerr.Wrap(err, "failed to unmarshal wbs item", goerr.V("id", id))
		}

		current := types.ApprovalStatus(existing.ApprovalStatus).Normalize()
		if current != from.Normalize() {
			return goerr.Wrap(interfaces.ErrStatusConflict, "wbs item moved to another status",
				goerr.V("id", id),
				goerr.V("expected", from.Normalize().String()),
				goerr.V("actual", current.String()),
			)
		}

		existing.ApprovalStatus = patch.Status.String()
		existing.Approver = patch.Approver
		existing.ApproverDate = patch.ApproverDate
		existing.EstimateRevision = patch.EstimateRevision
		existing.UpdatedAt = time.Now().UTC()

		if err := tx.Set(docRef, &existing); err != nil {
			return goerr.Wrap(err, "failed to update wbs item", goerr.V("id", id))
		}

		updated = existing.toModel()
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (d *wbsDocument) toModel() *model.WBSItem {
	return &model.WBSItem{
		ID:               d.ID,
		ProjectID:        d.ProjectID,
		Code:             d.Code,
		Title:            d.Title,
		ApprovalStatus:   types.ApprovalStatus(d.ApprovalStatus).Normalize(),
		Approver:         d.Approver,
		ApproverDate:     d.ApproverDate,
		EstimateRevision: d.EstimateRevision,
		Requirements:     d.Requirements,
		Assumptions:      d.Assumptions,
		CreatedAt:        d.CreatedAt,
		UpdatedAt:        d.UpdatedAt,
	}
}
